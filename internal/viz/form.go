package viz

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/rodviz/internal/rod"
)

const (
	fieldLength = iota
	fieldPrices
)

// form collects the rod length and price list.
type form struct {
	length string
	prices string
	focus  int
	err    string
}

func newForm(length int, prices []float64) form {
	return form{
		length: strconv.Itoa(length),
		prices: rod.FormatPrices(prices),
	}
}

// update applies a key press; submit is true when enter was pressed.
func (f form) update(msg tea.KeyMsg) (form, bool) {
	switch msg.String() {
	case "enter":
		return f, true
	case "tab", "down", "up", "shift+tab":
		f.focus = 1 - f.focus
	case "backspace":
		f.setValue(trimLast(f.value()))
	case "ctrl+u":
		f.setValue("")
	default:
		switch msg.Type {
		case tea.KeySpace:
			f.insert(" ")
		case tea.KeyRunes:
			f.insert(string(msg.Runes))
		}
	}
	return f, false
}

func (f *form) insert(s string) {
	for _, c := range s {
		switch {
		case c >= '0' && c <= '9':
		case f.focus == fieldPrices && (c == '.' || c == ' ' || c == '-' || c == 'e' || c == 'E'):
		default:
			continue
		}
		f.setValue(f.value() + string(c))
	}
}

func (f form) value() string {
	if f.focus == fieldLength {
		return f.length
	}
	return f.prices
}

func (f *form) setValue(v string) {
	if f.focus == fieldLength {
		f.length = v
	} else {
		f.prices = v
	}
}

// parse validates the form. The rod length is held to the interactive
// range here; the generator itself accepts any positive length.
func (f form) parse() (int, []float64, error) {
	n, err := strconv.Atoi(strings.TrimSpace(f.length))
	if err != nil {
		return 0, nil, fmt.Errorf("rod length must be a whole number")
	}
	if n < 1 || n > rod.MaxInteractiveLength {
		return 0, nil, fmt.Errorf("rod length must be between 1 and %d", rod.MaxInteractiveLength)
	}
	prices, err := rod.ParseInput(n, f.prices)
	if err != nil {
		return 0, nil, err
	}
	return n, prices, nil
}

func (f form) view(s styles) string {
	var b strings.Builder
	b.WriteString("\n\n    " + s.title.Render("ROD CUTTING") + "\n")
	b.WriteString("    " + s.subtle.Render("dynamic programming, step by step") + "\n")
	b.WriteString("    " + s.subtle.Render("─────────────────────────────────") + "\n\n")

	fields := []struct {
		name, value string
	}{
		{fmt.Sprintf("rod length (1-%d)", rod.MaxInteractiveLength), f.length},
		{"prices", f.prices},
	}
	for i, fld := range fields {
		if i == f.focus {
			b.WriteString(fmt.Sprintf("    %s %s %s\n", s.selected.Render("▸"), s.value.Bold(true).Render(fmt.Sprintf("%-18s", fld.name)), s.selected.Render(fld.value+"_")))
		} else {
			b.WriteString(fmt.Sprintf("      %s %s\n", s.subtle.Render(fmt.Sprintf("%-18s", fld.name)), s.value.Render(fld.value)))
		}
	}

	if f.err != "" {
		b.WriteString("\n    " + s.errorText.Render(f.err) + "\n")
	}

	b.WriteString("\n    " + s.hints("tab", "switch field", "enter", "visualize", "ctrl+u", "clear", "esc", "quit") + "\n")
	return b.String()
}

func trimLast(v string) string {
	if v == "" {
		return v
	}
	r := []rune(v)
	return string(r[:len(r)-1])
}
