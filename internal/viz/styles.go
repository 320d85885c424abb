package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// styles are derived from the active theme on every render.
type styles struct {
	title     lipgloss.Style
	subtle    lipgloss.Style
	panel     lipgloss.Style
	header    lipgloss.Style
	label     lipgloss.Style
	value     lipgloss.Style
	running   lipgloss.Style
	paused    lipgloss.Style
	keyHint   lipgloss.Style
	key       lipgloss.Style
	errorText lipgloss.Style
	selected  lipgloss.Style
	cell      lipgloss.Style
	current   lipgloss.Style
	compare   lipgloss.Style
	codeLine  lipgloss.Style
	codeHot   lipgloss.Style
}

func newStyles(t Theme) styles {
	cell := lipgloss.NewStyle().Width(5).Align(lipgloss.Center)
	return styles{
		title:  lipgloss.NewStyle().Bold(true).Foreground(t.Primary),
		subtle: lipgloss.NewStyle().Foreground(t.Muted),
		panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Muted).
			Padding(0, 1),
		header: lipgloss.NewStyle().
			Bold(true).
			Foreground(t.Text).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(t.Muted),
		label:     lipgloss.NewStyle().Foreground(t.Muted).Width(12),
		value:     lipgloss.NewStyle().Foreground(t.Text),
		running:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00ff88")),
		paused:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ffaa00")),
		keyHint:   lipgloss.NewStyle().Foreground(t.Muted).Italic(true),
		key:       lipgloss.NewStyle().Bold(true).Foreground(t.Secondary),
		errorText: lipgloss.NewStyle().Bold(true).Foreground(t.Error),
		selected:  lipgloss.NewStyle().Bold(true).Foreground(t.Accent),
		cell:      cell.Foreground(t.Text),
		current:   cell.Bold(true).Foreground(lipgloss.Color("#000000")).Background(t.Current),
		compare:   cell.Bold(true).Foreground(lipgloss.Color("#000000")).Background(t.Compare),
		codeLine:  lipgloss.NewStyle().Foreground(t.Muted),
		codeHot:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#000000")).Background(t.Highlight),
	}
}

// ProgressBar renders a bar filled to percent of width.
func ProgressBar(percent float64, width int) string {
	filled := int(percent * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

// hints renders alternating key, label pairs for footers.
func (s styles) hints(pairs ...string) string {
	var b strings.Builder
	for i := 0; i+1 < len(pairs); i += 2 {
		b.WriteString(s.key.Render(pairs[i]))
		b.WriteString(s.keyHint.Render(" " + pairs[i+1] + "  "))
	}
	return b.String()
}
