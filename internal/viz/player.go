package viz

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/rodviz/internal/playback"
	"github.com/san-kum/rodviz/internal/report"
	"github.com/san-kum/rodviz/internal/rod"
)

const (
	pieceUnit  = 3
	barWidth   = 30
	chartWidth = 30
)

// current returns the step under the cursor, clamped to the trace.
func (m model) current(st playback.State) rod.Step {
	pos := min(max(st.Position, 0), len(m.trace)-1)
	return m.trace[pos]
}

func (m model) viewPlayer(s styles) string {
	st := m.ctrl.State()
	step := m.current(st)

	left := lipgloss.JoinVertical(lipgloss.Left,
		m.viewStatus(s, st),
		s.panel.Width(56).Render(s.header.Render("Current Step")+"\n"+s.value.Render(step.Description)),
		m.viewPseudoCode(s, step),
	)
	right := lipgloss.JoinVertical(lipgloss.Left,
		m.viewArrays(s, step),
		m.viewRod(s, step, st),
	)

	main := lipgloss.JoinHorizontal(lipgloss.Top, left, " ", right)
	footer := s.hints("space", "play/pause", "←/→", "step", "[ ]", "±10", "g/G", "first/last", "r", "reset", "e", "edit", "t", "theme", "?", "help", "q", "quit")

	view := main + "\n" + footer
	if m.showHelp {
		return helpText + "\n\n" + view
	}
	return view
}

func (m model) viewStatus(s styles, st playback.State) string {
	status := s.paused.Render("PAUSED")
	if st.Running {
		status = s.running.Render("PLAYING")
	} else if st.AtEnd() {
		status = s.paused.Render("DONE")
	}

	progress := 0.0
	if st.Last() > 0 {
		progress = float64(st.Position) / float64(st.Last())
	}

	var b strings.Builder
	b.WriteString(s.title.Render("ROD CUTTING") + "  " + status + "\n")
	b.WriteString(s.label.Render("Step") + s.value.Render(fmt.Sprintf("%d / %d", st.Position+1, st.Length)) + "\n")
	b.WriteString(s.label.Render("Progress") + s.subtle.Render(ProgressBar(progress, barWidth)) + "\n")
	b.WriteString(s.label.Render("Theme") + s.value.Render(m.theme.Name))
	return lipgloss.NewStyle().Padding(1, 1).Render(b.String())
}

func (m model) viewPseudoCode(s styles, step rod.Step) string {
	hot := step.Line.Number()

	var b strings.Builder
	b.WriteString(s.header.Render("Algorithm Pseudo-code") + "\n")
	for i, line := range rod.PseudoCode {
		text := fmt.Sprintf("%2d. %-50s", i+1, line)
		if i+1 == hot {
			b.WriteString(s.codeHot.Render(text))
		} else {
			b.WriteString(s.codeLine.Render(text))
		}
		if i < len(rod.PseudoCode)-1 {
			b.WriteString("\n")
		}
	}
	return s.panel.Render(b.String())
}

// viewArrays renders r and s with index i highlighted, and i-j while an
// inner-loop comparison is active.
func (m model) viewArrays(s styles, step rod.Step) string {
	idx := make([]string, 0, len(step.R)+1)
	rRow := make([]string, 0, len(step.R)+1)
	sRow := make([]string, 0, len(step.S)+1)

	idx = append(idx, s.label.Width(6).Render("i"))
	rRow = append(rRow, s.label.Width(6).Render("r[i]"))
	sRow = append(sRow, s.label.Width(6).Render("s[i]"))

	for k := range step.R {
		rStyle, sStyle := s.cell, s.cell
		switch {
		case step.I > 0 && k == step.I:
			rStyle, sStyle = s.current, s.current
		case step.J > 0 && k == step.I-step.J:
			rStyle = s.compare
		}
		idx = append(idx, s.subtle.Width(5).Align(lipgloss.Center).Render(strconv.Itoa(k)))
		rRow = append(rRow, rStyle.Render(num(step.R[k])))
		sRow = append(sRow, sStyle.Render(strconv.Itoa(step.S[k])))
	}

	body := strings.Join([]string{
		s.header.Render("Revenue (r) and Cuts (s)"),
		lipgloss.JoinHorizontal(lipgloss.Top, idx...),
		lipgloss.JoinHorizontal(lipgloss.Top, rRow...),
		lipgloss.JoinHorizontal(lipgloss.Top, sRow...),
		s.current.Width(0).Render(" i ") + s.subtle.Render(" current index   ") +
			s.compare.Width(0).Render(" i-j ") + s.subtle.Render(" comparison index"),
	}, "\n")
	return s.panel.Render(body)
}

func (m model) viewRod(s styles, step rod.Step, st playback.State) string {
	title := "Current Rod State"
	if st.AtEnd() {
		title = "Optimal Rod Cuts"
	}

	var b strings.Builder
	b.WriteString(s.header.Render(title) + "\n")
	b.WriteString(m.drawRod(step.Rod) + "\n")

	if st.AtEnd() {
		res := rod.Final(m.trace)
		b.WriteString(s.selected.Render(fmt.Sprintf("Maximum revenue: %s", num(res.Revenue))) + "\n")
		b.WriteString(s.value.Render("Optimal cuts: "+joinPieces(res.Pieces)) + "\n")
		if chart := report.RevenueChart(m.trace, chartWidth, 5); chart != "" {
			b.WriteString(s.subtle.Render(chart))
		}
	} else {
		b.WriteString(s.subtle.Render(fmt.Sprintf("Processing rod of length %d", step.I)))
	}
	return s.panel.Render(strings.TrimRight(b.String(), "\n"))
}

// drawRod renders each piece as a coloured block pieceUnit cells per unit
// of length. The first piece is the cut under consideration.
func (m model) drawRod(view rod.RodView) string {
	if !view.HasRod {
		return lipgloss.NewStyle().Foreground(m.theme.Muted).Render("(no rod yet)")
	}

	blocks := make([]string, 0, len(view.Pieces))
	for i, piece := range view.Pieces {
		bg := m.theme.Piece
		if i == 0 {
			bg = m.theme.Accent
		}
		block := lipgloss.NewStyle().
			Width(piece*pieceUnit).
			Align(lipgloss.Center).
			Bold(true).
			Foreground(lipgloss.Color("#000000")).
			Background(bg).
			Render(strconv.Itoa(piece))
		blocks = append(blocks, block)
	}
	return strings.Join(blocks, "│")
}

func joinPieces(pieces []int) string {
	parts := make([]string, len(pieces))
	for i, p := range pieces {
		parts[i] = strconv.Itoa(p)
	}
	return strings.Join(parts, " + ")
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

const helpText = `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  Space    - Play/Pause               ║
║  →/L      - Next step                ║
║  ←/H      - Previous step            ║
║  ] / [    - Jump 10 steps            ║
║  G / g    - Last / first step        ║
║  R        - Reset                    ║
║  E        - Edit rod length/prices   ║
║  T        - Cycle themes             ║
║  ?        - Toggle this help         ║
║  Q        - Quit                     ║
╚══════════════════════════════════════╝`
