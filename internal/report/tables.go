package report

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/san-kum/rodviz/internal/rod"
)

const none = "-"

// StepTable renders the step-by-step calculation table: every step except
// the per-length start markers. The row for current (a step number) is
// flagged; pass -1 for no marker.
func StepTable(prices []float64, trace []rod.Step, current int) string {
	tbl := table.NewWriter()
	tbl.SetStyle(table.StyleLight)
	tbl.Style().Options.SeparateRows = false
	tbl.Style().Format.Header = text.FormatDefault
	tbl.Style().Format.Footer = text.FormatDefault
	tbl.AppendHeader(table.Row{"Step", "Rod Length (i)", "Cut Length (j)", "Calculation", "Revenue", "Best Cut", "Max Revenue"})
	tbl.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight},
		{Number: 2, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
		{Number: 5, Align: text.AlignRight},
		{Number: 6, Align: text.AlignRight},
		{Number: 7, Align: text.AlignRight},
	})

	for _, st := range rod.Calculations(trace) {
		label := strconv.Itoa(st.Number + 1)
		if st.Number == current {
			label = "▶ " + label
		}

		calc, revenue := st.Description, none
		if st.J > 0 && st.J <= len(prices) {
			calc = fmt.Sprintf("price[%d] + r[%d] = %s + %s", st.J, st.I-st.J, num(prices[st.J-1]), num(st.R[st.I-st.J]))
			revenue = num(st.Candidate)
		}

		tbl.AppendRow(table.Row{
			label,
			orNone(st.I),
			orNone(st.J),
			calc,
			revenue,
			orNone(st.S[st.I]),
			num(st.R[st.I]),
		})
	}

	tbl.AppendFooter(table.Row{"", "", "", fmt.Sprintf("Total: %d steps", len(trace))})
	return tbl.Render()
}

// ResultTable renders the final r and s arrays side by side, one column per
// rod length.
func ResultTable(trace []rod.Step) string {
	res := rod.Final(trace)
	if len(res.R) == 0 {
		return "No trace data available"
	}

	header := table.Row{"i"}
	rRow := table.Row{"r[i]"}
	sRow := table.Row{"s[i]"}
	for i := range res.R {
		header = append(header, i)
		rRow = append(rRow, num(res.R[i]))
		sRow = append(sRow, res.S[i])
	}

	tbl := table.NewWriter()
	tbl.SetStyle(table.StyleRounded)
	tbl.Style().Format.Header = text.FormatDefault
	tbl.AppendHeader(header)
	tbl.AppendRow(rRow)
	tbl.AppendRow(sRow)
	return tbl.Render()
}

// Summary states the optimum of the trace in one or two lines.
func Summary(trace []rod.Step) string {
	res := rod.Final(trace)
	if res.Length == 0 {
		return "No trace data available"
	}

	parts := make([]string, len(res.Pieces))
	for i, p := range res.Pieces {
		parts[i] = strconv.Itoa(p)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Maximum revenue for length %d: %s\n", res.Length, num(res.Revenue))
	fmt.Fprintf(&b, "Optimal cuts: %s", strings.Join(parts, " + "))
	return b.String()
}

func orNone(v int) string {
	if v == 0 {
		return none
	}
	return strconv.Itoa(v)
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
