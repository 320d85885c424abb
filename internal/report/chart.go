package report

import (
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/rodviz/internal/rod"
)

// RevenueChart plots r[i] against i for the final step of the trace.
func RevenueChart(trace []rod.Step, width, height int) string {
	res := rod.Final(trace)
	if len(res.R) < 2 {
		return ""
	}

	return asciigraph.Plot(res.R,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption("r[i] by rod length"),
	)
}
