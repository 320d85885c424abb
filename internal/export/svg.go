package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/rodviz/internal/rod"
)

const (
	firstPieceFill = "#f59e0b"
	pieceFill      = "#3b82f6"
	rodHeight      = 40.0
	rodMargin      = 20.0
)

// RodViewToSVG draws a rod as consecutive labelled segments, unit pixels
// per unit of length. The first piece is highlighted as the cut under
// consideration.
func RodViewToSVG(view rod.RodView, unit float64) string {
	if !view.HasRod || len(view.Pieces) == 0 {
		return ""
	}
	if unit <= 0 {
		unit = 30
	}

	width := float64(view.Total())*unit + 2*rodMargin
	height := rodHeight + 2*rodMargin + 20

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#1f2937"/>
`, width, height, width, height))

	x := rodMargin
	for i, piece := range view.Pieces {
		fill := pieceFill
		if i == 0 {
			fill = firstPieceFill
		}
		w := float64(piece) * unit
		sb.WriteString(fmt.Sprintf(`<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s" stroke="#ffffff" stroke-width="2"/>
`, x, rodMargin, w, rodHeight, fill))
		sb.WriteString(fmt.Sprintf(`<text x="%.1f" y="%.1f" fill="#ffffff" font-family="monospace" font-size="14" text-anchor="middle">%d</text>
`, x+w/2, rodMargin+rodHeight/2+5, piece))
		x += w
	}

	sb.WriteString(fmt.Sprintf(`<text x="%.1f" y="%.1f" fill="#9ca3af" font-family="monospace" font-size="12">length %d</text>
`, rodMargin, rodMargin+rodHeight+18, view.Length))

	sb.WriteString("</svg>")
	return sb.String()
}

// RevenueToSVG plots r[i] against i as a polyline.
func RevenueToSVG(r []float64, width, height int, strokeColor string) string {
	if len(r) < 2 {
		return ""
	}

	maxY := r[0]
	for _, v := range r {
		if v > maxY {
			maxY = v
		}
	}
	if maxY == 0 {
		maxY = 1
	}
	maxY *= 1.1
	rangeX := float64(len(r) - 1)

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, strokeColor))

	for i, v := range r {
		x := float64(i) / rangeX * float64(width)
		y := float64(height) - v/maxY*float64(height)

		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}
