package rod

import (
	"encoding/json"
	"fmt"
)

// Line identifies the pseudo-code line a step corresponds to.
type Line int

const (
	LineInit Line = iota + 1
	LineOuterStart
	LineCompare
	LineUpdateBest
	LineStoreFinal
)

var lineNames = map[Line]string{
	LineInit:       "INIT",
	LineOuterStart: "OUTER_START",
	LineCompare:    "COMPARE",
	LineUpdateBest: "UPDATE_BEST",
	LineStoreFinal: "STORE_FINAL",
}

// PseudoCode is the listing the Line identifiers point into.
var PseudoCode = []string{
	"function rodCutting(prices, n):",
	"    r = array of size n+1, initialized to 0",
	"    s = array of size n+1, initialized to 0",
	"    for i = 1 to n:",
	"        maxRevenue = 0",
	"        for j = 1 to i:",
	"            if prices[j-1] + r[i-j] > maxRevenue:",
	"                maxRevenue = prices[j-1] + r[i-j]",
	"                s[i] = j",
	"        r[i] = maxRevenue",
	"    return r, s",
}

func (l Line) String() string {
	if name, ok := lineNames[l]; ok {
		return name
	}
	return fmt.Sprintf("Line(%d)", int(l))
}

// Number returns the 1-based index into PseudoCode, or 0 for an unknown line.
func (l Line) Number() int {
	switch l {
	case LineInit:
		return 2
	case LineOuterStart:
		return 4
	case LineCompare:
		return 7
	case LineUpdateBest:
		return 9
	case LineStoreFinal:
		return 10
	}
	return 0
}

// ParseLine is the inverse of Line.String.
func ParseLine(name string) (Line, error) {
	for l, n := range lineNames {
		if n == name {
			return l, nil
		}
	}
	return 0, fmt.Errorf("rod: unknown pseudo-code line %q", name)
}

func (l Line) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.String())
}

func (l *Line) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	parsed, err := ParseLine(name)
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

// RodView is what a rod diagram should currently show.
type RodView struct {
	HasRod bool  `json:"has_rod"`
	Length int   `json:"length"`
	Pieces []int `json:"pieces"`
}

// Total sums the pieces.
func (v RodView) Total() int {
	sum := 0
	for _, p := range v.Pieces {
		sum += p
	}
	return sum
}

// Step is one recorded moment of the computation. R and S are private
// copies; nothing mutates them after the step is emitted.
type Step struct {
	Number      int       `json:"step"`
	I           int       `json:"i"`
	J           int       `json:"j"`
	R           []float64 `json:"r"`
	S           []int     `json:"s"`
	Line        Line      `json:"line"`
	Description string    `json:"description"`
	Rod         RodView   `json:"rod"`

	// Candidate is prices[j-1] + r[i-j] on COMPARE and UPDATE_BEST steps.
	Candidate float64 `json:"candidate,omitempty"`
	// Best is the running maximum for the current i.
	Best float64 `json:"best"`
}

// Result is the committed optimum read off the last step of a trace.
type Result struct {
	Length  int       `json:"length"`
	Revenue float64   `json:"revenue"`
	R       []float64 `json:"r"`
	S       []int     `json:"s"`
	Pieces  []int     `json:"pieces"`
}
