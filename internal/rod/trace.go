package rod

import (
	"fmt"
	"strconv"
)

// Generate runs the bottom-up rod-cutting recurrence for a rod of length n
// and records every state transition as a Step. Ties keep the smallest
// first cut. On invalid input no steps are returned.
func Generate(prices []float64, n int) ([]Step, error) {
	if err := Validate(prices, n); err != nil {
		return nil, err
	}

	t := tracer{
		r:     make([]float64, n+1),
		s:     make([]int, n+1),
		steps: make([]Step, 0, stepCount(n)),
	}

	t.emit(0, 0, LineInit, 0, 0, "Initializing arrays r and s with zeros")

	for i := 1; i <= n; i++ {
		maxRevenue := 0.0
		t.emit(i, 0, LineOuterStart, 0, maxRevenue,
			fmt.Sprintf("Starting calculation for rod of length %d", i))

		for j := 1; j <= i; j++ {
			candidate := prices[j-1] + t.r[i-j]
			t.emit(i, j, LineCompare, candidate, maxRevenue,
				fmt.Sprintf("Checking if cutting at length %d gives better revenue: %s + r[%d] = %s",
					j, formatNum(prices[j-1]), i-j, formatNum(candidate)))

			if candidate > maxRevenue {
				maxRevenue = candidate
				t.s[i] = j
				t.emit(i, j, LineUpdateBest, candidate, maxRevenue,
					fmt.Sprintf("New best revenue found! Setting s[%d] = %d", i, j))
			}
		}

		t.r[i] = maxRevenue
		t.emit(i, 0, LineStoreFinal, 0, maxRevenue,
			fmt.Sprintf("Final revenue for length %d: r[%d] = %s", i, i, formatNum(maxRevenue)))
	}

	return t.steps, nil
}

type tracer struct {
	r     []float64
	s     []int
	steps []Step
}

// emit freezes r and s into a new step.
func (t *tracer) emit(i, j int, line Line, candidate, best float64, desc string) {
	t.steps = append(t.steps, Step{
		Number:      len(t.steps),
		I:           i,
		J:           j,
		R:           cloneFloats(t.r),
		S:           cloneInts(t.s),
		Line:        line,
		Description: desc,
		Rod:         View(i, j, t.s),
		Candidate:   candidate,
		Best:        best,
	})
}

// stepCount is an upper bound on the trace length for n: one INIT, two
// steps per outer iteration and at most two per inner iteration.
func stepCount(n int) int {
	return 1 + 2*n + n*(n+1)
}

func cloneFloats(v []float64) []float64 {
	c := make([]float64, len(v))
	copy(c, v)
	return c
}

func cloneInts(v []int) []int {
	c := make([]int, len(v))
	copy(c, v)
	return c
}

func formatNum(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
