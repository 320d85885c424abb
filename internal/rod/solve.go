package rod

// Solve is the untraced O(n^2) recurrence. It shares no code with
// Generate so the two can be checked against each other.
func Solve(prices []float64, n int) (Result, error) {
	if err := Validate(prices, n); err != nil {
		return Result{}, err
	}

	r := make([]float64, n+1)
	s := make([]int, n+1)
	for i := 1; i <= n; i++ {
		best := 0.0
		for j := 1; j <= i; j++ {
			if v := prices[j-1] + r[i-j]; v > best {
				best = v
				s[i] = j
			}
		}
		r[i] = best
	}

	return Result{
		Length:  n,
		Revenue: r[n],
		R:       r,
		S:       s,
		Pieces:  Decompose(s, n),
	}, nil
}

// Final reads the committed optimum off the last step of a trace. An empty
// trace, or one whose last snapshot is empty, yields the zero Result.
func Final(trace []Step) Result {
	if len(trace) == 0 {
		return Result{}
	}
	last := trace[len(trace)-1]
	if len(last.R) == 0 || len(last.S) != len(last.R) {
		return Result{}
	}
	n := len(last.R) - 1
	return Result{
		Length:  n,
		Revenue: last.R[n],
		R:       cloneFloats(last.R),
		S:       cloneInts(last.S),
		Pieces:  Decompose(last.S, n),
	}
}

// Calculations filters a trace down to the rows of a step-by-step
// calculation table: every step except the OUTER_START markers.
func Calculations(trace []Step) []Step {
	rows := make([]Step, 0, len(trace))
	for _, st := range trace {
		if st.Line == LineOuterStart {
			continue
		}
		rows = append(rows, st)
	}
	return rows
}
