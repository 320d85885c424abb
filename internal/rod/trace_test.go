package rod

import (
	"errors"
	"math"
	"math/rand"
	"reflect"
	"testing"
)

var textbookPrices = []float64{1, 5, 8, 9, 10, 17, 17, 20, 24, 30}

func TestGenerate_Textbook(t *testing.T) {
	trace, err := Generate(textbookPrices, 10)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	last := trace[len(trace)-1]
	wantR := []float64{0, 1, 5, 8, 10, 13, 17, 18, 22, 25, 30}
	wantS := []int{0, 1, 2, 3, 2, 2, 6, 1, 2, 3, 10}

	if !reflect.DeepEqual(last.R, wantR) {
		t.Errorf("final r = %v, want %v", last.R, wantR)
	}
	if !reflect.DeepEqual(last.S, wantS) {
		t.Errorf("final s = %v, want %v", last.S, wantS)
	}
	if last.Line != LineStoreFinal || last.I != 10 {
		t.Errorf("last step = %s for i=%d, want STORE_FINAL for i=10", last.Line, last.I)
	}
	if !reflect.DeepEqual(last.Rod.Pieces, []int{10}) {
		t.Errorf("final pieces = %v, want [10]", last.Rod.Pieces)
	}
}

func TestGenerate_SingleLength(t *testing.T) {
	trace, err := Generate([]float64{5}, 1)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	wantLines := []Line{LineInit, LineOuterStart, LineCompare, LineUpdateBest, LineStoreFinal}
	if len(trace) != len(wantLines) {
		t.Fatalf("expected %d steps, got %d", len(wantLines), len(trace))
	}
	for i, st := range trace {
		if st.Line != wantLines[i] {
			t.Errorf("step %d: line = %s, want %s", i, st.Line, wantLines[i])
		}
	}

	last := trace[len(trace)-1]
	if !reflect.DeepEqual(last.R, []float64{0, 5}) {
		t.Errorf("final r = %v, want [0 5]", last.R)
	}
	if !reflect.DeepEqual(last.S, []int{0, 1}) {
		t.Errorf("final s = %v, want [0 1]", last.S)
	}
}

func TestGenerate_InvalidInput(t *testing.T) {
	tests := []struct {
		name   string
		prices []float64
		n      int
	}{
		{"too few prices", []float64{1, 2}, 5},
		{"zero length", []float64{1}, 0},
		{"negative length", []float64{1}, -3},
		{"negative price", []float64{1, -2, 3}, 3},
		{"NaN price", []float64{1, math.NaN()}, 2},
		{"+Inf price", []float64{math.Inf(1)}, 1},
		{"negative price past n", []float64{1, 2, -1}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			trace, err := Generate(tt.prices, tt.n)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if trace != nil {
				t.Errorf("expected no steps, got %d", len(trace))
			}
			if !errors.Is(err, ErrInvalidInput) {
				t.Errorf("error %v does not match ErrInvalidInput", err)
			}
			var inputErr *InvalidInputError
			if !errors.As(err, &inputErr) {
				t.Errorf("error %T is not *InvalidInputError", err)
			}
		})
	}
}

func TestGenerate_Invariants(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for round := 0; round < 50; round++ {
		n := 1 + rng.Intn(12)
		prices := randomPrices(rng, n+rng.Intn(3))

		trace, err := Generate(prices, n)
		if err != nil {
			t.Fatalf("round %d: generate failed: %v", round, err)
		}

		committed := make(map[int]float64)
		for idx, st := range trace {
			if st.Number != idx {
				t.Fatalf("round %d: step %d has number %d", round, idx, st.Number)
			}
			if len(st.R) != n+1 || len(st.S) != n+1 {
				t.Fatalf("round %d: step %d snapshot lengths %d/%d, want %d", round, idx, len(st.R), len(st.S), n+1)
			}
			if st.R[0] != 0 || st.S[0] != 0 {
				t.Fatalf("round %d: step %d has r[0]=%v s[0]=%d", round, idx, st.R[0], st.S[0])
			}
			for i, v := range committed {
				if st.R[i] != v {
					t.Fatalf("round %d: r[%d] changed from %v to %v at step %d", round, i, v, st.R[i], idx)
				}
			}
			if st.Line == LineStoreFinal {
				committed[st.I] = st.R[st.I]
			}
		}

		ref, err := Solve(prices, n)
		if err != nil {
			t.Fatalf("round %d: solve failed: %v", round, err)
		}
		last := trace[len(trace)-1]
		if last.R[n] != ref.Revenue {
			t.Errorf("round %d: traced revenue %v, reference %v", round, last.R[n], ref.Revenue)
		}
		if !reflect.DeepEqual(last.S, ref.S) {
			t.Errorf("round %d: traced s %v, reference %v", round, last.S, ref.S)
		}
		if got := last.Rod.Total(); got != n {
			t.Errorf("round %d: final pieces %v sum to %d, want %d", round, last.Rod.Pieces, got, n)
		}
		if len(trace) > stepCount(n) {
			t.Errorf("round %d: %d steps exceeds bound %d", round, len(trace), stepCount(n))
		}
	}
}

func TestGenerate_TieKeepsSmallestCut(t *testing.T) {
	// Every split of a length-4 rod is worth 4.
	trace, err := Generate([]float64{1, 2, 3, 4}, 4)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	last := trace[len(trace)-1]
	if !reflect.DeepEqual(last.S, []int{0, 1, 1, 1, 1}) {
		t.Errorf("s = %v, want all cuts of length 1", last.S)
	}

	updates := 0
	for _, st := range trace {
		if st.Line == LineUpdateBest {
			updates++
		}
	}
	if updates != 4 {
		t.Errorf("expected one UPDATE_BEST per length, got %d", updates)
	}
}

func TestGenerate_ZeroPricesLeaveRodUncut(t *testing.T) {
	trace, err := Generate([]float64{0, 0, 0}, 3)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	last := trace[len(trace)-1]
	if !reflect.DeepEqual(last.S, []int{0, 0, 0, 0}) {
		t.Errorf("s = %v, want zeros", last.S)
	}
	if !reflect.DeepEqual(last.Rod.Pieces, []int{3}) {
		t.Errorf("pieces = %v, want [3]", last.Rod.Pieces)
	}
	for _, st := range trace {
		if st.Line == LineUpdateBest {
			t.Fatalf("unexpected UPDATE_BEST at step %d", st.Number)
		}
	}
}

func TestGenerate_SnapshotsAreCopies(t *testing.T) {
	trace, err := Generate(textbookPrices, 4)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	before := cloneFloats(trace[len(trace)-1].R)
	for _, st := range trace[:len(trace)-1] {
		st.R[len(st.R)-1] = -1
		st.S[len(st.S)-1] = -1
	}

	last := trace[len(trace)-1]
	if !reflect.DeepEqual(last.R, before) {
		t.Errorf("mutating earlier steps changed the last step: %v", last.R)
	}
	if last.S[4] != 2 {
		t.Errorf("s[4] = %d, want 2", last.S[4])
	}
}

func TestGenerate_Descriptions(t *testing.T) {
	trace, err := Generate([]float64{1, 5}, 2)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	want := []string{
		"Initializing arrays r and s with zeros",
		"Starting calculation for rod of length 1",
		"Checking if cutting at length 1 gives better revenue: 1 + r[0] = 1",
		"New best revenue found! Setting s[1] = 1",
		"Final revenue for length 1: r[1] = 1",
		"Starting calculation for rod of length 2",
		"Checking if cutting at length 1 gives better revenue: 1 + r[1] = 2",
		"New best revenue found! Setting s[2] = 1",
		"Checking if cutting at length 2 gives better revenue: 5 + r[0] = 5",
		"New best revenue found! Setting s[2] = 2",
		"Final revenue for length 2: r[2] = 5",
	}
	if len(trace) != len(want) {
		t.Fatalf("expected %d steps, got %d", len(want), len(trace))
	}
	for i, st := range trace {
		if st.Description != want[i] {
			t.Errorf("step %d: %q, want %q", i, st.Description, want[i])
		}
	}
	if trace[8].Candidate != 5 || trace[8].Best != 2 {
		t.Errorf("compare step candidate/best = %v/%v, want 5/2", trace[8].Candidate, trace[8].Best)
	}
}

func TestFinal(t *testing.T) {
	trace, err := Generate(textbookPrices, 7)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	res := Final(trace)
	if res.Revenue != 18 {
		t.Errorf("revenue = %v, want 18", res.Revenue)
	}
	if !reflect.DeepEqual(res.Pieces, []int{1, 6}) {
		t.Errorf("pieces = %v, want [1 6]", res.Pieces)
	}

	if empty := Final(nil); empty.Length != 0 || empty.Pieces != nil {
		t.Errorf("Final(nil) = %+v, want zero", empty)
	}
	if bare := Final([]Step{{Line: LineInit}}); bare.Length != 0 || bare.R != nil {
		t.Errorf("Final of a step without arrays = %+v, want zero", bare)
	}
}

func TestCalculations(t *testing.T) {
	trace, err := Generate([]float64{1, 5}, 2)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	rows := Calculations(trace)
	if len(rows) != len(trace)-2 {
		t.Fatalf("expected %d rows, got %d", len(trace)-2, len(rows))
	}
	for _, st := range rows {
		if st.Line == LineOuterStart {
			t.Errorf("row %d is an OUTER_START step", st.Number)
		}
	}
}

func TestLine(t *testing.T) {
	tests := []struct {
		line   Line
		name   string
		number int
	}{
		{LineInit, "INIT", 2},
		{LineOuterStart, "OUTER_START", 4},
		{LineCompare, "COMPARE", 7},
		{LineUpdateBest, "UPDATE_BEST", 9},
		{LineStoreFinal, "STORE_FINAL", 10},
	}

	for _, tt := range tests {
		if got := tt.line.String(); got != tt.name {
			t.Errorf("String() = %s, want %s", got, tt.name)
		}
		if got := tt.line.Number(); got != tt.number {
			t.Errorf("%s.Number() = %d, want %d", tt.name, got, tt.number)
		}
		if got := PseudoCode[tt.number-1]; got == "" {
			t.Errorf("%s points at an empty pseudo-code line", tt.name)
		}
		parsed, err := ParseLine(tt.name)
		if err != nil || parsed != tt.line {
			t.Errorf("ParseLine(%s) = %v, %v", tt.name, parsed, err)
		}
	}

	if _, err := ParseLine("RETURN"); err == nil {
		t.Error("expected error for unknown line")
	}
}

func randomPrices(rng *rand.Rand, count int) []float64 {
	prices := make([]float64, count)
	for i := range prices {
		prices[i] = float64(rng.Intn(30))
	}
	return prices
}
