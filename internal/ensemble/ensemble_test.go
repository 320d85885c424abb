package ensemble

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/san-kum/rodviz/internal/rod"
)

func TestRun(t *testing.T) {
	results, err := Run(context.Background(), Config{Runs: 40, MaxLength: 12, Seed: 7})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if len(results) != 40 {
		t.Fatalf("expected 40 results, got %d", len(results))
	}

	for i, r := range results {
		if r.Seed != 7+uint64(i) {
			t.Errorf("result %d has seed %d", i, r.Seed)
		}
		if r.Length < 1 || r.Length > 12 {
			t.Errorf("result %d has length %d", i, r.Length)
		}
	}

	if f := Failures(results); len(f) != 0 {
		t.Fatalf("unexpected failures: %+v", f[0])
	}
}

func TestRunFractional(t *testing.T) {
	results, err := Run(context.Background(), Config{Runs: 25, MaxLength: 10, Fractional: true, Seed: 99})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if f := Failures(results); len(f) != 0 {
		t.Fatalf("unexpected failures: %+v", f[0])
	}
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Run(ctx, Config{Runs: 5})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestInputDeterministic(t *testing.T) {
	cfg := Config{MaxLength: 8, Seed: 1}
	p1, n1 := Input(cfg, 42)
	p2, n2 := Input(cfg, 42)

	if n1 != n2 || !reflect.DeepEqual(p1, p2) {
		t.Fatalf("same seed produced different inputs: %v/%d vs %v/%d", p1, n1, p2, n2)
	}
	if len(p1) != n1 {
		t.Errorf("expected %d prices, got %d", n1, len(p1))
	}
	for _, p := range p1 {
		if p < 0 || p >= 50 || p != float64(int(p)) {
			t.Errorf("price %v out of range", p)
		}
	}
}

func TestCheck(t *testing.T) {
	res := Check([]float64{1, 5, 8, 9, 10, 17, 17, 20, 24, 30}, 10)
	if res.Err != nil {
		t.Fatalf("check failed: %v", res.Err)
	}
	if res.Revenue != 30 || res.Steps != 131 {
		t.Errorf("expected revenue 30 in 131 steps, got %v in %d", res.Revenue, res.Steps)
	}
	if !reflect.DeepEqual(res.Pieces, []int{10}) {
		t.Errorf("expected pieces [10], got %v", res.Pieces)
	}
}

func TestCheckInvalidInput(t *testing.T) {
	res := Check([]float64{1}, 3)
	if !errors.Is(res.Err, rod.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", res.Err)
	}
	if res.Steps != 0 {
		t.Errorf("expected no steps, got %d", res.Steps)
	}
}
