// Package ensemble cross-checks the trace generator against the untraced
// solver over many random price tables, one goroutine per run.
package ensemble

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"sync"

	"github.com/san-kum/rodviz/internal/rod"
)

var ErrMismatch = errors.New("ensemble: trace disagrees with reference")

type Config struct {
	Runs      int
	MaxLength int
	// MaxPrice bounds each random price; prices are whole numbers unless
	// Fractional is set.
	MaxPrice   float64
	Fractional bool
	Seed       uint64
}

type Result struct {
	Seed    uint64
	Length  int
	Prices  []float64
	Steps   int
	Revenue float64
	Pieces  []int
	Err     error
}

func (c Config) withDefaults() Config {
	if c.Runs <= 0 {
		c.Runs = 100
	}
	if c.MaxLength <= 0 {
		c.MaxLength = rod.MaxInteractiveLength
	}
	if c.MaxPrice <= 0 {
		c.MaxPrice = 50
	}
	return c
}

// Run checks cfg.Runs random inputs concurrently. Run k uses seed
// cfg.Seed+k, so any failing input can be replayed with Check.
// Per-run failures are reported in Result.Err; the returned error is only
// set when ctx is cancelled.
func Run(ctx context.Context, cfg Config) ([]Result, error) {
	cfg = cfg.withDefaults()
	results := make([]Result, cfg.Runs)

	var wg sync.WaitGroup
	for i := 0; i < cfg.Runs; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			seed := cfg.Seed + uint64(idx)
			if err := ctx.Err(); err != nil {
				results[idx] = Result{Seed: seed, Err: err}
				return
			}
			prices, n := Input(cfg, seed)
			results[idx] = Check(prices, n)
			results[idx].Seed = seed
		}(i)
	}

	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

// Input derives a deterministic price table and rod length from seed.
func Input(cfg Config, seed uint64) ([]float64, int) {
	cfg = cfg.withDefaults()
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))

	n := 1 + rng.IntN(cfg.MaxLength)
	prices := make([]float64, n)
	for j := range prices {
		p := rng.Float64() * cfg.MaxPrice
		if !cfg.Fractional {
			p = math.Floor(p)
		}
		prices[j] = p
	}
	return prices, n
}

// Check generates the trace for one input and verifies it against the
// reference solver and the structural invariants of a trace.
func Check(prices []float64, n int) Result {
	res := Result{Length: n, Prices: prices}

	trace, err := rod.Generate(prices, n)
	if err != nil {
		res.Err = err
		return res
	}
	res.Steps = len(trace)

	final := rod.Final(trace)
	res.Revenue, res.Pieces = final.Revenue, final.Pieces

	ref, err := rod.Solve(prices, n)
	if err != nil {
		res.Err = err
		return res
	}

	if err := verify(trace, prices, n, ref); err != nil {
		res.Err = err
	}
	return res
}

func verify(trace []rod.Step, prices []float64, n int, ref rod.Result) error {
	if want := 1 + 2*n + n*(n+1); len(trace) != want {
		return fmt.Errorf("%w: %d steps, want %d", ErrMismatch, len(trace), want)
	}

	for k, st := range trace {
		if st.Number != k {
			return fmt.Errorf("%w: step %d numbered %d", ErrMismatch, k, st.Number)
		}
		if len(st.R) != n+1 || len(st.S) != n+1 || st.R[0] != 0 || st.S[0] != 0 {
			return fmt.Errorf("%w: malformed snapshot at step %d", ErrMismatch, k)
		}
	}

	final := rod.Final(trace)
	if final.Revenue != ref.Revenue {
		return fmt.Errorf("%w: revenue %v, reference %v", ErrMismatch, final.Revenue, ref.Revenue)
	}
	for i := range ref.R {
		if final.R[i] != ref.R[i] || final.S[i] != ref.S[i] {
			return fmt.Errorf("%w: r/s differ at %d", ErrMismatch, i)
		}
	}

	if err := rod.CheckCuts(final.S); err != nil {
		return err
	}

	// r[i] = prices[s[i]-1] + r[i-s[i]], so summing from the last piece
	// reproduces the revenue exactly.
	var total float64
	for k := len(final.Pieces) - 1; k >= 0; k-- {
		total = prices[final.Pieces[k]-1] + total
	}
	if total != final.Revenue {
		return fmt.Errorf("%w: pieces %v sell for %v, revenue %v", ErrMismatch, final.Pieces, total, final.Revenue)
	}
	return nil
}

// Failures returns the results that carry an error.
func Failures(results []Result) []Result {
	var out []Result
	for _, r := range results {
		if r.Err != nil {
			out = append(out, r)
		}
	}
	return out
}
