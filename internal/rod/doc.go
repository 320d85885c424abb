// Package rod generates replayable traces of the bottom-up rod-cutting
// dynamic program.
//
// The package is pure computation:
//
//   - [Generate]: prices and rod length in, ordered []Step out
//   - [Step]: one observable moment of the computation with frozen copies
//     of the revenue array r and the cut array s
//   - [RodView]: the decomposition a rod diagram should show at that moment
//   - [Solve]: untraced reference solver used to cross-check traces
//
// # Example
//
//	trace, err := rod.Generate([]float64{1, 5, 8, 9}, 4)
//	if err != nil {
//		return err
//	}
//	res := rod.Final(trace)
//	fmt.Println(res.Revenue, res.Pieces) // 10 [2 2]
//
// # Thread Safety
//
// A generated trace is never mutated after [Generate] returns and may be
// shared freely between goroutines.
package rod
