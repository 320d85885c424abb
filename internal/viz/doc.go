// Package viz provides the interactive terminal front end for rod-cutting
// traces.
//
// The package implements a TUI using the Bubble Tea framework:
//
//   - an input form for the rod length and the price list
//   - a playback screen showing the narration, pseudo-code, the r and s
//     tables and the rod diagram for the current step
//
// The screen reads only trace[position] and the whole trace; positions come
// from a [playback.Controller].
//
// # Key Bindings
//
//	Space     - Play/Pause
//	→/L  ←/H  - Step forward/back
//	[ ]       - Jump back/forward 10 steps
//	G/g       - Last/first step
//	R         - Reset
//	E         - Edit inputs
//	T         - Cycle color themes
//	?         - Show help overlay
package viz
