// Package playback holds a cursor into an immutable trace and advances it
// on a timer or on discrete navigation commands.
//
// The controller only knows the trace length; it never sees or recomputes
// the steps. Timer callbacks run on their own goroutine, so the state record
// is guarded by a mutex, and every scheduled tick carries a generation
// number that Pause, Reset, Load and Close invalidate. A tick that lost the
// race for the lock discards itself, so nothing advances after
// cancellation.
package playback
