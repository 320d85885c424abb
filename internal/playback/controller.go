package playback

import (
	"io"
	"log/slog"
	"sync"
	"time"
)

// DefaultInterval is the autoplay cadence.
const DefaultInterval = time.Second

// State is a snapshot of the controller.
type State struct {
	Position int
	Length   int
	Running  bool
}

// Last is the final valid position, or 0 for an empty trace.
func (s State) Last() int {
	if s.Length == 0 {
		return 0
	}
	return s.Length - 1
}

// AtEnd reports whether the cursor sits on the last step.
func (s State) AtEnd() bool {
	return s.Position >= s.Last()
}

// Option configures a Controller.
type Option func(*Controller)

// WithInterval sets the autoplay cadence. Non-positive values are ignored.
func WithInterval(d time.Duration) Option {
	return func(c *Controller) {
		if d > 0 {
			c.interval = d
		}
	}
}

// WithLogger routes playback events to l. A nil logger is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithOnChange registers a callback invoked after every state change,
// outside the controller's lock. Timer-driven changes call it from the
// timer goroutine.
func WithOnChange(fn func(State)) Option {
	return func(c *Controller) { c.onChange = fn }
}

// Controller drives the cursor over a trace of fixed length.
type Controller struct {
	mu       sync.Mutex
	length   int
	position int
	running  bool
	closed   bool
	gen      uint64
	timer    *time.Timer
	interval time.Duration
	logger   *slog.Logger
	onChange func(State)
}

// New creates a paused controller at position 0 for a trace of the given
// length.
func New(length int, opts ...Option) *Controller {
	c := &Controller{
		length:   max(length, 0),
		interval: DefaultInterval,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State returns a snapshot of the cursor and running flag.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshot()
}

// Interval is the autoplay cadence.
func (c *Controller) Interval() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.interval
}

// Play starts advancing one step per interval. It stops by itself on the
// last step; calling it there leaves the controller paused.
func (c *Controller) Play() {
	c.update(func() {
		if c.closed {
			return
		}
		if c.position >= c.last() {
			c.running = false
			return
		}
		if c.running {
			return
		}
		c.running = true
		c.schedule()
		c.logger.Debug("playback started", "position", c.position, "length", c.length)
	})
}

// Pause stops autoplay and cancels the pending advance.
func (c *Controller) Pause() {
	c.update(func() {
		c.cancel()
		if c.running {
			c.logger.Debug("playback paused", "position", c.position)
		}
		c.running = false
	})
}

// Toggle pauses a running controller and plays a paused one.
func (c *Controller) Toggle() {
	if c.State().Running {
		c.Pause()
		return
	}
	c.Play()
}

func (c *Controller) StepForward() {
	c.update(func() { c.position = c.clamp(c.position + 1) })
}

func (c *Controller) StepBack() {
	c.update(func() { c.position = c.clamp(c.position - 1) })
}

// Seek jumps to target, clamped to the trace bounds.
func (c *Controller) Seek(target int) {
	c.update(func() { c.position = c.clamp(target) })
}

// Reset returns to the first step and stops autoplay.
func (c *Controller) Reset() {
	c.update(func() {
		c.cancel()
		c.position = 0
		c.running = false
	})
}

// Load switches to a freshly generated trace of the given length. Running
// playback is cancelled before the length changes.
func (c *Controller) Load(length int) {
	c.update(func() {
		c.cancel()
		c.running = false
		c.length = max(length, 0)
		c.position = 0
		c.logger.Debug("trace loaded", "length", c.length)
	})
}

// Close cancels any pending advance. Play is a no-op afterwards; navigation
// still works.
func (c *Controller) Close() {
	c.update(func() {
		c.cancel()
		c.running = false
		c.closed = true
	})
}

func (c *Controller) update(fn func()) {
	c.mu.Lock()
	fn()
	s := c.snapshot()
	c.mu.Unlock()
	c.notify(s)
}

// schedule arms the timer for the current generation. Callers hold mu.
func (c *Controller) schedule() {
	c.gen++
	gen := c.gen
	c.timer = time.AfterFunc(c.interval, func() { c.tick(gen) })
}

// cancel invalidates any armed or in-flight tick. Callers hold mu.
func (c *Controller) cancel() {
	c.gen++
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

func (c *Controller) tick(gen uint64) {
	c.mu.Lock()
	if gen != c.gen || !c.running || c.closed {
		c.mu.Unlock()
		return
	}

	if c.position < c.last() {
		c.position++
	}
	if c.position >= c.last() {
		c.running = false
		c.timer = nil
		c.logger.Debug("playback finished", "position", c.position)
	} else {
		c.schedule()
	}

	s := c.snapshot()
	c.mu.Unlock()
	c.notify(s)
}

func (c *Controller) notify(s State) {
	if c.onChange != nil {
		c.onChange(s)
	}
}

func (c *Controller) snapshot() State {
	return State{Position: c.position, Length: c.length, Running: c.running}
}

func (c *Controller) last() int {
	if c.length == 0 {
		return 0
	}
	return c.length - 1
}

func (c *Controller) clamp(p int) int {
	return min(max(p, 0), c.last())
}
