package debounce

import (
	"sync"
	"time"
)

// Callback debounces a function call. Each Call cancels the previously
// scheduled one, so a burst of calls closer together than the quiet window
// results in exactly one downstream invocation, carrying the arguments of
// the last Call in the burst.
//
// The invocation is fire-and-forget: the wrapped function's return value, if
// any, is not observable through the Callback.
type Callback struct {
	mu      sync.Mutex
	fn      func(args ...any)
	quiet   time.Duration
	timer   *time.Timer
	gen     uint64
	stopped bool
}

// NewCallback creates a Callback around fn with the given quiet window.
func NewCallback(quiet time.Duration, fn func(args ...any)) *Callback {
	return &Callback{fn: fn, quiet: quiet}
}

// Call schedules a downstream invocation with args after the quiet window,
// replacing any invocation already scheduled. The function that eventually
// fires is the one in effect at the moment of this Call; a later SetFunc
// does not retroactively change an already-scheduled timer.
func (d *Callback) Call(args ...any) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}

	fn := d.fn
	if d.timer != nil {
		d.timer.Stop()
	}
	d.gen++
	gen := d.gen
	d.timer = time.AfterFunc(d.quiet, func() { d.fire(gen, fn, args) })
}

// fire runs the captured function, unless the timer that expired was
// superseded or stopped after scheduling. The function runs outside the
// lock so it may call back into the Callback.
func (d *Callback) fire(gen uint64, fn func(args ...any), args []any) {
	d.mu.Lock()
	if d.stopped || gen != d.gen {
		d.mu.Unlock()
		return
	}
	d.timer = nil
	d.mu.Unlock()

	if fn != nil {
		fn(args...)
	}
}

// SetFunc replaces the wrapped function for subsequent Calls.
func (d *Callback) SetFunc(fn func(args ...any)) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.fn = fn
}

// SetQuiet changes the quiet window for subsequently scheduled timers. A
// timer already running keeps its original duration.
func (d *Callback) SetQuiet(quiet time.Duration) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.quiet = quiet
}

// Pending reports whether an invocation is currently scheduled.
func (d *Callback) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.timer != nil
}

// Stop cancels any scheduled invocation and ignores further Calls. No new
// invocation starts after Stop returns; an invocation whose timer expired
// before Stop, and which already passed the supersession check in fire, runs
// to completion. Callers typically defer it.
func (d *Callback) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
