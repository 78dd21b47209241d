// Package debounce provides trailing-edge suppression primitives: Value
// delays propagation of a changing value and Callback delays a requested
// call until a quiet period elapses, discarding everything observed in
// between.
//
// Both primitives share the same timer state machine: the first event
// schedules a timer, every further event within the quiet window cancels and
// reschedules it, and Stop cancels it for good. Timers never stack.
package debounce

import (
	"sync"
	"time"
)

// Value debounces a changing value. Current returns the last value that
// survived a full quiet period; values replaced within the window are never
// observed by readers.
type Value[T any] struct {
	mu      sync.Mutex
	current T
	pending T
	quiet   time.Duration
	timer   *time.Timer
	gen     uint64
	stopped bool
}

// NewValue creates a Value holding initial, with the given quiet window.
// The construction-time value is visible immediately.
func NewValue[T any](initial T, quiet time.Duration) *Value[T] {
	return &Value[T]{current: initial, pending: initial, quiet: quiet}
}

// Observe records v as the pending value and restarts the quiet timer. If
// the timer fires with no intervening Observe, v becomes the current value.
func (d *Value[T]) Observe(v T) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}

	d.pending = v
	if d.timer != nil {
		d.timer.Stop()
	}
	d.gen++
	gen := d.gen
	d.timer = time.AfterFunc(d.quiet, func() { d.commit(gen) })
}

// commit publishes the pending value, unless the timer that fired was
// superseded or stopped after scheduling.
func (d *Value[T]) commit(gen uint64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped || gen != d.gen {
		return
	}
	d.current = d.pending
	d.timer = nil
}

// Current returns the last value that survived a full quiet period.
func (d *Value[T]) Current() T {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.current
}

// SetQuiet changes the quiet window for subsequently scheduled timers. A
// timer already running keeps its original duration.
func (d *Value[T]) SetQuiet(quiet time.Duration) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.quiet = quiet
}

// Stop cancels any pending update. No update occurs after Stop returns, and
// further Observe calls are ignored. Callers typically defer it.
func (d *Value[T]) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
