package retry

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/finwire-go/fwf/logger"
)

// State is the observable lifecycle state of an Operation.
type State int

const (
	// StateIdle means the operation has never been invoked, or was reset.
	StateIdle State = iota
	// StateRunning means an invocation is in flight.
	StateRunning
	// StateSucceeded means the most recently settled invocation succeeded.
	StateSucceeded
	// StateFailed means the most recently settled invocation failed.
	StateFailed
)

// String returns the string representation of the state.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Func is the unit of work an Operation wraps. Arguments are forwarded
// verbatim to every attempt of an invocation.
type Func func(ctx context.Context, args ...any) (any, error)

// Operation wraps a unit of work with bounded retry, observable state, and
// terminal-outcome notifications. The zero retry budget makes it a plain
// stateful call wrapper.
//
// Overlapping invocations are allowed; shared state reflects the most
// recently settled one (last-write-wins). Callers needing stronger
// consistency must serialize their invocations.
type Operation struct {
	fn  Func
	cfg config

	mu       sync.Mutex
	state    State
	attempt  int
	result   any
	err      error
	lastArgs []any
	hasArgs  bool
}

// New creates an Operation around fn with the given options.
func New(fn Func, opts ...Option) *Operation {
	cfg := defaultOperationConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.log == nil {
		cfg.log = logger.Default()
	}
	return &Operation{fn: fn, cfg: cfg}
}

// State returns the current lifecycle state.
func (o *Operation) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// Attempt returns the number of retries consumed so far in the current
// invocation. Zero means the first try has not been retried.
func (o *Operation) Attempt() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.attempt
}

// Result returns the value of the most recently settled successful
// invocation, or nil.
func (o *Operation) Result() any {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.result
}

// Err returns the terminal error of the most recently settled failed
// invocation, or nil.
func (o *Operation) Err() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.err
}

// Invoke runs the wrapped function. On retryable failure it waits the
// configured delay and re-runs with the same args until the retry budget is
// exhausted or the condition classifies the error terminal.
//
// The terminal error is returned and also captured into state; panics in the
// wrapped function are recovered and settle the invocation as failed.
// Cancellation of ctx during a delay settles the invocation with the context
// error and emits no notification.
func (o *Operation) Invoke(ctx context.Context, args ...any) (any, error) {
	o.mu.Lock()
	o.lastArgs = append([]any(nil), args...)
	o.hasArgs = true
	o.state = StateRunning
	o.attempt = 0
	o.mu.Unlock()

	ctx = logger.SetOperationID(ctx, logger.NewOperationID())
	log := o.cfg.log.Ctx(ctx)
	start := o.cfg.clock.Now()

	delay := o.cfg.delay
	for attempt := 0; ; attempt++ {
		result, err := o.call(ctx, args)
		if err == nil {
			o.settle(StateSucceeded, result, nil)
			log.Debug("operation succeeded",
				"attempts", attempt+1,
				"elapsed", o.cfg.clock.Now().Sub(start).String(),
			)
			if o.cfg.onSuccess != nil {
				o.cfg.onSuccess(result)
			}
			if o.cfg.notifier != nil && o.cfg.successMessage != "" {
				o.cfg.notifier.Success(ctx, o.cfg.successMessage)
			}
			return result, nil
		}

		if attempt >= o.cfg.maxRetries || !o.cfg.condition(err) {
			o.settle(StateFailed, nil, err)
			log.Error("operation failed",
				"attempts", attempt+1,
				"elapsed", o.cfg.clock.Now().Sub(start).String(),
				"error", err,
			)
			if o.cfg.onError != nil {
				o.cfg.onError(err)
			}
			if o.cfg.notifier != nil && o.cfg.showError {
				o.cfg.notifier.Error(ctx, err, o.cfg.errorContext)
			}
			return nil, err
		}

		o.setRetrying(attempt + 1)
		log.Warn("attempt failed, retrying",
			"attempt", attempt+1,
			"delay", delay.String(),
			"error", err,
		)
		if serr := o.cfg.clock.Sleep(ctx, delay); serr != nil {
			o.settle(StateFailed, nil, serr)
			log.Warn("invocation cancelled during retry delay", "error", serr)
			return nil, serr
		}
		delay = o.nextDelay(delay)
	}
}

// Retry replays the last invocation's argument tuple through the full retry
// policy. Called before any invocation it logs a warning and returns nil,
// nil.
func (o *Operation) Retry(ctx context.Context) (any, error) {
	o.mu.Lock()
	if !o.hasArgs {
		o.mu.Unlock()
		o.cfg.log.Warn("retry requested before any invocation")
		return nil, nil
	}
	args := append([]any(nil), o.lastArgs...)
	o.mu.Unlock()

	return o.Invoke(ctx, args...)
}

// Reset returns the operation to Idle and clears result, error, attempt
// counter, and the stored argument tuple. It does not cancel an in-flight
// invocation; such an invocation's eventual settlement re-populates state.
func (o *Operation) Reset() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.state = StateIdle
	o.attempt = 0
	o.result = nil
	o.err = nil
	o.lastArgs = nil
	o.hasArgs = false
}

// call runs one attempt, converting a panic in the wrapped function into an
// error.
func (o *Operation) call(ctx context.Context, args []any) (result any, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("operation panicked: %v", r)
		}
	}()
	return o.fn(ctx, args...)
}

func (o *Operation) settle(state State, result any, err error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.state = state
	o.result = result
	o.err = err
}

func (o *Operation) setRetrying(attempt int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.state = StateRunning
	o.attempt = attempt
}

func (o *Operation) nextDelay(d time.Duration) time.Duration {
	if o.cfg.backoff <= 1 {
		return d
	}
	return time.Duration(float64(d) * o.cfg.backoff)
}
