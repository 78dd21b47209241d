// Package retry provides bounded retry primitives: a plain retry loop for
// one-shot calls (Do, DoContext) and a stateful Operation wrapper that tracks
// attempts, exposes an observable state machine, and reports terminal
// outcomes through a notification sink.
package retry

import (
	"context"
	"time"
)

// Strategy defines the retry behavior for the package-level helpers.
type Strategy struct {
	// Attempts is the total number of tries, including the first one.
	// Values below 1 are treated as 1.
	Attempts int
	// Delay is the pause before the first retry.
	Delay time.Duration
	// Backoff multiplies the delay after every failed attempt.
	// Values below 1 are treated as 1 (fixed delay).
	Backoff float64
}

// next returns the delay to use after the given delay has been consumed.
func (s Strategy) next(d time.Duration) time.Duration {
	if s.Backoff <= 1 {
		return d
	}
	return time.Duration(float64(d) * s.Backoff)
}

// Do executes fn until it succeeds or the strategy's attempts are exhausted.
// It returns nil on the first success, otherwise the last error observed.
func Do(fn func() error, strat Strategy) error {
	return DoContext(context.Background(), strat, fn)
}

// DoContext executes fn with the given strategy, sleeping between attempts.
// The sleep is interrupted by ctx; in that case the context error is
// returned and no further attempts are made.
func DoContext(ctx context.Context, strat Strategy, fn func() error) error {
	attempts := strat.Attempts
	if attempts < 1 {
		attempts = 1
	}

	delay := strat.Delay
	var err error
	for i := 0; i < attempts; i++ {
		if err = fn(); err == nil {
			return nil
		}
		if i == attempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
		delay = strat.next(delay)
	}
	return err
}
