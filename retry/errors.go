package retry

import (
	"context"
	"errors"
	"fmt"
)

// Condition determines whether an error should be retried.
type Condition func(error) bool

// temporary is the structural shape an error can implement to control its
// own retryability. net.Error and context deadline errors satisfy it.
type temporary interface {
	Temporary() bool
}

// permanentError wraps an error to mark it as terminal for retry purposes.
type permanentError struct {
	error
}

func (e *permanentError) Temporary() bool { return false }

func (e *permanentError) Unwrap() error { return e.error }

// Permanent wraps err so the retry loop stops immediately without further
// attempts, regardless of the remaining retry budget. Use it for validation
// and business-rule failures where retrying cannot help.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return &permanentError{err}
}

// StatusError is a failure carrying an HTTP-like status code, the structured
// client-error shape produced by the API layer.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("status %d", e.Code)
	}
	return fmt.Sprintf("status %d: %s", e.Code, e.Message)
}

// Temporary reports whether the status code indicates a transient condition.
// Throttling and server-side failures are transient; other client errors
// (validation, auth, not-found) are not.
func (e *StatusError) Temporary() bool {
	switch e.Code {
	case 429, 500, 502, 503, 504:
		return true
	default:
		return false
	}
}

// IsTransient is the default retry condition. An error is transient unless a
// structured shape in its chain says otherwise: errors marked Permanent,
// client-error statuses, and cancellation of the invocation's own context
// are terminal. Everything else (network failures, timeouts, plain errors)
// is assumed retryable.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var t temporary
	if errors.As(err, &t) {
		return t.Temporary()
	}
	return true
}
