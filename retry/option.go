package retry

import (
	"context"
	"time"

	"github.com/finwire-go/fwf/logger"
)

// Notifier receives user-facing outcome notifications. Implementations must
// be fire-and-forget and must not panic; the notify package provides them.
type Notifier interface {
	Success(ctx context.Context, message string)
	Error(ctx context.Context, err error, opContext string)
}

// Default policy values.
const (
	DefaultDelay = time.Second
)

// config holds all Operation configuration.
type config struct {
	maxRetries int
	delay      time.Duration
	backoff    float64
	condition  Condition
	clock      Clock

	notifier       Notifier
	log            logger.Logger
	onSuccess      func(any)
	onError        func(error)
	successMessage string
	errorContext   string
	showError      bool
}

// Option configures an Operation.
type Option func(*config)

func defaultOperationConfig() config {
	return config{
		maxRetries: 0,
		delay:      DefaultDelay,
		backoff:    1,
		condition:  IsTransient,
		clock:      realClock{},
		showError:  true,
	}
}

// WithMaxRetries sets how many times a failed attempt may be retried.
// Zero (the default) means a single attempt with no retries.
func WithMaxRetries(n int) Option {
	return func(c *config) {
		if n >= 0 {
			c.maxRetries = n
		}
	}
}

// WithDelay sets the pause between attempts.
func WithDelay(d time.Duration) Option {
	return func(c *config) { c.delay = d }
}

// WithBackoff sets a delay multiplier applied after every failed attempt.
// The default is 1 (fixed delay).
func WithBackoff(f float64) Option {
	return func(c *config) { c.backoff = f }
}

// WithCondition sets the predicate that classifies an error as retryable.
// The default is IsTransient.
func WithCondition(cond Condition) Option {
	return func(c *config) { c.condition = cond }
}

// WithNotifier sets the notification sink for terminal outcomes.
// Without one, no notifications are emitted.
func WithNotifier(n Notifier) Option {
	return func(c *config) { c.notifier = n }
}

// WithLogger sets the logger used for retry and warning records.
func WithLogger(l logger.Logger) Option {
	return func(c *config) { c.log = l }
}

// WithClock sets the clock for delay operations. Useful for testing.
func WithClock(clock Clock) Option {
	return func(c *config) { c.clock = clock }
}

// OnSuccess sets a hook fired once per invocation when it settles
// successfully, with the operation's result.
func OnSuccess(fn func(result any)) Option {
	return func(c *config) { c.onSuccess = fn }
}

// OnError sets a hook fired once per invocation when it settles in failure,
// with the terminal error.
func OnError(fn func(err error)) Option {
	return func(c *config) { c.onError = fn }
}

// WithSuccessMessage sets the message for the success notification. Without
// one, success is silent.
func WithSuccessMessage(msg string) Option {
	return func(c *config) { c.successMessage = msg }
}

// WithErrorContext sets the context string passed to the notifier with error
// notifications, typically the user-facing name of the operation.
func WithErrorContext(s string) Option {
	return func(c *config) { c.errorContext = s }
}

// WithoutErrorNotification suppresses the error notification on terminal
// failure. Hooks and state are unaffected.
func WithoutErrorNotification() Option {
	return func(c *config) { c.showError = false }
}
