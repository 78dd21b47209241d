package retry_test

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finwire-go/fwf/logger"
	"github.com/finwire-go/fwf/retry"
)

// fakeClock records requested sleeps and advances its notion of now by the
// slept duration instead of blocking.
type fakeClock struct {
	mu     sync.Mutex
	now    time.Time
	sleeps []time.Duration
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Sleep(_ context.Context, d time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
	c.sleeps = append(c.sleeps, d)
	return nil
}

func (c *fakeClock) slept() []time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]time.Duration(nil), c.sleeps...)
}

// recorder captures notifications for assertions.
type recorder struct {
	mu        sync.Mutex
	successes []string
	failures  []string
}

func (r *recorder) Success(_ context.Context, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.successes = append(r.successes, message)
}

func (r *recorder) Error(_ context.Context, _ error, opContext string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failures = append(r.failures, opContext)
}

func TestInvoke_ExhaustsRetries(t *testing.T) {
	calls := 0
	op := retry.New(
		func(ctx context.Context, args ...any) (any, error) {
			calls++
			return nil, errors.New("connection refused")
		},
		retry.WithMaxRetries(2),
		retry.WithDelay(10*time.Millisecond),
		retry.WithClock(&fakeClock{}),
	)

	result, err := op.Invoke(context.Background())
	require.Error(t, err)
	assert.Nil(t, result)
	assert.Equal(t, 3, calls)
	assert.Equal(t, retry.StateFailed, op.State())
	assert.Equal(t, 2, op.Attempt())
}

func TestInvoke_ExactlyOneErrorNotification(t *testing.T) {
	rec := &recorder{}
	op := retry.New(
		func(ctx context.Context, args ...any) (any, error) {
			return nil, errors.New("connection refused")
		},
		retry.WithMaxRetries(3),
		retry.WithClock(&fakeClock{}),
		retry.WithNotifier(rec),
		retry.WithErrorContext("loading accounts"),
	)

	_, err := op.Invoke(context.Background())
	require.Error(t, err)
	assert.Empty(t, rec.successes)
	require.Len(t, rec.failures, 1)
	assert.Equal(t, "loading accounts", rec.failures[0])
}

func TestInvoke_EventuallySucceeds(t *testing.T) {
	rec := &recorder{}
	calls := 0
	op := retry.New(
		func(ctx context.Context, args ...any) (any, error) {
			calls++
			if calls == 1 {
				return nil, errors.New("timeout")
			}
			return "ok", nil
		},
		retry.WithMaxRetries(3),
		retry.WithClock(&fakeClock{}),
		retry.WithNotifier(rec),
		retry.WithSuccessMessage("accounts loaded"),
	)

	result, err := op.Invoke(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ok", result)
	assert.Equal(t, 2, calls)
	assert.Equal(t, retry.StateSucceeded, op.State())
	assert.Equal(t, []string{"accounts loaded"}, rec.successes)
	assert.Empty(t, rec.failures)
}

func TestInvoke_PermanentErrorNotRetried(t *testing.T) {
	calls := 0
	op := retry.New(
		func(ctx context.Context, args ...any) (any, error) {
			calls++
			return nil, retry.Permanent(errors.New("currency code is required"))
		},
		retry.WithMaxRetries(5),
		retry.WithClock(&fakeClock{}),
	)

	_, err := op.Invoke(context.Background())
	require.Error(t, err)
	assert.Equal(t, 1, calls)
	assert.Equal(t, retry.StateFailed, op.State())
	assert.Equal(t, 0, op.Attempt())
}

func TestInvoke_ClientStatusNotRetried(t *testing.T) {
	calls := 0
	op := retry.New(
		func(ctx context.Context, args ...any) (any, error) {
			calls++
			return nil, &retry.StatusError{Code: 422, Message: "validation failed"}
		},
		retry.WithMaxRetries(5),
		retry.WithClock(&fakeClock{}),
	)

	_, err := op.Invoke(context.Background())
	require.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestRetry_BeforeInvoke(t *testing.T) {
	op := retry.New(func(ctx context.Context, args ...any) (any, error) {
		t.Fatal("operation must not run")
		return nil, nil
	})

	result, err := op.Retry(context.Background())
	assert.NoError(t, err)
	assert.Nil(t, result)
	assert.Equal(t, retry.StateIdle, op.State())
}

func TestRetry_ReplaysLastArguments(t *testing.T) {
	var seen [][]any
	op := retry.New(func(ctx context.Context, args ...any) (any, error) {
		seen = append(seen, args)
		return len(args), nil
	})

	_, err := op.Invoke(context.Background(), "securities", 42)
	require.NoError(t, err)

	_, err = op.Retry(context.Background())
	require.NoError(t, err)

	require.Len(t, seen, 2)
	assert.Equal(t, seen[0], seen[1])
	assert.Equal(t, []any{"securities", 42}, seen[1])
}

func TestInvoke_FetchPageScenario(t *testing.T) {
	clock := &fakeClock{}
	calls := 0
	var states []retry.State
	var attempts []int

	var op *retry.Operation
	fetchPage := func(ctx context.Context, args ...any) (any, error) {
		states = append(states, op.State())
		attempts = append(attempts, op.Attempt())
		calls++
		if calls <= 2 {
			return nil, errors.New("connection reset")
		}
		return "ok", nil
	}
	op = retry.New(fetchPage,
		retry.WithMaxRetries(2),
		retry.WithDelay(100*time.Millisecond),
		retry.WithClock(clock),
	)

	result, err := op.Invoke(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "ok", result)

	assert.Equal(t, []retry.State{retry.StateRunning, retry.StateRunning, retry.StateRunning}, states)
	assert.Equal(t, []int{0, 1, 2}, attempts)
	assert.Equal(t, retry.StateSucceeded, op.State())

	slept := clock.slept()
	require.Len(t, slept, 2)
	var total time.Duration
	for _, d := range slept {
		total += d
	}
	assert.GreaterOrEqual(t, total, 200*time.Millisecond)
}

func TestInvoke_BackoffMultipliesDelay(t *testing.T) {
	clock := &fakeClock{}
	op := retry.New(
		func(ctx context.Context, args ...any) (any, error) {
			return nil, errors.New("unavailable")
		},
		retry.WithMaxRetries(2),
		retry.WithDelay(100*time.Millisecond),
		retry.WithBackoff(2),
		retry.WithClock(clock),
	)

	_, err := op.Invoke(context.Background())
	require.Error(t, err)
	assert.Equal(t, []time.Duration{100 * time.Millisecond, 200 * time.Millisecond}, clock.slept())
}

func TestInvoke_PanicCaptured(t *testing.T) {
	op := retry.New(func(ctx context.Context, args ...any) (any, error) {
		panic("nil dereference in decoder")
	})

	result, err := op.Invoke(context.Background())
	require.Error(t, err)
	assert.Nil(t, result)
	assert.Contains(t, err.Error(), "operation panicked")
	assert.Equal(t, retry.StateFailed, op.State())
}

func TestInvoke_CancelledDuringDelay(t *testing.T) {
	rec := &recorder{}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	op := retry.New(
		func(ctx context.Context, args ...any) (any, error) {
			return nil, errors.New("timeout")
		},
		retry.WithMaxRetries(3),
		retry.WithDelay(time.Second),
		retry.WithNotifier(rec),
	)

	_, err := op.Invoke(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, retry.StateFailed, op.State())
	assert.Empty(t, rec.failures)
	assert.Empty(t, rec.successes)
}

func TestInvoke_ErrorNotificationSuppressed(t *testing.T) {
	rec := &recorder{}
	var hooked error
	op := retry.New(
		func(ctx context.Context, args ...any) (any, error) {
			return nil, errors.New("unavailable")
		},
		retry.WithClock(&fakeClock{}),
		retry.WithNotifier(rec),
		retry.WithoutErrorNotification(),
		retry.OnError(func(err error) { hooked = err }),
	)

	_, err := op.Invoke(context.Background())
	require.Error(t, err)
	assert.Empty(t, rec.failures)
	assert.Equal(t, err, hooked)
}

func TestReset_ClearsStateAndArguments(t *testing.T) {
	op := retry.New(func(ctx context.Context, args ...any) (any, error) {
		return nil, errors.New("unavailable")
	})

	_, err := op.Invoke(context.Background(), "accounts")
	require.Error(t, err)
	require.Equal(t, retry.StateFailed, op.State())

	op.Reset()
	assert.Equal(t, retry.StateIdle, op.State())
	assert.NoError(t, op.Err())
	assert.Nil(t, op.Result())
	assert.Equal(t, 0, op.Attempt())

	// The replay slot is gone too.
	result, err := op.Retry(context.Background())
	assert.NoError(t, err)
	assert.Nil(t, result)
}

func TestInvoke_LogsElapsedTime(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewZerologAdapter("retry-test", "test", logger.WithWriter(&buf))
	op := retry.New(
		func(ctx context.Context, args ...any) (any, error) {
			return nil, errors.New("unavailable")
		},
		retry.WithMaxRetries(2),
		retry.WithDelay(100*time.Millisecond),
		retry.WithClock(&fakeClock{}),
		retry.WithLogger(log),
	)

	_, err := op.Invoke(context.Background())
	require.Error(t, err)
	assert.Contains(t, buf.String(), "operation failed")
	// Two retry delays of 100ms each on the fake clock.
	assert.Contains(t, buf.String(), `"elapsed":"200ms"`)
}

func TestInvoke_OverlappingLastWriteWins(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	op := retry.New(func(ctx context.Context, args ...any) (any, error) {
		if args[0] == "slow" {
			close(started)
			<-release
		}
		return args[0], nil
	})

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, err := op.Invoke(context.Background(), "slow")
		assert.NoError(t, err)
	}()
	<-started

	// A second invocation settles while the first is still in flight.
	result, err := op.Invoke(context.Background(), "fast")
	require.NoError(t, err)
	assert.Equal(t, "fast", result)
	assert.Equal(t, "fast", op.Result())

	// Once the first invocation settles, its result wins.
	close(release)
	<-done
	assert.Equal(t, retry.StateSucceeded, op.State())
	assert.Equal(t, "slow", op.Result())
}

func TestReset_InFlightSettlementRepopulatesState(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	op := retry.New(func(ctx context.Context, args ...any) (any, error) {
		close(started)
		<-release
		return "late", nil
	})

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, err := op.Invoke(context.Background())
		assert.NoError(t, err)
	}()
	<-started

	op.Reset()
	assert.Equal(t, retry.StateIdle, op.State())
	assert.Nil(t, op.Result())

	close(release)
	<-done
	assert.Equal(t, retry.StateSucceeded, op.State())
	assert.Equal(t, "late", op.Result())
}

func TestInvoke_SuccessHookReceivesResult(t *testing.T) {
	var got any
	op := retry.New(
		func(ctx context.Context, args ...any) (any, error) {
			return 1250, nil
		},
		retry.OnSuccess(func(result any) { got = result }),
	)

	result, err := op.Invoke(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1250, result)
	assert.Equal(t, 1250, got)
	assert.Equal(t, 1250, op.Result())
}
