package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finwire-go/fwf/logger"
	"github.com/finwire-go/fwf/retry"
)

func bufferLogger(buf *bytes.Buffer) logger.Logger {
	return logger.NewZerologAdapter("notify-test", "test", logger.WithWriter(buf))
}

func TestEmitter_PublishesEventPayload(t *testing.T) {
	var published []byte
	var key string
	e := emitter{
		publish: func(_ context.Context, k string, body []byte) error {
			key = k
			published = body
			return nil
		},
		log:     bufferLogger(&bytes.Buffer{}),
		backend: KafkaBackend,
	}

	e.Error(context.Background(), errors.New("connection refused"), "loading accounts")

	require.NotNil(t, published)
	assert.Equal(t, LevelError, key)

	var ev Event
	require.NoError(t, json.Unmarshal(published, &ev))
	assert.Equal(t, LevelError, ev.Level)
	assert.Equal(t, "loading accounts failed", ev.Message)
	assert.Equal(t, "loading accounts", ev.Context)
	assert.Equal(t, "connection refused", ev.Error)
	assert.False(t, ev.At.IsZero())
}

func TestEmitter_RetriesPublish(t *testing.T) {
	calls := 0
	e := emitter{
		publish: func(context.Context, string, []byte) error {
			calls++
			if calls < 3 {
				return errors.New("broker unavailable")
			}
			return nil
		},
		strat:   retry.Strategy{Attempts: 3, Delay: time.Millisecond},
		log:     bufferLogger(&bytes.Buffer{}),
		backend: RedisBackend,
	}

	e.Success(context.Background(), "account saved")
	assert.Equal(t, 3, calls)
}

func TestEmitter_DropsAndLogsAfterExhaustion(t *testing.T) {
	var buf bytes.Buffer
	e := emitter{
		publish: func(context.Context, string, []byte) error {
			return errors.New("broker unavailable")
		},
		strat:   retry.Strategy{Attempts: 2, Delay: time.Millisecond},
		log:     bufferLogger(&buf),
		backend: RabbitBackend,
	}

	e.Success(context.Background(), "account saved")
	assert.Contains(t, buf.String(), "notification publish failed")
	assert.Contains(t, buf.String(), string(RabbitBackend))
}

func TestEmitter_RecoversPublishPanic(t *testing.T) {
	var buf bytes.Buffer
	e := emitter{
		publish: func(context.Context, string, []byte) error {
			panic("writer closed")
		},
		log:     bufferLogger(&buf),
		backend: KafkaBackend,
	}

	assert.NotPanics(t, func() {
		e.Error(context.Background(), errors.New("boom"), "saving currency")
	})
	assert.Contains(t, buf.String(), "notification publish panicked")
}
