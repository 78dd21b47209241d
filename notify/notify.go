// Package notify delivers user-facing outcome notifications (toasts) from
// the retry primitives to the web tier. A Notifier is fire-and-forget: it
// never returns an error to the caller and never panics; delivery failures
// are logged and dropped.
//
// Backends: structured log lines (default), Kafka topic, RabbitMQ exchange,
// Redis pub/sub channel, or discard.
package notify

import (
	"context"
	"encoding/json"
	"time"

	"github.com/finwire-go/fwf/logger"
	"github.com/finwire-go/fwf/retry"
)

// Backend represents a supported notification delivery mechanism.
type Backend string

const (
	// LogBackend writes notifications as structured log lines.
	LogBackend Backend = "log"
	// KafkaBackend publishes notification events to a Kafka topic.
	KafkaBackend Backend = "kafka"
	// RabbitBackend publishes notification events to a RabbitMQ exchange.
	RabbitBackend Backend = "rabbit"
	// RedisBackend publishes notification events over Redis pub/sub.
	RedisBackend Backend = "redis"
	// NoopBackend discards notifications.
	NoopBackend Backend = "noop"
)

// Event levels.
const (
	LevelSuccess = "success"
	LevelError   = "error"
)

// Event is the wire payload a broker backend publishes for each
// notification. The web tier renders it as a toast.
type Event struct {
	Level   string    `json:"level"`
	Message string    `json:"message"`
	Context string    `json:"context,omitempty"`
	Error   string    `json:"error,omitempty"`
	At      time.Time `json:"at"`
}

// Notifier receives user-facing outcome notifications.
type Notifier interface {
	// Success reports a successful outcome with a user-facing message.
	Success(ctx context.Context, message string)
	// Error reports a failed outcome. opContext names the operation the
	// user was performing, e.g. "loading accounts".
	Error(ctx context.Context, err error, opContext string)
}

// Config selects and parameterizes a notification backend.
type Config struct {
	// Backend selects the delivery mechanism. Empty selects LogBackend.
	Backend Backend
	// Logger is used for delivery failures and by LogBackend. Defaults to
	// logger.Default().
	Logger logger.Logger
	// Strategy is the publish retry strategy for broker backends.
	// The zero value means a single publish attempt.
	Strategy retry.Strategy

	// KafkaBrokers and KafkaTopic configure KafkaBackend.
	KafkaBrokers []string
	KafkaTopic   string

	// RabbitURL and RabbitExchange configure RabbitBackend.
	RabbitURL      string
	RabbitExchange string

	// RedisAddr, RedisPassword, RedisDB, and RedisChannel configure
	// RedisBackend.
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisChannel  string
}

// New creates a Notifier for the configured backend. Returns an error only
// for backends that establish connections (currently rabbit).
func New(cfg Config) (Notifier, error) {
	if cfg.Logger == nil {
		cfg.Logger = logger.Default()
	}
	switch cfg.Backend {
	case KafkaBackend:
		return NewKafka(cfg.KafkaBrokers, cfg.KafkaTopic, cfg.Logger, cfg.Strategy), nil
	case RabbitBackend:
		return NewRabbit(cfg.RabbitURL, cfg.RabbitExchange, cfg.Logger, cfg.Strategy)
	case RedisBackend:
		return NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.RedisChannel, cfg.Logger, cfg.Strategy), nil
	case NoopBackend:
		return Noop{}, nil
	case LogBackend:
		return NewLog(cfg.Logger), nil
	default:
		return NewLog(cfg.Logger), nil
	}
}

// successEvent builds the payload for a success notification.
func successEvent(message string) Event {
	return Event{Level: LevelSuccess, Message: message, At: time.Now().UTC()}
}

// errorEvent builds the payload for an error notification.
func errorEvent(err error, opContext string) Event {
	msg := "operation failed"
	if opContext != "" {
		msg = opContext + " failed"
	}
	e := Event{Level: LevelError, Message: msg, Context: opContext, At: time.Now().UTC()}
	if err != nil {
		e.Error = err.Error()
	}
	return e
}

// publishFunc sends one encoded event to a broker.
type publishFunc func(ctx context.Context, key string, body []byte) error

// emitter is the shared broker-backend core: it encodes the event and
// publishes it with the configured retry strategy, logging and dropping
// failures.
type emitter struct {
	publish publishFunc
	strat   retry.Strategy
	log     logger.Logger
	backend Backend
}

func (e emitter) emit(ctx context.Context, ev Event) {
	defer func() {
		if r := recover(); r != nil {
			e.log.Error("notification publish panicked", "backend", string(e.backend), "panic", r)
		}
	}()

	body, err := json.Marshal(ev)
	if err != nil {
		e.log.Error("notification encode failed", "backend", string(e.backend), "error", err)
		return
	}
	err = retry.DoContext(ctx, e.strat, func() error {
		return e.publish(ctx, ev.Level, body)
	})
	if err != nil {
		e.log.Error("notification publish failed",
			"backend", string(e.backend),
			"level", ev.Level,
			"error", err,
		)
	}
}

func (e emitter) Success(ctx context.Context, message string) {
	e.emit(ctx, successEvent(message))
}

func (e emitter) Error(ctx context.Context, err error, opContext string) {
	e.emit(ctx, errorEvent(err, opContext))
}
