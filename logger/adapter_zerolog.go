package logger

import (
	"context"

	"github.com/rs/zerolog"
)

// ZerologAdapter implements the Logger interface using github.com/rs/zerolog
// as the underlying engine.
type ZerologAdapter struct {
	logger zerolog.Logger
}

// NewZerologAdapter creates a new logger instance using zerolog,
// pre-configured with timestamp, service name, and environment fields.
func NewZerologAdapter(service, env string, opts ...Option) *ZerologAdapter {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	l := zerolog.New(cfg.GetWriter()).Level(toZerologLevel(cfg.Level)).With().
		Timestamp().
		Str("service", service).
		Str("env", env).
		Logger()
	return &ZerologAdapter{logger: l}
}

// Debug logs a message at DebugLevel with the given key-value pairs.
func (a *ZerologAdapter) Debug(msg string, args ...any) { a.logger.Debug().Fields(args).Msg(msg) }

// Info logs a message at InfoLevel with the given key-value pairs.
func (a *ZerologAdapter) Info(msg string, args ...any) { a.logger.Info().Fields(args).Msg(msg) }

// Warn logs a message at WarnLevel with the given key-value pairs.
func (a *ZerologAdapter) Warn(msg string, args ...any) { a.logger.Warn().Fields(args).Msg(msg) }

// Error logs a message at ErrorLevel with the given key-value pairs.
func (a *ZerologAdapter) Error(msg string, args ...any) { a.logger.Error().Fields(args).Msg(msg) }

// With returns a new logger instance with the given key-value pairs added to
// all subsequent records.
func (a *ZerologAdapter) With(args ...any) Logger {
	return &ZerologAdapter{logger: a.logger.With().Fields(args).Logger()}
}

// Ctx returns a new logger instance enriched with the operation_id from the
// context, if present.
func (a *ZerologAdapter) Ctx(ctx context.Context) Logger {
	id := OperationID(ctx)
	if id == "" {
		return a
	}
	return &ZerologAdapter{logger: a.logger.With().Str("operation_id", id).Logger()}
}

// toZerologLevel converts a logger.Level to the corresponding zerolog.Level.
// Unknown levels default to InfoLevel.
func toZerologLevel(l Level) zerolog.Level {
	switch l {
	case DebugLevel:
		return zerolog.DebugLevel
	case InfoLevel:
		return zerolog.InfoLevel
	case WarnLevel:
		return zerolog.WarnLevel
	case ErrorLevel:
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
