package logger

import (
	"context"
	"log/slog"
)

// SlogAdapter implements the Logger interface using the stdlib log/slog
// package as the underlying engine.
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter creates a new logger instance using slog with a JSON
// handler and service metadata fields.
func NewSlogAdapter(service, env string, opts ...Option) *SlogAdapter {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	handler := slog.NewJSONHandler(cfg.GetWriter(), &slog.HandlerOptions{
		Level: toSlogLevel(cfg.Level),
	})
	return &SlogAdapter{logger: slog.New(handler).With(
		"service", service,
		"env", env,
	)}
}

// Debug logs a message at DebugLevel with the given key-value pairs.
func (a *SlogAdapter) Debug(msg string, args ...any) { a.logger.Debug(msg, args...) }

// Info logs a message at InfoLevel with the given key-value pairs.
func (a *SlogAdapter) Info(msg string, args ...any) { a.logger.Info(msg, args...) }

// Warn logs a message at WarnLevel with the given key-value pairs.
func (a *SlogAdapter) Warn(msg string, args ...any) { a.logger.Warn(msg, args...) }

// Error logs a message at ErrorLevel with the given key-value pairs.
func (a *SlogAdapter) Error(msg string, args ...any) { a.logger.Error(msg, args...) }

// With returns a new logger instance with the given key-value pairs added to
// all subsequent records.
func (a *SlogAdapter) With(args ...any) Logger {
	return &SlogAdapter{logger: a.logger.With(args...)}
}

// Ctx returns a new logger instance enriched with the operation_id from the
// context, if present.
func (a *SlogAdapter) Ctx(ctx context.Context) Logger {
	id := OperationID(ctx)
	if id == "" {
		return a
	}
	return &SlogAdapter{logger: a.logger.With("operation_id", id)}
}

// toSlogLevel converts a logger.Level to the corresponding slog.Level.
// Unknown levels default to slog.LevelInfo.
func toSlogLevel(l Level) slog.Level {
	switch l {
	case DebugLevel:
		return slog.LevelDebug
	case InfoLevel:
		return slog.LevelInfo
	case WarnLevel:
		return slog.LevelWarn
	case ErrorLevel:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
