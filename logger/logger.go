// Package logger provides a unified, structured logging interface with
// support for multiple underlying engines (zerolog, zap, logrus, slog). It
// gives the toolkit's packages one leveled key-value logging surface while
// allowing runtime engine selection.
package logger

import "context"

// Level represents the severity of a log record.
type Level int

// Engine represents a supported underlying logging implementation.
type Engine string

const (
	// ZerologEngine selects the github.com/rs/zerolog logger.
	ZerologEngine Engine = "zerolog"
	// ZapEngine selects the go.uber.org/zap logger.
	ZapEngine Engine = "zap"
	// LogrusEngine selects the github.com/sirupsen/logrus logger.
	LogrusEngine Engine = "logrus"
	// SlogEngine selects the stdlib log/slog logger.
	SlogEngine Engine = "slog"
)

const (
	// DebugLevel is the most verbose level, typically used for development.
	DebugLevel Level = iota
	// InfoLevel is the default logging level for general operational information.
	InfoLevel
	// WarnLevel indicates unexpected or unusual events that are not errors.
	WarnLevel
	// ErrorLevel indicates serious errors that require attention.
	ErrorLevel
)

// Logger defines a unified interface for structured logging across multiple
// engines. Variadic args are alternating key-value pairs.
type Logger interface {
	// Debug logs a message at DebugLevel.
	Debug(msg string, args ...any)
	// Info logs a message at InfoLevel.
	Info(msg string, args ...any)
	// Warn logs a message at WarnLevel.
	Warn(msg string, args ...any)
	// Error logs a message at ErrorLevel.
	Error(msg string, args ...any)

	// With returns a new logger instance with the given key-value pairs
	// added to all subsequent records.
	With(args ...any) Logger
	// Ctx returns a new logger instance enriched with values from the
	// provided context (operation_id), if present.
	Ctx(ctx context.Context) Logger
}

// New initializes a logger instance for the given engine, service name, and
// environment. It applies optional configuration via functional options.
// Returns an error only for engines that require explicit initialization
// (currently zap).
func New(engine Engine, service, env string, opts ...Option) (Logger, error) {
	switch engine {
	case ZapEngine:
		return NewZapAdapter(service, env, opts...)
	case LogrusEngine:
		return NewLogrusAdapter(service, env, opts...), nil
	case SlogEngine:
		return NewSlogAdapter(service, env, opts...), nil
	case ZerologEngine:
		return NewZerologAdapter(service, env, opts...), nil
	default:
		return NewZerologAdapter(service, env, opts...), nil
	}
}

// Default returns the zerolog-backed logger the toolkit falls back to when a
// caller injects nothing.
func Default() Logger {
	return NewZerologAdapter("fwf", "dev")
}

// String returns the string representation of the log level.
func (l Level) String() string {
	switch l {
	case DebugLevel:
		return "DEBUG"
	case InfoLevel:
		return "INFO"
	case WarnLevel:
		return "WARN"
	case ErrorLevel:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel converts a level name ("debug", "info", "warn", "error") to a
// Level. Unknown names map to InfoLevel.
func ParseLevel(s string) Level {
	switch s {
	case "debug":
		return DebugLevel
	case "warn":
		return WarnLevel
	case "error":
		return ErrorLevel
	default:
		return InfoLevel
	}
}
