package logger

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
)

// LogrusAdapter implements the Logger interface using
// github.com/sirupsen/logrus as the underlying engine.
type LogrusAdapter struct {
	entry *logrus.Entry
}

// NewLogrusAdapter creates a new logger instance using logrus with JSON
// formatting and service metadata fields.
func NewLogrusAdapter(service, env string, opts ...Option) *LogrusAdapter {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	l := logrus.New()
	l.SetOutput(cfg.GetWriter())
	l.SetFormatter(&logrus.JSONFormatter{})
	l.SetLevel(toLogrusLevel(cfg.Level))

	return &LogrusAdapter{entry: l.WithFields(logrus.Fields{
		"service": service,
		"env":     env,
	})}
}

// Debug logs a message at DebugLevel with the given key-value pairs.
func (a *LogrusAdapter) Debug(msg string, args ...any) {
	a.entry.WithFields(toLogrusFields(args)).Debug(msg)
}

// Info logs a message at InfoLevel with the given key-value pairs.
func (a *LogrusAdapter) Info(msg string, args ...any) {
	a.entry.WithFields(toLogrusFields(args)).Info(msg)
}

// Warn logs a message at WarnLevel with the given key-value pairs.
func (a *LogrusAdapter) Warn(msg string, args ...any) {
	a.entry.WithFields(toLogrusFields(args)).Warn(msg)
}

// Error logs a message at ErrorLevel with the given key-value pairs.
func (a *LogrusAdapter) Error(msg string, args ...any) {
	a.entry.WithFields(toLogrusFields(args)).Error(msg)
}

// With returns a new logger instance with the given key-value pairs added to
// all subsequent records.
func (a *LogrusAdapter) With(args ...any) Logger {
	return &LogrusAdapter{entry: a.entry.WithFields(toLogrusFields(args))}
}

// Ctx returns a new logger instance enriched with the operation_id from the
// context, if present.
func (a *LogrusAdapter) Ctx(ctx context.Context) Logger {
	id := OperationID(ctx)
	if id == "" {
		return a
	}
	return &LogrusAdapter{entry: a.entry.WithField("operation_id", id)}
}

// toLogrusLevel converts a logger.Level to the corresponding logrus.Level.
// Unknown levels default to InfoLevel.
func toLogrusLevel(l Level) logrus.Level {
	switch l {
	case DebugLevel:
		return logrus.DebugLevel
	case InfoLevel:
		return logrus.InfoLevel
	case WarnLevel:
		return logrus.WarnLevel
	case ErrorLevel:
		return logrus.ErrorLevel
	default:
		return logrus.InfoLevel
	}
}

// toLogrusFields converts a slice of key-value pairs into logrus.Fields.
// Non-string keys are stringified with fmt.Sprint.
func toLogrusFields(args []any) logrus.Fields {
	if len(args)%2 != 0 {
		args = append(args, "<missing>")
	}
	fields := make(logrus.Fields, len(args)/2)
	for i := 0; i < len(args); i += 2 {
		key, ok := args[i].(string)
		if !ok {
			key = fmt.Sprint(args[i])
		}
		fields[key] = args[i+1]
	}
	return fields
}
