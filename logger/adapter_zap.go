package logger

import (
	"context"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ZapAdapter implements the Logger interface using go.uber.org/zap as the
// underlying engine.
type ZapAdapter struct {
	logger *zap.Logger
	sugar  *zap.SugaredLogger
}

// NewZapAdapter creates a new logger adapter using zap with JSON encoding,
// service metadata fields, and caller information.
func NewZapAdapter(service, env string, opts ...Option) (*ZapAdapter, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	encoderConfig := zapcore.EncoderConfig{
		TimeKey:       "ts",
		LevelKey:      "level",
		NameKey:       "logger",
		CallerKey:     "caller",
		FunctionKey:   zapcore.OmitKey,
		MessageKey:    "msg",
		StacktraceKey: "stacktrace",
		LineEnding:    zapcore.DefaultLineEnding,
		EncodeLevel:   zapcore.LowercaseLevelEncoder,
		EncodeTime:    zapcore.ISO8601TimeEncoder,
		EncodeCaller:  zapcore.ShortCallerEncoder,
	}

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.AddSync(cfg.GetWriter()),
		toZapLevel(cfg.Level),
	)

	l := zap.New(core,
		zap.Fields(
			zap.String("service", service),
			zap.String("env", env),
		),
		zap.AddCaller(),
		zap.AddStacktrace(zap.ErrorLevel),
	)

	return &ZapAdapter{logger: l, sugar: l.Sugar()}, nil
}

// Debug logs a message at DebugLevel with the given key-value pairs.
func (a *ZapAdapter) Debug(msg string, args ...any) { a.sugar.Debugw(msg, args...) }

// Info logs a message at InfoLevel with the given key-value pairs.
func (a *ZapAdapter) Info(msg string, args ...any) { a.sugar.Infow(msg, args...) }

// Warn logs a message at WarnLevel with the given key-value pairs.
func (a *ZapAdapter) Warn(msg string, args ...any) { a.sugar.Warnw(msg, args...) }

// Error logs a message at ErrorLevel with the given key-value pairs.
func (a *ZapAdapter) Error(msg string, args ...any) { a.sugar.Errorw(msg, args...) }

// With returns a new logger instance with the given key-value pairs added to
// all subsequent records. Non-string keys are converted to "UNKNOWN".
func (a *ZapAdapter) With(args ...any) Logger {
	l := a.logger.With(toZapFields(args)...)
	return &ZapAdapter{logger: l, sugar: l.Sugar()}
}

// Ctx returns a new logger instance enriched with the operation_id from the
// context, if present.
func (a *ZapAdapter) Ctx(ctx context.Context) Logger {
	id := OperationID(ctx)
	if id == "" {
		return a
	}
	l := a.logger.With(zap.String("operation_id", id))
	return &ZapAdapter{logger: l, sugar: l.Sugar()}
}

// toZapLevel converts a logger.Level to the corresponding zapcore.Level.
// Unknown levels default to InfoLevel.
func toZapLevel(l Level) zapcore.Level {
	switch l {
	case DebugLevel:
		return zapcore.DebugLevel
	case InfoLevel:
		return zapcore.InfoLevel
	case WarnLevel:
		return zapcore.WarnLevel
	case ErrorLevel:
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// toZapFields converts a slice of key-value pairs into zap fields. If the
// number of arguments is odd, a "<missing>" value is appended for the last
// key. Non-string keys are converted to "UNKNOWN".
func toZapFields(args []any) []zap.Field {
	if len(args)%2 != 0 {
		args = append(args, "<missing>")
	}
	fields := make([]zap.Field, 0, len(args)/2)
	for i := 0; i < len(args); i += 2 {
		key, ok := args[i].(string)
		if !ok {
			key = "UNKNOWN"
		}
		fields = append(fields, zap.Any(key, args[i+1]))
	}
	return fields
}
