package notify

import (
	"context"

	"github.com/finwire-go/fwf/logger"
)

// LogNotifier writes notifications as structured log lines. It is the
// default backend and the usual choice for development environments.
type LogNotifier struct {
	log logger.Logger
}

// NewLog creates a LogNotifier writing through l.
func NewLog(l logger.Logger) *LogNotifier {
	if l == nil {
		l = logger.Default()
	}
	return &LogNotifier{log: l}
}

// Success logs the message at info level.
func (n *LogNotifier) Success(ctx context.Context, message string) {
	n.log.Ctx(ctx).Info("notification", "level", LevelSuccess, "message", message)
}

// Error logs the failure at error level.
func (n *LogNotifier) Error(ctx context.Context, err error, opContext string) {
	ev := errorEvent(err, opContext)
	n.log.Ctx(ctx).Error("notification",
		"level", LevelError,
		"message", ev.Message,
		"context", ev.Context,
		"error", ev.Error,
	)
}

// Noop discards all notifications.
type Noop struct{}

// Success discards the notification.
func (Noop) Success(ctx context.Context, message string) {}

// Error discards the notification.
func (Noop) Error(ctx context.Context, err error, opContext string) {}
