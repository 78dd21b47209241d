package logger

import (
	"context"

	"github.com/google/uuid"
)

// contextKey is a private type used to avoid key collisions in context.WithValue.
type contextKey struct{}

var operationIDKey = contextKey{}

// SetOperationID stores the given operation ID in the context. The ID is used
// to correlate log records from a single logical operation, such as one
// retried invocation.
func SetOperationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, operationIDKey, id)
}

// OperationID retrieves the operation ID from the context. Returns an empty
// string if none is present.
func OperationID(ctx context.Context) string {
	if id, ok := ctx.Value(operationIDKey).(string); ok {
		return id
	}
	return ""
}

// NewOperationID creates a new globally unique identifier (UUID v4) for use
// as an operation ID.
func NewOperationID() string {
	return uuid.New().String()
}
