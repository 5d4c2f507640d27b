package log

import (
	"context"

	"github.com/google/uuid"
)

type callIDKey struct{}

// WithCallID attaches a call ID to ctx. An empty id generates a new one.
func WithCallID(ctx context.Context, id string) context.Context {
	if id == "" {
		id = uuid.NewString()
	}
	return context.WithValue(ctx, callIDKey{}, id)
}

// CallID returns the call ID stored in ctx, if any.
func CallID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(callIDKey{}).(string)
	return id
}
