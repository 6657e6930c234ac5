// Package context carries request-scoped values between the middleware and
// the handlers without leaking http types into either side.
package context

import "context"

type contextKey string

const requestIDKey contextKey = "request_id"

// WithRequestID binds a request ID to the context.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// GetRequestID returns the bound request ID, or "" when there is none.
func GetRequestID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if id, ok := ctx.Value(requestIDKey).(string); ok {
		return id
	}
	return ""
}
