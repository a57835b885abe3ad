// Package requestcontext carries request-scoped values: the request ID and
// the single "now" every evaluation in one request is measured against.
package requestcontext

import (
	"context"
	"time"

	"ageutil/pkg/calendar"
)

type (
	contextKeyRequestID   struct{}
	contextKeyRequestTime struct{}
)

// WithRequestID stores id in ctx.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, contextKeyRequestID{}, id)
}

// RequestID returns the request ID, or "" outside a request.
func RequestID(ctx context.Context) string {
	if id, ok := ctx.Value(contextKeyRequestID{}).(string); ok {
		return id
	}
	return ""
}

// WithTime injects a specific time into a context.
// Useful for service tests that don't run the HTTP middleware chain and for
// batch work that must share one reference date.
func WithTime(ctx context.Context, t time.Time) context.Context {
	return context.WithValue(ctx, contextKeyRequestTime{}, t)
}

// Now retrieves the request-scoped time from context.
// Falls back to time.Now() if not set.
func Now(ctx context.Context) time.Time {
	if t, ok := ctx.Value(contextKeyRequestTime{}).(time.Time); ok {
		return t
	}
	return time.Now()
}

// Today is the calendar date of Now, used as the default reference date for
// age evaluations.
func Today(ctx context.Context) calendar.Date {
	return calendar.FromTime(Now(ctx))
}
