// Package requesttime provides middleware that pins request-scoped time.
// Every age evaluation within a single HTTP request that has no explicit
// reference date uses the same "today", even across midnight.
package requesttime

import (
	"net/http"
	"time"

	"ageutil/pkg/requestcontext"
)

// Clock returns the current time.
type Clock func() time.Time

// Middleware captures the current time at the start of the request
// and stores it in the context.
func Middleware(next http.Handler) http.Handler {
	return MiddlewareWithClock(time.Now)(next)
}

// MiddlewareWithClock is Middleware with an injectable clock.
func MiddlewareWithClock(clock Clock) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := requestcontext.WithTime(r.Context(), clock())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
