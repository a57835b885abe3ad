// Package httptransport assembles the HTTP router: the middleware stack, the
// age evaluation routes, health probes and the metrics endpoint.
package httptransport

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	agecheckhandler "ageutil/internal/agecheck/handler"
	"ageutil/internal/platform/health"
	request "ageutil/pkg/platform/middleware/request"
	"ageutil/pkg/platform/middleware/requesttime"
)

// Dependencies are the pieces NewRouter mounts. Metrics and Latency may be nil.
type Dependencies struct {
	Logger   *slog.Logger
	AgeCheck *agecheckhandler.Handler
	Health   *health.Handler
	Latency  *request.Metrics
	Metrics  http.Handler
	Clock    requesttime.Clock
}

// NewRouter wires all public endpoints with middleware.
func NewRouter(deps Dependencies) http.Handler {
	r := chi.NewRouter()

	r.Use(request.Recovery(deps.Logger))
	r.Use(request.RequestID)
	if deps.Clock != nil {
		r.Use(requesttime.MiddlewareWithClock(deps.Clock))
	} else {
		r.Use(requesttime.Middleware)
	}
	r.Use(request.Logger(deps.Logger))
	r.Use(request.ContentTypeJSON)
	r.Use(request.LatencyMiddleware(deps.Latency, routePattern))

	deps.Health.Register(r)
	if deps.Metrics != nil {
		r.Handle("/metrics", deps.Metrics)
	}
	deps.AgeCheck.Register(r)

	return r
}

// routePattern labels latency by chi route pattern so path parameters such as
// bracket names do not become label values.
func routePattern(r *http.Request) string {
	if rc := chi.RouteContext(r.Context()); rc != nil {
		if p := rc.RoutePattern(); p != "" {
			return p
		}
	}
	return "unmatched"
}
