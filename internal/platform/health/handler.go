// Package health provides HTTP health check endpoints for liveness, readiness, and status probes.
package health

import (
	"maps"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"

	"ageutil/pkg/platform/httputil"
)

// Version is set at build time via ldflags.
var Version = "dev"

// CheckFunc reports nil when a dependency is healthy.
type CheckFunc func() error

// Handler provides health check endpoints.
type Handler struct {
	startTime   time.Time
	environment string
	now         func() time.Time

	mu     sync.RWMutex
	checks map[string]CheckFunc
}

func New(environment string) *Handler {
	return &Handler{
		startTime:   time.Now(),
		environment: environment,
		now:         time.Now,
		checks:      make(map[string]CheckFunc),
	}
}

// RegisterCheck adds a named check to the readiness probe.
func (h *Handler) RegisterCheck(name string, check CheckFunc) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.checks[name] = check
}

// Register mounts health check routes on the given router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/health", h.HandleStatus)
	r.Get("/health/live", h.HandleLiveness)
	r.Get("/health/ready", h.HandleReadiness)
}

type LivenessResponse struct {
	Status string `json:"status"`
}

func (h *Handler) HandleLiveness(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, LivenessResponse{Status: "alive"})
}

type ReadinessResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

// HandleReadiness runs every registered check and returns 503 if any fails.
func (h *Handler) HandleReadiness(w http.ResponseWriter, _ *http.Request) {
	h.mu.RLock()
	checks := maps.Clone(h.checks)
	h.mu.RUnlock()

	names := make([]string, 0, len(checks))
	for name := range checks {
		names = append(names, name)
	}
	sort.Strings(names)

	response := ReadinessResponse{Status: "ready", Checks: make(map[string]string, len(checks))}
	for _, name := range names {
		if err := checks[name](); err != nil {
			response.Checks[name] = "down: " + err.Error()
			response.Status = "not_ready"
		} else {
			response.Checks[name] = "up"
		}
	}

	if response.Status != "ready" {
		httputil.WriteJSON(w, http.StatusServiceUnavailable, response)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, response)
}

type StatusResponse struct {
	Status        string `json:"status"`
	Version       string `json:"version"`
	Environment   string `json:"environment"`
	UptimeSeconds int64  `json:"uptime_seconds"`
	Today         string `json:"today"`
}

// HandleStatus reports version, uptime and the server's current calendar date,
// which is the default reference date for evaluations.
func (h *Handler) HandleStatus(w http.ResponseWriter, _ *http.Request) {
	now := h.now()
	httputil.WriteJSON(w, http.StatusOK, StatusResponse{
		Status:        "healthy",
		Version:       Version,
		Environment:   h.environment,
		UptimeSeconds: int64(now.Sub(h.startTime).Seconds()),
		Today:         now.Format("2006-01-02"),
	})
}
