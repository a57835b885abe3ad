package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"ageutil/internal/agecheck/models"
	"ageutil/pkg/calendar"
	dErrors "ageutil/pkg/domain-errors"
	"ageutil/pkg/platform/httputil"
	request "ageutil/pkg/platform/middleware/request"
	limits "ageutil/pkg/platform/validation"
)

const maxBodyBytes = limits.MaxBodySize

type Service interface {
	Evaluate(ctx context.Context, req *models.EvaluateRequest) (*models.EvaluateResult, error)
	EvaluateBatch(ctx context.Context, req *models.BatchRequest) (*models.BatchResult, error)
	Bounds(ctx context.Context, req *models.BoundsRequest) (*models.BoundsResult, error)
	Brackets(ctx context.Context) []models.BracketInfo
}

type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

func (h *Handler) Register(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(request.BodyLimit(maxBodyBytes))
		r.Post("/age/evaluate", h.HandleEvaluate)
		r.Post("/age/evaluate/batch", h.HandleEvaluateBatch)
	})
	r.Get("/brackets", h.HandleListBrackets)
	r.Get("/brackets/{name}/bounds", h.HandleBounds)
}

// HandleEvaluate implements POST /age/evaluate.
// Input: { "date_of_birth": "2022-03-15", "bracket": "toddler", "reference_date": "2024-06-01" }
// Output: { "reference_date": ..., "bracket": "toddler", "age": {...}, "eligible": true, "window": {...}, "birth_bounds": {...} }
func (h *Handler) HandleEvaluate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := request.GetRequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[models.EvaluateRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	res, err := h.service.Evaluate(ctx, req)
	if err != nil {
		h.logFailure(ctx, "age evaluation failed", err, requestID)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, res)
}

// HandleEvaluateBatch implements POST /age/evaluate/batch.
// Input: { "bracket": "adult", "dates_of_birth": ["2000-01-01", ...] }
// Output: { "reference_date": ..., "eligible_count": 1, "results": [...] }
func (h *Handler) HandleEvaluateBatch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := request.GetRequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[models.BatchRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	res, err := h.service.EvaluateBatch(ctx, req)
	if err != nil {
		h.logFailure(ctx, "batch evaluation failed", err, requestID)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, res)
}

// HandleListBrackets implements GET /brackets.
func (h *Handler) HandleListBrackets(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"brackets": h.service.Brackets(r.Context()),
	})
}

// HandleBounds implements GET /brackets/{name}/bounds?on=YYYY-MM-DD.
// Without "on" the bounds are computed for the request date.
func (h *Handler) HandleBounds(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := request.GetRequestID(ctx)

	req := &models.BoundsRequest{Bracket: chi.URLParam(r, "name")}
	if on := r.URL.Query().Get("on"); on != "" {
		d, err := calendar.Parse(on)
		if err != nil {
			h.logger.WarnContext(ctx, "invalid reference date",
				"error", err,
				"request_id", requestID,
			)
			httputil.WriteError(w, err)
			return
		}
		req.ReferenceDate = d
	}

	res, err := h.service.Bounds(ctx, req)
	if err != nil {
		h.logFailure(ctx, "bracket bounds lookup failed", err, requestID)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, res)
}

// logFailure logs client errors at warn and everything else at error.
func (h *Handler) logFailure(ctx context.Context, msg string, err error, requestID string) {
	level := slog.LevelError
	var domainErr *dErrors.Error
	if errors.As(err, &domainErr) && httputil.DomainCodeToHTTPStatus(domainErr.Code) < http.StatusInternalServerError {
		level = slog.LevelWarn
	}
	h.logger.Log(ctx, level, msg,
		"error", err,
		"request_id", requestID,
	)
}
