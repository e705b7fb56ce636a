package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/hrvlabs/stress-monitor/internal/domain"
	"github.com/hrvlabs/stress-monitor/internal/service"
	"github.com/hrvlabs/stress-monitor/pkg/problem"
)

// BaselineHandler handles personal baseline endpoints.
type BaselineHandler struct {
	service service.BaselineService
}

func NewBaselineHandler(service service.BaselineService) *BaselineHandler {
	return &BaselineHandler{service: service}
}

// Get handles GET /v1/users/{userId}/baseline
// @Summary Get personal baseline
// @Description Fetch the user's personal baseline. Falls back to population defaults (is_default=true) when no baseline has been calculated yet.
// @Tags baseline
// @Produce json
// @Param userId path string true "User UUID" format(uuid) example(550e8400-e29b-41d4-a716-446655440000)
// @Success 200 {object} domain.BaselineResponse "Personal or default baseline"
// @Failure 400 {object} problem.Problem "Invalid user ID"
// @Failure 404 {object} problem.Problem "User not found"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /users/{userId}/baseline [get]
func (h *BaselineHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "userId"))
	if err != nil {
		problem.BadRequest("Invalid user ID format").Write(w)
		return
	}

	baseline, err := h.service.Get(r.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			problem.NotFound("User not found").Write(w)
			return
		}
		problem.InternalError("Failed to get baseline").Write(w)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(baseline.ToResponse())
}

// Recalculate handles POST /v1/users/{userId}/baseline/recalculate
// @Summary Recalculate personal baseline
// @Description Recalculate the user's baseline from the recent HRV window. Skipped (200 with the current baseline) when the update policy says the baseline is still fresh, unless force=true. Returns 422 when there are not enough samples.
// @Tags baseline
// @Accept json
// @Produce json
// @Param userId path string true "User UUID" format(uuid) example(550e8400-e29b-41d4-a716-446655440000)
// @Param request body domain.RecalculateBaselineRequest false "Recalculation options"
// @Success 200 {object} domain.BaselineResponse "Baseline after the recalculation attempt"
// @Failure 400 {object} problem.Problem "Invalid request"
// @Failure 404 {object} problem.Problem "User not found"
// @Failure 422 {object} problem.Problem "Not enough samples for a personal baseline"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /users/{userId}/baseline/recalculate [post]
func (h *BaselineHandler) Recalculate(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "userId"))
	if err != nil {
		problem.BadRequest("Invalid user ID format").Write(w)
		return
	}

	// Body is optional; absence means force=false.
	var req domain.RecalculateBaselineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		problem.BadRequest("Invalid JSON body").Write(w)
		return
	}

	baseline, updated, err := h.service.Recalculate(r.Context(), userID, req.Force)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			problem.NotFound("User not found").Write(w)
			return
		}
		if errors.Is(err, domain.ErrInsufficientSamples) {
			problem.UnprocessableEntity("Not enough HRV samples to calculate a personal baseline").Write(w)
			return
		}
		problem.InternalError("Failed to recalculate baseline").Write(w)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Baseline-Updated", boolHeader(updated))
	json.NewEncoder(w).Encode(baseline.ToResponse())
}

func boolHeader(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
