package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/hrvlabs/stress-monitor/internal/api/validation"
	"github.com/hrvlabs/stress-monitor/internal/domain"
	"github.com/hrvlabs/stress-monitor/internal/service"
	"github.com/hrvlabs/stress-monitor/pkg/problem"
)

// MeasurementHandler handles HRV and heart rate measurement endpoints.
type MeasurementHandler struct {
	service service.MeasurementService
}

func NewMeasurementHandler(service service.MeasurementService) *MeasurementHandler {
	return &MeasurementHandler{service: service}
}

// CreateHRVBatch handles POST /v1/users/{userId}/measurements/hrv
// @Summary Upload HRV measurements
// @Description Store a batch of HRV (RMSSD, ms) measurements. Use client_request_id for safe retries (idempotency). Returns 200 if duplicate request, 201 if new.
// @Tags measurements
// @Accept json
// @Produce json
// @Param userId path string true "User UUID" format(uuid) example(550e8400-e29b-41d4-a716-446655440000)
// @Param request body domain.CreateMeasurementBatchRequest true "HRV measurement batch"
// @Success 201 {object} domain.MeasurementBatchResponse "Batch stored"
// @Success 200 {object} domain.MeasurementBatchResponse "Duplicate request, nothing stored"
// @Failure 400 {object} problem.Problem "Invalid request body or parameters"
// @Failure 404 {object} problem.Problem "User not found"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /users/{userId}/measurements/hrv [post]
func (h *MeasurementHandler) CreateHRVBatch(w http.ResponseWriter, r *http.Request) {
	h.createBatch(w, r, service.KindHRV)
}

// CreateHeartRateBatch handles POST /v1/users/{userId}/measurements/heart-rate
// @Summary Upload heart rate samples
// @Description Store a batch of heart rate (BPM) samples. Use client_request_id for safe retries (idempotency). Returns 200 if duplicate request, 201 if new.
// @Tags measurements
// @Accept json
// @Produce json
// @Param userId path string true "User UUID" format(uuid) example(550e8400-e29b-41d4-a716-446655440000)
// @Param request body domain.CreateMeasurementBatchRequest true "Heart rate sample batch"
// @Success 201 {object} domain.MeasurementBatchResponse "Batch stored"
// @Success 200 {object} domain.MeasurementBatchResponse "Duplicate request, nothing stored"
// @Failure 400 {object} problem.Problem "Invalid request body or parameters"
// @Failure 404 {object} problem.Problem "User not found"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /users/{userId}/measurements/heart-rate [post]
func (h *MeasurementHandler) CreateHeartRateBatch(w http.ResponseWriter, r *http.Request) {
	h.createBatch(w, r, service.KindHeartRate)
}

func (h *MeasurementHandler) createBatch(w http.ResponseWriter, r *http.Request, kind service.MeasurementKind) {
	userID, err := uuid.Parse(chi.URLParam(r, "userId"))
	if err != nil {
		problem.BadRequest("Invalid user ID format").Write(w)
		return
	}

	var req domain.CreateMeasurementBatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		problem.BadRequest("Invalid JSON body").Write(w)
		return
	}

	if fieldErrors := validation.Validate(req); fieldErrors != nil {
		problem.ValidationError("Request body contains invalid fields", fieldErrors).Write(w)
		return
	}

	stored, isDuplicate, err := h.service.StoreBatch(r.Context(), userID, kind, &req)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			problem.NotFound("User not found").Write(w)
			return
		}
		problem.InternalError("Failed to store measurements").Write(w)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if isDuplicate {
		w.WriteHeader(http.StatusOK) // Return 200 for idempotent duplicate
	} else {
		w.WriteHeader(http.StatusCreated)
	}
	json.NewEncoder(w).Encode(domain.MeasurementBatchResponse{
		Stored:    stored,
		Duplicate: isDuplicate,
	})
}

// ListHRV handles GET /v1/users/{userId}/measurements/hrv
// @Summary List HRV measurements
// @Description Fetch paginated HRV history. Filter by date range. Results sorted by recorded_at descending (newest first).
// @Tags measurements
// @Produce json
// @Param userId path string true "User UUID" format(uuid) example(550e8400-e29b-41d4-a716-446655440000)
// @Param from query string false "Start of date range (RFC3339)" format(date-time) example(2024-01-01T00:00:00Z)
// @Param to query string false "End of date range (RFC3339)" format(date-time) example(2024-01-31T23:59:59Z)
// @Param limit query integer false "Results per page (1-100)" default(20) minimum(1) maximum(100)
// @Param cursor query string false "Cursor from previous response's next_cursor"
// @Success 200 {object} domain.MeasurementListResponse "Measurements with pagination"
// @Failure 400 {object} problem.Problem "Invalid query parameters"
// @Failure 404 {object} problem.Problem "User not found"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /users/{userId}/measurements/hrv [get]
func (h *MeasurementHandler) ListHRV(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, service.KindHRV)
}

// ListHeartRate handles GET /v1/users/{userId}/measurements/heart-rate
// @Summary List heart rate samples
// @Description Fetch paginated heart rate history. Filter by date range. Results sorted by recorded_at descending (newest first).
// @Tags measurements
// @Produce json
// @Param userId path string true "User UUID" format(uuid) example(550e8400-e29b-41d4-a716-446655440000)
// @Param from query string false "Start of date range (RFC3339)" format(date-time) example(2024-01-01T00:00:00Z)
// @Param to query string false "End of date range (RFC3339)" format(date-time) example(2024-01-31T23:59:59Z)
// @Param limit query integer false "Results per page (1-100)" default(20) minimum(1) maximum(100)
// @Param cursor query string false "Cursor from previous response's next_cursor"
// @Success 200 {object} domain.MeasurementListResponse "Samples with pagination"
// @Failure 400 {object} problem.Problem "Invalid query parameters"
// @Failure 404 {object} problem.Problem "User not found"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /users/{userId}/measurements/heart-rate [get]
func (h *MeasurementHandler) ListHeartRate(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, service.KindHeartRate)
}

func (h *MeasurementHandler) list(w http.ResponseWriter, r *http.Request, kind service.MeasurementKind) {
	userID, err := uuid.Parse(chi.URLParam(r, "userId"))
	if err != nil {
		problem.BadRequest("Invalid user ID format").Write(w)
		return
	}

	filter, fieldErrors := parseMeasurementFilter(r)
	if fieldErrors != nil {
		problem.ValidationError("Invalid query parameters", fieldErrors).Write(w)
		return
	}

	response, err := h.service.List(r.Context(), userID, kind, filter)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			problem.NotFound("User not found").Write(w)
			return
		}
		problem.InternalError("Failed to list measurements").Write(w)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

func parseMeasurementFilter(r *http.Request) (domain.MeasurementFilter, []problem.FieldError) {
	var filter domain.MeasurementFilter
	var fieldErrors []problem.FieldError

	// Parse 'from' parameter
	if fromStr := r.URL.Query().Get("from"); fromStr != "" {
		from, err := time.Parse(time.RFC3339, fromStr)
		if err != nil {
			fieldErrors = append(fieldErrors, problem.FieldError{
				Field:   "from",
				Message: "must be a valid RFC3339 timestamp",
			})
		} else {
			filter.From = &from
		}
	}

	// Parse 'to' parameter
	if toStr := r.URL.Query().Get("to"); toStr != "" {
		to, err := time.Parse(time.RFC3339, toStr)
		if err != nil {
			fieldErrors = append(fieldErrors, problem.FieldError{
				Field:   "to",
				Message: "must be a valid RFC3339 timestamp",
			})
		} else {
			filter.To = &to
		}
	}

	// Parse 'limit' parameter
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit < 1 {
			fieldErrors = append(fieldErrors, problem.FieldError{
				Field:   "limit",
				Message: "must be a positive integer",
			})
		} else {
			filter.Limit = limit
		}
	}

	// Parse 'cursor' parameter
	filter.Cursor = r.URL.Query().Get("cursor")

	if len(fieldErrors) > 0 {
		return filter, fieldErrors
	}

	return filter, nil
}
