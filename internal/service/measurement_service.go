package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/hrvlabs/stress-monitor/internal/domain"
	"github.com/hrvlabs/stress-monitor/internal/repository"
	"github.com/hrvlabs/stress-monitor/pkg/pagination"
)

// MeasurementKind selects which sample table an operation targets.
type MeasurementKind string

const (
	KindHRV       MeasurementKind = "hrv"
	KindHeartRate MeasurementKind = "heart_rate"
)

// MeasurementService ingests and lists raw HRV/heart-rate samples.
type MeasurementService interface {
	// StoreBatch stores one upload. Returns (stored, isDuplicate, error);
	// isDuplicate is true when the batch's client_request_id was seen before.
	StoreBatch(ctx context.Context, userID uuid.UUID, kind MeasurementKind, req *domain.CreateMeasurementBatchRequest) (int, bool, error)
	List(ctx context.Context, userID uuid.UUID, kind MeasurementKind, filter domain.MeasurementFilter) (*domain.MeasurementListResponse, error)
}

type measurementService struct {
	repo     repository.MeasurementRepository
	userRepo repository.UserRepository
}

func NewMeasurementService(repo repository.MeasurementRepository, userRepo repository.UserRepository) MeasurementService {
	return &measurementService{
		repo:     repo,
		userRepo: userRepo,
	}
}

func (s *measurementService) StoreBatch(ctx context.Context, userID uuid.UUID, kind MeasurementKind, req *domain.CreateMeasurementBatchRequest) (int, bool, error) {
	exists, err := s.userRepo.Exists(ctx, userID)
	if err != nil {
		return 0, false, err
	}
	if !exists {
		return 0, false, domain.ErrNotFound
	}

	source := req.Source
	if source == "" {
		source = domain.SourceHealthSync
	}

	// Idempotency: a batch with a known client_request_id was already stored
	if req.ClientRequestID != nil && *req.ClientRequestID != "" {
		seen, err := s.repo.HasClientRequestID(ctx, userID, *req.ClientRequestID)
		if err != nil {
			return 0, false, err
		}
		if seen {
			return 0, true, nil
		}
	}

	switch kind {
	case KindHRV:
		measurements := make([]domain.HRVMeasurement, len(req.Measurements))
		for i, in := range req.Measurements {
			measurements[i] = domain.HRVMeasurement{
				UserID:          userID,
				Value:           in.Value,
				RecordedAt:      in.RecordedAt.UTC(),
				Source:          source,
				ClientRequestID: req.ClientRequestID,
			}
		}
		if err := s.repo.CreateHRVBatch(ctx, measurements); err != nil {
			return 0, false, err
		}
		return len(measurements), false, nil

	case KindHeartRate:
		samples := make([]domain.HeartRateSample, len(req.Measurements))
		for i, in := range req.Measurements {
			samples[i] = domain.HeartRateSample{
				UserID:          userID,
				Value:           in.Value,
				RecordedAt:      in.RecordedAt.UTC(),
				Source:          source,
				ClientRequestID: req.ClientRequestID,
			}
		}
		if err := s.repo.CreateHeartRateBatch(ctx, samples); err != nil {
			return 0, false, err
		}
		return len(samples), false, nil

	default:
		return 0, false, domain.ErrInvalidInput
	}
}

func (s *measurementService) List(ctx context.Context, userID uuid.UUID, kind MeasurementKind, filter domain.MeasurementFilter) (*domain.MeasurementListResponse, error) {
	exists, err := s.userRepo.Exists(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.ErrNotFound
	}

	var data []domain.MeasurementResponse
	var lastID uuid.UUID
	var lastRecordedAt time.Time

	limit := pagination.NormalizeLimit(filter.Limit)
	hasMore := false

	switch kind {
	case KindHRV:
		measurements, err := s.repo.ListHRV(ctx, userID, filter)
		if err != nil {
			return nil, err
		}
		hasMore = len(measurements) > limit
		if hasMore {
			measurements = measurements[:limit]
		}
		data = make([]domain.MeasurementResponse, len(measurements))
		for i, m := range measurements {
			data[i] = m.ToResponse()
		}
		if n := len(measurements); n > 0 {
			lastID = measurements[n-1].ID
			lastRecordedAt = measurements[n-1].RecordedAt
		}

	case KindHeartRate:
		samples, err := s.repo.ListHeartRate(ctx, userID, filter)
		if err != nil {
			return nil, err
		}
		hasMore = len(samples) > limit
		if hasMore {
			samples = samples[:limit]
		}
		data = make([]domain.MeasurementResponse, len(samples))
		for i, m := range samples {
			data[i] = m.ToResponse()
		}
		if n := len(samples); n > 0 {
			lastID = samples[n-1].ID
			lastRecordedAt = samples[n-1].RecordedAt
		}

	default:
		return nil, domain.ErrInvalidInput
	}

	response := &domain.MeasurementListResponse{
		Data: data,
		Pagination: domain.PaginationResponse{
			HasMore: hasMore,
		},
	}

	if hasMore && len(data) > 0 {
		cursor := &pagination.Cursor{
			ID:         lastID,
			RecordedAt: lastRecordedAt,
		}
		response.Pagination.NextCursor = cursor.Encode()
	}

	return response, nil
}
