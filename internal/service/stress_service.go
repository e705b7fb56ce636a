package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/hrvlabs/stress-monitor/internal/domain"
	"github.com/hrvlabs/stress-monitor/internal/repository"
	"github.com/hrvlabs/stress-monitor/pkg/pagination"
)

// StressService scores live readings against the stored baseline and serves
// the score history.
type StressService interface {
	// Score computes and persists a stress result for one reading.
	Score(ctx context.Context, userID uuid.UUID, req *domain.ScoreStressRequest) (*domain.StressResult, error)
	// History lists stored results, newest first.
	History(ctx context.Context, userID uuid.UUID, filter domain.StressFilter) (*domain.StressHistoryResponse, error)
}

type stressService struct {
	calculator      *StressCalculator
	baselineService BaselineService
	resultRepo      repository.StressResultRepository
	userRepo        repository.UserRepository
}

// NewStressService creates a new StressService.
func NewStressService(
	calculator *StressCalculator,
	baselineService BaselineService,
	resultRepo repository.StressResultRepository,
	userRepo repository.UserRepository,
) StressService {
	return &stressService{
		calculator:      calculator,
		baselineService: baselineService,
		resultRepo:      resultRepo,
		userRepo:        userRepo,
	}
}

func (s *stressService) Score(ctx context.Context, userID uuid.UUID, req *domain.ScoreStressRequest) (*domain.StressResult, error) {
	exists, err := s.userRepo.Exists(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.ErrNotFound
	}

	// Baseline is read once per call and treated as an immutable snapshot;
	// the calculator itself never touches shared state.
	baseline, err := s.baselineService.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	sampleCount := req.SampleCount
	if sampleCount < 1 {
		sampleCount = 1
	}

	result := s.calculator.CalculateStress(*req.HRV, *req.HeartRate, *baseline, sampleCount)
	result.UserID = userID

	if err := s.resultRepo.Create(ctx, &result); err != nil {
		return nil, err
	}

	return &result, nil
}

func (s *stressService) History(ctx context.Context, userID uuid.UUID, filter domain.StressFilter) (*domain.StressHistoryResponse, error) {
	exists, err := s.userRepo.Exists(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.ErrNotFound
	}

	results, err := s.resultRepo.List(ctx, userID, filter)
	if err != nil {
		return nil, err
	}

	limit := pagination.NormalizeLimit(filter.Limit)
	hasMore := len(results) > limit
	if hasMore {
		results = results[:limit]
	}

	response := &domain.StressHistoryResponse{
		Data: make([]domain.StressResultResponse, len(results)),
		Pagination: domain.PaginationResponse{
			HasMore: hasMore,
		},
	}
	for i, r := range results {
		response.Data[i] = r.ToResponse()
	}

	if hasMore && len(results) > 0 {
		last := results[len(results)-1]
		cursor := &pagination.Cursor{
			ID:         last.ID,
			RecordedAt: last.Timestamp,
		}
		response.Pagination.NextCursor = cursor.Encode()
	}

	return response, nil
}
