package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/hrvlabs/stress-monitor/internal/domain"
	"github.com/hrvlabs/stress-monitor/internal/repository"
)

// BaselineService maintains per-user personal baselines on top of the pure
// BaselineCalculator.
type BaselineService interface {
	// Get returns the user's baseline, falling back to the default baseline
	// when no personal one exists yet.
	Get(ctx context.Context, userID uuid.UUID) (*domain.PersonalBaseline, error)
	// Recalculate rebuilds the baseline from the stored sample window and
	// upserts it. When force is false the update policy may decline, in which
	// case the existing baseline is returned with updated=false.
	Recalculate(ctx context.Context, userID uuid.UUID, force bool) (*domain.PersonalBaseline, bool, error)
}

type baselineService struct {
	calculator      *BaselineCalculator
	baselineRepo    repository.BaselineRepository
	measurementRepo repository.MeasurementRepository
	userRepo        repository.UserRepository
}

// NewBaselineService creates a new BaselineService.
func NewBaselineService(
	calculator *BaselineCalculator,
	baselineRepo repository.BaselineRepository,
	measurementRepo repository.MeasurementRepository,
	userRepo repository.UserRepository,
) BaselineService {
	return &baselineService{
		calculator:      calculator,
		baselineRepo:    baselineRepo,
		measurementRepo: measurementRepo,
		userRepo:        userRepo,
	}
}

func (s *baselineService) Get(ctx context.Context, userID uuid.UUID) (*domain.PersonalBaseline, error) {
	exists, err := s.userRepo.Exists(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.ErrNotFound
	}

	baseline, err := s.baselineRepo.GetByUserID(ctx, userID)
	if err == domain.ErrNotFound {
		fallback := domain.DefaultBaseline(userID)
		return &fallback, nil
	}
	if err != nil {
		return nil, err
	}
	return baseline, nil
}

func (s *baselineService) Recalculate(ctx context.Context, userID uuid.UUID, force bool) (*domain.PersonalBaseline, bool, error) {
	exists, err := s.userRepo.Exists(ctx, userID)
	if err != nil {
		return nil, false, err
	}
	if !exists {
		return nil, false, domain.ErrNotFound
	}

	now := time.Now().UTC()
	from := now.AddDate(0, 0, -s.calculator.TimeWindowDays())

	existing, err := s.baselineRepo.GetByUserID(ctx, userID)
	if err != nil && err != domain.ErrNotFound {
		return nil, false, err
	}

	if !force && existing != nil {
		fresh, err := s.measurementRepo.CountHRVSince(ctx, userID, existing.LastUpdated)
		if err != nil {
			return nil, false, err
		}
		if !s.calculator.ShouldUpdateBaseline(existing.LastUpdated, int(fresh)) {
			return existing, false, nil
		}
	}

	measurements, err := s.measurementRepo.ListHRVByRange(ctx, userID, from, now)
	if err != nil {
		return nil, false, err
	}

	baseline, err := s.calculator.CalculateBaseline(userID, measurements)
	if err != nil {
		return nil, false, err
	}

	// Replace the default resting rate when heart-rate data is available
	hrSamples, err := s.measurementRepo.ListHeartRateByRange(ctx, userID, from, now)
	if err != nil {
		return nil, false, err
	}
	if len(hrSamples) > 0 {
		baseline.RestingHeartRate = s.calculator.CalculateRestingHeartRate(hrSamples)
	}

	if existing != nil {
		baseline.ID = existing.ID
	}
	if err := s.baselineRepo.Upsert(ctx, &baseline); err != nil {
		return nil, false, err
	}

	return &baseline, true, nil
}
