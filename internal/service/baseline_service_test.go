package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/hrvlabs/stress-monitor/internal/domain"
)

func seedHRVWindow(t *testing.T, repo *MockMeasurementRepository, userID uuid.UUID, count int, value float64) {
	t.Helper()
	now := time.Now().UTC()
	var measurements []domain.HRVMeasurement
	for i := 0; i < count; i++ {
		measurements = append(measurements, domain.HRVMeasurement{
			UserID:     userID,
			Value:      value + float64(i%5),
			RecordedAt: now.Add(-time.Duration(i) * time.Hour),
		})
	}
	if err := repo.CreateHRVBatch(context.Background(), measurements); err != nil {
		t.Fatalf("failed to seed HRV window: %v", err)
	}
}

func TestBaselineService_Get(t *testing.T) {
	ctx := context.Background()

	t.Run("default baseline for new user", func(t *testing.T) {
		userRepo := NewMockUserRepository()
		baselineRepo := NewMockBaselineRepository()
		svc := NewBaselineService(NewBaselineCalculator(30, 30), baselineRepo, NewMockMeasurementRepository(), userRepo)
		userID := seedUser(t, userRepo)

		baseline, err := svc.Get(ctx, userID)
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if baseline.RestingHeartRate != domain.DefaultRestingHeartRate {
			t.Errorf("resting HR = %v, want default %v", baseline.RestingHeartRate, domain.DefaultRestingHeartRate)
		}
		if baseline.BaselineHRV != domain.DefaultBaselineHRV {
			t.Errorf("baseline HRV = %v, want default %v", baseline.BaselineHRV, domain.DefaultBaselineHRV)
		}
		if baseline.SampleCount != 0 {
			t.Errorf("sample count = %d, want 0 for the default baseline", baseline.SampleCount)
		}
	})

	t.Run("stored baseline wins over default", func(t *testing.T) {
		userRepo := NewMockUserRepository()
		baselineRepo := NewMockBaselineRepository()
		svc := NewBaselineService(NewBaselineCalculator(30, 30), baselineRepo, NewMockMeasurementRepository(), userRepo)
		userID := seedUser(t, userRepo)

		stored := &domain.PersonalBaseline{
			UserID:           userID,
			RestingHeartRate: 54,
			BaselineHRV:      61.5,
			SampleCount:      40,
			LastUpdated:      time.Now().UTC(),
		}
		if err := baselineRepo.Upsert(ctx, stored); err != nil {
			t.Fatalf("failed to seed baseline: %v", err)
		}

		baseline, err := svc.Get(ctx, userID)
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if baseline.BaselineHRV != 61.5 || baseline.SampleCount != 40 {
			t.Errorf("got %+v, want the stored baseline", baseline)
		}
	})

	t.Run("unknown user", func(t *testing.T) {
		userRepo := NewMockUserRepository()
		svc := NewBaselineService(NewBaselineCalculator(30, 30), NewMockBaselineRepository(), NewMockMeasurementRepository(), userRepo)

		_, err := svc.Get(ctx, uuid.New())
		if !errors.Is(err, domain.ErrNotFound) {
			t.Errorf("Get() error = %v, want ErrNotFound", err)
		}
	})
}

func TestBaselineService_Recalculate(t *testing.T) {
	ctx := context.Background()

	t.Run("builds baseline from hrv window", func(t *testing.T) {
		userRepo := NewMockUserRepository()
		baselineRepo := NewMockBaselineRepository()
		measurementRepo := NewMockMeasurementRepository()
		svc := NewBaselineService(NewBaselineCalculator(30, 30), baselineRepo, measurementRepo, userRepo)
		userID := seedUser(t, userRepo)
		seedHRVWindow(t, measurementRepo, userID, 35, 50)

		baseline, updated, err := svc.Recalculate(ctx, userID, false)
		if err != nil {
			t.Fatalf("Recalculate() error = %v", err)
		}
		if !updated {
			t.Fatalf("expected updated=true for a first calculation")
		}
		if baseline.SampleCount != 35 {
			t.Errorf("sample count = %d, want 35", baseline.SampleCount)
		}
		if baseline.BaselineHRV < 50 || baseline.BaselineHRV > 55 {
			t.Errorf("baseline HRV = %v, want within the 50-54 cluster", baseline.BaselineHRV)
		}
		// No heart rate samples seeded, so the default resting HR stands
		if baseline.RestingHeartRate != domain.DefaultRestingHeartRate {
			t.Errorf("resting HR = %v, want default", baseline.RestingHeartRate)
		}

		persisted, err := baselineRepo.GetByUserID(ctx, userID)
		if err != nil {
			t.Fatalf("baseline not persisted: %v", err)
		}
		if persisted.BaselineHRV != baseline.BaselineHRV {
			t.Errorf("persisted HRV = %v, want %v", persisted.BaselineHRV, baseline.BaselineHRV)
		}
	})

	t.Run("resting heart rate from samples", func(t *testing.T) {
		userRepo := NewMockUserRepository()
		baselineRepo := NewMockBaselineRepository()
		measurementRepo := NewMockMeasurementRepository()
		svc := NewBaselineService(NewBaselineCalculator(30, 30), baselineRepo, measurementRepo, userRepo)
		userID := seedUser(t, userRepo)
		seedHRVWindow(t, measurementRepo, userID, 35, 50)

		now := time.Now().UTC()
		var samples []domain.HeartRateSample
		for i, v := range []float64{62, 70, 48, 55, 75, 46, 80, 65, 50, 72, 60} {
			samples = append(samples, domain.HeartRateSample{
				UserID:     userID,
				Value:      v,
				RecordedAt: now.Add(-time.Duration(i) * time.Hour),
			})
		}
		if err := measurementRepo.CreateHeartRateBatch(ctx, samples); err != nil {
			t.Fatalf("failed to seed heart rate samples: %v", err)
		}

		baseline, _, err := svc.Recalculate(ctx, userID, false)
		if err != nil {
			t.Fatalf("Recalculate() error = %v", err)
		}
		// Lowest quartile of 11 samples is {46, 48, 50}, mean 48
		if baseline.RestingHeartRate < 47 || baseline.RestingHeartRate > 49 {
			t.Errorf("resting HR = %v, want ~48", baseline.RestingHeartRate)
		}
	})

	t.Run("fresh baseline is not recalculated without force", func(t *testing.T) {
		userRepo := NewMockUserRepository()
		baselineRepo := NewMockBaselineRepository()
		measurementRepo := NewMockMeasurementRepository()
		svc := NewBaselineService(NewBaselineCalculator(30, 30), baselineRepo, measurementRepo, userRepo)
		userID := seedUser(t, userRepo)

		existing := &domain.PersonalBaseline{
			UserID:           userID,
			RestingHeartRate: 54,
			BaselineHRV:      61.5,
			SampleCount:      40,
			LastUpdated:      time.Now().UTC().Add(-24 * time.Hour),
		}
		if err := baselineRepo.Upsert(ctx, existing); err != nil {
			t.Fatalf("failed to seed baseline: %v", err)
		}

		baseline, updated, err := svc.Recalculate(ctx, userID, false)
		if err != nil {
			t.Fatalf("Recalculate() error = %v", err)
		}
		if updated {
			t.Errorf("expected updated=false for a day-old baseline with no new samples")
		}
		if baseline.BaselineHRV != 61.5 {
			t.Errorf("baseline HRV = %v, want the untouched 61.5", baseline.BaselineHRV)
		}
	})

	t.Run("stale baseline is recalculated", func(t *testing.T) {
		userRepo := NewMockUserRepository()
		baselineRepo := NewMockBaselineRepository()
		measurementRepo := NewMockMeasurementRepository()
		svc := NewBaselineService(NewBaselineCalculator(30, 30), baselineRepo, measurementRepo, userRepo)
		userID := seedUser(t, userRepo)
		seedHRVWindow(t, measurementRepo, userID, 35, 50)

		existing := &domain.PersonalBaseline{
			UserID:           userID,
			RestingHeartRate: 54,
			BaselineHRV:      61.5,
			SampleCount:      40,
			LastUpdated:      time.Now().UTC().Add(-8 * 24 * time.Hour),
		}
		if err := baselineRepo.Upsert(ctx, existing); err != nil {
			t.Fatalf("failed to seed baseline: %v", err)
		}

		baseline, updated, err := svc.Recalculate(ctx, userID, false)
		if err != nil {
			t.Fatalf("Recalculate() error = %v", err)
		}
		if !updated {
			t.Fatalf("expected updated=true for a week-old baseline")
		}
		if baseline.SampleCount != 35 {
			t.Errorf("sample count = %d, want 35 from the new window", baseline.SampleCount)
		}
	})

	t.Run("force bypasses the update policy", func(t *testing.T) {
		userRepo := NewMockUserRepository()
		baselineRepo := NewMockBaselineRepository()
		measurementRepo := NewMockMeasurementRepository()
		svc := NewBaselineService(NewBaselineCalculator(30, 30), baselineRepo, measurementRepo, userRepo)
		userID := seedUser(t, userRepo)
		seedHRVWindow(t, measurementRepo, userID, 35, 50)

		existing := &domain.PersonalBaseline{
			UserID:           userID,
			RestingHeartRate: 54,
			BaselineHRV:      61.5,
			SampleCount:      40,
			LastUpdated:      time.Now().UTC(),
		}
		if err := baselineRepo.Upsert(ctx, existing); err != nil {
			t.Fatalf("failed to seed baseline: %v", err)
		}

		_, updated, err := svc.Recalculate(ctx, userID, true)
		if err != nil {
			t.Fatalf("Recalculate() error = %v", err)
		}
		if !updated {
			t.Errorf("expected updated=true with force=true")
		}
	})

	t.Run("insufficient samples", func(t *testing.T) {
		userRepo := NewMockUserRepository()
		measurementRepo := NewMockMeasurementRepository()
		svc := NewBaselineService(NewBaselineCalculator(30, 30), NewMockBaselineRepository(), measurementRepo, userRepo)
		userID := seedUser(t, userRepo)
		seedHRVWindow(t, measurementRepo, userID, 10, 50)

		_, _, err := svc.Recalculate(ctx, userID, true)
		if !errors.Is(err, domain.ErrInsufficientSamples) {
			t.Errorf("Recalculate() error = %v, want ErrInsufficientSamples", err)
		}
	})

	t.Run("unknown user", func(t *testing.T) {
		userRepo := NewMockUserRepository()
		svc := NewBaselineService(NewBaselineCalculator(30, 30), NewMockBaselineRepository(), NewMockMeasurementRepository(), userRepo)

		_, _, err := svc.Recalculate(ctx, uuid.New(), false)
		if !errors.Is(err, domain.ErrNotFound) {
			t.Errorf("Recalculate() error = %v, want ErrNotFound", err)
		}
	})
}
