package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/hrvlabs/stress-monitor/internal/domain"
	"github.com/hrvlabs/stress-monitor/pkg/pagination"
	"gorm.io/gorm"
)

// MeasurementRepository stores and queries raw HRV and heart-rate samples.
type MeasurementRepository interface {
	CreateHRVBatch(ctx context.Context, measurements []domain.HRVMeasurement) error
	CreateHeartRateBatch(ctx context.Context, samples []domain.HeartRateSample) error
	ListHRV(ctx context.Context, userID uuid.UUID, filter domain.MeasurementFilter) ([]domain.HRVMeasurement, error)
	ListHeartRate(ctx context.Context, userID uuid.UUID, filter domain.MeasurementFilter) ([]domain.HeartRateSample, error)
	// ListHRVByRange returns all HRV samples recorded in [from, to], oldest first,
	// without pagination. Used by baseline recalculation.
	ListHRVByRange(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]domain.HRVMeasurement, error)
	// ListHeartRateByRange is the heart-rate counterpart of ListHRVByRange.
	ListHeartRateByRange(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]domain.HeartRateSample, error)
	// CountHRVSince counts HRV samples recorded after the given time.
	CountHRVSince(ctx context.Context, userID uuid.UUID, since time.Time) (int64, error)
	// HasClientRequestID reports whether a batch with this client request ID
	// was already stored for the user (idempotency check).
	HasClientRequestID(ctx context.Context, userID uuid.UUID, clientRequestID string) (bool, error)
}

type measurementRepository struct {
	db *gorm.DB
}

func NewMeasurementRepository(db *gorm.DB) MeasurementRepository {
	return &measurementRepository{db: db}
}

func (r *measurementRepository) CreateHRVBatch(ctx context.Context, measurements []domain.HRVMeasurement) error {
	if len(measurements) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&measurements).Error
}

func (r *measurementRepository) CreateHeartRateBatch(ctx context.Context, samples []domain.HeartRateSample) error {
	if len(samples) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&samples).Error
}

func (r *measurementRepository) ListHRV(ctx context.Context, userID uuid.UUID, filter domain.MeasurementFilter) ([]domain.HRVMeasurement, error) {
	query := r.listQuery(ctx, &domain.HRVMeasurement{}, userID, filter)

	var measurements []domain.HRVMeasurement
	if err := query.Find(&measurements).Error; err != nil {
		return nil, err
	}
	return measurements, nil
}

func (r *measurementRepository) ListHeartRate(ctx context.Context, userID uuid.UUID, filter domain.MeasurementFilter) ([]domain.HeartRateSample, error) {
	query := r.listQuery(ctx, &domain.HeartRateSample{}, userID, filter)

	var samples []domain.HeartRateSample
	if err := query.Find(&samples).Error; err != nil {
		return nil, err
	}
	return samples, nil
}

// listQuery builds the shared newest-first, cursor-paginated list query.
func (r *measurementRepository) listQuery(ctx context.Context, model any, userID uuid.UUID, filter domain.MeasurementFilter) *gorm.DB {
	query := r.db.WithContext(ctx).
		Model(model).
		Where("user_id = ?", userID).
		Order("recorded_at DESC")

	if filter.From != nil {
		query = query.Where("recorded_at >= ?", filter.From)
	}
	if filter.To != nil {
		query = query.Where("recorded_at <= ?", filter.To)
	}

	if filter.Cursor != "" {
		cursor, err := pagination.DecodeCursor(filter.Cursor)
		if err == nil && cursor != nil {
			// For DESC order: records strictly after the cursor position
			query = query.Where(
				"(recorded_at < ?) OR (recorded_at = ? AND id < ?)",
				cursor.RecordedAt, cursor.RecordedAt, cursor.ID,
			)
		}
	}

	// Fetch one extra to determine if there are more results
	limit := pagination.NormalizeLimit(filter.Limit)
	return query.Limit(limit + 1)
}

func (r *measurementRepository) ListHRVByRange(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]domain.HRVMeasurement, error) {
	var measurements []domain.HRVMeasurement
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND recorded_at >= ? AND recorded_at <= ?", userID, from, to).
		Order("recorded_at ASC").
		Find(&measurements).Error
	if err != nil {
		return nil, err
	}
	return measurements, nil
}

func (r *measurementRepository) ListHeartRateByRange(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]domain.HeartRateSample, error) {
	var samples []domain.HeartRateSample
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND recorded_at >= ? AND recorded_at <= ?", userID, from, to).
		Order("recorded_at ASC").
		Find(&samples).Error
	if err != nil {
		return nil, err
	}
	return samples, nil
}

func (r *measurementRepository) CountHRVSince(ctx context.Context, userID uuid.UUID, since time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.HRVMeasurement{}).
		Where("user_id = ? AND recorded_at > ?", userID, since).
		Count(&count).Error
	return count, err
}

func (r *measurementRepository) HasClientRequestID(ctx context.Context, userID uuid.UUID, clientRequestID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.HRVMeasurement{}).
		Where("user_id = ? AND client_request_id = ?", userID, clientRequestID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	if count > 0 {
		return true, nil
	}

	err = r.db.WithContext(ctx).
		Model(&domain.HeartRateSample{}).
		Where("user_id = ? AND client_request_id = ?", userID, clientRequestID).
		Count(&count).Error
	return count > 0, err
}
