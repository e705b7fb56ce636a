package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/hrvlabs/stress-monitor/internal/domain"
	"github.com/hrvlabs/stress-monitor/pkg/pagination"
	"gorm.io/gorm"
)

// StressResultRepository stores scored readings for history and trends.
type StressResultRepository interface {
	Create(ctx context.Context, result *domain.StressResult) error
	List(ctx context.Context, userID uuid.UUID, filter domain.StressFilter) ([]domain.StressResult, error)
	// ListByRange returns all results with a timestamp in [from, to], oldest
	// first, without pagination. Used by trend computation.
	ListByRange(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]domain.StressResult, error)
	// Latest returns the most recent result, or domain.ErrNotFound.
	Latest(ctx context.Context, userID uuid.UUID) (*domain.StressResult, error)
}

type stressResultRepository struct {
	db *gorm.DB
}

func NewStressResultRepository(db *gorm.DB) StressResultRepository {
	return &stressResultRepository{db: db}
}

func (r *stressResultRepository) Create(ctx context.Context, result *domain.StressResult) error {
	return r.db.WithContext(ctx).Create(result).Error
}

func (r *stressResultRepository) List(ctx context.Context, userID uuid.UUID, filter domain.StressFilter) ([]domain.StressResult, error) {
	query := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("timestamp DESC")

	if filter.From != nil {
		query = query.Where("timestamp >= ?", filter.From)
	}
	if filter.To != nil {
		query = query.Where("timestamp <= ?", filter.To)
	}

	if filter.Cursor != "" {
		cursor, err := pagination.DecodeCursor(filter.Cursor)
		if err == nil && cursor != nil {
			query = query.Where(
				"(timestamp < ?) OR (timestamp = ? AND id < ?)",
				cursor.RecordedAt, cursor.RecordedAt, cursor.ID,
			)
		}
	}

	limit := pagination.NormalizeLimit(filter.Limit)
	query = query.Limit(limit + 1)

	var results []domain.StressResult
	if err := query.Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *stressResultRepository) ListByRange(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]domain.StressResult, error) {
	var results []domain.StressResult
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND timestamp >= ? AND timestamp <= ?", userID, from, to).
		Order("timestamp ASC").
		Find(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

func (r *stressResultRepository) Latest(ctx context.Context, userID uuid.UUID) (*domain.StressResult, error) {
	var result domain.StressResult
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("timestamp DESC").
		First(&result).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &result, nil
}
