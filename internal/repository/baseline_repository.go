package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/hrvlabs/stress-monitor/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BaselineRepository stores one personal baseline per user.
type BaselineRepository interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.PersonalBaseline, error)
	// Upsert replaces the user's baseline wholesale. Baselines are never
	// partially mutated.
	Upsert(ctx context.Context, baseline *domain.PersonalBaseline) error
}

type baselineRepository struct {
	db *gorm.DB
}

func NewBaselineRepository(db *gorm.DB) BaselineRepository {
	return &baselineRepository{db: db}
}

func (r *baselineRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.PersonalBaseline, error) {
	var baseline domain.PersonalBaseline
	err := r.db.WithContext(ctx).First(&baseline, "user_id = ?", userID).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &baseline, nil
}

func (r *baselineRepository) Upsert(ctx context.Context, baseline *domain.PersonalBaseline) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"resting_heart_rate", "baseline_hrv", "sample_count", "last_updated",
			}),
		}).
		Create(baseline).Error
}
