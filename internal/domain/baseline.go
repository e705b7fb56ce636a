package domain

import (
	"time"

	"github.com/google/uuid"
)

const (
	// DefaultRestingHeartRate is used until enough heart-rate data exists (bpm).
	DefaultRestingHeartRate = 60.0
	// DefaultBaselineHRV is used until enough HRV data exists (ms).
	DefaultBaselineHRV = 50.0
)

// PersonalBaseline is the user's personalized reference point for stress
// scoring. It is overwritten wholesale on each recalculation, never patched.
type PersonalBaseline struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID           uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_baselines_user" json:"user_id"`
	RestingHeartRate float64   `gorm:"not null" json:"resting_heart_rate"`
	BaselineHRV      float64   `gorm:"not null" json:"baseline_hrv"`
	SampleCount      int       `gorm:"not null;default:0" json:"sample_count"`
	LastUpdated      time.Time `gorm:"not null" json:"last_updated"`
	CreatedAt        time.Time `gorm:"autoCreateTime" json:"created_at"`

	// Associations
	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

func (PersonalBaseline) TableName() string {
	return "personal_baselines"
}

// DefaultBaseline returns the starting baseline for a user with no data yet.
func DefaultBaseline(userID uuid.UUID) PersonalBaseline {
	return PersonalBaseline{
		UserID:           userID,
		RestingHeartRate: DefaultRestingHeartRate,
		BaselineHRV:      DefaultBaselineHRV,
		LastUpdated:      time.Now().UTC(),
	}
}

// BaselineResponse is the response body for baseline endpoints.
// @Description Personal baseline with provenance info.
type BaselineResponse struct {
	// Owner user ID
	UserID uuid.UUID `json:"user_id" example:"660e8400-e29b-41d4-a716-446655440001"`
	// Resting heart rate in bpm
	RestingHeartRate float64 `json:"resting_heart_rate" example:"58.5"`
	// Baseline HRV in milliseconds
	BaselineHRV float64 `json:"baseline_hrv" example:"52.3"`
	// Number of HRV samples used in the last calculation (0 for defaults)
	SampleCount int `json:"sample_count" example:"38"`
	// When the baseline was last recalculated
	LastUpdated time.Time `json:"last_updated" example:"2024-01-15T06:00:00Z"`
	// True when this is the default baseline (no personal data yet)
	IsDefault bool `json:"is_default" example:"false"`
}

func (b *PersonalBaseline) ToResponse() BaselineResponse {
	return BaselineResponse{
		UserID:           b.UserID,
		RestingHeartRate: b.RestingHeartRate,
		BaselineHRV:      b.BaselineHRV,
		SampleCount:      b.SampleCount,
		LastUpdated:      b.LastUpdated,
		IsDefault:        b.SampleCount == 0,
	}
}

// RecalculateBaselineRequest contains query parameters for baseline recalculation.
type RecalculateBaselineRequest struct {
	// Force recalculation even when the update policy says the baseline is fresh
	Force bool `json:"force"`
}
