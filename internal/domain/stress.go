package domain

import (
	"time"

	"github.com/google/uuid"
)

// StressCategory is an ordinal classification of a stress level.
// @Description Stress band: RELAXED [0,25), MILD [25,50), MODERATE [50,75), HIGH [75,100].
type StressCategory string

const (
	StressRelaxed  StressCategory = "RELAXED"
	StressMild     StressCategory = "MILD"
	StressModerate StressCategory = "MODERATE"
	StressHigh     StressCategory = "HIGH"
)

// CategoryForLevel maps a 0-100 stress level to its band. The bands meet
// exactly at 25/50/75 with no gaps or overlaps; 100 falls in HIGH.
func CategoryForLevel(level float64) StressCategory {
	switch {
	case level < 25:
		return StressRelaxed
	case level < 50:
		return StressMild
	case level < 75:
		return StressModerate
	default:
		return StressHigh
	}
}

// StressResult is the output of one scoring operation. Results are immutable;
// rows exist only so history and trend queries can replay past scores.
type StressResult struct {
	ID         uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID     uuid.UUID      `gorm:"type:uuid;not null;index:idx_stress_user_ts" json:"user_id"`
	Level      float64        `gorm:"not null" json:"level"`
	Category   StressCategory `gorm:"type:varchar(10);not null" json:"category"`
	Confidence float64        `gorm:"not null" json:"confidence"`
	HRV        float64        `gorm:"not null" json:"hrv"`
	HeartRate  float64        `gorm:"not null" json:"heart_rate"`
	Timestamp  time.Time      `gorm:"not null;index:idx_stress_user_ts,sort:desc" json:"timestamp"`
	CreatedAt  time.Time      `gorm:"autoCreateTime" json:"created_at"`

	// Associations
	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

func (StressResult) TableName() string {
	return "stress_results"
}

// ScoreStressRequest is the request body for scoring one reading.
// Values are pointers so zero readings survive validation: out-of-range
// numbers are absorbed by the scoring formulas, not rejected.
// @Description One live (HRV, heart rate) reading to score against the stored baseline.
type ScoreStressRequest struct {
	// HRV reading in milliseconds
	HRV *float64 `json:"hrv" validate:"required" example:"42.0"`
	// Heart rate reading in bpm
	HeartRate *float64 `json:"heart_rate" validate:"required" example:"72.0"`
	// Number of raw samples behind this reading (affects confidence, default 1)
	SampleCount int `json:"sample_count,omitempty" validate:"omitempty,min=1,max=1000" example:"6"`
}

// StressResultResponse is the response body for a stress score.
// @Description Stress score with category, confidence, and echoed inputs.
type StressResultResponse struct {
	// Result identifier (empty for unsaved results)
	ID uuid.UUID `json:"id,omitempty" example:"550e8400-e29b-41d4-a716-446655440000"`
	// Owner user ID
	UserID uuid.UUID `json:"user_id" example:"660e8400-e29b-41d4-a716-446655440001"`
	// Stress level, clamped to [0,100]
	Level float64 `json:"level" example:"37.4"`
	// Stress band derived from level
	Category StressCategory `json:"category" example:"MILD"`
	// Confidence in this estimate (0-1)
	Confidence float64 `json:"confidence" example:"0.85"`
	// HRV input echoed back (ms)
	HRV float64 `json:"hrv" example:"42.0"`
	// Heart rate input echoed back (bpm)
	HeartRate float64 `json:"heart_rate" example:"72.0"`
	// Capture time of the score
	Timestamp time.Time `json:"timestamp" example:"2024-01-15T08:30:00Z"`
}

func (r *StressResult) ToResponse() StressResultResponse {
	return StressResultResponse{
		ID:         r.ID,
		UserID:     r.UserID,
		Level:      r.Level,
		Category:   r.Category,
		Confidence: r.Confidence,
		HRV:        r.HRV,
		HeartRate:  r.HeartRate,
		Timestamp:  r.Timestamp,
	}
}

// StressHistoryResponse is the response body for listing past scores.
// @Description Paginated stress score history.
type StressHistoryResponse struct {
	// Array of past stress results (newest first)
	Data []StressResultResponse `json:"data"`
	// Pagination metadata
	Pagination PaginationResponse `json:"pagination"`
}

// StressFilter contains filter parameters for listing stress results
type StressFilter struct {
	From   *time.Time
	To     *time.Time
	Limit  int
	Cursor string
}
