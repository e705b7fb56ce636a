package domain

import (
	"time"

	"github.com/google/uuid"
)

// MeasurementSource identifies where a sample came from.
// @Description Origin of a measurement: HEALTH_SYNC for bulk imports from the phone's health store, STREAM for live wearable data, MANUAL for user-entered values.
type MeasurementSource string

const (
	// SourceHealthSync is a bulk import from the device health store
	SourceHealthSync MeasurementSource = "HEALTH_SYNC"
	// SourceStream is a live reading from a wearable stream
	SourceStream MeasurementSource = "STREAM"
	// SourceManual is a user-entered reading
	SourceManual MeasurementSource = "MANUAL"
)

// HRVMeasurement is a single heart-rate-variability sample in milliseconds.
// Samples are immutable once stored.
type HRVMeasurement struct {
	ID              uuid.UUID         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID          uuid.UUID         `gorm:"type:uuid;not null;index:idx_hrv_user_recorded" json:"user_id"`
	Value           float64           `gorm:"not null" json:"value"`
	RecordedAt      time.Time         `gorm:"not null;index:idx_hrv_user_recorded,sort:desc" json:"recorded_at"`
	Source          MeasurementSource `gorm:"type:varchar(16);not null;default:'HEALTH_SYNC'" json:"source"`
	ClientRequestID *string           `gorm:"type:varchar(255);index:idx_hrv_client_request" json:"client_request_id,omitempty"`
	CreatedAt       time.Time         `gorm:"autoCreateTime" json:"created_at"`

	// Associations
	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

func (HRVMeasurement) TableName() string {
	return "hrv_measurements"
}

// HeartRateSample is a single instantaneous heart-rate reading in beats per minute.
type HeartRateSample struct {
	ID              uuid.UUID         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID          uuid.UUID         `gorm:"type:uuid;not null;index:idx_hr_user_recorded" json:"user_id"`
	Value           float64           `gorm:"not null" json:"value"`
	RecordedAt      time.Time         `gorm:"not null;index:idx_hr_user_recorded,sort:desc" json:"recorded_at"`
	Source          MeasurementSource `gorm:"type:varchar(16);not null;default:'HEALTH_SYNC'" json:"source"`
	ClientRequestID *string           `gorm:"type:varchar(255);index:idx_hr_client_request" json:"client_request_id,omitempty"`
	CreatedAt       time.Time         `gorm:"autoCreateTime" json:"created_at"`

	// Associations
	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

func (HeartRateSample) TableName() string {
	return "heart_rate_samples"
}

// MeasurementInput is one sample within a batch upload.
// @Description A single measurement value with its capture time.
type MeasurementInput struct {
	// Measurement value: milliseconds for HRV, beats per minute for heart rate
	Value float64 `json:"value" validate:"required,gt=0" example:"52.4"`
	// Capture time in RFC3339 format (UTC recommended)
	RecordedAt time.Time `json:"recorded_at" validate:"required" example:"2024-01-15T08:30:00Z"`
}

// CreateMeasurementBatchRequest is the request body for uploading samples.
// @Description Batch of measurements, typically one health-store sync.
type CreateMeasurementBatchRequest struct {
	// Samples to store (1-500 per batch)
	Measurements []MeasurementInput `json:"measurements" validate:"required,min=1,max=500,dive"`
	// Origin of the batch
	Source MeasurementSource `json:"source,omitempty" validate:"omitempty,oneof=HEALTH_SYNC STREAM MANUAL" example:"HEALTH_SYNC"`
	// Optional client-generated ID for idempotent uploads (max 255 chars)
	ClientRequestID *string `json:"client_request_id,omitempty" validate:"omitempty,max=255" example:"sync-2024-01-15-0830"`
}

// MeasurementResponse is the response body for a stored sample.
// @Description Stored measurement record.
type MeasurementResponse struct {
	ID         uuid.UUID         `json:"id" example:"550e8400-e29b-41d4-a716-446655440000"`
	UserID     uuid.UUID         `json:"user_id" example:"660e8400-e29b-41d4-a716-446655440001"`
	Value      float64           `json:"value" example:"52.4"`
	RecordedAt time.Time         `json:"recorded_at" example:"2024-01-15T08:30:00Z"`
	Source     MeasurementSource `json:"source" example:"HEALTH_SYNC"`
	CreatedAt  time.Time         `json:"created_at" example:"2024-01-15T08:31:02Z"`
}

func (m *HRVMeasurement) ToResponse() MeasurementResponse {
	return MeasurementResponse{
		ID:         m.ID,
		UserID:     m.UserID,
		Value:      m.Value,
		RecordedAt: m.RecordedAt,
		Source:     m.Source,
		CreatedAt:  m.CreatedAt,
	}
}

func (s *HeartRateSample) ToResponse() MeasurementResponse {
	return MeasurementResponse{
		ID:         s.ID,
		UserID:     s.UserID,
		Value:      s.Value,
		RecordedAt: s.RecordedAt,
		Source:     s.Source,
		CreatedAt:  s.CreatedAt,
	}
}

// MeasurementBatchResponse is the response body for batch uploads.
// @Description Result of a batch upload.
type MeasurementBatchResponse struct {
	// Number of samples stored
	Stored int `json:"stored" example:"42"`
	// True if this batch was already uploaded (idempotent duplicate)
	Duplicate bool `json:"duplicate" example:"false"`
}

// MeasurementListResponse is the response body for listing samples.
// @Description Paginated list of measurements.
type MeasurementListResponse struct {
	// Array of measurement records
	Data []MeasurementResponse `json:"data"`
	// Pagination metadata
	Pagination PaginationResponse `json:"pagination"`
}

// PaginationResponse contains pagination metadata.
// @Description Cursor-based pagination info.
type PaginationResponse struct {
	// Cursor for fetching the next page (empty if no more pages)
	NextCursor string `json:"next_cursor,omitempty" example:"eyJpZCI6IjU1MGU4NDAwLWUyOWItNDFkNC1hNzE2LTQ0NjY1NTQ0MDAwMCJ9"`
	// True if more results are available
	HasMore bool `json:"has_more" example:"true"`
}

// MeasurementFilter contains filter parameters for listing measurements
type MeasurementFilter struct {
	From   *time.Time
	To     *time.Time
	Limit  int
	Cursor string
}
