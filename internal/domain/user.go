package domain

import (
	"time"

	"github.com/google/uuid"
)

// User is a wearer whose HRV and heart-rate samples are scored. The timezone
// drives daily bucketing in trend aggregation; the wearable model is free
// text so sync gateways can report whatever the device advertises.
type User struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	DisplayName   string    `gorm:"type:varchar(100)" json:"display_name"`
	Timezone      string    `gorm:"type:varchar(64);not null;default:'UTC'" json:"timezone"`
	WearableModel string    `gorm:"type:varchar(100)" json:"wearable_model"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (User) TableName() string {
	return "users"
}

// CreateUserRequest is the request body for creating a user. Only the
// timezone is required; it must be a valid IANA zone name.
type CreateUserRequest struct {
	DisplayName   string `json:"display_name" validate:"omitempty,max=100"`
	Timezone      string `json:"timezone" validate:"required,timezone"`
	WearableModel string `json:"wearable_model" validate:"omitempty,max=100"`
}

// UserResponse is the response body for user endpoints
type UserResponse struct {
	ID            uuid.UUID `json:"id"`
	DisplayName   string    `json:"display_name,omitempty"`
	Timezone      string    `json:"timezone"`
	WearableModel string    `json:"wearable_model,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

func (u *User) ToResponse() UserResponse {
	return UserResponse{
		ID:            u.ID,
		DisplayName:   u.DisplayName,
		Timezone:      u.Timezone,
		WearableModel: u.WearableModel,
		CreatedAt:     u.CreatedAt,
	}
}
