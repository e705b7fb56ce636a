package service

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/hrvlabs/stress-monitor/internal/domain"
)

func TestUserService_Create(t *testing.T) {
	tests := []struct {
		name    string
		req     *domain.CreateUserRequest
		wantErr bool
	}{
		{
			name: "valid timezone",
			req: &domain.CreateUserRequest{
				Timezone: "Europe/Budapest",
			},
			wantErr: false,
		},
		{
			name: "UTC timezone",
			req: &domain.CreateUserRequest{
				Timezone: "UTC",
			},
			wantErr: false,
		},
		{
			name: "full profile",
			req: &domain.CreateUserRequest{
				DisplayName:   "Dana",
				Timezone:      "Asia/Tokyo",
				WearableModel: "Watch Series 9",
			},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := NewMockUserRepository()
			svc := NewUserService(repo)

			user, err := svc.Create(context.Background(), tt.req)
			if (err != nil) != tt.wantErr {
				t.Errorf("Create() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr {
				if user == nil {
					t.Error("Create() returned nil user")
					return
				}
				if user.Timezone != tt.req.Timezone {
					t.Errorf("Create() timezone = %v, want %v", user.Timezone, tt.req.Timezone)
				}
				if user.DisplayName != tt.req.DisplayName {
					t.Errorf("Create() display name = %v, want %v", user.DisplayName, tt.req.DisplayName)
				}
				if user.ID == uuid.Nil {
					t.Error("Create() user ID should not be nil")
				}
			}
		})
	}
}

func TestUserService_Create_TrimsProfileFields(t *testing.T) {
	repo := NewMockUserRepository()
	svc := NewUserService(repo)

	user, err := svc.Create(context.Background(), &domain.CreateUserRequest{
		DisplayName:   "  Dana  ",
		Timezone:      "UTC",
		WearableModel: " Polar H10 ",
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if user.DisplayName != "Dana" {
		t.Errorf("DisplayName = %q, want %q", user.DisplayName, "Dana")
	}
	if user.WearableModel != "Polar H10" {
		t.Errorf("WearableModel = %q, want %q", user.WearableModel, "Polar H10")
	}
}

func TestUserService_GetByID(t *testing.T) {
	repo := NewMockUserRepository()
	svc := NewUserService(repo)

	req := &domain.CreateUserRequest{Timezone: "America/New_York"}
	created, err := svc.Create(context.Background(), req)
	if err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}

	tests := []struct {
		name    string
		id      uuid.UUID
		wantErr error
	}{
		{
			name:    "existing user",
			id:      created.ID,
			wantErr: nil,
		},
		{
			name:    "non-existing user",
			id:      uuid.New(),
			wantErr: domain.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, err := svc.GetByID(context.Background(), tt.id)
			if err != tt.wantErr {
				t.Errorf("GetByID() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if tt.wantErr == nil && user == nil {
				t.Error("GetByID() returned nil user for existing ID")
			}
		})
	}
}
