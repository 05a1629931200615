package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/taskvault/taskvault/internal/domain"
)

func TestUserService_SignUp(t *testing.T) {
	tests := []struct {
		name     string
		username string
		password string
		setup    func(*MockUserRepository)
		wantErr  error
	}{
		{
			name:     "success",
			username: "alice",
			password: "secret-password",
		},
		{
			name:     "username too short",
			username: "ab",
			password: "secret-password",
			wantErr:  ErrInvalidUsername,
		},
		{
			name:     "password too short",
			username: "alice",
			password: "short",
			wantErr:  ErrInvalidPassword,
		},
		{
			name:     "username taken",
			username: "alice",
			password: "secret-password",
			setup: func(users *MockUserRepository) {
				addTestUser(users, "alice", "other-password")
			},
			wantErr: domain.ErrUserAlreadyExists,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := NewMockUserRepository()
			if tt.setup != nil {
				tt.setup(users)
			}

			svc := NewUserService(users, zerolog.Nop())

			user, err := svc.SignUp(context.Background(), tt.username, tt.password)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("expected error %v, got %v", tt.wantErr, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if user.Username != tt.username {
				t.Errorf("expected username %s, got %s", tt.username, user.Username)
			}
			if user.ID == uuid.Nil {
				t.Error("expected a generated user ID")
			}
			if user.CreatedAt.IsZero() {
				t.Error("expected CreatedAt to be set")
			}
		})
	}
}

func TestUserService_Authenticate(t *testing.T) {
	users := NewMockUserRepository()
	addTestUser(users, "alice", "secret1")

	svc := NewUserService(users, zerolog.Nop())

	if _, err := svc.Authenticate(context.Background(), "alice", "secret1"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	if _, err := svc.Authenticate(context.Background(), "alice", "wrong"); !errors.Is(err, ErrWrongPassword) {
		t.Errorf("expected ErrWrongPassword, got %v", err)
	}

	if _, err := svc.Authenticate(context.Background(), "ghost", "secret1"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}
