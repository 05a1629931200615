package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/taskvault/taskvault/internal/auth"
	"github.com/taskvault/taskvault/internal/config"
	"github.com/taskvault/taskvault/internal/domain"
	"github.com/taskvault/taskvault/internal/pkg/keygen"
	"github.com/taskvault/taskvault/internal/repository"
)

func newTestAPIKeyService(users *MockUserRepository, keys *MockAPIKeyRepository, cache repository.Cache, limit int) *APIKeyService {
	cfg := config.APIKeyConfig{
		Limit:             limit,
		ExpirationMinutes: 120,
	}
	return NewAPIKeyService(users, keys, cache, cfg, zerolog.Nop())
}

func addTestUser(users *MockUserRepository, username, password string) *domain.User {
	user := domain.NewUser(username, password)
	users.users[username] = user
	return user
}

func addTestKey(keys *MockAPIKeyRepository, user *domain.User) *domain.APIKey {
	token, _ := keygen.GenerateToken()
	key := domain.NewAPIKey(user.ID, token, 2*time.Hour)
	keys.keys[key.ID] = key
	return key
}

func newUUID(t *testing.T) uuid.UUID {
	t.Helper()
	id, err := uuid.NewRandom()
	if err != nil {
		t.Fatalf("failed to generate uuid: %v", err)
	}
	return id
}

func TestAPIKeyService_Create(t *testing.T) {
	tests := []struct {
		name     string
		username string
		password string
		limit    int
		setup    func(*MockUserRepository, *MockAPIKeyRepository)
		wantErr  error
	}{
		{
			name:     "success",
			username: "alice",
			password: "secret1",
			limit:    3,
			setup: func(users *MockUserRepository, keys *MockAPIKeyRepository) {
				addTestUser(users, "alice", "secret1")
			},
		},
		{
			name:     "user not found",
			username: "ghost",
			password: "whatever",
			limit:    3,
			setup:    func(users *MockUserRepository, keys *MockAPIKeyRepository) {},
			wantErr:  domain.ErrUserNotFound,
		},
		{
			name:     "wrong password",
			username: "alice",
			password: "not-the-password",
			limit:    3,
			setup: func(users *MockUserRepository, keys *MockAPIKeyRepository) {
				addTestUser(users, "alice", "secret1")
			},
			wantErr: ErrWrongPassword,
		},
		{
			name:     "limit reached",
			username: "alice",
			password: "secret1",
			limit:    2,
			setup: func(users *MockUserRepository, keys *MockAPIKeyRepository) {
				user := addTestUser(users, "alice", "secret1")
				addTestKey(keys, user)
				addTestKey(keys, user)
			},
			wantErr: ErrKeyLimitReached,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := NewMockUserRepository()
			keys := NewMockAPIKeyRepository()
			tt.setup(users, keys)

			svc := newTestAPIKeyService(users, keys, nil, tt.limit)

			key, err := svc.Create(context.Background(), tt.username, tt.password)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("expected error %v, got %v", tt.wantErr, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if !key.IsActive {
				t.Error("expected new key to be active")
			}
			if len(key.Key) != keygen.TokenLength {
				t.Errorf("expected token length %d, got %d", keygen.TokenLength, len(key.Key))
			}
			if key.ExpiresAt.Before(key.CreatedAt) {
				t.Error("expected expiration after creation time")
			}

			wantExpiry := key.CreatedAt.Add(120 * time.Minute)
			if diff := key.ExpiresAt.Sub(wantExpiry); diff < -time.Second || diff > time.Second {
				t.Errorf("expected expiration %v, got %v", wantExpiry, key.ExpiresAt)
			}
		})
	}
}

func TestAPIKeyService_Create_LimitBoundary(t *testing.T) {
	users := NewMockUserRepository()
	keys := NewMockAPIKeyRepository()
	addTestUser(users, "alice", "secret1")

	const limit = 3
	svc := newTestAPIKeyService(users, keys, nil, limit)

	// Creates up to the limit succeed.
	for i := 0; i < limit; i++ {
		if _, err := svc.Create(context.Background(), "alice", "secret1"); err != nil {
			t.Fatalf("create %d: unexpected error: %v", i+1, err)
		}
	}

	// The next create is rejected.
	if _, err := svc.Create(context.Background(), "alice", "secret1"); !errors.Is(err, ErrKeyLimitReached) {
		t.Errorf("expected ErrKeyLimitReached, got %v", err)
	}
}

func TestAPIKeyService_ListForUser(t *testing.T) {
	tests := []struct {
		name     string
		username string
		password string
		setup    func(*MockUserRepository, *MockAPIKeyRepository)
		wantLen  int
		wantErr  error
	}{
		{
			name:     "two keys under limit three",
			username: "alice",
			password: "secret1",
			setup: func(users *MockUserRepository, keys *MockAPIKeyRepository) {
				user := addTestUser(users, "alice", "secret1")
				addTestKey(keys, user)
				addTestKey(keys, user)
			},
			wantLen: 2,
		},
		{
			name:     "empty list",
			username: "alice",
			password: "secret1",
			setup: func(users *MockUserRepository, keys *MockAPIKeyRepository) {
				addTestUser(users, "alice", "secret1")
			},
			wantLen: 0,
		},
		{
			name:     "only own keys returned",
			username: "alice",
			password: "secret1",
			setup: func(users *MockUserRepository, keys *MockAPIKeyRepository) {
				alice := addTestUser(users, "alice", "secret1")
				bob := addTestUser(users, "bob", "password2")
				addTestKey(keys, alice)
				addTestKey(keys, bob)
			},
			wantLen: 1,
		},
		{
			name:     "user not found",
			username: "ghost",
			password: "whatever",
			setup:    func(users *MockUserRepository, keys *MockAPIKeyRepository) {},
			wantErr:  domain.ErrUserNotFound,
		},
		{
			name:     "wrong password",
			username: "alice",
			password: "nope",
			setup: func(users *MockUserRepository, keys *MockAPIKeyRepository) {
				addTestUser(users, "alice", "secret1")
			},
			wantErr: ErrWrongPassword,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := NewMockUserRepository()
			keys := NewMockAPIKeyRepository()
			tt.setup(users, keys)

			svc := newTestAPIKeyService(users, keys, nil, 3)

			list, err := svc.ListForUser(context.Background(), tt.username, tt.password)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("expected error %v, got %v", tt.wantErr, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if len(list) != tt.wantLen {
				t.Errorf("expected %d keys, got %d", tt.wantLen, len(list))
			}
		})
	}
}

func TestAPIKeyService_IssueThenList(t *testing.T) {
	users := NewMockUserRepository()
	keys := NewMockAPIKeyRepository()
	addTestUser(users, "alice", "secret1")

	svc := newTestAPIKeyService(users, keys, nil, 3)

	issued, err := svc.Create(context.Background(), "alice", "secret1")
	if err != nil {
		t.Fatalf("create: unexpected error: %v", err)
	}

	list, err := svc.ListForUser(context.Background(), "alice", "secret1")
	if err != nil {
		t.Fatalf("list: unexpected error: %v", err)
	}

	if len(list) != 1 {
		t.Fatalf("expected 1 key, got %d", len(list))
	}
	if list[0].ID != issued.ID || list[0].Key != issued.Key {
		t.Error("listed key does not match the issued key")
	}
}

func TestAPIKeyService_SetActive(t *testing.T) {
	users := NewMockUserRepository()
	keys := NewMockAPIKeyRepository()
	user := addTestUser(users, "alice", "secret1")
	key := addTestKey(keys, user)

	cache := NewMockCache()
	svc := newTestAPIKeyService(users, keys, cache, 3)

	updated, err := svc.SetActive(context.Background(), key.ID, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if updated.IsActive {
		t.Error("expected key to be inactive")
	}

	// Only the active flag changes.
	if updated.ID != key.ID || updated.Key != key.Key || updated.UserID != key.UserID {
		t.Error("expected identifying fields to be preserved")
	}
	if !updated.CreatedAt.Equal(key.CreatedAt) || !updated.ExpiresAt.Equal(key.ExpiresAt) {
		t.Error("expected timestamps to be preserved")
	}

	// The auth cache entry for the token is dropped.
	found := false
	for _, deleted := range cache.deleted {
		if deleted == auth.CacheKey(key.Key) {
			found = true
		}
	}
	if !found {
		t.Error("expected auth cache invalidation for the key token")
	}

	// Reactivation round-trips.
	updated, err = svc.SetActive(context.Background(), key.ID, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !updated.IsActive {
		t.Error("expected key to be active again")
	}
}

func TestAPIKeyService_SetActive_NotFound(t *testing.T) {
	users := NewMockUserRepository()
	keys := NewMockAPIKeyRepository()

	svc := newTestAPIKeyService(users, keys, nil, 3)

	_, err := svc.SetActive(context.Background(), newUUID(t), false)
	if !errors.Is(err, domain.ErrAPIKeyNotFound) {
		t.Errorf("expected ErrAPIKeyNotFound, got %v", err)
	}
}
