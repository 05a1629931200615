package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/taskvault/taskvault/internal/auth"
	"github.com/taskvault/taskvault/internal/config"
	"github.com/taskvault/taskvault/internal/domain"
	"github.com/taskvault/taskvault/internal/pkg/keygen"
	"github.com/taskvault/taskvault/internal/repository"
)

// APIKeyService handles the API key lifecycle: issuance, listing and
// activation state.
type APIKeyService struct {
	userRepo repository.UserRepository
	keyRepo  repository.APIKeyRepository
	cache    repository.Cache
	cfg      config.APIKeyConfig
	logger   zerolog.Logger
}

// NewAPIKeyService creates a new APIKeyService. The key quota and lifetime
// come from cfg; cache may be nil when no auth cache is configured.
func NewAPIKeyService(
	userRepo repository.UserRepository,
	keyRepo repository.APIKeyRepository,
	cache repository.Cache,
	cfg config.APIKeyConfig,
	logger zerolog.Logger,
) *APIKeyService {
	return &APIKeyService{
		userRepo: userRepo,
		keyRepo:  keyRepo,
		cache:    cache,
		cfg:      cfg,
		logger:   logger.With().Str("service", "apikey").Logger(),
	}
}

// Create issues a new API key for the user identified by the credentials.
// The per-user record count is checked against the configured limit before
// the insert; concurrent calls may both pass the check, so the limit is an
// upper bound on intent, not a hard invariant.
func (s *APIKeyService) Create(ctx context.Context, username, password string) (*domain.APIKey, error) {
	user, err := s.authenticate(ctx, username, password)
	if err != nil {
		return nil, err
	}

	count, err := s.keyRepo.CountByUserID(ctx, user.ID)
	if err != nil {
		s.logger.Error().Err(err).Str("username", username).Msg("failed to count api keys")
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}
	if s.cfg.Limit < count+1 {
		return nil, fmt.Errorf("%w: limit is %d", ErrKeyLimitReached, s.cfg.Limit)
	}

	token, err := keygen.GenerateToken()
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to generate key token")
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	key := domain.NewAPIKey(user.ID, token, s.cfg.Expiration())

	if err := s.keyRepo.Create(ctx, key); err != nil {
		s.logger.Error().Err(err).Str("username", username).Msg("failed to create api key")
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	s.logger.Info().
		Str("key_id", key.ID.String()).
		Str("user_id", user.ID.String()).
		Time("expires_at", key.ExpiresAt).
		Msg("api key issued")

	return key, nil
}

// ListForUser returns all key records owned by the user identified by the
// credentials. Includes inactive and expired records.
func (s *APIKeyService) ListForUser(ctx context.Context, username, password string) ([]*domain.APIKey, error) {
	user, err := s.authenticate(ctx, username, password)
	if err != nil {
		return nil, err
	}

	keys, err := s.keyRepo.ListByUserID(ctx, user.ID)
	if err != nil {
		s.logger.Error().Err(err).Str("username", username).Msg("failed to list api keys")
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	return keys, nil
}

// SetActive updates a key record's active flag by record ID and returns
// the updated record. The auth cache entry for the key's token is dropped
// so the new state takes effect immediately.
func (s *APIKeyService) SetActive(ctx context.Context, keyID uuid.UUID, active bool) (*domain.APIKey, error) {
	key, err := s.keyRepo.GetByID(ctx, keyID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.ErrAPIKeyNotFound
		}
		s.logger.Error().Err(err).Str("key_id", keyID.String()).Msg("failed to get api key")
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	if err := s.keyRepo.UpdateIsActive(ctx, keyID, active); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.ErrAPIKeyNotFound
		}
		s.logger.Error().Err(err).Str("key_id", keyID.String()).Msg("failed to update api key state")
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	key.IsActive = active

	if s.cache != nil {
		if err := s.cache.Delete(ctx, auth.CacheKey(key.Key)); err != nil {
			s.logger.Warn().Err(err).Str("key_id", keyID.String()).Msg("failed to invalidate auth cache entry")
		}
	}

	s.logger.Info().
		Str("key_id", key.ID.String()).
		Bool("is_active", active).
		Msg("api key state updated")

	return key, nil
}

// authenticate resolves the credential pair used by the key endpoints.
func (s *APIKeyService) authenticate(ctx context.Context, username, password string) (*domain.User, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.ErrUserNotFound
		}
		s.logger.Error().Err(err).Str("username", username).Msg("failed to get user")
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	if !user.CheckPassword(password) {
		return nil, ErrWrongPassword
	}

	return user, nil
}
