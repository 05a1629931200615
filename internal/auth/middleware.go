package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/taskvault/taskvault/internal/domain"
	"github.com/taskvault/taskvault/internal/metrics"
	"github.com/taskvault/taskvault/internal/repository"
)

const (
	// HeaderName is the request header carrying the API key token.
	HeaderName = "ApiKey"

	// cacheKeyPrefix namespaces auth entries in the shared cache.
	cacheKeyPrefix = "auth:key:"

	// cacheTTL bounds how long a validated key record may be served from
	// cache before the store is consulted again.
	cacheTTL = 5 * time.Minute
)

// CacheKey returns the cache key under which a token's record is stored.
// Exported so the key lifecycle service can invalidate entries when a
// key's active state changes.
func CacheKey(token string) string {
	return cacheKeyPrefix + token
}

// cachedKey is the wire form of an API key record in the auth cache.
type cachedKey struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Middleware returns a chi-compatible middleware that authenticates
// requests by API key. The checks run in order and short-circuit: a blank
// header is a 400, an unknown token a 404, an inactive key a 401, an
// expired key a 401. On success the caller identity is attached to the
// request context.
//
// cache may be nil; lookups then always hit the store. Cache failures
// degrade to store lookups and are never surfaced to the caller.
func Middleware(keys repository.APIKeyRepository, cache repository.Cache, logger zerolog.Logger) func(http.Handler) http.Handler {
	m := &middleware{
		keys:   keys,
		cache:  cache,
		logger: logger.With().Str("component", "auth").Logger(),
	}
	return m.handler
}

type middleware struct {
	keys   repository.APIKeyRepository
	cache  repository.Cache
	logger zerolog.Logger
}

func (m *middleware) handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := r.Header.Get(HeaderName)
		if strings.TrimSpace(token) == "" {
			m.reject(w, r, http.StatusBadRequest, metrics.AuthOutcomeMissing, "ApiKey header is required")
			return
		}

		key, err := m.lookup(r.Context(), token)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				m.reject(w, r, http.StatusNotFound, metrics.AuthOutcomeNotFound, "API key does not exist")
				return
			}
			m.logger.Error().Err(err).Msg("key lookup failed")
			m.reject(w, r, http.StatusInternalServerError, metrics.AuthOutcomeError, "internal server error")
			return
		}

		if !key.IsActive {
			m.reject(w, r, http.StatusUnauthorized, metrics.AuthOutcomeInactive, "API key is inactive")
			return
		}

		if key.IsExpired() {
			m.reject(w, r, http.StatusUnauthorized, metrics.AuthOutcomeExpired, "API key has expired")
			return
		}

		metrics.IncAuthDecision(metrics.AuthOutcomeOK)

		identity := &Identity{
			UserID: key.UserID,
			KeyID:  key.ID,
		}

		ctx := ContextWithIdentity(r.Context(), identity)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// lookup resolves a token to its key record, consulting the cache before
// the store. Only positive results are cached; a missing token always
// reflects the store's answer.
func (m *middleware) lookup(ctx context.Context, token string) (*domain.APIKey, error) {
	if m.cache != nil {
		if key, ok := m.cacheGet(ctx, token); ok {
			return key, nil
		}
	}

	key, err := m.keys.GetByKey(ctx, token)
	if err != nil {
		return nil, err
	}

	if m.cache != nil {
		m.cacheSet(ctx, token, key)
	}

	return key, nil
}

func (m *middleware) cacheGet(ctx context.Context, token string) (*domain.APIKey, bool) {
	data, err := m.cache.Get(ctx, CacheKey(token))
	if err != nil {
		if !errors.Is(err, repository.ErrCacheMiss) {
			m.logger.Warn().Err(err).Msg("auth cache read failed")
		}
		return nil, false
	}

	var cached cachedKey
	if err := json.Unmarshal(data, &cached); err != nil {
		// Corrupted entry - treat as miss.
		return nil, false
	}

	return &domain.APIKey{
		ID:        cached.ID,
		Key:       token,
		UserID:    cached.UserID,
		IsActive:  cached.IsActive,
		CreatedAt: cached.CreatedAt,
		ExpiresAt: cached.ExpiresAt,
	}, true
}

func (m *middleware) cacheSet(ctx context.Context, token string, key *domain.APIKey) {
	data, err := json.Marshal(cachedKey{
		ID:        key.ID,
		UserID:    key.UserID,
		IsActive:  key.IsActive,
		CreatedAt: key.CreatedAt,
		ExpiresAt: key.ExpiresAt,
	})
	if err != nil {
		return
	}

	if err := m.cache.Set(ctx, CacheKey(token), data, cacheTTL); err != nil {
		m.logger.Warn().Err(err).Msg("auth cache write failed")
	}
}

func (m *middleware) reject(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	metrics.IncAuthDecision(code)

	m.logger.Warn().
		Str("reason", code).
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Str("remote_addr", r.RemoteAddr).
		Msg("request rejected")

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	body := map[string]any{
		"Error": map[string]string{
			"Code":    code,
			"Message": message,
		},
	}
	_ = json.NewEncoder(w).Encode(body)
}
