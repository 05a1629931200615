package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/taskvault/taskvault/internal/domain"
	"github.com/taskvault/taskvault/internal/repository"
)

// apiKeyRepository implements repository.APIKeyRepository for PostgreSQL.
type apiKeyRepository struct {
	db *DB
}

// NewAPIKeyRepository creates a new PostgreSQL API key repository.
func NewAPIKeyRepository(db *DB) repository.APIKeyRepository {
	return &apiKeyRepository{db: db}
}

// Create creates a new API key record.
func (r *apiKeyRepository) Create(ctx context.Context, key *domain.APIKey) error {
	query := `
		INSERT INTO api_keys (id, key, user_id, is_active, created_at, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.Pool.Exec(ctx, query,
		key.ID.String(),
		key.Key,
		key.UserID.String(),
		key.IsActive,
		key.CreatedAt,
		key.ExpiresAt,
	)

	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: owning user does not exist", domain.ErrUserNotFound)
		}
		return fmt.Errorf("failed to create api key: %w", err)
	}

	return nil
}

// GetByID retrieves an API key by record ID.
func (r *apiKeyRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.APIKey, error) {
	query := `
		SELECT id, key, user_id, is_active, created_at, expires_at
		FROM api_keys
		WHERE id = $1
	`
	return scanAPIKey(r.db.Pool.QueryRow(ctx, query, id.String()))
}

// GetByKey retrieves an API key by its token.
func (r *apiKeyRepository) GetByKey(ctx context.Context, token string) (*domain.APIKey, error) {
	query := `
		SELECT id, key, user_id, is_active, created_at, expires_at
		FROM api_keys
		WHERE key = $1
	`
	return scanAPIKey(r.db.Pool.QueryRow(ctx, query, token))
}

// ListByUserID returns all API keys for a user.
func (r *apiKeyRepository) ListByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.APIKey, error) {
	query := `
		SELECT id, key, user_id, is_active, created_at, expires_at
		FROM api_keys
		WHERE user_id = $1
		ORDER BY created_at
	`

	rows, err := r.db.Pool.Query(ctx, query, userID.String())
	if err != nil {
		return nil, fmt.Errorf("failed to list api keys: %w", err)
	}
	defer rows.Close()

	var keys []*domain.APIKey
	for rows.Next() {
		key, err := scanAPIKey(rows)
		if err != nil {
			return nil, err
		}
		keys = append(keys, key)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating api keys: %w", err)
	}

	return keys, nil
}

// CountByUserID returns the number of key records for a user.
func (r *apiKeyRepository) CountByUserID(ctx context.Context, userID uuid.UUID) (int, error) {
	query := `SELECT COUNT(1) FROM api_keys WHERE user_id = $1`

	var count int
	if err := r.db.Pool.QueryRow(ctx, query, userID.String()).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count api keys: %w", err)
	}

	return count, nil
}

// UpdateIsActive persists a new active flag for the key record.
func (r *apiKeyRepository) UpdateIsActive(ctx context.Context, id uuid.UUID, isActive bool) error {
	query := `UPDATE api_keys SET is_active = $1 WHERE id = $2`

	result, err := r.db.Pool.Exec(ctx, query, isActive, id.String())
	if err != nil {
		return fmt.Errorf("failed to update api key state: %w", err)
	}

	if result.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	return nil
}

// scanAPIKey scans a single API key row.
func scanAPIKey(row pgx.Row) (*domain.APIKey, error) {
	key := &domain.APIKey{}
	var id, userID string

	err := row.Scan(
		&id,
		&key.Key,
		&userID,
		&key.IsActive,
		&key.CreatedAt,
		&key.ExpiresAt,
	)

	if err != nil {
		if isNoRows(err) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan api key: %w", err)
	}

	key.ID, err = uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("failed to parse api key ID: %w", err)
	}
	key.UserID, err = uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to parse api key user ID: %w", err)
	}

	return key, nil
}

// Ensure apiKeyRepository implements repository.APIKeyRepository.
var _ repository.APIKeyRepository = (*apiKeyRepository)(nil)
