package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/taskvault/taskvault/internal/domain"
	"github.com/taskvault/taskvault/internal/repository"
)

// apiKeyRepository implements repository.APIKeyRepository for SQLite.
type apiKeyRepository struct {
	db *DB
}

// NewAPIKeyRepository creates a new SQLite API key repository.
func NewAPIKeyRepository(db *DB) repository.APIKeyRepository {
	return &apiKeyRepository{db: db}
}

// Create creates a new API key record.
func (r *apiKeyRepository) Create(ctx context.Context, key *domain.APIKey) error {
	query := `
		INSERT INTO api_keys (id, key, user_id, is_active, created_at, expires_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		key.ID.String(),
		key.Key,
		key.UserID.String(),
		boolToInt(key.IsActive),
		key.CreatedAt.Format(time.RFC3339),
		key.ExpiresAt.Format(time.RFC3339),
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
		WHERE id = ?
	`
	return r.scanAPIKey(r.db.QueryRowContext(ctx, query, id.String()))
}

// GetByKey retrieves an API key by its token.
func (r *apiKeyRepository) GetByKey(ctx context.Context, token string) (*domain.APIKey, error) {
	query := `
		SELECT id, key, user_id, is_active, created_at, expires_at
		FROM api_keys
		WHERE key = ?
	`
	return r.scanAPIKey(r.db.QueryRowContext(ctx, query, token))
}

// ListByUserID returns all API keys for a user.
func (r *apiKeyRepository) ListByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.APIKey, error) {
	query := `
		SELECT id, key, user_id, is_active, created_at, expires_at
		FROM api_keys
		WHERE user_id = ?
	`

	rows, err := r.db.QueryContext(ctx, query, userID.String())
	if err != nil {
		return nil, fmt.Errorf("failed to list api keys: %w", err)
	}
	defer rows.Close()

	var keys []*domain.APIKey
	for rows.Next() {
		key, err := scanAPIKeyRow(rows)
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
	query := `SELECT COUNT(1) FROM api_keys WHERE user_id = ?`

	var count int
	if err := r.db.QueryRowContext(ctx, query, userID.String()).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count api keys: %w", err)
	}

	return count, nil
}

// UpdateIsActive persists a new active flag for the key record.
func (r *apiKeyRepository) UpdateIsActive(ctx context.Context, id uuid.UUID, isActive bool) error {
	query := `UPDATE api_keys SET is_active = ? WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, boolToInt(isActive), id.String())
	if err != nil {
		return fmt.Errorf("failed to update api key state: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return repository.ErrNotFound
	}

	return nil
}

// scanAPIKey scans a single API key row.
func (r *apiKeyRepository) scanAPIKey(row *sql.Row) (*domain.APIKey, error) {
	key := &domain.APIKey{}
	var id, userID, createdAt, expiresAt string
	var isActive int

	err := row.Scan(
		&id,
		&key.Key,
		&userID,
		&isActive,
		&createdAt,
		&expiresAt,
	)

	if err != nil {
		if isNoRows(err) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan api key: %w", err)
	}

	return buildAPIKey(key, id, userID, isActive, createdAt, expiresAt)
}

// scanAPIKeyRow scans an API key from a multi-row result set.
func scanAPIKeyRow(rows *sql.Rows) (*domain.APIKey, error) {
	key := &domain.APIKey{}
	var id, userID, createdAt, expiresAt string
	var isActive int

	err := rows.Scan(
		&id,
		&key.Key,
		&userID,
		&isActive,
		&createdAt,
		&expiresAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to scan api key: %w", err)
	}

	return buildAPIKey(key, id, userID, isActive, createdAt, expiresAt)
}

// buildAPIKey fills the parsed column values into the key.
func buildAPIKey(key *domain.APIKey, id, userID string, isActive int, createdAt, expiresAt string) (*domain.APIKey, error) {
	var err error
	key.ID, err = uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("failed to parse api key ID: %w", err)
	}
	key.UserID, err = uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to parse api key user ID: %w", err)
	}
	key.IsActive = isActive != 0
	key.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	key.ExpiresAt, _ = time.Parse(time.RFC3339, expiresAt)
	return key, nil
}

// Ensure apiKeyRepository implements repository.APIKeyRepository.
var _ repository.APIKeyRepository = (*apiKeyRepository)(nil)
