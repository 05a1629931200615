package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/taskvault/taskvault/internal/domain"
	"github.com/taskvault/taskvault/internal/repository"
)

// todoRepository implements repository.TodoRepository for PostgreSQL.
type todoRepository struct {
	db *DB
}

// NewTodoRepository creates a new PostgreSQL to-do repository.
func NewTodoRepository(db *DB) repository.TodoRepository {
	return &todoRepository{db: db}
}

// Create creates a new to-do item.
func (r *todoRepository) Create(ctx context.Context, todo *domain.Todo) error {
	query := `
		INSERT INTO todos (id, user_id, title, description, difficulty, is_done, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.Pool.Exec(ctx, query,
		todo.ID.String(),
		todo.UserID.String(),
		todo.Title,
		todo.Description,
		int(todo.Difficulty),
		todo.IsDone,
		todo.CreatedAt,
	)

	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: owning user does not exist", domain.ErrUserNotFound)
		}
		return fmt.Errorf("failed to create todo: %w", err)
	}

	return nil
}

// GetByID retrieves a to-do item by ID, scoped to its owner.
func (r *todoRepository) GetByID(ctx context.Context, id, userID uuid.UUID) (*domain.Todo, error) {
	query := `
		SELECT id, user_id, title, description, difficulty, is_done, created_at
		FROM todos
		WHERE id = $1 AND user_id = $2
	`
	return scanTodo(r.db.Pool.QueryRow(ctx, query, id.String(), userID.String()))
}

// ListByUserID returns all to-do items owned by a user.
func (r *todoRepository) ListByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.Todo, error) {
	query := `
		SELECT id, user_id, title, description, difficulty, is_done, created_at
		FROM todos
		WHERE user_id = $1
		ORDER BY created_at
	`

	rows, err := r.db.Pool.Query(ctx, query, userID.String())
	if err != nil {
		return nil, fmt.Errorf("failed to list todos: %w", err)
	}
	defer rows.Close()

	var todos []*domain.Todo
	for rows.Next() {
		todo, err := scanTodo(rows)
		if err != nil {
			return nil, err
		}
		todos = append(todos, todo)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating todos: %w", err)
	}

	return todos, nil
}

// Update persists changes to an existing to-do item, scoped to its owner.
func (r *todoRepository) Update(ctx context.Context, todo *domain.Todo) error {
	query := `
		UPDATE todos
		SET title = $1, description = $2, difficulty = $3, is_done = $4
		WHERE id = $5 AND user_id = $6
	`

	result, err := r.db.Pool.Exec(ctx, query,
		todo.Title,
		todo.Description,
		int(todo.Difficulty),
		todo.IsDone,
		todo.ID.String(),
		todo.UserID.String(),
	)
	if err != nil {
		return fmt.Errorf("failed to update todo: %w", err)
	}

	if result.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	return nil
}

// Delete removes a to-do item, scoped to its owner.
func (r *todoRepository) Delete(ctx context.Context, id, userID uuid.UUID) error {
	query := `DELETE FROM todos WHERE id = $1 AND user_id = $2`

	result, err := r.db.Pool.Exec(ctx, query, id.String(), userID.String())
	if err != nil {
		return fmt.Errorf("failed to delete todo: %w", err)
	}

	if result.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	return nil
}

// scanTodo scans a single to-do row.
func scanTodo(row pgx.Row) (*domain.Todo, error) {
	todo := &domain.Todo{}
	var id, userID string
	var difficulty int

	err := row.Scan(
		&id,
		&userID,
		&todo.Title,
		&todo.Description,
		&difficulty,
		&todo.IsDone,
		&todo.CreatedAt,
	)

	if err != nil {
		if isNoRows(err) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan todo: %w", err)
	}

	todo.ID, err = uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("failed to parse todo ID: %w", err)
	}
	todo.UserID, err = uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to parse todo user ID: %w", err)
	}
	todo.Difficulty = domain.Difficulty(difficulty)

	return todo, nil
}

// Ensure todoRepository implements repository.TodoRepository.
var _ repository.TodoRepository = (*todoRepository)(nil)
