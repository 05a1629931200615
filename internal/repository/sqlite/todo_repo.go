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

// todoRepository implements repository.TodoRepository for SQLite.
type todoRepository struct {
	db *DB
}

// NewTodoRepository creates a new SQLite to-do repository.
func NewTodoRepository(db *DB) repository.TodoRepository {
	return &todoRepository{db: db}
}

// Create creates a new to-do item.
func (r *todoRepository) Create(ctx context.Context, todo *domain.Todo) error {
	query := `
		INSERT INTO todos (id, user_id, title, description, difficulty, is_done, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		todo.ID.String(),
		todo.UserID.String(),
		todo.Title,
		todo.Description,
		int(todo.Difficulty),
		boolToInt(todo.IsDone),
		todo.CreatedAt.Format(time.RFC3339),
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
		WHERE id = ? AND user_id = ?
	`
	return r.scanTodo(r.db.QueryRowContext(ctx, query, id.String(), userID.String()))
}

// ListByUserID returns all to-do items owned by a user.
func (r *todoRepository) ListByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.Todo, error) {
	query := `
		SELECT id, user_id, title, description, difficulty, is_done, created_at
		FROM todos
		WHERE user_id = ?
		ORDER BY created_at
	`

	rows, err := r.db.QueryContext(ctx, query, userID.String())
	if err != nil {
		return nil, fmt.Errorf("failed to list todos: %w", err)
	}
	defer rows.Close()

	var todos []*domain.Todo
	for rows.Next() {
		todo, err := scanTodoRow(rows)
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
		SET title = ?, description = ?, difficulty = ?, is_done = ?
		WHERE id = ? AND user_id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		todo.Title,
		todo.Description,
		int(todo.Difficulty),
		boolToInt(todo.IsDone),
		todo.ID.String(),
		todo.UserID.String(),
	)
	if err != nil {
		return fmt.Errorf("failed to update todo: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return repository.ErrNotFound
	}

	return nil
}

// Delete removes a to-do item, scoped to its owner.
func (r *todoRepository) Delete(ctx context.Context, id, userID uuid.UUID) error {
	query := `DELETE FROM todos WHERE id = ? AND user_id = ?`

	result, err := r.db.ExecContext(ctx, query, id.String(), userID.String())
	if err != nil {
		return fmt.Errorf("failed to delete todo: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return repository.ErrNotFound
	}

	return nil
}

// scanTodo scans a single to-do row.
func (r *todoRepository) scanTodo(row *sql.Row) (*domain.Todo, error) {
	todo := &domain.Todo{}
	var id, userID, createdAt string
	var difficulty, isDone int

	err := row.Scan(
		&id,
		&userID,
		&todo.Title,
		&todo.Description,
		&difficulty,
		&isDone,
		&createdAt,
	)

	if err != nil {
		if isNoRows(err) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan todo: %w", err)
	}

	return buildTodo(todo, id, userID, difficulty, isDone, createdAt)
}

// scanTodoRow scans a to-do from a multi-row result set.
func scanTodoRow(rows *sql.Rows) (*domain.Todo, error) {
	todo := &domain.Todo{}
	var id, userID, createdAt string
	var difficulty, isDone int

	err := rows.Scan(
		&id,
		&userID,
		&todo.Title,
		&todo.Description,
		&difficulty,
		&isDone,
		&createdAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to scan todo: %w", err)
	}

	return buildTodo(todo, id, userID, difficulty, isDone, createdAt)
}

// buildTodo fills the parsed column values into the todo.
func buildTodo(todo *domain.Todo, id, userID string, difficulty, isDone int, createdAt string) (*domain.Todo, error) {
	var err error
	todo.ID, err = uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("failed to parse todo ID: %w", err)
	}
	todo.UserID, err = uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to parse todo user ID: %w", err)
	}
	todo.Difficulty = domain.Difficulty(difficulty)
	todo.IsDone = isDone != 0
	todo.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return todo, nil
}

// Ensure todoRepository implements repository.TodoRepository.
var _ repository.TodoRepository = (*todoRepository)(nil)
