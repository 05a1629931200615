package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/taskvault/taskvault/internal/domain"
	"github.com/taskvault/taskvault/internal/repository"
)

// TodoService handles owner-scoped to-do item operations. Every method
// takes the owner's user ID from the authenticated request identity; items
// belonging to other users are indistinguishable from absent ones.
type TodoService struct {
	todoRepo repository.TodoRepository
	logger   zerolog.Logger
}

// NewTodoService creates a new TodoService.
func NewTodoService(todoRepo repository.TodoRepository, logger zerolog.Logger) *TodoService {
	return &TodoService{
		todoRepo: todoRepo,
		logger:   logger.With().Str("service", "todo").Logger(),
	}
}

// List returns all to-do items owned by the user.
func (s *TodoService) List(ctx context.Context, userID uuid.UUID) ([]*domain.Todo, error) {
	todos, err := s.todoRepo.ListByUserID(ctx, userID)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID.String()).Msg("failed to list todos")
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	return todos, nil
}

// Get returns a single to-do item owned by the user.
func (s *TodoService) Get(ctx context.Context, id, userID uuid.UUID) (*domain.Todo, error) {
	todo, err := s.todoRepo.GetByID(ctx, id, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.ErrTodoNotFound
		}
		s.logger.Error().Err(err).Str("todo_id", id.String()).Msg("failed to get todo")
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	return todo, nil
}

// Create adds a new to-do item for the user. New items start not done.
func (s *TodoService) Create(ctx context.Context, userID uuid.UUID, title, description string, difficulty domain.Difficulty) (*domain.Todo, error) {
	if title == "" {
		return nil, ErrInvalidTitle
	}
	if !difficulty.Valid() {
		return nil, domain.ErrInvalidDifficulty
	}

	todo := domain.NewTodo(userID, title, description, difficulty)

	if err := s.todoRepo.Create(ctx, todo); err != nil {
		s.logger.Error().Err(err).Str("user_id", userID.String()).Msg("failed to create todo")
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	s.logger.Info().
		Str("todo_id", todo.ID.String()).
		Str("user_id", userID.String()).
		Msg("todo created")

	return todo, nil
}

// Update replaces the mutable fields of a to-do item owned by the user.
func (s *TodoService) Update(ctx context.Context, id, userID uuid.UUID, title, description string, difficulty domain.Difficulty) (*domain.Todo, error) {
	if title == "" {
		return nil, ErrInvalidTitle
	}
	if !difficulty.Valid() {
		return nil, domain.ErrInvalidDifficulty
	}

	todo, err := s.Get(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	todo.Title = title
	todo.Description = description
	todo.Difficulty = difficulty

	if err := s.todoRepo.Update(ctx, todo); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.ErrTodoNotFound
		}
		s.logger.Error().Err(err).Str("todo_id", id.String()).Msg("failed to update todo")
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	return todo, nil
}

// ToggleStatus flips a to-do item's done flag and returns the updated item.
func (s *TodoService) ToggleStatus(ctx context.Context, id, userID uuid.UUID) (*domain.Todo, error) {
	todo, err := s.Get(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	todo.IsDone = !todo.IsDone

	if err := s.todoRepo.Update(ctx, todo); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.ErrTodoNotFound
		}
		s.logger.Error().Err(err).Str("todo_id", id.String()).Msg("failed to toggle todo status")
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	s.logger.Info().
		Str("todo_id", todo.ID.String()).
		Bool("is_done", todo.IsDone).
		Msg("todo status toggled")

	return todo, nil
}

// Delete removes a to-do item owned by the user.
func (s *TodoService) Delete(ctx context.Context, id, userID uuid.UUID) error {
	if err := s.todoRepo.Delete(ctx, id, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.ErrTodoNotFound
		}
		s.logger.Error().Err(err).Str("todo_id", id.String()).Msg("failed to delete todo")
		return fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	s.logger.Info().Str("todo_id", id.String()).Msg("todo deleted")

	return nil
}
