package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/taskvault/taskvault/internal/domain"
)

func TestTodoService_Create(t *testing.T) {
	tests := []struct {
		name       string
		title      string
		difficulty domain.Difficulty
		wantErr    error
	}{
		{
			name:       "success",
			title:      "write report",
			difficulty: domain.DifficultyMedium,
		},
		{
			name:       "empty title",
			title:      "",
			difficulty: domain.DifficultyMedium,
			wantErr:    ErrInvalidTitle,
		},
		{
			name:       "difficulty out of range",
			title:      "write report",
			difficulty: domain.Difficulty(9),
			wantErr:    domain.ErrInvalidDifficulty,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			todos := NewMockTodoRepository()
			svc := NewTodoService(todos, zerolog.Nop())
			userID := newUUID(t)

			todo, err := svc.Create(context.Background(), userID, tt.title, "details", tt.difficulty)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("expected error %v, got %v", tt.wantErr, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if todo.IsDone {
				t.Error("expected new todo to start not done")
			}
			if todo.UserID != userID {
				t.Error("expected todo to be owned by the caller")
			}
		})
	}
}

func TestTodoService_OwnerScoping(t *testing.T) {
	todos := NewMockTodoRepository()
	svc := NewTodoService(todos, zerolog.Nop())

	owner := newUUID(t)
	other := newUUID(t)

	todo, err := svc.Create(context.Background(), owner, "write report", "", domain.DifficultyEasy)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// The owner sees the item.
	if _, err := svc.Get(context.Background(), todo.ID, owner); err != nil {
		t.Errorf("owner get: unexpected error: %v", err)
	}

	// Other users get not-found, same as an absent item.
	if _, err := svc.Get(context.Background(), todo.ID, other); !errors.Is(err, domain.ErrTodoNotFound) {
		t.Errorf("expected ErrTodoNotFound, got %v", err)
	}
	if _, err := svc.ToggleStatus(context.Background(), todo.ID, other); !errors.Is(err, domain.ErrTodoNotFound) {
		t.Errorf("expected ErrTodoNotFound, got %v", err)
	}
	if err := svc.Delete(context.Background(), todo.ID, other); !errors.Is(err, domain.ErrTodoNotFound) {
		t.Errorf("expected ErrTodoNotFound, got %v", err)
	}

	list, err := svc.List(context.Background(), other)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(list) != 0 {
		t.Errorf("expected empty list for other user, got %d items", len(list))
	}
}

func TestTodoService_ToggleStatus(t *testing.T) {
	todos := NewMockTodoRepository()
	svc := NewTodoService(todos, zerolog.Nop())
	owner := newUUID(t)

	todo, err := svc.Create(context.Background(), owner, "write report", "", domain.DifficultyEasy)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	toggled, err := svc.ToggleStatus(context.Background(), todo.ID, owner)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !toggled.IsDone {
		t.Error("expected todo to be done after first toggle")
	}

	toggled, err = svc.ToggleStatus(context.Background(), todo.ID, owner)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if toggled.IsDone {
		t.Error("expected todo to be not done after second toggle")
	}
}

func TestTodoService_Update(t *testing.T) {
	todos := NewMockTodoRepository()
	svc := NewTodoService(todos, zerolog.Nop())
	owner := newUUID(t)

	todo, err := svc.Create(context.Background(), owner, "write report", "first draft", domain.DifficultyEasy)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	updated, err := svc.Update(context.Background(), todo.ID, owner, "write final report", "second draft", domain.DifficultyHard)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if updated.Title != "write final report" || updated.Description != "second draft" {
		t.Error("expected updated fields")
	}
	if updated.Difficulty != domain.DifficultyHard {
		t.Errorf("expected difficulty %d, got %d", domain.DifficultyHard, updated.Difficulty)
	}

	if _, err := svc.Update(context.Background(), newUUID(t), owner, "x", "", domain.DifficultyEasy); !errors.Is(err, domain.ErrTodoNotFound) {
		t.Errorf("expected ErrTodoNotFound, got %v", err)
	}
}

func TestTodoService_Delete(t *testing.T) {
	todos := NewMockTodoRepository()
	svc := NewTodoService(todos, zerolog.Nop())
	owner := newUUID(t)

	todo, err := svc.Create(context.Background(), owner, "write report", "", domain.DifficultyEasy)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := svc.Delete(context.Background(), todo.ID, owner); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := svc.Get(context.Background(), todo.ID, owner); !errors.Is(err, domain.ErrTodoNotFound) {
		t.Errorf("expected ErrTodoNotFound after delete, got %v", err)
	}
}
