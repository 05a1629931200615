// Package domain contains the core business entities for TaskVault.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Difficulty grades how hard a to-do item is expected to be.
type Difficulty int

const (
	DifficultyVeryEasy Difficulty = iota
	DifficultyEasy
	DifficultyMedium
	DifficultyHard
	DifficultyVeryHard
)

// Valid returns true if the difficulty is one of the defined grades.
func (d Difficulty) Valid() bool {
	return d >= DifficultyVeryEasy && d <= DifficultyVeryHard
}

// Todo represents a single to-do item owned by a user.
type Todo struct {
	// ID is the unique identifier for the item.
	ID uuid.UUID `json:"id"`

	// UserID is the ID of the owning user. Items are only visible to
	// their owner.
	UserID uuid.UUID `json:"user_id"`

	// Title is the short summary of the item.
	Title string `json:"title"`

	// Description is the optional longer text.
	Description string `json:"description,omitempty"`

	// Difficulty grades the item.
	Difficulty Difficulty `json:"difficulty"`

	// IsDone indicates whether the item has been completed.
	IsDone bool `json:"is_done"`

	// CreatedAt is the timestamp when the item was created.
	CreatedAt time.Time `json:"created_at"`
}

// NewTodo creates a new, not yet done Todo for the given owner.
func NewTodo(userID uuid.UUID, title, description string, difficulty Difficulty) *Todo {
	return &Todo{
		ID:          uuid.New(),
		UserID:      userID,
		Title:       title,
		Description: description,
		Difficulty:  difficulty,
		IsDone:      false,
		CreatedAt:   time.Now().UTC(),
	}
}
