// Package storage persists tasks and the player save in SQLite.
package storage

import (
	"context"
	"errors"

	"github.com/heroman/heroman/internal/domain"
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("resource not found")

// Store is the entry point to the repositories.
type Store interface {
	// Tasks returns the TaskRepository for task operations.
	Tasks() TaskRepository

	// Player returns the PlayerRepository for the player save.
	Player() PlayerRepository

	// WithTx executes fn within a database transaction.
	// If fn returns an error, the transaction is rolled back.
	WithTx(ctx context.Context, fn func(TxStore) error) error

	// Close releases the database.
	Close() error
}

// TxStore provides the repositories inside a transaction started by Store.WithTx.
type TxStore interface {
	Tasks() TaskRepository
	Player() PlayerRepository
}

// TaskRepository defines operations for managing tasks.
type TaskRepository interface {
	// Create inserts a new task and sets its ID.
	Create(ctx context.Context, task *domain.Task) error

	// Get retrieves a task by its ID.
	// Returns ErrNotFound if the task does not exist.
	Get(ctx context.Context, id int64) (*domain.Task, error)

	// List returns all tasks ordered by ID.
	List(ctx context.Context) ([]*domain.Task, error)

	// Update writes every field of an existing task.
	// Returns ErrNotFound if the task does not exist.
	Update(ctx context.Context, task *domain.Task) error

	// Delete removes a task by its ID.
	// Returns ErrNotFound if the task does not exist.
	Delete(ctx context.Context, id int64) error
}

// PlayerRepository stores the single player save.
type PlayerRepository interface {
	// Load returns the saved player, or ErrNotFound before the first save.
	Load(ctx context.Context) (*domain.PlayerStats, error)

	// Save inserts or replaces the player save.
	Save(ctx context.Context, player *domain.PlayerStats) error
}
