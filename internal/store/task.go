package store

import (
	"context"

	"github.com/phrazzld/tasks-api/internal/domain"
)

// TaskStore defines the interface for task data persistence.
// It is the only gateway to persistent storage; all SQL text and connection
// state live in its implementations.
type TaskStore interface {
	// EnsureSchema creates the tasks table if it does not exist.
	// It is idempotent and safe to call concurrently.
	EnsureSchema(ctx context.Context) error

	// ListAll retrieves every task in row order.
	// Returns an empty slice, never nil, when the table is empty.
	ListAll(ctx context.Context) ([]domain.Task, error)

	// GetByID retrieves a task by its ID.
	// Returns ErrTaskNotFound if no row matches.
	GetByID(ctx context.Context, id int64) (*domain.Task, error)

	// Create inserts a new task and returns it with its generated ID.
	Create(ctx context.Context, fields domain.TaskFields) (*domain.Task, error)

	// Update replaces the title and description of an existing task.
	// Returns ErrTaskNotFound if no row matches.
	Update(ctx context.Context, id int64, fields domain.TaskFields) error

	// Delete removes a task.
	// Returns ErrTaskNotFound if no row matches.
	Delete(ctx context.Context, id int64) error

	// Close releases the underlying connection pool.
	Close() error
}
