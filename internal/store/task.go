package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/phrazzld/board-api/internal/domain"
)

// TaskStore defines the interface for task data persistence.
type TaskStore interface {
	// Create saves a new task to the store.
	// The column reference is not checked here; callers validate it first.
	Create(ctx context.Context, task *domain.Task) error

	// GetByID retrieves a task by its unique ID.
	// Returns ErrTaskNotFound if the task does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error)

	// GetByIDs retrieves every task whose ID is in ids. Missing IDs are
	// skipped and duplicates resolve once, so the result may be shorter
	// than ids. Callers compare lengths to detect unknown IDs.
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.Task, error)

	// ListByColumn returns the tasks of a column sorted by order, with ties
	// broken by creation time.
	ListByColumn(ctx context.Context, columnID uuid.UUID) ([]*domain.Task, error)

	// Update persists every mutable field of an existing task.
	// Returns ErrTaskNotFound if the task does not exist.
	Update(ctx context.Context, task *domain.Task) error

	// UpdatePosition sets the column and order of a single task.
	// Returns ErrTaskNotFound if the task does not exist.
	UpdatePosition(ctx context.Context, id, columnID uuid.UUID, order int) error

	// MoveToColumn reassigns every listed task to columnID in a single
	// statement and returns the number of rows changed. Order is untouched.
	MoveToColumn(ctx context.Context, ids []uuid.UUID, columnID uuid.UUID) (int64, error)

	// Delete removes a task by its ID.
	// Returns ErrTaskNotFound if the task does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// LockColumn serializes writers that rearrange the same column.
	// It must be called inside a transaction; the lock is released when
	// the transaction ends. Backends without advisory locks may no-op.
	LockColumn(ctx context.Context, columnID uuid.UUID) error

	// WithTx returns a new TaskStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) TaskStore
}
