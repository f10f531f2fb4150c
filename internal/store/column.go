package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/phrazzld/board-api/internal/domain"
)

// ColumnStore defines the interface for column data persistence.
type ColumnStore interface {
	// Create saves a new column to the store.
	// Returns validation errors if the column data is invalid.
	Create(ctx context.Context, column *domain.Column) error

	// GetByID retrieves a column by its unique ID.
	// Returns ErrColumnNotFound if the column does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Column, error)

	// List returns all columns ordered by creation time.
	List(ctx context.Context) ([]*domain.Column, error)

	// Update persists the name and updated_at of an existing column.
	// Returns ErrColumnNotFound if the column does not exist.
	Update(ctx context.Context, column *domain.Column) error

	// Delete removes a column by its ID. Tasks referencing the column are
	// left in place.
	// Returns ErrColumnNotFound if the column does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// WithTx returns a new ColumnStore instance that uses the provided transaction.
	//
	// Example usage:
	//   err := store.RunInTransaction(ctx, db, func(ctx context.Context, tx *sql.Tx) error {
	//       return columnStore.WithTx(tx).Create(ctx, column)
	//   })
	WithTx(tx *sql.Tx) ColumnStore
}
