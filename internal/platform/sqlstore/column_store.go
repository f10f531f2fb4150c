package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/board-api/internal/domain"
	"github.com/phrazzld/board-api/internal/platform/logger"
	"github.com/phrazzld/board-api/internal/store"
)

// ColumnStore implements the store.ColumnStore interface
// on top of a database/sql connection or transaction.
type ColumnStore struct {
	db      store.DBTX
	dialect Dialect
	logger  *slog.Logger
}

// NewColumnStore creates a new ColumnStore.
// If logger is nil, a default logger will be used.
func NewColumnStore(db store.DBTX, dialect Dialect, logger *slog.Logger) *ColumnStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &ColumnStore{
		db:      db,
		dialect: dialect,
		logger:  logger.With(slog.String("component", "column_store")),
	}
}

// Ensure ColumnStore implements store.ColumnStore interface
var _ store.ColumnStore = (*ColumnStore)(nil)

// Create implements store.ColumnStore.Create
func (s *ColumnStore) Create(ctx context.Context, column *domain.Column) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := column.Validate(); err != nil {
		log.Warn("column validation failed during create",
			slog.String("column_id", column.ID.String()),
			slog.String("error", err.Error()))
		return err
	}

	query := s.dialect.Rebind(`
		INSERT INTO board_columns (id, name, created_at, updated_at)
		VALUES ($1, $2, $3, $4)
	`)

	_, err := s.db.ExecContext(ctx, query, column.ID, column.Name, column.CreatedAt, column.UpdatedAt)
	if err != nil {
		log.Error("failed to insert column",
			slog.String("column_id", column.ID.String()),
			slog.String("error", err.Error()))
		return store.NewStoreError("column", "create", "failed to insert column", MapError(err))
	}

	log.Debug("column created", slog.String("column_id", column.ID.String()))
	return nil
}

// GetByID implements store.ColumnStore.GetByID
func (s *ColumnStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Column, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := s.dialect.Rebind(`
		SELECT id, name, created_at, updated_at
		FROM board_columns
		WHERE id = $1
	`)

	var column domain.Column
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&column.ID,
		&column.Name,
		&column.CreatedAt,
		&column.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("column not found", slog.String("column_id", id.String()))
			return nil, store.ErrColumnNotFound
		}
		log.Error("failed to get column",
			slog.String("column_id", id.String()),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to get column: %w", MapError(err))
	}

	return &column, nil
}

// List implements store.ColumnStore.List
func (s *ColumnStore) List(ctx context.Context) ([]*domain.Column, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, created_at, updated_at
		FROM board_columns
		ORDER BY created_at, id
	`)
	if err != nil {
		log.Error("failed to list columns", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list columns: %w", MapError(err))
	}
	defer func() { _ = rows.Close() }()

	columns := make([]*domain.Column, 0)
	for rows.Next() {
		var column domain.Column
		if err := rows.Scan(&column.ID, &column.Name, &column.CreatedAt, &column.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan column: %w", err)
		}
		columns = append(columns, &column)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate columns: %w", MapError(err))
	}

	return columns, nil
}

// Update implements store.ColumnStore.Update
func (s *ColumnStore) Update(ctx context.Context, column *domain.Column) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := column.Validate(); err != nil {
		return err
	}

	query := s.dialect.Rebind(`
		UPDATE board_columns
		SET name = $1, updated_at = $2
		WHERE id = $3
	`)

	result, err := s.db.ExecContext(ctx, query, column.Name, column.UpdatedAt, column.ID)
	if err != nil {
		log.Error("failed to update column",
			slog.String("column_id", column.ID.String()),
			slog.String("error", err.Error()))
		return store.NewStoreError("column", "update", "failed to update column", MapError(err))
	}

	if err := checkRowsAffected(result, store.ErrColumnNotFound); err != nil {
		log.Debug("column update touched no rows", slog.String("column_id", column.ID.String()))
		return err
	}

	return nil
}

// Delete implements store.ColumnStore.Delete
func (s *ColumnStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, s.dialect.Rebind(`DELETE FROM board_columns WHERE id = $1`), id)
	if err != nil {
		log.Error("failed to delete column",
			slog.String("column_id", id.String()),
			slog.String("error", err.Error()))
		return store.NewStoreError("column", "delete", "failed to delete column", MapError(err))
	}

	if err := checkRowsAffected(result, store.ErrColumnNotFound); err != nil {
		return err
	}

	log.Debug("column deleted", slog.String("column_id", id.String()))
	return nil
}

// WithTx implements store.ColumnStore.WithTx
func (s *ColumnStore) WithTx(tx *sql.Tx) store.ColumnStore {
	return &ColumnStore{
		db:      tx,
		dialect: s.dialect,
		logger:  s.logger,
	}
}
