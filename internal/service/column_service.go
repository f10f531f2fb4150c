package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/phrazzld/board-api/internal/domain"
	"github.com/phrazzld/board-api/internal/platform/logger"
	"github.com/phrazzld/board-api/internal/store"
)

// ColumnService provides column-related operations
type ColumnService interface {
	// CreateColumn creates a column with the given name
	CreateColumn(ctx context.Context, name string) (*domain.Column, error)

	// GetColumn retrieves a column by its ID
	GetColumn(ctx context.Context, id uuid.UUID) (*domain.Column, error)

	// ListColumns returns every column ordered by creation time
	ListColumns(ctx context.Context) ([]*domain.Column, error)

	// UpdateColumn renames an existing column
	UpdateColumn(ctx context.Context, id uuid.UUID, name string) (*domain.Column, error)

	// DeleteColumn removes a column. Its tasks are kept.
	DeleteColumn(ctx context.Context, id uuid.UUID) error
}

type columnServiceImpl struct {
	columns store.ColumnStore
	logger  *slog.Logger
}

// NewColumnService creates a new ColumnService.
// It returns an error if the column store is nil.
func NewColumnService(columns store.ColumnStore, logger *slog.Logger) (ColumnService, error) {
	if columns == nil {
		return nil, domain.NewValidationError("columns", "cannot be nil", nil)
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &columnServiceImpl{
		columns: columns,
		logger:  logger.With(slog.String("component", "column_service")),
	}, nil
}

// CreateColumn implements ColumnService.CreateColumn
func (s *columnServiceImpl) CreateColumn(ctx context.Context, name string) (*domain.Column, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	column, err := domain.NewColumn(name)
	if err != nil {
		return nil, err
	}

	if err := s.columns.Create(ctx, column); err != nil {
		log.Error("failed to create column", slog.String("error", err.Error()))
		return nil, NewBoardServiceError("create_column", "failed to save column", err)
	}

	log.Info("column created", slog.String("column_id", column.ID.String()))
	return column, nil
}

// GetColumn implements ColumnService.GetColumn
func (s *columnServiceImpl) GetColumn(ctx context.Context, id uuid.UUID) (*domain.Column, error) {
	column, err := s.columns.GetByID(ctx, id)
	if err != nil {
		return nil, NewBoardServiceError("get_column", "failed to retrieve column", err)
	}
	return column, nil
}

// ListColumns implements ColumnService.ListColumns
func (s *columnServiceImpl) ListColumns(ctx context.Context) ([]*domain.Column, error) {
	columns, err := s.columns.List(ctx)
	if err != nil {
		return nil, NewBoardServiceError("list_columns", "failed to list columns", err)
	}
	return columns, nil
}

// UpdateColumn implements ColumnService.UpdateColumn.
// The name is validated before the column is looked up.
func (s *columnServiceImpl) UpdateColumn(ctx context.Context, id uuid.UUID, name string) (*domain.Column, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if strings.TrimSpace(name) == "" {
		return nil, domain.ErrColumnNameEmpty
	}

	column, err := s.columns.GetByID(ctx, id)
	if err != nil {
		return nil, NewBoardServiceError("update_column", "failed to retrieve column", err)
	}

	if err := column.Rename(name); err != nil {
		return nil, err
	}

	if err := s.columns.Update(ctx, column); err != nil {
		log.Error("failed to update column",
			slog.String("column_id", id.String()),
			slog.String("error", err.Error()))
		return nil, NewBoardServiceError("update_column", "failed to save column", err)
	}

	log.Info("column renamed", slog.String("column_id", id.String()))
	return column, nil
}

// DeleteColumn implements ColumnService.DeleteColumn
func (s *columnServiceImpl) DeleteColumn(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := s.columns.Delete(ctx, id); err != nil {
		if !store.IsNotFoundError(err) {
			log.Error("failed to delete column",
				slog.String("column_id", id.String()),
				slog.String("error", err.Error()))
		}
		return NewBoardServiceError("delete_column", "failed to delete column", err)
	}

	log.Info("column deleted", slog.String("column_id", id.String()))
	return nil
}
