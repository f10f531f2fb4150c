package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/board-api/internal/domain"
	"github.com/phrazzld/board-api/internal/platform/logger"
	"github.com/phrazzld/board-api/internal/store"
)

const taskColumns = `id, description, owner, column_id, position, status, created_at, updated_at`

// TaskStore implements the store.TaskStore interface
// on top of a database/sql connection or transaction.
type TaskStore struct {
	db      store.DBTX
	dialect Dialect
	logger  *slog.Logger
}

// NewTaskStore creates a new TaskStore.
// If logger is nil, a default logger will be used.
func NewTaskStore(db store.DBTX, dialect Dialect, logger *slog.Logger) *TaskStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &TaskStore{
		db:      db,
		dialect: dialect,
		logger:  logger.With(slog.String("component", "task_store")),
	}
}

// Ensure TaskStore implements store.TaskStore interface
var _ store.TaskStore = (*TaskStore)(nil)

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (*domain.Task, error) {
	var (
		task   domain.Task
		status string
	)
	err := row.Scan(
		&task.ID,
		&task.Description,
		&task.Owner,
		&task.ColumnID,
		&task.Order,
		&status,
		&task.CreatedAt,
		&task.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	task.Status = domain.TaskStatus(status)
	return &task, nil
}

func (s *TaskStore) queryTasks(ctx context.Context, query string, args ...any) ([]*domain.Task, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	tasks := make([]*domain.Task, 0)
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return tasks, nil
}

// Create implements store.TaskStore.Create
func (s *TaskStore) Create(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := task.Validate(); err != nil {
		log.Warn("task validation failed during create",
			slog.String("task_id", task.ID.String()),
			slog.String("error", err.Error()))
		return err
	}

	query := s.dialect.Rebind(`
		INSERT INTO tasks (` + taskColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`)

	_, err := s.db.ExecContext(ctx, query,
		task.ID,
		task.Description,
		task.Owner,
		task.ColumnID,
		task.Order,
		string(task.Status),
		task.CreatedAt,
		task.UpdatedAt,
	)
	if err != nil {
		log.Error("failed to insert task",
			slog.String("task_id", task.ID.String()),
			slog.String("error", err.Error()))
		return store.NewStoreError("task", "create", "failed to insert task", MapError(err))
	}

	log.Debug("task created",
		slog.String("task_id", task.ID.String()),
		slog.String("column_id", task.ColumnID.String()))
	return nil
}

// GetByID implements store.TaskStore.GetByID
func (s *TaskStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := s.dialect.Rebind(`SELECT ` + taskColumns + ` FROM tasks WHERE id = $1`)

	task, err := scanTask(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("task not found", slog.String("task_id", id.String()))
			return nil, store.ErrTaskNotFound
		}
		log.Error("failed to get task",
			slog.String("task_id", id.String()),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to get task: %w", MapError(err))
	}

	return task, nil
}

// GetByIDs implements store.TaskStore.GetByIDs
func (s *TaskStore) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.Task, error) {
	if len(ids) == 0 {
		return []*domain.Task{}, nil
	}

	placeholders, args := inList(ids, 1)
	query := s.dialect.Rebind(`SELECT ` + taskColumns + ` FROM tasks WHERE id IN (` + placeholders + `)`)

	tasks, err := s.queryTasks(ctx, query, args...)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to get tasks by ids",
			slog.Int("requested", len(ids)),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to get tasks: %w", err)
	}

	return tasks, nil
}

// ListByColumn implements store.TaskStore.ListByColumn
func (s *TaskStore) ListByColumn(ctx context.Context, columnID uuid.UUID) ([]*domain.Task, error) {
	query := s.dialect.Rebind(`
		SELECT ` + taskColumns + `
		FROM tasks
		WHERE column_id = $1
		ORDER BY position, created_at, id
	`)

	tasks, err := s.queryTasks(ctx, query, columnID)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to list column tasks",
			slog.String("column_id", columnID.String()),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	return tasks, nil
}

// Update implements store.TaskStore.Update
func (s *TaskStore) Update(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := task.Validate(); err != nil {
		return err
	}

	query := s.dialect.Rebind(`
		UPDATE tasks
		SET description = $1, owner = $2, column_id = $3, position = $4, status = $5, updated_at = $6
		WHERE id = $7
	`)

	result, err := s.db.ExecContext(ctx, query,
		task.Description,
		task.Owner,
		task.ColumnID,
		task.Order,
		string(task.Status),
		task.UpdatedAt,
		task.ID,
	)
	if err != nil {
		log.Error("failed to update task",
			slog.String("task_id", task.ID.String()),
			slog.String("error", err.Error()))
		return store.NewStoreError("task", "update", "failed to update task", MapError(err))
	}

	return checkRowsAffected(result, store.ErrTaskNotFound)
}

// UpdatePosition implements store.TaskStore.UpdatePosition
func (s *TaskStore) UpdatePosition(ctx context.Context, id, columnID uuid.UUID, order int) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := s.dialect.Rebind(`
		UPDATE tasks
		SET column_id = $1, position = $2, updated_at = $3
		WHERE id = $4
	`)

	result, err := s.db.ExecContext(ctx, query, columnID, order, time.Now().UTC(), id)
	if err != nil {
		log.Error("failed to update task position",
			slog.String("task_id", id.String()),
			slog.String("error", err.Error()))
		return store.NewStoreError("task", "update", "failed to update task position", MapError(err))
	}

	return checkRowsAffected(result, store.ErrTaskNotFound)
}

// MoveToColumn implements store.TaskStore.MoveToColumn
func (s *TaskStore) MoveToColumn(ctx context.Context, ids []uuid.UUID, columnID uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	log := logger.FromContextOrDefault(ctx, s.logger)

	placeholders, args := inList(ids, 3)
	query := s.dialect.Rebind(`
		UPDATE tasks
		SET column_id = $1, updated_at = $2
		WHERE id IN (` + placeholders + `)
	`)

	result, err := s.db.ExecContext(ctx, query, append([]any{columnID, time.Now().UTC()}, args...)...)
	if err != nil {
		log.Error("failed to move tasks",
			slog.String("column_id", columnID.String()),
			slog.Int("task_count", len(ids)),
			slog.String("error", err.Error()))
		return 0, store.NewStoreError("task", "update", "failed to move tasks", MapError(err))
	}

	moved, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	log.Debug("tasks moved",
		slog.String("column_id", columnID.String()),
		slog.Int64("moved", moved))
	return moved, nil
}

// Delete implements store.TaskStore.Delete
func (s *TaskStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, s.dialect.Rebind(`DELETE FROM tasks WHERE id = $1`), id)
	if err != nil {
		log.Error("failed to delete task",
			slog.String("task_id", id.String()),
			slog.String("error", err.Error()))
		return store.NewStoreError("task", "delete", "failed to delete task", MapError(err))
	}

	return checkRowsAffected(result, store.ErrTaskNotFound)
}

// LockColumn implements store.TaskStore.LockColumn.
// On PostgreSQL it takes a transaction-scoped advisory lock keyed by the
// column ID. SQLite already serializes writers, so it is a no-op there.
func (s *TaskStore) LockColumn(ctx context.Context, columnID uuid.UUID) error {
	if s.dialect != DialectPostgres {
		return nil
	}

	_, err := s.db.ExecContext(ctx,
		`SELECT pg_advisory_xact_lock(hashtextextended($1, 0))`,
		columnID.String(),
	)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to lock column",
			slog.String("column_id", columnID.String()),
			slog.String("error", err.Error()))
		return fmt.Errorf("failed to lock column: %w", MapError(err))
	}

	return nil
}

// WithTx implements store.TaskStore.WithTx
func (s *TaskStore) WithTx(tx *sql.Tx) store.TaskStore {
	return &TaskStore{
		db:      tx,
		dialect: s.dialect,
		logger:  s.logger,
	}
}

// inList renders "$start, $start+1, ..." for ids and returns the matching args.
func inList(ids []uuid.UUID, start int) (string, []any) {
	var b strings.Builder
	args := make([]any, len(ids))
	for i, id := range ids {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "$%d", start+i)
		args[i] = id
	}
	return b.String(), args
}
