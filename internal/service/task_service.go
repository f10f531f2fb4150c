package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/board-api/internal/domain"
	"github.com/phrazzld/board-api/internal/notify"
	"github.com/phrazzld/board-api/internal/platform/logger"
	"github.com/phrazzld/board-api/internal/redact"
	"github.com/phrazzld/board-api/internal/store"
)

// CreateTaskParams holds the fields of a new task.
type CreateTaskParams struct {
	Description string
	Owner       string
	ColumnID    uuid.UUID
	Order       int
}

// ReorderEntry assigns an order to one task.
type ReorderEntry struct {
	TaskID uuid.UUID
	Order  int
}

// TaskService provides task-related operations
type TaskService interface {
	// CreateTask creates a pending task in an existing column
	CreateTask(ctx context.Context, params CreateTaskParams) (*domain.Task, error)

	// GetTask retrieves a task by its ID
	GetTask(ctx context.Context, id uuid.UUID) (*domain.Task, error)

	// ListColumnTasks returns the tasks of a column sorted by order
	ListColumnTasks(ctx context.Context, columnID uuid.UUID) ([]*domain.Task, error)

	// UpdateTask applies a partial update to a task
	UpdateTask(ctx context.Context, id uuid.UUID, patch domain.TaskPatch) (*domain.Task, error)

	// DeleteTask removes a task
	DeleteTask(ctx context.Context, id uuid.UUID) error

	// ReorderTasks sets the order of several tasks of one column atomically
	ReorderTasks(ctx context.Context, columnID uuid.UUID, entries []ReorderEntry) error

	// BulkUpdateTasks moves several tasks into one column atomically
	BulkUpdateTasks(ctx context.Context, taskIDs []uuid.UUID, columnID uuid.UUID) error

	// MarkTaskAsCompleted completes a task and notifies its owner
	MarkTaskAsCompleted(ctx context.Context, id uuid.UUID) (*domain.Task, error)
}

// TaskServiceConfig holds behaviour switches for the task service.
type TaskServiceConfig struct {
	// RequireColumnMembership rejects reorder entries for tasks that
	// belong to a different column than the one being reordered.
	RequireColumnMembership bool
}

// DefaultTaskServiceConfig returns the recommended configuration.
func DefaultTaskServiceConfig() TaskServiceConfig {
	return TaskServiceConfig{RequireColumnMembership: true}
}

type taskServiceImpl struct {
	repos    Repositories
	tx       TxRunner
	notifier notify.Notifier
	config   TaskServiceConfig
	logger   *slog.Logger
}

// NewTaskService creates a new TaskService.
// It returns an error if any of the required dependencies are nil.
func NewTaskService(
	repos Repositories,
	tx TxRunner,
	notifier notify.Notifier,
	config TaskServiceConfig,
	logger *slog.Logger,
) (TaskService, error) {
	if repos.Columns == nil {
		return nil, domain.NewValidationError("columns", "cannot be nil", nil)
	}
	if repos.Tasks == nil {
		return nil, domain.NewValidationError("tasks", "cannot be nil", nil)
	}
	if tx == nil {
		return nil, domain.NewValidationError("tx", "cannot be nil", nil)
	}
	if notifier == nil {
		return nil, domain.NewValidationError("notifier", "cannot be nil", nil)
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &taskServiceImpl{
		repos:    repos,
		tx:       tx,
		notifier: notifier,
		config:   config,
		logger:   logger.With(slog.String("component", "task_service")),
	}, nil
}

// CreateTask implements TaskService.CreateTask.
// The column must exist; otherwise store.ErrColumnNotFound is returned.
func (s *taskServiceImpl) CreateTask(ctx context.Context, params CreateTaskParams) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	task, err := domain.NewTask(params.Description, params.Owner, params.ColumnID, params.Order)
	if err != nil {
		return nil, err
	}

	err = s.tx.RunInTx(ctx, func(ctx context.Context, repos Repositories) error {
		if _, err := repos.Columns.GetByID(ctx, task.ColumnID); err != nil {
			return err
		}
		return repos.Tasks.Create(ctx, task)
	})
	if err != nil {
		if !store.IsNotFoundError(err) {
			log.Error("failed to create task",
				slog.String("column_id", params.ColumnID.String()),
				slog.String("error", err.Error()))
		}
		return nil, NewBoardServiceError("create_task", "failed to save task", err)
	}

	log.Info("task created",
		slog.String("task_id", task.ID.String()),
		slog.String("column_id", task.ColumnID.String()))
	return task, nil
}

// GetTask implements TaskService.GetTask
func (s *taskServiceImpl) GetTask(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	task, err := s.repos.Tasks.GetByID(ctx, id)
	if err != nil {
		return nil, NewBoardServiceError("get_task", "failed to retrieve task", err)
	}
	return task, nil
}

// ListColumnTasks implements TaskService.ListColumnTasks
func (s *taskServiceImpl) ListColumnTasks(ctx context.Context, columnID uuid.UUID) ([]*domain.Task, error) {
	if _, err := s.repos.Columns.GetByID(ctx, columnID); err != nil {
		return nil, NewBoardServiceError("list_column_tasks", "failed to retrieve column", err)
	}

	tasks, err := s.repos.Tasks.ListByColumn(ctx, columnID)
	if err != nil {
		return nil, NewBoardServiceError("list_column_tasks", "failed to list tasks", err)
	}
	return tasks, nil
}

// UpdateTask implements TaskService.UpdateTask.
// A new column ID must reference an existing column.
func (s *taskServiceImpl) UpdateTask(ctx context.Context, id uuid.UUID, patch domain.TaskPatch) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var updated *domain.Task
	err := s.tx.RunInTx(ctx, func(ctx context.Context, repos Repositories) error {
		task, err := repos.Tasks.GetByID(ctx, id)
		if err != nil {
			return err
		}

		if err := task.Apply(patch); err != nil {
			return err
		}

		if patch.ColumnID != nil {
			if _, err := repos.Columns.GetByID(ctx, *patch.ColumnID); err != nil {
				return err
			}
		}

		if err := repos.Tasks.Update(ctx, task); err != nil {
			return err
		}
		updated = task
		return nil
	})
	if err != nil {
		return nil, NewBoardServiceError("update_task", "failed to update task", err)
	}

	log.Info("task updated", slog.String("task_id", id.String()))
	return updated, nil
}

// DeleteTask implements TaskService.DeleteTask
func (s *taskServiceImpl) DeleteTask(ctx context.Context, id uuid.UUID) error {
	if err := s.repos.Tasks.Delete(ctx, id); err != nil {
		return NewBoardServiceError("delete_task", "failed to delete task", err)
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("task deleted", slog.String("task_id", id.String()))
	return nil
}

// ReorderTasks implements TaskService.ReorderTasks.
//
// Every entry is checked before anything is written: the column must
// exist, every task must exist and, when membership is required, belong
// to the column. The writes then run in the same transaction under a
// per-column lock, so the request applies completely or not at all.
// Duplicate orders are stored as given.
func (s *taskServiceImpl) ReorderTasks(ctx context.Context, columnID uuid.UUID, entries []ReorderEntry) error {
	log := logger.FromContextOrDefault(ctx, s.logger).With(slog.String("column_id", columnID.String()))

	if len(entries) == 0 {
		return ErrNoTasks
	}

	ids := make([]uuid.UUID, len(entries))
	for i, e := range entries {
		if e.TaskID == uuid.Nil {
			return domain.NewValidationError("tasks", "contains an empty task id", domain.ErrInvalidID)
		}
		ids[i] = e.TaskID
	}

	err := s.tx.RunInTx(ctx, func(ctx context.Context, repos Repositories) error {
		if err := repos.Tasks.LockColumn(ctx, columnID); err != nil {
			return err
		}

		if _, err := repos.Columns.GetByID(ctx, columnID); err != nil {
			return err
		}

		found, err := repos.Tasks.GetByIDs(ctx, ids)
		if err != nil {
			return err
		}
		byID := make(map[uuid.UUID]*domain.Task, len(found))
		for _, t := range found {
			byID[t.ID] = t
		}

		for _, e := range entries {
			task, ok := byID[e.TaskID]
			if !ok {
				return &TaskReferenceError{TaskID: e.TaskID, ColumnID: columnID, Err: store.ErrTaskNotFound}
			}
			if s.config.RequireColumnMembership && task.ColumnID != columnID {
				return &TaskReferenceError{TaskID: e.TaskID, ColumnID: columnID, Err: ErrTaskNotInColumn}
			}
		}

		for _, e := range entries {
			if err := repos.Tasks.UpdatePosition(ctx, e.TaskID, columnID, e.Order); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.Warn("reorder rejected", slog.String("error", err.Error()))
		return NewBoardServiceError("reorder_tasks", "failed to reorder tasks", err)
	}

	log.Info("tasks reordered", slog.Int("task_count", len(entries)))
	return nil
}

// BulkUpdateTasks implements TaskService.BulkUpdateTasks.
//
// Every ID must resolve to a distinct existing task; a missing or repeated
// ID fails the whole request with ErrTasksNotFound before any write. Task
// orders are left as they were.
func (s *taskServiceImpl) BulkUpdateTasks(ctx context.Context, taskIDs []uuid.UUID, columnID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger).With(slog.String("column_id", columnID.String()))

	if len(taskIDs) == 0 {
		return ErrNoTasks
	}

	err := s.tx.RunInTx(ctx, func(ctx context.Context, repos Repositories) error {
		if err := repos.Tasks.LockColumn(ctx, columnID); err != nil {
			return err
		}

		if _, err := repos.Columns.GetByID(ctx, columnID); err != nil {
			return err
		}

		found, err := repos.Tasks.GetByIDs(ctx, taskIDs)
		if err != nil {
			return err
		}
		if len(found) < len(taskIDs) {
			log.Debug("bulk update references unknown tasks",
				slog.Int("requested", len(taskIDs)),
				slog.Int("found", len(found)))
			return ErrTasksNotFound
		}

		_, err = repos.Tasks.MoveToColumn(ctx, taskIDs, columnID)
		return err
	})
	if err != nil {
		return NewBoardServiceError("bulk_update_tasks", "failed to move tasks", err)
	}

	log.Info("tasks moved", slog.Int("task_count", len(taskIDs)))
	return nil
}

// MarkTaskAsCompleted implements TaskService.MarkTaskAsCompleted.
// The owner is notified after the status is saved; a notification failure
// is logged and does not fail the call.
func (s *taskServiceImpl) MarkTaskAsCompleted(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger).With(slog.String("task_id", id.String()))

	var completed *domain.Task
	err := s.tx.RunInTx(ctx, func(ctx context.Context, repos Repositories) error {
		task, err := repos.Tasks.GetByID(ctx, id)
		if err != nil {
			return err
		}

		if task.Complete() {
			if err := repos.Tasks.Update(ctx, task); err != nil {
				return err
			}
		} else {
			log.Debug("task already completed")
		}
		completed = task
		return nil
	})
	if err != nil {
		return nil, NewBoardServiceError("complete_task", "failed to complete task", err)
	}

	if err := s.notifier.NotifyTaskCompleted(ctx, completed); err != nil {
		log.Error("failed to notify task owner", slog.String("error", redact.Error(err)))
	}

	log.Info("task completed")
	return completed, nil
}
