package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/phrazzld/board-api/internal/domain"
	"github.com/phrazzld/board-api/internal/notify"
	"github.com/phrazzld/board-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewTaskService(t *testing.T) {
	board := newTestBoard(t, DefaultTaskServiceConfig())
	tx := &stubTxRunner{}

	tests := []struct {
		name     string
		repos    Repositories
		tx       TxRunner
		notifier *MockNotifier
		field    string
	}{
		{"nil columns", Repositories{Tasks: board.repos.Tasks}, tx, &MockNotifier{}, "columns"},
		{"nil tasks", Repositories{Columns: board.repos.Columns}, tx, &MockNotifier{}, "tasks"},
		{"nil tx", board.repos, nil, &MockNotifier{}, "tx"},
		{"nil notifier", board.repos, tx, nil, "notifier"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var notifier notify.Notifier
			if tc.notifier != nil {
				notifier = tc.notifier
			}
			_, err := NewTaskService(tc.repos, tc.tx, notifier, DefaultTaskServiceConfig(), nil)
			var valErr *domain.ValidationError
			require.ErrorAs(t, err, &valErr)
			assert.Equal(t, tc.field, valErr.Field)
		})
	}
}

type stubTxRunner struct{}

func (stubTxRunner) RunInTx(ctx context.Context, fn func(ctx context.Context, repos Repositories) error) error {
	return errors.New("not used")
}

func TestTaskService_CreateTask(t *testing.T) {
	t.Parallel()
	board := newTestBoard(t, DefaultTaskServiceConfig())
	ctx := context.Background()
	column := board.column(t, "To Do")

	task, err := board.tasks.CreateTask(ctx, CreateTaskParams{
		Description: "Write docs",
		Owner:       "owner@example.com",
		ColumnID:    column.ID,
		Order:       1,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.TaskStatusPending, task.Status)

	stored, err := board.tasks.GetTask(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, "Write docs", stored.Description)
	assert.Equal(t, column.ID, stored.ColumnID)

	t.Run("unknown column", func(t *testing.T) {
		_, err := board.tasks.CreateTask(ctx, CreateTaskParams{
			Description: "Lost",
			Owner:       "owner@example.com",
			ColumnID:    uuid.New(),
			Order:       1,
		})
		assert.ErrorIs(t, err, store.ErrColumnNotFound)

		tasks, err := board.tasks.ListColumnTasks(ctx, column.ID)
		require.NoError(t, err)
		assert.Len(t, tasks, 1, "no task is persisted for a missing column")
	})

	t.Run("missing description", func(t *testing.T) {
		_, err := board.tasks.CreateTask(ctx, CreateTaskParams{Owner: "o", ColumnID: column.ID})
		assert.ErrorIs(t, err, domain.ErrTaskDescriptionEmpty)
	})
}

func TestTaskService_ListColumnTasks(t *testing.T) {
	t.Parallel()
	board := newTestBoard(t, DefaultTaskServiceConfig())
	ctx := context.Background()
	column := board.column(t, "To Do")

	second := board.task(t, column.ID, "second", 2)
	first := board.task(t, column.ID, "first", 1)

	tasks, err := board.tasks.ListColumnTasks(ctx, column.ID)
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, first.ID, tasks[0].ID)
	assert.Equal(t, second.ID, tasks[1].ID)

	_, err = board.tasks.ListColumnTasks(ctx, uuid.New())
	assert.ErrorIs(t, err, store.ErrColumnNotFound)
}

func TestTaskService_UpdateTask(t *testing.T) {
	t.Parallel()
	board := newTestBoard(t, DefaultTaskServiceConfig())
	ctx := context.Background()
	column := board.column(t, "To Do")
	task := board.task(t, column.ID, "Write docs", 1)

	description := "Write better docs"
	updated, err := board.tasks.UpdateTask(ctx, task.ID, domain.TaskPatch{Description: &description})
	require.NoError(t, err)
	assert.Equal(t, description, updated.Description)
	assert.Equal(t, "owner@example.com", updated.Owner)
	assert.Equal(t, 1, updated.Order)

	t.Run("unknown column", func(t *testing.T) {
		missing := uuid.New()
		_, err := board.tasks.UpdateTask(ctx, task.ID, domain.TaskPatch{ColumnID: &missing})
		assert.ErrorIs(t, err, store.ErrColumnNotFound)

		stored, err := board.tasks.GetTask(ctx, task.ID)
		require.NoError(t, err)
		assert.Equal(t, column.ID, stored.ColumnID)
	})

	t.Run("unknown task", func(t *testing.T) {
		_, err := board.tasks.UpdateTask(ctx, uuid.New(), domain.TaskPatch{Description: &description})
		assert.ErrorIs(t, err, store.ErrTaskNotFound)
	})

	t.Run("empty owner", func(t *testing.T) {
		empty := " "
		_, err := board.tasks.UpdateTask(ctx, task.ID, domain.TaskPatch{Owner: &empty})
		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}

func TestTaskService_DeleteTask(t *testing.T) {
	t.Parallel()
	board := newTestBoard(t, DefaultTaskServiceConfig())
	ctx := context.Background()
	column := board.column(t, "To Do")
	task := board.task(t, column.ID, "Write docs", 1)

	require.NoError(t, board.tasks.DeleteTask(ctx, task.ID))

	err := board.tasks.DeleteTask(ctx, task.ID)
	assert.ErrorIs(t, err, store.ErrTaskNotFound)

	_, err = board.tasks.GetTask(ctx, task.ID)
	assert.ErrorIs(t, err, store.ErrTaskNotFound)
}

func TestTaskService_ReorderTasks(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("swap", func(t *testing.T) {
		board := newTestBoard(t, DefaultTaskServiceConfig())
		column := board.column(t, "To Do")
		a := board.task(t, column.ID, "a", 1)
		b := board.task(t, column.ID, "b", 2)

		err := board.tasks.ReorderTasks(ctx, column.ID, []ReorderEntry{
			{TaskID: a.ID, Order: 2},
			{TaskID: b.ID, Order: 1},
		})
		require.NoError(t, err)

		tasks, err := board.tasks.ListColumnTasks(ctx, column.ID)
		require.NoError(t, err)
		require.Len(t, tasks, 2)
		assert.Equal(t, b.ID, tasks[0].ID)
		assert.Equal(t, a.ID, tasks[1].ID)
	})

	t.Run("missing task leaves board unchanged", func(t *testing.T) {
		board := newTestBoard(t, DefaultTaskServiceConfig())
		column := board.column(t, "To Do")
		a := board.task(t, column.ID, "a", 1)
		b := board.task(t, column.ID, "b", 2)
		before := board.snapshot(t, a.ID, b.ID)

		missing := uuid.New()
		err := board.tasks.ReorderTasks(ctx, column.ID, []ReorderEntry{
			{TaskID: a.ID, Order: 5},
			{TaskID: missing, Order: 6},
			{TaskID: b.ID, Order: 7},
		})
		var refErr *TaskReferenceError
		require.ErrorAs(t, err, &refErr)
		assert.Equal(t, missing, refErr.TaskID)
		assert.ErrorIs(t, err, store.ErrTaskNotFound)
		assert.Contains(t, err.Error(), missing.String())

		assert.Equal(t, before, board.snapshot(t, a.ID, b.ID))
	})

	t.Run("task from another column is rejected", func(t *testing.T) {
		board := newTestBoard(t, DefaultTaskServiceConfig())
		todo := board.column(t, "To Do")
		done := board.column(t, "Done")
		a := board.task(t, todo.ID, "a", 1)
		other := board.task(t, done.ID, "other", 1)
		before := board.snapshot(t, a.ID, other.ID)

		err := board.tasks.ReorderTasks(ctx, todo.ID, []ReorderEntry{
			{TaskID: a.ID, Order: 3},
			{TaskID: other.ID, Order: 4},
		})
		assert.ErrorIs(t, err, ErrTaskNotInColumn)
		var refErr *TaskReferenceError
		require.ErrorAs(t, err, &refErr)
		assert.Equal(t, other.ID, refErr.TaskID)

		assert.Equal(t, before, board.snapshot(t, a.ID, other.ID))
	})

	t.Run("membership not required moves the task", func(t *testing.T) {
		board := newTestBoard(t, TaskServiceConfig{RequireColumnMembership: false})
		todo := board.column(t, "To Do")
		done := board.column(t, "Done")
		other := board.task(t, done.ID, "other", 1)

		err := board.tasks.ReorderTasks(ctx, todo.ID, []ReorderEntry{{TaskID: other.ID, Order: 9}})
		require.NoError(t, err)

		after := board.snapshot(t, other.ID)
		assert.Equal(t, position{ColumnID: todo.ID, Order: 9}, after[other.ID])
	})

	t.Run("duplicate orders are kept", func(t *testing.T) {
		board := newTestBoard(t, DefaultTaskServiceConfig())
		column := board.column(t, "To Do")
		a := board.task(t, column.ID, "a", 1)
		b := board.task(t, column.ID, "b", 2)

		err := board.tasks.ReorderTasks(ctx, column.ID, []ReorderEntry{
			{TaskID: a.ID, Order: 1},
			{TaskID: b.ID, Order: 1},
		})
		require.NoError(t, err)

		after := board.snapshot(t, a.ID, b.ID)
		assert.Equal(t, 1, after[a.ID].Order)
		assert.Equal(t, 1, after[b.ID].Order)
	})

	t.Run("unknown column", func(t *testing.T) {
		board := newTestBoard(t, DefaultTaskServiceConfig())
		column := board.column(t, "To Do")
		a := board.task(t, column.ID, "a", 1)

		err := board.tasks.ReorderTasks(ctx, uuid.New(), []ReorderEntry{{TaskID: a.ID, Order: 2}})
		assert.ErrorIs(t, err, store.ErrColumnNotFound)
	})

	t.Run("empty request", func(t *testing.T) {
		board := newTestBoard(t, DefaultTaskServiceConfig())
		column := board.column(t, "To Do")

		err := board.tasks.ReorderTasks(ctx, column.ID, nil)
		assert.ErrorIs(t, err, ErrNoTasks)
		assert.ErrorIs(t, err, domain.ErrValidation)

		err = board.tasks.ReorderTasks(ctx, column.ID, []ReorderEntry{{TaskID: uuid.Nil, Order: 1}})
		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}

func TestTaskService_BulkUpdateTasks(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("moves every task and keeps orders", func(t *testing.T) {
		board := newTestBoard(t, DefaultTaskServiceConfig())
		todo := board.column(t, "To Do")
		done := board.column(t, "Done")
		a := board.task(t, todo.ID, "a", 1)
		b := board.task(t, todo.ID, "b", 4)

		require.NoError(t, board.tasks.BulkUpdateTasks(ctx, []uuid.UUID{a.ID, b.ID}, done.ID))

		after := board.snapshot(t, a.ID, b.ID)
		assert.Equal(t, position{ColumnID: done.ID, Order: 1}, after[a.ID])
		assert.Equal(t, position{ColumnID: done.ID, Order: 4}, after[b.ID])

		remaining, err := board.tasks.ListColumnTasks(ctx, todo.ID)
		require.NoError(t, err)
		assert.Empty(t, remaining)
	})

	t.Run("missing task moves nothing", func(t *testing.T) {
		board := newTestBoard(t, DefaultTaskServiceConfig())
		todo := board.column(t, "To Do")
		done := board.column(t, "Done")
		a := board.task(t, todo.ID, "a", 1)
		before := board.snapshot(t, a.ID)

		err := board.tasks.BulkUpdateTasks(ctx, []uuid.UUID{a.ID, uuid.New()}, done.ID)
		assert.ErrorIs(t, err, ErrTasksNotFound)
		assert.True(t, store.IsNotFoundError(err))

		assert.Equal(t, before, board.snapshot(t, a.ID))
	})

	t.Run("duplicate id counts as missing", func(t *testing.T) {
		board := newTestBoard(t, DefaultTaskServiceConfig())
		todo := board.column(t, "To Do")
		done := board.column(t, "Done")
		a := board.task(t, todo.ID, "a", 1)
		before := board.snapshot(t, a.ID)

		err := board.tasks.BulkUpdateTasks(ctx, []uuid.UUID{a.ID, a.ID}, done.ID)
		assert.ErrorIs(t, err, ErrTasksNotFound)

		assert.Equal(t, before, board.snapshot(t, a.ID))
	})

	t.Run("unknown target column", func(t *testing.T) {
		board := newTestBoard(t, DefaultTaskServiceConfig())
		todo := board.column(t, "To Do")
		a := board.task(t, todo.ID, "a", 1)

		err := board.tasks.BulkUpdateTasks(ctx, []uuid.UUID{a.ID}, uuid.New())
		assert.ErrorIs(t, err, store.ErrColumnNotFound)
	})

	t.Run("empty request", func(t *testing.T) {
		board := newTestBoard(t, DefaultTaskServiceConfig())
		todo := board.column(t, "To Do")

		err := board.tasks.BulkUpdateTasks(ctx, nil, todo.ID)
		assert.ErrorIs(t, err, ErrNoTasks)
	})
}

func TestTaskService_MarkTaskAsCompleted(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("notifies the owner", func(t *testing.T) {
		board := newTestBoard(t, DefaultTaskServiceConfig())
		column := board.column(t, "To Do")
		task := board.task(t, column.ID, "Ship it", 1)

		board.notifier.On("NotifyTaskCompleted", mock.Anything, mock.MatchedBy(func(got *domain.Task) bool {
			return got.ID == task.ID && got.Status == domain.TaskStatusCompleted
		})).Return(nil).Once()

		completed, err := board.tasks.MarkTaskAsCompleted(ctx, task.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.TaskStatusCompleted, completed.Status)

		stored, err := board.tasks.GetTask(ctx, task.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.TaskStatusCompleted, stored.Status)
		board.notifier.AssertExpectations(t)
	})

	t.Run("notification failure does not fail completion", func(t *testing.T) {
		board := newTestBoard(t, DefaultTaskServiceConfig())
		column := board.column(t, "To Do")
		task := board.task(t, column.ID, "Ship it", 1)

		board.notifier.On("NotifyTaskCompleted", mock.Anything, mock.Anything).
			Return(errors.New("smtp unavailable")).Once()

		completed, err := board.tasks.MarkTaskAsCompleted(ctx, task.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.TaskStatusCompleted, completed.Status)

		stored, err := board.tasks.GetTask(ctx, task.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.TaskStatusCompleted, stored.Status)
	})

	t.Run("repeat completion stays completed", func(t *testing.T) {
		board := newTestBoard(t, DefaultTaskServiceConfig())
		column := board.column(t, "To Do")
		task := board.task(t, column.ID, "Ship it", 1)

		board.notifier.On("NotifyTaskCompleted", mock.Anything, mock.Anything).Return(nil).Twice()

		_, err := board.tasks.MarkTaskAsCompleted(ctx, task.ID)
		require.NoError(t, err)
		again, err := board.tasks.MarkTaskAsCompleted(ctx, task.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.TaskStatusCompleted, again.Status)
		board.notifier.AssertExpectations(t)
	})

	t.Run("unknown task is not notified", func(t *testing.T) {
		board := newTestBoard(t, DefaultTaskServiceConfig())

		_, err := board.tasks.MarkTaskAsCompleted(ctx, uuid.New())
		assert.ErrorIs(t, err, store.ErrTaskNotFound)
		board.notifier.AssertNotCalled(t, "NotifyTaskCompleted", mock.Anything, mock.Anything)
	})
}
