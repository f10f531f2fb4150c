package sqlstore_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/phrazzld/board-api/internal/domain"
	"github.com/phrazzld/board-api/internal/platform/sqlstore"
	"github.com/phrazzld/board-api/internal/store"
	"github.com/phrazzld/board-api/internal/testdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTask(t *testing.T, tasks store.TaskStore, columnID uuid.UUID, description string, order int) *domain.Task {
	t.Helper()

	task, err := domain.NewTask(description, "owner@example.com", columnID, order)
	require.NoError(t, err)
	require.NoError(t, tasks.Create(context.Background(), task))
	return task
}

func TestTaskStore_CRUD(t *testing.T) {
	t.Parallel()

	db := testdb.GetTestDBWithT(t)
	tasks := sqlstore.NewTaskStore(db, db.Dialect, nil)
	ctx := context.Background()
	columnID := uuid.New()

	task := newTestTask(t, tasks, columnID, "Write release notes", 3)

	got, err := tasks.GetByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, task.Description, got.Description)
	assert.Equal(t, task.Owner, got.Owner)
	assert.Equal(t, columnID, got.ColumnID)
	assert.Equal(t, 3, got.Order)
	assert.Equal(t, domain.TaskStatusPending, got.Status)

	got.Complete()
	description := "Write better release notes"
	require.NoError(t, got.Apply(domain.TaskPatch{Description: &description}))
	require.NoError(t, tasks.Update(ctx, got))

	updated, err := tasks.GetByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, description, updated.Description)
	assert.Equal(t, domain.TaskStatusCompleted, updated.Status)

	require.NoError(t, tasks.Delete(ctx, task.ID))
	_, err = tasks.GetByID(ctx, task.ID)
	assert.ErrorIs(t, err, store.ErrTaskNotFound)
	assert.ErrorIs(t, tasks.Delete(ctx, task.ID), store.ErrTaskNotFound)
}

func TestTaskStore_ListByColumnSortsByOrder(t *testing.T) {
	t.Parallel()

	db := testdb.GetTestDBWithT(t)
	tasks := sqlstore.NewTaskStore(db, db.Dialect, nil)
	ctx := context.Background()
	columnID := uuid.New()

	third := newTestTask(t, tasks, columnID, "third", 5)
	first := newTestTask(t, tasks, columnID, "first", 1)
	time.Sleep(time.Millisecond)
	// Equal orders fall back to creation time.
	second := newTestTask(t, tasks, columnID, "second", 1)
	newTestTask(t, tasks, uuid.New(), "elsewhere", 0)

	list, err := tasks.ListByColumn(ctx, columnID)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, first.ID, list[0].ID)
	assert.Equal(t, second.ID, list[1].ID)
	assert.Equal(t, third.ID, list[2].ID)

	empty, err := tasks.ListByColumn(ctx, uuid.New())
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestTaskStore_GetByIDs(t *testing.T) {
	t.Parallel()

	db := testdb.GetTestDBWithT(t)
	tasks := sqlstore.NewTaskStore(db, db.Dialect, nil)
	ctx := context.Background()
	columnID := uuid.New()

	a := newTestTask(t, tasks, columnID, "a", 1)
	b := newTestTask(t, tasks, columnID, "b", 2)

	got, err := tasks.GetByIDs(ctx, []uuid.UUID{a.ID, b.ID})
	require.NoError(t, err)
	assert.Len(t, got, 2)

	got, err = tasks.GetByIDs(ctx, []uuid.UUID{a.ID, a.ID})
	require.NoError(t, err)
	assert.Len(t, got, 1, "duplicate ids resolve once")

	got, err = tasks.GetByIDs(ctx, []uuid.UUID{a.ID, uuid.New()})
	require.NoError(t, err)
	assert.Len(t, got, 1, "unknown ids are skipped")

	got, err = tasks.GetByIDs(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestTaskStore_UpdatePosition(t *testing.T) {
	t.Parallel()

	db := testdb.GetTestDBWithT(t)
	tasks := sqlstore.NewTaskStore(db, db.Dialect, nil)
	ctx := context.Background()
	columnID := uuid.New()

	task := newTestTask(t, tasks, columnID, "move me", 1)

	require.NoError(t, tasks.UpdatePosition(ctx, task.ID, columnID, 9))

	got, err := tasks.GetByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, 9, got.Order)
	assert.Equal(t, columnID, got.ColumnID)

	err = tasks.UpdatePosition(ctx, uuid.New(), columnID, 1)
	assert.ErrorIs(t, err, store.ErrTaskNotFound)
}

func TestTaskStore_MoveToColumn(t *testing.T) {
	t.Parallel()

	db := testdb.GetTestDBWithT(t)
	tasks := sqlstore.NewTaskStore(db, db.Dialect, nil)
	ctx := context.Background()
	from, to := uuid.New(), uuid.New()

	a := newTestTask(t, tasks, from, "a", 4)
	b := newTestTask(t, tasks, from, "b", 7)
	stay := newTestTask(t, tasks, from, "stay", 1)

	moved, err := tasks.MoveToColumn(ctx, []uuid.UUID{a.ID, b.ID}, to)
	require.NoError(t, err)
	assert.EqualValues(t, 2, moved)

	list, err := tasks.ListByColumn(ctx, to)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, 4, list[0].Order, "order is left unchanged")
	assert.Equal(t, 7, list[1].Order)

	remaining, err := tasks.ListByColumn(ctx, from)
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, stay.ID, remaining[0].ID)

	moved, err = tasks.MoveToColumn(ctx, nil, to)
	require.NoError(t, err)
	assert.Zero(t, moved)
}

func TestTaskStore_LockColumn(t *testing.T) {
	t.Parallel()

	t.Run("postgres takes an advisory lock", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		columnID := uuid.New()
		mock.ExpectExec(regexp.QuoteMeta("SELECT pg_advisory_xact_lock(hashtextextended($1, 0))")).
			WithArgs(columnID.String()).
			WillReturnResult(sqlmock.NewResult(0, 0))

		tasks := sqlstore.NewTaskStore(db, sqlstore.DialectPostgres, nil)
		require.NoError(t, tasks.LockColumn(context.Background(), columnID))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("sqlite is a no-op", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		tasks := sqlstore.NewTaskStore(db, sqlstore.DialectSQLite, nil)
		require.NoError(t, tasks.LockColumn(context.Background(), uuid.New()))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestTaskStore_MoveToColumnPostgresPlaceholders(t *testing.T) {
	t.Parallel()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	to := uuid.New()
	ids := []uuid.UUID{uuid.New(), uuid.New()}
	mock.ExpectExec(`UPDATE tasks\s+SET column_id = \$1, updated_at = \$2\s+WHERE id IN \(\$3, \$4\)`).
		WithArgs(to, sqlmock.AnyArg(), ids[0], ids[1]).
		WillReturnResult(sqlmock.NewResult(0, 2))

	tasks := sqlstore.NewTaskStore(db, sqlstore.DialectPostgres, nil)
	moved, err := tasks.MoveToColumn(context.Background(), ids, to)
	require.NoError(t, err)
	assert.EqualValues(t, 2, moved)
	assert.NoError(t, mock.ExpectationsWereMet())
}
