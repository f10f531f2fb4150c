package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/phrazzld/board-api/internal/domain"
	"github.com/phrazzld/board-api/internal/platform/sqlstore"
	"github.com/phrazzld/board-api/internal/testdb"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockNotifier mocks the notify.Notifier interface
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) NotifyTaskCompleted(ctx context.Context, task *domain.Task) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

// testBoard wires real SQLite-backed stores into the services under test.
type testBoard struct {
	repos    Repositories
	columns  ColumnService
	tasks    TaskService
	notifier *MockNotifier
}

func newTestBoard(t *testing.T, cfg TaskServiceConfig) *testBoard {
	t.Helper()

	db := testdb.GetTestDBWithT(t)
	repos := Repositories{
		Columns: sqlstore.NewColumnStore(db, db.Dialect, nil),
		Tasks:   sqlstore.NewTaskStore(db, db.Dialect, nil),
	}

	columns, err := NewColumnService(repos.Columns, nil)
	require.NoError(t, err)

	notifier := &MockNotifier{}
	tasks, err := NewTaskService(repos, NewSQLTxRunner(db.DB, repos), notifier, cfg, nil)
	require.NoError(t, err)

	return &testBoard{repos: repos, columns: columns, tasks: tasks, notifier: notifier}
}

func (b *testBoard) column(t *testing.T, name string) *domain.Column {
	t.Helper()
	column, err := b.columns.CreateColumn(context.Background(), name)
	require.NoError(t, err)
	return column
}

func (b *testBoard) task(t *testing.T, columnID uuid.UUID, description string, order int) *domain.Task {
	t.Helper()
	task, err := b.tasks.CreateTask(context.Background(), CreateTaskParams{
		Description: description,
		Owner:       "owner@example.com",
		ColumnID:    columnID,
		Order:       order,
	})
	require.NoError(t, err)
	return task
}

type position struct {
	ColumnID uuid.UUID
	Order    int
}

// snapshot records where each task currently sits.
func (b *testBoard) snapshot(t *testing.T, ids ...uuid.UUID) map[uuid.UUID]position {
	t.Helper()
	out := make(map[uuid.UUID]position, len(ids))
	for _, id := range ids {
		task, err := b.repos.Tasks.GetByID(context.Background(), id)
		require.NoError(t, err)
		out[id] = position{ColumnID: task.ColumnID, Order: task.Order}
	}
	return out
}
