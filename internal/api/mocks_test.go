package api

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/board-api/internal/domain"
	"github.com/phrazzld/board-api/internal/service"
)

// MockColumnService is a mock implementation of service.ColumnService for testing
type MockColumnService struct {
	CreateColumnFn func(ctx context.Context, name string) (*domain.Column, error)
	GetColumnFn    func(ctx context.Context, id uuid.UUID) (*domain.Column, error)
	ListColumnsFn  func(ctx context.Context) ([]*domain.Column, error)
	UpdateColumnFn func(ctx context.Context, id uuid.UUID, name string) (*domain.Column, error)
	DeleteColumnFn func(ctx context.Context, id uuid.UUID) error
}

func (m *MockColumnService) CreateColumn(ctx context.Context, name string) (*domain.Column, error) {
	return m.CreateColumnFn(ctx, name)
}

func (m *MockColumnService) GetColumn(ctx context.Context, id uuid.UUID) (*domain.Column, error) {
	return m.GetColumnFn(ctx, id)
}

func (m *MockColumnService) ListColumns(ctx context.Context) ([]*domain.Column, error) {
	return m.ListColumnsFn(ctx)
}

func (m *MockColumnService) UpdateColumn(ctx context.Context, id uuid.UUID, name string) (*domain.Column, error) {
	return m.UpdateColumnFn(ctx, id, name)
}

func (m *MockColumnService) DeleteColumn(ctx context.Context, id uuid.UUID) error {
	return m.DeleteColumnFn(ctx, id)
}

// MockTaskService is a mock implementation of service.TaskService for testing
type MockTaskService struct {
	CreateTaskFn          func(ctx context.Context, params service.CreateTaskParams) (*domain.Task, error)
	GetTaskFn             func(ctx context.Context, id uuid.UUID) (*domain.Task, error)
	ListColumnTasksFn     func(ctx context.Context, columnID uuid.UUID) ([]*domain.Task, error)
	UpdateTaskFn          func(ctx context.Context, id uuid.UUID, patch domain.TaskPatch) (*domain.Task, error)
	DeleteTaskFn          func(ctx context.Context, id uuid.UUID) error
	ReorderTasksFn        func(ctx context.Context, columnID uuid.UUID, entries []service.ReorderEntry) error
	BulkUpdateTasksFn     func(ctx context.Context, taskIDs []uuid.UUID, columnID uuid.UUID) error
	MarkTaskAsCompletedFn func(ctx context.Context, id uuid.UUID) (*domain.Task, error)
}

func (m *MockTaskService) CreateTask(ctx context.Context, params service.CreateTaskParams) (*domain.Task, error) {
	return m.CreateTaskFn(ctx, params)
}

func (m *MockTaskService) GetTask(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	return m.GetTaskFn(ctx, id)
}

func (m *MockTaskService) ListColumnTasks(ctx context.Context, columnID uuid.UUID) ([]*domain.Task, error) {
	return m.ListColumnTasksFn(ctx, columnID)
}

func (m *MockTaskService) UpdateTask(ctx context.Context, id uuid.UUID, patch domain.TaskPatch) (*domain.Task, error) {
	return m.UpdateTaskFn(ctx, id, patch)
}

func (m *MockTaskService) DeleteTask(ctx context.Context, id uuid.UUID) error {
	return m.DeleteTaskFn(ctx, id)
}

func (m *MockTaskService) ReorderTasks(ctx context.Context, columnID uuid.UUID, entries []service.ReorderEntry) error {
	return m.ReorderTasksFn(ctx, columnID, entries)
}

func (m *MockTaskService) BulkUpdateTasks(ctx context.Context, taskIDs []uuid.UUID, columnID uuid.UUID) error {
	return m.BulkUpdateTasksFn(ctx, taskIDs, columnID)
}

func (m *MockTaskService) MarkTaskAsCompleted(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	return m.MarkTaskAsCompletedFn(ctx, id)
}
