package api

import (
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/board-api/internal/domain"
)

// ColumnRequest is the body of column create and rename requests.
type ColumnRequest struct {
	Name string `json:"name" validate:"required"`
}

// ColumnResponse represents the response data for a column
type ColumnResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CreateTaskRequest is the body of POST /api/tasks.
// Order is a pointer so an explicit zero is accepted.
type CreateTaskRequest struct {
	Description string `json:"description" validate:"required"`
	Owner       string `json:"owner"       validate:"required"`
	ColumnID    string `json:"columnId"    validate:"required,uuid"`
	Order       *int   `json:"order"       validate:"required"`
}

// UpdateTaskRequest is the body of PUT /api/tasks/{id}. Omitted fields
// are left unchanged.
type UpdateTaskRequest struct {
	Description *string `json:"description"`
	Owner       *string `json:"owner"`
	ColumnID    *string `json:"columnId"`
	Order       *int    `json:"order"`
}

// toPatch converts the request into a domain patch.
func (r UpdateTaskRequest) toPatch() (domain.TaskPatch, error) {
	patch := domain.TaskPatch{
		Description: r.Description,
		Owner:       r.Owner,
		Order:       r.Order,
	}

	if r.ColumnID != nil {
		id, err := uuid.Parse(*r.ColumnID)
		if err != nil {
			return domain.TaskPatch{}, domain.NewValidationError("columnId", "has invalid format", domain.ErrInvalidID)
		}
		patch.ColumnID = &id
	}

	return patch, nil
}

// ReorderTaskItem assigns an order to one task.
type ReorderTaskItem struct {
	ID    string `json:"id"    validate:"required,uuid"`
	Order *int   `json:"order" validate:"required"`
}

// ReorderTasksRequest is the body of PATCH /api/tasks/reorder.
type ReorderTasksRequest struct {
	ColumnID string            `json:"columnId" validate:"required,uuid"`
	Tasks    []ReorderTaskItem `json:"tasks"    validate:"required,min=1,dive"`
}

// BulkUpdateTasksRequest is the body of PATCH /api/tasks/bulk-update.
type BulkUpdateTasksRequest struct {
	TaskIDs  []string `json:"taskIds"  validate:"required,min=1,dive,uuid"`
	ColumnID string   `json:"columnId" validate:"required,uuid"`
}

// TaskResponse represents the response data for a task
type TaskResponse struct {
	ID          uuid.UUID `json:"id"`
	Description string    `json:"description"`
	Owner       string    `json:"owner"`
	ColumnID    uuid.UUID `json:"columnId"`
	Order       int       `json:"order"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func columnToResponse(c *domain.Column) ColumnResponse {
	return ColumnResponse{
		ID:        c.ID,
		Name:      c.Name,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func columnsToResponse(columns []*domain.Column) []ColumnResponse {
	out := make([]ColumnResponse, 0, len(columns))
	for _, c := range columns {
		out = append(out, columnToResponse(c))
	}
	return out
}

func taskToResponse(t *domain.Task) TaskResponse {
	return TaskResponse{
		ID:          t.ID,
		Description: t.Description,
		Owner:       t.Owner,
		ColumnID:    t.ColumnID,
		Order:       t.Order,
		Status:      string(t.Status),
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func tasksToResponse(tasks []*domain.Task) []TaskResponse {
	out := make([]TaskResponse, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, taskToResponse(t))
	}
	return out
}
