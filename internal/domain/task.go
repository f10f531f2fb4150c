package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// TaskStatus represents where a task is in its lifecycle.
type TaskStatus string

// Possible task status values. Completed is terminal.
const (
	TaskStatusPending   TaskStatus = "Pending"
	TaskStatusCompleted TaskStatus = "Completed"
)

// Task-specific validation errors
var (
	// ErrTaskIDEmpty is returned when a task ID is the nil UUID.
	ErrTaskIDEmpty = NewValidationError("id", "cannot be empty", ErrInvalidID)

	// ErrTaskDescriptionEmpty is returned when a task has no description.
	ErrTaskDescriptionEmpty = NewValidationError("description", "is required", nil)

	// ErrTaskOwnerEmpty is returned when a task has no owner.
	ErrTaskOwnerEmpty = NewValidationError("owner", "is required", nil)

	// ErrTaskColumnIDEmpty is returned when a task does not reference a column.
	ErrTaskColumnIDEmpty = NewValidationError("columnId", "is required", nil)

	// ErrTaskStatusInvalid is returned for a status outside the known set.
	ErrTaskStatusInvalid = NewValidationError("status", "is not a known status", ErrInvalidTaskStatus)
)

// Task is a card on the board. Order positions it within its column;
// duplicate orders are allowed and left to the caller to resolve.
type Task struct {
	ID          uuid.UUID  `json:"id"`
	Description string     `json:"description"`
	Owner       string     `json:"owner"`
	ColumnID    uuid.UUID  `json:"columnId"`
	Order       int        `json:"order"`
	Status      TaskStatus `json:"status"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// TaskPatch carries the fields of a partial task update.
// Nil fields are left unchanged.
type TaskPatch struct {
	Description *string
	Owner       *string
	ColumnID    *uuid.UUID
	Order       *int
}

// IsEmpty reports whether the patch changes nothing.
func (p TaskPatch) IsEmpty() bool {
	return p.Description == nil && p.Owner == nil && p.ColumnID == nil && p.Order == nil
}

// NewTask creates a pending Task with a fresh ID and timestamps.
func NewTask(description, owner string, columnID uuid.UUID, order int) (*Task, error) {
	now := time.Now().UTC()
	task := &Task{
		ID:          uuid.New(),
		Description: strings.TrimSpace(description),
		Owner:       strings.TrimSpace(owner),
		ColumnID:    columnID,
		Order:       order,
		Status:      TaskStatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	return task, nil
}

// Validate checks if the Task has valid data.
func (t *Task) Validate() error {
	if t.ID == uuid.Nil {
		return ErrTaskIDEmpty
	}

	if strings.TrimSpace(t.Description) == "" {
		return ErrTaskDescriptionEmpty
	}

	if strings.TrimSpace(t.Owner) == "" {
		return ErrTaskOwnerEmpty
	}

	if t.ColumnID == uuid.Nil {
		return ErrTaskColumnIDEmpty
	}

	if !t.Status.IsValid() {
		return ErrTaskStatusInvalid
	}

	return nil
}

// Apply copies the non-nil fields of p onto the task and validates the
// result. On failure the task is restored to its previous state.
func (t *Task) Apply(p TaskPatch) error {
	orig := *t

	if p.Description != nil {
		t.Description = strings.TrimSpace(*p.Description)
	}
	if p.Owner != nil {
		t.Owner = strings.TrimSpace(*p.Owner)
	}
	if p.ColumnID != nil {
		t.ColumnID = *p.ColumnID
	}
	if p.Order != nil {
		t.Order = *p.Order
	}

	if err := t.Validate(); err != nil {
		*t = orig
		return err
	}

	t.UpdatedAt = time.Now().UTC()
	return nil
}

// Complete marks the task completed. It reports whether the status changed,
// so callers can tell a first completion from a repeat.
func (t *Task) Complete() bool {
	if t.Status == TaskStatusCompleted {
		return false
	}
	t.Status = TaskStatusCompleted
	t.UpdatedAt = time.Now().UTC()
	return true
}

// IsValid reports whether s is a known status.
func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskStatusPending, TaskStatusCompleted:
		return true
	default:
		return false
	}
}
