package service

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/phrazzld/board-api/internal/domain"
	"github.com/phrazzld/board-api/internal/store"
)

// Service errors that callers may check with errors.Is.
var (
	// ErrTasksNotFound indicates that at least one task of a bulk request
	// does not exist. Duplicated IDs in the request also trigger it.
	// API layer should map this to HTTP 404 Not Found.
	ErrTasksNotFound = fmt.Errorf("%w: one or more tasks not found", store.ErrNotFound)

	// ErrTaskNotInColumn indicates that a task named in a reorder request
	// belongs to a different column.
	// API layer should map this to HTTP 400 Bad Request.
	ErrTaskNotInColumn = errors.New("task does not belong to column")

	// ErrNoTasks is returned when a reorder or bulk update names no tasks.
	ErrNoTasks = domain.NewValidationError("tasks", "must not be empty", nil)
)

// TaskReferenceError identifies the task that made a multi-task request fail.
type TaskReferenceError struct {
	TaskID   uuid.UUID
	ColumnID uuid.UUID
	Err      error
}

// Error implements the error interface for TaskReferenceError.
func (e *TaskReferenceError) Error() string {
	if errors.Is(e.Err, ErrTaskNotInColumn) {
		return fmt.Sprintf("task %s does not belong to column %s", e.TaskID, e.ColumnID)
	}
	return fmt.Sprintf("task %s: %v", e.TaskID, e.Err)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *TaskReferenceError) Unwrap() error {
	return e.Err
}

// BoardServiceError wraps unexpected errors from the board services with context.
type BoardServiceError struct {
	// Operation is the operation that failed (e.g., "reorder_tasks")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for BoardServiceError.
func (e *BoardServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("board service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("board service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *BoardServiceError) Unwrap() error {
	return e.Err
}

// NewBoardServiceError wraps err for operation. Errors callers branch on
// (validation, not found, task references) are returned unchanged.
func NewBoardServiceError(operation, message string, err error) error {
	if err == nil {
		return nil
	}

	var refErr *TaskReferenceError
	var svcErr *BoardServiceError
	switch {
	case errors.Is(err, domain.ErrValidation),
		store.IsNotFoundError(err),
		errors.Is(err, ErrTaskNotInColumn),
		errors.As(err, &refErr),
		errors.As(err, &svcErr):
		return err
	}

	return &BoardServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
