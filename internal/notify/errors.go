package notify

import (
	"fmt"

	"github.com/google/uuid"
)

// NotificationError reports a notification that could not be queued or
// delivered. It is only ever logged.
type NotificationError struct {
	TaskID    uuid.UUID
	Recipient string
	Stage     string // "enqueue" or "send"
	Err       error
}

// Error implements the error interface for NotificationError.
func (e *NotificationError) Error() string {
	return fmt.Sprintf("notification %s failed for task %s: %v", e.Stage, e.TaskID, e.Err)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *NotificationError) Unwrap() error {
	return e.Err
}
