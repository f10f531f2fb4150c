// Package notify delivers task-completion notifications to task owners.
//
// Delivery is fire-and-forget: the Dispatcher builds the message, hands a
// send job to the background job runner and returns. Failures are logged
// as NotificationError and never reach the caller of the board operation.
package notify

import (
	"context"
	"fmt"

	"github.com/phrazzld/board-api/internal/domain"
)

// CompletionSubject is the subject line of task-completion messages.
const CompletionSubject = "Task Completed"

// Notifier informs interested parties that a task was completed.
type Notifier interface {
	NotifyTaskCompleted(ctx context.Context, task *domain.Task) error
}

// Message is a plain-text notification addressed to one recipient.
type Message struct {
	To      string
	Subject string
	Body    string
}

// Sender delivers a single message, e.g. over SMTP.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// CompletionMessage builds the message sent to a task's owner when the
// task is completed.
func CompletionMessage(task *domain.Task) Message {
	return Message{
		To:      task.Owner,
		Subject: CompletionSubject,
		Body:    fmt.Sprintf("The task \"%s\" has been completed.", task.Description),
	}
}
