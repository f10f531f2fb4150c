package jobs

import (
	"context"

	"github.com/google/uuid"
)

// Job is a unit of background work.
type Job interface {
	// ID returns the job's unique identifier
	ID() uuid.UUID

	// Type returns the job type identifier, used for logging
	Type() string

	// Execute runs the job logic
	Execute(ctx context.Context) error
}

// FuncJob adapts a function to the Job interface.
type FuncJob struct {
	id      uuid.UUID
	jobType string
	fn      func(ctx context.Context) error
}

// NewFuncJob wraps fn as a Job of the given type with a fresh ID.
func NewFuncJob(jobType string, fn func(ctx context.Context) error) *FuncJob {
	return &FuncJob{
		id:      uuid.New(),
		jobType: jobType,
		fn:      fn,
	}
}

// ID implements Job.
func (j *FuncJob) ID() uuid.UUID { return j.id }

// Type implements Job.
func (j *FuncJob) Type() string { return j.jobType }

// Execute implements Job.
func (j *FuncJob) Execute(ctx context.Context) error { return j.fn(ctx) }
