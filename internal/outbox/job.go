package outbox

import (
	"context"
	"errors"
)

// ErrNilJob is returned when a nil JobFunc is run.
var ErrNilJob = errors.New("nil outbox job")

// Job is one queued mutation. Run must tolerate being retried.
type Job interface {
	Run(ctx context.Context) error
}

// JobFunc adapts a closure to a Job.
type JobFunc func(ctx context.Context) error

// Run implements Job for JobFunc.
func (f JobFunc) Run(ctx context.Context) error {
	if f == nil {
		return ErrNilJob
	}
	return f(ctx)
}
