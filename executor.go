package campuslink

import (
	"context"

	"github.com/campuslink/campuslink-go/internal/outbox"
)

// executor abstracts the internal async job runner used by the optimistic
// connection mutations.
type executor interface {
	Submit(ctx context.Context, peerUID string, job outbox.Job) error
	Barrier(ctx context.Context, peerUID string) error
	Stop()
}

// Note: every client carries an executor; the async connection methods
// require it.
