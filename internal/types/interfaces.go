package types

import (
	"context"

	"github.com/campuslink/campuslink-go/internal/outbox"
)

// ------------------------------
// Shared Interfaces
// ------------------------------

// Executor is the async job runner used by the optimistic connection
// mutations. Jobs for the same peer run in FIFO order.
type Executor interface {
	Submit(ctx context.Context, peerUID string, job outbox.Job) error
}
