package network

import (
	"context"

	"github.com/campuslink/campuslink-go/internal/types"
)

// Backend is the slice of the portal API the networking view consumes.
// *campuslink.Client satisfies it.
type Backend interface {
	ListUsers(ctx context.Context) ([]types.RawUser, error)
	GetProfile(ctx context.Context, userUID string) (*types.Profile, error)
	ListConnections(ctx context.Context, userUID string) ([]types.ConnectionEdge, error)
	ListIncomingRequests(ctx context.Context, userUID string) ([]types.IncomingRequest, error)
	GetUnreadCounts(ctx context.Context, userUID string) (map[string]int, error)
	SendConnectionRequest(ctx context.Context, fromUID, toUID string) (*types.EnqueueAck, error)
	AcceptConnectionRequest(ctx context.Context, fromUID string) (*types.EnqueueAck, error)
	RejectConnectionRequest(ctx context.Context, fromUID string) (*types.EnqueueAck, error)
}
