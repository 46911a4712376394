package network

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/campuslink/campuslink-go/internal/types"
)

// Graph holds the current user's connection state: the accepted-connection
// set, incoming requests, and the locally pending outgoing requests.
//
// Fetch failures are swallowed (debug-logged only) because the directory
// stays browsable without the graph; the affected slice keeps its previous
// value. Mutations are optimistic: local state changes immediately and the
// backend call is delivered in the background without rollback (see
// DESIGN.md for the reconciliation stance).
type Graph struct {
	selfUID string
	logger  zerolog.Logger

	mu        sync.Mutex
	connected map[string]struct{}
	incoming  []types.IncomingRequest
	pending   map[string]struct{} // outgoing requests awaiting the peer
}

// NewGraph returns an empty graph for the given user.
func NewGraph(selfUID string, logger zerolog.Logger) *Graph {
	return &Graph{
		selfUID:   selfUID,
		logger:    logger.With().Str("component", "graph").Logger(),
		connected: make(map[string]struct{}),
		pending:   make(map[string]struct{}),
	}
}

// LoadConnections fetches the accepted edges and derives the connected set:
// for each edge the other party is toUid when fromUid is the current user,
// otherwise fromUid. The set therefore never contains the current user.
// The nil-safe live gate discards a result that lands after teardown.
func (g *Graph) LoadConnections(ctx context.Context, backend Backend, live func() bool) {
	edges, err := backend.ListConnections(ctx, g.selfUID)
	if err != nil {
		g.logger.Debug().Err(err).Msg("connections fetch failed, keeping previous state")
		return
	}
	set := make(map[string]struct{}, len(edges))
	for _, e := range edges {
		other := e.FromUID
		if e.FromUID == g.selfUID {
			other = e.ToUID
		}
		if other == "" || other == g.selfUID {
			continue
		}
		set[other] = struct{}{}
	}
	g.mu.Lock()
	if live == nil || live() {
		g.connected = set
	}
	g.mu.Unlock()
}

// LoadIncomingRequests fetches the pending requests directed at the
// current user. The nil-safe live gate discards a result that lands after
// teardown.
func (g *Graph) LoadIncomingRequests(ctx context.Context, backend Backend, live func() bool) {
	reqs, err := backend.ListIncomingRequests(ctx, g.selfUID)
	if err != nil {
		g.logger.Debug().Err(err).Msg("requests fetch failed, keeping previous state")
		return
	}
	g.mu.Lock()
	if live == nil || live() {
		g.incoming = reqs
	}
	g.mu.Unlock()
}

// ConnectedSet returns a copy of the connected peer ids.
func (g *Graph) ConnectedSet() map[string]struct{} {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make(map[string]struct{}, len(g.connected))
	for k := range g.connected {
		out[k] = struct{}{}
	}
	return out
}

// Incoming returns a copy of the pending incoming requests.
func (g *Graph) Incoming() []types.IncomingRequest {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]types.IncomingRequest, len(g.incoming))
	copy(out, g.incoming)
	return out
}

// IsPending reports whether an outgoing request to targetUID is awaiting
// the peer.
func (g *Graph) IsPending(targetUID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	_, ok := g.pending[targetUID]
	return ok
}

// Send optimistically marks targetUID pending and enqueues the request.
// The pending marker stays even if enqueueing fails; the caller surfaces
// the returned error to the user.
func (g *Graph) Send(ctx context.Context, backend Backend, targetUID string) error {
	g.mu.Lock()
	g.pending[targetUID] = struct{}{}
	g.mu.Unlock()

	_, err := backend.SendConnectionRequest(ctx, g.selfUID, targetUID)
	return err
}

// Accept optimistically moves fromUID from the incoming list into the
// connected set and enqueues the accept. No rollback on failure.
func (g *Graph) Accept(ctx context.Context, backend Backend, fromUID string) error {
	g.mu.Lock()
	g.connected[fromUID] = struct{}{}
	g.removeIncomingLocked(fromUID)
	g.mu.Unlock()

	_, err := backend.AcceptConnectionRequest(ctx, fromUID)
	return err
}

// Reject optimistically drops fromUID from the incoming list and enqueues
// the reject. No rollback on failure.
func (g *Graph) Reject(ctx context.Context, backend Backend, fromUID string) error {
	g.mu.Lock()
	g.removeIncomingLocked(fromUID)
	g.mu.Unlock()

	_, err := backend.RejectConnectionRequest(ctx, fromUID)
	return err
}

func (g *Graph) removeIncomingLocked(fromUID string) {
	kept := g.incoming[:0]
	for _, r := range g.incoming {
		if r.From != fromUID {
			kept = append(kept, r)
		}
	}
	g.incoming = kept
}

// RequestAge is a display helper for the incoming-requests panel.
func RequestAge(r types.IncomingRequest, now time.Time) time.Duration {
	return now.Sub(r.CreatedAt)
}
