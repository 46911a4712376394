// Package network implements the peer-networking reconciliation core: it
// merges the user directory, the connection graph, live unread counts and
// the current profile into one continuously-updating view, and derives
// recommendations and filtered listings from it with pure functions.
package network

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/campuslink/campuslink-go/internal/types"
	"github.com/campuslink/campuslink-go/realtime"
)

// View owns one mounted instance of the networking feature. The three
// mount-time fetches (directory, connections, incoming requests) run
// independently; partial data is expected and renders as empty slices.
// After Close every late fetch result and realtime event is discarded.
type View struct {
	backend Backend
	selfUID string
	logger  zerolog.Logger

	directory *Directory
	graph     *Graph
	tracker   *UnreadTracker

	mu      sync.Mutex
	closed  bool
	profile types.Profile
	filters Filters

	recPager Pager
	remPager Pager

	wg sync.WaitGroup
}

// NewView builds an unmounted view for the given user.
func NewView(backend Backend, selfUID string, logger zerolog.Logger) *View {
	return &View{
		backend:   backend,
		selfUID:   selfUID,
		logger:    logger.With().Str("component", "network").Str("uid", selfUID).Logger(),
		directory: &Directory{},
		graph:     NewGraph(selfUID, logger),
		tracker:   NewUnreadTracker(selfUID, logger),
		recPager:  NewPager(),
		remPager:  NewPager(),
	}
}

// Mount fires the directory, connections, incoming-requests and profile
// fetches concurrently and returns immediately. No ordering is assumed
// between them; each failure domain is independent. Wait blocks until the
// initial round resolves.
func (v *View) Mount(ctx context.Context) {
	v.spawn(func() { v.directory.Load(ctx, v.backend, v.live); v.bump() })
	v.spawn(func() { v.graph.LoadConnections(ctx, v.backend, v.live); v.bump() })
	v.spawn(func() { v.graph.LoadIncomingRequests(ctx, v.backend, v.live); v.bump() })
	v.spawn(func() { v.loadProfile(ctx); v.bump() })
}

// Wait blocks until all fetches started so far have resolved.
func (v *View) Wait() { v.wg.Wait() }

// AttachRealtime wires the unread tracker to the shared channel. The view
// holds one reference for its lifetime; Close releases it.
func (v *View) AttachRealtime(ctx context.Context, ch *realtime.Channel) error {
	v.mu.Lock()
	if v.closed {
		v.mu.Unlock()
		return realtime.ErrClosed
	}
	v.mu.Unlock()
	err := v.tracker.Attach(ctx, ch, func(sctx context.Context) (map[string]int, error) {
		return v.backend.GetUnreadCounts(sctx, v.selfUID)
	})
	if err != nil {
		return err
	}
	// Close may have landed while Attach was in flight, before the tracker
	// reached Active; its Detach was a no-op then, so undo the attach here
	// or the channel reference leaks.
	if v.isClosed() {
		v.tracker.Detach()
		return realtime.ErrClosed
	}
	v.bump()
	return nil
}

// Close tears the view down: realtime listeners detach, late updates
// become no-ops. Idempotent.
func (v *View) Close() {
	v.mu.Lock()
	if v.closed {
		v.mu.Unlock()
		return
	}
	v.closed = true
	v.mu.Unlock()
	v.tracker.Detach()
}

// ------------------------------
// Snapshots
// ------------------------------

// Users returns the directory and the load error message, if any.
func (v *View) Users() ([]types.UserRecord, string) { return v.directory.Users() }

// Connections returns the connected peer-id set.
func (v *View) Connections() map[string]struct{} { return v.graph.ConnectedSet() }

// Incoming returns the pending incoming requests.
func (v *View) Incoming() []types.IncomingRequest { return v.graph.Incoming() }

// Unread returns the per-peer unread counts.
func (v *View) Unread() map[string]int { return v.tracker.Counts() }

// Badge returns the number of peers with unread messages.
func (v *View) Badge() int { return v.tracker.Badge() }

// Profile returns the current user's profile as last fetched.
func (v *View) Profile() types.Profile {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.profile
}

// Recommendations recomputes the partition from the current inputs.
func (v *View) Recommendations() Partition {
	users, _ := v.directory.Users()
	return Recommend(users, v.graph.ConnectedSet(), v.selfUID, v.Profile())
}

// VisibleRecommendations applies the Show More pagers to the partition.
func (v *View) VisibleRecommendations() Partition {
	p := v.Recommendations()
	v.mu.Lock()
	rec := v.recPager.Visible(len(p.Recommended))
	rem := v.remPager.Visible(len(p.Remaining))
	v.mu.Unlock()
	return Partition{Recommended: p.Recommended[:rec], Remaining: p.Remaining[:rem]}
}

// Visible returns the searched/filtered listing.
func (v *View) Visible() []types.UserRecord {
	users, _ := v.directory.Users()
	v.mu.Lock()
	f := v.filters
	v.mu.Unlock()
	return ApplyFilters(users, v.graph.ConnectedSet(), v.selfUID, f)
}

// ------------------------------
// Inputs
// ------------------------------

// SetFilters replaces the filter selection and resets pagination.
func (v *View) SetFilters(f Filters) {
	v.mu.Lock()
	v.filters = f
	v.recPager.Reset()
	v.remPager.Reset()
	v.mu.Unlock()
}

// ShowMoreRecommended reveals the next recommended increment.
func (v *View) ShowMoreRecommended() {
	v.mu.Lock()
	v.recPager.More()
	v.mu.Unlock()
}

// ShowMoreRemaining reveals the next remaining increment.
func (v *View) ShowMoreRemaining() {
	v.mu.Lock()
	v.remPager.More()
	v.mu.Unlock()
}

// SendRequest optimistically marks target pending and enqueues the send.
// The returned error is user-visible; the pending marker is not rolled
// back.
func (v *View) SendRequest(ctx context.Context, targetUID string) error {
	if v.isClosed() {
		return nil
	}
	return v.graph.Send(ctx, v.backend, targetUID)
}

// AcceptRequest optimistically accepts a pending incoming request.
func (v *View) AcceptRequest(ctx context.Context, fromUID string) error {
	if v.isClosed() {
		return nil
	}
	err := v.graph.Accept(ctx, v.backend, fromUID)
	v.bump()
	return err
}

// RejectRequest optimistically declines a pending incoming request.
func (v *View) RejectRequest(ctx context.Context, fromUID string) error {
	if v.isClosed() {
		return nil
	}
	err := v.graph.Reject(ctx, v.backend, fromUID)
	v.bump()
	return err
}

// IsPending reports whether an outgoing request to targetUID is awaiting
// the peer.
func (v *View) IsPending(targetUID string) bool { return v.graph.IsPending(targetUID) }

// ------------------------------
// internals
// ------------------------------

func (v *View) spawn(fn func()) {
	v.wg.Add(1)
	go func() {
		defer v.wg.Done()
		fn()
	}()
}

// bump resets pagination after any upstream input change, unless the view
// is already torn down.
func (v *View) bump() {
	v.mu.Lock()
	if !v.closed {
		v.recPager.Reset()
		v.remPager.Reset()
	}
	v.mu.Unlock()
}

func (v *View) loadProfile(ctx context.Context) {
	p, err := v.backend.GetProfile(ctx, v.selfUID)
	if err != nil {
		// Soft-fail like the graph: recommendations degrade to the
		// remaining bucket without a profile.
		v.logger.Debug().Err(err).Msg("profile fetch failed")
		return
	}
	v.mu.Lock()
	if !v.closed {
		v.profile = *p
	}
	v.mu.Unlock()
}

func (v *View) isClosed() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.closed
}

// live is the publish gate handed to the fetches: results landing after
// Close are discarded.
func (v *View) live() bool { return !v.isClosed() }
