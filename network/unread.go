package network

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/campuslink/campuslink-go/realtime"
)

// TrackerState is the lifecycle of the unread tracker.
type TrackerState int

const (
	TrackerUninitialized TrackerState = iota
	TrackerConnecting
	TrackerActive
	TrackerTornDown
)

// String returns the state name for logs.
func (s TrackerState) String() string {
	switch s {
	case TrackerUninitialized:
		return "uninitialized"
	case TrackerConnecting:
		return "connecting"
	case TrackerActive:
		return "active"
	case TrackerTornDown:
		return "torn-down"
	default:
		return fmt.Sprintf("unknown(%d)", int(s))
	}
}

// UnreadTracker maintains the per-peer unread-message counts from the
// realtime channel. An entry exists only while its count is positive: reads
// delete the key rather than zeroing it, so the key set is exactly "peers
// with outstanding unread" and the badge is the key count, not the sum.
type UnreadTracker struct {
	selfUID string
	logger  zerolog.Logger

	mu     sync.Mutex
	state  TrackerState
	counts map[string]int
	ch     *realtime.Channel
	subs   []*realtime.Subscription
}

// NewUnreadTracker returns an uninitialized tracker for the given user.
func NewUnreadTracker(selfUID string, logger zerolog.Logger) *UnreadTracker {
	return &UnreadTracker{
		selfUID: selfUID,
		logger:  logger.With().Str("component", "unread").Logger(),
		state:   TrackerUninitialized,
		counts:  make(map[string]int),
	}
}

// Attach takes a reference on the shared channel, registers the event
// listeners, and seeds the counts from the backend snapshot. Live events
// are assumed to be delivered in order after the snapshot per peer; there
// are no sequence numbers to check.
func (t *UnreadTracker) Attach(ctx context.Context, ch *realtime.Channel, snapshot func(context.Context) (map[string]int, error)) error {
	t.mu.Lock()
	if t.state != TrackerUninitialized {
		t.mu.Unlock()
		return fmt.Errorf("unread tracker: attach in state %s", t.state)
	}
	t.state = TrackerConnecting
	t.mu.Unlock()

	ch.Acquire()

	newSub, err := ch.Subscribe(realtime.EventMessageNew, t.onMessageNew)
	if err != nil {
		ch.Release()
		t.setState(TrackerUninitialized)
		return err
	}
	readSub, err := ch.Subscribe(realtime.EventMessageRead, t.onMessageRead)
	if err != nil {
		newSub.Detach()
		ch.Release()
		t.setState(TrackerUninitialized)
		return err
	}

	seeded, err := snapshot(ctx)
	if err != nil {
		newSub.Detach()
		readSub.Detach()
		ch.Release()
		t.setState(TrackerUninitialized)
		return err
	}

	t.mu.Lock()
	t.ch = ch
	t.subs = []*realtime.Subscription{newSub, readSub}
	t.counts = make(map[string]int, len(seeded))
	for peer, n := range seeded {
		if n > 0 {
			t.counts[peer] = n
		}
	}
	t.state = TrackerActive
	t.mu.Unlock()
	t.logger.Debug().Int("peers", len(seeded)).Msg("unread tracker active")
	return nil
}

// Counts returns a copy of the unread map.
func (t *UnreadTracker) Counts() map[string]int {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make(map[string]int, len(t.counts))
	for k, v := range t.counts {
		out[k] = v
	}
	return out
}

// Badge is the number of peers with unread messages.
func (t *UnreadTracker) Badge() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.counts)
}

// State returns the current lifecycle state.
func (t *UnreadTracker) State() TrackerState {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// Detach removes the listeners and releases the channel reference. The
// channel itself outlives the tracker and is never closed here.
func (t *UnreadTracker) Detach() {
	t.mu.Lock()
	if t.state != TrackerActive {
		t.mu.Unlock()
		return
	}
	t.state = TrackerTornDown
	subs := t.subs
	ch := t.ch
	t.subs = nil
	t.ch = nil
	t.mu.Unlock()

	for _, s := range subs {
		s.Detach()
	}
	if ch != nil {
		ch.Release()
	}
}

func (t *UnreadTracker) setState(s TrackerState) {
	t.mu.Lock()
	t.state = s
	t.mu.Unlock()
}

func (t *UnreadTracker) onMessageNew(payload json.RawMessage) {
	var m realtime.MessageNew
	if err := json.Unmarshal(payload, &m); err != nil {
		t.logger.Debug().Err(err).Msg("bad message:new payload")
		return
	}
	if m.To != t.selfUID || m.From == "" {
		return
	}
	t.mu.Lock()
	if t.state == TrackerActive {
		t.counts[m.From]++
	}
	t.mu.Unlock()
}

func (t *UnreadTracker) onMessageRead(payload json.RawMessage) {
	var m realtime.MessageRead
	if err := json.Unmarshal(payload, &m); err != nil {
		t.logger.Debug().Err(err).Msg("bad message:read payload")
		return
	}
	if m.By != t.selfUID {
		return
	}
	t.mu.Lock()
	if t.state == TrackerActive {
		delete(t.counts, m.Peer)
	}
	t.mu.Unlock()
}
