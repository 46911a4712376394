package network

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/campuslink/campuslink-go/internal/types"
)

func TestGraph_DerivesOtherParty(t *testing.T) {
	t.Parallel()
	fb := &fakeBackend{edges: []types.ConnectionEdge{
		{FromUID: "me", ToUID: "a"},
		{FromUID: "b", ToUID: "me"},
		{FromUID: "me", ToUID: "me"}, // degenerate self-edge must not leak
		{FromUID: "c", ToUID: ""},    // malformed
	}}
	g := NewGraph("me", zerolog.Nop())
	g.LoadConnections(context.Background(), fb, nil)

	set := g.ConnectedSet()
	if len(set) != 3 {
		t.Fatalf("unexpected set: %v", set)
	}
	for _, want := range []string{"a", "b", "c"} {
		if _, ok := set[want]; !ok {
			t.Fatalf("missing %q in %v", want, set)
		}
	}
	if _, ok := set["me"]; ok {
		t.Fatal("connected set must never contain self")
	}
}

func TestGraph_FetchFailuresKeepPreviousState(t *testing.T) {
	t.Parallel()
	fb := &fakeBackend{edges: []types.ConnectionEdge{{FromUID: "me", ToUID: "a"}}}
	g := NewGraph("me", zerolog.Nop())
	g.LoadConnections(context.Background(), fb, nil)

	fb.edgesErr = errFakeDown
	g.LoadConnections(context.Background(), fb, nil)
	if _, ok := g.ConnectedSet()["a"]; !ok {
		t.Fatal("failed refresh must keep previous connections")
	}

	fb.requestsErr = errFakeDown
	g.LoadIncomingRequests(context.Background(), fb, nil)
	if got := g.Incoming(); len(got) != 0 {
		t.Fatalf("failed request fetch should leave empty list, got %v", got)
	}
}

func TestGraph_OptimisticSend(t *testing.T) {
	t.Parallel()
	fb := &fakeBackend{sendErr: errFakeDown}
	g := NewGraph("me", zerolog.Nop())

	err := g.Send(context.Background(), fb, "target")
	if err == nil {
		t.Fatal("expected surfaced send error")
	}
	// Pending marker is not rolled back on failure.
	if !g.IsPending("target") {
		t.Fatal("pending marker missing after failed send")
	}
}

func TestGraph_OptimisticAcceptReject(t *testing.T) {
	t.Parallel()
	now := time.Now()
	fb := &fakeBackend{requests: []types.IncomingRequest{
		{From: "x", CreatedAt: now.Add(-time.Hour)},
		{From: "y", CreatedAt: now.Add(-time.Minute)},
	}}
	g := NewGraph("me", zerolog.Nop())
	g.LoadIncomingRequests(context.Background(), fb, nil)

	if err := g.Accept(context.Background(), fb, "x"); err != nil {
		t.Fatalf("accept: %v", err)
	}
	if _, ok := g.ConnectedSet()["x"]; !ok {
		t.Fatal("accepted peer must join the connected set immediately")
	}
	if err := g.Reject(context.Background(), fb, "y"); err != nil {
		t.Fatalf("reject: %v", err)
	}
	if got := g.Incoming(); len(got) != 0 {
		t.Fatalf("incoming list should be drained, got %v", got)
	}
	if !fb.called("AcceptConnectionRequest") || !fb.called("RejectConnectionRequest") {
		t.Fatal("backend mutations not invoked")
	}
}

func TestRequestAge(t *testing.T) {
	t.Parallel()
	now := time.Now()
	r := types.IncomingRequest{From: "x", CreatedAt: now.Add(-90 * time.Minute)}
	if got := RequestAge(r, now); got != 90*time.Minute {
		t.Fatalf("unexpected age: %v", got)
	}
}
