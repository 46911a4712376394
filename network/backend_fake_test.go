package network

import (
	"context"
	"errors"
	"sync"

	"github.com/campuslink/campuslink-go/internal/types"
)

// fakeBackend implements Backend with per-call overrides and call recording.
type fakeBackend struct {
	mu sync.Mutex

	users    []types.RawUser
	usersErr error

	profile    *types.Profile
	profileErr error

	edges    []types.ConnectionEdge
	edgesErr error

	requests    []types.IncomingRequest
	requestsErr error

	unread    map[string]int
	unreadErr error

	sendErr error
	calls   []string

	// hooks run mid-call so tests can interleave view lifecycle steps
	// with an in-flight fetch
	usersHook    func()
	edgesHook    func()
	requestsHook func()
	unreadHook   func()
}

var errFakeDown = errors.New("backend down")

func (f *fakeBackend) record(name string) {
	f.mu.Lock()
	f.calls = append(f.calls, name)
	f.mu.Unlock()
}

func (f *fakeBackend) called(name string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.calls {
		if c == name {
			return true
		}
	}
	return false
}

func (f *fakeBackend) ListUsers(context.Context) ([]types.RawUser, error) {
	f.record("ListUsers")
	if f.usersHook != nil {
		f.usersHook()
	}
	return f.users, f.usersErr
}

func (f *fakeBackend) GetProfile(_ context.Context, _ string) (*types.Profile, error) {
	f.record("GetProfile")
	if f.profileErr != nil {
		return nil, f.profileErr
	}
	if f.profile == nil {
		return &types.Profile{}, nil
	}
	return f.profile, nil
}

func (f *fakeBackend) ListConnections(_ context.Context, _ string) ([]types.ConnectionEdge, error) {
	f.record("ListConnections")
	if f.edgesHook != nil {
		f.edgesHook()
	}
	return f.edges, f.edgesErr
}

func (f *fakeBackend) ListIncomingRequests(_ context.Context, _ string) ([]types.IncomingRequest, error) {
	f.record("ListIncomingRequests")
	if f.requestsHook != nil {
		f.requestsHook()
	}
	return f.requests, f.requestsErr
}

func (f *fakeBackend) GetUnreadCounts(_ context.Context, _ string) (map[string]int, error) {
	f.record("GetUnreadCounts")
	if f.unreadHook != nil {
		f.unreadHook()
	}
	return f.unread, f.unreadErr
}

func (f *fakeBackend) SendConnectionRequest(_ context.Context, _, _ string) (*types.EnqueueAck, error) {
	f.record("SendConnectionRequest")
	if f.sendErr != nil {
		return nil, f.sendErr
	}
	return &types.EnqueueAck{Status: "enqueued"}, nil
}

func (f *fakeBackend) AcceptConnectionRequest(_ context.Context, _ string) (*types.EnqueueAck, error) {
	f.record("AcceptConnectionRequest")
	return &types.EnqueueAck{Status: "enqueued"}, nil
}

func (f *fakeBackend) RejectConnectionRequest(_ context.Context, _ string) (*types.EnqueueAck, error) {
	f.record("RejectConnectionRequest")
	return &types.EnqueueAck{Status: "enqueued"}, nil
}
