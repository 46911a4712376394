// Package campuslink is the Go SDK for the CampusLink student portal
// backend. It wraps the REST API with a small synchronous surface, runs
// connection mutations through a per-peer FIFO outbox with retry, and
// exposes the peer-networking reconciliation core under network.
package campuslink

import (
	"context"
	"errors"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/campuslink/campuslink-go/identity"
	"github.com/campuslink/campuslink-go/internal/api"
	"github.com/campuslink/campuslink-go/internal/outbox"
	"github.com/campuslink/campuslink-go/network"
	"github.com/campuslink/campuslink-go/realtime"

	"github.com/rs/zerolog"
)

// --------------------------------------------------------------------
// Client core
// --------------------------------------------------------------------

type Client struct {
	baseURL string
	http    *http.Client
	exec    executor
	token   string // session token for bearer authentication
	logger  zerolog.Logger

	closedOnce uint32 // ensures Close is idempotent
}

// New constructs a Client for the given backend and session token.
// Additional options can be provided via functional arguments.
func New(baseURL, token string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, errors.New("baseURL cannot be empty")
	}
	if token == "" {
		return nil, errors.New("token cannot be empty")
	}

	c := &Client{
		baseURL: baseURL,
		token:   token,
		http:    &http.Client{Timeout: 30 * time.Second},
		logger:  zerolog.Nop(),
	}

	// Auto-enable debug via env variable without changing code.
	if debugLoggingRequested() {
		opts = append(opts, WithDebugLogging(true))
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	if c.exec == nil {
		c.exec = newDefaultOutbox()
	}

	// Wrap the HTTP transport so every request carries the session token.
	c.wrapTransportWithToken()

	return c, nil
}

// wrapTransportWithToken wraps the HTTP client's transport to add the
// Authorization header to all requests.
func (c *Client) wrapTransportWithToken() {
	baseTransport := c.http.Transport
	if baseTransport == nil {
		baseTransport = http.DefaultTransport
	}
	c.http.Transport = &bearerTransport{
		base:  baseTransport,
		token: c.token,
	}
}

// bearerTransport wraps an http.RoundTripper to add the Authorization
// header.
type bearerTransport struct {
	base  http.RoundTripper
	token string
}

func (t *bearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// Clone so the caller's request is untouched.
	cloned := req.Clone(req.Context())
	cloned.Header.Set("Authorization", "Bearer "+t.token)
	return t.base.RoundTrip(cloned)
}

// Close stops the background outbox. Safe to call multiple times.
func (c *Client) Close() error {
	if !atomic.CompareAndSwapUint32(&c.closedOnce, 0, 1) {
		return nil
	}
	if c.exec != nil {
		c.exec.Stop()
	}
	return nil
}

// Flush blocks until all previously submitted connection jobs for the
// given peer have been executed by the outbox, by riding its per-peer
// FIFO guarantee.
func (c *Client) Flush(ctx context.Context, peerUID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return c.exec.Barrier(ctx, peerUID)
}

// newDefaultOutbox constructs the per-peer outbox with env-tuned defaults.
func newDefaultOutbox() *outbox.Outbox {
	cfg, err := outbox.LoadConfig()
	if err != nil {
		cfg = outbox.Config{}
	}
	return outbox.New(cfg)
}

// --------------------------------------------------------------------
// Networking feature wiring
// --------------------------------------------------------------------

// Network builds the peer-networking reconciliation view for the user the
// given provider resolves. The view is unmounted; call Mount on it.
func (c *Client) Network(p identity.Provider) (*network.View, error) {
	uid, err := p.CurrentUID()
	if err != nil {
		return nil, err
	}
	return network.NewView(c, uid, c.logger), nil
}

// DialRealtime opens the shared websocket channel for the user the given
// provider resolves, authenticated with the client's session token. The
// caller owns the initial reference.
func (c *Client) DialRealtime(ctx context.Context, p identity.Provider) (*realtime.Channel, error) {
	uid, err := p.CurrentUID()
	if err != nil {
		return nil, err
	}
	cfg, err := realtime.LoadConfig()
	if err != nil {
		cfg = realtime.Config{}
	}
	return realtime.Dial(ctx, c.baseURL, uid, c.token, cfg, c.logger)
}

// --------------------------------------------------------------------
// Directory and profile operations - delegated to internal/api
// --------------------------------------------------------------------

// ListUsers retrieves the full user directory, un-normalized.
func (c *Client) ListUsers(ctx context.Context) ([]RawUser, error) {
	return api.ListUsers(ctx, c.http, c.baseURL)
}

// GetProfile retrieves one user's profile.
func (c *Client) GetProfile(ctx context.Context, userUID string) (*Profile, error) {
	return api.GetProfile(ctx, c.http, c.baseURL, userUID)
}

// UpdateProfile replaces the caller's profile fields.
func (c *Client) UpdateProfile(ctx context.Context, userUID string, req UpdateProfileRequest) (*Profile, error) {
	return api.UpdateProfile(ctx, c.http, c.baseURL, userUID, req)
}

// --------------------------------------------------------------------
// Connection operations - delegated to internal/api (mixed sync/async)
// --------------------------------------------------------------------

// ListConnections retrieves the raw connection edges involving the user.
func (c *Client) ListConnections(ctx context.Context, userUID string) ([]ConnectionEdge, error) {
	return api.ListConnections(ctx, c.http, c.baseURL, userUID)
}

// ListIncomingRequests retrieves pending requests addressed to the user.
func (c *Client) ListIncomingRequests(ctx context.Context, userUID string) ([]IncomingRequest, error) {
	return api.ListIncomingRequests(ctx, c.http, c.baseURL, userUID)
}

// SendConnectionRequest enqueues a connection request from fromUID to
// toUID via the outbox. The ack reports acceptance into the queue, not
// delivery; the job retries transient failures in the background.
func (c *Client) SendConnectionRequest(ctx context.Context, fromUID, toUID string) (*EnqueueAck, error) {
	ack, err := api.SendConnectionRequest(ctx, c.exec, c.http, c.baseURL, fromUID, toUID)
	countConnectionJob("send", err)
	return ack, err
}

// AcceptConnectionRequest enqueues acceptance of a pending request from
// fromUID.
func (c *Client) AcceptConnectionRequest(ctx context.Context, fromUID string) (*EnqueueAck, error) {
	uid, err := c.currentUID()
	if err != nil {
		return nil, err
	}
	ack, err := api.RespondConnectionRequest(ctx, c.exec, c.http, c.baseURL, fromUID, uid, ActionAccept)
	countConnectionJob("accept", err)
	return ack, err
}

// RejectConnectionRequest enqueues rejection of a pending request from
// fromUID.
func (c *Client) RejectConnectionRequest(ctx context.Context, fromUID string) (*EnqueueAck, error) {
	uid, err := c.currentUID()
	if err != nil {
		return nil, err
	}
	ack, err := api.RespondConnectionRequest(ctx, c.exec, c.http, c.baseURL, fromUID, uid, ActionReject)
	countConnectionJob("reject", err)
	return ack, err
}

// currentUID resolves the caller's uid from the session token.
func (c *Client) currentUID() (string, error) {
	p, err := identity.FromToken(c.token)
	if err != nil {
		return "", err
	}
	return p.CurrentUID()
}

// --------------------------------------------------------------------
// Unread counts
// --------------------------------------------------------------------

// GetUnreadCounts retrieves the per-peer unread snapshot for the user.
func (c *Client) GetUnreadCounts(ctx context.Context, userUID string) (map[string]int, error) {
	return api.GetUnreadCounts(ctx, c.http, c.baseURL, userUID)
}

// --------------------------------------------------------------------
// Feed operations - delegated to internal/api (sync-only)
// --------------------------------------------------------------------

// ListEvents retrieves the campus events feed.
func (c *Client) ListEvents(ctx context.Context) ([]Event, error) {
	return api.ListEvents(ctx, c.http, c.baseURL)
}

// ListBlogs retrieves the blog feed.
func (c *Client) ListBlogs(ctx context.Context) ([]Blog, error) {
	return api.ListBlogs(ctx, c.http, c.baseURL)
}

// ListStartups retrieves the startup showcase feed.
func (c *Client) ListStartups(ctx context.Context) ([]Startup, error) {
	return api.ListStartups(ctx, c.http, c.baseURL)
}

// ListDiscounts retrieves the student discounts feed.
func (c *Client) ListDiscounts(ctx context.Context) ([]Discount, error) {
	return api.ListDiscounts(ctx, c.http, c.baseURL)
}

// ListCertifications retrieves the certifications feed.
func (c *Client) ListCertifications(ctx context.Context) ([]Certification, error) {
	return api.ListCertifications(ctx, c.http, c.baseURL)
}
