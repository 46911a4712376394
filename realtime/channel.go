// Package realtime maintains the persistent messaging channel to the portal
// backend. One Channel is shared per user session; components hold a
// reference and attach listeners through it rather than reaching into
// process-wide state, and only the owner of the last reference actually
// closes the underlying connection.
package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"net/url"
	"sync"
	"time"

	backoff "github.com/cenkalti/backoff/v4"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

// ErrClosed is returned by Subscribe after the channel shut down.
var ErrClosed = errors.New("realtime channel closed")

// Listener receives the raw payload of one event frame. Listeners run on
// the channel's read goroutine and must not block.
type Listener func(payload json.RawMessage)

// Subscription is a detachable listener registration.
type Subscription struct {
	ch        *Channel
	eventType string
	id        int
}

// Detach removes the listener. Safe to call more than once.
func (s *Subscription) Detach() {
	if s == nil || s.ch == nil {
		return
	}
	s.ch.mu.Lock()
	if set, ok := s.ch.listeners[s.eventType]; ok {
		delete(set, s.id)
	}
	s.ch.mu.Unlock()
	s.ch = nil
}

// Channel is a reference-counted websocket connection scoped to one user
// identity. Dial returns it with a reference count of one; each additional
// holder calls Acquire, and Release from the last holder closes it.
type Channel struct {
	userUID string
	wsURL   string
	cfg     Config
	logger  zerolog.Logger

	mu        sync.Mutex
	conn      *websocket.Conn
	listeners map[string]map[int]Listener
	nextID    int
	refs      int
	closed    bool
	done      chan struct{}
}

// Dial opens the channel for userUID against baseURL ("http(s)://host"),
// authenticating with the session token in the query (the backend expects
// tokens there for websocket upgrades). The read loop starts immediately
// and re-dials with exponential backoff if the connection drops.
func Dial(ctx context.Context, baseURL, userUID, token string, cfg Config, logger zerolog.Logger) (*Channel, error) {
	wsURL, err := websocketURL(baseURL, userUID, token)
	if err != nil {
		return nil, err
	}
	cfg = cfg.withDefaults()

	c := &Channel{
		userUID:   userUID,
		wsURL:     wsURL,
		cfg:       cfg,
		logger:    logger.With().Str("component", "realtime").Str("uid", userUID).Logger(),
		listeners: make(map[string]map[int]Listener),
		refs:      1,
		done:      make(chan struct{}),
	}

	dialCtx, cancel := context.WithTimeout(ctx, cfg.DialTimeout)
	defer cancel()
	conn, _, err := websocket.DefaultDialer.DialContext(dialCtx, wsURL, nil)
	if err != nil {
		return nil, err
	}
	conn.SetReadLimit(cfg.ReadLimit)
	c.conn = conn

	go c.readLoop()
	return c, nil
}

// UserUID returns the identity the channel is scoped to.
func (c *Channel) UserUID() string { return c.userUID }

// Subscribe registers a listener for one event type and returns a handle
// for detaching it.
func (c *Channel) Subscribe(eventType string, fn Listener) (*Subscription, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil, ErrClosed
	}
	set, ok := c.listeners[eventType]
	if !ok {
		set = make(map[int]Listener)
		c.listeners[eventType] = set
	}
	c.nextID++
	id := c.nextID
	set[id] = fn
	return &Subscription{ch: c, eventType: eventType, id: id}, nil
}

// Acquire adds a reference for another component sharing the channel.
func (c *Channel) Acquire() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.refs++
	}
}

// Release drops one reference. The connection is closed only when the last
// holder releases; components must never close a shared channel directly.
func (c *Channel) Release() {
	c.mu.Lock()
	c.refs--
	last := c.refs <= 0 && !c.closed
	if last {
		c.closed = true
		close(c.done)
		if c.conn != nil {
			_ = c.conn.Close()
		}
	}
	c.mu.Unlock()
	if last {
		c.logger.Debug().Msg("channel closed")
	}
}

// Done is closed once the channel has fully shut down.
func (c *Channel) Done() <-chan struct{} { return c.done }

// ------------------------- internals -------------------------

func (c *Channel) readLoop() {
	for {
		c.mu.Lock()
		conn := c.conn
		closed := c.closed
		c.mu.Unlock()
		if closed {
			return
		}

		var frame Frame
		if err := conn.ReadJSON(&frame); err != nil {
			if !c.redial(err) {
				return
			}
			continue
		}
		if frame.Type == "" {
			continue
		}
		framesTotal.WithLabelValues(frame.Type).Inc()
		c.dispatch(frame)
	}
}

func (c *Channel) dispatch(frame Frame) {
	c.mu.Lock()
	set := c.listeners[frame.Type]
	fns := make([]Listener, 0, len(set))
	for _, fn := range set {
		fns = append(fns, fn)
	}
	c.mu.Unlock()

	// Listeners run outside the lock so they may detach themselves.
	for _, fn := range fns {
		fn(frame.Payload)
	}
}

// redial replaces the dropped connection, backing off exponentially.
// Returns false once the channel is closed.
func (c *Channel) redial(cause error) bool {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return false
	}
	c.mu.Unlock()
	c.logger.Debug().Err(cause).Msg("connection lost, re-dialling")

	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = c.cfg.ReconnectBase
	exp.MaxInterval = c.cfg.ReconnectMax
	exp.MaxElapsedTime = 0 // keep trying until Release
	exp.Reset()

	for {
		select {
		case <-c.done:
			return false
		case <-time.After(exp.NextBackOff()):
		}

		dialCtx, cancel := context.WithTimeout(context.Background(), c.cfg.DialTimeout)
		conn, _, err := websocket.DefaultDialer.DialContext(dialCtx, c.wsURL, nil)
		cancel()
		if err != nil {
			c.logger.Debug().Err(err).Msg("re-dial failed")
			continue
		}
		conn.SetReadLimit(c.cfg.ReadLimit)

		c.mu.Lock()
		if c.closed {
			c.mu.Unlock()
			_ = conn.Close()
			return false
		}
		c.conn = conn
		c.mu.Unlock()
		reconnectsTotal.Inc()
		return true
	}
}

// websocketURL converts the HTTP base URL into the ws endpoint carrying the
// user identity and token as query parameters.
func websocketURL(baseURL, userUID, token string) (string, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return "", err
	}
	switch u.Scheme {
	case "https":
		u.Scheme = "wss"
	default:
		u.Scheme = "ws"
	}
	u.Path = "/ws"
	q := u.Query()
	q.Set("uid", userUID)
	if token != "" {
		q.Set("token", token)
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}
