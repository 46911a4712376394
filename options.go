package campuslink

// This file defines functional options that configure the Client during
// construction. Keeping them in a standalone file avoids cluttering
// client.go and makes it easy to discover all available knobs at a glance.

import (
	"fmt"
	"net/http"
	"time"

	"github.com/campuslink/campuslink-go/internal/outbox"

	"github.com/rs/zerolog"
)

// Option configures a Client during construction in New.
//
// Options are applied before the bearer-token transport wrapper is
// installed, so transport-related options (like debug logging) end up
// underneath the token wrapper. Options must be deterministic and
// side-effect free.
type Option func(*Client) error

// WithHTTPTimeout sets the underlying http.Client Timeout used by the SDK.
//
// Prefer per-request context deadlines where possible; this timeout is a
// coarse safety net that bounds the total time spent on a single HTTP
// request. The value must be greater than zero.
func WithHTTPTimeout(d time.Duration) Option {
	return func(c *Client) error {
		if d <= 0 {
			return fmt.Errorf("http timeout must be > 0")
		}
		c.http.Timeout = d
		return nil
	}
}

// WithDebugLogging wraps the client's transport so each request/response
// is logged when enabled is true.
//
// Do not enable this option in production environments: dumps include
// headers and bodies.
func WithDebugLogging(enabled bool) Option {
	return func(c *Client) error {
		if enabled {
			base := c.http.Transport
			if base == nil {
				base = http.DefaultTransport
			}
			c.http.Transport = &debugTransport{base: base}
		}
		return nil
	}
}

// WithOutbox replaces the default connection-mutation outbox, typically
// to tune shard count and queue depth beyond the CL_OUTBOX_* env knobs.
func WithOutbox(o *outbox.Outbox) Option {
	return func(c *Client) error {
		if o == nil {
			return fmt.Errorf("outbox cannot be nil")
		}
		c.exec = o
		return nil
	}
}

// WithLogger sets the logger handed to the networking view and the
// realtime channel. The default is a no-op logger.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) error {
		c.logger = l
		return nil
	}
}
