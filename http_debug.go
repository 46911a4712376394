package campuslink

import (
	"net/http"
	"net/http/httputil"
	"os"

	"github.com/rs/zerolog/log"
)

// debugTransport logs full HTTP request/response dumps for troubleshooting
// backend communication (timeouts, malformed requests, auth failures).
//
// Activation:
//   - CAMPUSLINK_DEBUG=true (SDK-specific flag)
//   - DEBUG=true (general development flag)
//
// Dumps include headers and bodies, session token included; keep this off
// outside development and staging.
type debugTransport struct{ base http.RoundTripper }

func (dt *debugTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if debugLoggingRequested() {
		if reqDump, err := httputil.DumpRequestOut(req, true); err == nil {
			log.Debug().Str("method", req.Method).Str("url", req.URL.String()).Str("request_dump", string(reqDump)).Msg("HTTP request")
		}
	}

	resp, err := dt.base.RoundTrip(req)
	if err != nil {
		if debugLoggingRequested() {
			log.Error().Err(err).Str("method", req.Method).Str("url", req.URL.String()).Msg("HTTP request failed")
		}
		return nil, err
	}

	if debugLoggingRequested() {
		if respDump, err := httputil.DumpResponse(resp, true); err == nil {
			log.Debug().Str("method", req.Method).Str("url", req.URL.String()).Int("status", resp.StatusCode).Str("response_dump", string(respDump)).Msg("HTTP response")
		}
	}
	return resp, nil
}

// debugLoggingRequested reports whether HTTP debug logging is enabled via
// CAMPUSLINK_DEBUG=true or DEBUG=true.
func debugLoggingRequested() bool {
	return os.Getenv("CAMPUSLINK_DEBUG") == "true" || os.Getenv("DEBUG") == "true"
}
