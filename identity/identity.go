// Package identity exposes the current user's identity to the rest of the
// SDK. Sign-in and session persistence belong to the external identity
// provider; this package only reads who the session belongs to.
package identity

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

// ErrNoIdentity is returned while the session has no resolved user yet.
// Callers treat it as "defer all fetches", not as a failure.
var ErrNoIdentity = errors.New("identity not resolved")

// Provider yields the authenticated user's identifier.
type Provider interface {
	// CurrentUID returns the user id, or ErrNoIdentity while sign-in is
	// still in flight.
	CurrentUID() (string, error)
}

// Static is a Provider for a known, fixed identity (tests, tools).
type Static string

// CurrentUID implements Provider.
func (s Static) CurrentUID() (string, error) {
	if s == "" {
		return "", ErrNoIdentity
	}
	return string(s), nil
}

// FromToken extracts the user id from a session JWT without verifying the
// signature: the backend is the authority on token validity, the client
// only needs to know which identity it is acting as. The uid is read from
// the "user_id" claim, falling back to "sub".
func FromToken(token string) (Provider, error) {
	if token == "" {
		return nil, ErrNoIdentity
	}
	parser := jwt.NewParser()
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return nil, err
	}
	if uid, ok := claims["user_id"].(string); ok && uid != "" {
		return Static(uid), nil
	}
	if sub, ok := claims["sub"].(string); ok && sub != "" {
		return Static(sub), nil
	}
	return nil, ErrNoIdentity
}
