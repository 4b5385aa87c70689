// Package auth tracks the authenticated identity that gates every remote
// operation. Commands and transports never talk to the identity provider
// directly; they go through a Manager.
package auth

import (
	"context"
	"errors"
)

// ErrUnauthenticated is returned when an operation requires a session and
// none is present.
var ErrUnauthenticated = errors.New("not authenticated")

// Session is the identity currently recognized by the client.
type Session struct {
	UserID string
	Email  string
	Name   string
}

// Provider is the identity provider consumed by the Manager. Implementations
// own token issuance and persistence; the Manager only observes sessions and
// asks for tokens.
type Provider interface {
	// CurrentSession resolves the active session, or nil when signed out.
	CurrentSession(ctx context.Context) (*Session, error)

	// Subscribe registers a listener for session changes and returns an
	// unsubscribe function. The listener is invoked synchronously with the
	// resolved current state on registration, then on every change.
	Subscribe(listener func(*Session)) (unsubscribe func())

	// SignUp registers a new identity and signs it in.
	SignUp(ctx context.Context, email, password string) (*Session, error)

	// SignIn authenticates with email and password.
	SignIn(ctx context.Context, email, password string) (*Session, error)

	// SignOut clears the active session.
	SignOut(ctx context.Context) error

	// AccessToken returns a bearer token valid at the moment of the call.
	// Returns ErrUnauthenticated when no session exists.
	AccessToken(ctx context.Context) (string, error)
}
