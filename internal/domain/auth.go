package domain

import (
	"context"
	"time"
)

// User is a community member authenticated through the SSO flow.
type User struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Department string `json:"department"`
	Email      string `json:"email"`
}

// Session is the single active authenticated session, if any.
type Session struct {
	Token     string    `json:"token"`
	User      User      `json:"user"`
	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Expired reports whether the session has passed its expiry.
func (s *Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}

// SessionRepository is the port for session persistence. There is at most
// one active session at a time.
type SessionRepository interface {
	// Create installs a session, replacing any prior one.
	Create(ctx context.Context, session *Session) error
	// Current returns the active session, or nil when none exists.
	Current(ctx context.Context) (*Session, error)
	// Delete clears the active session; no-op when none exists.
	Delete(ctx context.Context) error
}

// TicketValidator is the port to the identity provider. The simulated
// implementation fabricates a user after a fixed delay; the OIDC
// implementation performs a real code exchange.
type TicketValidator interface {
	// LoginURL returns the provider URL the client is redirected to.
	// service is the callback URL the provider returns the user to and
	// state is an opaque CSRF token echoed back on the callback.
	LoginURL(service, state string) string
	// Validate exchanges a ticket for the authenticated user.
	Validate(ctx context.Context, ticket string) (*User, error)
}
