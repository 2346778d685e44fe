// Package app holds the application services and business logic.
package app

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"time"

	"vbay/internal/domain"

	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrMissingTicket indicates the callback arrived without a ticket.
	ErrMissingTicket = errors.New("missing ticket")
	// ErrSessionNotFound indicates no active session matches the token.
	ErrSessionNotFound = errors.New("session not found")
	// ErrDebugLoginDisabled indicates no debug passphrase is configured.
	ErrDebugLoginDisabled = errors.New("debug login disabled")
	// ErrInvalidCredentials indicates the debug passphrase was wrong.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// DebugUser is the fixed account behind the zero-delay developer login.
var DebugUser = domain.User{
	ID:         "u1",
	Name:       "Dr. Jane Mariner",
	Department: "Fisheries Science",
	Email:      "jane.m@vims.edu",
}

// AuthService handles the SSO ticket exchange and session management.
// Logging in replaces any prior session; logging out also empties the
// cart.
type AuthService struct {
	validator  domain.TicketValidator
	sessions   domain.SessionRepository
	cart       *CartService
	debugHash  string
	sessionTTL time.Duration
	now        func() time.Time
}

// NewAuthService creates an authentication service wired to the given
// ticket validator and session store.
func NewAuthService(validator domain.TicketValidator, sessions domain.SessionRepository, cart *CartService) *AuthService {
	return &AuthService{
		validator:  validator,
		sessions:   sessions,
		cart:       cart,
		sessionTTL: 24 * time.Hour,
		now:        time.Now,
	}
}

// WithDebugLogin enables the developer login guarded by the given bcrypt
// passphrase hash.
func (s *AuthService) WithDebugLogin(hash string) *AuthService {
	s.debugHash = hash
	return s
}

// WithClock overrides the service's time source. Used by tests.
func (s *AuthService) WithClock(now func() time.Time) *AuthService {
	s.now = now
	return s
}

// LoginURL returns the identity provider URL for the given callback and
// CSRF state.
func (s *AuthService) LoginURL(service, state string) string {
	return s.validator.LoginURL(service, state)
}

// Login validates a ticket and installs a session for the resulting user,
// replacing any prior session. The sign-in flow stages are tracked
// explicitly; validation has no failure branch beyond a missing ticket.
func (s *AuthService) Login(ctx context.Context, ticket string) (string, *domain.User, error) {
	if ticket == "" {
		return "", nil, ErrMissingTicket
	}

	flow := domain.NewAuthFlow()
	if err := flow.Transition(domain.StageValidating); err != nil {
		return "", nil, err
	}

	user, err := s.validator.Validate(ctx, ticket)
	if err != nil {
		return "", nil, err
	}
	if err := flow.Transition(domain.StageIdle); err != nil {
		return "", nil, err
	}

	token, err := s.install(ctx, *user)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// DebugLogin signs in as DebugUser with zero delay, guarded by the
// configured passphrase.
func (s *AuthService) DebugLogin(ctx context.Context, passphrase string) (string, *domain.User, error) {
	if s.debugHash == "" {
		return "", nil, ErrDebugLoginDisabled
	}
	if err := bcrypt.CompareHashAndPassword([]byte(s.debugHash), []byte(passphrase)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	flow := domain.NewAuthFlow()
	if err := flow.Transition(domain.StageIdle); err != nil {
		return "", nil, err
	}

	user := DebugUser
	token, err := s.install(ctx, user)
	if err != nil {
		return "", nil, err
	}
	return token, &user, nil
}

// Logout clears the session matching token and empties the cart. Unknown
// tokens are a no-op.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	session, err := s.sessions.Current(ctx)
	if err != nil {
		return err
	}
	if session == nil || session.Token != token {
		return nil
	}
	if err := s.sessions.Delete(ctx); err != nil {
		return err
	}
	return s.cart.Clear(ctx)
}

// CurrentUser returns the user behind token, or ErrSessionNotFound when
// the token matches no active session.
func (s *AuthService) CurrentUser(ctx context.Context, token string) (*domain.User, error) {
	session, err := s.sessions.Current(ctx)
	if err != nil {
		return nil, err
	}
	if session == nil || session.Token != token {
		return nil, ErrSessionNotFound
	}
	if session.Expired(s.now()) {
		_ = s.sessions.Delete(ctx)
		return nil, ErrSessionNotFound
	}
	user := session.User
	return &user, nil
}

func (s *AuthService) install(ctx context.Context, user domain.User) (string, error) {
	token, err := generateToken()
	if err != nil {
		return "", err
	}
	now := s.now()
	session := &domain.Session{
		Token:     token,
		User:      user,
		CreatedAt: now,
		ExpiresAt: now.Add(s.sessionTTL),
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return "", err
	}
	return token, nil
}

func generateToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(b), nil
}
