// Package sso implements the ticket validator port: a simulated identity
// provider for demo environments and an OIDC-backed one for real
// deployments.
package sso

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	"vbay/internal/domain"
)

// simulatedTicket is the synthetic ticket the fake provider hands back.
const simulatedTicket = "ST-SIMULATED-TICKET-12345"

// Simulator stands in for a real SSO server. Sign-in "redirects" back to
// the service URL with a synthetic ticket, and validation always succeeds
// after a fixed delay, fabricating a staff user. There is deliberately no
// failure path: a rejected ticket or validation timeout does not exist in
// this flow.
type Simulator struct {
	// RedirectDelay is how long the simulated provider takes before
	// sending the user back to the service.
	RedirectDelay time.Duration
	// ValidateDelay is how long simulated ticket validation takes.
	ValidateDelay time.Duration
}

var _ domain.TicketValidator = (*Simulator)(nil)

// NewSimulator returns a simulator with the demo delays.
func NewSimulator() *Simulator {
	return &Simulator{
		RedirectDelay: time.Second,
		ValidateDelay: 1500 * time.Millisecond,
	}
}

// LoginURL returns the service URL with the synthetic ticket and echoed
// state attached, as a real provider's redirect would.
func (s *Simulator) LoginURL(service, state string) string {
	return service + "?ticket=" + simulatedTicket + "&state=" + state
}

// WaitRedirect blocks for the simulated provider round trip, or until ctx
// is cancelled.
func (s *Simulator) WaitRedirect(ctx context.Context) error {
	return sleep(ctx, s.RedirectDelay)
}

// Validate waits the fixed validation delay and fabricates a staff user.
// Any non-empty ticket validates.
func (s *Simulator) Validate(ctx context.Context, ticket string) (*domain.User, error) {
	if ticket == "" {
		return nil, errors.New("missing ticket")
	}
	if err := sleep(ctx, s.ValidateDelay); err != nil {
		return nil, err
	}

	suffix := make([]byte, 5)
	if _, err := rand.Read(suffix); err != nil {
		return nil, err
	}
	return &domain.User{
		ID:         "vims-" + hex.EncodeToString(suffix),
		Name:       "VIMS Staff Member",
		Department: "Marine Science",
		Email:      "staff@vims.edu",
	}, nil
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
