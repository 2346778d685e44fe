package domain

import (
	"errors"
	"fmt"
)

// AuthStage is a state of the sign-in flow.
type AuthStage string

// Sign-in flow states. The flow is idle -> redirecting -> (external
// reload) -> validating -> idle once logged in. The debug path logs in
// directly from idle.
const (
	StageIdle        AuthStage = "idle"
	StageRedirecting AuthStage = "redirecting"
	StageValidating  AuthStage = "validating"
)

// ErrInvalidTransition indicates a sign-in stage change that is not in the
// transition table.
var ErrInvalidTransition = errors.New("invalid auth stage transition")

// authTransitions is the full transition table; there are no implicit
// transitions. idle -> idle covers the zero-delay debug login.
var authTransitions = map[AuthStage][]AuthStage{
	StageIdle:        {StageRedirecting, StageValidating, StageIdle},
	StageRedirecting: {StageValidating},
	StageValidating:  {StageIdle},
}

// CanTransition reports whether moving from s to next is allowed.
func (s AuthStage) CanTransition(next AuthStage) bool {
	for _, allowed := range authTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// AuthFlow tracks the current sign-in stage and rejects transitions that
// are not in the table.
type AuthFlow struct {
	stage AuthStage
}

// NewAuthFlow returns a flow in the idle stage.
func NewAuthFlow() *AuthFlow {
	return &AuthFlow{stage: StageIdle}
}

// Stage returns the current stage.
func (f *AuthFlow) Stage() AuthStage {
	return f.stage
}

// Transition moves the flow to next, or fails with ErrInvalidTransition.
func (f *AuthFlow) Transition(next AuthStage) error {
	if !f.stage.CanTransition(next) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, f.stage, next)
	}
	f.stage = next
	return nil
}
