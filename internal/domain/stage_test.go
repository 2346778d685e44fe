package domain_test

import (
	"errors"
	"testing"

	"vbay/internal/domain"
)

func TestAuthStageTransitions(t *testing.T) {
	tests := []struct {
		name string
		from domain.AuthStage
		to   domain.AuthStage
		ok   bool
	}{
		{"sign-in begins redirect", domain.StageIdle, domain.StageRedirecting, true},
		{"debug login stays idle", domain.StageIdle, domain.StageIdle, true},
		{"ticket in URL goes straight to validating", domain.StageIdle, domain.StageValidating, true},
		{"external reload lands on validating", domain.StageRedirecting, domain.StageValidating, true},
		{"validation completes", domain.StageValidating, domain.StageIdle, true},
		{"no redirect while validating", domain.StageValidating, domain.StageRedirecting, false},
		{"no direct completion from redirecting", domain.StageRedirecting, domain.StageIdle, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.from.CanTransition(tc.to); got != tc.ok {
				t.Errorf("CanTransition(%s -> %s) = %v; want %v", tc.from, tc.to, got, tc.ok)
			}
		})
	}
}

func TestAuthFlow(t *testing.T) {
	flow := domain.NewAuthFlow()
	if flow.Stage() != domain.StageIdle {
		t.Fatalf("new flow must start idle, got %s", flow.Stage())
	}

	for _, next := range []domain.AuthStage{domain.StageRedirecting, domain.StageValidating, domain.StageIdle} {
		if err := flow.Transition(next); err != nil {
			t.Fatalf("transition to %s: %v", next, err)
		}
	}

	if err := flow.Transition(domain.StageIdle); err != nil {
		t.Fatalf("debug login transition from idle: %v", err)
	}

	flow = domain.NewAuthFlow()
	if err := flow.Transition(domain.StageRedirecting); err != nil {
		t.Fatal(err)
	}
	err := flow.Transition(domain.StageRedirecting)
	if !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
	if flow.Stage() != domain.StageRedirecting {
		t.Fatalf("failed transition must not change stage, got %s", flow.Stage())
	}
}
