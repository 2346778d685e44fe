package sso

import (
	"context"
	"errors"

	"vbay/internal/domain"

	"github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"
)

// OIDC validates tickets against a real identity provider. The "ticket"
// on this path is the OAuth2 authorization code returned to the callback.
type OIDC struct {
	provider *oidc.Provider
	oauth    oauth2.Config
}

var _ domain.TicketValidator = (*OIDC)(nil)

// NewOIDC discovers the provider at issuer and prepares the code
// exchange configuration.
func NewOIDC(ctx context.Context, issuer, clientID, clientSecret, redirectURL string) (*OIDC, error) {
	provider, err := oidc.NewProvider(ctx, issuer)
	if err != nil {
		return nil, err
	}
	return &OIDC{
		provider: provider,
		oauth: oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			Endpoint:     provider.Endpoint(),
			RedirectURL:  redirectURL,
			Scopes:       []string{oidc.ScopeOpenID, "profile", "email"},
		},
	}, nil
}

// LoginURL returns the provider's authorization URL. The configured
// redirect URL is used, so service is ignored.
func (o *OIDC) LoginURL(service, state string) string {
	return o.oauth.AuthCodeURL(state)
}

// Validate exchanges the authorization code, verifies the id_token and
// maps its claims to a user.
func (o *OIDC) Validate(ctx context.Context, code string) (*domain.User, error) {
	token, err := o.oauth.Exchange(ctx, code)
	if err != nil {
		return nil, err
	}

	rawIDToken, ok := token.Extra("id_token").(string)
	if !ok {
		return nil, errors.New("no id_token in token response")
	}

	idToken, err := o.provider.Verifier(&oidc.Config{ClientID: o.oauth.ClientID}).Verify(ctx, rawIDToken)
	if err != nil {
		return nil, err
	}

	var claims struct {
		Sub        string `json:"sub"`
		Name       string `json:"name"`
		Email      string `json:"email"`
		Department string `json:"department"`
	}
	if err := idToken.Claims(&claims); err != nil {
		return nil, err
	}

	name := claims.Name
	if name == "" {
		name = claims.Email
	}
	return &domain.User{
		ID:         claims.Sub,
		Name:       name,
		Department: claims.Department,
		Email:      claims.Email,
	}, nil
}
