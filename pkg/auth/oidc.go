// Package auth verifies OpenID Connect bearer tokens so review actions can be
// attributed to an authenticated reviewer.
package auth

import (
	"context"
	"fmt"

	"github.com/coreos/go-oidc/v3/oidc"
)

// OIDC verifies ID tokens against a remote JWKS and resolves the reviewer identity.
type OIDC struct {
	verifier *oidc.IDTokenVerifier
}

type claims struct {
	Email             string `json:"email"`
	PreferredUsername string `json:"preferred_username"`
}

// New builds a verifier for the configured issuer. Keys are fetched lazily
// from the JWKS endpoint on first verification.
func New(cfg *Config) *OIDC {
	keySet := oidc.NewRemoteKeySet(context.Background(), cfg.JWKSURL)
	return &OIDC{
		verifier: oidc.NewVerifier(cfg.Issuer, keySet, &oidc.Config{ClientID: cfg.ClientID}),
	}
}

// Verify validates the token and returns the email, preferred username, or
// subject, in that order of preference.
func (o *OIDC) Verify(ctx context.Context, rawToken string) (string, error) {
	token, err := o.verifier.Verify(ctx, rawToken)
	if err != nil {
		return "", fmt.Errorf("verify id token: %w", err)
	}

	var c claims
	if err := token.Claims(&c); err != nil {
		return "", fmt.Errorf("decode claims: %w", err)
	}

	switch {
	case c.Email != "":
		return c.Email, nil
	case c.PreferredUsername != "":
		return c.PreferredUsername, nil
	default:
		return token.Subject, nil
	}
}
