package auth_test

import (
	"strings"
	"testing"

	"github.com/JaimeStill/docquest/pkg/auth"
)

func TestFinalizeDisabled(t *testing.T) {
	cfg := auth.Config{}
	if err := cfg.Finalize(nil); err != nil {
		t.Fatalf("finalize failed: %v", err)
	}
	if cfg.Enabled() {
		t.Error("auth should be disabled without an issuer")
	}
}

func TestFinalizeEnvOverrides(t *testing.T) {
	t.Setenv("TEST_ISSUER", "https://id.example.com/realms/docquest")
	t.Setenv("TEST_CLIENT", "docquest-dashboard")
	t.Setenv("TEST_JWKS", "https://id.example.com/realms/docquest/certs")

	env := &auth.Env{Issuer: "TEST_ISSUER", ClientID: "TEST_CLIENT", JWKSURL: "TEST_JWKS"}

	cfg := auth.Config{}
	if err := cfg.Finalize(env); err != nil {
		t.Fatalf("finalize failed: %v", err)
	}
	if !cfg.Enabled() {
		t.Fatal("auth should be enabled")
	}
	if cfg.ClientID != "docquest-dashboard" {
		t.Errorf("client_id: got %s", cfg.ClientID)
	}
}

func TestFinalizeValidation(t *testing.T) {
	tests := []struct {
		name    string
		cfg     auth.Config
		wantErr string
	}{
		{"missing client", auth.Config{Issuer: "https://id.example.com", JWKSURL: "https://id.example.com/certs"}, "client_id"},
		{"missing jwks", auth.Config{Issuer: "https://id.example.com", ClientID: "docquest"}, "jwks_url"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Finalize(nil)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not contain %q", err.Error(), tt.wantErr)
			}
		})
	}
}

func TestMerge(t *testing.T) {
	base := auth.Config{Issuer: "https://a", ClientID: "a", JWKSURL: "https://a/certs"}
	base.Merge(&auth.Config{Issuer: "https://b"})

	if base.Issuer != "https://b" || base.ClientID != "a" {
		t.Errorf("merge: got %+v", base)
	}
}

func TestVerifyRejectsMalformedToken(t *testing.T) {
	v := auth.New(&auth.Config{
		Issuer:   "https://id.example.com",
		ClientID: "docquest",
		JWKSURL:  "http://127.0.0.1:0/certs",
	})

	if _, err := v.Verify(t.Context(), "not-a-jwt"); err == nil {
		t.Error("expected malformed token to fail verification")
	}
}
