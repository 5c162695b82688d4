// Package api assembles the API module with all domain systems and route registration.
package api

import (
	"net/http"

	"github.com/JaimeStill/docquest/internal/config"
	"github.com/JaimeStill/docquest/internal/infrastructure"
	"github.com/JaimeStill/docquest/pkg/auth"
	"github.com/JaimeStill/docquest/pkg/middleware"
	"github.com/JaimeStill/docquest/pkg/module"
)

// NewModule creates the API module with all domain handlers and middleware.
// Bearer authentication is applied only when an OIDC issuer is configured.
func NewModule(cfg *config.Config, infra *infrastructure.Infrastructure) (*module.Module, error) {
	runtime := NewRuntime(cfg, infra)

	domain, err := NewDomain(cfg, runtime)
	if err != nil {
		return nil, err
	}

	mux := http.NewServeMux()
	if err := registerRoutes(mux, domain, cfg, runtime); err != nil {
		return nil, err
	}

	var verifier middleware.Verifier
	if cfg.Auth.Enabled() {
		verifier = auth.New(&cfg.Auth)
	}

	m := module.New(cfg.API.BasePath, mux)
	m.Use(middleware.CORS(&cfg.API.CORS))
	m.Use(middleware.Logger(runtime.Logger))
	m.Use(middleware.Auth(verifier, runtime.Logger))

	return m, nil
}
