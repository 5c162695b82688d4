package api

import (
	"fmt"
	"net/http"

	"github.com/JaimeStill/docquest/internal/config"
	"github.com/JaimeStill/docquest/pkg/openapi"
	"github.com/JaimeStill/docquest/pkg/routes"
)

func registerRoutes(
	mux *http.ServeMux,
	domain *Domain,
	cfg *config.Config,
	runtime *Runtime,
) error {
	specBytes, err := openapi.MarshalJSON(Spec(cfg, domain.Catalog != nil))
	if err != nil {
		return fmt.Errorf("marshal openapi spec: %w", err)
	}

	groups := []routes.Group{
		domain.Pipeline.Handler(cfg.API.MaxUploadSizeBytes()).Routes(),
		newArtifactsHandler(runtime.Artifacts, runtime.Logger).routes(),
		{
			Routes: []routes.Route{
				{Method: "GET", Pattern: "/openapi.json", Handler: openapi.ServeSpec(specBytes)},
			},
		},
	}

	if domain.Catalog != nil {
		groups = append(groups, domain.Catalog.Handler().Routes())
	}

	routes.Register(mux, groups...)
	return nil
}
