package api

import (
	"fmt"

	"github.com/JaimeStill/docquest/internal/catalog"
	"github.com/JaimeStill/docquest/internal/config"
	"github.com/JaimeStill/docquest/internal/export"
	"github.com/JaimeStill/docquest/internal/pipeline"
	"github.com/JaimeStill/docquest/internal/review"
)

// Domain holds all domain systems that comprise the API.
// Catalog is nil when no database is configured.
type Domain struct {
	Catalog  catalog.System
	Pipeline pipeline.System
}

// NewDomain creates all domain systems from the API runtime.
func NewDomain(cfg *config.Config, runtime *Runtime) (*Domain, error) {
	pcfg, err := PipelineConfig(cfg)
	if err != nil {
		return nil, err
	}

	var cat catalog.System
	if runtime.Database != nil {
		cat = catalog.New(
			runtime.Database.Connection(),
			runtime.Logger,
			runtime.Pagination,
		)
	}

	return &Domain{
		Catalog:  cat,
		Pipeline: pipeline.New(runtime.Artifacts, cat, pcfg, runtime.Logger),
	}, nil
}

// PipelineConfig translates the finalized configuration into pipeline settings.
func PipelineConfig(cfg *config.Config) (pipeline.Config, error) {
	policy, err := review.ParsePolicy(cfg.Review.Snapshot, cfg.Review.Rejection)
	if err != nil {
		return pipeline.Config{}, fmt.Errorf("review policy: %w", err)
	}

	order, err := export.ParseOrder(cfg.Export.Order)
	if err != nil {
		return pipeline.Config{}, fmt.Errorf("export order: %w", err)
	}

	return pipeline.Config{
		DocumentID:    cfg.Document.ID,
		Filename:      cfg.Document.Filename,
		Workers:       cfg.Pipeline.Workers,
		Order:         order,
		VerifySources: cfg.Export.VerifySources,
		Policy:        policy,
	}, nil
}
