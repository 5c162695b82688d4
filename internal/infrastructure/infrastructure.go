// Package infrastructure provides core service initialization for application startup.
// It assembles the dependencies domain systems require: logging, the optional
// catalog database, optional blob storage, and the artifact store.
package infrastructure

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/JaimeStill/docquest/internal/artifacts"
	"github.com/JaimeStill/docquest/internal/config"
	"github.com/JaimeStill/docquest/pkg/database"
	"github.com/JaimeStill/docquest/pkg/lifecycle"
	"github.com/JaimeStill/docquest/pkg/storage"
)

// Infrastructure holds the core systems shared by the server and the CLI.
// Database and Storage are nil when their sections are not configured.
type Infrastructure struct {
	Lifecycle *lifecycle.Coordinator
	Logger    *slog.Logger
	Database  database.System
	Storage   storage.System
	Artifacts artifacts.Store
}

// New creates an Infrastructure from the application configuration.
// It initializes all systems but does not start them; call Start separately.
func New(cfg *config.Config) (*Infrastructure, error) {
	return NewWithLogger(cfg, slog.New(slog.NewTextHandler(os.Stderr, nil)))
}

// NewWithLogger is New with a caller-supplied logger.
func NewWithLogger(cfg *config.Config, logger *slog.Logger) (*Infrastructure, error) {
	lc := lifecycle.New()

	infra := &Infrastructure{
		Lifecycle: lc,
		Logger:    logger,
	}

	if cfg.Database.Enabled() {
		db, err := database.New(&cfg.Database, logger)
		if err != nil {
			return nil, fmt.Errorf("database init failed: %w", err)
		}
		infra.Database = db
	}

	if cfg.Storage.Enabled() {
		store, err := storage.New(lc.Context(), &cfg.Storage, logger)
		if err != nil {
			return nil, fmt.Errorf("storage init failed: %w", err)
		}
		infra.Storage = store
	}

	switch cfg.Artifacts.Backend {
	case config.BackendBlob:
		infra.Artifacts = artifacts.NewBlobStore(infra.Storage, cfg.Artifacts.Prefix)
	default:
		infra.Artifacts = artifacts.NewFileStore(cfg.Artifacts.Dir)
	}

	logger.Info(
		"infrastructure initialized",
		"artifacts", cfg.Artifacts.Backend,
		"database", infra.Database != nil,
		"storage", infra.Storage != nil,
	)

	return infra, nil
}

// Start registers the configured systems with the lifecycle coordinator.
func (i *Infrastructure) Start() error {
	if i.Database != nil {
		if err := i.Database.Start(i.Lifecycle); err != nil {
			return fmt.Errorf("database start failed: %w", err)
		}
	}
	if i.Storage != nil {
		if err := i.Storage.Start(i.Lifecycle); err != nil {
			return fmt.Errorf("storage start failed: %w", err)
		}
	}
	return nil
}

// Context returns the lifecycle context, cancelled on shutdown.
func (i *Infrastructure) Context() context.Context {
	return i.Lifecycle.Context()
}
