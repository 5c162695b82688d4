package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/JaimeStill/docquest/internal/api"
	"github.com/JaimeStill/docquest/internal/config"
	"github.com/JaimeStill/docquest/internal/infrastructure"
	"github.com/JaimeStill/docquest/internal/pipeline"
)

// app carries what every command needs.
type app struct {
	cfg      *config.Config
	pipeline pipeline.System
	logger   *slog.Logger
	stdout   io.Writer
}

type command func(ctx context.Context, a *app, args []string) error

var commands = map[string]command{
	"extract":  extractCmd,
	"ingest":   ingestCmd,
	"classify": classifyCmd,
	"blocks":   blocksCmd,
	"review":   reviewCmd,
	"export":   exportCmd,
	"status":   statusCmd,
	"reset":    resetCmd,
	"openapi":  openapiCmd,
}

func run(ctx context.Context, cfg *config.Config, cmd command, args []string) error {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	if os.Getenv("DOCQUEST_VERBOSE") != "" {
		logger = slog.New(slog.NewTextHandler(os.Stderr, nil))
	}

	infra, err := infrastructure.NewWithLogger(cfg, logger)
	if err != nil {
		return err
	}
	if err := infra.Start(); err != nil {
		return err
	}
	defer infra.Lifecycle.Shutdown(cfg.ShutdownTimeoutDuration())

	if err := infra.Lifecycle.WaitForStartup(); err != nil {
		return fmt.Errorf("startup: %w", err)
	}

	domain, err := api.NewDomain(cfg, api.NewRuntime(cfg, infra))
	if err != nil {
		return err
	}

	a := &app{
		cfg:      cfg,
		pipeline: domain.Pipeline,
		logger:   logger,
		stdout:   os.Stdout,
	}
	return cmd(ctx, a, args)
}

func (a *app) printJSON(v any) error {
	enc := json.NewEncoder(a.stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
