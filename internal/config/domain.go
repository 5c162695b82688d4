package config

import (
	"fmt"
	"runtime"
	"slices"
)

// Artifact backends.
const (
	BackendFile = "file"
	BackendBlob = "blob"
)

// ArtifactsConfig selects where the pipeline's JSON artifacts live.
type ArtifactsConfig struct {
	Backend string `toml:"backend"`
	Dir     string `toml:"dir"`
	Prefix  string `toml:"prefix"`
}

func (c *ArtifactsConfig) finalize() error {
	if c.Backend == "" {
		c.Backend = BackendFile
	}
	if c.Dir == "" {
		c.Dir = "data"
	}
	if c.Prefix == "" {
		c.Prefix = "artifacts"
	}

	envString("DOCQUEST_ARTIFACTS_BACKEND", &c.Backend)
	envString("DOCQUEST_ARTIFACTS_DIR", &c.Dir)
	envString("DOCQUEST_ARTIFACTS_PREFIX", &c.Prefix)

	if !slices.Contains([]string{BackendFile, BackendBlob}, c.Backend) {
		return fmt.Errorf("unsupported backend: %q", c.Backend)
	}
	return nil
}

func (c *ArtifactsConfig) merge(overlay *ArtifactsConfig) {
	if overlay.Backend != "" {
		c.Backend = overlay.Backend
	}
	if overlay.Dir != "" {
		c.Dir = overlay.Dir
	}
	if overlay.Prefix != "" {
		c.Prefix = overlay.Prefix
	}
}

// DocumentConfig identifies the document the pipeline is processing.
type DocumentConfig struct {
	ID       string `toml:"id"`
	Filename string `toml:"filename"`
}

func (c *DocumentConfig) finalize() error {
	if c.ID == "" {
		c.ID = "default_doc"
	}
	envString("DOCQUEST_DOCUMENT_ID", &c.ID)
	envString("DOCQUEST_DOCUMENT_FILENAME", &c.Filename)
	return nil
}

func (c *DocumentConfig) merge(overlay *DocumentConfig) {
	if overlay.ID != "" {
		c.ID = overlay.ID
	}
	if overlay.Filename != "" {
		c.Filename = overlay.Filename
	}
}

// ReviewConfig selects how the approved set reacts to repeated approvals and
// to approvals being withdrawn.
type ReviewConfig struct {
	Snapshot  string `toml:"snapshot"`
	Rejection string `toml:"rejection"`
}

func (c *ReviewConfig) finalize() error {
	if c.Snapshot == "" {
		c.Snapshot = "refresh"
	}
	if c.Rejection == "" {
		c.Rejection = "prune"
	}

	envString("DOCQUEST_REVIEW_SNAPSHOT", &c.Snapshot)
	envString("DOCQUEST_REVIEW_REJECTION", &c.Rejection)

	if !slices.Contains([]string{"refresh", "first"}, c.Snapshot) {
		return fmt.Errorf("unsupported snapshot policy: %q", c.Snapshot)
	}
	if !slices.Contains([]string{"prune", "retain"}, c.Rejection) {
		return fmt.Errorf("unsupported rejection policy: %q", c.Rejection)
	}
	return nil
}

func (c *ReviewConfig) merge(overlay *ReviewConfig) {
	if overlay.Snapshot != "" {
		c.Snapshot = overlay.Snapshot
	}
	if overlay.Rejection != "" {
		c.Rejection = overlay.Rejection
	}
}

// ExportConfig holds export defaults.
type ExportConfig struct {
	Order         string `toml:"order"`
	VerifySources bool   `toml:"verify_sources"`
}

func (c *ExportConfig) finalize() error {
	if c.Order == "" {
		c.Order = "document"
	}

	envString("DOCQUEST_EXPORT_ORDER", &c.Order)
	envBool("DOCQUEST_EXPORT_VERIFY_SOURCES", &c.VerifySources)

	if !slices.Contains([]string{"document", "approval"}, c.Order) {
		return fmt.Errorf("unsupported order: %q", c.Order)
	}
	return nil
}

func (c *ExportConfig) merge(overlay *ExportConfig) {
	if overlay.Order != "" {
		c.Order = overlay.Order
	}
	if overlay.VerifySources {
		c.VerifySources = true
	}
}

// PipelineConfig tunes the classification stage.
type PipelineConfig struct {
	Workers int `toml:"workers"`
}

func (c *PipelineConfig) finalize() error {
	if c.Workers == 0 {
		c.Workers = runtime.GOMAXPROCS(0)
	}
	envInt("DOCQUEST_PIPELINE_WORKERS", &c.Workers)
	if c.Workers < 1 {
		return fmt.Errorf("workers must be positive")
	}
	return nil
}

func (c *PipelineConfig) merge(overlay *PipelineConfig) {
	if overlay.Workers != 0 {
		c.Workers = overlay.Workers
	}
}
