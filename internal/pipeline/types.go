package pipeline

import (
	"github.com/JaimeStill/docquest/internal/artifacts"
	"github.com/JaimeStill/docquest/internal/catalog"
	"github.com/JaimeStill/docquest/internal/classifier"
	"github.com/JaimeStill/docquest/internal/export"
)

// IngestResult reports an ingested raw artifact.
type IngestResult struct {
	DocumentID string `json:"document_id"`
	Blocks     int    `json:"blocks"`
}

// Summary reports a classification run.
type Summary struct {
	DocumentID string              `json:"document_id"`
	Total      int                 `json:"total"`
	Counts     classifier.Counts   `json:"counts"`
	Catalog    *catalog.SyncResult `json:"catalog,omitempty"`
}

// ExportRequest selects the export encoding and order. An empty format means
// json; an empty order uses the configured default.
type ExportRequest struct {
	Format string `json:"format"`
	Order  string `json:"order,omitempty"`
}

// Output is a rendered export.
type Output struct {
	Format export.Format
	Blocks int
	Body   []byte
}

// Status reports artifact presence for the current document.
type Status struct {
	DocumentID string                  `json:"document_id"`
	Artifacts  map[artifacts.Name]bool `json:"artifacts"`
}
