package pipeline

import (
	"context"

	"github.com/JaimeStill/docquest/internal/blocks"
	"github.com/JaimeStill/docquest/internal/review"
)

// System defines the pipeline operations exposed over HTTP and the CLI.
type System interface {
	Handler(maxUploadSize int64) *Handler

	// Ingest validates raw blocks and stores them as the raw artifact.
	Ingest(ctx context.Context, raw []blocks.Block) (*IngestResult, error)
	// Extract splits a text dump into raw blocks and ingests them.
	Extract(ctx context.Context, text string) (*IngestResult, error)
	// Classify classifies the raw artifact into the classified artifact.
	Classify(ctx context.Context) (*Summary, error)
	// Blocks returns the classified blocks annotated with review state.
	Blocks(ctx context.Context) ([]review.Annotated, error)
	// Review records a review decision and maintains the approved set.
	Review(ctx context.Context, u review.Update) (*review.Outcome, error)
	// Export renders the approved set.
	Export(ctx context.Context, req ExportRequest) (*Output, error)
	// Status reports which artifacts exist.
	Status(ctx context.Context) (*Status, error)
	// Reset removes the classified, review state, and approved artifacts.
	Reset(ctx context.Context) error
}
