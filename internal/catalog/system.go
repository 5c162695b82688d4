package catalog

import (
	"context"

	"github.com/JaimeStill/docquest/internal/review"
	"github.com/JaimeStill/docquest/pkg/pagination"
)

// System defines the catalog mirror's operations.
type System interface {
	Handler() *Handler

	// Sync upserts the document and its blocks, and replaces the pairs derived from them.
	Sync(ctx context.Context, cmd SyncCommand) (*SyncResult, error)
	// SyncReview upserts the review record for one block.
	SyncReview(ctx context.Context, documentID, blockID string, rec review.Record) error

	ListDocuments(ctx context.Context) ([]Document, error)
	ListBlocks(ctx context.Context, page pagination.PageRequest, filters Filters) (*pagination.PageResult[Entry], error)
	ListPairs(ctx context.Context, documentID string) ([]Pair, error)
}
