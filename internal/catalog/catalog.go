// Package catalog mirrors classified blocks, derived question/answer pairs,
// and review records into PostgreSQL. Every write is an upsert keyed by id,
// so replaying a sync overwrites rows instead of duplicating them.
package catalog

import (
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/docquest/internal/blocks"
)

// Document is a catalogued source document.
type Document struct {
	ID         string    `json:"id"`
	Filename   string    `json:"filename"`
	BlockCount int       `json:"block_count"`
	PairCount  int       `json:"pair_count"`
	CreatedAt  time.Time `json:"created_at"`
	SyncedAt   time.Time `json:"synced_at"`
}

// Entry is a catalogued block with its owning document and current review status.
type Entry struct {
	DocumentID string `json:"document_id"`
	blocks.Block
	ReviewStatus string `json:"review_status"`
}

// Pair is a question block joined with the answer blocks that follow it.
type Pair struct {
	ID              uuid.UUID `json:"id"`
	DocumentID      string    `json:"document_id"`
	QuestionBlockID string    `json:"question_block_id"`
	Question        string    `json:"question"`
	Answer          string    `json:"answer"`
}

// SyncCommand carries one document's classified blocks into the catalog.
type SyncCommand struct {
	DocumentID string
	Filename   string
	Blocks     []blocks.Block
}

// SyncResult reports the rows a sync wrote.
type SyncResult struct {
	DocumentID string `json:"document_id"`
	Blocks     int    `json:"blocks"`
	Pairs      int    `json:"pairs"`
}
