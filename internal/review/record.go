package review

import (
	"time"

	"github.com/JaimeStill/docquest/internal/blocks"
)

// Record is the latest review decision for one block. Absence of a record
// means the block is pending.
type Record struct {
	Status    Status     `json:"status"`
	Reviewer  string     `json:"reviewer"`
	Notes     string     `json:"notes"`
	UpdatedAt *time.Time `json:"updated_at"`
}

// State maps block id to its review record.
type State map[string]Record

// Annotated is a classified block with its review fields attached.
type Annotated struct {
	blocks.Block
	ReviewStatus Status `json:"review_status"`
	Reviewer     string `json:"reviewer"`
	Notes        string `json:"notes"`
}

// Annotate attaches review fields from state to every block, defaulting to
// pending with empty reviewer and notes. Neither input is modified.
func Annotate(classified []blocks.Block, state State) []Annotated {
	out := make([]Annotated, len(classified))
	for i, b := range classified {
		a := Annotated{Block: b, ReviewStatus: Pending}
		if rec, ok := state[b.ID]; ok {
			a.ReviewStatus = rec.Status
			a.Reviewer = rec.Reviewer
			a.Notes = rec.Notes
		}
		out[i] = a
	}
	return out
}
