package review

import (
	"fmt"
	"time"

	"github.com/JaimeStill/docquest/internal/blocks"
)

// Update is one review decision for a block.
type Update struct {
	BlockID   string
	Status    Status
	Reviewer  string
	Notes     string
	UpdatedAt *time.Time
}

// Validate rejects an empty block id or an unknown status.
func (u Update) Validate() error {
	if u.BlockID == "" {
		return ErrInvalidBlock
	}
	if _, err := ParseStatus(string(u.Status)); err != nil {
		return err
	}
	return nil
}

// Record returns the review record u writes.
func (u Update) Record() Record {
	return Record{
		Status:    u.Status,
		Reviewer:  u.Reviewer,
		Notes:     u.Notes,
		UpdatedAt: u.UpdatedAt,
	}
}

// UpdateCommand is the review request body sent by the dashboard.
type UpdateCommand struct {
	ReviewStatus string     `json:"review_status"`
	Reviewer     string     `json:"reviewer"`
	Notes        string     `json:"notes"`
	UpdatedAt    *time.Time `json:"updated_at"`
}

// Update converts the command for the given block id.
func (c UpdateCommand) Update(blockID string) Update {
	return Update{
		BlockID:   blockID,
		Status:    Status(c.ReviewStatus),
		Reviewer:  c.Reviewer,
		Notes:     c.Notes,
		UpdatedAt: c.UpdatedAt,
	}
}

// Effect describes what an update did to the approved set.
type Effect string

const (
	EffectNone      Effect = "none"
	EffectAdded     Effect = "added"
	EffectRefreshed Effect = "refreshed"
	EffectRemoved   Effect = "removed"
)

// Apply records u in state and propagates it into approved according to
// policy. The record is always written, including for ids absent from
// classified; only approval of a known block can add to the approved set.
func Apply(state State, approved *ApprovedSet, classified *blocks.Store, u Update, policy Policy) (Effect, error) {
	if err := u.Validate(); err != nil {
		return EffectNone, fmt.Errorf("apply %s: %w", u.BlockID, err)
	}

	state[u.BlockID] = u.Record()

	if u.Status != Approved {
		if policy.Rejection == RejectionPrune && approved.Remove(u.BlockID) {
			return EffectRemoved, nil
		}
		return EffectNone, nil
	}

	b, ok := classified.Get(u.BlockID)
	if !ok {
		return EffectNone, nil
	}

	if approved.Add(b) {
		return EffectAdded, nil
	}
	if policy.Snapshot == SnapshotRefresh && approved.Replace(b) {
		return EffectRefreshed, nil
	}
	return EffectNone, nil
}
