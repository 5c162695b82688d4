package review

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/JaimeStill/docquest/internal/artifacts"
	"github.com/JaimeStill/docquest/internal/blocks"
)

// Outcome reports the persisted result of one review update.
type Outcome struct {
	BlockID string
	Record  Record
	Effect  Effect
}

// Workflow owns mutation of the review state and approved set artifacts.
// Updates are serialized so concurrent requests never lose a write.
type Workflow struct {
	mu     sync.Mutex
	store  artifacts.Store
	policy Policy
	logger *slog.Logger
}

// NewWorkflow creates a Workflow persisting through store.
func NewWorkflow(store artifacts.Store, policy Policy, logger *slog.Logger) *Workflow {
	return &Workflow{
		store:  store,
		policy: policy,
		logger: logger.With("system", "review"),
	}
}

// Policy returns the workflow's approved-set policy.
func (w *Workflow) Policy() Policy {
	return w.policy
}

// UpdateStatus records u and persists the review state and, when it changed,
// the approved set. A missing classified artifact only means no block can
// be approved yet.
func (w *Workflow) UpdateStatus(ctx context.Context, u Update) (Outcome, error) {
	if err := u.Validate(); err != nil {
		return Outcome{}, err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	state, err := w.State(ctx)
	if err != nil {
		return Outcome{}, err
	}

	approved, err := w.Approved(ctx)
	if err != nil {
		return Outcome{}, err
	}

	classified, err := LoadClassified(ctx, w.store)
	if err != nil {
		return Outcome{}, err
	}

	effect, err := Apply(state, approved, classified, u, w.policy)
	if err != nil {
		return Outcome{}, err
	}

	if err := w.persist(ctx, state, approved, effect); err != nil {
		return Outcome{}, err
	}

	w.logger.Info(
		"review updated",
		"block_id", u.BlockID,
		"status", u.Status,
		"effect", effect,
		"approved", approved.Len(),
	)

	return Outcome{BlockID: u.BlockID, Record: state[u.BlockID], Effect: effect}, nil
}

// persist writes both artifacts in the order that keeps the approved set from
// holding a block the review state does not approve if the second write
// fails: state before set for additions, set before state for removals.
// Retrying the same update repairs either partial write.
func (w *Workflow) persist(ctx context.Context, state State, approved *ApprovedSet, effect Effect) error {
	saveState := func() error {
		if err := artifacts.Save(ctx, w.store, artifacts.ReviewState, state); err != nil {
			return fmt.Errorf("save review state: %w", err)
		}
		return nil
	}
	saveApproved := func() error {
		if err := artifacts.Save(ctx, w.store, artifacts.Approved, approved); err != nil {
			return fmt.Errorf("save approved set: %w", err)
		}
		return nil
	}

	steps := []func() error{saveState}
	switch effect {
	case EffectRemoved:
		steps = []func() error{saveApproved, saveState}
	case EffectAdded, EffectRefreshed:
		steps = append(steps, saveApproved)
	}

	for _, step := range steps {
		if err := step(); err != nil {
			return err
		}
	}
	return nil
}

// State loads the review state, empty when none has been written.
func (w *Workflow) State(ctx context.Context) (State, error) {
	state, err := artifacts.LoadOptional[State](ctx, w.store, artifacts.ReviewState)
	if err != nil {
		return nil, err
	}
	if state == nil {
		state = make(State)
	}
	return state, nil
}

// Approved loads the approved set, empty when none has been written.
func (w *Workflow) Approved(ctx context.Context) (*ApprovedSet, error) {
	approved, err := artifacts.LoadOptional[*ApprovedSet](ctx, w.store, artifacts.Approved)
	if err != nil {
		return nil, err
	}
	if approved == nil {
		approved = NewApprovedSet()
	}
	return approved, nil
}

// View returns the annotated classified blocks. Missing artifacts yield an empty view.
func (w *Workflow) View(ctx context.Context) ([]Annotated, error) {
	classified, err := artifacts.LoadOptional[[]blocks.Block](ctx, w.store, artifacts.Classified)
	if err != nil {
		return nil, err
	}

	state, err := w.State(ctx)
	if err != nil {
		return nil, err
	}

	return Annotate(classified, state), nil
}

// LoadClassified indexes the classified artifact, empty when it is missing.
func LoadClassified(ctx context.Context, store artifacts.Store) (*blocks.Store, error) {
	bs, err := artifacts.LoadOptional[[]blocks.Block](ctx, store, artifacts.Classified)
	if err != nil {
		return nil, err
	}

	s, err := blocks.NewStore(bs)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", artifacts.ErrMalformed, artifacts.Classified, err)
	}
	return s, nil
}

// Reset removes the review state and approved set.
func (w *Workflow) Reset(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	for _, name := range []artifacts.Name{artifacts.ReviewState, artifacts.Approved} {
		if err := w.store.Delete(ctx, name); err != nil {
			return err
		}
	}
	w.logger.Info("review state reset")
	return nil
}
