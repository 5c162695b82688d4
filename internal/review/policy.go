package review

import "fmt"

// SnapshotPolicy decides what re-approving an already approved block does.
type SnapshotPolicy string

const (
	// SnapshotRefresh replaces the stored snapshot with the block's current content.
	SnapshotRefresh SnapshotPolicy = "refresh"
	// SnapshotFirst keeps the snapshot captured at first approval.
	SnapshotFirst SnapshotPolicy = "first"
)

// RejectionPolicy decides what moving an approved block to another status does.
type RejectionPolicy string

const (
	// RejectionPrune removes the block from the approved set.
	RejectionPrune RejectionPolicy = "prune"
	// RejectionRetain leaves the approved set untouched.
	RejectionRetain RejectionPolicy = "retain"
)

// Policy configures how review updates propagate into the approved set.
type Policy struct {
	Snapshot  SnapshotPolicy
	Rejection RejectionPolicy
}

// DefaultPolicy refreshes snapshots on re-approval and prunes on rejection.
func DefaultPolicy() Policy {
	return Policy{Snapshot: SnapshotRefresh, Rejection: RejectionPrune}
}

// ParsePolicy validates policy names.
func ParsePolicy(snapshot, rejection string) (Policy, error) {
	p := Policy{Snapshot: SnapshotPolicy(snapshot), Rejection: RejectionPolicy(rejection)}

	switch p.Snapshot {
	case SnapshotRefresh, SnapshotFirst:
	default:
		return Policy{}, fmt.Errorf("%w: snapshot %q", ErrInvalidPolicy, snapshot)
	}

	switch p.Rejection {
	case RejectionPrune, RejectionRetain:
	default:
		return Policy{}, fmt.Errorf("%w: rejection %q", ErrInvalidPolicy, rejection)
	}

	return p, nil
}
