// Package review implements the block review workflow: per-block review
// records, the approved set derived from approval events, and the annotated
// view the review dashboard renders.
package review

import "fmt"

// Status is a block's review state. Every transition is allowed.
type Status string

const (
	Pending  Status = "pending"
	Approved Status = "approved"
	Rejected Status = "rejected"
)

// ParseStatus validates s as a Status.
func ParseStatus(s string) (Status, error) {
	switch st := Status(s); st {
	case Pending, Approved, Rejected:
		return st, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
	}
}
