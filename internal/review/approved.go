package review

import (
	"encoding/json"

	"github.com/JaimeStill/docquest/internal/blocks"
)

// ApprovedSet is the deduplicated, approval-ordered sequence of block
// snapshots cleared for export. It serializes as a JSON array of blocks.
type ApprovedSet struct {
	blocks []blocks.Block
	index  map[string]int
}

// NewApprovedSet builds a set from bs, keeping the first entry for any repeated id.
func NewApprovedSet(bs ...blocks.Block) *ApprovedSet {
	s := &ApprovedSet{index: make(map[string]int, len(bs))}
	for _, b := range bs {
		s.Add(b)
	}
	return s
}

// Contains reports whether id is in the set.
func (s *ApprovedSet) Contains(id string) bool {
	_, ok := s.index[id]
	return ok
}

// Add appends b unless its id is already present, reporting whether it was added.
func (s *ApprovedSet) Add(b blocks.Block) bool {
	if s.Contains(b.ID) {
		return false
	}
	if s.index == nil {
		s.index = make(map[string]int)
	}
	s.index[b.ID] = len(s.blocks)
	s.blocks = append(s.blocks, b)
	return true
}

// Replace overwrites the snapshot for b.ID in place, keeping its position.
// It reports false when the id is absent.
func (s *ApprovedSet) Replace(b blocks.Block) bool {
	i, ok := s.index[b.ID]
	if !ok {
		return false
	}
	s.blocks[i] = b
	return true
}

// Remove deletes id from the set, reporting whether it was present.
func (s *ApprovedSet) Remove(id string) bool {
	i, ok := s.index[id]
	if !ok {
		return false
	}

	s.blocks = append(s.blocks[:i], s.blocks[i+1:]...)
	delete(s.index, id)
	for j := i; j < len(s.blocks); j++ {
		s.index[s.blocks[j].ID] = j
	}
	return true
}

// Len returns the number of approved blocks.
func (s *ApprovedSet) Len() int {
	return len(s.blocks)
}

// Blocks returns a copy of the snapshots in approval order.
func (s *ApprovedSet) Blocks() []blocks.Block {
	out := make([]blocks.Block, len(s.blocks))
	copy(out, s.blocks)
	return out
}

func (s *ApprovedSet) MarshalJSON() ([]byte, error) {
	if s.blocks == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(s.blocks)
}

func (s *ApprovedSet) UnmarshalJSON(data []byte) error {
	var bs []blocks.Block
	if err := json.Unmarshal(data, &bs); err != nil {
		return err
	}
	*s = *NewApprovedSet(bs...)
	return nil
}
