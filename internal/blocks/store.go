package blocks

import "fmt"

// Store is an ordered, id-indexed block collection. It owns block content;
// the other stages refer to blocks by id.
type Store struct {
	blocks []Block
	index  map[string]int
}

// NewStore validates and indexes bs, preserving order. It rejects invalid
// blocks and duplicate ids.
func NewStore(bs []Block) (*Store, error) {
	s := &Store{
		blocks: make([]Block, 0, len(bs)),
		index:  make(map[string]int, len(bs)),
	}
	for _, b := range bs {
		if err := s.Add(b); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Add appends b to the store.
func (s *Store) Add(b Block) error {
	if err := b.Validate(); err != nil {
		return err
	}
	if _, ok := s.index[b.ID]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateID, b.ID)
	}
	s.index[b.ID] = len(s.blocks)
	s.blocks = append(s.blocks, b)
	return nil
}

// Get returns the block with the given id.
func (s *Store) Get(id string) (Block, bool) {
	i, ok := s.index[id]
	if !ok {
		return Block{}, false
	}
	return s.blocks[i], true
}

// Lookup is Get with ErrNotFound for a missing id.
func (s *Store) Lookup(id string) (Block, error) {
	b, ok := s.Get(id)
	if !ok {
		return Block{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return b, nil
}

// Len returns the number of blocks.
func (s *Store) Len() int {
	return len(s.blocks)
}

// All returns a copy of the blocks in insertion order.
func (s *Store) All() []Block {
	out := make([]Block, len(s.blocks))
	copy(out, s.blocks)
	return out
}
