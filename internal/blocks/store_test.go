package blocks_test

import (
	"errors"
	"testing"

	"github.com/JaimeStill/docquest/internal/blocks"
)

func TestNewStore(t *testing.T) {
	tests := []struct {
		name    string
		input   []blocks.Block
		wantErr error
	}{
		{
			name: "valid",
			input: []blocks.Block{
				{ID: "page_1_block_0", Page: 1},
				{ID: "page_1_block_1", Page: 1, Position: 1},
			},
		},
		{
			name:    "duplicate id",
			input:   []blocks.Block{{ID: "a"}, {ID: "a"}},
			wantErr: blocks.ErrDuplicateID,
		},
		{
			name:    "empty id",
			input:   []blocks.Block{{ID: ""}},
			wantErr: blocks.ErrInvalidBlock,
		},
		{
			name:    "negative page",
			input:   []blocks.Block{{ID: "x", Page: -1}},
			wantErr: blocks.ErrInvalidBlock,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := blocks.NewStore(tt.input)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if s.Len() != len(tt.input) {
				t.Errorf("Len = %d, want %d", s.Len(), len(tt.input))
			}
		})
	}
}

func TestStoreLookup(t *testing.T) {
	s, err := blocks.NewStore([]blocks.Block{
		{ID: "b2", Page: 2, Content: "second"},
		{ID: "b1", Page: 1, Content: "first"},
	})
	if err != nil {
		t.Fatal(err)
	}

	b, err := s.Lookup("b1")
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if b.Content != "first" {
		t.Errorf("Content = %q, want first", b.Content)
	}

	if _, err := s.Lookup("missing"); !errors.Is(err, blocks.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}

	all := s.All()
	if all[0].ID != "b2" || all[1].ID != "b1" {
		t.Errorf("All did not preserve insertion order: %v", all)
	}

	all[0].Content = "mutated"
	if got, _ := s.Get("b2"); got.Content != "second" {
		t.Error("All returned the store's backing slice")
	}
}

func TestLess(t *testing.T) {
	a := blocks.Block{Page: 1, Position: 5}
	b := blocks.Block{Page: 2, Position: 0}
	c := blocks.Block{Page: 2, Position: 1}

	if !blocks.Less(a, b) || !blocks.Less(b, c) {
		t.Error("expected page-then-position ordering")
	}
	if blocks.Less(c, b) || blocks.Less(b, b) {
		t.Error("Less is not strict")
	}
}
