package classifier

import (
	"github.com/JaimeStill/docquest/internal/blocks"
)

// Counts tallies blocks per category.
type Counts map[blocks.Category]int

// Count tallies the categories of bs.
func Count(bs []blocks.Block) Counts {
	counts := make(Counts)
	for _, b := range bs {
		counts[b.Type]++
	}
	return counts
}

// Total returns the number of blocks counted.
func (c Counts) Total() int {
	n := 0
	for _, v := range c {
		n += v
	}
	return n
}

// LogAttrs flattens the counts into slog key/value pairs in category order.
func (c Counts) LogAttrs() []any {
	attrs := make([]any, 0, len(blocks.Categories)*2)
	for _, cat := range blocks.Categories {
		attrs = append(attrs, string(cat), c[cat])
	}
	return attrs
}
