// Package classifier assigns a semantic category to each block by evaluating
// an ordered list of pattern rules; the first matching rule wins.
package classifier

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/JaimeStill/docquest/internal/blocks"
)

// Classifier evaluates a fixed rule list. It is safe for concurrent use.
type Classifier struct {
	rules []Rule
}

// New creates a Classifier over rules, or over DefaultRules when none are given.
func New(rules ...Rule) *Classifier {
	if len(rules) == 0 {
		rules = DefaultRules()
	}
	return &Classifier{rules: rules}
}

// Rules returns the rule list in evaluation order.
func (c *Classifier) Rules() []Rule {
	return append([]Rule(nil), c.rules...)
}

// Match returns the first rule matching content.
func (c *Classifier) Match(content string) (Rule, bool) {
	return first(c.rules, func(r Rule) bool { return r.Match(content) })
}

// Categorize returns the category of the first matching rule, or Paragraph.
func (c *Classifier) Categorize(content string) blocks.Category {
	if r, ok := c.Match(content); ok {
		return r.Category
	}
	return blocks.Paragraph
}

// Classify returns a copy of b with its type set from its content.
// Classifying an already classified block yields the same result.
func (c *Classifier) Classify(b blocks.Block) blocks.Block {
	b.Type = c.Categorize(b.Content)
	return b
}

// ClassifyAll classifies bs into a new slice, preserving order, across at most
// workers goroutines. The only error is ctx cancellation.
func (c *Classifier) ClassifyAll(ctx context.Context, bs []blocks.Block, workers int) ([]blocks.Block, Counts, error) {
	out := make([]blocks.Block, len(bs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(workers, 1))

	for i, b := range bs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			out[i] = c.Classify(b)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	return out, Count(out), nil
}

func first[T any](items []T, pred func(T) bool) (T, bool) {
	for _, item := range items {
		if pred(item) {
			return item, true
		}
	}
	var zero T
	return zero, false
}
