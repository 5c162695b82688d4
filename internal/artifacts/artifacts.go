// Package artifacts persists the pipeline's named JSON artifacts. Every write
// replaces the artifact atomically: readers see the old or the new content.
package artifacts

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// Name identifies a pipeline artifact.
type Name string

const (
	Raw         Name = "raw_blocks.json"
	Classified  Name = "classified_output.json"
	ReviewState Name = "review_state.json"
	Approved    Name = "approved_output.json"
)

// All lists the artifacts in pipeline order.
var All = []Name{Raw, Classified, ReviewState, Approved}

// Store reads and writes artifact bytes.
type Store interface {
	// Read returns the artifact content or ErrNotFound.
	Read(ctx context.Context, name Name) ([]byte, error)
	// Write atomically replaces the artifact content.
	Write(ctx context.Context, name Name, data []byte) error
	// Delete removes the artifact. Deleting a missing artifact is not an error.
	Delete(ctx context.Context, name Name) error
	// Exists reports whether the artifact has been written.
	Exists(ctx context.Context, name Name) (bool, error)
}

// Load reads and decodes a required artifact.
func Load[T any](ctx context.Context, s Store, name Name) (T, error) {
	var v T

	data, err := s.Read(ctx, name)
	if err != nil {
		return v, err
	}

	if err := json.Unmarshal(data, &v); err != nil {
		return v, fmt.Errorf("%w: %s: %w", ErrMalformed, name, err)
	}
	return v, nil
}

// LoadOptional is Load that yields the zero value for a missing artifact.
func LoadOptional[T any](ctx context.Context, s Store, name Name) (T, error) {
	v, err := Load[T](ctx, s, name)
	if errors.Is(err, ErrNotFound) {
		var zero T
		return zero, nil
	}
	return v, err
}

// Save encodes v as indented JSON and writes it.
func Save[T any](ctx context.Context, s Store, name Name, v T) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: encode %s: %w", ErrIO, name, err)
	}
	return s.Write(ctx, name, data)
}
