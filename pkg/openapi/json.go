package openapi

import (
	"encoding/json"
	"fmt"

	"github.com/google/renameio/v2"
)

// MarshalJSON serializes the document to indented JSON bytes.
func MarshalJSON(spec *Spec) ([]byte, error) {
	return json.MarshalIndent(spec, "", "  ")
}

// WriteJSON serializes the document and atomically replaces filename with it.
func WriteJSON(spec *Spec, filename string) error {
	data, err := MarshalJSON(spec)
	if err != nil {
		return fmt.Errorf("marshal document: %w", err)
	}
	return renameio.WriteFile(filename, data, 0644)
}
