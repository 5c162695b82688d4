// Package export renders the approved set into downloadable formats.
package export

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"github.com/JaimeStill/docquest/internal/blocks"
)

// Format is an export encoding.
type Format string

const (
	JSON     Format = "json"
	Text     Format = "text"
	Markdown Format = "markdown"
)

// Formats lists the supported encodings.
var Formats = []Format{JSON, Text, Markdown}

// ParseFormat validates s as a Format.
func ParseFormat(s string) (Format, error) {
	f := Format(s)
	if !slices.Contains(Formats, f) {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
	}
	return f, nil
}

// ContentType returns the HTTP content type for the format.
func (f Format) ContentType() string {
	switch f {
	case JSON:
		return "application/json"
	case Markdown:
		return "text/markdown; charset=utf-8"
	default:
		return "text/plain; charset=utf-8"
	}
}

// Extension returns the file extension for the format.
func (f Format) Extension() string {
	switch f {
	case Text:
		return "txt"
	case Markdown:
		return "md"
	default:
		return string(f)
	}
}

// Filename returns the download name for an export in format f.
func (f Format) Filename() string {
	return "approved_content." + f.Extension()
}

// Order selects the sequence exported blocks appear in.
type Order string

const (
	// ByDocument sorts by page, then position within the page.
	ByDocument Order = "document"
	// ByApproval keeps the order blocks were approved in.
	ByApproval Order = "approval"
)

// ParseOrder validates s as an Order.
func ParseOrder(s string) (Order, error) {
	switch o := Order(s); o {
	case ByDocument, ByApproval:
		return o, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedOrder, s)
	}
}

// Arrange returns a copy of approved in the requested order.
func Arrange(approved []blocks.Block, order Order) []blocks.Block {
	out := slices.Clone(approved)
	if out == nil {
		out = []blocks.Block{}
	}
	if order == ByDocument {
		slices.SortStableFunc(out, func(a, b blocks.Block) int {
			switch {
			case blocks.Less(a, b):
				return -1
			case blocks.Less(b, a):
				return 1
			default:
				return 0
			}
		})
	}
	return out
}

// Render encodes approved, in the order given, as format. It produces no
// output for an unsupported format.
func Render(approved []blocks.Block, format Format) ([]byte, error) {
	switch format {
	case JSON:
		if approved == nil {
			approved = []blocks.Block{}
		}
		return json.MarshalIndent(approved, "", "  ")
	case Text:
		return join(approved, func(b blocks.Block) string { return b.Content }), nil
	case Markdown:
		return join(approved, func(b blocks.Block) string {
			if b.Type == blocks.Title {
				return "## " + b.Content
			}
			return b.Content
		}), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// Export arranges approved in order and renders it as format.
func Export(approved []blocks.Block, format Format, order Order) ([]byte, error) {
	return Render(Arrange(approved, order), format)
}

func join(bs []blocks.Block, line func(blocks.Block) string) []byte {
	parts := make([]string, len(bs))
	for i, b := range bs {
		parts[i] = line(b)
	}
	return []byte(strings.Join(parts, "\n\n"))
}
