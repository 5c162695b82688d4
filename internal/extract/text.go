// Package extract turns document text into raw blocks and pulls page counts
// and embedded images out of PDF files.
package extract

import (
	"fmt"
	"strings"

	"github.com/JaimeStill/docquest/internal/blocks"
)

// PageBreak separates pages in a text dump.
const PageBreak = "\f"

// SplitPages splits a text dump into pages. A trailing page break does not
// start an extra page.
func SplitPages(text string) []string {
	text = strings.TrimSuffix(text, PageBreak)
	if text == "" {
		return nil
	}
	return strings.Split(text, PageBreak)
}

// FromPages splits each page into paragraphs on blank lines and returns one
// raw block per non-empty paragraph. Pages are numbered from zero; position
// is the paragraph's index within its page, counting empty paragraphs.
func FromPages(pages []string) []blocks.Block {
	var out []blocks.Block
	for page, text := range pages {
		text = strings.ReplaceAll(text, "\r\n", "\n")
		for pos, para := range strings.Split(text, "\n\n") {
			content := strings.TrimSpace(para)
			if content == "" {
				continue
			}
			out = append(out, blocks.Block{
				ID:       BlockID(page, pos),
				Page:     page,
				Content:  content,
				Type:     blocks.Unclassified,
				Position: pos,
			})
		}
	}
	return out
}

// FromText is FromPages over SplitPages.
func FromText(text string) []blocks.Block {
	return FromPages(SplitPages(text))
}

// BlockID returns the stable id of the paragraph at pos on page.
func BlockID(page, pos int) string {
	return fmt.Sprintf("page_%d_block_%d", page, pos)
}
