// Package blocks defines the extracted text fragment every pipeline stage
// operates on, its semantic categories, and an id-indexed store.
package blocks

import "fmt"

// Category is the semantic label assigned to a block.
type Category string

const (
	Paragraph Category = "paragraph"
	Question  Category = "question"
	Answer    Category = "answer"
	Title     Category = "title"
	ListItem  Category = "list_item"

	// Unclassified is the type carried by freshly extracted blocks.
	Unclassified Category = "text"
)

// Categories lists the classifier's output categories in report order.
var Categories = []Category{Paragraph, Question, Answer, Title, ListItem}

// Block is one extracted text fragment. ID is assigned at extraction and is
// stable for the life of the document.
type Block struct {
	ID       string   `json:"id"`
	Page     int      `json:"page"`
	Content  string   `json:"content"`
	Type     Category `json:"type"`
	Position int      `json:"position"`
}

// Validate reports whether b can enter the pipeline.
func (b Block) Validate() error {
	if b.ID == "" {
		return fmt.Errorf("%w: empty id", ErrInvalidBlock)
	}
	if b.Page < 0 {
		return fmt.Errorf("%w: %s: negative page %d", ErrInvalidBlock, b.ID, b.Page)
	}
	return nil
}

// Less orders blocks by document position: page first, then position in page.
func Less(a, b Block) bool {
	if a.Page != b.Page {
		return a.Page < b.Page
	}
	return a.Position < b.Position
}
