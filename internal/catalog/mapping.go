package catalog

import (
	"net/url"
	"strconv"

	"github.com/JaimeStill/docquest/pkg/query"
	"github.com/JaimeStill/docquest/pkg/repository"
)

var entryProjection = query.
	NewProjectionMap("public", "catalog_entries", "e").
	Project("document_id", "DocumentID").
	Project("id", "ID").
	Project("page", "Page").
	Project("content", "Content").
	Project("type", "Type").
	Project("position", "Position").
	Project("review_status", "ReviewStatus")

var entrySort = []query.SortField{
	{Field: "DocumentID"},
	{Field: "Page"},
	{Field: "Position"},
}

// Filters narrows a catalog block listing. Nil fields are ignored.
type Filters struct {
	DocumentID   *string
	Type         *string
	Page         *int
	ReviewStatus *string
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereEquals("DocumentID", f.DocumentID).
		WhereEquals("Type", f.Type).
		WhereEquals("Page", f.Page).
		WhereEquals("ReviewStatus", f.ReviewStatus)
}

// FiltersFromQuery reads document_id, type, block_page, and review_status.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if v := values.Get("document_id"); v != "" {
		f.DocumentID = &v
	}
	if v := values.Get("type"); v != "" {
		f.Type = &v
	}
	if v := values.Get("block_page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			f.Page = &n
		}
	}
	if v := values.Get("review_status"); v != "" {
		f.ReviewStatus = &v
	}

	return f
}

func scanEntry(s repository.Scanner) (Entry, error) {
	var e Entry
	err := s.Scan(
		&e.DocumentID,
		&e.ID,
		&e.Page,
		&e.Content,
		&e.Type,
		&e.Position,
		&e.ReviewStatus,
	)
	return e, err
}

func scanDocument(s repository.Scanner) (Document, error) {
	var d Document
	err := s.Scan(
		&d.ID,
		&d.Filename,
		&d.BlockCount,
		&d.PairCount,
		&d.CreatedAt,
		&d.SyncedAt,
	)
	return d, err
}

func scanPair(s repository.Scanner) (Pair, error) {
	var p Pair
	err := s.Scan(
		&p.ID,
		&p.DocumentID,
		&p.QuestionBlockID,
		&p.Question,
		&p.Answer,
	)
	return p, err
}
