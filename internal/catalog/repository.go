package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/JaimeStill/docquest/internal/blocks"
	"github.com/JaimeStill/docquest/internal/review"
	"github.com/JaimeStill/docquest/pkg/pagination"
	"github.com/JaimeStill/docquest/pkg/query"
	"github.com/JaimeStill/docquest/pkg/repository"
)

const upsertDocument = `
	INSERT INTO documents (id, filename, synced_at)
	VALUES ($1, $2, now())
	ON CONFLICT (id) DO UPDATE
	SET filename = COALESCE(NULLIF(EXCLUDED.filename, ''), documents.filename),
		synced_at = now()`

const upsertBlock = `
	INSERT INTO blocks (document_id, id, page, content, type, position)
	VALUES ($1, $2, $3, $4, $5, $6)
	ON CONFLICT (document_id, id) DO UPDATE
	SET page = EXCLUDED.page,
		content = EXCLUDED.content,
		type = EXCLUDED.type,
		position = EXCLUDED.position`

const pruneBlocks = `
	DELETE FROM blocks
	WHERE document_id = $1 AND NOT (id = ANY($2::text[]))`

const upsertPair = `
	INSERT INTO qa_pairs (id, document_id, question_block_id, question, answer)
	VALUES ($1, $2, $3, $4, $5)
	ON CONFLICT (id) DO UPDATE
	SET question = EXCLUDED.question,
		answer = EXCLUDED.answer`

const upsertReview = `
	INSERT INTO review_records (document_id, block_id, status, reviewer, notes, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6)
	ON CONFLICT (document_id, block_id) DO UPDATE
	SET status = EXCLUDED.status,
		reviewer = EXCLUDED.reviewer,
		notes = EXCLUDED.notes,
		updated_at = EXCLUDED.updated_at`

type repo struct {
	db         *sql.DB
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates a PostgreSQL-backed catalog implementing System.
func New(db *sql.DB, logger *slog.Logger, pagination pagination.Config) System {
	return &repo{
		db:         db,
		logger:     logger.With("system", "catalog"),
		pagination: pagination,
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger, r.pagination)
}

func (r *repo) Sync(ctx context.Context, cmd SyncCommand) (*SyncResult, error) {
	if cmd.DocumentID == "" {
		return nil, fmt.Errorf("%w: empty document id", ErrInvalidSync)
	}

	pairs := PairQuestions(cmd.DocumentID, cmd.Blocks)

	result, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (SyncResult, error) {
		res := SyncResult{DocumentID: cmd.DocumentID}

		if _, err := tx.ExecContext(ctx, upsertDocument, cmd.DocumentID, cmd.Filename); err != nil {
			return res, fmt.Errorf("upsert document: %w", err)
		}

		n, err := repository.ExecEach(ctx, tx, upsertBlock, cmd.Blocks, func(b blocks.Block) []any {
			return []any{cmd.DocumentID, b.ID, b.Page, b.Content, string(b.Type), b.Position}
		})
		if err != nil {
			return res, fmt.Errorf("upsert blocks: %w", err)
		}
		res.Blocks = n

		ids := make([]string, 0, len(cmd.Blocks))
		for _, b := range cmd.Blocks {
			ids = append(ids, b.ID)
		}
		if _, err := tx.ExecContext(ctx, pruneBlocks, cmd.DocumentID, ids); err != nil {
			return res, fmt.Errorf("prune blocks: %w", err)
		}

		if _, err := tx.ExecContext(ctx, "DELETE FROM qa_pairs WHERE document_id = $1", cmd.DocumentID); err != nil {
			return res, fmt.Errorf("clear pairs: %w", err)
		}

		n, err = repository.ExecEach(ctx, tx, upsertPair, pairs, func(p Pair) []any {
			return []any{p.ID, p.DocumentID, p.QuestionBlockID, p.Question, p.Answer}
		})
		if err != nil {
			return res, fmt.Errorf("upsert pairs: %w", err)
		}
		res.Pairs = n

		return res, nil
	})

	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info(
		"catalog synced",
		"document_id", result.DocumentID,
		"blocks", result.Blocks,
		"pairs", result.Pairs,
	)
	return &result, nil
}

// SyncReview upserts one review record. The owning document row is upserted
// in the same transaction, so a review never depends on a prior Sync.
func (r *repo) SyncReview(ctx context.Context, documentID, blockID string, rec review.Record) error {
	_, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		if _, err := tx.ExecContext(ctx, upsertDocument, documentID, ""); err != nil {
			return struct{}{}, fmt.Errorf("upsert document: %w", err)
		}
		_, err := tx.ExecContext(
			ctx, upsertReview,
			documentID, blockID, string(rec.Status), rec.Reviewer, rec.Notes, rec.UpdatedAt,
		)
		if err != nil {
			return struct{}{}, fmt.Errorf("upsert review record: %w", err)
		}
		return struct{}{}, nil
	})
	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return nil
}

func (r *repo) ListDocuments(ctx context.Context) ([]Document, error) {
	q := `
		SELECT d.id, d.filename,
			(SELECT COUNT(*) FROM blocks b WHERE b.document_id = d.id),
			(SELECT COUNT(*) FROM qa_pairs p WHERE p.document_id = d.id),
			d.created_at, d.synced_at
		FROM documents d
		ORDER BY d.synced_at DESC`

	docs, err := repository.QueryMany(ctx, r.db, q, nil, scanDocument)
	if err != nil {
		return nil, fmt.Errorf("query documents: %w", err)
	}
	return docs, nil
}

func (r *repo) ListBlocks(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[Entry], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(entryProjection, entrySort...).
		WhereSearch(page.Search, "Content")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count blocks: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	entries, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanEntry)
	if err != nil {
		return nil, fmt.Errorf("query blocks: %w", err)
	}

	result := pagination.NewPageResult(entries, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) ListPairs(ctx context.Context, documentID string) ([]Pair, error) {
	var exists bool
	if err := r.db.QueryRowContext(
		ctx,
		"SELECT EXISTS (SELECT 1 FROM documents WHERE id = $1)",
		documentID,
	).Scan(&exists); err != nil {
		return nil, fmt.Errorf("find document: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, documentID)
	}

	q := `
		SELECT p.id, p.document_id, p.question_block_id, p.question, p.answer
		FROM qa_pairs p
		JOIN blocks b ON b.document_id = p.document_id AND b.id = p.question_block_id
		WHERE p.document_id = $1
		ORDER BY b.page, b.position`

	pairs, err := repository.QueryMany(ctx, r.db, q, []any{documentID}, scanPair)
	if err != nil {
		return nil, fmt.Errorf("query pairs: %w", err)
	}
	return pairs, nil
}
