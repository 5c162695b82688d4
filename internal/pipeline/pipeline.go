// Package pipeline sequences the document stages over named artifacts:
// ingest raw blocks, classify them, route review decisions through the review
// workflow, and export the approved set. When a catalog is configured each
// stage mirrors its output into it.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/JaimeStill/docquest/internal/artifacts"
	"github.com/JaimeStill/docquest/internal/blocks"
	"github.com/JaimeStill/docquest/internal/catalog"
	"github.com/JaimeStill/docquest/internal/classifier"
	"github.com/JaimeStill/docquest/internal/export"
	"github.com/JaimeStill/docquest/internal/extract"
	"github.com/JaimeStill/docquest/internal/review"
)

// Config holds the per-document pipeline settings.
type Config struct {
	DocumentID    string
	Filename      string
	Workers       int
	Order         export.Order
	VerifySources bool
	Policy        review.Policy
}

// Pipeline implements System over an artifact store.
type Pipeline struct {
	cfg        Config
	store      artifacts.Store
	classifier *classifier.Classifier
	workflow   *review.Workflow
	catalog    catalog.System
	logger     *slog.Logger
}

// New creates a Pipeline. cat may be nil when no catalog database is configured.
func New(store artifacts.Store, cat catalog.System, cfg Config, logger *slog.Logger) *Pipeline {
	if cfg.Order == "" {
		cfg.Order = export.ByDocument
	}
	if cfg.Policy == (review.Policy{}) {
		cfg.Policy = review.DefaultPolicy()
	}

	return &Pipeline{
		cfg:        cfg,
		store:      store,
		classifier: classifier.New(),
		workflow:   review.NewWorkflow(store, cfg.Policy, logger),
		catalog:    cat,
		logger:     logger.With("system", "pipeline", "document_id", cfg.DocumentID),
	}
}

func (p *Pipeline) Handler(maxUploadSize int64) *Handler {
	return NewHandler(p, p.logger, maxUploadSize)
}

func (p *Pipeline) Ingest(ctx context.Context, raw []blocks.Block) (*IngestResult, error) {
	if len(raw) == 0 {
		return nil, ErrEmptyInput
	}

	if _, err := blocks.NewStore(raw); err != nil {
		return nil, fmt.Errorf("ingest: %w", err)
	}

	if err := artifacts.Save(ctx, p.store, artifacts.Raw, raw); err != nil {
		return nil, fmt.Errorf("ingest: %w", err)
	}

	p.logger.Info("raw blocks ingested", "blocks", len(raw))
	return &IngestResult{DocumentID: p.cfg.DocumentID, Blocks: len(raw)}, nil
}

func (p *Pipeline) Extract(ctx context.Context, text string) (*IngestResult, error) {
	return p.Ingest(ctx, extract.FromText(text))
}

func (p *Pipeline) Classify(ctx context.Context) (*Summary, error) {
	raw, err := artifacts.Load[[]blocks.Block](ctx, p.store, artifacts.Raw)
	if err != nil {
		return nil, fmt.Errorf("classify: %w", err)
	}

	if _, err := blocks.NewStore(raw); err != nil {
		return nil, fmt.Errorf("classify: %w: %s: %w", artifacts.ErrMalformed, artifacts.Raw, err)
	}

	classified, counts, err := p.classifier.ClassifyAll(ctx, raw, p.cfg.Workers)
	if err != nil {
		return nil, fmt.Errorf("classify: %w", err)
	}

	if err := artifacts.Save(ctx, p.store, artifacts.Classified, classified); err != nil {
		return nil, fmt.Errorf("classify: %w", err)
	}

	p.logger.Info("blocks classified", append([]any{"total", counts.Total()}, counts.LogAttrs()...)...)

	summary := &Summary{
		DocumentID: p.cfg.DocumentID,
		Total:      counts.Total(),
		Counts:     counts,
	}

	if p.catalog != nil {
		res, err := p.catalog.Sync(ctx, catalog.SyncCommand{
			DocumentID: p.cfg.DocumentID,
			Filename:   p.cfg.Filename,
			Blocks:     classified,
		})
		if err != nil {
			return summary, fmt.Errorf("%w: %w", ErrCatalogSync, err)
		}
		summary.Catalog = res
	}

	return summary, nil
}

func (p *Pipeline) Blocks(ctx context.Context) ([]review.Annotated, error) {
	return p.workflow.View(ctx)
}

func (p *Pipeline) Review(ctx context.Context, u review.Update) (*review.Outcome, error) {
	out, err := p.workflow.UpdateStatus(ctx, u)
	if err != nil {
		return nil, err
	}

	if p.catalog != nil {
		if err := p.catalog.SyncReview(ctx, p.cfg.DocumentID, u.BlockID, out.Record); err != nil {
			return &out, fmt.Errorf("%w: %w", ErrCatalogSync, err)
		}
	}

	return &out, nil
}

func (p *Pipeline) Export(ctx context.Context, req ExportRequest) (*Output, error) {
	if req.Format == "" {
		req.Format = string(export.JSON)
	}
	format, err := export.ParseFormat(req.Format)
	if err != nil {
		return nil, err
	}

	order := p.cfg.Order
	if req.Order != "" {
		if order, err = export.ParseOrder(req.Order); err != nil {
			return nil, err
		}
	}

	approved, err := p.workflow.Approved(ctx)
	if err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}

	bs := approved.Blocks()
	if p.cfg.VerifySources {
		if err := p.verify(ctx, bs); err != nil {
			return nil, fmt.Errorf("export: %w", err)
		}
	}

	body, err := export.Export(bs, format, order)
	if err != nil {
		return nil, err
	}

	p.logger.Info("approved set exported", "format", format, "order", order, "blocks", len(bs))
	return &Output{Format: format, Blocks: len(bs), Body: body}, nil
}

// verify checks that every approved snapshot still has a source block.
func (p *Pipeline) verify(ctx context.Context, approved []blocks.Block) error {
	classified, err := review.LoadClassified(ctx, p.store)
	if err != nil {
		return err
	}
	for _, b := range approved {
		if _, err := classified.Lookup(b.ID); err != nil {
			return err
		}
	}
	return nil
}

func (p *Pipeline) Status(ctx context.Context) (*Status, error) {
	st := &Status{
		DocumentID: p.cfg.DocumentID,
		Artifacts:  make(map[artifacts.Name]bool, len(artifacts.All)),
	}
	for _, name := range artifacts.All {
		ok, err := p.store.Exists(ctx, name)
		if err != nil {
			return nil, err
		}
		st.Artifacts[name] = ok
	}
	return st, nil
}

func (p *Pipeline) Reset(ctx context.Context) error {
	if err := p.store.Delete(ctx, artifacts.Classified); err != nil {
		return err
	}
	return p.workflow.Reset(ctx)
}
