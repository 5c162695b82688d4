package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/JaimeStill/docquest/internal/api"
	"github.com/JaimeStill/docquest/internal/blocks"
	"github.com/JaimeStill/docquest/internal/extract"
	"github.com/JaimeStill/docquest/internal/pipeline"
	"github.com/JaimeStill/docquest/internal/review"
	"github.com/JaimeStill/docquest/pkg/openapi"
)

func extractCmd(ctx context.Context, a *app, args []string) error {
	fs := flag.NewFlagSet("extract", flag.ContinueOnError)
	textPath := fs.String("text", "", "text dump, pages separated by form feeds")
	pdfPath := fs.String("pdf", "", "source PDF for page count and image extraction")
	imagesDir := fs.String("images", "", "directory for extracted PDF images")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *textPath == "" {
		return fmt.Errorf("extract: -text is required")
	}

	text, err := os.ReadFile(*textPath)
	if err != nil {
		return fmt.Errorf("extract: %w", err)
	}

	var pages int
	var images []string
	if *pdfPath != "" {
		if pages, images, err = inspectPDF(*pdfPath, *imagesDir); err != nil {
			return err
		}
	}

	result, err := a.pipeline.Extract(ctx, string(text))
	if err != nil {
		return err
	}

	out := struct {
		*pipeline.IngestResult
		Pages  int      `json:"pages,omitempty"`
		Images []string `json:"images,omitempty"`
	}{IngestResult: result, Pages: pages, Images: images}

	return a.printJSON(out)
}

func inspectPDF(path, imagesDir string) (int, []string, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, nil, fmt.Errorf("extract: %w", err)
	}
	defer f.Close()

	pages, err := extract.PageCount(f)
	if err != nil {
		return 0, nil, err
	}
	if imagesDir == "" {
		return pages, nil, nil
	}

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return 0, nil, err
	}

	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	images, err := extract.ExtractImages(f, stem, imagesDir)
	return pages, images, err
}

func ingestCmd(ctx context.Context, a *app, args []string) error {
	fs := flag.NewFlagSet("ingest", flag.ContinueOnError)
	in := fs.String("in", "", "JSON array of raw blocks (- for stdin)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var data []byte
	var err error
	switch *in {
	case "", "-":
		data, err = io.ReadAll(os.Stdin)
	default:
		data, err = os.ReadFile(*in)
	}
	if err != nil {
		return fmt.Errorf("ingest: %w", err)
	}

	var raw []blocks.Block
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("ingest: %w: %w", pipeline.ErrInvalidInput, err)
	}

	result, err := a.pipeline.Ingest(ctx, raw)
	if err != nil {
		return err
	}
	return a.printJSON(result)
}

func classifyCmd(ctx context.Context, a *app, args []string) error {
	if err := flag.NewFlagSet("classify", flag.ContinueOnError).Parse(args); err != nil {
		return err
	}

	summary, err := a.pipeline.Classify(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintln(a.stdout, "Classification results:")
	for _, cat := range blocks.Categories {
		if n := summary.Counts[cat]; n > 0 {
			fmt.Fprintf(a.stdout, "  %s: %d\n", cat, n)
		}
	}
	fmt.Fprintf(a.stdout, "  total: %d\n", summary.Total)
	if summary.Catalog != nil {
		fmt.Fprintf(a.stdout, "  catalog: %d blocks, %d pairs\n", summary.Catalog.Blocks, summary.Catalog.Pairs)
	}
	return nil
}

func blocksCmd(ctx context.Context, a *app, args []string) error {
	fs := flag.NewFlagSet("blocks", flag.ContinueOnError)
	status := fs.String("status", "", "only blocks with this review status")
	if err := fs.Parse(args); err != nil {
		return err
	}

	view, err := a.pipeline.Blocks(ctx)
	if err != nil {
		return err
	}

	if *status != "" {
		filtered := view[:0]
		for _, b := range view {
			if string(b.ReviewStatus) == *status {
				filtered = append(filtered, b)
			}
		}
		view = filtered
	}

	return a.printJSON(view)
}

func reviewCmd(ctx context.Context, a *app, args []string) error {
	fs := flag.NewFlagSet("review", flag.ContinueOnError)
	id := fs.String("id", "", "block id")
	status := fs.String("status", string(review.Approved), "pending, approved, or rejected")
	reviewer := fs.String("reviewer", os.Getenv("USER"), "reviewer name")
	notes := fs.String("notes", "", "review notes")
	if err := fs.Parse(args); err != nil {
		return err
	}

	now := time.Now().UTC()
	outcome, err := a.pipeline.Review(ctx, review.Update{
		BlockID:   *id,
		Status:    review.Status(*status),
		Reviewer:  *reviewer,
		Notes:     *notes,
		UpdatedAt: &now,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(a.stdout, "%s: %s (%s)\n", outcome.BlockID, outcome.Record.Status, outcome.Effect)
	return nil
}

func exportCmd(ctx context.Context, a *app, args []string) error {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	format := fs.String("format", "json", "json, text, or markdown")
	order := fs.String("order", "", "document or approval (default from config)")
	out := fs.String("out", "", "output file (default stdout)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	output, err := a.pipeline.Export(ctx, pipeline.ExportRequest{Format: *format, Order: *order})
	if err != nil {
		return err
	}

	if *out == "" {
		_, err := a.stdout.Write(output.Body)
		return err
	}

	if err := os.WriteFile(*out, output.Body, 0o644); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	a.logger.Info("export written", "path", *out, "format", output.Format, "blocks", output.Blocks)
	return nil
}

func statusCmd(ctx context.Context, a *app, args []string) error {
	if err := flag.NewFlagSet("status", flag.ContinueOnError).Parse(args); err != nil {
		return err
	}

	status, err := a.pipeline.Status(ctx)
	if err != nil {
		return err
	}
	return a.printJSON(status)
}

func resetCmd(ctx context.Context, a *app, args []string) error {
	if err := flag.NewFlagSet("reset", flag.ContinueOnError).Parse(args); err != nil {
		return err
	}
	return a.pipeline.Reset(ctx)
}

func openapiCmd(ctx context.Context, a *app, args []string) error {
	fs := flag.NewFlagSet("openapi", flag.ContinueOnError)
	out := fs.String("out", "", "write the document to this file instead of stdout")
	if err := fs.Parse(args); err != nil {
		return err
	}

	spec := api.Spec(a.cfg, a.cfg.Database.Enabled())
	if *out != "" {
		return openapi.WriteJSON(spec, *out)
	}

	data, err := openapi.MarshalJSON(spec)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(a.stdout, string(data))
	return err
}
