package main

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/JaimeStill/docquest/internal/artifacts"
	"github.com/JaimeStill/docquest/internal/config"
	"github.com/JaimeStill/docquest/internal/pipeline"
)

const dump = "What is DocQuest?\n\nDocQuest is a tool.\fINTRODUCTION\n"

func newApp(t *testing.T) (*app, *bytes.Buffer) {
	t.Helper()
	logger := slog.New(slog.DiscardHandler)
	out := &bytes.Buffer{}
	return &app{
		pipeline: pipeline.New(artifacts.NewMemoryStore(), nil, pipeline.Config{DocumentID: "doc"}, logger),
		logger:   logger,
		stdout:   out,
	}, out
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestCommandsEndToEnd(t *testing.T) {
	ctx := context.Background()
	a, out := newApp(t)

	if err := extractCmd(ctx, a, []string{"-text", writeFile(t, "dump.txt", dump)}); err != nil {
		t.Fatalf("extract: %v", err)
	}
	var ingested map[string]any
	if err := json.Unmarshal(out.Bytes(), &ingested); err != nil {
		t.Fatalf("extract output: %v", err)
	}
	if ingested["blocks"] != float64(3) {
		t.Errorf("extract blocks = %v", ingested["blocks"])
	}

	out.Reset()
	if err := classifyCmd(ctx, a, nil); err != nil {
		t.Fatalf("classify: %v", err)
	}
	for _, want := range []string{"Classification results:", "  question: 1", "  title: 1", "  paragraph: 1", "  total: 3"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("classify output missing %q:\n%s", want, out.String())
		}
	}

	out.Reset()
	if err := reviewCmd(ctx, a, []string{"-id", "page_1_block_0", "-reviewer", "ana"}); err != nil {
		t.Fatalf("review: %v", err)
	}
	if got := strings.TrimSpace(out.String()); got != "page_1_block_0: approved (added)" {
		t.Errorf("review output = %q", got)
	}

	out.Reset()
	if err := exportCmd(ctx, a, []string{"-format", "markdown"}); err != nil {
		t.Fatalf("export: %v", err)
	}
	if out.String() != "## INTRODUCTION" {
		t.Errorf("export = %q", out.String())
	}

	out.Reset()
	if err := blocksCmd(ctx, a, []string{"-status", "approved"}); err != nil {
		t.Fatalf("blocks: %v", err)
	}
	var view []map[string]any
	if err := json.Unmarshal(out.Bytes(), &view); err != nil {
		t.Fatal(err)
	}
	if len(view) != 1 || view[0]["id"] != "page_1_block_0" || view[0]["reviewer"] != "ana" {
		t.Errorf("approved view = %v", view)
	}
}

func TestExportToFile(t *testing.T) {
	ctx := context.Background()
	a, _ := newApp(t)

	if err := ingestCmd(ctx, a, []string{"-in", writeFile(t, "raw.json", `[{"id":"b1","page":0,"content":"Plain text here."}]`)}); err != nil {
		t.Fatalf("ingest: %v", err)
	}
	if err := classifyCmd(ctx, a, nil); err != nil {
		t.Fatal(err)
	}
	if err := reviewCmd(ctx, a, []string{"-id", "b1"}); err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "out.txt")
	if err := exportCmd(ctx, a, []string{"-format", "text", "-out", path}); err != nil {
		t.Fatalf("export: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "Plain text here." {
		t.Errorf("file = %q", data)
	}
}

func TestCommandErrors(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name string
		run  func(a *app) error
	}{
		{"extract without text", func(a *app) error { return extractCmd(ctx, a, nil) }},
		{"classify without raw", func(a *app) error { return classifyCmd(ctx, a, nil) }},
		{"review without id", func(a *app) error { return reviewCmd(ctx, a, []string{"-status", "approved"}) }},
		{"review bad status", func(a *app) error { return reviewCmd(ctx, a, []string{"-id", "b1", "-status", "maybe"}) }},
		{"export bad format", func(a *app) error { return exportCmd(ctx, a, []string{"-format", "pdf"}) }},
		{"ingest malformed", func(a *app) error {
			return ingestCmd(ctx, a, []string{"-in", writeFile(t, "bad.json", "{")})
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, _ := newApp(t)
			if err := tt.run(a); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestExtractUnreadablePDFLeavesNoRawArtifact(t *testing.T) {
	ctx := context.Background()
	a, _ := newApp(t)

	args := []string{
		"-text", writeFile(t, "dump.txt", dump),
		"-pdf", writeFile(t, "broken.pdf", "not a pdf"),
	}
	if err := extractCmd(ctx, a, args); err == nil {
		t.Fatal("expected error for unreadable PDF")
	}

	status, err := a.pipeline.Status(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if status.Artifacts[artifacts.Raw] {
		t.Error("raw artifact written despite PDF failure")
	}
}

func TestStatusAndReset(t *testing.T) {
	ctx := context.Background()
	a, out := newApp(t)

	if err := extractCmd(ctx, a, []string{"-text", writeFile(t, "dump.txt", dump)}); err != nil {
		t.Fatal(err)
	}
	if err := classifyCmd(ctx, a, nil); err != nil {
		t.Fatal(err)
	}
	if err := resetCmd(ctx, a, nil); err != nil {
		t.Fatal(err)
	}

	out.Reset()
	if err := statusCmd(ctx, a, nil); err != nil {
		t.Fatal(err)
	}

	var status struct {
		Artifacts map[string]bool `json:"artifacts"`
	}
	if err := json.Unmarshal(out.Bytes(), &status); err != nil {
		t.Fatal(err)
	}
	if !status.Artifacts[string(artifacts.Raw)] || status.Artifacts[string(artifacts.Classified)] {
		t.Errorf("artifacts after reset = %v", status.Artifacts)
	}
}

func TestOpenAPICommand(t *testing.T) {
	ctx := context.Background()
	a, out := newApp(t)
	cfg, err := config.LoadDir(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	a.cfg = cfg

	if err := openapiCmd(ctx, a, nil); err != nil {
		t.Fatalf("openapi: %v", err)
	}
	var doc map[string]any
	if err := json.Unmarshal(out.Bytes(), &doc); err != nil {
		t.Fatalf("stdout document: %v", err)
	}
	if doc["openapi"] != "3.1.0" {
		t.Errorf("openapi version = %v", doc["openapi"])
	}

	path := filepath.Join(t.TempDir(), "openapi.json")
	if err := openapiCmd(ctx, a, []string{"-out", path}); err != nil {
		t.Fatalf("openapi -out: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"/api/blocks"`) {
		t.Error("written document missing /api/blocks")
	}
}
