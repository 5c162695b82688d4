package pipeline_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/JaimeStill/docquest/internal/pipeline"
	"github.com/JaimeStill/docquest/internal/review"
	"github.com/JaimeStill/docquest/pkg/middleware"
	"github.com/JaimeStill/docquest/pkg/routes"
)

func setupMux(t *testing.T) (*http.ServeMux, *pipeline.Pipeline) {
	t.Helper()
	p, _ := newPipeline(t, nil, pipeline.Config{})
	mux := http.NewServeMux()
	routes.Register(mux, p.Handler(1<<20).Routes())
	return mux, p
}

func do(mux http.Handler, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func TestHandlerWorkflow(t *testing.T) {
	mux, _ := setupMux(t)

	rawBody, _ := json.Marshal(raw)
	if rec := do(mux, "POST", "/blocks/raw", string(rawBody)); rec.Code != http.StatusCreated {
		t.Fatalf("ingest status = %d: %s", rec.Code, rec.Body.String())
	}

	if rec := do(mux, "POST", "/blocks/classify", ""); rec.Code != http.StatusOK {
		t.Fatalf("classify status = %d: %s", rec.Code, rec.Body.String())
	}

	rec := do(mux, "PUT", "/blocks/b2", `{"review_status":"approved","reviewer":"ana","notes":"ok","updated_at":"2026-03-01T12:00:00Z"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("review status = %d: %s", rec.Code, rec.Body.String())
	}
	if strings.TrimSpace(rec.Body.String()) != `{"status":"success"}` {
		t.Errorf("review body = %s", rec.Body.String())
	}

	rec = do(mux, "GET", "/blocks", "")
	var view []map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&view); err != nil {
		t.Fatal(err)
	}
	if len(view) != 3 {
		t.Fatalf("view len = %d", len(view))
	}
	if view[1]["review_status"] != "approved" || view[1]["reviewer"] != "ana" || view[1]["type"] != "title" {
		t.Errorf("annotated b2 = %v", view[1])
	}
	if view[0]["review_status"] != "pending" || view[0]["notes"] != "" {
		t.Errorf("annotated b1 = %v", view[0])
	}

	rec = do(mux, "POST", "/export", `{"format":"markdown"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("export status = %d", rec.Code)
	}
	if rec.Body.String() != "## INTRODUCTION" {
		t.Errorf("export body = %q", rec.Body.String())
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, "approved_content.md") {
		t.Errorf("Content-Disposition = %q", cd)
	}
}

func TestHandlerErrors(t *testing.T) {
	mux, _ := setupMux(t)

	tests := []struct {
		name   string
		method string
		target string
		body   string
		want   int
	}{
		{"classify without raw", "POST", "/blocks/classify", "", http.StatusNotFound},
		{"unsupported format", "POST", "/export", `{"format":"pdf"}`, http.StatusBadRequest},
		{"unsupported order", "POST", "/export", `{"format":"json","order":"random"}`, http.StatusBadRequest},
		{"invalid status", "PUT", "/blocks/b1", `{"review_status":"maybe"}`, http.StatusBadRequest},
		{"malformed body", "PUT", "/blocks/b1", `{`, http.StatusBadRequest},
		{"duplicate ids", "POST", "/blocks/raw", `[{"id":"a"},{"id":"a"}]`, http.StatusBadRequest},
		{"empty raw", "POST", "/blocks/raw", `[]`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(mux, tt.method, tt.target, tt.body)
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d: %s", rec.Code, tt.want, rec.Body.String())
			}
			if !strings.Contains(rec.Body.String(), `"error"`) {
				t.Errorf("body missing error: %s", rec.Body.String())
			}
		})
	}
}

func TestHandlerUnknownBlockApproval(t *testing.T) {
	mux, p := setupMux(t)

	rec := do(mux, "PUT", "/blocks/unknown_id", `{"review_status":"approved"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	rec = do(mux, "POST", "/export", "")
	if rec.Code != http.StatusOK || strings.TrimSpace(rec.Body.String()) != "[]" {
		t.Errorf("export = %d %q, want empty json array", rec.Code, rec.Body.String())
	}

	st, err := p.Status(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if !st.Artifacts["review_state.json"] {
		t.Error("review state not persisted for unknown id")
	}
}

func TestHandlerReviewerFromIdentity(t *testing.T) {
	ctx := context.Background()
	mux, p := setupMux(t)

	if _, err := p.Ingest(ctx, raw); err != nil {
		t.Fatal(err)
	}
	if _, err := p.Classify(ctx); err != nil {
		t.Fatal(err)
	}

	send := func(body string) {
		req := httptest.NewRequest("PUT", "/blocks/b1", bytes.NewReader([]byte(body)))
		req = req.WithContext(middleware.WithIdentity(req.Context(), "reviewer@example.com"))
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
		}
	}

	reviewerOf := func() string {
		view, err := p.Blocks(ctx)
		if err != nil {
			t.Fatal(err)
		}
		return view[0].Reviewer
	}

	send(`{"review_status":"rejected"}`)
	if got := reviewerOf(); got != "reviewer@example.com" {
		t.Errorf("reviewer = %q, want identity", got)
	}

	send(`{"review_status":"approved","reviewer":"ana"}`)
	if got := reviewerOf(); got != "ana" {
		t.Errorf("reviewer = %q, want explicit reviewer", got)
	}

	if _, err := p.Review(ctx, review.Update{BlockID: "b1", Status: review.Pending}); err != nil {
		t.Fatal(err)
	}
	if got := reviewerOf(); got != "" {
		t.Errorf("reviewer = %q, want empty after overwrite", got)
	}
}
