package routes_test

import (
	"net/http"
	"net/http/httptest"
	"slices"
	"testing"

	"github.com/JaimeStill/docquest/pkg/routes"
)

func ok(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func dashboard() routes.Group {
	return routes.Group{
		Children: []routes.Group{
			{
				Prefix: "/blocks",
				Routes: []routes.Route{
					{Method: "GET", Pattern: "", Handler: ok},
					{Method: "PUT", Pattern: "/{id}", Handler: ok},
				},
			},
			{
				Prefix: "/export",
				Routes: []routes.Route{
					{Method: "POST", Pattern: "", Handler: ok},
				},
			},
		},
	}
}

func TestRegisterHandlers(t *testing.T) {
	mux := http.NewServeMux()
	routes.Register(mux, dashboard())

	tests := []struct {
		name   string
		method string
		path   string
		want   int
	}{
		{"list blocks", "GET", "/blocks", http.StatusOK},
		{"review block", "PUT", "/blocks/page_0_block_1", http.StatusOK},
		{"export", "POST", "/export", http.StatusOK},
		{"wrong method", "DELETE", "/blocks/page_0_block_1", http.StatusMethodNotAllowed},
		{"unknown path", "GET", "/missing", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))

			if rec.Code != tt.want {
				t.Errorf("status: got %d, want %d", rec.Code, tt.want)
			}
		})
	}
}

func TestNestedGroups(t *testing.T) {
	mux := http.NewServeMux()

	routes.Register(mux, routes.Group{
		Prefix: "/catalog",
		Children: []routes.Group{
			{
				Prefix: "/documents",
				Routes: []routes.Route{
					{Method: "GET", Pattern: "/{id}/pairs", Handler: ok},
				},
			},
		},
	})

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest("GET", "/catalog/documents/default_doc/pairs", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("nested route: got %d, want 200", rec.Code)
	}
}

func TestPatterns(t *testing.T) {
	got := dashboard().Patterns()
	want := []string{"GET /blocks", "PUT /blocks/{id}", "POST /export"}

	if !slices.Equal(got, want) {
		t.Errorf("patterns: got %v, want %v", got, want)
	}
}
