package catalog

import (
	"log/slog"
	"net/http"

	"github.com/JaimeStill/docquest/pkg/handlers"
	"github.com/JaimeStill/docquest/pkg/pagination"
	"github.com/JaimeStill/docquest/pkg/routes"
)

// Handler provides read-only HTTP endpoints over the catalog.
type Handler struct {
	sys        System
	logger     *slog.Logger
	pagination pagination.Config
}

// NewHandler creates a Handler with the given system, logger, and pagination config.
func NewHandler(sys System, logger *slog.Logger, pagination pagination.Config) *Handler {
	return &Handler{
		sys:        sys,
		logger:     logger.With("handler", "catalog"),
		pagination: pagination,
	}
}

// Routes returns the route group definition for catalog endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/catalog",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "/blocks", Handler: h.ListBlocks},
			{Method: "GET", Pattern: "/documents", Handler: h.ListDocuments},
			{Method: "GET", Pattern: "/documents/{id}/pairs", Handler: h.ListPairs},
		},
	}
}

// ListBlocks returns a paginated block listing filtered by query parameters.
func (h *Handler) ListBlocks(w http.ResponseWriter, r *http.Request) {
	page := pagination.PageRequestFromQuery(r.URL.Query(), h.pagination)
	filters := FiltersFromQuery(r.URL.Query())

	result, err := h.sys.ListBlocks(r.Context(), page, filters)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// ListDocuments returns every catalogued document.
func (h *Handler) ListDocuments(w http.ResponseWriter, r *http.Request) {
	docs, err := h.sys.ListDocuments(r.Context())
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, docs)
}

// ListPairs returns the question/answer pairs of one document.
func (h *Handler) ListPairs(w http.ResponseWriter, r *http.Request) {
	pairs, err := h.sys.ListPairs(r.Context(), r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, pairs)
}
