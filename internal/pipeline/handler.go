package pipeline

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/JaimeStill/docquest/internal/blocks"
	"github.com/JaimeStill/docquest/internal/review"
	"github.com/JaimeStill/docquest/pkg/handlers"
	"github.com/JaimeStill/docquest/pkg/middleware"
	"github.com/JaimeStill/docquest/pkg/routes"
)

// Handler provides the review dashboard's HTTP endpoints.
type Handler struct {
	sys           System
	logger        *slog.Logger
	maxUploadSize int64
}

// NewHandler creates a Handler with the given system, logger, and request body limit.
func NewHandler(sys System, logger *slog.Logger, maxUploadSize int64) *Handler {
	return &Handler{
		sys:           sys,
		logger:        logger.With("handler", "pipeline"),
		maxUploadSize: maxUploadSize,
	}
}

// Routes returns the route groups for block and export endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Children: []routes.Group{
			{
				Prefix: "/blocks",
				Routes: []routes.Route{
					{Method: "GET", Pattern: "", Handler: h.Blocks},
					{Method: "POST", Pattern: "/raw", Handler: h.Ingest},
					{Method: "POST", Pattern: "/extract", Handler: h.Extract},
					{Method: "POST", Pattern: "/classify", Handler: h.Classify},
					{Method: "PUT", Pattern: "/{id}", Handler: h.Review},
				},
			},
			{
				Prefix: "/export",
				Routes: []routes.Route{
					{Method: "POST", Pattern: "", Handler: h.Export},
				},
			},
			{
				Prefix: "/pipeline",
				Routes: []routes.Route{
					{Method: "GET", Pattern: "/status", Handler: h.Status},
					{Method: "DELETE", Pattern: "", Handler: h.Reset},
				},
			},
		},
	}
}

// Blocks returns the annotated classified blocks.
func (h *Handler) Blocks(w http.ResponseWriter, r *http.Request) {
	view, err := h.sys.Blocks(r.Context())
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}
	if view == nil {
		view = []review.Annotated{}
	}
	handlers.RespondJSON(w, http.StatusOK, view)
}

// Ingest stores a JSON array of raw blocks.
func (h *Handler) Ingest(w http.ResponseWriter, r *http.Request) {
	var raw []blocks.Block
	if err := h.decode(w, r, &raw); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	result, err := h.sys.Ingest(r.Context(), raw)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// Extract ingests a plain-text dump, pages separated by form feeds.
func (h *Handler) Extract(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.maxUploadSize))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusRequestEntityTooLarge, err)
		return
	}

	result, err := h.sys.Extract(r.Context(), string(body))
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// Classify runs the classification stage.
func (h *Handler) Classify(w http.ResponseWriter, r *http.Request) {
	summary, err := h.sys.Classify(r.Context())
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, summary)
}

// Review records a review decision for the block in the path. When the body
// names no reviewer, the authenticated caller is recorded. A missing
// updated_at is stamped with the current UTC time.
func (h *Handler) Review(w http.ResponseWriter, r *http.Request) {
	var cmd review.UpdateCommand
	if err := h.decode(w, r, &cmd); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	if cmd.Reviewer == "" {
		if id, ok := middleware.Identity(r.Context()); ok {
			cmd.Reviewer = id
		}
	}
	if cmd.UpdatedAt == nil {
		now := time.Now().UTC()
		cmd.UpdatedAt = &now
	}

	if _, err := h.sys.Review(r.Context(), cmd.Update(r.PathValue("id"))); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, map[string]string{"status": "success"})
}

// Export renders the approved set as an attachment. An empty body exports json.
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	var req ExportRequest
	if r.ContentLength != 0 {
		if err := h.decode(w, r, &req); err != nil {
			handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
			return
		}
	}

	out, err := h.sys.Export(r.Context(), req)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", out.Format.Filename()))
	handlers.RespondBytes(w, http.StatusOK, out.Format.ContentType(), out.Body)
}

// Status reports which artifacts exist.
func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	st, err := h.sys.Status(r.Context())
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, st)
}

// Reset clears derived artifacts, keeping the raw blocks.
func (h *Handler) Reset(w http.ResponseWriter, r *http.Request) {
	if err := h.sys.Reset(r.Context()); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, h.maxUploadSize))
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: empty body", ErrInvalidInput)
		}
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return nil
}
