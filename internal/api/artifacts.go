package api

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"slices"

	"github.com/JaimeStill/docquest/internal/artifacts"
	"github.com/JaimeStill/docquest/pkg/handlers"
	"github.com/JaimeStill/docquest/pkg/routes"
)

var errUnknownArtifact = errors.New("unknown artifact")

type artifactsHandler struct {
	store  artifacts.Store
	logger *slog.Logger
}

func newArtifactsHandler(store artifacts.Store, logger *slog.Logger) *artifactsHandler {
	return &artifactsHandler{
		store:  store,
		logger: logger.With("handler", "artifacts"),
	}
}

func (h *artifactsHandler) routes() routes.Group {
	return routes.Group{
		Prefix: "/artifacts",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "/{name}", Handler: h.download},
		},
	}
}

func (h *artifactsHandler) download(w http.ResponseWriter, r *http.Request) {
	name := artifacts.Name(r.PathValue("name"))
	if !slices.Contains(artifacts.All, name) {
		handlers.RespondError(
			w, h.logger,
			http.StatusNotFound, fmt.Errorf("%w: %s", errUnknownArtifact, name),
		)
		return
	}

	data, err := h.store.Read(r.Context(), name)
	if err != nil {
		handlers.RespondError(
			w, h.logger,
			artifacts.MapHTTPStatus(err), err,
		)
		return
	}

	w.Header().Set(
		"Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", string(name)),
	)
	handlers.RespondBytes(w, http.StatusOK, "application/json", data)
}
