package pipeline

import (
	"errors"
	"net/http"

	"github.com/JaimeStill/docquest/internal/artifacts"
	"github.com/JaimeStill/docquest/internal/blocks"
	"github.com/JaimeStill/docquest/internal/catalog"
	"github.com/JaimeStill/docquest/internal/export"
	"github.com/JaimeStill/docquest/internal/review"
)

var (
	ErrEmptyInput   = errors.New("no blocks in input")
	ErrInvalidInput = errors.New("invalid request body")
	ErrCatalogSync  = errors.New("catalog sync failed")
)

// MapHTTPStatus maps pipeline and stage errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrEmptyInput),
		errors.Is(err, ErrInvalidInput),
		errors.Is(err, blocks.ErrDuplicateID),
		errors.Is(err, blocks.ErrInvalidBlock):
		return http.StatusBadRequest
	case errors.Is(err, blocks.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrCatalogSync):
		return http.StatusBadGateway
	}

	if status := artifacts.MapHTTPStatus(err); status != http.StatusInternalServerError {
		return status
	}
	if status := review.MapHTTPStatus(err); status != http.StatusInternalServerError {
		return status
	}
	if status := export.MapHTTPStatus(err); status != http.StatusInternalServerError {
		return status
	}
	return catalog.MapHTTPStatus(err)
}
