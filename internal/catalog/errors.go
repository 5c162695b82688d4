package catalog

import (
	"errors"
	"net/http"
)

var (
	ErrNotFound    = errors.New("document not found")
	ErrDuplicate   = errors.New("catalog row already exists")
	ErrInvalidSync = errors.New("invalid catalog sync")
)

// MapHTTPStatus maps catalog errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrDuplicate) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrInvalidSync) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
