package artifacts

import (
	"errors"
	"net/http"
)

var (
	ErrNotFound  = errors.New("artifact not found")
	ErrMalformed = errors.New("artifact malformed")
	ErrIO        = errors.New("artifact i/o failed")
)

// MapHTTPStatus maps an artifact error to an HTTP status code.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrMalformed):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
