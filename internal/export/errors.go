package export

import (
	"errors"
	"net/http"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported format")
	ErrUnsupportedOrder  = errors.New("unsupported order")
)

// MapHTTPStatus maps export errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrUnsupportedFormat) || errors.Is(err, ErrUnsupportedOrder) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
