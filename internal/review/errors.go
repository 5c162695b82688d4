package review

import (
	"errors"
	"net/http"
)

var (
	ErrInvalidStatus = errors.New("invalid review status")
	ErrInvalidBlock  = errors.New("invalid block id")
	ErrInvalidPolicy = errors.New("invalid review policy")
)

// MapHTTPStatus maps review errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrInvalidStatus) || errors.Is(err, ErrInvalidBlock) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
