package scans

import (
	"errors"
	"net/http"
)

// Domain errors for scan operations.
var (
	ErrNotFound    = errors.New("scan not found")
	ErrDuplicate   = errors.New("scan already exists")
	ErrInvalidType = errors.New("unknown scan type")
)

// MapHTTPStatus maps scan domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrDuplicate) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrInvalidType) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
