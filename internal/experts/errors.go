package experts

import (
	"errors"
	"net/http"
)

// Domain errors for identity resolution.
var (
	ErrUnauthenticated = errors.New("expert identity required")
	ErrInvalidToken    = errors.New("invalid bearer token")
)

// MapHTTPStatus maps identity errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrUnauthenticated) || errors.Is(err, ErrInvalidToken) {
		return http.StatusUnauthorized
	}
	return http.StatusInternalServerError
}
