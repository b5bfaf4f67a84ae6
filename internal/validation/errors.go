package validation

import (
	"errors"
	"net/http"
)

// Domain errors for validation operations. The coordinator wraps
// lower-level failures into these so callers can tell which step of the
// sequence failed and whether retrying is safe.
var (
	ErrInvalidIdentifier  = errors.New("scan identifier is invalid")
	ErrUnknownScan        = errors.New("scan not found")
	ErrUnknownRecord      = errors.New("validation record not found")
	ErrNotEligible        = errors.New("scan is not awaiting validation")
	ErrMissingPrediction  = errors.New("scan has no AI prediction to validate")
	ErrMissingDecision    = errors.New("validation decision is incomplete")
	ErrSourceUnavailable  = errors.New("scan store unavailable")
	ErrLedgerWriteFailed  = errors.New("validation record could not be written")
	ErrLedgerDeleteFailed = errors.New("validation record could not be removed")
	ErrScanUpdateFailed   = errors.New("scan status update failed")
	ErrNotOwner           = errors.New("validation belongs to a different expert")
	ErrBusy               = errors.New("scan has a validation in progress")
)

// Retryable reports whether the caller can safely retry the same request.
// A failed scan update is not retryable: by that point the ledger
// record exists and a retry would duplicate it. The reconciliation sweep
// heals those instead.
func Retryable(err error) bool {
	return errors.Is(err, ErrSourceUnavailable) ||
		errors.Is(err, ErrLedgerWriteFailed) ||
		errors.Is(err, ErrLedgerDeleteFailed) ||
		errors.Is(err, ErrBusy)
}

// MapHTTPStatus maps validation domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrInvalidIdentifier), errors.Is(err, ErrMissingDecision):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotOwner):
		return http.StatusForbidden
	case errors.Is(err, ErrUnknownScan), errors.Is(err, ErrUnknownRecord):
		return http.StatusNotFound
	case errors.Is(err, ErrNotEligible), errors.Is(err, ErrBusy):
		return http.StatusConflict
	case errors.Is(err, ErrMissingPrediction):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ErrSourceUnavailable), errors.Is(err, ErrLedgerWriteFailed), errors.Is(err, ErrLedgerDeleteFailed):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
