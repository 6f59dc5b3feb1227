package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dquesada/tellercore-backend/internal/domain"
)

// writeJSON emits a success response with the given status code.
func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// writeErr maps a domain error onto an HTTP status code and emits a
// JSON error body. The mapping lives here so handlers never inspect
// error text.
func writeErr(w http.ResponseWriter, err error) {
	writeJSON(w, errStatus(err), map[string]string{"error": err.Error()})
}

// errStatus translates domain sentinels to HTTP status codes.
func errStatus(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidFormat),
		errors.Is(err, domain.ErrInvalidAmount):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrAuthenticationFailed):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrAccountLocked),
		errors.Is(err, domain.ErrConfirmationFailed),
		errors.Is(err, domain.ErrOwnershipMismatch):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrAccountNotFound),
		errors.Is(err, domain.ErrClientNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInsufficientFunds),
		errors.Is(err, domain.ErrClientExists):
		return http.StatusConflict
	case errors.Is(err, domain.ErrCollaboratorUnavailable):
		return http.StatusBadGateway
	default:
		// Includes domain.ErrCrypto: an integrity failure is an
		// internal fault, never a client mistake.
		return http.StatusInternalServerError
	}
}
