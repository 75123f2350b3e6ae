// Package httpx holds the JSON plumbing shared by all handlers, including
// the single place where domain errors become HTTP statuses.
package httpx

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/eventtracker/server/internal/apperr"
	"github.com/eventtracker/server/internal/validate"
)

type APIError struct {
	Error   string `json:"error"`
	Code    string `json:"code"`
	Details any    `json:"details,omitempty"`
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func WriteError(w http.ResponseWriter, status int, code, msg string, details any) {
	WriteJSON(w, status, APIError{Error: msg, Code: code, Details: details})
}

func DecodeJSON(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}

// WriteDomainError maps the error taxonomy onto HTTP. Validation errors keep
// the full per-field list in details.
func WriteDomainError(w http.ResponseWriter, err error) {
	var verrs validate.Errs
	switch {
	case errors.As(err, &verrs):
		WriteError(w, http.StatusBadRequest, "validation_failed", "validation failed", verrs)
	case errors.Is(err, apperr.ErrDuplicateEmail):
		WriteError(w, http.StatusConflict, "duplicate_email", err.Error(), nil)
	case errors.Is(err, apperr.ErrInvalidCredentials):
		WriteError(w, http.StatusUnauthorized, "invalid_credentials", err.Error(), nil)
	case errors.Is(err, apperr.ErrAccountDisabled):
		WriteError(w, http.StatusForbidden, "account_disabled", err.Error(), nil)
	case errors.Is(err, apperr.ErrForbidden):
		WriteError(w, http.StatusForbidden, "forbidden", err.Error(), nil)
	case errors.Is(err, apperr.ErrNotFound):
		WriteError(w, http.StatusNotFound, "not_found", err.Error(), nil)
	default:
		WriteError(w, http.StatusInternalServerError, "internal_error", "internal error", nil)
	}
}
