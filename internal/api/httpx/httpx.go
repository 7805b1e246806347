package httpx

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/vkazakov/adboard-backend/internal/apperr"
)

type APIError struct {
	Error   string      `json:"error"`
	Code    string      `json:"code"`
	Details interface{} `json:"details,omitempty"`
}

func WriteJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func WriteError(w http.ResponseWriter, status int, code, msg string, details interface{}) {
	WriteJSON(w, status, APIError{
		Error:   msg,
		Code:    code,
		Details: details,
	})
}

// WriteAppError maps the apperr taxonomy onto status codes. Anything outside
// the taxonomy is a 500 with a generic body; the real error goes to the log,
// not the client.
func WriteAppError(w http.ResponseWriter, err error) {
	var fields apperr.Fields
	switch {
	case errors.Is(err, apperr.ErrInvalid):
		errors.As(err, &fields)
		WriteError(w, http.StatusUnprocessableEntity, "invalid", "validation failed", fields)
	case errors.Is(err, apperr.ErrNotFound):
		WriteError(w, http.StatusNotFound, "not_found", err.Error(), nil)
	case errors.Is(err, apperr.ErrForbidden):
		WriteError(w, http.StatusForbidden, "forbidden", "forbidden", nil)
	case errors.Is(err, apperr.ErrUnauthenticated):
		WriteError(w, http.StatusUnauthorized, "unauthenticated", "unauthenticated", nil)
	case errors.Is(err, apperr.ErrConflict):
		WriteError(w, http.StatusConflict, "conflict", err.Error(), nil)
	case errors.Is(err, apperr.ErrIO):
		WriteError(w, http.StatusInternalServerError, "io_error", "storage failure", nil)
	default:
		WriteError(w, http.StatusInternalServerError, "internal_error", "internal error", nil)
	}
}
