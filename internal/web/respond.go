package web

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/wijvancees/fotobestel/internal/domain"
)

type errorBody struct {
	Success bool   `json:"success"`
	Code    string `json:"code"`
	Error   string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// writeError maps domain errors to a status and machine-readable code.
// Anything unmapped is a 500 with a generic body; the detail stays in the log.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, code, msg := http.StatusInternalServerError, "INTERNAL", "something went wrong"

	switch {
	case errors.Is(err, domain.ErrEmailTaken):
		status, code, msg = http.StatusConflict, "CONFLICT", "email already registered"
	case errors.Is(err, domain.ErrUnauthorized):
		status, code, msg = http.StatusUnauthorized, "UNAUTHORIZED", "not authorized"
	case errors.Is(err, domain.ErrOrderNotFound):
		status, code, msg = http.StatusNotFound, "NOT_FOUND", "order not found"
	case errors.Is(err, domain.ErrPhotoNotFound):
		status, code, msg = http.StatusNotFound, "NOT_FOUND", "photo not found"
	case errors.Is(err, domain.ErrInvalidResetToken):
		status, code, msg = http.StatusBadRequest, "INVALID_TOKEN", "invalid or expired reset token"
	case errors.Is(err, domain.ErrEmptyOrder):
		status, code, msg = http.StatusBadRequest, "BAD_REQUEST", "order has no items"
	case errors.Is(err, domain.ErrInvalidQuantity):
		status, code, msg = http.StatusBadRequest, "BAD_REQUEST", "item quantity must be at least 1"
	case errors.Is(err, domain.ErrInvalidStatus):
		status, code, msg = http.StatusBadRequest, "BAD_REQUEST", "invalid order status"
	case errors.Is(err, domain.ErrPasswordTooShort):
		status, code, msg = http.StatusBadRequest, "BAD_REQUEST", "password must be at least 8 characters"
	default:
		s.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	}

	writeJSON(w, status, errorBody{Success: false, Code: code, Error: msg})
}

// badRequest is for malformed input detected in the handler itself.
func badRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, errorBody{Success: false, Code: "BAD_REQUEST", Error: msg})
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		badRequest(w, "invalid request body")
		return false
	}
	return true
}
