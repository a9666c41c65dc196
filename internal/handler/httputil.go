// Package handler implements the HTTP API.
package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/priyankjain/shopform/pkg/fault"
)

// writeJSON marshals v as JSON and writes it with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError writes a structured JSON error response.
func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, map[string]string{
		"error": message,
		"code":  code,
	})
}

// decodeJSON decodes the request body into v.
func decodeJSON(r *http.Request, v any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}

// parseID extracts and validates an integer path parameter.
func parseID(w http.ResponseWriter, r *http.Request, paramName string) (int64, bool) {
	raw := chi.URLParam(r, paramName)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "invalid id: "+raw)
		return 0, false
	}
	return id, true
}

// Pagination holds parsed pagination parameters.
type Pagination struct {
	Page  int
	Limit int
}

// parsePagination extracts page and page_size from query params.
func parsePagination(r *http.Request) Pagination {
	p := Pagination{Page: 1}
	if v := r.URL.Query().Get("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			p.Page = n
		}
	}
	if v := r.URL.Query().Get("page_size"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			p.Limit = n
		}
	}
	if p.Limit > 100 {
		p.Limit = 100
	}
	return p
}

// faultToHTTP maps service errors to appropriate HTTP responses.
func faultToHTTP(w http.ResponseWriter, r *http.Request, err error) {
	var ve *fault.ValidationError
	if errors.As(err, &ve) {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"error":  "validation failed",
			"code":   "VALIDATION_ERROR",
			"fields": ve.Fields,
		})
		return
	}
	switch {
	case errors.Is(err, fault.ErrNotFound):
		writeError(w, http.StatusNotFound, "NOT_FOUND", err.Error())
	case errors.Is(err, fault.ErrUniqueViolation):
		writeError(w, http.StatusConflict, "CONFLICT", err.Error())
	case errors.Is(err, fault.ErrCorruptRecord):
		writeError(w, http.StatusUnprocessableEntity, "CORRUPT_RECORD", err.Error())
	case fault.IsClientError(err):
		writeError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error())
	default:
		log := logFrom(r)
		log.Error().Err(err).Msg("request failed")
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
	}
}
