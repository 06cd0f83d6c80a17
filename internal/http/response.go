package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"conciergerie/internal/log"
	"conciergerie/internal/metrics"
	"conciergerie/internal/repository"
	"conciergerie/internal/services"
)

const maxBodyBytes = 1 << 20

type errorBody struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, _ *http.Request, status int, msg string) {
	writeJSON(w, status, errorBody{Error: msg})
}

// writeServiceError maps domain errors onto status codes. Unexpected
// errors are logged and reported without detail.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, op string) {
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusUnprocessableEntity, errorBody{Error: "validation failed", Fields: verr.Fields})
	case errors.Is(err, repository.ErrNotFound):
		writeError(w, r, http.StatusNotFound, "not found")
	case errors.Is(err, repository.ErrDuplicate):
		writeError(w, r, http.StatusConflict, "already exists")
	case errors.Is(err, repository.ErrReadOnly):
		writeError(w, r, http.StatusNotImplemented, "the data backend is read-only")
	case errors.Is(err, metrics.ErrUnsupportedRole):
		writeError(w, r, http.StatusForbidden, err.Error())
	case errors.Is(err, metrics.ErrMissingIdentity):
		writeError(w, r, http.StatusUnauthorized, err.Error())
	default:
		log.NewStructuredLogger(log.FromContext(r.Context())).
			LogError(r.Context(), "Request failed", err, log.ComponentHTTP, op, nil)
		writeError(w, r, http.StatusInternalServerError, "internal error")
	}
}

// decodeJSON reads a single JSON object into dst, rejecting unknown fields.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("invalid JSON body: %w", err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return errors.New("invalid JSON body: trailing data")
	}
	return nil
}
