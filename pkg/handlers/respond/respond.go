// Package respond holds the encoding and error mapping shared by the HTTP handlers.
package respond

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/mohtashimnawaz/satoshiflow/pkg/middleware"
	"github.com/mohtashimnawaz/satoshiflow/pkg/storage"
	"github.com/mohtashimnawaz/satoshiflow/pkg/streams"
)

// Status maps an engine error to its HTTP status code.
func Status(err error) int {
	switch {
	case errors.Is(err, streams.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, streams.ErrUnauthorized):
		return http.StatusForbidden
	case errors.Is(err, streams.ErrInvalidState),
		errors.Is(err, streams.ErrNotActive),
		errors.Is(err, storage.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, streams.ErrNothingToClaim):
		return http.StatusUnprocessableEntity
	case errors.Is(err, streams.ErrTimeoutNotReached):
		return http.StatusTooEarly
	case errors.Is(err, streams.ErrInvalidArgument):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// Error writes err with its mapped status. Unexpected errors are logged and
// prefixed with what the handler was doing.
func Error(w http.ResponseWriter, r *http.Request, err error, doing string) {
	status := Status(err)
	if status == http.StatusInternalServerError {
		slog.Error(doing, "path", r.URL.Path, "error", err)
		http.Error(w, fmt.Sprintf("%s: %v", doing, err), status)
		return
	}
	http.Error(w, err.Error(), status)
}

// JSON writes v as the response body with the given status.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to write response", "error", err)
	}
}

// Decode reads a JSON request body into v, writing a 400 on failure.
func Decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return false
	}
	return true
}

// Caller returns the principal placed on the request by middleware.Principal,
// writing a 401 when there is none.
func Caller(w http.ResponseWriter, r *http.Request) (string, bool) {
	caller := middleware.CallerFrom(r.Context())
	if caller == "" {
		http.Error(w, "Missing "+middleware.PrincipalHeader+" header", http.StatusUnauthorized)
		return "", false
	}
	return caller, true
}
