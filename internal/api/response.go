package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/erazemk/shramba/internal/csvio"
	"github.com/erazemk/shramba/internal/store"
)

// jsonResponse writes a JSON response with the given status code.
func jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			slog.Error("encoding response", "error", err)
		}
	}
}

// jsonError writes a JSON error response.
func jsonError(w http.ResponseWriter, status int, message string) {
	jsonResponse(w, status, map[string]string{"error": message})
}

// decodeJSON decodes a JSON request body into the given target.
func decodeJSON(r *http.Request, target any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(target)
}

// storeError maps store and CSV errors to HTTP responses. NotFound and
// Forbidden deliberately produce the same response, so callers can't probe
// whether an item exists under another account.
func storeError(w http.ResponseWriter, err error) {
	var ve *store.ValidationError
	var me *csvio.MalformedInputError

	switch {
	case errors.As(err, &ve):
		jsonError(w, http.StatusBadRequest, ve.Error())
	case errors.As(err, &me):
		jsonError(w, http.StatusBadRequest, me.Error())
	case errors.Is(err, store.ErrDuplicateEmail):
		jsonError(w, http.StatusConflict, "email already registered")
	case errors.Is(err, store.ErrAuthenticationFailed):
		jsonError(w, http.StatusUnauthorized, "invalid email or password")
	case errors.Is(err, store.ErrNotFound), errors.Is(err, store.ErrForbidden):
		jsonError(w, http.StatusNotFound, "item not found")
	default:
		slog.Error("internal error", "error", err)
		jsonError(w, http.StatusInternalServerError, "internal error")
	}
}
