package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"bridgewise-ranker/internal/apperr"
)

func wrapErr(kind error, msg string) error {
	return fmt.Errorf("%w: %s", kind, msg)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeKindError maps an apperr kind to the HTTP status §7 specifies.
func writeKindError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(apperr.Kind(err), apperr.ErrValidation):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(apperr.Kind(err), apperr.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(apperr.Kind(err), apperr.ErrStoreUnavailable):
		writeError(w, http.StatusServiceUnavailable, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

// withCORS enables permissive cross-origin access for the web clients,
// per §4.6.
func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
