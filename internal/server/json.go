package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/playgeo/globetrotter/internal/globetrotter"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func readJSON(r *http.Request, v any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeDomainError maps domain errors to status codes: bad identifiers
// are the caller's fault, missing records are 404s, anything else is a
// storage failure surfaced as a 500.
func writeDomainError(w http.ResponseWriter, err error, notFoundMsg string) {
	switch {
	case errors.Is(err, globetrotter.ErrInvalidArgument):
		writeError(w, http.StatusBadRequest, "invalid identifier")
	case errors.Is(err, globetrotter.ErrNotFound):
		writeError(w, http.StatusNotFound, notFoundMsg)
	default:
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
