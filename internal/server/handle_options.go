package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/playgeo/globetrotter/internal/quiz"
)

func handleOptions(svc *quiz.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		options, err := svc.BuildOptions(r.Context(), id)
		if err != nil {
			writeDomainError(w, err, "destination not found")
			return
		}
		writeJSON(w, http.StatusOK, options)
	}
}
