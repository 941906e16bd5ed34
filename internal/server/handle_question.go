package server

import (
	"net/http"

	"github.com/playgeo/globetrotter/internal/quiz"
)

func handleRandomQuestion(svc *quiz.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q, err := svc.RandomQuestion(r.Context())
		if err != nil {
			writeDomainError(w, err, "no destinations found")
			return
		}
		writeJSON(w, http.StatusOK, q)
	}
}
