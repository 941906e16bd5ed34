package server

import (
	"net/http"

	"github.com/playgeo/globetrotter/internal/quiz"
)

type VerifyRequest struct {
	DestinationID string `json:"destinationId"`
	AnswerID      string `json:"answerId"`
}

func handleVerify(svc *quiz.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req VerifyRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		res, err := svc.Verify(r.Context(), req.DestinationID, req.AnswerID)
		if err != nil {
			writeDomainError(w, err, "destination not found")
			return
		}
		writeJSON(w, http.StatusOK, res)
	}
}
