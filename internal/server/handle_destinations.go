package server

import (
	"net/http"

	"github.com/playgeo/globetrotter/internal/globetrotter"
)

// DestinationDetail is the admin view of one catalog record, including
// the clue and feedback pools the game endpoints never expose together.
type DestinationDetail struct {
	ID       string   `json:"id"`
	City     string   `json:"city"`
	Country  string   `json:"country"`
	Clues    []string `json:"clues"`
	FunFacts []string `json:"funFacts"`
	Trivia   []string `json:"trivia"`
}

func handleListDestinations(store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		dests, err := store.ListDestinations(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		out := make([]DestinationDetail, 0, len(dests))
		for _, d := range dests {
			out = append(out, destinationDetail(d))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func destinationDetail(d globetrotter.Destination) DestinationDetail {
	return DestinationDetail{
		ID:       d.ID,
		City:     d.City,
		Country:  d.Country,
		Clues:    d.Clues,
		FunFacts: d.FunFacts,
		Trivia:   d.Trivia,
	}
}
