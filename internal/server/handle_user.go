package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

type CreateUserRequest struct {
	Username string `json:"username"`
}

type UpdateScoreRequest struct {
	Correct bool `json:"correct"`
}

func handleCreateUser(store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateUserRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		req.Username = strings.TrimSpace(req.Username)
		if req.Username == "" {
			writeError(w, http.StatusBadRequest, "username is required")
			return
		}

		user, err := store.CreateUser(r.Context(), req.Username)
		if errors.Is(err, ErrUsernameTaken) {
			writeError(w, http.StatusConflict, "username already taken")
			return
		}
		if err != nil {
			writeDomainError(w, err, "user not found")
			return
		}

		writeJSON(w, http.StatusCreated, user)
	}
}

func handleGetUser(store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		username := chi.URLParam(r, "username")

		user, err := store.UserByUsername(r.Context(), username)
		if err != nil {
			writeDomainError(w, err, "user not found")
			return
		}
		writeJSON(w, http.StatusOK, user)
	}
}

// handleUpdateScore bumps the caller's correct or incorrect counter.
// The quiz core never touches scores; the client calls this after it
// receives a verification result.
func handleUpdateScore(store Store, broker *Broker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		username := chi.URLParam(r, "username")

		var req UpdateScoreRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		user, err := store.IncrementScore(r.Context(), username, req.Correct)
		if err != nil {
			writeDomainError(w, err, "user not found")
			return
		}

		broker.Publish(user.Username, ScoreEvent{
			Type:     "score_updated",
			Username: user.Username,
			Score:    user.Score,
		})

		writeJSON(w, http.StatusOK, user)
	}
}

const leaderboardSize = 10

func handleLeaderboard(store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		users, err := store.TopUsers(r.Context(), leaderboardSize)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		writeJSON(w, http.StatusOK, users)
	}
}
