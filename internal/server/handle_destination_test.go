package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/playgeo/globetrotter/internal/globetrotter"
	"github.com/playgeo/globetrotter/internal/quiz"
)

// testRouter assembles the API against a seeded in-memory store.
func testRouter(t *testing.T) (*chi.Mux, *SQLiteStore) {
	t.Helper()

	store := setupStore(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	if err := Seed(context.Background(), logger, store, "admin@globetrotter.game", "changeme"); err != nil {
		t.Fatalf("seeding: %v", err)
	}

	svc := quiz.NewService(store)
	broker := NewBroker()

	r := chi.NewRouter()
	r.Get("/api/v1/destination/random", handleRandomQuestion(svc))
	r.Get("/api/v1/destination/options/{id}", handleOptions(svc))
	r.Post("/api/v1/destination/verify", handleVerify(svc))
	r.With(adminAuthMiddleware(store)).Get("/api/v1/destination/all", handleListDestinations(store))
	r.Post("/api/v1/user", handleCreateUser(store))
	r.Get("/api/v1/user/leaderboard", handleLeaderboard(store))
	r.Get("/api/v1/user/{username}", handleGetUser(store))
	r.Put("/api/v1/user/{username}/score", handleUpdateScore(store, broker))
	r.Post("/api/admin/login", handleAdminLogin(store))
	r.Post("/api/admin/logout", handleAdminLogout(store))
	r.Get("/api/admin/me", handleAdminMe(store))
	return r, store
}

func TestRandomQuestion(t *testing.T) {
	r, _ := testRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/destination/random", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var q globetrotter.Question
	json.NewDecoder(w.Body).Decode(&q)

	if q.DestinationID == "" {
		t.Fatal("expected a destination id")
	}
	if len(q.Clues) < 1 || len(q.Clues) > 2 {
		t.Fatalf("got %d clues, want 1 or 2", len(q.Clues))
	}
}

func TestRandomQuestionEmptyCatalogIs404(t *testing.T) {
	store := setupStore(t) // no seed
	svc := quiz.NewService(store)

	r := chi.NewRouter()
	r.Get("/api/v1/destination/random", handleRandomQuestion(svc))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/destination/random", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestQuestionOptionsVerifyRoundTrip(t *testing.T) {
	r, _ := testRouter(t)

	// Get a question.
	req := httptest.NewRequest(http.MethodGet, "/api/v1/destination/random", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("random: expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var q globetrotter.Question
	json.NewDecoder(w.Body).Decode(&q)

	// Fetch the option set for it.
	req = httptest.NewRequest(http.MethodGet, "/api/v1/destination/options/"+q.DestinationID, nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("options: expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var options []globetrotter.Option
	json.NewDecoder(w.Body).Decode(&options)

	if len(options) != quiz.DistractorCount+1 {
		t.Fatalf("got %d options, want %d", len(options), quiz.DistractorCount+1)
	}
	var wrongID string
	correct := 0
	ids := map[string]bool{}
	for _, o := range options {
		if ids[o.ID] {
			t.Errorf("duplicate option id %q", o.ID)
		}
		ids[o.ID] = true
		if o.ID == q.DestinationID {
			correct++
		} else {
			wrongID = o.ID
		}
	}
	if correct != 1 {
		t.Fatalf("correct option appeared %d times, want exactly 1", correct)
	}

	// Submit the right answer.
	body, _ := json.Marshal(VerifyRequest{DestinationID: q.DestinationID, AnswerID: q.DestinationID})
	req = httptest.NewRequest(http.MethodPost, "/api/v1/destination/verify", bytes.NewReader(body))
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("verify: expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var right globetrotter.VerificationResult
	json.NewDecoder(w.Body).Decode(&right)
	if !right.Correct {
		t.Error("expected correct=true for the right answer")
	}
	if right.Feedback == "" {
		t.Error("expected feedback text")
	}
	if right.CorrectAnswer.City == "" || right.CorrectAnswer.Country == "" {
		t.Error("expected the true answer to be revealed")
	}

	// Submit a wrong answer; the true answer is still revealed.
	body, _ = json.Marshal(VerifyRequest{DestinationID: q.DestinationID, AnswerID: wrongID})
	req = httptest.NewRequest(http.MethodPost, "/api/v1/destination/verify", bytes.NewReader(body))
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("verify wrong: expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var wrong globetrotter.VerificationResult
	json.NewDecoder(w.Body).Decode(&wrong)
	if wrong.Correct {
		t.Error("expected correct=false for a wrong answer")
	}
	if wrong.CorrectAnswer != right.CorrectAnswer {
		t.Errorf("correctAnswer differs between outcomes: %+v vs %+v", wrong.CorrectAnswer, right.CorrectAnswer)
	}
}

func TestOptionsUnknownDestination(t *testing.T) {
	r, _ := testRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/destination/options/00000000000000000000000000000000", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestOptionsMalformedID(t *testing.T) {
	r, _ := testRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/destination/options/not-an-id", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestVerifyMissingFields(t *testing.T) {
	r, _ := testRouter(t)

	body, _ := json.Marshal(VerifyRequest{DestinationID: "", AnswerID: ""})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/destination/verify", bytes.NewReader(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
}

func TestVerifyUnknownDestination(t *testing.T) {
	r, _ := testRouter(t)

	body, _ := json.Marshal(VerifyRequest{
		DestinationID: "00000000000000000000000000000000",
		AnswerID:      "00000000000000000000000000000000",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/destination/verify", bytes.NewReader(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", w.Code, w.Body.String())
	}
}

func TestListDestinationsRequiresAdmin(t *testing.T) {
	r, _ := testRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/destination/all", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestListDestinationsAsAdmin(t *testing.T) {
	r, _ := testRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/destination/all", nil)
	for _, c := range adminLogin(t, r) {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var dests []DestinationDetail
	json.NewDecoder(w.Body).Decode(&dests)
	if len(dests) == 0 {
		t.Fatal("expected the seeded catalog to be listed")
	}
	for _, d := range dests {
		if len(d.Clues) == 0 || len(d.FunFacts) == 0 || len(d.Trivia) == 0 {
			t.Errorf("%s/%s is missing clues or feedback pools", d.City, d.Country)
		}
	}
}
