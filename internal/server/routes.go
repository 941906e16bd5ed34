package server

import (
	"database/sql"
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/swaggest/swgui/v5emb"

	"github.com/playgeo/globetrotter/internal/quiz"
)

func addRoutes(r chi.Router, logger *slog.Logger, db *sql.DB, store Store, spaDir string) {
	svc := quiz.NewService(store)
	broker := NewBroker()

	r.Get("/openapi.json", handleOpenAPI())
	r.Mount("/docs", v5emb.New("Globetrotter API", "/openapi.json", "/docs"))
	r.Get("/healthz", handleHealth(logger, db))

	// Game endpoints. The three quiz operations are stateless and
	// correlated only by the destination id the client carries along.
	r.Route("/api/v1/destination", func(r chi.Router) {
		r.Get("/random", handleRandomQuestion(svc))
		r.Get("/options/{id}", handleOptions(svc))
		r.Post("/verify", handleVerify(svc))
		r.With(adminAuthMiddleware(store)).Get("/all", handleListDestinations(store))
	})

	// Users and scores.
	r.Route("/api/v1/user", func(r chi.Router) {
		r.Post("/", handleCreateUser(store))
		r.Get("/leaderboard", handleLeaderboard(store))
		r.Get("/{username}", handleGetUser(store))
		r.Put("/{username}/score", handleUpdateScore(store, broker))
		r.Get("/{username}/events", handleScoreEvents(store, broker))
	})

	// Admin auth.
	r.Post("/api/admin/login", handleAdminLogin(store))
	r.Post("/api/admin/logout", handleAdminLogout(store))
	r.Get("/api/admin/me", handleAdminMe(store))

	if spaDir != "" {
		if info, err := os.Stat(spaDir); err == nil && info.IsDir() {
			logger.Info("serving SPA", "dir", spaDir)
			r.NotFound(handleSPA(spaDir))
		}
	}
}
