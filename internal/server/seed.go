package server

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/playgeo/globetrotter/internal/globetrotter"
)

//go:embed destinations.json
var seedDestinations []byte

type seedDestination struct {
	City     string   `json:"city"`
	Country  string   `json:"country"`
	Clues    []string `json:"clues"`
	FunFacts []string `json:"funFacts"`
	Trivia   []string `json:"trivia"`
}

// Seed loads the starter catalog and the bootstrap admin.
// Idempotent: destinations are only inserted into an empty catalog, and
// the admin only when no admins exist.
func Seed(ctx context.Context, logger *slog.Logger, store *SQLiteStore, adminEmail, adminPassword string) error {
	if err := seedCatalog(ctx, logger, store); err != nil {
		return err
	}
	return seedAdmin(ctx, logger, store, adminEmail, adminPassword)
}

func seedCatalog(ctx context.Context, logger *slog.Logger, store *SQLiteStore) error {
	count, err := store.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	var dests []seedDestination
	if err := json.Unmarshal(seedDestinations, &dests); err != nil {
		return fmt.Errorf("parsing seed data: %w", err)
	}

	for _, d := range dests {
		// Every destination must carry at least one clue and one entry
		// in each feedback pool; the quiz logic relies on it.
		if len(d.Clues) == 0 || len(d.FunFacts) == 0 || len(d.Trivia) == 0 {
			return fmt.Errorf("seed destination %s/%s is missing clues or feedback", d.City, d.Country)
		}
		_, err := store.CreateDestination(ctx, globetrotter.Destination{
			City:     d.City,
			Country:  d.Country,
			Clues:    d.Clues,
			FunFacts: d.FunFacts,
			Trivia:   d.Trivia,
		})
		if err != nil {
			return err
		}
	}

	logger.Info("seeded destination catalog", "count", len(dests))
	return nil
}

func seedAdmin(ctx context.Context, logger *slog.Logger, store *SQLiteStore, email, password string) error {
	count, err := store.CountAdmins(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hashing admin password: %w", err)
	}
	if err := store.CreateAdmin(ctx, email, string(hash)); err != nil {
		return err
	}

	logger.Info("bootstrap admin created", "email", email)
	return nil
}
