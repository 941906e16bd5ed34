package server

import (
	"context"
	"errors"

	"github.com/playgeo/globetrotter/internal/globetrotter"
	"github.com/playgeo/globetrotter/internal/quiz"
)

// ErrUsernameTaken is returned by CreateUser when the username exists.
var ErrUsernameTaken = errors.New("username already taken")

type adminSession struct {
	AdminID string
	Email   string
}

// Store is everything the handlers need from persistence. The catalog
// half is the quiz.Catalog contract; the rest covers users, the admin
// surface, and the full catalog listing.
type Store interface {
	quiz.Catalog

	ListDestinations(ctx context.Context) ([]globetrotter.Destination, error)

	CreateUser(ctx context.Context, username string) (globetrotter.User, error)
	UserByUsername(ctx context.Context, username string) (globetrotter.User, error)
	IncrementScore(ctx context.Context, username string, correct bool) (globetrotter.User, error)
	TopUsers(ctx context.Context, limit int) ([]globetrotter.User, error)

	AdminByEmail(ctx context.Context, email string) (adminID, passwordHash string, err error)
	CreateAdmin(ctx context.Context, email, passwordHash string) error
	CountAdmins(ctx context.Context) (int, error)
	CreateAdminSession(ctx context.Context, adminID string) (sessionID string, err error)
	DeleteAdminSession(ctx context.Context, sessionID string) error
	AdminFromSession(ctx context.Context, sessionID string) (adminSession, error)
}
