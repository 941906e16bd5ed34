package server

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/playgeo/globetrotter/internal/globetrotter"
)

// SQLiteStore implements Store on top of the SQLite schema created by
// the migrations package.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

const destinationColumns = `id, city, country, clues, fun_facts, trivia`

func scanDestination(row interface{ Scan(...any) error }) (globetrotter.Destination, error) {
	var d globetrotter.Destination
	var clues, funFacts, trivia string
	if err := row.Scan(&d.ID, &d.City, &d.Country, &clues, &funFacts, &trivia); err != nil {
		return d, err
	}
	json.Unmarshal([]byte(clues), &d.Clues)
	json.Unmarshal([]byte(funFacts), &d.FunFacts)
	json.Unmarshal([]byte(trivia), &d.Trivia)
	return d, nil
}

// wellFormedID reports whether id looks like one of our row ids:
// 32 lowercase hex characters (hex(randomblob(16))).
func wellFormedID(id string) bool {
	if len(id) != 32 {
		return false
	}
	for _, c := range id {
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}

func (s *SQLiteStore) Count(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM destinations`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting destinations: %w", err)
	}
	return count, nil
}

// RandomOne delegates the uniform pick to SQLite's RANDOM() ordering,
// drawn fresh per call. No positional bias toward any stored row.
func (s *SQLiteStore) RandomOne(ctx context.Context) (globetrotter.Destination, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+destinationColumns+` FROM destinations
		ORDER BY RANDOM() LIMIT 1
	`)
	d, err := scanDestination(row)
	if errors.Is(err, sql.ErrNoRows) {
		return d, globetrotter.ErrNotFound
	}
	return d, err
}

func (s *SQLiteStore) ByID(ctx context.Context, id string) (globetrotter.Destination, error) {
	if !wellFormedID(id) {
		return globetrotter.Destination{}, fmt.Errorf("destination id %q: %w", id, globetrotter.ErrInvalidArgument)
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT `+destinationColumns+` FROM destinations WHERE id = ?
	`, id)
	d, err := scanDestination(row)
	if errors.Is(err, sql.ErrNoRows) {
		return d, globetrotter.ErrNotFound
	}
	return d, err
}

// SampleOthers returns up to n destinations distinct from excludeID,
// again via RANDOM() ordering so the draw is independent of insertion
// order. A catalog with fewer than n other rows yields fewer rows; the
// caller ends up with a smaller option set rather than an error.
func (s *SQLiteStore) SampleOthers(ctx context.Context, excludeID string, n int) ([]globetrotter.Destination, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+destinationColumns+` FROM destinations
		WHERE id != ?
		ORDER BY RANDOM() LIMIT ?
	`, excludeID, n)
	if err != nil {
		return nil, fmt.Errorf("sampling destinations: %w", err)
	}
	defer rows.Close()

	var dests []globetrotter.Destination
	for rows.Next() {
		d, err := scanDestination(rows)
		if err != nil {
			return nil, err
		}
		dests = append(dests, d)
	}
	return dests, rows.Err()
}

func (s *SQLiteStore) ListDestinations(ctx context.Context) ([]globetrotter.Destination, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+destinationColumns+` FROM destinations ORDER BY country, city
	`)
	if err != nil {
		return nil, fmt.Errorf("listing destinations: %w", err)
	}
	defer rows.Close()

	dests := []globetrotter.Destination{}
	for rows.Next() {
		d, err := scanDestination(rows)
		if err != nil {
			return nil, err
		}
		dests = append(dests, d)
	}
	return dests, rows.Err()
}

// CreateDestination inserts one catalog record and returns its id.
// Used by seeding only; the catalog is immutable once the server is up.
func (s *SQLiteStore) CreateDestination(ctx context.Context, d globetrotter.Destination) (string, error) {
	clues, _ := json.Marshal(d.Clues)
	funFacts, _ := json.Marshal(d.FunFacts)
	trivia, _ := json.Marshal(d.Trivia)

	var id string
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO destinations (city, country, clues, fun_facts, trivia)
		VALUES (?, ?, ?, ?, ?)
		RETURNING id
	`, strings.TrimSpace(d.City), strings.TrimSpace(d.Country),
		string(clues), string(funFacts), string(trivia)).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("inserting destination: %w", err)
	}
	return id, nil
}

func (s *SQLiteStore) CreateUser(ctx context.Context, username string) (globetrotter.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return globetrotter.User{}, fmt.Errorf("username is required: %w", globetrotter.ErrInvalidArgument)
	}

	// Check-then-insert mirrors the registration flow the client
	// expects: a taken name is a normal outcome, not a constraint blow-up.
	var exists int
	err := s.db.QueryRowContext(ctx, `SELECT 1 FROM users WHERE username = ?`, username).Scan(&exists)
	if err == nil {
		return globetrotter.User{}, ErrUsernameTaken
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return globetrotter.User{}, fmt.Errorf("checking username: %w", err)
	}

	var u globetrotter.User
	err = s.db.QueryRowContext(ctx, `
		INSERT INTO users (username) VALUES (?)
		RETURNING id, username, score_correct, score_incorrect, created_at
	`, username).Scan(&u.ID, &u.Username, &u.Score.Correct, &u.Score.Incorrect, &u.CreatedAt)
	if err != nil {
		return globetrotter.User{}, fmt.Errorf("inserting user: %w", err)
	}
	return u, nil
}

func (s *SQLiteStore) UserByUsername(ctx context.Context, username string) (globetrotter.User, error) {
	var u globetrotter.User
	err := s.db.QueryRowContext(ctx, `
		SELECT id, username, score_correct, score_incorrect, created_at
		FROM users WHERE username = ?
	`, username).Scan(&u.ID, &u.Username, &u.Score.Correct, &u.Score.Incorrect, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return u, globetrotter.ErrNotFound
	}
	return u, err
}

func (s *SQLiteStore) IncrementScore(ctx context.Context, username string, correct bool) (globetrotter.User, error) {
	column := "score_incorrect"
	if correct {
		column = "score_correct"
	}

	var u globetrotter.User
	err := s.db.QueryRowContext(ctx, `
		UPDATE users SET `+column+` = `+column+` + 1
		WHERE username = ?
		RETURNING id, username, score_correct, score_incorrect, created_at
	`, username).Scan(&u.ID, &u.Username, &u.Score.Correct, &u.Score.Incorrect, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return u, globetrotter.ErrNotFound
	}
	return u, err
}

func (s *SQLiteStore) TopUsers(ctx context.Context, limit int) ([]globetrotter.User, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, username, score_correct, score_incorrect, created_at
		FROM users
		ORDER BY score_correct DESC, created_at
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing top users: %w", err)
	}
	defer rows.Close()

	users := []globetrotter.User{}
	for rows.Next() {
		var u globetrotter.User
		if err := rows.Scan(&u.ID, &u.Username, &u.Score.Correct, &u.Score.Incorrect, &u.CreatedAt); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (s *SQLiteStore) AdminByEmail(ctx context.Context, email string) (string, string, error) {
	var adminID, passwordHash string
	err := s.db.QueryRowContext(ctx, `
		SELECT id, password_hash FROM admins WHERE email = ?
	`, email).Scan(&adminID, &passwordHash)
	if errors.Is(err, sql.ErrNoRows) {
		return "", "", globetrotter.ErrNotFound
	}
	return adminID, passwordHash, err
}

func (s *SQLiteStore) CreateAdmin(ctx context.Context, email, passwordHash string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO admins (email, password_hash) VALUES (?, ?)
	`, email, passwordHash)
	return err
}

func (s *SQLiteStore) CountAdmins(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM admins`).Scan(&count)
	return count, err
}

func (s *SQLiteStore) CreateAdminSession(ctx context.Context, adminID string) (string, error) {
	var sessionID string
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO admin_sessions (admin_id)
		VALUES (?)
		RETURNING id
	`, adminID).Scan(&sessionID)
	return sessionID, err
}

func (s *SQLiteStore) DeleteAdminSession(ctx context.Context, sessionID string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM admin_sessions WHERE id = ?`, sessionID)
	return err
}

func (s *SQLiteStore) AdminFromSession(ctx context.Context, sessionID string) (adminSession, error) {
	var sess adminSession
	err := s.db.QueryRowContext(ctx, `
		SELECT a.id, a.email
		FROM admin_sessions s
		JOIN admins a ON a.id = s.admin_id
		WHERE s.id = ?
	`, sessionID).Scan(&sess.AdminID, &sess.Email)
	if errors.Is(err, sql.ErrNoRows) {
		return adminSession{}, errNoAdminSession
	}
	return sess, err
}
