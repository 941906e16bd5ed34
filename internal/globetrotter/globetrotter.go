// Package globetrotter defines the core domain types and errors.
// It has zero external dependencies — everything here is pure Go.
package globetrotter

import "errors"

// ErrNotFound is returned when a destination or user does not exist,
// or when the catalog is empty.
var ErrNotFound = errors.New("not found")

// ErrInvalidArgument is returned for malformed or missing identifiers
// and required fields. Handlers translate it to a 400.
var ErrInvalidArgument = errors.New("invalid argument")

// Destination is one catalog record: a city/country pair with the clues
// disclosed as hints and the feedback text shown after an answer.
// Records are seeded out of band and immutable at runtime.
type Destination struct {
	ID       string
	City     string
	Country  string
	Clues    []string
	FunFacts []string
	Trivia   []string
}

// Question is the payload for one round: the destination's opaque id and
// the subset of clues disclosed to the player. Built fresh per request,
// never persisted.
type Question struct {
	DestinationID string   `json:"id"`
	Clues         []string `json:"clues"`
}

// Option is one candidate answer in a multiple-choice set. It carries
// display fields only; clues and feedback must not leak into it.
type Option struct {
	ID      string `json:"id"`
	City    string `json:"city"`
	Country string `json:"country"`
}

// Answer is the revealed city/country of the true destination.
type Answer struct {
	City    string `json:"city"`
	Country string `json:"country"`
}

// VerificationResult reports whether a guess was right, one piece of
// feedback text, and the true answer. CorrectAnswer is always populated
// so the client can show the right answer after a miss.
type VerificationResult struct {
	Correct       bool   `json:"correct"`
	Feedback      string `json:"feedback"`
	CorrectAnswer Answer `json:"correctAnswer"`
}

// Score is a user's running tally of correct and incorrect guesses.
type Score struct {
	Correct   int `json:"correct"`
	Incorrect int `json:"incorrect"`
}

// User is a registered player, keyed by username.
type User struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Score     Score  `json:"score"`
	CreatedAt string `json:"createdAt"`
}
