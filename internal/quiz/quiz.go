// Package quiz implements question composition, multiple-choice option
// building, and answer verification against a destination catalog.
package quiz

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/playgeo/globetrotter/internal/globetrotter"
)

// DistractorCount is the number of wrong options drawn for one question.
const DistractorCount = 3

// Catalog is the read-only destination store the quiz runs against.
type Catalog interface {
	// Count returns the total number of destinations.
	Count(ctx context.Context) (int, error)
	// RandomOne returns one destination chosen approximately uniformly.
	// Returns globetrotter.ErrNotFound when the catalog is empty.
	RandomOne(ctx context.Context) (globetrotter.Destination, error)
	// ByID returns the destination with the given id, or
	// globetrotter.ErrNotFound / globetrotter.ErrInvalidArgument.
	ByID(ctx context.Context, id string) (globetrotter.Destination, error)
	// SampleOthers returns up to n destinations distinct from excludeID
	// and from each other, in no particular order. When fewer than n
	// other destinations exist it returns all of them rather than
	// failing; callers get a smaller option set.
	SampleOthers(ctx context.Context, excludeID string, n int) ([]globetrotter.Destination, error)
}

// Service ties the three quiz operations to a catalog. All operations
// are read-only and safe for concurrent use.
type Service struct {
	catalog Catalog
}

func NewService(catalog Catalog) *Service {
	return &Service{catalog: catalog}
}

// RandomQuestion picks a random destination and composes a question
// from it.
func (s *Service) RandomQuestion(ctx context.Context) (globetrotter.Question, error) {
	dest, err := s.catalog.RandomOne(ctx)
	if err != nil {
		return globetrotter.Question{}, fmt.Errorf("picking destination: %w", err)
	}
	return ComposeQuestion(dest), nil
}

// ComposeQuestion discloses 1 or 2 of the destination's clues, chosen
// uniformly and independently per call. A destination with a single
// clue yields that clue; the choice never prefers earlier clues.
func ComposeQuestion(dest globetrotter.Destination) globetrotter.Question {
	k := rand.IntN(2) + 1
	if k > len(dest.Clues) {
		k = len(dest.Clues)
	}

	clues := make([]string, 0, k)
	for _, i := range rand.Perm(len(dest.Clues))[:k] {
		clues = append(clues, dest.Clues[i])
	}

	return globetrotter.Question{
		DestinationID: dest.ID,
		Clues:         clues,
	}
}

// BuildOptions returns a shuffled multiple-choice set for the given
// destination: the correct entry plus up to DistractorCount distinct
// distractors. Exactly one option's id equals destinationID.
//
// Note that the correct option's id is the same token handed out with
// the question, so a client inspecting the payload can derive the
// answer. That is the established wire contract; anything stricter
// would break existing clients.
func (s *Service) BuildOptions(ctx context.Context, destinationID string) ([]globetrotter.Option, error) {
	target, err := s.catalog.ByID(ctx, destinationID)
	if err != nil {
		return nil, fmt.Errorf("looking up destination: %w", err)
	}

	others, err := s.catalog.SampleOthers(ctx, destinationID, DistractorCount)
	if err != nil {
		return nil, fmt.Errorf("sampling distractors: %w", err)
	}

	options := make([]globetrotter.Option, 0, len(others)+1)
	options = append(options, globetrotter.Option{
		ID:      target.ID,
		City:    target.City,
		Country: target.Country,
	})
	for _, d := range others {
		options = append(options, globetrotter.Option{
			ID:      d.ID,
			City:    d.City,
			Country: d.Country,
		})
	}

	// Fisher-Yates via rand.Shuffle; the correct option must not have a
	// positional bias.
	rand.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})

	return options, nil
}

// Verify checks a submitted answer against the stored destination.
// Correctness is decided on identifiers only, never on display strings.
// Feedback is drawn uniformly per call from the destination's fun facts
// (correct) or trivia (incorrect); CorrectAnswer always carries the
// true city and country.
func (s *Service) Verify(ctx context.Context, destinationID, answerID string) (globetrotter.VerificationResult, error) {
	destinationID = strings.TrimSpace(destinationID)
	answerID = strings.TrimSpace(answerID)
	if destinationID == "" || answerID == "" {
		return globetrotter.VerificationResult{},
			fmt.Errorf("destinationId and answerId are required: %w", globetrotter.ErrInvalidArgument)
	}

	dest, err := s.catalog.ByID(ctx, destinationID)
	if err != nil {
		return globetrotter.VerificationResult{}, fmt.Errorf("looking up destination: %w", err)
	}

	correct := answerID == dest.ID

	pool := dest.Trivia
	if correct {
		pool = dest.FunFacts
	}
	feedback := ""
	if len(pool) > 0 {
		feedback = pool[rand.IntN(len(pool))]
	}

	return globetrotter.VerificationResult{
		Correct:  correct,
		Feedback: feedback,
		CorrectAnswer: globetrotter.Answer{
			City:    dest.City,
			Country: dest.Country,
		},
	}, nil
}
