// Package questions serves the quiz and challenge question banks.
package questions

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"os"

	"github.com/example/cybercalc/pkg/models"
)

// DifficultyAll selects every quiz question
const DifficultyAll = "all"

// ErrUnknownDifficulty is returned for a filter other than "all" or a known difficulty
var ErrUnknownDifficulty = errors.New("unknown difficulty filter")

//go:embed bank.json
var embeddedBank []byte

// Bank holds the quiz and challenge questions
type Bank struct {
	Quiz       []models.QuizQuestion      `json:"quiz"`
	Challenges []models.ChallengeQuestion `json:"challenges"`
}

// Default returns the built-in question bank
func Default() (*Bank, error) {
	return Parse(embeddedBank)
}

// LoadFile reads a bank from a JSON file
func LoadFile(path string) (*Bank, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read question bank: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a JSON bank
func Parse(data []byte) (*Bank, error) {
	var b Bank
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("failed to decode question bank: %w", err)
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return &b, nil
}

// Validate checks that every question has a difficulty or point value and that its
// correct option exists
func (b *Bank) Validate() error {
	for _, q := range b.Quiz {
		if !q.Difficulty.Valid() {
			return fmt.Errorf("quiz question %d: %w: %q", q.ID, ErrUnknownDifficulty, q.Difficulty)
		}
		if !hasOption(q.Options, q.CorrectOptionID) {
			return fmt.Errorf("quiz question %d: correct option %q not among options", q.ID, q.CorrectOptionID)
		}
	}
	for _, q := range b.Challenges {
		if q.Points <= 0 {
			return fmt.Errorf("challenge question %d: points must be positive", q.ID)
		}
		if !hasOption(q.Options, q.CorrectOptionID) {
			return fmt.Errorf("challenge question %d: correct option %q not among options", q.ID, q.CorrectOptionID)
		}
	}
	return nil
}

func hasOption(options []models.Option, id string) bool {
	for _, o := range options {
		if o.ID == id {
			return true
		}
	}
	return false
}

// QuizQuestions returns the quiz questions of one difficulty, or all of them for "all"
// and the empty filter
func (b *Bank) QuizQuestions(difficulty string) ([]models.QuizQuestion, error) {
	if difficulty == "" || difficulty == DifficultyAll {
		return append([]models.QuizQuestion(nil), b.Quiz...), nil
	}

	d := models.Difficulty(difficulty)
	if !d.Valid() {
		return nil, ErrUnknownDifficulty
	}
	filtered := make([]models.QuizQuestion, 0)
	for _, q := range b.Quiz {
		if q.Difficulty == d {
			filtered = append(filtered, q)
		}
	}
	return filtered, nil
}

// ChallengeQuestions returns every challenge question
func (b *Bank) ChallengeQuestions() []models.ChallengeQuestion {
	return append([]models.ChallengeQuestion(nil), b.Challenges...)
}

// Draw shuffles the questions and keeps at most count of them.
// A count <= 0 keeps every question.
func Draw[T any](questions []T, count int, rnd *rand.Rand) []T {
	drawn := append([]T(nil), questions...)
	rnd.Shuffle(len(drawn), func(i, j int) {
		drawn[i], drawn[j] = drawn[j], drawn[i]
	})
	if count > 0 && len(drawn) > count {
		drawn = drawn[:count]
	}
	return drawn
}
