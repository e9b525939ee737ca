// Package scoring turns quiz and challenge completions into points and lives changes.
package scoring

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/example/cybercalc/internal/metrics"
	"github.com/example/cybercalc/pkg/models"
)

var (
	// ErrUserNotFound is returned when the account does not exist
	ErrUserNotFound = errors.New("user not found")
	// ErrUnknownDifficulty is returned for a difficulty outside easy, medium, hard
	ErrUnknownDifficulty = errors.New("unknown difficulty")
)

// Store is the subset of the entity store used by scoring
type Store interface {
	GetUser(id int) (*models.User, bool)
	UpdateUser(id int, fn func(user *models.User)) (*models.User, bool)
	AddUserPoints(id, delta int) (*models.User, bool)
	CreateQuiz(userID int, difficulty models.Difficulty, score int, completedAt string) *models.Quiz
	CreateChallenge(userID, score int, completedAt string) *models.Challenge
}

// Service applies the scoring rules to the store
type Service struct {
	store Store
	rules *Rules
	log   *slog.Logger
	now   func() time.Time
}

// NewService creates a scoring service. A nil rules uses DefaultRules.
func NewService(store Store, rules *Rules, logger *slog.Logger) *Service {
	if rules == nil {
		rules = DefaultRules()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		store: store,
		rules: rules,
		log:   logger.With("component", "scoring"),
		now:   time.Now,
	}
}

func (s *Service) timestamp() string {
	return s.now().UTC().Format(time.RFC3339)
}

// AwardQuizCompletion multiplies the raw score by the difficulty multiplier, adds it to
// the user's points and stores a quiz record holding the final score
func (s *Service) AwardQuizCompletion(userID int, difficulty models.Difficulty, raw int) (*models.Quiz, error) {
	points, err := s.rules.QuizPoints(difficulty, raw)
	if err != nil {
		return nil, fmt.Errorf("failed to score quiz %q: %w", difficulty, err)
	}

	user, ok := s.store.AddUserPoints(userID, points)
	if !ok {
		return nil, ErrUserNotFound
	}
	quiz := s.store.CreateQuiz(userID, difficulty, points, s.timestamp())

	metrics.CompletionsTotal.WithLabelValues("quiz", string(difficulty)).Inc()
	metrics.PointsAwarded.WithLabelValues("quiz").Add(float64(points))
	s.log.Info("quiz completed",
		"user_id", userID,
		"difficulty", difficulty,
		"raw_score", raw,
		"points", points,
		"total", user.Points)

	return quiz, nil
}

// AwardChallengeCompletion adds the raw challenge score to the user's points and stores
// a challenge record
func (s *Service) AwardChallengeCompletion(userID, raw int) (*models.Challenge, error) {
	user, ok := s.store.AddUserPoints(userID, raw)
	if !ok {
		return nil, ErrUserNotFound
	}
	challenge := s.store.CreateChallenge(userID, raw, s.timestamp())

	metrics.CompletionsTotal.WithLabelValues("challenge", "").Inc()
	metrics.PointsAwarded.WithLabelValues("challenge").Add(float64(raw))
	s.log.Info("challenge completed", "user_id", userID, "points", raw, "total", user.Points)

	return challenge, nil
}

// LoseLife takes one life for an incorrect answer. Lives never go below zero.
func (s *Service) LoseLife(userID int) (*models.User, error) {
	lost := false
	user, ok := s.store.UpdateUser(userID, func(u *models.User) {
		if u.Lives > 0 {
			u.Lives--
			lost = true
		}
	})
	if !ok {
		return nil, ErrUserNotFound
	}
	if lost {
		metrics.LivesLost.Inc()
	}
	return user, nil
}

// ResetProgress restarts a user who ran out of lives: full lives and zero points
func (s *Service) ResetProgress(userID int) (*models.User, error) {
	user, ok := s.store.UpdateUser(userID, func(u *models.User) {
		u.Lives = s.rules.StartingLives
		u.Points = 0
	})
	if !ok {
		return nil, ErrUserNotFound
	}
	s.log.Info("progress reset", "user_id", userID)
	return user, nil
}

// Progress returns the points/lives projection of the user
func (s *Service) Progress(userID int) (*models.UserProgress, error) {
	user, ok := s.store.GetUser(userID)
	if !ok {
		return nil, ErrUserNotFound
	}
	progress := user.Progress()
	return &progress, nil
}
