package scoring

import (
	"math"

	"github.com/example/cybercalc/pkg/models"
)

// Rules holds the scoring parameters
type Rules struct {
	// Multiplier applied to the raw quiz score, per difficulty
	Multipliers map[models.Difficulty]float64
	// Lives restored by a progress reset
	StartingLives int
}

// DefaultRules returns the standard multiplier table: easy 1.5, medium 2.0, hard 2.5
func DefaultRules() *Rules {
	return &Rules{
		Multipliers: map[models.Difficulty]float64{
			models.DifficultyEasy:   1.5,
			models.DifficultyMedium: 2.0,
			models.DifficultyHard:   2.5,
		},
		StartingLives: models.MaxLives,
	}
}

// QuizPoints converts a raw quiz score into awarded points.
// Halves round away from zero.
func (r *Rules) QuizPoints(difficulty models.Difficulty, raw int) (int, error) {
	mult, ok := r.Multipliers[difficulty]
	if !ok {
		return 0, ErrUnknownDifficulty
	}
	return int(math.Round(float64(raw) * mult)), nil
}
