package models

// Difficulty is one of the three quiz difficulty tiers
type Difficulty string

const (
	// DifficultyEasy is the lowest tier
	DifficultyEasy Difficulty = "easy"
	// DifficultyMedium is the middle tier
	DifficultyMedium Difficulty = "medium"
	// DifficultyHard is the highest tier
	DifficultyHard Difficulty = "hard"
)

// Difficulties lists the tiers in ascending order
var Difficulties = []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard}

// Valid reports whether d is a known tier
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// Quiz is the record of one completed quiz session
type Quiz struct {
	ID          int        `json:"id"`
	UserID      int        `json:"userId"`
	Difficulty  Difficulty `json:"difficulty"`
	Score       int        `json:"score"`       // Final score, after the difficulty multiplier
	CompletedAt string     `json:"completedAt"` // RFC 3339
}
