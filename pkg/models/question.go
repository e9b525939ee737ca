package models

// Option is one answer choice of a question. Formula is LaTeX.
type Option struct {
	ID      string `json:"id"`
	Formula string `json:"formula"`
}

// QuizQuestion is a multiple choice question of the quiz bank
type QuizQuestion struct {
	ID              int        `json:"id"`
	Question        string     `json:"question"`
	Formula         string     `json:"formula"`
	Options         []Option   `json:"options"`
	CorrectOptionID string     `json:"correctOptionId"`
	Explanation     string     `json:"explanation"`
	Difficulty      Difficulty `json:"difficulty"`
}

// ChallengeQuestion is a question of the challenge bank, worth a fixed number of points
type ChallengeQuestion struct {
	ID              int      `json:"id"`
	Question        string   `json:"question"`
	Formula         string   `json:"formula"`
	Options         []Option `json:"options"`
	CorrectOptionID string   `json:"correctOptionId"`
	Explanation     string   `json:"explanation"`
	Points          int      `json:"points"`
}
