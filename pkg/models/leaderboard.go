package models

// LeaderboardEntry is one ranked row of the leaderboard
type LeaderboardEntry struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Points   int    `json:"points"`
	Rank     int    `json:"rank"` // 1-indexed
}
