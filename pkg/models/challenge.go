package models

// Challenge is the record of one completed challenge
type Challenge struct {
	ID          int    `json:"id"`
	UserID      int    `json:"userId"`
	Score       int    `json:"score"`
	CompletedAt string `json:"completedAt"` // RFC 3339
}
