package models

// UserProgress is the points/lives projection of a user. It is derived, never stored.
type UserProgress struct {
	UserID int `json:"userId"`
	Points int `json:"points"`
	Lives  int `json:"lives"`
}

// Progress derives the progress projection of the user
func (u User) Progress() UserProgress {
	return UserProgress{
		UserID: u.ID,
		Points: u.Points,
		Lives:  u.Lives,
	}
}
