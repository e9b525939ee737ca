package models

// MaxLives is the number of lives a user starts with and can never exceed.
const MaxLives = 3

// User represents a registered account
type User struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Password string `json:"password"` // scrypt material, never the plaintext
	Points   int    `json:"points"`
	Lives    int    `json:"lives"`
}

// PublicUser is the view of a User that is safe to send to clients
type PublicUser struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Points   int    `json:"points"`
	Lives    int    `json:"lives"`
}

// Public strips the credential from the user
func (u User) Public() PublicUser {
	return PublicUser{
		ID:       u.ID,
		Username: u.Username,
		Points:   u.Points,
		Lives:    u.Lives,
	}
}
