package storage

import "github.com/example/cybercalc/pkg/models"

// SeedUser is a demonstration account created when there is no persisted state
type SeedUser struct {
	Username string
	Password string
	Points   int
	Lives    int
}

// DefaultSeedUsers returns the demonstration accounts shown on a fresh leaderboard
func DefaultSeedUsers() []SeedUser {
	return []SeedUser{
		{Username: "MathWizard", Password: "password", Points: 1250, Lives: models.MaxLives},
		{Username: "DerivativeNinja", Password: "password", Points: 980, Lives: models.MaxLives},
		{Username: "CalculusKing", Password: "password", Points: 875, Lives: models.MaxLives},
		{Username: "DeltaMaster", Password: "password", Points: 740, Lives: models.MaxLives},
		{Username: "DerivativeQueen", Password: "password", Points: 685, Lives: models.MaxLives},
		{Username: "IntegralHero", Password: "password", Points: 620, Lives: models.MaxLives},
		{Username: "FunctionPro", Password: "password", Points: 590, Lives: models.MaxLives},
	}
}

// seed materializes the seed accounts into an empty state
func (s *MemStorage) seed(users []SeedUser, hash func(string) (string, error)) {
	for _, su := range users {
		password := su.Password
		if hash != nil {
			hashed, err := hash(su.Password)
			if err != nil {
				s.log.Error("failed to hash seed password", "username", su.Username, "error", err)
				continue
			}
			password = hashed
		}

		id := s.state.CurrentUserID
		s.state.CurrentUserID++
		s.state.Users[id] = models.User{
			ID:       id,
			Username: su.Username,
			Password: password,
			Points:   su.Points,
			Lives:    su.Lives,
		}
	}
	s.log.Info("seeded demonstration accounts", "count", len(s.state.Users))
}
