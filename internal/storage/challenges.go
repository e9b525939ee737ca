package storage

import (
	"sort"

	"github.com/example/cybercalc/pkg/models"
)

// CreateChallenge stores a challenge completion record. The owner id is not checked.
func (s *MemStorage) CreateChallenge(userID, score int, completedAt string) *models.Challenge {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.state.CurrentChallengeID
	s.state.CurrentChallengeID++
	challenge := models.Challenge{
		ID:          id,
		UserID:      userID,
		Score:       score,
		CompletedAt: completedAt,
	}
	s.state.Challenges[id] = challenge
	s.persist()

	return &challenge
}

// GetChallengesByUserID returns the user's challenge records in insertion order
func (s *MemStorage) GetChallengesByUserID(userID int) []models.Challenge {
	s.mu.Lock()
	defer s.mu.Unlock()

	challenges := make([]models.Challenge, 0)
	for _, challenge := range s.state.Challenges {
		if challenge.UserID == userID {
			challenges = append(challenges, challenge)
		}
	}
	sort.Slice(challenges, func(i, j int) bool { return challenges[i].ID < challenges[j].ID })
	return challenges
}
