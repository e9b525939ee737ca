// Package leaderboard ranks users by points.
package leaderboard

import (
	"sort"

	"github.com/example/cybercalc/pkg/models"
)

// DefaultLimit is the number of entries returned when no limit is given
const DefaultLimit = 10

// UserLister lists every registered user
type UserLister interface {
	ListUsers() []models.User
}

// Top orders users by points descending, ties by id ascending, and keeps at most
// limit entries. A limit <= 0 yields an empty list.
func Top(users []models.User, limit int) []models.LeaderboardEntry {
	if limit <= 0 {
		return []models.LeaderboardEntry{}
	}

	ranked := rank(users)
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}

	entries := make([]models.LeaderboardEntry, len(ranked))
	for i, u := range ranked {
		entries[i] = models.LeaderboardEntry{
			ID:       u.ID,
			Username: u.Username,
			Points:   u.Points,
			Rank:     i + 1, // 1-indexed rank
		}
	}
	return entries
}

// rank returns a sorted copy; the input is not modified
func rank(users []models.User) []models.User {
	sorted := make([]models.User, len(users))
	copy(sorted, users)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Points != sorted[j].Points {
			return sorted[i].Points > sorted[j].Points
		}
		return sorted[i].ID < sorted[j].ID
	})
	return sorted
}

// Service derives the leaderboard from the current users
type Service struct {
	users UserLister
}

// NewService creates a leaderboard service
func NewService(users UserLister) *Service {
	return &Service{users: users}
}

// Top returns the top limit users
func (s *Service) Top(limit int) []models.LeaderboardEntry {
	return Top(s.users.ListUsers(), limit)
}

// Rank returns the 1-indexed position of the user, or false if it does not exist
func (s *Service) Rank(userID int) (int, bool) {
	for i, u := range rank(s.users.ListUsers()) {
		if u.ID == userID {
			return i + 1, true
		}
	}
	return 0, false
}
