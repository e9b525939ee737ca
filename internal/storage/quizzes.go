package storage

import (
	"sort"

	"github.com/example/cybercalc/pkg/models"
)

// CreateQuiz stores a quiz completion record. The owner id is not checked.
func (s *MemStorage) CreateQuiz(userID int, difficulty models.Difficulty, score int, completedAt string) *models.Quiz {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.state.CurrentQuizID
	s.state.CurrentQuizID++
	quiz := models.Quiz{
		ID:          id,
		UserID:      userID,
		Difficulty:  difficulty,
		Score:       score,
		CompletedAt: completedAt,
	}
	s.state.Quizzes[id] = quiz
	s.persist()

	return &quiz
}

// GetQuizzesByUserID returns the user's quiz records in insertion order
func (s *MemStorage) GetQuizzesByUserID(userID int) []models.Quiz {
	s.mu.Lock()
	defer s.mu.Unlock()

	quizzes := make([]models.Quiz, 0)
	for _, quiz := range s.state.Quizzes {
		if quiz.UserID == userID {
			quizzes = append(quizzes, quiz)
		}
	}
	// Ids are assigned monotonically, so id order is insertion order
	sort.Slice(quizzes, func(i, j int) bool { return quizzes[i].ID < quizzes[j].ID })
	return quizzes
}
