package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/cybercalc/pkg/models"
)

func TestCreateQuiz(t *testing.T) {
	s := newTestStorage(t, newFileSnapshotter(t))

	first := s.CreateQuiz(1, models.DifficultyMedium, 20, "2024-03-01T10:00:00Z")
	second := s.CreateQuiz(2, models.DifficultyEasy, 15, "2024-03-01T11:00:00Z")
	third := s.CreateQuiz(1, models.DifficultyHard, 25, "2024-03-01T12:00:00Z")

	assert.Equal(t, 1, first.ID)
	assert.Equal(t, 2, second.ID)
	assert.Equal(t, 3, third.ID)

	quizzes := s.GetQuizzesByUserID(1)
	require.Len(t, quizzes, 2)
	assert.Equal(t, *first, quizzes[0])
	assert.Equal(t, *third, quizzes[1])
}

func TestCreateQuiz_UnknownOwnerAccepted(t *testing.T) {
	s := newTestStorage(t, newFileSnapshotter(t))

	quiz := s.CreateQuiz(999, models.DifficultyEasy, 10, "2024-03-01T10:00:00Z")
	assert.Equal(t, 999, quiz.UserID)
	assert.Len(t, s.GetQuizzesByUserID(999), 1)
}

func TestGetQuizzesByUserID_Empty(t *testing.T) {
	s := newTestStorage(t, newFileSnapshotter(t))

	quizzes := s.GetQuizzesByUserID(1)
	assert.NotNil(t, quizzes)
	assert.Empty(t, quizzes)
}

func TestCreateChallenge(t *testing.T) {
	s := newTestStorage(t, newFileSnapshotter(t))

	first := s.CreateChallenge(3, 40, "2024-03-01T10:00:00Z")
	s.CreateChallenge(4, 35, "2024-03-01T10:05:00Z")
	third := s.CreateChallenge(3, 50, "2024-03-01T10:10:00Z")

	assert.Equal(t, 1, first.ID)
	assert.Equal(t, 3, third.ID)

	challenges := s.GetChallengesByUserID(3)
	require.Len(t, challenges, 2)
	assert.Equal(t, 40, challenges[0].Score)
	assert.Equal(t, 50, challenges[1].Score)

	assert.Empty(t, s.GetChallengesByUserID(1))
}

func TestRecordCountersIndependent(t *testing.T) {
	s := newTestStorage(t, newFileSnapshotter(t))

	s.CreateQuiz(1, models.DifficultyEasy, 10, "2024-03-01T10:00:00Z")
	s.CreateQuiz(1, models.DifficultyEasy, 10, "2024-03-01T10:00:00Z")
	challenge := s.CreateChallenge(1, 30, "2024-03-01T10:00:00Z")
	assert.Equal(t, 1, challenge.ID)

	snap := s.Snapshot()
	assert.Equal(t, 3, snap.CurrentQuizID)
	assert.Equal(t, 2, snap.CurrentChallengeID)
}
