package scoring

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/hack-pad/hackpadfs/mem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/cybercalc/internal/database"
	"github.com/example/cybercalc/internal/storage"
	"github.com/example/cybercalc/pkg/models"
)

var fixedNow = time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC)

func newTestService(t *testing.T) (*Service, *storage.MemStorage) {
	t.Helper()
	fs, err := mem.NewFS()
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := storage.New(storage.Config{
		Snapshotter: database.NewFileSnapshotter(fs, "storage.json"),
		Logger:      logger,
	})
	svc := NewService(store, nil, logger)
	svc.now = func() time.Time { return fixedNow }
	return svc, store
}

func TestAwardQuizCompletion(t *testing.T) {
	tests := []struct {
		difficulty models.Difficulty
		want       int
	}{
		{models.DifficultyEasy, 150},
		{models.DifficultyMedium, 200},
		{models.DifficultyHard, 250},
	}

	for _, tt := range tests {
		t.Run(string(tt.difficulty), func(t *testing.T) {
			svc, store := newTestService(t)
			bob, err := store.CreateUser("bob", "x")
			require.NoError(t, err)

			quiz, err := svc.AwardQuizCompletion(bob.ID, tt.difficulty, 100)
			require.NoError(t, err)
			assert.Equal(t, tt.want, quiz.Score)
			assert.Equal(t, tt.difficulty, quiz.Difficulty)
			assert.Equal(t, "2024-05-01T12:30:00Z", quiz.CompletedAt)

			user, _ := store.GetUser(bob.ID)
			assert.Equal(t, tt.want, user.Points)
			assert.Equal(t, []models.Quiz{*quiz}, store.GetQuizzesByUserID(bob.ID))
		})
	}
}

func TestAwardQuizCompletion_Accumulates(t *testing.T) {
	svc, store := newTestService(t)

	_, err := svc.AwardQuizCompletion(1, models.DifficultyEasy, 10)
	require.NoError(t, err)
	_, err = svc.AwardQuizCompletion(1, models.DifficultyMedium, 10)
	require.NoError(t, err)

	user, _ := store.GetUser(1)
	assert.Equal(t, 1250+15+20, user.Points)
}

func TestAwardQuizCompletion_Errors(t *testing.T) {
	svc, store := newTestService(t)

	_, err := svc.AwardQuizCompletion(404, models.DifficultyEasy, 10)
	assert.ErrorIs(t, err, ErrUserNotFound)
	assert.Empty(t, store.GetQuizzesByUserID(404))

	_, err = svc.AwardQuizCompletion(1, "impossible", 10)
	assert.ErrorIs(t, err, ErrUnknownDifficulty)
	assert.Empty(t, store.GetQuizzesByUserID(1))
	user, _ := store.GetUser(1)
	assert.Equal(t, 1250, user.Points)
}

func TestAwardChallengeCompletion(t *testing.T) {
	svc, store := newTestService(t)
	bob, err := store.CreateUser("bob", "x")
	require.NoError(t, err)

	challenge, err := svc.AwardChallengeCompletion(bob.ID, 30)
	require.NoError(t, err)
	assert.Equal(t, bob.ID, challenge.UserID)
	assert.Equal(t, 30, challenge.Score)

	user, _ := store.GetUser(bob.ID)
	assert.Equal(t, 30, user.Points)

	_, err = svc.AwardChallengeCompletion(404, 30)
	assert.ErrorIs(t, err, ErrUserNotFound)
	assert.Empty(t, store.GetChallengesByUserID(404))
}

func TestLoseLife(t *testing.T) {
	svc, _ := newTestService(t)

	for want := models.MaxLives - 1; want >= 0; want-- {
		user, err := svc.LoseLife(2)
		require.NoError(t, err)
		assert.Equal(t, want, user.Lives)
	}

	// Floored at zero
	user, err := svc.LoseLife(2)
	require.NoError(t, err)
	assert.Equal(t, 0, user.Lives)

	_, err = svc.LoseLife(404)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestResetProgress(t *testing.T) {
	svc, store := newTestService(t)
	store.UpdateUserLives(3, 0)

	user, err := svc.ResetProgress(3)
	require.NoError(t, err)
	assert.Equal(t, 0, user.Points)
	assert.Equal(t, models.MaxLives, user.Lives)

	_, err = svc.ResetProgress(404)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestProgress(t *testing.T) {
	svc, _ := newTestService(t)

	progress, err := svc.Progress(1)
	require.NoError(t, err)
	assert.Equal(t, models.UserProgress{UserID: 1, Points: 1250, Lives: 3}, *progress)

	_, err = svc.Progress(404)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
