package storage

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/hack-pad/hackpadfs"
	"github.com/hack-pad/hackpadfs/mem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/cybercalc/internal/database"
	"github.com/example/cybercalc/pkg/models"
)

var errDiskFull = errors.New("disk full")

// flakySnapshotter wraps a real snapshotter and fails Save while failing is set
type flakySnapshotter struct {
	database.Snapshotter
	mu      sync.Mutex
	failing bool
	saves   int
}

func (f *flakySnapshotter) Save(ctx context.Context, s *database.State) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saves++
	if f.failing {
		return errDiskFull
	}
	return f.Snapshotter.Save(ctx, s)
}

func (f *flakySnapshotter) setFailing(v bool) {
	f.mu.Lock()
	f.failing = v
	f.mu.Unlock()
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newFileSnapshotter(t *testing.T) *database.FileSnapshotter {
	t.Helper()
	fs, err := mem.NewFS()
	require.NoError(t, err)
	return database.NewFileSnapshotter(fs, "storage.json")
}

func newTestStorage(t *testing.T, snap database.Snapshotter) *MemStorage {
	t.Helper()
	return New(Config{Snapshotter: snap, Logger: discardLogger()})
}

func TestNew_SeedsWhenNothingPersisted(t *testing.T) {
	snap := newFileSnapshotter(t)
	s := newTestStorage(t, snap)

	users := s.ListUsers()
	require.Len(t, users, 7)
	assert.Equal(t, "MathWizard", users[0].Username)
	assert.Equal(t, 1250, users[0].Points)
	assert.Equal(t, "FunctionPro", users[6].Username)
	assert.Equal(t, 590, users[6].Points)
	for i, u := range users {
		assert.Equal(t, i+1, u.ID)
		assert.Equal(t, models.MaxLives, u.Lives)
	}

	// The seeded state is written immediately
	persisted, err := snap.Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, persisted.Users, 7)
	assert.Equal(t, 8, persisted.CurrentUserID)
	assert.Equal(t, 1, persisted.CurrentQuizID)
	assert.Equal(t, 1, persisted.CurrentChallengeID)
}

func TestNew_HashesSeedPasswords(t *testing.T) {
	s := New(Config{
		Snapshotter:  newFileSnapshotter(t),
		Logger:       discardLogger(),
		Seed:         []SeedUser{{Username: "alice", Password: "secret", Points: 5, Lives: 3}},
		HashPassword: func(p string) (string, error) { return "hashed:" + p, nil },
	})

	user, ok := s.GetUserByUsername("alice")
	require.True(t, ok)
	assert.Equal(t, "hashed:secret", user.Password)
}

func TestNew_RestoresPersistedState(t *testing.T) {
	snap := newFileSnapshotter(t)
	first := newTestStorage(t, snap)
	created, err := first.CreateUser("newbie", "pw")
	require.NoError(t, err)
	first.CreateQuiz(created.ID, models.DifficultyHard, 25, "2024-01-01T00:00:00Z")

	second := newTestStorage(t, snap)
	assert.Equal(t, first.Snapshot(), second.Snapshot())

	// Counters continue where they left off
	next, err := second.CreateUser("another", "pw")
	require.NoError(t, err)
	assert.Equal(t, 9, next.ID)
}

func TestNew_CorruptDocumentFallsBackToSeed(t *testing.T) {
	fs, err := mem.NewFS()
	require.NoError(t, err)
	require.NoError(t, hackpadfs.WriteFullFile(fs, "storage.json", []byte(`{"users":[[1]]`), 0644))

	s := newTestStorage(t, database.NewFileSnapshotter(fs, "storage.json"))
	assert.Len(t, s.ListUsers(), 7)
}

func TestFlushFailure_KeepsMemoryAuthoritative(t *testing.T) {
	snap := &flakySnapshotter{Snapshotter: newFileSnapshotter(t)}
	s := newTestStorage(t, snap)
	require.False(t, s.Dirty())

	snap.setFailing(true)
	user, err := s.CreateUser("offline", "pw")
	require.NoError(t, err)
	assert.True(t, s.Dirty())

	got, ok := s.GetUser(user.ID)
	require.True(t, ok)
	assert.Equal(t, "offline", got.Username)

	// Retrying while the backend is still down reports the error
	assert.ErrorIs(t, s.FlushIfDirty(context.Background()), errDiskFull)

	snap.setFailing(false)
	require.NoError(t, s.FlushIfDirty(context.Background()))
	assert.False(t, s.Dirty())

	restored := newTestStorage(t, snap.Snapshotter)
	_, ok = restored.GetUserByUsername("offline")
	assert.True(t, ok)
}

func TestFlushIfDirty_NoopWhenClean(t *testing.T) {
	snap := &flakySnapshotter{Snapshotter: newFileSnapshotter(t)}
	s := newTestStorage(t, snap)
	before := snap.saves

	require.NoError(t, s.FlushIfDirty(context.Background()))
	assert.Equal(t, before, snap.saves)
}

func TestEveryMutationFlushes(t *testing.T) {
	snap := &flakySnapshotter{Snapshotter: newFileSnapshotter(t)}
	s := newTestStorage(t, snap)
	before := snap.saves

	u, err := s.CreateUser("flusher", "pw")
	require.NoError(t, err)
	s.UpdateUserPoints(u.ID, 10)
	s.UpdateUserLives(u.ID, 2)
	s.CreateQuiz(u.ID, models.DifficultyEasy, 15, "2024-01-01T00:00:00Z")
	s.CreateChallenge(u.ID, 30, "2024-01-01T00:00:00Z")

	assert.Equal(t, before+5, snap.saves)

	// Reads never flush
	s.GetUser(u.ID)
	s.ListUsers()
	s.GetQuizzesByUserID(u.ID)
	assert.Equal(t, before+5, snap.saves)
}

func TestClose_FlushesPendingState(t *testing.T) {
	snap := &flakySnapshotter{Snapshotter: newFileSnapshotter(t)}
	s := newTestStorage(t, snap)

	snap.setFailing(true)
	_, err := s.CreateUser("late", "pw")
	require.NoError(t, err)

	snap.setFailing(false)
	require.NoError(t, s.Close())

	persisted, err := snap.Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, persisted.Users, 8)
}

func TestConcurrentMutations(t *testing.T) {
	s := newTestStorage(t, newFileSnapshotter(t))

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.UpdateUser(1, func(u *models.User) { u.Points += 10 })
		}()
	}
	wg.Wait()

	user, ok := s.GetUser(1)
	require.True(t, ok)
	assert.Equal(t, 1250+200, user.Points)
}
