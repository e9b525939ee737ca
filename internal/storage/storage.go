// Package storage is the in-memory entity store. Every mutation flushes the whole
// state through a database.Snapshotter before returning.
package storage

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/example/cybercalc/internal/database"
	"github.com/example/cybercalc/internal/metrics"
)

// DefaultFlushTimeout bounds a single flush when Config.FlushTimeout is zero
const DefaultFlushTimeout = 5 * time.Second

// Config configures a MemStorage
type Config struct {
	// Snapshotter persists the state. Required.
	Snapshotter database.Snapshotter
	Logger      *slog.Logger
	// FlushTimeout bounds every flush
	FlushTimeout time.Duration
	// Seed replaces DefaultSeedUsers when there is no prior state
	Seed []SeedUser
	// HashPassword turns seed passwords into stored credentials. Nil stores them as given.
	HashPassword func(password string) (string, error)
}

// MemStorage keeps accounts, quiz records and challenge records in memory.
// A single mutex serializes every operation together with its flush.
type MemStorage struct {
	mu           sync.Mutex
	state        *database.State
	snap         database.Snapshotter
	log          *slog.Logger
	flushTimeout time.Duration
	dirty        bool
}

// New restores the store from the snapshotter, or seeds and persists a fresh state
// when nothing usable was persisted
func New(cfg Config) *MemStorage {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	timeout := cfg.FlushTimeout
	if timeout <= 0 {
		timeout = DefaultFlushTimeout
	}

	s := &MemStorage{
		snap:         cfg.Snapshotter,
		log:          logger.With("component", "storage"),
		flushTimeout: timeout,
	}

	if saved := s.loadState(); saved != nil {
		s.state = saved
		s.log.Info("restored state",
			"users", len(saved.Users),
			"quizzes", len(saved.Quizzes),
			"challenges", len(saved.Challenges))
		return s
	}

	seed := cfg.Seed
	if seed == nil {
		seed = DefaultSeedUsers()
	}
	s.state = database.NewState()
	s.seed(seed, cfg.HashPassword)

	s.mu.Lock()
	s.persist()
	s.mu.Unlock()
	return s
}

// loadState reads the persisted document. Any failure is logged and treated as absence.
func (s *MemStorage) loadState() *database.State {
	ctx, cancel := context.WithTimeout(context.Background(), s.flushTimeout)
	defer cancel()

	st, err := s.snap.Load(ctx)
	if errors.Is(err, database.ErrNoSnapshot) {
		s.log.Info("no persisted state, seeding")
		return nil
	}
	if err != nil {
		s.log.Error("failed to load state, seeding a fresh one", "error", err)
		return nil
	}
	return st
}

// persist flushes the whole state. Must be called with s.mu held.
// I/O errors are logged and leave the store dirty; they never reach the caller.
func (s *MemStorage) persist() {
	ctx, cancel := context.WithTimeout(context.Background(), s.flushTimeout)
	defer cancel()

	if err := s.save(ctx); err != nil {
		s.log.Error("failed to save state", "error", err)
	}
}

func (s *MemStorage) save(ctx context.Context) error {
	start := time.Now()
	err := s.snap.Save(ctx, s.state)
	metrics.StorageFlushDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		s.dirty = true
		metrics.StorageFlushes.WithLabelValues("error").Inc()
		metrics.StorageFlushFailures.Inc()
		return err
	}
	s.dirty = false
	metrics.StorageFlushes.WithLabelValues("ok").Inc()
	return nil
}

// Flush persists the state now and reports the outcome
func (s *MemStorage) Flush(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(ctx)
}

// FlushIfDirty retries persistence after a failed flush. It is a no-op when the
// last flush succeeded.
func (s *MemStorage) FlushIfDirty(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.dirty {
		return nil
	}
	if err := s.save(ctx); err != nil {
		return err
	}
	s.log.Info("recovered pending flush")
	return nil
}

// Dirty reports whether the last flush failed
func (s *MemStorage) Dirty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dirty
}

// Snapshot returns a deep copy of the current state
func (s *MemStorage) Snapshot() *database.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// Close makes a final flush attempt and releases the snapshotter
func (s *MemStorage) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var flushErr error
	if s.dirty {
		ctx, cancel := context.WithTimeout(context.Background(), s.flushTimeout)
		flushErr = s.save(ctx)
		cancel()
	}
	return errors.Join(flushErr, s.snap.Close())
}
