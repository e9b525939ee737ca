package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/example/cybercalc/pkg/models"
)

// Defaults used when Config leaves a field empty
const (
	DefaultFlushRetryInterval = time.Minute
	DefaultDigestTime         = "20:00"
	DefaultDigestSize         = 5
	defaultFlushTimeout       = 5 * time.Second
)

// Notifier sends the leaderboard digest
type Notifier interface {
	SendLeaderboardDigest(entries []models.LeaderboardEntry) error
}

// Flusher retries persistence after a failed flush
type Flusher interface {
	FlushIfDirty(ctx context.Context) error
}

// Leaderboard returns the current top entries
type Leaderboard interface {
	Top(limit int) []models.LeaderboardEntry
}

// Config holds the job settings
type Config struct {
	FlushRetryInterval time.Duration
	FlushTimeout       time.Duration
	DigestTime         string // HH:MM, UTC
	DigestSize         int
}

// Scheduler manages scheduled tasks for the application
type Scheduler struct {
	scheduler *gocron.Scheduler
	store     Flusher
	board     Leaderboard
	notifier  Notifier
	cfg       Config
	log       *slog.Logger
}

// New creates a new scheduler instance. A nil notifier disables the digest job.
func New(store Flusher, board Leaderboard, notifier Notifier, cfg Config, logger *slog.Logger) *Scheduler {
	if cfg.FlushRetryInterval <= 0 {
		cfg.FlushRetryInterval = DefaultFlushRetryInterval
	}
	if cfg.FlushTimeout <= 0 {
		cfg.FlushTimeout = defaultFlushTimeout
	}
	if cfg.DigestTime == "" {
		cfg.DigestTime = DefaultDigestTime
	}
	if cfg.DigestSize <= 0 {
		cfg.DigestSize = DefaultDigestSize
	}
	if logger == nil {
		logger = slog.Default()
	}

	s := gocron.NewScheduler(time.UTC)
	s.SingletonModeAll()
	return &Scheduler{
		scheduler: s,
		store:     store,
		board:     board,
		notifier:  notifier,
		cfg:       cfg,
		log:       logger.With("component", "scheduler"),
	}
}

// Start registers the jobs and runs them in the background
func (s *Scheduler) Start() error {
	if _, err := s.scheduler.Every(s.cfg.FlushRetryInterval).Do(s.retryFlush); err != nil {
		return fmt.Errorf("failed to schedule flush retry: %w", err)
	}

	if s.notifier != nil {
		if _, err := s.scheduler.Every(1).Day().At(s.cfg.DigestTime).Do(s.sendDigest); err != nil {
			return fmt.Errorf("failed to schedule digest at %q: %w", s.cfg.DigestTime, err)
		}
	}

	s.scheduler.StartAsync()
	s.log.Info("scheduler started",
		"flush_retry_interval", s.cfg.FlushRetryInterval,
		"digest", s.notifier != nil,
		"digest_time", s.cfg.DigestTime)
	return nil
}

// Stop terminates all scheduled tasks
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

// retryFlush persists the state if the last flush failed
func (s *Scheduler) retryFlush() {
	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.FlushTimeout)
	defer cancel()

	if err := s.store.FlushIfDirty(ctx); err != nil {
		s.log.Warn("flush retry failed", "error", err)
	}
}

// sendDigest posts the current top entries through the notifier
func (s *Scheduler) sendDigest() {
	if err := s.RunDigest(); err != nil {
		s.log.Error("failed to send leaderboard digest", "error", err)
	}
}

// RunDigest sends the digest immediately
func (s *Scheduler) RunDigest() error {
	if s.notifier == nil {
		return nil
	}

	entries := s.board.Top(s.cfg.DigestSize)
	if len(entries) == 0 {
		s.log.Info("leaderboard empty, skipping digest")
		return nil
	}
	if err := s.notifier.SendLeaderboardDigest(entries); err != nil {
		return err
	}
	s.log.Info("sent leaderboard digest", "entries", len(entries))
	return nil
}
