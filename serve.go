package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/spf13/cobra"

	"github.com/example/cybercalc/internal/auth"
	"github.com/example/cybercalc/internal/bot"
	"github.com/example/cybercalc/internal/config"
	"github.com/example/cybercalc/internal/database"
	"github.com/example/cybercalc/internal/handlers"
	"github.com/example/cybercalc/internal/leaderboard"
	"github.com/example/cybercalc/internal/questions"
	"github.com/example/cybercalc/internal/scheduler"
	"github.com/example/cybercalc/internal/scoring"
	sessionstore "github.com/example/cybercalc/internal/session"
	"github.com/example/cybercalc/internal/storage"
)

const shutdownTimeout = 5 * time.Second

// loadConfig reads the configuration and installs the default logger.
// The server logs JSON; one-shot commands log text.
func loadConfig(jsonLogs bool) (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load(envFile)
	if err != nil {
		return nil, nil, err
	}

	opts := &slog.HandlerOptions{Level: cfg.LogLevel}
	var handler slog.Handler = slog.NewTextHandler(os.Stderr, opts)
	if jsonLogs {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)
	return cfg, logger, nil
}

// openSnapshotter picks the persistence backend of the storage document
func openSnapshotter(cfg config.StorageConfig) (database.Snapshotter, error) {
	switch cfg.Backend {
	case config.BackendFile:
		return database.OpenFileSnapshotter(cfg.DataDir, cfg.File)
	case config.BackendSQLite:
		return database.OpenSQLSnapshotter(database.DriverSQLite, cfg.DatabaseURL)
	case config.BackendPostgres:
		return database.OpenSQLSnapshotter(database.DriverPostgres, cfg.DatabaseURL)
	case config.BackendMySQL:
		return database.OpenSQLSnapshotter(database.DriverMySQL, cfg.DatabaseURL)
	}
	return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
}

func openStore(cfg *config.Config, logger *slog.Logger) (*storage.MemStorage, error) {
	snap, err := openSnapshotter(cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s storage: %w", cfg.Storage.Backend, err)
	}
	return storage.New(storage.Config{
		Snapshotter:  snap,
		Logger:       logger,
		FlushTimeout: cfg.Storage.FlushTimeout,
		HashPassword: auth.HashPassword,
	}), nil
}

func loadBank(cfg *config.Config) (*questions.Bank, error) {
	if cfg.QuestionsFile == "" {
		return questions.Default()
	}
	return questions.LoadFile(filepath.Clean(cfg.QuestionsFile))
}

// newSessions keeps sessions in memory unless Redis is configured
func newSessions(cfg *config.Config) (*session.Store, func() error, error) {
	sessCfg := session.Config{
		Expiration:     cfg.Session.TTL,
		KeyLookup:      "cookie:session_id",
		CookieHTTPOnly: true,
		CookieSameSite: "Lax",
	}
	if !cfg.Redis.Enabled() {
		return session.New(sessCfg), func() error { return nil }, nil
	}

	redisStorage, err := sessionstore.NewRedisStorage(sessionstore.RedisConfig{
		Addr:     cfg.Redis.Address,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		return nil, nil, err
	}
	sessCfg.Storage = redisStorage
	return session.New(sessCfg), redisStorage.Close, nil
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, logger, err := loadConfig(true)
	if err != nil {
		return err
	}

	bank, err := loadBank(cfg)
	if err != nil {
		return err
	}

	store, err := openStore(cfg, logger)
	if err != nil {
		return err
	}

	sessions, closeSessions, err := newSessions(cfg)
	if err != nil {
		store.Close()
		return err
	}

	board := leaderboard.NewService(store)
	h := handlers.New(handlers.Deps{
		Store:       store,
		Scoring:     scoring.NewService(store, nil, logger),
		Leaderboard: board,
		Auth:        auth.NewService(store, logger),
		Gate:        auth.NewGate(sessions, store, logger),
		Questions:   bank,
		Logger:      logger,
	})
	app := handlers.NewApp(h, handlers.AppConfig{
		RateLimitPerMinute: cfg.Server.RateLimitPerMinute,
		AccessLog:          cfg.LogLevel <= slog.LevelDebug,
	})

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// The notifier stays a nil interface when Telegram is off
	var notifier scheduler.Notifier
	if cfg.Telegram.Enabled() {
		b, err := bot.New(bot.Config{Token: cfg.Telegram.Token, ChatID: cfg.Telegram.ChatID}, board, logger)
		if err != nil {
			logger.Error("telegram notifier disabled", "error", err)
		} else {
			notifier = b
			go b.Run(ctx)
		}
	}

	sched := scheduler.New(store, board, notifier, scheduler.Config{
		FlushRetryInterval: cfg.Scheduler.FlushRetryInterval,
		FlushTimeout:       cfg.Storage.FlushTimeout,
		DigestTime:         cfg.Scheduler.DigestTime,
		DigestSize:         cfg.Scheduler.DigestSize,
	}, logger)
	if err := sched.Start(); err != nil {
		closeSessions()
		store.Close()
		return err
	}

	listenErr := make(chan error, 1)
	go func() {
		logger.Info("server listening", "port", cfg.Server.Port, "backend", cfg.Storage.Backend)
		listenErr <- app.Listen(":" + cfg.Server.Port)
	}()

	var runErr error
	select {
	case sig := <-sigChan:
		logger.Info("received signal", "signal", sig.String())
	case runErr = <-listenErr:
		logger.Error("server stopped", "error", runErr)
	}

	cancel()
	sched.Stop()
	if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
		logger.Error("error during shutdown", "error", err)
	}

	err = errors.Join(runErr, store.Close(), closeSessions())
	logger.Info("shutdown complete")
	return err
}
