// Package config loads the service settings from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Storage backends
const (
	BackendFile     = "file"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
	BackendMySQL    = "mysql"
)

type Config struct {
	Server    ServerConfig
	Storage   StorageConfig
	Session   SessionConfig
	Redis     RedisConfig
	Telegram  TelegramConfig
	Scheduler SchedulerConfig
	// Optional JSON bank replacing the built-in questions
	QuestionsFile string
	LogLevel      slog.Level
}

type ServerConfig struct {
	Port               string
	RateLimitPerMinute int
}

type StorageConfig struct {
	Backend      string
	DataDir      string
	File         string
	DatabaseURL  string
	FlushTimeout time.Duration
}

type SessionConfig struct {
	TTL time.Duration
}

type RedisConfig struct {
	Address  string
	Password string
	DB       int
}

// Enabled reports whether sessions should be kept in Redis
func (r RedisConfig) Enabled() bool {
	return r.Address != ""
}

type TelegramConfig struct {
	Token  string
	ChatID int64
}

// Enabled reports whether the Telegram notifier should run
func (t TelegramConfig) Enabled() bool {
	return t.Token != ""
}

type SchedulerConfig struct {
	FlushRetryInterval time.Duration
	DigestTime         string
	DigestSize         int
}

// Load reads an optional .env file and then the environment.
// Variables already set in the environment win over the file.
func Load(envFiles ...string) (*Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load env file: %w", err)
	}

	var errs []error
	cfg := &Config{
		Server: ServerConfig{
			Port:               getEnv("PORT", "5000"),
			RateLimitPerMinute: getEnvAsInt("RATE_LIMIT_PER_MINUTE", 120, &errs),
		},
		Storage: StorageConfig{
			Backend:      strings.ToLower(getEnv("STORAGE_BACKEND", BackendFile)),
			DataDir:      getEnv("DATA_DIR", "data"),
			File:         getEnv("STORAGE_FILE", "storage.json"),
			DatabaseURL:  getEnv("DATABASE_URL", "data/cybercalc.db"),
			FlushTimeout: getEnvAsDuration("STORAGE_FLUSH_TIMEOUT", 5*time.Second, &errs),
		},
		Session: SessionConfig{
			TTL: getEnvAsDuration("SESSION_TTL", 24*time.Hour, &errs),
		},
		Redis: RedisConfig{
			Address:  getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0, &errs),
		},
		Telegram: TelegramConfig{
			Token:  getEnv("TELEGRAM_BOT_TOKEN", ""),
			ChatID: getEnvAsInt64("TELEGRAM_CHAT_ID", 0, &errs),
		},
		Scheduler: SchedulerConfig{
			FlushRetryInterval: getEnvAsDuration("FLUSH_RETRY_INTERVAL", time.Minute, &errs),
			DigestTime:         getEnv("DIGEST_TIME", "20:00"),
			DigestSize:         getEnvAsInt("DIGEST_SIZE", 5, &errs),
		},
		QuestionsFile: getEnv("QUESTIONS_FILE", ""),
	}

	if err := cfg.LogLevel.UnmarshalText([]byte(getEnv("LOG_LEVEL", "info"))); err != nil {
		errs = append(errs, fmt.Errorf("LOG_LEVEL: %w", err))
	}

	switch cfg.Storage.Backend {
	case BackendFile, BackendSQLite, BackendPostgres, BackendMySQL:
	default:
		errs = append(errs, fmt.Errorf("STORAGE_BACKEND: unknown backend %q", cfg.Storage.Backend))
	}
	if _, err := time.Parse("15:04", cfg.Scheduler.DigestTime); err != nil {
		errs = append(errs, fmt.Errorf("DIGEST_TIME: expected HH:MM, got %q", cfg.Scheduler.DigestTime))
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int, errs *[]error) int {
	value := getEnv(key, "")
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %w", key, err))
		return defaultValue
	}
	return n
}

func getEnvAsInt64(key string, defaultValue int64, errs *[]error) int64 {
	value := getEnv(key, "")
	if value == "" {
		return defaultValue
	}
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %w", key, err))
		return defaultValue
	}
	return n
}

func getEnvAsDuration(key string, defaultValue time.Duration, errs *[]error) time.Duration {
	value := getEnv(key, "")
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %w", key, err))
		return defaultValue
	}
	if d <= 0 {
		*errs = append(*errs, fmt.Errorf("%s: must be positive", key))
		return defaultValue
	}
	return d
}
