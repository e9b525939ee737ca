package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var envKeys = []string{
	"PORT", "RATE_LIMIT_PER_MINUTE", "STORAGE_BACKEND", "DATA_DIR", "STORAGE_FILE", "DATABASE_URL",
	"STORAGE_FLUSH_TIMEOUT", "SESSION_TTL", "REDIS_ADDR", "REDIS_PASSWORD", "REDIS_DB",
	"TELEGRAM_BOT_TOKEN", "TELEGRAM_CHAT_ID", "FLUSH_RETRY_INTERVAL", "DIGEST_TIME", "DIGEST_SIZE",
	"QUESTIONS_FILE", "LOG_LEVEL",
}

// clearEnv blanks every variable Load reads; empty values fall back to defaults
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range envKeys {
		t.Setenv(key, "")
	}
}

func missingEnvFile(t *testing.T) string {
	return filepath.Join(t.TempDir(), "absent.env")
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(missingEnvFile(t))
	require.NoError(t, err)

	assert.Equal(t, "5000", cfg.Server.Port)
	assert.Equal(t, 120, cfg.Server.RateLimitPerMinute)
	assert.Equal(t, BackendFile, cfg.Storage.Backend)
	assert.Equal(t, "data", cfg.Storage.DataDir)
	assert.Equal(t, "storage.json", cfg.Storage.File)
	assert.Equal(t, "data/cybercalc.db", cfg.Storage.DatabaseURL)
	assert.Equal(t, 5*time.Second, cfg.Storage.FlushTimeout)
	assert.Equal(t, 24*time.Hour, cfg.Session.TTL)
	assert.False(t, cfg.Redis.Enabled())
	assert.False(t, cfg.Telegram.Enabled())
	assert.Equal(t, time.Minute, cfg.Scheduler.FlushRetryInterval)
	assert.Equal(t, "20:00", cfg.Scheduler.DigestTime)
	assert.Equal(t, 5, cfg.Scheduler.DigestSize)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
}

func TestLoad_FromEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "8080")
	t.Setenv("STORAGE_BACKEND", "SQLite")
	t.Setenv("STORAGE_FLUSH_TIMEOUT", "250ms")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("TELEGRAM_BOT_TOKEN", "123:abc")
	t.Setenv("TELEGRAM_CHAT_ID", "-1001234567890")
	t.Setenv("DIGEST_TIME", "07:30")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load(missingEnvFile(t))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, BackendSQLite, cfg.Storage.Backend)
	assert.Equal(t, 250*time.Millisecond, cfg.Storage.FlushTimeout)
	assert.True(t, cfg.Redis.Enabled())
	assert.Equal(t, 2, cfg.Redis.DB)
	assert.True(t, cfg.Telegram.Enabled())
	assert.Equal(t, int64(-1001234567890), cfg.Telegram.ChatID)
	assert.Equal(t, "07:30", cfg.Scheduler.DigestTime)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
}

func TestLoad_EnvFile(t *testing.T) {
	clearEnv(t)
	os.Unsetenv("PORT")
	os.Unsetenv("DIGEST_SIZE")
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("PORT=9000\nDIGEST_SIZE=3\n"), 0644))
	t.Cleanup(func() {
		os.Unsetenv("PORT")
		os.Unsetenv("DIGEST_SIZE")
	})

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, 3, cfg.Scheduler.DigestSize)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		key   string
		value string
	}{
		{"STORAGE_BACKEND", "mongodb"},
		{"STORAGE_FLUSH_TIMEOUT", "soon"},
		{"SESSION_TTL", "-1h"},
		{"REDIS_DB", "first"},
		{"TELEGRAM_CHAT_ID", "@channel"},
		{"DIGEST_TIME", "8pm"},
		{"LOG_LEVEL", "chatty"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)

			_, err := Load(missingEnvFile(t))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.key)
		})
	}
}
