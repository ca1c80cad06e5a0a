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

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"APP_ENV", "LOG_LEVEL", "HTTP_ADDR", "REVIEW_COLUMN",
		"INPUT_ENCODING", "EXPORT_ENCODING", "MAPPER_WORKERS", "VALKEY_INIT_ADDRESS",
		"VALKEY_TLS", "VALKEY_EXPORT_TTL", "OPENAI_API_KEY", "EMOTION_MODEL_PATH"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	assert.Equal(t, "dev", cfg.Env)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "review", cfg.ReviewColumn)
	assert.Equal(t, "latin1", cfg.InputEncoding)
	assert.Equal(t, "utf-8", cfg.ExportEncoding)
	assert.Greater(t, cfg.MapperWorkers, 0)
	assert.Equal(t, time.Hour, cfg.ValkeyExportTTL)
	assert.False(t, cfg.ValkeyTLS)
	assert.Empty(t, cfg.ValkeyAddress)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("MAPPER_WORKERS", "3")
	t.Setenv("VALKEY_TLS", "true")
	t.Setenv("VALKEY_EXPORT_TTL", "60")
	t.Setenv("REVIEW_COLUMN", "text")

	cfg := Load()
	assert.Equal(t, "production", cfg.Env)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.Equal(t, 3, cfg.MapperWorkers)
	assert.True(t, cfg.ValkeyTLS)
	assert.Equal(t, time.Minute, cfg.ValkeyExportTTL)
	assert.Equal(t, "text", cfg.ReviewColumn)
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("MAPPER_WORKERS", "lots")
	t.Setenv("LOG_LEVEL", "loud")

	cfg := Load()
	assert.Greater(t, cfg.MapperWorkers, 0)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
}

func TestLoadEnv_ReadsEnvFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "config", "envs"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config", "envs", ".env.test"),
		[]byte("SENTILENS_TEST_KEY=from-file\n"), 0o644))

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	t.Cleanup(func() { _ = os.Unsetenv("SENTILENS_TEST_KEY") })

	LoadEnv("test")
	assert.Equal(t, "from-file", os.Getenv("SENTILENS_TEST_KEY"))
}
