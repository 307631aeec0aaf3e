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

var configEnvKeys = []string{
	EnvProfile,
	"CORENET_LISTEN_ADDR",
	"CORENET_STATIC_DIR",
	"CORENET_ROUTE_REVISION",
	"CORENET_SHUTDOWN_TIMEOUT",
	"CORENET_CACHE_HTML",
	"CORENET_CACHE_ERROR",
	"CORENET_LOG_LEVEL",
	"CORENET_LOG_FORMAT",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range configEnvKeys {
		t.Setenv(key, "")
	}
}

func writeFile(t *testing.T, dir string, name string, contents string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(contents), 0o644))
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadDir(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.ListenAddr)
	assert.Equal(t, "internal/web/static", cfg.StaticDir)
	assert.Equal(t, "latest", cfg.RouteRevision)
	assert.Equal(t, 15*time.Second, cfg.ShutdownTimeoutDuration())
	assert.Equal(t, LogLevelInfo, cfg.Logging.Level)
	assert.Equal(t, LogFormatText, cfg.Logging.Format)
	assert.Empty(t, cfg.Cache.HTML)
}

func TestLoadFileOverlayAndEnv(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()

	writeFile(t, dir, BaseConfigFile, `
listen_addr = ":9000"
route_revision = "v1"

[logging]
level = "debug"

[cache]
html = "no-cache"
`)
	writeFile(t, dir, "config.staging.toml", `
route_revision = "v2"

[logging]
format = "json"
`)

	t.Setenv(EnvProfile, "staging")
	t.Setenv("CORENET_LISTEN_ADDR", ":7000")

	cfg, err := LoadDir(dir)
	require.NoError(t, err)

	assert.Equal(t, ":7000", cfg.ListenAddr)
	assert.Equal(t, "v2", cfg.RouteRevision)
	assert.Equal(t, LogLevelDebug, cfg.Logging.Level)
	assert.Equal(t, LogFormatJSON, cfg.Logging.Format)
	assert.Equal(t, "no-cache", cfg.Cache.HTML)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	t.Run("malformed toml", func(t *testing.T) {
		clearEnv(t)
		dir := t.TempDir()
		writeFile(t, dir, BaseConfigFile, "listen_addr = ")

		_, err := LoadDir(dir)
		require.ErrorContains(t, err, "parse config")
	})

	t.Run("shutdown timeout", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("CORENET_SHUTDOWN_TIMEOUT", "soon")

		_, err := LoadDir(t.TempDir())
		require.ErrorContains(t, err, "invalid shutdown_timeout")
	})

	t.Run("route revision", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("CORENET_ROUTE_REVISION", "newest")

		_, err := LoadDir(t.TempDir())
		require.ErrorContains(t, err, `invalid route_revision "newest"`)
	})

	t.Run("route revision from file", func(t *testing.T) {
		clearEnv(t)
		dir := t.TempDir()
		writeFile(t, dir, BaseConfigFile, `route_revision = "v2.x"`)

		_, err := LoadDir(dir)
		require.ErrorContains(t, err, "invalid route_revision")
	})

	t.Run("log level", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("CORENET_LOG_LEVEL", "loud")

		_, err := LoadDir(t.TempDir())
		require.ErrorContains(t, err, "logging: invalid level")
	})

	t.Run("log format", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("CORENET_LOG_FORMAT", "xml")

		_, err := LoadDir(t.TempDir())
		require.ErrorContains(t, err, "logging: invalid format")
	})
}

func TestLogLevelToSlogLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, LogLevelDebug.ToSlogLevel())
	assert.Equal(t, slog.LevelInfo, LogLevelInfo.ToSlogLevel())
	assert.Equal(t, slog.LevelWarn, LogLevelWarn.ToSlogLevel())
	assert.Equal(t, slog.LevelError, LogLevelError.ToSlogLevel())
	assert.Equal(t, slog.LevelInfo, LogLevel("other").ToSlogLevel())
}
