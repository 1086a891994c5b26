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
	t.Setenv("HOME", "/home/tester")
	for _, key := range []string{
		"LOG_LEVEL",
		"PHOLISH_STATE_DIR",
		"PHOLISH_POLL_INTERVAL_MS",
		"PHOLISH_WATCH_DISABLED",
		"PHOLISH_EVENTS_ADDR",
		"PHOLISH_EVENTS_ALLOWED_ORIGINS",
	} {
		unsetEnv(t, key)
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/home/tester/.local/state/flick", cfg.Bridge.StateDir)
	assert.Equal(t, "/home/tester/.local/state/flick/media_status.json", cfg.StatusPath())
	assert.Equal(t, "/home/tester/.local/state/flick/media_command", cfg.CommandPath())
	assert.Equal(t, time.Second, cfg.PollInterval())
	assert.Equal(t, []string{"http://localhost:8080"}, cfg.AllowedOrigins())
	assert.Empty(t, cfg.Events.Addr)
	assert.False(t, cfg.Bridge.WatchDisabled)
}

func TestLoad_FromEnvironment(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("PHOLISH_STATE_DIR", dir)
	t.Setenv("PHOLISH_POLL_INTERVAL_MS", "250")
	t.Setenv("PHOLISH_WATCH_DISABLED", "true")
	t.Setenv("PHOLISH_EVENTS_ADDR", "127.0.0.1:9090")
	t.Setenv("PHOLISH_EVENTS_ALLOWED_ORIGINS", "http://a.test, http://b.test,")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "media_status.json"), cfg.StatusPath())
	assert.Equal(t, 250*time.Millisecond, cfg.PollInterval())
	assert.True(t, cfg.Bridge.WatchDisabled)
	assert.Equal(t, "127.0.0.1:9090", cfg.Events.Addr)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.AllowedOrigins())
	assert.Equal(t, slog.LevelDebug, cfg.GetLogLevel())
}

func TestGetLogLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"error":   slog.LevelError,
		"WARNING": slog.LevelWarn,
		"info":    slog.LevelInfo,
		"debug":   slog.LevelDebug,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for input, want := range cases {
		cfg := Config{Bridge: BridgeConfig{LogLevel: input}}
		assert.Equal(t, want, cfg.GetLogLevel(), "log level %q", input)
	}
}

// unsetEnv clears key for the duration of the test, restoring it afterwards
func unsetEnv(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	os.Unsetenv(key)
}
