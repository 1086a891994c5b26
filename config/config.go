package config

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	golobby "github.com/golobby/config/v3"
	"github.com/golobby/config/v3/pkg/feeder"

	"github.com/marcus-crane/pholish-mpris/shared"
	"github.com/marcus-crane/pholish-mpris/utils"
)

const (
	defaultPollIntervalMs = 1000
	defaultAllowedOrigins = "http://localhost:8080"
)

type Config struct {
	Bridge BridgeConfig
	Events EventsConfig
}

type BridgeConfig struct {
	LogLevel       string `env:"LOG_LEVEL"`
	StateDir       string `env:"PHOLISH_STATE_DIR"`
	PollIntervalMs int    `env:"PHOLISH_POLL_INTERVAL_MS"`
	WatchDisabled  bool   `env:"PHOLISH_WATCH_DISABLED"`
}

type EventsConfig struct {
	Addr           string `env:"PHOLISH_EVENTS_ADDR"`
	AllowedOrigins string `env:"PHOLISH_EVENTS_ALLOWED_ORIGINS"`
}

// Load reads the process environment into a Config. Anything left unset
// falls back to the defaults the media apps expect.
func Load() (Config, error) {
	var cfg Config
	c := golobby.New().AddFeeder(feeder.Env{}).AddStruct(&cfg)
	if err := c.Feed(); err != nil {
		return cfg, fmt.Errorf("failed to read config from environment: %w", err)
	}
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Bridge.StateDir == "" {
		c.Bridge.StateDir = utils.DefaultStateDir()
	}
	if c.Bridge.PollIntervalMs <= 0 {
		c.Bridge.PollIntervalMs = defaultPollIntervalMs
	}
	if c.Events.AllowedOrigins == "" {
		c.Events.AllowedOrigins = defaultAllowedOrigins
	}
}

func (c *Config) StatusPath() string {
	return filepath.Join(c.Bridge.StateDir, shared.MEDIA_STATUS_FILE)
}

func (c *Config) CommandPath() string {
	return filepath.Join(c.Bridge.StateDir, shared.MEDIA_COMMAND_FILE)
}

func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.Bridge.PollIntervalMs) * time.Millisecond
}

func (c *Config) AllowedOrigins() []string {
	return utils.SplitList(c.Events.AllowedOrigins)
}

func (c *Config) GetLogLevel() slog.Leveler {
	logLevel := strings.ToLower(c.Bridge.LogLevel)
	if logLevel == "error" {
		return slog.LevelError
	}
	if logLevel == "warning" {
		return slog.LevelWarn
	}
	if logLevel == "info" || logLevel == "" {
		return slog.LevelInfo
	}
	if logLevel == "debug" {
		return slog.LevelDebug
	}
	// default to info if unknown
	slog.With(slog.String("log_level", logLevel)).Info("Received invalid log level. Defaulting to INFO.")
	return slog.LevelInfo
}
