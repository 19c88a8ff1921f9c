// Package config defines pipeline configuration and its loading order.
//
// Precedence (low -> high): defaults, YAML file named by FPL_CONFIG, env
// vars with prefix FPL_. The resulting value object is passed into each
// component at construction; nothing here is process-global.
package config

import (
	"errors"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config contains every tunable of the scrape pipeline.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// OutputDir receives the CSV tables.
	OutputDir string `koanf:"output_dir"`

	// SnapshotDir holds the per-gameweek snapshot files.
	SnapshotDir string `koanf:"snapshot_dir"`

	// BaseURL is the FPL API root.
	BaseURL string `koanf:"base_url"`

	// UserAgent is sent on every outbound request.
	UserAgent string `koanf:"user_agent"`

	// TimeoutSeconds applies uniformly to every outbound call.
	TimeoutSeconds int `koanf:"timeout_seconds"`

	// RequestPauseMS is the courtesy pause before each request.
	RequestPauseMS int `koanf:"request_pause_ms"`

	// HistoryFallback enables the per-player match-history slow path when
	// no previous snapshot exists.
	HistoryFallback bool `koanf:"history_fallback"`
}

// New returns a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:        "info",
		OutputDir:       "data",
		SnapshotDir:     "data/snapshots",
		BaseURL:         "https://fantasy.premierleague.com/api",
		UserAgent:       "fpl-ai-recommender/1.0",
		TimeoutSeconds:  30,
		RequestPauseMS:  250,
		HistoryFallback: true,
	}
}

// Load builds a Config by layering defaults, optional file, and env vars.
func Load() (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv("FPL_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, err
		}
	}

	// FPL_OUTPUT_DIR -> output_dir, FPL_TIMEOUT_SECONDS -> timeout_seconds, ...
	envProvider := env.Provider("FPL_", ".", func(s string) string {
		s = strings.ToLower(s)
		return strings.TrimPrefix(s, "fpl_")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, err
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, err
	}

	if cfg.OutputDir == "" {
		return nil, errors.New("output_dir must not be empty")
	}
	if cfg.SnapshotDir == "" {
		return nil, errors.New("snapshot_dir must not be empty")
	}
	if cfg.TimeoutSeconds <= 0 {
		return nil, errors.New("timeout_seconds must be positive")
	}
	return &cfg, nil
}

func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

func (c *Config) RequestPause() time.Duration {
	return time.Duration(c.RequestPauseMS) * time.Millisecond
}
