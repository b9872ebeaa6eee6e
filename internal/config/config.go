// Package config loads the ideaboard application settings.
//
// Settings come from DefaultConfig, then ~/.config/ideaboard/config.yaml
// (or $XDG_CONFIG_HOME/ideaboard/config.yaml), then IDEABOARD_* environment
// variables. Command-line flags are applied last by the caller.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the application settings.
type Config struct {
	DBPath   string `yaml:"db_path,omitempty"`
	UserID   string `yaml:"user_id,omitempty"`
	Language string `yaml:"language,omitempty"`

	SlideDuration     time.Duration `yaml:"slide_duration,omitempty"`
	TransitionTimeout time.Duration `yaml:"transition_timeout,omitempty"`

	FullscreenDelaySmall time.Duration `yaml:"fullscreen_delay_small,omitempty"`
	FullscreenDelayLarge time.Duration `yaml:"fullscreen_delay_large,omitempty"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		UserID:               defaultUser(),
		Language:             "en",
		SlideDuration:        350 * time.Millisecond,
		TransitionTimeout:    2 * time.Second,
		FullscreenDelaySmall: 200 * time.Millisecond,
		FullscreenDelayLarge: 300 * time.Millisecond,
	}
}

func defaultUser() string {
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	return "learner"
}

// Dir returns the XDG config directory for ideaboard.
func Dir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "ideaboard")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "ideaboard")
}

// Path returns the full path to config.yaml.
func Path() string {
	dir := Dir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "config.yaml")
}

// Load reads the config file from the XDG config directory and applies
// environment overrides.
func Load() (Config, error) {
	cfg := DefaultConfig()
	if path := Path(); path != "" {
		var err error
		cfg, err = LoadFrom(path)
		if err != nil {
			return cfg, err
		}
	}
	return ApplyEnv(cfg)
}

// LoadFrom reads config from a specific path. A missing file yields
// DefaultConfig. Zero values in the file keep their defaults.
func LoadFrom(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	var file Config
	if err := yaml.Unmarshal(data, &file); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	return merge(cfg, file), nil
}

func merge(base, over Config) Config {
	if over.DBPath != "" {
		base.DBPath = expandHome(over.DBPath)
	}
	if over.UserID != "" {
		base.UserID = over.UserID
	}
	if over.Language != "" {
		base.Language = over.Language
	}
	if over.SlideDuration > 0 {
		base.SlideDuration = over.SlideDuration
	}
	if over.TransitionTimeout > 0 {
		base.TransitionTimeout = over.TransitionTimeout
	}
	if over.FullscreenDelaySmall > 0 {
		base.FullscreenDelaySmall = over.FullscreenDelaySmall
	}
	if over.FullscreenDelayLarge > 0 {
		base.FullscreenDelayLarge = over.FullscreenDelayLarge
	}
	return base
}

// ApplyEnv overrides cfg from IDEABOARD_* environment variables.
func ApplyEnv(cfg Config) (Config, error) {
	if p := os.Getenv("IDEABOARD_DB"); p != "" {
		cfg.DBPath = expandHome(p)
	}
	if u := os.Getenv("IDEABOARD_USER"); u != "" {
		cfg.UserID = u
	}
	if l := os.Getenv("IDEABOARD_LANGUAGE"); l != "" {
		cfg.Language = l
	}

	durations := []struct {
		env string
		dst *time.Duration
	}{
		{"IDEABOARD_SLIDE_DURATION", &cfg.SlideDuration},
		{"IDEABOARD_TRANSITION_TIMEOUT", &cfg.TransitionTimeout},
	}
	for _, d := range durations {
		v := strings.TrimSpace(os.Getenv(d.env))
		if v == "" {
			continue
		}
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return cfg, fmt.Errorf("parse %s: %w", d.env, err)
		}
		if parsed <= 0 {
			return cfg, fmt.Errorf("parse %s: must be positive, got %s", d.env, v)
		}
		*d.dst = parsed
	}

	return cfg, nil
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}
