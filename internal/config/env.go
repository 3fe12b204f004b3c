package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Env holds settings read from the process environment.
type Env struct {
	Preset   string `env:"RUNWAY_PRESET"`
	Schedule string `env:"RUNWAY_SCHEDULE"`
	Theme    string `env:"RUNWAY_THEME"`
	DBPath   string `env:"RUNWAY_DB"`
	Addr     string `env:"RUNWAY_ADDR"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// LoadDotEnv loads KEY=VALUE files into the environment without
// overriding variables that are already set. Missing files are skipped.
func LoadDotEnv(paths ...string) error {
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("loading %s: %w", p, err)
		}
	}
	return nil
}

// ApplyEnv overlays non-empty environment settings onto cfg.
func (c *Config) ApplyEnv(e Env) {
	if e.Preset != "" {
		c.General.Preset = e.Preset
	}
	if e.Schedule != "" {
		c.General.Schedule = e.Schedule
	}
	if e.Theme != "" {
		c.Appearance.Theme = e.Theme
	}
	if e.DBPath != "" {
		c.General.DBPath = e.DBPath
	}
	if e.Addr != "" {
		c.Daemon.Addr = e.Addr
	}
}
