// Package config loads environment variables and provides a typed Config used across the bot.
// It applies sensible defaults so the binary can run locally with minimal setup.
// For required credentials (the Discord token), use ValidateDiscordReady.
package config

import (
	"fmt"
	"os"
	"time"
)

type Config struct {
	// Discord
	DiscordToken  string
	CommandPrefix string

	// Timer engine
	MinEditInterval time.Duration
	ShutdownGrace   time.Duration
	FinishMediaURL  string

	// Guild settings
	DefaultLanguage string

	// Database (optional; empty DSN selects the in-memory settings store)
	DBDsn string

	// HTTP
	HTTPAddr string
}

// Load reads environment variables and applies defaults. It doesn't fail if the
// Discord token is missing; use ValidateDiscordReady() when you require the
// gateway connection. An empty DB_DSN disables Postgres-backed guild settings.
func Load() (*Config, error) {
	cfg := &Config{}

	cfg.DiscordToken = os.Getenv("DISCORD_TOKEN")
	cfg.CommandPrefix = os.Getenv("COMMAND_PREFIX")
	if cfg.CommandPrefix == "" {
		cfg.CommandPrefix = "."
	}

	cfg.MinEditInterval = time.Second
	if v := os.Getenv("TIMER_MIN_EDIT_INTERVAL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return nil, fmt.Errorf("invalid TIMER_MIN_EDIT_INTERVAL: %q", v)
		}
		cfg.MinEditInterval = d
	}

	cfg.ShutdownGrace = 2 * time.Second
	if v := os.Getenv("TIMER_SHUTDOWN_GRACE"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.ShutdownGrace = d
		}
	}

	cfg.FinishMediaURL = os.Getenv("TIMER_FINISH_MEDIA_URL")

	cfg.DefaultLanguage = os.Getenv("DEFAULT_LANGUAGE")
	if cfg.DefaultLanguage == "" {
		cfg.DefaultLanguage = "english"
	}

	cfg.DBDsn = os.Getenv("DB_DSN")

	cfg.HTTPAddr = os.Getenv("HTTP_ADDR")
	if cfg.HTTPAddr == "" {
		cfg.HTTPAddr = ":8080"
	}

	return cfg, nil
}

// ValidateDiscordReady checks required fields for connecting to the gateway.
func (c *Config) ValidateDiscordReady() error {
	if c.DiscordToken == "" {
		return fmt.Errorf("missing discord env: require DISCORD_TOKEN")
	}
	return nil
}
