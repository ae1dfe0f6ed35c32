// Package config loads server configuration from the environment.
// A .env file in the working directory is honored when present, which
// keeps local development away from real credentials.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds everything cmd/server needs to wire the application.
type Config struct {
	Env      string `env:"WISHLIST_ENV" envDefault:"development"`
	Port     string `env:"WISHLIST_PORT" envDefault:"8080"`
	DBPath   string `env:"WISHLIST_DB_PATH" envDefault:"wishlist.db"`
	BaseURL  string `env:"WISHLIST_BASE_URL" envDefault:"http://localhost:8080"`
	LogLevel string `env:"WISHLIST_LOG_LEVEL" envDefault:"info"`

	StaticDir string `env:"WISHLIST_STATIC_DIR" envDefault:"static"`

	ResendKey    string `env:"WISHLIST_RESEND_API_KEY"`
	EmailFrom    string `env:"WISHLIST_EMAIL_FROM" envDefault:"Wishlist <wishlist@localhost>"`
	EmailReplyTo string `env:"WISHLIST_EMAIL_REPLY_TO"`

	AdminEmail    string `env:"WISHLIST_ADMIN_EMAIL"`
	AdminPassword string `env:"WISHLIST_ADMIN_PASSWORD"`

	OutboxInterval  time.Duration `env:"WISHLIST_OUTBOX_INTERVAL" envDefault:"5m"`
	RateLimitPerSec int           `env:"WISHLIST_RATE_LIMIT_PER_SEC" envDefault:"10"`
}

// Load reads a .env file if one exists, then parses the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return &cfg, nil
}

// IsProduction reports whether the server runs with production hardening.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Addr returns the listen address for the HTTP server.
func (c *Config) Addr() string {
	return ":" + c.Port
}
