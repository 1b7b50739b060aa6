package config

import (
	"fmt"
	"log"
	"time"

	"github.com/caarlos0/env/v11"
)

// FallbackSecretKey signs sessions when SECRET_KEY is unset. Not safe for production.
const FallbackSecretKey = "portfolio-dev-secret-change-me"

// Config holds all application configuration
type Config struct {
	ServerAddr      string        `env:"SERVER_ADDR" envDefault:":8080"`
	ContentPath     string        `env:"CONTENT_PATH" envDefault:"data/content.json"`
	StaticDir       string        `env:"STATIC_DIR" envDefault:"static"`
	SecretKey       string        `env:"SECRET_KEY"`
	CredentialsPath string        `env:"CREDENTIALS_PATH"`
	SessionTTL      time.Duration `env:"SESSION_TTL" envDefault:"24h"`
	CORSOrigins     []string      `env:"CORS_ORIGINS" envDefault:"*" envSeparator:","`
}

// Load reads configuration from the environment
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if cfg.SecretKey == "" {
		log.Printf("Warning: SECRET_KEY is not set, using the built-in fallback key")
		cfg.SecretKey = FallbackSecretKey
	}

	return &cfg, nil
}
