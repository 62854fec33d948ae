// Package config provides application configuration management.
// It loads configuration from environment variables with support for .env files.
package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	Catalog  CatalogConfig
	Redis    RedisConfig
	RateLim  RateLimitConfig
	Logging  LoggingConfig
	App      AppConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         int           `env:"SERVER_PORT" envDefault:"8080"`
	ReadTimeout  time.Duration `env:"SERVER_READ_TIMEOUT" envDefault:"10s"`
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" envDefault:"10s"`
}

// CatalogConfig holds settings for the upstream catalog API.
type CatalogConfig struct {
	BaseURL string        `env:"CATALOG_BASE_URL" envDefault:"http://localhost:5000"`
	Timeout time.Duration `env:"CATALOG_TIMEOUT" envDefault:"5s"`
}

// RedisConfig holds settings for the search store and result cache.
// An empty URL disables Redis; the in-memory store is used instead.
type RedisConfig struct {
	URL      string        `env:"REDIS_URL" envDefault:""`
	CacheTTL time.Duration `env:"CACHE_TTL" envDefault:"10m"`
}

// RateLimitConfig holds per-client rate limiting settings.
type RateLimitConfig struct {
	Enabled bool    `env:"RATE_LIMIT_ENABLED" envDefault:"true"`
	RPS     float64 `env:"RATE_LIMIT_RPS" envDefault:"10"`
	Burst   int     `env:"RATE_LIMIT_BURST" envDefault:"20"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

// AppConfig holds general application settings.
type AppConfig struct {
	Env string `env:"APP_ENV" envDefault:"development"`
}

// Load reads configuration from environment variables.
// It attempts to load a .env file first (optional - won't fail if missing).
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found, using environment variables")
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

// MustLoad loads configuration or panics on error.
// Use this in main() where configuration is required to start.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}
	return cfg
}

// validate checks configuration values for correctness.
func validate(cfg *Config) error {
	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		return fmt.Errorf("SERVER_PORT must be between 1 and 65535, got %d", cfg.Server.Port)
	}

	if cfg.Server.ReadTimeout <= 0 {
		return fmt.Errorf("SERVER_READ_TIMEOUT must be positive")
	}
	if cfg.Server.WriteTimeout <= 0 {
		return fmt.Errorf("SERVER_WRITE_TIMEOUT must be positive")
	}

	if cfg.Catalog.BaseURL == "" {
		return fmt.Errorf("CATALOG_BASE_URL is required")
	}
	u, err := url.Parse(cfg.Catalog.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("CATALOG_BASE_URL must be a valid absolute URL, got %q", cfg.Catalog.BaseURL)
	}
	if cfg.Catalog.Timeout <= 0 {
		return fmt.Errorf("CATALOG_TIMEOUT must be positive")
	}

	if cfg.Redis.URL != "" && !strings.HasPrefix(cfg.Redis.URL, "redis://") && !strings.HasPrefix(cfg.Redis.URL, "rediss://") {
		return fmt.Errorf("REDIS_URL must start with redis:// or rediss://, got %q", cfg.Redis.URL)
	}
	if cfg.Redis.CacheTTL <= 0 {
		return fmt.Errorf("CACHE_TTL must be positive")
	}

	if cfg.RateLim.Enabled {
		if cfg.RateLim.RPS <= 0 {
			return fmt.Errorf("RATE_LIMIT_RPS must be positive")
		}
		if cfg.RateLim.Burst < 1 {
			return fmt.Errorf("RATE_LIMIT_BURST must be at least 1")
		}
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[cfg.Logging.Level] {
		return fmt.Errorf("LOG_LEVEL must be one of: debug, info, warn, error; got %q", cfg.Logging.Level)
	}

	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[cfg.Logging.Format] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console; got %q", cfg.Logging.Format)
	}

	validEnvs := map[string]bool{"development": true, "staging": true, "production": true}
	if !validEnvs[cfg.App.Env] {
		return fmt.Errorf("APP_ENV must be one of: development, staging, production; got %q", cfg.App.Env)
	}

	return nil
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.App.Env == "development"
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}
