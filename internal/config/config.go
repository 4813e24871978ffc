// Package config loads process configuration from the environment.
//
// Values come from real environment variables first; a .env file in the
// working directory fills in anything unset. Every field has a default, so
// an empty environment starts a local sqlite server on :8080.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type Config struct {
	Port               int           `env:"PORT"                  envDefault:"8080"`
	DBDriver           string        `env:"DB_DRIVER"             envDefault:"sqlite"`
	DBPath             string        `env:"DB_PATH"               envDefault:"data/postify.db"`
	DatabaseURL        string        `env:"DATABASE_URL"`
	LogLevel           string        `env:"LOG_LEVEL"             envDefault:"info"`
	LogFormat          string        `env:"LOG_FORMAT"            envDefault:"text"`
	CORSAllowedOrigins []string      `env:"CORS_ALLOWED_ORIGINS"  envDefault:"*"    envSeparator:","`
	RateLimitPerMinute int           `env:"RATE_LIMIT_PER_MINUTE" envDefault:"300"`
	ShutdownTimeout    time.Duration `env:"SHUTDOWN_TIMEOUT"      envDefault:"30s"`
}

// Load reads envFile (if it exists) and then parses the environment.
// Pass "" to skip the file.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		// godotenv.Load never overrides variables that are already set.
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("loading %s: %w", envFile, err)
		}
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	c.DBDriver = strings.ToLower(strings.TrimSpace(c.DBDriver))
	switch c.DBDriver {
	case DriverSQLite:
		if c.DBPath == "" {
			return errors.New("DB_PATH must be set when DB_DRIVER=sqlite")
		}
	case DriverPostgres:
		if c.DatabaseURL == "" {
			return errors.New("DATABASE_URL must be set when DB_DRIVER=postgres")
		}
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q (want %s or %s)", c.DBDriver, DriverSQLite, DriverPostgres)
	}

	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("PORT %d out of range", c.Port)
	}
	if c.RateLimitPerMinute < 0 {
		return fmt.Errorf("RATE_LIMIT_PER_MINUTE must not be negative, got %d", c.RateLimitPerMinute)
	}
	if _, err := parseLevel(c.LogLevel); err != nil {
		return err
	}
	if f := strings.ToLower(c.LogFormat); f != "text" && f != "json" {
		return fmt.Errorf("unsupported LOG_FORMAT %q (want text or json)", c.LogFormat)
	}
	return nil
}

// NewLogger builds the process logger described by LOG_LEVEL and LOG_FORMAT.
func (c *Config) NewLogger(w io.Writer) *slog.Logger {
	level, err := parseLevel(c.LogLevel)
	if err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}

	if strings.ToLower(c.LogFormat) == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("invalid LOG_LEVEL %q: %w", s, err)
	}
	return level, nil
}
