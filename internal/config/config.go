// Package config loads runtime settings from VOCNAV_* environment variables
// and an optional .env file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/alexanderramin/vocnav/internal/domain"
	"github.com/alexanderramin/vocnav/internal/logging"
)

const envPrefix = "VOCNAV"

// Remote backend names.
const (
	RemoteNone     = "none"
	RemoteMemory   = "memory"
	RemotePostgres = "postgres"
	RemoteRedis    = "redis"
)

var validRemotes = map[string]bool{RemoteNone: true, RemoteMemory: true, RemotePostgres: true, RemoteRedis: true}

// ErrMissingSecret is returned when a remote backend is selected without
// a session signing secret.
var ErrMissingSecret = errors.New("VOCNAV_JWT_SECRET is required when a remote backend is enabled")

type Config struct {
	DB string `envconfig:"DB"`

	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`
	LogEncoding string `envconfig:"LOG_ENCODING" default:"console"`
	LogFile     string `envconfig:"LOG_FILE"`

	Remote        string `envconfig:"REMOTE" default:"none"`
	PostgresDSN   string `envconfig:"POSTGRES_DSN"`
	RedisAddr     string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	RedisPassword string `envconfig:"REDIS_PASSWORD"`
	RedisDB       int    `envconfig:"REDIS_DB" default:"0"`

	SessionFile string        `envconfig:"SESSION_FILE"`
	JWTSecret   string        `envconfig:"JWT_SECRET"`
	SessionTTL  time.Duration `envconfig:"SESSION_TTL" default:"720h"`

	WatchThreshold time.Duration `envconfig:"WATCH_THRESHOLD" default:"5s"`
	MetricsAddr    string        `envconfig:"METRICS_ADDR"`
	CatalogFile    string        `envconfig:"CATALOG_FILE"`
}

// Load reads .env files (when present) and the environment. Paths left
// empty default to files under ~/.vocnav.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		// Existing environment variables take precedence over the file.
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("loading %s: %w", f, err)
		}
	}

	var cfg Config
	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("processing environment: %w", err)
	}

	home, err := os.UserHomeDir()
	if err != nil && (cfg.DB == "" || cfg.SessionFile == "") {
		return nil, fmt.Errorf("finding home directory: %w", err)
	}
	cfg.DB = domain.Coalesce(cfg.DB, filepath.Join(home, ".vocnav", "vocnav.db"))
	cfg.SessionFile = domain.Coalesce(cfg.SessionFile, filepath.Join(home, ".vocnav", "session.jwt"))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks cross-field constraints.
func (c *Config) Validate() error {
	c.Remote = strings.ToLower(c.Remote)
	if !validRemotes[c.Remote] {
		return fmt.Errorf("VOCNAV_REMOTE: invalid value %q (want none, memory, postgres or redis)", c.Remote)
	}
	if c.Remote == RemotePostgres && c.PostgresDSN == "" {
		return errors.New("VOCNAV_POSTGRES_DSN is required for the postgres backend")
	}
	if c.Remote != RemoteNone && c.JWTSecret == "" {
		return ErrMissingSecret
	}
	if c.WatchThreshold <= 0 {
		return fmt.Errorf("VOCNAV_WATCH_THRESHOLD must be positive, got %s", c.WatchThreshold)
	}
	return nil
}

// Logging returns the logger settings.
func (c *Config) Logging() logging.Config {
	return logging.Config{Level: c.LogLevel, Encoding: c.LogEncoding, OutputPath: c.LogFile}
}

// SessionsEnabled reports whether sessions can exist at all. Without a
// remote backend the app always runs signed out.
func (c *Config) SessionsEnabled() bool {
	return c.Remote != RemoteNone
}
