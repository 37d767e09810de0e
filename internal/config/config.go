package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/gin-contrib/cors"
	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	ServerPort     string        `env:"SERVER_PORT"`
	DataDir        string        `env:"DATA_DIR"`
	DatabaseFile   string        `env:"DATABASE_FILE"`
	LogDir         string        `env:"LOG_DIR"`
	CookieSecure   bool          `env:"COOKIE_SECURE"`
	SessionMaxAge  time.Duration `env:"SESSION_MAX_AGE"`
	AllowedOrigins []string      `env:"ALLOWED_ORIGINS" envSeparator:","`
}

// NewConfig creates a new configuration with default values
func NewConfig() *Config {
	return &Config{
		ServerPort:    "5000",
		DataDir:       "data",
		DatabaseFile:  "sessions.db",
		LogDir:        "logs",
		SessionMaxAge: 24 * time.Hour,
	}
}

// Load overrides the defaults from an optional .env file and the environment
func (c *Config) Load(envFiles ...string) error {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, file := range envFiles {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", file, err)
		}
	}
	if err := env.Parse(c); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return c.Validate()
}

// Validate rejects settings the server cannot start with
func (c *Config) Validate() error {
	if c.ServerPort == "" {
		return errors.New("server port is required")
	}
	if c.DatabaseFile == "" {
		return errors.New("database file is required")
	}
	if c.SessionMaxAge <= 0 {
		return fmt.Errorf("session max age must be positive, got %s", c.SessionMaxAge)
	}
	return nil
}

// EnsureDataDir ensures the data directory exists
func (c *Config) EnsureDataDir() error {
	return os.MkdirAll(c.DataDir, 0755)
}

// DatabasePath returns the sqlite file location inside the data directory
func (c *Config) DatabasePath() string {
	return filepath.Join(c.DataDir, c.DatabaseFile)
}

// GetCorsConfig returns CORS configuration for the application
func (c *Config) GetCorsConfig() cors.Config {
	corsConfig := cors.DefaultConfig()
	if len(c.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = c.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "X-Requested-With"}
	corsConfig.ExposeHeaders = []string{"Content-Length", "Content-Type"}
	corsConfig.AllowCredentials = true
	corsConfig.MaxAge = 12 * time.Hour
	return corsConfig
}
