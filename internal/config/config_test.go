package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig_Defaults(t *testing.T) {
	cfg := NewConfig()

	assert.Equal(t, "5000", cfg.ServerPort)
	assert.Equal(t, filepath.Join("data", "sessions.db"), cfg.DatabasePath())
	assert.Equal(t, 24*time.Hour, cfg.SessionMaxAge)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "8081")
	t.Setenv("SESSION_MAX_AGE", "90m")
	t.Setenv("COOKIE_SECURE", "true")
	t.Setenv("ALLOWED_ORIGINS", "http://localhost:3000,https://example.com")

	cfg := NewConfig()
	require.NoError(t, cfg.Load(filepath.Join(t.TempDir(), "missing.env")))

	assert.Equal(t, "8081", cfg.ServerPort)
	assert.Equal(t, 90*time.Minute, cfg.SessionMaxAge)
	assert.True(t, cfg.CookieSecure)
	assert.Equal(t, []string{"http://localhost:3000", "https://example.com"}, cfg.AllowedOrigins)
	// untouched fields keep their defaults
	assert.Equal(t, "data", cfg.DataDir)

	cors := cfg.GetCorsConfig()
	assert.False(t, cors.AllowAllOrigins)
	assert.Equal(t, cfg.AllowedOrigins, cors.AllowOrigins)
}

func TestLoad_DotEnvFile(t *testing.T) {
	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("DATA_DIR=/var/lib/walletconnect\n"), 0644))
	t.Cleanup(func() { os.Unsetenv("DATA_DIR") })

	cfg := NewConfig()
	require.NoError(t, cfg.Load(envFile))

	assert.Equal(t, "/var/lib/walletconnect", cfg.DataDir)
}

func TestLoad_InvalidValues(t *testing.T) {
	t.Setenv("SESSION_MAX_AGE", "-1h")

	cfg := NewConfig()
	assert.Error(t, cfg.Load(filepath.Join(t.TempDir(), "missing.env")))
}

func TestGetCorsConfig_AllOrigins(t *testing.T) {
	cors := NewConfig().GetCorsConfig()

	assert.True(t, cors.AllowAllOrigins)
	assert.True(t, cors.AllowCredentials)
}
