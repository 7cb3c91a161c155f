package config_test

import (
	"os"
	"testing"
	"time"

	"taskboard/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unsetEnv removes key for the duration of the test.
func unsetEnv(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	require.NoError(t, os.Unsetenv(key))
}

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"SERVER_PORT", "JWT_EXPIRY_HOURS", "AUTH_BACKEND", "AUTH_USERNAME", "AUTH_PASSWORD", "REDIS_URL", "DEBUG"} {
		unsetEnv(t, key)
	}

	cfg := config.Load()

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL())
	assert.Equal(t, config.AuthBackendStatic, cfg.AuthBackend)
	assert.Equal(t, "test123", cfg.AuthUsername)
	assert.Empty(t, cfg.RedisURL)
	assert.False(t, cfg.Debug)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("JWT_EXPIRY_HOURS", "2")
	t.Setenv("AUTH_BACKEND", "database")
	t.Setenv("DB_HOST", "db")
	t.Setenv("REDIS_URL", "redis://cache:6379/0")
	t.Setenv("DEBUG", "true")

	cfg := config.Load()

	assert.Equal(t, "9090", cfg.ServerPort)
	assert.Equal(t, 2*time.Hour, cfg.TokenTTL())
	assert.Equal(t, config.AuthBackendDatabase, cfg.AuthBackend)
	assert.Contains(t, cfg.DSN(), "host=db")
	assert.Equal(t, "redis://cache:6379/0", cfg.RedisURL)
	assert.True(t, cfg.Debug)
}

func TestLoad_InvalidNumberFallsBack(t *testing.T) {
	t.Setenv("JWT_EXPIRY_HOURS", "soon")

	cfg := config.Load()

	assert.Equal(t, 24, cfg.JWTExpiryHours)
}

func TestValidate(t *testing.T) {
	cfg := &config.Config{AuthBackend: "ldap", JWTSecret: "s", JWTExpiryHours: 1}
	assert.Error(t, cfg.Validate())

	cfg = &config.Config{AuthBackend: config.AuthBackendStatic, JWTSecret: "", JWTExpiryHours: 1}
	assert.Error(t, cfg.Validate())

	cfg = &config.Config{AuthBackend: config.AuthBackendStatic, JWTSecret: "s", JWTExpiryHours: 0}
	assert.Error(t, cfg.Validate())
}
