package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var requiredEnv = map[string]string{
	"DB_DSN":    "file:test.db",
	"REDIS_URL": "redis://localhost:6379/0",
}

func setEnv(t *testing.T, values map[string]string) {
	t.Helper()
	for k, v := range values {
		t.Setenv(k, v)
	}
}

// TestLoad_Defaults verifies that default values are used when env vars are missing.
func TestLoad_Defaults(t *testing.T) {
	os.Unsetenv("APP_ENV")
	os.Unsetenv("LOG_LEVEL")
	os.Unsetenv("SERVER_PORT")
	os.Unsetenv("DB_DRIVER")
	os.Unsetenv("CART_TTL_HOURS")
	os.Unsetenv("ORDERS_ALLOW_DEFAULT_CLIENT")
	setEnv(t, requiredEnv)

	cfg, err := Load(".")
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 8080, cfg.ServerPort)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.True(t, cfg.Database.AutoMigrate)
	assert.Equal(t, 72*time.Hour, cfg.Redis.CartTTL())
	assert.False(t, cfg.Orders.AllowDefaultClient)
	assert.False(t, cfg.IsProduction())
}

// TestLoad_EnvVars verifies that environment variables override defaults.
func TestLoad_EnvVars(t *testing.T) {
	setEnv(t, requiredEnv)
	setEnv(t, map[string]string{
		"APP_ENV":                     "production",
		"LOG_LEVEL":                   "debug",
		"SERVER_PORT":                 "9090",
		"DB_DRIVER":                   "postgres",
		"DB_DSN":                      "postgres://portal@localhost/portal",
		"CART_TTL_HOURS":              "1",
		"ORDERS_ALLOW_DEFAULT_CLIENT": "true",
	})

	cfg, err := Load(".")
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.Environment)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 9090, cfg.ServerPort)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, "postgres://portal@localhost/portal", cfg.Database.DSN)
	assert.Equal(t, time.Hour, cfg.Redis.CartTTL())
	assert.True(t, cfg.Orders.AllowDefaultClient)
	assert.True(t, cfg.IsProduction())
}

// TestLoad_File verifies that values are loaded from a .env file.
func TestLoad_File(t *testing.T) {
	os.Unsetenv("APP_ENV")
	os.Unsetenv("LOG_LEVEL")
	os.Unsetenv("SERVER_PORT")
	os.Unsetenv("DB_DSN")
	os.Unsetenv("REDIS_URL")

	content := []byte(`
APP_ENV=staging
LOG_LEVEL=warn
SERVER_PORT=7070
DB_DSN=file:staging.db
REDIS_URL=redis://localhost:6379/1
`)
	err := os.WriteFile(".env", content, 0644)
	require.NoError(t, err)
	defer os.Remove(".env")

	cfg, err := Load(".")
	require.NoError(t, err)

	assert.Equal(t, "staging", cfg.Environment)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, 7070, cfg.ServerPort)
	assert.Equal(t, "file:staging.db", cfg.Database.DSN)
}

// TestLoad_ValidationFailure verifies that missing required fields return an error.
func TestLoad_ValidationFailure(t *testing.T) {
	os.Unsetenv("DB_DSN")
	os.Unsetenv("REDIS_URL")

	cfg, err := Load(".")
	require.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "missing required configuration")
}

// TestLoad_UnsupportedDriver verifies that unknown dialects are rejected.
func TestLoad_UnsupportedDriver(t *testing.T) {
	setEnv(t, requiredEnv)
	t.Setenv("DB_DRIVER", "oracle")

	cfg, err := Load(".")
	require.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "unsupported DB_DRIVER")
}
