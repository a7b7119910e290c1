package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("APP_ENV", "")
	t.Setenv("APP_STORE", "")
	t.Setenv("JWT_TOKEN_EXPIRY", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "development", cfg.App.Environment)
	assert.Equal(t, StorePostgres, cfg.App.Store)
	assert.Equal(t, 7*24*time.Hour, cfg.JWT.TokenExpiry)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("APP_STORE", "memory")
	t.Setenv("REDIS_ENABLED", "false")
	t.Setenv("JWT_TOKEN_EXPIRY", "30m")
	t.Setenv("REDIS_DB", "not-a-number")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, StoreMemory, cfg.App.Store)
	assert.False(t, cfg.Redis.Enabled)
	assert.Equal(t, 30*time.Minute, cfg.JWT.TokenExpiry)
	assert.Equal(t, 0, cfg.Redis.DB)
}

func TestValidateProduction(t *testing.T) {
	cfg := &Config{
		App: AppConfig{Environment: "production", Store: StorePostgres},
		JWT: JWTConfig{Secret: defaultJWTSecret, TokenExpiry: time.Hour},
	}
	assert.ErrorContains(t, cfg.Validate(), "JWT_SECRET")

	cfg.JWT.Secret = "real"
	assert.NoError(t, cfg.Validate())

	cfg.App.Store = StoreMemory
	assert.ErrorContains(t, cfg.Validate(), "APP_STORE")
}

func TestValidateUnknownStore(t *testing.T) {
	cfg := &Config{App: AppConfig{Store: "mongo"}, JWT: JWTConfig{TokenExpiry: time.Hour}}
	assert.Error(t, cfg.Validate())
}

func TestLoadDatabaseConfig(t *testing.T) {
	t.Setenv("DB_PORT", "6543")
	t.Setenv("DB_RETRY_DELAY", "250ms")

	cfg, err := LoadDatabaseConfig()
	require.NoError(t, err)
	assert.Equal(t, 6543, cfg.Port)
	assert.Equal(t, 250*time.Millisecond, cfg.RetryDelay)

	t.Setenv("DB_PORT", "abc")
	t.Setenv("DB_CONNECT_TIMEOUT", "soon")
	_, err = LoadDatabaseConfig()
	assert.ErrorContains(t, err, "DB_PORT")
	assert.ErrorContains(t, err, "DB_CONNECT_TIMEOUT")
}

func TestLoadDatabaseConfigPoolBounds(t *testing.T) {
	t.Setenv("DB_MIN_CONNECTIONS", "10")
	t.Setenv("DB_MAX_CONNECTIONS", "4")

	_, err := LoadDatabaseConfig()
	assert.ErrorContains(t, err, "DB_MIN_CONNECTIONS")
}
