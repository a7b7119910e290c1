package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

const defaultJWTSecret = "your-secret-key-change-in-production"

// Store drivers
const (
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

// Config: toàn bộ runtime config, chỉ đọc từ env.
// Database config load riêng qua LoadDatabaseConfig vì memory store không cần.
type Config struct {
	App   AppConfig
	Redis RedisConfig
	JWT   JWTConfig
	Log   LogConfig
}

type AppConfig struct {
	Name        string
	Environment string // development, staging, production
	Port        string
	Version     string
	Store       string // postgres | memory
	AutoMigrate bool
}

type RedisConfig struct {
	Enabled  bool
	Host     string
	Password string
	DB       int
	UserTTL  time.Duration
}

type JWTConfig struct {
	Secret      string
	TokenExpiry time.Duration
}

type LogConfig struct {
	Level string
}

// Load đọc config từ environment variables
func Load() (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "sideHUSTLE API"),
			Environment: getEnv("APP_ENV", "development"),
			Port:        getEnv("APP_PORT", "8000"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
			Store:       getEnv("APP_STORE", StorePostgres),
			AutoMigrate: getEnvBool("APP_AUTO_MIGRATE", true),
		},
		Redis: RedisConfig{
			Enabled:  getEnvBool("REDIS_ENABLED", true),
			Host:     getEnv("REDIS_HOST", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
			UserTTL:  getEnvDuration("REDIS_USER_TTL", 15*time.Minute),
		},
		JWT: JWTConfig{
			Secret:      getEnv("JWT_SECRET", defaultJWTSecret),
			TokenExpiry: getEnvDuration("JWT_TOKEN_EXPIRY", 7*24*time.Hour),
		},
		Log: LogConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Validate chặn các tổ hợp config không an toàn trước khi wire dependency
func (c *Config) Validate() error {
	switch c.App.Store {
	case StorePostgres, StoreMemory:
	default:
		return fmt.Errorf("APP_STORE must be %q or %q, got %q", StorePostgres, StoreMemory, c.App.Store)
	}

	if c.JWT.TokenExpiry <= 0 {
		return fmt.Errorf("JWT_TOKEN_EXPIRY must be positive")
	}

	if c.App.Environment == "production" {
		if c.JWT.Secret == defaultJWTSecret {
			return fmt.Errorf("JWT_SECRET must be set in production")
		}
		if c.App.Store == StoreMemory {
			return fmt.Errorf("APP_STORE=memory is not allowed in production")
		}
	}

	return nil
}

// ========================================
// ENV HELPERS
// ========================================
// Giá trị rỗng hoặc parse lỗi -> dùng default (DB_* thì strict, xem database.go)

func getEnv(key, defaultValue string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return defaultValue
}

func getEnvAs[T any](key string, defaultValue T, parse func(string) (T, error)) T {
	raw := getEnv(key, "")
	if raw == "" {
		return defaultValue
	}
	v, err := parse(raw)
	if err != nil {
		return defaultValue
	}
	return v
}

func getEnvInt(key string, defaultValue int) int {
	return getEnvAs(key, defaultValue, strconv.Atoi)
}

func getEnvBool(key string, defaultValue bool) bool {
	return getEnvAs(key, defaultValue, strconv.ParseBool)
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	return getEnvAs(key, defaultValue, time.ParseDuration)
}
