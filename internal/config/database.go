package config

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"sidehustle-backend/internal/infrastructure/database"
)

// envParser gom lỗi parse để báo một lần, thay vì dừng ở biến sai đầu tiên
type envParser struct {
	errs []error
}

func (p *envParser) getInt(key string, def int) int {
	raw := getEnv(key, strconv.Itoa(def))
	v, err := strconv.Atoi(raw)
	if err != nil {
		p.errs = append(p.errs, fmt.Errorf("invalid %s %q: %w", key, raw, err))
		return def
	}
	return v
}

func (p *envParser) getDuration(key string, def time.Duration) time.Duration {
	raw := getEnv(key, def.String())
	v, err := time.ParseDuration(raw)
	if err != nil {
		p.errs = append(p.errs, fmt.Errorf("invalid %s %q: %w", key, raw, err))
		return def
	}
	return v
}

// LoadDatabaseConfig đọc DB_* env vars (pool sizing + retry khi startup)
func LoadDatabaseConfig() (*database.DBConfig, error) {
	var p envParser

	cfg := &database.DBConfig{
		Host:              getEnv("DB_HOST", "localhost"),
		Port:              p.getInt("DB_PORT", 5432),
		Username:          getEnv("DB_USER", "sidehustle"),
		Password:          getEnv("DB_PASSWORD", "secret"),
		DBName:            getEnv("DB_NAME", "sidehustle_dev"),
		SSLMode:           getEnv("DB_SSLMODE", "disable"),
		MaxConns:          int32(p.getInt("DB_MAX_CONNECTIONS", 25)),
		MinConns:          int32(p.getInt("DB_MIN_CONNECTIONS", 2)),
		MaxConnLifetime:   p.getDuration("DB_MAX_CONN_LIFETIME", 5*time.Minute),
		MaxConnIdleTime:   p.getDuration("DB_MAX_CONN_IDLE_TIME", time.Minute),
		HealthCheckPeriod: p.getDuration("DB_HEALTH_CHECK_PERIOD", time.Minute),
		MaxRetries:        p.getInt("DB_MAX_RETRIES", 5),
		RetryDelay:        p.getDuration("DB_RETRY_DELAY", time.Second),
		ConnectTimeout:    p.getDuration("DB_CONNECT_TIMEOUT", 10*time.Second),
	}

	if err := errors.Join(p.errs...); err != nil {
		return nil, err
	}
	if cfg.MinConns > cfg.MaxConns {
		return nil, fmt.Errorf("DB_MIN_CONNECTIONS (%d) > DB_MAX_CONNECTIONS (%d)", cfg.MinConns, cfg.MaxConns)
	}
	return cfg, nil
}
