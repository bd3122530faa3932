package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap/zapcore"
)

const (
	StorageMemory   = "memory"
	StorageSQLite   = "sqlite"
	StoragePostgres = "postgres"
	StorageBolt     = "bolt"
)

type Config struct {
	Addr      string
	Storage   string
	DSN       string
	LogLevel  zapcore.Level
	Retention time.Duration
}

// Load reads configuration from the environment. Variables found in envFile
// are applied first unless already set; a missing file is not an error.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	cfg := &Config{
		Addr:      getenv("ROOMALLOC_ADDR", ":8080"),
		Storage:   strings.ToLower(getenv("ROOMALLOC_STORAGE", StorageMemory)),
		DSN:       os.Getenv("ROOMALLOC_DSN"),
		LogLevel:  zapcore.InfoLevel,
		Retention: time.Hour,
	}

	if lvl := os.Getenv("ROOMALLOC_LOG_LEVEL"); lvl != "" {
		if err := cfg.LogLevel.UnmarshalText([]byte(lvl)); err != nil {
			return nil, fmt.Errorf("ROOMALLOC_LOG_LEVEL: %w", err)
		}
	}

	if v := os.Getenv("ROOMALLOC_RETENTION"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("ROOMALLOC_RETENTION: %w", err)
		}
		if d <= 0 {
			return nil, fmt.Errorf("ROOMALLOC_RETENTION must be positive, got %s", d)
		}
		cfg.Retention = d
	}

	switch cfg.Storage {
	case StorageMemory:
	case StorageSQLite, StorageBolt:
		if cfg.DSN == "" {
			cfg.DSN = "data/roomalloc." + cfg.Storage
		}
	case StoragePostgres:
		if cfg.DSN == "" {
			return nil, errors.New("ROOMALLOC_DSN is required for postgres storage")
		}
	default:
		return nil, fmt.Errorf("unknown storage %q", cfg.Storage)
	}

	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
