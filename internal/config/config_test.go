package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"ROOMALLOC_ADDR",
		"ROOMALLOC_STORAGE",
		"ROOMALLOC_DSN",
		"ROOMALLOC_LOG_LEVEL",
		"ROOMALLOC_RETENTION",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, StorageMemory, cfg.Storage)
	assert.Equal(t, zapcore.InfoLevel, cfg.LogLevel)
	assert.Equal(t, time.Hour, cfg.Retention)
}

func TestLoadFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("ROOMALLOC_ADDR", ":9000")
	t.Setenv("ROOMALLOC_STORAGE", "SQLite")
	t.Setenv("ROOMALLOC_LOG_LEVEL", "debug")
	t.Setenv("ROOMALLOC_RETENTION", "15m")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ":9000", cfg.Addr)
	assert.Equal(t, StorageSQLite, cfg.Storage)
	assert.Equal(t, "data/roomalloc.sqlite", cfg.DSN)
	assert.Equal(t, zapcore.DebugLevel, cfg.LogLevel)
	assert.Equal(t, 15*time.Minute, cfg.Retention)
}

func TestLoadEnvFile(t *testing.T) {
	clearEnv(t)
	// godotenv does not override variables that are already set, even empty.
	os.Unsetenv("ROOMALLOC_STORAGE")
	os.Unsetenv("ROOMALLOC_DSN")

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("ROOMALLOC_STORAGE=bolt\nROOMALLOC_DSN=/tmp/runs.db\n"), 0o600))
	t.Cleanup(func() {
		os.Unsetenv("ROOMALLOC_STORAGE")
		os.Unsetenv("ROOMALLOC_DSN")
	})

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, StorageBolt, cfg.Storage)
	assert.Equal(t, "/tmp/runs.db", cfg.DSN)
}

func TestLoadMissingEnvFile(t *testing.T) {
	clearEnv(t)

	_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	assert.NoError(t, err)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "unknown storage", env: map[string]string{"ROOMALLOC_STORAGE": "mongo"}},
		{name: "postgres without dsn", env: map[string]string{"ROOMALLOC_STORAGE": "postgres"}},
		{name: "bad level", env: map[string]string{"ROOMALLOC_LOG_LEVEL": "loud"}},
		{name: "bad retention", env: map[string]string{"ROOMALLOC_RETENTION": "soon"}},
		{name: "negative retention", env: map[string]string{"ROOMALLOC_RETENTION": "-1m"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load("")
			assert.Error(t, err)
		})
	}
}
