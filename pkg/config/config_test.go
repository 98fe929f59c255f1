package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/kerbaras/bookshelf/pkg/data"
	"github.com/kerbaras/bookshelf/pkg/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var envKeys = []string{
	"BOOKSHELF_FILE",
	"BOOKSHELF_BACKEND",
	"BOOKSHELF_DUPLICATES",
	"BOOKSHELF_COVERS_DIR",
	"BOOKSHELF_LOG_LEVEL",
	"BOOKSHELF_LOG_FILE",
	"BOOKSHELF_OPENLIBRARY_URL",
}

// clearEnv unsets every BOOKSHELF_* variable for the test and restores them
// afterwards.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range envKeys {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, DefaultFile, cfg.File)
	assert.Equal(t, BackendXLSX, cfg.Backend)
	assert.Equal(t, services.DuplicatesAllow, cfg.Duplicates)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, DefaultOpenLibraryURL, cfg.OpenLibraryURL)
	assert.Contains(t, cfg.CoversDir, filepath.Join(".bookshelf", "covers"))
}

func TestLoadEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("BOOKSHELF_FILE", "/srv/library.db")
	t.Setenv("BOOKSHELF_BACKEND", "duckdb")
	t.Setenv("BOOKSHELF_DUPLICATES", "reject")
	t.Setenv("BOOKSHELF_LOG_LEVEL", "debug")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "/srv/library.db", cfg.File)
	assert.Equal(t, BackendDuckDB, cfg.Backend)
	assert.Equal(t, services.DuplicatesReject, cfg.Duplicates)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadDotEnvFile(t *testing.T) {
	clearEnv(t)

	envFile := filepath.Join(t.TempDir(), ".env")
	content := "BOOKSHELF_FILE=from-dotenv.xlsx\nBOOKSHELF_COVERS_DIR=/tmp/covers\n"
	require.NoError(t, os.WriteFile(envFile, []byte(content), 0644))

	// variables already set win over the file
	t.Setenv("BOOKSHELF_COVERS_DIR", "/var/covers")

	cfg, err := Load(envFile)
	require.NoError(t, err)

	assert.Equal(t, "from-dotenv.xlsx", cfg.File)
	assert.Equal(t, "/var/covers", cfg.CoversDir)
}

func TestLoadRejectsUnknownValues(t *testing.T) {
	tests := []struct {
		key   string
		value string
	}{
		{"BOOKSHELF_BACKEND", "csv"},
		{"BOOKSHELF_DUPLICATES", "sometimes"},
		{"BOOKSHELF_LOG_LEVEL", "loud"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)

			_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
			assert.Error(t, err)
		})
	}
}

func TestValidateRequiresFile(t *testing.T) {
	cfg := Default()
	cfg.File = ""
	assert.Error(t, cfg.Validate())

	cfg.Backend = BackendMemory
	assert.NoError(t, cfg.Validate())
}

func TestStorageSelection(t *testing.T) {
	cfg := Default()
	cfg.File = filepath.Join(t.TempDir(), "library")

	assert.IsType(t, &data.XLSXStorage{}, cfg.Storage())

	cfg.Backend = BackendDuckDB
	assert.IsType(t, &data.DuckDBStorage{}, cfg.Storage())

	cfg.Backend = BackendMemory
	assert.IsType(t, &data.MemoryStorage{}, cfg.Storage())
}

func TestNewLoggerLevels(t *testing.T) {
	cfg := Default()
	cfg.LogLevel = "warn"

	var buf bytes.Buffer
	logger, closer, err := cfg.NewLogger(&buf)
	require.NoError(t, err)
	defer closer.Close()

	logger.Info("hidden")
	logger.Warn("shown", "book", "Dune")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
	assert.Contains(t, buf.String(), "book=Dune")
}

func TestNewLoggerFile(t *testing.T) {
	cfg := Default()
	cfg.LogFile = filepath.Join(t.TempDir(), "bookshelf.log")

	var buf bytes.Buffer
	logger, closer, err := cfg.NewLogger(&buf)
	require.NoError(t, err)

	logger.Info("book added", "title", "Dune")
	require.NoError(t, closer.Close())

	content, err := os.ReadFile(cfg.LogFile)
	require.NoError(t, err)
	assert.Contains(t, string(content), "book added")
	assert.Empty(t, buf.String())
}
