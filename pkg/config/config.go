package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/kerbaras/bookshelf/pkg/data"
	"github.com/kerbaras/bookshelf/pkg/services"
)

const (
	BackendXLSX   = "xlsx"
	BackendDuckDB = "duckdb"
	BackendMemory = "memory"

	DefaultFile           = "library.xlsx"
	DefaultOpenLibraryURL = "https://openlibrary.org"
)

// Config is the effective configuration after .env, environment and flags
// have been merged.
type Config struct {
	File           string
	Backend        string
	Duplicates     services.DuplicatePolicy
	CoversDir      string
	LogLevel       string
	LogFile        string
	OpenLibraryURL string
}

// Default returns the built-in configuration.
func Default() Config {
	coversDir := filepath.Join(".bookshelf", "covers")
	if home, err := os.UserHomeDir(); err == nil {
		coversDir = filepath.Join(home, ".bookshelf", "covers")
	}

	return Config{
		File:           DefaultFile,
		Backend:        BackendXLSX,
		Duplicates:     services.DuplicatesAllow,
		CoversDir:      coversDir,
		LogLevel:       "info",
		OpenLibraryURL: DefaultOpenLibraryURL,
	}
}

// Load reads envFiles (a missing .env is fine) and then BOOKSHELF_*
// variables on top of the defaults. Variables already in the environment
// win over the files.
func Load(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return Config{}, fmt.Errorf("failed to read %s: %w", f, err)
		}
	}

	cfg := Default()
	setString(&cfg.File, "BOOKSHELF_FILE")
	setString(&cfg.Backend, "BOOKSHELF_BACKEND")
	setString(&cfg.CoversDir, "BOOKSHELF_COVERS_DIR")
	setString(&cfg.LogLevel, "BOOKSHELF_LOG_LEVEL")
	setString(&cfg.LogFile, "BOOKSHELF_LOG_FILE")
	setString(&cfg.OpenLibraryURL, "BOOKSHELF_OPENLIBRARY_URL")

	if v, ok := os.LookupEnv("BOOKSHELF_DUPLICATES"); ok {
		p, err := services.ParseDuplicatePolicy(v)
		if err != nil {
			return Config{}, err
		}
		cfg.Duplicates = p
	}

	return cfg, cfg.Validate()
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
		*dst = strings.TrimSpace(v)
	}
}

// Validate rejects unknown backends, policies and log levels.
func (c Config) Validate() error {
	switch c.Backend {
	case BackendXLSX, BackendDuckDB, BackendMemory:
	default:
		return fmt.Errorf("unknown backend %q (want xlsx, duckdb or memory)", c.Backend)
	}
	if c.Backend != BackendMemory && c.File == "" {
		return fmt.Errorf("a catalog file is required for the %s backend", c.Backend)
	}
	if _, err := services.ParseDuplicatePolicy(string(c.Duplicates)); err != nil {
		return err
	}
	if _, err := parseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// Storage returns the backend selected by the configuration.
func (c Config) Storage() data.Storage {
	switch c.Backend {
	case BackendDuckDB:
		return data.NewDuckDBStorage(c.File)
	case BackendMemory:
		return data.NewMemoryStorage()
	}
	return data.NewXLSXStorage(c.File)
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("unknown log level %q", s)
	}
	return level, nil
}

// NewLogger builds the process logger. Logs go to LogFile when set,
// otherwise to fallback. The returned closer releases the log file.
func (c Config) NewLogger(fallback io.Writer) (*slog.Logger, io.Closer, error) {
	level, err := parseLevel(c.LogLevel)
	if err != nil {
		return nil, nil, err
	}

	w, closer := fallback, io.Closer(nopCloser{})
	if c.LogFile != "" {
		f, err := os.OpenFile(c.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file: %w", err)
		}
		w, closer = f, f
	}

	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	return slog.New(handler), closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
