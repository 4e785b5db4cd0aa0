package persist

import (
	"fmt"

	applog "github.com/michaelfuchaka/Personal-Finance-Tracker/internal/log"
)

// Kind selects a persistence adapter.
type Kind string

const (
	FileKind   Kind = "file"
	SQLiteKind Kind = "sqlite"
)

func (k Kind) String() string { return string(k) }

// IsValid returns true if the kind is a known adapter.
func (k Kind) IsValid() bool {
	switch k {
	case FileKind, SQLiteKind:
		return true
	default:
		return false
	}
}

// Config holds configuration for adapter creation.
type Config struct {
	Kind Kind

	// File specific
	FilePath string

	// SQLite specific
	SQLiteDBPath string
	Key          string
}

// Result contains the adapter and a cleanup function, always non-nil.
type Result struct {
	Store   BlobStore
	Cleanup func() error
}

// Open creates the persistence adapter described by the config.
func Open(cfg Config, logger *applog.Logger) (*Result, error) {
	if !cfg.Kind.IsValid() {
		return nil, fmt.Errorf("invalid persistence kind: %s", cfg.Kind)
	}

	key := cfg.Key
	if key == "" {
		key = DefaultKey
	}

	switch cfg.Kind {
	case SQLiteKind:
		db, err := NewSQLite(cfg.SQLiteDBPath, key)
		if err != nil {
			return nil, fmt.Errorf("initialize sqlite adapter: %w", err)
		}
		logger.Info("Initialized sqlite persistence", "db_path", cfg.SQLiteDBPath, "key", key)
		return &Result{Store: db, Cleanup: db.Close}, nil
	default:
		f, err := NewJSONFile(cfg.FilePath)
		if err != nil {
			return nil, fmt.Errorf("initialize file adapter: %w", err)
		}
		logger.Info("Initialized file persistence", "path", cfg.FilePath)
		return &Result{Store: f, Cleanup: func() error { return nil }}, nil
	}
}
