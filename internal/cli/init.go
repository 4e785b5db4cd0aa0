// Package cli provides common entrypoint initialization utilities shared by
// cmd/fintrack and cmd/fintrack-export.
package cli

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/michaelfuchaka/Personal-Finance-Tracker/internal/config"
	applog "github.com/michaelfuchaka/Personal-Finance-Tracker/internal/log"
	"github.com/michaelfuchaka/Personal-Finance-Tracker/internal/persist"
)

// SetupLogger initializes structured logging with default settings and sets
// it as the process default.
func SetupLogger() *applog.Logger {
	logger := applog.New(slog.LevelInfo, applog.ComponentApp)
	applog.SetDefault(logger)
	return logger
}

// LoadEnvFile loads the .env file for local development.
// Errors are ignored silently as this is optional in production.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// LoadAndValidateConfig loads configuration and validates it.
// Returns the config or exits the process on validation failure.
func LoadAndValidateConfig(logger *applog.Logger) *config.Config {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}
	return cfg
}

// OpenBlobStore creates the persistence adapter selected by the config.
// Returns the adapter or exits the process on failure.
func OpenBlobStore(logger *applog.Logger, cfg *config.Config) *persist.Result {
	res, err := persist.Open(persist.Config{
		Kind:         persist.Kind(cfg.DataBackend),
		FilePath:     cfg.DataFilePath,
		SQLiteDBPath: cfg.SQLiteDBPath,
		Key:          cfg.StorageKey,
	}, logger.WithComponent(applog.ComponentPersist))
	if err != nil {
		logger.Error("Failed to initialize persistence", "error", err, "backend", cfg.DataBackend)
		os.Exit(1)
	}
	return res
}
