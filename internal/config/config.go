package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

type Config struct {
	// HTTP Server
	Port string

	// Persistence
	DataBackend  string // "file" or "sqlite"
	DataFilePath string
	SQLiteDBPath string
	StorageKey   string
}

func Load() *Config {
	cfg := &Config{
		Port: getEnv("PORT", "8080"),

		DataBackend:  getEnv("DATA_BACKEND", "file"),
		DataFilePath: getEnv("DATA_FILE_PATH", "./data/transactions.json"),
		SQLiteDBPath: getEnv("SQLITE_DB_PATH", "./data/fintrack.db"),
		StorageKey:   getEnv("STORAGE_KEY", "financeTrackerTransactions"),
	}

	return cfg
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	// Validate port
	if port, err := strconv.Atoi(c.Port); err != nil {
		errors = append(errors, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	// Validate data backend
	validBackends := []string{"file", "sqlite"}
	isValidBackend := false
	for _, backend := range validBackends {
		if c.DataBackend == backend {
			isValidBackend = true
			break
		}
	}
	if !isValidBackend {
		errors = append(errors, fmt.Sprintf("invalid data backend '%s': must be one of %v", c.DataBackend, validBackends))
	}

	// Validate file configuration if backend is file
	if c.DataBackend == "file" {
		if c.DataFilePath == "" {
			errors = append(errors, "data file path cannot be empty when using file backend")
		} else {
			errors = appendDirError(errors, c.DataFilePath)
		}
	}

	// Validate SQLite configuration if backend is sqlite
	if c.DataBackend == "sqlite" {
		if c.SQLiteDBPath == "" {
			errors = append(errors, "SQLite database path cannot be empty when using sqlite backend")
		} else {
			errors = appendDirError(errors, c.SQLiteDBPath)
		}
	}

	if c.StorageKey == "" {
		errors = append(errors, "storage key cannot be empty")
	}

	// Return combined errors
	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

// appendDirError checks that the parent directory exists or can be created.
func appendDirError(errors []string, path string) []string {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return errors
	}
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		if err := os.MkdirAll(dir, 0755); err != nil {
			errors = append(errors, fmt.Sprintf("cannot create data directory '%s': %v", dir, err))
		}
	}
	return errors
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
