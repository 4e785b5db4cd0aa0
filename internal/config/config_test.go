package config

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "DATA_BACKEND", "DATA_FILE_PATH", "SQLITE_DB_PATH", "STORAGE_KEY"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	if cfg.Port != "8080" {
		t.Fatalf("default port got %q", cfg.Port)
	}
	if cfg.DataBackend != "file" {
		t.Fatalf("default backend got %q", cfg.DataBackend)
	}
	if cfg.DataFilePath != "./data/transactions.json" {
		t.Fatalf("default file path got %q", cfg.DataFilePath)
	}
	if cfg.StorageKey != "financeTrackerTransactions" {
		t.Fatalf("default storage key got %q", cfg.StorageKey)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DATA_BACKEND", "sqlite")
	t.Setenv("SQLITE_DB_PATH", "/tmp/x.db")
	t.Setenv("STORAGE_KEY", "customKey")

	cfg := Load()
	if cfg.Port != "9090" || cfg.DataBackend != "sqlite" || cfg.SQLiteDBPath != "/tmp/x.db" || cfg.StorageKey != "customKey" {
		t.Fatalf("env not applied: %+v", cfg)
	}
}

func validConfig(t *testing.T) *Config {
	t.Helper()
	return &Config{
		Port:         "8080",
		DataBackend:  "file",
		DataFilePath: filepath.Join(t.TempDir(), "transactions.json"),
		SQLiteDBPath: filepath.Join(t.TempDir(), "fintrack.db"),
		StorageKey:   "financeTrackerTransactions",
	}
}

func TestValidateOK(t *testing.T) {
	if err := validConfig(t).Validate(); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}
}

func TestValidateFailures(t *testing.T) {
	cases := []struct {
		mutate func(*Config)
		want   string
	}{
		{func(c *Config) { c.Port = "abc" }, "invalid port"},
		{func(c *Config) { c.Port = "0" }, "invalid port"},
		{func(c *Config) { c.Port = "70000" }, "invalid port"},
		{func(c *Config) { c.DataBackend = "redis" }, "invalid data backend"},
		{func(c *Config) { c.DataFilePath = "" }, "data file path cannot be empty"},
		{func(c *Config) { c.DataBackend = "sqlite"; c.SQLiteDBPath = "" }, "SQLite database path cannot be empty"},
		{func(c *Config) { c.StorageKey = "" }, "storage key cannot be empty"},
	}
	for i, tc := range cases {
		cfg := validConfig(t)
		tc.mutate(cfg)
		err := cfg.Validate()
		if err == nil {
			t.Fatalf("case %d expected error", i)
		}
		if !strings.Contains(err.Error(), tc.want) {
			t.Fatalf("case %d error %q missing %q", i, err, tc.want)
		}
	}
}

func TestValidateCollectsAllErrors(t *testing.T) {
	cfg := &Config{Port: "abc", DataBackend: "redis", StorageKey: ""}
	err := cfg.Validate()
	if err == nil {
		t.Fatalf("expected error")
	}
	for _, want := range []string{"invalid port", "invalid data backend", "storage key cannot be empty"} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("combined error %q missing %q", err, want)
		}
	}
}
