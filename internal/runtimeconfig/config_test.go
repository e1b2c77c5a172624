package runtimeconfig

import (
	"errors"
	"testing"
	"time"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}

	if cfg.Board.Capacity != 9 {
		t.Fatalf("capacity = %d, want 9", cfg.Board.Capacity)
	}
	if cfg.Board.AutoSaveInterval != 2*time.Second {
		t.Fatalf("autoSaveInterval = %v", cfg.Board.AutoSaveInterval)
	}
	if cfg.Board.ClockTick != time.Second {
		t.Fatalf("clockTick = %v", cfg.Board.ClockTick)
	}
}

func TestValidateRejections(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
		want   error
	}{
		{"zero capacity", func(c *Config) { c.Board.Capacity = 0 }, ErrCapacityInvalid},
		{"negative autosave", func(c *Config) { c.Board.AutoSaveInterval = -time.Second }, ErrAutoSaveIntervalInvalid},
		{"zero clock tick", func(c *Config) { c.Board.ClockTick = 0 }, ErrClockTickInvalid},
		{"zero fetch timeout", func(c *Config) { c.Fetch.Timeout = 0 }, ErrFetchTimeoutInvalid},
		{"unknown driver", func(c *Config) { c.Storage.Driver = "cassandra" }, ErrStorageDriverUnknown},
		{"sqlite without dsn", func(c *Config) { c.Storage.Driver = "sqlite" }, ErrStorageDSNRequired},
		{"unknown logging provider", func(c *Config) { c.Logging.Provider = "syslog" }, ErrLoggingProviderUnknown},
		{"unknown logging level", func(c *Config) { c.Logging.Level = "verbose" }, ErrLoggingLevelInvalid},
		{"unknown logging format", func(c *Config) { c.Logging.Format = "xml" }, ErrLoggingFormatInvalid},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, tc.want) {
				t.Fatalf("err = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestValidateAcceptsSQLiteWithDSN(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Storage.Driver = "sqlite"
	cfg.Storage.DSN = "file:dashboard.db?_fk=1"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("sqlite config rejected: %v", err)
	}
}

func TestDriverNameDefaults(t *testing.T) {
	if got := (StorageConfig{}).DriverName(); got != StorageDriverMemory {
		t.Fatalf("driver = %q", got)
	}
	if got := (StorageConfig{Driver: " SQLite "}).DriverName(); got != StorageDriverSQLite {
		t.Fatalf("driver = %q", got)
	}
}

func TestProviderNameDefaults(t *testing.T) {
	if got := (LoggingConfig{}).ProviderName(); got != LoggingProviderConsole {
		t.Fatalf("provider = %q", got)
	}
	if got := (LoggingConfig{Provider: "GoLogger"}).ProviderName(); got != LoggingProviderGoLogger {
		t.Fatalf("provider = %q", got)
	}
}
