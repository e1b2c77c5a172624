package runtimeconfig

import (
	"errors"
	"strings"
	"time"
)

// ErrCapacityInvalid rejects board capacities that cannot hold a grid.
var ErrCapacityInvalid = errors.New("dashboard config: board capacity must be positive")

// ErrAutoSaveIntervalInvalid rejects non-positive auto-save safety-net intervals.
var ErrAutoSaveIntervalInvalid = errors.New("dashboard config: auto-save interval must be positive")

// ErrClockTickInvalid rejects non-positive clock re-render intervals.
var ErrClockTickInvalid = errors.New("dashboard config: clock tick interval must be positive")

// ErrFetchTimeoutInvalid rejects non-positive fetch timeouts.
var ErrFetchTimeoutInvalid = errors.New("dashboard config: fetch timeout must be positive")

// ErrStorageDriverUnknown rejects persistence drivers the module cannot build.
var ErrStorageDriverUnknown = errors.New("dashboard config: storage driver is invalid")

// ErrStorageDSNRequired requires a DSN whenever the sqlite driver is selected.
var ErrStorageDSNRequired = errors.New("dashboard config: storage dsn is required for the sqlite driver")

var ErrLoggingProviderUnknown = errors.New("dashboard config: logging provider is invalid")
var ErrLoggingLevelInvalid = errors.New("dashboard config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("dashboard config: logging format is invalid")

// Storage driver names accepted by StorageConfig.Driver.
const (
	StorageDriverMemory = "memory"
	StorageDriverSQLite = "sqlite"
)

// Logging provider names accepted by LoggingConfig.Provider.
const (
	LoggingProviderConsole  = "console"
	LoggingProviderGoLogger = "gologger"
	LoggingProviderNoop     = "noop"
)

// Config aggregates feature flags and adapter bindings for the dashboard module.
// Fields intentionally use simple types so host applications can extend them later.
type Config struct {
	Board    BoardConfig
	Fetch    FetchConfig
	Storage  StorageConfig
	Logging  LoggingConfig
	Features Features
}

// BoardConfig controls grid shape and timer cadence.
type BoardConfig struct {
	Capacity         int
	AutoSaveInterval time.Duration
	ClockTick        time.Duration
}

// FetchConfig tunes the HTTP fetch collaborator.
type FetchConfig struct {
	Timeout   time.Duration
	UserAgent string
}

// StorageConfig selects the durable blob backend.
type StorageConfig struct {
	Driver string // "memory" or "sqlite"
	DSN    string
}

// DriverName returns the canonical storage driver name, defaulting to the
// in-memory driver.
func (c StorageConfig) DriverName() string {
	name := strings.ToLower(strings.TrimSpace(c.Driver))
	if name == "" {
		return StorageDriverMemory
	}
	return name
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string // "console", "gologger", or "noop"
	Level     string
	Format    string
	AddSource bool
	Focus     []string
}

// ProviderName returns the canonical logging provider name, defaulting to
// the console provider.
func (c LoggingConfig) ProviderName() string {
	name := strings.ToLower(strings.TrimSpace(c.Provider))
	if name == "" {
		return LoggingProviderConsole
	}
	return name
}

// Features toggles module functionality.
type Features struct {
	AutoSave bool
	DemoSeed bool
}

// DefaultConfig returns the runtime defaults matching the documented grid:
// nine slots, two-second auto-save safety net, one-second clock re-render.
func DefaultConfig() Config {
	return Config{
		Board: BoardConfig{
			Capacity:         9,
			AutoSaveInterval: 2 * time.Second,
			ClockTick:        time.Second,
		},
		Fetch: FetchConfig{
			Timeout:   10 * time.Second,
			UserAgent: "go-dashboard",
		},
		Storage: StorageConfig{
			Driver: "memory",
		},
		Logging: LoggingConfig{
			Provider: "console",
			Level:    "info",
			Format:   "console",
		},
		Features: Features{
			AutoSave: true,
			DemoSeed: true,
		},
	}
}

// Validate surfaces configuration combinations the runtime cannot honour.
func (c Config) Validate() error {
	if c.Board.Capacity <= 0 {
		return ErrCapacityInvalid
	}
	if c.Board.AutoSaveInterval <= 0 {
		return ErrAutoSaveIntervalInvalid
	}
	if c.Board.ClockTick <= 0 {
		return ErrClockTickInvalid
	}
	if c.Fetch.Timeout <= 0 {
		return ErrFetchTimeoutInvalid
	}

	switch strings.ToLower(strings.TrimSpace(c.Storage.Driver)) {
	case "", "memory":
	case "sqlite":
		if strings.TrimSpace(c.Storage.DSN) == "" {
			return ErrStorageDSNRequired
		}
	default:
		return ErrStorageDriverUnknown
	}

	switch strings.ToLower(strings.TrimSpace(c.Logging.Provider)) {
	case "", "noop", "console", "gologger":
	default:
		return ErrLoggingProviderUnknown
	}

	switch strings.ToLower(strings.TrimSpace(c.Logging.Level)) {
	case "", "trace", "debug", "info", "warn", "warning", "error", "fatal":
	default:
		return ErrLoggingLevelInvalid
	}

	switch strings.ToLower(strings.TrimSpace(c.Logging.Format)) {
	case "", "json", "console", "pretty":
	default:
		return ErrLoggingFormatInvalid
	}

	return nil
}
