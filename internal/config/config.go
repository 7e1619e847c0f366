package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds all tally configuration.
type Config struct {
	// Core settings
	Name    string `yaml:"name"`
	Version string `yaml:"version"`

	// DataDir holds the default database file and debug logs.
	DataDir string `yaml:"data_dir"`

	// Persistent key-value store
	Store StoreConfig `yaml:"store"`

	// Haptic and audio feedback defaults
	Feedback FeedbackConfig `yaml:"feedback"`

	// Terminal surface
	UI UIConfig `yaml:"ui"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`
}

// StoreConfig selects the backend for the persistent key-value store.
type StoreConfig struct {
	Driver string `yaml:"driver"` // sqlite, sqlite3, postgres, memory
	DSN    string `yaml:"dsn"`    // empty = <data_dir>/tally.db for the sqlite drivers
}

// FeedbackConfig holds the preference defaults used until the user changes them.
type FeedbackConfig struct {
	HapticDefault bool `yaml:"haptic_default"`
	AudioDefault  bool `yaml:"audio_default"`

	// Bell enables the terminal bell as the tone sink.
	Bell bool `yaml:"bell"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Name:    "tally",
		Version: "1.0.0",
		DataDir: DefaultDataDir(),

		Store: StoreConfig{
			Driver: "sqlite",
		},

		Feedback: FeedbackConfig{
			HapticDefault: true,
			AudioDefault:  false,
			Bell:          true,
		},

		UI: *DefaultUIConfig(),

		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// DefaultDataDir returns $XDG_DATA_HOME/tally, falling back to ~/.local/share/tally.
func DefaultDataDir() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, "tally")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".tally"
	}
	return filepath.Join(home, ".local", "share", "tally")
}

// DefaultConfigPath returns the default path to config.yaml.
func DefaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join(".tally", "config.yaml")
	}
	return filepath.Join(dir, "tally", "config.yaml")
}

// Load loads configuration from a YAML file.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Return defaults if config file doesn't exist
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	// Override with environment variables
	cfg.applyEnvOverrides()

	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if driver := os.Getenv("TALLY_STORE_DRIVER"); driver != "" {
		c.Store.Driver = driver
	}
	if dsn := os.Getenv("TALLY_DB"); dsn != "" {
		c.Store.DSN = dsn
	}
	if v := os.Getenv("TALLY_DEBUG"); v != "" {
		if on, err := strconv.ParseBool(v); err == nil {
			c.Logging.DebugMode = on
		}
	}
	if os.Getenv("TALLY_DARK_MODE") == "1" {
		c.UI.Theme = ThemeDark
	}
}

// StoreDSN returns the DSN for the configured driver, defaulting sqlite
// drivers to a file inside DataDir.
func (c *Config) StoreDSN() string {
	if c.Store.DSN != "" {
		return c.Store.DSN
	}
	switch c.Store.Driver {
	case "sqlite", "sqlite3":
		return filepath.Join(c.DataDir, "tally.db")
	}
	return ""
}

// LogsDir returns the directory debug logs are written to.
func (c *Config) LogsDir() string {
	return filepath.Join(c.DataDir, "logs")
}

// ValidDrivers lists all supported store drivers.
var ValidDrivers = []string{"sqlite", "sqlite3", "postgres", "memory"}

// Validate validates the configuration.
func (c *Config) Validate() error {
	validDriver := false
	for _, d := range ValidDrivers {
		if c.Store.Driver == d {
			validDriver = true
			break
		}
	}
	if !validDriver {
		return fmt.Errorf("invalid store driver: %s (valid: %v)", c.Store.Driver, ValidDrivers)
	}

	if c.Store.Driver == "postgres" && c.Store.DSN == "" {
		return fmt.Errorf("postgres store requires a DSN (set store.dsn or TALLY_DB)")
	}

	switch c.UI.Theme {
	case ThemeAuto, ThemeLight, ThemeDark:
	default:
		return fmt.Errorf("invalid theme: %s (valid: auto, light, dark)", c.UI.Theme)
	}

	return nil
}
