package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Config represents the application configuration.
type Config struct {
	// Game parameters
	Game GameConfig `toml:"game"`

	// Storage configuration
	Storage StorageConfig `toml:"storage"`

	// Team import configuration
	Import ImportConfig `toml:"import"`

	// Key binding overrides
	Keys map[string]string `toml:"keys"`

	// Application configuration
	App AppConfig `toml:"app"`
}

// GameConfig contains the modeled game parameters.
type GameConfig struct {
	QuarterMinutes     int `toml:"quarter_minutes"`      // Length of a quarter
	OvertimeMinutes    int `toml:"overtime_minutes"`     // Length of an overtime period
	TimeoutSeconds     int `toml:"timeout_seconds"`      // Timeout countdown length
	TimeoutsFirstHalf  int `toml:"timeouts_first_half"`  // Allotment for periods 1-2
	TimeoutsSecondHalf int `toml:"timeouts_second_half"` // Allotment for periods 3-4
	TimeoutsOvertime   int `toml:"timeouts_overtime"`    // Allotment per overtime
}

// StorageConfig contains persistence settings.
type StorageConfig struct {
	DatabasePath     string `toml:"database_path"`     // SQLite file, empty = default location
	Autosave         bool   `toml:"autosave"`          // Save a snapshot after state changes
	AutosaveInterval string `toml:"autosave_interval"` // Minimum gap between autosaves (e.g., "2s")
	EncryptArchives  bool   `toml:"encrypt_archives"`  // Encrypt archived game documents
	PassphraseEnv    string `toml:"passphrase_env"`    // Env var holding the archive passphrase
}

// ImportConfig contains team document import settings.
type ImportConfig struct {
	WatchDir string `toml:"watch_dir"` // Directory watched for dropped team files
	Enabled  bool   `toml:"enabled"`   // Enable the directory watcher
}

// AppConfig contains general application settings.
type AppConfig struct {
	DebugMode bool `toml:"debug_mode"` // Enable debug logging
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Game: GameConfig{
			QuarterMinutes:     10,
			OvertimeMinutes:    5,
			TimeoutSeconds:     60,
			TimeoutsFirstHalf:  2,
			TimeoutsSecondHalf: 3,
			TimeoutsOvertime:   1,
		},
		Storage: StorageConfig{
			DatabasePath:     "",
			Autosave:         true,
			AutosaveInterval: "2s",
			EncryptArchives:  false,
			PassphraseEnv:    "LALK_ARCHIVE_PASSPHRASE",
		},
		Import: ImportConfig{
			WatchDir: "",
			Enabled:  false,
		},
		Keys: map[string]string{},
		App: AppConfig{
			DebugMode: false,
		},
	}
}

// configPath returns the path to the configuration file.
func configPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}

	configDir := filepath.Join(homeDir, ".lalk-stats")
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return "", fmt.Errorf("create config directory: %w", err)
	}

	return filepath.Join(configDir, "config.toml"), nil
}

// Load loads the configuration from the default location. Returns the
// default config if the file doesn't exist.
func Load() (*Config, error) {
	path, err := configPath()
	if err != nil {
		return nil, err
	}
	return LoadFrom(path)
}

// LoadFrom loads the configuration from an explicit path. Returns the
// default config if the file doesn't exist.
func LoadFrom(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	config := DefaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}

	return config, nil
}

// Save saves the configuration to the default location.
func (c *Config) Save() error {
	path, err := configPath()
	if err != nil {
		return err
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// Validate validates the configuration values.
func (c *Config) Validate() error {
	if c.Game.QuarterMinutes <= 0 {
		return fmt.Errorf("quarter minutes must be positive: %d", c.Game.QuarterMinutes)
	}
	if c.Game.OvertimeMinutes <= 0 {
		return fmt.Errorf("overtime minutes must be positive: %d", c.Game.OvertimeMinutes)
	}
	if c.Game.TimeoutSeconds <= 0 {
		return fmt.Errorf("timeout seconds must be positive: %d", c.Game.TimeoutSeconds)
	}
	if c.Game.TimeoutsFirstHalf < 0 || c.Game.TimeoutsSecondHalf < 0 || c.Game.TimeoutsOvertime < 0 {
		return fmt.Errorf("timeout allotments cannot be negative")
	}
	if _, err := time.ParseDuration(c.Storage.AutosaveInterval); err != nil {
		return fmt.Errorf("invalid autosave interval %q: %w", c.Storage.AutosaveInterval, err)
	}
	if c.Import.Enabled && c.Import.WatchDir == "" {
		return fmt.Errorf("import watcher enabled without a watch directory")
	}
	return nil
}

// GetAutosaveInterval returns the autosave interval as a duration.
func (c *Config) GetAutosaveInterval() (time.Duration, error) {
	return time.ParseDuration(c.Storage.AutosaveInterval)
}
