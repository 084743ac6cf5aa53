// Package config defines the runtime configuration consumed by the
// stores and the capture daemon. Configuration is an explicit value
// passed into constructors, never a process-wide singleton, so stores
// can be tested with distinct configurations in the same run.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds the tunable limits. The stores consume the max_* values;
// poll_interval_ms and cleanup_interval_sec belong to the daemon.
type Config struct {
	PollIntervalMs     int `yaml:"poll_interval_ms"`
	MaxHistoryItems    int `yaml:"max_history_items"`
	MaxPins            int `yaml:"max_pins"`
	MaxEntryLength     int `yaml:"max_entry_length"`
	MaxAgeDays         int `yaml:"max_age_days"`
	CleanupIntervalSec int `yaml:"cleanup_interval_sec"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		PollIntervalMs:     500,
		MaxHistoryItems:    50,
		MaxPins:            50,
		MaxEntryLength:     10000,
		MaxAgeDays:         30,
		CleanupIntervalSec: 3600,
	}
}

// Manager manages configuration persistence.
type Manager struct {
	configPath string
}

// NewManager creates a configuration manager using the default path
// ~/.config/clippy/config.yaml.
func NewManager() (*Manager, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get user home directory: %w", err)
	}

	return &Manager{
		configPath: filepath.Join(homeDir, ".config", "clippy", "config.yaml"),
	}, nil
}

// NewManagerWithPath creates a config manager with a custom config path.
func NewManagerWithPath(configPath string) *Manager {
	return &Manager{configPath: configPath}
}

// Load reads the configuration from file. A missing file yields the
// defaults. Fields set to non-positive values in the file fall back to
// their defaults; a hand-edited config never disables a limit entirely.
func (m *Manager) Load() (Config, error) {
	if _, err := os.Stat(m.configPath); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(m.configPath)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyDefaults(&cfg)
	return cfg, nil
}

// Save validates and writes the configuration to file.
func (m *Manager) Save(cfg Config) error {
	if err := validate(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(m.configPath), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(m.configPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Path returns the path to the config file.
func (m *Manager) Path() string {
	return m.configPath
}

// Update sets a single configuration key to the given value and saves.
func (m *Manager) Update(key, value string) error {
	cfg, err := m.Load()
	if err != nil {
		return err
	}

	field, err := fieldFor(key, &cfg)
	if err != nil {
		return err
	}

	var n int
	if _, err := fmt.Sscanf(value, "%d", &n); err != nil {
		return fmt.Errorf("invalid integer value for %s: %s", key, value)
	}
	*field = n

	return m.Save(cfg)
}

// Get returns the value of a single configuration key.
func (m *Manager) Get(key string) (string, error) {
	cfg, err := m.Load()
	if err != nil {
		return "", err
	}

	field, err := fieldFor(key, &cfg)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%d", *field), nil
}

// List returns all configuration keys and values.
func (m *Manager) List() (map[string]string, error) {
	cfg, err := m.Load()
	if err != nil {
		return nil, err
	}

	return map[string]string{
		"poll_interval_ms":     fmt.Sprintf("%d", cfg.PollIntervalMs),
		"max_history_items":    fmt.Sprintf("%d", cfg.MaxHistoryItems),
		"max_pins":             fmt.Sprintf("%d", cfg.MaxPins),
		"max_entry_length":     fmt.Sprintf("%d", cfg.MaxEntryLength),
		"max_age_days":         fmt.Sprintf("%d", cfg.MaxAgeDays),
		"cleanup_interval_sec": fmt.Sprintf("%d", cfg.CleanupIntervalSec),
	}, nil
}

func fieldFor(key string, cfg *Config) (*int, error) {
	switch key {
	case "poll_interval_ms":
		return &cfg.PollIntervalMs, nil
	case "max_history_items":
		return &cfg.MaxHistoryItems, nil
	case "max_pins":
		return &cfg.MaxPins, nil
	case "max_entry_length":
		return &cfg.MaxEntryLength, nil
	case "max_age_days":
		return &cfg.MaxAgeDays, nil
	case "cleanup_interval_sec":
		return &cfg.CleanupIntervalSec, nil
	default:
		return nil, fmt.Errorf("unknown configuration key: %s", key)
	}
}

func applyDefaults(cfg *Config) {
	def := DefaultConfig()
	if cfg.PollIntervalMs <= 0 {
		cfg.PollIntervalMs = def.PollIntervalMs
	}
	if cfg.MaxHistoryItems <= 0 {
		cfg.MaxHistoryItems = def.MaxHistoryItems
	}
	if cfg.MaxPins <= 0 {
		cfg.MaxPins = def.MaxPins
	}
	if cfg.MaxEntryLength <= 0 {
		cfg.MaxEntryLength = def.MaxEntryLength
	}
	if cfg.MaxAgeDays <= 0 {
		cfg.MaxAgeDays = def.MaxAgeDays
	}
	if cfg.CleanupIntervalSec <= 0 {
		cfg.CleanupIntervalSec = def.CleanupIntervalSec
	}
}

func validate(cfg Config) error {
	if cfg.PollIntervalMs <= 0 {
		return fmt.Errorf("poll_interval_ms must be greater than 0")
	}
	if cfg.MaxHistoryItems <= 0 {
		return fmt.Errorf("max_history_items must be greater than 0")
	}
	if cfg.MaxPins <= 0 {
		return fmt.Errorf("max_pins must be greater than 0")
	}
	if cfg.MaxEntryLength <= 0 {
		return fmt.Errorf("max_entry_length must be greater than 0")
	}
	if cfg.MaxAgeDays <= 0 {
		return fmt.Errorf("max_age_days must be greater than 0")
	}
	if cfg.CleanupIntervalSec <= 0 {
		return fmt.Errorf("cleanup_interval_sec must be greater than 0")
	}
	return nil
}
