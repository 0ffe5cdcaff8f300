// Package config loads and saves the cutroom configuration file.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config holds the user-level settings stored at ~/.cutroom/config.json.
type Config struct {
	// LibraryPath is the root directory where course repos live.
	LibraryPath string `json:"library_path"`

	// ToolBin is the path to the external render/transcribe binary. Empty
	// means the tool is not installed; tool-backed commands will refuse to run.
	ToolBin string `json:"tool_bin,omitempty"`

	// ToolTimeoutSeconds bounds each external tool call.
	ToolTimeoutSeconds int `json:"tool_timeout_seconds"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `json:"log_level"`
}

// Default returns the configuration used when no file exists yet.
func Default() *Config {
	return &Config{
		ToolTimeoutSeconds: 300,
		LogLevel:           "info",
	}
}

// Path returns the config file location.
func Path() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".cutroom", "config.json"), nil
}

// Load reads the config file, falling back to defaults when it is absent.
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}
	return LoadFrom(path)
}

// LoadFrom reads a config file from an explicit path.
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := Default()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

// Save writes the config file, creating the directory if needed.
func (c *Config) Save() error {
	path, err := Path()
	if err != nil {
		return err
	}
	return c.SaveTo(path)
}

// SaveTo writes the config to an explicit path.
func (c *Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}
