// Package config loads and saves the CLI configuration file. Only key IDs
// and endpoint settings live here; secrets go through the keyring package.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Environment names accepted in the config file.
const (
	EnvLive  = "live"
	EnvPaper = "paper"
)

// DefaultEnvironment is used when the config file does not name one.
// Paper is the safe default for a fresh setup.
const DefaultEnvironment = EnvPaper

// Config holds the CLI configuration.
type Config struct {
	LiveKeyID   string `yaml:"live_key_id"`
	PaperKeyID  string `yaml:"paper_key_id"`
	Environment string `yaml:"environment"`

	// LiveBaseURL and PaperBaseURL override the default API endpoints.
	LiveBaseURL  string `yaml:"live_base_url"`
	PaperBaseURL string `yaml:"paper_base_url"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Environment: DefaultEnvironment,
	}
}

// Load reads the config file at path. A missing file yields defaults, not
// an error; a malformed file is an error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if cfg.Environment == "" {
		cfg.Environment = DefaultEnvironment
	}
	if cfg.Environment != EnvLive && cfg.Environment != EnvPaper {
		return nil, fmt.Errorf("invalid environment %q (must be %q or %q)", cfg.Environment, EnvLive, EnvPaper)
	}

	return cfg, nil
}

// Save writes the config file at path with 0600 permissions, creating
// parent directories as needed.
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// ConfigDir returns the directory holding the config file, following
// XDG_CONFIG_HOME when set.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "alp")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".config", "alp")
}

// ConfigPath returns the full path of the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}
