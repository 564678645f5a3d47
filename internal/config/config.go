package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// FileName is the default config file name.
const FileName = "ledgerdesk.yaml"

// Config represents the top-level ledgerdesk.yaml configuration.
type Config struct {
	API      APIConfig      `yaml:"api"`
	Logging  LoggingConfig  `yaml:"logging"`
	Activity ActivityConfig `yaml:"activity"`
}

// APIConfig locates the school management backend.
type APIConfig struct {
	BaseURL  string        `yaml:"base_url"`
	Token    string        `yaml:"token,omitempty"`
	PageSize int           `yaml:"page_size"`
	Timeout  time.Duration `yaml:"timeout,omitempty"` // zero = no timeout
}

// LoggingConfig controls slog output.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // console, json
}

// ActivityConfig controls the local activity log.
type ActivityConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"` // relative paths resolve against the config file's directory
}

// Load reads a ledgerdesk.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default("")
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new setup.
func Default(baseURL string) *Config {
	return &Config{
		API: APIConfig{
			BaseURL:  baseURL,
			PageSize: 100,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Activity: ActivityConfig{
			Enabled: true,
			Path:    "activity-log.csv",
		},
	}
}

// ActivityPath resolves the activity log path relative to the config file.
func (c *Config) ActivityPath(configPath string) string {
	if filepath.IsAbs(c.Activity.Path) || configPath == "" {
		return c.Activity.Path
	}
	return filepath.Join(filepath.Dir(configPath), c.Activity.Path)
}
