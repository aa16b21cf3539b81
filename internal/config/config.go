// Package config handles the XDG configuration directory, the config.yaml
// settings file, and the persisted token slot.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// AppName is the application directory name.
	AppName = "tada"

	// SettingsFile is the settings filename.
	SettingsFile = "config.yaml"

	// TokenFile is the persisted auth token filename.
	TokenFile = "token"

	// DefaultServerURL is used when no server is configured.
	DefaultServerURL = "http://localhost:8080"
)

// Settings is the structure of config.yaml.
type Settings struct {
	// ServerURL is the base URL of the task service.
	ServerURL string `yaml:"server_url"`
}

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string

	// ServerURL is the base URL of the task service.
	ServerURL string

	// Debug enables debug logging.
	Debug bool

	// Quiet suppresses informational output.
	Quiet bool
}

// New creates a new Config with the default or specified config directory.
// If configDir is empty, uses XDG_CONFIG_HOME/tada or $HOME/.config/tada.
// Reads config.yaml if present; a missing settings file is not an error.
func New(configDir string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}

	cfg := &Config{Dir: dir, ServerURL: DefaultServerURL}

	data, err := os.ReadFile(cfg.SettingsPath())
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading %s: %w", SettingsFile, err)
	}

	var s Settings
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", SettingsFile, err)
	}
	if s.ServerURL != "" {
		cfg.ServerURL = s.ServerURL
	}
	return cfg, nil
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home can't be determined
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// SettingsPath returns the path to config.yaml.
func (c *Config) SettingsPath() string {
	return filepath.Join(c.Dir, SettingsFile)
}

// TokenPath returns the path to the persisted token slot.
func (c *Config) TokenPath() string {
	return filepath.Join(c.Dir, TokenFile)
}

// EnsureDir creates the config directory if it doesn't exist.
// Directory is created with mode 0700.
func (c *Config) EnsureDir() error {
	return os.MkdirAll(c.Dir, 0700)
}

// WriteSettings writes the current server URL to config.yaml.
func (c *Config) WriteSettings() error {
	if err := c.EnsureDir(); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := yaml.Marshal(Settings{ServerURL: c.ServerURL})
	if err != nil {
		return fmt.Errorf("marshalling settings: %w", err)
	}
	if err := os.WriteFile(c.SettingsPath(), data, 0644); err != nil {
		return fmt.Errorf("writing settings: %w", err)
	}
	return nil
}

// HasToken checks if the token slot exists.
func (c *Config) HasToken() bool {
	_, err := os.Stat(c.TokenPath())
	return err == nil
}

// ReadToken reads the persisted token. Returns "" if no token is stored.
func (c *Config) ReadToken() (string, error) {
	data, err := os.ReadFile(c.TokenPath())
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("reading token: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

// WriteToken persists the token with mode 0600.
func (c *Config) WriteToken(token string) error {
	if err := c.EnsureDir(); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	return os.WriteFile(c.TokenPath(), []byte(token+"\n"), 0600)
}

// RemoveToken deletes the token slot. Removing an absent slot is not an error.
func (c *Config) RemoveToken() error {
	err := os.Remove(c.TokenPath())
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
