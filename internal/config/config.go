// Package config handles XDG configuration directory and file paths.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	// AppName is the application directory name.
	AppName = "taskdeck"

	// SettingsFile holds the remote endpoints.
	SettingsFile = "config.yaml"

	// TokenFile is the stored session token filename.
	TokenFile = "token.json"

	// DefaultAPIURL is the task API base used when nothing is configured.
	DefaultAPIURL = "http://localhost:8787/api"

	// DefaultAuthURL is the identity provider base used when nothing is
	// configured.
	DefaultAuthURL = "http://localhost:8787/auth"
)

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string

	// APIURL is the base URL of the remote task store.
	APIURL string

	// AuthURL is the base URL of the identity provider.
	AuthURL string

	// Debug enables debug logging.
	Debug bool

	// Quiet suppresses informational output.
	Quiet bool
}

// settings is the on-disk shape of config.yaml.
type settings struct {
	APIURL  string `yaml:"api_url"`
	AuthURL string `yaml:"auth_url"`
}

// New creates a Config with the default or specified config directory and
// resolves endpoints in precedence order: environment, config.yaml, defaults.
// If configDir is empty, uses XDG_CONFIG_HOME/taskdeck or $HOME/.config/taskdeck.
func New(configDir string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}
	cfg := &Config{Dir: dir}

	if data, err := os.ReadFile(cfg.SettingsPath()); err == nil {
		var s settings
		if err := yaml.Unmarshal(data, &s); err != nil {
			return nil, fmt.Errorf("invalid %s: %w", SettingsFile, err)
		}
		cfg.APIURL = s.APIURL
		cfg.AuthURL = s.AuthURL
	}

	if v := os.Getenv("TASKDECK_API_URL"); v != "" {
		cfg.APIURL = v
	}
	if v := os.Getenv("TASKDECK_AUTH_URL"); v != "" {
		cfg.AuthURL = v
	}

	if cfg.APIURL == "" {
		cfg.APIURL = DefaultAPIURL
	}
	if cfg.AuthURL == "" {
		cfg.AuthURL = DefaultAuthURL
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

// SettingsPath returns the path to the endpoints file.
func (c *Config) SettingsPath() string {
	return filepath.Join(c.Dir, SettingsFile)
}

// TokenPath returns the path to the stored session token file.
func (c *Config) TokenPath() string {
	return filepath.Join(c.Dir, TokenFile)
}

// EnsureDir creates the config directory if it doesn't exist.
// Directory is created with mode 0700.
func (c *Config) EnsureDir() error {
	return os.MkdirAll(c.Dir, 0700)
}

// HasToken checks if the token file exists.
func (c *Config) HasToken() bool {
	_, err := os.Stat(c.TokenPath())
	return err == nil
}

// SaveSettings writes the endpoints file with mode 0600.
func (c *Config) SaveSettings() error {
	if err := c.EnsureDir(); err != nil {
		return err
	}
	data, err := yaml.Marshal(settings{APIURL: c.APIURL, AuthURL: c.AuthURL})
	if err != nil {
		return err
	}
	return os.WriteFile(c.SettingsPath(), data, 0600)
}
