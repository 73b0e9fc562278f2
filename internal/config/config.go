// ABOUTME: Configuration management for snapjournal with YAML config loading.
// ABOUTME: Handles platform credentials, feed tuning, journal paths, and ~ expansion.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config stores snapjournal configuration loaded from ~/.config/snapjournal/config.yaml.
type Config struct {
	Platforms PlatformsConfig `yaml:"platforms"`
	Feed      FeedConfig      `yaml:"feed"`
	Journal   JournalConfig   `yaml:"journal"`
}

// PlatformsConfig holds per-platform connection settings. Access tokens
// set here seed first login; after that the session store is authoritative.
type PlatformsConfig struct {
	Mastodon MastodonConfig `yaml:"mastodon"`
	Bluesky  BlueskyConfig  `yaml:"bluesky"`
	Twitter  TwitterConfig  `yaml:"twitter"`
}

// MastodonConfig holds Mastodon instance settings.
type MastodonConfig struct {
	Server      string `yaml:"server"`
	AccessToken string `yaml:"access_token"`
}

// BlueskyConfig holds Bluesky PDS settings.
type BlueskyConfig struct {
	Server      string `yaml:"server"`
	AccessToken string `yaml:"access_token"`
}

// TwitterConfig holds Twitter API settings.
type TwitterConfig struct {
	AccessToken string `yaml:"access_token"`
}

// FeedConfig tunes feed fetching and ranking.
type FeedConfig struct {
	Algorithm           string `yaml:"algorithm"`
	DisplayLimit        int    `yaml:"display_limit"`
	PageSize            int    `yaml:"page_size"`
	LiveIntervalSeconds int    `yaml:"live_interval_seconds"`
}

// JournalConfig holds optional path overrides for journal storage.
type JournalConfig struct {
	DatabasePath string `yaml:"database_path"`
}

// ServerFor returns the configured server URL for a platform, empty if none.
func (c *Config) ServerFor(platform string) string {
	switch platform {
	case "mastodon":
		return c.Platforms.Mastodon.Server
	case "bluesky":
		return c.Platforms.Bluesky.Server
	default:
		return ""
	}
}

// TokenFor returns the configured access token for a platform, empty if none.
func (c *Config) TokenFor(platform string) string {
	switch platform {
	case "mastodon":
		return c.Platforms.Mastodon.AccessToken
	case "bluesky":
		return c.Platforms.Bluesky.AccessToken
	case "twitter":
		return c.Platforms.Twitter.AccessToken
	default:
		return ""
	}
}

// SetToken records the access token for a platform.
func (c *Config) SetToken(platform, token string) {
	switch platform {
	case "mastodon":
		c.Platforms.Mastodon.AccessToken = token
	case "bluesky":
		c.Platforms.Bluesky.AccessToken = token
	case "twitter":
		c.Platforms.Twitter.AccessToken = token
	}
}

// LiveInterval returns the configured polling interval, defaulting to one minute.
func (c *Config) LiveInterval() time.Duration {
	if c.Feed.LiveIntervalSeconds <= 0 {
		return time.Minute
	}
	return time.Duration(c.Feed.LiveIntervalSeconds) * time.Second
}

// GetDatabasePath returns the journal database path, defaulting to the data directory.
func (c *Config) GetDatabasePath() (string, error) {
	if c.Journal.DatabasePath != "" {
		return ExpandPath(c.Journal.DatabasePath)
	}
	dir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "journal.db"), nil
}

// GetSessionsPath returns the path of the persisted sessions file.
func (c *Config) GetSessionsPath() (string, error) {
	dir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "sessions.yaml"), nil
}

// DataDir returns the snapjournal data directory.
func DataDir() (string, error) {
	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataDir, "snapjournal"), nil
}

// GetConfigPath returns the config file path.
func GetConfigPath() (string, error) {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(home, ".config")
	}
	return filepath.Join(configDir, "snapjournal", "config.yaml"), nil
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	if path == "~" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		return home, nil
	}
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		return filepath.Join(home, path[2:]), nil
	}
	return path, nil
}

// Load reads config from disk. Returns default config if file doesn't exist.
func Load() (*Config, error) {
	path, err := GetConfigPath()
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save writes config to disk.
func (c *Config) Save() error {
	path, err := GetConfigPath()
	if err != nil {
		return err
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}
