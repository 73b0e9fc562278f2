// ABOUTME: Tests for snapjournal configuration loading and path expansion.
// ABOUTME: Covers YAML parsing, defaults, path expansion, and per-platform lookups.
package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestExpandPath(t *testing.T) {
	home, _ := os.UserHomeDir()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty", "", ""},
		{"tilde only", "~", home},
		{"tilde slash", "~/foo/bar", filepath.Join(home, "foo", "bar")},
		{"absolute", "/tmp/foo", "/tmp/foo"},
		{"relative", "foo/bar", "foo/bar"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExpandPath(tt.input)
			if err != nil {
				t.Fatalf("ExpandPath(%q) error: %v", tt.input, err)
			}
			if got != tt.expected {
				t.Errorf("ExpandPath(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestLoadDefaultConfig(t *testing.T) {
	// Set config path to a non-existent location
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Platforms.Mastodon.AccessToken != "" {
		t.Error("expected empty mastodon token in default config")
	}
	if cfg.Feed.Algorithm != "" {
		t.Error("expected empty algorithm in default config")
	}
	if cfg.LiveInterval() != time.Minute {
		t.Errorf("expected one minute default live interval, got %v", cfg.LiveInterval())
	}
}

func TestLoadYAMLConfig(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmpDir)

	configDir := filepath.Join(tmpDir, "snapjournal")
	if err := os.MkdirAll(configDir, 0750); err != nil {
		t.Fatalf("failed to create config dir: %v", err)
	}

	configData := `platforms:
  mastodon:
    server: "https://example.social"
    access_token: "masto-token"
  bluesky:
    access_token: "bsky-token"
  twitter:
    access_token: "tw-token"
feed:
  algorithm: "trending"
  display_limit: 30
  page_size: 50
  live_interval_seconds: 120
journal:
  database_path: "~/snap/journal.db"
`
	configPath := filepath.Join(configDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte(configData), 0600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.ServerFor("mastodon") != "https://example.social" {
		t.Errorf("unexpected mastodon server %q", cfg.ServerFor("mastodon"))
	}
	if cfg.TokenFor("mastodon") != "masto-token" {
		t.Errorf("unexpected mastodon token %q", cfg.TokenFor("mastodon"))
	}
	if cfg.TokenFor("bluesky") != "bsky-token" {
		t.Errorf("unexpected bluesky token %q", cfg.TokenFor("bluesky"))
	}
	if cfg.TokenFor("twitter") != "tw-token" {
		t.Errorf("unexpected twitter token %q", cfg.TokenFor("twitter"))
	}
	if cfg.Feed.Algorithm != "trending" || cfg.Feed.DisplayLimit != 30 {
		t.Errorf("unexpected feed config %+v", cfg.Feed)
	}
	if cfg.LiveInterval() != 2*time.Minute {
		t.Errorf("expected 2m live interval, got %v", cfg.LiveInterval())
	}

	home, _ := os.UserHomeDir()
	dbPath, err := cfg.GetDatabasePath()
	if err != nil {
		t.Fatalf("GetDatabasePath() error: %v", err)
	}
	if dbPath != filepath.Join(home, "snap", "journal.db") {
		t.Errorf("unexpected db path %q", dbPath)
	}
}

func TestDatabasePathDefault(t *testing.T) {
	dataDir := t.TempDir()
	t.Setenv("XDG_DATA_HOME", dataDir)

	cfg := &Config{}
	dbPath, err := cfg.GetDatabasePath()
	if err != nil {
		t.Fatalf("GetDatabasePath() error: %v", err)
	}
	if dbPath != filepath.Join(dataDir, "snapjournal", "journal.db") {
		t.Errorf("unexpected default db path %q", dbPath)
	}

	sessPath, err := cfg.GetSessionsPath()
	if err != nil {
		t.Fatalf("GetSessionsPath() error: %v", err)
	}
	if sessPath != filepath.Join(dataDir, "snapjournal", "sessions.yaml") {
		t.Errorf("unexpected sessions path %q", sessPath)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg := &Config{}
	cfg.SetToken("bluesky", "new-token")
	cfg.Feed.Algorithm = "viral"
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	loaded, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if loaded.TokenFor("bluesky") != "new-token" {
		t.Errorf("unexpected token %q after round trip", loaded.TokenFor("bluesky"))
	}
	if loaded.Feed.Algorithm != "viral" {
		t.Errorf("unexpected algorithm %q after round trip", loaded.Feed.Algorithm)
	}
}
