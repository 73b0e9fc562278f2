// ABOUTME: Tests for the YAML session store.
// ABOUTME: Covers save/load round-trips, clearing, and missing-file behavior.
package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/myface/snapjournal/internal/feed"
)

func TestSessionStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sessions.yaml")
	store := NewYAMLSessionStore(path)

	rec := feed.SessionRecord{
		Credential: "secret-token",
		User:       feed.Profile{ID: "42", Handle: "gopher@example.social", DisplayName: "Gopher"},
		LastAuth:   time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
	}
	if err := store.Save("mastodon", rec); err != nil {
		t.Fatalf("Save error: %v", err)
	}

	got, ok, err := store.Load("mastodon")
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if !ok {
		t.Fatal("expected stored record")
	}
	if got.Credential != rec.Credential || got.User.Handle != rec.User.Handle {
		t.Errorf("round-trip mismatch: %+v", got)
	}
	if !got.LastAuth.Equal(rec.LastAuth) {
		t.Errorf("expected LastAuth %v, got %v", rec.LastAuth, got.LastAuth)
	}
}

func TestSessionStoreMissingFile(t *testing.T) {
	store := NewYAMLSessionStore(filepath.Join(t.TempDir(), "absent.yaml"))

	_, ok, err := store.Load("mastodon")
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if ok {
		t.Error("expected no record from a missing file")
	}
}

func TestSessionStoreIsolatesPlatforms(t *testing.T) {
	store := NewYAMLSessionStore(filepath.Join(t.TempDir(), "sessions.yaml"))

	if err := store.Save("mastodon", feed.SessionRecord{Credential: "m-token"}); err != nil {
		t.Fatalf("Save error: %v", err)
	}
	if err := store.Save("bluesky", feed.SessionRecord{Credential: "b-token"}); err != nil {
		t.Fatalf("Save error: %v", err)
	}

	if err := store.Clear("mastodon"); err != nil {
		t.Fatalf("Clear error: %v", err)
	}

	if _, ok, _ := store.Load("mastodon"); ok {
		t.Error("mastodon record should be cleared")
	}
	got, ok, err := store.Load("bluesky")
	if err != nil || !ok {
		t.Fatalf("bluesky record should survive: ok=%v err=%v", ok, err)
	}
	if got.Credential != "b-token" {
		t.Errorf("unexpected credential %q", got.Credential)
	}
}

func TestSessionStoreClearMissing(t *testing.T) {
	store := NewYAMLSessionStore(filepath.Join(t.TempDir(), "sessions.yaml"))
	if err := store.Clear("twitter"); err != nil {
		t.Errorf("clearing an absent record should be a no-op, got %v", err)
	}
}

func TestSessionStoreFilePermissions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sessions.yaml")
	store := NewYAMLSessionStore(path)

	if err := store.Save("twitter", feed.SessionRecord{Credential: "tw-token"}); err != nil {
		t.Fatalf("Save error: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat error: %v", err)
	}
	// Credentials live in this file; it must not be group or world readable.
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("expected 0600 permissions, got %o", perm)
	}
}
