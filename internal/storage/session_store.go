// ABOUTME: YAML-backed implementation of the session store.
// ABOUTME: Keeps per-platform credentials in a single sessions file in the data directory.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/myface/snapjournal/internal/feed"
)

// YAMLSessionStore persists login sessions keyed by platform in a YAML file.
type YAMLSessionStore struct {
	path string
	mu   sync.Mutex
}

// NewYAMLSessionStore creates a store backed by the given file path.
func NewYAMLSessionStore(path string) *YAMLSessionStore {
	return &YAMLSessionStore{path: path}
}

// Save writes or replaces the record for a platform.
func (s *YAMLSessionStore) Save(platform string, rec feed.SessionRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sessions, err := s.read()
	if err != nil {
		return err
	}
	sessions[platform] = rec
	return s.write(sessions)
}

// Load returns the record for a platform and whether one exists.
func (s *YAMLSessionStore) Load(platform string) (feed.SessionRecord, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sessions, err := s.read()
	if err != nil {
		return feed.SessionRecord{}, false, err
	}
	rec, ok := sessions[platform]
	return rec, ok, nil
}

// Clear removes the record for a platform. Clearing an absent record is a no-op.
func (s *YAMLSessionStore) Clear(platform string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sessions, err := s.read()
	if err != nil {
		return err
	}
	if _, ok := sessions[platform]; !ok {
		return nil
	}
	delete(sessions, platform)
	return s.write(sessions)
}

func (s *YAMLSessionStore) read() (map[string]feed.SessionRecord, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return make(map[string]feed.SessionRecord), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read sessions file: %w", err)
	}

	sessions := make(map[string]feed.SessionRecord)
	if err := yaml.Unmarshal(data, &sessions); err != nil {
		return nil, fmt.Errorf("failed to parse sessions file: %w", err)
	}
	return sessions, nil
}

func (s *YAMLSessionStore) write(sessions map[string]feed.SessionRecord) error {
	data, err := yaml.Marshal(sessions)
	if err != nil {
		return fmt.Errorf("failed to encode sessions: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create sessions directory: %w", err)
	}

	// Write-then-rename so a crash mid-write never corrupts stored credentials.
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("failed to write sessions file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace sessions file: %w", err)
	}
	return nil
}
