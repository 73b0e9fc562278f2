// ABOUTME: Core data model for journal entries.
// ABOUTME: Provides constructors for fresh entries and entries imported from social feeds.
package models

import (
	"time"

	"github.com/google/uuid"
)

// Privacy levels for journal entries.
const (
	PrivacyPrivate = "private"
	PrivacyShared  = "shared"
)

// JournalEntry is a single journal entry. Entries saved from a social
// feed carry provenance in Source/SourceID/SourceURL.
type JournalEntry struct {
	ID        uuid.UUID
	Title     string
	Content   string
	Tags      []string
	Mood      string
	Privacy   string
	Source    string // platform key, empty for hand-written entries
	SourceID  string
	SourceURL string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewJournalEntry creates a private entry with generated UUID and timestamps.
func NewJournalEntry(title, content string, tags []string) *JournalEntry {
	now := time.Now()
	return &JournalEntry{
		ID:        uuid.New(),
		Title:     title,
		Content:   content,
		Tags:      tags,
		Privacy:   PrivacyPrivate,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// NewImportedEntry creates an entry that records a post saved from a
// social feed, keeping provenance for later reference.
func NewImportedEntry(title, content string, tags []string, source, sourceID, sourceURL string) *JournalEntry {
	entry := NewJournalEntry(title, content, tags)
	entry.Source = source
	entry.SourceID = sourceID
	entry.SourceURL = sourceURL
	return entry
}
