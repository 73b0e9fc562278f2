// ABOUTME: Interface definition for journal entry storage.
// ABOUTME: Defines the contract for creating, reading, searching, and managing entries.
package storage

import (
	"context"

	"github.com/myface/snapjournal/internal/models"
)

// ListEntriesOptions configures filtering and pagination for listing entries.
type ListEntriesOptions struct {
	Limit  int
	Offset int
	Tag    string
	Source string // platform key, e.g. "mastodon"
}

// JournalStats summarizes the journal contents.
type JournalStats struct {
	TotalEntries int
	BySource     map[string]int
}

// JournalStore defines operations for journal entry persistence.
type JournalStore interface {
	// CreateEntry persists a new journal entry.
	CreateEntry(ctx context.Context, entry *models.JournalEntry) error

	// GetEntry returns the entry with the given ID, or nil if absent.
	GetEntry(ctx context.Context, id string) (*models.JournalEntry, error)

	// UpdateEntry rewrites title, content, tags, mood, and privacy of an
	// existing entry and stamps UpdatedAt.
	UpdateEntry(ctx context.Context, entry *models.JournalEntry) error

	// DeleteEntry removes an entry by ID.
	DeleteEntry(ctx context.Context, id string) error

	// ListEntries returns entries matching the options, newest first.
	ListEntries(ctx context.Context, opts ListEntriesOptions) ([]*models.JournalEntry, error)

	// SearchEntries returns entries whose title, content, or tags contain
	// the query substring, newest first.
	SearchEntries(ctx context.Context, query string, limit int) ([]*models.JournalEntry, error)

	// Stats returns aggregate counts over the journal.
	Stats(ctx context.Context) (*JournalStats, error)

	// Close releases any resources held by the store.
	Close() error
}
