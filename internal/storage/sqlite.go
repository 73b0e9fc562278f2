// ABOUTME: SQLite implementation of the JournalStore interface.
// ABOUTME: Owns the schema, migrations, and all SQL for journal entries.
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/myface/snapjournal/internal/models"
)

const defaultListLimit = 50

// SQLiteJournalStore persists journal entries in a local SQLite database.
type SQLiteJournalStore struct {
	db *sql.DB
}

// NewSQLiteJournalStore opens (creating if needed) the database at path
// and runs migrations.
func NewSQLiteJournalStore(path string) (*SQLiteJournalStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &SQLiteJournalStore{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return store, nil
}

func (s *SQLiteJournalStore) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS journal_entries (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		content TEXT NOT NULL,
		tags TEXT NOT NULL DEFAULT '[]',
		mood TEXT NOT NULL DEFAULT '',
		privacy TEXT NOT NULL DEFAULT 'private',
		source TEXT NOT NULL DEFAULT '',
		source_id TEXT NOT NULL DEFAULT '',
		source_url TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_entries_created_at ON journal_entries(created_at DESC);
	CREATE INDEX IF NOT EXISTS idx_entries_source ON journal_entries(source);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Close closes the underlying database handle.
func (s *SQLiteJournalStore) Close() error {
	return s.db.Close()
}

// CreateEntry inserts a new entry.
func (s *SQLiteJournalStore) CreateEntry(ctx context.Context, entry *models.JournalEntry) error {
	tags, err := json.Marshal(entry.Tags)
	if err != nil {
		return fmt.Errorf("failed to encode tags: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO journal_entries (id, title, content, tags, mood, privacy, source, source_id, source_url, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.ID.String(), entry.Title, entry.Content, string(tags), entry.Mood,
		entry.Privacy, entry.Source, entry.SourceID, entry.SourceURL,
		entry.CreatedAt, entry.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert entry: %w", err)
	}
	return nil
}

// GetEntry returns the entry with the given ID, or nil if absent.
func (s *SQLiteJournalStore) GetEntry(ctx context.Context, id string) (*models.JournalEntry, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, title, content, tags, mood, privacy, source, source_id, source_url, created_at, updated_at
		FROM journal_entries WHERE id = ?`, id)

	entry, err := scanEntry(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get entry: %w", err)
	}
	return entry, nil
}

// UpdateEntry rewrites the mutable fields of an existing entry.
func (s *SQLiteJournalStore) UpdateEntry(ctx context.Context, entry *models.JournalEntry) error {
	tags, err := json.Marshal(entry.Tags)
	if err != nil {
		return fmt.Errorf("failed to encode tags: %w", err)
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE journal_entries
		SET title = ?, content = ?, tags = ?, mood = ?, privacy = ?, updated_at = ?
		WHERE id = ?`,
		entry.Title, entry.Content, string(tags), entry.Mood, entry.Privacy,
		time.Now(), entry.ID.String(),
	)
	if err != nil {
		return fmt.Errorf("failed to update entry: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("entry not found: %s", entry.ID)
	}
	return nil
}

// DeleteEntry removes an entry by ID.
func (s *SQLiteJournalStore) DeleteEntry(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM journal_entries WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete entry: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("entry not found: %s", id)
	}
	return nil
}

// ListEntries returns entries matching the options, newest first.
func (s *SQLiteJournalStore) ListEntries(ctx context.Context, opts ListEntriesOptions) ([]*models.JournalEntry, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}

	query := `
		SELECT id, title, content, tags, mood, privacy, source, source_id, source_url, created_at, updated_at
		FROM journal_entries WHERE 1=1`
	args := []any{}

	if opts.Tag != "" {
		// Tags are stored as a JSON array of strings.
		query += ` AND tags LIKE ?`
		args = append(args, `%"`+opts.Tag+`"%`)
	}
	if opts.Source != "" {
		query += ` AND source = ?`
		args = append(args, opts.Source)
	}

	query += ` ORDER BY created_at DESC LIMIT ? OFFSET ?`
	args = append(args, limit, opts.Offset)

	return s.queryEntries(ctx, query, args...)
}

// SearchEntries returns entries whose title, content, or tags contain the query.
func (s *SQLiteJournalStore) SearchEntries(ctx context.Context, query string, limit int) ([]*models.JournalEntry, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	pattern := "%" + query + "%"
	return s.queryEntries(ctx, `
		SELECT id, title, content, tags, mood, privacy, source, source_id, source_url, created_at, updated_at
		FROM journal_entries
		WHERE title LIKE ? OR content LIKE ? OR tags LIKE ?
		ORDER BY created_at DESC LIMIT ?`,
		pattern, pattern, pattern, limit)
}

// Stats returns aggregate counts over the journal.
func (s *SQLiteJournalStore) Stats(ctx context.Context) (*JournalStats, error) {
	stats := &JournalStats{BySource: make(map[string]int)}

	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM journal_entries`).Scan(&stats.TotalEntries)
	if err != nil {
		return nil, fmt.Errorf("failed to count entries: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT source, COUNT(*) FROM journal_entries WHERE source != '' GROUP BY source`)
	if err != nil {
		return nil, fmt.Errorf("failed to count entries by source: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var source string
		var count int
		if err := rows.Scan(&source, &count); err != nil {
			return nil, fmt.Errorf("failed to scan source count: %w", err)
		}
		stats.BySource[source] = count
	}
	return stats, rows.Err()
}

func (s *SQLiteJournalStore) queryEntries(ctx context.Context, query string, args ...any) ([]*models.JournalEntry, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query entries: %w", err)
	}
	defer rows.Close()

	var entries []*models.JournalEntry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan entry: %w", err)
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (*models.JournalEntry, error) {
	var entry models.JournalEntry
	var id, tags string

	err := row.Scan(&id, &entry.Title, &entry.Content, &tags, &entry.Mood,
		&entry.Privacy, &entry.Source, &entry.SourceID, &entry.SourceURL,
		&entry.CreatedAt, &entry.UpdatedAt)
	if err != nil {
		return nil, err
	}

	entry.ID, err = uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid entry ID %q: %w", id, err)
	}
	if err := json.Unmarshal([]byte(tags), &entry.Tags); err != nil {
		return nil, fmt.Errorf("invalid tags for entry %s: %w", id, err)
	}
	return &entry, nil
}
