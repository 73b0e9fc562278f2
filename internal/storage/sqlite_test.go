// ABOUTME: Tests for the SQLite journal store.
// ABOUTME: Exercises CRUD, filtering, search, and stats against a temp database.
package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/myface/snapjournal/internal/models"
)

func newTestStore(t *testing.T) *SQLiteJournalStore {
	t.Helper()
	store, err := NewSQLiteJournalStore(filepath.Join(t.TempDir(), "journal.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestCreateAndGetEntry(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	entry := models.NewJournalEntry("First post", "Hello journal", []string{"intro", "meta"})
	entry.Mood = "hopeful"
	if err := store.CreateEntry(ctx, entry); err != nil {
		t.Fatalf("CreateEntry error: %v", err)
	}

	got, err := store.GetEntry(ctx, entry.ID.String())
	if err != nil {
		t.Fatalf("GetEntry error: %v", err)
	}
	if got == nil {
		t.Fatal("expected entry, got nil")
	}
	if got.Title != "First post" || got.Content != "Hello journal" {
		t.Errorf("unexpected entry %+v", got)
	}
	if len(got.Tags) != 2 || got.Tags[0] != "intro" {
		t.Errorf("unexpected tags %v", got.Tags)
	}
	if got.Mood != "hopeful" {
		t.Errorf("unexpected mood %q", got.Mood)
	}
	if got.Privacy != models.PrivacyPrivate {
		t.Errorf("unexpected privacy %q", got.Privacy)
	}
}

func TestGetEntryMissing(t *testing.T) {
	store := newTestStore(t)

	got, err := store.GetEntry(context.Background(), "00000000-0000-0000-0000-000000000000")
	if err != nil {
		t.Fatalf("GetEntry error: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil for missing entry, got %+v", got)
	}
}

func TestUpdateEntry(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	entry := models.NewJournalEntry("Draft", "v1", nil)
	if err := store.CreateEntry(ctx, entry); err != nil {
		t.Fatalf("CreateEntry error: %v", err)
	}

	entry.Content = "v2"
	entry.Tags = []string{"revised"}
	if err := store.UpdateEntry(ctx, entry); err != nil {
		t.Fatalf("UpdateEntry error: %v", err)
	}

	got, err := store.GetEntry(ctx, entry.ID.String())
	if err != nil {
		t.Fatalf("GetEntry error: %v", err)
	}
	if got.Content != "v2" {
		t.Errorf("expected updated content, got %q", got.Content)
	}
	if !got.UpdatedAt.After(got.CreatedAt) {
		t.Error("expected UpdatedAt to advance past CreatedAt")
	}
}

func TestUpdateMissingEntry(t *testing.T) {
	store := newTestStore(t)

	entry := models.NewJournalEntry("Ghost", "never saved", nil)
	if err := store.UpdateEntry(context.Background(), entry); err == nil {
		t.Error("expected error updating a missing entry")
	}
}

func TestDeleteEntry(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	entry := models.NewJournalEntry("Doomed", "bye", nil)
	if err := store.CreateEntry(ctx, entry); err != nil {
		t.Fatalf("CreateEntry error: %v", err)
	}
	if err := store.DeleteEntry(ctx, entry.ID.String()); err != nil {
		t.Fatalf("DeleteEntry error: %v", err)
	}

	got, err := store.GetEntry(ctx, entry.ID.String())
	if err != nil {
		t.Fatalf("GetEntry error: %v", err)
	}
	if got != nil {
		t.Error("expected entry to be gone")
	}

	if err := store.DeleteEntry(ctx, entry.ID.String()); err == nil {
		t.Error("expected error deleting twice")
	}
}

func TestListEntriesFilters(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	a := models.NewJournalEntry("Plain", "no tags", nil)
	b := models.NewJournalEntry("Tagged", "has tag", []string{"golang"})
	c := models.NewImportedEntry("Saved", "from the feed", []string{"golang"}, "mastodon", "m-1", "https://example.social/@x/1")
	for _, e := range []*models.JournalEntry{a, b, c} {
		if err := store.CreateEntry(ctx, e); err != nil {
			t.Fatalf("CreateEntry error: %v", err)
		}
	}

	all, err := store.ListEntries(ctx, ListEntriesOptions{})
	if err != nil {
		t.Fatalf("ListEntries error: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(all))
	}

	tagged, err := store.ListEntries(ctx, ListEntriesOptions{Tag: "golang"})
	if err != nil {
		t.Fatalf("ListEntries error: %v", err)
	}
	if len(tagged) != 2 {
		t.Errorf("expected 2 tagged entries, got %d", len(tagged))
	}

	imported, err := store.ListEntries(ctx, ListEntriesOptions{Source: "mastodon"})
	if err != nil {
		t.Fatalf("ListEntries error: %v", err)
	}
	if len(imported) != 1 || imported[0].SourceID != "m-1" {
		t.Errorf("unexpected imported entries %+v", imported)
	}

	limited, err := store.ListEntries(ctx, ListEntriesOptions{Limit: 2})
	if err != nil {
		t.Fatalf("ListEntries error: %v", err)
	}
	if len(limited) != 2 {
		t.Errorf("expected 2 entries with limit, got %d", len(limited))
	}
}

func TestSearchEntries(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	entries := []*models.JournalEntry{
		models.NewJournalEntry("Morning walk", "Saw a heron by the river", nil),
		models.NewJournalEntry("Groceries", "Bought rye bread", []string{"errands"}),
		models.NewJournalEntry("River thoughts", "The current was strong", nil),
	}
	for _, e := range entries {
		if err := store.CreateEntry(ctx, e); err != nil {
			t.Fatalf("CreateEntry error: %v", err)
		}
	}

	got, err := store.SearchEntries(ctx, "river", 10)
	if err != nil {
		t.Fatalf("SearchEntries error: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("expected 2 matches for 'river', got %d", len(got))
	}

	byTag, err := store.SearchEntries(ctx, "errands", 10)
	if err != nil {
		t.Fatalf("SearchEntries error: %v", err)
	}
	if len(byTag) != 1 {
		t.Errorf("expected tag match, got %d entries", len(byTag))
	}
}

func TestStats(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.CreateEntry(ctx, models.NewJournalEntry("Own words", "text", nil)); err != nil {
		t.Fatalf("CreateEntry error: %v", err)
	}
	for _, src := range []string{"mastodon", "mastodon", "bluesky"} {
		e := models.NewImportedEntry("Saved", "text", nil, src, "id", "url")
		if err := store.CreateEntry(ctx, e); err != nil {
			t.Fatalf("CreateEntry error: %v", err)
		}
	}

	stats, err := store.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats error: %v", err)
	}
	if stats.TotalEntries != 4 {
		t.Errorf("expected 4 total, got %d", stats.TotalEntries)
	}
	if stats.BySource["mastodon"] != 2 || stats.BySource["bluesky"] != 1 {
		t.Errorf("unexpected source counts %v", stats.BySource)
	}
}
