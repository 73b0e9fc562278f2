// ABOUTME: CLI commands for journal operations.
// ABOUTME: Provides write, search, list, read, delete, and stats subcommands.
package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/myface/snapjournal/internal/models"
	"github.com/myface/snapjournal/internal/storage"
)

var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "Manage journal entries",
	Long:  "Write, search, list, and read private journal entries.",
}

var journalWriteCmd = &cobra.Command{
	Use:   "write <content>",
	Short: "Write a journal entry",
	Long:  "Create a journal entry with optional title, tags, and mood.",
	Args:  cobra.ExactArgs(1),
	RunE:  runJournalWrite,
}

var journalSearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search journal entries",
	Long:  "Search journal entries by substring matching.",
	Args:  cobra.ExactArgs(1),
	RunE:  runJournalSearch,
}

var journalListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent journal entries",
	Long:  "List journal entries sorted by date.",
	RunE:  runJournalList,
}

var journalReadCmd = &cobra.Command{
	Use:   "read <id>",
	Short: "Read a journal entry",
	Long:  "Read a specific journal entry by ID.",
	Args:  cobra.ExactArgs(1),
	RunE:  runJournalRead,
}

var journalDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a journal entry",
	Long:  "Remove a journal entry by ID.",
	Args:  cobra.ExactArgs(1),
	RunE:  runJournalDelete,
}

var journalStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show journal statistics",
	Long:  "Show entry counts, including how many were saved from each platform.",
	RunE:  runJournalStats,
}

// Flags
var (
	entryTitle    string
	entryTags     string
	entryMood     string
	journalLimit  int
	journalTag    string
	journalSource string
)

func init() {
	rootCmd.AddCommand(journalCmd)
	journalCmd.AddCommand(journalWriteCmd)
	journalCmd.AddCommand(journalSearchCmd)
	journalCmd.AddCommand(journalListCmd)
	journalCmd.AddCommand(journalReadCmd)
	journalCmd.AddCommand(journalDeleteCmd)
	journalCmd.AddCommand(journalStatsCmd)

	journalWriteCmd.Flags().StringVar(&entryTitle, "title", "", "Entry title")
	journalWriteCmd.Flags().StringVar(&entryTags, "tags", "", "Comma-separated tags")
	journalWriteCmd.Flags().StringVar(&entryMood, "mood", "", "Mood word")

	journalListCmd.Flags().IntVar(&journalLimit, "limit", 10, "Maximum number of entries to show")
	journalListCmd.Flags().StringVar(&journalTag, "tag", "", "Filter by tag")
	journalListCmd.Flags().StringVar(&journalSource, "source", "", "Filter by source platform")

	journalSearchCmd.Flags().IntVar(&journalLimit, "limit", 10, "Maximum number of results")
}

func runJournalWrite(cmd *cobra.Command, args []string) error {
	var tags []string
	if entryTags != "" {
		for _, tag := range strings.Split(entryTags, ",") {
			if tag = strings.TrimSpace(tag); tag != "" {
				tags = append(tags, tag)
			}
		}
	}

	entry := models.NewJournalEntry(entryTitle, args[0], tags)
	entry.Mood = entryMood

	if err := globalJournalStore.CreateEntry(cmd.Context(), entry); err != nil {
		return fmt.Errorf("failed to create entry: %w", err)
	}

	fmt.Printf("Entry created: %s\n", entry.ID)
	return nil
}

func runJournalSearch(cmd *cobra.Command, args []string) error {
	entries, err := globalJournalStore.SearchEntries(cmd.Context(), args[0], journalLimit)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}
	if len(entries) == 0 {
		fmt.Println("No matching entries.")
		return nil
	}
	printEntryList(entries)
	return nil
}

func runJournalList(cmd *cobra.Command, args []string) error {
	entries, err := globalJournalStore.ListEntries(cmd.Context(), storage.ListEntriesOptions{
		Limit:  journalLimit,
		Tag:    journalTag,
		Source: journalSource,
	})
	if err != nil {
		return fmt.Errorf("failed to list entries: %w", err)
	}
	if len(entries) == 0 {
		fmt.Println("No entries.")
		return nil
	}
	printEntryList(entries)
	return nil
}

func runJournalRead(cmd *cobra.Command, args []string) error {
	entry, err := globalJournalStore.GetEntry(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to read entry: %w", err)
	}
	if entry == nil {
		return fmt.Errorf("no entry with ID %s", args[0])
	}

	fmt.Printf("Date: %s\n", entry.CreatedAt.Format("2006-01-02 15:04:05"))
	if entry.Title != "" {
		fmt.Printf("Title: %s\n", entry.Title)
	}
	if entry.Mood != "" {
		fmt.Printf("Mood: %s\n", entry.Mood)
	}
	if len(entry.Tags) > 0 {
		fmt.Printf("Tags: %s\n", strings.Join(entry.Tags, ", "))
	}
	if entry.Source != "" {
		fmt.Printf("Source: %s", entry.Source)
		if entry.SourceURL != "" {
			fmt.Printf(" (%s)", entry.SourceURL)
		}
		fmt.Println()
	}
	fmt.Println()
	fmt.Println(entry.Content)
	return nil
}

func runJournalDelete(cmd *cobra.Command, args []string) error {
	if err := globalJournalStore.DeleteEntry(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("failed to delete entry: %w", err)
	}
	fmt.Printf("Deleted %s\n", args[0])
	return nil
}

func runJournalStats(cmd *cobra.Command, args []string) error {
	stats, err := globalJournalStore.Stats(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to compute stats: %w", err)
	}

	fmt.Printf("Total entries: %d\n", stats.TotalEntries)
	for source, count := range stats.BySource {
		fmt.Printf("  saved from %s: %d\n", source, count)
	}
	return nil
}

func printEntryList(entries []*models.JournalEntry) {
	for _, entry := range entries {
		line := fmt.Sprintf("%s  %s", entry.CreatedAt.Format("2006-01-02 15:04"), entry.Title)
		if entry.Title == "" {
			line = fmt.Sprintf("%s  %s", entry.CreatedAt.Format("2006-01-02 15:04"), firstLine(entry.Content))
		}
		if entry.Source != "" {
			line += fmt.Sprintf(" [from %s]", entry.Source)
		}
		fmt.Println(line)
		fmt.Printf("  id: %s\n", entry.ID)
	}
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	if len(s) > 60 {
		s = s[:60] + "…"
	}
	return s
}
