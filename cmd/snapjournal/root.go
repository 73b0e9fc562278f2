// ABOUTME: Root Cobra command and global flags for snapjournal CLI.
// ABOUTME: Sets up lifecycle hooks for config loading and store initialization.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/myface/snapjournal/internal/config"
	"github.com/myface/snapjournal/internal/feed"
	"github.com/myface/snapjournal/internal/platforms"
	"github.com/myface/snapjournal/internal/storage"
)

var globalConfig *config.Config
var globalJournalStore storage.JournalStore
var globalSessionStore *storage.YAMLSessionStore

var rootCmd = &cobra.Command{
	Use:   "snapjournal",
	Short: "Social feeds + private journal in one place",
	Long: `
███████╗███╗   ██╗ █████╗ ██████╗
██╔════╝████╗  ██║██╔══██╗██╔══██╗
███████╗██╔██╗ ██║███████║██████╔╝
╚════██║██║╚██╗██║██╔══██║██╔═══╝
███████║██║ ╚████║██║  ██║██║
╚══════╝╚═╝  ╚═══╝╚═╝  ╚═╝╚═╝

   MYFACE SNAPJOURNAL

Read your Mastodon, Bluesky, and Twitter timelines through one ranked
feed, and keep the posts worth keeping in a private local journal.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "help" || cmd.Name() == "version" || cmd.Name() == "setup" {
			return nil
		}

		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		globalConfig = cfg

		dbPath, err := cfg.GetDatabasePath()
		if err != nil {
			return fmt.Errorf("failed to resolve database path: %w", err)
		}
		journalStore, err := storage.NewSQLiteJournalStore(dbPath)
		if err != nil {
			return fmt.Errorf("failed to open journal store: %w", err)
		}
		globalJournalStore = journalStore

		sessionsPath, err := cfg.GetSessionsPath()
		if err != nil {
			return fmt.Errorf("failed to resolve sessions path: %w", err)
		}
		globalSessionStore = storage.NewYAMLSessionStore(sessionsPath)

		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if globalJournalStore != nil {
			_ = globalJournalStore.Close()
			globalJournalStore = nil
		}
		return nil
	},
}

// openFeed builds the adapter, session, and feed pipeline for a platform
// using the loaded config and session store.
func openFeed(platform string) (*feed.Feed, error) {
	adapter, err := platforms.New(platform, globalConfig.ServerFor(platform))
	if err != nil {
		return nil, err
	}

	session := feed.NewSession(adapter, globalSessionStore)

	opts := []feed.Option{}
	if globalConfig.Feed.Algorithm != "" {
		opts = append(opts, feed.WithAlgorithm(feed.Algorithm(globalConfig.Feed.Algorithm)))
	}
	if globalConfig.Feed.DisplayLimit > 0 {
		opts = append(opts, feed.WithDisplayLimit(globalConfig.Feed.DisplayLimit))
	}
	if globalConfig.Feed.PageSize > 0 {
		opts = append(opts, feed.WithPageSize(globalConfig.Feed.PageSize))
	}

	return feed.New(adapter, session, opts...), nil
}
