// ABOUTME: CLI commands for reading and interacting with social feeds.
// ABOUTME: Provides show, live, react, and save subcommands.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/myface/snapjournal/internal/feed"
	"github.com/myface/snapjournal/internal/models"
)

var feedCmd = &cobra.Command{
	Use:   "feed",
	Short: "Read your social feeds",
	Long:  "Fetch, rank, and display timelines from connected accounts.",
}

var feedShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the ranked feed",
	Long:  "Fetch the timeline and display it ranked by the selected algorithm.",
	RunE:  runFeedShow,
}

var feedLiveCmd = &cobra.Command{
	Use:   "live",
	Short: "Watch the feed live",
	Long:  "Poll for new posts and reprint the feed until interrupted.",
	RunE:  runFeedLive,
}

var feedReactCmd = &cobra.Command{
	Use:   "react <post-id>",
	Short: "Like or reshare a post",
	Long:  "Send a reaction to a post from the current feed.",
	Args:  cobra.ExactArgs(1),
	RunE:  runFeedReact,
}

var feedSaveCmd = &cobra.Command{
	Use:   "save <post-id>",
	Short: "Save a post to the journal",
	Long:  "Copy a post from the feed into the journal with its source link.",
	Args:  cobra.ExactArgs(1),
	RunE:  runFeedSave,
}

// Flags
var (
	feedPlatform  string
	feedAlgorithm string
	feedLimit     int
	feedPages     int
	feedInterval  time.Duration
	reactKind     string
	saveNote      string
	saveTags      string
)

func init() {
	rootCmd.AddCommand(feedCmd)
	feedCmd.AddCommand(feedShowCmd)
	feedCmd.AddCommand(feedLiveCmd)
	feedCmd.AddCommand(feedReactCmd)
	feedCmd.AddCommand(feedSaveCmd)

	feedCmd.PersistentFlags().StringVar(&feedPlatform, "platform", "mastodon", "Platform: mastodon, bluesky, or twitter")

	feedShowCmd.Flags().StringVar(&feedAlgorithm, "algorithm", "", "Ranking algorithm: latest, trending, viral, diverse, balanced, random")
	feedShowCmd.Flags().IntVar(&feedLimit, "limit", 0, "Maximum number of posts to show")
	feedShowCmd.Flags().IntVar(&feedPages, "pages", 1, "Number of timeline pages to fetch")

	feedLiveCmd.Flags().DurationVar(&feedInterval, "interval", 0, "Poll interval (default from config)")

	feedReactCmd.Flags().StringVar(&reactKind, "kind", "like", "Reaction kind: like or reshare")

	feedSaveCmd.Flags().StringVar(&saveNote, "note", "", "Note to store alongside the post")
	feedSaveCmd.Flags().StringVar(&saveTags, "tags", "", "Comma-separated tags for the saved entry")
}

// connectedFeed opens the feed for the selected platform and restores its
// stored session.
func connectedFeed(ctx context.Context) (*feed.Feed, error) {
	f, err := openFeed(feedPlatform)
	if err != nil {
		return nil, err
	}

	ok, err := f.Session().Restore(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to restore %s session: %w", feedPlatform, err)
	}
	if !ok {
		return nil, fmt.Errorf("not logged in to %s: run 'snapjournal account login %s'", feedPlatform, feedPlatform)
	}
	return f, nil
}

func runFeedShow(cmd *cobra.Command, args []string) error {
	f, err := connectedFeed(cmd.Context())
	if err != nil {
		return err
	}

	if feedAlgorithm != "" {
		f.SetAlgorithm(feed.Algorithm(feedAlgorithm))
	}
	if feedLimit > 0 {
		f.SetDisplayLimit(feedLimit)
	}

	if err := f.FetchInitial(cmd.Context()); err != nil {
		return fmt.Errorf("failed to fetch feed: %w", err)
	}
	for page := 1; page < feedPages && f.HasMore(); page++ {
		if err := f.FetchMore(cmd.Context()); err != nil {
			return fmt.Errorf("failed to fetch more: %w", err)
		}
	}

	printPosts(f.Display())
	if f.HasMore() {
		fmt.Println("…more available (use --pages)")
	}
	return nil
}

func runFeedLive(cmd *cobra.Command, args []string) error {
	f, err := connectedFeed(cmd.Context())
	if err != nil {
		return err
	}

	interval := feedInterval
	if interval <= 0 {
		interval = globalConfig.LiveInterval()
	}

	f.Subscribe(func(snap feed.Snapshot) {
		fmt.Printf("\n--- %s @ %s (%d cached) ---\n",
			snap.Platform, time.Now().Format("15:04:05"), snap.CacheSize)
		printPosts(snap.Posts)
	})

	if err := f.FetchInitial(cmd.Context()); err != nil {
		return fmt.Errorf("failed to fetch feed: %w", err)
	}

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	f.StartLive(interval)
	defer f.StopLive()

	fmt.Printf("Polling %s every %s, Ctrl+C to stop.\n", feedPlatform, interval)
	<-ctx.Done()
	return nil
}

func runFeedReact(cmd *cobra.Command, args []string) error {
	postID := args[0]

	kind := feed.ReactionKind(reactKind)
	if kind != feed.ReactionLike && kind != feed.ReactionReshare {
		return fmt.Errorf("unknown reaction kind %q", reactKind)
	}

	f, err := connectedFeed(cmd.Context())
	if err != nil {
		return err
	}
	if err := f.FetchInitial(cmd.Context()); err != nil {
		return fmt.Errorf("failed to fetch feed: %w", err)
	}

	if err := f.React(cmd.Context(), postID, kind); err != nil {
		return fmt.Errorf("reaction failed: %w", err)
	}
	fmt.Printf("Sent %s for %s\n", kind, postID)
	return nil
}

func runFeedSave(cmd *cobra.Command, args []string) error {
	postID := args[0]

	f, err := connectedFeed(cmd.Context())
	if err != nil {
		return err
	}
	if err := f.FetchInitial(cmd.Context()); err != nil {
		return fmt.Errorf("failed to fetch feed: %w", err)
	}

	post, ok := f.Post(postID)
	if !ok {
		return fmt.Errorf("post %q is not in the current feed", postID)
	}

	var tags []string
	if saveTags != "" {
		for _, tag := range strings.Split(saveTags, ",") {
			if tag = strings.TrimSpace(tag); tag != "" {
				tags = append(tags, tag)
			}
		}
	}

	title := fmt.Sprintf("Saved from @%s", post.AuthorHandle)
	content := post.Content
	if saveNote != "" {
		content = saveNote + "\n\n> " + post.Content
	}

	sourceURL := ""
	if strings.Contains(post.ID, "://") {
		sourceURL = post.ID
	}

	entry := models.NewImportedEntry(title, content, tags, f.Platform(), post.ID, sourceURL)
	if err := globalJournalStore.CreateEntry(cmd.Context(), entry); err != nil {
		return fmt.Errorf("failed to save entry: %w", err)
	}

	fmt.Printf("Saved post to journal: %s\n", entry.ID)
	return nil
}

func printPosts(posts []*feed.Post) {
	if len(posts) == 0 {
		fmt.Println("The feed is empty.")
		return
	}
	for _, p := range posts {
		fmt.Printf("@%-20s %s\n", p.AuthorHandle, p.CreatedAt.Format("Jan 02 15:04"))
		fmt.Println(indent(p.Content))
		fmt.Printf("  ♥ %d  ⇄ %d  💬 %d    id: %s\n\n",
			p.Engagement.Likes, p.Engagement.Reshares, p.Engagement.Replies, p.ID)
	}
}

func indent(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	for i, line := range lines {
		lines[i] = "  " + line
	}
	return strings.Join(lines, "\n")
}
