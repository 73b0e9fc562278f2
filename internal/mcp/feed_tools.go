// ABOUTME: MCP tool implementations for social feed operations.
// ABOUTME: Registers read_feed, refresh_feed, and save_post for connected accounts.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	gomcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/myface/snapjournal/internal/feed"
	"github.com/myface/snapjournal/internal/models"
)

func (s *Server) registerFeedTools() {
	s.mcp.AddTool(&gomcp.Tool{
		Name:        "read_feed",
		Description: "Read the ranked social feed for a connected account. Fetches the first page if nothing is cached yet.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"platform": {"type": "string", "enum": ["mastodon", "bluesky", "twitter"], "description": "Which account's feed to read. Optional when only one account is connected."},
				"algorithm": {"type": "string", "enum": ["latest", "trending", "viral", "diverse", "balanced", "random"], "description": "Ranking algorithm to apply (default: current setting)"},
				"limit": {"type": "number", "description": "Maximum number of posts to return"}
			}
		}`),
	}, s.handleReadFeed)

	s.mcp.AddTool(&gomcp.Tool{
		Name:        "refresh_feed",
		Description: "Fetch the newest page of the feed for a connected account.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"platform": {"type": "string", "enum": ["mastodon", "bluesky", "twitter"], "description": "Which account's feed to refresh. Optional when only one account is connected."}
			}
		}`),
	}, s.handleRefreshFeed)

	s.mcp.AddTool(&gomcp.Tool{
		Name:        "save_post",
		Description: "Save a post from the feed into the journal, keeping its source link.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"platform": {"type": "string", "enum": ["mastodon", "bluesky", "twitter"], "description": "Which account's feed the post came from. Optional when only one account is connected."},
				"post_id": {"type": "string", "description": "ID of the post as shown in read_feed"},
				"note": {"type": "string", "description": "Optional note to store alongside the post"},
				"tags": {"type": "array", "items": {"type": "string"}, "description": "Tags to attach to the saved entry"}
			},
			"required": ["post_id"]
		}`),
	}, s.handleSavePost)
}

func (s *Server) handleReadFeed(ctx context.Context, req *gomcp.CallToolRequest) (*gomcp.CallToolResult, error) {
	var args struct {
		Platform  string `json:"platform"`
		Algorithm string `json:"algorithm"`
		Limit     int    `json:"limit"`
	}
	if err := json.Unmarshal(req.Params.Arguments, &args); err != nil {
		return toolError("invalid arguments: %v", err), nil
	}

	f, err := s.feedFor(args.Platform)
	if err != nil {
		return toolError("%v", err), nil
	}

	if args.Algorithm != "" {
		f.SetAlgorithm(feed.Algorithm(args.Algorithm))
	}
	if args.Limit > 0 {
		f.SetDisplayLimit(args.Limit)
	}

	if f.CacheSize() == 0 {
		if err := f.FetchInitial(ctx); err != nil {
			return toolError("failed to fetch feed: %v", err), nil
		}
	}

	posts := f.Display()
	if len(posts) == 0 {
		return &gomcp.CallToolResult{
			Content: []gomcp.Content{&gomcp.TextContent{Text: "The feed is empty."}},
		}, nil
	}

	var sb strings.Builder
	for i, p := range posts {
		if i > 0 {
			sb.WriteString("\n---\n")
		}
		sb.WriteString(fmt.Sprintf("@%s (%s)\n", p.AuthorHandle, p.CreatedAt.Format("2006-01-02 15:04")))
		sb.WriteString(p.Content + "\n")
		sb.WriteString(fmt.Sprintf("likes: %d  reshares: %d  replies: %d\n",
			p.Engagement.Likes, p.Engagement.Reshares, p.Engagement.Replies))
		sb.WriteString(fmt.Sprintf("ID: %s\n", p.ID))
	}

	return &gomcp.CallToolResult{
		Content: []gomcp.Content{&gomcp.TextContent{Text: sb.String()}},
	}, nil
}

func (s *Server) handleRefreshFeed(ctx context.Context, req *gomcp.CallToolRequest) (*gomcp.CallToolResult, error) {
	var args struct {
		Platform string `json:"platform"`
	}
	if err := json.Unmarshal(req.Params.Arguments, &args); err != nil {
		return toolError("invalid arguments: %v", err), nil
	}

	f, err := s.feedFor(args.Platform)
	if err != nil {
		return toolError("%v", err), nil
	}

	if err := f.FetchInitial(ctx); err != nil {
		return toolError("failed to refresh feed: %v", err), nil
	}

	return &gomcp.CallToolResult{
		Content: []gomcp.Content{&gomcp.TextContent{
			Text: fmt.Sprintf("Feed refreshed: %d posts cached.", f.CacheSize()),
		}},
	}, nil
}

func (s *Server) handleSavePost(ctx context.Context, req *gomcp.CallToolRequest) (*gomcp.CallToolResult, error) {
	var args struct {
		Platform string   `json:"platform"`
		PostID   string   `json:"post_id"`
		Note     string   `json:"note"`
		Tags     []string `json:"tags"`
	}
	if err := json.Unmarshal(req.Params.Arguments, &args); err != nil {
		return toolError("invalid arguments: %v", err), nil
	}
	if args.PostID == "" {
		return toolError("post_id is required"), nil
	}

	f, err := s.feedFor(args.Platform)
	if err != nil {
		return toolError("%v", err), nil
	}

	post, ok := f.Post(args.PostID)
	if !ok {
		return toolError("post %q is not in the current feed", args.PostID), nil
	}

	title := fmt.Sprintf("Saved from @%s", post.AuthorHandle)
	content := post.Content
	if args.Note != "" {
		content = args.Note + "\n\n> " + post.Content
	}

	entry := models.NewImportedEntry(title, content, args.Tags, f.Platform(), post.ID, postURL(post))
	if err := s.journal.CreateEntry(ctx, entry); err != nil {
		return toolError("failed to save post: %v", err), nil
	}

	return &gomcp.CallToolResult{
		Content: []gomcp.Content{&gomcp.TextContent{
			Text: fmt.Sprintf("Post saved to journal: %s", entry.ID),
		}},
	}, nil
}

// postURL returns the best available link for a post. Platforms that use
// URL-shaped IDs (Bluesky AT URIs) need no extra mapping.
func postURL(p *feed.Post) string {
	if strings.Contains(p.ID, "://") {
		return p.ID
	}
	return ""
}
