// ABOUTME: MCP tool implementations for journal operations.
// ABOUTME: Registers create_journal_entry, search_journal, list_journal_entries.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	gomcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/myface/snapjournal/internal/models"
	"github.com/myface/snapjournal/internal/storage"
)

func (s *Server) registerJournalTools() {
	s.mcp.AddTool(&gomcp.Tool{
		Name:        "create_journal_entry",
		Description: "Write a new private journal entry. Content is required; title, tags, and mood are optional.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"title": {"type": "string", "description": "Short title for the entry"},
				"content": {"type": "string", "description": "Entry body text"},
				"tags": {"type": "array", "items": {"type": "string"}, "description": "Tags to attach to the entry"},
				"mood": {"type": "string", "description": "Mood word, e.g. calm, anxious, excited"}
			},
			"required": ["content"]
		}`),
	}, s.handleCreateEntry)

	s.mcp.AddTool(&gomcp.Tool{
		Name:        "search_journal",
		Description: "Search journal entries by text. Matches against title, content, and tags.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"query": {"type": "string", "description": "Search query text"},
				"limit": {"type": "number", "description": "Maximum number of results (default 10)"}
			},
			"required": ["query"]
		}`),
	}, s.handleSearchJournal)

	s.mcp.AddTool(&gomcp.Tool{
		Name:        "list_journal_entries",
		Description: "List recent journal entries, newest first. Optionally filter by tag or source platform.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"limit": {"type": "number", "description": "Maximum number of entries to return (default 10)"},
				"tag": {"type": "string", "description": "Only entries carrying this tag"},
				"source": {"type": "string", "description": "Only entries saved from this platform (mastodon, bluesky, twitter)"}
			}
		}`),
	}, s.handleListEntries)
}

func (s *Server) handleCreateEntry(ctx context.Context, req *gomcp.CallToolRequest) (*gomcp.CallToolResult, error) {
	var args struct {
		Title   string   `json:"title"`
		Content string   `json:"content"`
		Tags    []string `json:"tags"`
		Mood    string   `json:"mood"`
	}
	if err := json.Unmarshal(req.Params.Arguments, &args); err != nil {
		return toolError("invalid arguments: %v", err), nil
	}
	if strings.TrimSpace(args.Content) == "" {
		return toolError("content is required"), nil
	}

	entry := models.NewJournalEntry(args.Title, args.Content, args.Tags)
	entry.Mood = args.Mood
	if err := s.journal.CreateEntry(ctx, entry); err != nil {
		return toolError("failed to create entry: %v", err), nil
	}

	return &gomcp.CallToolResult{
		Content: []gomcp.Content{&gomcp.TextContent{
			Text: fmt.Sprintf("Journal entry created: %s", entry.ID),
		}},
	}, nil
}

func (s *Server) handleSearchJournal(ctx context.Context, req *gomcp.CallToolRequest) (*gomcp.CallToolResult, error) {
	var args struct {
		Query string `json:"query"`
		Limit int    `json:"limit"`
	}
	if err := json.Unmarshal(req.Params.Arguments, &args); err != nil {
		return toolError("invalid arguments: %v", err), nil
	}
	if args.Query == "" {
		return toolError("query is required"), nil
	}
	if args.Limit <= 0 {
		args.Limit = 10
	}

	entries, err := s.journal.SearchEntries(ctx, args.Query, args.Limit)
	if err != nil {
		return toolError("failed to search entries: %v", err), nil
	}
	if len(entries) == 0 {
		return &gomcp.CallToolResult{
			Content: []gomcp.Content{&gomcp.TextContent{Text: "No matching entries found."}},
		}, nil
	}

	var sb strings.Builder
	for i, entry := range entries {
		if i > 0 {
			sb.WriteString("\n---\n")
		}
		writeEntry(&sb, entry)
	}

	return &gomcp.CallToolResult{
		Content: []gomcp.Content{&gomcp.TextContent{Text: sb.String()}},
	}, nil
}

func (s *Server) handleListEntries(ctx context.Context, req *gomcp.CallToolRequest) (*gomcp.CallToolResult, error) {
	var args struct {
		Limit  int    `json:"limit"`
		Tag    string `json:"tag"`
		Source string `json:"source"`
	}
	if err := json.Unmarshal(req.Params.Arguments, &args); err != nil {
		return toolError("invalid arguments: %v", err), nil
	}
	if args.Limit <= 0 {
		args.Limit = 10
	}

	entries, err := s.journal.ListEntries(ctx, storage.ListEntriesOptions{
		Limit:  args.Limit,
		Tag:    args.Tag,
		Source: args.Source,
	})
	if err != nil {
		return toolError("failed to list entries: %v", err), nil
	}
	if len(entries) == 0 {
		return &gomcp.CallToolResult{
			Content: []gomcp.Content{&gomcp.TextContent{Text: "No entries found."}},
		}, nil
	}

	var sb strings.Builder
	for _, entry := range entries {
		line := fmt.Sprintf("- %s %s", entry.CreatedAt.Format("2006-01-02 15:04"), entry.Title)
		if entry.Source != "" {
			line += fmt.Sprintf(" [from %s]", entry.Source)
		}
		if len(entry.Tags) > 0 {
			line += " (" + strings.Join(entry.Tags, ", ") + ")"
		}
		sb.WriteString(line + "\n")
		sb.WriteString(fmt.Sprintf("  ID: %s\n", entry.ID))
	}

	return &gomcp.CallToolResult{
		Content: []gomcp.Content{&gomcp.TextContent{Text: sb.String()}},
	}, nil
}

func writeEntry(sb *strings.Builder, entry *models.JournalEntry) {
	sb.WriteString(fmt.Sprintf("Entry: %s\n", entry.ID))
	sb.WriteString(fmt.Sprintf("Date: %s\n", entry.CreatedAt.Format("2006-01-02 15:04:05")))
	if entry.Title != "" {
		sb.WriteString(fmt.Sprintf("Title: %s\n", entry.Title))
	}
	if entry.Source != "" {
		sb.WriteString(fmt.Sprintf("Source: %s (%s)\n", entry.Source, entry.SourceURL))
	}
	if len(entry.Tags) > 0 {
		sb.WriteString(fmt.Sprintf("Tags: %s\n", strings.Join(entry.Tags, ", ")))
	}
	sb.WriteString("\n" + entry.Content + "\n")
}

// toolError creates an error result for MCP tool responses.
func toolError(format string, args ...interface{}) *gomcp.CallToolResult {
	return &gomcp.CallToolResult{
		Content: []gomcp.Content{&gomcp.TextContent{Text: fmt.Sprintf(format, args...)}},
		IsError: true,
	}
}
