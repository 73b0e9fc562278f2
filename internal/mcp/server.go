// ABOUTME: MCP server initialization and configuration for snapjournal.
// ABOUTME: Sets up server with journal and feed tools for AI agent access.
package mcp

import (
	"context"
	"fmt"
	"sort"

	gomcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/myface/snapjournal/internal/feed"
	"github.com/myface/snapjournal/internal/storage"
)

// Server wraps the MCP server with journal storage and live feeds.
type Server struct {
	mcp     *gomcp.Server
	journal storage.JournalStore
	feeds   map[string]*feed.Feed
}

// ServerOption configures optional Server dependencies.
type ServerOption func(*Server)

// WithFeed attaches a platform feed so agents can read and save from it.
func WithFeed(f *feed.Feed) ServerOption {
	return func(s *Server) {
		s.feeds[f.Platform()] = f
	}
}

// NewServer creates an MCP server with journal and feed capabilities.
func NewServer(journal storage.JournalStore, opts ...ServerOption) (*Server, error) {
	if journal == nil {
		return nil, fmt.Errorf("journal store is required")
	}

	mcpServer := gomcp.NewServer(
		&gomcp.Implementation{
			Name:    "snapjournal",
			Version: "1.0.0",
		},
		nil,
	)

	s := &Server{
		mcp:     mcpServer,
		journal: journal,
		feeds:   make(map[string]*feed.Feed),
	}

	for _, opt := range opts {
		opt(s)
	}

	s.registerJournalTools()
	s.registerFeedTools()

	return s, nil
}

// Serve starts the MCP server in stdio mode.
func (s *Server) Serve(ctx context.Context) error {
	return s.mcp.Run(ctx, &gomcp.StdioTransport{})
}

// feedFor resolves a platform argument to an attached feed. With a single
// attached feed the platform argument may be omitted.
func (s *Server) feedFor(platform string) (*feed.Feed, error) {
	if platform == "" {
		if len(s.feeds) == 1 {
			for _, f := range s.feeds {
				return f, nil
			}
		}
		return nil, fmt.Errorf("platform is required when multiple accounts are connected (%s)", s.platformList())
	}
	f, ok := s.feeds[platform]
	if !ok {
		return nil, fmt.Errorf("no connected account for platform %q (connected: %s)", platform, s.platformList())
	}
	return f, nil
}

func (s *Server) platformList() string {
	names := make([]string, 0, len(s.feeds))
	for name := range s.feeds {
		names = append(names, name)
	}
	sort.Strings(names)
	if len(names) == 0 {
		return "none"
	}
	out := names[0]
	for _, n := range names[1:] {
		out += ", " + n
	}
	return out
}
