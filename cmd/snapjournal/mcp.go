// ABOUTME: MCP server command implementation for snapjournal.
// ABOUTME: Starts the MCP server in stdio mode for AI agent integration.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	mcppkg "github.com/myface/snapjournal/internal/mcp"
	"github.com/myface/snapjournal/internal/platforms"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server (stdio mode)",
	Long: `Start the Model Context Protocol server for AI agent integration.

The MCP server communicates via stdio, allowing AI agents to read your
feeds and journal through a standardized protocol. Feeds are attached
for every platform with a restorable session.`,
	RunE: runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, args []string) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	var opts []mcppkg.ServerOption
	for _, platform := range platforms.Known {
		f, err := openFeed(platform)
		if err != nil {
			continue
		}
		ok, err := f.Session().Restore(ctx)
		if err != nil || !ok {
			continue
		}
		opts = append(opts, mcppkg.WithFeed(f))
	}

	server, err := mcppkg.NewServer(globalJournalStore, opts...)
	if err != nil {
		return fmt.Errorf("failed to start MCP server: %w", err)
	}

	return server.Serve(ctx)
}
