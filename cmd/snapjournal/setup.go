// ABOUTME: Cobra command for interactive account setup.
// ABOUTME: Launches a bubbletea TUI wizard to collect and validate platform credentials.
package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/myface/snapjournal/internal/config"
	"github.com/myface/snapjournal/internal/platforms"
	"github.com/myface/snapjournal/internal/tui"
)

var setupCmd = &cobra.Command{
	Use:   "setup <platform>",
	Short: "Connect a social account",
	Long:  "Interactive wizard to configure and validate credentials for mastodon, bluesky, or twitter.",
	Args:  cobra.ExactArgs(1),
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(cmd *cobra.Command, args []string) error {
	platform := args[0]

	known := false
	for _, p := range platforms.Known {
		if p == platform {
			known = true
			break
		}
	}
	if !known {
		return fmt.Errorf("unknown platform %q: expected one of %v", platform, platforms.Known)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	model := tui.NewSetupModel(platform, cfg.ServerFor(platform), cfg.TokenFor(platform))

	p := tea.NewProgram(model)
	result, err := p.Run()
	if err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	final := result.(tui.SetupModel)
	if !final.ShouldSave() {
		fmt.Println("Setup cancelled.")
		return nil
	}

	server, token := final.Result()
	switch platform {
	case "mastodon":
		cfg.Platforms.Mastodon.Server = server
	case "bluesky":
		cfg.Platforms.Bluesky.Server = server
	}
	cfg.SetToken(platform, token)

	if err := cfg.Save(); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	configPath, err := config.GetConfigPath()
	if err != nil {
		fmt.Println("Config saved successfully.")
	} else {
		fmt.Printf("Config saved to %s\n", configPath)
	}
	return nil
}
