// ABOUTME: CLI commands for account session management.
// ABOUTME: Provides login, logout, and status subcommands per platform.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/myface/snapjournal/internal/feed"
	"github.com/myface/snapjournal/internal/platforms"
)

var accountCmd = &cobra.Command{
	Use:   "account",
	Short: "Manage connected accounts",
	Long:  "Log in to, log out of, and inspect connected social accounts.",
}

var accountLoginCmd = &cobra.Command{
	Use:   "login <platform>",
	Short: "Log in to a platform",
	Long:  "Validate an access token and start a session. Uses the configured token unless --token is given.",
	Args:  cobra.ExactArgs(1),
	RunE:  runAccountLogin,
}

var accountLogoutCmd = &cobra.Command{
	Use:   "logout <platform>",
	Short: "Log out of a platform",
	Long:  "Discard the stored credential and cached session state for a platform.",
	Args:  cobra.ExactArgs(1),
	RunE:  runAccountLogout,
}

var accountStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show connected accounts",
	Long:  "Re-validate stored credentials and show which platforms are connected.",
	RunE:  runAccountStatus,
}

var loginToken string

func init() {
	rootCmd.AddCommand(accountCmd)
	accountCmd.AddCommand(accountLoginCmd)
	accountCmd.AddCommand(accountLogoutCmd)
	accountCmd.AddCommand(accountStatusCmd)

	accountLoginCmd.Flags().StringVar(&loginToken, "token", "", "Access token (defaults to the configured token)")
}

func runAccountLogin(cmd *cobra.Command, args []string) error {
	platform := args[0]

	token := loginToken
	if token == "" {
		token = globalConfig.TokenFor(platform)
	}
	if token == "" {
		return fmt.Errorf("no access token for %s: pass --token or run 'snapjournal setup %s'", platform, platform)
	}

	f, err := openFeed(platform)
	if err != nil {
		return err
	}

	profile, err := f.Session().Login(cmd.Context(), feed.Credential(token))
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	fmt.Printf("Logged in to %s as @%s\n", platform, profile.Handle)
	return nil
}

func runAccountLogout(cmd *cobra.Command, args []string) error {
	platform := args[0]

	f, err := openFeed(platform)
	if err != nil {
		return err
	}

	f.Session().Logout()
	fmt.Printf("Logged out of %s\n", platform)
	return nil
}

func runAccountStatus(cmd *cobra.Command, args []string) error {
	for _, platform := range platforms.Known {
		f, err := openFeed(platform)
		if err != nil {
			fmt.Printf("%-10s not configured (%v)\n", platform, err)
			continue
		}

		ok, err := f.Session().Restore(cmd.Context())
		switch {
		case err != nil:
			fmt.Printf("%-10s unreachable (%v)\n", platform, err)
		case !ok:
			fmt.Printf("%-10s not connected\n", platform)
		default:
			user := f.Session().User()
			fmt.Printf("%-10s @%s (last verified %s)\n",
				platform, user.Handle, f.Session().LastAuth().Format("2006-01-02 15:04"))
		}
	}
	return nil
}
