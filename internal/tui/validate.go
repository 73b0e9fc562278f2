// ABOUTME: Credential validation for the account setup wizard.
// ABOUTME: Tests a token by fetching the account profile through the platform adapter.
package tui

import (
	"context"
	"fmt"

	"github.com/myface/snapjournal/internal/feed"
	"github.com/myface/snapjournal/internal/platforms"
)

// ValidateConnection tests credentials by fetching the account profile.
// The context allows cancellation when the user quits during validation.
func ValidateConnection(ctx context.Context, platform, server, token string) error {
	adapter, err := platforms.New(platform, server)
	if err != nil {
		return err
	}

	profile, err := adapter.FetchProfile(ctx, feed.Credential(token))
	if err != nil {
		return fmt.Errorf("credential check failed: %w", err)
	}
	if profile.Handle == "" {
		return fmt.Errorf("server accepted the token but returned no account")
	}
	return nil
}
