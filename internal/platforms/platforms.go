// ABOUTME: Factory mapping platform keys to adapter constructors.
// ABOUTME: Single place the CLI, TUI, and MCP server resolve platforms from.
package platforms

import (
	"fmt"

	"github.com/myface/snapjournal/internal/feed"
)

// Known lists the supported platform keys.
var Known = []string{"mastodon", "bluesky", "twitter"}

// New returns the adapter for a platform key. server is the instance or
// PDS base URL; platforms with a fixed API endpoint accept an empty
// string.
func New(platform, server string) (feed.Adapter, error) {
	switch platform {
	case "mastodon":
		if server == "" {
			return nil, fmt.Errorf("mastodon requires a server URL")
		}
		return NewMastodon(server), nil
	case "bluesky":
		return NewBluesky(server), nil
	case "twitter":
		return NewTwitter(server), nil
	default:
		return nil, fmt.Errorf("unknown platform %q (supported: %v)", platform, Known)
	}
}
