// ABOUTME: Adapter contract each social platform client must satisfy.
// ABOUTME: The pipeline is generic over this interface; one engine, many platforms.
package feed

import "context"

// Credential is an opaque bearer token or session secret. It is owned by
// the Session and handed to the adapter per call; nothing else stores it.
type Credential string

// Adapter is the capability a platform client provides to the pipeline.
// FetchPage with an empty cursor requests the first page. Failures must
// be *AuthError (re-authenticate) or *NetworkError (retryable).
type Adapter interface {
	// Platform returns the platform key, e.g. "mastodon".
	Platform() string

	// FetchProfile validates the credential by fetching the account profile.
	FetchProfile(ctx context.Context, cred Credential) (*Profile, error)

	// FetchPage fetches one timeline page starting at cursor.
	FetchPage(ctx context.Context, cred Credential, cursor string, limit int) (*Page, error)
}

// ReactionKind identifies a user reaction applied to a post.
type ReactionKind string

const (
	ReactionLike    ReactionKind = "like"
	ReactionReshare ReactionKind = "reshare"
)

// Reactor is an optional adapter capability for posting reactions.
// Adapters for platforms without a write API simply do not implement it.
type Reactor interface {
	React(ctx context.Context, cred Credential, postID string, kind ReactionKind) error
}
