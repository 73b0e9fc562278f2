// ABOUTME: Bluesky adapter over the XRPC API: timeline fetch and session validation.
// ABOUTME: Read-only; Bluesky likes require repo writes, so no Reactor capability.
package platforms

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/myface/snapjournal/internal/feed"
)

// DefaultBlueskyServer is the public Bluesky PDS entrypoint.
const DefaultBlueskyServer = "https://bsky.social"

// Bluesky talks to an AT Protocol PDS via XRPC.
type Bluesky struct {
	server string
	client *apiClient
}

// NewBluesky creates an adapter for the given PDS base URL; empty means
// the public bsky.social entrypoint.
func NewBluesky(server string) *Bluesky {
	if server == "" {
		server = DefaultBlueskyServer
	}
	return &Bluesky{
		server: strings.TrimRight(server, "/"),
		client: newAPIClient("bluesky"),
	}
}

// Platform implements feed.Adapter.
func (b *Bluesky) Platform() string { return "bluesky" }

type blueskySession struct {
	DID    string `json:"did"`
	Handle string `json:"handle"`
}

type blueskyAuthor struct {
	DID         string `json:"did"`
	Handle      string `json:"handle"`
	DisplayName string `json:"displayName"`
}

type blueskyRecord struct {
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}

type blueskyPost struct {
	URI         string        `json:"uri"`
	Author      blueskyAuthor `json:"author"`
	Record      blueskyRecord `json:"record"`
	ReplyCount  int           `json:"replyCount"`
	RepostCount int           `json:"repostCount"`
	LikeCount   int           `json:"likeCount"`
	QuoteCount  int           `json:"quoteCount"`
}

type blueskyFeedItem struct {
	Post blueskyPost `json:"post"`
}

type blueskyTimeline struct {
	Cursor string            `json:"cursor"`
	Feed   []blueskyFeedItem `json:"feed"`
}

// FetchProfile validates the access token by resolving the session.
func (b *Bluesky) FetchProfile(ctx context.Context, cred feed.Credential) (*feed.Profile, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", b.server+"/xrpc/com.atproto.server.getSession", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	var session blueskySession
	if err := b.client.getJSON(req, "get session", cred, &session); err != nil {
		return nil, err
	}

	return &feed.Profile{
		ID:          session.DID,
		Handle:      session.Handle,
		DisplayName: session.Handle,
	}, nil
}

// FetchPage fetches one timeline page. Bluesky issues an opaque cursor;
// an absent cursor in the response means the timeline is exhausted.
func (b *Bluesky) FetchPage(ctx context.Context, cred feed.Credential, cursor string, limit int) (*feed.Page, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", b.server+"/xrpc/app.bsky.feed.getTimeline", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	q := req.URL.Query()
	q.Set("limit", fmt.Sprintf("%d", limit))
	if cursor != "" {
		q.Set("cursor", cursor)
	}
	req.URL.RawQuery = q.Encode()

	var timeline blueskyTimeline
	if err := b.client.getJSON(req, "fetch timeline", cred, &timeline); err != nil {
		return nil, err
	}

	posts := make([]*feed.Post, 0, len(timeline.Feed))
	for _, item := range timeline.Feed {
		posts = append(posts, item.Post.toPost())
	}

	return &feed.Page{Posts: posts, NextCursor: timeline.Cursor}, nil
}

func (p blueskyPost) toPost() *feed.Post {
	return &feed.Post{
		ID:           p.URI,
		AuthorID:     p.Author.DID,
		AuthorHandle: p.Author.Handle,
		AuthorName:   p.Author.DisplayName,
		CreatedAt:    p.Record.CreatedAt,
		Content:      p.Record.Text,
		Engagement: feed.Engagement{
			Likes:    p.LikeCount,
			Reshares: p.RepostCount,
			Replies:  p.ReplyCount,
			Quotes:   p.QuoteCount,
		},
	}
}
