// ABOUTME: Twitter/X adapter over the v2 API: reverse-chronological home timeline.
// ABOUTME: Resolves and caches the authenticated user ID needed for timeline URLs.
package platforms

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/myface/snapjournal/internal/feed"
)

// DefaultTwitterAPIURL is the Twitter API v2 base URL.
const DefaultTwitterAPIURL = "https://api.twitter.com"

// Twitter talks to the Twitter v2 REST API with a user-context bearer
// token.
type Twitter struct {
	baseURL string
	client  *apiClient

	mu     sync.Mutex
	userID string
}

// NewTwitter creates an adapter; an empty baseURL means the public API.
func NewTwitter(baseURL string) *Twitter {
	if baseURL == "" {
		baseURL = DefaultTwitterAPIURL
	}
	return &Twitter{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  newAPIClient("twitter"),
	}
}

// Platform implements feed.Adapter.
func (t *Twitter) Platform() string { return "twitter" }

type twitterUser struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
}

type twitterMetrics struct {
	RetweetCount int `json:"retweet_count"`
	ReplyCount   int `json:"reply_count"`
	LikeCount    int `json:"like_count"`
	QuoteCount   int `json:"quote_count"`
}

type twitterTweet struct {
	ID            string         `json:"id"`
	AuthorID      string         `json:"author_id"`
	Text          string         `json:"text"`
	CreatedAt     time.Time      `json:"created_at"`
	PublicMetrics twitterMetrics `json:"public_metrics"`
}

type twitterTimeline struct {
	Data []twitterTweet `json:"data"`
	Meta struct {
		NextToken string `json:"next_token"`
	} `json:"meta"`
}

// FetchProfile resolves the authenticated user via /2/users/me.
func (t *Twitter) FetchProfile(ctx context.Context, cred feed.Credential) (*feed.Profile, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", t.baseURL+"/2/users/me", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	var envelope struct {
		Data twitterUser `json:"data"`
	}
	if err := t.client.getJSON(req, "fetch profile", cred, &envelope); err != nil {
		return nil, err
	}

	t.mu.Lock()
	t.userID = envelope.Data.ID
	t.mu.Unlock()

	return &feed.Profile{
		ID:          envelope.Data.ID,
		Handle:      envelope.Data.Username,
		DisplayName: envelope.Data.Name,
	}, nil
}

// FetchPage fetches one page of the reverse-chronological home timeline.
// The timeline URL embeds the user ID, so the first fetch resolves it if
// login did not already.
func (t *Twitter) FetchPage(ctx context.Context, cred feed.Credential, cursor string, limit int) (*feed.Page, error) {
	userID, err := t.resolveUserID(ctx, cred)
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/2/users/%s/timelines/reverse_chronological", t.baseURL, userID)
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	q := req.URL.Query()
	q.Set("max_results", fmt.Sprintf("%d", limit))
	q.Set("tweet.fields", "created_at,author_id,public_metrics")
	if cursor != "" {
		q.Set("pagination_token", cursor)
	}
	req.URL.RawQuery = q.Encode()

	var timeline twitterTimeline
	if err := t.client.getJSON(req, "fetch timeline", cred, &timeline); err != nil {
		return nil, err
	}

	posts := make([]*feed.Post, 0, len(timeline.Data))
	for _, tw := range timeline.Data {
		posts = append(posts, tw.toPost())
	}

	return &feed.Page{Posts: posts, NextCursor: timeline.Meta.NextToken}, nil
}

// React implements feed.Reactor via the likes and retweets endpoints.
func (t *Twitter) React(ctx context.Context, cred feed.Credential, postID string, kind feed.ReactionKind) error {
	userID, err := t.resolveUserID(ctx, cred)
	if err != nil {
		return err
	}

	var path, field string
	switch kind {
	case feed.ReactionLike:
		path, field = "likes", "tweet_id"
	case feed.ReactionReshare:
		path, field = "retweets", "tweet_id"
	default:
		return fmt.Errorf("unsupported reaction %q", kind)
	}

	body, err := json.Marshal(map[string]string{field: postID})
	if err != nil {
		return fmt.Errorf("failed to marshal reaction: %w", err)
	}

	url := fmt.Sprintf("%s/2/users/%s/%s", t.baseURL, userID, path)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	return t.client.postJSON(req, path, cred, nil)
}

func (t *Twitter) resolveUserID(ctx context.Context, cred feed.Credential) (string, error) {
	t.mu.Lock()
	id := t.userID
	t.mu.Unlock()
	if id != "" {
		return id, nil
	}
	if _, err := t.FetchProfile(ctx, cred); err != nil {
		return "", err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.userID, nil
}

func (tw twitterTweet) toPost() *feed.Post {
	return &feed.Post{
		ID:        tw.ID,
		AuthorID:  tw.AuthorID,
		CreatedAt: tw.CreatedAt,
		Content:   tw.Text,
		Engagement: feed.Engagement{
			Likes:    tw.PublicMetrics.LikeCount,
			Reshares: tw.PublicMetrics.RetweetCount,
			Replies:  tw.PublicMetrics.ReplyCount,
			Quotes:   tw.PublicMetrics.QuoteCount,
		},
	}
}
