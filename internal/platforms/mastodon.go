// ABOUTME: Mastodon adapter: home timeline pagination and credential verification.
// ABOUTME: Normalizes statuses into the platform-agnostic post shape.
package platforms

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/myface/snapjournal/internal/feed"
)

// Mastodon talks to a Mastodon-compatible server's REST API.
type Mastodon struct {
	server string
	client *apiClient
}

// NewMastodon creates an adapter for the given server base URL,
// e.g. "https://mastodon.social".
func NewMastodon(server string) *Mastodon {
	return &Mastodon{
		server: strings.TrimRight(server, "/"),
		client: newAPIClient("mastodon"),
	}
}

// Platform implements feed.Adapter.
func (m *Mastodon) Platform() string { return "mastodon" }

// mastodonAccount maps the account object embedded in statuses and
// returned by verify_credentials.
type mastodonAccount struct {
	ID          string `json:"id"`
	Acct        string `json:"acct"`
	DisplayName string `json:"display_name"`
}

type mastodonAttachment struct {
	Type string `json:"type"`
	URL  string `json:"url"`
}

type mastodonStatus struct {
	ID               string               `json:"id"`
	CreatedAt        time.Time            `json:"created_at"`
	Content          string               `json:"content"`
	Account          mastodonAccount      `json:"account"`
	FavouritesCount  int                  `json:"favourites_count"`
	ReblogsCount     int                  `json:"reblogs_count"`
	RepliesCount     int                  `json:"replies_count"`
	MediaAttachments []mastodonAttachment `json:"media_attachments"`
}

// FetchProfile validates the token against verify_credentials.
func (m *Mastodon) FetchProfile(ctx context.Context, cred feed.Credential) (*feed.Profile, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", m.server+"/api/v1/accounts/verify_credentials", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	var account mastodonAccount
	if err := m.client.getJSON(req, "verify credentials", cred, &account); err != nil {
		return nil, err
	}

	return &feed.Profile{
		ID:          account.ID,
		Handle:      account.Acct,
		DisplayName: account.DisplayName,
	}, nil
}

// FetchPage fetches one page of the home timeline. Mastodon paginates by
// max_id: the cursor is the oldest status ID of the previous page.
func (m *Mastodon) FetchPage(ctx context.Context, cred feed.Credential, cursor string, limit int) (*feed.Page, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", m.server+"/api/v1/timelines/home", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	q := req.URL.Query()
	q.Set("limit", fmt.Sprintf("%d", limit))
	if cursor != "" {
		q.Set("max_id", cursor)
	}
	req.URL.RawQuery = q.Encode()

	var statuses []mastodonStatus
	if err := m.client.getJSON(req, "fetch timeline", cred, &statuses); err != nil {
		return nil, err
	}

	posts := make([]*feed.Post, 0, len(statuses))
	for _, st := range statuses {
		posts = append(posts, st.toPost())
	}

	// A short page means the timeline is exhausted; otherwise continue
	// from the oldest status returned.
	nextCursor := ""
	if len(statuses) == limit && limit > 0 {
		nextCursor = statuses[len(statuses)-1].ID
	}

	return &feed.Page{Posts: posts, NextCursor: nextCursor}, nil
}

// React implements feed.Reactor using the favourite and reblog endpoints.
func (m *Mastodon) React(ctx context.Context, cred feed.Credential, postID string, kind feed.ReactionKind) error {
	var action string
	switch kind {
	case feed.ReactionLike:
		action = "favourite"
	case feed.ReactionReshare:
		action = "reblog"
	default:
		return fmt.Errorf("unsupported reaction %q", kind)
	}

	url := fmt.Sprintf("%s/api/v1/statuses/%s/%s", m.server, postID, action)
	req, err := http.NewRequestWithContext(ctx, "POST", url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	return m.client.postJSON(req, action, cred, nil)
}

func (st mastodonStatus) toPost() *feed.Post {
	post := &feed.Post{
		ID:           st.ID,
		AuthorID:     st.Account.ID,
		AuthorHandle: st.Account.Acct,
		AuthorName:   st.Account.DisplayName,
		CreatedAt:    st.CreatedAt,
		Content:      st.Content,
		Engagement: feed.Engagement{
			Likes:    st.FavouritesCount,
			Reshares: st.ReblogsCount,
			Replies:  st.RepliesCount,
		},
	}
	for _, att := range st.MediaAttachments {
		post.Media = append(post.Media, feed.Attachment{URL: att.URL, Type: att.Type})
	}
	return post
}
