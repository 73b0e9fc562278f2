// ABOUTME: Tests for the Twitter v2 adapter.
// ABOUTME: Covers user ID resolution, timeline pagination, and reactions.
package platforms

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/myface/snapjournal/internal/feed"
)

func newTwitterTestServer(t *testing.T) (*httptest.Server, *[]string) {
	t.Helper()
	var paths []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/2/users/me":
			_, _ = w.Write([]byte(`{"data":{"id":"777","username":"gopher","name":"Gopher"}}`))
		case "/2/users/777/timelines/reverse_chronological":
			_, _ = w.Write([]byte(`{
				"data": [
					{"id": "t1", "author_id": "888", "text": "gm", "created_at": "2026-08-01T09:00:00Z",
					 "public_metrics": {"retweet_count": 1, "reply_count": 2, "like_count": 3, "quote_count": 0}}
				],
				"meta": {"next_token": "tok-2"}
			}`))
		case "/2/users/777/likes":
			body, _ := io.ReadAll(r.Body)
			var payload map[string]string
			_ = json.Unmarshal(body, &payload)
			if payload["tweet_id"] != "t1" {
				t.Errorf("expected tweet_id t1, got %q", payload["tweet_id"])
			}
			_, _ = w.Write([]byte(`{"data":{"liked":true}}`))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	return server, &paths
}

func TestTwitterFetchPageResolvesUserID(t *testing.T) {
	server, paths := newTwitterTestServer(t)
	defer server.Close()

	tw := NewTwitter(server.URL)
	page, err := tw.FetchPage(context.Background(), "token", "", 10)
	if err != nil {
		t.Fatalf("FetchPage error: %v", err)
	}

	// First call resolves /2/users/me, then hits the timeline.
	if len(*paths) != 2 || (*paths)[0] != "/2/users/me" {
		t.Errorf("expected profile resolution before timeline, got %v", *paths)
	}
	if len(page.Posts) != 1 {
		t.Fatalf("expected 1 post, got %d", len(page.Posts))
	}
	if page.Posts[0].Engagement.Likes != 3 {
		t.Errorf("unexpected engagement %+v", page.Posts[0].Engagement)
	}
	if page.NextCursor != "tok-2" {
		t.Errorf("unexpected cursor %q", page.NextCursor)
	}

	// Second page reuses the cached user ID.
	if _, err := tw.FetchPage(context.Background(), "token", "tok-2", 10); err != nil {
		t.Fatalf("FetchPage error: %v", err)
	}
	if len(*paths) != 3 {
		t.Errorf("expected no second profile call, got %v", *paths)
	}
}

func TestTwitterReactLike(t *testing.T) {
	server, _ := newTwitterTestServer(t)
	defer server.Close()

	tw := NewTwitter(server.URL)
	if err := tw.React(context.Background(), "token", "t1", feed.ReactionLike); err != nil {
		t.Fatalf("React error: %v", err)
	}
}

func TestTwitterProfileRateLimited(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"title":"Too Many Requests"}`))
	}))
	defer server.Close()

	tw := NewTwitter(server.URL)
	_, err := tw.FetchProfile(context.Background(), "token")
	if !feed.IsNetworkError(err) {
		t.Errorf("expected NetworkError for 429, got %T: %v", err, err)
	}
}

func TestPlatformFactory(t *testing.T) {
	if _, err := New("mastodon", "https://example.social"); err != nil {
		t.Errorf("mastodon: %v", err)
	}
	if _, err := New("mastodon", ""); err == nil {
		t.Error("mastodon without server should fail")
	}
	if _, err := New("bluesky", ""); err != nil {
		t.Errorf("bluesky: %v", err)
	}
	if _, err := New("twitter", ""); err != nil {
		t.Errorf("twitter: %v", err)
	}
	if _, err := New("friendster", ""); err == nil {
		t.Error("unknown platform should fail")
	}
}
