// ABOUTME: Platform-agnostic post, profile, and page types for the feed pipeline.
// ABOUTME: Adapters normalize platform-specific API responses into these shapes.
package feed

import "time"

// Engagement holds interaction counts for a post. Counts default to zero
// when the platform API omits them.
type Engagement struct {
	Likes    int
	Reshares int
	Replies  int
	Quotes   int
}

// Attachment describes a single media item on a post. The pipeline does
// not inspect attachments; they are carried through for display.
type Attachment struct {
	URL  string
	Type string // "image", "video", "gifv", ...
}

// Post is the platform-agnostic representation of a social post.
// ID is unique per platform+account; content is opaque text or HTML.
type Post struct {
	ID           string
	AuthorID     string
	AuthorHandle string
	AuthorName   string
	CreatedAt    time.Time
	Content      string
	Media        []Attachment
	Engagement   Engagement
}

// Profile is the authenticated account's identity on a platform.
type Profile struct {
	ID          string
	Handle      string
	DisplayName string
}

// Page is one page of timeline results. An empty NextCursor means the
// timeline is exhausted.
type Page struct {
	Posts      []*Post
	NextCursor string
}
