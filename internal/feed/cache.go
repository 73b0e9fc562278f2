// ABOUTME: Session-scoped post cache with idempotent ingestion by post ID.
// ABOUTME: First-seen entries keep their position and content; only engagement counts refresh.
package feed

// Cache holds every post fetched so far for the current session,
// deduplicated by ID. It is not safe for concurrent use; the owning Feed
// serializes access.
type Cache struct {
	posts []*Post
	index map[string]int
}

// NewCache returns an empty cache.
func NewCache() *Cache {
	return &Cache{index: make(map[string]int)}
}

// Ingest merges a batch into the cache and returns the number of posts
// that were new. Re-ingesting a known ID never grows the cache, reorders
// entries, or replaces the stored post; the one exception is engagement
// counts, which are refreshed from the latest observation so that
// optimistic local deltas can be reconciled against authoritative data.
func (c *Cache) Ingest(posts []*Post) int {
	added := 0
	for _, p := range posts {
		if p == nil || p.ID == "" {
			continue
		}
		if i, seen := c.index[p.ID]; seen {
			c.posts[i].Engagement = p.Engagement
			continue
		}
		cp := *p
		c.index[p.ID] = len(c.posts)
		c.posts = append(c.posts, &cp)
		added++
	}
	return added
}

// Posts returns the cached posts in insertion order. The slice is a copy;
// the posts themselves are shared and must be treated as read-only.
func (c *Cache) Posts() []*Post {
	out := make([]*Post, len(c.posts))
	copy(out, c.posts)
	return out
}

// Get returns the cached post with the given ID, if present.
func (c *Cache) Get(id string) (*Post, bool) {
	i, ok := c.index[id]
	if !ok {
		return nil, false
	}
	return c.posts[i], true
}

// Len returns the number of cached posts.
func (c *Cache) Len() int { return len(c.posts) }

// Reset clears the cache. Invoked on logout.
func (c *Cache) Reset() {
	c.posts = nil
	c.index = make(map[string]int)
}
