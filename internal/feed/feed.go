// ABOUTME: Feed drives pagination, ingestion, ranking, and display state for one platform.
// ABOUTME: One in-flight fetch at a time; stale results from a previous session generation are discarded.
package feed

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"
)

// Snapshot is the display state handed to subscribers after every change:
// the ranked subset plus enough metadata to render feed chrome.
type Snapshot struct {
	Platform  string
	Posts     []*Post
	Algorithm Algorithm
	Limit     int
	HasMore   bool
	CacheSize int
}

// Option configures a Feed at construction.
type Option func(*Feed)

// WithAlgorithm sets the initial ranking algorithm.
func WithAlgorithm(a Algorithm) Option {
	return func(f *Feed) { f.algorithm = a }
}

// WithDisplayLimit sets the maximum number of displayed posts.
func WithDisplayLimit(n int) Option {
	return func(f *Feed) { f.limit = n }
}

// WithPageSize sets how many posts each fetch requests.
func WithPageSize(n int) Option {
	return func(f *Feed) {
		if n > 0 {
			f.pageSize = n
		}
	}
}

// WithClock overrides the time source used for ranking. Tests use this to
// pin "now".
func WithClock(now func() time.Time) Option {
	return func(f *Feed) { f.now = now }
}

// WithLogger overrides the default slog logger.
func WithLogger(l *slog.Logger) Option {
	return func(f *Feed) { f.logger = l }
}

// Feed is the per-platform pipeline: it fetches pages through the
// adapter, dedupes them into the cache, tracks the pagination cursor, and
// keeps a ranked display subset current. All methods are safe for
// concurrent use.
type Feed struct {
	adapter Adapter
	session *Session
	logger  *slog.Logger
	now     func() time.Time

	mu         sync.Mutex
	cache      *Cache
	deltas     *overlay
	cursor     string
	hasMore    bool
	inFlight   bool
	algorithm  Algorithm
	limit      int
	pageSize   int
	display    []*Post
	subs       []func(Snapshot)
	liveCancel context.CancelFunc
}

// New creates a feed bound to a session and attaches it so logout resets
// the cache and pagination state.
func New(adapter Adapter, session *Session, opts ...Option) *Feed {
	f := &Feed{
		adapter:   adapter,
		session:   session,
		logger:    slog.Default(),
		now:       time.Now,
		cache:     NewCache(),
		deltas:    newOverlay(),
		algorithm: AlgorithmLatest,
		limit:     DefaultDisplayLimit,
		pageSize:  40,
	}
	for _, opt := range opts {
		opt(f)
	}
	session.Attach(f)
	return f
}

// Session returns the session this feed fetches under.
func (f *Feed) Session() *Session { return f.session }

// Platform returns the platform key.
func (f *Feed) Platform() string { return f.adapter.Platform() }

// Login authenticates the session and performs the initial feed fetch.
func (f *Feed) Login(ctx context.Context, cred Credential) error {
	if _, err := f.session.Login(ctx, cred); err != nil {
		return err
	}
	return f.FetchInitial(ctx)
}

// FetchInitial requests the first timeline page and replaces the
// pagination state with the response's cursor. Results merge into the
// existing cache, so it doubles as the head refresh for live mode.
func (f *Feed) FetchInitial(ctx context.Context) error {
	return f.fetch(ctx, true)
}

// FetchMore requests the next page using the stored cursor. It is a
// silent no-op when the timeline is exhausted or a fetch is already in
// flight; callers that need a guaranteed fetch retry after the current
// one completes.
func (f *Feed) FetchMore(ctx context.Context) error {
	return f.fetch(ctx, false)
}

func (f *Feed) fetch(ctx context.Context, initial bool) error {
	f.mu.Lock()
	if f.inFlight || (!initial && !f.hasMore) {
		f.mu.Unlock()
		return nil
	}
	cred, gen, ok := f.session.snapshot()
	if !ok {
		f.mu.Unlock()
		return &AuthError{Platform: f.Platform(), Op: "fetch"}
	}
	cursor := ""
	if !initial {
		cursor = f.cursor
	}
	limit := f.pageSize
	f.inFlight = true
	f.mu.Unlock()

	page, err := f.adapter.FetchPage(ctx, cred, cursor, limit)

	f.mu.Lock()
	f.inFlight = false
	if err != nil {
		f.mu.Unlock()
		return err
	}
	if f.session.Generation() != gen {
		f.mu.Unlock()
		f.logger.Debug("discarding fetch from ended session", slog.String("platform", f.Platform()))
		return nil
	}

	added := f.cache.Ingest(page.Posts)
	for _, p := range page.Posts {
		f.deltas.drop(p.ID)
	}
	f.cursor = page.NextCursor
	f.hasMore = page.NextCursor != ""
	snap := f.recomputeLocked()
	subs := slices.Clone(f.subs)
	f.mu.Unlock()

	f.publish(snap, subs)
	f.logger.Debug("page ingested",
		slog.String("platform", f.Platform()),
		slog.Int("new", added),
		slog.Int("cache", snap.CacheSize),
		slog.Bool("has_more", snap.HasMore))
	return nil
}

// React applies an optimistic engagement delta for the post, then issues
// the platform call. If the call fails the delta is rolled back. A later
// fetch that re-observes the post drops the delta in favor of the
// platform's authoritative counts.
func (f *Feed) React(ctx context.Context, postID string, kind ReactionKind) error {
	reactor, ok := f.adapter.(Reactor)
	if !ok {
		return ErrReactionsUnsupported
	}
	cred, gen, authed := f.session.snapshot()
	if !authed {
		return &AuthError{Platform: f.Platform(), Op: "react"}
	}

	f.mu.Lock()
	if _, cached := f.cache.Get(postID); !cached {
		f.mu.Unlock()
		return fmt.Errorf("post %s not in cache", postID)
	}
	f.deltas.bump(postID, kind)
	snap := f.recomputeLocked()
	subs := slices.Clone(f.subs)
	f.mu.Unlock()
	f.publish(snap, subs)

	if err := reactor.React(ctx, cred, postID, kind); err != nil {
		f.mu.Lock()
		if f.session.Generation() == gen {
			f.deltas.revert(postID, kind)
			snap = f.recomputeLocked()
			subs = slices.Clone(f.subs)
			f.mu.Unlock()
			f.publish(snap, subs)
		} else {
			f.mu.Unlock()
		}
		return err
	}
	return nil
}

// SetAlgorithm changes the ranking algorithm and recomputes the display.
// Unknown names are kept as-is; ranking falls back to latest rather than
// failing.
func (f *Feed) SetAlgorithm(a Algorithm) {
	if !a.Valid() {
		f.logger.Warn("unknown ranking algorithm, displaying latest",
			slog.String("platform", f.Platform()), slog.String("algorithm", string(a)))
	}
	f.mu.Lock()
	f.algorithm = a
	snap := f.recomputeLocked()
	subs := slices.Clone(f.subs)
	f.mu.Unlock()
	f.publish(snap, subs)
}

// SetDisplayLimit changes the display subset bound and recomputes.
// Non-positive values fall back to the default limit at ranking time.
func (f *Feed) SetDisplayLimit(n int) {
	f.mu.Lock()
	f.limit = n
	snap := f.recomputeLocked()
	subs := slices.Clone(f.subs)
	f.mu.Unlock()
	f.publish(snap, subs)
}

// Display returns the current ranked subset.
func (f *Feed) Display() []*Post {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*Post, len(f.display))
	copy(out, f.display)
	return out
}

// Post returns the cached post with the given ID, with any pending
// reaction deltas applied.
func (f *Feed) Post(id string) (*Post, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.cache.Get(id)
	if !ok {
		return nil, false
	}
	adjusted := f.deltas.apply([]*Post{p})
	return adjusted[0], true
}

// HasMore reports whether the timeline has another page.
func (f *Feed) HasMore() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.hasMore
}

// CacheSize returns the number of posts cached this session.
func (f *Feed) CacheSize() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.cache.Len()
}

// Subscribe registers an observer invoked with a fresh snapshot after
// every display change. Observers run outside the feed lock and must not
// be nil.
func (f *Feed) Subscribe(fn func(Snapshot)) {
	f.mu.Lock()
	f.subs = append(f.subs, fn)
	f.mu.Unlock()
}

// StartLive begins periodic head refreshes. A refresh that would overlap
// an in-flight fetch is skipped by the usual guard. Starting an already
// live feed is a no-op.
func (f *Feed) StartLive(interval time.Duration) {
	if interval <= 0 {
		interval = time.Minute
	}
	f.mu.Lock()
	if f.liveCancel != nil {
		f.mu.Unlock()
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	f.liveCancel = cancel
	f.mu.Unlock()

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := f.FetchInitial(ctx); err != nil {
					f.logger.Warn("live refresh failed",
						slog.String("platform", f.Platform()), slog.Any("error", err))
				}
			}
		}
	}()
}

// StopLive cancels the polling timer. Safe to call when not live.
func (f *Feed) StopLive() {
	f.mu.Lock()
	cancel := f.liveCancel
	f.liveCancel = nil
	f.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

// Live reports whether periodic refresh is running.
func (f *Feed) Live() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.liveCancel != nil
}

// Reset clears cache, overlay, pagination, and display state, and stops
// live mode. Called by the session on logout.
func (f *Feed) Reset() {
	f.mu.Lock()
	f.cache.Reset()
	f.deltas.reset()
	f.cursor = ""
	f.hasMore = false
	f.display = nil
	cancel := f.liveCancel
	f.liveCancel = nil
	snap := f.snapshotLocked()
	subs := slices.Clone(f.subs)
	f.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	f.publish(snap, subs)
}

// recomputeLocked re-ranks the cache into the display slice. Caller holds mu.
func (f *Feed) recomputeLocked() Snapshot {
	posts := f.deltas.apply(f.cache.Posts())
	f.display = Rank(posts, f.algorithm, f.limit, f.now())
	return f.snapshotLocked()
}

func (f *Feed) snapshotLocked() Snapshot {
	posts := make([]*Post, len(f.display))
	copy(posts, f.display)
	return Snapshot{
		Platform:  f.Platform(),
		Posts:     posts,
		Algorithm: f.algorithm,
		Limit:     f.limit,
		HasMore:   f.hasMore,
		CacheSize: f.cache.Len(),
	}
}

func (f *Feed) publish(snap Snapshot, subs []func(Snapshot)) {
	for _, fn := range subs {
		fn(snap)
	}
}
