// ABOUTME: In-memory fakes shared by feed pipeline tests.
// ABOUTME: Scriptable adapter, reacting adapter, and session store.
package feed

import (
	"context"
	"sync"
	"time"
)

// fakeAdapter serves scripted pages keyed by cursor. If block is set,
// FetchPage signals started and waits for the channel to close, letting
// tests hold a fetch in flight.
type fakeAdapter struct {
	mu         sync.Mutex
	pages      map[string]*Page
	profile    *Profile
	profileErr error
	pageErr    error
	pageCalls  int

	block   chan struct{}
	started chan struct{}
}

func newFakeAdapter() *fakeAdapter {
	return &fakeAdapter{
		pages:   map[string]*Page{},
		profile: &Profile{ID: "u1", Handle: "tester", DisplayName: "Tester"},
	}
}

func (a *fakeAdapter) Platform() string { return "fake" }

func (a *fakeAdapter) FetchProfile(ctx context.Context, cred Credential) (*Profile, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.profileErr != nil {
		return nil, a.profileErr
	}
	cp := *a.profile
	return &cp, nil
}

func (a *fakeAdapter) FetchPage(ctx context.Context, cred Credential, cursor string, limit int) (*Page, error) {
	a.mu.Lock()
	a.pageCalls++
	block := a.block
	started := a.started
	err := a.pageErr
	page := a.pages[cursor]
	a.mu.Unlock()

	if started != nil {
		started <- struct{}{}
	}
	if block != nil {
		<-block
	}
	if err != nil {
		return nil, err
	}
	if page == nil {
		return &Page{}, nil
	}
	return page, nil
}

func (a *fakeAdapter) calls() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.pageCalls
}

// reactingAdapter adds the Reactor capability to fakeAdapter.
type reactingAdapter struct {
	*fakeAdapter
	reactErr error
	reacted  []string
}

func (a *reactingAdapter) React(ctx context.Context, cred Credential, postID string, kind ReactionKind) error {
	if a.reactErr != nil {
		return a.reactErr
	}
	a.reacted = append(a.reacted, postID+":"+string(kind))
	return nil
}

// memSessionStore is an in-memory SessionStore.
type memSessionStore struct {
	mu      sync.Mutex
	records map[string]SessionRecord
	saveErr error
}

func newMemSessionStore() *memSessionStore {
	return &memSessionStore{records: map[string]SessionRecord{}}
}

func (s *memSessionStore) Save(platform string, rec SessionRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saveErr != nil {
		return s.saveErr
	}
	s.records[platform] = rec
	return nil
}

func (s *memSessionStore) Load(platform string) (SessionRecord, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[platform]
	return rec, ok, nil
}

func (s *memSessionStore) Clear(platform string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, platform)
	return nil
}

func pageOf(cursor string, posts ...*Post) *Page {
	return &Page{Posts: posts, NextCursor: cursor}
}

func timelinePost(id string, age time.Duration) *Post {
	return &Post{
		ID:        id,
		AuthorID:  "author",
		CreatedAt: time.Now().Add(-age),
		Content:   "post " + id,
	}
}
