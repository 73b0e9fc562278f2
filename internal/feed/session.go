// ABOUTME: Authenticated session state for one platform account.
// ABOUTME: Owns the credential exclusively; login, logout, and restore mutate it atomically.
package feed

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// SessionRecord is the persisted shape of a session: credential, profile,
// and the time the credential last validated. Bulk post data is never
// persisted alongside it.
type SessionRecord struct {
	Credential Credential `yaml:"credential"`
	User       Profile    `yaml:"user"`
	LastAuth   time.Time  `yaml:"last_auth"`
}

// SessionStore persists session records under a per-platform key.
type SessionStore interface {
	Save(platform string, rec SessionRecord) error
	Load(platform string) (SessionRecord, bool, error)
	Clear(platform string) error
}

// Resetter is anything that must be cleared when the session ends.
// Feeds attach themselves so logout wipes their caches in the same
// observable transition that drops the credential.
type Resetter interface {
	Reset()
}

// Session holds the credential and profile for one platform account.
// The generation counter increments on every login and logout; fetches
// that started under an older generation discard their results.
type Session struct {
	adapter Adapter
	store   SessionStore
	logger  *slog.Logger
	now     func() time.Time

	mu        sync.RWMutex
	cred      Credential
	user      *Profile
	lastAuth  time.Time
	gen       uint64
	resetters []Resetter
}

// NewSession creates an unauthenticated session for the adapter's
// platform. store may be nil for a purely in-memory session.
func NewSession(adapter Adapter, store SessionStore) *Session {
	return &Session{
		adapter: adapter,
		store:   store,
		logger:  slog.Default(),
		now:     time.Now,
	}
}

// Platform returns the platform key this session authenticates against.
func (s *Session) Platform() string { return s.adapter.Platform() }

// Login validates the credential with a profile fetch and, on success,
// stores credential and profile and stamps the auth time. On failure the
// session stays unauthenticated and the adapter's error is returned.
func (s *Session) Login(ctx context.Context, cred Credential) (*Profile, error) {
	if cred == "" {
		return nil, &AuthError{Platform: s.Platform(), Op: "login"}
	}

	profile, err := s.adapter.FetchProfile(ctx, cred)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.cred = cred
	s.user = profile
	s.lastAuth = s.now()
	authedAt := s.lastAuth
	s.gen++
	s.mu.Unlock()

	if s.store != nil {
		rec := SessionRecord{Credential: cred, User: *profile, LastAuth: authedAt}
		if err := s.store.Save(s.Platform(), rec); err != nil {
			s.logger.Warn("session persist failed", slog.String("platform", s.Platform()), slog.Any("error", err))
		}
	}

	s.logger.Info("logged in", slog.String("platform", s.Platform()), slog.String("handle", profile.Handle))
	return profile, nil
}

// Logout discards the credential and profile, bumps the generation so
// in-flight fetches discard their results, and resets every attached
// component. Purely client-side: no revoke call is made.
func (s *Session) Logout() {
	s.mu.Lock()
	s.cred = ""
	s.user = nil
	s.lastAuth = time.Time{}
	s.gen++
	resetters := make([]Resetter, len(s.resetters))
	copy(resetters, s.resetters)
	s.mu.Unlock()

	if s.store != nil {
		if err := s.store.Clear(s.Platform()); err != nil {
			s.logger.Warn("session clear failed", slog.String("platform", s.Platform()), slog.Any("error", err))
		}
	}

	for _, r := range resetters {
		r.Reset()
	}
	s.logger.Info("logged out", slog.String("platform", s.Platform()))
}

// Restore re-validates a previously persisted credential. A missing
// record returns (false, nil). An invalid or expired credential performs
// a full logout and reports no session, the same as never having one.
// A transient network failure leaves the stored record untouched so the
// caller can retry.
func (s *Session) Restore(ctx context.Context) (bool, error) {
	if s.store == nil {
		return false, nil
	}

	rec, ok, err := s.store.Load(s.Platform())
	if err != nil {
		return false, err
	}
	if !ok || rec.Credential == "" {
		return false, nil
	}

	profile, err := s.adapter.FetchProfile(ctx, rec.Credential)
	if err != nil {
		if IsAuthError(err) {
			s.logger.Info("stored credential rejected, logging out", slog.String("platform", s.Platform()))
			s.Logout()
			return false, nil
		}
		return false, err
	}

	s.mu.Lock()
	s.cred = rec.Credential
	s.user = profile
	s.lastAuth = s.now()
	authedAt := s.lastAuth
	s.gen++
	s.mu.Unlock()

	rec.User = *profile
	rec.LastAuth = authedAt
	if err := s.store.Save(s.Platform(), rec); err != nil {
		s.logger.Warn("session persist failed", slog.String("platform", s.Platform()), slog.Any("error", err))
	}

	s.logger.Info("session restored", slog.String("platform", s.Platform()), slog.String("handle", profile.Handle))
	return true, nil
}

// Attach registers a component to reset on logout.
func (s *Session) Attach(r Resetter) {
	s.mu.Lock()
	s.resetters = append(s.resetters, r)
	s.mu.Unlock()
}

// Authenticated reports whether a validated credential is held.
func (s *Session) Authenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cred != ""
}

// User returns the authenticated profile, or nil before login.
func (s *Session) User() *Profile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	cp := *s.user
	return &cp
}

// LastAuth returns when the credential last validated successfully.
func (s *Session) LastAuth() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastAuth
}

// Generation returns the current session generation.
func (s *Session) Generation() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.gen
}

// snapshot hands the credential and generation to a fetch that is about
// to start. ok is false when unauthenticated.
func (s *Session) snapshot() (cred Credential, gen uint64, ok bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cred, s.gen, s.cred != ""
}
