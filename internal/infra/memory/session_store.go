package memory

import (
	"context"
	"sync"
	"time"

	"wareeth/internal/domain"
)

// SessionStore is the in-memory app.SessionStore: one session per user,
// lazily expired on access when a TTL is set.
type SessionStore struct {
	ttl time.Duration
	now func() time.Time

	mu       sync.Mutex
	sessions map[int64]sessionEntry
}

type sessionEntry struct {
	session   *domain.GameSession
	expiresAt time.Time
}

// NewSessionStore creates a store; ttl <= 0 means sessions never expire.
func NewSessionStore(ttl time.Duration) *SessionStore {
	return &SessionStore{
		ttl:      ttl,
		now:      time.Now,
		sessions: make(map[int64]sessionEntry),
	}
}

// SetClock is test-only for deterministic expiry.
func (s *SessionStore) SetClock(now func() time.Time) {
	s.now = now
}

func (s *SessionStore) Get(_ context.Context, userID int64) (*domain.GameSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.sessions[userID]
	if !ok {
		return nil, nil
	}
	if !entry.expiresAt.IsZero() && !entry.expiresAt.After(s.now()) {
		delete(s.sessions, userID)
		return nil, nil
	}
	return entry.session, nil
}

func (s *SessionStore) Put(_ context.Context, userID int64, session *domain.GameSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry := sessionEntry{session: session}
	if s.ttl > 0 {
		entry.expiresAt = s.now().Add(s.ttl)
	}
	s.sessions[userID] = entry
	return nil
}

func (s *SessionStore) Clear(_ context.Context, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, userID)
	return nil
}
