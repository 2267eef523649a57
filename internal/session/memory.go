package session

import (
	"context"
	"sync"
	"time"
)

type memoryEntry[T any] struct {
	value     T
	expiresAt time.Time
}

// MemoryStore is the in-process session backend used by development
// setups and tests. Expired entries are dropped lazily on lookup.
type MemoryStore struct {
	mu          sync.RWMutex
	sessions    map[string]memoryEntry[Session]
	remembered  map[string]memoryEntry[RememberedLogin]
	sessionTTL  time.Duration
	rememberTTL time.Duration
	now         func() time.Time
}

func NewMemoryStore(sessionTTL, rememberTTL time.Duration) *MemoryStore {
	return &MemoryStore{
		sessions:    make(map[string]memoryEntry[Session]),
		remembered:  make(map[string]memoryEntry[RememberedLogin]),
		sessionTTL:  sessionTTL,
		rememberTTL: rememberTTL,
		now:         time.Now,
	}
}

func (s *MemoryStore) Close() error { return nil }

func (s *MemoryStore) SaveSession(ctx context.Context, sess Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	expiresAt := s.now().Add(s.sessionTTL)
	if !sess.ExpiresAt.IsZero() && sess.ExpiresAt.Before(expiresAt) {
		expiresAt = sess.ExpiresAt
	}
	s.sessions[sess.Token] = memoryEntry[Session]{value: sess, expiresAt: expiresAt}
	return nil
}

func (s *MemoryStore) FindSession(ctx context.Context, token string) (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.sessions[token]
	if !ok {
		return Session{}, ErrNotFound
	}
	if s.now().After(entry.expiresAt) {
		delete(s.sessions, token)
		return Session{}, ErrNotFound
	}
	return entry.value, nil
}

func (s *MemoryStore) DeleteSession(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, token)
	return nil
}

func (s *MemoryStore) SaveRemembered(ctx context.Context, clientID string, login RememberedLogin) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.remembered[clientID] = memoryEntry[RememberedLogin]{
		value:     login,
		expiresAt: s.now().Add(s.rememberTTL),
	}
	return nil
}

func (s *MemoryStore) FindRemembered(ctx context.Context, clientID string) (RememberedLogin, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.remembered[clientID]
	if !ok {
		return RememberedLogin{}, ErrNotFound
	}
	if s.now().After(entry.expiresAt) {
		delete(s.remembered, clientID)
		return RememberedLogin{}, ErrNotFound
	}
	return entry.value, nil
}

func (s *MemoryStore) DeleteRemembered(ctx context.Context, clientID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.remembered, clientID)
	return nil
}
