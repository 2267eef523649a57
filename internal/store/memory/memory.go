// Package memory keeps sales and logins in process memory. It backs the
// default development configuration and the test suites.
package memory

import (
	"context"
	"strings"
	"sync"

	"vendas/internal/core"
	"vendas/internal/store"
)

type Store struct {
	mu    sync.RWMutex
	sales []core.Sale // newest insert first
	users map[string]store.UserRecord
}

func New() *Store {
	return &Store{
		users: make(map[string]store.UserRecord),
	}
}

func (s *Store) Close() error { return nil }

func (s *Store) ListSales(ctx context.Context, limit int) ([]core.Sale, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := len(s.sales)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]core.Sale, n)
	copy(out, s.sales[:n])
	return out, nil
}

func (s *Store) InsertSale(ctx context.Context, sale core.Sale) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sales = append([]core.Sale{sale}, s.sales...)
	return nil
}

func (s *Store) FindUserByEmail(ctx context.Context, email string) (store.UserRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[strings.ToLower(email)]
	if !ok {
		return store.UserRecord{}, store.ErrNotFound
	}
	return u, nil
}

func (s *Store) UpdatePasswordHash(ctx context.Context, userID, hash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for key, u := range s.users {
		if u.ID == userID {
			u.PasswordHash = hash
			s.users[key] = u
			return nil
		}
	}
	return store.ErrNotFound
}

// SeedUser registers a login, used at startup for the development
// backend and by tests.
func (s *Store) SeedUser(u store.UserRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.users[strings.ToLower(u.Email)] = u
}
