package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"vendas/internal/core"
)

func TestSessionLifecycle(t *testing.T) {
	s := NewMemoryStore(time.Hour, 24*time.Hour)
	ctx := context.Background()

	sess := Session{
		Token:     "tok-1",
		User:      core.User{ID: "u1", Email: "ana@example.com"},
		ExpiresAt: time.Now().Add(time.Hour),
	}
	if err := s.SaveSession(ctx, sess); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := s.FindSession(ctx, "tok-1")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if got.User.ID != "u1" {
		t.Fatalf("got %+v", got)
	}

	if err := s.DeleteSession(ctx, "tok-1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := s.FindSession(ctx, "tok-1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSessionExpiry(t *testing.T) {
	s := NewMemoryStore(time.Hour, 24*time.Hour)
	ctx := context.Background()

	current := time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return current }

	if err := s.SaveSession(ctx, Session{Token: "tok-1"}); err != nil {
		t.Fatal(err)
	}
	if _, err := s.FindSession(ctx, "tok-1"); err != nil {
		t.Fatalf("find before expiry: %v", err)
	}

	current = current.Add(2 * time.Hour)
	if _, err := s.FindSession(ctx, "tok-1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected expired session, got %v", err)
	}
}

func TestRememberedLogin(t *testing.T) {
	s := NewMemoryStore(time.Hour, 24*time.Hour)
	ctx := context.Background()

	current := time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return current }

	login := RememberedLogin{Email: "ana@example.com", Password: "segredo1"}
	if err := s.SaveRemembered(ctx, "client-1", login); err != nil {
		t.Fatal(err)
	}

	// Outlives the session TTL.
	current = current.Add(12 * time.Hour)
	got, err := s.FindRemembered(ctx, "client-1")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if got != login {
		t.Fatalf("got %+v", got)
	}

	if err := s.DeleteRemembered(ctx, "client-1"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.FindRemembered(ctx, "client-1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	// Expiry applies past the remember TTL.
	if err := s.SaveRemembered(ctx, "client-2", login); err != nil {
		t.Fatal(err)
	}
	current = current.Add(25 * time.Hour)
	if _, err := s.FindRemembered(ctx, "client-2"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected expired remembered login, got %v", err)
	}
}
