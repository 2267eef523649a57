package auth

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"vendas/internal/store"
	"vendas/internal/store/memory"
)

const secret = "0123456789abcdef0123456789abcdef"

func newAuth(t *testing.T) (*Authenticator, *memory.Store) {
	t.Helper()
	mem := memory.New()
	return New(mem, secret, time.Hour), mem
}

func TestLoginWithHashedPassword(t *testing.T) {
	a, mem := newAuth(t)
	hash, err := bcrypt.GenerateFromPassword([]byte("segredo1"), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	mem.SeedUser(store.UserRecord{ID: "u1", Email: "ana@example.com", PasswordHash: string(hash)})

	user, token, err := a.Login(context.Background(), "ANA@example.com", "segredo1")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if user.ID != "u1" || token.Value == "" {
		t.Fatalf("got user=%+v token=%+v", user, token)
	}

	parsed, err := a.ParseToken(token.Value)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if parsed.ID != "u1" || parsed.Email != "ana@example.com" {
		t.Fatalf("got %+v", parsed)
	}
}

func TestLoginUpgradesLegacyPlaintext(t *testing.T) {
	a, mem := newAuth(t)
	mem.SeedUser(store.UserRecord{ID: "u1", Email: "ana@example.com", PasswordHash: "segredo1"})

	if _, _, err := a.Login(context.Background(), "ana@example.com", "segredo1"); err != nil {
		t.Fatalf("login: %v", err)
	}

	rec, err := mem.FindUserByEmail(context.Background(), "ana@example.com")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(rec.PasswordHash, "$2") {
		t.Fatalf("password not upgraded to bcrypt: %q", rec.PasswordHash)
	}
	if bcrypt.CompareHashAndPassword([]byte(rec.PasswordHash), []byte("segredo1")) != nil {
		t.Fatal("upgraded hash does not verify")
	}

	// Second login goes through the bcrypt path.
	if _, _, err := a.Login(context.Background(), "ana@example.com", "segredo1"); err != nil {
		t.Fatalf("second login: %v", err)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	a, mem := newAuth(t)
	mem.SeedUser(store.UserRecord{ID: "u1", Email: "ana@example.com", PasswordHash: "segredo1"})

	cases := []struct {
		email, password string
	}{
		{"ana@example.com", "errada"},
		{"desconhecida@example.com", "segredo1"},
		{"", "segredo1"},
		{"ana@example.com", ""},
	}
	for _, tc := range cases {
		if _, _, err := a.Login(context.Background(), tc.email, tc.password); !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("%s/%s: expected ErrInvalidCredentials, got %v", tc.email, tc.password, err)
		}
	}
}

type failingUsers struct{}

func (failingUsers) FindUserByEmail(ctx context.Context, email string) (store.UserRecord, error) {
	return store.UserRecord{}, errors.New("connection refused")
}

func (failingUsers) UpdatePasswordHash(ctx context.Context, userID, hash string) error {
	return errors.New("connection refused")
}

func TestLoginStoreFailureIsNotInvalidCredentials(t *testing.T) {
	a := New(failingUsers{}, secret, time.Hour)
	_, _, err := a.Login(context.Background(), "ana@example.com", "segredo1")
	if err == nil || errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected transport error, got %v", err)
	}
}

func TestParseTokenRejectsTampering(t *testing.T) {
	a, mem := newAuth(t)
	mem.SeedUser(store.UserRecord{ID: "u1", Email: "ana@example.com", PasswordHash: "segredo1"})
	_, token, err := a.Login(context.Background(), "ana@example.com", "segredo1")
	if err != nil {
		t.Fatal(err)
	}

	other := New(mem, "ffffffffffffffffffffffffffffffff", time.Hour)
	if _, err := other.ParseToken(token.Value); err == nil {
		t.Fatal("expected token signed with another secret to be rejected")
	}
	if _, err := a.ParseToken(token.Value + "x"); err == nil {
		t.Fatal("expected tampered token to be rejected")
	}
	if _, err := a.ParseToken(""); err == nil {
		t.Fatal("expected empty token to be rejected")
	}
}

func TestExpiredToken(t *testing.T) {
	a, mem := newAuth(t)
	a.tokenTTL = -time.Minute
	mem.SeedUser(store.UserRecord{ID: "u1", Email: "ana@example.com", PasswordHash: "segredo1"})

	_, token, err := a.Login(context.Background(), "ana@example.com", "segredo1")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := a.ParseToken(token.Value); err == nil {
		t.Fatal("expected expired token to be rejected")
	}
}
