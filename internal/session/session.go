// Package session stores issued dashboard sessions and the remembered
// credentials behind the "continuar conectado" checkbox.
package session

import (
	"context"
	"errors"
	"time"

	"vendas/internal/core"
)

// ErrNotFound is returned when a session or remembered login has
// expired or never existed.
var ErrNotFound = errors.New("session: not found")

// Session ties an issued bearer token to its user for server-side
// revocation on logout.
type Session struct {
	Token     string    `json:"token"`
	User      core.User `json:"user"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// RememberedLogin keeps the credentials a client asked to persist, keyed
// by a client-chosen identifier. The password is stored as entered so
// the login form can be replayed against the authenticator; the entry
// carries the long remember TTL rather than the session TTL.
type RememberedLogin struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Store is the persistence surface for sessions and remembered logins.
type Store interface {
	SaveSession(ctx context.Context, s Session) error
	FindSession(ctx context.Context, token string) (Session, error)
	DeleteSession(ctx context.Context, token string) error

	SaveRemembered(ctx context.Context, clientID string, login RememberedLogin) error
	FindRemembered(ctx context.Context, clientID string) (RememberedLogin, error)
	DeleteRemembered(ctx context.Context, clientID string) error

	Close() error
}
