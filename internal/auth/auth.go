// Package auth verifies logins against the user store and issues the
// bearer tokens the dashboard API requires.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"vendas/internal/core"
	"vendas/internal/store"
)

// ErrInvalidCredentials means the email/password pair did not match a
// stored login. Store failures are returned as distinct wrapped errors
// so callers can tell a bad password from an unreachable backend.
var ErrInvalidCredentials = errors.New("auth: invalid credentials")

type claims struct {
	jwtlib.RegisteredClaims
	UID string `json:"uid"`
}

// Token is an issued credential with its expiry.
type Token struct {
	Value     string
	ExpiresAt time.Time
}

type Authenticator struct {
	users    store.UserSource
	secret   []byte
	tokenTTL time.Duration
}

func New(users store.UserSource, secret string, tokenTTL time.Duration) *Authenticator {
	if tokenTTL <= 0 {
		tokenTTL = 12 * time.Hour
	}
	return &Authenticator{
		users:    users,
		secret:   []byte(secret),
		tokenTTL: tokenTTL,
	}
}

// Login verifies the email/password pair and issues a signed token. Rows
// created before hashing was introduced carry the plain password; a
// successful plaintext match upgrades the row to bcrypt in place.
func (a *Authenticator) Login(ctx context.Context, email, password string) (core.User, Token, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return core.User{}, Token{}, ErrInvalidCredentials
	}

	record, err := a.users.FindUserByEmail(ctx, email)
	if errors.Is(err, store.ErrNotFound) {
		return core.User{}, Token{}, ErrInvalidCredentials
	}
	if err != nil {
		return core.User{}, Token{}, fmt.Errorf("find user: %w", err)
	}

	if isPasswordHash(record.PasswordHash) {
		if bcrypt.CompareHashAndPassword([]byte(record.PasswordHash), []byte(password)) != nil {
			return core.User{}, Token{}, ErrInvalidCredentials
		}
	} else {
		if record.PasswordHash != password {
			return core.User{}, Token{}, ErrInvalidCredentials
		}
		if hashed, err := hashPassword(password); err == nil {
			// Best effort; the login still succeeds if the upgrade fails.
			_ = a.users.UpdatePasswordHash(ctx, record.ID, hashed)
		}
	}

	user := core.User{ID: record.ID, Email: record.Email}
	token, err := a.sign(user)
	if err != nil {
		return core.User{}, Token{}, fmt.Errorf("sign token: %w", err)
	}
	return user, token, nil
}

// ParseToken validates a bearer token and returns the user it names.
func (a *Authenticator) ParseToken(tokenStr string) (core.User, error) {
	c := &claims{}
	token, err := jwtlib.ParseWithClaims(tokenStr, c, func(t *jwtlib.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwtlib.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return a.secret, nil
	}, jwtlib.WithValidMethods([]string{"HS256"}))
	if err != nil || !token.Valid {
		return core.User{}, errors.New("invalid or expired token")
	}
	sub, err := c.GetSubject()
	if err != nil || sub == "" {
		return core.User{}, errors.New("invalid token subject")
	}
	return core.User{ID: c.UID, Email: sub}, nil
}

func (a *Authenticator) sign(user core.User) (Token, error) {
	expiresAt := time.Now().UTC().Add(a.tokenTTL)
	c := claims{
		RegisteredClaims: jwtlib.RegisteredClaims{
			Subject:   user.Email,
			IssuedAt:  jwtlib.NewNumericDate(time.Now().UTC()),
			ExpiresAt: jwtlib.NewNumericDate(expiresAt),
			Issuer:    "vendas",
		},
		UID: user.ID,
	}
	token := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, c)
	signed, err := token.SignedString(a.secret)
	if err != nil {
		return Token{}, err
	}
	return Token{Value: signed, ExpiresAt: expiresAt}, nil
}

func hashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

func isPasswordHash(value string) bool {
	return strings.HasPrefix(value, "$2a$") || strings.HasPrefix(value, "$2b$") || strings.HasPrefix(value, "$2y$")
}
