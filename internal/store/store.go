// Package store defines the persistence ports for the sales service and
// hosts the sqlite, postgres and memory backends that implement them.
package store

import (
	"context"
	"errors"

	"vendas/internal/core"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("store: not found")

// UserRecord is a stored login. PasswordHash holds a bcrypt hash; rows
// created before hashing was introduced still carry the plain password
// and are upgraded on first successful login.
type UserRecord struct {
	ID           string
	Email        string
	PasswordHash string
}

// SaleSource loads and appends sale records.
type SaleSource interface {
	// ListSales returns up to limit records, newest insert first.
	// limit <= 0 means no limit.
	ListSales(ctx context.Context, limit int) ([]core.Sale, error)
	InsertSale(ctx context.Context, sale core.Sale) error
}

// UserSource resolves and maintains login records.
type UserSource interface {
	FindUserByEmail(ctx context.Context, email string) (UserRecord, error)
	// UpdatePasswordHash replaces the stored credential, used to upgrade
	// legacy plaintext rows to bcrypt after a successful login.
	UpdatePasswordHash(ctx context.Context, userID, hash string) error
}

// Store is the full persistence surface a backend provides.
type Store interface {
	SaleSource
	UserSource
	Close() error
}
