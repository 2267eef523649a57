// Package sqlite persists sales and logins in an embedded SQLite
// database, using the pure-Go driver so the binary stays CGO-free.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"vendas/internal/core"
	"vendas/internal/store"

	_ "modernc.org/sqlite"
)

type Store struct {
	db *sql.DB
}

func New(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := runMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *Store) ListSales(ctx context.Context, limit int) ([]core.Sale, error) {
	query := `
		SELECT id, value_cents, sale_date, payment_detail, partner_id, partner_name, item_name, state
		FROM sales
		ORDER BY inserted_at DESC, rowid DESC`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()

	var sales []core.Sale
	for rows.Next() {
		var sale core.Sale
		if err := rows.Scan(
			&sale.ID,
			&sale.ValueCents,
			&sale.SaleDate,
			&sale.PaymentDetail,
			&sale.PartnerID,
			&sale.PartnerName,
			&sale.ItemName,
			&sale.State,
		); err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		sales = append(sales, sale)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sales: %w", err)
	}
	return sales, nil
}

func (s *Store) InsertSale(ctx context.Context, sale core.Sale) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO sales (id, value_cents, sale_date, payment_detail, partner_id, partner_name, item_name, state)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		sale.ID,
		sale.ValueCents,
		sale.SaleDate,
		sale.PaymentDetail,
		sale.PartnerID,
		sale.PartnerName,
		sale.ItemName,
		sale.State,
	)
	if err != nil {
		return fmt.Errorf("insert sale: %w", err)
	}
	return nil
}

func (s *Store) FindUserByEmail(ctx context.Context, email string) (store.UserRecord, error) {
	var u store.UserRecord
	err := s.db.QueryRowContext(ctx, `
		SELECT id, email, password_hash FROM users WHERE email = ?`, email,
	).Scan(&u.ID, &u.Email, &u.PasswordHash)
	if errors.Is(err, sql.ErrNoRows) {
		return store.UserRecord{}, store.ErrNotFound
	}
	if err != nil {
		return store.UserRecord{}, fmt.Errorf("find user: %w", err)
	}
	return u, nil
}

func (s *Store) UpdatePasswordHash(ctx context.Context, userID, hash string) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE users SET password_hash = ? WHERE id = ?`, hash, userID)
	if err != nil {
		return fmt.Errorf("update password hash: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return store.ErrNotFound
	}
	return nil
}
