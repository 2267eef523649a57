// Package postgres persists sales and logins in PostgreSQL through the
// pgx driver's database/sql adapter.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"vendas/internal/core"
	"vendas/internal/store"
)

type Store struct {
	db *sql.DB
}

func New(ctx context.Context, databaseURL string) (*Store, error) {
	db, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open postgres database: %w", err)
	}

	db.SetMaxIdleConns(8)
	db.SetMaxOpenConns(30)
	db.SetConnMaxLifetime(30 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 6*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := runMigrations(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ListSales(ctx context.Context, limit int) ([]core.Sale, error) {
	query := `
		SELECT id, value_cents, sale_date, payment_detail, partner_id, partner_name, item_name, state
		FROM sales
		ORDER BY inserted_at DESC`
	args := []any{}
	if limit > 0 {
		query += " LIMIT $1"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()

	sales := make([]core.Sale, 0, 128)
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
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
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
		SELECT id, email, password_hash FROM users WHERE email = $1`, email,
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
		UPDATE users SET password_hash = $1 WHERE id = $2`, hash, userID)
	if err != nil {
		return fmt.Errorf("update password hash: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return store.ErrNotFound
	}
	return nil
}
