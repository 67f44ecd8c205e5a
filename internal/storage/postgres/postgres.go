package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/mateusz-zadorozny/woocommerce-order-stats-mpress/internal/types/order"

	_ "github.com/jackc/pgx/v5/stdlib"
)

type PostgresStorage struct {
	db *sql.DB
}

func NewPostgresStorage(dsn string) (*PostgresStorage, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	s := &PostgresStorage{db: db}

	if err := s.db.Ping(); err != nil {
		return nil, fmt.Errorf("ping db: %w", err)
	}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *PostgresStorage) initSchema() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS orders (
            id BIGSERIAL PRIMARY KEY,
            status TEXT NOT NULL,
            total NUMERIC(12,2) NOT NULL DEFAULT 0,
            shipping_total NUMERIC(12,2) NOT NULL DEFAULT 0,
            created_at TIMESTAMPTZ NOT NULL
        )`,
		`CREATE INDEX IF NOT EXISTS idx_orders_created_at ON orders (created_at)`,
		`CREATE TABLE IF NOT EXISTS settings (
            key TEXT PRIMARY KEY,
            value TEXT NOT NULL
        )`,
	}
	for _, q := range stmts {
		if _, err := s.db.Exec(q); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}
	return nil
}

func (s *PostgresStorage) ListOrderIDsCreatedBetween(ctx context.Context, start, end time.Time) ([]int64, error) {
	const q = `
        SELECT id FROM orders
        WHERE created_at BETWEEN $1 AND $2
        ORDER BY id`
	rows, err := s.db.QueryContext(ctx, q, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (s *PostgresStorage) FindOrderByID(ctx context.Context, id int64) (*order.Order, error) {
	const q = `
        SELECT id, status, total, shipping_total, created_at
        FROM orders WHERE id = $1`
	var o order.Order
	err := s.db.QueryRowContext(ctx, q, id).Scan(&o.ID, &o.Status, &o.Total, &o.ShippingTotal, &o.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (s *PostgresStorage) GetSetting(ctx context.Context, key string) (string, error) {
	const q = `SELECT value FROM settings WHERE key = $1`
	var value string
	if err := s.db.QueryRowContext(ctx, q, key).Scan(&value); err != nil {
		return "", err
	}
	return value, nil
}

func (s *PostgresStorage) SetSetting(ctx context.Context, key, value string) error {
	const q = `
        INSERT INTO settings (key, value) VALUES ($1, $2)
        ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value`
	_, err := s.db.ExecContext(ctx, q, key, value)
	return err
}

func (s *PostgresStorage) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *PostgresStorage) Close() error {
	return s.db.Close()
}
