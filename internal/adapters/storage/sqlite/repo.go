// Package sqlite stores board orders in an in-process SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/evanschultz/orderboard/internal/app"
	"github.com/evanschultz/orderboard/internal/domain"
	_ "modernc.org/sqlite"
)

const driverName = "sqlite"

// Repository implements app.Repository on top of database/sql.
type Repository struct {
	db *sql.DB
}

// OpenInMemory opens a private in-memory database. The board is session-only, so no file DSN is
// offered.
func OpenInMemory() (*Repository, error) {
	db, err := sql.Open(driverName, ":memory:")
	if err != nil {
		return nil, fmt.Errorf("open sqlite memory: %w", err)
	}
	// every pooled connection would get its own empty :memory: database
	db.SetMaxOpenConns(1)
	repo := &Repository{db: db}
	if err := repo.migrate(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return repo, nil
}

// Close closes the requested operation.
func (r *Repository) Close() error {
	return r.db.Close()
}

func (r *Repository) migrate(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS orders (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL DEFAULT '',
			table_label TEXT NOT NULL DEFAULT '',
			column_id TEXT NOT NULL,
			position INTEGER NOT NULL,
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_orders_column_position ON orders(column_id, position);`,
	}
	for _, stmt := range stmts {
		if _, err := r.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate sqlite: %w", err)
		}
	}
	return nil
}

// CreateOrder inserts one order.
func (r *Repository) CreateOrder(ctx context.Context, o domain.Order) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO orders(id, title, table_label, column_id, position, created_at, updated_at)
		VALUES(?, ?, ?, ?, ?, ?, ?)
	`, o.ID, o.Title, o.Table, string(o.Column), o.Position, ts(o.CreatedAt), ts(o.UpdatedAt))
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("create order %q: %w", o.ID, domain.ErrInvalidID)
		}
		return fmt.Errorf("create order: %w", err)
	}
	return nil
}

// UpdateOrders writes every order in one transaction. Any unknown id rolls the whole batch back.
func (r *Repository) UpdateOrders(ctx context.Context, orders ...domain.Order) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	for _, o := range orders {
		var res sql.Result
		res, err = tx.ExecContext(ctx, `
			UPDATE orders
			SET title = ?, table_label = ?, column_id = ?, position = ?, updated_at = ?
			WHERE id = ?
		`, o.Title, o.Table, string(o.Column), o.Position, ts(o.UpdatedAt), o.ID)
		if err != nil {
			return err
		}
		if err = translateNoRows(res); err != nil {
			return err
		}
	}

	err = tx.Commit()
	return err
}

// GetOrder returns one order by id.
func (r *Repository) GetOrder(ctx context.Context, id string) (domain.Order, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, title, table_label, column_id, position, created_at, updated_at
		FROM orders WHERE id = ?
	`, id)
	o, err := scanOrder(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Order{}, app.ErrNotFound
	}
	return o, err
}

// ListOrders returns every stored order.
func (r *Repository) ListOrders(ctx context.Context) ([]domain.Order, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, title, table_label, column_id, position, created_at, updated_at
		FROM orders
		ORDER BY column_id, position, created_at, id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.Order, 0)
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

// DeleteOrder deletes order.
func (r *Repository) DeleteOrder(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM orders WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return translateNoRows(res)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanOrder(s scanner) (domain.Order, error) {
	var (
		o          domain.Order
		columnRaw  string
		createdRaw string
		updatedRaw string
	)
	if err := s.Scan(&o.ID, &o.Title, &o.Table, &columnRaw, &o.Position, &createdRaw, &updatedRaw); err != nil {
		return domain.Order{}, err
	}
	column, err := domain.ParseColumn(columnRaw)
	if err != nil {
		return domain.Order{}, fmt.Errorf("scan order %q: %w", o.ID, err)
	}
	o.Column = column
	o.CreatedAt = parseTS(createdRaw)
	o.UpdatedAt = parseTS(updatedRaw)
	return o, nil
}

func translateNoRows(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return app.ErrNotFound
	}
	return nil
}

func ts(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTS(v string) time.Time {
	ts, err := time.Parse(time.RFC3339Nano, v)
	if err != nil {
		return time.Time{}
	}
	return ts.UTC()
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(strings.ToLower(err.Error()), "unique constraint")
}
