// Package schema defines the e-commerce fixture tables: their names, the CSV
// files that feed them, the column order shared by files and tables, and the
// PostgreSQL DDL that declares keys and foreign keys.
package schema

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

// Table names.
const (
	Customers   = "customers"
	Products    = "products"
	Orders      = "orders"
	OrderItems  = "order_items"
	Payments    = "payments"
	FixtureLoad = "fixture_loads"
)

// Column order for each table. The CSV header row uses the same names.
var (
	CustomerColumns  = []string{"customer_id", "full_name", "email", "city", "created_at"}
	ProductColumns   = []string{"product_id", "product_name", "category", "price"}
	OrderColumns     = []string{"order_id", "customer_id", "order_date", "order_status"}
	OrderItemColumns = []string{"item_id", "order_id", "product_id", "quantity"}
	PaymentColumns   = []string{"payment_id", "order_id", "payment_amount", "payment_mode", "payment_date"}
)

// TimestampLayout is how every timestamp is written to CSV and stored.
const TimestampLayout = "2006-01-02 15:04:05"

// FileName returns the CSV file name for a table.
func FileName(table string) string {
	return table + ".csv"
}

// Statements creates the fixture tables in dependency order.
// Every statement is idempotent.
var Statements = []string{
	`CREATE TABLE IF NOT EXISTS customers (
		customer_id TEXT PRIMARY KEY,
		full_name   TEXT NOT NULL,
		email       TEXT NOT NULL,
		city        TEXT,
		created_at  TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS products (
		product_id   TEXT PRIMARY KEY,
		product_name TEXT NOT NULL,
		category     TEXT,
		price        NUMERIC(10,2) NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS orders (
		order_id     TEXT PRIMARY KEY,
		customer_id  TEXT NOT NULL REFERENCES customers (customer_id),
		order_date   TIMESTAMP NOT NULL,
		order_status TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS order_items (
		item_id    TEXT PRIMARY KEY,
		order_id   TEXT NOT NULL REFERENCES orders (order_id),
		product_id TEXT NOT NULL REFERENCES products (product_id),
		quantity   INTEGER NOT NULL CHECK (quantity > 0)
	)`,
	`CREATE TABLE IF NOT EXISTS payments (
		payment_id     TEXT PRIMARY KEY,
		order_id       TEXT NOT NULL REFERENCES orders (order_id),
		payment_amount NUMERIC(12,2) NOT NULL,
		payment_mode   TEXT,
		payment_date   TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS fixture_loads (
		load_id     UUID PRIMARY KEY,
		source_dir  TEXT NOT NULL,
		row_count   INTEGER NOT NULL,
		loaded_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
}

// Execer is the subset of pgx used to apply DDL.
// Satisfied by *pgxpool.Pool, pgx.Tx and pgxmock.
type Execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// Apply runs every statement in order.
func Apply(ctx context.Context, db Execer) error {
	for i, stmt := range Statements {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema statement %d: %w", i+1, err)
		}
	}
	return nil
}
