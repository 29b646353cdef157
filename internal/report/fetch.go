package report

import (
	"context"
	"errors"
	"fmt"

	"github.com/JonMunkholm/shopfixtures/internal/schema"
	"github.com/jackc/pgx/v5"
)

// ErrStoreNotFound is returned when the fixture tables have not been created.
var ErrStoreNotFound = errors.New("store not found")

// Querier is the read side of pgx.
// Satisfied by *pgxpool.Pool, pgx.Tx and pgxmock.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Result is a fully materialized query result.
type Result struct {
	Columns []string `json:"columns"`
	Rows    [][]any  `json:"rows"`
}

// storeTables must all exist before a report can run.
var storeTables = []string{
	schema.Customers,
	schema.Products,
	schema.Orders,
	schema.OrderItems,
	schema.Payments,
}

const tableExistsSQL = `SELECT to_regclass($1) IS NOT NULL`

// Ready fails with ErrStoreNotFound unless every fixture table exists.
func Ready(ctx context.Context, db Querier) error {
	for _, table := range storeTables {
		var exists bool
		if err := db.QueryRow(ctx, tableExistsSQL, table).Scan(&exists); err != nil {
			return fmt.Errorf("check table %s: %w", table, err)
		}
		if !exists {
			return fmt.Errorf("%w: table %s does not exist, run the loader first", ErrStoreNotFound, table)
		}
	}
	return nil
}

// Fetch runs query and collects every row. Columns keep the order the
// query declares them in.
func Fetch(ctx context.Context, db Querier, query string) (*Result, error) {
	rows, err := db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("run report query: %w", err)
	}
	defer rows.Close()

	fields := rows.FieldDescriptions()
	res := &Result{Columns: make([]string, len(fields))}
	for i, fd := range fields {
		res.Columns[i] = fd.Name
	}

	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, fmt.Errorf("read report row: %w", err)
		}
		res.Rows = append(res.Rows, values)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("run report query: %w", err)
	}

	return res, nil
}
