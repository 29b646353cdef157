package core

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX is the interface for database operations.
// Satisfied by *pgxpool.Pool, pgx.Tx and pgxmock.
type DBTX interface {
	Exec(context.Context, string, ...any) (pgconn.CommandTag, error)
	Query(context.Context, string, ...any) (pgx.Rows, error)
	QueryRow(context.Context, string, ...any) pgx.Row
}

// Pool is a DBTX that can open transactions.
// Satisfied by *pgxpool.Pool and pgxmock.PgxPoolIface.
type Pool interface {
	DBTX
	Begin(context.Context) (pgx.Tx, error)
}

// FieldType represents the expected data type for a CSV field.
type FieldType int

const (
	FieldText FieldType = iota
	FieldNumeric
	FieldInteger
	FieldTimestamp
)

// FieldSpec defines validation rules for a single CSV column.
type FieldSpec struct {
	Name     string    // Column header name (must match CSV exactly, case-insensitive)
	Type     FieldType // Expected data type
	Required bool      // Column must exist and the value must be non-empty
	Positive bool      // FieldInteger/FieldNumeric only: value must be > 0
}

// TableInfo contains display information about a table.
type TableInfo struct {
	Key     string   // Table name: "order_items"
	Label   string   // Display name: "Order items"
	File    string   // Source file: "order_items.csv"
	Columns []string // Header column names
	Rank    int      // Dependency order: parents load before children
}

// HeaderIndex maps column names (lowercase) to their position in the CSV row.
type HeaderIndex map[string]int

// BuildParamsFunc builds typed insert parameters from a validated CSV row.
type BuildParamsFunc func(row []string, headerIdx HeaderIndex) (any, error)

// CopyRowFunc converts params to a row of values for the COPY protocol.
// The returned slice must contain values in the same order as CopyColumns.
type CopyRowFunc func(params any) []any

// TableDefinition contains everything needed to load one table.
type TableDefinition struct {
	Info        TableInfo
	FieldSpecs  []FieldSpec
	BuildParams BuildParamsFunc

	// CopyColumns lists database column names in the order CopyRow returns values.
	CopyColumns []string
	CopyRow     CopyRowFunc
}

// ParsedTable is one source file turned into typed parameters.
// Parsing happens before any database work so that malformed input is
// reported separately from insert failures.
type ParsedTable struct {
	Def    TableDefinition
	Path   string
	Params []any
}

// CopyRows renders the parsed parameters for pgx.CopyFromRows.
func (p *ParsedTable) CopyRows() [][]any {
	rows := make([][]any, len(p.Params))
	for i, params := range p.Params {
		rows[i] = p.Def.CopyRow(params)
	}
	return rows
}

// TableLoad is the per-table outcome of a load.
type TableLoad struct {
	Table string
	Rows  int64
}

// LoadResult contains the final result of a load operation.
type LoadResult struct {
	LoadID   string
	Dir      string
	Tables   []TableLoad
	Duration time.Duration
}

// TotalRows returns the number of rows inserted across all tables.
func (r *LoadResult) TotalRows() int64 {
	var total int64
	for _, t := range r.Tables {
		total += t.Rows
	}
	return total
}

// TableCount is the current row count of one table.
type TableCount struct {
	Table string `json:"table"`
	Rows  int64  `json:"rows"`
}
