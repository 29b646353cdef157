package core

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

// ErrDataDirNotFound is returned when the loader's source directory is absent.
var ErrDataDirNotFound = errors.New("data directory not found")

// PostgreSQL SQLSTATE codes the loader distinguishes.
const (
	sqlStateForeignKeyViolation = "23503"
	sqlStateUniqueViolation     = "23505"
)

// RowError locates a parse or validation failure in a source file.
type RowError struct {
	File   string
	Line   int // 1-based line in the file, header is line 1
	Column string
	Err    error
}

func (e *RowError) Error() string {
	if e.Column != "" {
		return fmt.Sprintf("%s line %d: %s: %v", e.File, e.Line, e.Column, e.Err)
	}
	return fmt.Sprintf("%s line %d: %v", e.File, e.Line, e.Err)
}

func (e *RowError) Unwrap() error { return e.Err }

// InsertError wraps a database failure while loading one table.
type InsertError struct {
	Table string
	Err   error
}

func (e *InsertError) Error() string {
	return fmt.Sprintf("insert %s: %v", e.Table, e.Err)
}

func (e *InsertError) Unwrap() error { return e.Err }

// IsForeignKeyViolation reports whether err is a PostgreSQL foreign key violation.
func IsForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == sqlStateForeignKeyViolation
}

// IsUniqueViolation reports whether err is a PostgreSQL unique violation.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == sqlStateUniqueViolation
}
