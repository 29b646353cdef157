package core

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/JonMunkholm/shopfixtures/internal/logging"
	"github.com/JonMunkholm/shopfixtures/internal/schema"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// LoadTimeout is the default bound for a full load.
var LoadTimeout = 5 * time.Minute

// Service provides the loader operations over one connection pool.
type Service struct {
	pool Pool
}

// NewService creates a new Service instance.
func NewService(pool Pool) *Service {
	return &Service{pool: pool}
}

// Load replaces the contents of every registered table with the CSV files
// in dir.
//
// All files are parsed before the database is touched. The schema, the
// delete of existing rows (children first) and the inserts (parents first)
// then run in a single transaction, so a failed load leaves the previous
// contents in place. Foreign key violations abort the load.
func (s *Service) Load(ctx context.Context, dir string) (*LoadResult, error) {
	startTime := time.Now()

	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrDataDirNotFound, dir)
	}

	defs := LoadOrder()
	if len(defs) == 0 {
		return nil, errors.New("no tables registered")
	}

	parsed := make([]*ParsedTable, 0, len(defs))
	for _, def := range defs {
		p, err := ReadTableFile(dir, def)
		if err != nil {
			return nil, err
		}
		parsed = append(parsed, p)
	}

	loadID := uuid.New()
	logger := logging.WithFields(ctx, "load_id", loadID.String(), "dir", dir)
	logger.Debug("source files parsed", "tables", len(parsed))

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := schema.Apply(ctx, tx); err != nil {
		return nil, err
	}

	if err := resetTables(ctx, tx, ResetOrder()); err != nil {
		return nil, err
	}

	result := &LoadResult{
		LoadID: loadID.String(),
		Dir:    dir,
	}

	for _, p := range parsed {
		n, err := tx.CopyFrom(ctx, pgx.Identifier{p.Def.Info.Key}, p.Def.CopyColumns, pgx.CopyFromRows(p.CopyRows()))
		if err != nil {
			return nil, &InsertError{Table: p.Def.Info.Key, Err: err}
		}
		if n != int64(len(p.Params)) {
			return nil, &InsertError{
				Table: p.Def.Info.Key,
				Err:   fmt.Errorf("copied %d rows, expected %d", n, len(p.Params)),
			}
		}
		logger.Debug("table loaded", "table", p.Def.Info.Key, "rows", n)
		result.Tables = append(result.Tables, TableLoad{Table: p.Def.Info.Key, Rows: n})
	}

	if err := recordLoad(ctx, tx, loadID, dir, result.TotalRows()); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}

	result.Duration = time.Since(startTime)
	logger.Info("load committed", "rows", result.TotalRows(), "duration", result.Duration)
	return result, nil
}

// Reset deletes every row from the fixture tables, children first, in one
// transaction. The load history is kept.
func (s *Service) Reset(ctx context.Context) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := resetTables(ctx, tx, ResetOrder()); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	logging.FromContext(ctx).Info("fixture tables reset", "tables", RegisteredTables())
	return nil
}

// Counts returns the current row count of every registered table in load order.
func (s *Service) Counts(ctx context.Context) ([]TableCount, error) {
	defs := LoadOrder()
	counts := make([]TableCount, 0, len(defs))
	for _, def := range defs {
		var n int64
		query := "SELECT COUNT(*) FROM " + pgx.Identifier{def.Info.Key}.Sanitize()
		if err := s.pool.QueryRow(ctx, query).Scan(&n); err != nil {
			return nil, fmt.Errorf("count %s: %w", def.Info.Key, err)
		}
		counts = append(counts, TableCount{Table: def.Info.Key, Rows: n})
	}
	return counts, nil
}

func resetTables(ctx context.Context, db DBTX, defs []TableDefinition) error {
	for _, def := range defs {
		if _, err := db.Exec(ctx, "DELETE FROM "+pgx.Identifier{def.Info.Key}.Sanitize()); err != nil {
			return fmt.Errorf("reset %s: %w", def.Info.Key, err)
		}
	}
	return nil
}
