package core

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

// LoadRecord is one committed load from the fixture_loads table.
type LoadRecord struct {
	LoadID    string    `json:"loadId"`
	SourceDir string    `json:"sourceDir"`
	RowCount  int64     `json:"rowCount"`
	LoadedAt  time.Time `json:"loadedAt"`
}

const insertLoadSQL = `INSERT INTO fixture_loads (load_id, source_dir, row_count) VALUES ($1, $2, $3)`

const listLoadsSQL = `SELECT load_id, source_dir, row_count, loaded_at
FROM fixture_loads
ORDER BY loaded_at DESC
LIMIT $1`

func recordLoad(ctx context.Context, db DBTX, loadID uuid.UUID, dir string, rows int64) error {
	if _, err := db.Exec(ctx, insertLoadSQL, ToPgUUID(loadID), dir, rows); err != nil {
		return fmt.Errorf("record load: %w", err)
	}
	return nil
}

// LoadHistory returns the most recent committed loads, newest first.
func (s *Service) LoadHistory(ctx context.Context, limit int) ([]LoadRecord, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.pool.Query(ctx, listLoadsSQL, limit)
	if err != nil {
		return nil, fmt.Errorf("list loads: %w", err)
	}
	defer rows.Close()

	records := make([]LoadRecord, 0, limit)
	for rows.Next() {
		var (
			id       pgtype.UUID
			rec      LoadRecord
			loadedAt pgtype.Timestamptz
		)
		if err := rows.Scan(&id, &rec.SourceDir, &rec.RowCount, &loadedAt); err != nil {
			return nil, fmt.Errorf("scan load: %w", err)
		}
		if id.Valid {
			rec.LoadID = uuid.UUID(id.Bytes).String()
		}
		rec.LoadedAt = loadedAt.Time
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list loads: %w", err)
	}

	return records, nil
}
