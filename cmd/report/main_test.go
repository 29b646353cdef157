package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/JonMunkholm/shopfixtures/internal/config"
	"github.com/JonMunkholm/shopfixtures/internal/core"
	"github.com/JonMunkholm/shopfixtures/internal/report"
	"github.com/stretchr/testify/assert"
)

func TestRun_QueryFileMissing(t *testing.T) {
	cfg := &config.Config{Report: config.ReportConfig{QueryFile: filepath.Join(t.TempDir(), "none.sql")}}

	err := run(context.Background(), cfg, &bytes.Buffer{})
	assert.ErrorIs(t, err, report.ErrQueryNotFound)
	assert.Equal(t, "RPT001", core.MapError(err).Code)
}

func TestRun_QueryFileEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.sql")
	assert.NoError(t, os.WriteFile(path, []byte("\n\n"), 0o644))
	cfg := &config.Config{Report: config.ReportConfig{QueryFile: path}}

	err := run(context.Background(), cfg, &bytes.Buffer{})
	assert.ErrorIs(t, err, report.ErrQueryEmpty)
	assert.Equal(t, "RPT002", core.MapError(err).Code)
}

func TestRun_RequiresDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ok.sql")
	assert.NoError(t, os.WriteFile(path, []byte("SELECT 1"), 0o644))
	cfg := &config.Config{Report: config.ReportConfig{QueryFile: path}}

	err := run(context.Background(), cfg, &bytes.Buffer{})
	assert.ErrorIs(t, err, config.ErrDatabaseURLMissing)
}

func TestPrintFailure(t *testing.T) {
	var out bytes.Buffer
	printFailure(&out, report.ErrQueryNotFound)

	assert.Equal(t, "report failed: query file not found\n"+
		"Query file not found (Code: RPT001). Set REPORT_QUERY_FILE to an existing .sql file\n", out.String())
}
