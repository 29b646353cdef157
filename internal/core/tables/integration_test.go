package tables_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/JonMunkholm/shopfixtures/internal/core"
	"github.com/JonMunkholm/shopfixtures/internal/schema"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testPool connects to TEST_DATABASE_URL or skips the test.
// The database is wiped of fixture rows by every load.
func testPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, url)
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	require.NoError(t, pool.Ping(ctx))
	return pool
}

func countsByTable(t *testing.T, svc *core.Service) map[string]int64 {
	t.Helper()
	counts, err := svc.Counts(context.Background())
	require.NoError(t, err)
	out := make(map[string]int64, len(counts))
	for _, c := range counts {
		out[c.Table] = c.Rows
	}
	return out
}

func TestIntegration_LoadRoundTrip(t *testing.T) {
	pool := testPool(t)
	svc := core.NewService(pool)
	ctx := context.Background()

	dir, ds := writeDataset(t)

	result, err := svc.Load(ctx, dir)
	require.NoError(t, err)
	assert.Equal(t, int64(len(ds.Customers)+len(ds.Products)+len(ds.Orders)+len(ds.OrderItems)+len(ds.Payments)), result.TotalRows())

	assert.Equal(t, map[string]int64{
		schema.Customers:  int64(len(ds.Customers)),
		schema.Products:   int64(len(ds.Products)),
		schema.Orders:     int64(len(ds.Orders)),
		schema.OrderItems: int64(len(ds.OrderItems)),
		schema.Payments:   int64(len(ds.Payments)),
	}, countsByTable(t, svc))

	want := decimal.Zero
	for _, p := range ds.Payments {
		want = want.Add(p.Amount)
	}
	var total pgtype.Numeric
	require.NoError(t, pool.QueryRow(ctx, "SELECT SUM(payment_amount) FROM payments").Scan(&total))
	got, ok := core.NumericToDecimal(total)
	require.True(t, ok)
	assert.True(t, got.Equal(want), "sum %s != %s", got, want)

	// A second load of the same files replaces rather than appends.
	_, err = svc.Load(ctx, dir)
	require.NoError(t, err)
	assert.Equal(t, int64(len(ds.Orders)), countsByTable(t, svc)[schema.Orders])

	history, err := svc.LoadHistory(ctx, 2)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, dir, history[0].SourceDir)
}

func TestIntegration_ForeignKeyViolationKeepsPreviousContents(t *testing.T) {
	pool := testPool(t)
	svc := core.NewService(pool)
	ctx := context.Background()

	dir, _ := writeDataset(t)
	_, err := svc.Load(ctx, dir)
	require.NoError(t, err)
	before := countsByTable(t, svc)

	bad := "item_id,order_id,product_id,quantity\nITEM0001,ORD0001,PROD9999,1\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "order_items.csv"), []byte(bad), 0o644))

	_, err = svc.Load(ctx, dir)
	require.Error(t, err)
	assert.True(t, core.IsForeignKeyViolation(err))
	assert.Equal(t, "DB003", core.MapError(err).Code)

	assert.Equal(t, before, countsByTable(t, svc))
}

func TestIntegration_Reset(t *testing.T) {
	pool := testPool(t)
	svc := core.NewService(pool)
	ctx := context.Background()

	dir, _ := writeDataset(t)
	_, err := svc.Load(ctx, dir)
	require.NoError(t, err)

	require.NoError(t, svc.Reset(ctx))
	for table, n := range countsByTable(t, svc) {
		assert.Zero(t, n, table)
	}
}
