package web

import (
	"encoding/json"
	"math/big"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"github.com/JonMunkholm/shopfixtures/internal/config"
	"github.com/JonMunkholm/shopfixtures/internal/core"
	_ "github.com/JonMunkholm/shopfixtures/internal/core/tables"
	"github.com/JonMunkholm/shopfixtures/internal/schema"
	"github.com/jackc/pgx/v5/pgtype"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const reportSQL = "SELECT customer_id, revenue, city FROM summary"

var fixtureTables = []string{
	schema.Customers, schema.Products, schema.Orders, schema.OrderItems, schema.Payments,
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	path := filepath.Join(t.TempDir(), "report.sql")
	require.NoError(t, os.WriteFile(path, []byte(reportSQL+"\n"), 0o644))

	return &config.Config{
		Report: config.ReportConfig{QueryFile: path, Timeout: 5 * time.Second},
		Server: config.ServerConfig{Host: "127.0.0.1", Port: 8080, RateLimit: 100},
	}
}

func newTestServer(t *testing.T, cfg *config.Config) (*Server, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	s := NewServer(core.NewService(mock), mock, cfg)
	t.Cleanup(func() { s.limiter.stop() })
	return s, mock
}

func expectReady(mock pgxmock.PgxPoolIface) {
	for _, table := range fixtureTables {
		mock.ExpectQuery(`SELECT to_regclass\(\$1\) IS NOT NULL`).
			WithArgs(table).
			WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))
	}
}

func expectReport(mock pgxmock.PgxPoolIface) {
	mock.ExpectQuery(regexp.QuoteMeta(reportSQL)).
		WillReturnRows(pgxmock.NewRows([]string{"customer_id", "revenue", "city"}).
			AddRow("CUST0001", pgtype.Numeric{Int: big.NewInt(123450), Exp: -2, Valid: true}, "Pune").
			AddRow("CUST0002", pgtype.Numeric{Int: big.NewInt(0), Exp: -2, Valid: true}, nil))
}

func do(s *Server, method, path string, header map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	s, _ := newTestServer(t, testConfig(t))

	rec := do(s, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
}

func TestReportText(t *testing.T) {
	s, mock := newTestServer(t, testConfig(t))
	expectReady(mock)
	expectReport(mock)

	rec := do(s, http.MethodGet, "/report", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "text/plain; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Equal(t,
		"customer_id | revenue | city\n"+
			"------------+---------+-----\n"+
			"CUST0001    | 1234.50 | Pune\n"+
			"CUST0002    | 0.00    |     \n",
		rec.Body.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReportJSON(t *testing.T) {
	s, mock := newTestServer(t, testConfig(t))
	expectReady(mock)
	expectReport(mock)

	rec := do(s, http.MethodGet, "/api/report", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.JSONEq(t, `{
		"columns": ["customer_id", "revenue", "city"],
		"rows": [["CUST0001", "1234.50", "Pune"], ["CUST0002", "0.00", null]]
	}`, rec.Body.String())
}

func TestReport_StoreNotFound(t *testing.T) {
	s, mock := newTestServer(t, testConfig(t))
	mock.ExpectQuery(`SELECT to_regclass`).
		WithArgs(schema.Customers).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))

	rec := do(s, http.MethodGet, "/report", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "(RPT003)")
}

func TestReport_QueryFileMissing(t *testing.T) {
	cfg := testConfig(t)
	cfg.Report.QueryFile = filepath.Join(t.TempDir(), "missing.sql")
	s, mock := newTestServer(t, cfg)

	rec := do(s, http.MethodGet, "/api/report", nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "RPT001", resp.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListTables(t *testing.T) {
	s, mock := newTestServer(t, testConfig(t))
	expectReady(mock)
	for i, table := range fixtureTables {
		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM "` + table + `"`).
			WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(100 + i)))
	}

	rec := do(s, http.MethodGet, "/api/tables", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var counts []core.TableCount
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &counts))
	require.Len(t, counts, 5)
	assert.Equal(t, core.TableCount{Table: schema.Customers, Rows: 100}, counts[0])
	assert.Equal(t, core.TableCount{Table: schema.Payments, Rows: 104}, counts[4])
}

func TestListLoads(t *testing.T) {
	s, mock := newTestServer(t, testConfig(t))
	mock.ExpectQuery(`SELECT load_id, source_dir, row_count, loaded_at`).
		WithArgs(5).
		WillReturnRows(pgxmock.NewRows([]string{"load_id", "source_dir", "row_count", "loaded_at"}))

	rec := do(s, http.MethodGet, "/api/loads?limit=5", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]\n", rec.Body.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAPIKeyRequired(t *testing.T) {
	cfg := testConfig(t)
	cfg.Server.APIKeys = "secret"
	s, _ := newTestServer(t, cfg)

	assert.Equal(t, http.StatusUnauthorized, do(s, http.MethodGet, "/api/loads", nil).Code)
	assert.Equal(t, http.StatusForbidden, do(s, http.MethodGet, "/report", map[string]string{"X-API-Key": "wrong"}).Code)
	assert.Equal(t, http.StatusOK, do(s, http.MethodGet, "/healthz", nil).Code)
}

func TestRateLimit(t *testing.T) {
	cfg := testConfig(t)
	cfg.Server.RateLimit = 2
	s, _ := newTestServer(t, cfg)

	assert.Equal(t, http.StatusOK, do(s, http.MethodGet, "/healthz", nil).Code)
	assert.Equal(t, http.StatusOK, do(s, http.MethodGet, "/healthz", nil).Code)

	rec := do(s, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "60", rec.Header().Get("Retry-After"))
}

func TestRateLimit_KeyedByHost(t *testing.T) {
	rl := newRateLimiter(1, time.Minute)
	defer rl.stop()
	h := rl.middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	codes := func(addrs ...string) []int {
		var out []int
		for _, addr := range addrs {
			req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
			req.RemoteAddr = addr
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			out = append(out, rec.Code)
		}
		return out
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusTooManyRequests, http.StatusTooManyRequests},
		codes("203.0.113.7:50001", "203.0.113.7:50002", "203.0.113.7:50003"))
	assert.Equal(t, []int{http.StatusOK}, codes("198.51.100.4:50001"))
}

func TestParseIntParam(t *testing.T) {
	tests := []struct {
		query string
		want  int
	}{
		{"", 10},
		{"limit=3", 3},
		{"limit=0", 10},
		{"limit=abc", 10},
		{"limit=5000", 100},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, "/api/loads?"+tt.query, nil)
		assert.Equal(t, tt.want, parseIntParam(req, "limit", 10), tt.query)
	}
}
