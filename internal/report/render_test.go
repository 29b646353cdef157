package report

import (
	"bytes"
	"errors"
	"math/big"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func renderLines(t *testing.T, res *Result) []string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, res))
	return strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
}

func TestRender_AlignsColumns(t *testing.T) {
	res := &Result{
		Columns: []string{"a", "b"},
		Rows: [][]any{
			{int64(1), nil},
			{int64(22), "x"},
		},
	}

	assert.Equal(t, []string{
		"a  | b",
		"---+--",
		"1  |  ",
		"22 | x",
	}, renderLines(t, res))
}

func TestRender_WidthFromWidestCell(t *testing.T) {
	res := &Result{
		Columns: []string{"customer_id", "city"},
		Rows: [][]any{
			{"CUST0001", "Thiruvananthapuram"},
			{"CUST0002", "Pune"},
		},
	}

	lines := renderLines(t, res)
	require.Len(t, lines, 4)
	assert.Equal(t, "customer_id | city              ", lines[0])
	assert.Equal(t, "------------+-------------------", lines[1])
	assert.Equal(t, "CUST0001    | Thiruvananthapuram", lines[2])
	assert.Equal(t, "CUST0002    | Pune              ", lines[3])
}

func TestRender_MultibyteWidth(t *testing.T) {
	res := &Result{Columns: []string{"name"}, Rows: [][]any{{"café"}, {"ab"}}}

	assert.Equal(t, []string{"name", "----", "café", "ab  "}, renderLines(t, res))
}

func TestRender_NoRows(t *testing.T) {
	for _, res := range []*Result{nil, {Columns: []string{"a"}}} {
		var buf bytes.Buffer
		require.NoError(t, Render(&buf, res))
		assert.Equal(t, NoRowsMessage+"\n", buf.String())
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("closed pipe") }

func TestRender_WriteError(t *testing.T) {
	err := Render(failingWriter{}, &Result{Columns: []string{"a"}, Rows: [][]any{{"x"}}})
	assert.EqualError(t, err, "closed pipe")
}

func TestFormatValue(t *testing.T) {
	id := uuid.MustParse("5f0c6a2e-8d1b-4c4e-9a51-3b2f7d9e0a11")

	tests := []struct {
		name string
		in   any
		want string
	}{
		{"nil", nil, ""},
		{"string", "Delivered", "Delivered"},
		{"bytes", []byte("raw"), "raw"},
		{"int64", int64(42), "42"},
		{"int32", int32(3), "3"},
		{"bool", true, "true"},
		{"float", 12.5, "12.5"},
		{"numeric keeps scale", pgtype.Numeric{Int: big.NewInt(10500), Exp: -2, Valid: true}, "105.00"},
		{"numeric integer", pgtype.Numeric{Int: big.NewInt(7), Exp: 0, Valid: true}, "7"},
		{"numeric null", pgtype.Numeric{}, ""},
		{"decimal", decimal.RequireFromString("19.90"), "19.90"},
		{"time", time.Date(2025, 5, 24, 9, 5, 3, 0, time.UTC), "2025-05-24 09:05:03"},
		{"uuid bytes", [16]byte(id), id.String()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatValue(tt.in))
		})
	}
}
