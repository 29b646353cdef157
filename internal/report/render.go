package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/JonMunkholm/shopfixtures/internal/core"
	"github.com/JonMunkholm/shopfixtures/internal/schema"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
)

// NoRowsMessage is printed instead of a table for an empty result.
const NoRowsMessage = "Report returned no rows."

const (
	columnSep    = " | "
	separatorSep = "-+-"
)

// Render writes res as an aligned table: a header, a dashed separator and
// one line per row. Every cell is left-justified to its column width.
func Render(w io.Writer, res *Result) error {
	if res == nil || len(res.Rows) == 0 {
		_, err := fmt.Fprintln(w, NoRowsMessage)
		return err
	}

	cells := make([][]string, len(res.Rows))
	for i, row := range res.Rows {
		cells[i] = make([]string, len(res.Columns))
		for j := range res.Columns {
			if j < len(row) {
				cells[i][j] = FormatValue(row[j])
			}
		}
	}

	widths := make([]int, len(res.Columns))
	for j, col := range res.Columns {
		widths[j] = utf8.RuneCountInString(col)
		for _, row := range cells {
			widths[j] = max(widths[j], utf8.RuneCountInString(row[j]))
		}
	}

	dashes := make([]string, len(widths))
	for j, n := range widths {
		dashes[j] = strings.Repeat("-", n)
	}

	lines := make([]string, 0, len(cells)+2)
	lines = append(lines, formatRow(res.Columns, widths), strings.Join(dashes, separatorSep))
	for _, row := range cells {
		lines = append(lines, formatRow(row, widths))
	}

	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func formatRow(values []string, widths []int) string {
	padded := make([]string, len(values))
	for j, v := range values {
		padded[j] = fmt.Sprintf("%-*s", widths[j], v)
	}
	return strings.Join(padded, columnSep)
}

// FormatValue returns the text form of one scanned cell. NULL renders as "".
func FormatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case []byte:
		return string(val)
	case pgtype.Numeric:
		d, ok := core.NumericToDecimal(val)
		if !ok {
			if val.NaN {
				return "NaN"
			}
			return ""
		}
		return formatDecimal(d)
	case decimal.Decimal:
		return formatDecimal(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32)
	case time.Time:
		return val.Format(schema.TimestampLayout)
	case [16]byte:
		return uuid.UUID(val).String()
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprint(val)
	}
}

// formatDecimal keeps the scale the store reports, so NUMERIC(10,2)
// values print with two decimals.
func formatDecimal(d decimal.Decimal) string {
	if exp := d.Exponent(); exp < 0 {
		return d.StringFixed(-exp)
	}
	return d.String()
}
