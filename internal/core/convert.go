package core

// convert.go turns CSV text into the typed values sent to PostgreSQL.
//
// Parse* functions return an error for malformed input; the loader treats
// that as fatal. ToPg* functions wrap already-parsed values in pgtype so the
// COPY protocol encodes them with the right OIDs.

import (
	"errors"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/JonMunkholm/shopfixtures/internal/schema"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
)

// numericRegex validates that a string is a valid numeric format after cleanup.
// Matches integers, decimals, and scientific notation.
var numericRegex = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?$`)

var (
	errInvalidNumber    = errors.New("invalid number format")
	errInvalidInteger   = errors.New("invalid integer format")
	errInvalidTimestamp = errors.New("invalid timestamp format (use YYYY-MM-DD HH:MM:SS)")
)

// ToPgText converts a string to pgtype.Text.
// Returns invalid if the string is empty or only whitespace.
func ToPgText(s string) pgtype.Text {
	s = strings.TrimSpace(s)
	if s == "" {
		return pgtype.Text{Valid: false}
	}
	return pgtype.Text{String: s, Valid: true}
}

// ParseDecimal parses a money or quantity string.
// Tolerates a leading currency symbol and thousands separators.
func ParseDecimal(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, "$", "")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)

	if !numericRegex.MatchString(s) {
		return decimal.Decimal{}, errInvalidNumber
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, errInvalidNumber
	}
	return d, nil
}

// ToPgNumeric converts a decimal to pgtype.Numeric without going through float.
func ToPgNumeric(d decimal.Decimal) pgtype.Numeric {
	return pgtype.Numeric{Int: d.Coefficient(), Exp: d.Exponent(), Valid: true}
}

// NumericToDecimal converts a scanned pgtype.Numeric back to a decimal.
// Returns false for NULL, NaN and infinities.
func NumericToDecimal(n pgtype.Numeric) (decimal.Decimal, bool) {
	if !n.Valid || n.NaN || n.InfinityModifier != pgtype.Finite || n.Int == nil {
		return decimal.Decimal{}, false
	}
	return decimal.NewFromBigInt(n.Int, n.Exp), true
}

// ParseInt32 parses a whole number that must fit an INTEGER column.
func ParseInt32(s string) (int32, error) {
	i, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || i > math.MaxInt32 || i < math.MinInt32 {
		return 0, errInvalidInteger
	}
	return int32(i), nil
}

// ParseTimestamp parses the fixture timestamp layout.
func ParseTimestamp(s string) (time.Time, error) {
	t, err := time.Parse(schema.TimestampLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, errInvalidTimestamp
	}
	return t, nil
}

// ToPgTimestamp converts a time to pgtype.Timestamp.
// Returns invalid for the zero time.
func ToPgTimestamp(t time.Time) pgtype.Timestamp {
	if t.IsZero() {
		return pgtype.Timestamp{Valid: false}
	}
	return pgtype.Timestamp{Time: t, Valid: true}
}

// ToPgUUID converts a uuid to pgtype.UUID.
func ToPgUUID(id uuid.UUID) pgtype.UUID {
	return pgtype.UUID{Bytes: id, Valid: true}
}

// MakeHeaderIndex creates a HeaderIndex from a CSV header row.
// Keys are lowercased for case-insensitive matching.
func MakeHeaderIndex(header []string) HeaderIndex {
	idx := make(HeaderIndex, len(header))
	for i, h := range header {
		key := strings.ToLower(CleanCell(h))
		idx[key] = i
	}
	return idx
}

// Cell returns the cleaned value of a named column, or "" if absent.
func Cell(row []string, idx HeaderIndex, name string) string {
	pos, ok := idx[strings.ToLower(name)]
	if !ok || pos >= len(row) {
		return ""
	}
	return CleanCell(row[pos])
}

// CleanCell removes common CSV artifacts from a cell value:
// - Trims whitespace
// - Removes Excel formula prefix (="...")
// - Removes surrounding quotes
func CleanCell(s string) string {
	s = strings.TrimSpace(s)

	if strings.HasPrefix(s, "=\"") && strings.HasSuffix(s, "\"") {
		s = s[2 : len(s)-1]
	} else if strings.HasPrefix(s, "=") {
		s = s[1:]
	}

	return strings.Trim(s, `"'`)
}
