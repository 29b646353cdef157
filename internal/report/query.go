// Package report runs one read-only SQL query against the fixture store and
// renders the result as an aligned text table.
package report

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

var (
	// ErrQueryNotFound is returned when the query file does not exist.
	ErrQueryNotFound = errors.New("query file not found")
	// ErrQueryEmpty is returned when the query file holds only whitespace.
	ErrQueryEmpty = errors.New("query file is empty")
)

// LoadQuery reads the whole query file and trims surrounding whitespace.
func LoadQuery(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", ErrQueryNotFound, path)
		}
		return "", fmt.Errorf("read query file: %w", err)
	}

	query := strings.TrimSpace(string(data))
	if query == "" {
		return "", fmt.Errorf("%w: %s", ErrQueryEmpty, path)
	}
	return query, nil
}
