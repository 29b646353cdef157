package core

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// MaxFileSize is the maximum accepted source file size (100MB).
var MaxFileSize int64 = 100 * 1024 * 1024

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ReadTableFile reads def's CSV from dir and parses every row into typed
// parameters. The first row must be the header. Empty rows are skipped.
// The first malformed row aborts the read with a *RowError.
func ReadTableFile(dir string, def TableDefinition) (*ParsedTable, error) {
	path := filepath.Join(dir, def.Info.File)

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", def.Info.File, err)
	}
	if info.Size() > MaxFileSize {
		return nil, fmt.Errorf("read %s: file too large (%d bytes exceeds %dMB limit)",
			def.Info.File, info.Size(), MaxFileSize/(1024*1024))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", def.Info.File, err)
	}

	records, err := parseCSV(prepareCSV(data))
	if err != nil {
		return nil, fmt.Errorf("read %s: invalid csv: %w", def.Info.File, err)
	}

	parsed, err := parseRecords(def, records)
	if err != nil {
		return nil, err
	}
	parsed.Path = path
	return parsed, nil
}

// parseRecords validates the header and builds params for each data row.
func parseRecords(def TableDefinition, records [][]string) (*ParsedTable, error) {
	if len(records) == 0 {
		return nil, &RowError{File: def.Info.File, Line: 1, Err: errors.New("empty file")}
	}

	headerIdx, err := ValidateHeaders(records[0], def.FieldSpecs)
	if err != nil {
		return nil, &RowError{File: def.Info.File, Line: 1, Err: err}
	}

	validator := NewRowValidator(def.FieldSpecs, headerIdx)
	parsed := &ParsedTable{
		Def:    def,
		Params: make([]any, 0, len(records)-1),
	}

	for i, row := range records[1:] {
		lineNum := i + 2 // 1-indexed, after header

		if isEmptyRow(row) {
			continue
		}

		if err := validator.ValidateRowFirst(row); err != nil {
			rowErr := &RowError{File: def.Info.File, Line: lineNum, Err: err}
			var verr ValidationError
			if errors.As(err, &verr) {
				rowErr.Column = verr.Field
				rowErr.Err = fmt.Errorf("%s (value %q)", verr.Message, verr.Value)
			}
			return nil, rowErr
		}

		params, err := def.BuildParams(row, headerIdx)
		if err != nil {
			return nil, &RowError{File: def.Info.File, Line: lineNum, Err: err}
		}
		parsed.Params = append(parsed.Params, params)
	}

	return parsed, nil
}

// prepareCSV strips a UTF-8 BOM and replaces invalid UTF-8 sequences.
func prepareCSV(data []byte) []byte {
	return sanitizeUTF8(bytes.TrimPrefix(data, utf8BOM))
}

func sanitizeUTF8(data []byte) []byte {
	if utf8.Valid(data) {
		return data
	}

	var buf bytes.Buffer
	buf.Grow(len(data))

	for len(data) > 0 {
		r, size := utf8.DecodeRune(data)
		if r == utf8.RuneError && size == 1 {
			buf.WriteRune('\uFFFD')
			data = data[1:]
		} else {
			buf.WriteRune(r)
			data = data[size:]
		}
	}

	return buf.Bytes()
}

func parseCSV(data []byte) ([][]string, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	return r.ReadAll()
}

func isEmptyRow(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
