package core

// validation.go checks CSV data before any database work.
//
// Validation happens at two levels:
//  1. Header validation: ensures every expected column is present
//  2. Row validation: checks each cell against its FieldSpec (type, sign)
//
// ValidateRow returns all problems for a row (useful for diagnostics);
// ValidateRowFirst stops at the first one (used while loading).

import (
	"errors"
	"fmt"
	"strings"
)

// ValidationError represents a single validation error for a field.
type ValidationError struct {
	Field   string // Field/column name
	Value   string // The invalid value
	Message string // Human-readable error message
}

func (e ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

// RowValidator validates rows against a table's field specifications.
type RowValidator struct {
	specs     []FieldSpec
	headerIdx HeaderIndex
}

// NewRowValidator creates a validator for the given field specs and header index.
func NewRowValidator(specs []FieldSpec, headerIdx HeaderIndex) *RowValidator {
	return &RowValidator{
		specs:     specs,
		headerIdx: headerIdx,
	}
}

// ValidateRow validates a single CSV row and returns all validation errors.
func (v *RowValidator) ValidateRow(row []string) []ValidationError {
	var errs []ValidationError
	for _, spec := range v.specs {
		if err := v.validateField(row, spec); err != nil {
			errs = append(errs, *err)
		}
	}
	return errs
}

// ValidateRowFirst validates a row and returns the first error only.
func (v *RowValidator) ValidateRowFirst(row []string) error {
	for _, spec := range v.specs {
		if err := v.validateField(row, spec); err != nil {
			return *err
		}
	}
	return nil
}

func (v *RowValidator) validateField(row []string, spec FieldSpec) *ValidationError {
	pos, ok := v.headerIdx[strings.ToLower(spec.Name)]
	if !ok || pos >= len(row) {
		if spec.Required {
			return &ValidationError{Field: spec.Name, Message: "missing required column"}
		}
		return nil
	}

	raw := CleanCell(row[pos])
	if raw == "" {
		if spec.Required {
			return &ValidationError{Field: spec.Name, Message: "required field is empty"}
		}
		return nil
	}

	if err := ValidateCell(raw, spec); err != nil {
		return &ValidationError{Field: spec.Name, Value: raw, Message: err.Error()}
	}
	return nil
}

// ValidateCell validates a single non-empty cell value against a field specification.
// Returns nil if valid, or an error describing the problem.
func ValidateCell(value string, spec FieldSpec) error {
	switch spec.Type {
	case FieldNumeric:
		d, err := ParseDecimal(value)
		if err != nil {
			return err
		}
		if spec.Positive && !d.IsPositive() {
			return errors.New("must be greater than zero")
		}
	case FieldInteger:
		i, err := ParseInt32(value)
		if err != nil {
			return err
		}
		if spec.Positive && i <= 0 {
			return errors.New("must be greater than zero")
		}
	case FieldTimestamp:
		if _, err := ParseTimestamp(value); err != nil {
			return err
		}
	}
	return nil
}

// ValidateHeaders validates that all columns named by specs exist in the CSV headers.
// Returns a mapping from column name to index, or an error listing missing columns.
func ValidateHeaders(headers []string, specs []FieldSpec) (HeaderIndex, error) {
	idx := MakeHeaderIndex(headers)
	var missing []string

	for _, spec := range specs {
		if _, ok := idx[strings.ToLower(spec.Name)]; !ok {
			missing = append(missing, spec.Name)
		}
	}

	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required columns: %s", strings.Join(missing, ", "))
	}

	return idx, nil
}
