// Package core provides the loader for the fixture tables.
//
// # Error Codes Reference
//
// This file maps technical errors to short messages with codes so that every
// job prints the same diagnostic for the same failure.
//
// # Source Errors (SRC001-SRC099)
//
//	SRC001 - Data directory not found
//	         Action: Run the generator first or set DATA_DIR
//	         Patterns: "data directory not found"
//
//	SRC002 - Source file missing
//	         Action: Regenerate the dataset
//	         Patterns: "no such file or directory"
//
//	SRC003 - Invalid CSV
//	         Action: Regenerate the dataset
//	         Patterns: "invalid csv", "empty file", "missing required columns"
//
// # Validation Errors (VAL001-VAL099)
//
//	VAL001 - Invalid timestamp
//	VAL002 - Invalid number
//	VAL003 - Required field empty
//
// # Database Errors (DB001-DB099)
//
//	DB001 - Duplicate key
//	DB003 - Foreign key violation: a row references a parent that does not exist
//	DB004 - Connection refused
//	DB005 - Database not configured (DATABASE_URL unset)
//	DB006 - Timeout
//
// # Report Errors (RPT001-RPT099)
//
//	RPT001 - Query file not found
//	RPT002 - Query file is empty
//	RPT003 - Store not found: the fixture tables do not exist yet
//
// # Default Error (ERR000)
//
// Fallback when no specific pattern matches.
//
// Error patterns are matched case-insensitively using strings.Contains.
// The first matching pattern wins, so more specific patterns come first.
package core

import (
	"fmt"
	"strings"
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string // What happened (user-friendly)
	Action  string // What to do about it
	Code    string // Error code for support reference
}

// errorPattern defines a pattern to match and its corresponding user message.
type errorPattern struct {
	pattern string
	msg     UserMessage
}

var (
	msgForeignKey = UserMessage{
		Message: "Referenced record does not exist",
		Action:  "Regenerate the dataset so every reference has a parent row",
		Code:    "DB003",
	}
	msgDuplicate = UserMessage{
		Message: "A record with this ID already exists",
		Action:  "Check the source file for repeated ids",
		Code:    "DB001",
	}
)

var errorPatterns = []errorPattern{
	// Source files
	{"data directory not found", UserMessage{"Data directory not found", "Run the generator first or set DATA_DIR", "SRC001"}},
	{"no such file or directory", UserMessage{"Source file missing", "Regenerate the dataset", "SRC002"}},
	{"invalid csv", UserMessage{"File is not a valid CSV", "Regenerate the dataset", "SRC003"}},
	{"empty file", UserMessage{"File is not a valid CSV", "Regenerate the dataset", "SRC003"}},
	{"missing required columns", UserMessage{"File is not a valid CSV", "Regenerate the dataset", "SRC003"}},

	// Validation
	{"invalid timestamp", UserMessage{"Invalid timestamp detected", "Use YYYY-MM-DD HH:MM:SS", "VAL001"}},
	{"invalid number", UserMessage{"Invalid number format detected", "Use plain decimal numbers such as 12.50", "VAL002"}},
	{"invalid integer", UserMessage{"Invalid number format detected", "Use whole numbers for quantities", "VAL002"}},
	{"required field is empty", UserMessage{"Required field is empty", "Ensure every required column has a value", "VAL003"}},

	// Database
	{"violates foreign key", msgForeignKey},
	{"foreign key constraint", msgForeignKey},
	{"duplicate key", msgDuplicate},
	{"connection refused", UserMessage{"Unable to connect to database", "Check DATABASE_URL and that PostgreSQL is running", "DB004"}},
	{"database_url is not set", UserMessage{"Database connection not configured", "Set DATABASE_URL in the environment or .env", "DB005"}},
	{"timeout", UserMessage{"Operation timed out", "Try again", "DB006"}},
	{"context deadline exceeded", UserMessage{"Operation timed out", "Try again", "DB006"}},

	// Reporter
	{"query file not found", UserMessage{"Query file not found", "Set REPORT_QUERY_FILE to an existing .sql file", "RPT001"}},
	{"query file is empty", UserMessage{"Query file is empty", "Put exactly one SQL query in the file", "RPT002"}},
	{"store not found", UserMessage{"Database has not been loaded", "Run the loader first", "RPT003"}},
}

var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Check the log output for details",
	Code:    "ERR000",
}

// MapError converts a technical error to a user-friendly message.
// Returns an empty UserMessage for nil errors.
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	if IsForeignKeyViolation(err) {
		return msgForeignKey
	}
	if IsUniqueViolation(err) {
		return msgDuplicate
	}

	errStr := strings.ToLower(err.Error())
	for _, ep := range errorPatterns {
		if strings.Contains(errStr, ep.pattern) {
			return ep.msg
		}
	}

	return defaultMessage
}

// FormatUserError creates a formatted error string for display.
// The format is: "Message (Code: XXX). Action"
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	return fmt.Sprintf("%s (Code: %s). %s", msg.Message, msg.Code, msg.Action)
}
