// Package core provides the table engine.
//
// # Error Codes Reference
//
// This file defines user-friendly error messages with codes for support reference.
// Renderers show the code next to the message so a report can be traced back to
// the technical error in the logs.
//
// # Configuration Errors (CFG001-CFG099)
//
//	CFG001 - Page size: Page size must be a positive number
//	         Patterns: "page size"
//
//	CFG002 - Column out of range: A column index does not exist in this table
//	         Patterns: "out of range"
//
//	CFG003 - Sort direction: Sort direction must be asc or desc
//	         Patterns: "sort direction"
//
//	CFG004 - Negative page: Page index cannot be negative
//	         Patterns: "negative page"
//
//	CFG000 - Any other rejected configuration
//	         Patterns: "invalid configuration"
//
// # Selection Errors (SEL001-SEL099)
//
//	SEL001 - Stale row: The row is no longer on the current page
//	         Patterns: "stale row reference"
//
//	SEL002 - Selection disabled: This table has no selection column
//	         Patterns: "selection disabled"
//
// # Source Errors (FILE001-FILE099, SRC001-SRC099)
//
//	FILE002 - Invalid CSV: File is not a valid CSV
//	FILE003 - Encoding error: File contains invalid characters
//	FILE005 - Empty file: The file has no data rows
//	SRC001  - Unknown table: The source table does not exist
//	SRC002  - Connection refused: Unable to connect to database
//
// # Rate Limiting (RATE001-RATE099)
//
//	RATE001 - Rate limited: Too many requests
//
// # Default Error (ERR000)
//
// Fallback when no specific pattern matches.
//
// # Pattern Matching
//
// Error patterns are matched case-insensitively using strings.Contains.
// The first matching pattern wins, so more specific patterns are listed first.
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

// errorPatterns maps technical error patterns (case-insensitive) to user messages.
// The first matching pattern wins, so order matters.
var errorPatterns = []errorPattern{
	// =========================================================================
	// Configuration Errors (CFG001-CFG004)
	// =========================================================================
	{
		pattern: "page size",
		msg: UserMessage{
			Message: "Page size must be a positive number",
			Action:  "Choose a page size of 1 or more",
			Code:    "CFG001",
		},
	},
	{
		pattern: "out of range",
		msg: UserMessage{
			Message: "A column index does not exist in this table",
			Action:  "Pick a column between 0 and the last column",
			Code:    "CFG002",
		},
	},
	{
		pattern: "sort direction",
		msg: UserMessage{
			Message: "Sort direction must be asc or desc",
			Action:  "Use asc or desc",
			Code:    "CFG003",
		},
	},
	{
		pattern: "negative page",
		msg: UserMessage{
			Message: "Page index cannot be negative",
			Action:  "Start from page 0",
			Code:    "CFG004",
		},
	},
	{
		pattern: "invalid configuration",
		msg: UserMessage{
			Message: "The table settings are not valid",
			Action:  "Review the filter, sort and page settings",
			Code:    "CFG000",
		},
	},

	// =========================================================================
	// Selection Errors (SEL001-SEL002)
	// =========================================================================
	{
		pattern: "stale row reference",
		msg: UserMessage{
			Message: "The row is no longer on the current page",
			Action:  "Refresh the table and select again",
			Code:    "SEL001",
		},
	},
	{
		pattern: "selection disabled",
		msg: UserMessage{
			Message: "This table has no selection column",
			Action:  "Enable selection to pick rows",
			Code:    "SEL002",
		},
	},

	// =========================================================================
	// Source Errors (FILE002-FILE005, SRC001-SRC002)
	// =========================================================================
	{
		pattern: "invalid csv",
		msg: UserMessage{
			Message: "File is not a valid CSV",
			Action:  "Ensure file is comma-separated with consistent columns",
			Code:    "FILE002",
		},
	},
	{
		pattern: "encoding error",
		msg: UserMessage{
			Message: "File contains invalid characters",
			Action:  "Save file as UTF-8 encoding",
			Code:    "FILE003",
		},
	},
	{
		pattern: "empty file",
		msg: UserMessage{
			Message: "The file has no data rows",
			Action:  "Provide a CSV file with at least one data row",
			Code:    "FILE005",
		},
	},
	{
		pattern: "unknown table",
		msg: UserMessage{
			Message: "The source table does not exist",
			Action:  "Verify the table name is correct",
			Code:    "SRC001",
		},
	},
	{
		pattern: "connection refused",
		msg: UserMessage{
			Message: "Unable to connect to database",
			Action:  "Please try again in a few moments",
			Code:    "SRC002",
		},
	},

	// =========================================================================
	// Request Errors (REQ001-REQ002)
	// =========================================================================
	{
		pattern: "invalid row id",
		msg: UserMessage{
			Message: "Row identifier is not valid",
			Action:  "Reload the page and select the row again",
			Code:    "REQ001",
		},
	},
	{
		pattern: "invalid request body",
		msg: UserMessage{
			Message: "Request could not be read",
			Action:  "Send a JSON body matching the endpoint",
			Code:    "REQ002",
		},
	},

	// =========================================================================
	// Rate Limiting (RATE001)
	// =========================================================================
	{
		pattern: "rate limit",
		msg: UserMessage{
			Message: "Too many requests",
			Action:  "Please wait a moment before trying again",
			Code:    "RATE001",
		},
	},
}

// defaultMessage is returned when no pattern matches (ERR000).
var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again or contact support",
	Code:    "ERR000",
}

// MapError converts a technical error to a user-friendly message.
// If no pattern matches, a generic fallback with code ERR000 is returned.
//
// Example:
//
//	err := e.SetPageSize(0)
//	msg := MapError(err)
//	// msg.Code == "CFG001"
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
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

// IsUserFacing reports whether err matches a known pattern rather than the ERR000 fallback.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	return MapError(err).Code != defaultMessage.Code
}

// UserError pairs a technical error with its user-friendly message.
type UserError struct {
	Technical error       // Original technical error for logging
	User      UserMessage // User-friendly message for display
}

func (e *UserError) Error() string {
	return e.User.Message
}

func (e *UserError) Unwrap() error {
	return e.Technical
}

// NewUserError maps a technical error to a UserError. Returns nil if err is nil.
func NewUserError(err error) *UserError {
	if err == nil {
		return nil
	}
	return &UserError{
		Technical: err,
		User:      MapError(err),
	}
}
