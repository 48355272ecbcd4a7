// Package core provides the GDP map business logic.
//
// # Error Codes Reference
//
// This file maps technical errors to user-facing messages with a code that
// can be quoted in bug reports.
//
// # Data Errors (GDP001-GDP099)
//
//	GDP001 - File access: The GDP data file could not be opened or read
//	         Action: Check the gdpfile path in the gdpinfo configuration
//	         Match: *FileAccessError
//
//	GDP002 - Schema: The GDP data file does not have the expected layout
//	         Action: Check the country_name, separator and quote settings
//	         Match: *SchemaError
//
//	GDP003 - Parse: A GDP value is not a number
//	         Action: Fix the value in the data file or leave it empty for "no data"
//	         Match: *ParseError
//
//	GDP004 - Numeric domain: A GDP value is zero or negative
//	         Action: GDP values must be strictly positive to be log-scaled
//	         Match: *NumericDomainError
//
// # Configuration Errors (CFG001-CFG099)
//
//	CFG001 - Invalid gdpinfo: The dataset description is incomplete or invalid
//	         Patterns: "invalid gdpinfo"
//
//	CFG002 - Invalid year: The year is not a four-digit year
//	         Patterns: "invalid year"
//
// # Render Errors (RND001-RND099)
//
//	RND001 - Render failed: The map image could not be written
//	         Patterns: "render map"
//
//	RND002 - Busy: Too many maps are being rendered at once
//	         Patterns: "too many concurrent renders"
//
// # History Errors (DB001-DB099)
//
//	DB001 - Connection refused: Unable to connect to the history database
//	        Patterns: "connection refused"
//
//	DB002 - History unavailable: Render history is not configured
//	        Patterns: "history not configured"
//
// # Request Errors (REQ001-REQ099)
//
//	REQ001 - Request cancelled
//	         Patterns: "context canceled"
//
//	REQ002 - Request timeout
//	         Patterns: "context deadline exceeded"
//
// # Default Error (ERR000)
//
// Fallback when nothing matches. Check the logs for the technical error.
//
// Typed errors are checked first with errors.As, then the patterns are
// matched case-insensitively in order; the first match wins.
package core

import (
	"fmt"
	"strings"
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string // What happened
	Action  string // What to do about it
	Code    string // Support reference
}

var (
	msgFileAccess = UserMessage{
		Message: "The GDP data file could not be opened or read",
		Action:  "Check the gdpfile path in the gdpinfo configuration",
		Code:    "GDP001",
	}
	msgSchema = UserMessage{
		Message: "The GDP data file does not have the expected layout",
		Action:  "Check the country_name, separator and quote settings",
		Code:    "GDP002",
	}
	msgParse = UserMessage{
		Message: "A GDP value is not a number",
		Action:  "Fix the value in the data file or leave it empty for \"no data\"",
		Code:    "GDP003",
	}
	msgNumericDomain = UserMessage{
		Message: "A GDP value is zero or negative",
		Action:  "GDP values must be strictly positive to be log-scaled",
		Code:    "GDP004",
	}
)

// errorPattern defines a pattern to match and its corresponding user message.
type errorPattern struct {
	pattern string
	msg     UserMessage
}

// errorPatterns is checked in order after the typed errors; keep specific
// patterns ahead of general ones.
var errorPatterns = []errorPattern{
	{
		pattern: "invalid gdpinfo",
		msg: UserMessage{
			Message: "The dataset description is incomplete or invalid",
			Action:  "Check gdpfile, country_name, separator, quote and the year range",
			Code:    "CFG001",
		},
	},
	{
		pattern: "invalid year",
		msg: UserMessage{
			Message: "The year is not valid",
			Action:  "Use a four-digit year such as 1960",
			Code:    "CFG002",
		},
	},
	{
		pattern: "too many concurrent renders",
		msg: UserMessage{
			Message: "The server is busy rendering other maps",
			Action:  "Please try again in a few moments",
			Code:    "RND002",
		},
	},
	{
		pattern: "render map",
		msg: UserMessage{
			Message: "The map image could not be written",
			Action:  "Check that the output directory exists and is writable",
			Code:    "RND001",
		},
	},
	{
		pattern: "connection refused",
		msg: UserMessage{
			Message: "Unable to connect to the history database",
			Action:  "Please try again in a few moments",
			Code:    "DB001",
		},
	},
	{
		pattern: "history not configured",
		msg: UserMessage{
			Message: "Render history is not available",
			Action:  "Set DATABASE_URL to enable render history",
			Code:    "DB002",
		},
	},
	{
		pattern: "context canceled",
		msg: UserMessage{
			Message: "Request was cancelled",
			Action:  "Please try again",
			Code:    "REQ001",
		},
	},
	{
		pattern: "context deadline exceeded",
		msg: UserMessage{
			Message: "Request timed out",
			Action:  "Please try again",
			Code:    "REQ002",
		},
	},
}

// defaultMessage is returned when nothing matches (ERR000).
var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again or contact support",
	Code:    "ERR000",
}

// MapError converts a technical error to a user-friendly message.
//
// Example:
//
//	_, err := LoadTable("missing.csv", "Country Name", ',', '"')
//	msg := MapError(err)
//	// msg.Code == "GDP001"
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	switch {
	case IsFileAccess(err):
		return msgFileAccess
	case IsSchema(err):
		return msgSchema
	case IsParse(err):
		return msgParse
	case IsNumericDomain(err):
		return msgNumericDomain
	}

	errStr := strings.ToLower(err.Error())
	for _, ep := range errorPatterns {
		if strings.Contains(errStr, ep.pattern) {
			return ep.msg
		}
	}

	return defaultMessage
}

// FormatUserError returns "Message (Code: XXX). Action" for display.
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	return fmt.Sprintf("%s (Code: %s). %s", msg.Message, msg.Code, msg.Action)
}

// IsUserFacing reports whether err maps to a specific message rather than ERR000.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	return MapError(err).Code != defaultMessage.Code
}

// UserError pairs a technical error with its user-facing message.
type UserError struct {
	Technical error
	User      UserMessage
}

func (e *UserError) Error() string {
	return e.User.Message
}

func (e *UserError) Unwrap() error {
	return e.Technical
}

// NewUserError maps err to a UserError. Returns nil if err is nil.
func NewUserError(err error) *UserError {
	if err == nil {
		return nil
	}
	return &UserError{
		Technical: err,
		User:      MapError(err),
	}
}
