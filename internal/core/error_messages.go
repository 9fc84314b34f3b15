// Package core provides the prospect standardization and exploration logic.
//
// # Error Codes Reference
//
// This file defines user-friendly error messages with codes for support reference.
// When users encounter errors, they can quote the error code to support staff
// for faster diagnosis.
//
// # File Errors (FILE001-FILE099)
//
// Errors raised while loading an uploaded file:
//
//	FILE001 - File too large: File exceeds the upload size limit
//	          Action: Remove unused columns or split the list
//	          Patterns: "file too large"
//
//	FILE002 - Invalid file: File could not be parsed as CSV or Excel
//	          Action: Re-export the list from your spreadsheet tool
//	          Patterns: "invalid csv", "invalid xlsx"
//
//	FILE003 - Encoding error: File contains characters that could not be decoded
//	          Action: Save the file as UTF-8
//	          Patterns: "encoding error"
//
//	FILE004 - No file: No file was selected
//	          Action: Choose a CSV or XLSX file to upload
//	          Patterns: "no file provided"
//
//	FILE005 - Empty file: The uploaded file is empty
//	          Action: Upload a file with a header row and contacts
//	          Patterns: "empty file"
//
//	FILE006 - Unsupported format: Only .csv and .xlsx are accepted
//	          Action: Save the list as CSV or XLSX
//	          Patterns: "unsupported file format"
//
//	SHEET001 - Sheet not found: The selected worksheet does not exist
//	           Action: Pick one of the listed sheets
//	           Patterns: "sheet not found"
//
// # Mapping Errors (MAP001-MAP099)
//
//	MAP001 - Required column unmapped: Name and Company must be mapped
//	         Action: Choose a column for every field marked with *
//	         Patterns: "required field unmapped"
//
//	MAP002 - Column not found: A mapped column is not in the current file
//	         Action: Review the column mapping after changing files
//	         Patterns: "column not found"
//
//	MAP003 - Unknown field: The mapping names a field that does not exist
//	         Action: Use one of the eight canonical fields
//	         Patterns: "unknown field"
//
// # Session & Upload Errors
//
//	SES001 - Session expired: Your workspace was not found
//	         Action: Reload the page and upload the file again
//	         Patterns: "session not found"
//
//	UPL002 - System busy: Too many files are being processed
//	         Action: Please wait a moment and try again
//	         Patterns: "too many concurrent uploads"
//
//	UPL004 - Request cancelled: Request was cancelled
//	         Action: Please try again
//	         Patterns: "context canceled"
//
//	UPL005 - Request timeout: Request timed out
//	         Action: Try a smaller file or check your connection
//	         Patterns: "context deadline exceeded"
//
// # Query Source Errors (QRY001-QRY099)
//
//	QRY001 - Query source disabled: No database is configured
//	         Action: Upload a file instead
//	         Patterns: "query source disabled"
//
//	QRY002 - Database unavailable: Unable to connect to database
//	         Action: Please try again in a few moments
//	         Patterns: "connection refused", "connection reset"
//
// # Validation Errors (VAL001-VAL099)
//
//	VAL001 - Invalid filter: A filter value is not allowed
//	         Action: Check the allowed values for contact type and CRM
//	         Patterns: "invalid filter"
//
//	VAL002 - Bad request body: The request body could not be read
//	         Action: Send a JSON object matching the documented shape
//	         Patterns: "invalid request body"
//
// # Rate Limiting (RATE001-RATE099)
//
//	RATE001 - Rate limited: Too many requests
//	          Action: Please wait a moment before trying again
//	          Patterns: "rate limit"
//
// # Default Error (ERR000)
//
//	ERR000 - Unknown error: An unexpected error occurred
//	         Action: Please try again or contact support
//
// # Pattern Matching
//
// Error patterns are matched case-insensitively using strings.Contains.
// The first matching pattern wins, so more specific patterns should be
// defined before general ones.
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

var invalidFileMessage = UserMessage{
	Message: "File could not be read as CSV or Excel",
	Action:  "Re-export the list from your spreadsheet tool",
	Code:    "FILE002",
}

var databaseUnavailableMessage = UserMessage{
	Message: "Unable to connect to database",
	Action:  "Please try again in a few moments",
	Code:    "QRY002",
}

// errorPatterns maps technical error patterns (case-insensitive) to user messages.
// The first matching pattern wins, so order matters.
var errorPatterns = []errorPattern{
	// =========================================================================
	// File Errors (FILE001-FILE006, SHEET001)
	// =========================================================================
	{
		pattern: "file too large",
		msg: UserMessage{
			Message: "File exceeds the upload size limit",
			Action:  "Remove unused columns or split the list",
			Code:    "FILE001",
		},
	},
	{pattern: "invalid csv", msg: invalidFileMessage},
	{pattern: "invalid xlsx", msg: invalidFileMessage},
	{
		pattern: "encoding error",
		msg: UserMessage{
			Message: "File contains characters that could not be decoded",
			Action:  "Save the file as UTF-8",
			Code:    "FILE003",
		},
	},
	{
		pattern: "no file provided",
		msg: UserMessage{
			Message: "No file was selected",
			Action:  "Choose a CSV or XLSX file to upload",
			Code:    "FILE004",
		},
	},
	{
		pattern: "empty file",
		msg: UserMessage{
			Message: "The uploaded file is empty",
			Action:  "Upload a file with a header row and contacts",
			Code:    "FILE005",
		},
	},
	{
		pattern: "unsupported file format",
		msg: UserMessage{
			Message: "Only .csv and .xlsx files are accepted",
			Action:  "Save the list as CSV or XLSX",
			Code:    "FILE006",
		},
	},
	{
		pattern: "sheet not found",
		msg: UserMessage{
			Message: "The selected worksheet does not exist",
			Action:  "Pick one of the listed sheets",
			Code:    "SHEET001",
		},
	},

	// =========================================================================
	// Mapping Errors (MAP001-MAP003)
	// =========================================================================
	{
		pattern: "required field unmapped",
		msg: UserMessage{
			Message: "Please map required columns: Name and Company",
			Action:  "Choose a column for every field marked with *",
			Code:    "MAP001",
		},
	},
	{
		pattern: "column not found",
		msg: UserMessage{
			Message: "A mapped column is not in the current file",
			Action:  "Review the column mapping after changing files",
			Code:    "MAP002",
		},
	},
	{
		pattern: "unknown field",
		msg: UserMessage{
			Message: "The mapping names a field that does not exist",
			Action:  "Use Name, Company, Role, Sector, Email, Phone, Country or CRM",
			Code:    "MAP003",
		},
	},

	// =========================================================================
	// Session & Upload Errors (SES001, UPL002-UPL005)
	// =========================================================================
	{
		pattern: "session not found",
		msg: UserMessage{
			Message: "Your workspace has expired",
			Action:  "Reload the page and upload the file again",
			Code:    "SES001",
		},
	},
	{
		pattern: "too many concurrent uploads",
		msg: UserMessage{
			Message: "System is busy processing other files",
			Action:  "Please wait a moment and try again",
			Code:    "UPL002",
		},
	},
	{
		pattern: "context canceled",
		msg: UserMessage{
			Message: "Request was cancelled",
			Action:  "Please try again",
			Code:    "UPL004",
		},
	},
	{
		pattern: "context deadline exceeded",
		msg: UserMessage{
			Message: "Request timed out",
			Action:  "Try a smaller file or check your connection",
			Code:    "UPL005",
		},
	},

	// =========================================================================
	// Query Source Errors (QRY001-QRY002)
	// =========================================================================
	{
		pattern: "query source disabled",
		msg: UserMessage{
			Message: "No database is configured",
			Action:  "Upload a file instead",
			Code:    "QRY001",
		},
	},
	{pattern: "connection refused", msg: databaseUnavailableMessage},
	{pattern: "connection reset", msg: databaseUnavailableMessage},

	// =========================================================================
	// Validation & Rate Limiting (VAL001-VAL002, RATE001)
	// =========================================================================
	{
		pattern: "invalid filter",
		msg: UserMessage{
			Message: "A filter value is not allowed",
			Action:  "Check the allowed values for contact type and CRM",
			Code:    "VAL001",
		},
	},
	{
		pattern: "invalid request body",
		msg: UserMessage{
			Message: "The request body could not be read",
			Action:  "Send a JSON object matching the documented shape",
			Code:    "VAL002",
		},
	},
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
// Support staff should check application logs for the original technical
// error when users report ERR000.
var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again or contact support",
	Code:    "ERR000",
}

// MapError converts a technical error to a user-friendly message.
// If no pattern matches, a generic fallback message with code ERR000 is returned.
//
// Example:
//
//	msg := MapError(fmt.Errorf("load: %w", dataset.ErrEmptyFile))
//	// msg.Code == "FILE005"
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

// IsUserFacing reports whether err matches a known pattern rather than the
// generic ERR000 fallback.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	return MapError(err).Code != defaultMessage.Code
}

// UserError pairs a technical error with its user-facing message.
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
