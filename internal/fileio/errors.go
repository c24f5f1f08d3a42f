package fileio

// errors.go defines the parse-error taxonomy and maps technical errors
// to user-friendly messages with codes for support reference.
//
// Error codes:
//
//	FILE001 - Unsupported format: file extension is not .csv/.xlsx
//	FILE002 - Empty file: no bytes, no sheets, or no rows
//	FILE003 - Malformed file: unparseable CSV/workbook or ragged rows
//	FILE004 - No file: a required upload field was missing
//	FILE005 - File too large: request body exceeded the size limit
//	REQ001  - Timeout: the request was cancelled or timed out
//	ERR000  - Fallback when no pattern matches
//
// Patterns are matched case-insensitively with strings.Contains and the
// first match wins, so specific patterns come before general ones.

import (
	"errors"
	"strings"
)

// Sentinel errors returned by the readers. Handlers distinguish these
// with errors.Is to choose an HTTP status.
var (
	ErrUnsupportedFormat = errors.New("unsupported file format")
	ErrEmptyFile         = errors.New("empty file")
	ErrMalformed         = errors.New("malformed file")
)

// UserMessage provides user-friendly error information with actionable
// guidance.
type UserMessage struct {
	Message string // What happened (user-friendly)
	Action  string // What to do about it
	Code    string // Error code for support reference
}

type errorPattern struct {
	pattern string
	msg     UserMessage
}

var errorPatterns = []errorPattern{
	{
		pattern: "unsupported file format",
		msg: UserMessage{
			Message: "This file type cannot be compared",
			Action:  "Upload a .csv or .xlsx file",
			Code:    "FILE001",
		},
	},
	{
		pattern: "empty file",
		msg: UserMessage{
			Message: "The uploaded file contains no data",
			Action:  "Upload a file with a header row and data rows",
			Code:    "FILE002",
		},
	},
	{
		pattern: "malformed file",
		msg: UserMessage{
			Message: "The file could not be parsed",
			Action:  "Check that every row has the same number of columns",
			Code:    "FILE003",
		},
	},
	{
		pattern: "no file provided",
		msg: UserMessage{
			Message: "No file was selected",
			Action:  "Choose both files before comparing",
			Code:    "FILE004",
		},
	},
	{
		pattern: "request body too large",
		msg: UserMessage{
			Message: "File exceeds the maximum size limit",
			Action:  "Split the file into smaller chunks",
			Code:    "FILE005",
		},
	},
	{
		pattern: "file too large",
		msg: UserMessage{
			Message: "File exceeds the maximum size limit",
			Action:  "Split the file into smaller chunks",
			Code:    "FILE005",
		},
	},
	{
		pattern: "context deadline exceeded",
		msg: UserMessage{
			Message: "The comparison timed out",
			Action:  "Try smaller files or try again later",
			Code:    "REQ001",
		},
	},
	{
		pattern: "context canceled",
		msg: UserMessage{
			Message: "The request was cancelled",
			Action:  "Please try again",
			Code:    "REQ001",
		},
	},
}

// defaultMessage is returned when no pattern matches.
var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again or contact support",
	Code:    "ERR000",
}

// MapError converts a technical error to a user-friendly message.
// Returns a zero UserMessage for nil errors.
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
