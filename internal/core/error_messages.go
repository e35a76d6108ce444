package core

// error_messages.go maps errors to codes for support reference.
//
// # File Errors (FILE001-FILE099)
//
//	FILE001 - Input not found: The input file does not exist
//	          Action: Check the --input path
//	          Type: *InputNotFoundError
//
//	FILE002 - Invalid CSV: The input could not be read as a table
//	          Action: Ensure the file is comma-separated with a header row
//	          Type: *MalformedInputError
//
//	FILE003 - Encoding error: The input contains invalid characters
//	          Action: Save the file as UTF-8
//	          Type: *MalformedInputError whose reason mentions UTF-8
//
// # Validation Errors (VAL001-VAL099)
//
//	VAL001 - Invalid date: A date matched none of the accepted formats
//	         Action: Use YYYY-MM-DD, MM/DD/YYYY or MM-DD-YYYY
//	         Type: *DateFormatError
//
//	VAL002 - Invalid amount: An amount is not a number
//	         Action: Use digits with an optional $ and comma separators
//	         Type: *AmountFormatError
//
//	VAL003 - Required field: One or more rows are missing required values
//	         Action: Fill in every required column for every row
//	         Type: ValidationErrors
//
//	VAL004 - Missing column: A required column is missing from the header
//	         Action: Check that the header row names every required column
//	         Pattern: "missing required column"
//
// # Form Errors (FORM001-FORM099)
//
//	FORM001 - Unknown form: The form type is not supported
//	          Action: Pick one of the supported form types
//	          Pattern: "unknown form type"
//
// # Default Error (ERR000)
//
// Fallback when nothing matches. Check the log output for the original error.

import (
	"errors"
	"fmt"
	"strings"
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string // What happened (user-friendly)
	Action  string // What to do about it
	Code    string // Error code for support reference
}

var (
	msgInputNotFound = UserMessage{
		Message: "The input file does not exist",
		Action:  "Check the --input path",
		Code:    "FILE001",
	}
	msgInvalidCSV = UserMessage{
		Message: "The input could not be read as a table",
		Action:  "Ensure the file is comma-separated with a header row",
		Code:    "FILE002",
	}
	msgEncoding = UserMessage{
		Message: "The input contains invalid characters",
		Action:  "Save the file as UTF-8",
		Code:    "FILE003",
	}
	msgInvalidDate = UserMessage{
		Message: "A date matched none of the accepted formats",
		Action:  "Use YYYY-MM-DD, MM/DD/YYYY or MM-DD-YYYY",
		Code:    "VAL001",
	}
	msgInvalidAmount = UserMessage{
		Message: "An amount is not a number",
		Action:  "Use digits with an optional $ and comma separators",
		Code:    "VAL002",
	}
	msgRequiredField = UserMessage{
		Message: "One or more rows are missing required values",
		Action:  "Fill in every required column for every row",
		Code:    "VAL003",
	}
)

// errorPattern maps an error text fragment to a user message for errors
// that carry no dedicated type.
type errorPattern struct {
	pattern string
	msg     UserMessage
}

var errorPatterns = []errorPattern{
	{
		pattern: "missing required column",
		msg: UserMessage{
			Message: "A required column is missing from the header",
			Action:  "Check that the header row names every required column",
			Code:    "VAL004",
		},
	},
	{
		pattern: "unknown form type",
		msg: UserMessage{
			Message: "The form type is not supported",
			Action:  "Pick one of the supported form types",
			Code:    "FORM001",
		},
	},
}

// defaultMessage is returned when nothing matches (ERR000).
var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Check the log output for details",
	Code:    "ERR000",
}

// MapError converts an error to a user-friendly message.
// Typed errors are matched first (through wrapping); then known text patterns
// are matched case-insensitively. Unknown errors map to ERR000.
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	var (
		notFound  *InputNotFoundError
		dateErr   *DateFormatError
		amountErr *AmountFormatError
		invalid   ValidationErrors
		malformed *MalformedInputError
	)
	switch {
	case errors.As(err, &notFound):
		return msgInputNotFound
	case errors.As(err, &dateErr):
		return msgInvalidDate
	case errors.As(err, &amountErr):
		return msgInvalidAmount
	case errors.As(err, &invalid):
		return msgRequiredField
	}

	errStr := strings.ToLower(err.Error())
	for _, ep := range errorPatterns {
		if strings.Contains(errStr, ep.pattern) {
			return ep.msg
		}
	}

	if errors.As(err, &malformed) {
		if strings.Contains(malformed.Reason, "UTF-8") {
			return msgEncoding
		}
		return msgInvalidCSV
	}

	return defaultMessage
}

// FormatUserError creates a formatted hint for display.
// The format is: "Message (Code: XXX). Action"
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	return fmt.Sprintf("%s (Code: %s). %s", msg.Message, msg.Code, msg.Action)
}

// IsUserFacing reports whether an error maps to a specific message rather
// than the ERR000 fallback.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	return MapError(err).Code != defaultMessage.Code
}
