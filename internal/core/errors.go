package core

// errors.go defines the error taxonomy shared by both report tools.
//
// Parse-level errors (InputNotFoundError, MalformedInputError, DateFormatError,
// AmountFormatError) abort a run. Rule violations are ValidationError values,
// collected into ValidationErrors so the caller can show every problem at once.

import (
	"fmt"
	"strings"
)

// InputNotFoundError is returned when the input path does not exist.
type InputNotFoundError struct {
	Path string
}

func (e *InputNotFoundError) Error() string {
	return fmt.Sprintf("Input file not found: %s", e.Path)
}

// MalformedInputError reports a structural problem with the input table:
// a missing header, an undecodable row, or a missing column.
type MalformedInputError struct {
	Path   string
	Line   int // 0 when the problem is not tied to a line
	Reason string
	Err    error
}

func (e *MalformedInputError) Error() string {
	var b strings.Builder
	b.WriteString("malformed input")
	if e.Path != "" {
		b.WriteString(" ")
		b.WriteString(e.Path)
	}
	if e.Line > 0 {
		fmt.Fprintf(&b, " (line %d)", e.Line)
	}
	b.WriteString(": ")
	b.WriteString(e.Reason)
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *MalformedInputError) Unwrap() error {
	return e.Err
}

// DateFormatError carries a date string that matched none of the accepted layouts.
type DateFormatError struct {
	Raw string
}

func (e *DateFormatError) Error() string {
	return fmt.Sprintf("invalid date %q (use YYYY-MM-DD, MM/DD/YYYY or MM-DD-YYYY)", e.Raw)
}

// AmountFormatError carries an amount string with non-numeric residue.
type AmountFormatError struct {
	Raw string
}

func (e *AmountFormatError) Error() string {
	return fmt.Sprintf("invalid amount %q", e.Raw)
}

// FieldError ties a parse error to the record and field it came from.
type FieldError struct {
	Row   int
	Field string
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("Row %d: field '%s': %v", e.Row, e.Field, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// ValidationError is a single rule violation for one row.
type ValidationError struct {
	Row     int    // 1-based data row
	Field   string // Field/column name
	Message string // Full human-readable message
}

func (e ValidationError) Error() string {
	return e.Message
}

// MissingField builds the required-field violation for a row.
func MissingField(row int, field string) ValidationError {
	return ValidationError{
		Row:     row,
		Field:   field,
		Message: fmt.Sprintf("Row %d: Missing required field '%s'", row, field),
	}
}

// ValidationErrors is an ordered list of rule violations.
// An empty list means the dataset is valid.
type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	switch len(v) {
	case 0:
		return "no validation errors"
	case 1:
		return "validation failed: " + v[0].Message
	default:
		return fmt.Sprintf("validation failed: %s (and %d more)", v[0].Message, len(v)-1)
	}
}

// Messages returns the message of every violation in order.
func (v ValidationErrors) Messages() []string {
	out := make([]string, len(v))
	for i, e := range v {
		out[i] = e.Message
	}
	return out
}
