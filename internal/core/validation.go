package core

// validation.go checks records against column specifications.
//
// Validation happens at two levels:
//  1. Presence: every required field must exist and be non-blank after trimming
//  2. Type (opt-in): present values of typed fields must parse (date, amount, integer)
//
// Every violation is collected; nothing here aborts early.

import (
	"fmt"
	"strings"
)

// RowValidator validates records against a list of field specifications.
type RowValidator struct {
	specs      []FieldSpec
	checkTypes bool
}

// NewRowValidator creates a presence-only validator for the given specifications.
func NewRowValidator(specs []FieldSpec) *RowValidator {
	return &RowValidator{specs: specs}
}

// WithTypeChecks enables parsing of present values against their field type.
func (v *RowValidator) WithTypeChecks() *RowValidator {
	v.checkTypes = true
	return v
}

// ValidateRecord returns every violation for a single record, in field order.
func (v *RowValidator) ValidateRecord(rec Record) ValidationErrors {
	var errs ValidationErrors

	for _, spec := range v.specs {
		raw, ok := rec.Get(spec.Name)
		value := strings.TrimSpace(raw)

		if !ok || value == "" {
			if spec.Required {
				errs = append(errs, MissingField(rec.Row, spec.Name))
			}
			continue
		}
		if !v.checkTypes {
			continue
		}

		if err := ValidateCell(value, spec); err != nil {
			errs = append(errs, ValidationError{
				Row:     rec.Row,
				Field:   spec.Name,
				Message: fmt.Sprintf("Row %d: Invalid %s for field '%s': %q", rec.Row, fieldTypeName(spec.Type), spec.Name, value),
			})
		}
	}

	return errs
}

// ValidateAll validates every record and returns all violations in row order.
func (v *RowValidator) ValidateAll(records []Record) ValidationErrors {
	var errs ValidationErrors
	for _, rec := range records {
		errs = append(errs, v.ValidateRecord(rec)...)
	}
	return errs
}

// ValidateCell validates a single non-empty value against a field specification.
func ValidateCell(value string, spec FieldSpec) error {
	switch spec.Type {
	case FieldDate:
		_, err := ParseDate(value)
		return err
	case FieldAmount:
		_, err := ParseAmount(value)
		return err
	case FieldInteger:
		if _, err := ParseInteger(value); err != nil {
			return fmt.Errorf("invalid integer %q", value)
		}
	}
	return nil
}

// fieldTypeName returns a human-readable name for a field type.
func fieldTypeName(ft FieldType) string {
	switch ft {
	case FieldText:
		return "text"
	case FieldDate:
		return "date"
	case FieldAmount:
		return "amount"
	case FieldInteger:
		return "number"
	default:
		return "value"
	}
}
