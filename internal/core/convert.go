package core

// convert.go turns raw CSV cells into typed values.
//
// These functions handle the messy reality of user-provided CSV data:
//   - Three accepted date layouts (ISO, US slash, US dash)
//   - Currency symbols and thousand separators in amounts
//   - Accounting negatives written as (123.45)
//   - Excel formula prefixes (="value") in headers
//
// Unlike a lenient importer, every function here fails with a typed error
// carrying the raw input so the caller can abort or collect.

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// amountRegex validates that a string is a plain decimal after cleanup.
var amountRegex = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)$`)

// DateLayouts lists the accepted date layouts in priority order: ISO,
// US slash, US dash. Month and day may be written with one or two digits.
var DateLayouts = []string{
	"2006-1-2",
	"1/2/2006",
	"1-2-2006",
}

// currencySymbols are stripped from the front of an amount.
var currencySymbols = []string{"$", "€", "£"}

// ParseDate parses a calendar date using the first matching layout in DateLayouts.
// The result is midnight UTC of that date.
func ParseDate(raw string) (time.Time, error) {
	s := strings.TrimSpace(raw)
	if s != "" {
		for _, layout := range DateLayouts {
			t, err := time.Parse(layout, s)
			if err == nil {
				return t, nil
			}
		}
	}
	return time.Time{}, &DateFormatError{Raw: raw}
}

// ParseAmount parses a currency amount such as "$10,500.00" or "(1,234.56)".
func ParseAmount(raw string) (decimal.Decimal, error) {
	s := strings.TrimSpace(raw)

	// Detect negative accounting format "(123.45)"
	isNegative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		isNegative = true
		s = strings.TrimSpace(s[1 : len(s)-1])
	}

	sign := ""
	if strings.HasPrefix(s, "-") || strings.HasPrefix(s, "+") {
		sign, s = s[:1], s[1:]
	}
	for _, sym := range currencySymbols {
		if strings.HasPrefix(s, sym) {
			s = strings.TrimPrefix(s, sym)
			break
		}
	}
	s = strings.ReplaceAll(s, ",", "")
	s = sign + strings.TrimSpace(s)

	if isNegative {
		if sign != "" {
			return decimal.Decimal{}, &AmountFormatError{Raw: raw}
		}
		s = "-" + s
	}

	if !amountRegex.MatchString(s) {
		return decimal.Decimal{}, &AmountFormatError{Raw: raw}
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, &AmountFormatError{Raw: raw}
	}
	return d, nil
}

// ParseInteger parses a whole-number count such as "1,204".
func ParseInteger(raw string) (int64, error) {
	s := strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, err
	}
	return n, nil
}

// CleanCell removes common CSV artifacts from a header or cell value:
// - Trims whitespace
// - Removes Excel formula prefix (="...")
// - Removes surrounding quotes
func CleanCell(s string) string {
	s = strings.TrimSpace(s)

	if strings.HasPrefix(s, "=\"") && strings.HasSuffix(s, "\"") {
		s = s[2 : len(s)-1]
	}

	s = strings.Trim(s, `"'`)
	return strings.TrimSpace(s)
}
