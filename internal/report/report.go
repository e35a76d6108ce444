// Package report assembles plain-text compliance reports and writes them to
// an output directory.
//
// Rendering is pure formatting: callers pass already-computed values and an
// injected clock, and get back the exact bytes that land on disk.
package report

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// GeneratedLayout is the minute-precision timestamp printed in report headers.
const GeneratedLayout = "2006-01-02 15:04"

var (
	printer = message.NewPrinter(language.English)
	titler  = cases.Title(language.English)
)

// Clock returns the current wall-clock time. Tests substitute a fixed clock.
type Clock func() time.Time

// Rule writes a line of width copies of ch.
func Rule(w io.Writer, ch byte, width int) {
	fmt.Fprintf(w, "%s\n", strings.Repeat(string(ch), width))
}

// Header writes the title block: rule, title, generation time, rule, blank line.
func Header(w io.Writer, title string, width int, now time.Time) {
	Rule(w, '=', width)
	fmt.Fprintf(w, "%s\n", title)
	fmt.Fprintf(w, "Generated: %s\n", now.Local().Format(GeneratedLayout))
	Rule(w, '=', width)
	fmt.Fprintln(w)
}

// Section writes a section heading framed by dashed rules, followed by a blank line.
func Section(w io.Writer, title string, width int) {
	Rule(w, '-', width)
	fmt.Fprintf(w, "%s\n", title)
	Rule(w, '-', width)
	fmt.Fprintln(w)
}

// FormatMoney renders an amount as dollars with thousands separators and two
// decimal places, e.g. $10,500.00 or -$5.00. Digits come from the decimal itself.
func FormatMoney(d decimal.Decimal) string {
	d = d.Round(2)
	whole, frac, _ := strings.Cut(d.Abs().StringFixed(2), ".")

	sign := ""
	if d.IsNegative() {
		sign = "-"
	}
	return sign + "$" + groupDigits(whole) + "." + frac
}

// groupDigits inserts thousands separators into a string of decimal digits.
func groupDigits(digits string) string {
	if n, err := strconv.ParseInt(digits, 10, 64); err == nil {
		return printer.Sprintf("%d", n)
	}

	var b strings.Builder
	lead := len(digits) % 3
	if lead == 0 {
		lead = 3
	}
	b.WriteString(digits[:lead])
	for i := lead; i < len(digits); i += 3 {
		b.WriteByte(',')
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

// Label turns a snake_case column name into a display label: "dbe_amount" -> "Dbe Amount".
func Label(column string) string {
	return titler.String(strings.ReplaceAll(column, "_", " "))
}

// Mode selects how Write treats an existing file.
type Mode int

const (
	// Overwrite truncates any existing file of the same name.
	Overwrite Mode = iota
	// Exclusive never replaces an existing file; a numeric suffix is added instead.
	Exclusive
)

// maxSuffix bounds the search for a free file name in Exclusive mode.
const maxSuffix = 1000

// Write creates dir if needed, renders the report into dir/name and returns the path.
// The file is removed again if rendering fails.
func Write(dir, name string, mode Mode, render func(io.Writer) error) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create output directory %s: %w", dir, err)
	}

	f, path, err := create(dir, name, mode)
	if err != nil {
		return "", err
	}

	if err := render(f); err != nil {
		f.Close()
		os.Remove(path)
		return "", fmt.Errorf("render %s: %w", filepath.Base(path), err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}

func create(dir, name string, mode Mode) (*os.File, string, error) {
	path := filepath.Join(dir, name)
	if mode == Overwrite {
		f, err := os.Create(path)
		if err != nil {
			return nil, "", fmt.Errorf("create %s: %w", path, err)
		}
		return f, path, nil
	}

	ext := filepath.Ext(name)
	base := strings.TrimSuffix(name, ext)
	for i := 0; i < maxSuffix; i++ {
		if i > 0 {
			path = filepath.Join(dir, fmt.Sprintf("%s_%d%s", base, i, ext))
		}
		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
		if err == nil {
			return f, path, nil
		}
		if !errors.Is(err, fs.ErrExist) {
			return nil, "", fmt.Errorf("create %s: %w", path, err)
		}
	}
	return nil, "", fmt.Errorf("create %s: no free file name after %d attempts", name, maxSuffix)
}
