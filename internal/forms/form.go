package forms

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/JonMunkholm/compliance-reports/internal/core"
	"github.com/JonMunkholm/compliance-reports/internal/report"
)

const (
	formWidth = 60
	// FileTimestampLayout is the timestamp embedded in generated form file names.
	FileTimestampLayout = "20060102_150405"
)

// Validate checks every record against the form's mandatory fields and
// returns all violations in row order. An empty result means the data is valid.
// Any non-blank value satisfies a field.
func Validate(records []core.Record, def Definition) core.ValidationErrors {
	return core.NewRowValidator(def.Fields).ValidateAll(records)
}

// ValidateStrict is Validate plus parsing of present amount, date and
// count fields.
func ValidateStrict(records []core.Record, def Definition) core.ValidationErrors {
	return core.NewRowValidator(def.Fields).WithTypeChecks().ValidateAll(records)
}

// Render writes the filled form document for records to w.
func Render(w io.Writer, records []core.Record, def Definition, now time.Time) error {
	bw := bufio.NewWriter(w)

	report.Header(bw, def.Title(), formWidth, now)

	fmt.Fprintf(bw, "Total Records: %d\n", len(records))
	fmt.Fprintf(bw, "Entries Processed: %d\n", len(records))
	fmt.Fprintln(bw)

	report.Section(bw, "ENTRIES", formWidth)
	for i, rec := range records {
		parts := []string{fmt.Sprintf("Entry %d", i+1)}
		for name, value := range rec.Fields() {
			parts = append(parts, fmt.Sprintf("%s: %s", report.Label(name), singleLine(strings.TrimSpace(value))))
		}
		fmt.Fprintf(bw, "  %s\n", strings.Join(parts, " | "))
	}

	return bw.Flush()
}

// FileName returns the timestamped output name, e.g. dbe_commitment_20240105_093000.txt.
func FileName(def Definition, now time.Time) string {
	return fmt.Sprintf("%s_%s.txt", def.Type, now.Local().Format(FileTimestampLayout))
}

// WriteForm renders the form into dir under a timestamped name and returns the path.
// An existing file is never replaced.
func WriteForm(dir string, records []core.Record, def Definition, now time.Time) (string, error) {
	return report.Write(dir, FileName(def, now), report.Exclusive, func(w io.Writer) error {
		return Render(w, records, def, now)
	})
}

// singleLine folds embedded line breaks so each entry stays on one line.
func singleLine(s string) string {
	s = strings.ReplaceAll(s, "\r\n", " ")
	return strings.ReplaceAll(s, "\n", " ")
}
