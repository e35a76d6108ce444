package cli

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JonMunkholm/compliance-reports/internal/forms"
	"github.com/JonMunkholm/compliance-reports/internal/remittance"
)

var fixedNow = time.Date(2024, 1, 5, 9, 30, 0, 0, time.Local)

func testRuntime(out *bytes.Buffer) Runtime {
	return Runtime{
		Out:   out,
		Now:   func() time.Time { return fixedNow },
		Forms: forms.DefaultRegistry(),
	}
}

// isolate clears configuration the host environment might carry and restores
// the default logger afterwards.
func isolate(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"REPORT_OUTPUT_DIR",
		"SAFE_HARBOR_BUSINESS_DAYS",
		"SAFE_HARBOR_HOLIDAYS",
		"REMITTANCE_COLLECT_ERRORS",
		"FORM_STRICT_TYPES",
		"LOG_LEVEL",
		"LOG_FORMAT",
	} {
		t.Setenv(key, "")
	}
	t.Setenv("LOG_LEVEL", "error")

	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })
}

func run(t *testing.T, build func(Runtime) *cobra.Command, args ...string) (string, error) {
	t.Helper()
	isolate(t)

	var out bytes.Buffer
	rt := testRuntime(&out)
	cmd := build(rt)
	if args == nil {
		args = []string{}
	}
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(&out)

	err := Execute(context.Background(), cmd, rt)
	return out.String(), err
}

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "input.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// ----------------------------------------------------------------------------
// remittance-checker
// ----------------------------------------------------------------------------

func TestRemittance_Success(t *testing.T) {
	input := writeCSV(t, "plan_name,pay_date,deposit_date,amount\n"+
		"Acme 401k,2024-01-05,2024-01-22,\"$10,500.00\"\n"+
		"Beta Plan,2024-03-01,2024-03-06,250\n")
	outDir := filepath.Join(t.TempDir(), "reports")

	out, err := run(t, NewRemittanceCommand, "--input", input, "--output", outDir)
	require.NoError(t, err)

	reportPath := filepath.Join(outDir, remittance.ReportFileName)
	assert.Equal(t,
		"Analysis complete. 2 remittances checked, 1 late.\n"+
			"Report saved to: "+reportPath+"\n",
		out)

	data, err := os.ReadFile(reportPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Late Remittances Found: 1")
	assert.Contains(t, string(data), "  Amount: $10,500.00\n")
}

func TestRemittance_ThresholdAndHolidayFlags(t *testing.T) {
	input := writeCSV(t, "plan_name,pay_date,deposit_date,amount\n"+
		"Beta Plan,2024-03-01,2024-03-06,250\n")
	outDir := t.TempDir()

	out, err := run(t, NewRemittanceCommand,
		"--input", input, "--output", outDir,
		"--threshold", "2", "--holiday", "2024-03-04")
	require.NoError(t, err)
	assert.Contains(t, out, "1 remittances checked, 0 late.")

	data, err := os.ReadFile(filepath.Join(outDir, remittance.ReportFileName))
	require.NoError(t, err)
	assert.Contains(t, string(data), "Safe Harbor Threshold: 2 business days")
	assert.Contains(t, string(data), "Holidays Excluded: 1")
	assert.Contains(t, string(data), "| 2 days |")
}

func TestRemittance_MissingInput(t *testing.T) {
	outDir := filepath.Join(t.TempDir(), "output")
	missing := filepath.Join(t.TempDir(), "nope.csv")

	out, err := run(t, NewRemittanceCommand, "--input", missing, "--output", outDir)
	require.Error(t, err)
	assert.Equal(t, "Error: Input file not found: "+missing+"\n", out)

	_, statErr := os.Stat(outDir)
	assert.True(t, os.IsNotExist(statErr), "no output directory on failure")
}

func TestRemittance_BadDate(t *testing.T) {
	input := writeCSV(t, "plan_name,pay_date,deposit_date,amount\nAcme,someday,2024-01-22,100\n")
	outDir := filepath.Join(t.TempDir(), "output")

	out, err := run(t, NewRemittanceCommand, "--input", input, "--output", outDir)
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(out, "Error: Row 1: field 'pay_date': invalid date \"someday\""), out)
	assert.Contains(t, out, "(Code: VAL001)")

	_, statErr := os.Stat(filepath.Join(outDir, remittance.ReportFileName))
	assert.True(t, os.IsNotExist(statErr))
}

func TestRemittance_CollectErrors(t *testing.T) {
	input := writeCSV(t, "plan_name,pay_date,deposit_date,amount\n"+
		"Acme,someday,2024-01-22,100\n"+
		"Beta,2024-01-05,2024-01-22,abc\n")

	out, err := run(t, NewRemittanceCommand, "--input", input, "--output", t.TempDir(), "--collect-errors")
	require.Error(t, err)
	assert.Equal(t, "Validation errors found:\n"+
		"  - Row 1: field 'pay_date': invalid date \"someday\" (use YYYY-MM-DD, MM/DD/YYYY or MM-DD-YYYY)\n"+
		"  - Row 2: field 'amount': invalid amount \"abc\"\n",
		out)
}

func TestRemittance_MissingColumns(t *testing.T) {
	input := writeCSV(t, "plan_name,pay_date\nAcme,2024-01-05\n")

	out, err := run(t, NewRemittanceCommand, "--input", input, "--output", t.TempDir())
	require.Error(t, err)
	assert.Contains(t, out, "missing required columns: deposit_date, amount")
	assert.Contains(t, out, "(Code: VAL004)")
}

func TestRemittance_NegativeThreshold(t *testing.T) {
	input := writeCSV(t, "plan_name,pay_date,deposit_date,amount\n")

	out, err := run(t, NewRemittanceCommand, "--input", input, "--output", t.TempDir(), "--threshold", "-1")
	require.Error(t, err)
	assert.Contains(t, out, "--threshold must be non-negative")
}

func TestRemittance_RequiresInput(t *testing.T) {
	out, err := run(t, NewRemittanceCommand)
	require.Error(t, err)
	assert.Contains(t, out, `required flag(s) "input" not set`)
}

// ----------------------------------------------------------------------------
// form-filler
// ----------------------------------------------------------------------------

const dbeCSV = "project_number,contractor_name,contract_amount,dbe_firm_name,dbe_work_description,dbe_amount\n"

func TestForm_Success(t *testing.T) {
	input := writeCSV(t, dbeCSV+
		"P-1,Acme,1000,Small Co,Paving,100\n"+
		"P-2,Acme,2000,Small Co,Striping,200\n")
	outDir := filepath.Join(t.TempDir(), "forms")

	out, err := run(t, NewFormCommand, "--input", input, "--output", outDir, "--form", "dbe_commitment")
	require.NoError(t, err)

	formPath := filepath.Join(outDir, "dbe_commitment_20240105_093000.txt")
	assert.Equal(t,
		"Form generated successfully: "+formPath+"\n"+
			"Entries processed: 2\n",
		out)

	data, err := os.ReadFile(formPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "TxDOT FORM: DBE COMMITMENT\n")
	assert.Contains(t, string(data), "  Entry 2 | Project Number: P-2 |")
}

func TestForm_ValidationErrors(t *testing.T) {
	input := writeCSV(t, dbeCSV+
		"P-1,Acme,1000,Small Co,Paving,100\n"+
		"P-2,Acme,2000,Small Co,Striping,200\n"+
		"P-3,Acme,,Small Co,Signage,300\n")
	outDir := filepath.Join(t.TempDir(), "forms")

	out, err := run(t, NewFormCommand, "--input", input, "--output", outDir, "--form", "dbe_commitment")
	require.Error(t, err)
	assert.Equal(t, "Validation errors found:\n  - Row 3: Missing required field 'contract_amount'\n", out)

	_, statErr := os.Stat(outDir)
	assert.True(t, os.IsNotExist(statErr), "no form written on validation failure")
}

func TestForm_FreeTextValuesAccepted(t *testing.T) {
	input := writeCSV(t, dbeCSV+"P-1,Acme,approx 5k,Small Co,Paving,TBD\n")
	outDir := t.TempDir()

	out, err := run(t, NewFormCommand, "--input", input, "--output", outDir, "--form", "dbe_commitment")
	require.NoError(t, err)
	assert.Contains(t, out, "Entries processed: 1\n")
}

func TestForm_StrictRejectsUnparsedValues(t *testing.T) {
	input := writeCSV(t, dbeCSV+"P-1,Acme,approx 5k,Small Co,Paving,100\n")
	outDir := filepath.Join(t.TempDir(), "forms")

	out, err := run(t, NewFormCommand, "--input", input, "--output", outDir, "--form", "dbe_commitment", "--strict")
	require.Error(t, err)
	assert.Equal(t, "Validation errors found:\n  - Row 1: Invalid amount for field 'contract_amount': \"approx 5k\"\n", out)

	_, statErr := os.Stat(outDir)
	assert.True(t, os.IsNotExist(statErr))
}

func TestForm_UnknownType(t *testing.T) {
	input := writeCSV(t, dbeCSV)

	out, err := run(t, NewFormCommand, "--input", input, "--output", t.TempDir(), "--form", "w2")
	require.Error(t, err)
	assert.Contains(t, out, `Error: unknown form type "w2"`)
	assert.Contains(t, out, "(Code: FORM001)")
}

func TestForm_MissingInput(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope.csv")

	out, err := run(t, NewFormCommand, "--input", missing, "--output", t.TempDir(), "--form", "dbe_commitment")
	require.Error(t, err)
	assert.Equal(t, "Error: Input file not found: "+missing+"\n", out)
}

func TestForm_EmptyDataset(t *testing.T) {
	input := writeCSV(t, dbeCSV)
	outDir := t.TempDir()

	out, err := run(t, NewFormCommand, "--input", input, "--output", outDir, "--form", "dbe_commitment")
	require.NoError(t, err)
	assert.Contains(t, out, "Entries processed: 0\n")
}
