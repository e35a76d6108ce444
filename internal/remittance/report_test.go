package remittance

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 5, 1, 9, 30, 0, 0, time.Local)

func scenarioResults() []Result {
	rules := DefaultRules()
	rows := []NormalizedRemittance{
		{PlanName: "Acme 401k", PayDate: date(2024, 1, 5), DepositDate: date(2024, 1, 22), Amount: decimal.RequireFromString("10500.00")},
		{PlanName: "Beta Plan", PayDate: date(2024, 3, 1), DepositDate: date(2024, 3, 6), Amount: decimal.RequireFromString("250")},
	}
	results := make([]Result, len(rows))
	for i, n := range rows {
		results[i] = Result{Row: i + 1, Remittance: n, Verdict: rules.Evaluate(n)}
	}
	return results
}

func TestRender(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, scenarioResults(), DefaultRules(), fixedNow))

	eq := "======================================================================\n"
	dash := "----------------------------------------------------------------------\n"
	want := eq +
		"401(k) REMITTANCE ANALYSIS REPORT\n" +
		"Generated: 2024-05-01 09:30\n" +
		eq +
		"\n" +
		"Total Remittances Analyzed: 2\n" +
		"Late Remittances Found: 1\n" +
		"Safe Harbor Threshold: 7 business days\n" +
		"\n" +
		dash +
		"LATE REMITTANCES\n" +
		dash +
		"\n" +
		"  Plan: Acme 401k\n" +
		"  Pay Date: 2024-01-05\n" +
		"  Deposit Date: 2024-01-22\n" +
		"  Amount: $10,500.00\n" +
		"  Business Days: 11 (LATE)\n" +
		"\n" +
		dash +
		"ALL REMITTANCES\n" +
		dash +
		"\n" +
		"  Acme 401k | 2024-01-05 -> 2024-01-22 | 11 days | $10,500.00 | LATE\n" +
		"  Beta Plan | 2024-03-01 -> 2024-03-06 | 3 days | $250.00 | OK\n"

	assert.Equal(t, want, buf.String())
}

func TestRender_NoLateSection(t *testing.T) {
	results := scenarioResults()[1:]

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, results, DefaultRules(), fixedNow))

	out := buf.String()
	assert.Contains(t, out, "Late Remittances Found: 0\n")
	assert.NotContains(t, out, "LATE REMITTANCES")
	assert.Contains(t, out, "ALL REMITTANCES")
}

func TestRender_HolidaysListed(t *testing.T) {
	rules := Rules{SafeHarborDays: 5, Calendar: NewCalendar(date(2024, 1, 15), date(2024, 2, 19))}

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, nil, rules, fixedNow))

	out := buf.String()
	assert.Contains(t, out, "Total Remittances Analyzed: 0\n")
	assert.Contains(t, out, "Safe Harbor Threshold: 5 business days\n")
	assert.Contains(t, out, "Holidays Excluded: 2\n")
}

func TestWriteReport_Overwrites(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "output")

	path, err := WriteReport(dir, scenarioResults(), DefaultRules(), fixedNow)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, ReportFileName), path)

	path2, err := WriteReport(dir, nil, DefaultRules(), fixedNow)
	require.NoError(t, err)
	assert.Equal(t, path, path2)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Total Remittances Analyzed: 0")
	assert.NotContains(t, string(data), "Acme 401k")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
