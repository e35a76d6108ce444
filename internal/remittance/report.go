package remittance

import (
	"bufio"
	"fmt"
	"io"
	"time"

	"github.com/JonMunkholm/compliance-reports/internal/report"
)

const (
	// ReportFileName is the fixed report name; reruns overwrite it.
	ReportFileName = "remittance_report.txt"
	// ReportTitle heads the remittance report.
	ReportTitle = "401(k) REMITTANCE ANALYSIS REPORT"

	reportWidth = 70
	dateLayout  = "2006-01-02"
)

// Render writes the remittance report for results to w.
func Render(w io.Writer, results []Result, rules Rules, now time.Time) error {
	bw := bufio.NewWriter(w)
	late := LateCount(results)

	report.Header(bw, ReportTitle, reportWidth, now)

	fmt.Fprintf(bw, "Total Remittances Analyzed: %d\n", len(results))
	fmt.Fprintf(bw, "Late Remittances Found: %d\n", late)
	fmt.Fprintf(bw, "Safe Harbor Threshold: %d business days\n", rules.SafeHarborDays)
	if n := rules.Calendar.HolidayCount(); n > 0 {
		fmt.Fprintf(bw, "Holidays Excluded: %d\n", n)
	}
	fmt.Fprintln(bw)

	if late > 0 {
		report.Section(bw, "LATE REMITTANCES", reportWidth)
		for _, r := range results {
			if !r.Verdict.IsLate {
				continue
			}
			fmt.Fprintf(bw, "  Plan: %s\n", r.Remittance.PlanName)
			fmt.Fprintf(bw, "  Pay Date: %s\n", r.Remittance.PayDate.Format(dateLayout))
			fmt.Fprintf(bw, "  Deposit Date: %s\n", r.Remittance.DepositDate.Format(dateLayout))
			fmt.Fprintf(bw, "  Amount: %s\n", report.FormatMoney(r.Remittance.Amount))
			fmt.Fprintf(bw, "  Business Days: %d (LATE)\n\n", r.Verdict.BusinessDaysElapsed)
		}
	}

	report.Section(bw, "ALL REMITTANCES", reportWidth)
	for _, r := range results {
		fmt.Fprintf(bw, "  %s | %s -> %s | %d days | %s | %s\n",
			r.Remittance.PlanName,
			r.Remittance.PayDate.Format(dateLayout),
			r.Remittance.DepositDate.Format(dateLayout),
			r.Verdict.BusinessDaysElapsed,
			report.FormatMoney(r.Remittance.Amount),
			status(r.Verdict),
		)
	}

	return bw.Flush()
}

// WriteReport renders the report into dir/remittance_report.txt and returns its path.
func WriteReport(dir string, results []Result, rules Rules, now time.Time) (string, error) {
	return report.Write(dir, ReportFileName, report.Overwrite, func(w io.Writer) error {
		return Render(w, results, rules, now)
	})
}

func status(v Verdict) string {
	if v.IsLate {
		return "LATE"
	}
	return "OK"
}
