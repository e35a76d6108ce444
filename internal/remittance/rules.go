// Package remittance flags late 401(k) payroll remittances against the DOL
// safe-harbor deadline.
package remittance

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultSafeHarborDays is the business-day window within which deposits are on time.
const DefaultSafeHarborDays = 7

// Calendar decides which days count as business days.
// The zero value counts Monday through Friday with no holidays.
type Calendar struct {
	holidays map[civilDate]struct{}
}

type civilDate struct {
	year  int
	month time.Month
	day   int
}

func toCivil(t time.Time) civilDate {
	y, m, d := t.Date()
	return civilDate{y, m, d}
}

// NewCalendar returns a weekday calendar that also skips the given holidays.
func NewCalendar(holidays ...time.Time) Calendar {
	if len(holidays) == 0 {
		return Calendar{}
	}
	c := Calendar{holidays: make(map[civilDate]struct{}, len(holidays))}
	for _, h := range holidays {
		c.holidays[toCivil(h)] = struct{}{}
	}
	return c
}

// IsBusinessDay reports whether t falls on a weekday that is not a holiday.
func (c Calendar) IsBusinessDay(t time.Time) bool {
	switch t.Weekday() {
	case time.Saturday, time.Sunday:
		return false
	}
	_, holiday := c.holidays[toCivil(t)]
	return !holiday
}

// HolidayCount returns the number of configured holidays.
func (c Calendar) HolidayCount() int {
	return len(c.holidays)
}

// BusinessDaysElapsed counts business days after start up to and including end.
// It walks one day at a time so that holidays are skipped inside the same loop.
// When end is not after start the walk does nothing and the result is zero.
func (c Calendar) BusinessDaysElapsed(start, end time.Time) int {
	days := 0
	current := start
	for current.Before(end) {
		current = current.AddDate(0, 0, 1)
		if c.IsBusinessDay(current) {
			days++
		}
	}
	return days
}

// Rules holds the lateness rule configuration.
type Rules struct {
	SafeHarborDays int
	Calendar       Calendar
}

// DefaultRules returns the 7-business-day rule on a plain weekday calendar.
func DefaultRules() Rules {
	return Rules{SafeHarborDays: DefaultSafeHarborDays}
}

// NormalizedRemittance is one remittance row with typed fields.
type NormalizedRemittance struct {
	PlanName    string
	PayDate     time.Time
	DepositDate time.Time
	Amount      decimal.Decimal
}

// Reversed reports whether the deposit date precedes the pay date.
func (n NormalizedRemittance) Reversed() bool {
	return n.DepositDate.Before(n.PayDate)
}

// Verdict is the lateness outcome for one remittance.
type Verdict struct {
	BusinessDaysElapsed int
	IsLate              bool
}

// Evaluate applies the rule to one remittance.
func (r Rules) Evaluate(n NormalizedRemittance) Verdict {
	elapsed := r.Calendar.BusinessDaysElapsed(n.PayDate, n.DepositDate)
	return Verdict{
		BusinessDaysElapsed: elapsed,
		IsLate:              elapsed > r.SafeHarborDays,
	}
}
