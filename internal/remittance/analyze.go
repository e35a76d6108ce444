package remittance

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"strings"

	"github.com/JonMunkholm/compliance-reports/internal/core"
	"github.com/JonMunkholm/compliance-reports/internal/logging"
)

// Columns every remittance input must carry.
const (
	ColPlanName    = "plan_name"
	ColPayDate     = "pay_date"
	ColDepositDate = "deposit_date"
	ColAmount      = "amount"
)

// Columns lists the remittance columns in report order.
var Columns = []string{ColPlanName, ColPayDate, ColDepositDate, ColAmount}

// Result pairs a normalized remittance with its verdict.
type Result struct {
	Row        int
	Remittance NormalizedRemittance
	Verdict    Verdict
}

// Options controls how Analyze treats bad rows.
type Options struct {
	// CollectErrors keeps going after a row fails to normalize and returns
	// every failure as core.ValidationErrors. No results are returned when any
	// row fails, so a report is never built from partial data.
	CollectErrors bool
}

// CheckHeader verifies that the header declares every remittance column.
func CheckHeader(rr *core.RecordReader) error {
	var missing []string
	for _, col := range Columns {
		if !rr.HasColumn(col) {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return &core.MalformedInputError{
			Reason: fmt.Sprintf("missing required columns: %s", strings.Join(missing, ", ")),
		}
	}
	return nil
}

// Normalize converts a raw record into a NormalizedRemittance.
func Normalize(rec core.Record) (NormalizedRemittance, error) {
	for _, col := range Columns {
		if _, ok := rec.Get(col); !ok {
			return NormalizedRemittance{}, &core.MalformedInputError{
				Line:   rec.Line,
				Reason: fmt.Sprintf("row %d: missing required column %q", rec.Row, col),
			}
		}
	}

	payDate, err := core.ParseDate(rec.Value(ColPayDate))
	if err != nil {
		return NormalizedRemittance{}, &core.FieldError{Row: rec.Row, Field: ColPayDate, Err: err}
	}
	depositDate, err := core.ParseDate(rec.Value(ColDepositDate))
	if err != nil {
		return NormalizedRemittance{}, &core.FieldError{Row: rec.Row, Field: ColDepositDate, Err: err}
	}
	amount, err := core.ParseAmount(rec.Value(ColAmount))
	if err != nil {
		return NormalizedRemittance{}, &core.FieldError{Row: rec.Row, Field: ColAmount, Err: err}
	}

	return NormalizedRemittance{
		PlanName:    rec.Value(ColPlanName),
		PayDate:     payDate,
		DepositDate: depositDate,
		Amount:      amount,
	}, nil
}

// Analyze normalizes and evaluates every record in order.
// A decoding error from the sequence always stops the run. A row that fails
// to normalize stops the run unless opts.CollectErrors is set.
func Analyze(ctx context.Context, records iter.Seq2[core.Record, error], rules Rules, opts Options) ([]Result, error) {
	logger := logging.FromContext(ctx)

	var (
		results []Result
		errs    core.ValidationErrors
	)
	for rec, err := range records {
		if err != nil {
			return nil, err
		}

		n, err := Normalize(rec)
		if err != nil {
			if !opts.CollectErrors {
				return nil, err
			}
			errs = append(errs, rowError(rec.Row, err))
			continue
		}

		if n.Reversed() {
			logger.Warn("deposit date precedes pay date, counting zero business days",
				"row", rec.Row,
				"plan", n.PlanName,
				"pay_date", n.PayDate.Format(dateLayout),
				"deposit_date", n.DepositDate.Format(dateLayout),
			)
		}

		results = append(results, Result{
			Row:        rec.Row,
			Remittance: n,
			Verdict:    rules.Evaluate(n),
		})
	}

	if len(errs) > 0 {
		return nil, errs
	}

	logger.Debug("remittances analyzed", "count", len(results), "late", LateCount(results))
	return results, nil
}

// LateCount returns how many results are late.
func LateCount(results []Result) int {
	n := 0
	for _, r := range results {
		if r.Verdict.IsLate {
			n++
		}
	}
	return n
}

func rowError(row int, err error) core.ValidationError {
	ve := core.ValidationError{Row: row, Message: err.Error()}
	var fe *core.FieldError
	if errors.As(err, &fe) {
		ve.Field = fe.Field
	}
	return ve
}
