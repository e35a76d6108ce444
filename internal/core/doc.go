// Package core provides the record reading, field normalization and error
// handling shared by the compliance report tools.
//
// This package has no CLI dependencies and can be used by any frontend.
//
// # Records
//
// A [RecordReader] turns a CSV (or XLSX) file with a header row into a lazy
// sequence of [Record] values in file order:
//
//	rr, err := core.OpenRecords("remittances.csv")
//	if err != nil {
//	    return err
//	}
//	defer rr.Close()
//
//	for rec, err := range rr.Records() {
//	    if err != nil {
//	        return err // *MalformedInputError
//	    }
//	    plan := rec.Value("plan_name")
//	    ...
//	}
//
// # Normalization
//
// [ParseDate] accepts YYYY-MM-DD, MM/DD/YYYY and MM-DD-YYYY (tried in that
// order). [ParseAmount] strips a leading currency symbol and comma separators
// and returns a decimal.Decimal.
//
// # Error Handling
//
// Parse failures are typed ([InputNotFoundError], [MalformedInputError],
// [DateFormatError], [AmountFormatError]) and abort a run. Rule violations are
// [ValidationError] values collected into [ValidationErrors]. [MapError] maps
// any of them to a coded [UserMessage] for display.
package core
