// Package cli defines the command-line surface of the report tools.
//
// Commands
//
//   - remittance-checker  Flag late 401(k) remittances and write remittance_report.txt
//   - form-filler         Validate TxDOT form data and write a timestamped form document
//
// # Implementation
//
// Each command loads .env and environment configuration before running,
// sets up logging, and gives the run its own ID. Flags override configuration.
// Errors are printed to the command's output in plain language and surface to
// main as a non-nil error so the process exits with status 1.
package cli
