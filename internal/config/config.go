// Package config provides centralized configuration for the report tools.
// It loads configuration from environment variables with sensible defaults and
// validates all settings on startup to fail fast on misconfiguration.
// Command-line flags override these values.
package config

// Config holds all application configuration.
// All settings can be configured via environment variables.
type Config struct {
	Report     ReportConfig
	Remittance RemittanceConfig
	Forms      FormsConfig
	Logging    LoggingConfig
}

// ReportConfig holds output settings shared by both tools.
type ReportConfig struct {
	// OutputDir is where reports are written (default: output)
	OutputDir string `env:"REPORT_OUTPUT_DIR" default:"output"`
}

// RemittanceConfig holds the lateness rule settings.
type RemittanceConfig struct {
	// SafeHarborDays is the business-day threshold above which a deposit is late (default: 7)
	SafeHarborDays int `env:"SAFE_HARBOR_BUSINESS_DAYS" default:"7"`

	// Holidays is a comma-separated list of dates skipped by the business-day count
	Holidays []string `env:"SAFE_HARBOR_HOLIDAYS"`

	// CollectErrors reports every bad row instead of stopping at the first (default: false)
	CollectErrors bool `env:"REMITTANCE_COLLECT_ERRORS" default:"false"`
}

// FormsConfig holds form-filler settings.
type FormsConfig struct {
	// StrictTypes also rejects amounts, dates and counts that do not parse (default: false)
	StrictTypes bool `env:"FORM_STRICT_TYPES" default:"false"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: warn)
	Level string `env:"LOG_LEVEL" default:"warn"`

	// Format is the log format: text or json (default: text)
	Format string `env:"LOG_FORMAT" default:"text"`
}
