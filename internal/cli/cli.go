package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/JonMunkholm/compliance-reports/internal/checksum"
	"github.com/JonMunkholm/compliance-reports/internal/config"
	"github.com/JonMunkholm/compliance-reports/internal/core"
	"github.com/JonMunkholm/compliance-reports/internal/forms"
	"github.com/JonMunkholm/compliance-reports/internal/logging"
	"github.com/JonMunkholm/compliance-reports/internal/report"
)

// Runtime carries the collaborators a command needs. Tests swap the output
// writer and clock.
type Runtime struct {
	Out   io.Writer
	Now   report.Clock
	Forms *forms.Registry
}

// DefaultRuntime writes to stdout, uses the wall clock and the built-in forms.
func DefaultRuntime() Runtime {
	return Runtime{
		Out:   os.Stdout,
		Now:   time.Now,
		Forms: forms.DefaultRegistry(),
	}
}

// Execute runs cmd with os.Args, prints any failure to rt.Out and returns it.
func Execute(ctx context.Context, cmd *cobra.Command, rt Runtime) error {
	cmd.SilenceErrors = true
	cmd.SilenceUsage = true

	err := cmd.ExecuteContext(ctx)
	if err != nil {
		printError(rt.Out, err)
	}
	return err
}

// bootstrap loads .env, reads configuration and configures logging.
func bootstrap() (*config.Config, error) {
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)
	if envErr == nil {
		slog.Debug("loaded .env file")
	}
	slog.Debug("configuration loaded", "config", cfg.String())
	return cfg, nil
}

// resolveOutput returns the --output flag when set, else the configured directory.
func resolveOutput(cmd *cobra.Command, flagValue string, cfg *config.Config) string {
	if cmd.Flags().Changed("output") {
		return flagValue
	}
	return cfg.Report.OutputDir
}

// logInput records which file a run read, with its checksum.
func logInput(logger *slog.Logger, path string) {
	sum, err := checksum.File(path)
	if err != nil {
		logger.Warn("could not checksum input", "error", err)
		return
	}
	logger.Info("input opened", "xxhash", sum)
}

func printError(w io.Writer, err error) {
	var invalid core.ValidationErrors
	if errors.As(err, &invalid) {
		fmt.Fprintln(w, "Validation errors found:")
		for _, msg := range invalid.Messages() {
			fmt.Fprintf(w, "  - %s\n", msg)
		}
		return
	}

	fmt.Fprintf(w, "Error: %v\n", err)

	var notFound *core.InputNotFoundError
	if !errors.As(err, &notFound) && core.IsUserFacing(err) {
		fmt.Fprintf(w, "  %s\n", core.FormatUserError(err))
	}
}
