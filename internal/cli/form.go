package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/JonMunkholm/compliance-reports/internal/config"
	"github.com/JonMunkholm/compliance-reports/internal/core"
	"github.com/JonMunkholm/compliance-reports/internal/forms"
	"github.com/JonMunkholm/compliance-reports/internal/logging"
)

type formFlags struct {
	input  string
	output string
	form   string
	strict bool
}

// NewFormCommand builds the form-filler command.
func NewFormCommand(rt Runtime) *cobra.Command {
	var flags formFlags

	cmd := &cobra.Command{
		Use:   "form-filler",
		Short: "Fill TxDOT compliance forms from CSV data",
		Long: "Validates that every row carries the form's required fields and writes\n" +
			"a timestamped form document to the output directory.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := bootstrap()
			if err != nil {
				return err
			}
			return runForm(cmd, rt, cfg, flags)
		},
	}

	cmd.Flags().StringVar(&flags.input, "input", "", "path to CSV data file")
	cmd.Flags().StringVar(&flags.output, "output", "", `output directory (default "output")`)
	cmd.Flags().StringVar(&flags.form, "form", "", fmt.Sprintf("form type to generate (%s)", strings.Join(rt.Forms.Types(), ", ")))
	cmd.Flags().BoolVar(&flags.strict, "strict", false, "also reject amounts, dates and counts that do not parse")
	_ = cmd.MarkFlagRequired("input")
	_ = cmd.MarkFlagRequired("form")

	return cmd
}

func runForm(cmd *cobra.Command, rt Runtime, cfg *config.Config, flags formFlags) error {
	ctx, _ := logging.NewRunContext(cmd.Context())
	logger := logging.WithFields(ctx, "tool", "form-filler", "input", flags.input, "form", flags.form)

	def, err := rt.Forms.Lookup(flags.form)
	if err != nil {
		return err
	}

	rr, err := core.OpenRecords(flags.input)
	if err != nil {
		return err
	}
	defer rr.Close()
	logInput(logger, flags.input)

	records, err := core.Collect(rr.Records())
	if err != nil {
		return err
	}

	validate := forms.Validate
	if strictTypes(cmd, cfg, flags) {
		validate = forms.ValidateStrict
	}
	if errs := validate(records, def); len(errs) > 0 {
		logger.Info("validation failed", "errors", len(errs))
		return errs
	}

	path, err := forms.WriteForm(resolveOutput(cmd, flags.output, cfg), records, def, rt.Now())
	if err != nil {
		return err
	}
	logger.Info("form written", "path", path, "entries", len(records))

	fmt.Fprintf(rt.Out, "Form generated successfully: %s\n", path)
	fmt.Fprintf(rt.Out, "Entries processed: %d\n", len(records))
	return nil
}

// strictTypes reports whether typed field checks are on; --strict overrides config.
func strictTypes(cmd *cobra.Command, cfg *config.Config, flags formFlags) bool {
	if cmd.Flags().Changed("strict") {
		return flags.strict
	}
	return cfg.Forms.StrictTypes
}
