package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/JonMunkholm/compliance-reports/internal/config"
	"github.com/JonMunkholm/compliance-reports/internal/core"
	"github.com/JonMunkholm/compliance-reports/internal/logging"
	"github.com/JonMunkholm/compliance-reports/internal/remittance"
)

type remittanceFlags struct {
	input         string
	output        string
	threshold     int
	holidays      []string
	collectErrors bool
}

// NewRemittanceCommand builds the remittance-checker command.
func NewRemittanceCommand(rt Runtime) *cobra.Command {
	var flags remittanceFlags

	cmd := &cobra.Command{
		Use:   "remittance-checker",
		Short: "Flag late 401(k) remittances against the DOL safe harbor",
		Long: "Reads a CSV of plan_name, pay_date, deposit_date and amount, counts the\n" +
			"business days between each pay date and deposit date, and writes\n" +
			"remittance_report.txt listing late deposits.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := bootstrap()
			if err != nil {
				return err
			}
			return runRemittance(cmd, rt, cfg, flags)
		},
	}

	cmd.Flags().StringVar(&flags.input, "input", "", "path to remittance CSV file")
	cmd.Flags().StringVar(&flags.output, "output", "", `output directory (default "output")`)
	cmd.Flags().IntVar(&flags.threshold, "threshold", remittance.DefaultSafeHarborDays, "safe harbor threshold in business days")
	cmd.Flags().StringSliceVar(&flags.holidays, "holiday", nil, "date to exclude from the business-day count (repeatable)")
	cmd.Flags().BoolVar(&flags.collectErrors, "collect-errors", false, "report every bad row instead of stopping at the first")
	_ = cmd.MarkFlagRequired("input")

	return cmd
}

func runRemittance(cmd *cobra.Command, rt Runtime, cfg *config.Config, flags remittanceFlags) error {
	ctx, _ := logging.NewRunContext(cmd.Context())
	logger := logging.WithFields(ctx, "tool", "remittance-checker", "input", flags.input)

	rules, err := remittanceRules(cmd, cfg, flags)
	if err != nil {
		return err
	}
	collect := cfg.Remittance.CollectErrors
	if cmd.Flags().Changed("collect-errors") {
		collect = flags.collectErrors
	}

	rr, err := core.OpenRecords(flags.input)
	if err != nil {
		return err
	}
	defer rr.Close()
	logInput(logger, flags.input)

	if err := remittance.CheckHeader(rr); err != nil {
		return err
	}

	results, err := remittance.Analyze(ctx, rr.Records(), rules, remittance.Options{CollectErrors: collect})
	if err != nil {
		return err
	}

	path, err := remittance.WriteReport(resolveOutput(cmd, flags.output, cfg), results, rules, rt.Now())
	if err != nil {
		return err
	}

	late := remittance.LateCount(results)
	logger.Info("report written", "path", path, "records", len(results), "late", late)

	fmt.Fprintf(rt.Out, "Analysis complete. %d remittances checked, %d late.\n", len(results), late)
	fmt.Fprintf(rt.Out, "Report saved to: %s\n", path)
	return nil
}

// remittanceRules merges configuration with flags into the lateness rule.
func remittanceRules(cmd *cobra.Command, cfg *config.Config, flags remittanceFlags) (remittance.Rules, error) {
	rules := remittance.Rules{SafeHarborDays: cfg.Remittance.SafeHarborDays}
	if cmd.Flags().Changed("threshold") {
		if flags.threshold < 0 {
			return remittance.Rules{}, fmt.Errorf("--threshold must be non-negative, got %d", flags.threshold)
		}
		rules.SafeHarborDays = flags.threshold
	}

	holidays, err := cfg.Remittance.HolidayDates()
	if err != nil {
		return remittance.Rules{}, err
	}
	for _, h := range flags.holidays {
		d, err := core.ParseDate(h)
		if err != nil {
			return remittance.Rules{}, fmt.Errorf("--holiday: %w", err)
		}
		holidays = append(holidays, d)
	}
	rules.Calendar = remittance.NewCalendar(holidays...)

	return rules, nil
}
