package main

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/setax/internal/calculation"
	"github.com/rgehrsitz/setax/internal/domain"
	"github.com/rgehrsitz/setax/internal/output"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var estimateCmd = &cobra.Command{
	Use:   "estimate [input-file]",
	Short: "Estimate taxes for every scenario in a file, or for inline flags",
	Long: `Estimate federal income tax, self-employment tax and state tax.

Examples:
  ./setax estimate scenarios.yaml
  ./setax estimate scenarios.yaml --scenario Baseline --format json
  ./setax estimate --gross 80000 --expenses 10000 --status single --state TX
  ./setax estimate scenarios.yaml --format html --save
`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var (
			set *domain.ScenarioSet
			env *environment
			err error
		)

		if len(args) == 1 {
			set, env, err = loadScenarioSet(cmd, args[0])
		} else {
			set, env, err = inlineScenarioSet(cmd)
		}
		if err != nil {
			return err
		}

		if name, _ := cmd.Flags().GetString("scenario"); name != "" {
			s, ok := set.Find(name)
			if !ok {
				return fmt.Errorf("scenario %s not found", name)
			}
			set.Scenarios = []domain.Scenario{*s}
		}

		noState, _ := cmd.Flags().GetBool("no-state")
		report := output.NewEstimateReport(env.Constants.Year)
		for _, s := range set.Scenarios {
			result := calculation.WithStateTax(env.Calc.CalculateTax(s.Inputs), !noState)
			report.Add(output.EstimateEntry{
				Name:        s.Name,
				Description: s.Description,
				Inputs:      s.Inputs,
				Result:      result,
			})
		}

		outputFormat, _ := cmd.Flags().GetString("format")
		f := output.GetFormatterByName(outputFormat)
		if f == nil {
			return fmt.Errorf("unknown output format: %s (valid: %s; aliases: %s)", outputFormat,
				strings.Join(output.AvailableFormatterNames(), ", "), strings.Join(output.AvailableFormatAliases(), ", "))
		}

		if save, _ := cmd.Flags().GetBool("save"); save {
			filename, err := output.WriteFormatted(f, report, output.ExtensionFor(f))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", filename)
			return nil
		}

		data, err := f.Format(report)
		if err != nil {
			return fmt.Errorf("failed to format report: %w", err)
		}
		return writeOutput(cmd.OutOrStdout(), data)
	},
}

// inlineScenarioSet builds a one-scenario set from the estimate flags
func inlineScenarioSet(cmd *cobra.Command) (*domain.ScenarioSet, *environment, error) {
	env, err := loadEnvironment(cmd, 0)
	if err != nil {
		return nil, nil, err
	}

	amount := func(name string) (decimal.Decimal, error) {
		raw, _ := cmd.Flags().GetString(name)
		if raw == "" {
			return decimal.Zero, nil
		}
		d, err := decimal.NewFromString(strings.ReplaceAll(raw, ",", ""))
		if err != nil {
			return decimal.Zero, fmt.Errorf("invalid --%s %q: %w", name, raw, err)
		}
		return d, nil
	}

	gross, err := amount("gross")
	if err != nil {
		return nil, nil, err
	}
	expenses, err := amount("expenses")
	if err != nil {
		return nil, nil, err
	}
	w2, err := amount("w2")
	if err != nil {
		return nil, nil, err
	}
	payments, err := amount("payments")
	if err != nil {
		return nil, nil, err
	}

	statusStr, _ := cmd.Flags().GetString("status")
	status, err := domain.ParseFilingStatus(statusStr)
	if err != nil {
		return nil, nil, err
	}
	state, _ := cmd.Flags().GetString("state")

	set := &domain.ScenarioSet{
		TaxYear: env.Constants.Year,
		Scenarios: []domain.Scenario{{
			Name: "estimate",
			Inputs: domain.TaxInputs{
				GrossIncome:      gross,
				BusinessExpenses: expenses,
				FilingStatus:     status,
				StateCode:        state,
				Advanced: &domain.AdvancedInputs{
					W2Income:              w2,
					QuarterlyPaymentsMade: payments,
				},
			},
		}},
	}
	if err := env.Parser.ValidateScenarioSet(set); err != nil {
		return nil, nil, err
	}
	return set, env, nil
}

var validateCmd = &cobra.Command{
	Use:   "validate [input-file]",
	Short: "Validate a scenario file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		set, env, err := loadScenarioSet(cmd, args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Scenario file %s is valid (%d scenarios, tax year %d)\n",
			args[0], len(set.Scenarios), env.Constants.Year)
		return nil
	},
}

var statesCmd = &cobra.Command{
	Use:   "states",
	Short: "List the state income tax rate table",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := loadEnvironment(cmd, 0)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%-5s %-22s %8s\n", "Code", "State", "Rate")
		fmt.Fprintln(out, strings.Repeat("-", 37))
		for _, s := range env.States.Sorted() {
			fmt.Fprintf(out, "%-5s %-22s %8s\n", s.Code, s.Name, output.FormatRate(s.Rate))
		}
		return nil
	},
}

func init() {
	estimateCmd.Flags().StringP("format", "f", "console", "Output format ("+strings.Join(output.AvailableFormatterNames(), ", ")+")")
	estimateCmd.Flags().String("scenario", "", "Only estimate the named scenario")
	estimateCmd.Flags().Bool("no-state", false, "Exclude state income tax from totals")
	estimateCmd.Flags().Bool("save", false, "Write the report to a timestamped file instead of stdout")
	estimateCmd.Flags().String("gross", "", "Gross business income (when no input file is given)")
	estimateCmd.Flags().String("expenses", "", "Business expenses")
	estimateCmd.Flags().String("w2", "", "W-2 wages")
	estimateCmd.Flags().String("payments", "", "Estimated payments already made")
	estimateCmd.Flags().String("status", "single", "Filing status (single, mfj, hoh)")
	estimateCmd.Flags().String("state", "", "Two-letter state code")
}
