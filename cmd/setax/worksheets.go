package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/rgehrsitz/setax/internal/calculation"
	"github.com/rgehrsitz/setax/internal/domain"
	"github.com/rgehrsitz/setax/internal/output"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var debtCmd = &cobra.Command{
	Use:   "debt [debt-file]",
	Short: "Work the canceled debt (Form 1099-C) insolvency worksheet",
	Long: `Compute how much canceled debt is excludable from income and the tax
on the remainder.

Examples:
  ./setax debt debt.yaml
  ./setax debt debt.yaml --exclusion bankruptcy --format json
`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := loadEnvironment(cmd, 0)
		if err != nil {
			return err
		}
		in, err := env.Parser.LoadDebtFromFile(args[0])
		if err != nil {
			return err
		}

		if raw, _ := cmd.Flags().GetString("exclusion"); raw != "" {
			exclusion, err := domain.ParseExclusionType(raw)
			if err != nil {
				return err
			}
			in.ExclusionType = exclusion
		}

		result := calculation.ResolveDebtCancellation(*in)
		return renderWorksheet(cmd, result, func() []byte {
			return output.FormatDebtCancellation(*in, result)
		})
	},
}

var penaltyCmd = &cobra.Command{
	Use:   "penalty",
	Short: "Compute the estimated tax underpayment penalty",
	Long: `Compute the underpayment penalty either for a single amount paid late or
as a per-quarter schedule from the required annual payment and the
payments actually made.

Examples:
  ./setax penalty --underpaid 2000 --days 90
  ./setax penalty --required 12000 --payment 2025-04-15=3000 --payment 2025-09-30=3000
`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := loadEnvironment(cmd, 0)
		if err != nil {
			return err
		}

		rate := env.Constants.UnderpaymentRate
		if raw, _ := cmd.Flags().GetString("rate"); raw != "" {
			if rate, err = decimal.NewFromString(raw); err != nil {
				return fmt.Errorf("invalid --rate %q: %w", raw, err)
			}
		}

		if cmd.Flags().Changed("underpaid") {
			underpaid, err := decimalFlag(cmd, "underpaid")
			if err != nil {
				return err
			}
			days, _ := cmd.Flags().GetInt("days")
			penalty := calculation.ComputePenalty(underpaid, days, rate)
			fmt.Fprintf(cmd.OutOrStdout(), "Penalty on %s paid %d days late at %s: %s\n",
				output.FormatCurrency(underpaid), days, output.FormatRate(rate), output.FormatCurrency(penalty.Round(2)))
			return nil
		}

		required, err := decimalFlag(cmd, "required")
		if err != nil {
			return err
		}
		rawPayments, _ := cmd.Flags().GetStringArray("payment")
		payments, err := parsePayments(rawPayments)
		if err != nil {
			return err
		}

		asOf := time.Date(env.Constants.Year+1, time.April, 15, 0, 0, 0, 0, time.UTC)
		if raw, _ := cmd.Flags().GetString("as-of"); raw != "" {
			if asOf, err = time.Parse("2006-01-02", raw); err != nil {
				return fmt.Errorf("invalid --as-of %q: %w", raw, err)
			}
		}

		constants := env.Constants
		constants.UnderpaymentRate = rate
		schedule := calculation.ComputeQuarterlyPenalties(required, payments, asOf, constants)
		return renderWorksheet(cmd, schedule, func() []byte {
			return output.FormatPenaltySchedule(schedule)
		})
	},
}

var safeHarborCmd = &cobra.Command{
	Use:   "safe-harbor [input-file]",
	Short: "Check whether an underpayment safe harbor is met",
	Long: `Test the 90% current-year, 100%/110% prior-year and under-$1,000 safe
harbors. The current-year tax and amount paid come from flags, or from a
scenario in an input file.

Examples:
  ./setax safe-harbor --current-tax 15000 --prior-tax 12000 --prior-agi 90000 --paid 12500
  ./setax safe-harbor scenarios.yaml --scenario Baseline --prior-tax 12000
`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var in domain.SafeHarborInputs
		var err error

		if len(args) == 1 {
			set, env, err := loadScenarioSet(cmd, args[0])
			if err != nil {
				return err
			}
			name, _ := cmd.Flags().GetString("scenario")
			s := &set.Scenarios[0]
			if name != "" {
				var ok bool
				if s, ok = set.Find(name); !ok {
					return fmt.Errorf("scenario %s not found", name)
				}
			}
			result := env.Calc.CalculateTax(s.Inputs)
			in.CurrentYearTax = result.TotalTax
			in.TotalPaid = result.PaymentsAndWithholding
		} else {
			if in.CurrentYearTax, err = decimalFlag(cmd, "current-tax"); err != nil {
				return err
			}
			if in.TotalPaid, err = decimalFlag(cmd, "paid"); err != nil {
				return err
			}
		}

		if in.PriorYearTax, err = decimalFlag(cmd, "prior-tax"); err != nil {
			return err
		}
		if in.PriorYearAGI, err = decimalFlag(cmd, "prior-agi"); err != nil {
			return err
		}
		if cmd.Flags().Changed("paid") {
			if in.TotalPaid, err = decimalFlag(cmd, "paid"); err != nil {
				return err
			}
		}

		result := calculation.EvaluateSafeHarbor(in)
		return renderWorksheet(cmd, result, func() []byte {
			return output.FormatSafeHarbor(result)
		})
	},
}

// renderWorksheet writes v as json or yaml, or the console worksheet
func renderWorksheet(cmd *cobra.Command, v any, console func() []byte) error {
	format, _ := cmd.Flags().GetString("format")
	switch strings.ToLower(format) {
	case "", "console", "text":
		return writeOutput(cmd.OutOrStdout(), console())
	default:
		data, err := output.FormatValue(format, v)
		if err != nil {
			return err
		}
		return writeOutput(cmd.OutOrStdout(), data)
	}
}

func decimalFlag(cmd *cobra.Command, name string) (decimal.Decimal, error) {
	raw, _ := cmd.Flags().GetString(name)
	raw = strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	if raw == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid --%s %q: %w", name, raw, err)
	}
	return d, nil
}

// parsePayments reads DATE=AMOUNT pairs
func parsePayments(raw []string) ([]domain.QuarterPayment, error) {
	payments := make([]domain.QuarterPayment, 0, len(raw))
	for _, r := range raw {
		dateStr, amountStr, ok := strings.Cut(r, "=")
		if !ok {
			return nil, fmt.Errorf("invalid payment %q (expected YYYY-MM-DD=AMOUNT)", r)
		}
		date, err := time.Parse("2006-01-02", strings.TrimSpace(dateStr))
		if err != nil {
			return nil, fmt.Errorf("invalid payment date %q: %w", dateStr, err)
		}
		amount, err := decimal.NewFromString(strings.TrimSpace(amountStr))
		if err != nil {
			return nil, fmt.Errorf("invalid payment amount %q: %w", amountStr, err)
		}
		payments = append(payments, domain.QuarterPayment{Date: date, Amount: amount})
	}
	return payments, nil
}

func init() {
	debtCmd.Flags().String("exclusion", "", "Override the exclusion type (none, bankruptcy, principalResidence, farmDebt, businessRealProperty, studentLoan)")
	debtCmd.Flags().StringP("format", "f", "console", "Output format (console, json, yaml)")

	penaltyCmd.Flags().String("underpaid", "", "Single underpaid amount")
	penaltyCmd.Flags().Int("days", 0, "Days late for --underpaid")
	penaltyCmd.Flags().String("rate", "", "Annual penalty rate as a fraction (default: the tax year's rate)")
	penaltyCmd.Flags().String("required", "", "Required annual estimated payment for a quarterly schedule")
	penaltyCmd.Flags().StringArray("payment", nil, "Payment made as YYYY-MM-DD=AMOUNT (repeatable)")
	penaltyCmd.Flags().String("as-of", "", "Date unpaid amounts accrue until (default: April 15 of the next year)")
	penaltyCmd.Flags().StringP("format", "f", "console", "Output format (console, json, yaml)")

	safeHarborCmd.Flags().String("current-tax", "", "Current-year total tax")
	safeHarborCmd.Flags().String("prior-tax", "", "Prior-year total tax (omit to skip the prior-year test)")
	safeHarborCmd.Flags().String("prior-agi", "", "Prior-year AGI")
	safeHarborCmd.Flags().String("paid", "", "Estimated payments and withholding")
	safeHarborCmd.Flags().String("scenario", "", "Scenario to take current-year tax from (default: first)")
	safeHarborCmd.Flags().StringP("format", "f", "console", "Output format (console, json, yaml)")
}
