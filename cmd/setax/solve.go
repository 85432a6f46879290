package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/rgehrsitz/setax/internal/breakeven"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var solveCmd = &cobra.Command{
	Use:   "solve [input-file]",
	Short: "Solve for the input value that reaches a tax goal",
	Long: `Find the gross income, business expenses, additional IRA contribution
or additional estimated payments that reach a goal for one scenario.

Goals:
  match_owed       hit a balance due (0 breaks even with payments made)
  match_total_tax  hit a total tax amount
  minimize_tax     lowest total tax within the search bounds

Examples:
  ./setax solve scenarios.yaml --target estimated_payments --goal match_owed --amount 0
  ./setax solve scenarios.yaml --target gross_income --goal match_total_tax --amount 20000
  ./setax solve scenarios.yaml --target all --goal match_owed --amount 0 --format json
`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		set, env, err := loadScenarioSet(cmd, args[0])
		if err != nil {
			return err
		}

		name, _ := cmd.Flags().GetString("scenario")
		base := &set.Scenarios[0]
		if name != "" {
			var ok bool
			if base, ok = set.Find(name); !ok {
				return fmt.Errorf("scenario %s not found", name)
			}
		}

		targetStr, _ := cmd.Flags().GetString("target")
		goalStr, _ := cmd.Flags().GetString("goal")
		outputFormat, _ := cmd.Flags().GetString("format")
		target := breakeven.SolveTarget(strings.ToLower(targetStr))
		goal := breakeven.SolveGoal(strings.ToLower(goalStr))

		var constraints breakeven.Constraints
		if cmd.Flags().Changed("amount") {
			amount, err := decimalFlag(cmd, "amount")
			if err != nil {
				return err
			}
			constraints.TargetAmount = &amount
		}
		if cmd.Flags().Changed("min") {
			v, err := decimalFlag(cmd, "min")
			if err != nil {
				return err
			}
			constraints.MinValue = &v
		}
		if cmd.Flags().Changed("max") {
			v, err := decimalFlag(cmd, "max")
			if err != nil {
				return err
			}
			constraints.MaxValue = &v
		}

		options := breakeven.DefaultSolverOptions()
		if tol, _ := cmd.Flags().GetString("tolerance"); tol != "" {
			if options.Tolerance, err = decimal.NewFromString(tol); err != nil {
				return fmt.Errorf("invalid --tolerance %q: %w", tol, err)
			}
		}
		solver := breakeven.NewSolver(env.Calc, options)
		ctx := context.Background()

		out := cmd.OutOrStdout()
		if target == breakeven.TargetAll {
			result, err := solver.SolveAllTargets(ctx, base, goal, constraints)
			if err != nil {
				return err
			}
			if strings.EqualFold(outputFormat, "json") {
				s, err := (&breakeven.JSONFormatter{Pretty: true}).FormatMultiTarget(result)
				if err != nil {
					return err
				}
				fmt.Fprint(out, s)
				return nil
			}
			fmt.Fprint(out, (&breakeven.TableFormatter{}).FormatMultiTarget(result))
			return nil
		}

		result, err := solver.Solve(ctx, breakeven.SolveRequest{
			BaseScenario: base,
			Target:       target,
			Goal:         goal,
			Constraints:  constraints,
		})
		if err != nil {
			return err
		}

		switch strings.ToLower(outputFormat) {
		case "json":
			s, err := (&breakeven.JSONFormatter{Pretty: true}).Format(result)
			if err != nil {
				return err
			}
			fmt.Fprint(out, s)
		case "table", "":
			fmt.Fprint(out, (&breakeven.TableFormatter{}).Format(result))
		default:
			return fmt.Errorf("unknown output format: %s (valid: table, json)", outputFormat)
		}
		return nil
	},
}

func init() {
	solveCmd.Flags().String("scenario", "", "Scenario to solve against (default: first)")
	solveCmd.Flags().String("target", string(breakeven.TargetPayments), "Input to vary (gross_income, business_expenses, ira_contribution, estimated_payments, all)")
	solveCmd.Flags().String("goal", string(breakeven.GoalMatchOwed), "Goal (match_owed, match_total_tax, minimize_tax)")
	solveCmd.Flags().String("amount", "", "Target amount for the match goals")
	solveCmd.Flags().String("min", "", "Lower search bound")
	solveCmd.Flags().String("max", "", "Upper search bound")
	solveCmd.Flags().String("tolerance", "", "Convergence tolerance in dollars (default 1)")
	solveCmd.Flags().StringP("format", "f", "table", "Output format (table, json)")
}
