package breakeven

import (
	"context"
	"errors"
	"fmt"

	"github.com/rgehrsitz/setax/internal/domain"
)

// SolveAllTargets runs the same goal against every target the goal supports
// and compares the outcomes. Only the target amount of constraints is used;
// bounds are target specific and fall back to their defaults.
func (s *Solver) SolveAllTargets(
	ctx context.Context,
	baseScenario *domain.Scenario,
	goal SolveGoal,
	constraints Constraints,
) (*MultiTargetResult, error) {

	shared := Constraints{TargetAmount: constraints.TargetAmount}
	if err := shared.Validate(goal); err != nil {
		return nil, err
	}

	var results []SolveResult

	for _, target := range SolveTargets {
		if target == TargetPayments && goal != GoalMatchOwed {
			continue
		}

		req := SolveRequest{
			BaseScenario:  baseScenario,
			Target:        target,
			Goal:          goal,
			Constraints:   shared,
			MaxIterations: s.Options.MaxIterations,
			Tolerance:     s.Options.Tolerance,
		}

		result, err := s.Solve(ctx, req)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil, err
			}
			// Skip targets that fail and keep going
			continue
		}

		if result != nil && result.Success {
			results = append(results, *result)
		}
	}

	if len(results) == 0 {
		return nil, &BreakEvenError{
			Operation: "solve_all_targets",
			Message:   "no target could reach the goal",
		}
	}

	mtResult := &MultiTargetResult{
		Goal:    goal,
		Results: results,
	}

	for i := range results {
		if mtResult.BestByTax == nil || results[i].TotalTax.LessThan(mtResult.BestByTax.TotalTax) {
			mtResult.BestByTax = &results[i]
		}
	}

	mtResult.Recommendations = s.generateRecommendations(mtResult)

	return mtResult, nil
}

// generateRecommendations creates one line per solved target plus the overall best
func (s *Solver) generateRecommendations(result *MultiTargetResult) []string {
	var recommendations []string

	for i := range result.Results {
		r := &result.Results[i]
		switch result.Goal {
		case GoalMatchTotalTax:
			recommendations = append(recommendations,
				fmt.Sprintf("%s brings total tax to $%s", DescribeValue(r), r.TotalTax.StringFixed(0)))
		case GoalMatchOwed:
			recommendations = append(recommendations,
				fmt.Sprintf("%s brings the balance due to $%s", DescribeValue(r), r.TaxOwedOrRefund.StringFixed(0)))
		}
	}

	if result.BestByTax != nil && result.BestByTax.TaxDiffFromBase.IsNegative() {
		recommendations = append(recommendations,
			fmt.Sprintf("Lowest total tax: %s (saves $%s)",
				DescribeValue(result.BestByTax),
				result.BestByTax.TaxDiffFromBase.Neg().StringFixed(0)))
	}

	return recommendations
}

// DescribeValue renders the solved input in words
func DescribeValue(r *SolveResult) string {
	value := r.OptimalValue.StringFixed(2)
	switch r.Request.Target {
	case TargetGrossIncome:
		return "Gross income of $" + value
	case TargetExpenses:
		return "Business expenses of $" + value
	case TargetIRA:
		return "An additional IRA contribution of $" + value
	case TargetPayments:
		return "Additional estimated payments of $" + value
	default:
		return string(r.Request.Target) + " of $" + value
	}
}
