package breakeven

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/setax/internal/calculation"
	"github.com/rgehrsitz/setax/internal/domain"
	"github.com/rgehrsitz/setax/internal/transform"
	"github.com/shopspring/decimal"
)

var (
	two  = decimal.NewFromInt(2)
	cent = decimal.RequireFromString("0.01")
)

// Solver finds the input value that produces a desired tax outcome.
// Total tax never decreases as gross income rises and never increases as
// expenses or IRA contributions rise, so a bisection over one input is enough.
type Solver struct {
	Calculator *calculation.Calculator
	Options    SolverOptions
}

// NewSolver creates a new break-even solver
func NewSolver(calc *calculation.Calculator, options SolverOptions) *Solver {
	return &Solver{
		Calculator: calc,
		Options:    options,
	}
}

// NewDefaultSolver creates a solver with default options
func NewDefaultSolver(calc *calculation.Calculator) *Solver {
	return NewSolver(calc, DefaultSolverOptions())
}

// Solve runs the request and returns the best value found. A target that
// cannot be reached within the bounds is not an error: the result reports
// Success=false at the closest bound.
func (s *Solver) Solve(ctx context.Context, req SolveRequest) (*SolveResult, error) {
	if req.BaseScenario == nil {
		return nil, &BreakEvenError{Operation: "solve", Message: "base scenario is required"}
	}
	if err := req.Constraints.Validate(req.Goal); err != nil {
		return nil, err
	}

	switch req.Target {
	case TargetGrossIncome, TargetExpenses, TargetIRA:
	case TargetPayments:
		if req.Goal != GoalMatchOwed {
			return nil, &BreakEvenError{
				Operation: "solve",
				Message:   "estimated payments do not change total tax; use the match_owed goal",
			}
		}
	default:
		return nil, &BreakEvenError{
			Operation: "solve",
			Message:   fmt.Sprintf("unsupported solve target: %s", req.Target),
		}
	}

	// Apply defaults
	if req.MaxIterations == 0 {
		req.MaxIterations = s.Options.MaxIterations
	}
	if req.Tolerance.IsZero() {
		req.Tolerance = s.Options.Tolerance
	}

	base := s.Calculator.CalculateTax(req.BaseScenario.Inputs)
	lo, hi := s.bounds(req, base)

	switch req.Goal {
	case GoalMinimizeTax:
		return s.gridSearch(ctx, req, base, lo, hi)
	default:
		return s.bisect(ctx, req, base, lo, hi)
	}
}

// bisect narrows [lo, hi] until the goal metric is within tolerance of the target
func (s *Solver) bisect(ctx context.Context, req SolveRequest, base domain.TaxResult, lo, hi decimal.Decimal) (*SolveResult, error) {
	target := *req.Constraints.TargetAmount

	loResult, err := s.evaluate(req, base, lo, 1)
	if err != nil {
		return nil, err
	}
	hiResult, err := s.evaluate(req, base, hi, 2)
	if err != nil {
		return nil, err
	}

	fLo := goalMetric(req.Goal, loResult)
	fHi := goalMetric(req.Goal, hiResult)
	increasing := fHi.GreaterThanOrEqual(fLo)

	best := loResult
	if fHi.Sub(target).Abs().LessThan(fLo.Sub(target).Abs()) {
		best = hiResult
	}
	best.Iterations = 2

	if goalMetric(req.Goal, best).Sub(target).Abs().LessThanOrEqual(req.Tolerance) {
		best.Success = true
		best.ConvergenceInfo = fmt.Sprintf("Target met at search bound within $%s", req.Tolerance.StringFixed(2))
		return best, nil
	}

	lowest, highest := decimal.Min(fLo, fHi), decimal.Max(fLo, fHi)
	if target.LessThan(lowest) || target.GreaterThan(highest) {
		best.ConvergenceInfo = fmt.Sprintf("Target $%s is outside the reachable range $%s to $%s",
			target.StringFixed(2), lowest.StringFixed(2), highest.StringFixed(2))
		return best, nil
	}

	iterations := 2
	for iterations < req.MaxIterations {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		iterations++

		mid := lo.Add(hi).Div(two).Round(2)
		result, err := s.evaluate(req, base, mid, iterations)
		if err != nil {
			return nil, err
		}

		diff := goalMetric(req.Goal, result).Sub(target)
		if diff.Abs().LessThan(goalMetric(req.Goal, best).Sub(target).Abs()) {
			best = result
		}
		best.Iterations = iterations

		if diff.Abs().LessThanOrEqual(req.Tolerance) {
			best = result
			best.Success = true
			best.ConvergenceInfo = fmt.Sprintf("Converged to target within $%s", req.Tolerance.StringFixed(2))
			return best, nil
		}

		if diff.IsNegative() == increasing {
			lo = mid
		} else {
			hi = mid
		}

		if hi.Sub(lo).LessThanOrEqual(cent) {
			best.ConvergenceInfo = fmt.Sprintf("Search narrowed to one cent; closest result is $%s from target",
				goalMetric(req.Goal, best).Sub(target).Abs().StringFixed(2))
			return best, nil
		}
	}

	best.ConvergenceInfo = fmt.Sprintf("Max iterations (%d) reached", req.MaxIterations)
	return best, nil
}

// gridSearch evaluates evenly spaced values and keeps the lowest total tax.
// Ties keep the smaller value.
func (s *Solver) gridSearch(ctx context.Context, req SolveRequest, base domain.TaxResult, lo, hi decimal.Decimal) (*SolveResult, error) {
	steps := s.Options.GridResolution
	if steps < 1 {
		steps = 1
	}
	step := hi.Sub(lo).Div(decimal.NewFromInt(int64(steps)))

	var best *SolveResult
	iterations := 0

	for i := 0; i <= steps && iterations < req.MaxIterations; i++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		iterations++

		value := lo.Add(step.Mul(decimal.NewFromInt(int64(i)))).Round(2)
		if i == steps {
			value = hi
		}

		result, err := s.evaluate(req, base, value, iterations)
		if err != nil {
			return nil, err
		}

		if best == nil || result.TotalTax.LessThan(best.TotalTax) {
			best = result
		}
	}

	best.Iterations = iterations
	best.Success = true
	best.ConvergenceInfo = fmt.Sprintf("Evaluated %d values", iterations)
	return best, nil
}

// evaluate computes the tax with the target input set to value
func (s *Solver) evaluate(req SolveRequest, base domain.TaxResult, value decimal.Decimal, iterations int) (*SolveResult, error) {
	scenario, err := scenarioAt(req.BaseScenario, req.Target, value)
	if err != nil {
		return nil, &BreakEvenError{
			Operation: "solve_" + string(req.Target),
			Message:   "failed to apply transform",
			Cause:     err,
		}
	}

	r := s.Calculator.CalculateTax(scenario.Inputs)
	baseCopy := base

	return &SolveResult{
		Request:          req,
		Iterations:       iterations,
		OptimalValue:     value,
		Result:           r,
		TotalTax:         r.TotalTax,
		TaxOwedOrRefund:  r.TaxOwedOrRefund,
		BaseResult:       &baseCopy,
		BaseValue:        baseValue(req.BaseScenario, req.Target),
		TaxDiffFromBase:  r.TotalTax.Sub(base.TotalTax),
		OwedDiffFromBase: r.TaxOwedOrRefund.Sub(base.TaxOwedOrRefund),
	}, nil
}

// bounds resolves the search range from the constraints and the target's defaults
func (s *Solver) bounds(req SolveRequest, base domain.TaxResult) (decimal.Decimal, decimal.Decimal) {
	in := req.BaseScenario.Inputs
	lo := decimal.Zero
	var hi decimal.Decimal

	switch req.Target {
	case TargetGrossIncome:
		hi = decimal.Max(DefaultMaxAmount, in.GrossIncome)
	case TargetExpenses:
		hi = decimal.Max(in.GrossIncome, in.BusinessExpenses)
	case TargetIRA:
		// room left under the annual limit
		existing := domain.NonNegative(in.AdvancedOrZero().IRAContributions)
		hi = domain.NonNegative(s.Calculator.Constants.IRAContributionLimit.Sub(existing))
	case TargetPayments:
		// enough to turn the whole bill into the most negative target
		hi = decimal.Max(base.TotalTax, decimal.Zero)
		if t := req.Constraints.TargetAmount; t != nil && t.IsNegative() {
			hi = hi.Add(t.Abs())
		}
	}

	if req.Constraints.MinValue != nil {
		lo = *req.Constraints.MinValue
	}
	if req.Constraints.MaxValue != nil {
		hi = *req.Constraints.MaxValue
	}
	if hi.LessThan(lo) {
		hi = lo
	}
	return lo, hi
}

// scenarioAt returns a copy of base with the target input at value
func scenarioAt(base *domain.Scenario, target SolveTarget, value decimal.Decimal) (*domain.Scenario, error) {
	var tr transform.ScenarioTransform

	switch target {
	case TargetGrossIncome:
		tr = &transform.AdjustIncome{Amount: value.Sub(domain.NonNegative(base.Inputs.GrossIncome))}
	case TargetExpenses:
		tr = &transform.AdjustExpenses{Amount: value.Sub(domain.NonNegative(base.Inputs.BusinessExpenses))}
	case TargetIRA:
		if !value.IsPositive() {
			return base.DeepCopy(), nil
		}
		tr = &transform.ContributeIRA{Amount: value}
	case TargetPayments:
		tr = &transform.AddEstimatedPayments{Amount: value}
	default:
		return nil, fmt.Errorf("unsupported solve target: %s", target)
	}

	return transform.ApplyTransforms(base, []transform.ScenarioTransform{tr})
}

// baseValue is the target input's value in the base scenario. IRA and payment
// targets are additions, so their base is zero.
func baseValue(base *domain.Scenario, target SolveTarget) decimal.Decimal {
	switch target {
	case TargetGrossIncome:
		return domain.NonNegative(base.Inputs.GrossIncome)
	case TargetExpenses:
		return domain.NonNegative(base.Inputs.BusinessExpenses)
	default:
		return decimal.Zero
	}
}

func goalMetric(goal SolveGoal, r *SolveResult) decimal.Decimal {
	if goal == GoalMatchOwed {
		return r.TaxOwedOrRefund
	}
	return r.TotalTax
}
