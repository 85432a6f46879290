package breakeven

import (
	"github.com/rgehrsitz/setax/internal/domain"
	"github.com/shopspring/decimal"
)

// SolveTarget defines which input the solver varies
type SolveTarget string

const (
	TargetGrossIncome SolveTarget = "gross_income"       // Absolute gross business income
	TargetExpenses    SolveTarget = "business_expenses"  // Absolute business expenses
	TargetIRA         SolveTarget = "ira_contribution"   // Additional deductible IRA contribution
	TargetPayments    SolveTarget = "estimated_payments" // Additional estimated payments
	TargetAll         SolveTarget = "all"
)

// SolveTargets lists every concrete target in display order
var SolveTargets = []SolveTarget{TargetGrossIncome, TargetExpenses, TargetIRA, TargetPayments}

// SolveGoal defines what outcome to achieve
type SolveGoal string

const (
	GoalMatchTotalTax SolveGoal = "match_total_tax" // Hit a specific total tax
	GoalMatchOwed     SolveGoal = "match_owed"      // Hit a specific balance due (0 = break even)
	GoalMinimizeTax   SolveGoal = "minimize_tax"    // Lowest total tax within bounds
)

// DefaultMaxAmount bounds open-ended searches
var DefaultMaxAmount = decimal.NewFromInt(1000000)

// Constraints define bounds for the varied input
type Constraints struct {
	MinValue *decimal.Decimal `json:"min_value,omitempty"`
	MaxValue *decimal.Decimal `json:"max_value,omitempty"`

	// Target amount for the match goals
	TargetAmount *decimal.Decimal `json:"target_amount,omitempty"`
}

// WithTarget returns constraints with only a target amount set
func WithTarget(amount decimal.Decimal) Constraints {
	return Constraints{TargetAmount: &amount}
}

// SolveRequest defines the parameters for a solver run
type SolveRequest struct {
	BaseScenario  *domain.Scenario `json:"-"`
	Target        SolveTarget      `json:"target"`
	Goal          SolveGoal        `json:"goal"`
	Constraints   Constraints      `json:"constraints"`
	MaxIterations int              `json:"max_iterations"`
	Tolerance     decimal.Decimal  `json:"tolerance"` // Convergence tolerance on the goal metric
}

// SolveResult contains the results of a solver run
type SolveResult struct {
	Request         SolveRequest `json:"request"`
	Success         bool         `json:"success"`
	Iterations      int          `json:"iterations"`
	ConvergenceInfo string       `json:"convergence_info"`

	// Value of the varied input at the solution
	OptimalValue decimal.Decimal `json:"optimal_value"`

	// Results at the solution
	Result          domain.TaxResult `json:"result"`
	TotalTax        decimal.Decimal  `json:"total_tax"`
	TaxOwedOrRefund decimal.Decimal  `json:"tax_owed_or_refund"`

	// Comparison to base
	BaseResult       *domain.TaxResult `json:"base_result,omitempty"`
	BaseValue        decimal.Decimal   `json:"base_value"`
	TaxDiffFromBase  decimal.Decimal   `json:"tax_diff_from_base"`
	OwedDiffFromBase decimal.Decimal   `json:"owed_diff_from_base"`
}

// MultiTargetResult contains results when solving the same goal over several targets
type MultiTargetResult struct {
	Goal            SolveGoal     `json:"goal"`
	Results         []SolveResult `json:"results"`
	BestByTax       *SolveResult  `json:"best_by_tax,omitempty"`
	Recommendations []string      `json:"recommendations"`
}

// SolverOptions configures the solver algorithm
type SolverOptions struct {
	GridResolution int             // For grid search: intervals across the range
	Tolerance      decimal.Decimal // Convergence tolerance
	MaxIterations  int             // Maximum iterations
}

// DefaultSolverOptions returns default solver configuration
func DefaultSolverOptions() SolverOptions {
	return SolverOptions{
		GridResolution: 20,
		Tolerance:      decimal.NewFromInt(1), // $1 tolerance
		MaxIterations:  100,
	}
}

// Validate checks if constraints are internally consistent for a goal
func (c *Constraints) Validate(goal SolveGoal) error {
	if c.MinValue != nil && c.MinValue.IsNegative() {
		return &BreakEvenError{
			Operation: "validate_constraints",
			Message:   "min_value cannot be negative",
		}
	}

	if c.MinValue != nil && c.MaxValue != nil && c.MinValue.GreaterThan(*c.MaxValue) {
		return &BreakEvenError{
			Operation: "validate_constraints",
			Message:   "min_value cannot be greater than max_value",
		}
	}

	switch goal {
	case GoalMatchTotalTax, GoalMatchOwed:
		if c.TargetAmount == nil {
			return &BreakEvenError{
				Operation: "validate_constraints",
				Message:   "target_amount is required for " + string(goal),
			}
		}
		if goal == GoalMatchTotalTax && c.TargetAmount.IsNegative() {
			return &BreakEvenError{
				Operation: "validate_constraints",
				Message:   "target total tax cannot be negative",
			}
		}
	case GoalMinimizeTax:
	default:
		return &BreakEvenError{
			Operation: "validate_constraints",
			Message:   "unsupported goal: " + string(goal),
		}
	}

	return nil
}

// BreakEvenError represents errors from the solver
type BreakEvenError struct {
	Operation string
	Message   string
	Cause     error
}

func (e *BreakEvenError) Error() string {
	if e.Cause != nil {
		return e.Operation + ": " + e.Message + ": " + e.Cause.Error()
	}
	return e.Operation + ": " + e.Message
}

func (e *BreakEvenError) Unwrap() error {
	return e.Cause
}
