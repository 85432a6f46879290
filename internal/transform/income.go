package transform

import (
	"fmt"

	"github.com/rgehrsitz/setax/internal/domain"
	"github.com/shopspring/decimal"
)

// AdjustIncome adds Amount (which may be negative) to gross business income.
// The result is floored at zero.
type AdjustIncome struct {
	Amount decimal.Decimal
}

func (ai *AdjustIncome) Name() string { return "adjust_income" }

func (ai *AdjustIncome) Description() string {
	return fmt.Sprintf("Change gross income by $%s", ai.Amount.StringFixed(0))
}

func (ai *AdjustIncome) Validate(base *domain.Scenario) error {
	return requireBase(ai.Name(), base)
}

func (ai *AdjustIncome) Apply(base *domain.Scenario) (*domain.Scenario, error) {
	modified := base.DeepCopy()
	modified.Inputs.GrossIncome = domain.NonNegative(modified.Inputs.GrossIncome.Add(ai.Amount))
	return modified, nil
}

// ScaleIncome multiplies gross business income by Factor
type ScaleIncome struct {
	Factor decimal.Decimal
}

func (si *ScaleIncome) Name() string { return "scale_income" }

func (si *ScaleIncome) Description() string {
	pct := si.Factor.Sub(decimal.NewFromInt(1)).Mul(decimal.NewFromInt(100))
	return fmt.Sprintf("Change gross income by %s%%", pct.StringFixed(0))
}

func (si *ScaleIncome) Validate(base *domain.Scenario) error {
	if err := requireBase(si.Name(), base); err != nil {
		return err
	}
	if si.Factor.IsNegative() {
		return NewTransformError(si.Name(), "validate", fmt.Sprintf("factor must be non-negative, got %s", si.Factor), nil)
	}
	return nil
}

func (si *ScaleIncome) Apply(base *domain.Scenario) (*domain.Scenario, error) {
	modified := base.DeepCopy()
	modified.Inputs.GrossIncome = modified.Inputs.GrossIncome.Mul(si.Factor)
	return modified, nil
}

// AdjustExpenses adds Amount (which may be negative) to business expenses
type AdjustExpenses struct {
	Amount decimal.Decimal
}

func (ae *AdjustExpenses) Name() string { return "adjust_expenses" }

func (ae *AdjustExpenses) Description() string {
	return fmt.Sprintf("Change business expenses by $%s", ae.Amount.StringFixed(0))
}

func (ae *AdjustExpenses) Validate(base *domain.Scenario) error {
	return requireBase(ae.Name(), base)
}

func (ae *AdjustExpenses) Apply(base *domain.Scenario) (*domain.Scenario, error) {
	modified := base.DeepCopy()
	modified.Inputs.BusinessExpenses = domain.NonNegative(modified.Inputs.BusinessExpenses.Add(ae.Amount))
	return modified, nil
}

// AddW2Income adds wage income on top of the business
type AddW2Income struct {
	Amount   decimal.Decimal
	Withheld decimal.Decimal
}

func (aw *AddW2Income) Name() string { return "add_w2_income" }

func (aw *AddW2Income) Description() string {
	return fmt.Sprintf("Add $%s of W-2 wages", aw.Amount.StringFixed(0))
}

func (aw *AddW2Income) Validate(base *domain.Scenario) error {
	if err := requireBase(aw.Name(), base); err != nil {
		return err
	}
	if aw.Amount.IsNegative() || aw.Withheld.IsNegative() {
		return NewTransformError(aw.Name(), "validate", "wages and withholding must be non-negative", nil)
	}
	return nil
}

func (aw *AddW2Income) Apply(base *domain.Scenario) (*domain.Scenario, error) {
	modified := base.DeepCopy()
	adv := modified.EnsureAdvanced()
	adv.W2Income = adv.W2Income.Add(aw.Amount)
	adv.W2TaxesWithheld = adv.W2TaxesWithheld.Add(aw.Withheld)
	return modified, nil
}
