package transform

import (
	"fmt"

	"github.com/rgehrsitz/setax/internal/domain"
	"github.com/shopspring/decimal"
)

// ContributeIRA adds a deductible IRA contribution
type ContributeIRA struct {
	Amount decimal.Decimal
}

func (ci *ContributeIRA) Name() string { return "contribute_ira" }

func (ci *ContributeIRA) Description() string {
	return fmt.Sprintf("Contribute $%s to a deductible IRA", ci.Amount.StringFixed(0))
}

func (ci *ContributeIRA) Validate(base *domain.Scenario) error {
	if err := requireBase(ci.Name(), base); err != nil {
		return err
	}
	if !ci.Amount.IsPositive() {
		return NewTransformError(ci.Name(), "validate", fmt.Sprintf("amount must be positive, got %s", ci.Amount), nil)
	}
	return nil
}

func (ci *ContributeIRA) Apply(base *domain.Scenario) (*domain.Scenario, error) {
	modified := base.DeepCopy()
	adv := modified.EnsureAdvanced()
	adv.IRAContributions = adv.IRAContributions.Add(ci.Amount)
	return modified, nil
}

// SetIRAContribution sets the total deductible IRA contribution. Used to top
// a scenario up to the annual limit without stacking on what it already has.
type SetIRAContribution struct {
	Amount decimal.Decimal
}

func (si *SetIRAContribution) Name() string { return "set_ira" }

func (si *SetIRAContribution) Description() string {
	return fmt.Sprintf("Contribute $%s in total to a deductible IRA", si.Amount.StringFixed(0))
}

func (si *SetIRAContribution) Validate(base *domain.Scenario) error {
	if err := requireBase(si.Name(), base); err != nil {
		return err
	}
	if si.Amount.IsNegative() {
		return NewTransformError(si.Name(), "validate", "amount must be non-negative", nil)
	}
	return nil
}

func (si *SetIRAContribution) Apply(base *domain.Scenario) (*domain.Scenario, error) {
	modified := base.DeepCopy()
	modified.EnsureAdvanced().IRAContributions = si.Amount
	return modified, nil
}

// SetHomeOffice sets the square footage used for the simplified home office deduction
type SetHomeOffice struct {
	SquareFeet decimal.Decimal
}

func (sh *SetHomeOffice) Name() string { return "set_home_office" }

func (sh *SetHomeOffice) Description() string {
	return fmt.Sprintf("Claim a %s sq ft home office", sh.SquareFeet.StringFixed(0))
}

func (sh *SetHomeOffice) Validate(base *domain.Scenario) error {
	if err := requireBase(sh.Name(), base); err != nil {
		return err
	}
	if sh.SquareFeet.IsNegative() {
		return NewTransformError(sh.Name(), "validate", "square feet must be non-negative", nil)
	}
	return nil
}

func (sh *SetHomeOffice) Apply(base *domain.Scenario) (*domain.Scenario, error) {
	modified := base.DeepCopy()
	modified.EnsureAdvanced().HomeOfficeSquareFeet = sh.SquareFeet
	return modified, nil
}

// AddMortgageInterest adds itemizable mortgage interest
type AddMortgageInterest struct {
	Amount decimal.Decimal
}

func (am *AddMortgageInterest) Name() string { return "add_mortgage_interest" }

func (am *AddMortgageInterest) Description() string {
	return fmt.Sprintf("Add $%s of mortgage interest", am.Amount.StringFixed(0))
}

func (am *AddMortgageInterest) Validate(base *domain.Scenario) error {
	if err := requireBase(am.Name(), base); err != nil {
		return err
	}
	if am.Amount.IsNegative() {
		return NewTransformError(am.Name(), "validate", "amount must be non-negative", nil)
	}
	return nil
}

func (am *AddMortgageInterest) Apply(base *domain.Scenario) (*domain.Scenario, error) {
	modified := base.DeepCopy()
	adv := modified.EnsureAdvanced()
	adv.MortgageInterest = adv.MortgageInterest.Add(am.Amount)
	return modified, nil
}

// AddEstimatedPayments records additional quarterly payments
type AddEstimatedPayments struct {
	Amount decimal.Decimal
}

func (ap *AddEstimatedPayments) Name() string { return "add_payments" }

func (ap *AddEstimatedPayments) Description() string {
	return fmt.Sprintf("Make $%s of additional estimated payments", ap.Amount.StringFixed(0))
}

func (ap *AddEstimatedPayments) Validate(base *domain.Scenario) error {
	if err := requireBase(ap.Name(), base); err != nil {
		return err
	}
	if ap.Amount.IsNegative() {
		return NewTransformError(ap.Name(), "validate", "amount must be non-negative", nil)
	}
	return nil
}

func (ap *AddEstimatedPayments) Apply(base *domain.Scenario) (*domain.Scenario, error) {
	modified := base.DeepCopy()
	adv := modified.EnsureAdvanced()
	adv.QuarterlyPaymentsMade = adv.QuarterlyPaymentsMade.Add(ap.Amount)
	return modified, nil
}
