package domain

import (
	"github.com/shopspring/decimal"
)

// AdvancedInputs holds the optional details a filer can supply.
// Zero values mean "not provided".
type AdvancedInputs struct {
	W2Income                decimal.Decimal `yaml:"w2_income" json:"w2Income"`
	WorkMileage             decimal.Decimal `yaml:"work_mileage" json:"workMileage"`
	MortgageInterest        decimal.Decimal `yaml:"mortgage_interest" json:"mortgageInterest"`
	StudentTuition          decimal.Decimal `yaml:"student_tuition" json:"studentTuition"`
	IRAContributions        decimal.Decimal `yaml:"ira_contributions" json:"iraContributions"`
	QuarterlyPaymentsMade   decimal.Decimal `yaml:"quarterly_payments_made" json:"quarterlyPaymentsMade"`
	W2TaxesWithheld         decimal.Decimal `yaml:"w2_taxes_withheld" json:"w2TaxesWithheld"`
	DependentsUnder17       int             `yaml:"dependents_under_17" json:"dependentsUnder17"`
	DependentsOver17        int             `yaml:"dependents_over_17" json:"dependentsOver17"`
	HealthInsurancePremiums decimal.Decimal `yaml:"health_insurance_premiums" json:"healthInsurancePremiums"`
	HomeOfficeSquareFeet    decimal.Decimal `yaml:"home_office_square_feet" json:"homeOfficeSquareFeet"`
	StateTaxesWithheld      decimal.Decimal `yaml:"state_taxes_withheld" json:"stateTaxesWithheld"`
}

// TaxInputs is the value object a caller assembles for one estimate
type TaxInputs struct {
	GrossIncome      decimal.Decimal `yaml:"gross_income" json:"grossIncome"`
	BusinessExpenses decimal.Decimal `yaml:"business_expenses" json:"businessExpenses"`
	FilingStatus     FilingStatus    `yaml:"filing_status" json:"filingStatus"`
	StateCode        string          `yaml:"state_code" json:"stateCode"`
	Advanced         *AdvancedInputs `yaml:"advanced,omitempty" json:"advanced,omitempty"`
}

// NonNegative clamps d to zero when it is negative
func NonNegative(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

func nonNegativeInt(n int) int {
	if n < 0 {
		return 0
	}
	return n
}

// Normalize returns a copy with every numeric field clamped to >= 0, an
// unknown filing status replaced by single, and Advanced always populated.
// Negative amounts are treated as zero rather than rejected.
func (in TaxInputs) Normalize() TaxInputs {
	out := TaxInputs{
		GrossIncome:      NonNegative(in.GrossIncome),
		BusinessExpenses: NonNegative(in.BusinessExpenses),
		FilingStatus:     in.FilingStatus.OrSingle(),
		StateCode:        in.StateCode,
	}
	adv := AdvancedInputs{}
	if in.Advanced != nil {
		adv = *in.Advanced
	}
	out.Advanced = &AdvancedInputs{
		W2Income:                NonNegative(adv.W2Income),
		WorkMileage:             NonNegative(adv.WorkMileage),
		MortgageInterest:        NonNegative(adv.MortgageInterest),
		StudentTuition:          NonNegative(adv.StudentTuition),
		IRAContributions:        NonNegative(adv.IRAContributions),
		QuarterlyPaymentsMade:   NonNegative(adv.QuarterlyPaymentsMade),
		W2TaxesWithheld:         NonNegative(adv.W2TaxesWithheld),
		DependentsUnder17:       nonNegativeInt(adv.DependentsUnder17),
		DependentsOver17:        nonNegativeInt(adv.DependentsOver17),
		HealthInsurancePremiums: NonNegative(adv.HealthInsurancePremiums),
		HomeOfficeSquareFeet:    NonNegative(adv.HomeOfficeSquareFeet),
		StateTaxesWithheld:      NonNegative(adv.StateTaxesWithheld),
	}
	return out
}

// AdvancedOrZero returns the advanced block, or an empty one when absent
func (in TaxInputs) AdvancedOrZero() AdvancedInputs {
	if in.Advanced == nil {
		return AdvancedInputs{}
	}
	return *in.Advanced
}
