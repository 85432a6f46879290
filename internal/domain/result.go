package domain

import (
	"github.com/shopspring/decimal"
)

// DeductionType tags which deduction was applied
type DeductionType string

const (
	DeductionStandard DeductionType = "standard"
	DeductionItemized DeductionType = "itemized"
)

// BracketSlice is one line of the federal bracket breakdown. Max is nil for
// the open-ended top bracket.
type BracketSlice struct {
	Min            decimal.Decimal  `yaml:"min" json:"min"`
	Max            *decimal.Decimal `yaml:"max,omitempty" json:"max"`
	Rate           decimal.Decimal  `yaml:"rate" json:"rate"`
	TaxFromBracket decimal.Decimal  `yaml:"tax_from_bracket" json:"taxFromBracket"`
}

// Credits summarizes nonrefundable credits. TotalCredits is the amount
// actually applied, which never exceeds the tax it offsets.
type Credits struct {
	ChildTaxCredit          decimal.Decimal `yaml:"child_tax_credit" json:"childTaxCredit"`
	OtherDependentCredit    decimal.Decimal `yaml:"other_dependent_credit" json:"otherDependentCredit"`
	EducationCredit         decimal.Decimal `yaml:"education_credit" json:"educationCredit"`
	AvailableCredits        decimal.Decimal `yaml:"available_credits" json:"availableCredits"`
	TotalCredits            decimal.Decimal `yaml:"total_credits" json:"totalCredits"`
	ChildTaxCreditPhasedOut bool            `yaml:"child_tax_credit_phased_out" json:"childTaxCreditPhasedOut"`
}

// Range is a display-only min/max pair
type Range struct {
	Min decimal.Decimal `yaml:"min" json:"min"`
	Max decimal.Decimal `yaml:"max" json:"max"`
}

// SelfEmploymentTax is the full SECA computation
type SelfEmploymentTax struct {
	TaxableEarnings       decimal.Decimal `yaml:"taxable_earnings" json:"taxableEarnings"`
	SocialSecurityTax     decimal.Decimal `yaml:"social_security_tax" json:"socialSecurityTax"`
	MedicareTax           decimal.Decimal `yaml:"medicare_tax" json:"medicareTax"`
	AdditionalMedicareTax decimal.Decimal `yaml:"additional_medicare_tax" json:"additionalMedicareTax"`
	TotalSETax            decimal.Decimal `yaml:"total_se_tax" json:"totalSETax"`
	SETaxDeduction        decimal.Decimal `yaml:"se_tax_deduction" json:"seTaxDeduction"`
}

// TaxResult is produced once per input set and never modified afterwards.
// Field names are relied upon by report exports.
type TaxResult struct {
	TaxYear      int          `yaml:"tax_year" json:"taxYear"`
	FilingStatus FilingStatus `yaml:"filing_status" json:"filingStatus"`
	StateCode    string       `yaml:"state_code" json:"stateCode"`

	GrossIncome         decimal.Decimal `yaml:"gross_income" json:"grossIncome"`
	BusinessExpenses    decimal.Decimal `yaml:"business_expenses" json:"businessExpenses"`
	MileageDeduction    decimal.Decimal `yaml:"mileage_deduction" json:"mileageDeduction"`
	NetBusinessIncome   decimal.Decimal `yaml:"net_business_income" json:"netBusinessIncome"`
	AdjustedGrossIncome decimal.Decimal `yaml:"adjusted_gross_income" json:"adjustedGrossIncome"`

	StandardDeduction  decimal.Decimal `yaml:"standard_deduction" json:"standardDeduction"`
	ItemizedDeductions decimal.Decimal `yaml:"itemized_deductions" json:"itemizedDeductions"`
	DeductionUsed      DeductionType   `yaml:"deduction_used" json:"deductionUsed"`
	TaxableIncome      decimal.Decimal `yaml:"taxable_income" json:"taxableIncome"`

	SelfEmploymentTax decimal.Decimal   `yaml:"self_employment_tax" json:"selfEmploymentTax"`
	SETaxDeduction    decimal.Decimal   `yaml:"se_tax_deduction" json:"seTaxDeduction"`
	SelfEmployment    SelfEmploymentTax `yaml:"self_employment" json:"selfEmployment"`

	FederalIncomeTax        decimal.Decimal `yaml:"federal_income_tax" json:"federalIncomeTax"`
	FederalBracketBreakdown []BracketSlice  `yaml:"federal_bracket_breakdown" json:"federalBracketBreakdown"`

	StateRate        decimal.Decimal `yaml:"state_rate" json:"stateRate"`
	StateTax         decimal.Decimal `yaml:"state_tax" json:"stateTax"`
	StateTaxIncluded bool            `yaml:"state_tax_included" json:"stateTaxIncluded"`

	Credits Credits `yaml:"credits" json:"credits"`

	TotalTax               decimal.Decimal `yaml:"total_tax" json:"totalTax"`
	PaymentsAndWithholding decimal.Decimal `yaml:"payments_and_withholding" json:"paymentsAndWithholding"`
	// TaxOwedOrRefund is negative when a refund is due
	TaxOwedOrRefund decimal.Decimal `yaml:"tax_owed_or_refund" json:"taxOwedOrRefund"`
	EffectiveRate   decimal.Decimal `yaml:"effective_rate" json:"effectiveRate"`
	// QuarterlyPayment is an even quarter of TotalTax. It ignores payments
	// already made; see RemainingQuarterlyPayment.
	QuarterlyPayment decimal.Decimal `yaml:"quarterly_payment" json:"quarterlyPayment"`

	// PotentialDeductions is a suggestion band only and is not part of the tax math
	PotentialDeductions Range `yaml:"potential_deductions" json:"potentialDeductions"`
}

// DeductionAmount returns the deduction actually subtracted from AGI
func (r TaxResult) DeductionAmount() decimal.Decimal {
	if r.DeductionUsed == DeductionItemized {
		return r.ItemizedDeductions
	}
	return r.StandardDeduction
}

// IsRefund reports whether payments exceed the total tax
func (r TaxResult) IsRefund() bool {
	return r.TaxOwedOrRefund.IsNegative()
}

// RemainingQuarterlyPayment is the per-quarter amount still owed once
// payments and withholding are spread evenly, floored at zero.
func (r TaxResult) RemainingQuarterlyPayment() decimal.Decimal {
	return NonNegative(r.TaxOwedOrRefund).Div(decimal.NewFromInt(4))
}

// Clone returns a deep copy so callers can derive a new result safely
func (r TaxResult) Clone() TaxResult {
	out := r
	if r.FederalBracketBreakdown != nil {
		out.FederalBracketBreakdown = make([]BracketSlice, len(r.FederalBracketBreakdown))
		copy(out.FederalBracketBreakdown, r.FederalBracketBreakdown)
		for i, b := range r.FederalBracketBreakdown {
			if b.Max != nil {
				ceiling := *b.Max
				out.FederalBracketBreakdown[i].Max = &ceiling
			}
		}
	}
	return out
}
