package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TaxBracket represents one federal income tax bracket. A nil Max marks the
// open-ended top bracket.
type TaxBracket struct {
	Min  decimal.Decimal  `yaml:"min" json:"min"`
	Max  *decimal.Decimal `yaml:"max,omitempty" json:"max"`
	Rate decimal.Decimal  `yaml:"rate" json:"rate"`
}

// Upper returns the bracket ceiling and whether one exists
func (b TaxBracket) Upper() (decimal.Decimal, bool) {
	if b.Max == nil {
		return decimal.Zero, false
	}
	return *b.Max, true
}

// SelfEmploymentRules holds the SECA parameters
type SelfEmploymentRules struct {
	Rate               decimal.Decimal `yaml:"rate" json:"rate"`
	SocialSecurityRate decimal.Decimal `yaml:"social_security_rate" json:"socialSecurityRate"`
	MedicareRate       decimal.Decimal `yaml:"medicare_rate" json:"medicareRate"`
	// NetEarningsFactor is the 92.35% multiplier applied to net profit
	NetEarningsFactor decimal.Decimal `yaml:"net_earnings_factor" json:"netEarningsFactor"`
	// FilingThreshold is the net earnings below which no SE tax is owed
	FilingThreshold decimal.Decimal `yaml:"filing_threshold" json:"filingThreshold"`
}

// HomeOfficeRules describes the simplified home office method
type HomeOfficeRules struct {
	RatePerSquareFoot decimal.Decimal `yaml:"rate_per_square_foot" json:"ratePerSquareFoot"`
	MaxSquareFeet     decimal.Decimal `yaml:"max_square_feet" json:"maxSquareFeet"`
}

// CreditRules contains the nonrefundable credit amounts
type CreditRules struct {
	ChildTaxCredit       decimal.Decimal `yaml:"child_tax_credit" json:"childTaxCredit"`
	OtherDependentCredit decimal.Decimal `yaml:"other_dependent_credit" json:"otherDependentCredit"`
	// ChildTaxCreditPhaseOut is the AGI above which the child and dependent
	// credits shrink by PhaseOutReduction per PhaseOutStep of excess.
	ChildTaxCreditPhaseOut     map[FilingStatus]decimal.Decimal `yaml:"child_tax_credit_phase_out" json:"childTaxCreditPhaseOut"`
	PhaseOutStep               decimal.Decimal                  `yaml:"phase_out_step" json:"phaseOutStep"`
	PhaseOutReduction          decimal.Decimal                  `yaml:"phase_out_reduction" json:"phaseOutReduction"`
	EducationCreditRate        decimal.Decimal                  `yaml:"education_credit_rate" json:"educationCreditRate"`
	EducationCreditMaxExpenses decimal.Decimal                  `yaml:"education_credit_max_expenses" json:"educationCreditMaxExpenses"`
}

// DeductionRange is the display-only heuristic band of likely deductions
// expressed as fractions of gross income
type DeductionRange struct {
	Min decimal.Decimal `yaml:"min" json:"min"`
	Max decimal.Decimal `yaml:"max" json:"max"`
}

// TaxYearConstants contains every year-specific number the engine uses.
// The calculation functions take it as a parameter and never hardcode a year.
type TaxYearConstants struct {
	Year int `yaml:"year" json:"year"`

	Brackets          map[FilingStatus][]TaxBracket    `yaml:"brackets" json:"brackets"`
	StandardDeduction map[FilingStatus]decimal.Decimal `yaml:"standard_deduction" json:"standardDeduction"`

	SelfEmployment              SelfEmploymentRules              `yaml:"self_employment" json:"selfEmployment"`
	SocialSecurityWageBase      decimal.Decimal                  `yaml:"social_security_wage_base" json:"socialSecurityWageBase"`
	AdditionalMedicareRate      decimal.Decimal                  `yaml:"additional_medicare_rate" json:"additionalMedicareRate"`
	AdditionalMedicareThreshold map[FilingStatus]decimal.Decimal `yaml:"additional_medicare_threshold" json:"additionalMedicareThreshold"`

	MileageRate       decimal.Decimal `yaml:"mileage_rate" json:"mileageRate"`
	QuarterlyDueDates []time.Time     `yaml:"quarterly_due_dates" json:"quarterlyDueDates"`
	UnderpaymentRate  decimal.Decimal `yaml:"underpayment_rate" json:"underpaymentRate"`

	HomeOffice              HomeOfficeRules `yaml:"home_office" json:"homeOffice"`
	Credits                 CreditRules     `yaml:"credits" json:"credits"`
	SALTCap                 decimal.Decimal `yaml:"salt_cap" json:"saltCap"`
	IRAContributionLimit    decimal.Decimal `yaml:"ira_contribution_limit" json:"iraContributionLimit"`
	PotentialDeductionRange DeductionRange  `yaml:"potential_deduction_range" json:"potentialDeductionRange"`
}

// BracketsFor returns the bracket table for a status, falling back to single
func (c TaxYearConstants) BracketsFor(status FilingStatus) []TaxBracket {
	if b, ok := c.Brackets[status]; ok {
		return b
	}
	return c.Brackets[FilingStatusSingle]
}

// StandardDeductionFor returns the standard deduction for a status
func (c TaxYearConstants) StandardDeductionFor(status FilingStatus) decimal.Decimal {
	if d, ok := c.StandardDeduction[status]; ok {
		return d
	}
	return c.StandardDeduction[FilingStatusSingle]
}

// AdditionalMedicareThresholdFor returns the surtax threshold for a status
func (c TaxYearConstants) AdditionalMedicareThresholdFor(status FilingStatus) decimal.Decimal {
	if t, ok := c.AdditionalMedicareThreshold[status]; ok {
		return t
	}
	return c.AdditionalMedicareThreshold[FilingStatusSingle]
}
