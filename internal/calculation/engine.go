package calculation

import (
	"strings"

	"github.com/rgehrsitz/setax/internal/domain"
	"github.com/shopspring/decimal"
)

var four = decimal.NewFromInt(4)

// Calculator composes the bracket, self-employment and deduction engines for
// one tax year. It holds only read-only data and is safe for concurrent use.
type Calculator struct {
	Constants domain.TaxYearConstants
	States    domain.StateRateTable
	Logger    Logger
}

// NewCalculator creates a calculator for the given year's constants and state table
func NewCalculator(constants domain.TaxYearConstants, states domain.StateRateTable) *Calculator {
	return &Calculator{
		Constants: constants,
		States:    states,
		Logger:    NopLogger{},
	}
}

// SetLogger sets the logger; nil restores the no-op logger
func (c *Calculator) SetLogger(l Logger) {
	if l == nil {
		c.Logger = NopLogger{}
		return
	}
	c.Logger = l
}

// CalculateTax is a convenience wrapper around Calculator.CalculateTax
func CalculateTax(in domain.TaxInputs, constants domain.TaxYearConstants, states domain.StateRateTable) domain.TaxResult {
	return NewCalculator(constants, states).CalculateTax(in)
}

// CalculateTax turns one set of inputs into a complete TaxResult.
//
// Inputs are normalized first (negative amounts become zero). A gross income
// of zero short-circuits to an all-zero result. The step order matters: the
// SE tax deduction feeds AGI, AGI feeds the deduction and credit resolver, and
// taxable income feeds both the bracket engine and the state tax.
func (c *Calculator) CalculateTax(raw domain.TaxInputs) domain.TaxResult {
	log := c.logger()
	k := c.Constants
	in := raw.Normalize()
	adv := *in.Advanced
	status := in.FilingStatus
	stateCode := strings.ToUpper(strings.TrimSpace(in.StateCode))

	result := domain.TaxResult{
		TaxYear:                 k.Year,
		FilingStatus:            status,
		StateCode:               stateCode,
		DeductionUsed:           domain.DeductionStandard,
		FederalBracketBreakdown: []domain.BracketSlice{},
		StateTaxIncluded:        true,
	}
	if !in.GrossIncome.IsPositive() {
		log.Debugf("gross income is zero; returning empty result")
		return result
	}

	// 1. Net business income, with business mileage treated as an expense
	mileage := adv.WorkMileage.Mul(k.MileageRate)
	net := domain.NonNegative(in.GrossIncome.Sub(in.BusinessExpenses).Sub(mileage))

	// 2. SE tax; the surtax base is all earned income
	taxableEarnings := TaxableSelfEmploymentEarnings(net, k)
	se := ComputeSelfEmploymentTax(net, adv.W2Income.Add(taxableEarnings), status, k)

	// 3. AGI
	health := decimal.Zero
	if net.IsPositive() {
		health = decimal.Min(adv.HealthInsurancePremiums, domain.NonNegative(net.Sub(se.SETaxDeduction)))
	}
	agi := net.Sub(se.SETaxDeduction).Sub(adv.IRAContributions).Sub(health).Add(adv.W2Income)
	agi = domain.NonNegative(agi)

	// 4-5. Deductions and taxable income
	ded := ResolveDeductions(in, agi, k)
	taxable := domain.NonNegative(agi.Sub(ded.DeductionUsed))
	log.Debugf("agi=%s deduction=%s (%s) taxable=%s", agi.StringFixed(2), ded.DeductionUsed.StringFixed(2), ded.DeductionType, taxable.StringFixed(2))

	// 6. Federal income tax
	fed := ComputeFederalTax(taxable, status, k.Brackets)

	// 7. Flat state tax
	stateRate := decimal.Zero
	if sr, ok := c.States.Lookup(stateCode); ok {
		stateRate = sr.Rate
	} else if stateCode != "" {
		log.Warnf("unknown state code %q; assuming no state income tax", stateCode)
	}

	result.GrossIncome = in.GrossIncome
	result.BusinessExpenses = in.BusinessExpenses
	result.MileageDeduction = mileage
	result.NetBusinessIncome = net
	result.AdjustedGrossIncome = agi
	result.StandardDeduction = ded.StandardDeduction
	result.ItemizedDeductions = ded.ItemizedDeductions
	result.DeductionUsed = ded.DeductionType
	result.TaxableIncome = taxable
	result.SelfEmploymentTax = se.TotalSETax
	result.SETaxDeduction = se.SETaxDeduction
	result.SelfEmployment = se
	result.FederalIncomeTax = fed.Total
	result.FederalBracketBreakdown = fed.Breakdown
	result.StateRate = stateRate
	result.StateTax = taxable.Mul(stateRate)
	result.Credits = ded.Credits
	result.PaymentsAndWithholding = adv.QuarterlyPaymentsMade.Add(adv.W2TaxesWithheld)
	result.PotentialDeductions = ded.PotentialDeductions

	// 8-12. Totals
	applyTotals(&result)
	return result
}

// WithStateTax returns a new result with state tax included or excluded from
// the totals. r is not modified; StateTax itself is kept so the toggle can be
// reversed.
func WithStateTax(r domain.TaxResult, included bool) domain.TaxResult {
	out := r.Clone()
	out.StateTaxIncluded = included
	if out.GrossIncome.IsPositive() {
		applyTotals(&out)
	}
	return out
}

// applyTotals derives the credit limit, total tax, balance due, effective
// rate and quarterly payment from the component taxes already on r.
func applyTotals(r *domain.TaxResult) {
	before := r.FederalIncomeTax.Add(r.SelfEmploymentTax)
	if r.StateTaxIncluded {
		before = before.Add(r.StateTax)
	}

	// Credits are nonrefundable
	r.Credits.TotalCredits = decimal.Min(r.Credits.AvailableCredits, before)
	r.TotalTax = domain.NonNegative(before.Sub(r.Credits.TotalCredits))

	r.TaxOwedOrRefund = r.TotalTax.Sub(r.PaymentsAndWithholding)
	r.EffectiveRate = decimal.Zero
	if r.TaxableIncome.IsPositive() {
		r.EffectiveRate = r.TotalTax.Div(r.TaxableIncome)
	}
	r.QuarterlyPayment = r.TotalTax.Div(four)
}

func (c *Calculator) logger() Logger {
	if c.Logger == nil {
		return NopLogger{}
	}
	return c.Logger
}
