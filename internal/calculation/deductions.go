package calculation

import (
	"github.com/rgehrsitz/setax/internal/domain"
	"github.com/shopspring/decimal"
)

// DeductionResolution is the output of ResolveDeductions
type DeductionResolution struct {
	StandardDeduction   decimal.Decimal
	ItemizedDeductions  decimal.Decimal
	HomeOfficeDeduction decimal.Decimal
	SALTDeduction       decimal.Decimal
	DeductionType       domain.DeductionType
	DeductionUsed       decimal.Decimal
	Credits             domain.Credits
	PotentialDeductions domain.Range
}

// HomeOfficeDeduction uses the simplified method: a flat rate per square
// foot up to the square footage cap.
func HomeOfficeDeduction(squareFeet decimal.Decimal, c domain.TaxYearConstants) decimal.Decimal {
	sqft := decimal.Min(domain.NonNegative(squareFeet), c.HomeOffice.MaxSquareFeet)
	return sqft.Mul(c.HomeOffice.RatePerSquareFoot)
}

// ResolveDeductions picks the larger of the standard and itemized deductions
// and computes the nonrefundable credits before they are limited by tax.
// Ties go to the standard deduction.
func ResolveDeductions(in domain.TaxInputs, agi decimal.Decimal, c domain.TaxYearConstants) DeductionResolution {
	adv := in.AdvancedOrZero()
	status := in.FilingStatus.OrSingle()

	standard := c.StandardDeductionFor(status)
	homeOffice := HomeOfficeDeduction(adv.HomeOfficeSquareFeet, c)
	salt := domain.NonNegative(adv.StateTaxesWithheld)
	if c.SALTCap.IsPositive() {
		salt = decimal.Min(salt, c.SALTCap)
	}
	itemized := domain.NonNegative(adv.MortgageInterest).Add(homeOffice).Add(salt)

	res := DeductionResolution{
		StandardDeduction:   standard,
		ItemizedDeductions:  itemized,
		HomeOfficeDeduction: homeOffice,
		SALTDeduction:       salt,
		DeductionType:       domain.DeductionStandard,
		DeductionUsed:       standard,
		Credits:             ResolveCredits(adv, status, agi, c),
		PotentialDeductions: PotentialDeductions(in.GrossIncome, c),
	}
	if itemized.GreaterThan(standard) {
		res.DeductionType = domain.DeductionItemized
		res.DeductionUsed = itemized
	}
	return res
}

// ResolveCredits computes the child, other-dependent and education credits.
//
// The child and other-dependent credits share one phase-out: they shrink by
// PhaseOutReduction for each PhaseOutStep (or part of one) of AGI above the
// status threshold, child credit first. TotalCredits equals AvailableCredits
// here; the aggregate calculator lowers it to the tax actually owed.
func ResolveCredits(adv domain.AdvancedInputs, status domain.FilingStatus, agi decimal.Decimal, c domain.TaxYearConstants) domain.Credits {
	rules := c.Credits
	ctc := rules.ChildTaxCredit.Mul(decimal.NewFromInt(int64(max(adv.DependentsUnder17, 0))))
	odc := rules.OtherDependentCredit.Mul(decimal.NewFromInt(int64(max(adv.DependentsOver17, 0))))

	phasedOut := false
	if threshold, ok := rules.ChildTaxCreditPhaseOut[status]; ok && rules.PhaseOutStep.IsPositive() && agi.GreaterThan(threshold) {
		steps := agi.Sub(threshold).Div(rules.PhaseOutStep).Ceil()
		reduction := steps.Mul(rules.PhaseOutReduction)
		if reduction.IsPositive() && ctc.Add(odc).IsPositive() {
			phasedOut = true
		}
		fromCTC := decimal.Min(reduction, ctc)
		ctc = ctc.Sub(fromCTC)
		odc = domain.NonNegative(odc.Sub(reduction.Sub(fromCTC)))
	}

	tuition := domain.NonNegative(adv.StudentTuition)
	if rules.EducationCreditMaxExpenses.IsPositive() {
		tuition = decimal.Min(tuition, rules.EducationCreditMaxExpenses)
	}
	education := tuition.Mul(rules.EducationCreditRate)

	available := ctc.Add(odc).Add(education)
	return domain.Credits{
		ChildTaxCredit:          ctc,
		OtherDependentCredit:    odc,
		EducationCredit:         education,
		AvailableCredits:        available,
		TotalCredits:            available,
		ChildTaxCreditPhasedOut: phasedOut,
	}
}

// PotentialDeductions is a display heuristic and never feeds the tax math
func PotentialDeductions(grossIncome decimal.Decimal, c domain.TaxYearConstants) domain.Range {
	gross := domain.NonNegative(grossIncome)
	return domain.Range{
		Min: gross.Mul(c.PotentialDeductionRange.Min),
		Max: gross.Mul(c.PotentialDeductionRange.Max),
	}
}
