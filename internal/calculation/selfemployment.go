package calculation

import (
	"github.com/rgehrsitz/setax/internal/domain"
	"github.com/shopspring/decimal"
)

var half = decimal.NewFromFloat(0.5)

// TaxableSelfEmploymentEarnings applies the net earnings factor (92.35%) to
// net profit, returning zero below the filing threshold.
func TaxableSelfEmploymentEarnings(netEarnings decimal.Decimal, c domain.TaxYearConstants) decimal.Decimal {
	if netEarnings.LessThan(c.SelfEmployment.FilingThreshold) {
		return decimal.Zero
	}
	return netEarnings.Mul(c.SelfEmployment.NetEarningsFactor)
}

// ComputeSelfEmploymentTax calculates SECA tax on net business earnings.
//
// combinedWagesForSurtax is the earned-income base for the additional
// Medicare tax: W-2 wages plus taxable SE earnings, so the surtax is applied
// once across all earned income. Half of the total is returned as the
// above-the-line deduction; it never reduces the SE tax itself.
func ComputeSelfEmploymentTax(netEarnings, combinedWagesForSurtax decimal.Decimal, status domain.FilingStatus, c domain.TaxYearConstants) domain.SelfEmploymentTax {
	if netEarnings.LessThan(c.SelfEmployment.FilingThreshold) {
		return domain.SelfEmploymentTax{}
	}

	taxable := netEarnings.Mul(c.SelfEmployment.NetEarningsFactor)

	// Social Security (capped at the wage base)
	ssBase := decimal.Min(taxable, c.SocialSecurityWageBase)
	ss := ssBase.Mul(c.SelfEmployment.SocialSecurityRate)

	// Medicare (no cap)
	medicare := taxable.Mul(c.SelfEmployment.MedicareRate)

	addl := decimal.Zero
	threshold := c.AdditionalMedicareThresholdFor(status)
	if combinedWagesForSurtax.GreaterThan(threshold) {
		addl = combinedWagesForSurtax.Sub(threshold).Mul(c.AdditionalMedicareRate)
	}

	total := ss.Add(medicare).Add(addl)
	return domain.SelfEmploymentTax{
		TaxableEarnings:       taxable,
		SocialSecurityTax:     ss,
		MedicareTax:           medicare,
		AdditionalMedicareTax: addl,
		TotalSETax:            total,
		SETaxDeduction:        total.Mul(half),
	}
}
