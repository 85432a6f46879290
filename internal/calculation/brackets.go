package calculation

import (
	"github.com/rgehrsitz/setax/internal/domain"
	"github.com/shopspring/decimal"
)

// FederalTaxResult is the output of the bracket engine
type FederalTaxResult struct {
	Total     decimal.Decimal
	Breakdown []domain.BracketSlice
}

// ComputeFederalTax applies the marginal brackets for status to taxableIncome.
//
// Each bracket taxes max(0, min(income, max) - min). Brackets that contribute
// nothing are left out of the breakdown, and iteration stops at the first
// bracket whose floor is at or above the income. Callers are expected to pass
// a non-negative income; a negative value is treated as zero.
func ComputeFederalTax(taxableIncome decimal.Decimal, status domain.FilingStatus, brackets map[domain.FilingStatus][]domain.TaxBracket) FederalTaxResult {
	income := domain.NonNegative(taxableIncome)
	table, ok := brackets[status]
	if !ok {
		table = brackets[domain.FilingStatusSingle]
	}

	result := FederalTaxResult{Total: decimal.Zero, Breakdown: []domain.BracketSlice{}}
	for _, bracket := range table {
		if income.LessThanOrEqual(bracket.Min) {
			break
		}
		top := income
		var ceiling *decimal.Decimal
		if upper, bounded := bracket.Upper(); bounded {
			top = decimal.Min(income, upper)
			ceiling = &upper
		}
		slice := top.Sub(bracket.Min)
		if !slice.IsPositive() {
			continue
		}
		tax := slice.Mul(bracket.Rate)
		result.Total = result.Total.Add(tax)
		result.Breakdown = append(result.Breakdown, domain.BracketSlice{
			Min:            bracket.Min,
			Max:            ceiling,
			Rate:           bracket.Rate,
			TaxFromBracket: tax,
		})
	}
	return result
}

// MarginalRate returns the rate of the bracket containing taxableIncome
func MarginalRate(taxableIncome decimal.Decimal, status domain.FilingStatus, brackets map[domain.FilingStatus][]domain.TaxBracket) decimal.Decimal {
	table, ok := brackets[status]
	if !ok {
		table = brackets[domain.FilingStatusSingle]
	}
	rate := decimal.Zero
	for _, bracket := range table {
		if taxableIncome.LessThan(bracket.Min) {
			break
		}
		rate = bracket.Rate
	}
	return rate
}
