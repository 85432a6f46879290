package calculation

import (
	"fmt"

	"github.com/rgehrsitz/setax/internal/domain"
	"github.com/shopspring/decimal"
)

// Qualified principal residence indebtedness caps
var (
	PrincipalResidenceCapJoint  = decimal.NewFromInt(750000)
	PrincipalResidenceCapSingle = decimal.NewFromInt(375000)
)

// SumLineItems totals the values of items, ignoring negative entries
func SumLineItems(items []domain.LineItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(domain.NonNegative(item.Value))
	}
	return total
}

// ResolveDebtCancellation determines how much canceled debt can be excluded
// from income and the tax effect of what remains.
//
// Bankruptcy, farm debt, qualified real property business debt and student
// loans exclude the full amount. Principal residence debt is capped by filing
// status. With no category, the insolvency exclusion is limited to the amount
// by which liabilities exceed assets.
func ResolveDebtCancellation(in domain.DebtCancellationInputs) domain.DebtCancellationResult {
	canceled := domain.NonNegative(in.CanceledDebtAmount)
	rate := domain.NonNegative(in.TaxBracketRate)

	assets := SumLineItems(in.Assets)
	liabilities := SumLineItems(in.Liabilities)
	insolvency := domain.NonNegative(liabilities.Sub(assets))
	insolvent := liabilities.GreaterThan(assets)

	var exclusion decimal.Decimal
	var reason string
	switch in.ExclusionType {
	case domain.ExclusionBankruptcy:
		exclusion = canceled
		reason = "Debt discharged in a Title 11 bankruptcy case is fully excluded."
	case domain.ExclusionPrincipalResidence:
		limit := PrincipalResidenceCapSingle
		if in.FilingStatus.IsMarried() {
			limit = PrincipalResidenceCapJoint
		}
		exclusion = decimal.Min(canceled, limit)
		reason = fmt.Sprintf("Qualified principal residence indebtedness is excluded up to $%s.", limit.StringFixed(0))
	case domain.ExclusionFarmDebt:
		exclusion = canceled
		reason = "Qualified farm indebtedness is excluded."
	case domain.ExclusionBusinessRealProperty:
		exclusion = canceled
		reason = "Qualified real property business indebtedness is excluded."
	case domain.ExclusionStudentLoan:
		exclusion = canceled
		reason = "Qualifying student loan discharge is excluded."
	case domain.ExclusionNone:
		if insolvent {
			exclusion = decimal.Min(canceled, insolvency)
			reason = fmt.Sprintf("Insolvent by $%s immediately before cancellation; excluded up to the insolvency amount.", insolvency.StringFixed(2))
		} else {
			exclusion = decimal.Zero
			reason = "Not insolvent and no exclusion applies; the canceled debt is taxable."
		}
	default:
		exclusion = decimal.Zero
		reason = fmt.Sprintf("Unrecognized exclusion %s; no exclusion applied.", in.ExclusionType)
	}

	taxable := domain.NonNegative(canceled.Sub(exclusion))
	return domain.DebtCancellationResult{
		TotalAssets:      assets,
		TotalLiabilities: liabilities,
		InsolvencyAmount: insolvency,
		IsInsolvent:      insolvent,
		ExclusionType:    in.ExclusionType,
		ExclusionAmount:  exclusion,
		ExclusionReason:  reason,
		TaxableAmount:    taxable,
		EstimatedTax:     taxable.Mul(rate),
		TaxSavings:       exclusion.Mul(rate),
	}
}
