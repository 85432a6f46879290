package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/rgehrsitz/setax/internal/domain"
	"gopkg.in/yaml.v3"
)

// FormatValue renders any worksheet result as json or yaml
func FormatValue(format string, v any) ([]byte, error) {
	switch strings.ToLower(format) {
	case "json":
		return MarshalJSON(v)
	case "yaml", "yml":
		return yaml.Marshal(v)
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

// FormatDebtCancellation renders the canceled-debt worksheet
func FormatDebtCancellation(in domain.DebtCancellationInputs, r domain.DebtCancellationResult) []byte {
	var buf bytes.Buffer

	fmt.Fprintln(&buf, headingStyle.Render("CANCELED DEBT (FORM 1099-C)"))
	fmt.Fprintln(&buf, strings.Repeat("=", ruleWidth))
	writeLine(&buf, "Canceled Debt", FormatCurrency(in.CanceledDebtAmount))
	writeLine(&buf, "Exclusion Claimed", r.ExclusionType.String())
	fmt.Fprintln(&buf)

	if len(in.Assets) > 0 || len(in.Liabilities) > 0 {
		fmt.Fprintln(&buf, "INSOLVENCY WORKSHEET:")
		for _, a := range in.Assets {
			writeLine(&buf, "  + "+a.Label, FormatCurrency(a.Value))
		}
		for _, l := range in.Liabilities {
			writeLine(&buf, "  - "+l.Label, FormatCurrency(l.Value))
		}
		writeLine(&buf, "Total Assets", FormatCurrency(r.TotalAssets))
		writeLine(&buf, "Total Liabilities", FormatCurrency(r.TotalLiabilities))
		writeLine(&buf, "Insolvency Amount", FormatCurrency(r.InsolvencyAmount))
		writeLine(&buf, "Insolvent", fmt.Sprintf("%t", r.IsInsolvent))
		fmt.Fprintln(&buf)
	}

	fmt.Fprintln(&buf, "RESULT:")
	writeLine(&buf, "Excluded", FormatCurrency(r.ExclusionAmount))
	writeLine(&buf, "Taxable", FormatCurrency(r.TaxableAmount))
	writeLine(&buf, "Estimated Tax", FormatCurrency(r.EstimatedTax))
	writeLine(&buf, "Tax Savings", FormatCurrency(r.TaxSavings))
	fmt.Fprintln(&buf)
	fmt.Fprintln(&buf, r.ExclusionReason)
	return buf.Bytes()
}

// FormatSafeHarbor renders the safe harbor test
func FormatSafeHarbor(r domain.SafeHarborResult) []byte {
	var buf bytes.Buffer

	fmt.Fprintln(&buf, headingStyle.Render("UNDERPAYMENT SAFE HARBOR"))
	fmt.Fprintln(&buf, strings.Repeat("=", ruleWidth))
	writeLine(&buf, "Current-Year Target", FormatCurrency(r.CurrentYearTarget))
	if r.PriorYearTarget.IsPositive() {
		writeLine(&buf, "Prior-Year Target", FormatCurrency(r.PriorYearTarget))
	}
	writeLine(&buf, "Required Annual", FormatCurrency(r.RequiredAnnual))
	writeLine(&buf, "Balance Due", FormatCurrency(r.BalanceDue))
	fmt.Fprintln(&buf)
	status := "NOT MET"
	if r.Exempt {
		status = "MET"
	}
	fmt.Fprintf(&buf, "Safe harbor %s: %s\n", status, r.Rule)
	return buf.Bytes()
}

// FormatPenaltySchedule renders the per-installment penalty table
func FormatPenaltySchedule(s domain.PenaltySchedule) []byte {
	var buf bytes.Buffer

	fmt.Fprintln(&buf, headingStyle.Render("ESTIMATED TAX PENALTY"))
	fmt.Fprintln(&buf, strings.Repeat("=", ruleWidth))
	fmt.Fprintf(&buf, "Annual rate: %s\n\n", FormatRate(s.AnnualRate))
	fmt.Fprintf(&buf, "%-3s %-10s %12s %12s %12s %5s %10s\n", "Q", "Due", "Required", "Paid", "Underpaid", "Days", "Penalty")
	for _, q := range s.Quarters {
		fmt.Fprintf(&buf, "%-3d %-10s %12s %12s %12s %5d %10s\n",
			q.Quarter,
			q.DueDate.Format("2006-01-02"),
			FormatCurrency(q.Required),
			FormatCurrency(q.Paid),
			FormatCurrency(q.Underpaid),
			q.DaysLate,
			FormatCurrency(q.Penalty))
	}
	fmt.Fprintln(&buf)
	writeLine(&buf, "Total Penalty", FormatCurrency(s.TotalPenalty))
	return buf.Bytes()
}
