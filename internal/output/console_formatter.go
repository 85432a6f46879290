package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/setax/internal/domain"
)

var (
	headingStyle = lipgloss.NewStyle().Bold(true)
	ruleWidth    = 64
)

// ConsoleFormatter renders the full worksheet for every scenario
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) Format(report *EstimateReport) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintln(&buf, strings.Repeat("=", ruleWidth))
	fmt.Fprintln(&buf, headingStyle.Render(fmt.Sprintf("SELF-EMPLOYMENT TAX ESTIMATE (%d)", report.TaxYear)))
	fmt.Fprintln(&buf, strings.Repeat("=", ruleWidth))
	fmt.Fprintln(&buf)

	if len(report.Entries) == 0 {
		fmt.Fprintln(&buf, "No scenarios to report.")
	}
	for i, entry := range report.Entries {
		writeEstimate(&buf, i+1, entry)
	}

	fmt.Fprintln(&buf, "KEY ASSUMPTIONS:")
	assumptions := report.Assumptions
	if len(assumptions) == 0 {
		assumptions = DefaultAssumptions
	}
	for _, a := range assumptions {
		fmt.Fprintf(&buf, "• %s\n", a)
	}
	return buf.Bytes(), nil
}

func writeEstimate(buf *bytes.Buffer, n int, entry EstimateEntry) {
	r := entry.Result

	fmt.Fprintln(buf, headingStyle.Render(fmt.Sprintf("SCENARIO %d: %s", n, entry.Name)))
	fmt.Fprintln(buf, strings.Repeat("-", ruleWidth))
	if entry.Description != "" {
		fmt.Fprintln(buf, entry.Description)
	}
	fmt.Fprintf(buf, "Filing Status: %s    State: %s\n", r.FilingStatus.Label(), stateLabel(r.StateCode))
	fmt.Fprintln(buf)

	fmt.Fprintln(buf, "INCOME:")
	writeLine(buf, "Gross Income", FormatCurrency(r.GrossIncome))
	writeLine(buf, "Business Expenses", FormatCurrency(r.BusinessExpenses))
	if r.MileageDeduction.IsPositive() {
		writeLine(buf, "Mileage Deduction", FormatCurrency(r.MileageDeduction))
	}
	writeLine(buf, "Net Business Income", FormatCurrency(r.NetBusinessIncome))
	writeLine(buf, "Adjusted Gross Income", FormatCurrency(r.AdjustedGrossIncome))
	fmt.Fprintln(buf)

	fmt.Fprintln(buf, "SELF-EMPLOYMENT TAX:")
	writeLine(buf, "Taxable Earnings", FormatCurrency(r.SelfEmployment.TaxableEarnings))
	writeLine(buf, "Social Security", FormatCurrency(r.SelfEmployment.SocialSecurityTax))
	writeLine(buf, "Medicare", FormatCurrency(r.SelfEmployment.MedicareTax))
	if r.SelfEmployment.AdditionalMedicareTax.IsPositive() {
		writeLine(buf, "Additional Medicare", FormatCurrency(r.SelfEmployment.AdditionalMedicareTax))
	}
	writeLine(buf, "Total SE Tax", FormatCurrency(r.SelfEmploymentTax))
	writeLine(buf, "SE Tax Deduction", FormatCurrency(r.SETaxDeduction))
	fmt.Fprintln(buf)

	fmt.Fprintln(buf, "DEDUCTIONS:")
	writeLine(buf, "Standard Deduction", FormatCurrency(r.StandardDeduction))
	writeLine(buf, "Itemized Deductions", FormatCurrency(r.ItemizedDeductions))
	writeLine(buf, "Deduction Used", string(r.DeductionUsed))
	writeLine(buf, "Taxable Income", FormatCurrency(r.TaxableIncome))
	fmt.Fprintln(buf)

	fmt.Fprintln(buf, "FEDERAL BRACKETS:")
	if len(r.FederalBracketBreakdown) == 0 {
		fmt.Fprintln(buf, "  (no taxable income)")
	}
	for _, b := range r.FederalBracketBreakdown {
		upper := "and up"
		if b.Max != nil {
			upper = "to " + FormatCurrency(*b.Max)
		}
		fmt.Fprintf(buf, "  %7s  %s %-16s %s\n", FormatRate(b.Rate), FormatCurrency(b.Min), upper, FormatCurrency(b.TaxFromBracket))
	}
	writeLine(buf, "Federal Income Tax", FormatCurrency(r.FederalIncomeTax))
	fmt.Fprintln(buf)

	fmt.Fprintln(buf, "STATE:")
	writeLine(buf, "State Rate", FormatRate(r.StateRate))
	stateTax := FormatCurrency(r.StateTax)
	if !r.StateTaxIncluded {
		stateTax += " (excluded)"
	}
	writeLine(buf, "State Tax", stateTax)
	fmt.Fprintln(buf)

	fmt.Fprintln(buf, "CREDITS:")
	writeLine(buf, "Child Tax Credit", FormatCurrency(r.Credits.ChildTaxCredit))
	writeLine(buf, "Other Dependent Credit", FormatCurrency(r.Credits.OtherDependentCredit))
	writeLine(buf, "Education Credit", FormatCurrency(r.Credits.EducationCredit))
	writeLine(buf, "Credits Applied", FormatCurrency(r.Credits.TotalCredits))
	if r.Credits.ChildTaxCreditPhasedOut {
		fmt.Fprintln(buf, "  * child credits reduced by the income phase-out")
	}
	fmt.Fprintln(buf)

	fmt.Fprintln(buf, "SUMMARY:")
	writeLine(buf, "TOTAL TAX", FormatCurrency(r.TotalTax))
	writeLine(buf, "Payments & Withholding", FormatCurrency(r.PaymentsAndWithholding))
	if r.IsRefund() {
		writeLine(buf, "Refund", FormatCurrency(r.TaxOwedOrRefund.Neg()))
	} else {
		writeLine(buf, "Balance Due", FormatCurrency(r.TaxOwedOrRefund))
	}
	writeLine(buf, "Effective Rate", FormatRate(r.EffectiveRate))
	writeLine(buf, "Quarterly Payment", FormatCurrency(r.QuarterlyPayment))
	writeLine(buf, "Remaining Per Quarter", FormatCurrency(r.RemainingQuarterlyPayment()))
	writeLine(buf, "Potential Deductions", FormatCurrency(r.PotentialDeductions.Min)+" - "+FormatCurrency(r.PotentialDeductions.Max))
	fmt.Fprintln(buf)
}

func writeLine(buf *bytes.Buffer, label, value string) {
	fmt.Fprintf(buf, "  %-24s %s\n", label+":", value)
}

func stateLabel(code string) string {
	if code == "" {
		return "none"
	}
	return code
}

// ConsoleLiteFormatter prints one summary line per scenario
type ConsoleLiteFormatter struct{}

func (c ConsoleLiteFormatter) Name() string { return "console-lite" }

func (c ConsoleLiteFormatter) Format(report *EstimateReport) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "TAX ESTIMATE SUMMARY (%d)\n", report.TaxYear)
	fmt.Fprintln(&buf, strings.Repeat("=", ruleWidth))
	for _, entry := range report.Entries {
		r := entry.Result
		fmt.Fprintf(&buf, "%-20s total %s  owed %s  effective %s  quarterly %s\n",
			entry.Name,
			FormatCurrency(r.TotalTax),
			FormatCurrency(r.TaxOwedOrRefund),
			FormatRate(r.EffectiveRate),
			FormatCurrency(r.QuarterlyPayment))
	}
	return buf.Bytes(), nil
}

// stateNote is shown by summary outputs when the state tax is toggled off
func stateNote(r domain.TaxResult) string {
	if r.StateTaxIncluded {
		return ""
	}
	return "state tax excluded"
}
