package compare

import (
	"encoding/csv"
	"strings"
)

// CSVFormatter formats comparison results as CSV
type CSVFormatter struct{}

// Format generates CSV output for comparison results
func (cf *CSVFormatter) Format(compSet *ComparisonSet) (string, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	header := []string{
		"Scenario",
		"Type",
		"Total Tax",
		"Owed/Refund",
		"Effective Rate",
		"Marginal Rate",
		"Quarterly Payment",
		"Tax Diff from Base",
		"Tax % Change",
		"Owed Diff from Base",
		"Effective Rate Diff (pts)",
	}
	if err := writer.Write(header); err != nil {
		return "", err
	}

	if compSet.BaseResult != nil {
		if err := writer.Write(cf.formatRow(compSet.BaseResult, "base")); err != nil {
			return "", err
		}
	}

	for i := range compSet.AlternativeResults {
		if err := writer.Write(cf.formatRow(&compSet.AlternativeResults[i], "alternative")); err != nil {
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}

	return sb.String(), nil
}

// formatRow formats a comparison result as a CSV row
func (cf *CSVFormatter) formatRow(result *ComparisonResult, scenarioType string) []string {
	return []string{
		result.ScenarioName,
		scenarioType,
		result.TotalTax.StringFixed(2),
		result.TaxOwedOrRefund.StringFixed(2),
		result.EffectiveRate.StringFixed(4),
		result.MarginalRate.StringFixed(2),
		result.QuarterlyPayment.StringFixed(2),
		result.TaxDiffFromBase.StringFixed(2),
		result.TaxPctFromBase.StringFixed(2),
		result.OwedDiffFromBase.StringFixed(2),
		result.EffectiveRateDiffPts.StringFixed(2),
	}
}
