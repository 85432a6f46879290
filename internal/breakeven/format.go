package breakeven

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// TableFormatter formats solver results as a console table
type TableFormatter struct{}

// Format generates a formatted table for a solver result
func (tf *TableFormatter) Format(result *SolveResult) string {
	var sb strings.Builder

	sb.WriteString("BREAK-EVEN SOLVER RESULTS\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n")

	sb.WriteString(fmt.Sprintf("Solve For:   %s\n", result.Request.Target))
	sb.WriteString(fmt.Sprintf("Goal:        %s\n", result.Request.Goal))
	if result.Request.Constraints.TargetAmount != nil {
		sb.WriteString(fmt.Sprintf("Target:      $%s\n", tf.formatCurrency(*result.Request.Constraints.TargetAmount)))
	}
	sb.WriteString(fmt.Sprintf("Status:      %s\n", tf.formatStatus(result.Success)))
	sb.WriteString(fmt.Sprintf("Iterations:  %d\n", result.Iterations))
	if result.ConvergenceInfo != "" {
		sb.WriteString(fmt.Sprintf("Convergence: %s\n", result.ConvergenceInfo))
	}
	sb.WriteString("\n")

	sb.WriteString("SOLUTION\n")
	sb.WriteString(strings.Repeat("-", 80) + "\n")
	sb.WriteString(DescribeValue(result) + "\n")
	sb.WriteString("\n")

	sb.WriteString("RESULTS AT SOLUTION\n")
	sb.WriteString(strings.Repeat("-", 80) + "\n")
	sb.WriteString(fmt.Sprintf("Total Tax:         $%s\n", tf.formatCurrency(result.TotalTax)))
	sb.WriteString(fmt.Sprintf("Owed/Refund:       $%s\n", tf.formatCurrency(result.TaxOwedOrRefund)))
	sb.WriteString(fmt.Sprintf("Effective Rate:    %s%%\n", result.Result.EffectiveRate.Mul(decimal.NewFromInt(100)).StringFixed(2)))
	sb.WriteString(fmt.Sprintf("Quarterly Payment: $%s\n", tf.formatCurrency(result.Result.QuarterlyPayment)))
	sb.WriteString("\n")

	if result.BaseResult != nil {
		sb.WriteString("COMPARISON TO BASE SCENARIO\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		sb.WriteString(fmt.Sprintf("Base Value:   $%s\n", tf.formatCurrency(result.BaseValue)))
		sb.WriteString(fmt.Sprintf("Base Tax:     $%s\n", tf.formatCurrency(result.BaseResult.TotalTax)))
		if !result.TaxDiffFromBase.IsZero() {
			sb.WriteString(fmt.Sprintf("Tax Change:   %s$%s\n",
				tf.deltaSymbol(result.TaxDiffFromBase), tf.formatCurrency(result.TaxDiffFromBase)))
		}
		if !result.OwedDiffFromBase.IsZero() {
			sb.WriteString(fmt.Sprintf("Owed Change:  %s$%s\n",
				tf.deltaSymbol(result.OwedDiffFromBase), tf.formatCurrency(result.OwedDiffFromBase)))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// FormatMultiTarget formats results from solving several targets
func (tf *TableFormatter) FormatMultiTarget(result *MultiTargetResult) string {
	var sb strings.Builder

	sb.WriteString("MULTI-TARGET SOLVER RESULTS\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n")
	sb.WriteString(fmt.Sprintf("Goal: %s\n\n", result.Goal))

	sb.WriteString("SUMMARY OF ALL TARGETS\n")
	sb.WriteString(strings.Repeat("-", 80) + "\n")
	sb.WriteString(fmt.Sprintf("%-20s %15s %15s %15s\n", "Target", "Value", "Total Tax", "Owed/Refund"))
	sb.WriteString(strings.Repeat("-", 80) + "\n")

	for _, res := range result.Results {
		sb.WriteString(fmt.Sprintf("%-20s %15s %15s %15s\n",
			tf.truncate(string(res.Request.Target), 20),
			"$"+tf.formatShort(res.OptimalValue),
			"$"+tf.formatShort(res.TotalTax),
			"$"+tf.formatShort(res.TaxOwedOrRefund)))
	}
	sb.WriteString("\n")

	if result.BestByTax != nil {
		sb.WriteString(fmt.Sprintf("Lowest Tax: %s ($%s)\n\n",
			result.BestByTax.Request.Target,
			tf.formatCurrency(result.BestByTax.TotalTax)))
	}

	if len(result.Recommendations) > 0 {
		sb.WriteString("RECOMMENDATIONS\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for _, rec := range result.Recommendations {
			sb.WriteString(fmt.Sprintf("• %s\n", rec))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// JSONFormatter formats results as JSON
type JSONFormatter struct {
	Pretty bool
}

// Format generates JSON output
func (jf *JSONFormatter) Format(result *SolveResult) (string, error) {
	return jf.marshal(result)
}

// FormatMultiTarget formats multi-target results as JSON
func (jf *JSONFormatter) FormatMultiTarget(result *MultiTargetResult) (string, error) {
	return jf.marshal(result)
}

func (jf *JSONFormatter) marshal(v any) (string, error) {
	var data []byte
	var err error

	if jf.Pretty {
		data, err = json.MarshalIndent(v, "", "  ")
	} else {
		data, err = json.Marshal(v)
	}

	if err != nil {
		return "", err
	}

	return string(data), nil
}

// Helper methods

func (tf *TableFormatter) formatStatus(success bool) string {
	if success {
		return "✓ Converged"
	}
	return "⚠ Did not converge"
}

func (tf *TableFormatter) formatCurrency(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func (tf *TableFormatter) formatShort(d decimal.Decimal) string {
	if d.Abs().GreaterThanOrEqual(decimal.NewFromInt(1000000)) {
		millions := d.Div(decimal.NewFromInt(1000000))
		return millions.StringFixed(2) + "M"
	} else if d.Abs().GreaterThanOrEqual(decimal.NewFromInt(1000)) {
		thousands := d.Div(decimal.NewFromInt(1000))
		return thousands.StringFixed(1) + "K"
	}
	return d.StringFixed(0)
}

func (tf *TableFormatter) deltaSymbol(delta decimal.Decimal) string {
	if delta.IsPositive() {
		return "+"
	}
	return ""
}

func (tf *TableFormatter) truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
