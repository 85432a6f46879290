package breakeven

import (
	"strings"
	"testing"

	"github.com/rgehrsitz/setax/internal/domain"
	"github.com/shopspring/decimal"
)

func sampleResult() *SolveResult {
	target := decimal.NewFromInt(10000)
	base := domain.TaxResult{TotalTax: decimal.RequireFromString("15651.71")}
	return &SolveResult{
		Request: SolveRequest{
			Target:      TargetGrossIncome,
			Goal:        GoalMatchTotalTax,
			Constraints: Constraints{TargetAmount: &target},
		},
		Success:          true,
		Iterations:       24,
		ConvergenceInfo:  "Converged to target within $1.00",
		OptimalValue:     decimal.RequireFromString("55210.42"),
		TotalTax:         decimal.RequireFromString("10000.40"),
		TaxOwedOrRefund:  decimal.RequireFromString("10000.40"),
		BaseResult:       &base,
		BaseValue:        decimal.NewFromInt(80000),
		TaxDiffFromBase:  decimal.RequireFromString("-5651.31"),
		OwedDiffFromBase: decimal.RequireFromString("-5651.31"),
	}
}

func TestTableFormatter_Format(t *testing.T) {
	formatter := &TableFormatter{}
	out := formatter.Format(sampleResult())

	for _, want := range []string{
		"BREAK-EVEN SOLVER RESULTS",
		"Solve For:   gross_income",
		"Target:      $10000.00",
		"✓ Converged",
		"Gross income of $55210.42",
		"Total Tax:         $10000.40",
		"Base Value:   $80000.00",
		"Tax Change:   $-5651.31",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestTableFormatter_FormatNotConverged(t *testing.T) {
	formatter := &TableFormatter{}
	r := sampleResult()
	r.Success = false
	r.BaseResult = nil

	out := formatter.Format(r)
	if !strings.Contains(out, "⚠ Did not converge") {
		t.Error("expected non-converged status")
	}
	if strings.Contains(out, "COMPARISON TO BASE SCENARIO") {
		t.Error("did not expect a base comparison without a base result")
	}
}

func TestTableFormatter_FormatMultiTarget(t *testing.T) {
	formatter := &TableFormatter{}
	r := sampleResult()
	multi := &MultiTargetResult{
		Goal:            GoalMatchTotalTax,
		Results:         []SolveResult{*r},
		BestByTax:       r,
		Recommendations: []string{"Gross income of $55210.42 brings total tax to $10000"},
	}

	out := formatter.FormatMultiTarget(multi)
	for _, want := range []string{
		"MULTI-TARGET SOLVER RESULTS",
		"Goal: match_total_tax",
		"$55.2K",
		"Lowest Tax: gross_income ($10000.40)",
		"• Gross income of $55210.42 brings total tax to $10000",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestJSONFormatter_Format(t *testing.T) {
	out, err := (&JSONFormatter{Pretty: true}).Format(sampleResult())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "\"target\": \"gross_income\"") {
		t.Errorf("expected target in JSON:\n%s", out)
	}
	if !strings.Contains(out, "\"optimal_value\": \"55210.42\"") {
		t.Errorf("expected optimal value in JSON:\n%s", out)
	}

	compact, err := (&JSONFormatter{}).FormatMultiTarget(&MultiTargetResult{Goal: GoalMinimizeTax})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(compact, "\n") {
		t.Error("expected compact JSON")
	}
}

func TestTableFormatter_formatShort(t *testing.T) {
	formatter := &TableFormatter{}

	tests := []struct {
		input    decimal.Decimal
		expected string
	}{
		{decimal.NewFromInt(750), "750"},
		{decimal.NewFromInt(55210), "55.2K"},
		{decimal.NewFromInt(2500000), "2.50M"},
	}

	for _, tt := range tests {
		if got := formatter.formatShort(tt.input); got != tt.expected {
			t.Errorf("formatShort(%s) = %s, expected %s", tt.input, got, tt.expected)
		}
	}
}
