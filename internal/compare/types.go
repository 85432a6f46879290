package compare

import (
	"github.com/rgehrsitz/setax/internal/calculation"
	"github.com/rgehrsitz/setax/internal/domain"
	"github.com/rgehrsitz/setax/internal/output"
	"github.com/shopspring/decimal"
)

// ComparisonResult represents a single scenario comparison with calculated metrics
type ComparisonResult struct {
	ScenarioName string            `json:"scenarioName"`
	Description  string            `json:"description"`
	Inputs       domain.TaxInputs  `json:"inputs"`
	Result       *domain.TaxResult `json:"-"`

	// Key Metrics
	TotalTax         decimal.Decimal `json:"totalTax"`
	TaxOwedOrRefund  decimal.Decimal `json:"taxOwedOrRefund"`
	EffectiveRate    decimal.Decimal `json:"effectiveRate"`
	QuarterlyPayment decimal.Decimal `json:"quarterlyPayment"`
	MarginalRate     decimal.Decimal `json:"marginalRate"`

	// Comparison to Base
	TaxDiffFromBase      decimal.Decimal `json:"taxDiffFromBase"`
	TaxPctFromBase       decimal.Decimal `json:"taxPctFromBase"`
	OwedDiffFromBase     decimal.Decimal `json:"owedDiffFromBase"`
	EffectiveRateDiffPts decimal.Decimal `json:"effectiveRateDiffPts"`
}

// ComparisonSet represents a collection of scenario comparisons
type ComparisonSet struct {
	TaxYear            int                `json:"taxYear"`
	BaseScenarioName   string             `json:"baseScenarioName"`
	BaseResult         *ComparisonResult  `json:"baseResult"`
	AlternativeResults []ComparisonResult `json:"alternativeResults"`
	Recommendations    []string           `json:"recommendations"`
	ConfigPath         string             `json:"configPath"`
}

// ToEstimateReport converts a ComparisonSet to an output.EstimateReport so
// the document formatters can render every compared scenario
func (cs *ComparisonSet) ToEstimateReport() *output.EstimateReport {
	report := output.NewEstimateReport(cs.TaxYear)
	add := func(r *ComparisonResult) {
		if r == nil || r.Result == nil {
			return
		}
		report.Add(output.EstimateEntry{
			Name:        r.ScenarioName,
			Description: r.Description,
			Inputs:      r.Inputs,
			Result:      *r.Result,
		})
	}
	add(cs.BaseResult)
	for i := range cs.AlternativeResults {
		add(&cs.AlternativeResults[i])
	}
	return report
}

// MetricsCalculator extracts key metrics from tax results
type MetricsCalculator struct {
	Constants domain.TaxYearConstants
}

// NewMetricsCalculator creates a new metrics calculator
func NewMetricsCalculator(constants domain.TaxYearConstants) *MetricsCalculator {
	return &MetricsCalculator{Constants: constants}
}

// CalculateMetrics computes all comparison metrics for a scenario result
func (mc *MetricsCalculator) CalculateMetrics(scenario *domain.Scenario, result domain.TaxResult) ComparisonResult {
	return ComparisonResult{
		ScenarioName:     scenario.Name,
		Description:      scenario.Description,
		Inputs:           scenario.Inputs,
		Result:           &result,
		TotalTax:         result.TotalTax,
		TaxOwedOrRefund:  result.TaxOwedOrRefund,
		EffectiveRate:    result.EffectiveRate,
		QuarterlyPayment: result.QuarterlyPayment,
		MarginalRate:     calculation.MarginalRate(result.TaxableIncome, result.FilingStatus, mc.Constants.Brackets),
	}
}

// CalculateComparison computes comparison metrics between a scenario and a base
func (mc *MetricsCalculator) CalculateComparison(scenario, base ComparisonResult) ComparisonResult {
	scenario.TaxDiffFromBase = scenario.TotalTax.Sub(base.TotalTax)

	if !base.TotalTax.IsZero() {
		scenario.TaxPctFromBase = scenario.TaxDiffFromBase.
			Div(base.TotalTax).
			Mul(decimal.NewFromInt(100))
	}

	scenario.OwedDiffFromBase = scenario.TaxOwedOrRefund.Sub(base.TaxOwedOrRefund)
	scenario.EffectiveRateDiffPts = scenario.EffectiveRate.Sub(base.EffectiveRate).Mul(decimal.NewFromInt(100))

	return scenario
}

// GenerateRecommendations creates recommendations based on comparison results
func GenerateRecommendations(compSet *ComparisonSet) []string {
	recommendations := []string{}

	if compSet.BaseResult == nil || len(compSet.AlternativeResults) == 0 {
		return recommendations
	}

	// Lowest total tax
	lowestTax := compSet.BaseResult
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if alt.TotalTax.LessThan(lowestTax.TotalTax) {
			lowestTax = alt
		}
	}

	if lowestTax != compSet.BaseResult {
		savings := compSet.BaseResult.TotalTax.Sub(lowestTax.TotalTax)
		recommendations = append(recommendations,
			"Lowest Tax: "+lowestTax.ScenarioName+" saves $"+savings.StringFixed(0)+
				" in total tax versus the base scenario")
	}

	// Lowest effective rate
	lowestRate := compSet.BaseResult
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if alt.EffectiveRate.LessThan(lowestRate.EffectiveRate) {
			lowestRate = alt
		}
	}

	if lowestRate != compSet.BaseResult && lowestRate != lowestTax {
		recommendations = append(recommendations,
			"Lowest Effective Rate: "+lowestRate.ScenarioName+" at "+
				lowestRate.EffectiveRate.Mul(decimal.NewFromInt(100)).StringFixed(1)+"%")
	}

	// Scenarios that turn a balance due into a refund
	if !compSet.BaseResult.TaxOwedOrRefund.IsNegative() {
		for _, alt := range compSet.AlternativeResults {
			if alt.TaxOwedOrRefund.IsNegative() {
				recommendations = append(recommendations,
					"Refund: "+alt.ScenarioName+" results in a refund of $"+alt.TaxOwedOrRefund.Neg().StringFixed(0))
			}
		}
	}

	return recommendations
}
