package compare

import (
	"context"
	"strings"
	"testing"

	"github.com/rgehrsitz/setax/internal/calculation"
	"github.com/rgehrsitz/setax/internal/config"
	"github.com/rgehrsitz/setax/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConstants(t *testing.T) domain.TaxYearConstants {
	t.Helper()
	reg, err := config.LoadDefaultConstants()
	require.NoError(t, err)
	c, err := reg.Get(2025)
	require.NoError(t, err)
	return c
}

func newTestEngine(t *testing.T) *CompareEngine {
	t.Helper()
	states, err := config.LoadDefaultStates()
	require.NoError(t, err)
	return NewCompareEngine(calculation.NewCalculator(testConstants(t), states))
}

func testScenarioSet() *domain.ScenarioSet {
	return &domain.ScenarioSet{
		TaxYear: 2025,
		Scenarios: []domain.Scenario{
			{
				Name: "baseline",
				Inputs: domain.TaxInputs{
					GrossIncome:      decimal.NewFromInt(80000),
					BusinessExpenses: decimal.NewFromInt(10000),
					FilingStatus:     domain.FilingStatusSingle,
					StateCode:        "TX",
				},
			},
			{
				Name: "california",
				Inputs: domain.TaxInputs{
					GrossIncome:      decimal.NewFromInt(80000),
					BusinessExpenses: decimal.NewFromInt(10000),
					FilingStatus:     domain.FilingStatusSingle,
					StateCode:        "CA",
				},
			},
		},
	}
}

func TestCompareEngine_Compare(t *testing.T) {
	engine := newTestEngine(t)
	set := testScenarioSet()

	compSet, err := engine.Compare(context.Background(), set, CompareOptions{
		BaseScenarioName: "baseline",
		Templates:        []string{"max_ira", "income_up_10pct"},
	})
	require.NoError(t, err)

	assert.Equal(t, 2025, compSet.TaxYear)
	assert.Equal(t, "baseline", compSet.BaseScenarioName)
	require.NotNil(t, compSet.BaseResult)
	assert.Equal(t, "15651.71", compSet.BaseResult.TotalTax.StringFixed(2))
	require.Len(t, compSet.AlternativeResults, 2)

	ira := compSet.AlternativeResults[0]
	assert.Equal(t, "baseline_max_ira", ira.ScenarioName)
	assert.True(t, ira.TaxDiffFromBase.IsNegative(), "IRA contribution should lower total tax")
	assert.True(t, ira.TotalTax.Equal(compSet.BaseResult.TotalTax.Add(ira.TaxDiffFromBase)))

	raise := compSet.AlternativeResults[1]
	assert.True(t, raise.TaxDiffFromBase.IsPositive(), "more income should raise total tax")

	require.NotEmpty(t, compSet.Recommendations)
	assert.True(t, strings.HasPrefix(compSet.Recommendations[0], "Lowest Tax: baseline_max_ira"))

	// the scenario set itself is untouched
	assert.Nil(t, set.Scenarios[0].Inputs.Advanced)
}

func TestCompareEngine_CompareErrors(t *testing.T) {
	engine := newTestEngine(t)
	set := testScenarioSet()

	_, err := engine.Compare(context.Background(), set, CompareOptions{BaseScenarioName: "missing"})
	assert.ErrorContains(t, err, "base scenario missing not found")

	_, err = engine.Compare(context.Background(), set, CompareOptions{
		BaseScenarioName: "baseline",
		Templates:        []string{"no_such_template"},
	})
	assert.ErrorContains(t, err, "template no_such_template not found")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = engine.Compare(ctx, set, CompareOptions{
		BaseScenarioName: "baseline",
		Templates:        []string{"max_ira"},
	})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCompareEngine_CompareScenarios(t *testing.T) {
	engine := newTestEngine(t)
	set := testScenarioSet()

	compSet, err := engine.CompareScenarios(context.Background(), set, "baseline", []string{"california"})
	require.NoError(t, err)
	require.Len(t, compSet.AlternativeResults, 1)

	ca := compSet.AlternativeResults[0]
	assert.Equal(t, "california", ca.ScenarioName)
	assert.Equal(t, "4585.33", ca.TaxDiffFromBase.StringFixed(2))
	assert.Empty(t, compSet.Recommendations)

	_, err = engine.CompareScenarios(context.Background(), set, "baseline", []string{"nowhere"})
	assert.ErrorContains(t, err, "alternative scenario nowhere not found")
}

func TestCompareEngine_CompareTransforms(t *testing.T) {
	engine := newTestEngine(t)
	set := testScenarioSet()

	compSet, err := engine.CompareTransforms(context.Background(), set, "california",
		[]string{"move_state:state=tx", "adjust_expenses:amount=5000"})
	require.NoError(t, err)
	require.Len(t, compSet.AlternativeResults, 2)

	moved := compSet.AlternativeResults[0]
	assert.Equal(t, "move_state:state=tx", moved.ScenarioName)
	assert.Equal(t, "-4585.33", moved.TaxDiffFromBase.StringFixed(2))
	assert.Equal(t, "TX", moved.Inputs.StateCode)

	expenses := compSet.AlternativeResults[1]
	assert.True(t, expenses.TaxDiffFromBase.IsNegative())

	_, err = engine.CompareTransforms(context.Background(), set, "baseline", []string{"bogus:amount=1"})
	assert.Error(t, err)
}
