package domain

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestParseFilingStatus(t *testing.T) {
	tests := []struct {
		input    string
		expected FilingStatus
		wantErr  bool
	}{
		{"single", FilingStatusSingle, false},
		{"", FilingStatusSingle, false},
		{"MFJ", FilingStatusMarriedFilingJointly, false},
		{"married_filing_jointly", FilingStatusMarriedFilingJointly, false},
		{"marriedFilingJointly", FilingStatusMarriedFilingJointly, false},
		{"hoh", FilingStatusHeadOfHousehold, false},
		{" headOfHousehold ", FilingStatusHeadOfHousehold, false},
		{"widowed", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseFilingStatus(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestFilingStatus_Helpers(t *testing.T) {
	assert.True(t, FilingStatusHeadOfHousehold.Valid())
	assert.False(t, FilingStatus("bogus").Valid())
	assert.Equal(t, FilingStatusSingle, FilingStatus("bogus").OrSingle())
	assert.True(t, FilingStatusMarriedFilingJointly.IsMarried())
	assert.False(t, FilingStatusHeadOfHousehold.IsMarried())
	assert.Equal(t, "Married Filing Jointly", FilingStatusMarriedFilingJointly.Label())
}

func TestExclusionType(t *testing.T) {
	for _, e := range ExclusionTypes {
		parsed, err := ParseExclusionType(e.String())
		require.NoError(t, err)
		assert.Equal(t, e, parsed)
	}

	parsed, err := ParseExclusionType("PRINCIPAL_RESIDENCE")
	require.NoError(t, err)
	assert.Equal(t, ExclusionPrincipalResidence, parsed)

	_, err = ParseExclusionType("lottery")
	assert.Error(t, err)

	assert.Equal(t, "ExclusionType(42)", ExclusionType(42).String())

	data, err := json.Marshal(struct {
		E ExclusionType `json:"e"`
	}{ExclusionStudentLoan})
	require.NoError(t, err)
	assert.JSONEq(t, `{"e":"studentLoan"}`, string(data))
}

func TestTaxInputs_Normalize(t *testing.T) {
	in := TaxInputs{
		GrossIncome:      decimal.NewFromInt(-5),
		BusinessExpenses: decimal.NewFromInt(100),
		FilingStatus:     "bogus",
		Advanced:         &AdvancedInputs{IRAContributions: decimal.NewFromInt(-1), DependentsOver17: -3},
	}

	out := in.Normalize()

	assert.True(t, out.GrossIncome.IsZero())
	assert.True(t, out.BusinessExpenses.Equal(decimal.NewFromInt(100)))
	assert.Equal(t, FilingStatusSingle, out.FilingStatus)
	require.NotNil(t, out.Advanced)
	assert.True(t, out.Advanced.IRAContributions.IsZero())
	assert.Equal(t, 0, out.Advanced.DependentsOver17)

	assert.True(t, in.Advanced.IRAContributions.IsNegative(), "input is not modified")
	assert.NotNil(t, TaxInputs{}.Normalize().Advanced)
}

func TestTaxYearConstants_FallBackToSingle(t *testing.T) {
	c := TaxYearConstants{
		StandardDeduction: map[FilingStatus]decimal.Decimal{FilingStatusSingle: decimal.NewFromInt(15750)},
	}

	assert.True(t, c.StandardDeductionFor("bogus").Equal(decimal.NewFromInt(15750)))
	assert.True(t, c.StandardDeductionFor(FilingStatusHeadOfHousehold).Equal(decimal.NewFromInt(15750)))
}

func TestTaxBracket_YAML(t *testing.T) {
	var brackets []TaxBracket
	err := yaml.Unmarshal([]byte("- { min: 0, max: 11925, rate: 0.10 }\n- { min: 11925, rate: 0.12 }\n"), &brackets)
	require.NoError(t, err)
	require.Len(t, brackets, 2)

	upper, bounded := brackets[0].Upper()
	assert.True(t, bounded)
	assert.True(t, upper.Equal(decimal.NewFromInt(11925)))

	_, bounded = brackets[1].Upper()
	assert.False(t, bounded)
}

func TestTaxResult_Helpers(t *testing.T) {
	ceiling := decimal.NewFromInt(11925)
	r := TaxResult{
		StandardDeduction:       decimal.NewFromInt(15750),
		ItemizedDeductions:      decimal.NewFromInt(20000),
		DeductionUsed:           DeductionItemized,
		TaxOwedOrRefund:         decimal.NewFromInt(4000),
		FederalBracketBreakdown: []BracketSlice{{Max: &ceiling, TaxFromBracket: decimal.NewFromInt(1)}},
	}

	assert.True(t, r.DeductionAmount().Equal(decimal.NewFromInt(20000)))
	assert.False(t, r.IsRefund())
	assert.True(t, r.RemainingQuarterlyPayment().Equal(decimal.NewFromInt(1000)))

	clone := r.Clone()
	clone.FederalBracketBreakdown[0].TaxFromBracket = decimal.NewFromInt(2)
	assert.True(t, r.FederalBracketBreakdown[0].TaxFromBracket.Equal(decimal.NewFromInt(1)))
	require.NotSame(t, r.FederalBracketBreakdown[0].Max, clone.FederalBracketBreakdown[0].Max)
	*clone.FederalBracketBreakdown[0].Max = decimal.NewFromInt(1)
	assert.True(t, r.FederalBracketBreakdown[0].Max.Equal(ceiling), "original bracket max must not change")

	r.TaxOwedOrRefund = decimal.NewFromInt(-100)
	assert.True(t, r.IsRefund())
	assert.True(t, r.RemainingQuarterlyPayment().IsZero())
}

func TestStateRateTable(t *testing.T) {
	table := NewStateRateTable([]StateRate{
		{Code: "ny", Name: "New York", Rate: decimal.RequireFromString("0.055")},
		{Code: "CO", Name: "Colorado", Rate: decimal.RequireFromString("0.044")},
	})

	r, ok := table.Lookup(" Ny ")
	assert.True(t, ok)
	assert.Equal(t, "NY", r.Code)
	assert.True(t, table.Rate("ZZ").IsZero())
	assert.Equal(t, "CO", table.Sorted()[0].Code)
}

func TestScenarioSet_Find(t *testing.T) {
	set := ScenarioSet{Scenarios: []Scenario{{Name: "a"}, {Name: "b"}}}

	s, ok := set.Find("b")
	assert.True(t, ok)
	assert.Equal(t, "b", s.Name)

	_, ok = set.Find("c")
	assert.False(t, ok)
}
