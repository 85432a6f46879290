package calculation

import (
	"testing"

	"github.com/rgehrsitz/setax/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestResolveDeductions_StandardVsItemized(t *testing.T) {
	c := constants2025(t)

	tests := []struct {
		name         string
		status       domain.FilingStatus
		adv          *domain.AdvancedInputs
		expectedType domain.DeductionType
		expectedUsed string
		itemized     string
	}{
		{
			name:         "No advanced inputs",
			status:       domain.FilingStatusSingle,
			expectedType: domain.DeductionStandard,
			expectedUsed: "15750",
			itemized:     "0",
		},
		{
			name:   "Itemized wins",
			status: domain.FilingStatusSingle,
			adv: &domain.AdvancedInputs{
				MortgageInterest:     d("20000"),
				HomeOfficeSquareFeet: d("400"), // capped at 300 sq ft
				StateTaxesWithheld:   d("5000"),
			},
			expectedType: domain.DeductionItemized,
			expectedUsed: "26500",
			itemized:     "26500",
		},
		{
			name:         "Tie goes to standard",
			status:       domain.FilingStatusSingle,
			adv:          &domain.AdvancedInputs{MortgageInterest: d("15750")},
			expectedType: domain.DeductionStandard,
			expectedUsed: "15750",
			itemized:     "15750",
		},
		{
			name:         "Joint standard deduction",
			status:       domain.FilingStatusMarriedFilingJointly,
			adv:          &domain.AdvancedInputs{MortgageInterest: d("25000")},
			expectedType: domain.DeductionStandard,
			expectedUsed: "31500",
			itemized:     "25000",
		},
		{
			name:         "SALT capped",
			status:       domain.FilingStatusSingle,
			adv:          &domain.AdvancedInputs{StateTaxesWithheld: d("55000")},
			expectedType: domain.DeductionItemized,
			expectedUsed: "40000",
			itemized:     "40000",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := domain.TaxInputs{GrossIncome: d("100000"), FilingStatus: tt.status, Advanced: tt.adv}
			res := ResolveDeductions(in, d("90000"), c)

			assert.Equal(t, tt.expectedType, res.DeductionType)
			assert.True(t, res.DeductionUsed.Equal(d(tt.expectedUsed)), "used %s", res.DeductionUsed)
			assert.True(t, res.ItemizedDeductions.Equal(d(tt.itemized)), "itemized %s", res.ItemizedDeductions)
			assert.True(t, res.DeductionUsed.Equal(decimal.Max(res.StandardDeduction, res.ItemizedDeductions)))
		})
	}
}

func TestHomeOfficeDeduction(t *testing.T) {
	c := constants2025(t)

	assert.True(t, HomeOfficeDeduction(d("120"), c).Equal(d("600")))
	assert.True(t, HomeOfficeDeduction(d("300"), c).Equal(d("1500")))
	assert.True(t, HomeOfficeDeduction(d("1000"), c).Equal(d("1500")))
	assert.True(t, HomeOfficeDeduction(d("-10"), c).IsZero())
}

func TestResolveCredits(t *testing.T) {
	c := constants2025(t)

	tests := []struct {
		name      string
		adv       domain.AdvancedInputs
		status    domain.FilingStatus
		agi       string
		ctc       string
		odc       string
		education string
		phasedOut bool
	}{
		{"No dependents", domain.AdvancedInputs{}, domain.FilingStatusSingle, "50000", "0", "0", "0", false},
		{"Two children one adult dependent", domain.AdvancedInputs{DependentsUnder17: 2, DependentsOver17: 1}, domain.FilingStatusSingle, "80000", "4000", "500", "0", false},
		// 10500 over: 11 steps of $50
		{"Phase-out single", domain.AdvancedInputs{DependentsUnder17: 2}, domain.FilingStatusSingle, "210500", "3450", "0", "0", true},
		{"Joint threshold higher", domain.AdvancedInputs{DependentsUnder17: 2}, domain.FilingStatusMarriedFilingJointly, "210500", "4000", "0", "0", false},
		// 40001 over: 41 steps = 2050, exhausts the child credit then 50 from the other credit
		{"Phase-out spills into other dependent credit", domain.AdvancedInputs{DependentsUnder17: 1, DependentsOver17: 1}, domain.FilingStatusSingle, "240001", "0", "450", "0", true},
		{"Education credit capped", domain.AdvancedInputs{StudentTuition: d("15000")}, domain.FilingStatusSingle, "50000", "0", "0", "2000", false},
		{"Education credit", domain.AdvancedInputs{StudentTuition: d("4000")}, domain.FilingStatusSingle, "50000", "0", "0", "800", false},
		{"Negative dependents ignored", domain.AdvancedInputs{DependentsUnder17: -3}, domain.FilingStatusSingle, "50000", "0", "0", "0", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cr := ResolveCredits(tt.adv, tt.status, d(tt.agi), c)
			assert.True(t, cr.ChildTaxCredit.Equal(d(tt.ctc)), "ctc %s", cr.ChildTaxCredit)
			assert.True(t, cr.OtherDependentCredit.Equal(d(tt.odc)), "odc %s", cr.OtherDependentCredit)
			assert.True(t, cr.EducationCredit.Equal(d(tt.education)), "education %s", cr.EducationCredit)
			assert.Equal(t, tt.phasedOut, cr.ChildTaxCreditPhasedOut)
			assert.True(t, cr.AvailableCredits.Equal(cr.ChildTaxCredit.Add(cr.OtherDependentCredit).Add(cr.EducationCredit)))
		})
	}
}

func TestPotentialDeductions(t *testing.T) {
	c := constants2025(t)

	r := PotentialDeductions(d("80000"), c)
	assert.True(t, r.Min.Equal(d("8000")))
	assert.True(t, r.Max.Equal(d("20000")))

	r = PotentialDeductions(d("-1"), c)
	assert.True(t, r.Min.IsZero())
	assert.True(t, r.Max.IsZero())
}
