package calculation

import (
	"testing"

	"github.com/rgehrsitz/setax/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestComputeFederalTax(t *testing.T) {
	c := constants2025(t)

	tests := []struct {
		name      string
		income    decimal.Decimal
		status    domain.FilingStatus
		expected  string
		bracketsN int
	}{
		{"Zero income", decimal.Zero, domain.FilingStatusSingle, "0.00", 0},
		{"Negative income treated as zero", d("-500"), domain.FilingStatusSingle, "0.00", 0},
		{"Within first bracket", d("10000"), domain.FilingStatusSingle, "1000.00", 1},
		// 1192.50 + 4386.00 + 829.6575 * 0.22
		{"Baseline taxable income", d("49304.6575"), domain.FilingStatusSingle, "5761.02", 3},
		// 2385 + 8772 + 3091 (14050 * 0.22)
		{"Married filing jointly", d("111000"), domain.FilingStatusMarriedFilingJointly, "14248.00", 3},
		{"Head of household first bracket", d("17000"), domain.FilingStatusHeadOfHousehold, "1700.00", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ComputeFederalTax(tt.income, tt.status, c.Brackets)
			assertMoney(t, tt.expected, result.Total, "ComputeFederalTax()")
			assert.Len(t, result.Breakdown, tt.bracketsN)

			sum := decimal.Zero
			for _, b := range result.Breakdown {
				sum = sum.Add(b.TaxFromBracket)
			}
			assert.True(t, sum.Equal(result.Total), "breakdown should sum to total")
		})
	}
}

func TestComputeFederalTax_BracketContinuity(t *testing.T) {
	c := constants2025(t)

	for _, status := range domain.FilingStatuses {
		brackets := c.Brackets[status]
		for i, b := range brackets {
			upper, bounded := b.Upper()
			if !bounded {
				continue
			}
			atBoundary := ComputeFederalTax(upper, status, c.Brackets)

			// Marginal contributions of every bracket up to and including i
			expected := decimal.Zero
			for _, lower := range brackets[:i+1] {
				top, _ := lower.Upper()
				expected = expected.Add(top.Sub(lower.Min).Mul(lower.Rate))
			}
			assert.True(t, expected.Equal(atBoundary.Total), "%s boundary %s: got %s want %s", status, upper, atBoundary.Total, expected)
			assert.Len(t, atBoundary.Breakdown, i+1, "boundary bracket itself contributes nothing")

			// One cent above the boundary adds one cent at the next rate
			above := ComputeFederalTax(upper.Add(d("0.01")), status, c.Brackets)
			step := above.Total.Sub(atBoundary.Total)
			assert.True(t, step.Equal(d("0.01").Mul(brackets[i+1].Rate)), "no jump at %s", upper)
		}
	}
}

func TestComputeFederalTax_TopBracketUnbounded(t *testing.T) {
	c := constants2025(t)

	result := ComputeFederalTax(d("10000000"), domain.FilingStatusSingle, c.Brackets)
	last := result.Breakdown[len(result.Breakdown)-1]

	assert.Nil(t, last.Max, "top bracket should be open-ended")
	assert.True(t, last.Rate.Equal(d("0.37")))
	assert.Len(t, result.Breakdown, 7)
}

func TestComputeFederalTax_BreakdownDoesNotAliasConstants(t *testing.T) {
	c := constants2025(t)

	result := ComputeFederalTax(d("50000"), domain.FilingStatusSingle, c.Brackets)
	*result.Breakdown[0].Max = d("1")

	upper, _ := c.Brackets[domain.FilingStatusSingle][0].Upper()
	assert.True(t, upper.Equal(d("11925")))
}

func TestMarginalRate(t *testing.T) {
	c := constants2025(t)

	assert.True(t, MarginalRate(d("5000"), domain.FilingStatusSingle, c.Brackets).Equal(d("0.10")))
	assert.True(t, MarginalRate(d("60000"), domain.FilingStatusSingle, c.Brackets).Equal(d("0.22")))
	assert.True(t, MarginalRate(d("1000000"), domain.FilingStatusMarriedFilingJointly, c.Brackets).Equal(d("0.37")))
}
