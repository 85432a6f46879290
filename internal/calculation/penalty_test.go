package calculation

import (
	"testing"
	"time"

	"github.com/rgehrsitz/setax/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, day int) time.Time {
	return time.Date(y, m, day, 0, 0, 0, 0, time.UTC)
}

func TestComputePenalty(t *testing.T) {
	tests := []struct {
		name      string
		underpaid string
		days      int
		rate      string
		expected  string
	}{
		{"Ninety days at eight percent", "5000", 90, "0.08", "98.63"},
		{"Full year", "1000", 365, "0.07", "70.00"},
		{"On time", "5000", 0, "0.08", "0.00"},
		{"Paid early", "5000", -10, "0.08", "0.00"},
		{"Nothing underpaid", "0", 90, "0.08", "0.00"},
		{"Negative underpayment", "-5000", 90, "0.08", "0.00"},
		{"Negative rate", "5000", 90, "-0.08", "0.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputePenalty(d(tt.underpaid), tt.days, d(tt.rate))
			assertMoney(t, tt.expected, got, tt.name)
			assert.False(t, got.IsNegative())
		})
	}
}

func TestComputePenalty_LinearInDays(t *testing.T) {
	rate := d("0.08")
	one := ComputePenalty(d("5000"), 30, rate)
	two := ComputePenalty(d("5000"), 60, rate)

	assert.True(t, two.Sub(one.Mul(decimal.NewFromInt(2))).Abs().LessThan(d("0.000001")))
}

func TestEvaluateSafeHarbor(t *testing.T) {
	tests := []struct {
		name       string
		in         domain.SafeHarborInputs
		exempt     bool
		rule       string
		required   string
		meetsPrior bool
	}{
		{
			name:     "Small balance due",
			in:       domain.SafeHarborInputs{CurrentYearTax: d("10000"), TotalPaid: d("9500")},
			exempt:   true,
			rule:     "balance due under $1,000",
			required: "9000",
		},
		{
			name:     "Ninety percent of current year",
			in:       domain.SafeHarborInputs{CurrentYearTax: d("20000"), TotalPaid: d("18000")},
			exempt:   true,
			rule:     "paid at least 90% of current-year tax",
			required: "18000",
		},
		{
			name:       "Prior year tax",
			in:         domain.SafeHarborInputs{CurrentYearTax: d("20000"), PriorYearTax: d("15000"), PriorYearAGI: d("100000"), TotalPaid: d("15000")},
			exempt:     true,
			rule:       "paid at least 100% of prior-year tax",
			required:   "15000",
			meetsPrior: true,
		},
		{
			name:     "High income needs 110 percent",
			in:       domain.SafeHarborInputs{CurrentYearTax: d("20000"), PriorYearTax: d("15000"), PriorYearAGI: d("200000"), TotalPaid: d("15000")},
			exempt:   false,
			rule:     "no safe harbor met",
			required: "16500",
		},
		{
			name:       "High income meets 110 percent",
			in:         domain.SafeHarborInputs{CurrentYearTax: d("20000"), PriorYearTax: d("15000"), PriorYearAGI: d("200000"), TotalPaid: d("16500")},
			exempt:     true,
			rule:       "paid at least 110% of prior-year tax",
			required:   "16500",
			meetsPrior: true,
		},
		{
			name:     "No prior year provided",
			in:       domain.SafeHarborInputs{CurrentYearTax: d("20000"), TotalPaid: d("5000")},
			exempt:   false,
			rule:     "no safe harbor met",
			required: "18000",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EvaluateSafeHarbor(tt.in)
			assert.Equal(t, tt.exempt, got.Exempt)
			assert.Equal(t, tt.rule, got.Rule)
			assert.True(t, got.RequiredAnnual.Equal(d(tt.required)), "required %s, got %s", tt.required, got.RequiredAnnual)
			assert.Equal(t, tt.meetsPrior, got.MeetsPriorYear)
		})
	}
}

func TestComputeQuarterlyPenalties(t *testing.T) {
	c := constants2025(t)
	payments := []domain.QuarterPayment{
		{Date: date(2025, time.July, 16), Amount: d("1000")},
		{Date: date(2025, time.April, 10), Amount: d("1000")},
	}

	schedule := ComputeQuarterlyPenalties(d("4000"), payments, date(2026, time.January, 15), c)

	require.Len(t, schedule.Quarters, 4)
	assert.True(t, schedule.AnnualRate.Equal(d("0.07")))

	q1, q2, q3, q4 := schedule.Quarters[0], schedule.Quarters[1], schedule.Quarters[2], schedule.Quarters[3]

	assert.True(t, q1.Paid.Equal(d("1000")))
	assert.True(t, q1.Penalty.IsZero())
	assert.Equal(t, 0, q1.DaysLate)

	assert.True(t, q2.Paid.Equal(d("1000")))
	assert.True(t, q2.Underpaid.IsZero())
	assert.Equal(t, 30, q2.DaysLate)
	assertMoney(t, "5.75", q2.Penalty, "Q2 penalty")

	assert.True(t, q3.Underpaid.Equal(d("1000")))
	assert.Equal(t, 122, q3.DaysLate)
	assertMoney(t, "23.40", q3.Penalty, "Q3 penalty")

	assert.True(t, q4.Underpaid.Equal(d("1000")))
	assert.True(t, q4.Penalty.IsZero(), "Q4 is not yet late")

	assertMoney(t, "29.15", schedule.TotalPenalty, "total penalty")
}

func TestComputeQuarterlyPenalties_PaymentSpillsForward(t *testing.T) {
	c := constants2025(t)
	payments := []domain.QuarterPayment{
		{Date: date(2025, time.April, 1), Amount: d("4000")},
	}

	schedule := ComputeQuarterlyPenalties(d("4000"), payments, date(2026, time.April, 15), c)

	for _, q := range schedule.Quarters {
		assert.True(t, q.Paid.Equal(d("1000")), "quarter %d", q.Quarter)
		assert.True(t, q.Penalty.IsZero(), "quarter %d", q.Quarter)
	}
	assert.True(t, schedule.TotalPenalty.IsZero())
}

func TestComputeQuarterlyPenalties_NoRequirement(t *testing.T) {
	c := constants2025(t)

	schedule := ComputeQuarterlyPenalties(decimal.Zero, nil, date(2026, time.April, 15), c)

	assert.Len(t, schedule.Quarters, 4)
	assert.True(t, schedule.TotalPenalty.IsZero())
}

func TestDaysBetween(t *testing.T) {
	assert.Equal(t, 90, daysBetween(date(2025, time.April, 15), date(2025, time.July, 14)))
	assert.Equal(t, 0, daysBetween(date(2025, time.April, 15), time.Date(2025, time.April, 15, 23, 0, 0, 0, time.UTC)))
	assert.Equal(t, -5, daysBetween(date(2025, time.April, 15), date(2025, time.April, 10)))
}
