package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rgehrsitz/setax/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// freshConstants parses the embedded table each time so tests can mutate it
func freshConstants(t *testing.T, year int) domain.TaxYearConstants {
	t.Helper()
	data, err := embeddedData.ReadFile(fmt.Sprintf("data/tax_%d.yaml", year))
	require.NoError(t, err)
	c, err := ParseConstants(data)
	require.NoError(t, err)
	return c
}

func TestLoadDefaultConstants(t *testing.T) {
	reg, err := LoadDefaultConstants()
	require.NoError(t, err)

	assert.Equal(t, []int{2024, 2025}, reg.Years())

	c, err := reg.Get(DefaultTaxYear)
	require.NoError(t, err)
	assert.Equal(t, 2025, c.Year)
	assert.True(t, c.SocialSecurityWageBase.Equal(decimal.NewFromInt(176100)))
	assert.True(t, c.StandardDeduction[domain.FilingStatusSingle].Equal(decimal.NewFromInt(15750)))
	assert.True(t, c.StandardDeduction[domain.FilingStatusMarriedFilingJointly].Equal(decimal.NewFromInt(31500)))
	assert.True(t, c.SelfEmployment.Rate.Equal(decimal.RequireFromString("0.153")))
	assert.True(t, c.MileageRate.Equal(decimal.RequireFromString("0.70")))
	assert.True(t, c.IRAContributionLimit.Equal(decimal.NewFromInt(7000)))
	require.Len(t, c.QuarterlyDueDates, 4)
	assert.Equal(t, time.Date(2025, time.April, 15, 0, 0, 0, 0, time.UTC), c.QuarterlyDueDates[0])

	single := c.BracketsFor(domain.FilingStatusSingle)
	require.Len(t, single, 7)
	assert.Nil(t, single[6].Max, "top bracket is unbounded")
	assert.True(t, single[6].Rate.Equal(decimal.RequireFromString("0.37")))
}

func TestConstantsRegistry_Get_UnknownYear(t *testing.T) {
	reg, err := LoadDefaultConstants()
	require.NoError(t, err)

	_, err = reg.Get(1999)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "no tax constants for year 1999")
	assert.Contains(t, err.Error(), "2025")
}

func TestConstantsRegistry_LoadFile(t *testing.T) {
	data, err := embeddedData.ReadFile("data/tax_2025.yaml")
	require.NoError(t, err)
	custom := strings.Replace(string(data), "year: 2025", "year: 2026", 1)

	file := filepath.Join(t.TempDir(), "tax_2026.yaml")
	require.NoError(t, os.WriteFile(file, []byte(custom), 0644))

	reg := NewConstantsRegistry()
	c, err := reg.LoadFile(file)
	require.NoError(t, err)
	assert.Equal(t, 2026, c.Year)
	assert.Equal(t, []int{2026}, reg.Years())
}

func TestConstantsRegistry_LoadFile_Errors(t *testing.T) {
	reg := NewConstantsRegistry()

	_, err := reg.LoadFile("nonexistent.yaml")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read file")

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("year: [unclosed"), 0644))
	_, err = reg.LoadFile(bad)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse YAML")

	empty := filepath.Join(t.TempDir(), "empty.yaml")
	require.NoError(t, os.WriteFile(empty, []byte("year: 2026\n"), 0644))
	_, err = reg.LoadFile(empty)
	assert.Error(t, err)
	assert.Empty(t, reg.Years())
}

func TestValidateConstants(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *domain.TaxYearConstants)
		errMsg string
	}{
		{
			name:   "Missing year",
			mutate: func(c *domain.TaxYearConstants) { c.Year = 0 },
			errMsg: "year is required",
		},
		{
			name:   "Missing brackets",
			mutate: func(c *domain.TaxYearConstants) { delete(c.Brackets, domain.FilingStatusHeadOfHousehold) },
			errMsg: "brackets for headOfHousehold are required",
		},
		{
			name: "Bracket gap",
			mutate: func(c *domain.TaxYearConstants) {
				c.Brackets[domain.FilingStatusSingle][1].Min = decimal.NewFromInt(12000)
			},
			errMsg: "not contiguous",
		},
		{
			name: "Bounded top bracket",
			mutate: func(c *domain.TaxYearConstants) {
				top := decimal.NewFromInt(1000000)
				c.Brackets[domain.FilingStatusSingle][6].Max = &top
			},
			errMsg: "top bracket for single must omit max",
		},
		{
			name: "Rate above one",
			mutate: func(c *domain.TaxYearConstants) {
				c.Brackets[domain.FilingStatusSingle][0].Rate = decimal.NewFromInt(2)
			},
			errMsg: "between 0 and 1",
		},
		{
			name:   "Missing standard deduction",
			mutate: func(c *domain.TaxYearConstants) { delete(c.StandardDeduction, domain.FilingStatusSingle) },
			errMsg: "standard deduction for single",
		},
		{
			name:   "SE rate mismatch",
			mutate: func(c *domain.TaxYearConstants) { c.SelfEmployment.Rate = decimal.RequireFromString("0.15") },
			errMsg: "must equal social security",
		},
		{
			name:   "Zero wage base",
			mutate: func(c *domain.TaxYearConstants) { c.SocialSecurityWageBase = decimal.Zero },
			errMsg: "wage base must be positive",
		},
		{
			name:   "Missing IRA limit",
			mutate: func(c *domain.TaxYearConstants) { c.IRAContributionLimit = decimal.Zero },
			errMsg: "ira contribution limit must be positive",
		},
		{
			name:   "Missing due date",
			mutate: func(c *domain.TaxYearConstants) { c.QuarterlyDueDates = c.QuarterlyDueDates[:3] },
			errMsg: "expected 4 quarterly due dates",
		},
		{
			name: "Due dates out of order",
			mutate: func(c *domain.TaxYearConstants) {
				c.QuarterlyDueDates[1], c.QuarterlyDueDates[2] = c.QuarterlyDueDates[2], c.QuarterlyDueDates[1]
			},
			errMsg: "ascending order",
		},
		{
			name: "Inverted potential deduction range",
			mutate: func(c *domain.TaxYearConstants) {
				c.PotentialDeductionRange.Min = decimal.RequireFromString("0.5")
			},
			errMsg: "range min cannot exceed max",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := freshConstants(t, 2025)
			require.NoError(t, ValidateConstants(c))

			tt.mutate(&c)
			err := ValidateConstants(c)

			assert.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestValidateConstants_ReportsFirstInvalidRate(t *testing.T) {
	c := freshConstants(t, 2025)
	c.UnderpaymentRate = decimal.NewFromInt(3)
	c.Credits.EducationCreditRate = decimal.NewFromInt(-1)
	c.AdditionalMedicareRate = decimal.NewFromInt(2)

	for i := 0; i < 20; i++ {
		err := ValidateConstants(c)
		require.Error(t, err)
		assert.Equal(t, "additional medicare rate must be between 0 and 1", err.Error())
	}
}

func TestEmbeddedTablesDiffer(t *testing.T) {
	c2024 := freshConstants(t, 2024)
	c2025 := freshConstants(t, 2025)

	assert.True(t, c2024.SocialSecurityWageBase.LessThan(c2025.SocialSecurityWageBase))
	assert.True(t, c2024.StandardDeductionFor(domain.FilingStatusSingle).Equal(decimal.NewFromInt(14600)))
	assert.True(t, c2024.SALTCap.Equal(decimal.NewFromInt(10000)))
	assert.True(t, c2025.SALTCap.Equal(decimal.NewFromInt(40000)))
}
