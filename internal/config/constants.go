package config

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"

	"github.com/rgehrsitz/setax/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

//go:embed data/*.yaml
var embeddedData embed.FS

// DefaultTaxYear is used when no year is requested
const DefaultTaxYear = 2025

// ConstantsRegistry holds TaxYearConstants keyed by year. Adding a year is a
// data change only.
type ConstantsRegistry struct {
	years map[int]domain.TaxYearConstants
}

// NewConstantsRegistry creates an empty registry
func NewConstantsRegistry() *ConstantsRegistry {
	return &ConstantsRegistry{years: make(map[int]domain.TaxYearConstants)}
}

// LoadDefaultConstants returns a registry populated from the embedded tables
func LoadDefaultConstants() (*ConstantsRegistry, error) {
	reg := NewConstantsRegistry()
	files, err := fs.Glob(embeddedData, "data/tax_*.yaml")
	if err != nil {
		return nil, fmt.Errorf("failed to list embedded constants: %w", err)
	}
	sort.Strings(files)
	for _, name := range files {
		data, err := embeddedData.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("failed to read embedded %s: %w", name, err)
		}
		c, err := ParseConstants(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path.Base(name), err)
		}
		if err := reg.Add(c); err != nil {
			return nil, err
		}
	}
	return reg, nil
}

// Add validates c and registers it, replacing any table for the same year
func (r *ConstantsRegistry) Add(c domain.TaxYearConstants) error {
	if err := ValidateConstants(c); err != nil {
		return fmt.Errorf("tax year %d: %w", c.Year, err)
	}
	r.years[c.Year] = c
	return nil
}

// LoadFile reads a constants YAML file and adds it to the registry
func (r *ConstantsRegistry) LoadFile(filename string) (domain.TaxYearConstants, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return domain.TaxYearConstants{}, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	c, err := ParseConstants(data)
	if err != nil {
		return domain.TaxYearConstants{}, fmt.Errorf("%s: %w", filename, err)
	}
	if err := r.Add(c); err != nil {
		return domain.TaxYearConstants{}, err
	}
	return c, nil
}

// Get returns the constants for year
func (r *ConstantsRegistry) Get(year int) (domain.TaxYearConstants, error) {
	c, ok := r.years[year]
	if !ok {
		return domain.TaxYearConstants{}, fmt.Errorf("no tax constants for year %d (available: %v)", year, r.Years())
	}
	return c, nil
}

// Years lists the registered years in ascending order
func (r *ConstantsRegistry) Years() []int {
	years := make([]int, 0, len(r.years))
	for y := range r.years {
		years = append(years, y)
	}
	sort.Ints(years)
	return years
}

// ParseConstants decodes a constants document without validating it
func ParseConstants(data []byte) (domain.TaxYearConstants, error) {
	var c domain.TaxYearConstants
	if err := yaml.Unmarshal(data, &c); err != nil {
		return domain.TaxYearConstants{}, fmt.Errorf("failed to parse YAML: %w", err)
	}
	return c, nil
}

// ValidateConstants checks that a constants table can be used by the engine
func ValidateConstants(c domain.TaxYearConstants) error {
	if c.Year < 1913 {
		return fmt.Errorf("year is required")
	}
	for _, status := range domain.FilingStatuses {
		if err := validateBrackets(status, c.Brackets[status]); err != nil {
			return err
		}
		if d, ok := c.StandardDeduction[status]; !ok || d.IsNegative() {
			return fmt.Errorf("standard deduction for %s must be present and non-negative", status)
		}
		if t, ok := c.AdditionalMedicareThreshold[status]; !ok || t.IsNegative() {
			return fmt.Errorf("additional medicare threshold for %s must be present and non-negative", status)
		}
	}

	se := c.SelfEmployment
	rates := []struct {
		name string
		rate decimal.Decimal
	}{
		{"self-employment rate", se.Rate},
		{"social security rate", se.SocialSecurityRate},
		{"medicare rate", se.MedicareRate},
		{"net earnings factor", se.NetEarningsFactor},
		{"additional medicare rate", c.AdditionalMedicareRate},
		{"underpayment rate", c.UnderpaymentRate},
		{"education credit rate", c.Credits.EducationCreditRate},
		{"potential deduction range (min)", c.PotentialDeductionRange.Min},
		{"potential deduction range (max)", c.PotentialDeductionRange.Max},
	}
	for _, r := range rates {
		if err := validateRate(r.name, r.rate); err != nil {
			return err
		}
	}
	if !se.SocialSecurityRate.Add(se.MedicareRate).Equal(se.Rate) {
		return fmt.Errorf("self-employment rate %s must equal social security %s plus medicare %s",
			se.Rate, se.SocialSecurityRate, se.MedicareRate)
	}
	if !c.SocialSecurityWageBase.IsPositive() {
		return fmt.Errorf("social security wage base must be positive")
	}
	if se.FilingThreshold.IsNegative() {
		return fmt.Errorf("self-employment filing threshold cannot be negative")
	}
	if !c.IRAContributionLimit.IsPositive() {
		return fmt.Errorf("ira contribution limit must be positive")
	}
	if c.MileageRate.IsNegative() {
		return fmt.Errorf("mileage rate cannot be negative")
	}
	if len(c.QuarterlyDueDates) != 4 {
		return fmt.Errorf("expected 4 quarterly due dates, got %d", len(c.QuarterlyDueDates))
	}
	for i := 1; i < len(c.QuarterlyDueDates); i++ {
		if !c.QuarterlyDueDates[i].After(c.QuarterlyDueDates[i-1]) {
			return fmt.Errorf("quarterly due dates must be in ascending order")
		}
	}
	if c.PotentialDeductionRange.Min.GreaterThan(c.PotentialDeductionRange.Max) {
		return fmt.Errorf("potential deduction range min cannot exceed max")
	}
	return nil
}

// validateBrackets requires a non-empty, contiguous table starting at zero
// whose last bracket is open-ended
func validateBrackets(status domain.FilingStatus, brackets []domain.TaxBracket) error {
	if len(brackets) == 0 {
		return fmt.Errorf("brackets for %s are required", status)
	}
	if !brackets[0].Min.IsZero() {
		return fmt.Errorf("brackets for %s must start at 0", status)
	}
	for i, b := range brackets {
		if err := validateRate(fmt.Sprintf("%s bracket %d rate", status, i+1), b.Rate); err != nil {
			return err
		}
		upper, bounded := b.Upper()
		last := i == len(brackets)-1
		if last {
			if bounded {
				return fmt.Errorf("top bracket for %s must omit max", status)
			}
			break
		}
		if !bounded {
			return fmt.Errorf("only the top bracket for %s may omit max (bracket %d)", status, i+1)
		}
		if !upper.GreaterThan(b.Min) {
			return fmt.Errorf("bracket %d for %s has max <= min", i+1, status)
		}
		if !brackets[i+1].Min.Equal(upper) {
			return fmt.Errorf("brackets for %s are not contiguous at %s", status, upper)
		}
	}
	return nil
}

func validateRate(name string, rate decimal.Decimal) error {
	if rate.IsNegative() || rate.GreaterThan(decimal.NewFromInt(1)) {
		return fmt.Errorf("%s must be between 0 and 1", name)
	}
	return nil
}
