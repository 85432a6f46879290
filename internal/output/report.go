package output

import (
	"time"

	"github.com/rgehrsitz/setax/internal/domain"
)

// EstimateEntry pairs a named input set with the engine's result for it
type EstimateEntry struct {
	Name        string           `yaml:"name" json:"name"`
	Description string           `yaml:"description,omitempty" json:"description,omitempty"`
	Inputs      domain.TaxInputs `yaml:"inputs" json:"inputs"`
	Result      domain.TaxResult `yaml:"result" json:"result"`
}

// EstimateReport is the document every Formatter renders
type EstimateReport struct {
	TaxYear     int             `yaml:"tax_year" json:"taxYear"`
	GeneratedAt time.Time       `yaml:"generated_at" json:"generatedAt"`
	Assumptions []string        `yaml:"assumptions" json:"assumptions"`
	Entries     []EstimateEntry `yaml:"scenarios" json:"scenarios"`
}

// NewEstimateReport builds a report stamped with the current time
func NewEstimateReport(taxYear int, entries ...EstimateEntry) *EstimateReport {
	return &EstimateReport{
		TaxYear:     taxYear,
		GeneratedAt: time.Now(),
		Assumptions: DefaultAssumptions,
		Entries:     entries,
	}
}

// Add appends an entry and returns the report for chaining
func (r *EstimateReport) Add(entry EstimateEntry) *EstimateReport {
	r.Entries = append(r.Entries, entry)
	return r
}
