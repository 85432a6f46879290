package output

import (
	"bytes"
	"encoding/csv"

	"github.com/rgehrsitz/setax/internal/domain"
)

// CSVSummarizer implements the simple summary CSV output (one row per scenario).
type CSVSummarizer struct{}

func (c CSVSummarizer) Name() string { return "csv" }

func (c CSVSummarizer) Format(report *EstimateReport) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Scenario", "FilingStatus", "State", "GrossIncome", "AdjustedGrossIncome", "TaxableIncome",
		"FederalIncomeTax", "SelfEmploymentTax", "StateTax", "TotalCredits", "TotalTax", "TaxOwedOrRefund",
		"EffectiveRate", "QuarterlyPayment", "Notes"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, entry := range report.Entries {
		r := entry.Result
		row := []string{
			entry.Name,
			string(r.FilingStatus),
			r.StateCode,
			r.GrossIncome.StringFixed(2),
			r.AdjustedGrossIncome.StringFixed(2),
			r.TaxableIncome.StringFixed(2),
			r.FederalIncomeTax.StringFixed(2),
			r.SelfEmploymentTax.StringFixed(2),
			r.StateTax.StringFixed(2),
			r.Credits.TotalCredits.StringFixed(2),
			r.TotalTax.StringFixed(2),
			r.TaxOwedOrRefund.StringFixed(2),
			r.EffectiveRate.StringFixed(4),
			r.QuarterlyPayment.StringFixed(2),
			stateNote(r),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

// BracketCSVFormatter writes one row per federal bracket slice per scenario
type BracketCSVFormatter struct{}

func (c BracketCSVFormatter) Name() string { return "detailed-csv" }

func (c BracketCSVFormatter) Format(report *EstimateReport) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.Write([]string{"Scenario", "Min", "Max", "Rate", "TaxFromBracket"}); err != nil {
		return nil, err
	}
	for _, entry := range report.Entries {
		for _, b := range entry.Result.FederalBracketBreakdown {
			if err := w.Write(bracketRow(entry.Name, b)); err != nil {
				return nil, err
			}
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

func bracketRow(name string, b domain.BracketSlice) []string {
	upper := ""
	if b.Max != nil {
		upper = b.Max.StringFixed(2)
	}
	return []string{name, b.Min.StringFixed(2), upper, b.Rate.String(), b.TaxFromBracket.StringFixed(2)}
}
