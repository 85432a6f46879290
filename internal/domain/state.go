package domain

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// StateRate is the flat income tax rate assumed for a state.
// No-income-tax states carry a zero rate.
type StateRate struct {
	Code string          `yaml:"code" json:"code"`
	Name string          `yaml:"name" json:"name"`
	Rate decimal.Decimal `yaml:"rate" json:"rate"`
}

// StateRateTable maps upper-case postal codes to rates
type StateRateTable map[string]StateRate

// NewStateRateTable indexes rates by code
func NewStateRateTable(rates []StateRate) StateRateTable {
	table := make(StateRateTable, len(rates))
	for _, r := range rates {
		r.Code = strings.ToUpper(strings.TrimSpace(r.Code))
		table[r.Code] = r
	}
	return table
}

// Lookup finds a state by code, case-insensitively
func (t StateRateTable) Lookup(code string) (StateRate, bool) {
	r, ok := t[strings.ToUpper(strings.TrimSpace(code))]
	return r, ok
}

// Rate returns the flat rate for code, or zero when the code is unknown
func (t StateRateTable) Rate(code string) decimal.Decimal {
	if r, ok := t.Lookup(code); ok {
		return r.Rate
	}
	return decimal.Zero
}

// Sorted returns the table ordered by code
func (t StateRateTable) Sorted() []StateRate {
	out := make([]StateRate, 0, len(t))
	for _, r := range t {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}
