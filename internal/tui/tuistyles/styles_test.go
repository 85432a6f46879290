package tuistyles

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "$0.00"},
		{"999.999", "$1,000.00"},
		{"1234.5", "$1,234.50"},
		{"15651.71", "$15,651.71"},
		{"1000000", "$1,000,000.00"},
		{"-2500", "$-2,500.00"},
		{"-0.001", "$0.00"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatCurrency(decimal.RequireFromString(tt.in)))
		})
	}
}

func TestFormatRate(t *testing.T) {
	assert.Equal(t, "15.30%", FormatRate(decimal.RequireFromString("0.153")))
	assert.Equal(t, "0.00%", FormatRate(decimal.Zero))
}

func TestTrendIndicator(t *testing.T) {
	assert.Equal(t, "▲", TrendIndicator(true))
	assert.Equal(t, "▼", TrendIndicator(false))
}
