package calculation

import (
	"testing"

	"github.com/rgehrsitz/setax/internal/config"
	"github.com/rgehrsitz/setax/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func constants2025(t *testing.T) domain.TaxYearConstants {
	t.Helper()
	reg, err := config.LoadDefaultConstants()
	require.NoError(t, err)
	c, err := reg.Get(2025)
	require.NoError(t, err)
	return c
}

func states(t *testing.T) domain.StateRateTable {
	t.Helper()
	table, err := config.LoadDefaultStates()
	require.NoError(t, err)
	return table
}

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertMoney(t *testing.T, expected string, actual decimal.Decimal, msg string) {
	t.Helper()
	if !actual.Round(2).Equal(d(expected)) {
		t.Errorf("%s = %s, expected %s", msg, actual.StringFixed(2), expected)
	}
}

// TestLogger records log calls
type TestLogger struct {
	Debugs []string
	Warns  []string
}

func (l *TestLogger) Debugf(format string, args ...any) { l.Debugs = append(l.Debugs, format) }
func (l *TestLogger) Infof(format string, args ...any)  {}
func (l *TestLogger) Warnf(format string, args ...any)  { l.Warns = append(l.Warns, format) }
func (l *TestLogger) Errorf(format string, args ...any) {}
