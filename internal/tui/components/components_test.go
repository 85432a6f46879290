package components

import (
	"strings"
	"testing"

	"github.com/rgehrsitz/setax/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestMetricCard_Render(t *testing.T) {
	card := NewMetricCard("Total Tax", "$15,651.71").
		WithTrend(false, true, "$840.00").
		WithDescription("federal + SE + state")

	out := card.Render()
	assert.Contains(t, out, "Total Tax")
	assert.Contains(t, out, "$15,651.71")
	assert.Contains(t, out, "▼ $840.00")
	assert.Contains(t, out, "federal + SE + state")

	compact := card.RenderCompact()
	assert.Contains(t, compact, "Total Tax:")
	assert.NotContains(t, compact, "\n")
}

func TestMetricGrid(t *testing.T) {
	assert.Empty(t, MetricGrid(nil, 2))

	cards := []*MetricCard{
		NewMetricCard("A", "1"),
		NewMetricCard("B", "2"),
		NewMetricCard("C", "3"),
	}
	out := MetricGrid(cards, 2)
	for _, want := range []string{"A", "B", "C"} {
		assert.Contains(t, out, want)
	}
}

func TestBracketChart_Render(t *testing.T) {
	assert.Contains(t, NewBracketChart("", nil).Render(), "No federal income tax owed")

	slices := []domain.BracketSlice{
		{Rate: decimal.RequireFromString("0.10"), TaxFromBracket: decimal.RequireFromString("1192.50")},
		{Rate: decimal.RequireFromString("0.12"), TaxFromBracket: decimal.RequireFromString("4386.00")},
		{Rate: decimal.RequireFromString("0.22"), TaxFromBracket: decimal.RequireFromString("182.52")},
	}
	out := NewBracketChart("Federal brackets", slices).WithWidth(20).Render()

	lines := strings.Split(out, "\n")
	assert.Len(t, lines, 4)
	assert.Contains(t, lines[0], "Federal brackets")
	assert.Contains(t, lines[1], "10%")
	assert.Contains(t, lines[2], strings.Repeat("█", 20))
	assert.Contains(t, lines[3], "$182.52")
}

func TestBarLength(t *testing.T) {
	largest := decimal.NewFromInt(1000)

	assert.Equal(t, 10, barLength(decimal.NewFromInt(1000), largest, 10))
	assert.Equal(t, 5, barLength(decimal.NewFromInt(500), largest, 10))
	assert.Equal(t, 1, barLength(decimal.NewFromInt(1), largest, 10), "tiny values still show")
	assert.Equal(t, 0, barLength(decimal.Zero, largest, 10))
	assert.Equal(t, 0, barLength(decimal.NewFromInt(5), decimal.Zero, 10))
}

func TestScenarioCardFor(t *testing.T) {
	s := domain.Scenario{
		Name:        "family",
		Description: "married with kids",
		Inputs: domain.TaxInputs{
			GrossIncome:      decimal.NewFromInt(120000),
			BusinessExpenses: decimal.NewFromInt(15000),
			FilingStatus:     domain.FilingStatusMarriedFilingJointly,
			StateCode:        "ca",
			Advanced:         &domain.AdvancedInputs{DependentsUnder17: 2, DependentsOver17: 1},
		},
	}

	card := ScenarioCardFor(s)
	assert.Equal(t, []string{"Gross $120,000.00", "Expenses $15,000.00", "3 dependents"}, card.Highlights)
	assert.Contains(t, card.Filing, "CA")

	out := card.SetSelected(true).Render()
	assert.Contains(t, out, "family")
	assert.Contains(t, out, "married with kids")

	list := ScenarioListCompact([]*ScenarioCard{card, NewScenarioCard("other")}, 0)
	assert.True(t, strings.HasPrefix(list, "▸ ") || strings.Contains(list, "▸ "))
	assert.Contains(t, ScenarioListCompact(nil, 0), "No scenarios available")
}
