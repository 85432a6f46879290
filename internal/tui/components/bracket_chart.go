package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/setax/internal/domain"
	"github.com/rgehrsitz/setax/internal/tui/tuistyles"
	"github.com/shopspring/decimal"
)

// BracketChart draws one horizontal bar per federal bracket, sized by the
// tax owed in that bracket
type BracketChart struct {
	Title  string
	Slices []domain.BracketSlice
	Width  int // width of the longest bar
}

// NewBracketChart creates a chart for a bracket breakdown
func NewBracketChart(title string, slices []domain.BracketSlice) *BracketChart {
	return &BracketChart{
		Title:  title,
		Slices: slices,
		Width:  30,
	}
}

// WithWidth sets the bar width
func (c *BracketChart) WithWidth(width int) *BracketChart {
	c.Width = width
	return c
}

// Render returns the styled chart
func (c *BracketChart) Render() string {
	if len(c.Slices) == 0 {
		return tuistyles.InfoStyle.Render("No federal income tax owed")
	}

	largest := decimal.Zero
	for _, s := range c.Slices {
		largest = decimal.Max(largest, s.TaxFromBracket)
	}

	barStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorChartBar)

	var content strings.Builder
	if c.Title != "" {
		content.WriteString(tuistyles.TitleStyle.Render(c.Title))
		content.WriteString("\n")
	}

	for _, s := range c.Slices {
		content.WriteString(fmt.Sprintf("%4s │", s.Rate.Mul(decimal.NewFromInt(100)).StringFixed(0)+"%"))
		content.WriteString(barStyle.Render(strings.Repeat("█", barLength(s.TaxFromBracket, largest, c.Width))))
		content.WriteString(" " + tuistyles.FormatCurrency(s.TaxFromBracket))
		content.WriteString("\n")
	}

	return strings.TrimRight(content.String(), "\n")
}

// barLength scales value against largest; any positive value gets at least one cell
func barLength(value, largest decimal.Decimal, width int) int {
	if !largest.IsPositive() || !value.IsPositive() || width <= 0 {
		return 0
	}
	n := int(value.Div(largest).Mul(decimal.NewFromInt(int64(width))).Round(0).IntPart())
	if n < 1 {
		n = 1
	}
	return n
}
