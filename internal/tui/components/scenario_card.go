package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/setax/internal/domain"
	"github.com/rgehrsitz/setax/internal/tui/tuistyles"
)

// ScenarioCard displays a compact scenario overview
type ScenarioCard struct {
	Name        string
	Description string
	Filing      string // filing status and state, e.g. "Single · TX"
	Highlights  []string
	IsSelected  bool
	Width       int
}

// NewScenarioCard creates a new scenario card
func NewScenarioCard(name string) *ScenarioCard {
	return &ScenarioCard{
		Name:       name,
		Highlights: []string{},
		Width:      50,
	}
}

// ScenarioCardFor builds a card summarizing a scenario's inputs
func ScenarioCardFor(s domain.Scenario) *ScenarioCard {
	in := s.Inputs
	card := NewScenarioCard(s.Name).
		WithDescription(s.Description).
		WithFiling(fmt.Sprintf("%s · %s", in.FilingStatus.OrSingle().Label(), strings.ToUpper(in.StateCode)))

	card.AddHighlight("Gross " + tuistyles.FormatCurrency(in.GrossIncome))
	if in.BusinessExpenses.IsPositive() {
		card.AddHighlight("Expenses " + tuistyles.FormatCurrency(in.BusinessExpenses))
	}
	if in.Advanced != nil {
		if in.Advanced.W2Income.IsPositive() {
			card.AddHighlight("W-2 " + tuistyles.FormatCurrency(in.Advanced.W2Income))
		}
		if kids := in.Advanced.DependentsUnder17 + in.Advanced.DependentsOver17; kids > 0 {
			card.AddHighlight(fmt.Sprintf("%d dependents", kids))
		}
	}
	return card
}

// WithDescription adds a description
func (s *ScenarioCard) WithDescription(desc string) *ScenarioCard {
	s.Description = desc
	return s
}

// WithFiling sets the filing summary line
func (s *ScenarioCard) WithFiling(filing string) *ScenarioCard {
	s.Filing = filing
	return s
}

// AddHighlight adds a key input
func (s *ScenarioCard) AddHighlight(highlight string) *ScenarioCard {
	s.Highlights = append(s.Highlights, highlight)
	return s
}

// SetSelected marks the card as selected
func (s *ScenarioCard) SetSelected(selected bool) *ScenarioCard {
	s.IsSelected = selected
	return s
}

// WithWidth sets the card width
func (s *ScenarioCard) WithWidth(width int) *ScenarioCard {
	s.Width = width
	return s
}

// Render returns the styled scenario card
func (s *ScenarioCard) Render() string {
	var content strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(tuistyles.ColorPrimary)
	content.WriteString(titleStyle.Render(s.Name))
	content.WriteString("\n")

	if s.Filing != "" {
		filingStyle := lipgloss.NewStyle().
			Foreground(tuistyles.ColorMuted).
			Italic(true)
		content.WriteString(filingStyle.Render("→ " + s.Filing))
		content.WriteString("\n")
	}

	if s.Description != "" {
		content.WriteString("\n")
		descStyle := lipgloss.NewStyle().
			Foreground(tuistyles.ColorForeground)
		content.WriteString(descStyle.Render(s.Description))
		content.WriteString("\n")
	}

	if len(s.Highlights) > 0 {
		content.WriteString("\n")
		highlightStyle := lipgloss.NewStyle().
			Foreground(tuistyles.ColorMuted)
		for _, h := range s.Highlights {
			content.WriteString(highlightStyle.Render("• " + h))
			content.WriteString("\n")
		}
	}

	border := tuistyles.ColorBorder
	if s.IsSelected {
		border = tuistyles.ColorPrimary
	}
	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(1, 2).
		Width(s.Width)

	return cardStyle.Render(strings.TrimRight(content.String(), "\n"))
}

// RenderCompact returns a compact single-line version
func (s *ScenarioCard) RenderCompact() string {
	var parts []string

	nameStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(tuistyles.ColorPrimary)
	parts = append(parts, nameStyle.Render(s.Name))

	// First highlight only
	if len(s.Highlights) > 0 {
		highlightStyle := lipgloss.NewStyle().
			Foreground(tuistyles.ColorMuted)
		parts = append(parts, highlightStyle.Render("• "+s.Highlights[0]))
	}

	return strings.Join(parts, " ")
}

// ScenarioListCompact renders a compact list for selection menus
func ScenarioListCompact(cards []*ScenarioCard, selectedIndex int) string {
	if len(cards) == 0 {
		return tuistyles.InfoStyle.Render("No scenarios available")
	}

	rendered := make([]string, len(cards))
	for i, card := range cards {
		prefix := "  "
		style := tuistyles.UnselectedItemStyle

		if i == selectedIndex {
			prefix = "▸ "
			style = tuistyles.SelectedItemStyle
		}

		rendered[i] = style.Render(fmt.Sprintf("%s%s", prefix, card.RenderCompact()))
	}

	return strings.Join(rendered, "\n")
}
