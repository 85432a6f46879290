package scenes

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/setax/internal/compare"
	"github.com/rgehrsitz/setax/internal/domain"
	"github.com/rgehrsitz/setax/internal/tui/tuistyles"
)

// CompareModel shows every loaded scenario against a chosen base
type CompareModel struct {
	engine    *compare.CompareEngine
	set       *domain.ScenarioSet
	baseIndex int
	result    *compare.ComparisonSet
	err       error
	width     int
	height    int
}

// NewCompareModel creates a new compare scene model
func NewCompareModel(engine *compare.CompareEngine) *CompareModel {
	return &CompareModel{engine: engine}
}

// SetScenarios updates the scenario set and reruns the comparison
func (m *CompareModel) SetScenarios(set *domain.ScenarioSet) {
	m.set = set
	m.baseIndex = 0
	m.run()
}

// SetSize updates the model dimensions
func (m *CompareModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Result returns the latest comparison
func (m *CompareModel) Result() *compare.ComparisonSet { return m.result }

// run compares the base scenario against all the others
func (m *CompareModel) run() {
	m.result, m.err = nil, nil
	if m.set == nil || len(m.set.Scenarios) == 0 {
		return
	}

	base := m.set.Scenarios[m.baseIndex].Name
	var others []string
	for i, s := range m.set.Scenarios {
		if i != m.baseIndex {
			others = append(others, s.Name)
		}
	}

	m.result, m.err = m.engine.CompareScenarios(context.Background(), m.set, base, others)
}

// Update handles messages for the compare scene
func (m *CompareModel) Update(msg tea.Msg) (*CompareModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || m.set == nil {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("up", "k"))):
		if m.baseIndex > 0 {
			m.baseIndex--
			m.run()
		}

	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("down", "j"))):
		if m.baseIndex < len(m.set.Scenarios)-1 {
			m.baseIndex++
			m.run()
		}
	}

	return m, nil
}

// View renders the compare scene
func (m *CompareModel) View() string {
	if m.err != nil {
		return tuistyles.ErrorStyle.Render("Comparison failed: " + m.err.Error())
	}
	if m.result == nil {
		return "Load a scenario file to compare scenarios.\n\nPress ESC to return to the estimator."
	}

	var sb strings.Builder
	sb.WriteString(tuistyles.TitleStyle.Render("Base: " + m.result.BaseScenarioName))
	sb.WriteString("\n\n")

	header := fmt.Sprintf("%-24s %14s %14s %10s %14s", "Scenario", "Total Tax", "Owed/Refund", "Eff. Rate", "vs Base")
	sb.WriteString(tuistyles.TableHeaderStyle.Render(header))
	sb.WriteString("\n")

	sb.WriteString(tuistyles.TableHighlightStyle.Render(m.row(m.result.BaseResult, "base")))
	sb.WriteString("\n")
	for i := range m.result.AlternativeResults {
		alt := &m.result.AlternativeResults[i]
		delta := tuistyles.FormatCurrency(alt.TaxDiffFromBase)
		if alt.TaxDiffFromBase.IsPositive() {
			delta = "+" + delta
		}
		style := tuistyles.TableCellStyle
		if !alt.TaxDiffFromBase.IsZero() {
			style = tuistyles.MetricTrendStyle(alt.TaxDiffFromBase.IsNegative())
		}
		sb.WriteString(style.Render(m.row(alt, delta)))
		sb.WriteString("\n")
	}

	if len(m.result.Recommendations) > 0 {
		sb.WriteString("\n")
		for _, rec := range m.result.Recommendations {
			sb.WriteString("• " + rec + "\n")
		}
	}

	content := tuistyles.BorderStyle.Render(strings.TrimRight(sb.String(), "\n"))
	return lipgloss.JoinVertical(lipgloss.Left, content, "", "↑/k ↓/j choose base scenario • ESC back")
}

func (m *CompareModel) row(r *compare.ComparisonResult, delta string) string {
	name := r.ScenarioName
	if len(name) > 24 {
		name = name[:21] + "..."
	}
	return fmt.Sprintf("%-24s %14s %14s %10s %14s",
		name,
		tuistyles.FormatCurrency(r.TotalTax),
		tuistyles.FormatCurrency(r.TaxOwedOrRefund),
		tuistyles.FormatRate(r.EffectiveRate),
		delta)
}
