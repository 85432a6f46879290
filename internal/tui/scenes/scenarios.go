package scenes

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/setax/internal/domain"
	"github.com/rgehrsitz/setax/internal/tui/components"
	"github.com/rgehrsitz/setax/internal/tui/tuimsg"
	"github.com/rgehrsitz/setax/internal/tui/tuistyles"
)

// ScenariosModel represents the scenarios browsing scene
type ScenariosModel struct {
	scenarios     []domain.Scenario
	selectedIndex int
	cards         []*components.ScenarioCard
	width         int
	height        int
}

// NewScenariosModel creates a new scenarios scene model
func NewScenariosModel() *ScenariosModel {
	return &ScenariosModel{
		scenarios: []domain.Scenario{},
		cards:     []*components.ScenarioCard{},
	}
}

// SetScenarios updates the scenarios list
func (m *ScenariosModel) SetScenarios(scenarios []domain.Scenario) {
	m.scenarios = scenarios
	m.cards = make([]*components.ScenarioCard, 0, len(scenarios))
	for _, s := range scenarios {
		m.cards = append(m.cards, components.ScenarioCardFor(s).WithWidth(50))
	}

	if m.selectedIndex >= len(m.scenarios) {
		m.selectedIndex = 0
	}
}

// SetSize updates the scene dimensions
func (m *ScenariosModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// SelectedScenario returns the currently selected scenario name
func (m *ScenariosModel) SelectedScenario() string {
	if m.selectedIndex >= 0 && m.selectedIndex < len(m.scenarios) {
		return m.scenarios[m.selectedIndex].Name
	}
	return ""
}

// Update handles messages for the scenarios scene
func (m *ScenariosModel) Update(msg tea.Msg) (*ScenariosModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("up", "k"))):
		if m.selectedIndex > 0 {
			m.selectedIndex--
		}

	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("down", "j"))):
		if m.selectedIndex < len(m.scenarios)-1 {
			m.selectedIndex++
		}

	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("g"))):
		m.selectedIndex = 0

	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("G"))):
		m.selectedIndex = max(0, len(m.scenarios)-1)

	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("enter"))):
		return m, m.selectScenario()
	}

	return m, nil
}

// selectScenario returns a command to load the current scenario into the estimator
func (m *ScenariosModel) selectScenario() tea.Cmd {
	name := m.SelectedScenario()
	if name == "" {
		return nil
	}

	return func() tea.Msg {
		return tuimsg.ScenarioSelectedMsg{ScenarioName: name}
	}
}

// View renders the scenarios scene
func (m *ScenariosModel) View() string {
	if len(m.scenarios) == 0 {
		return `No scenarios available.

Start the estimator with a scenario file to browse saved inputs.

Press ESC to return to the estimator.`
	}

	for i, card := range m.cards {
		card.SetSelected(i == m.selectedIndex)
	}

	listStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(tuistyles.ColorBorder).
		Padding(1, 2).
		Width(40)

	title := tuistyles.TitleStyle.Render(fmt.Sprintf("Scenarios (%d)", len(m.scenarios)))
	leftPane := listStyle.Render(title + "\n\n" + components.ScenarioListCompact(m.cards, m.selectedIndex))
	rightPane := m.cards[m.selectedIndex].Render()

	content := lipgloss.JoinHorizontal(lipgloss.Top, leftPane, "  ", rightPane)
	return content + "\n\n" + strings.Join([]string{
		"↑/k up", "↓/j down", "Enter load into estimator", "g top", "G bottom", "ESC back",
	}, " • ")
}
