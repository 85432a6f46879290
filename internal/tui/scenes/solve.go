package scenes

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/setax/internal/breakeven"
	"github.com/rgehrsitz/setax/internal/domain"
	"github.com/rgehrsitz/setax/internal/tui/tuimsg"
	"github.com/rgehrsitz/setax/internal/tui/tuistyles"
)

// SolveMode is the step the solve scene is on
type SolveMode int

const (
	ModeSelectTarget SolveMode = iota
	ModeSetAmount
	ModeShowResults
)

var solveGoals = []breakeven.SolveGoal{
	breakeven.GoalMatchOwed,
	breakeven.GoalMatchTotalTax,
	breakeven.GoalMinimizeTax,
}

// SolveModel represents the break-even solver scene
type SolveModel struct {
	solver      *breakeven.Solver
	base        *domain.Scenario
	targetIndex int
	goalIndex   int
	mode        SolveMode
	amountInput textinput.Model
	solving     bool
	result      *breakeven.SolveResult
	err         error
	width       int
	height      int
}

// NewSolveModel creates a new solve scene model
func NewSolveModel(solver *breakeven.Solver) *SolveModel {
	ti := textinput.New()
	ti.Placeholder = "0 to break even"
	ti.CharLimit = 12
	ti.Width = 20

	return &SolveModel{
		solver:      solver,
		mode:        ModeSelectTarget,
		amountInput: ti,
	}
}

// SetBase sets the scenario the solver varies
func (m *SolveModel) SetBase(s domain.Scenario) {
	m.base = &s
}

// SetSize updates the model dimensions
func (m *SolveModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Target returns the highlighted solve target
func (m *SolveModel) Target() breakeven.SolveTarget { return breakeven.SolveTargets[m.targetIndex] }

// Goal returns the highlighted goal
func (m *SolveModel) Goal() breakeven.SolveGoal { return solveGoals[m.goalIndex] }

// Mode returns the current step
func (m *SolveModel) Mode() SolveMode { return m.mode }

// Solving reports whether a solve is in flight
func (m *SolveModel) Solving() bool { return m.solving }

// Result returns the last solve result
func (m *SolveModel) Result() *breakeven.SolveResult { return m.result }

// SetResult records a finished solve
func (m *SolveModel) SetResult(result *breakeven.SolveResult, err error) {
	m.result = result
	m.err = err
	m.solving = false
	m.mode = ModeShowResults
	m.amountInput.Blur()
}

// Update handles messages for the solve scene
func (m *SolveModel) Update(msg tea.Msg) (*SolveModel, tea.Cmd) {
	if m.solving {
		return m, nil
	}
	switch m.mode {
	case ModeSelectTarget:
		return m.updateSelection(msg)
	case ModeSetAmount:
		return m.updateAmount(msg)
	case ModeShowResults:
		return m.updateResults(msg)
	}
	return m, nil
}

func (m *SolveModel) updateSelection(msg tea.Msg) (*SolveModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("up", "k"))):
		if m.targetIndex > 0 {
			m.targetIndex--
		}
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("down", "j"))):
		if m.targetIndex < len(breakeven.SolveTargets)-1 {
			m.targetIndex++
		}
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("right", "l"))):
		m.goalIndex = (m.goalIndex + 1) % len(solveGoals)
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("left", "h"))):
		m.goalIndex = (m.goalIndex + len(solveGoals) - 1) % len(solveGoals)
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("enter"))):
		if m.Goal() == breakeven.GoalMinimizeTax {
			return m, m.startSolve(nil)
		}
		m.mode = ModeSetAmount
		m.amountInput.Focus()
		return m, textinput.Blink
	}
	return m, nil
}

func (m *SolveModel) updateAmount(msg tea.Msg) (*SolveModel, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.Type {
		case tea.KeyEnter:
			raw := strings.TrimSpace(strings.ReplaceAll(m.amountInput.Value(), ",", ""))
			if raw == "" {
				raw = "0"
			}
			amount, err := decimal.NewFromString(raw)
			if err != nil {
				m.err = fmt.Errorf("invalid amount %q", m.amountInput.Value())
				return m, nil
			}
			m.err = nil
			return m, m.startSolve(&amount)

		case tea.KeyEsc:
			m.mode = ModeSelectTarget
			m.amountInput.Blur()
			m.err = nil
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.amountInput, cmd = m.amountInput.Update(msg)
	return m, cmd
}

func (m *SolveModel) updateResults(msg tea.Msg) (*SolveModel, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if key.Matches(keyMsg, key.NewBinding(key.WithKeys("n", "enter", "esc"))) {
			m.mode = ModeSelectTarget
			m.result = nil
			m.err = nil
		}
	}
	return m, nil
}

// startSolve runs the solver off the update loop and reports back
func (m *SolveModel) startSolve(amount *decimal.Decimal) tea.Cmd {
	if m.base == nil {
		return func() tea.Msg {
			return tuimsg.SolveCompleteMsg{Err: errors.New("no scenario to solve against")}
		}
	}

	req := breakeven.SolveRequest{
		BaseScenario: m.base,
		Target:       m.Target(),
		Goal:         m.Goal(),
	}
	if amount != nil {
		req.Constraints = breakeven.WithTarget(*amount)
	}

	m.solving = true
	solver := m.solver
	target := req.Target
	return tea.Batch(
		func() tea.Msg { return tuimsg.SolveStartedMsg{Target: target} },
		func() tea.Msg {
			result, err := solver.Solve(context.Background(), req)
			return tuimsg.SolveCompleteMsg{Result: result, Err: err}
		},
	)
}

// View renders the solve scene
func (m *SolveModel) View() string {
	if m.solving {
		return tuistyles.BorderStyle.Render(
			tuistyles.TitleStyle.Render("Solving...") + "\n\n⠋ Searching for " + describeTarget(m.Target()))
	}

	switch m.mode {
	case ModeSetAmount:
		return m.renderAmountInput()
	case ModeShowResults:
		return m.renderResults()
	default:
		return m.renderSelection()
	}
}

func (m *SolveModel) renderSelection() string {
	var content strings.Builder
	subtle := lipgloss.NewStyle().Foreground(tuistyles.ColorMuted)

	content.WriteString(tuistyles.TitleStyle.Render("Break-Even Solver"))
	content.WriteString("\n\n")
	if m.base != nil {
		content.WriteString(subtle.Render("Scenario: "))
		content.WriteString(m.base.Name)
		content.WriteString("\n\n")
	}

	content.WriteString(subtle.Render("Goal: "))
	content.WriteString(tuistyles.SelectedItemStyle.Render("‹ " + describeGoal(m.Goal()) + " ›"))
	content.WriteString("\n\n")

	for i, target := range breakeven.SolveTargets {
		if i == m.targetIndex {
			content.WriteString(tuistyles.SelectedItemStyle.Render("❯ " + describeTarget(target)))
		} else {
			content.WriteString(tuistyles.UnselectedItemStyle.Render("  " + describeTarget(target)))
		}
		content.WriteString("\n")
	}

	content.WriteString("\n")
	content.WriteString(subtle.Render("↑/↓ target • ←/→ goal • Enter to continue"))
	return tuistyles.BorderStyle.Render(content.String())
}

func (m *SolveModel) renderAmountInput() string {
	var content strings.Builder
	subtle := lipgloss.NewStyle().Foreground(tuistyles.ColorMuted)

	content.WriteString(tuistyles.TitleStyle.Render(describeGoal(m.Goal())))
	content.WriteString("\n\n")
	content.WriteString(subtle.Render("Varying: " + describeTarget(m.Target())))
	content.WriteString("\n\n")

	inputStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(tuistyles.ColorPrimary).
		Padding(0, 1)
	content.WriteString(inputStyle.Render("$ " + m.amountInput.View()))
	content.WriteString("\n\n")

	if m.err != nil {
		content.WriteString(tuistyles.ErrorStyle.Render(m.err.Error()))
		content.WriteString("\n\n")
	}
	content.WriteString(subtle.Render("Enter to solve • ESC to go back"))
	return tuistyles.BorderStyle.Render(content.String())
}

func (m *SolveModel) renderResults() string {
	var content strings.Builder
	label := lipgloss.NewStyle().Foreground(tuistyles.ColorMuted)

	content.WriteString(tuistyles.TitleStyle.Render("Solver Results"))
	content.WriteString("\n\n")

	if m.err != nil {
		content.WriteString(tuistyles.ErrorStyle.Render(m.err.Error()))
		content.WriteString("\n\n")
		content.WriteString(label.Render("n to start over"))
		return tuistyles.BorderStyle.Render(content.String())
	}
	if m.result == nil {
		content.WriteString(label.Render("No results available"))
		return tuistyles.BorderStyle.Render(content.String())
	}

	r := m.result
	status := tuistyles.MetricPositiveStyle.Render("✓ Converged")
	if !r.Success {
		status = tuistyles.MetricNegativeStyle.Render("✗ Not reached")
	}
	content.WriteString(status + "  " + label.Render(r.ConvergenceInfo))
	content.WriteString("\n\n")

	content.WriteString(breakeven.DescribeValue(r))
	content.WriteString("\n\n")

	rows := [][2]string{
		{"Base value", tuistyles.FormatCurrency(r.BaseValue)},
		{"Total tax", tuistyles.FormatCurrency(r.TotalTax)},
		{"Owed / refund", tuistyles.FormatCurrency(r.TaxOwedOrRefund)},
		{"Tax change", signedCurrency(r.TaxDiffFromBase)},
		{"Iterations", fmt.Sprintf("%d", r.Iterations)},
	}
	for _, row := range rows {
		content.WriteString(tuistyles.FieldLabelStyle.Render(row[0]))
		content.WriteString(row[1])
		content.WriteString("\n")
	}

	content.WriteString("\n")
	content.WriteString(label.Render("n to solve again • ESC back"))
	return tuistyles.BorderStyle.Render(content.String())
}

func signedCurrency(d decimal.Decimal) string {
	if d.IsPositive() {
		return "+" + tuistyles.FormatCurrency(d)
	}
	return tuistyles.FormatCurrency(d)
}

func describeTarget(t breakeven.SolveTarget) string {
	switch t {
	case breakeven.TargetGrossIncome:
		return "Gross business income"
	case breakeven.TargetExpenses:
		return "Business expenses"
	case breakeven.TargetIRA:
		return "Additional IRA contribution"
	case breakeven.TargetPayments:
		return "Additional estimated payments"
	}
	return string(t)
}

func describeGoal(g breakeven.SolveGoal) string {
	switch g {
	case breakeven.GoalMatchOwed:
		return "Match balance due"
	case breakeven.GoalMatchTotalTax:
		return "Match total tax"
	case breakeven.GoalMinimizeTax:
		return "Minimize total tax"
	}
	return string(g)
}
