package scenes

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rgehrsitz/setax/internal/breakeven"
	"github.com/rgehrsitz/setax/internal/calculation"
	"github.com/rgehrsitz/setax/internal/compare"
	"github.com/rgehrsitz/setax/internal/config"
	"github.com/rgehrsitz/setax/internal/domain"
	"github.com/rgehrsitz/setax/internal/tui/tuimsg"
)

func newTestCalculator(t *testing.T) *calculation.Calculator {
	t.Helper()
	reg, err := config.LoadDefaultConstants()
	require.NoError(t, err)
	constants, err := reg.Get(2025)
	require.NoError(t, err)
	states, err := config.LoadDefaultStates()
	require.NoError(t, err)
	return calculation.NewCalculator(constants, states)
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func baselineScenario() domain.Scenario {
	return domain.Scenario{
		Name: "baseline",
		Inputs: domain.TaxInputs{
			GrossIncome:      decimal.NewFromInt(80000),
			BusinessExpenses: decimal.NewFromInt(10000),
			FilingStatus:     domain.FilingStatusSingle,
			StateCode:        "CA",
		},
	}
}

func TestEstimateModel_TypingRecomputes(t *testing.T) {
	m := NewEstimateModel(newTestCalculator(t))
	assert.True(t, m.Result().TotalTax.IsZero())

	m, cmd := m.Update(runes("80000"))
	require.NotNil(t, cmd)
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, FieldExpenses, m.Focused())
	m, _ = m.Update(runes("10000"))

	assert.Equal(t, "15651.71", m.Result().TotalTax.StringFixed(2))
	assert.Equal(t, "3912.93", m.Result().QuarterlyPayment.StringFixed(2))
}

func TestEstimateModel_RejectsLetters(t *testing.T) {
	m := NewEstimateModel(newTestCalculator(t))
	m, cmd := m.Update(runes("abc"))
	assert.Nil(t, cmd)
	assert.True(t, m.Inputs().GrossIncome.IsZero())
}

func TestEstimateModel_StateToggle(t *testing.T) {
	m := NewEstimateModel(newTestCalculator(t))
	m.SetScenario(baselineScenario())

	withState := m.Result()
	assert.Equal(t, "4585.33", withState.StateTax.StringFixed(2))
	assert.True(t, m.IncludeState())

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlT})
	assert.False(t, m.IncludeState())
	assert.Equal(t, "15651.71", m.Result().TotalTax.StringFixed(2))
	assert.True(t, withState.TotalTax.GreaterThan(m.Result().TotalTax))
}

func TestEstimateModel_LoadedScenarioMatchesEngine(t *testing.T) {
	calc := newTestCalculator(t)
	s := domain.Scenario{
		Name: "itemizer",
		Inputs: domain.TaxInputs{
			GrossIncome:  decimal.NewFromInt(120000),
			FilingStatus: domain.FilingStatusSingle,
			StateCode:    "CA",
			Advanced: &domain.AdvancedInputs{
				MortgageInterest:     decimal.NewFromInt(20000),
				HomeOfficeSquareFeet: decimal.NewFromInt(200),
				StudentTuition:       decimal.NewFromInt(5000),
				StateTaxesWithheld:   decimal.NewFromInt(6000),
			},
		},
	}
	want := calc.CalculateTax(s.Inputs)
	require.Equal(t, domain.DeductionItemized, want.DeductionUsed)

	m := NewEstimateModel(calc)
	m.SetScenario(s)

	got := m.Result()
	assert.True(t, want.TotalTax.Equal(got.TotalTax), "total tax %s, engine %s", got.TotalTax, want.TotalTax)
	assert.Equal(t, want.DeductionUsed, got.DeductionUsed)
	assert.True(t, want.ItemizedDeductions.Equal(got.ItemizedDeductions))
	assert.True(t, want.Credits.TotalCredits.Equal(got.Credits.TotalCredits))

	adv := m.Inputs().AdvancedOrZero()
	assert.True(t, adv.MortgageInterest.Equal(decimal.NewFromInt(20000)))
	assert.True(t, adv.HomeOfficeSquareFeet.Equal(decimal.NewFromInt(200)))
	assert.True(t, adv.StudentTuition.Equal(decimal.NewFromInt(5000)))
	assert.True(t, adv.StateTaxesWithheld.Equal(decimal.NewFromInt(6000)))
}

func TestEstimateModel_CycleFilingStatus(t *testing.T) {
	m := NewEstimateModel(newTestCalculator(t))
	m.SetScenario(baselineScenario())
	single := m.Result().TotalTax

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	require.Equal(t, FieldStatus, m.Focused())

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRight})
	require.NotNil(t, cmd)
	assert.Equal(t, domain.FilingStatusMarriedFilingJointly, m.Inputs().FilingStatus)
	assert.True(t, m.Result().TotalTax.LessThan(single))

	msg := cmd()
	changed, ok := msg.(tuimsg.InputsChangedMsg)
	require.True(t, ok)
	assert.Equal(t, domain.FilingStatusMarriedFilingJointly, changed.Inputs.FilingStatus)

	for _, want := range domain.FilingStatuses[2:] {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRight})
		assert.Equal(t, want, m.Inputs().FilingStatus)
	}
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, domain.FilingStatuses[0], m.Inputs().FilingStatus, "cycling wraps around")

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, domain.FilingStatuses[len(domain.FilingStatuses)-1], m.Inputs().FilingStatus)
}

func TestEstimateModel_View(t *testing.T) {
	m := NewEstimateModel(newTestCalculator(t))
	m.SetScenario(baselineScenario())
	out := m.View()
	assert.Contains(t, out, "Gross income")
	assert.Contains(t, out, "Filing status")
}

func TestScenariosModel_SelectSendsMessage(t *testing.T) {
	m := NewScenariosModel()
	assert.Contains(t, m.View(), "No scenarios")

	second := baselineScenario()
	second.Name = "jointly"
	m.SetScenarios([]domain.Scenario{baselineScenario(), second})

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, "jointly", m.SelectedScenario())

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Equal(t, tuimsg.ScenarioSelectedMsg{ScenarioName: "jointly"}, cmd())
}

func TestCompareModel_BaseSelection(t *testing.T) {
	calc := newTestCalculator(t)
	m := NewCompareModel(compare.NewCompareEngine(calc))
	assert.Nil(t, m.Result())

	tx := baselineScenario()
	tx.Name = "texas"
	tx.Inputs.StateCode = "TX"
	m.SetScenarios(&domain.ScenarioSet{Scenarios: []domain.Scenario{baselineScenario(), tx}})

	require.NotNil(t, m.Result())
	assert.Equal(t, "baseline", m.Result().BaseScenarioName)
	require.Len(t, m.Result().AlternativeResults, 1)
	assert.Equal(t, "-4585.33", m.Result().AlternativeResults[0].TaxDiffFromBase.StringFixed(2))

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, "texas", m.Result().BaseScenarioName)
	assert.Contains(t, m.View(), "Base: texas")
}

func TestSolveModel_BreakEvenFlow(t *testing.T) {
	m := NewSolveModel(breakeven.NewDefaultSolver(newTestCalculator(t)))
	base := baselineScenario()
	base.Inputs.StateCode = "TX"
	m.SetBase(base)

	// Move to estimated payments, keep the default match-owed goal
	for i := 0; i < 3; i++ {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	}
	assert.Equal(t, breakeven.TargetPayments, m.Target())
	assert.Equal(t, breakeven.GoalMatchOwed, m.Goal())

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, ModeSetAmount, m.Mode())

	m, _ = m.Update(runes("0"))
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.True(t, m.Solving())

	batch, ok := cmd().(tea.BatchMsg)
	require.True(t, ok)
	var done *tuimsg.SolveCompleteMsg
	for _, c := range batch {
		if msg, ok := c().(tuimsg.SolveCompleteMsg); ok {
			done = &msg
		}
	}
	require.NotNil(t, done)
	require.NoError(t, done.Err)

	m.SetResult(done.Result, done.Err)
	assert.Equal(t, ModeShowResults, m.Mode())
	assert.True(t, m.Result().Success)
	assert.True(t, m.Result().TaxOwedOrRefund.Abs().LessThanOrEqual(decimal.NewFromInt(1)))
	assert.Contains(t, m.View(), "Converged")

	m, _ = m.Update(runes("n"))
	assert.Equal(t, ModeSelectTarget, m.Mode())
}

func TestSolveModel_GoalCycle(t *testing.T) {
	m := NewSolveModel(breakeven.NewDefaultSolver(newTestCalculator(t)))
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, breakeven.GoalMinimizeTax, m.Goal())
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, breakeven.GoalMatchOwed, m.Goal())
}

func TestSolveModel_NoBase(t *testing.T) {
	m := NewSolveModel(breakeven.NewDefaultSolver(newTestCalculator(t)))
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	msg, ok := cmd().(tuimsg.SolveCompleteMsg)
	require.True(t, ok)
	assert.Error(t, msg.Err)
}
