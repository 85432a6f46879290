package tui

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rgehrsitz/setax/internal/calculation"
	"github.com/rgehrsitz/setax/internal/config"
	"github.com/rgehrsitz/setax/internal/domain"
	"github.com/rgehrsitz/setax/internal/tui/tuimsg"
)

func newTestModel(t *testing.T, path string) Model {
	t.Helper()
	reg, err := config.LoadDefaultConstants()
	require.NoError(t, err)
	constants, err := reg.Get(2025)
	require.NoError(t, err)
	states, err := config.LoadDefaultStates()
	require.NoError(t, err)
	return NewModel(calculation.NewCalculator(constants, states), config.NewInputParser(states), path)
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	out, ok := next.(Model)
	require.True(t, ok)
	return out
}

func sampleSet() *domain.ScenarioSet {
	return &domain.ScenarioSet{
		TaxYear: 2025,
		Scenarios: []domain.Scenario{
			{Name: "baseline", Inputs: domain.TaxInputs{
				GrossIncome:      decimal.NewFromInt(80000),
				BusinessExpenses: decimal.NewFromInt(10000),
				FilingStatus:     domain.FilingStatusSingle,
				StateCode:        "TX",
			}},
			{Name: "california", Inputs: domain.TaxInputs{
				GrossIncome:      decimal.NewFromInt(80000),
				BusinessExpenses: decimal.NewFromInt(10000),
				FilingStatus:     domain.FilingStatusSingle,
				StateCode:        "CA",
			}},
		},
	}
}

func TestModel_InitWithoutFile(t *testing.T) {
	m := newTestModel(t, "")
	assert.Nil(t, m.Init())
	assert.Equal(t, SceneEstimate, m.CurrentScene())
	assert.Contains(t, m.View(), "SETAX")
}

func TestModel_InitLoadsScenarioFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenarios.yaml")
	yaml := `tax_year: 2025
scenarios:
  - name: baseline
    inputs:
      gross_income: 80000
      business_expenses: 10000
      filing_status: single
      state_code: TX
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))

	m := newTestModel(t, path)
	cmd := m.Init()
	require.NotNil(t, cmd)

	msg := cmd()
	loaded, ok := msg.(ScenariosLoadedMsg)
	require.True(t, ok, "got %T", msg)
	require.Len(t, loaded.Set.Scenarios, 1)

	m = update(t, m, loaded)
	assert.Equal(t, "baseline", m.estimateModel.Name())
	assert.Equal(t, "15651.71", m.estimateModel.Result().TotalTax.StringFixed(2))
}

func TestModel_InitMissingFile(t *testing.T) {
	m := newTestModel(t, filepath.Join(t.TempDir(), "missing.yaml"))
	msg := m.Init()()
	_, ok := msg.(tuimsg.ErrorMsg)
	assert.True(t, ok)
}

func TestModel_Navigation(t *testing.T) {
	m := newTestModel(t, "")
	m = update(t, m, ScenariosLoadedMsg{Set: sampleSet()})

	tests := []struct {
		key  tea.KeyType
		want Scene
	}{
		{tea.KeyF1, SceneHelp},
		{tea.KeyF3, SceneScenarios},
		{tea.KeyF4, SceneCompare},
		{tea.KeyF5, SceneSolve},
		{tea.KeyEsc, SceneEstimate},
		{tea.KeyF2, SceneEstimate},
	}
	for _, tt := range tests {
		m = update(t, m, tea.KeyMsg{Type: tt.key})
		assert.Equal(t, tt.want, m.CurrentScene(), "after %v", tt.key)
	}
}

func TestModel_ScenarioSelectedLoadsEstimate(t *testing.T) {
	m := newTestModel(t, "")
	m = update(t, m, ScenariosLoadedMsg{Set: sampleSet()})
	m = update(t, m, NavigateMsg{Scene: SceneScenarios})

	m = update(t, m, tuimsg.ScenarioSelectedMsg{ScenarioName: "california"})
	assert.Equal(t, SceneEstimate, m.CurrentScene())
	assert.Equal(t, "california", m.estimateModel.Name())
	assert.Equal(t, "4585.33", m.estimateModel.Result().StateTax.StringFixed(2))

	m = update(t, m, tuimsg.ScenarioSelectedMsg{ScenarioName: "nope"})
	assert.Error(t, m.Err())
}

func TestModel_ErrorDismissedByKey(t *testing.T) {
	m := newTestModel(t, "")
	m = update(t, m, tuimsg.ErrorMsg{Err: errors.New("boom")})
	assert.Contains(t, m.View(), "boom")

	m = update(t, m, tea.KeyMsg{Type: tea.KeyF4})
	assert.NoError(t, m.Err())
	assert.Equal(t, SceneEstimate, m.CurrentScene())
}

func TestModel_SolveUsesEstimateInputs(t *testing.T) {
	m := newTestModel(t, "")
	m = update(t, m, ScenariosLoadedMsg{Set: sampleSet()})
	m = update(t, m, tea.KeyMsg{Type: tea.KeyF5})

	view := m.View()
	assert.Equal(t, SceneSolve, m.CurrentScene())
	assert.Contains(t, view, "Break-Even Solver")
	assert.Contains(t, view, "baseline")
}

func TestModel_QuitKey(t *testing.T) {
	m := newTestModel(t, "")
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}
