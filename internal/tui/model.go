package tui

import (
	"errors"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/setax/internal/breakeven"
	"github.com/rgehrsitz/setax/internal/calculation"
	"github.com/rgehrsitz/setax/internal/compare"
	"github.com/rgehrsitz/setax/internal/config"
	"github.com/rgehrsitz/setax/internal/domain"
	"github.com/rgehrsitz/setax/internal/tui/scenes"
	"github.com/rgehrsitz/setax/internal/tui/tuimsg"
)

// keyMap holds the global bindings. Function keys are used so they never
// collide with typing in the estimator form.
type keyMap struct {
	Help      key.Binding
	Estimate  key.Binding
	Scenarios key.Binding
	Compare   key.Binding
	Solve     key.Binding
	Back      key.Binding
	Quit      key.Binding
}

var keys = keyMap{
	Help:      key.NewBinding(key.WithKeys("f1"), key.WithHelp("F1", "help")),
	Estimate:  key.NewBinding(key.WithKeys("f2"), key.WithHelp("F2", "estimate")),
	Scenarios: key.NewBinding(key.WithKeys("f3"), key.WithHelp("F3", "scenarios")),
	Compare:   key.NewBinding(key.WithKeys("f4"), key.WithHelp("F4", "compare")),
	Solve:     key.NewBinding(key.WithKeys("f5"), key.WithHelp("F5", "solve")),
	Back:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
	Quit:      key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
}

// Model represents the entire application state
type Model struct {
	currentScene  Scene
	previousScene Scene

	width  int
	height int

	scenarioPath string
	parser       *config.InputParser
	set          *domain.ScenarioSet

	calc *calculation.Calculator

	estimateModel  *scenes.EstimateModel
	scenariosModel *scenes.ScenariosModel
	compareModel   *scenes.CompareModel
	solveModel     *scenes.SolveModel

	err     error
	loading bool
	status  string
}

// NewModel creates a new application model. An empty scenarioPath starts
// with a blank estimator form.
func NewModel(calc *calculation.Calculator, parser *config.InputParser, scenarioPath string) Model {
	return Model{
		currentScene:   SceneEstimate,
		scenarioPath:   scenarioPath,
		parser:         parser,
		calc:           calc,
		estimateModel:  scenes.NewEstimateModel(calc),
		scenariosModel: scenes.NewScenariosModel(),
		compareModel:   scenes.NewCompareModel(compare.NewCompareEngine(calc)),
		solveModel:     scenes.NewSolveModel(breakeven.NewDefaultSolver(calc)),
		loading:        scenarioPath != "",
		width:          80,
		height:         24,
	}
}

// Init initializes the model (required by tea.Model interface)
func (m Model) Init() tea.Cmd {
	if m.scenarioPath == "" {
		return nil
	}
	return loadScenariosCmd(m.parser, m.scenarioPath)
}

// loadScenariosCmd returns a command that loads the scenario file
func loadScenariosCmd(parser *config.InputParser, path string) tea.Cmd {
	return func() tea.Msg {
		if parser == nil {
			return tuimsg.ErrorMsg{Err: errors.New("no input parser configured")}
		}
		set, err := parser.LoadFromFile(path)
		if err != nil {
			return tuimsg.ErrorMsg{Err: err}
		}
		return ScenariosLoadedMsg{Set: set}
	}
}

// CurrentScene returns the scene being displayed
func (m Model) CurrentScene() Scene { return m.currentScene }

// Err returns the error being displayed, if any
func (m Model) Err() error { return m.err }
