package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/setax/internal/domain"
	"github.com/rgehrsitz/setax/internal/tui/scenes"
	"github.com/rgehrsitz/setax/internal/tui/tuimsg"
)

// Update handles all messages and updates the model state
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeScenes()
		return m, nil

	case NavigateMsg:
		return m.navigate(msg.Scene), nil

	case tuimsg.ErrorMsg:
		m.loading = false
		m.err = msg.Err
		return m, nil

	case ScenariosLoadedMsg:
		m.loading = false
		m.set = msg.Set
		if msg.Set != nil {
			m.scenariosModel.SetScenarios(msg.Set.Scenarios)
			m.compareModel.SetScenarios(msg.Set)
			if len(msg.Set.Scenarios) > 0 {
				m.estimateModel.SetScenario(msg.Set.Scenarios[0])
			}
			m.status = fmt.Sprintf("Loaded %d scenarios", len(msg.Set.Scenarios))
		}
		m.resizeScenes()
		return m, nil

	case tuimsg.ScenarioSelectedMsg:
		if s := m.findScenario(msg.ScenarioName); s != nil {
			m.estimateModel.SetScenario(*s)
			return m.navigate(SceneEstimate), nil
		}
		m.err = fmt.Errorf("scenario %q not found", msg.ScenarioName)
		return m, nil

	case tuimsg.InputsChangedMsg:
		m.status = "Estimate updated"
		return m, nil

	case tuimsg.SolveStartedMsg:
		m.status = "Solving for " + string(msg.Target) + "..."
		return m, nil

	case tuimsg.SolveCompleteMsg:
		m.solveModel.SetResult(msg.Result, msg.Err)
		m.status = "Solve complete"
		return m, nil
	}

	return m.updateCurrentScene(msg)
}

// handleKeyPress processes keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Any key dismisses an error
	if m.err != nil {
		if key.Matches(msg, keys.Quit) {
			return m, tea.Quit
		}
		m.err = nil
		return m, nil
	}

	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, keys.Help):
		return m.navigate(SceneHelp), nil
	case key.Matches(msg, keys.Estimate):
		return m.navigate(SceneEstimate), nil
	case key.Matches(msg, keys.Scenarios):
		return m.navigate(SceneScenarios), nil
	case key.Matches(msg, keys.Compare):
		return m.navigate(SceneCompare), nil
	case key.Matches(msg, keys.Solve):
		return m.navigate(SceneSolve), nil
	case key.Matches(msg, keys.Back):
		// The solve scene uses esc to step back through its own modes
		if m.currentScene == SceneSolve && m.solveModel.Mode() != scenes.ModeSelectTarget {
			return m.updateCurrentScene(msg)
		}
		if m.currentScene != SceneEstimate {
			return m.navigate(SceneEstimate), nil
		}
		return m, nil
	}

	return m.updateCurrentScene(msg)
}

// navigate switches scenes, handing the solver the estimator's current inputs
func (m Model) navigate(to Scene) Model {
	if to == SceneSolve {
		m.solveModel.SetBase(domain.Scenario{
			Name:   m.estimateModel.Name(),
			Inputs: m.estimateModel.Inputs(),
		})
	}
	if to != m.currentScene {
		m.previousScene = m.currentScene
		m.currentScene = to
	}
	return m
}

func (m Model) findScenario(name string) *domain.Scenario {
	if m.set == nil {
		return nil
	}
	for i := range m.set.Scenarios {
		if m.set.Scenarios[i].Name == name {
			return &m.set.Scenarios[i]
		}
	}
	return nil
}

func (m Model) resizeScenes() {
	h := m.height - 4
	m.estimateModel.SetSize(m.width, h)
	m.scenariosModel.SetSize(m.width, h)
	m.compareModel.SetSize(m.width, h)
	m.solveModel.SetSize(m.width, h)
}

// updateCurrentScene delegates updates to the current scene's model
func (m Model) updateCurrentScene(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.currentScene {
	case SceneEstimate:
		m.estimateModel, cmd = m.estimateModel.Update(msg)
	case SceneScenarios:
		m.scenariosModel, cmd = m.scenariosModel.Update(msg)
	case SceneCompare:
		m.compareModel, cmd = m.compareModel.Update(msg)
	case SceneSolve:
		m.solveModel, cmd = m.solveModel.Update(msg)
	}
	return m, cmd
}
