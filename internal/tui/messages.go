package tui

import (
	"github.com/rgehrsitz/setax/internal/domain"
)

// Scene identifies a screen of the application
type Scene int

const (
	SceneEstimate Scene = iota
	SceneScenarios
	SceneCompare
	SceneSolve
	SceneHelp
)

func (s Scene) String() string {
	switch s {
	case SceneEstimate:
		return "Estimate"
	case SceneScenarios:
		return "Scenarios"
	case SceneCompare:
		return "Compare"
	case SceneSolve:
		return "Solve"
	case SceneHelp:
		return "Help"
	default:
		return "Unknown"
	}
}

// NavigateMsg requests navigation to a different scene
type NavigateMsg struct {
	Scene Scene
}

// ScenariosLoadedMsg signals the scenario file has been parsed
type ScenariosLoadedMsg struct {
	Set *domain.ScenarioSet
}
