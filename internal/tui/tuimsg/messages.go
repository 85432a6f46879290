// Package tuimsg defines the messages scenes send to the root model. It is
// separate from package tui so scenes can import it without a cycle.
package tuimsg

import (
	"github.com/rgehrsitz/setax/internal/breakeven"
	"github.com/rgehrsitz/setax/internal/domain"
)

// ScenarioSelectedMsg signals a scenario has been chosen for editing
type ScenarioSelectedMsg struct {
	ScenarioName string
}

// ErrorMsg displays an error to the user
type ErrorMsg struct {
	Err error
}

// InputsChangedMsg carries the estimator's inputs after an edit
type InputsChangedMsg struct {
	Inputs domain.TaxInputs
}

// SolveStartedMsg signals a break-even solve has begun
type SolveStartedMsg struct {
	Target breakeven.SolveTarget
}

// SolveCompleteMsg signals a break-even solve has finished
type SolveCompleteMsg struct {
	Result *breakeven.SolveResult
	Err    error
}
