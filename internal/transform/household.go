package transform

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/setax/internal/domain"
)

// SetFilingStatus switches the filing status
type SetFilingStatus struct {
	Status domain.FilingStatus
}

func (sf *SetFilingStatus) Name() string { return "set_filing_status" }

func (sf *SetFilingStatus) Description() string {
	return "File as " + sf.Status.Label()
}

func (sf *SetFilingStatus) Validate(base *domain.Scenario) error {
	if err := requireBase(sf.Name(), base); err != nil {
		return err
	}
	if !sf.Status.Valid() {
		return NewTransformError(sf.Name(), "validate", fmt.Sprintf("unknown filing status %q", sf.Status), nil)
	}
	return nil
}

func (sf *SetFilingStatus) Apply(base *domain.Scenario) (*domain.Scenario, error) {
	modified := base.DeepCopy()
	modified.Inputs.FilingStatus = sf.Status
	return modified, nil
}

// MoveState changes the state of residence
type MoveState struct {
	Code string
}

func (ms *MoveState) Name() string { return "move_state" }

func (ms *MoveState) Description() string {
	return "Move to " + strings.ToUpper(ms.Code)
}

func (ms *MoveState) Validate(base *domain.Scenario) error {
	if err := requireBase(ms.Name(), base); err != nil {
		return err
	}
	if len(strings.TrimSpace(ms.Code)) != 2 {
		return NewTransformError(ms.Name(), "validate", fmt.Sprintf("state code must be two letters, got %q", ms.Code), nil)
	}
	return nil
}

func (ms *MoveState) Apply(base *domain.Scenario) (*domain.Scenario, error) {
	modified := base.DeepCopy()
	modified.Inputs.StateCode = strings.ToUpper(strings.TrimSpace(ms.Code))
	return modified, nil
}

// SetDependents replaces the dependent counts
type SetDependents struct {
	Under17 int
	Over17  int
}

func (sd *SetDependents) Name() string { return "set_dependents" }

func (sd *SetDependents) Description() string {
	return fmt.Sprintf("Claim %d children under 17 and %d other dependents", sd.Under17, sd.Over17)
}

func (sd *SetDependents) Validate(base *domain.Scenario) error {
	if err := requireBase(sd.Name(), base); err != nil {
		return err
	}
	if sd.Under17 < 0 || sd.Over17 < 0 {
		return NewTransformError(sd.Name(), "validate", "dependent counts must be non-negative", nil)
	}
	return nil
}

func (sd *SetDependents) Apply(base *domain.Scenario) (*domain.Scenario, error) {
	modified := base.DeepCopy()
	adv := modified.EnsureAdvanced()
	adv.DependentsUnder17 = sd.Under17
	adv.DependentsOver17 = sd.Over17
	return modified, nil
}
