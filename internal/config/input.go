package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/rgehrsitz/setax/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// InputParser handles parsing of scenario and debt input files
type InputParser struct {
	// States, when set, is used to reject unknown state codes
	States domain.StateRateTable
}

// NewInputParser creates a new input parser
func NewInputParser(states domain.StateRateTable) *InputParser {
	return &InputParser{States: states}
}

// LoadFromFile loads a scenario set from a YAML or JSON file
func (ip *InputParser) LoadFromFile(filename string) (*domain.ScenarioSet, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.Parse(data)
}

// Parse decodes and validates a scenario set document
func (ip *InputParser) Parse(data []byte) (*domain.ScenarioSet, error) {
	var set domain.ScenarioSet
	if err := yaml.Unmarshal(data, &set); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if err := ip.ValidateScenarioSet(&set); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &set, nil
}

// ValidateScenarioSet checks structure only. Negative amounts are allowed
// here because the engine treats them as zero.
func (ip *InputParser) ValidateScenarioSet(set *domain.ScenarioSet) error {
	if len(set.Scenarios) == 0 {
		return fmt.Errorf("no scenarios provided")
	}
	names := make(map[string]bool, len(set.Scenarios))
	for i, sc := range set.Scenarios {
		if strings.TrimSpace(sc.Name) == "" {
			return fmt.Errorf("scenario %d: name is required", i)
		}
		if names[sc.Name] {
			return fmt.Errorf("scenario %d: duplicate name %q", i, sc.Name)
		}
		names[sc.Name] = true
		if err := ip.validateInputs(&set.Scenarios[i].Inputs); err != nil {
			return fmt.Errorf("scenario %d (%s) validation failed: %w", i, sc.Name, err)
		}
	}
	return nil
}

func (ip *InputParser) validateInputs(in *domain.TaxInputs) error {
	if in.FilingStatus == "" {
		in.FilingStatus = domain.FilingStatusSingle
	}
	if !in.FilingStatus.Valid() {
		return fmt.Errorf("unknown filing status %q", in.FilingStatus)
	}
	if in.StateCode != "" && ip.States != nil {
		if _, ok := ip.States.Lookup(in.StateCode); !ok {
			return fmt.Errorf("unknown state code %q", in.StateCode)
		}
	}
	return nil
}

// LoadDebtFromFile loads debt cancellation inputs from a YAML or JSON file
func (ip *InputParser) LoadDebtFromFile(filename string) (*domain.DebtCancellationInputs, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.ParseDebt(data)
}

// ParseDebt decodes and validates a debt cancellation document
func (ip *InputParser) ParseDebt(data []byte) (*domain.DebtCancellationInputs, error) {
	var in domain.DebtCancellationInputs
	if err := yaml.Unmarshal(data, &in); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if err := ip.ValidateDebtInputs(&in); err != nil {
		return nil, fmt.Errorf("debt input validation failed: %w", err)
	}
	return &in, nil
}

// ValidateDebtInputs rejects a marginal rate above 100% and unlabeled line items
func (ip *InputParser) ValidateDebtInputs(in *domain.DebtCancellationInputs) error {
	if in.TaxBracketRate.GreaterThan(decimal.NewFromInt(1)) {
		return fmt.Errorf("tax bracket rate must be a fraction between 0 and 1")
	}
	if in.FilingStatus == "" {
		in.FilingStatus = domain.FilingStatusSingle
	}
	for i, a := range in.Assets {
		if strings.TrimSpace(a.Label) == "" {
			return fmt.Errorf("asset %d: label is required", i)
		}
	}
	for i, l := range in.Liabilities {
		if strings.TrimSpace(l.Label) == "" {
			return fmt.Errorf("liability %d: label is required", i)
		}
	}
	return nil
}
