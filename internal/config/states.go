package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/rgehrsitz/setax/internal/domain"
	"gopkg.in/yaml.v3"
)

type stateFile struct {
	States []domain.StateRate `yaml:"states"`
}

// LoadDefaultStates returns the embedded state rate table
func LoadDefaultStates() (domain.StateRateTable, error) {
	data, err := embeddedData.ReadFile("data/states.yaml")
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded state table: %w", err)
	}
	return ParseStates(data)
}

// LoadStatesFile reads a state rate table from a YAML file
func LoadStatesFile(filename string) (domain.StateRateTable, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	table, err := ParseStates(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return table, nil
}

// ParseStates decodes and validates a state rate document
func ParseStates(data []byte) (domain.StateRateTable, error) {
	var f stateFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if len(f.States) == 0 {
		return nil, fmt.Errorf("no states provided")
	}
	seen := make(map[string]bool, len(f.States))
	for i, s := range f.States {
		code := strings.ToUpper(strings.TrimSpace(s.Code))
		if len(code) != 2 {
			return nil, fmt.Errorf("state %d: code must be a two-letter postal code, got %q", i, s.Code)
		}
		if seen[code] {
			return nil, fmt.Errorf("state %s listed more than once", code)
		}
		seen[code] = true
		if err := validateRate("state "+code+" rate", s.Rate); err != nil {
			return nil, err
		}
	}
	return domain.NewStateRateTable(f.States), nil
}
