package domain

// Scenario is a named set of inputs loaded from a scenario file
type Scenario struct {
	Name        string    `yaml:"name" json:"name"`
	Description string    `yaml:"description,omitempty" json:"description,omitempty"`
	Inputs      TaxInputs `yaml:"inputs" json:"inputs"`
}

// ScenarioSet is the top-level document of a scenario file.
// A zero TaxYear means the default year.
type ScenarioSet struct {
	TaxYear   int        `yaml:"tax_year" json:"taxYear"`
	Scenarios []Scenario `yaml:"scenarios" json:"scenarios"`
}

// Find returns the scenario with the given name
func (s *ScenarioSet) Find(name string) (*Scenario, bool) {
	for i := range s.Scenarios {
		if s.Scenarios[i].Name == name {
			return &s.Scenarios[i], true
		}
	}
	return nil, false
}

// DeepCopy returns a copy that shares no pointers with s
func (s *Scenario) DeepCopy() *Scenario {
	out := *s
	if s.Inputs.Advanced != nil {
		adv := *s.Inputs.Advanced
		out.Inputs.Advanced = &adv
	}
	return &out
}

// EnsureAdvanced returns the advanced block, allocating it when absent
func (s *Scenario) EnsureAdvanced() *AdvancedInputs {
	if s.Inputs.Advanced == nil {
		s.Inputs.Advanced = &AdvancedInputs{}
	}
	return s.Inputs.Advanced
}
