package transform

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/rgehrsitz/setax/internal/domain"
	"github.com/shopspring/decimal"
)

// TransformRegistry provides a central registry for all available transforms.
// It enables creation of transforms from string parameters, useful for CLI commands.
type TransformRegistry struct {
	factories map[string]TransformFactory
}

// TransformFactory is a function that creates a transform from parameters.
type TransformFactory func(params map[string]string) (ScenarioTransform, error)

// NewTransformRegistry creates a new registry with all built-in transforms registered.
func NewTransformRegistry() *TransformRegistry {
	registry := &TransformRegistry{
		factories: make(map[string]TransformFactory),
	}

	registry.Register("adjust_income", decimalFactory("adjust_income", "amount", func(d decimal.Decimal) ScenarioTransform {
		return &AdjustIncome{Amount: d}
	}))
	registry.Register("scale_income", decimalFactory("scale_income", "factor", func(d decimal.Decimal) ScenarioTransform {
		return &ScaleIncome{Factor: d}
	}))
	registry.Register("adjust_expenses", decimalFactory("adjust_expenses", "amount", func(d decimal.Decimal) ScenarioTransform {
		return &AdjustExpenses{Amount: d}
	}))
	registry.Register("contribute_ira", decimalFactory("contribute_ira", "amount", func(d decimal.Decimal) ScenarioTransform {
		return &ContributeIRA{Amount: d}
	}))
	registry.Register("set_ira", decimalFactory("set_ira", "amount", func(d decimal.Decimal) ScenarioTransform {
		return &SetIRAContribution{Amount: d}
	}))
	registry.Register("set_home_office", decimalFactory("set_home_office", "sqft", func(d decimal.Decimal) ScenarioTransform {
		return &SetHomeOffice{SquareFeet: d}
	}))
	registry.Register("add_mortgage_interest", decimalFactory("add_mortgage_interest", "amount", func(d decimal.Decimal) ScenarioTransform {
		return &AddMortgageInterest{Amount: d}
	}))
	registry.Register("add_payments", decimalFactory("add_payments", "amount", func(d decimal.Decimal) ScenarioTransform {
		return &AddEstimatedPayments{Amount: d}
	}))
	registry.Register("add_w2_income", createAddW2Income)
	registry.Register("set_filing_status", createSetFilingStatus)
	registry.Register("move_state", createMoveState)
	registry.Register("set_dependents", createSetDependents)

	return registry
}

// Register adds a transform factory to the registry.
func (r *TransformRegistry) Register(name string, factory TransformFactory) {
	r.factories[name] = factory
}

// Create creates a transform by name with the given parameters.
func (r *TransformRegistry) Create(name string, params map[string]string) (ScenarioTransform, error) {
	factory, exists := r.factories[name]
	if !exists {
		return nil, fmt.Errorf("unknown transform: %s", name)
	}

	return factory(params)
}

// List returns the names of all registered transforms, sorted.
func (r *TransformRegistry) List() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ParseTransformSpec parses a transform specification string.
// Format: "transform_name:param1=value1,param2=value2"
// Example: "contribute_ira:amount=7000"
func (r *TransformRegistry) ParseTransformSpec(spec string) (ScenarioTransform, error) {
	parts := strings.SplitN(spec, ":", 2)
	if len(parts) != 2 {
		return nil, fmt.Errorf("invalid transform spec format, expected 'name:params', got: %s", spec)
	}

	name := strings.TrimSpace(parts[0])
	paramsStr := strings.TrimSpace(parts[1])

	params := make(map[string]string)
	if paramsStr != "" {
		for _, paramPair := range strings.Split(paramsStr, ",") {
			kv := strings.SplitN(paramPair, "=", 2)
			if len(kv) != 2 {
				return nil, fmt.Errorf("invalid parameter format, expected 'key=value', got: %s", paramPair)
			}
			params[strings.TrimSpace(kv[0])] = strings.TrimSpace(kv[1])
		}
	}

	return r.Create(name, params)
}

// Factory functions for each transform

func decimalFactory(name, param string, build func(decimal.Decimal) ScenarioTransform) TransformFactory {
	return func(params map[string]string) (ScenarioTransform, error) {
		raw, ok := params[param]
		if !ok {
			return nil, fmt.Errorf("%s requires '%s' parameter", name, param)
		}
		value, err := decimal.NewFromString(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid %s value: %w", param, err)
		}
		return build(value), nil
	}
}

func createAddW2Income(params map[string]string) (ScenarioTransform, error) {
	raw, ok := params["amount"]
	if !ok {
		return nil, fmt.Errorf("add_w2_income requires 'amount' parameter")
	}
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid amount value: %w", err)
	}

	withheld := decimal.Zero
	if raw, ok := params["withheld"]; ok {
		withheld, err = decimal.NewFromString(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid withheld value: %w", err)
		}
	}

	return &AddW2Income{Amount: amount, Withheld: withheld}, nil
}

func createSetFilingStatus(params map[string]string) (ScenarioTransform, error) {
	raw, ok := params["status"]
	if !ok {
		return nil, fmt.Errorf("set_filing_status requires 'status' parameter")
	}
	status, err := domain.ParseFilingStatus(raw)
	if err != nil {
		return nil, err
	}
	return &SetFilingStatus{Status: status}, nil
}

func createMoveState(params map[string]string) (ScenarioTransform, error) {
	code, ok := params["state"]
	if !ok {
		return nil, fmt.Errorf("move_state requires 'state' parameter")
	}
	return &MoveState{Code: code}, nil
}

func createSetDependents(params map[string]string) (ScenarioTransform, error) {
	sd := &SetDependents{}
	if raw, ok := params["under17"]; ok {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid under17 value: %w", err)
		}
		sd.Under17 = n
	}
	if raw, ok := params["over17"]; ok {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid over17 value: %w", err)
		}
		sd.Over17 = n
	}
	return sd, nil
}
