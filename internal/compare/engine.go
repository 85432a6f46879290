package compare

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/setax/internal/calculation"
	"github.com/rgehrsitz/setax/internal/domain"
	"github.com/rgehrsitz/setax/internal/transform"
)

// CompareEngine orchestrates scenario comparison
type CompareEngine struct {
	Calculator        *calculation.Calculator
	MetricsCalculator *MetricsCalculator
	TemplateRegistry  *transform.TemplateRegistry
}

// NewCompareEngine creates a new comparison engine
func NewCompareEngine(calc *calculation.Calculator) *CompareEngine {
	return &CompareEngine{
		Calculator:        calc,
		MetricsCalculator: NewMetricsCalculator(calc.Constants),
		TemplateRegistry:  transform.CreateBuiltInTemplates(calc.Constants),
	}
}

// CompareOptions configures comparison behavior
type CompareOptions struct {
	BaseScenarioName string   // Name of the base scenario to compare against
	Templates        []string // List of template names to apply
}

// Compare evaluates the base scenario and one derived scenario per template
func (ce *CompareEngine) Compare(
	ctx context.Context,
	set *domain.ScenarioSet,
	options CompareOptions,
) (*ComparisonSet, error) {

	baseScenario, ok := set.Find(options.BaseScenarioName)
	if !ok {
		return nil, fmt.Errorf("base scenario %s not found in configuration", options.BaseScenarioName)
	}

	baseResult := ce.evaluate(baseScenario)

	alternatives := []ComparisonResult{}
	for _, templateName := range options.Templates {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		template, ok := ce.TemplateRegistry.Get(templateName)
		if !ok {
			return nil, fmt.Errorf("template %s not found", templateName)
		}

		modified, err := transform.ApplyTemplate(baseScenario, template)
		if err != nil {
			return nil, fmt.Errorf("failed to apply template %s: %w", templateName, err)
		}

		altResult := ce.evaluate(modified)
		alternatives = append(alternatives, ce.MetricsCalculator.CalculateComparison(altResult, baseResult))
	}

	return ce.buildSet(options.BaseScenarioName, baseResult, alternatives), nil
}

// CompareScenarios compares explicit scenarios (not using templates)
func (ce *CompareEngine) CompareScenarios(
	ctx context.Context,
	set *domain.ScenarioSet,
	baseScenarioName string,
	alternativeScenarioNames []string,
) (*ComparisonSet, error) {

	baseScenario, ok := set.Find(baseScenarioName)
	if !ok {
		return nil, fmt.Errorf("base scenario %s not found", baseScenarioName)
	}
	baseResult := ce.evaluate(baseScenario)

	alternatives := []ComparisonResult{}
	for _, altName := range alternativeScenarioNames {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		altScenario, ok := set.Find(altName)
		if !ok {
			return nil, fmt.Errorf("alternative scenario %s not found", altName)
		}

		altResult := ce.evaluate(altScenario)
		alternatives = append(alternatives, ce.MetricsCalculator.CalculateComparison(altResult, baseResult))
	}

	return ce.buildSet(baseScenarioName, baseResult, alternatives), nil
}

// CompareTransforms compares the base against one scenario per ad hoc transform spec
func (ce *CompareEngine) CompareTransforms(
	ctx context.Context,
	set *domain.ScenarioSet,
	baseScenarioName string,
	specs []string,
) (*ComparisonSet, error) {

	baseScenario, ok := set.Find(baseScenarioName)
	if !ok {
		return nil, fmt.Errorf("base scenario %s not found", baseScenarioName)
	}
	baseResult := ce.evaluate(baseScenario)

	registry := transform.NewTransformRegistry()
	alternatives := []ComparisonResult{}
	for _, spec := range specs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		tr, err := registry.ParseTransformSpec(spec)
		if err != nil {
			return nil, err
		}
		modified, err := transform.ApplyTransforms(baseScenario, []transform.ScenarioTransform{tr})
		if err != nil {
			return nil, err
		}
		modified.Name = spec
		modified.Description = tr.Description()

		altResult := ce.evaluate(modified)
		alternatives = append(alternatives, ce.MetricsCalculator.CalculateComparison(altResult, baseResult))
	}

	return ce.buildSet(baseScenarioName, baseResult, alternatives), nil
}

func (ce *CompareEngine) evaluate(s *domain.Scenario) ComparisonResult {
	return ce.MetricsCalculator.CalculateMetrics(s, ce.Calculator.CalculateTax(s.Inputs))
}

func (ce *CompareEngine) buildSet(baseName string, base ComparisonResult, alternatives []ComparisonResult) *ComparisonSet {
	compSet := &ComparisonSet{
		TaxYear:            ce.Calculator.Constants.Year,
		BaseScenarioName:   baseName,
		BaseResult:         &base,
		AlternativeResults: alternatives,
	}
	compSet.Recommendations = GenerateRecommendations(compSet)
	return compSet
}
