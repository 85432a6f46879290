package transform

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rgehrsitz/setax/internal/domain"
	"github.com/shopspring/decimal"
)

// TemplateRegistry manages built-in scenario templates
type TemplateRegistry struct {
	templates map[string]Template
}

// Template represents a named collection of transforms
type Template struct {
	Name        string
	Description string
	Transforms  []ScenarioTransform
}

// NewTemplateRegistry creates an empty template registry
func NewTemplateRegistry() *TemplateRegistry {
	return &TemplateRegistry{
		templates: make(map[string]Template),
	}
}

// Register adds a template to the registry
func (tr *TemplateRegistry) Register(t Template) {
	tr.templates[strings.ToLower(t.Name)] = t
}

// Get retrieves a template by name (case-insensitive)
func (tr *TemplateRegistry) Get(name string) (Template, bool) {
	t, ok := tr.templates[strings.ToLower(name)]
	return t, ok
}

// List returns all registered template names, sorted
func (tr *TemplateRegistry) List() []string {
	names := make([]string, 0, len(tr.templates))
	for name := range tr.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CreateBuiltInTemplates creates a template registry with common what-if
// scenarios for a sole proprietor. Limits come from the tax year constants.
func CreateBuiltInTemplates(c domain.TaxYearConstants) *TemplateRegistry {
	registry := NewTemplateRegistry()

	registry.Register(Template{
		Name:        "income_up_10pct",
		Description: "Gross income 10% higher",
		Transforms:  []ScenarioTransform{&ScaleIncome{Factor: decimal.RequireFromString("1.10")}},
	})
	registry.Register(Template{
		Name:        "income_down_10pct",
		Description: "Gross income 10% lower",
		Transforms:  []ScenarioTransform{&ScaleIncome{Factor: decimal.RequireFromString("0.90")}},
	})
	registry.Register(Template{
		Name:        "max_ira",
		Description: fmt.Sprintf("Contribute the $%s IRA limit", c.IRAContributionLimit.StringFixed(0)),
		Transforms:  []ScenarioTransform{&SetIRAContribution{Amount: c.IRAContributionLimit}},
	})
	registry.Register(Template{
		Name:        "home_office",
		Description: fmt.Sprintf("Claim the maximum simplified home office (%s sq ft)", c.HomeOffice.MaxSquareFeet.StringFixed(0)),
		Transforms:  []ScenarioTransform{&SetHomeOffice{SquareFeet: c.HomeOffice.MaxSquareFeet}},
	})
	registry.Register(Template{
		Name:        "no_state_tax",
		Description: "Move to a state without income tax (TX)",
		Transforms:  []ScenarioTransform{&MoveState{Code: "TX"}},
	})
	registry.Register(Template{
		Name:        "file_jointly",
		Description: "File as married filing jointly",
		Transforms:  []ScenarioTransform{&SetFilingStatus{Status: domain.FilingStatusMarriedFilingJointly}},
	})
	registry.Register(Template{
		Name:        "expenses_up_5k",
		Description: "Spend $5,000 more on deductible business expenses",
		Transforms:  []ScenarioTransform{&AdjustExpenses{Amount: decimal.NewFromInt(5000)}},
	})

	return registry
}

// ApplyTemplate applies a template's transforms to a base scenario and names
// the result after the template
func ApplyTemplate(base *domain.Scenario, t Template) (*domain.Scenario, error) {
	modified, err := ApplyTransforms(base, t.Transforms)
	if err != nil {
		return nil, fmt.Errorf("template %s: %w", t.Name, err)
	}
	modified.Name = base.Name + "_" + t.Name
	modified.Description = t.Description
	return modified, nil
}

// ParseTemplateList parses a comma-separated list of template names
func ParseTemplateList(templateList string) []string {
	if templateList == "" {
		return nil
	}

	parts := strings.Split(templateList, ",")
	templates := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			templates = append(templates, trimmed)
		}
	}
	return templates
}

// GetTemplateHelp returns formatted help text for all templates, grouped by
// what they change
func GetTemplateHelp(registry *TemplateRegistry) string {
	if len(registry.templates) == 0 {
		return "No templates registered"
	}

	groups := map[string][]Template{}
	order := []string{"Income", "Expenses & Deductions", "Household"}
	for _, name := range registry.List() {
		t := registry.templates[name]
		switch {
		case strings.HasPrefix(t.Name, "income_"):
			groups["Income"] = append(groups["Income"], t)
		case strings.HasPrefix(t.Name, "file_"), strings.HasPrefix(t.Name, "no_state"):
			groups["Household"] = append(groups["Household"], t)
		default:
			groups["Expenses & Deductions"] = append(groups["Expenses & Deductions"], t)
		}
	}

	var sb strings.Builder
	sb.WriteString("Available Templates:\n\n")
	for _, group := range order {
		if len(groups[group]) == 0 {
			continue
		}
		sb.WriteString(group + ":\n")
		for _, t := range groups[group] {
			fmt.Fprintf(&sb, "  %-20s %s\n", t.Name, t.Description)
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
