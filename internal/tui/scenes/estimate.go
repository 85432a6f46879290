package scenes

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/setax/internal/calculation"
	"github.com/rgehrsitz/setax/internal/domain"
	"github.com/rgehrsitz/setax/internal/tui/components"
	"github.com/rgehrsitz/setax/internal/tui/tuimsg"
	"github.com/rgehrsitz/setax/internal/tui/tuistyles"
)

// Field identifies one input on the estimate form
type Field int

const (
	FieldGross Field = iota
	FieldExpenses
	FieldStatus
	FieldState
	FieldW2Income
	FieldW2Withheld
	FieldMileage
	FieldIRA
	FieldHealth
	FieldMortgage
	FieldHomeOffice
	FieldTuition
	FieldStateWithheld
	FieldPayments
	FieldUnder17
	FieldOver17
	fieldCount
)

var fieldLabels = [fieldCount]string{
	FieldGross:         "Gross income",
	FieldExpenses:      "Business expenses",
	FieldStatus:        "Filing status",
	FieldState:         "State",
	FieldW2Income:      "W-2 wages",
	FieldW2Withheld:    "W-2 withholding",
	FieldMileage:       "Business miles",
	FieldIRA:           "IRA contributions",
	FieldHealth:        "Health premiums",
	FieldMortgage:      "Mortgage interest",
	FieldHomeOffice:    "Home office sq ft",
	FieldTuition:       "Student tuition",
	FieldStateWithheld: "State tax withheld",
	FieldPayments:      "Estimated payments",
	FieldUnder17:       "Children under 17",
	FieldOver17:        "Other dependents",
}

var (
	nextFieldKey   = key.NewBinding(key.WithKeys("tab", "down"))
	prevFieldKey   = key.NewBinding(key.WithKeys("shift+tab", "up"))
	toggleStateKey = key.NewBinding(key.WithKeys("ctrl+t"))
	cycleNextKey   = key.NewBinding(key.WithKeys("right", " "))
	cyclePrevKey   = key.NewBinding(key.WithKeys("left"))
)

// EstimateModel is the live estimator form. Every edit recomputes the
// result; the state tax toggle only re-derives totals from the last result.
type EstimateModel struct {
	calc         *calculation.Calculator
	name         string
	inputs       [fieldCount]textinput.Model
	statusIndex  int
	focus        Field
	includeState bool
	invalid      map[Field]bool
	raw          domain.TaxResult
	result       domain.TaxResult
	width        int
	height       int
}

// NewEstimateModel creates an empty form backed by calc
func NewEstimateModel(calc *calculation.Calculator) *EstimateModel {
	m := &EstimateModel{
		calc:         calc,
		name:         "untitled",
		includeState: true,
		invalid:      map[Field]bool{},
	}

	for f := Field(0); f < fieldCount; f++ {
		ti := textinput.New()
		ti.Prompt = ""
		ti.CharLimit = 12
		ti.Width = 14
		ti.Placeholder = "0"
		switch f {
		case FieldState:
			ti.CharLimit = 2
			ti.Placeholder = "TX"
		case FieldUnder17, FieldOver17:
			ti.CharLimit = 2
		}
		m.inputs[f] = ti
	}
	m.inputs[FieldGross].Focus()
	m.recompute()
	return m
}

// SetScenario loads a scenario's inputs into the form
func (m *EstimateModel) SetScenario(s domain.Scenario) {
	in := s.Inputs
	adv := in.AdvancedOrZero()
	m.name = s.Name

	setDecimal := func(f Field, d decimal.Decimal) {
		if d.IsZero() {
			m.inputs[f].SetValue("")
			return
		}
		m.inputs[f].SetValue(d.String())
	}
	setInt := func(f Field, n int) {
		if n == 0 {
			m.inputs[f].SetValue("")
			return
		}
		m.inputs[f].SetValue(strconv.Itoa(n))
	}

	setDecimal(FieldGross, in.GrossIncome)
	setDecimal(FieldExpenses, in.BusinessExpenses)
	m.inputs[FieldState].SetValue(strings.ToUpper(in.StateCode))
	setDecimal(FieldW2Income, adv.W2Income)
	setDecimal(FieldW2Withheld, adv.W2TaxesWithheld)
	setDecimal(FieldMileage, adv.WorkMileage)
	setDecimal(FieldIRA, adv.IRAContributions)
	setDecimal(FieldHealth, adv.HealthInsurancePremiums)
	setDecimal(FieldMortgage, adv.MortgageInterest)
	setDecimal(FieldHomeOffice, adv.HomeOfficeSquareFeet)
	setDecimal(FieldTuition, adv.StudentTuition)
	setDecimal(FieldStateWithheld, adv.StateTaxesWithheld)
	setDecimal(FieldPayments, adv.QuarterlyPaymentsMade)
	setInt(FieldUnder17, adv.DependentsUnder17)
	setInt(FieldOver17, adv.DependentsOver17)

	m.statusIndex = 0
	for i, fs := range domain.FilingStatuses {
		if fs == in.FilingStatus.OrSingle() {
			m.statusIndex = i
		}
	}
	m.recompute()
}

// SetSize updates the scene dimensions
func (m *EstimateModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Name returns the name of the loaded scenario
func (m *EstimateModel) Name() string { return m.name }

// Focused returns the field with keyboard focus
func (m *EstimateModel) Focused() Field { return m.focus }

// IncludeState reports whether state tax is counted in the totals
func (m *EstimateModel) IncludeState() bool { return m.includeState }

// Result returns the current result with the state toggle applied
func (m *EstimateModel) Result() domain.TaxResult { return m.result }

// Invalid reports whether a field holds text that is not a number
func (m *EstimateModel) Invalid(f Field) bool { return m.invalid[f] }

// Inputs assembles TaxInputs from the form. Unparseable fields count as zero.
func (m *EstimateModel) Inputs() domain.TaxInputs {
	m.invalid = map[Field]bool{}

	return domain.TaxInputs{
		GrossIncome:      m.decimalField(FieldGross),
		BusinessExpenses: m.decimalField(FieldExpenses),
		FilingStatus:     domain.FilingStatuses[m.statusIndex],
		StateCode:        strings.ToUpper(strings.TrimSpace(m.inputs[FieldState].Value())),
		Advanced: &domain.AdvancedInputs{
			W2Income:                m.decimalField(FieldW2Income),
			W2TaxesWithheld:         m.decimalField(FieldW2Withheld),
			WorkMileage:             m.decimalField(FieldMileage),
			IRAContributions:        m.decimalField(FieldIRA),
			HealthInsurancePremiums: m.decimalField(FieldHealth),
			MortgageInterest:        m.decimalField(FieldMortgage),
			HomeOfficeSquareFeet:    m.decimalField(FieldHomeOffice),
			StudentTuition:          m.decimalField(FieldTuition),
			StateTaxesWithheld:      m.decimalField(FieldStateWithheld),
			QuarterlyPaymentsMade:   m.decimalField(FieldPayments),
			DependentsUnder17:       m.intField(FieldUnder17),
			DependentsOver17:        m.intField(FieldOver17),
		},
	}
}

func (m *EstimateModel) decimalField(f Field) decimal.Decimal {
	raw := strings.ReplaceAll(strings.TrimSpace(m.inputs[f].Value()), ",", "")
	if raw == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		m.invalid[f] = true
		return decimal.Zero
	}
	return d
}

func (m *EstimateModel) intField(f Field) int {
	raw := strings.TrimSpace(m.inputs[f].Value())
	if raw == "" {
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		m.invalid[f] = true
		return 0
	}
	return n
}

func (m *EstimateModel) recompute() {
	m.raw = m.calc.CalculateTax(m.Inputs())
	m.result = calculation.WithStateTax(m.raw, m.includeState)
}

// Update handles messages for the estimate scene
func (m *EstimateModel) Update(msg tea.Msg) (*EstimateModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		if m.focus != FieldStatus {
			m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
		}
		return m, cmd
	}

	switch {
	case key.Matches(keyMsg, nextFieldKey):
		m.setFocus((m.focus + 1) % fieldCount)
		return m, textinput.Blink

	case key.Matches(keyMsg, prevFieldKey):
		m.setFocus((m.focus + fieldCount - 1) % fieldCount)
		return m, textinput.Blink

	case key.Matches(keyMsg, toggleStateKey):
		m.includeState = !m.includeState
		m.result = calculation.WithStateTax(m.raw, m.includeState)
		return m, nil
	}

	if m.focus == FieldStatus {
		switch {
		case key.Matches(keyMsg, cycleNextKey):
			m.statusIndex = (m.statusIndex + 1) % len(domain.FilingStatuses)
		case key.Matches(keyMsg, cyclePrevKey):
			m.statusIndex = (m.statusIndex + len(domain.FilingStatuses) - 1) % len(domain.FilingStatuses)
		default:
			return m, nil
		}
		m.recompute()
		return m, m.inputsChangedCmd()
	}

	if keyMsg.Type == tea.KeyRunes && !acceptsRunes(m.focus, keyMsg.Runes) {
		return m, nil
	}

	before := m.inputs[m.focus].Value()
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(keyMsg)
	if m.inputs[m.focus].Value() != before {
		m.recompute()
		return m, tea.Batch(cmd, m.inputsChangedCmd())
	}
	return m, cmd
}

func (m *EstimateModel) inputsChangedCmd() tea.Cmd {
	in := m.Inputs()
	return func() tea.Msg {
		return tuimsg.InputsChangedMsg{Inputs: in}
	}
}

func (m *EstimateModel) setFocus(f Field) {
	m.inputs[m.focus].Blur()
	m.focus = f
	if f != FieldStatus {
		m.inputs[f].Focus()
	}
}

// acceptsRunes filters typed characters: letters for the state code, digits
// for counts, and digits, dots and commas for amounts
func acceptsRunes(f Field, runes []rune) bool {
	for _, r := range runes {
		switch f {
		case FieldState:
			if !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z') {
				return false
			}
		case FieldUnder17, FieldOver17:
			if r < '0' || r > '9' {
				return false
			}
		default:
			if (r < '0' || r > '9') && r != '.' && r != ',' {
				return false
			}
		}
	}
	return true
}

// View renders the estimate scene
func (m *EstimateModel) View() string {
	form := m.renderForm()
	summary := m.renderSummary()

	content := lipgloss.JoinHorizontal(lipgloss.Top, form, "  ", summary)
	return content + "\n\n" + renderEstimateHelp()
}

func (m *EstimateModel) renderForm() string {
	var sb strings.Builder
	sb.WriteString(tuistyles.TitleStyle.Render(m.name))
	sb.WriteString("\n\n")

	for f := Field(0); f < fieldCount; f++ {
		labelStyle := tuistyles.FieldLabelStyle
		if f == m.focus {
			labelStyle = tuistyles.FocusedFieldLabelStyle
		}

		var value string
		if f == FieldStatus {
			value = "◂ " + domain.FilingStatuses[m.statusIndex].Label() + " ▸"
			if f == m.focus {
				value = tuistyles.SelectedItemStyle.Render(value)
			}
		} else {
			value = m.inputs[f].View()
		}
		if m.invalid[f] {
			value += " " + tuistyles.ErrorStyle.Render("invalid")
		}

		sb.WriteString(labelStyle.Render(fieldLabels[f]) + value + "\n")
	}

	return tuistyles.ActiveBorderStyle.Render(strings.TrimRight(sb.String(), "\n"))
}

func (m *EstimateModel) renderSummary() string {
	r := m.result

	owedLabel := "Balance Due"
	if r.IsRefund() {
		owedLabel = "Refund"
	}

	cards := []*components.MetricCard{
		components.NewMetricCard("Total Tax", tuistyles.FormatCurrency(r.TotalTax)),
		components.NewMetricCard(owedLabel, tuistyles.FormatCurrency(r.TaxOwedOrRefund.Abs())),
		components.NewMetricCard("Quarterly Payment", tuistyles.FormatCurrency(r.QuarterlyPayment)),
		components.NewMetricCard("Effective Rate", tuistyles.FormatRate(r.EffectiveRate)),
	}

	stateLine := fmt.Sprintf("State tax (%s): %s", stateLabel(r), tuistyles.FormatCurrency(r.StateTax))
	if !r.StateTaxIncluded {
		stateLine += " " + tuistyles.SubtitleStyle.Render("(excluded)")
	}

	lines := []string{
		fmt.Sprintf("Net business income: %s", tuistyles.FormatCurrency(r.NetBusinessIncome)),
		fmt.Sprintf("Self-employment tax: %s", tuistyles.FormatCurrency(r.SelfEmploymentTax)),
		fmt.Sprintf("Adjusted gross income: %s", tuistyles.FormatCurrency(r.AdjustedGrossIncome)),
		fmt.Sprintf("%s deduction: %s", deductionLabel(r.DeductionUsed), tuistyles.FormatCurrency(r.DeductionAmount())),
		fmt.Sprintf("Taxable income: %s", tuistyles.FormatCurrency(r.TaxableIncome)),
		fmt.Sprintf("Federal income tax: %s", tuistyles.FormatCurrency(r.FederalIncomeTax)),
		stateLine,
		fmt.Sprintf("Credits applied: %s", tuistyles.FormatCurrency(r.Credits.TotalCredits)),
	}

	chart := components.NewBracketChart("Federal brackets", r.FederalBracketBreakdown).Render()

	return lipgloss.JoinVertical(lipgloss.Left,
		components.MetricGrid(cards, 2),
		strings.Join(lines, "\n"),
		"",
		chart,
	)
}

func stateLabel(r domain.TaxResult) string {
	if r.StateCode == "" {
		return "none"
	}
	return r.StateCode
}

func deductionLabel(d domain.DeductionType) string {
	if d == domain.DeductionItemized {
		return "Itemized"
	}
	return "Standard"
}

func renderEstimateHelp() string {
	return "tab/↓ next • shift+tab/↑ prev • ←/→ filing status • ctrl+t toggle state tax"
}
