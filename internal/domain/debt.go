package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ExclusionType selects the statutory exclusion claimed for canceled debt.
// Switches over it are expected to be exhaustive.
type ExclusionType int

const (
	ExclusionNone ExclusionType = iota
	ExclusionBankruptcy
	ExclusionPrincipalResidence
	ExclusionFarmDebt
	ExclusionBusinessRealProperty
	ExclusionStudentLoan
)

// ExclusionTypes lists every exclusion in declaration order
var ExclusionTypes = []ExclusionType{
	ExclusionNone,
	ExclusionBankruptcy,
	ExclusionPrincipalResidence,
	ExclusionFarmDebt,
	ExclusionBusinessRealProperty,
	ExclusionStudentLoan,
}

func (e ExclusionType) String() string {
	switch e {
	case ExclusionNone:
		return "none"
	case ExclusionBankruptcy:
		return "bankruptcy"
	case ExclusionPrincipalResidence:
		return "principalResidence"
	case ExclusionFarmDebt:
		return "farmDebt"
	case ExclusionBusinessRealProperty:
		return "businessRealProperty"
	case ExclusionStudentLoan:
		return "studentLoan"
	default:
		return fmt.Sprintf("ExclusionType(%d)", int(e))
	}
}

// ParseExclusionType accepts the canonical camelCase names and snake_case aliases
func ParseExclusionType(s string) (ExclusionType, error) {
	key := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), "_", ""))
	if key == "" {
		return ExclusionNone, nil
	}
	for _, e := range ExclusionTypes {
		if strings.ToLower(e.String()) == key {
			return e, nil
		}
	}
	return ExclusionNone, fmt.Errorf("unknown exclusion type %q", s)
}

// MarshalText implements encoding.TextMarshaler
func (e ExclusionType) MarshalText() ([]byte, error) {
	return []byte(e.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (e *ExclusionType) UnmarshalText(text []byte) error {
	parsed, err := ParseExclusionType(string(text))
	if err != nil {
		return err
	}
	*e = parsed
	return nil
}

// LineItem is a labeled asset or liability at fair market value
type LineItem struct {
	Label string          `yaml:"label" json:"label"`
	Value decimal.Decimal `yaml:"value" json:"value"`
}

// DebtCancellationInputs describes a Form 1099-C situation
type DebtCancellationInputs struct {
	CanceledDebtAmount decimal.Decimal `yaml:"canceled_debt_amount" json:"canceledDebtAmount"`
	Assets             []LineItem      `yaml:"assets" json:"assets"`
	Liabilities        []LineItem      `yaml:"liabilities" json:"liabilities"`
	ExclusionType      ExclusionType   `yaml:"exclusion_type" json:"exclusionType"`
	TaxBracketRate     decimal.Decimal `yaml:"tax_bracket_rate" json:"taxBracketRate"`
	FilingStatus       FilingStatus    `yaml:"filing_status" json:"filingStatus"`
}

// DebtCancellationResult is the outcome of the exclusion test
type DebtCancellationResult struct {
	TotalAssets      decimal.Decimal `yaml:"total_assets" json:"totalAssets"`
	TotalLiabilities decimal.Decimal `yaml:"total_liabilities" json:"totalLiabilities"`
	InsolvencyAmount decimal.Decimal `yaml:"insolvency_amount" json:"insolvencyAmount"`
	IsInsolvent      bool            `yaml:"is_insolvent" json:"isInsolvent"`
	ExclusionType    ExclusionType   `yaml:"exclusion_type" json:"exclusionType"`
	ExclusionAmount  decimal.Decimal `yaml:"exclusion_amount" json:"exclusionAmount"`
	ExclusionReason  string          `yaml:"exclusion_reason" json:"exclusionReason"`
	TaxableAmount    decimal.Decimal `yaml:"taxable_amount" json:"taxableAmount"`
	EstimatedTax     decimal.Decimal `yaml:"estimated_tax" json:"estimatedTax"`
	TaxSavings       decimal.Decimal `yaml:"tax_savings" json:"taxSavings"`
}
