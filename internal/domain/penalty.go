package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SafeHarborInputs are the facts needed for the underpayment safe harbor test.
// None of them are part of TaxInputs.
type SafeHarborInputs struct {
	CurrentYearTax decimal.Decimal `yaml:"current_year_tax" json:"currentYearTax"`
	PriorYearTax   decimal.Decimal `yaml:"prior_year_tax" json:"priorYearTax"`
	PriorYearAGI   decimal.Decimal `yaml:"prior_year_agi" json:"priorYearAGI"`
	// TotalPaid includes estimated payments and withholding
	TotalPaid decimal.Decimal `yaml:"total_paid" json:"totalPaid"`
}

// SafeHarborResult reports which safe harbor, if any, is met
type SafeHarborResult struct {
	Exempt             bool            `json:"exempt"`
	Rule               string          `json:"rule"`
	RequiredAnnual     decimal.Decimal `json:"requiredAnnual"`
	CurrentYearTarget  decimal.Decimal `json:"currentYearTarget"`
	PriorYearTarget    decimal.Decimal `json:"priorYearTarget"`
	BalanceDue         decimal.Decimal `json:"balanceDue"`
	MeetsCurrentYear   bool            `json:"meetsCurrentYear"`
	MeetsPriorYear     bool            `json:"meetsPriorYear"`
	MeetsMinimumAmount bool            `json:"meetsMinimumAmount"`
}

// QuarterPayment is an estimated payment made on a date
type QuarterPayment struct {
	Date   time.Time       `yaml:"date" json:"date"`
	Amount decimal.Decimal `yaml:"amount" json:"amount"`
}

// QuarterPenalty is the underpayment penalty for one installment
type QuarterPenalty struct {
	Quarter   int             `json:"quarter"`
	DueDate   time.Time       `json:"dueDate"`
	Required  decimal.Decimal `json:"required"`
	Paid      decimal.Decimal `json:"paid"`
	Underpaid decimal.Decimal `json:"underpaid"`
	DaysLate  int             `json:"daysLate"`
	Penalty   decimal.Decimal `json:"penalty"`
}

// PenaltySchedule totals the per-installment penalties
type PenaltySchedule struct {
	Quarters     []QuarterPenalty `json:"quarters"`
	TotalPenalty decimal.Decimal  `json:"totalPenalty"`
	AnnualRate   decimal.Decimal  `json:"annualRate"`
}
