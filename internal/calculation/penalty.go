package calculation

import (
	"sort"
	"time"

	"github.com/rgehrsitz/setax/internal/domain"
	"github.com/shopspring/decimal"
)

// Safe harbor thresholds
var (
	SafeHarborCurrentYearPct    = decimal.NewFromFloat(0.90)
	SafeHarborPriorYearPct      = decimal.NewFromInt(1)
	SafeHarborHighIncomePct     = decimal.NewFromFloat(1.10)
	SafeHarborHighIncomeAGI     = decimal.NewFromInt(150000)
	SafeHarborMinimumBalanceDue = decimal.NewFromInt(1000)
)

var daysPerYear = decimal.NewFromInt(365)

// ComputePenalty returns simple daily interest on an underpayment:
// underpaid × (annualRate / 365) × daysLate. Negative inputs count as zero.
func ComputePenalty(underpaidAmount decimal.Decimal, daysLate int, annualRate decimal.Decimal) decimal.Decimal {
	if daysLate <= 0 {
		return decimal.Zero
	}
	underpaid := domain.NonNegative(underpaidAmount)
	rate := domain.NonNegative(annualRate)
	return underpaid.Mul(rate).Mul(decimal.NewFromInt(int64(daysLate))).Div(daysPerYear)
}

// EvaluateSafeHarbor reports whether any underpayment safe harbor is met.
// It is informational only; ComputePenalty never consults it.
//
// A zero PriorYearTax is read as "not provided" and skips the prior-year test.
func EvaluateSafeHarbor(in domain.SafeHarborInputs) domain.SafeHarborResult {
	current := domain.NonNegative(in.CurrentYearTax)
	prior := domain.NonNegative(in.PriorYearTax)
	paid := domain.NonNegative(in.TotalPaid)

	res := domain.SafeHarborResult{
		CurrentYearTarget: current.Mul(SafeHarborCurrentYearPct),
		BalanceDue:        domain.NonNegative(current.Sub(paid)),
	}
	res.RequiredAnnual = res.CurrentYearTarget
	res.MeetsCurrentYear = paid.GreaterThanOrEqual(res.CurrentYearTarget)

	if prior.IsPositive() {
		pct := SafeHarborPriorYearPct
		if in.PriorYearAGI.GreaterThan(SafeHarborHighIncomeAGI) {
			pct = SafeHarborHighIncomePct
		}
		res.PriorYearTarget = prior.Mul(pct)
		res.MeetsPriorYear = paid.GreaterThanOrEqual(res.PriorYearTarget)
		res.RequiredAnnual = decimal.Min(res.RequiredAnnual, res.PriorYearTarget)
	}

	res.MeetsMinimumAmount = res.BalanceDue.LessThan(SafeHarborMinimumBalanceDue)

	switch {
	case res.MeetsMinimumAmount:
		res.Exempt, res.Rule = true, "balance due under $1,000"
	case res.MeetsCurrentYear:
		res.Exempt, res.Rule = true, "paid at least 90% of current-year tax"
	case res.MeetsPriorYear:
		res.Exempt, res.Rule = true, "paid at least "+pctLabel(res.PriorYearTarget, prior)+" of prior-year tax"
	default:
		res.Rule = "no safe harbor met"
	}
	return res
}

func pctLabel(target, base decimal.Decimal) string {
	if base.IsZero() {
		return "100%"
	}
	return target.Div(base).Mul(decimal.NewFromInt(100)).StringFixed(0) + "%"
}

// ComputeQuarterlyPenalties computes a penalty per required installment.
//
// The required annual amount is split evenly across the year's due dates.
// Payments are applied in date order to the earliest installment that still
// has a shortfall; each installment accrues interest from its due date until
// the payment that covers it, or until asOf for any amount left unpaid.
func ComputeQuarterlyPenalties(requiredAnnual decimal.Decimal, payments []domain.QuarterPayment, asOf time.Time, c domain.TaxYearConstants) domain.PenaltySchedule {
	schedule := domain.PenaltySchedule{AnnualRate: c.UnderpaymentRate, TotalPenalty: decimal.Zero}
	dues := c.QuarterlyDueDates
	if len(dues) == 0 {
		return schedule
	}
	installment := domain.NonNegative(requiredAnnual).Div(decimal.NewFromInt(int64(len(dues))))

	sorted := make([]domain.QuarterPayment, 0, len(payments))
	for _, p := range payments {
		if p.Amount.IsPositive() {
			sorted = append(sorted, p)
		}
	}
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Date.Before(sorted[j].Date) })

	quarters := make([]domain.QuarterPenalty, len(dues))
	remaining := make([]decimal.Decimal, len(dues))
	for i, due := range dues {
		quarters[i] = domain.QuarterPenalty{Quarter: i + 1, DueDate: due, Required: installment, Paid: decimal.Zero, Underpaid: decimal.Zero, Penalty: decimal.Zero}
		remaining[i] = installment
	}

	for _, p := range sorted {
		left := p.Amount
		for i := range quarters {
			if !left.IsPositive() {
				break
			}
			if !remaining[i].IsPositive() {
				continue
			}
			applied := decimal.Min(left, remaining[i])
			left = left.Sub(applied)
			remaining[i] = remaining[i].Sub(applied)
			quarters[i].Paid = quarters[i].Paid.Add(applied)

			if late := daysBetween(quarters[i].DueDate, p.Date); late > 0 {
				quarters[i].Penalty = quarters[i].Penalty.Add(ComputePenalty(applied, late, c.UnderpaymentRate))
				quarters[i].DaysLate = max(quarters[i].DaysLate, late)
			}
		}
	}

	for i := range quarters {
		quarters[i].Underpaid = remaining[i]
		if remaining[i].IsPositive() {
			if late := daysBetween(quarters[i].DueDate, asOf); late > 0 {
				quarters[i].Penalty = quarters[i].Penalty.Add(ComputePenalty(remaining[i], late, c.UnderpaymentRate))
				quarters[i].DaysLate = max(quarters[i].DaysLate, late)
			}
		}
		schedule.TotalPenalty = schedule.TotalPenalty.Add(quarters[i].Penalty)
	}
	schedule.Quarters = quarters
	return schedule
}

// daysBetween counts whole calendar days from due to paid; zero or negative means on time
func daysBetween(due, paid time.Time) int {
	d := time.Date(due.Year(), due.Month(), due.Day(), 0, 0, 0, 0, time.UTC)
	p := time.Date(paid.Year(), paid.Month(), paid.Day(), 0, 0, 0, 0, time.UTC)
	return int(p.Sub(d).Hours() / 24)
}
