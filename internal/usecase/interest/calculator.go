// Package interest holds the pure interest math: the per-period figure the
// dashboard sums over a loan book, and the standalone projection behind the
// public calculator endpoint. No state, no I/O.
package interest

import (
	"github.com/shopspring/decimal"

	"lendtracker/internal/domain/loan"
)

// PeriodicAmount returns the interest attributable to one period of the
// loan's configured frequency, as an unrounded month-equivalent figure.
// Every branch normalizes to roughly one month of interest — including
// YEARLY, which reuses the monthly divisor on purpose. An unrecognized
// frequency falls back to the monthly branch rather than dividing by it.
func PeriodicAmount(principal decimal.Decimal, annualRatePct float64, f loan.Frequency) decimal.Decimal {
	rate := annualRatePct / 100.0

	var factor float64
	switch f {
	case loan.FrequencyDaily:
		factor = rate / 365 * 30
	case loan.FrequencyWeekly:
		factor = rate / 52 * 4.33
	case loan.FrequencyBiweekly:
		factor = rate / 26 * 2.17
	case loan.FrequencyMonthly:
		factor = rate / 12
	case loan.FrequencyQuarterly:
		factor = rate / 4 / 3
	case loan.FrequencyYearly:
		factor = rate / 12
	default:
		factor = rate / 12
	}
	return principal.Mul(decimal.NewFromFloat(factor))
}

// Projection is the result of the standalone calculator. All monetary fields
// carry two decimal places, rounded half-up.
type Projection struct {
	Principal      decimal.Decimal `json:"principal"`
	InterestRate   float64         `json:"interestRate"`
	Frequency      string          `json:"frequency"`
	DurationMonths int             `json:"durationMonths"`

	MonthlyInterest decimal.Decimal `json:"monthlyInterest"`
	YearlyInterest  decimal.Decimal `json:"yearlyInterest"`
	TotalInterest   decimal.Decimal `json:"totalInterest"`
	TotalAmount     decimal.Decimal `json:"totalAmount"`

	DailyInterest      decimal.Decimal `json:"dailyInterest"`
	WeeklyInterest     decimal.Decimal `json:"weeklyInterest"`
	PerPaymentInterest decimal.Decimal `json:"perPaymentInterest"`
}

// Project computes a simple (non-compounding) interest projection for the
// given principal, annual percentage rate, payment frequency label and
// duration in days. A non-positive duration means one year; days convert to
// months at 30 days per month, rounded up. An unrecognized frequency label
// uses the monthly per-payment figure.
func Project(principal decimal.Decimal, annualRatePct float64, frequency string, days int) Projection {
	months := 12
	if days > 0 {
		months = (days + 29) / 30
	}

	yearly := principal.Mul(decimal.NewFromFloat(annualRatePct / 100.0))
	monthly := yearly.DivRound(decimal.NewFromInt(12), 2)
	daily := yearly.DivRound(decimal.NewFromInt(365), 2)
	weekly := yearly.DivRound(decimal.NewFromInt(52), 2)

	var perPayment decimal.Decimal
	f, ok := loan.ParseFrequency(frequency)
	if !ok {
		f = loan.FrequencyMonthly
	}
	switch f {
	case loan.FrequencyDaily:
		perPayment = daily
	case loan.FrequencyWeekly:
		perPayment = weekly
	case loan.FrequencyBiweekly:
		perPayment = weekly.Mul(decimal.NewFromInt(2))
	case loan.FrequencyMonthly:
		perPayment = monthly
	case loan.FrequencyQuarterly:
		perPayment = monthly.Mul(decimal.NewFromInt(3))
	case loan.FrequencyYearly:
		perPayment = yearly
	default:
		perPayment = monthly
	}

	totalInterest := monthly.Mul(decimal.NewFromInt(int64(months)))

	return Projection{
		Principal:          principal,
		InterestRate:       annualRatePct,
		Frequency:          frequency,
		DurationMonths:     months,
		MonthlyInterest:    monthly,
		YearlyInterest:     yearly.Round(2),
		TotalInterest:      totalInterest.Round(2),
		TotalAmount:        principal.Add(totalInterest).Round(2),
		DailyInterest:      daily,
		WeeklyInterest:     weekly,
		PerPaymentInterest: perPayment.Round(2),
	}
}
