// Package emi provides the closed-form equated monthly installment formulas
// and their inverses. Every function is pure: money is in base currency
// units, rates are annual percentages (9.5 means 9.5%).
package emi

import (
	"math"

	"github.com/iwvelando/loan-calculator/pkg/constants"
	"github.com/iwvelando/loan-calculator/pkg/mathutil"
	"github.com/iwvelando/loan-calculator/pkg/validation"
)

// MonthlyRate converts an annual percentage rate into a periodic monthly rate.
func MonthlyRate(annualRatePercent float64) float64 {
	return annualRatePercent / (constants.PercentageMultiplier * constants.MonthsPerYear)
}

// Months converts a tenure in years into a whole number of months.
func Months(tenureYears float64) int {
	return int(math.Round(tenureYears * constants.MonthsPerYear))
}

// Payment is the unrounded installment for principal repaid over months at
// the given annual rate. It returns 0 when there is nothing to repay.
func Payment(principal, annualRatePercent float64, months int) float64 {
	if principal <= 0 || months <= 0 {
		return 0
	}
	n := float64(months)
	r := MonthlyRate(annualRatePercent)
	if r == 0 {
		return principal / n
	}
	power := math.Pow(1+r, n)
	return principal * r * power / (power - 1)
}

// Calculate returns the EMI rounded to the nearest whole currency unit:
//
//	EMI = P * r * (1+r)^n / ((1+r)^n - 1), r = rate/12/100, n = years*12
//
// A zero or negative principal or tenure yields 0 rather than an error.
func Calculate(principal, annualRatePercent, tenureYears float64) (float64, error) {
	if err := validation.LoanTerms(principal, annualRatePercent, tenureYears); err != nil {
		return 0, err
	}
	if principal <= 0 || tenureYears <= 0 {
		return 0, nil
	}
	return mathutil.RoundUnit(Payment(principal, annualRatePercent, Months(tenureYears))), nil
}

// TotalAmount is EMI * n, rounded independently of TotalInterest.
func TotalAmount(principal, annualRatePercent, tenureYears float64) (float64, error) {
	installment, err := Calculate(principal, annualRatePercent, tenureYears)
	if err != nil || installment == 0 {
		return 0, err
	}
	return mathutil.RoundUnit(installment * float64(Months(tenureYears))), nil
}

// TotalInterest is EMI * n - P. Because both totals are rounded on their own,
// TotalAmount - TotalInterest may differ from the principal by one unit.
func TotalInterest(principal, annualRatePercent, tenureYears float64) (float64, error) {
	installment, err := Calculate(principal, annualRatePercent, tenureYears)
	if err != nil || installment == 0 {
		return 0, err
	}
	return mathutil.RoundUnit(installment*float64(Months(tenureYears)) - principal), nil
}

// LoanAmount inverts the EMI formula to find the principal an installment
// can service.
func LoanAmount(installment, annualRatePercent, tenureYears float64) (float64, error) {
	err := validation.First(
		validation.Finite("emi", installment),
		validation.NonNegativeRate("annualRate", annualRatePercent),
		validation.Tenure("tenureYears", tenureYears),
	)
	if err != nil {
		return 0, err
	}
	if installment <= 0 || tenureYears <= 0 {
		return 0, nil
	}

	n := float64(Months(tenureYears))
	r := MonthlyRate(annualRatePercent)
	if r == 0 {
		return mathutil.RoundUnit(installment * n), nil
	}
	power := math.Pow(1+r, n)
	return mathutil.RoundUnit(installment * (power - 1) / (r * power)), nil
}

// Tenure returns the whole number of months needed to repay principal at
// the given installment. When the installment does not exceed the first
// month's interest the loan never amortizes and +Inf is returned.
func Tenure(principal, installment, annualRatePercent float64) (float64, error) {
	err := validation.First(
		validation.Finite("principal", principal),
		validation.Finite("emi", installment),
		validation.NonNegativeRate("annualRate", annualRatePercent),
	)
	if err != nil {
		return 0, err
	}
	if principal <= 0 {
		return 0, nil
	}

	r := MonthlyRate(annualRatePercent)
	if installment <= principal*r || installment <= 0 {
		return math.Inf(1), nil
	}
	if r == 0 {
		return math.Ceil(principal / installment), nil
	}
	months := -math.Log(1-principal*r/installment) / math.Log(1+r)
	// Guard against 239.9999999 style results before taking the ceiling.
	return math.Ceil(months - 1e-9), nil
}

// IsUnpayable reports whether a tenure returned by Tenure is the
// never-repaid sentinel.
func IsUnpayable(months float64) bool {
	return math.IsInf(months, 1)
}

// Outstanding returns the balance left after monthsElapsed installments of
// the unrounded EMI, rounded to a whole unit. It is not the closing balance
// of a generated schedule: schedules pay the rounded EMI and round each row,
// so their balance drifts from this value (3551345 against 3551294 for
// 5000000 at 9% over 20 years after 120 months) until the final row clears it.
func Outstanding(principal, annualRatePercent, tenureYears float64, monthsElapsed int) (float64, error) {
	if err := validation.LoanTerms(principal, annualRatePercent, tenureYears); err != nil {
		return 0, err
	}
	if monthsElapsed <= 0 {
		return principal, nil
	}
	totalMonths := Months(tenureYears)
	if monthsElapsed >= totalMonths || principal <= 0 {
		return 0, nil
	}

	k := float64(monthsElapsed)
	r := MonthlyRate(annualRatePercent)
	if r == 0 {
		return mathutil.RoundUnit(principal - principal/float64(totalMonths)*k), nil
	}
	installment := Payment(principal, annualRatePercent, totalMonths)
	growth := math.Pow(1+r, k)
	balance := principal*growth - installment*(growth-1)/r
	return mathutil.RoundUnit(mathutil.Max(balance, 0)), nil
}

// EffectiveRate finds the annual rate at which the principal net of the
// processing fee is repaid by the EMI quoted at the stated rate. It bisects
// the 0-50% domain for a fixed number of iterations and stops early once
// the EMI matches within one currency unit; 100 halvings of a 50 point
// interval bound the rate error far below a basis point. The result is
// rounded to two decimals.
func EffectiveRate(principal, statedRate, processingFee, tenureYears float64) (float64, error) {
	err := validation.First(
		validation.LoanTerms(principal, statedRate, tenureYears),
		validation.Finite("processingFee", processingFee),
	)
	if err != nil {
		return 0, err
	}
	if principal <= 0 || tenureYears <= 0 || processingFee <= 0 {
		return statedRate, nil
	}
	usable := principal - processingFee
	if usable <= 0 {
		return 0, validation.Invalid("processingFee", processingFee, "must be smaller than the principal")
	}

	months := Months(tenureYears)
	target := Payment(principal, statedRate, months)

	low, high := 0.0, constants.EffectiveRateUpperBound
	rate := statedRate
	for i := 0; i < constants.EffectiveRateIterations; i++ {
		rate = (low + high) / 2
		candidate := Payment(usable, rate, months)
		if math.Abs(candidate-target) < constants.EffectiveRateTolerance {
			break
		}
		if candidate < target {
			low = rate
		} else {
			high = rate
		}
	}

	return mathutil.Round(rate), nil
}
