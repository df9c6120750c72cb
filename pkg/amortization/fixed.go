package amortization

import (
	"github.com/iwvelando/loan-calculator/pkg/emi"
	"github.com/iwvelando/loan-calculator/pkg/validation"
)

// LumpSum is a one-off extra principal payment made in Month (1-based).
type LumpSum struct {
	Month  int     `json:"month" yaml:"month"`
	Amount float64 `json:"amount" yaml:"amount"`
}

// Generate creates the schedule for a fixed-rate loan, adding extraPayment
// to the principal repaid every month. The schedule stops early once the
// balance reaches zero.
func Generate(principal, annualRate, tenureYears, extraPayment float64) (Schedule, error) {
	err := validation.First(
		validation.LoanTerms(principal, annualRate, tenureYears),
		nonNegativeAmount("extraPayment", extraPayment),
	)
	if err != nil {
		return Schedule{}, err
	}

	return amortize(principal, annualRate, tenureYears, func(int) float64 {
		return extraPayment
	})
}

// GenerateWithLumpSums creates the schedule for a fixed-rate loan where the
// principal repaid in a month is increased by every lump sum falling in that
// month. Recurring prepayments are expressed as one entry per month.
func GenerateWithLumpSums(principal, annualRate, tenureYears float64, payments []LumpSum) (Schedule, error) {
	if err := validation.LoanTerms(principal, annualRate, tenureYears); err != nil {
		return Schedule{}, err
	}

	byMonth := make(map[int]float64, len(payments))
	for _, payment := range payments {
		if err := nonNegativeAmount("lumpSum.amount", payment.Amount); err != nil {
			return Schedule{}, err
		}
		if payment.Month < 1 {
			return Schedule{}, validation.Invalid("lumpSum.month", float64(payment.Month), "must be at least 1")
		}
		byMonth[payment.Month] += payment.Amount
	}

	return amortize(principal, annualRate, tenureYears, func(month int) float64 {
		return byMonth[month]
	})
}

// RecurringLumpSums expands a repeating prepayment into count entries
// starting at startMonth and spaced every months apart.
func RecurringLumpSums(amount float64, startMonth, every, count int) []LumpSum {
	if count <= 0 || every <= 0 || startMonth <= 0 {
		return nil
	}
	payments := make([]LumpSum, 0, count)
	for i := 0; i < count; i++ {
		payments = append(payments, LumpSum{Month: startMonth + i*every, Amount: amount})
	}
	return payments
}

func amortize(principal, annualRate, tenureYears float64, extraFor func(month int) float64) (Schedule, error) {
	if principal <= 0 || tenureYears <= 0 {
		return Empty(), nil
	}

	installment, err := emi.Calculate(principal, annualRate, tenureYears)
	if err != nil {
		return Schedule{}, err
	}

	totalMonths := emi.Months(tenureYears)
	builder := NewBuilder(principal, totalMonths)
	for month := 1; month <= totalMonths && !builder.Done(); month++ {
		builder.Post(annualRate, installment, extraFor(month), month == totalMonths)
	}
	return builder.Schedule(), nil
}

func nonNegativeAmount(field string, amount float64) error {
	if err := validation.Finite(field, amount); err != nil {
		return err
	}
	if amount < 0 {
		return validation.Invalid(field, amount, "must not be negative")
	}
	return nil
}
