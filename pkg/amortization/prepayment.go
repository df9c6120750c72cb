package amortization

import (
	"github.com/iwvelando/loan-calculator/pkg/emi"
)

// PrepaymentAnalysis pairs a no-prepayment baseline with a prepayment plan.
type PrepaymentAnalysis struct {
	Baseline       Schedule   `json:"baseline" yaml:"baseline"`
	WithPrepayment Schedule   `json:"withPrepayment" yaml:"withPrepayment"`
	Comparison     Comparison `json:"comparison" yaml:"comparison"`
}

// AnalyzePrepayment compares the plain schedule with one where monthlyExtra
// is paid every month and the lump sums are paid in their months.
func AnalyzePrepayment(principal, annualRate, tenureYears, monthlyExtra float64, lumpSums []LumpSum) (PrepaymentAnalysis, error) {
	if err := nonNegativeAmount("monthlyExtra", monthlyExtra); err != nil {
		return PrepaymentAnalysis{}, err
	}

	baseline, err := Generate(principal, annualRate, tenureYears, 0)
	if err != nil {
		return PrepaymentAnalysis{}, err
	}

	payments := append([]LumpSum(nil), lumpSums...)
	if monthlyExtra > 0 {
		payments = append(payments, RecurringLumpSums(monthlyExtra, 1, 1, emi.Months(tenureYears))...)
	}
	withPrepayment, err := GenerateWithLumpSums(principal, annualRate, tenureYears, payments)
	if err != nil {
		return PrepaymentAnalysis{}, err
	}

	return PrepaymentAnalysis{
		Baseline:       baseline,
		WithPrepayment: withPrepayment,
		Comparison:     Compare(baseline, withPrepayment),
	}, nil
}
