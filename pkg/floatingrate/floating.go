// Package floatingrate generates schedules for loans whose rate changes over
// time. The EMI is recomputed from the outstanding balance and the remaining
// months on every rate change so the tenure never moves.
package floatingrate

import (
	"sort"

	"github.com/iwvelando/loan-calculator/pkg/amortization"
	"github.com/iwvelando/loan-calculator/pkg/emi"
	"github.com/iwvelando/loan-calculator/pkg/mathutil"
	"github.com/iwvelando/loan-calculator/pkg/validation"
)

// RateChange sets NewRate (annual percent) from FromMonth (1-based) onwards.
type RateChange struct {
	FromMonth int     `json:"fromMonth" yaml:"fromMonth"`
	NewRate   float64 `json:"newRate" yaml:"newRate"`
}

// PeriodicRateChanges emits one change every frequencyMonths, starting at
// month frequencyMonths and running through totalMonths. Each change adds
// increasePerChange to the previous rate; a negative increase models falling
// rates, floored at zero.
func PeriodicRateChanges(baseRate, increasePerChange float64, frequencyMonths, totalMonths int) ([]RateChange, error) {
	err := validation.First(
		validation.NonNegativeRate("baseRate", baseRate),
		validation.Finite("increasePerChange", increasePerChange),
	)
	if err != nil {
		return nil, err
	}
	if frequencyMonths <= 0 {
		return nil, validation.Invalid("rateChangeFrequencyMonths", float64(frequencyMonths), "must be positive")
	}

	changes := make([]RateChange, 0, totalMonths/frequencyMonths)
	current := baseRate
	for month := frequencyMonths; month <= totalMonths; month += frequencyMonths {
		current = mathutil.Max(current+increasePerChange, 0)
		changes = append(changes, RateChange{FromMonth: month, NewRate: current})
	}
	return changes, nil
}

// AdjustedEMI is the EMI that repays outstandingPrincipal over the remaining
// months at newRate, rounded to a whole unit.
func AdjustedEMI(outstandingPrincipal, newRate float64, remainingMonths int) (float64, error) {
	err := validation.First(
		validation.Finite("outstandingPrincipal", outstandingPrincipal),
		validation.NonNegativeRate("newRate", newRate),
	)
	if err != nil {
		return 0, err
	}
	return mathutil.RoundUnit(emi.Payment(outstandingPrincipal, newRate, remainingMonths)), nil
}

// Timeline returns the effective rate of each month 1..totalMonths (index
// month-1) by replaying the rate changes over baseRate. When two changes
// share a month the one listed last wins.
func Timeline(baseRate float64, changes []RateChange, totalMonths int) ([]float64, error) {
	if err := validation.NonNegativeRate("baseRate", baseRate); err != nil {
		return nil, err
	}
	if err := validateChanges(changes); err != nil {
		return nil, err
	}
	if totalMonths <= 0 {
		return []float64{}, nil
	}

	byMonth := make(map[int]float64, len(changes))
	for _, change := range sortedChanges(changes) {
		byMonth[change.FromMonth] = change.NewRate
	}

	rates := make([]float64, totalMonths)
	current := baseRate
	for month := 1; month <= totalMonths; month++ {
		if rate, ok := byMonth[month]; ok {
			current = rate
		}
		rates[month-1] = current
	}
	return rates, nil
}

// Amortize posts one month per rate in rates to builder. The EMI is
// recomputed on the first month and on every month whose rate differs from
// the month before, using the balance and the months remaining at that
// point. Interest always uses the month's own rate and opening balance.
func Amortize(builder *amortization.Builder, rates []float64) error {
	var installment float64
	for i, rate := range rates {
		if builder.Done() {
			break
		}
		if i == 0 || rate != rates[i-1] {
			adjusted, err := AdjustedEMI(builder.Balance(), rate, len(rates)-i)
			if err != nil {
				return err
			}
			installment = adjusted
		}
		builder.Post(rate, installment, 0, i == len(rates)-1)
	}
	return nil
}

// Generate builds the schedule for a floating-rate loan of tenureYears
// starting at baseRate.
func Generate(principal, baseRate, tenureYears float64, rateChanges []RateChange) (amortization.Schedule, error) {
	if err := validation.LoanTerms(principal, baseRate, tenureYears); err != nil {
		return amortization.Schedule{}, err
	}
	totalMonths := emi.Months(tenureYears)
	rates, err := Timeline(baseRate, rateChanges, totalMonths)
	if err != nil {
		return amortization.Schedule{}, err
	}
	if principal <= 0 || totalMonths <= 0 {
		return amortization.Empty(), nil
	}

	builder := amortization.NewBuilder(principal, totalMonths)
	if err := Amortize(builder, rates); err != nil {
		return amortization.Schedule{}, err
	}
	return builder.Schedule(), nil
}

// AverageRate weights each month's rate by that month's opening balance, so
// the early high-balance months dominate. An empty schedule reports baseRate.
func AverageRate(schedule amortization.Schedule, rateChanges []RateChange, baseRate float64) (float64, error) {
	rates, err := Timeline(baseRate, rateChanges, len(schedule.Rows))
	if err != nil {
		return 0, err
	}
	return WeightedAverageRate(schedule, func(month int) float64 {
		return rates[month-1]
	}, baseRate), nil
}

// WeightedAverageRate computes the opening-balance-weighted mean of
// rateFor(month), rounded to two decimals. fallback is returned when the
// schedule carries no weight.
func WeightedAverageRate(schedule amortization.Schedule, rateFor func(month int) float64, fallback float64) float64 {
	weighted, weight := 0.0, 0.0
	for _, row := range schedule.Rows {
		weighted += rateFor(row.Month) * row.OpeningBalance
		weight += row.OpeningBalance
	}
	if weight <= 0 {
		return fallback
	}
	return mathutil.Round(weighted / weight)
}

func validateChanges(changes []RateChange) error {
	for _, change := range changes {
		if change.FromMonth < 1 {
			return validation.Invalid("rateChange.fromMonth", float64(change.FromMonth), "must be at least 1")
		}
		if err := validation.NonNegativeRate("rateChange.newRate", change.NewRate); err != nil {
			return err
		}
	}
	return nil
}

// sortedChanges returns a copy ordered by FromMonth, keeping input order for
// equal months so last-wins still applies.
func sortedChanges(changes []RateChange) []RateChange {
	sorted := append([]RateChange(nil), changes...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].FromMonth < sorted[j].FromMonth
	})
	return sorted
}
