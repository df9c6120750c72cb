// Package hybridrate generates schedules for loans that run at a fixed rate
// for an initial period and float afterwards.
package hybridrate

import (
	"github.com/iwvelando/loan-calculator/pkg/amortization"
	"github.com/iwvelando/loan-calculator/pkg/emi"
	"github.com/iwvelando/loan-calculator/pkg/floatingrate"
	"github.com/iwvelando/loan-calculator/pkg/validation"
)

// Generate builds a two-phase schedule. During the first fixedPeriodMonths
// the EMI is the one sized for the full tenure at fixedRate, so nothing is
// left as a balloon at the transition. From the transition onwards the
// floating engine takes over starting at floatingRate. Rate changes use
// absolute loan months; changes that fall inside the fixed period are
// ignored.
func Generate(principal, fixedRate, floatingRate float64, fixedPeriodMonths int, totalTenureYears float64, rateChanges []floatingrate.RateChange) (amortization.Schedule, error) {
	err := validation.First(
		validation.LoanTerms(principal, fixedRate, totalTenureYears),
		validation.NonNegativeRate("floatingRate", floatingRate),
	)
	if err != nil {
		return amortization.Schedule{}, err
	}
	totalMonths := emi.Months(totalTenureYears)
	if err := fixedPeriod(fixedPeriodMonths, totalMonths); err != nil {
		return amortization.Schedule{}, err
	}

	rates, err := floatingrate.Timeline(floatingRate, floatingPhase(rateChanges, fixedPeriodMonths), totalMonths-fixedPeriodMonths)
	if err != nil {
		return amortization.Schedule{}, err
	}
	if principal <= 0 {
		return amortization.Empty(), nil
	}

	fixedEMI, err := emi.Calculate(principal, fixedRate, totalTenureYears)
	if err != nil {
		return amortization.Schedule{}, err
	}

	builder := amortization.NewBuilder(principal, totalMonths)
	for month := 1; month <= fixedPeriodMonths && !builder.Done(); month++ {
		builder.Post(fixedRate, fixedEMI, 0, false)
	}
	if err := floatingrate.Amortize(builder, rates); err != nil {
		return amortization.Schedule{}, err
	}
	return builder.Schedule(), nil
}

// AverageRate weights fixedRate over the fixed period and floatingRate over
// the rest by opening balance. Rate changes after the transition are not
// reflected: the whole floating phase is treated as running at
// floatingRate.
func AverageRate(schedule amortization.Schedule, fixedRate, floatingRate float64, fixedPeriodMonths int) float64 {
	return floatingrate.WeightedAverageRate(schedule, func(month int) float64 {
		if month <= fixedPeriodMonths {
			return fixedRate
		}
		return floatingRate
	}, fixedRate)
}

// Transition describes the switch from the fixed to the floating phase.
type Transition struct {
	Month               int     `json:"month" yaml:"month"`
	FixedEMI            float64 `json:"fixedEmi" yaml:"fixedEmi"`
	FloatingEMI         float64 `json:"floatingEmi" yaml:"floatingEmi"`
	BalanceAtTransition float64 `json:"balanceAtTransition" yaml:"balanceAtTransition"`
	EMIChange           float64 `json:"emiChange" yaml:"emiChange"`
}

// TransitionSummary reads the transition out of a schedule produced by
// Generate. ok is false when the loan was repaid before the floating phase
// started.
func TransitionSummary(schedule amortization.Schedule, fixedPeriodMonths int) (Transition, bool) {
	if fixedPeriodMonths <= 0 || len(schedule.Rows) <= fixedPeriodMonths {
		return Transition{}, false
	}
	last := schedule.Rows[fixedPeriodMonths-1]
	first := schedule.Rows[fixedPeriodMonths]
	return Transition{
		Month:               first.Month,
		FixedEMI:            last.EMI,
		FloatingEMI:         first.EMI,
		BalanceAtTransition: last.ClosingBalance,
		EMIChange:           first.EMI - last.EMI,
	}, true
}

func fixedPeriod(fixedPeriodMonths, totalMonths int) error {
	if fixedPeriodMonths <= 0 {
		return validation.Invalid("fixedPeriodMonths", float64(fixedPeriodMonths), "must be positive")
	}
	if fixedPeriodMonths >= totalMonths {
		return validation.Invalid("fixedPeriodMonths", float64(fixedPeriodMonths), "must be shorter than the tenure")
	}
	return nil
}

// floatingPhase renumbers changes relative to the first floating month.
func floatingPhase(changes []floatingrate.RateChange, fixedPeriodMonths int) []floatingrate.RateChange {
	relative := make([]floatingrate.RateChange, 0, len(changes))
	for _, change := range changes {
		month := change.FromMonth - fixedPeriodMonths
		if month < 1 {
			continue
		}
		relative = append(relative, floatingrate.RateChange{FromMonth: month, NewRate: change.NewRate})
	}
	return relative
}
