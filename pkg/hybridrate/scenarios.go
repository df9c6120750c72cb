package hybridrate

import (
	"github.com/iwvelando/loan-calculator/pkg/emi"
	"github.com/iwvelando/loan-calculator/pkg/floatingrate"
)

// ScenarioInputs drives the hybrid sensitivity sweep. The periodic changes
// start from FloatingRate and only those after the fixed period apply.
type ScenarioInputs struct {
	Principal                 float64 `json:"principal" yaml:"principal"`
	FixedRate                 float64 `json:"fixedRate" yaml:"fixedRate"`
	FloatingRate              float64 `json:"floatingRate" yaml:"floatingRate"`
	FixedPeriodMonths         int     `json:"fixedPeriodMonths" yaml:"fixedPeriodMonths"`
	TenureYears               float64 `json:"tenureYears" yaml:"tenureYears"`
	RateChangeFrequencyMonths int     `json:"rateChangeFrequencyMonths" yaml:"rateChangeFrequencyMonths"`
	BaseIncreasePercent       float64 `json:"baseIncreasePercent" yaml:"baseIncreasePercent"`
	DecreasePercent           float64 `json:"decreasePercent" yaml:"decreasePercent"`
}

// CompareScenarios runs the optimistic, realistic and pessimistic legs over
// the floating phase of a hybrid loan.
func CompareScenarios(in ScenarioInputs) (floatingrate.ScenarioComparison, error) {
	var comparison floatingrate.ScenarioComparison
	legs := []struct {
		target   *floatingrate.Scenario
		name     string
		increase float64
	}{
		{&comparison.Optimistic, "optimistic", -in.DecreasePercent},
		{&comparison.Realistic, "realistic", in.BaseIncreasePercent},
		{&comparison.Pessimistic, "pessimistic", in.BaseIncreasePercent * 2},
	}

	totalMonths := emi.Months(in.TenureYears)
	for _, leg := range legs {
		all, err := floatingrate.PeriodicRateChanges(in.FloatingRate, leg.increase, in.RateChangeFrequencyMonths, totalMonths)
		if err != nil {
			return floatingrate.ScenarioComparison{}, err
		}
		changes := make([]floatingrate.RateChange, 0, len(all))
		for _, change := range all {
			if change.FromMonth > in.FixedPeriodMonths {
				changes = append(changes, change)
			}
		}

		schedule, err := Generate(in.Principal, in.FixedRate, in.FloatingRate, in.FixedPeriodMonths, in.TenureYears, changes)
		if err != nil {
			return floatingrate.ScenarioComparison{}, err
		}
		average := AverageRate(schedule, in.FixedRate, in.FloatingRate, in.FixedPeriodMonths)
		*leg.target = floatingrate.Summarize(leg.name, changes, schedule, average)
	}
	return comparison, nil
}
