package floatingrate

import (
	"github.com/iwvelando/loan-calculator/pkg/amortization"
	"github.com/iwvelando/loan-calculator/pkg/emi"
)

// ScenarioInputs drives the three-way rate sensitivity sweep.
type ScenarioInputs struct {
	Principal                 float64 `json:"principal" yaml:"principal"`
	BaseRate                  float64 `json:"baseRate" yaml:"baseRate"`
	TenureYears               float64 `json:"tenureYears" yaml:"tenureYears"`
	RateChangeFrequencyMonths int     `json:"rateChangeFrequencyMonths" yaml:"rateChangeFrequencyMonths"`
	BaseIncreasePercent       float64 `json:"baseIncreasePercent" yaml:"baseIncreasePercent"`
	DecreasePercent           float64 `json:"decreasePercent" yaml:"decreasePercent"`
}

// Scenario is one leg of the sweep.
type Scenario struct {
	Name        string                `json:"name" yaml:"name"`
	RateChanges []RateChange          `json:"rateChanges" yaml:"rateChanges"`
	Schedule    amortization.Schedule `json:"schedule" yaml:"schedule"`
	AverageRate float64               `json:"averageRate" yaml:"averageRate"`
	InitialEMI  float64               `json:"initialEmi" yaml:"initialEmi"`
	FinalEMI    float64               `json:"finalEmi" yaml:"finalEmi"`
}

// ScenarioComparison holds the optimistic, realistic and pessimistic legs.
type ScenarioComparison struct {
	Optimistic  Scenario `json:"optimistic" yaml:"optimistic"`
	Realistic   Scenario `json:"realistic" yaml:"realistic"`
	Pessimistic Scenario `json:"pessimistic" yaml:"pessimistic"`
}

// Scenarios returns the legs in optimistic, realistic, pessimistic order.
func (c ScenarioComparison) Scenarios() []Scenario {
	return []Scenario{c.Optimistic, c.Realistic, c.Pessimistic}
}

// CompareScenarios builds three schedules from the same rate change
// generator: rates falling by DecreasePercent, rising by
// BaseIncreasePercent, and rising by twice BaseIncreasePercent per change.
func CompareScenarios(in ScenarioInputs) (ScenarioComparison, error) {
	var comparison ScenarioComparison
	legs := []struct {
		target   *Scenario
		name     string
		increase float64
	}{
		{&comparison.Optimistic, "optimistic", -in.DecreasePercent},
		{&comparison.Realistic, "realistic", in.BaseIncreasePercent},
		{&comparison.Pessimistic, "pessimistic", in.BaseIncreasePercent * 2},
	}

	totalMonths := emi.Months(in.TenureYears)
	for _, leg := range legs {
		changes, err := PeriodicRateChanges(in.BaseRate, leg.increase, in.RateChangeFrequencyMonths, totalMonths)
		if err != nil {
			return ScenarioComparison{}, err
		}
		scenario, err := BuildScenario(leg.name, in.Principal, in.BaseRate, in.TenureYears, changes)
		if err != nil {
			return ScenarioComparison{}, err
		}
		*leg.target = scenario
	}
	return comparison, nil
}

// BuildScenario runs one floating schedule and summarizes it.
func BuildScenario(name string, principal, baseRate, tenureYears float64, changes []RateChange) (Scenario, error) {
	schedule, err := Generate(principal, baseRate, tenureYears, changes)
	if err != nil {
		return Scenario{}, err
	}
	average, err := AverageRate(schedule, changes, baseRate)
	if err != nil {
		return Scenario{}, err
	}

	return Summarize(name, changes, schedule, average), nil
}

// Summarize wraps a generated schedule as a named scenario, taking the EMI
// at either end of the schedule. The average rate comes from the caller,
// which knows how the schedule's phases are weighted.
func Summarize(name string, changes []RateChange, schedule amortization.Schedule, averageRate float64) Scenario {
	scenario := Scenario{
		Name:        name,
		RateChanges: changes,
		Schedule:    schedule,
		AverageRate: averageRate,
	}
	if len(schedule.Rows) > 0 {
		scenario.InitialEMI = schedule.Rows[0].EMI
		scenario.FinalEMI = schedule.Rows[len(schedule.Rows)-1].EMI
	}
	return scenario
}
