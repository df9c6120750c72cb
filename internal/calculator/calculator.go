// Package calculator runs every configured analysis for one loan and
// collects the results into a Report.
package calculator

import (
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/iwvelando/loan-calculator/internal/config"
	"github.com/iwvelando/loan-calculator/pkg/affordability"
	"github.com/iwvelando/loan-calculator/pkg/amortization"
	"github.com/iwvelando/loan-calculator/pkg/emi"
	"github.com/iwvelando/loan-calculator/pkg/floatingrate"
	"github.com/iwvelando/loan-calculator/pkg/hybridrate"
	"github.com/iwvelando/loan-calculator/pkg/pmay"
	"github.com/iwvelando/loan-calculator/pkg/stampduty"
	"github.com/iwvelando/loan-calculator/pkg/tax"
	"github.com/iwvelando/loan-calculator/pkg/validation"
)

// Report holds all results for one configuration. Optional sections are nil
// when not requested.
type Report struct {
	Name          string                           `json:"name,omitempty"`
	LoanType      string                           `json:"loanType"`
	LoanAmount    float64                          `json:"loanAmount"`
	InterestRate  float64                          `json:"interestRate"`
	TenureYears   float64                          `json:"tenureYears"`
	EMI           float64                          `json:"emi"`
	AverageRate   float64                          `json:"averageRate"`
	EffectiveRate float64                          `json:"effectiveRate,omitempty"`
	RateChanges   []floatingrate.RateChange        `json:"rateChanges,omitempty"`
	Schedule      amortization.Schedule            `json:"schedule"`
	Yearly        []amortization.YearSummary       `json:"yearly"`
	Transition    *hybridrate.Transition           `json:"transition,omitempty"`
	Prepayment    *amortization.PrepaymentAnalysis `json:"prepayment,omitempty"`
	Scenarios     *floatingrate.ScenarioComparison `json:"scenarios,omitempty"`
	Affordability *AffordabilitySection            `json:"affordability,omitempty"`
	Tax           *tax.Savings                     `json:"tax,omitempty"`
	PMAY          *pmay.Result                     `json:"pmay,omitempty"`
	UpfrontCosts  *stampduty.Costs                 `json:"upfrontCosts,omitempty"`
	Warnings      []string                         `json:"warnings,omitempty"`
}

// AffordabilitySection pairs the configured FOIR result with the fixed sweep.
type AffordabilitySection struct {
	Result    affordability.Result     `json:"result"`
	Scenarios []affordability.Scenario `json:"scenarios"`
}

// Run computes the report for conf.
func Run(logger *zap.Logger, conf config.Configuration) (Report, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	loan := conf.Loan
	if err := validation.ValidateLoanType(loan.LoanType); err != nil {
		return Report{}, fmt.Errorf("%w: %v", validation.ErrInvalidInput, err)
	}

	report := Report{
		Name:         loan.Name,
		LoanType:     loan.Type(),
		LoanAmount:   loan.LoanAmount(),
		InterestRate: loan.InterestRate,
		TenureYears:  loan.TenureYears,
	}

	changes, err := loan.EffectiveRateChanges()
	if err != nil {
		return Report{}, fmt.Errorf("failed to build rate changes: %w", err)
	}
	report.RateChanges = changes

	if err := buildSchedule(&report, loan, changes); err != nil {
		return Report{}, err
	}
	logger.Debug(fmt.Sprintf("computed %s schedule of %d months", report.LoanType, report.Schedule.Len()),
		zap.String("op", "calculator.Run"),
		zap.Float64("loanAmount", report.LoanAmount),
		zap.Float64("emi", report.EMI),
	)

	if loan.ProcessingFee > 0 && report.LoanAmount > 0 {
		report.EffectiveRate, err = emi.EffectiveRate(report.LoanAmount, loan.InterestRate, loan.ProcessingFee, loan.TenureYears)
		if err != nil {
			return Report{}, fmt.Errorf("failed to compute effective rate: %w", err)
		}
	}

	steps := []struct {
		name string
		run  func(*Report, config.Configuration) error
	}{
		{"prepayment", runPrepayment},
		{"scenarios", runScenarios},
		{"affordability", runAffordability},
		{"tax", runTax},
		{"pmay", runPMAY},
		{"upfront costs", runUpfrontCosts},
	}
	for _, step := range steps {
		if err := step.run(&report, conf); err != nil {
			return Report{}, fmt.Errorf("failed to compute %s: %w", step.name, err)
		}
		logger.Debug("computed "+step.name,
			zap.String("op", "calculator.Run"),
		)
	}

	for _, warning := range report.Warnings {
		logger.Warn(warning,
			zap.String("op", "calculator.Run"),
		)
	}
	return report, nil
}

func buildSchedule(report *Report, loan config.Loan, changes []floatingrate.RateChange) error {
	amount := report.LoanAmount
	var err error

	switch report.LoanType {
	case validation.LoanTypeFloating:
		report.Schedule, err = floatingrate.Generate(amount, loan.InterestRate, loan.TenureYears, changes)
		if err == nil {
			report.AverageRate, err = floatingrate.AverageRate(report.Schedule, changes, loan.InterestRate)
		}
	case validation.LoanTypeHybrid:
		report.Schedule, err = hybridrate.Generate(amount, loan.InterestRate, loan.FloatingRate, loan.FixedPeriodMonths, loan.TenureYears, changes)
		if err == nil {
			report.AverageRate = hybridrate.AverageRate(report.Schedule, loan.InterestRate, loan.FloatingRate, loan.FixedPeriodMonths)
			if transition, ok := hybridrate.TransitionSummary(report.Schedule, loan.FixedPeriodMonths); ok {
				report.Transition = &transition
			}
		}
	default:
		report.Schedule, err = amortization.Generate(amount, loan.InterestRate, loan.TenureYears, 0)
		report.AverageRate = loan.InterestRate
	}
	if err != nil {
		return fmt.Errorf("failed to generate %s schedule: %w", report.LoanType, err)
	}

	if len(report.Schedule.Rows) > 0 {
		report.EMI = report.Schedule.Rows[0].EMI
	}
	report.Yearly = amortization.YearlySummary(report.Schedule)
	return nil
}

func runPrepayment(report *Report, conf config.Configuration) error {
	if !conf.Prepayment.Enabled() {
		return nil
	}
	if report.LoanType != validation.LoanTypeFixed {
		report.Warnings = append(report.Warnings, fmt.Sprintf("Prepayment analysis supports fixed rate loans only - skipped for %s loan", report.LoanType))
		return nil
	}

	analysis, err := amortization.AnalyzePrepayment(report.LoanAmount, conf.Loan.InterestRate, conf.Loan.TenureYears,
		conf.Prepayment.MonthlyExtra, conf.Prepayment.AllLumpSums())
	if err != nil {
		return err
	}
	report.Prepayment = &analysis
	return nil
}

func runScenarios(report *Report, conf config.Configuration) error {
	sweep := conf.Scenarios
	if !sweep.Enabled {
		return nil
	}
	frequency := sweep.RateChangeFrequencyMonths
	if frequency <= 0 {
		frequency = conf.Loan.RateChangeFrequencyMonths
	}
	if frequency <= 0 {
		report.Warnings = append(report.Warnings, "Scenario sweep skipped - no rate change frequency configured")
		return nil
	}

	var comparison floatingrate.ScenarioComparison
	var err error
	if report.LoanType == validation.LoanTypeHybrid {
		comparison, err = hybridrate.CompareScenarios(hybridrate.ScenarioInputs{
			Principal:                 report.LoanAmount,
			FixedRate:                 conf.Loan.InterestRate,
			FloatingRate:              conf.Loan.FloatingRate,
			FixedPeriodMonths:         conf.Loan.FixedPeriodMonths,
			TenureYears:               conf.Loan.TenureYears,
			RateChangeFrequencyMonths: frequency,
			BaseIncreasePercent:       sweep.BaseIncreasePercent,
			DecreasePercent:           sweep.DecreasePercent,
		})
	} else {
		comparison, err = floatingrate.CompareScenarios(floatingrate.ScenarioInputs{
			Principal:                 report.LoanAmount,
			BaseRate:                  conf.Loan.InterestRate,
			TenureYears:               conf.Loan.TenureYears,
			RateChangeFrequencyMonths: frequency,
			BaseIncreasePercent:       sweep.BaseIncreasePercent,
			DecreasePercent:           sweep.DecreasePercent,
		})
	}
	if err != nil {
		return err
	}
	report.Scenarios = &comparison
	return nil
}

func runAffordability(report *Report, conf config.Configuration) error {
	if conf.Affordability == nil {
		return nil
	}
	in := *conf.Affordability
	if in.InterestRate == 0 {
		in.InterestRate = conf.Loan.InterestRate
	}
	if in.TenureYears == 0 {
		in.TenureYears = conf.Loan.TenureYears
	}
	if in.FOIRPercentage == 0 {
		in.FOIRPercentage = 50
	}
	if in.State == "" {
		in.State = conf.Loan.State
	}

	result, err := affordability.Calculate(in)
	if err != nil {
		return err
	}
	scenarios, err := affordability.CompareScenarios(in)
	if err != nil {
		return err
	}
	report.Affordability = &AffordabilitySection{Result: result, Scenarios: scenarios}

	if result.Feasible && report.LoanAmount > result.MaxLoanAmount {
		report.Warnings = append(report.Warnings, fmt.Sprintf("Requested loan of %.0f exceeds the affordable maximum of %.0f", report.LoanAmount, result.MaxLoanAmount))
	}
	return nil
}

func runTax(report *Report, conf config.Configuration) error {
	if conf.Tax == nil {
		return nil
	}
	interest, principal := firstYear(report.Schedule)
	savings, err := tax.CalculateSavings(tax.Inputs{
		AnnualIncome:       conf.Tax.AnnualIncome,
		InterestPaid:       interest,
		PrincipalRepaid:    principal,
		Other80CInvestment: conf.Tax.Other80CInvestment,
		OtherDeductions:    conf.Tax.OtherDeductions,
		FirstTimeBuyer:     conf.Tax.FirstTimeBuyer,
		PropertyValue:      conf.Loan.PropertyValue,
	})
	if err != nil {
		return err
	}
	report.Tax = &savings
	return nil
}

func runPMAY(report *Report, conf config.Configuration) error {
	if conf.PMAY == nil {
		return nil
	}
	result, err := pmay.Calculate(pmay.Inputs{
		AnnualIncome:   conf.PMAY.AnnualIncome,
		LoanAmount:     math.Max(report.LoanAmount, 0),
		PropertyValue:  conf.Loan.PropertyValue,
		InterestRate:   conf.Loan.InterestRate,
		TenureYears:    conf.Loan.TenureYears,
		FirstTimeBuyer: conf.PMAY.FirstTimeBuyer,
	})
	if err != nil {
		return err
	}
	report.PMAY = &result
	return nil
}

func runUpfrontCosts(report *Report, conf config.Configuration) error {
	if conf.Loan.State == "" {
		return nil
	}
	costs, err := stampduty.Calculate(conf.Loan.PropertyValue, conf.Loan.State)
	if err != nil {
		return err
	}
	report.UpfrontCosts = &costs
	return nil
}

// firstYear sums interest and principal over the first twelve months.
func firstYear(schedule amortization.Schedule) (interest, principal float64) {
	for _, row := range schedule.Rows {
		if row.Year > 1 {
			break
		}
		interest += row.Interest
		principal += row.Principal
	}
	return interest, principal
}
