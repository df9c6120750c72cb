// Package pmay evaluates eligibility for the PMAY credit linked subsidy and
// values the subsidy as the present value of the EMI it saves.
package pmay

import (
	_ "embed"
	"fmt"
	"math"

	"gopkg.in/yaml.v3"

	"github.com/iwvelando/loan-calculator/pkg/constants"
	"github.com/iwvelando/loan-calculator/pkg/emi"
	"github.com/iwvelando/loan-calculator/pkg/mathutil"
	"github.com/iwvelando/loan-calculator/pkg/validation"
)

//go:embed bands.yaml
var bandsYAML []byte

// Band is one income category of the scheme.
type Band struct {
	Category          string  `json:"category" yaml:"category"`
	MaxIncome         float64 `json:"maxIncome" yaml:"maxIncome"`
	SubsidyRate       float64 `json:"subsidyRate" yaml:"subsidyRate"`
	MaxLoanForSubsidy float64 `json:"maxLoanForSubsidy" yaml:"maxLoanForSubsidy"`
	MaxPropertyValue  float64 `json:"maxPropertyValue" yaml:"maxPropertyValue"`
}

// bands are ordered by MaxIncome.
var bands = mustLoad(bandsYAML)

func mustLoad(data []byte) []Band {
	var raw struct {
		Bands []Band `yaml:"bands"`
	}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		panic(fmt.Sprintf("pmay: decoding embedded bands: %v", err))
	}
	return raw.Bands
}

// Bands returns a copy of the band table.
func Bands() []Band {
	return append([]Band(nil), bands...)
}

// Classify returns the band an annual household income falls in. ok is
// false above the highest band.
func Classify(annualIncome float64) (Band, bool) {
	for _, band := range bands {
		if annualIncome <= band.MaxIncome {
			return band, true
		}
	}
	return Band{}, false
}

// Inputs describe the applicant and the loan.
type Inputs struct {
	AnnualIncome   float64 `json:"annualIncome" yaml:"annualIncome" mapstructure:"annualIncome"`
	LoanAmount     float64 `json:"loanAmount" yaml:"loanAmount" mapstructure:"loanAmount"`
	PropertyValue  float64 `json:"propertyValue" yaml:"propertyValue" mapstructure:"propertyValue"`
	InterestRate   float64 `json:"interestRate" yaml:"interestRate" mapstructure:"interestRate"`
	TenureYears    float64 `json:"tenureYears" yaml:"tenureYears" mapstructure:"tenureYears"`
	FirstTimeBuyer bool    `json:"firstTimeBuyer" yaml:"firstTimeBuyer" mapstructure:"firstTimeBuyer"`
}

// Result is the subsidy assessment. Ineligible applicants get Eligible
// false with the reason, not an error.
type Result struct {
	Eligible            bool    `json:"eligible" yaml:"eligible"`
	Category            string  `json:"category,omitempty" yaml:"category,omitempty"`
	SubsidyRate         float64 `json:"subsidyRate" yaml:"subsidyRate"`
	MaxLoanForSubsidy   float64 `json:"maxLoanForSubsidy" yaml:"maxLoanForSubsidy"`
	SubsidizedLoan      float64 `json:"subsidizedLoan" yaml:"subsidizedLoan"`
	MonthlyEMIReduction float64 `json:"monthlyEmiReduction" yaml:"monthlyEmiReduction"`
	SubsidyAmount       float64 `json:"subsidyAmount" yaml:"subsidyAmount"`
	Reason              string  `json:"reason,omitempty" yaml:"reason,omitempty"`
}

// Calculate checks eligibility and values the subsidy on the part of the
// loan the band covers.
func Calculate(in Inputs) (Result, error) {
	err := validation.First(
		validation.Finite("annualIncome", in.AnnualIncome),
		validation.LoanTerms(in.LoanAmount, in.InterestRate, in.TenureYears),
		validation.Finite("propertyValue", in.PropertyValue),
	)
	if err != nil {
		return Result{}, err
	}

	if !in.FirstTimeBuyer {
		return Result{Reason: "the subsidy is only available to first-time home buyers"}, nil
	}
	band, ok := Classify(in.AnnualIncome)
	if !ok {
		return Result{Reason: fmt.Sprintf("annual income of %.0f exceeds the %.0f ceiling", in.AnnualIncome, bands[len(bands)-1].MaxIncome)}, nil
	}
	if in.PropertyValue > band.MaxPropertyValue {
		return Result{
			Category: band.Category,
			Reason:   fmt.Sprintf("property value of %.0f exceeds the %.0f limit for %s", in.PropertyValue, band.MaxPropertyValue, band.Category),
		}, nil
	}

	subsidized := mathutil.Min(mathutil.Max(in.LoanAmount, 0), band.MaxLoanForSubsidy)
	reduction, npv := SubsidyNPV(subsidized, in.InterestRate, band.SubsidyRate, in.TenureYears)
	return Result{
		Eligible:            true,
		Category:            band.Category,
		SubsidyRate:         band.SubsidyRate,
		MaxLoanForSubsidy:   band.MaxLoanForSubsidy,
		SubsidizedLoan:      subsidized,
		MonthlyEMIReduction: mathutil.RoundUnit(reduction),
		SubsidyAmount:       mathutil.RoundUnit(npv),
	}, nil
}

// SubsidyNPV returns the monthly EMI differential between marketRate and
// marketRate less subsidyRate, and its present value at the scheme discount
// rate. Both EMIs amortize over the subsidy horizon of min(tenureYears, 20)
// years and every month is discounted on its own.
func SubsidyNPV(loanAmount, marketRate, subsidyRate, tenureYears float64) (monthlyDifference, npv float64) {
	months := emi.Months(math.Min(tenureYears, constants.PMAYMaxTenureYears))
	if loanAmount <= 0 || months <= 0 {
		return 0, 0
	}

	subsidizedRate := math.Max(marketRate-subsidyRate, 0)
	monthlyDifference = emi.Payment(loanAmount, marketRate, months) - emi.Payment(loanAmount, subsidizedRate, months)

	discount := emi.MonthlyRate(constants.PMAYDiscountRate)
	for month := 1; month <= months; month++ {
		npv += monthlyDifference / math.Pow(1+discount, float64(month))
	}
	return monthlyDifference, npv
}
