// Package affordability reverse-solves the largest loan a household can
// service under a fixed obligation to income ratio (FOIR).
package affordability

import (
	"fmt"
	"math"
	"strings"

	"github.com/iwvelando/loan-calculator/pkg/constants"
	"github.com/iwvelando/loan-calculator/pkg/emi"
	"github.com/iwvelando/loan-calculator/pkg/mathutil"
	"github.com/iwvelando/loan-calculator/pkg/stampduty"
	"github.com/iwvelando/loan-calculator/pkg/validation"
)

// Inputs are monthly figures unless noted.
type Inputs struct {
	MonthlyIncome        float64 `json:"monthlyIncome" yaml:"monthlyIncome" mapstructure:"monthlyIncome"`
	SpouseIncome         float64 `json:"spouseIncome" yaml:"spouseIncome" mapstructure:"spouseIncome"`
	OtherIncome          float64 `json:"otherIncome" yaml:"otherIncome" mapstructure:"otherIncome"`
	ExistingEMIs         float64 `json:"existingEmis" yaml:"existingEmis" mapstructure:"existingEmis"`
	OtherObligations     float64 `json:"otherObligations" yaml:"otherObligations" mapstructure:"otherObligations"`
	MonthlyExpenses      float64 `json:"monthlyExpenses" yaml:"monthlyExpenses" mapstructure:"monthlyExpenses"`
	FOIRPercentage       float64 `json:"foirPercentage" yaml:"foirPercentage" mapstructure:"foirPercentage"`
	InterestRate         float64 `json:"interestRate" yaml:"interestRate" mapstructure:"interestRate"`
	TenureYears          float64 `json:"tenureYears" yaml:"tenureYears" mapstructure:"tenureYears"`
	DownPaymentAvailable float64 `json:"downPaymentAvailable" yaml:"downPaymentAvailable" mapstructure:"downPaymentAvailable"`
	// State selects the stamp duty table for UpfrontCosts. Empty skips it.
	State string `json:"state,omitempty" yaml:"state,omitempty" mapstructure:"state"`
}

// TotalIncome sums every income source.
func (in Inputs) TotalIncome() float64 {
	return in.MonthlyIncome + in.SpouseIncome + in.OtherIncome
}

// TotalObligations sums existing EMIs and other fixed obligations.
func (in Inputs) TotalObligations() float64 {
	return in.ExistingEMIs + in.OtherObligations
}

// Result is the affordability verdict. A Result with Feasible false and
// zero amounts is a valid answer, not an error.
type Result struct {
	MaxAllowedEMI    float64          `json:"maxAllowedEmi" yaml:"maxAllowedEmi"`
	MaxLoanAmount    float64          `json:"maxLoanAmount" yaml:"maxLoanAmount"`
	MaxPropertyValue float64          `json:"maxPropertyValue" yaml:"maxPropertyValue"`
	LTVRatio         float64          `json:"ltvRatio" yaml:"ltvRatio"`
	MaxLTV           float64          `json:"maxLtv" yaml:"maxLtv"`
	RBICompliant     bool             `json:"rbiCompliant" yaml:"rbiCompliant"`
	DisposableIncome float64          `json:"disposableIncome" yaml:"disposableIncome"`
	Feasible         bool             `json:"feasible" yaml:"feasible"`
	Recommendations  []string         `json:"recommendations" yaml:"recommendations"`
	UpfrontCosts     *stampduty.Costs `json:"upfrontCosts,omitempty" yaml:"upfrontCosts,omitempty"`
}

// MaxLTV returns the highest loan-to-value percentage permitted for a loan
// of the given size: 90% up to 30 lakh, 80% up to 75 lakh, 75% above.
func MaxLTV(loanAmount float64) float64 {
	switch {
	case loanAmount <= 30*constants.Lakh:
		return 90
	case loanAmount <= 75*constants.Lakh:
		return 80
	default:
		return 75
	}
}

// Calculate works out the largest loan the inputs can service.
func Calculate(in Inputs) (Result, error) {
	if err := validate(in); err != nil {
		return Result{}, err
	}

	maxAllowedEMI := mathutil.ApplyPercentage(in.TotalIncome(), in.FOIRPercentage) - in.TotalObligations()
	if maxAllowedEMI <= 0 {
		return Result{
			Recommendations: []string{
				"Existing obligations already use the full FOIR allowance; reduce obligations or add a co-applicant's income before applying",
			},
		}, nil
	}

	maxLoan, err := emi.LoanAmount(maxAllowedEMI, in.InterestRate, in.TenureYears)
	if err != nil {
		return Result{}, err
	}
	maxProperty := maxLoan + in.DownPaymentAvailable

	result := Result{
		MaxAllowedEMI:    mathutil.RoundUnit(maxAllowedEMI),
		MaxLoanAmount:    maxLoan,
		MaxPropertyValue: maxProperty,
		MaxLTV:           MaxLTV(maxLoan),
		DisposableIncome: mathutil.RoundUnit(in.TotalIncome() - in.TotalObligations() - maxAllowedEMI - in.MonthlyExpenses),
		Feasible:         maxLoan > 0,
	}
	if maxProperty > 0 {
		result.LTVRatio = mathutil.Round(mathutil.CalculatePercentage(maxLoan, maxProperty))
	}
	result.RBICompliant = result.LTVRatio <= result.MaxLTV
	result.Recommendations = recommendations(in, result)

	if strings.TrimSpace(in.State) != "" {
		costs, err := stampduty.Calculate(maxProperty, in.State)
		if err != nil {
			return Result{}, err
		}
		result.UpfrontCosts = &costs
	}
	return result, nil
}

func recommendations(in Inputs, r Result) []string {
	advice := []string{}
	switch {
	case in.FOIRPercentage < constants.FOIRConservative:
		advice = append(advice, fmt.Sprintf("FOIR of %.0f%% leaves headroom; lenders typically allow up to %.0f%%", in.FOIRPercentage, constants.FOIRConservative))
	case in.FOIRPercentage >= constants.FOIRAggressive:
		advice = append(advice, fmt.Sprintf("FOIR of %.0f%% is aggressive; many lenders cap obligations below %.0f%% of income", in.FOIRPercentage, constants.FOIRAggressive))
	}
	if r.LTVRatio > constants.HighLTVThreshold {
		advice = append(advice, fmt.Sprintf("LTV of %.2f%% is high; increase the down payment to bring it below %.0f%%", r.LTVRatio, constants.HighLTVThreshold))
	}
	if !r.RBICompliant {
		advice = append(advice, fmt.Sprintf("LTV of %.2f%% exceeds the %.0f%% RBI limit for this loan size", r.LTVRatio, r.MaxLTV))
	}
	if r.DisposableIncome < constants.MinimumDisposableIncome {
		advice = append(advice, fmt.Sprintf("Disposable income of %.0f after EMI and expenses is below %.0f; reduce expenses or the loan amount", r.DisposableIncome, constants.MinimumDisposableIncome))
	}
	return advice
}

// Requirement is the income needed to service a target loan.
type Requirement struct {
	LoanAmount    float64 `json:"loanAmount" yaml:"loanAmount"`
	EMI           float64 `json:"emi" yaml:"emi"`
	MonthlyIncome float64 `json:"monthlyIncome" yaml:"monthlyIncome"`
	AnnualIncome  float64 `json:"annualIncome" yaml:"annualIncome"`
}

// RequiredIncome inverts Calculate: the monthly income at which the EMI for
// loanAmount plus existingObligations fits inside foirPercentage, rounded
// up to a whole unit.
func RequiredIncome(loanAmount, annualRate, tenureYears, foirPercentage, existingObligations float64) (Requirement, error) {
	err := validation.First(
		validation.LoanTerms(loanAmount, annualRate, tenureYears),
		validation.Percentage("foirPercentage", foirPercentage),
		validation.Finite("existingObligations", existingObligations),
	)
	if err != nil {
		return Requirement{}, err
	}

	installment, err := emi.Calculate(loanAmount, annualRate, tenureYears)
	if err != nil {
		return Requirement{}, err
	}
	monthly := math.Ceil((installment + existingObligations) * constants.PercentageMultiplier / foirPercentage)
	if monthly < 0 {
		monthly = 0
	}
	return Requirement{
		LoanAmount:    loanAmount,
		EMI:           installment,
		MonthlyIncome: monthly,
		AnnualIncome:  monthly * constants.MonthsPerYear,
	}, nil
}

// Scenario is one point of the FOIR sweep.
type Scenario struct {
	Name           string  `json:"name" yaml:"name"`
	FOIRPercentage float64 `json:"foirPercentage" yaml:"foirPercentage"`
	Result         Result  `json:"result" yaml:"result"`
}

// CompareScenarios runs Calculate at the conservative, moderate and
// aggressive FOIR levels, ignoring in.FOIRPercentage.
func CompareScenarios(in Inputs) ([]Scenario, error) {
	levels := []struct {
		name string
		foir float64
	}{
		{"Conservative", constants.FOIRConservative},
		{"Moderate", constants.FOIRModerate},
		{"Aggressive", constants.FOIRAggressive},
	}

	scenarios := make([]Scenario, 0, len(levels))
	for _, level := range levels {
		in.FOIRPercentage = level.foir
		result, err := Calculate(in)
		if err != nil {
			return nil, err
		}
		scenarios = append(scenarios, Scenario{Name: level.name, FOIRPercentage: level.foir, Result: result})
	}
	return scenarios, nil
}

func validate(in Inputs) error {
	return validation.First(
		validation.Finite("monthlyIncome", in.MonthlyIncome),
		validation.Finite("spouseIncome", in.SpouseIncome),
		validation.Finite("otherIncome", in.OtherIncome),
		validation.Finite("existingEmis", in.ExistingEMIs),
		validation.Finite("otherObligations", in.OtherObligations),
		validation.Finite("monthlyExpenses", in.MonthlyExpenses),
		validation.Finite("downPaymentAvailable", in.DownPaymentAvailable),
		validation.Percentage("foirPercentage", in.FOIRPercentage),
		validation.NonNegativeRate("interestRate", in.InterestRate),
		validation.Tenure("tenureYears", in.TenureYears),
	)
}
