package config

import (
	"strings"

	"github.com/iwvelando/loan-calculator/pkg/emi"
	"github.com/iwvelando/loan-calculator/pkg/floatingrate"
	"github.com/iwvelando/loan-calculator/pkg/validation"
)

// Loan describes the property purchase and the rate policy of the loan.
type Loan struct {
	Name          string  `yaml:"name,omitempty" json:"name,omitempty"`
	PropertyValue float64 `yaml:"propertyValue" json:"propertyValue" mapstructure:"propertyValue"`
	DownPayment   float64 `yaml:"downPayment" json:"downPayment" mapstructure:"downPayment"`
	TenureYears   float64 `yaml:"tenureYears" json:"tenureYears" mapstructure:"tenureYears"`
	InterestRate  float64 `yaml:"interestRate" json:"interestRate" mapstructure:"interestRate"`
	LoanType      string  `yaml:"loanType,omitempty" json:"loanType,omitempty" mapstructure:"loanType"` // fixed, floating, hybrid
	ProcessingFee float64 `yaml:"processingFee,omitempty" json:"processingFee,omitempty" mapstructure:"processingFee"`
	State         string  `yaml:"state,omitempty" json:"state,omitempty"`

	// Floating and hybrid loans. RateChanges take precedence over the
	// periodic generator.
	RateChanges               []floatingrate.RateChange `yaml:"rateChanges,omitempty" json:"rateChanges,omitempty" mapstructure:"rateChanges"`
	RateChangeFrequencyMonths int                       `yaml:"rateChangeFrequencyMonths,omitempty" json:"rateChangeFrequencyMonths,omitempty" mapstructure:"rateChangeFrequencyMonths"`
	RateIncreasePercent       float64                   `yaml:"rateIncreasePercent,omitempty" json:"rateIncreasePercent,omitempty" mapstructure:"rateIncreasePercent"`

	// Hybrid loans only.
	FixedPeriodMonths int     `yaml:"fixedPeriodMonths,omitempty" json:"fixedPeriodMonths,omitempty" mapstructure:"fixedPeriodMonths"`
	FloatingRate      float64 `yaml:"floatingRate,omitempty" json:"floatingRate,omitempty" mapstructure:"floatingRate"`
}

// LoanAmount is the financed amount: property value less down payment.
func (l Loan) LoanAmount() float64 {
	return l.PropertyValue - l.DownPayment
}

// Type returns the normalized loan type, defaulting to fixed.
func (l Loan) Type() string {
	t := strings.ToLower(strings.TrimSpace(l.LoanType))
	if t == "" {
		return validation.LoanTypeFixed
	}
	return t
}

// TotalMonths is the tenure in months.
func (l Loan) TotalMonths() int {
	return emi.Months(l.TenureYears)
}

// EffectiveRateChanges returns the explicit rate changes when given,
// otherwise the periodic changes implied by the frequency and increase.
// Hybrid loans generate from the floating rate and keep only changes after
// the fixed period.
func (l Loan) EffectiveRateChanges() ([]floatingrate.RateChange, error) {
	if len(l.RateChanges) > 0 || l.RateChangeFrequencyMonths <= 0 {
		return l.RateChanges, nil
	}

	base := l.InterestRate
	if l.Type() == validation.LoanTypeHybrid {
		base = l.FloatingRate
	}
	changes, err := floatingrate.PeriodicRateChanges(base, l.RateIncreasePercent, l.RateChangeFrequencyMonths, l.TotalMonths())
	if err != nil {
		return nil, err
	}
	if l.Type() != validation.LoanTypeHybrid {
		return changes, nil
	}

	filtered := changes[:0]
	for _, change := range changes {
		if change.FromMonth > l.FixedPeriodMonths {
			filtered = append(filtered, change)
		}
	}
	return filtered, nil
}

func (l Loan) validationConfig() validation.LoanConfig {
	frequency := l.RateChangeFrequencyMonths
	if len(l.RateChanges) > 0 && frequency <= 0 {
		frequency = l.RateChanges[0].FromMonth
	}
	return validation.LoanConfig{
		Name:                      l.Name,
		PropertyValue:             l.PropertyValue,
		DownPayment:               l.DownPayment,
		TenureYears:               l.TenureYears,
		InterestRate:              l.InterestRate,
		LoanType:                  l.LoanType,
		RateChangeFrequencyMonths: frequency,
		FixedPeriodMonths:         l.FixedPeriodMonths,
		FloatingRate:              l.FloatingRate,
	}
}
