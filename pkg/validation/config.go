package validation

import (
	"fmt"
	"strings"

	"github.com/iwvelando/loan-calculator/pkg/constants"
)

// Loan types accepted in configuration.
const (
	LoanTypeFixed    = "fixed"
	LoanTypeFloating = "floating"
	LoanTypeHybrid   = "hybrid"
)

// LoanConfig carries the fields needed to sanity-check a loan request.
type LoanConfig struct {
	Name                      string
	PropertyValue             float64
	DownPayment               float64
	TenureYears               float64
	InterestRate              float64
	LoanType                  string
	RateChangeFrequencyMonths int
	FixedPeriodMonths         int
	FloatingRate              float64
}

// ValidateLoanType checks the loan type is one of fixed, floating or hybrid.
// An empty type is accepted and treated as fixed.
func ValidateLoanType(loanType string) error {
	switch strings.ToLower(loanType) {
	case "", LoanTypeFixed, LoanTypeFloating, LoanTypeHybrid:
		return nil
	}
	return fmt.Errorf("expected loan type of %s, %s or %s, got %s",
		LoanTypeFixed, LoanTypeFloating, LoanTypeHybrid, loanType)
}

// ValidateDownPayment warns about down payments outside the usual range.
func ValidateDownPayment(name string, propertyValue, downPayment float64) []string {
	var warnings []string

	if propertyValue <= 0 {
		return append(warnings, fmt.Sprintf("Loan '%s' has no property value - nothing will be financed", name))
	}
	if downPayment >= propertyValue {
		warnings = append(warnings, fmt.Sprintf("Loan '%s' down payment covers the full property value (%.2f >= %.2f)",
			name, downPayment, propertyValue))
	} else if downPayment < propertyValue*0.10 {
		warnings = append(warnings, fmt.Sprintf("Loan '%s' down payment is below 10%% of the property value - lenders rarely finance more than 90%%",
			name))
	}

	return warnings
}

// ValidateRateSettings warns about rate-policy fields that do not match the loan type.
func ValidateRateSettings(loan LoanConfig) []string {
	var warnings []string
	totalMonths := int(loan.TenureYears * constants.MonthsPerYear)

	switch strings.ToLower(loan.LoanType) {
	case LoanTypeFloating:
		if loan.RateChangeFrequencyMonths <= 0 {
			warnings = append(warnings, fmt.Sprintf("Loan '%s' is floating but has no rate change frequency - rate will stay at %.2f%%",
				loan.Name, loan.InterestRate))
		}
	case LoanTypeHybrid:
		if loan.FixedPeriodMonths <= 0 || loan.FixedPeriodMonths >= totalMonths {
			warnings = append(warnings, fmt.Sprintf("Loan '%s' fixed period of %d months must fall inside the %d month tenure",
				loan.Name, loan.FixedPeriodMonths, totalMonths))
		}
		if loan.FloatingRate <= 0 {
			warnings = append(warnings, fmt.Sprintf("Loan '%s' is hybrid but has no floating rate", loan.Name))
		}
	default:
		if loan.RateChangeFrequencyMonths > 0 || loan.FixedPeriodMonths > 0 {
			warnings = append(warnings, fmt.Sprintf("Loan '%s' is fixed rate - rate change settings are ignored", loan.Name))
		}
	}

	return warnings
}

// ConfigValidator performs comprehensive configuration validation.
type ConfigValidator struct {
	Loan LoanConfig
}

// ValidateAll validates the entire configuration and returns warnings
func (cv *ConfigValidator) ValidateAll() []string {
	var warnings []string

	if err := ValidateLoanType(cv.Loan.LoanType); err != nil {
		warnings = append(warnings, err.Error())
	}
	warnings = append(warnings, ValidateDownPayment(cv.Loan.Name, cv.Loan.PropertyValue, cv.Loan.DownPayment)...)
	warnings = append(warnings, ValidateRateSettings(cv.Loan)...)

	if cv.Loan.TenureYears > constants.MaxTenureYears {
		warnings = append(warnings, fmt.Sprintf("Loan '%s' tenure of %.0f years exceeds the %d year maximum",
			cv.Loan.Name, cv.Loan.TenureYears, constants.MaxTenureYears))
	}

	return warnings
}
