package validation

import (
	"errors"
	"fmt"

	"github.com/iwvelando/loan-calculator/pkg/constants"
	"github.com/iwvelando/loan-calculator/pkg/mathutil"
)

// ErrInvalidInput is wrapped by every input error so callers can tell a
// malformed request apart from a valid request with a degenerate answer.
var ErrInvalidInput = errors.New("invalid input")

// InputError describes a single rejected input value.
type InputError struct {
	Field  string
	Value  float64
	Reason string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("%s: %s (got %v)", e.Field, e.Reason, e.Value)
}

// Unwrap allows errors.Is(err, ErrInvalidInput).
func (e *InputError) Unwrap() error {
	return ErrInvalidInput
}

// IsInputError reports whether err was caused by invalid input.
func IsInputError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// Invalid builds an InputError.
func Invalid(field string, value float64, reason string) error {
	return &InputError{Field: field, Value: value, Reason: reason}
}

// Finite rejects NaN and infinite values.
func Finite(field string, value float64) error {
	if !mathutil.IsFinite(value) {
		return Invalid(field, value, "must be a finite number")
	}
	return nil
}

// NonNegativeRate rejects non-finite or negative percentage rates.
func NonNegativeRate(field string, value float64) error {
	if err := Finite(field, value); err != nil {
		return err
	}
	if value < 0 {
		return Invalid(field, value, "must not be negative")
	}
	return nil
}

// Tenure rejects non-finite tenures and tenures above the supported maximum.
// Zero and negative tenures are accepted; callers treat them as degenerate.
func Tenure(field string, years float64) error {
	if err := Finite(field, years); err != nil {
		return err
	}
	if years > constants.MaxTenureYears {
		return Invalid(field, years, fmt.Sprintf("must not exceed %d years", constants.MaxTenureYears))
	}
	return nil
}

// LoanTerms validates the common principal/rate/tenure triple.
func LoanTerms(principal, annualRate, tenureYears float64) error {
	if err := Finite("principal", principal); err != nil {
		return err
	}
	if err := NonNegativeRate("annualRate", annualRate); err != nil {
		return err
	}
	return Tenure("tenureYears", tenureYears)
}

// Percentage rejects values outside (0, 100].
func Percentage(field string, value float64) error {
	if err := Finite(field, value); err != nil {
		return err
	}
	if value <= 0 || value > constants.PercentageMultiplier {
		return Invalid(field, value, "must be greater than 0 and at most 100")
	}
	return nil
}

// First returns the first non-nil error.
func First(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
