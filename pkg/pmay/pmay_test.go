package pmay

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iwvelando/loan-calculator/pkg/validation"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		income   float64
		category string
		rate     float64
		ok       bool
	}{
		{250000, "EWS", 6.5, true},
		{300000, "EWS", 6.5, true},
		{300001, "LIG", 6.5, true},
		{800000, "MIG1", 4, true},
		{1200000, "MIG1", 4, true},
		{1500000, "MIG2", 3, true},
		{1800001, "", 0, false},
	}

	for _, tt := range tests {
		band, ok := Classify(tt.income)
		assert.Equal(t, tt.ok, ok, "income %.0f", tt.income)
		assert.Equal(t, tt.category, band.Category, "income %.0f", tt.income)
		assert.Equal(t, tt.rate, band.SubsidyRate, "income %.0f", tt.income)
	}
}

func TestCalculateMIG1(t *testing.T) {
	result, err := Calculate(Inputs{
		AnnualIncome:   800000,
		LoanAmount:     3000000,
		PropertyValue:  4000000,
		InterestRate:   8.5,
		TenureYears:    20,
		FirstTimeBuyer: true,
	})
	require.NoError(t, err)

	assert.True(t, result.Eligible)
	assert.Equal(t, "MIG1", result.Category)
	assert.Equal(t, 4.0, result.SubsidyRate)
	assert.Equal(t, 900000.0, result.MaxLoanForSubsidy)
	assert.Equal(t, 900000.0, result.SubsidizedLoan)
	assert.Equal(t, 2117.0, result.MonthlyEMIReduction)
	assert.Equal(t, 253044.0, result.SubsidyAmount)
	assert.Empty(t, result.Reason)
}

func TestCalculateSubsidyHorizonCappedAt20Years(t *testing.T) {
	base := Inputs{AnnualIncome: 800000, LoanAmount: 3000000, PropertyValue: 4000000, InterestRate: 8.5, FirstTimeBuyer: true}

	base.TenureYears = 20
	twenty, err := Calculate(base)
	require.NoError(t, err)
	base.TenureYears = 30
	thirty, err := Calculate(base)
	require.NoError(t, err)

	assert.Equal(t, twenty.SubsidyAmount, thirty.SubsidyAmount)
}

func TestCalculateLoanBelowCap(t *testing.T) {
	result, err := Calculate(Inputs{
		AnnualIncome:   500000,
		LoanAmount:     500000,
		PropertyValue:  1500000,
		InterestRate:   8,
		TenureYears:    10,
		FirstTimeBuyer: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "LIG", result.Category)
	assert.Equal(t, 500000.0, result.SubsidizedLoan)
	assert.Equal(t, 129963.0, result.SubsidyAmount)
}

func TestCalculateIneligible(t *testing.T) {
	tests := []struct {
		name     string
		in       Inputs
		category string
		reason   string
	}{
		{
			name:   "Not a first-time buyer",
			in:     Inputs{AnnualIncome: 800000, LoanAmount: 3000000, PropertyValue: 4000000, InterestRate: 8.5, TenureYears: 20},
			reason: "first-time",
		},
		{
			name:   "Income above MIG2",
			in:     Inputs{AnnualIncome: 2000000, LoanAmount: 3000000, PropertyValue: 4000000, InterestRate: 8.5, TenureYears: 20, FirstTimeBuyer: true},
			reason: "exceeds the 1800000 ceiling",
		},
		{
			name:     "Property above band limit",
			in:       Inputs{AnnualIncome: 400000, LoanAmount: 2500000, PropertyValue: 3500000, InterestRate: 8.5, TenureYears: 20, FirstTimeBuyer: true},
			category: "LIG",
			reason:   "exceeds the 3000000 limit for LIG",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Calculate(tt.in)
			require.NoError(t, err)
			assert.False(t, result.Eligible)
			assert.Equal(t, tt.category, result.Category)
			assert.Zero(t, result.SubsidyAmount)
			assert.Contains(t, result.Reason, tt.reason)
		})
	}
}

func TestCalculateInvalid(t *testing.T) {
	_, err := Calculate(Inputs{AnnualIncome: 800000, LoanAmount: 3000000, InterestRate: -2, TenureYears: 20, FirstTimeBuyer: true})
	assert.ErrorIs(t, err, validation.ErrInvalidInput)
}

func TestSubsidyNPV(t *testing.T) {
	diff, npv := SubsidyNPV(600000, 9, 6.5, 15)
	assert.InDelta(t, 2084.86, diff, 0.01)
	assert.InDelta(t, 218161.43, npv, 0.01)

	// The subsidized rate floors at zero.
	diff, _ = SubsidyNPV(600000, 5, 6.5, 15)
	assert.InDelta(t, 1411.43, diff, 0.01)

	diff, npv = SubsidyNPV(0, 9, 6.5, 15)
	assert.Zero(t, diff)
	assert.Zero(t, npv)
}
