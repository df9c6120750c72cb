package hybridrate

import (
	"testing"

	"github.com/iwvelando/loan-calculator/pkg/floatingrate"
	"github.com/iwvelando/loan-calculator/pkg/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateWithoutFloatingChanges(t *testing.T) {
	schedule, err := Generate(5000000, 8.5, 9, 36, 20, nil)
	require.NoError(t, err)

	require.Equal(t, 240, schedule.Len())
	assert.Equal(t, 5704931.0, schedule.TotalInterest)
	assert.Equal(t, 5000000.0, schedule.TotalPrincipal)

	// Fixed phase EMI is sized for the full 20 years at 8.5%.
	for _, row := range schedule.Rows[:36] {
		assert.Equal(t, 43391.0, row.EMI, "month %d", row.Month)
		assert.Equal(t, 8.5, row.Rate)
	}
	assert.Equal(t, 44817.0, schedule.Rows[36].EMI)
	assert.Equal(t, 9.0, schedule.Rows[36].Rate)

	last, ok := schedule.Last()
	require.True(t, ok)
	assert.Zero(t, last.ClosingBalance)
}

func TestGenerateRenumbersFloatingChanges(t *testing.T) {
	all, err := floatingrate.PeriodicRateChanges(9, 0.25, 12, 240)
	require.NoError(t, err)
	var changes []floatingrate.RateChange
	for _, change := range all {
		if change.FromMonth > 36 {
			changes = append(changes, change)
		}
	}

	schedule, err := Generate(5000000, 8.5, 9, 36, 20, changes)
	require.NoError(t, err)
	require.Equal(t, 240, schedule.Len())

	assert.Equal(t, 9.0, schedule.Rows[46].Rate, "month 47 still at the floating start rate")
	assert.Equal(t, 10.0, schedule.Rows[47].Rate, "the month 48 change applies from month 48")
	assert.Equal(t, 44817.0, schedule.Rows[36].EMI)
	assert.Equal(t, 47622.0, schedule.Rows[47].EMI)
	assert.Equal(t, 48305.0, schedule.Rows[59].EMI)
	assert.Equal(t, 7000694.0, schedule.TotalInterest)

	last, _ := schedule.Last()
	assert.Zero(t, last.ClosingBalance)
}

func TestGenerateIgnoresChangesInsideFixedPeriod(t *testing.T) {
	withChange, err := Generate(5000000, 8.5, 9, 36, 20, []floatingrate.RateChange{{FromMonth: 10, NewRate: 12}})
	require.NoError(t, err)
	without, err := Generate(5000000, 8.5, 9, 36, 20, nil)
	require.NoError(t, err)

	assert.Equal(t, without.TotalInterest, withChange.TotalInterest)
	assert.Equal(t, 8.5, withChange.Rows[9].Rate)
}

func TestGenerateFixedPeriodValidation(t *testing.T) {
	tests := []struct {
		name        string
		fixedPeriod int
		tenureYears float64
	}{
		{name: "Zero fixed period", fixedPeriod: 0, tenureYears: 20},
		{name: "Negative fixed period", fixedPeriod: -12, tenureYears: 20},
		{name: "Fixed period equals tenure", fixedPeriod: 240, tenureYears: 20},
		{name: "Fixed period longer than tenure", fixedPeriod: 300, tenureYears: 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Generate(5000000, 8.5, 9, tt.fixedPeriod, tt.tenureYears, nil)
			require.Error(t, err)
			assert.ErrorIs(t, err, validation.ErrInvalidInput)
		})
	}
}

func TestGenerateDegenerate(t *testing.T) {
	schedule, err := Generate(0, 8.5, 9, 36, 20, nil)
	require.NoError(t, err)
	assert.Zero(t, schedule.Len())

	_, err = Generate(5000000, 8.5, -1, 36, 20, nil)
	assert.ErrorIs(t, err, validation.ErrInvalidInput)
}

func TestAverageRate(t *testing.T) {
	schedule, err := Generate(5000000, 8.5, 9, 36, 20, nil)
	require.NoError(t, err)
	assert.Equal(t, 8.89, AverageRate(schedule, 8.5, 9, 36))
}

// The reported average holds the floating phase at its starting rate and
// does not follow later changes, even when the schedule itself does.
func TestAverageRateIgnoresPostTransitionChanges(t *testing.T) {
	changes := []floatingrate.RateChange{{FromMonth: 48, NewRate: 10}, {FromMonth: 120, NewRate: 14}}
	schedule, err := Generate(5000000, 8.5, 9, 36, 20, changes)
	require.NoError(t, err)

	reported := AverageRate(schedule, 8.5, 9, 36)
	actual := floatingrate.WeightedAverageRate(schedule, func(month int) float64 {
		return schedule.Rows[month-1].Rate
	}, 8.5)

	assert.LessOrEqual(t, reported, 9.0)
	assert.Greater(t, actual, reported)
}

func TestTransitionSummary(t *testing.T) {
	schedule, err := Generate(5000000, 8.5, 9, 36, 20, nil)
	require.NoError(t, err)

	transition, ok := TransitionSummary(schedule, 36)
	require.True(t, ok)
	assert.Equal(t, Transition{
		Month:               37,
		FixedEMI:            43391,
		FloatingEMI:         44817,
		BalanceAtTransition: 4674305,
		EMIChange:           1426,
	}, transition)

	_, ok = TransitionSummary(schedule, 240)
	assert.False(t, ok)
}
