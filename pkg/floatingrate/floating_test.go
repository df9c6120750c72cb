package floatingrate

import (
	"errors"
	"math"
	"testing"

	"github.com/iwvelando/loan-calculator/pkg/amortization"
	"github.com/iwvelando/loan-calculator/pkg/validation"
)

func TestPeriodicRateChanges(t *testing.T) {
	tests := []struct {
		name            string
		baseRate        float64
		increase        float64
		frequencyMonths int
		totalMonths     int
		expected        []RateChange
	}{
		{
			name:            "Two annual increases",
			baseRate:        8.5,
			increase:        0.25,
			frequencyMonths: 12,
			totalMonths:     24,
			expected:        []RateChange{{FromMonth: 12, NewRate: 8.75}, {FromMonth: 24, NewRate: 9.00}},
		},
		{
			name:            "Increments are cumulative",
			baseRate:        8,
			increase:        0.5,
			frequencyMonths: 6,
			totalMonths:     20,
			expected:        []RateChange{{6, 8.5}, {12, 9}, {18, 9.5}},
		},
		{
			name:            "Negative increase models falling rates",
			baseRate:        9,
			increase:        -0.25,
			frequencyMonths: 12,
			totalMonths:     36,
			expected:        []RateChange{{12, 8.75}, {24, 8.5}, {36, 8.25}},
		},
		{
			name:            "Rates never go below zero",
			baseRate:        0.5,
			increase:        -0.5,
			frequencyMonths: 12,
			totalMonths:     24,
			expected:        []RateChange{{12, 0}, {24, 0}},
		},
		{
			name:            "Frequency longer than tenure",
			baseRate:        8.5,
			increase:        0.25,
			frequencyMonths: 36,
			totalMonths:     24,
			expected:        []RateChange{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			changes, err := PeriodicRateChanges(tt.baseRate, tt.increase, tt.frequencyMonths, tt.totalMonths)
			if err != nil {
				t.Fatalf("PeriodicRateChanges() unexpected error = %v", err)
			}
			if len(changes) != len(tt.expected) {
				t.Fatalf("got %d changes, expected %d: %+v", len(changes), len(tt.expected), changes)
			}
			for i := range tt.expected {
				if changes[i] != tt.expected[i] {
					t.Errorf("change %d = %+v, expected %+v", i, changes[i], tt.expected[i])
				}
			}
		})
	}
}

func TestPeriodicRateChangesInvalid(t *testing.T) {
	if _, err := PeriodicRateChanges(8.5, 0.25, 0, 24); !errors.Is(err, validation.ErrInvalidInput) {
		t.Errorf("zero frequency error = %v, expected ErrInvalidInput", err)
	}
	if _, err := PeriodicRateChanges(math.NaN(), 0.25, 12, 24); !errors.Is(err, validation.ErrInvalidInput) {
		t.Errorf("NaN base rate error = %v, expected ErrInvalidInput", err)
	}
}

func TestAdjustedEMI(t *testing.T) {
	tests := []struct {
		name            string
		outstanding     float64
		newRate         float64
		remainingMonths int
		expected        float64
	}{
		{name: "Full tenure matches base EMI", outstanding: 5000000, newRate: 8.5, remainingMonths: 240, expected: 43391},
		{name: "Nothing outstanding", outstanding: 0, newRate: 8.5, remainingMonths: 120, expected: 0},
		{name: "No months remaining", outstanding: 100000, newRate: 8.5, remainingMonths: 0, expected: 0},
		{name: "Zero rate", outstanding: 120000, newRate: 0, remainingMonths: 12, expected: 10000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := AdjustedEMI(tt.outstanding, tt.newRate, tt.remainingMonths)
			if err != nil {
				t.Fatalf("AdjustedEMI() unexpected error = %v", err)
			}
			if result != tt.expected {
				t.Errorf("AdjustedEMI() = %.0f, expected %.0f", result, tt.expected)
			}
		})
	}
}

func TestTimeline(t *testing.T) {
	rates, err := Timeline(8, []RateChange{{FromMonth: 4, NewRate: 9}, {FromMonth: 2, NewRate: 8.5}}, 5)
	if err != nil {
		t.Fatalf("Timeline() unexpected error = %v", err)
	}
	expected := []float64{8, 8.5, 8.5, 9, 9}
	for i := range expected {
		if rates[i] != expected[i] {
			t.Errorf("month %d rate %.2f, expected %.2f", i+1, rates[i], expected[i])
		}
	}
}

func TestTimelineDuplicateMonthLastWins(t *testing.T) {
	rates, err := Timeline(8, []RateChange{{FromMonth: 2, NewRate: 9}, {FromMonth: 2, NewRate: 7.5}}, 3)
	if err != nil {
		t.Fatalf("Timeline() unexpected error = %v", err)
	}
	if rates[1] != 7.5 || rates[2] != 7.5 {
		t.Errorf("expected the later duplicate (7.5) to win and never a sum, got %v", rates)
	}
}

func TestTimelineInvalidChange(t *testing.T) {
	for _, change := range []RateChange{{FromMonth: 0, NewRate: 9}, {FromMonth: 3, NewRate: -1}} {
		if _, err := Timeline(8, []RateChange{change}, 12); !errors.Is(err, validation.ErrInvalidInput) {
			t.Errorf("Timeline(%+v) error = %v, expected ErrInvalidInput", change, err)
		}
	}
}

func TestGenerate(t *testing.T) {
	changes, err := PeriodicRateChanges(8.5, 0.25, 12, 240)
	if err != nil {
		t.Fatalf("PeriodicRateChanges() unexpected error = %v", err)
	}

	schedule, err := Generate(5000000, 8.5, 20, changes)
	if err != nil {
		t.Fatalf("Generate() unexpected error = %v", err)
	}
	if schedule.Len() != 240 {
		t.Fatalf("expected the tenure to be held at 240 months, got %d", schedule.Len())
	}
	if schedule.TotalInterest != 6779368 {
		t.Errorf("total interest %.0f, expected 6779368", schedule.TotalInterest)
	}
	if last, _ := schedule.Last(); last.ClosingBalance != 0 {
		t.Errorf("final closing balance %.0f, expected 0", last.ClosingBalance)
	}

	// EMI is recomputed on the change months only.
	expectedEMI := map[int]float64{1: 43391, 11: 43391, 12: 44161, 23: 44161, 24: 44909, 36: 45635}
	for month, want := range expectedEMI {
		if got := schedule.Rows[month-1].EMI; got != want {
			t.Errorf("month %d EMI %.0f, expected %.0f", month, got, want)
		}
	}
	if schedule.Rows[11].Rate != 8.75 {
		t.Errorf("month 12 rate %.2f, expected 8.75", schedule.Rows[11].Rate)
	}

	sumPrincipal := 0.0
	for _, row := range schedule.Rows {
		sumPrincipal += row.Principal
	}
	if sumPrincipal != 5000000 {
		t.Errorf("principal repaid %.0f, expected 5000000", sumPrincipal)
	}
}

func TestGenerateWithoutChangesMatchesFixed(t *testing.T) {
	floating, err := Generate(5000000, 8.5, 20, nil)
	if err != nil {
		t.Fatalf("Generate() unexpected error = %v", err)
	}
	fixed, err := amortization.Generate(5000000, 8.5, 20, 0)
	if err != nil {
		t.Fatalf("amortization.Generate() unexpected error = %v", err)
	}
	if floating.TotalInterest != fixed.TotalInterest || floating.Len() != fixed.Len() {
		t.Errorf("floating without changes (%.0f) should match fixed (%.0f)", floating.TotalInterest, fixed.TotalInterest)
	}
}

func TestGenerateRecomputedEMIRisesWithRates(t *testing.T) {
	changes, _ := PeriodicRateChanges(8.5, 0.5, 12, 240)
	schedule, err := Generate(5000000, 8.5, 20, changes)
	if err != nil {
		t.Fatalf("Generate() unexpected error = %v", err)
	}

	previous := 0.0
	for i, row := range schedule.Rows[:len(schedule.Rows)-1] {
		if i > 0 && row.Rate == schedule.Rows[i-1].Rate {
			continue
		}
		if row.EMI < previous {
			t.Errorf("month %d recomputed EMI %.0f fell below %.0f despite a rate increase", row.Month, row.EMI, previous)
		}
		previous = row.EMI
	}
}

func TestGenerateDuplicateRateChangeMonth(t *testing.T) {
	schedule, err := Generate(3000000, 9, 10, []RateChange{{13, 10}, {13, 9.5}})
	if err != nil {
		t.Fatalf("Generate() unexpected error = %v", err)
	}
	if schedule.Rows[12].Rate != 9.5 {
		t.Errorf("month 13 rate %.2f, expected last-wins rate 9.5", schedule.Rows[12].Rate)
	}
	if schedule.Rows[12].EMI != 38750 {
		t.Errorf("month 13 EMI %.0f, expected 38750", schedule.Rows[12].EMI)
	}
	if schedule.TotalInterest != 1641109 {
		t.Errorf("total interest %.0f, expected 1641109", schedule.TotalInterest)
	}
}

func TestGenerateDegenerate(t *testing.T) {
	schedule, err := Generate(0, 8.5, 20, nil)
	if err != nil {
		t.Fatalf("Generate() unexpected error = %v", err)
	}
	if schedule.Len() != 0 {
		t.Errorf("expected empty schedule, got %d rows", schedule.Len())
	}
	if _, err := Generate(100000, 8.5, 70, nil); !errors.Is(err, validation.ErrInvalidInput) {
		t.Errorf("Generate() with 70 year tenure error = %v, expected ErrInvalidInput", err)
	}
}

func TestAverageRate(t *testing.T) {
	changes, _ := PeriodicRateChanges(8.5, 0.25, 12, 240)
	schedule, _ := Generate(5000000, 8.5, 20, changes)

	average, err := AverageRate(schedule, changes, 8.5)
	if err != nil {
		t.Fatalf("AverageRate() unexpected error = %v", err)
	}
	if average != 10.32 {
		t.Errorf("AverageRate() = %.2f, expected 10.32", average)
	}

	// Balance weighting pulls the average below the arithmetic mean of the steps.
	sum := 0.0
	for _, row := range schedule.Rows {
		sum += row.Rate
	}
	if mean := sum / float64(schedule.Len()); average >= mean {
		t.Errorf("weighted average %.2f should be below arithmetic mean %.2f", average, mean)
	}

	if empty, _ := AverageRate(amortization.Empty(), changes, 8.5); empty != 8.5 {
		t.Errorf("AverageRate() of empty schedule = %.2f, expected base rate", empty)
	}
}
