package config

import (
	"strings"
	"testing"

	"github.com/iwvelando/loan-calculator/pkg/amortization"
	"github.com/iwvelando/loan-calculator/pkg/floatingrate"
)

func TestLoadConfiguration(t *testing.T) {
	tests := []struct {
		name       string
		configPath string
		wantError  bool
	}{
		{
			name:       "Non-existent config file",
			configPath: "nonexistent.yaml",
			wantError:  true,
		},
		{
			name:       "Minimal fixed loan",
			configPath: "testdata/fixed.yaml",
		},
		{
			name:       "Full hybrid request",
			configPath: "testdata/hybrid.yaml",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config, err := LoadConfiguration(tt.configPath)
			if tt.wantError {
				if err == nil {
					t.Errorf("LoadConfiguration() expected error but got none")
				}
				return
			}
			if err != nil {
				t.Errorf("LoadConfiguration() error = %v", err)
				return
			}
			if config == nil {
				t.Errorf("LoadConfiguration() returned nil config")
			}
		})
	}
}

func TestLoadConfigurationDecodesSections(t *testing.T) {
	conf, err := LoadConfiguration("testdata/hybrid.yaml")
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}

	if conf.Logging.Level != "debug" || conf.Logging.Format != "console" {
		t.Errorf("logging = %+v", conf.Logging)
	}
	if conf.Output.Format != "csv" || !conf.Output.Schedule {
		t.Errorf("output = %+v", conf.Output)
	}

	loan := conf.Loan
	if loan.Type() != "hybrid" || loan.FixedPeriodMonths != 36 || loan.FloatingRate != 9 {
		t.Errorf("loan rate policy not decoded: %+v", loan)
	}
	if loan.LoanAmount() != 5000000 {
		t.Errorf("LoanAmount() = %.0f, expected 5000000", loan.LoanAmount())
	}
	if loan.TotalMonths() != 240 {
		t.Errorf("TotalMonths() = %d, expected 240", loan.TotalMonths())
	}

	if conf.Prepayment.MonthlyExtra != 5000 || len(conf.Prepayment.LumpSums) != 1 || len(conf.Prepayment.Recurring) != 1 {
		t.Errorf("prepayment = %+v", conf.Prepayment)
	}
	if conf.Affordability == nil || conf.Affordability.MonthlyIncome != 100000 {
		t.Errorf("affordability = %+v", conf.Affordability)
	}
	if conf.Tax == nil || conf.Tax.AnnualIncome != 1500000 || !conf.Tax.FirstTimeBuyer {
		t.Errorf("tax = %+v", conf.Tax)
	}
	if conf.PMAY == nil || conf.PMAY.AnnualIncome != 800000 {
		t.Errorf("pmay = %+v", conf.PMAY)
	}
}

func TestLoadConfigurationFromReader(t *testing.T) {
	conf, err := LoadConfigurationFromReader(strings.NewReader("loan:\n  propertyValue: 3000000\n  downPayment: 600000\n  tenureYears: 15\n  interestRate: 8\n"))
	if err != nil {
		t.Fatalf("LoadConfigurationFromReader() error = %v", err)
	}
	if conf.Loan.LoanAmount() != 2400000 {
		t.Errorf("LoanAmount() = %.0f, expected 2400000", conf.Loan.LoanAmount())
	}
	if conf.Loan.Type() != "fixed" {
		t.Errorf("Type() = %s, expected fixed default", conf.Loan.Type())
	}
	if conf.Affordability != nil || conf.Tax != nil || conf.PMAY != nil {
		t.Errorf("absent sections should stay nil")
	}

	if _, err := LoadConfigurationFromReader(strings.NewReader("loan: [unclosed")); err == nil {
		t.Errorf("expected error for malformed YAML")
	}
}

func TestAllLumpSums(t *testing.T) {
	p := Prepayment{
		LumpSums:  []amortization.LumpSum{{Month: 12, Amount: 500000}},
		Recurring: []RecurringPrepayment{{Amount: 100000, StartMonth: 24, Every: 12, Count: 3}},
	}
	all := p.AllLumpSums()
	expected := []amortization.LumpSum{{Month: 12, Amount: 500000}, {Month: 24, Amount: 100000}, {Month: 36, Amount: 100000}, {Month: 48, Amount: 100000}}
	if len(all) != len(expected) {
		t.Fatalf("AllLumpSums() = %v, expected %v", all, expected)
	}
	for i := range expected {
		if all[i] != expected[i] {
			t.Errorf("lump sum %d = %+v, expected %+v", i, all[i], expected[i])
		}
	}
	if !p.Enabled() || (Prepayment{}).Enabled() {
		t.Errorf("Enabled() mismatch")
	}
}

func TestEffectiveRateChanges(t *testing.T) {
	tests := []struct {
		name     string
		loan     Loan
		expected []floatingrate.RateChange
	}{
		{
			name:     "Fixed loan without policy",
			loan:     Loan{TenureYears: 20, InterestRate: 9},
			expected: nil,
		},
		{
			name:     "Explicit changes win",
			loan:     Loan{TenureYears: 2, InterestRate: 9, LoanType: "floating", RateChangeFrequencyMonths: 6, RateIncreasePercent: 1, RateChanges: []floatingrate.RateChange{{FromMonth: 13, NewRate: 9.5}}},
			expected: []floatingrate.RateChange{{FromMonth: 13, NewRate: 9.5}},
		},
		{
			name:     "Floating periodic",
			loan:     Loan{TenureYears: 2, InterestRate: 8.5, LoanType: "floating", RateChangeFrequencyMonths: 12, RateIncreasePercent: 0.25},
			expected: []floatingrate.RateChange{{FromMonth: 12, NewRate: 8.75}, {FromMonth: 24, NewRate: 9}},
		},
		{
			name:     "Hybrid periodic starts from floating rate after fixed period",
			loan:     Loan{TenureYears: 3, InterestRate: 8, LoanType: "Hybrid", FixedPeriodMonths: 12, FloatingRate: 9, RateChangeFrequencyMonths: 12, RateIncreasePercent: 0.5},
			expected: []floatingrate.RateChange{{FromMonth: 24, NewRate: 10}, {FromMonth: 36, NewRate: 10.5}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			changes, err := tt.loan.EffectiveRateChanges()
			if err != nil {
				t.Fatalf("EffectiveRateChanges() error = %v", err)
			}
			if len(changes) != len(tt.expected) {
				t.Fatalf("EffectiveRateChanges() = %v, expected %v", changes, tt.expected)
			}
			for i := range tt.expected {
				if changes[i] != tt.expected[i] {
					t.Errorf("change %d = %+v, expected %+v", i, changes[i], tt.expected[i])
				}
			}
		})
	}
}

func TestValidateConfiguration(t *testing.T) {
	conf := Configuration{
		Loan: Loan{
			Name:          "Low deposit",
			PropertyValue: 5000000,
			DownPayment:   200000,
			TenureYears:   10,
			InterestRate:  9,
		},
		Prepayment: Prepayment{LumpSums: []amortization.LumpSum{{Month: 200, Amount: 10000}}},
		Scenarios:  ScenarioSweep{Enabled: true},
	}

	warnings := conf.ValidateConfiguration()
	expected := []string{"below 10%", "sweep will be skipped", "month 200 falls after the 120 month tenure"}
	if len(warnings) != len(expected) {
		t.Fatalf("ValidateConfiguration() = %v, expected %d warnings", warnings, len(expected))
	}
	for i, fragment := range expected {
		if !strings.Contains(warnings[i], fragment) {
			t.Errorf("warning %d = %q, expected to contain %q", i, warnings[i], fragment)
		}
	}
}
