// Package config defines the data structures related to configuration and
// includes functions for loading and validating a loan calculation request.
package config

import (
	"fmt"
	"io"

	"github.com/spf13/viper"

	"github.com/iwvelando/loan-calculator/pkg/affordability"
	"github.com/iwvelando/loan-calculator/pkg/amortization"
	"github.com/iwvelando/loan-calculator/pkg/validation"
)

// Configuration holds everything needed for one calculation run.
type Configuration struct {
	Logging       LoggingConfig         `yaml:"logging,omitempty" json:"logging,omitempty"`
	Output        OutputConfig          `yaml:"output,omitempty" json:"output,omitempty"`
	Loan          Loan                  `yaml:"loan" json:"loan"`
	Prepayment    Prepayment            `yaml:"prepayment,omitempty" json:"prepayment,omitempty"`
	Scenarios     ScenarioSweep         `yaml:"scenarios,omitempty" json:"scenarios,omitempty"`
	Affordability *affordability.Inputs `yaml:"affordability,omitempty" json:"affordability,omitempty"`
	Tax           *Tax                  `yaml:"tax,omitempty" json:"tax,omitempty"`
	PMAY          *PMAY                 `yaml:"pmay,omitempty" json:"pmay,omitempty" mapstructure:"pmay"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty" json:"level,omitempty"`           // debug, info, warn, error
	Format     string `yaml:"format,omitempty" json:"format,omitempty"`         // json, console
	OutputFile string `yaml:"outputFile,omitempty" json:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty" json:"format,omitempty"` // pretty, csv
	// Schedule prints the month-by-month rows in addition to the yearly summary.
	Schedule bool `yaml:"schedule,omitempty" json:"schedule,omitempty"`
}

// Prepayment holds extra payments made on top of the EMI.
type Prepayment struct {
	MonthlyExtra float64                `yaml:"monthlyExtra,omitempty" json:"monthlyExtra,omitempty" mapstructure:"monthlyExtra"`
	LumpSums     []amortization.LumpSum `yaml:"lumpSums,omitempty" json:"lumpSums,omitempty" mapstructure:"lumpSums"`
	Recurring    []RecurringPrepayment  `yaml:"recurring,omitempty" json:"recurring,omitempty"`
}

// RecurringPrepayment repeats a lump sum Count times, Every months apart.
type RecurringPrepayment struct {
	Amount     float64 `yaml:"amount" json:"amount"`
	StartMonth int     `yaml:"startMonth" json:"startMonth" mapstructure:"startMonth"`
	Every      int     `yaml:"every" json:"every"`
	Count      int     `yaml:"count" json:"count"`
}

// Enabled reports whether any prepayment is configured.
func (p Prepayment) Enabled() bool {
	return p.MonthlyExtra > 0 || len(p.LumpSums) > 0 || len(p.Recurring) > 0
}

// AllLumpSums expands the recurring entries and appends them to LumpSums.
func (p Prepayment) AllLumpSums() []amortization.LumpSum {
	all := append([]amortization.LumpSum(nil), p.LumpSums...)
	for _, r := range p.Recurring {
		all = append(all, amortization.RecurringLumpSums(r.Amount, r.StartMonth, r.Every, r.Count)...)
	}
	return all
}

// ScenarioSweep configures the optimistic/realistic/pessimistic rate sweep.
type ScenarioSweep struct {
	Enabled                   bool    `yaml:"enabled,omitempty" json:"enabled,omitempty"`
	RateChangeFrequencyMonths int     `yaml:"rateChangeFrequencyMonths,omitempty" json:"rateChangeFrequencyMonths,omitempty" mapstructure:"rateChangeFrequencyMonths"`
	BaseIncreasePercent       float64 `yaml:"baseIncreasePercent,omitempty" json:"baseIncreasePercent,omitempty" mapstructure:"baseIncreasePercent"`
	DecreasePercent           float64 `yaml:"decreasePercent,omitempty" json:"decreasePercent,omitempty" mapstructure:"decreasePercent"`
}

// Tax holds the income details for the tax savings estimate. Interest and
// principal come from the first year of the schedule.
type Tax struct {
	AnnualIncome       float64 `yaml:"annualIncome" json:"annualIncome" mapstructure:"annualIncome"`
	Other80CInvestment float64 `yaml:"other80cInvestment,omitempty" json:"other80cInvestment,omitempty" mapstructure:"other80cInvestment"`
	OtherDeductions    float64 `yaml:"otherDeductions,omitempty" json:"otherDeductions,omitempty" mapstructure:"otherDeductions"`
	FirstTimeBuyer     bool    `yaml:"firstTimeBuyer,omitempty" json:"firstTimeBuyer,omitempty" mapstructure:"firstTimeBuyer"`
}

// PMAY holds the applicant details for the subsidy check.
type PMAY struct {
	AnnualIncome   float64 `yaml:"annualIncome" json:"annualIncome" mapstructure:"annualIncome"`
	FirstTimeBuyer bool    `yaml:"firstTimeBuyer,omitempty" json:"firstTimeBuyer,omitempty" mapstructure:"firstTimeBuyer"`
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.AutomaticEnv()
	v.SetConfigType("yml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}
	return decode(v)
}

// LoadConfigurationFromReader loads a YAML configuration from r.
func LoadConfigurationFromReader(r io.Reader) (*Configuration, error) {
	v := viper.New()
	v.SetConfigType("yml")

	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("error reading config data, %s", err)
	}
	return decode(v)
}

func decode(v *viper.Viper) (*Configuration, error) {
	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}
	return &configuration, nil
}

// ValidateConfiguration performs general validation of the configuration and returns warnings
func (c *Configuration) ValidateConfiguration() []string {
	validator := validation.ConfigValidator{Loan: c.Loan.validationConfig()}
	warnings := validator.ValidateAll()

	if c.Scenarios.Enabled && c.Scenarios.RateChangeFrequencyMonths <= 0 && c.Loan.RateChangeFrequencyMonths <= 0 {
		warnings = append(warnings, "Scenario sweep is enabled but no rate change frequency is set - the sweep will be skipped")
	}
	totalMonths := c.Loan.TotalMonths()
	for _, lump := range c.Prepayment.AllLumpSums() {
		if lump.Month > totalMonths {
			warnings = append(warnings, fmt.Sprintf("Prepayment of %.2f in month %d falls after the %d month tenure and is ignored",
				lump.Amount, lump.Month, totalMonths))
		}
	}
	return warnings
}
