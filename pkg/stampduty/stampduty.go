// Package stampduty estimates the upfront government charges on a property
// purchase from a static state-wise table.
package stampduty

import (
	_ "embed"
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/iwvelando/loan-calculator/pkg/constants"
	"github.com/iwvelando/loan-calculator/pkg/validation"
)

//go:embed rates.yaml
var ratesYAML []byte

// Rates holds the charges levied by one state.
type Rates struct {
	StampDutyPercent    float64 `json:"stampDutyPercent" yaml:"stampDutyPercent"`
	RegistrationPercent float64 `json:"registrationPercent" yaml:"registrationPercent"`
	RegistrationCap     float64 `json:"registrationCap" yaml:"registrationCap"`

	stampDuty       decimal.Decimal
	registration    decimal.Decimal
	registrationCap decimal.Decimal
}

// Costs is the upfront cost estimate for a purchase.
type Costs struct {
	State           string  `json:"state" yaml:"state"`
	PropertyValue   float64 `json:"propertyValue" yaml:"propertyValue"`
	StampDuty       float64 `json:"stampDuty" yaml:"stampDuty"`
	RegistrationFee float64 `json:"registrationFee" yaml:"registrationFee"`
	Total           float64 `json:"total" yaml:"total"`
}

type rawRates struct {
	StampDuty       string `yaml:"stampDuty"`
	Registration    string `yaml:"registration"`
	RegistrationCap string `yaml:"registrationCap"`
}

type table struct {
	fallback Rates
	states   map[string]Rates
}

var rates = mustLoad(ratesYAML)

func mustLoad(data []byte) table {
	var raw struct {
		Default rawRates            `yaml:"default"`
		States  map[string]rawRates `yaml:"states"`
	}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		panic(fmt.Sprintf("stampduty: decoding embedded rates: %v", err))
	}

	t := table{fallback: raw.Default.parse(), states: make(map[string]Rates, len(raw.States))}
	for state, r := range raw.States {
		t.states[normalize(state)] = r.parse()
	}
	return t
}

func (r rawRates) parse() Rates {
	parsed := Rates{
		stampDuty:       decimal.RequireFromString(r.StampDuty),
		registration:    decimal.RequireFromString(r.Registration),
		registrationCap: decimal.RequireFromString(r.RegistrationCap),
	}
	parsed.StampDutyPercent = parsed.stampDuty.InexactFloat64()
	parsed.RegistrationPercent = parsed.registration.InexactFloat64()
	parsed.RegistrationCap = parsed.registrationCap.InexactFloat64()
	return parsed
}

func normalize(state string) string {
	return strings.ToLower(strings.Join(strings.Fields(state), " "))
}

// Lookup returns the rates for a state, matched case-insensitively.
func Lookup(state string) (Rates, bool) {
	r, ok := rates.states[normalize(state)]
	return r, ok
}

// Default returns the rates used when no state is known.
func Default() Rates {
	return rates.fallback
}

// States lists the states in the table in alphabetical order.
func States() []string {
	names := make([]string, 0, len(rates.states))
	for name := range rates.states {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Calculate estimates stamp duty and registration on propertyValue. An
// empty state uses the default rates; an unknown state is rejected.
func Calculate(propertyValue float64, state string) (Costs, error) {
	if err := validation.Finite("propertyValue", propertyValue); err != nil {
		return Costs{}, err
	}
	if propertyValue < 0 {
		return Costs{}, validation.Invalid("propertyValue", propertyValue, "must not be negative")
	}

	r, name := rates.fallback, "default"
	if strings.TrimSpace(state) != "" {
		var ok bool
		if r, ok = Lookup(state); !ok {
			return Costs{}, fmt.Errorf("%w: unknown state %q", validation.ErrInvalidInput, state)
		}
		name = normalize(state)
	}

	value := decimal.NewFromFloat(propertyValue)
	hundred := decimal.NewFromFloat(constants.PercentageMultiplier)
	stampDuty := value.Mul(r.stampDuty).Div(hundred).Round(0)
	registration := value.Mul(r.registration).Div(hundred).Round(0)
	if r.registrationCap.IsPositive() && registration.GreaterThan(r.registrationCap) {
		registration = r.registrationCap
	}

	return Costs{
		State:           name,
		PropertyValue:   propertyValue,
		StampDuty:       stampDuty.InexactFloat64(),
		RegistrationFee: registration.InexactFloat64(),
		Total:           stampDuty.Add(registration).InexactFloat64(),
	}, nil
}
