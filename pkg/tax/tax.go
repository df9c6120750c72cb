// Package tax estimates annual income tax under the old and new regimes and
// the saving a home loan brings through sections 80C, 24(b) and 80EEA.
package tax

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/iwvelando/loan-calculator/pkg/constants"
	"github.com/iwvelando/loan-calculator/pkg/validation"
)

// Regime selects a slab table.
type Regime string

const (
	RegimeOld Regime = "old"
	RegimeNew Regime = "new"
)

var hundred = decimal.NewFromFloat(constants.PercentageMultiplier)

// SlabTax walks the slabs in order, taxing the part of income that falls
// inside each one. Cess is not included.
func SlabTax(taxableIncome decimal.Decimal, slabs []Slab) decimal.Decimal {
	total := decimal.Zero
	for _, slab := range slabs {
		if taxableIncome.LessThanOrEqual(slab.Min) {
			break
		}
		upper := taxableIncome
		if !slab.Unbounded {
			upper = decimal.Min(taxableIncome, slab.Max)
		}
		inSlab := upper.Sub(slab.Min)
		total = total.Add(inSlab.Mul(slab.Rate).Div(hundred))
	}
	return total
}

// Section80C caps principal repayment plus other eligible investments.
func Section80C(principalRepaid, otherInvestments float64) float64 {
	claimed := decimal.NewFromFloat(nonNegative(principalRepaid) + nonNegative(otherInvestments))
	return decimal.Min(claimed, tbl.limits.section80C).InexactFloat64()
}

// Section24b caps home loan interest on a self-occupied property.
func Section24b(interestPaid float64) float64 {
	return decimal.Min(decimal.NewFromFloat(nonNegative(interestPaid)), tbl.limits.section24b).InexactFloat64()
}

// Section80EEA allows first-time buyers of property within the value cap to
// claim interest beyond what 24(b) already covered, up to its own cap.
func Section80EEA(interestPaid, propertyValue float64, firstTimeBuyer bool) float64 {
	if !firstTimeBuyer || decimal.NewFromFloat(propertyValue).GreaterThan(tbl.limits.section80EEAProperty) {
		return 0
	}
	remaining := decimal.NewFromFloat(nonNegative(interestPaid) - Section24b(interestPaid))
	if !remaining.IsPositive() {
		return 0
	}
	return decimal.Min(remaining, tbl.limits.section80EEA).InexactFloat64()
}

// Inputs are annual amounts.
type Inputs struct {
	AnnualIncome       float64 `json:"annualIncome" yaml:"annualIncome" mapstructure:"annualIncome"`
	InterestPaid       float64 `json:"interestPaid" yaml:"interestPaid" mapstructure:"interestPaid"`
	PrincipalRepaid    float64 `json:"principalRepaid" yaml:"principalRepaid" mapstructure:"principalRepaid"`
	Other80CInvestment float64 `json:"other80cInvestment" yaml:"other80cInvestment" mapstructure:"other80cInvestment"`
	OtherDeductions    float64 `json:"otherDeductions" yaml:"otherDeductions" mapstructure:"otherDeductions"`
	FirstTimeBuyer     bool    `json:"firstTimeBuyer" yaml:"firstTimeBuyer" mapstructure:"firstTimeBuyer"`
	PropertyValue      float64 `json:"propertyValue" yaml:"propertyValue" mapstructure:"propertyValue"`
}

// Deductions itemizes what was subtracted from gross income.
type Deductions struct {
	Standard     float64 `json:"standard" yaml:"standard"`
	Section80C   float64 `json:"section80C" yaml:"section80C"`
	Section24b   float64 `json:"section24b" yaml:"section24b"`
	Section80EEA float64 `json:"section80EEA" yaml:"section80EEA"`
	Other        float64 `json:"other" yaml:"other"`
	Total        float64 `json:"total" yaml:"total"`
}

// Breakdown is the tax computed for one regime.
type Breakdown struct {
	Regime        Regime     `json:"regime" yaml:"regime"`
	GrossIncome   float64    `json:"grossIncome" yaml:"grossIncome"`
	Deductions    Deductions `json:"deductions" yaml:"deductions"`
	TaxableIncome float64    `json:"taxableIncome" yaml:"taxableIncome"`
	BaseTax       float64    `json:"baseTax" yaml:"baseTax"`
	Cess          float64    `json:"cess" yaml:"cess"`
	TotalTax      float64    `json:"totalTax" yaml:"totalTax"`
}

// Calculate computes tax under regime. The new regime ignores every
// deduction except its standard deduction. withLoan false drops the home
// loan deductions (principal in 80C, 24(b), 80EEA) so the result shows the
// tax that would be paid without the loan.
func Calculate(in Inputs, regime Regime, withLoan bool) (Breakdown, error) {
	if err := validate(in); err != nil {
		return Breakdown{}, err
	}
	rt, ok := tbl.regimes[regime]
	if !ok {
		return Breakdown{}, fmt.Errorf("%w: unknown tax regime %q", validation.ErrInvalidInput, regime)
	}

	d := Deductions{Standard: rt.standardDeduction.InexactFloat64()}
	if regime == RegimeOld {
		principal, interest := 0.0, 0.0
		if withLoan {
			principal, interest = in.PrincipalRepaid, in.InterestPaid
		}
		d.Section80C = Section80C(principal, in.Other80CInvestment)
		d.Section24b = Section24b(interest)
		d.Section80EEA = Section80EEA(interest, in.PropertyValue, in.FirstTimeBuyer)
		d.Other = nonNegative(in.OtherDeductions)
	}
	d.Total = d.Standard + d.Section80C + d.Section24b + d.Section80EEA + d.Other

	taxable := decimal.Max(decimal.NewFromFloat(in.AnnualIncome).Sub(decimal.NewFromFloat(d.Total)), decimal.Zero)
	base := SlabTax(taxable, rt.slabs)
	cess := base.Mul(tbl.cess).Div(hundred)

	return Breakdown{
		Regime:        regime,
		GrossIncome:   in.AnnualIncome,
		Deductions:    d,
		TaxableIncome: taxable.InexactFloat64(),
		BaseTax:       base.Round(0).InexactFloat64(),
		Cess:          cess.Round(0).InexactFloat64(),
		TotalTax:      base.Add(cess).Round(0).InexactFloat64(),
	}, nil
}

// RegimeSavings compares one regime with and without the loan.
type RegimeSavings struct {
	WithLoan    Breakdown `json:"withLoan" yaml:"withLoan"`
	WithoutLoan Breakdown `json:"withoutLoan" yaml:"withoutLoan"`
	Savings     float64   `json:"savings" yaml:"savings"`
}

// Savings reports both regimes and the one with the lower tax.
type Savings struct {
	Old         RegimeSavings `json:"old" yaml:"old"`
	New         RegimeSavings `json:"new" yaml:"new"`
	Recommended Regime        `json:"recommended" yaml:"recommended"`
	Difference  float64       `json:"difference" yaml:"difference"`
}

// CalculateSavings runs both regimes. Each regime's saving is measured
// against the same regime without loan deductions, never against the other
// regime. The recommendation is the regime with the lower tax including the
// loan; a tie goes to the new regime.
func CalculateSavings(in Inputs) (Savings, error) {
	var s Savings
	for _, leg := range []struct {
		target *RegimeSavings
		regime Regime
	}{
		{&s.Old, RegimeOld},
		{&s.New, RegimeNew},
	} {
		with, err := Calculate(in, leg.regime, true)
		if err != nil {
			return Savings{}, err
		}
		without, err := Calculate(in, leg.regime, false)
		if err != nil {
			return Savings{}, err
		}
		*leg.target = RegimeSavings{WithLoan: with, WithoutLoan: without, Savings: without.TotalTax - with.TotalTax}
	}

	s.Recommended = RegimeNew
	if s.Old.WithLoan.TotalTax < s.New.WithLoan.TotalTax {
		s.Recommended = RegimeOld
	}
	s.Difference = s.Old.WithLoan.TotalTax - s.New.WithLoan.TotalTax
	if s.Difference < 0 {
		s.Difference = -s.Difference
	}
	return s, nil
}

func validate(in Inputs) error {
	return validation.First(
		validation.Finite("annualIncome", in.AnnualIncome),
		validation.Finite("interestPaid", in.InterestPaid),
		validation.Finite("principalRepaid", in.PrincipalRepaid),
		validation.Finite("other80cInvestment", in.Other80CInvestment),
		validation.Finite("otherDeductions", in.OtherDeductions),
		validation.Finite("propertyValue", in.PropertyValue),
	)
}

func nonNegative(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
