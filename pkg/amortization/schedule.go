// Package amortization builds month-by-month repayment schedules for
// fixed-rate loans, with optional extra principal payments, and provides the
// ledger types shared with the floating and hybrid rate engines.
package amortization

import (
	"github.com/iwvelando/loan-calculator/pkg/constants"
	"github.com/iwvelando/loan-calculator/pkg/emi"
	"github.com/iwvelando/loan-calculator/pkg/mathutil"
)

// Row holds the ledger entry for a given month.
type Row struct {
	Month               int     `json:"month" yaml:"month"`
	Year                int     `json:"year" yaml:"year"`
	Rate                float64 `json:"rate" yaml:"rate"`
	OpeningBalance      float64 `json:"openingBalance" yaml:"openingBalance"`
	EMI                 float64 `json:"emi" yaml:"emi"`
	Interest            float64 `json:"interest" yaml:"interest"`
	Principal           float64 `json:"principal" yaml:"principal"`
	ClosingBalance      float64 `json:"closingBalance" yaml:"closingBalance"`
	CumulativeInterest  float64 `json:"cumulativeInterest" yaml:"cumulativeInterest"`
	CumulativePrincipal float64 `json:"cumulativePrincipal" yaml:"cumulativePrincipal"`
}

// Schedule is a fully materialized, chronological list of rows plus totals.
type Schedule struct {
	Rows           []Row   `json:"schedule" yaml:"schedule"`
	TotalInterest  float64 `json:"totalInterest" yaml:"totalInterest"`
	TotalPrincipal float64 `json:"totalPrincipal" yaml:"totalPrincipal"`
	TotalAmount    float64 `json:"totalAmount" yaml:"totalAmount"`
}

// Len returns the number of months in the schedule.
func (s Schedule) Len() int {
	return len(s.Rows)
}

// Last returns the final row, or false for an empty schedule.
func (s Schedule) Last() (Row, bool) {
	if len(s.Rows) == 0 {
		return Row{}, false
	}
	return s.Rows[len(s.Rows)-1], true
}

// Builder accumulates rows one month at a time. It owns the running
// balance and cumulative totals so every engine posts months the same way.
type Builder struct {
	schedule Schedule
	balance  float64
}

// NewBuilder starts a ledger for principal with room for capacity rows.
func NewBuilder(principal float64, capacity int) *Builder {
	if capacity < 0 {
		capacity = 0
	}
	return &Builder{
		schedule: Schedule{Rows: make([]Row, 0, capacity)},
		balance:  principal,
	}
}

// Balance returns the current outstanding balance.
func (b *Builder) Balance() float64 {
	return b.balance
}

// Months returns the number of rows posted so far.
func (b *Builder) Months() int {
	return len(b.schedule.Rows)
}

// Done reports whether the loan has been repaid.
func (b *Builder) Done() bool {
	return b.balance <= 0
}

// Post records the next month. Interest accrues on the opening balance at
// annualRate; principal repaid is installment - interest + extra, clipped so
// it never exceeds the opening balance. On the final month the remaining
// balance is repaid in full.
func (b *Builder) Post(annualRate, installment, extra float64, final bool) Row {
	opening := b.balance
	interest := mathutil.RoundUnit(opening * emi.MonthlyRate(annualRate))
	principal := installment - interest + extra
	if final || principal > opening {
		principal = opening
	}

	closing := opening - principal
	if mathutil.IsZero(closing) {
		closing = 0
	}

	b.schedule.TotalInterest += interest
	b.schedule.TotalPrincipal += principal
	b.schedule.TotalAmount += interest + principal

	month := len(b.schedule.Rows) + 1
	row := Row{
		Month:               month,
		Year:                (month + constants.MonthsPerYear - 1) / constants.MonthsPerYear,
		Rate:                annualRate,
		OpeningBalance:      opening,
		EMI:                 interest + principal,
		Interest:            interest,
		Principal:           principal,
		ClosingBalance:      closing,
		CumulativeInterest:  b.schedule.TotalInterest,
		CumulativePrincipal: b.schedule.TotalPrincipal,
	}
	b.schedule.Rows = append(b.schedule.Rows, row)
	b.balance = closing
	return row
}

// Schedule returns the rows posted so far.
func (b *Builder) Schedule() Schedule {
	return b.schedule
}

// Empty is the schedule returned for degenerate loans.
func Empty() Schedule {
	return Schedule{Rows: []Row{}}
}
