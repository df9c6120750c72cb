package amortization

import (
	"github.com/iwvelando/loan-calculator/pkg/mathutil"
)

// YearSummary aggregates the rows of one loan year.
type YearSummary struct {
	Year           int     `json:"year" yaml:"year"`
	Months         int     `json:"months" yaml:"months"`
	OpeningBalance float64 `json:"openingBalance" yaml:"openingBalance"`
	EMI            float64 `json:"emi" yaml:"emi"`
	Interest       float64 `json:"interest" yaml:"interest"`
	Principal      float64 `json:"principal" yaml:"principal"`
	ClosingBalance float64 `json:"closingBalance" yaml:"closingBalance"`
}

// YearlySummary reduces a monthly schedule to one entry per loan year.
func YearlySummary(schedule Schedule) []YearSummary {
	summaries := make([]YearSummary, 0, (len(schedule.Rows)+11)/12)
	for _, row := range schedule.Rows {
		if len(summaries) == 0 || summaries[len(summaries)-1].Year != row.Year {
			summaries = append(summaries, YearSummary{
				Year:           row.Year,
				OpeningBalance: row.OpeningBalance,
			})
		}
		current := &summaries[len(summaries)-1]
		current.Months++
		current.EMI += row.EMI
		current.Interest += row.Interest
		current.Principal += row.Principal
		current.ClosingBalance = row.ClosingBalance
	}
	return summaries
}

// Comparison describes how much more favorable schedule b is than a.
// Positive values favor b.
type Comparison struct {
	MonthsSaved     int     `json:"monthsSaved" yaml:"monthsSaved"`
	InterestSaved   float64 `json:"interestSaved" yaml:"interestSaved"`
	TotalSaved      float64 `json:"totalSaved" yaml:"totalSaved"`
	PercentageSaved float64 `json:"percentageSaved" yaml:"percentageSaved"`
}

// Compare measures schedule b against schedule a.
func Compare(a, b Schedule) Comparison {
	interestSaved := a.TotalInterest - b.TotalInterest
	return Comparison{
		MonthsSaved:     len(a.Rows) - len(b.Rows),
		InterestSaved:   interestSaved,
		TotalSaved:      a.TotalAmount - b.TotalAmount,
		PercentageSaved: mathutil.Round(mathutil.CalculatePercentage(interestSaved, a.TotalInterest)),
	}
}
