// Package output provides utilities for formatting and displaying loan reports.
package output

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/iwvelando/loan-calculator/internal/calculator"
	"github.com/iwvelando/loan-calculator/pkg/amortization"
	"github.com/iwvelando/loan-calculator/pkg/format"
)

// PrettyFormat writes a human-readable summary of the report. The monthly
// schedule is included when withSchedule is set; the yearly summary always is.
func PrettyFormat(w io.Writer, report calculator.Report, withSchedule bool) {
	p := message.NewPrinter(language.English)

	title := report.Name
	if title == "" {
		title = "loan"
	}
	fmt.Fprintf(w, "--- Results for %s (%s) ---\n", title, report.LoanType)
	fmt.Fprintf(w, "Loan amount   | %s\n", format.Currency(report.LoanAmount))
	_, _ = p.Fprintf(w, "Tenure        | %d months\n", report.Schedule.Len())
	fmt.Fprintf(w, "EMI           | %s\n", format.Currency(report.EMI))
	fmt.Fprintf(w, "Total interest| %s\n", format.Currency(report.Schedule.TotalInterest))
	fmt.Fprintf(w, "Total paid    | %s\n", format.Currency(report.Schedule.TotalAmount))
	fmt.Fprintf(w, "Average rate  | %s\n", format.Percent(report.AverageRate))
	if report.EffectiveRate > 0 {
		fmt.Fprintf(w, "Effective rate| %s\n", format.Percent(report.EffectiveRate))
	}
	if t := report.Transition; t != nil {
		fmt.Fprintf(w, "Transition    | month %d, EMI %s -> %s, balance %s\n",
			t.Month, format.Currency(t.FixedEMI), format.Currency(t.FloatingEMI), format.Currency(t.BalanceAtTransition))
	}

	fmt.Fprintf(w, "\nYear | Months | Opening        | Interest       | Principal      | Closing\n")
	fmt.Fprintf(w, "____ | ______ | _______        | ________       | _________      | _______\n")
	for _, y := range report.Yearly {
		fmt.Fprintf(w, "%4d | %6d | %-14s | %-14s | %-14s | %s\n", y.Year, y.Months,
			format.Currency(y.OpeningBalance), format.Currency(y.Interest), format.Currency(y.Principal), format.Currency(y.ClosingBalance))
	}

	if withSchedule {
		fmt.Fprintf(w, "\nMonth | Rate   | EMI        | Interest   | Principal  | Balance\n")
		fmt.Fprintf(w, "_____ | ____   | ___        | ________   | _________  | _______\n")
		for _, row := range report.Schedule.Rows {
			fmt.Fprintf(w, "%5d | %-6s | %-10s | %-10s | %-10s | %s\n", row.Month, format.Percent(row.Rate),
				format.Currency(row.EMI), format.Currency(row.Interest), format.Currency(row.Principal), format.Currency(row.ClosingBalance))
		}
	}

	if pre := report.Prepayment; pre != nil {
		_, _ = p.Fprintf(w, "\nPrepayment saves %d months and %s of interest (%s)\n",
			pre.Comparison.MonthsSaved, format.Currency(pre.Comparison.InterestSaved), format.Percent(pre.Comparison.PercentageSaved))
	}

	if sc := report.Scenarios; sc != nil {
		fmt.Fprintf(w, "\nScenario     | Average rate | First EMI  | Last EMI   | Total interest\n")
		for _, s := range sc.Scenarios() {
			fmt.Fprintf(w, "%-12s | %-12s | %-10s | %-10s | %s\n", s.Name, format.Percent(s.AverageRate),
				format.Currency(s.InitialEMI), format.Currency(s.FinalEMI), format.Compact(s.Schedule.TotalInterest))
		}
	}

	if a := report.Affordability; a != nil {
		fmt.Fprintf(w, "\nAffordability: max EMI %s, max loan %s, max property %s, LTV %s (limit %s)\n",
			format.Currency(a.Result.MaxAllowedEMI), format.Compact(a.Result.MaxLoanAmount),
			format.Compact(a.Result.MaxPropertyValue), format.Percent(a.Result.LTVRatio), format.Percent(a.Result.MaxLTV))
		for _, s := range a.Scenarios {
			fmt.Fprintf(w, "  %-12s FOIR %s -> %s\n", s.Name, format.Percent(s.FOIRPercentage), format.Compact(s.Result.MaxLoanAmount))
		}
		for _, r := range a.Result.Recommendations {
			fmt.Fprintf(w, "  * %s\n", r)
		}
	}

	if t := report.Tax; t != nil {
		fmt.Fprintf(w, "\nTax: old regime %s (saves %s), new regime %s (saves %s), recommended %s\n",
			format.Currency(t.Old.WithLoan.TotalTax), format.Currency(t.Old.Savings),
			format.Currency(t.New.WithLoan.TotalTax), format.Currency(t.New.Savings), t.Recommended)
	}

	if s := report.PMAY; s != nil {
		if s.Eligible {
			fmt.Fprintf(w, "\nPMAY: %s at %s on %s, subsidy worth %s\n", s.Category,
				format.Percent(s.SubsidyRate), format.Currency(s.SubsidizedLoan), format.Currency(s.SubsidyAmount))
		} else {
			fmt.Fprintf(w, "\nPMAY: not eligible, %s\n", s.Reason)
		}
	}

	if c := report.UpfrontCosts; c != nil {
		fmt.Fprintf(w, "\nUpfront costs (%s): stamp duty %s, registration %s, total %s\n",
			c.State, format.Currency(c.StampDuty), format.Currency(c.RegistrationFee), format.Currency(c.Total))
	}
}

// CsvFormat writes the monthly schedule in comma-separated value format.
func CsvFormat(w io.Writer, schedule amortization.Schedule) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"month", "year", "rate", "opening balance", "emi", "interest", "principal", "closing balance"}); err != nil {
		return err
	}
	for _, row := range schedule.Rows {
		record := []string{
			strconv.Itoa(row.Month),
			strconv.Itoa(row.Year),
			strconv.FormatFloat(row.Rate, 'f', 2, 64),
			money(row.OpeningBalance),
			money(row.EMI),
			money(row.Interest),
			money(row.Principal),
			money(row.ClosingBalance),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// CsvString renders CsvFormat into a string.
func CsvString(schedule amortization.Schedule) string {
	var buf bytes.Buffer
	if err := CsvFormat(&buf, schedule); err != nil {
		return ""
	}
	return buf.String()
}

// YearlyCsvFormat writes the yearly summary in comma-separated value format.
func YearlyCsvFormat(w io.Writer, years []amortization.YearSummary) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"year", "months", "opening balance", "emi paid", "interest", "principal", "closing balance"}); err != nil {
		return err
	}
	for _, y := range years {
		record := []string{
			strconv.Itoa(y.Year),
			strconv.Itoa(y.Months),
			money(y.OpeningBalance),
			money(y.EMI),
			money(y.Interest),
			money(y.Principal),
			money(y.ClosingBalance),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// YearlyCsvString renders YearlyCsvFormat into a string.
func YearlyCsvString(years []amortization.YearSummary) string {
	var buf bytes.Buffer
	if err := YearlyCsvFormat(&buf, years); err != nil {
		return ""
	}
	return buf.String()
}

func money(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
