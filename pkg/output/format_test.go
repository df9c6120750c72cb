package output

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/iwvelando/loan-calculator/internal/calculator"
	"github.com/iwvelando/loan-calculator/pkg/amortization"
	"github.com/iwvelando/loan-calculator/pkg/hybridrate"
	"github.com/iwvelando/loan-calculator/pkg/pmay"
)

func sampleReport(t *testing.T) calculator.Report {
	t.Helper()
	schedule, err := amortization.Generate(100000, 12, 1, 0)
	if err != nil {
		t.Fatalf("failed to build schedule: %v", err)
	}
	return calculator.Report{
		Name:        "Test loan",
		LoanType:    "fixed",
		LoanAmount:  100000,
		EMI:         schedule.Rows[0].EMI,
		AverageRate: 12,
		Schedule:    schedule,
		Yearly:      amortization.YearlySummary(schedule),
	}
}

func TestPrettyFormat(t *testing.T) {
	var buf bytes.Buffer
	PrettyFormat(&buf, sampleReport(t), false)
	output := buf.String()

	expected := []string{
		"--- Results for Test loan (fixed) ---",
		"Loan amount   | ₹1,00,000",
		"Tenure        | 12 months",
		"EMI           | ₹8,885",
		"Total interest| ₹6,619",
		"Average rate  | 12.00%",
		"Year | Months | Opening",
	}
	for _, fragment := range expected {
		if !strings.Contains(output, fragment) {
			t.Errorf("PrettyFormat missing %q in:\n%s", fragment, output)
		}
	}
	if strings.Contains(output, "Month | Rate") {
		t.Errorf("PrettyFormat should omit the monthly schedule")
	}
	if strings.Contains(output, "PMAY") || strings.Contains(output, "Tax:") {
		t.Errorf("PrettyFormat should omit sections that were not computed")
	}
}

func TestPrettyFormatOptionalSections(t *testing.T) {
	report := sampleReport(t)
	report.Transition = &hybridrate.Transition{Month: 37, FixedEMI: 43391, FloatingEMI: 44817, BalanceAtTransition: 4674305}
	report.PMAY = &pmay.Result{Reason: "the subsidy is only available to first-time home buyers"}

	var buf bytes.Buffer
	PrettyFormat(&buf, report, true)
	output := buf.String()

	for _, fragment := range []string{
		"Transition    | month 37, EMI ₹43,391 -> ₹44,817, balance ₹46,74,305",
		"Month | Rate",
		"PMAY: not eligible, the subsidy is only available to first-time home buyers",
	} {
		if !strings.Contains(output, fragment) {
			t.Errorf("PrettyFormat missing %q", fragment)
		}
	}
}

func TestCsvString(t *testing.T) {
	report := sampleReport(t)
	csv := CsvString(report.Schedule)
	lines := strings.Split(strings.TrimSpace(csv), "\n")

	if len(lines) != 13 {
		t.Fatalf("expected header plus 12 rows, got %d lines", len(lines))
	}
	if lines[0] != "month,year,rate,opening balance,emi,interest,principal,closing balance" {
		t.Errorf("unexpected header %q", lines[0])
	}
	if lines[1] != "1,1,12.00,100000.00,8885.00,1000.00,7885.00,92115.00" {
		t.Errorf("unexpected first row %q", lines[1])
	}
	if !strings.HasSuffix(lines[12], ",0.00") {
		t.Errorf("final row should close at zero: %q", lines[12])
	}
}

func TestCsvStringEmpty(t *testing.T) {
	csv := CsvString(amortization.Empty())
	if strings.Count(csv, "\n") != 1 {
		t.Errorf("empty schedule should produce only a header, got %q", csv)
	}
}

func TestYearlyCsvString(t *testing.T) {
	report := sampleReport(t)
	csv := YearlyCsvString(report.Yearly)
	lines := strings.Split(strings.TrimSpace(csv), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header plus one year, got %d lines", len(lines))
	}
	if lines[1] != "1,12,100000.00,106619.00,6619.00,100000.00,0.00" {
		t.Errorf("unexpected yearly row %q", lines[1])
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestCsvFormatsReportWriteErrors(t *testing.T) {
	report := sampleReport(t)
	if err := YearlyCsvFormat(failingWriter{}, report.Yearly); err == nil {
		t.Error("YearlyCsvFormat should return the writer error")
	}
	if err := CsvFormat(failingWriter{}, report.Schedule); err == nil {
		t.Error("CsvFormat should return the writer error")
	}
}
