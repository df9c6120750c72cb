package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/iwvelando/loan-calculator/internal/calculator"
	"github.com/iwvelando/loan-calculator/internal/config"
	"github.com/iwvelando/loan-calculator/pkg/constants"
)

func TestInitializeLogger(t *testing.T) {
	tests := []struct {
		name      string
		logging   config.LoggingConfig
		override  string
		expectErr bool
	}{
		{name: "Defaults", logging: config.LoggingConfig{}},
		{name: "Console debug", logging: config.LoggingConfig{Level: "debug", Format: "console"}},
		{name: "Override wins", logging: config.LoggingConfig{Level: "bogus"}, override: "warn"},
		{name: "Invalid level", logging: config.LoggingConfig{Level: "verbose"}, expectErr: true},
		{name: "Invalid format", logging: config.LoggingConfig{Format: "xml"}, expectErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := initializeLogger(tt.logging, tt.override)
			if (err != nil) != tt.expectErr {
				t.Fatalf("initializeLogger() error = %v, expectErr %v", err, tt.expectErr)
			}
			if err == nil && logger == nil {
				t.Fatal("expected a logger")
			}
		})
	}
}

func TestInitializeLoggerOutputFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "calculator.log")
	logger, err := initializeLogger(config.LoggingConfig{OutputFile: path}, "")
	if err != nil {
		t.Fatalf("initializeLogger() error = %v", err)
	}
	logger.Info("hello")
	_ = logger.Sync()
}

// TestExampleConfiguration runs the shipped example end to end the same way
// main does.
func TestExampleConfiguration(t *testing.T) {
	conf, err := config.LoadConfiguration(filepath.Join("..", "..", "config.yaml.example"))
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}

	report, err := calculator.Run(zap.NewNop(), *conf)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if report.EMI != 43391 || report.Schedule.TotalInterest != 7000694 {
		t.Errorf("unexpected report: EMI %.0f, interest %.0f", report.EMI, report.Schedule.TotalInterest)
	}

	var buf bytes.Buffer
	if err := render(&buf, report, conf.Output.Format, conf.Output.Schedule); err != nil {
		t.Fatalf("render() error = %v", err)
	}
	out := buf.String()
	for _, fragment := range []string{"--- Results for Flat in Pune (hybrid) ---", "Transition    | month 37", "Upfront costs (maharashtra)"} {
		if !strings.Contains(out, fragment) {
			t.Errorf("pretty output missing %q", fragment)
		}
	}
}

func TestRenderCSV(t *testing.T) {
	conf, err := config.LoadConfiguration(filepath.Join("..", "..", "internal", "config", "testdata", "fixed.yaml"))
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}
	report, err := calculator.Run(zap.NewNop(), *conf)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	var buf bytes.Buffer
	if err := render(&buf, report, constants.OutputFormatCSV, false); err != nil {
		t.Fatalf("render() error = %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 241 {
		t.Fatalf("expected header plus 240 rows, got %d", len(lines))
	}
	if !strings.HasPrefix(lines[1], "1,1,9.00,5000000.00,44986.00,") {
		t.Errorf("unexpected first row %q", lines[1])
	}
}
