// Package constants provides shared constants for the loan-calculator application.
package constants

// Financial constants
const (
	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12

	// DecimalPrecision is the precision for two-decimal rounding of rates and percentages
	DecimalPrecision = 100

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0

	// MaxTenureYears is the longest tenure accepted by the EMI primitives
	MaxTenureYears = 50

	// Lakh is one hundred thousand rupees
	Lakh = 100000.0

	// Crore is ten million rupees
	Crore = 10000000.0
)

// Numerical search constants
const (
	// EffectiveRateIterations is the fixed number of bisection steps used to
	// invert the EMI formula. Halving a 0-50% interval 100 times leaves a
	// bracket far below a hundredth of a basis point.
	EffectiveRateIterations = 100

	// EffectiveRateUpperBound is the upper end of the rate search domain, in percent
	EffectiveRateUpperBound = 50.0

	// EffectiveRateTolerance is the EMI difference (in currency units) at which
	// the search stops early
	EffectiveRateTolerance = 1.0
)

// Affordability constants
const (
	// FOIRConservative, FOIRModerate and FOIRAggressive drive the fixed
	// affordability sweep
	FOIRConservative = 50.0
	FOIRModerate     = 55.0
	FOIRAggressive   = 60.0

	// MinimumDisposableIncome is the monthly amount below which a warning is issued
	MinimumDisposableIncome = 15000.0

	// HighLTVThreshold is the LTV percentage above which a larger down payment is suggested
	HighLTVThreshold = 80.0
)

// PMAY constants
const (
	// PMAYDiscountRate is the annual rate used to discount the EMI differential
	PMAYDiscountRate = 8.0

	// PMAYMaxTenureYears caps the subsidy horizon
	PMAYMaxTenureYears = 20
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the API
	DefaultServerAddress = ":8080"

	// DefaultMaxUploadSizeBytes is the default maximum upload size for YAML configs (256 KB)
	DefaultMaxUploadSizeBytes int64 = 256 * 1024

	// DefaultMetricsPath is where Prometheus metrics are exposed
	DefaultMetricsPath = "/metrics"

	// DefaultServiceName identifies the service in traces
	DefaultServiceName = "loan-calculator"
)

// Validation constants
const (
	// CurrencyTolerance is the tolerance for currency comparisons (1 paisa)
	CurrencyTolerance = 0.01
)
