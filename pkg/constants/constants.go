// Package constants provides shared constants for the iefp-dossier application.
package constants

// Financial constants
const (
	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12

	// DecimalPlaces is the number of decimals kept on every computed amount
	DecimalPlaces = 2

	// DecimalPrecision is the precision for currency rounding (2 decimal places)
	DecimalPrecision = 100

	// CurrentAssetsRevenueRatio is the share of yearly revenue booked as current assets
	CurrentAssetsRevenueRatio = 0.10
)

// Assumption defaults, matching the values pre-filled in the application form.
const (
	DefaultRevenueGrowth      = 0.08
	DefaultGrossMarginTarget  = 0.55
	DefaultOpexRevenueRatio   = 0.12
	DefaultSocialChargesRatio = 0.2375
	DefaultWageRaiseRatio     = 0.03

	DefaultLifeEquipment   = 5
	DefaultLifeIT          = 3
	DefaultLifeVehicles    = 4
	DefaultLifeIntangibles = 3
	DefaultLifeOther       = 4

	DefaultLoanInterestRate = 0.06
	DefaultLoanTermYears    = 3
)

// Table names, in the order they are produced and rendered.
const (
	TableSales           = "sales"
	TableCOGS            = "cogs"
	TableOpex            = "opex"
	TablePayroll         = "payroll"
	TableDepreciation    = "depreciation"
	TableLoanSchedule    = "loan_schedule"
	TableIncomeStatement = "income_statement"
	TableBalanceSheet    = "balance_sheet"
)

// TableOrder lists every table name produced by the projection engine.
var TableOrder = []string{
	TableSales,
	TableCOGS,
	TableOpex,
	TablePayroll,
	TableDepreciation,
	TableLoanSchedule,
	TableIncomeStatement,
	TableBalanceSheet,
}

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"

	// OutputFormatJSON is the JSON output format
	OutputFormatJSON = "json"
)

// Rendering constants
const (
	// MaxSheetNameLength is the longest worksheet name a workbook accepts
	MaxSheetNameLength = 31

	// NoDataPlaceholder replaces tables without rows in rendered artifacts
	NoDataPlaceholder = "(sem dados)"

	// ReportTitle is the heading of the rendered dossier report
	ReportTitle = "Candidatura IEFP — Plano de Negócio"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "dossier.yaml"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"

	// DefaultArtifactPrefix is the default file prefix of exported artifacts
	DefaultArtifactPrefix = "dossier"

	// CredentialEnvVar holds the text generation API key
	CredentialEnvVar = "GEMINI_API_KEY"
)

// Text generation defaults
const (
	DefaultGeneratorModel          = "gemini-2.0-flash"
	DefaultGeneratorTimeoutSeconds = 30
	DefaultGeneratorTemperature    = 0.5

	// Default character limits of the narrative sections of the form
	DefaultLimitObjectives = 2000
	DefaultLimitMarket     = 1200
	DefaultLimitFacilities = 1000
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address
	DefaultServerAddress = ":8080"

	// DefaultMaxUploadSizeBytes is the default maximum upload size for YAML configs (256 KB)
	DefaultMaxUploadSizeBytes int64 = 256 * 1024

	// DefaultShutdownTimeoutSeconds bounds graceful server shutdown
	DefaultShutdownTimeoutSeconds = 10
)

// Validation constants
const (
	// CurrencyTolerance is the tolerance for currency comparisons (1 cent)
	CurrencyTolerance = 0.01
)
