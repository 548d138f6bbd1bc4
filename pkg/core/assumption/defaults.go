package assumption

// Standard deal defaults, applied by Defaults() before a scenario file is
// decoded. Values mirror what the input collectors pre-populate.
const (
	DefaultTaxRate = 0.25
	DefaultDSO     = 45.0
	DefaultDIO     = 30.0
	DefaultDPO     = 30.0

	DefaultTransactionExpensesPct = 0.03 // % of EV
	DefaultFinancingFeesPct       = 0.02 // % of total debt

	DefaultCOGSPct              = 0.70
	DefaultSGAPct               = 0.15
	DefaultCapexPct             = 0.03
	DefaultDepreciationPctOfPPE = 0.10

	DefaultExitYear     = 5
	DefaultExitMultiple = 7.5

	DefaultAmortizationPeriods = 5

	// MaxProjectionYears caps the growth vector; LBO projections beyond ten
	// years are not meaningful.
	MaxProjectionYears = 10
)

// Estimation ratios used when opening balance-sheet seeds are absent.
const (
	DefaultPPEToRevenueRatio          = 0.30
	DefaultDepreciationToRevenueRatio = 0.015
	DefaultAmortizationToRevenueRatio = 0.005
)
