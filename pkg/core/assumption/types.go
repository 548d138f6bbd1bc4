// Package assumption defines the deal inputs for the LBO engine: the
// AssumptionSet, the raw debt tranche specs, and construction-time
// validation. Specs stay immutable after parsing; resolved tranche amounts
// live in the transaction package.
package assumption

import (
	"fmt"
	"strings"
)

// AmortizationKind selects how a tranche's scheduled principal behaves.
type AmortizationKind string

const (
	// AmortizationBullet repays the full principal at the tranche's maturity.
	AmortizationBullet AmortizationKind = "bullet"
	// AmortizationAmortizing repays principal in equal scheduled installments.
	AmortizationAmortizing AmortizationKind = "amortizing"
	// AmortizationSweep has no scheduled principal; the cash-flow sweep is
	// its only repayment channel.
	AmortizationSweep AmortizationKind = "cash_flow_sweep"
)

// normalizeKind accepts the short alias "sweep" used by hand-written
// scenario files.
func normalizeKind(raw string) (AmortizationKind, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "bullet", "":
		return AmortizationBullet, true
	case "amortizing":
		return AmortizationAmortizing, true
	case "sweep", "cash_flow_sweep":
		return AmortizationSweep, true
	}
	return "", false
}

// DebtTrancheSpec is the raw description of one debt instrument. Either
// Amount or EBITDAMultiple sizes the tranche; when both are present the
// multiple wins (amount = multiple x entry EBITDA).
type DebtTrancheSpec struct {
	Name                 string  `json:"name"`
	Amount               float64 `json:"amount,omitempty"`
	InterestRate         float64 `json:"interest_rate"`
	EBITDAMultiple       float64 `json:"ebitda_multiple,omitempty"`
	AmortizationSchedule string  `json:"amortization_schedule,omitempty"`
	AmortizationPeriods  int     `json:"amortization_periods,omitempty"`
	Priority             int     `json:"priority,omitempty"` // 1 = most senior
}

// Kind returns the normalized amortization kind, defaulting to bullet.
func (s DebtTrancheSpec) Kind() AmortizationKind {
	kind, ok := normalizeKind(s.AmortizationSchedule)
	if !ok {
		return AmortizationBullet
	}
	return kind
}

// AssumptionSet holds every deal input. JSON keys match the scenario file
// format consumed by the dashboard and the input collectors.
type AssumptionSet struct {
	// Transaction
	EntryEBITDA            float64 `json:"entry_ebitda"`
	EntryMultiple          float64 `json:"entry_multiple"`
	ExistingDebt           float64 `json:"existing_debt,omitempty"`
	ExistingCash           float64 `json:"existing_cash,omitempty"`
	TransactionExpensesPct float64 `json:"transaction_expenses_pct"` // % of EV
	FinancingFeesPct       float64 `json:"financing_fees_pct"`       // % of total debt

	// Financing
	DebtTranches []DebtTrancheSpec `json:"debt_instruments"`
	EquityAmount float64           `json:"equity_amount,omitempty"` // 0 = derive from sources & uses

	// Operations
	RevenueGrowthRates []float64 `json:"revenue_growth_rate"` // one per projection year
	COGSPctOfRevenue   float64   `json:"cogs_pct_of_revenue"`
	SGAPctOfRevenue    float64   `json:"sganda_pct_of_revenue"`
	DepreciationPctPPE float64   `json:"depreciation_pct_of_ppe"`
	CapexPctOfRevenue  float64   `json:"capex_pct_of_revenue"`
	TaxRate            float64   `json:"tax_rate"`

	// Working capital
	DaysSalesOutstanding     float64 `json:"days_sales_outstanding"`
	DaysInventoryOutstanding float64 `json:"days_inventory_outstanding"`
	DaysPayableOutstanding   float64 `json:"days_payable_outstanding"`

	// Opening balance sheet seeds
	InitialPPE       float64 `json:"initial_ppe,omitempty"`
	InitialAR        float64 `json:"initial_ar,omitempty"`
	InitialInventory float64 `json:"initial_inventory,omitempty"`
	InitialAP        float64 `json:"initial_ap,omitempty"`
	MinCashBalance   float64 `json:"min_cash_balance,omitempty"`

	// Exit
	ExitYear              int     `json:"exit_year"`
	ExitMultiple          float64 `json:"exit_multiple"`
	TargetExitDebt        float64 `json:"target_exit_debt,omitempty"`          // 0 = pay down freely
	MaxDebtPaydownPerYear float64 `json:"max_debt_paydown_per_year,omitempty"` // 0 = unlimited
	FCFConversionRate     float64 `json:"fcf_conversion_rate,omitempty"`       // 0 = CFO - CapEx

	StartingRevenue float64 `json:"starting_revenue,omitempty"` // 0 = imply from margin
}

// Horizon is the projection length in years, defined by the growth vector.
func (a *AssumptionSet) Horizon() int {
	return len(a.RevenueGrowthRates)
}

// ImpliedEBITDAMargin is 1 - COGS% - SG&A%, used to back into starting
// revenue when it is not supplied.
func (a *AssumptionSet) ImpliedEBITDAMargin() float64 {
	return 1 - a.COGSPctOfRevenue - a.SGAPctOfRevenue
}

// Defaults returns an AssumptionSet pre-filled with the standard deal
// defaults. Parsing decodes on top of this so absent fields keep their
// default while an explicit zero stays zero.
func Defaults() AssumptionSet {
	return AssumptionSet{
		TransactionExpensesPct:   DefaultTransactionExpensesPct,
		FinancingFeesPct:         DefaultFinancingFeesPct,
		COGSPctOfRevenue:         DefaultCOGSPct,
		SGAPctOfRevenue:          DefaultSGAPct,
		DepreciationPctPPE:       DefaultDepreciationPctOfPPE,
		CapexPctOfRevenue:        DefaultCapexPct,
		TaxRate:                  DefaultTaxRate,
		DaysSalesOutstanding:     DefaultDSO,
		DaysInventoryOutstanding: DefaultDIO,
		DaysPayableOutstanding:   DefaultDPO,
		ExitYear:                 DefaultExitYear,
		ExitMultiple:             DefaultExitMultiple,
	}
}

// ValidationError aggregates every violated field so callers see the whole
// picture in one failure instead of fixing inputs one at a time.
type ValidationError struct {
	Violations []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("assumption validation failed:\n  - %s", strings.Join(e.Violations, "\n  - "))
}

func pctInRange(v float64) bool { return v >= 0 && v <= 1 }

func daysInRange(v float64) bool { return v >= 0 && v <= 365 }

// Validate enforces the construction-time invariants. It returns a
// *ValidationError listing every violation, or nil.
func (a *AssumptionSet) Validate() error {
	var errs []string

	if a.EntryEBITDA <= 0 {
		errs = append(errs, "entry_ebitda must be positive")
	}
	if a.EntryMultiple <= 0 {
		errs = append(errs, "entry_multiple must be positive")
	}

	switch n := len(a.RevenueGrowthRates); {
	case n == 0:
		errs = append(errs, "revenue_growth_rate cannot be empty")
	case n > MaxProjectionYears:
		errs = append(errs, fmt.Sprintf("revenue_growth_rate has %d years, exceeding the %d-year projection limit", n, MaxProjectionYears))
	}

	if !pctInRange(a.COGSPctOfRevenue) {
		errs = append(errs, "cogs_pct_of_revenue must be between 0 and 1")
	}
	if !pctInRange(a.SGAPctOfRevenue) {
		errs = append(errs, "sganda_pct_of_revenue must be between 0 and 1")
	}
	if pctInRange(a.COGSPctOfRevenue) && pctInRange(a.SGAPctOfRevenue) && a.ImpliedEBITDAMargin() <= 0 {
		errs = append(errs, "cogs_pct_of_revenue + sganda_pct_of_revenue implies a non-positive EBITDA margin")
	}
	if !pctInRange(a.TaxRate) {
		errs = append(errs, "tax_rate must be between 0 and 1")
	}
	if !pctInRange(a.TransactionExpensesPct) {
		errs = append(errs, "transaction_expenses_pct must be between 0 and 1")
	}
	if !pctInRange(a.FinancingFeesPct) {
		errs = append(errs, "financing_fees_pct must be between 0 and 1")
	}
	if !pctInRange(a.CapexPctOfRevenue) {
		errs = append(errs, "capex_pct_of_revenue must be between 0 and 1")
	}
	if !pctInRange(a.DepreciationPctPPE) {
		errs = append(errs, "depreciation_pct_of_ppe must be between 0 and 1")
	}

	if a.ExitYear <= 0 {
		errs = append(errs, "exit_year must be positive")
	}
	if a.ExitMultiple <= 0 {
		errs = append(errs, "exit_multiple must be positive")
	}

	if !daysInRange(a.DaysSalesOutstanding) {
		errs = append(errs, "days_sales_outstanding must be between 0 and 365")
	}
	if !daysInRange(a.DaysInventoryOutstanding) {
		errs = append(errs, "days_inventory_outstanding must be between 0 and 365")
	}
	if !daysInRange(a.DaysPayableOutstanding) {
		errs = append(errs, "days_payable_outstanding must be between 0 and 365")
	}

	for i, tranche := range a.DebtTranches {
		label := tranche.Name
		if label == "" {
			label = fmt.Sprintf("debt_instruments[%d]", i)
			errs = append(errs, fmt.Sprintf("%s: name is required", label))
		}
		if tranche.InterestRate < 0 {
			errs = append(errs, fmt.Sprintf("%s: interest_rate cannot be negative", label))
		}
		if tranche.Amount < 0 {
			errs = append(errs, fmt.Sprintf("%s: amount cannot be negative", label))
		}
		if tranche.EBITDAMultiple < 0 {
			errs = append(errs, fmt.Sprintf("%s: ebitda_multiple cannot be negative", label))
		}
		if _, ok := normalizeKind(tranche.AmortizationSchedule); !ok {
			errs = append(errs, fmt.Sprintf("%s: unknown amortization_schedule %q", label, tranche.AmortizationSchedule))
		}
		if tranche.Kind() == AmortizationAmortizing && tranche.AmortizationPeriods <= 0 {
			errs = append(errs, fmt.Sprintf("%s: amortization_periods must be positive for amortizing debt", label))
		}
	}

	if len(errs) > 0 {
		return &ValidationError{Violations: errs}
	}
	return nil
}
