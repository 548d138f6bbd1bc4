// Package model builds the three-statement LBO projection: income statement,
// debt schedule, balance sheet, and cash flow statement, followed by an
// iterative cash-flow sweep, full reconciliation, and returns analysis.
package model

import (
	"fmt"
	"math"

	"lbo_valuation/pkg/core/assumption"
	"lbo_valuation/pkg/core/statement"
	"lbo_valuation/pkg/core/transaction"
)

const (
	// balanceSheetTolerance is the dollar tolerance for A = L + E.
	balanceSheetTolerance = 1.0
	// cashFlowTolerance is the cash tolerance for roll-forward checks and
	// sweep convergence.
	cashFlowTolerance = 0.01
	// maxSweepIterations bounds the sweep fixed-point loop.
	maxSweepIterations = 5
)

// DefaultMinCashPctOfRevenue sets the minimum operating cash floor used by
// the sweep when min_cash_balance is not supplied: 1% of starting revenue,
// in the same units as every other input.
const DefaultMinCashPctOfRevenue = 0.01

// Model is a fully built LBO projection. Construct with New; all statements
// are reconciled and the sweep has converged by the time New returns.
type Model struct {
	assumptions *assumption.AssumptionSet
	tx          *transaction.Transaction

	years           int
	startingRevenue float64
	initialPPE      float64
	minCash         float64

	income   *statement.Table
	balance  *statement.Table
	cashflow *statement.Table
	debt     *DebtSchedule

	// scheduledDebt is the pre-sweep schedule, kept so diagnostics can
	// separate scheduled repayment from swept repayment.
	scheduledDebt *DebtSchedule

	sweepIterations int
	warnings        []string
}

// New builds the complete model from a validated assumption set. Any panic
// inside the build pipeline is converted into a *CalculationError.
func New(a *assumption.AssumptionSet) (m *Model, err error) {
	if a == nil {
		return nil, fmt.Errorf("nil assumption set")
	}
	if err := a.Validate(); err != nil {
		return nil, fmt.Errorf("cannot build model: %w", err)
	}

	defer func() {
		if r := recover(); r != nil {
			m = nil
			err = &CalculationError{Stage: "model build", Err: fmt.Errorf("%v", r)}
		}
	}()

	m = &Model{
		assumptions: a,
		years:       a.Horizon(),
	}
	m.build()
	return m, nil
}

func (m *Model) build() {
	a := m.assumptions

	m.tx = transaction.Calculate(a)
	m.warnings = append(m.warnings, m.tx.Warnings...)

	m.startingRevenue = a.StartingRevenue
	if m.startingRevenue == 0 {
		m.startingRevenue = a.EntryEBITDA / a.ImpliedEBITDAMargin()
	}
	m.initialPPE = a.InitialPPE
	if m.initialPPE <= 0 {
		m.initialPPE = m.startingRevenue * assumption.DefaultPPEToRevenueRatio
	}
	m.minCash = a.MinCashBalance
	if m.minCash <= 0 {
		m.minCash = m.startingRevenue * DefaultMinCashPctOfRevenue
	}

	m.income = statement.NewIncomeStatement(m.years)
	m.balance = statement.NewBalanceSheet(m.years)
	m.cashflow = statement.NewCashFlow(m.years)

	m.buildIncomeStatement()
	m.buildDebtSchedule()
	m.buildBalanceSheet()
	m.buildCashFlow()
	m.applyCashFlowSweep()
	m.reconcile()
}

// Assumptions returns the inputs the model was built from.
func (m *Model) Assumptions() *assumption.AssumptionSet { return m.assumptions }

// Transaction returns the entry economics.
func (m *Model) Transaction() *transaction.Transaction { return m.tx }

// Years returns the projection length.
func (m *Model) Years() int { return m.years }

// IncomeStatement returns the projected income statement.
func (m *Model) IncomeStatement() *statement.Table { return m.income }

// BalanceSheet returns the projected balance sheet.
func (m *Model) BalanceSheet() *statement.Table { return m.balance }

// CashFlow returns the projected cash flow statement.
func (m *Model) CashFlow() *statement.Table { return m.cashflow }

// DebtScheduleTable returns the per-tranche debt schedule.
func (m *Model) DebtScheduleTable() *DebtSchedule { return m.debt }

// SweepIterations reports how many sweep passes ran before convergence.
func (m *Model) SweepIterations() int { return m.sweepIterations }

// Warnings returns every reconciliation and transaction warning collected
// while building, in the order they were raised.
func (m *Model) Warnings() []string {
	return append([]string(nil), m.warnings...)
}

func (m *Model) warnf(format string, args ...interface{}) {
	w := fmt.Sprintf(format, args...)
	m.warnings = append(m.warnings, w)
	fmt.Printf("[MODEL] warning: %s\n", w)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
