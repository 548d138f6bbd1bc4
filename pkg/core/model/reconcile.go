package model

import (
	"math"
	"strings"

	"lbo_valuation/pkg/core/statement"
	"lbo_valuation/pkg/core/validate"
)

// reconcile runs the post-build checks: debt schedule validation, balance
// sheet and cash flow reconciliation per year, cross-statement linkages, the
// year-1 sources & uses tie-out, and income statement assumption drift.
// Anything suspicious lands on the warnings list; fixable breaks are fixed.
func (m *Model) reconcile() {
	dv := m.DebtScheduleValidation()
	for _, e := range dv.Errors {
		m.warnf("debt schedule error: %s", e)
	}
	for _, w := range dv.Warnings {
		m.warnf("debt schedule: %s", w)
	}

	for year := 1; year <= m.years; year++ {
		m.reconcileBalanceSheet(year)
		ending := m.reconcileCashFlow(year)
		m.reconcileCrossSheetCash(year, ending)
		m.reconcileLinkages(year)
		m.validateYear1SourcesUses(year, ending)
		m.validateIncomeAssumptions(year)
	}

	m.validateReturnsAnalysis()
}

// reconcileLinkages runs the cross-statement linkage checks after the
// per-statement repairs: income statement net income must flow onto the cash
// flow statement, and the cash flow statement must tie to balance sheet cash.
func (m *Model) reconcileLinkages(year int) {
	report := validate.ValidateLinkages(m.income, m.cashflow, m.balance, year, cashFlowTolerance)
	if !report.AllPassed {
		m.warnf("year %d: cross-statement linkage failed: %s",
			year, strings.Join(report.FailedChecks, "; "))
	}
}

// reconcileBalanceSheet recomputes the subtotal chain and, if assets still
// disagree with liabilities and equity beyond the dollar tolerance, re-plugs
// equity.
func (m *Model) reconcileBalanceSheet(year int) {
	tcl := m.balance.Get(statement.TotalCurrentLiabilities, year)
	debt := m.balance.Get(statement.TotalDebt, year)
	totalLiab := round2(tcl + debt)
	if math.Abs(totalLiab-m.balance.Get(statement.TotalLiabilities, year)) > cashFlowTolerance {
		m.balance.Set(statement.TotalLiabilities, year, totalLiab)
	}

	cash := m.balance.Get(statement.Cash, year)
	ar := m.balance.Get(statement.AccountsReceivable, year)
	inv := m.balance.Get(statement.Inventory, year)
	tca := round2(cash + ar + inv)
	if math.Abs(tca-m.balance.Get(statement.TotalCurrentAssets, year)) > cashFlowTolerance {
		m.balance.Set(statement.TotalCurrentAssets, year, tca)
	}

	totalAssets := round2(
		m.balance.Get(statement.TotalCurrentAssets, year) +
			m.balance.Get(statement.PPENet, year) +
			m.balance.Get(statement.Goodwill, year) +
			m.balance.Get(statement.FinancingFeeIntangible, year))
	if math.Abs(totalAssets-m.balance.Get(statement.TotalAssets, year)) > cashFlowTolerance {
		m.balance.Set(statement.TotalAssets, year, totalAssets)
	}

	check := validate.CheckBalanceEquation(
		m.balance.Get(statement.TotalAssets, year),
		m.balance.Get(statement.TotalLiabilities, year),
		m.balance.Get(statement.ShareholdersEquity, year),
		balanceSheetTolerance)
	if !check.IsBalanced {
		equity := round2(check.TotalAssets - check.TotalLiabilities)
		m.balance.Set(statement.ShareholdersEquity, year, equity)
		m.balance.Set(statement.TotalLiabilitiesEquity, year,
			round2(check.TotalLiabilities+equity))
	}
}

// reconcileCashFlow verifies Beginning + Net Change = Ending and the
// year-to-year cash chain, repairing either when broken. Returns the ending
// cash for the year.
func (m *Model) reconcileCashFlow(year int) float64 {
	beginning := m.cashflow.Get(statement.BeginningCash, year)
	netChange := m.cashflow.Get(statement.NetChangeInCash, year)
	ending := m.cashflow.Get(statement.EndingCash, year)

	roll := validate.CheckCashFlowEquation(beginning, netChange, ending, cashFlowTolerance)
	if !roll.IsBalanced {
		m.warnf("cash flow reconciliation in year %d: beginning %.2f + net change %.2f = %.2f but ending = %.2f, recalculating",
			year, beginning, netChange, roll.ComputedEnding, ending)
		ending = beginning + netChange
		if m.assumptions.MinCashBalance > 0 {
			ending = maxF(ending, m.assumptions.MinCashBalance)
		}
		m.cashflow.Set(statement.EndingCash, year, ending)
		m.balance.Set(statement.Cash, year, ending)
	}

	if year < m.years {
		nextBeginning := m.cashflow.Get(statement.BeginningCash, year+1)
		chain := validate.CheckCashContinuity(ending, nextBeginning, cashFlowTolerance)
		if !chain.IsContinuous {
			m.warnf("cash continuity: year %d ending %.2f != year %d beginning %.2f, fixing",
				year, ending, year+1, nextBeginning)
			m.cashflow.Set(statement.BeginningCash, year+1, ending)
			nextEnding := ending + m.cashflow.Get(statement.NetChangeInCash, year+1)
			if m.assumptions.MinCashBalance > 0 {
				nextEnding = maxF(nextEnding, m.assumptions.MinCashBalance)
			}
			m.cashflow.Set(statement.EndingCash, year+1, nextEnding)
			m.balance.Set(statement.Cash, year+1, nextEnding)
			m.updateBalanceSheetTotals(year + 1)
		}
	}

	return ending
}

// reconcileCrossSheetCash forces balance sheet cash to agree with the cash
// flow statement.
func (m *Model) reconcileCrossSheetCash(year int, endingCash float64) {
	bsCash := m.balance.Get(statement.Cash, year)
	if math.Abs(bsCash-endingCash) > cashFlowTolerance {
		m.warnf("cross-sheet cash mismatch in year %d: balance sheet %.2f != cash flow ending %.2f, updating",
			year, bsCash, endingCash)
		m.balance.Set(statement.Cash, year, endingCash)
		m.updateBalanceSheetTotals(year)
	}
}

// validateYear1SourcesUses ties year-1 ending cash back to the transaction:
// existing cash + (sources - uses - first scheduled repayment) + CFO + CapEx.
func (m *Model) validateYear1SourcesUses(year int, endingCash float64) {
	if year != 1 {
		return
	}

	sources := m.tx.EquityContribution + m.tx.TotalDebt
	uses := m.tx.EquityValue + m.assumptions.ExistingDebt +
		m.tx.TransactionExpenses + m.tx.FinancingFees
	firstRepayment := m.debt.totalPrincipal(0)

	netTransaction := sources - uses - firstRepayment
	cfo := m.cashflow.Get(statement.CashFromOperations, 1)
	capex := m.cashflow.Get(statement.CashFromInvesting, 1)

	expected := m.assumptions.ExistingCash + netTransaction + cfo + capex
	if math.Abs(expected-endingCash) > cashFlowTolerance {
		m.warnf("year 1 ending cash does not reconcile with sources & uses: expected %.2f, actual %.2f (sources %.2f, uses %.2f, repayment %.2f, CFO %.2f, CapEx %.2f)",
			expected, endingCash, sources, uses, firstRepayment, cfo, capex)
	}
}

// validateIncomeAssumptions flags drift between the projected statement and
// the stated operating assumptions.
func (m *Model) validateIncomeAssumptions(year int) {
	a := m.assumptions
	revenue := m.income.Get(statement.Revenue, year)
	if revenue <= 0 {
		return
	}

	if year > 1 {
		prior := m.income.Get(statement.Revenue, year-1)
		idx := year - 2
		if idx >= len(a.RevenueGrowthRates) {
			idx = len(a.RevenueGrowthRates) - 1
		}
		yoy := validate.CalculateYoY(revenue, prior)
		if want := a.RevenueGrowthRates[idx] * 100; math.Abs(yoy-want) > 0.1 {
			m.warnf("year %d: revenue growth %.1f%% does not match assumption %.1f%%",
				year, yoy, want)
		}
	}

	cogsPct := m.income.Get(statement.COGS, year) / revenue
	if math.Abs(cogsPct-a.COGSPctOfRevenue) > 0.01 {
		m.warnf("year %d: COGS %.1f%% of revenue does not match assumption %.1f%%",
			year, cogsPct*100, a.COGSPctOfRevenue*100)
	}

	sgaPct := m.income.Get(statement.SGA, year) / revenue
	if math.Abs(sgaPct-a.SGAPctOfRevenue) > 0.01 {
		m.warnf("year %d: SG&A %.1f%% of revenue does not match assumption %.1f%%",
			year, sgaPct*100, a.SGAPctOfRevenue*100)
	}

	pretax := m.income.Get(statement.PretaxIncome, year)
	if pretax > 0 {
		taxRate := m.income.Get(statement.IncomeTax, year) / pretax
		if math.Abs(taxRate-a.TaxRate) > 0.01 {
			m.warnf("year %d: effective tax rate %.1f%% does not match assumption %.1f%%",
				year, taxRate*100, a.TaxRate*100)
		}
	}
}

// validateReturnsAnalysis sanity-checks the exit economics against the
// assumptions.
func (m *Model) validateReturnsAnalysis() {
	r := m.Returns()

	wantExit := m.assumptions.ExitYear
	if wantExit > m.years {
		wantExit = m.years
	}
	if r.ExitYear != wantExit {
		m.warnf("returns exit year %d does not match assumption %d (model years %d)",
			r.ExitYear, m.assumptions.ExitYear, m.years)
	}

	if r.EquityInvested <= 0 {
		m.warnf("equity invested is %.2f; assumptions may be inconsistent", r.EquityInvested)
	}
}
