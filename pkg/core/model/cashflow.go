package model

import "lbo_valuation/pkg/core/statement"

// buildCashFlow rolls cash forward year by year: CFO from the income
// statement and working capital, CapEx, then financing including the
// transaction flows in year 1.
func (m *Model) buildCashFlow() {
	beginning := m.assumptions.ExistingCash

	for year := 1; year <= m.years; year++ {
		cfo := m.operatingActivities(year)
		capex := m.investingActivities(year)
		cfo = m.adjustCFOForFCFTarget(year, cfo, capex)
		m.cashflow.Set(statement.CashFromOperations, year, cfo)

		repayment := m.debt.totalPrincipal(year - 1)
		m.cashflow.Set(statement.DebtRepayment, year, round2(-repayment))

		var cff float64
		if year == 1 {
			cff = m.financingActivitiesYear1(repayment)
		} else {
			cff = m.financingActivitiesFutureYear(year, repayment)
		}
		m.cashflow.Set(statement.CashFromFinancing, year, cff)

		beginning = m.rollCashBalance(year, beginning, cfo, capex, cff)
	}

	for year := 1; year <= m.years; year++ {
		m.updateBalanceSheetTotals(year)
	}
}

// operatingActivities computes CFO = net income + D&A + working capital
// changes, writing each component line.
func (m *Model) operatingActivities(year int) float64 {
	ni := m.income.Get(statement.NetIncome, year)
	m.cashflow.Set(statement.NetIncome, year, ni)

	da := m.income.Get(statement.Depreciation, year) + m.income.Get(statement.Amortization, year)
	m.cashflow.Set(statement.DepreciationAmortization, year, round2(da))

	wc := m.workingCapitalChanges(year)
	return round2(ni + da + wc)
}

// workingCapitalChanges books the year-over-year swings in AR, inventory,
// and AP. Year 1 compares against itself, so the transaction year carries no
// working capital change.
func (m *Model) workingCapitalChanges(year int) float64 {
	prev := year - 1
	if year == 1 {
		prev = 1
	}

	dAR := round2(-(m.balance.Get(statement.AccountsReceivable, year) - m.balance.Get(statement.AccountsReceivable, prev)))
	dInv := round2(-(m.balance.Get(statement.Inventory, year) - m.balance.Get(statement.Inventory, prev)))
	dAP := round2(m.balance.Get(statement.AccountsPayable, year) - m.balance.Get(statement.AccountsPayable, prev))

	m.cashflow.Set(statement.ChangeInAR, year, dAR)
	m.cashflow.Set(statement.ChangeInInventory, year, dInv)
	m.cashflow.Set(statement.ChangeInAP, year, dAP)

	net := round2(dAR + dInv + dAP)
	m.cashflow.Set(statement.NetWorkingCapitalChange, year, net)
	return net
}

func (m *Model) investingActivities(year int) float64 {
	revenue := m.income.Get(statement.Revenue, year)
	capex := round2(-revenue * m.assumptions.CapexPctOfRevenue)
	m.cashflow.Set(statement.CapitalExpenditures, year, capex)
	m.cashflow.Set(statement.CashFromInvesting, year, capex)
	return capex
}

// adjustCFOForFCFTarget overrides CFO when the scenario pins free cash flow
// to a share of EBITDA.
func (m *Model) adjustCFOForFCFTarget(year int, cfo, capex float64) float64 {
	if m.assumptions.FCFConversionRate > 0.01 {
		ebitda := m.income.Get(statement.EBITDA, year)
		cfo = round2(ebitda*m.assumptions.FCFConversionRate - capex)
	}
	return cfo
}

// financingActivitiesYear1 books the transaction flows: debt raised and
// equity in, purchase price and fees out, plus the first scheduled
// repayment.
func (m *Model) financingActivitiesYear1(repayment float64) float64 {
	issuance := round2(m.tx.TotalDebt)
	equity := round2(m.tx.EquityContribution)
	purchase := round2(-m.tx.EquityValue)
	existingDebt := round2(-m.assumptions.ExistingDebt)
	expenses := round2(-m.tx.TransactionExpenses)
	fees := round2(-m.tx.FinancingFees)

	m.cashflow.Set(statement.DebtIssuance, 1, issuance)
	m.cashflow.Set(statement.EquityContribution, 1, equity)
	m.cashflow.Set(statement.PurchasePrice, 1, purchase)
	m.cashflow.Set(statement.ExistingDebtRepayment, 1, existingDebt)
	m.cashflow.Set(statement.TransactionExpenses, 1, expenses)
	m.cashflow.Set(statement.FinancingFees, 1, fees)

	return round2(issuance + equity + purchase + existingDebt + expenses + fees - repayment)
}

func (m *Model) financingActivitiesFutureYear(year int, repayment float64) float64 {
	m.cashflow.Set(statement.DebtIssuance, year, 0)
	m.cashflow.Set(statement.EquityContribution, year, 0)
	m.cashflow.Set(statement.PurchasePrice, year, 0)
	m.cashflow.Set(statement.ExistingDebtRepayment, year, 0)
	m.cashflow.Set(statement.TransactionExpenses, year, 0)
	m.cashflow.Set(statement.FinancingFees, year, 0)
	return round2(-repayment)
}

// rollCashBalance closes the year: net change, ending cash (floored at the
// configured minimum when one is set), and the balance sheet cash line.
// Returns the next year's beginning cash.
func (m *Model) rollCashBalance(year int, beginning, cfo, capex, cff float64) float64 {
	netChange := round2(cfo + capex + cff)
	m.cashflow.Set(statement.NetChangeInCash, year, netChange)
	m.cashflow.Set(statement.BeginningCash, year, round2(beginning))

	ending := round2(beginning + netChange)
	if m.assumptions.MinCashBalance > 0 {
		ending = round2(maxF(ending, m.assumptions.MinCashBalance))
	}
	m.cashflow.Set(statement.EndingCash, year, ending)
	m.balance.Set(statement.Cash, year, ending)
	return ending
}
