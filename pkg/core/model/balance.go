package model

import "lbo_valuation/pkg/core/statement"

// buildBalanceSheet projects the post-transaction balance sheet. Cash is a
// placeholder (existing cash in year 1) until the cash flow statement rolls
// it forward; totals and the equity plug are refreshed afterwards by
// updateBalanceSheetTotals.
func (m *Model) buildBalanceSheet() {
	a := m.assumptions

	m.balance.Set(statement.Cash, 1, round2(a.ExistingCash))

	// PP&E declines by cumulative depreciation; the year-N balance reflects
	// depreciation taken in years 1..N-1.
	cumulative := 0.0
	for year := 1; year <= m.years; year++ {
		m.balance.Set(statement.PPENet, year, round2(m.initialPPE-cumulative))
		cumulative += m.income.Get(statement.Depreciation, year)
	}

	for year := 1; year <= m.years; year++ {
		m.balance.Set(statement.Goodwill, year, round2(m.tx.Goodwill))
	}

	// Financing fees sit as an intangible and amortize straight-line.
	remainingFees := m.tx.FinancingFees
	annualFeeAmortization := m.tx.FinancingFees / float64(m.years)
	for year := 1; year <= m.years; year++ {
		if year > 1 {
			remainingFees -= annualFeeAmortization
		}
		m.balance.Set(statement.FinancingFeeIntangible, year, round2(remainingFees))
	}

	// Working capital scales with revenue.
	for year := 1; year <= m.years; year++ {
		revenue := m.income.Get(statement.Revenue, year)
		m.balance.Set(statement.AccountsReceivable, year,
			round2(revenue*a.DaysSalesOutstanding/365))
		m.balance.Set(statement.Inventory, year,
			round2(revenue*a.COGSPctOfRevenue*a.DaysInventoryOutstanding/365))
		ap := round2(revenue * a.COGSPctOfRevenue * a.DaysPayableOutstanding / 365)
		m.balance.Set(statement.AccountsPayable, year, ap)
		m.balance.Set(statement.TotalCurrentLiabilities, year, ap)
	}

	for year := 1; year <= m.years; year++ {
		m.totalDebtOnBalanceSheet(year)
		m.balance.Set(statement.TotalLiabilities, year, round2(
			m.balance.Get(statement.TotalCurrentLiabilities, year)+
				m.balance.Get(statement.TotalDebt, year)))
	}
}

// updateBalanceSheetTotals refreshes current assets, total assets, and the
// equity plug after cash or debt changes. Equity is always the plug:
// Total Assets - Total Liabilities.
func (m *Model) updateBalanceSheetTotals(year int) {
	cash := m.balance.Get(statement.Cash, year)
	ar := m.balance.Get(statement.AccountsReceivable, year)
	inv := m.balance.Get(statement.Inventory, year)
	m.balance.Set(statement.TotalCurrentAssets, year, round2(cash+ar+inv))

	totalAssets := round2(
		m.balance.Get(statement.TotalCurrentAssets, year) +
			m.balance.Get(statement.PPENet, year) +
			m.balance.Get(statement.Goodwill, year) +
			m.balance.Get(statement.FinancingFeeIntangible, year))
	m.balance.Set(statement.TotalAssets, year, totalAssets)

	totalLiab := m.balance.Get(statement.TotalLiabilities, year)
	equity := round2(totalAssets - totalLiab)
	m.balance.Set(statement.ShareholdersEquity, year, equity)
	m.balance.Set(statement.TotalLiabilitiesEquity, year, round2(totalLiab+equity))
}
