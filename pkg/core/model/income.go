package model

import (
	"lbo_valuation/pkg/core/assumption"
	"lbo_valuation/pkg/core/statement"
)

// buildIncomeStatement projects revenue through EBIT. Interest expense is
// zero until the debt schedule exists; updateIncomeFromEBIT fills in the
// interest-dependent lines.
func (m *Model) buildIncomeStatement() {
	a := m.assumptions

	prevRevenue := m.startingRevenue
	for year := 1; year <= m.years; year++ {
		revenue := prevRevenue
		growth := 0.0
		if year > 1 {
			idx := year - 2
			if idx >= len(a.RevenueGrowthRates) {
				idx = len(a.RevenueGrowthRates) - 1
			}
			growth = a.RevenueGrowthRates[idx]
			revenue = prevRevenue * (1 + growth)
		}
		m.income.Set(statement.Revenue, year, round2(revenue))
		m.income.Set(statement.RevenueGrowth, year, round2(growth))
		prevRevenue = revenue
	}

	for year := 1; year <= m.years; year++ {
		rev := m.income.Get(statement.Revenue, year)
		cogs := round2(rev * a.COGSPctOfRevenue)
		sga := round2(rev * a.SGAPctOfRevenue)
		gp := round2(rev - cogs)
		m.income.Set(statement.COGS, year, cogs)
		m.income.Set(statement.GrossProfit, year, gp)
		m.income.Set(statement.SGA, year, sga)
		m.income.Set(statement.EBITDA, year, round2(gp-sga))
	}

	// Straight-line D&A. Depreciation keys off the opening PP&E base;
	// amortization runs the financing fees off over the projection. When no
	// PP&E seed exists both fall back to revenue-based estimates.
	var depreciation, amortization float64
	if a.InitialPPE > 0 {
		depreciation = a.InitialPPE * a.DepreciationPctPPE
		amortization = m.tx.FinancingFees / float64(m.years)
	} else {
		depreciation = m.startingRevenue * assumption.DefaultDepreciationToRevenueRatio
		if m.tx.FinancingFees > 0 {
			amortization = m.tx.FinancingFees / float64(m.years)
		} else {
			amortization = m.startingRevenue * assumption.DefaultAmortizationToRevenueRatio
		}
	}

	for year := 1; year <= m.years; year++ {
		m.income.Set(statement.Depreciation, year, round2(depreciation))
		m.income.Set(statement.Amortization, year, round2(amortization))
		ebitda := m.income.Get(statement.EBITDA, year)
		m.income.Set(statement.EBIT, year, round2(ebitda-round2(depreciation)-round2(amortization)))
	}
}

// updateIncomeFromEBIT recomputes the interest-dependent tail of the income
// statement from the current debt schedule. Tax is symmetric: a pretax loss
// produces a tax benefit at the statutory rate.
func (m *Model) updateIncomeFromEBIT(year int) {
	interest := round2(m.debt.totalInterest(year - 1))
	m.income.Set(statement.InterestExpense, year, interest)

	ebit := m.income.Get(statement.EBIT, year)
	pretax := round2(ebit - interest)
	tax := round2(pretax * m.assumptions.TaxRate)
	m.income.Set(statement.PretaxIncome, year, pretax)
	m.income.Set(statement.IncomeTax, year, tax)
	m.income.Set(statement.NetIncome, year, round2(pretax-tax))
}
