package model

import (
	"fmt"
	"math"

	"lbo_valuation/pkg/core/assumption"
	"lbo_valuation/pkg/core/statement"
)

// applyCashFlowSweep uses excess generated cash to prepay debt in priority
// order. Paying debt down lowers interest, which raises net income and frees
// more cash, so the sweep runs as a bounded fixed-point loop: passes repeat
// until the total swept in a pass falls inside the cash tolerance, then a
// deterministic correction pass re-establishes the tranche invariants.
//
// Sweep cash is limited to what the business generates: CFO - CapEx -
// scheduled debt service - the minimum cash floor, plus any beginning cash
// already above the floor.
func (m *Model) applyCashFlowSweep() {
	original := m.debt.snapshot()
	m.scheduledDebt = original

	iterations := 0
	for iter := 0; iter < maxSweepIterations; iter++ {
		iterations = iter + 1
		sweptThisPass := 0.0

		for year := 1; year <= m.years; year++ {
			available := m.availableCashForSweep(year, original)
			if available <= cashFlowTolerance {
				continue
			}

			remaining := available
			isExitYear := year == m.years
			for _, sched := range m.debt.Tranches { // priority order
				if remaining <= cashFlowTolerance {
					break
				}
				actual := m.sweepTranche(sched, year, remaining, isExitYear)
				remaining -= actual
				sweptThisPass += actual
			}

			// Debt changed; refresh the liability side and re-plug equity.
			m.totalDebtOnBalanceSheet(year)
			totalLiab := round2(
				m.balance.Get(statement.TotalCurrentLiabilities, year) +
					m.balance.Get(statement.TotalDebt, year))
			m.balance.Set(statement.TotalLiabilities, year, totalLiab)
			equity := round2(m.balance.Get(statement.TotalAssets, year) - totalLiab)
			m.balance.Set(statement.ShareholdersEquity, year, equity)
			m.balance.Set(statement.TotalLiabilitiesEquity, year, round2(totalLiab+equity))
		}

		if sweptThisPass < cashFlowTolerance {
			break
		}

		// Cascade: lower balances mean lower interest everywhere, so
		// rebuild every year's statements before the next pass.
		for year := 1; year <= m.years; year++ {
			m.recalculateAfterSweep(year, original, iter)
		}
	}

	m.sweepIterations = iterations
	m.finalDebtCorrection()

	// The correction pass may have moved balances; re-tie the liability side
	// and the equity plug.
	for year := 1; year <= m.years; year++ {
		m.totalDebtOnBalanceSheet(year)
		m.balance.Set(statement.TotalLiabilities, year, round2(
			m.balance.Get(statement.TotalCurrentLiabilities, year)+
				m.balance.Get(statement.TotalDebt, year)))
		m.updateBalanceSheetTotals(year)
	}

	fmt.Printf("[SWEEP] converged after %d iteration(s)\n", iterations)
}

// availableCashForSweep computes how much generated cash year can put
// toward voluntary paydown. Required debt service is measured against the
// pre-sweep schedule so sweeping never cannibalizes scheduled payments.
func (m *Model) availableCashForSweep(year int, original *DebtSchedule) float64 {
	a := m.assumptions
	idx := year - 1

	cfo := m.cashflow.Get(statement.CashFromOperations, year)
	capex := math.Abs(m.cashflow.Get(statement.CashFromInvesting, year))
	requiredService := original.totalPrincipal(idx) + original.totalInterest(idx)

	available := cfo - capex - requiredService - m.minCash

	beginningCash := a.ExistingCash
	if year > 1 {
		beginningCash = m.cashflow.Get(statement.EndingCash, year-1)
	}
	available += maxF(0, beginningCash-m.minCash)

	if a.TargetExitDebt > 0.01 {
		if m.debt.totalEnding(idx)-a.TargetExitDebt <= 0.01 {
			available = 0
		}
	}
	if a.MaxDebtPaydownPerYear > 0.01 {
		available = minF(available, a.MaxDebtPaydownPerYear)
	}
	return maxF(0, available)
}

// sweepTranche applies up to amount of sweep cash to one tranche and
// returns what was actually swept. Bullet debt only participates at the end
// of the projection; before that its principal is untouchable.
func (m *Model) sweepTranche(sched *TrancheSchedule, year int, amount float64, isExitYear bool) float64 {
	idx := year - 1
	tranche := sched.Tranche

	if tranche.Kind == assumption.AmortizationBullet && !isExitYear {
		return 0
	}

	sweepable := maxF(0, sched.Beginning[idx]-sched.Principal[idx])
	if sweepable <= cashFlowTolerance || amount <= cashFlowTolerance {
		return 0
	}

	actual := minF(amount, sweepable)
	actual = m.capSweepForExitTarget(actual, idx)

	// The cash floor binds before anything is booked so the schedule never
	// records principal the cash flow statement did not fund.
	headroom := round2(m.cashflow.Get(statement.EndingCash, year) - m.minCash)
	actual = minF(actual, maxF(0, headroom))
	actual = round2(actual)

	if sched.Principal[idx]+actual > sched.Beginning[idx] {
		actual = round2(maxF(0, sched.Beginning[idx]-sched.Principal[idx]))
	}
	if actual <= cashFlowTolerance {
		return 0
	}

	m.applySweepToSchedule(sched, idx, actual)
	m.applySweepToCashFlow(year, actual)
	m.updateBalanceSheetTotals(year)
	return actual
}

// capSweepForExitTarget stops the sweep from paying total debt below the
// target exit level.
func (m *Model) capSweepForExitTarget(actual float64, idx int) float64 {
	target := m.assumptions.TargetExitDebt
	if target <= 0.01 {
		return actual
	}
	currentTotal := m.debt.totalEnding(idx)
	if currentTotal-actual < target {
		actual = maxF(0, minF(actual, currentTotal-target))
	}
	return actual
}

// applySweepToSchedule books the sweep against the tranche: principal up,
// ending balance down, future beginnings pushed forward, interest restated
// off the beginning balance.
func (m *Model) applySweepToSchedule(sched *TrancheSchedule, idx int, actual float64) {
	newPrincipal := round2(sched.Principal[idx] + actual)
	newPrincipal = minF(newPrincipal, sched.Beginning[idx])
	sched.Principal[idx] = newPrincipal

	newEnding := maxF(0, round2(sched.Beginning[idx]-newPrincipal))
	sched.Ending[idx] = newEnding

	for f := idx + 1; f < m.years; f++ {
		if f == idx+1 {
			sched.Beginning[f] = newEnding
		} else {
			sched.Beginning[f] = sched.Ending[f-1]
		}
	}

	sched.Interest[idx] = round2(sched.Beginning[idx] * sched.Tranche.InterestRate)
}

// applySweepToCashFlow pushes the sweep through the cash flow statement.
// The amount was already clamped against the cash floor in sweepTranche, so
// ending cash lands at or above the floor.
func (m *Model) applySweepToCashFlow(year int, actual float64) {
	m.cashflow.Set(statement.DebtRepayment, year,
		round2(m.cashflow.Get(statement.DebtRepayment, year)-actual))
	m.cashflow.Set(statement.CashFromFinancing, year,
		round2(m.cashflow.Get(statement.CashFromFinancing, year)-actual))
	m.cashflow.Set(statement.NetChangeInCash, year,
		round2(m.cashflow.Get(statement.NetChangeInCash, year)-actual))

	ending := round2(m.cashflow.Get(statement.EndingCash, year) - actual)
	m.cashflow.Set(statement.EndingCash, year, ending)
	m.balance.Set(statement.Cash, year, ending)
	if year < m.years {
		m.cashflow.Set(statement.BeginningCash, year+1, ending)
	}
}

// recalculateAfterSweep rebuilds one year's statements off the mutated debt
// schedule: scheduled principal is re-derived for tranches the sweep did not
// touch, interest restates off beginning balances, and the income statement
// tail, CFO, and cash roll-forward follow.
func (m *Model) recalculateAfterSweep(year int, original *DebtSchedule, iteration int) {
	a := m.assumptions
	idx := year - 1

	for i, sched := range m.debt.Tranches {
		tranche := sched.Tranche
		beg := sched.Beginning[idx]

		if beg <= 0.01 {
			// Fully repaid: no payments, no interest.
			sched.Principal[idx] = 0
			sched.Ending[idx] = 0
			sched.Interest[idx] = 0
			if idx < m.years-1 {
				sched.Beginning[idx+1] = 0
			}
			continue
		}

		sched.Interest[idx] = round2(beg * tranche.InterestRate)

		alreadySwept := sched.Principal[idx] - original.Tranches[i].Principal[idx]
		if alreadySwept <= 0.01 {
			scheduled := 0.0
			switch tranche.Kind {
			case assumption.AmortizationAmortizing:
				yearsAmortized := 0
				for j := 0; j < idx; j++ {
					if sched.Principal[j] > 0.01 {
						yearsAmortized++
					}
				}
				if yearsAmortized < tranche.Periods {
					scheduled = round2(tranche.Amount / float64(tranche.Periods))
					if a.TargetExitDebt > 0.01 {
						scheduled = m.capScheduledForExitTarget(i, year, scheduled, tranche.Periods)
					}
					scheduled = round2(minF(scheduled, beg))
				}
			case assumption.AmortizationBullet:
				if year == tranche.MaturityYear {
					scheduled = round2(beg)
				}
			}
			sched.Principal[idx] = round2(minF(scheduled, beg))
		}

		principal := sched.Principal[idx]
		if principal > beg {
			m.warnf("%s year %d: principal %.2f exceeds beginning balance %.2f, limiting",
				tranche.Name, year, principal, beg)
			principal = beg
		}
		sched.Principal[idx] = round2(principal)
		ending := maxF(0, round2(beg-principal))
		sched.Ending[idx] = ending
		if idx < m.years-1 {
			sched.Beginning[idx+1] = ending
		}
	}

	m.totalDebtOnBalanceSheet(year)
	m.updateIncomeFromEBIT(year)

	ni := m.income.Get(statement.NetIncome, year)
	m.cashflow.Set(statement.NetIncome, year, ni)

	da := m.cashflow.Get(statement.DepreciationAmortization, year)
	wc := m.cashflow.Get(statement.NetWorkingCapitalChange, year)
	cfo := round2(ni + da + wc)
	capex := m.cashflow.Get(statement.CashFromInvesting, year)
	if a.FCFConversionRate > 0.01 {
		ebitda := m.income.Get(statement.EBITDA, year)
		cfo = round2(ebitda*a.FCFConversionRate - capex)
	}
	m.cashflow.Set(statement.CashFromOperations, year, cfo)

	cff := m.cashflow.Get(statement.CashFromFinancing, year)
	netChange := round2(cfo + capex + cff)
	m.cashflow.Set(statement.NetChangeInCash, year, netChange)

	beginning := a.ExistingCash
	if year > 1 {
		beginning = m.cashflow.Get(statement.EndingCash, year-1)
	}
	ending := round2(beginning + netChange)
	// Only the first pass may re-apply the explicit floor; later passes must
	// see the true post-sweep cash or the loop would never converge.
	if a.MinCashBalance > 0 && iteration == 0 {
		ending = round2(maxF(ending, a.MinCashBalance))
	}
	m.cashflow.Set(statement.BeginningCash, year, round2(beginning))
	m.cashflow.Set(statement.EndingCash, year, ending)
	m.balance.Set(statement.Cash, year, ending)

	m.updateBalanceSheetTotals(year)
}

// finalDebtCorrection runs once after convergence and restores the hard
// tranche invariants for every year: principal never exceeds beginning
// balance, ending = beginning - principal (floored at zero), interest =
// beginning x rate, and balances chain across years.
func (m *Model) finalDebtCorrection() {
	for _, sched := range m.debt.Tranches {
		for idx := 0; idx < m.years; idx++ {
			beg := sched.Beginning[idx]
			principal := sched.Principal[idx]
			if principal > beg {
				m.warnf("final correction: %s year %d principal %.2f exceeds beginning balance %.2f",
					sched.Tranche.Name, idx+1, principal, beg)
				principal = beg
				sched.Principal[idx] = round2(principal)
			}
			ending := maxF(0, round2(beg-principal))
			sched.Ending[idx] = ending
			sched.Interest[idx] = round2(beg * sched.Tranche.InterestRate)
			if idx < m.years-1 {
				sched.Beginning[idx+1] = ending
			}
		}
	}
}
