package model

import (
	"lbo_valuation/pkg/core/assumption"
	"lbo_valuation/pkg/core/statement"
	"lbo_valuation/pkg/core/transaction"
)

// TrancheSchedule tracks one tranche's balances over the projection. All
// slices are indexed by year-1. Principal includes both scheduled repayment
// and swept repayment.
type TrancheSchedule struct {
	Tranche   transaction.DebtTranche
	Beginning []float64
	Interest  []float64
	Principal []float64
	Ending    []float64
}

// DebtSchedule is the full per-tranche schedule, ordered by priority
// (most senior first).
type DebtSchedule struct {
	Tranches []*TrancheSchedule
}

func (s *DebtSchedule) totalInterest(idx int) float64 {
	total := 0.0
	for _, t := range s.Tranches {
		total += t.Interest[idx]
	}
	return total
}

func (s *DebtSchedule) totalPrincipal(idx int) float64 {
	total := 0.0
	for _, t := range s.Tranches {
		total += t.Principal[idx]
	}
	return total
}

func (s *DebtSchedule) totalEnding(idx int) float64 {
	total := 0.0
	for _, t := range s.Tranches {
		total += t.Ending[idx]
	}
	return total
}

// snapshot deep-copies the schedule. The sweep keeps a pre-sweep snapshot so
// required debt service is always measured against the scheduled payments.
func (s *DebtSchedule) snapshot() *DebtSchedule {
	out := &DebtSchedule{Tranches: make([]*TrancheSchedule, len(s.Tranches))}
	for i, t := range s.Tranches {
		out.Tranches[i] = &TrancheSchedule{
			Tranche:   t.Tranche,
			Beginning: append([]float64(nil), t.Beginning...),
			Interest:  append([]float64(nil), t.Interest...),
			Principal: append([]float64(nil), t.Principal...),
			Ending:    append([]float64(nil), t.Ending...),
		}
	}
	return out
}

// ToMap exports the schedule as tranche name -> series map, the shape the
// JSON API serves.
func (s *DebtSchedule) ToMap() map[string]map[string][]float64 {
	out := make(map[string]map[string][]float64, len(s.Tranches))
	for _, t := range s.Tranches {
		out[t.Tranche.Name] = map[string][]float64{
			"beginning_balance": append([]float64(nil), t.Beginning...),
			"interest_paid":     append([]float64(nil), t.Interest...),
			"principal_paid":    append([]float64(nil), t.Principal...),
			"ending_balance":    append([]float64(nil), t.Ending...),
		}
	}
	return out
}

// buildDebtSchedule lays out the scheduled (pre-sweep) repayments and fills
// the interest-dependent income statement lines.
func (m *Model) buildDebtSchedule() {
	a := m.assumptions
	m.debt = &DebtSchedule{Tranches: make([]*TrancheSchedule, len(m.tx.Tranches))}

	for i, tranche := range m.tx.Tranches {
		sched := &TrancheSchedule{
			Tranche:   tranche,
			Beginning: make([]float64, m.years),
			Interest:  make([]float64, m.years),
			Principal: make([]float64, m.years),
			Ending:    make([]float64, m.years),
		}
		m.debt.Tranches[i] = sched

		balance := tranche.Amount
		for year := 1; year <= m.years; year++ {
			idx := year - 1
			sched.Beginning[idx] = balance
			sched.Interest[idx] = balance * tranche.InterestRate

			principal := 0.0
			switch tranche.Kind {
			case assumption.AmortizationAmortizing:
				scheduled := round2(tranche.Amount / float64(tranche.Periods))
				if a.TargetExitDebt > 0.01 {
					scheduled = m.capScheduledForExitTarget(i, year, scheduled, tranche.Periods)
				}
				principal = round2(minF(scheduled, balance))
			case assumption.AmortizationBullet:
				if year == tranche.MaturityYear {
					principal = round2(balance)
				}
				// sweep tranches have no scheduled principal
			}

			balance = round2(balance - principal)
			sched.Principal[idx] = principal
			sched.Ending[idx] = balance
		}
	}

	for year := 1; year <= m.years; year++ {
		m.updateIncomeFromEBIT(year)
	}
}

// capScheduledForExitTarget limits scheduled amortization so the structure
// does not pay below the target exit debt level. The remaining paydown is
// spread over the tranche's remaining amortization years; once total debt
// sits at the target, scheduled principal stops entirely. The sweep's
// recalculation pass applies the same cap, so a structure swept down to the
// target holds there instead of amortizing through it.
func (m *Model) capScheduledForExitTarget(trancheIdx, year int, scheduled float64, periods int) float64 {
	idx := year - 1

	// Total debt at this point: tranches with a laid-out schedule contribute
	// their beginning balance for this year, tranches not yet built (still
	// nil during the initial layout) sit at face value.
	currentTotal := 0.0
	for j, t := range m.debt.Tranches {
		if t != nil && idx < len(t.Beginning) {
			currentTotal += t.Beginning[idx]
		} else {
			currentTotal += m.tx.Tranches[j].Amount
		}
	}

	remaining := maxF(0, currentTotal-m.assumptions.TargetExitDebt)
	yearsRemaining := periods - (year - 1)
	if yearsRemaining > 0 {
		return minF(scheduled, remaining/float64(yearsRemaining))
	}
	return minF(scheduled, remaining)
}

func minF(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func maxF(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

// totalDebtOnBalanceSheet refreshes the Total Debt line from the schedule.
func (m *Model) totalDebtOnBalanceSheet(year int) {
	m.balance.Set(statement.TotalDebt, year, round2(m.debt.totalEnding(year-1)))
}
