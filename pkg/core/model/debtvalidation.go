package model

import (
	"fmt"
	"math"

	"lbo_valuation/pkg/core/assumption"
	"lbo_valuation/pkg/core/statement"
	"lbo_valuation/pkg/core/validate"
)

// DebtScenarios classifies the repayment activity observed in the schedule,
// for audit tooling.
type DebtScenarios struct {
	Amortizing     []string `json:"amortizing"`
	Bullet         []string `json:"bullet"`
	CashFlowSweep  []string `json:"cash_flow_sweep"`
	MixedStructure []string `json:"mixed_structure"`
}

// DebtScheduleValidation is the audit result for the debt schedule: hard
// invariant violations in Errors, softer schedule-compliance notes in
// Warnings, and observed repayment patterns in Scenarios.
type DebtScheduleValidation struct {
	Errors    []string      `json:"errors"`
	Warnings  []string      `json:"warnings"`
	Scenarios DebtScenarios `json:"scenarios"`
}

// DebtScheduleValidation audits the built schedule:
//  1. Balance equation (Beginning - Principal = Ending)
//  2. Principal never exceeds beginning balance
//  3. Ending balances are non-negative
//  4. Interest = Beginning x Rate
//  5. Balance continuity (Year N ending = Year N+1 beginning)
//  6. Schedule compliance per amortization kind
//  7. Balance sheet Total Debt matches the sum of tranches
func (m *Model) DebtScheduleValidation() *DebtScheduleValidation {
	result := &DebtScheduleValidation{}
	const tolerance = cashFlowTolerance

	for i, sched := range m.debt.Tranches {
		tranche := sched.Tranche

		for idx := 0; idx < m.years; idx++ {
			year := idx + 1
			beg := sched.Beginning[idx]
			principal := sched.Principal[idx]
			interest := sched.Interest[idx]
			end := sched.Ending[idx]

			check := validate.CheckDebtBalanceEquation(
				beg, principal, end, interest, tranche.InterestRate, tolerance)
			if !check.BalanceOK {
				result.Errors = append(result.Errors, fmt.Sprintf(
					"%s year %d: beginning %.2f - principal %.2f != ending %.2f",
					tranche.Name, year, beg, principal, end))
			}
			if !check.InterestOK {
				result.Errors = append(result.Errors, fmt.Sprintf(
					"%s year %d: interest %.2f != beginning balance x rate (%.2f)",
					tranche.Name, year, interest, check.ComputedInterest))
			}
			if principal > beg+tolerance {
				result.Errors = append(result.Errors, fmt.Sprintf(
					"%s year %d: principal paid %.2f exceeds beginning balance %.2f",
					tranche.Name, year, principal, beg))
			}
			if end < -tolerance {
				result.Errors = append(result.Errors, fmt.Sprintf(
					"%s year %d: ending balance %.2f is negative", tranche.Name, year, end))
			}
			if idx < m.years-1 && math.Abs(end-sched.Beginning[idx+1]) > tolerance {
				result.Errors = append(result.Errors, fmt.Sprintf(
					"%s: year %d ending %.2f != year %d beginning %.2f",
					tranche.Name, year, end, year+1, sched.Beginning[idx+1]))
			}

			switch tranche.Kind {
			case assumption.AmortizationAmortizing:
				m.auditAmortizingYear(result, sched, idx)
			case assumption.AmortizationBullet:
				m.auditBulletYear(result, sched, idx)
			}
		}

		finalEnding := sched.Ending[m.years-1]
		if finalEnding > tolerance*100 {
			result.Warnings = append(result.Warnings, fmt.Sprintf(
				"%s: final year ending balance %.2f is not zero; debt may not be fully repaid",
				tranche.Name, finalEnding))
		}

		m.trackScenarios(result, i, sched)
	}

	for idx := 0; idx < m.years; idx++ {
		fromSchedule := m.debt.totalEnding(idx)
		fromBalanceSheet := m.balance.Get(statement.TotalDebt, idx+1)
		if math.Abs(fromSchedule-fromBalanceSheet) > tolerance {
			result.Errors = append(result.Errors, fmt.Sprintf(
				"year %d: total debt mismatch, sum of tranches %.2f != balance sheet %.2f",
				idx+1, fromSchedule, fromBalanceSheet))
		}
	}

	m.identifyMixedStructure(result)
	return result
}

// auditAmortizingYear checks one amortizing tranche-year: principal at or
// above the straight-line installment (excess is sweep), and zero balance
// once the amortization window closes.
func (m *Model) auditAmortizingYear(result *DebtScheduleValidation, sched *TrancheSchedule, idx int) {
	tranche := sched.Tranche
	year := idx + 1
	principal := sched.Principal[idx]
	expected := tranche.Amount / float64(tranche.Periods)

	if idx < tranche.Periods {
		if math.Abs(principal-expected) > cashFlowTolerance*10 {
			if principal < expected {
				result.Warnings = append(result.Warnings, fmt.Sprintf(
					"%s year %d: principal %.2f below scheduled amortization %.2f",
					tranche.Name, year, principal, expected))
			} else {
				result.Scenarios.CashFlowSweep = append(result.Scenarios.CashFlowSweep, fmt.Sprintf(
					"%s year %d: principal includes sweep (%.2f vs scheduled %.2f)",
					tranche.Name, year, principal, expected))
			}
		}
	} else if sched.Ending[idx] > cashFlowTolerance {
		result.Warnings = append(result.Warnings, fmt.Sprintf(
			"%s year %d: should be fully amortized after %d periods, ending balance is %.2f",
			tranche.Name, year, tranche.Periods, sched.Ending[idx]))
	}
}

// auditBulletYear checks one bullet tranche-year: full repayment at
// maturity, and any earlier principal must be sweep activity.
func (m *Model) auditBulletYear(result *DebtScheduleValidation, sched *TrancheSchedule, idx int) {
	tranche := sched.Tranche
	year := idx + 1
	principal := sched.Principal[idx]

	if year == tranche.MaturityYear {
		if math.Abs(principal-sched.Beginning[idx]) > cashFlowTolerance {
			result.Errors = append(result.Errors, fmt.Sprintf(
				"%s year %d: bullet maturity should repay the full balance %.2f but paid %.2f",
				tranche.Name, year, sched.Beginning[idx], principal))
		}
		result.Scenarios.Bullet = append(result.Scenarios.Bullet, fmt.Sprintf(
			"%s year %d: bullet payment of %.2f", tranche.Name, year, principal))
	} else if principal > cashFlowTolerance {
		result.Scenarios.CashFlowSweep = append(result.Scenarios.CashFlowSweep, fmt.Sprintf(
			"%s year %d: bullet debt paid early via sweep (%.2f)",
			tranche.Name, year, principal))
	}
}

// trackScenarios records the tranche's kind and its total sweep activity,
// measured against the retained pre-sweep schedule.
func (m *Model) trackScenarios(result *DebtScheduleValidation, trancheIdx int, sched *TrancheSchedule) {
	tranche := sched.Tranche
	switch tranche.Kind {
	case assumption.AmortizationAmortizing:
		result.Scenarios.Amortizing = append(result.Scenarios.Amortizing, tranche.Name)
	case assumption.AmortizationBullet:
		result.Scenarios.Bullet = append(result.Scenarios.Bullet, tranche.Name)
	}

	if m.scheduledDebt == nil {
		return
	}
	totalSweep := 0.0
	for idx := 0; idx < m.years; idx++ {
		scheduled := m.scheduledDebt.Tranches[trancheIdx].Principal[idx]
		totalSweep += maxF(0, sched.Principal[idx]-scheduled)
	}
	if totalSweep > cashFlowTolerance {
		result.Scenarios.CashFlowSweep = append(result.Scenarios.CashFlowSweep, fmt.Sprintf(
			"%s: total sweep payments of %.2f", tranche.Name, totalSweep))
	}
}

func (m *Model) identifyMixedStructure(result *DebtScheduleValidation) {
	amortizing, bullet := 0, 0
	for _, t := range m.tx.Tranches {
		switch t.Kind {
		case assumption.AmortizationAmortizing:
			amortizing++
		case assumption.AmortizationBullet:
			bullet++
		}
	}
	if amortizing > 0 && bullet > 0 {
		result.Scenarios.MixedStructure = []string{fmt.Sprintf(
			"structure mixes %d amortizing and %d bullet instruments", amortizing, bullet)}
	}
}
