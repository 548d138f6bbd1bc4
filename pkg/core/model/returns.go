package model

import (
	"math"

	"lbo_valuation/pkg/core/statement"
	"lbo_valuation/pkg/core/validate"
)

const (
	maxIRRIterations = 100
	irrEpsilon       = 1e-6
	maxIRRRate       = 10.0
	minIRRRate       = -0.99
)

// Returns holds the exit economics of the deal. IRR and MOIC assume equity
// in at time zero and a single exit distribution, with no interim dividends.
type Returns struct {
	ExitYear        int     `json:"exit_year"`
	ExitEBITDA      float64 `json:"exit_ebitda"`
	ExitEV          float64 `json:"exit_ev"`
	ExitDebt        float64 `json:"exit_debt"`
	ExitCash        float64 `json:"exit_cash"`
	ExitEquityValue float64 `json:"exit_equity_value"`
	EquityInvested  float64 `json:"equity_invested"`
	MOIC            float64 `json:"moic"`
	IRR             float64 `json:"irr"` // decimal, e.g. 0.3846 for 38.46%
}

// Returns computes the returns analysis from the built statements: exit EV
// off the projected EBITDA at the exit multiple, net of exit debt and cash.
func (m *Model) Returns() *Returns {
	exitYear := m.assumptions.ExitYear
	if exitYear > m.years {
		exitYear = m.years
	}

	exitEBITDA := m.income.Get(statement.EBITDA, exitYear)
	exitEV := exitEBITDA * m.assumptions.ExitMultiple
	exitDebt := m.balance.Get(statement.TotalDebt, exitYear)
	exitCash := m.balance.Get(statement.Cash, exitYear)
	exitEquity := exitEV - exitDebt + exitCash

	equityInvested := m.tx.EquityContribution
	if equityInvested <= 0 {
		equityInvested = m.tx.EquityValue - m.tx.TotalDebt
	}

	irr := 0.0
	if equityInvested > 0 {
		flows := make([]float64, exitYear+1)
		flows[0] = -equityInvested
		flows[exitYear] = exitEquity
		irr = internalRateOfReturn(flows, 0.1)
	}

	return &Returns{
		ExitYear:        exitYear,
		ExitEBITDA:      exitEBITDA,
		ExitEV:          exitEV,
		ExitDebt:        exitDebt,
		ExitCash:        exitCash,
		ExitEquityValue: exitEquity,
		EquityInvested:  equityInvested,
		MOIC:            validate.CalculateMOIC(exitEquity, equityInvested),
		IRR:             irr,
	}
}

// internalRateOfReturn solves NPV(rate) = 0 with Newton-Raphson. The rate is
// clamped to (-99%, 1000%) each step; if the derivative vanishes or the
// iteration budget runs out, the last iterate is returned.
func internalRateOfReturn(cashFlows []float64, guess float64) float64 {
	if len(cashFlows) < 2 {
		return 0
	}

	npv := func(rate float64) float64 {
		total := 0.0
		for i, cf := range cashFlows {
			total += cf / math.Pow(1+rate, float64(i))
		}
		return total
	}
	derivative := func(rate float64) float64 {
		total := 0.0
		for i, cf := range cashFlows {
			total += -float64(i) * cf / math.Pow(1+rate, float64(i+1))
		}
		return total
	}

	rate := guess
	for i := 0; i < maxIRRIterations; i++ {
		value := npv(rate)
		if math.Abs(value) < irrEpsilon {
			return rate
		}
		slope := derivative(rate)
		if math.Abs(slope) < 1e-10 {
			break
		}
		rate -= value / slope
		rate = math.Max(rate, minIRRRate)
		rate = math.Min(rate, maxIRRRate)
	}
	return rate
}
