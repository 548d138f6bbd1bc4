// Package validate provides reusable financial validation utilities.
// These functions are called from the model reconciliation pass, API
// handlers, and tests to verify statement integrity and calculate derived
// metrics.
package validate

import "math"

// =============================================================================
// BALANCE SHEET
// =============================================================================

// BalanceCheck verifies Assets = Liabilities + Equity.
type BalanceCheck struct {
	TotalAssets      float64
	TotalLiabilities float64
	TotalEquity      float64
	ComputedAssets   float64 // L + E
	Difference       float64
	IsBalanced       bool
	Tolerance        float64
}

// CheckBalanceEquation validates A = L + E within tolerance.
func CheckBalanceEquation(assets, liabilities, equity, tolerance float64) *BalanceCheck {
	computed := liabilities + equity
	diff := assets - computed

	return &BalanceCheck{
		TotalAssets:      assets,
		TotalLiabilities: liabilities,
		TotalEquity:      equity,
		ComputedAssets:   computed,
		Difference:       diff,
		IsBalanced:       math.Abs(diff) <= tolerance,
		Tolerance:        tolerance,
	}
}

// =============================================================================
// CASH FLOW
// =============================================================================

// CashFlowCheck verifies Beginning + Net Change = Ending.
type CashFlowCheck struct {
	Beginning      float64
	NetChange      float64
	ComputedEnding float64
	ReportedEnding float64
	Difference     float64
	IsBalanced     bool
	Tolerance      float64
}

// CheckCashFlowEquation validates Beginning + Net Change = Ending.
func CheckCashFlowEquation(beginning, netChange, reportedEnding, tolerance float64) *CashFlowCheck {
	computed := beginning + netChange
	diff := reportedEnding - computed

	return &CashFlowCheck{
		Beginning:      beginning,
		NetChange:      netChange,
		ComputedEnding: computed,
		ReportedEnding: reportedEnding,
		Difference:     diff,
		IsBalanced:     math.Abs(diff) <= tolerance,
		Tolerance:      tolerance,
	}
}

// ContinuityCheck verifies year N ending cash equals year N+1 beginning cash.
type ContinuityCheck struct {
	Ending        float64
	NextBeginning float64
	Difference    float64
	IsContinuous  bool
	Tolerance     float64
}

// CheckCashContinuity validates the cash chain between adjacent years.
func CheckCashContinuity(ending, nextBeginning, tolerance float64) *ContinuityCheck {
	diff := ending - nextBeginning
	return &ContinuityCheck{
		Ending:        ending,
		NextBeginning: nextBeginning,
		Difference:    diff,
		IsContinuous:  math.Abs(diff) <= tolerance,
		Tolerance:     tolerance,
	}
}

// =============================================================================
// DEBT SCHEDULE
// =============================================================================

// DebtBalanceCheck verifies Beginning - Principal = Ending for one tranche
// year, and that interest was charged on the beginning balance.
type DebtBalanceCheck struct {
	Beginning        float64
	Principal        float64
	Ending           float64
	ComputedEnding   float64
	Interest         float64
	ComputedInterest float64
	BalanceOK        bool
	InterestOK       bool
	Tolerance        float64
}

// CheckDebtBalanceEquation validates one tranche-year of the debt schedule.
func CheckDebtBalanceEquation(beginning, principal, ending, interest, rate, tolerance float64) *DebtBalanceCheck {
	computedEnding := beginning - principal
	computedInterest := beginning * rate

	return &DebtBalanceCheck{
		Beginning:        beginning,
		Principal:        principal,
		Ending:           ending,
		ComputedEnding:   computedEnding,
		Interest:         interest,
		ComputedInterest: computedInterest,
		BalanceOK:        math.Abs(ending-computedEnding) <= tolerance,
		InterestOK:       math.Abs(interest-computedInterest) <= tolerance,
		Tolerance:        tolerance,
	}
}

// =============================================================================
// GROWTH AND RETURN METRICS
// =============================================================================

// CalculateYoY calculates year-over-year change between two values.
// Returns percentage change: (current - prior) / prior * 100
func CalculateYoY(current, prior float64) float64 {
	if prior == 0 {
		if current == 0 {
			return 0
		}
		return math.Inf(1)
	}
	return (current - prior) / prior * 100
}

// CalculateCAGR calculates compound annual growth rate.
// CAGR = ((EndValue / StartValue) ^ (1/years)) - 1
func CalculateCAGR(startValue, endValue float64, years int) float64 {
	if startValue <= 0 || years <= 0 {
		return 0
	}
	return (math.Pow(endValue/startValue, 1.0/float64(years)) - 1) * 100
}

// CalculateFCF computes Free Cash Flow = CFO + CapEx (CapEx is typically negative).
func CalculateFCF(cfo, capex float64) float64 {
	return cfo + capex
}

// CalculateMOIC computes the multiple on invested capital. Returns 0 when
// nothing was invested.
func CalculateMOIC(exitEquity, equityInvested float64) float64 {
	if equityInvested <= 0 {
		return 0
	}
	return exitEquity / equityInvested
}
