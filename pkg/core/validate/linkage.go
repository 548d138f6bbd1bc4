// Package validate provides financial validation utilities.
// This file implements cross-statement linkage validation: the projected
// statements must tie to each other the same way audited statements do.
package validate

import (
	"math"

	"lbo_valuation/pkg/core/statement"
)

// =============================================================================
// CROSS-STATEMENT LINKAGE VALIDATION
// =============================================================================

// LinkageReport contains all cross-statement validation results for a year.
type LinkageReport struct {
	Year         int               `json:"year"`
	ISToCF       *NetIncomeLinkage `json:"is_to_cf"` // IS → CF
	CFToBS       *CashLinkage      `json:"cf_to_bs"` // CF → BS
	AllPassed    bool              `json:"all_passed"`
	FailedChecks []string          `json:"failed_checks,omitempty"`
}

// NetIncomeLinkage validates: IS Net Income == CF Net Income.
type NetIncomeLinkage struct {
	ISNetIncome float64 `json:"is_net_income"`
	CFNetIncome float64 `json:"cf_net_income"`
	Difference  float64 `json:"difference"`
	IsLinked    bool    `json:"is_linked"`
	Tolerance   float64 `json:"tolerance"`
}

// CashLinkage validates: CF Ending Cash == BS Cash, and CF Net Change == BS
// cash year-over-year movement.
type CashLinkage struct {
	CFCashEnding   float64 `json:"cf_cash_ending"`
	BSCash         float64 `json:"bs_cash"`
	DifferenceCash float64 `json:"difference_cash"`

	CFNetChange  float64 `json:"cf_net_change"`
	BSCashChange float64 `json:"bs_cash_change"`
	DifferenceNC float64 `json:"difference_net_change"`

	IsLinked  bool    `json:"is_linked"`
	Tolerance float64 `json:"tolerance"`
}

// ValidateLinkages performs the cross-statement validations for one model
// year (1-based). For year 1 the cash movement check compares against the
// beginning cash on the cash flow statement instead of a prior-year balance
// sheet, since year 1 is the transaction year.
func ValidateLinkages(income, cashflow, balance *statement.Table, year int, tolerance float64) *LinkageReport {
	report := &LinkageReport{
		Year:      year,
		AllPassed: true,
	}

	// 1. IS → CF: Net Income linkage
	isNI := income.Get(statement.NetIncome, year)
	cfNI := cashflow.Get(statement.NetIncome, year)
	report.ISToCF = &NetIncomeLinkage{
		ISNetIncome: isNI,
		CFNetIncome: cfNI,
		Difference:  isNI - cfNI,
		IsLinked:    math.Abs(isNI-cfNI) <= tolerance,
		Tolerance:   tolerance,
	}
	if !report.ISToCF.IsLinked {
		report.AllPassed = false
		report.FailedChecks = append(report.FailedChecks, "IS Net Income → CF Net Income")
	}

	// 2. CF → BS: cash linkage
	cfEnding := cashflow.Get(statement.EndingCash, year)
	bsCash := balance.Get(statement.Cash, year)

	var priorCash float64
	if year == 1 {
		priorCash = cashflow.Get(statement.BeginningCash, 1)
	} else {
		priorCash = balance.Get(statement.Cash, year-1)
	}
	cfNetChange := cashflow.Get(statement.NetChangeInCash, year)
	bsChange := bsCash - priorCash

	link := &CashLinkage{
		CFCashEnding:   cfEnding,
		BSCash:         bsCash,
		DifferenceCash: cfEnding - bsCash,
		CFNetChange:    cfNetChange,
		BSCashChange:   bsChange,
		DifferenceNC:   cfNetChange - bsChange,
		Tolerance:      tolerance,
	}
	link.IsLinked = math.Abs(link.DifferenceCash) <= tolerance &&
		math.Abs(link.DifferenceNC) <= tolerance
	report.CFToBS = link
	if !link.IsLinked {
		report.AllPassed = false
		report.FailedChecks = append(report.FailedChecks, "CF Ending Cash → BS Cash")
	}

	return report
}
