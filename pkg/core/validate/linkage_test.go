package validate

import (
	"testing"

	"lbo_valuation/pkg/core/statement"
)

// buildLinkedStatements assembles a two-year set of statements that tie.
func buildLinkedStatements() (*statement.Table, *statement.Table, *statement.Table) {
	income := statement.NewIncomeStatement(2)
	cashflow := statement.NewCashFlow(2)
	balance := statement.NewBalanceSheet(2)

	income.Set(statement.NetIncome, 1, 3000)
	income.Set(statement.NetIncome, 2, 3500)

	cashflow.Set(statement.NetIncome, 1, 3000)
	cashflow.Set(statement.NetIncome, 2, 3500)

	cashflow.Set(statement.BeginningCash, 1, 1000)
	cashflow.Set(statement.NetChangeInCash, 1, 2000)
	cashflow.Set(statement.EndingCash, 1, 3000)
	cashflow.Set(statement.BeginningCash, 2, 3000)
	cashflow.Set(statement.NetChangeInCash, 2, 1500)
	cashflow.Set(statement.EndingCash, 2, 4500)

	balance.Set(statement.Cash, 1, 3000)
	balance.Set(statement.Cash, 2, 4500)

	return income, cashflow, balance
}

func TestValidateLinkagesPass(t *testing.T) {
	income, cashflow, balance := buildLinkedStatements()

	for year := 1; year <= 2; year++ {
		report := ValidateLinkages(income, cashflow, balance, year, 0.01)
		if !report.AllPassed {
			t.Errorf("year %d: expected linked statements, failed checks: %v",
				year, report.FailedChecks)
		}
	}
}

func TestValidateLinkagesNetIncomeBreak(t *testing.T) {
	income, cashflow, balance := buildLinkedStatements()
	cashflow.Set(statement.NetIncome, 2, 3400) // $100 off the income statement

	report := ValidateLinkages(income, cashflow, balance, 2, 0.01)
	if report.AllPassed {
		t.Fatal("expected a net income linkage failure")
	}
	if report.ISToCF.IsLinked {
		t.Error("IS→CF linkage should be broken")
	}
	if report.CFToBS.IsLinked != true {
		t.Error("cash linkage should still hold")
	}
}

func TestValidateLinkagesCashBreak(t *testing.T) {
	income, cashflow, balance := buildLinkedStatements()
	balance.Set(statement.Cash, 2, 4400) // balance sheet cash drifts from CF

	report := ValidateLinkages(income, cashflow, balance, 2, 0.01)
	if report.AllPassed {
		t.Fatal("expected a cash linkage failure")
	}
	if report.CFToBS.IsLinked {
		t.Error("CF→BS linkage should be broken")
	}
	if len(report.FailedChecks) != 1 || report.FailedChecks[0] != "CF Ending Cash → BS Cash" {
		t.Errorf("failed checks = %v", report.FailedChecks)
	}
}
