// Demo builds the standard example deal and prints the full model to
// stdout: a $10M-EBITDA company bought at 6.5x with a senior term loan and
// subordinated notes.
package main

import (
	"fmt"
	"os"

	"lbo_valuation/pkg/core/assumption"
	"lbo_valuation/pkg/core/model"
	"lbo_valuation/pkg/core/report"
)

func main() {
	a := assumption.Defaults()
	a.EntryEBITDA = 10000
	a.EntryMultiple = 6.5
	a.StartingRevenue = 50000
	a.RevenueGrowthRates = []float64{0.05, 0.05, 0.05, 0.05, 0.05}
	a.ExitYear = 5
	a.ExitMultiple = 7.5
	a.DebtTranches = []assumption.DebtTrancheSpec{
		{
			Name:                 "Senior Term Loan",
			EBITDAMultiple:       1.0,
			InterestRate:         0.08,
			AmortizationSchedule: "amortizing",
			AmortizationPeriods:  5,
		},
		{
			Name:                 "Subordinated Notes",
			EBITDAMultiple:       2.0,
			InterestRate:         0.12,
			AmortizationSchedule: "bullet",
		},
	}

	set, err := assumption.New(a)
	if err != nil {
		fmt.Printf("[FATAL] invalid assumptions: %v\n", err)
		os.Exit(1)
	}

	m, err := model.New(set)
	if err != nil {
		fmt.Printf("[FATAL] model build failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Print(report.Summary(m))

	validation := m.DebtScheduleValidation()
	if len(validation.Errors) > 0 {
		fmt.Println("## Debt Schedule Errors")
		for _, e := range validation.Errors {
			fmt.Printf("  - %s\n", e)
		}
		os.Exit(1)
	}

	r := m.Returns()
	fmt.Printf("Deal returns %.2fx / %.1f%% IRR over %d years.\n",
		r.MOIC, r.IRR*100, r.ExitYear)
}
