// Package transaction computes the entry economics of the deal: enterprise
// value, sources & uses, goodwill, and the resolved debt tranches that the
// schedule builder consumes.
package transaction

import (
	"fmt"
	"math"
	"sort"

	"lbo_valuation/pkg/core/assumption"
)

// MinEquityToEVRatio flags deals where sponsor equity is a suspiciously
// small share of the purchase price.
const MinEquityToEVRatio = 0.10

// sourcesUsesTolerance is the cash tolerance for the sources & uses check.
const sourcesUsesTolerance = 0.01

// DebtTranche is a resolved debt instrument: dollar-sized, prioritized, and
// carrying its maturity year. Specs size by EBITDA multiple; after
// resolution only dollar amounts flow downstream.
type DebtTranche struct {
	Name         string
	Amount       float64
	InterestRate float64
	Kind         assumption.AmortizationKind
	Periods      int
	Priority     int // 1 = most senior, repaid first by the sweep
	MaturityYear int // bullet repayment year; 0 for non-bullet kinds
}

// Transaction holds the entry economics. All figures are in the same units
// as the assumptions (typically $ thousands).
type Transaction struct {
	EnterpriseValue     float64
	EquityValue         float64 // purchase price of the equity
	TransactionExpenses float64
	FinancingFees       float64
	TotalDebt           float64
	EquityContribution  float64
	TotalSources        float64
	TotalUses           float64
	Goodwill            float64
	Tranches            []DebtTranche
	Warnings            []string
}

// Calculate resolves the transaction structure from a validated assumption
// set. Tranches sized by EBITDA multiple are converted to dollar amounts,
// and when equity_amount is unset the equity contribution is derived as the
// plug that balances sources against uses.
func Calculate(a *assumption.AssumptionSet) *Transaction {
	horizon := a.Horizon()

	ev := a.EntryEBITDA * a.EntryMultiple
	equityValue := ev - a.ExistingDebt + a.ExistingCash

	tranches := make([]DebtTranche, 0, len(a.DebtTranches))
	totalDebt := 0.0
	for _, spec := range a.DebtTranches {
		amount := spec.Amount
		if spec.EBITDAMultiple > 0 {
			amount = spec.EBITDAMultiple * a.EntryEBITDA
		}
		tranche := DebtTranche{
			Name:         spec.Name,
			Amount:       amount,
			InterestRate: spec.InterestRate,
			Kind:         spec.Kind(),
			Periods:      spec.AmortizationPeriods,
			Priority:     spec.Priority,
		}
		if tranche.Kind == assumption.AmortizationBullet {
			tranche.MaturityYear = horizon
			if spec.AmortizationPeriods > 0 && spec.AmortizationPeriods < horizon {
				tranche.MaturityYear = spec.AmortizationPeriods
			}
		}
		tranches = append(tranches, tranche)
		totalDebt += amount
	}
	sort.SliceStable(tranches, func(i, j int) bool {
		return tranches[i].Priority < tranches[j].Priority
	})

	expenses := ev * a.TransactionExpensesPct
	fees := totalDebt * a.FinancingFeesPct

	totalUses := equityValue + a.ExistingDebt + expenses + fees

	equity := a.EquityAmount
	if equity == 0 {
		equity = math.Max(0, totalUses-totalDebt)
	}
	totalSources := totalDebt + equity

	tx := &Transaction{
		EnterpriseValue:     ev,
		EquityValue:         equityValue,
		TransactionExpenses: expenses,
		FinancingFees:       fees,
		TotalDebt:           totalDebt,
		EquityContribution:  equity,
		TotalSources:        totalSources,
		TotalUses:           totalUses,
		Tranches:            tranches,
	}

	if math.Abs(totalSources-totalUses) > sourcesUsesTolerance {
		tx.Warnings = append(tx.Warnings, fmt.Sprintf(
			"sources and uses mismatch: sources %.2f vs uses %.2f", totalSources, totalUses))
	}
	if equityValue > 0 && equity/equityValue < MinEquityToEVRatio {
		tx.Warnings = append(tx.Warnings, fmt.Sprintf(
			"equity contribution is %.1f%% of the purchase price, below the %.0f%% minimum",
			equity/equityValue*100, MinEquityToEVRatio*100))
	}

	netBookValue := a.InitialPPE + a.InitialAR + a.InitialInventory - a.InitialAP
	tx.Goodwill = math.Max(0, equityValue-netBookValue)

	return tx
}
