package assumption

import (
	"fmt"

	"lbo_valuation/pkg/core/utils"
)

// Parse decodes a scenario payload into a validated AssumptionSet. The
// payload may be strict JSON, sloppy JSON (repaired), or Hjson, since
// scenario files are often written by hand. Defaults are applied first, then
// tranche priorities and amortization periods are normalized, then the
// whole set is validated.
func Parse(data []byte) (*AssumptionSet, error) {
	a := Defaults()
	if _, err := utils.SmartParse(string(data), &a); err != nil {
		return nil, fmt.Errorf("failed to decode assumptions: %w", err)
	}

	normalizeTranches(a.DebtTranches)

	if err := a.Validate(); err != nil {
		return nil, err
	}
	return &a, nil
}

// New builds a validated AssumptionSet from an in-memory value, applying
// the same tranche normalization as Parse.
func New(a AssumptionSet) (*AssumptionSet, error) {
	normalizeTranches(a.DebtTranches)
	if err := a.Validate(); err != nil {
		return nil, err
	}
	return &a, nil
}

// normalizeTranches fills positional priorities and, for amortizing debt,
// default amortization periods. Bullet tranches keep a zero period count,
// which means "matures at the end of the projection".
func normalizeTranches(tranches []DebtTrancheSpec) {
	for i := range tranches {
		if tranches[i].Priority <= 0 {
			tranches[i].Priority = i + 1
		}
		if tranches[i].Kind() == AmortizationAmortizing && tranches[i].AmortizationPeriods <= 0 {
			tranches[i].AmortizationPeriods = DefaultAmortizationPeriods
		}
	}
}
