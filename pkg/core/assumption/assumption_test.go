package assumption

import (
	"errors"
	"strings"
	"testing"
)

func baseSet() AssumptionSet {
	a := Defaults()
	a.EntryEBITDA = 10000
	a.EntryMultiple = 6.5
	a.StartingRevenue = 50000
	a.RevenueGrowthRates = []float64{0.05, 0.05, 0.05, 0.05, 0.05}
	a.DebtTranches = []DebtTrancheSpec{
		{Name: "Senior Term Loan", EBITDAMultiple: 1.0, InterestRate: 0.08, AmortizationSchedule: "amortizing", AmortizationPeriods: 5},
		{Name: "Subordinated Notes", EBITDAMultiple: 2.0, InterestRate: 0.12, AmortizationSchedule: "bullet"},
	}
	return a
}

func TestNewValidSet(t *testing.T) {
	a, err := New(baseSet())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.Horizon() != 5 {
		t.Errorf("horizon = %d, want 5", a.Horizon())
	}
	if a.TaxRate != DefaultTaxRate {
		t.Errorf("tax rate = %f, want default %f", a.TaxRate, DefaultTaxRate)
	}
	// Positional priorities filled in.
	if a.DebtTranches[0].Priority != 1 || a.DebtTranches[1].Priority != 2 {
		t.Errorf("priorities = %d, %d, want 1, 2",
			a.DebtTranches[0].Priority, a.DebtTranches[1].Priority)
	}
}

func TestValidateAggregatesViolations(t *testing.T) {
	a := baseSet()
	a.EntryEBITDA = 0
	a.EntryMultiple = -1
	a.TaxRate = 1.5
	a.DaysSalesOutstanding = 400

	_, err := New(a)
	if err == nil {
		t.Fatal("expected validation error")
	}
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %T", err)
	}
	if len(verr.Violations) != 4 {
		t.Errorf("got %d violations, want 4: %v", len(verr.Violations), verr.Violations)
	}
}

func TestValidateRejectsImpliedMargin(t *testing.T) {
	a := baseSet()
	a.StartingRevenue = 0
	a.COGSPctOfRevenue = 0.80
	a.SGAPctOfRevenue = 0.25 // implied margin -5%

	_, err := New(a)
	if err == nil {
		t.Fatal("expected implied-margin validation error")
	}
	if !strings.Contains(err.Error(), "non-positive EBITDA margin") {
		t.Errorf("error does not mention implied margin: %v", err)
	}
}

func TestValidateGrowthVector(t *testing.T) {
	a := baseSet()
	a.RevenueGrowthRates = nil
	if _, err := New(a); err == nil {
		t.Error("expected error for empty growth vector")
	}

	a = baseSet()
	a.RevenueGrowthRates = make([]float64, MaxProjectionYears+1)
	if _, err := New(a); err == nil {
		t.Error("expected error for growth vector beyond projection limit")
	}
}

func TestValidateTranches(t *testing.T) {
	a := baseSet()
	a.DebtTranches = []DebtTrancheSpec{
		{Name: "", InterestRate: -0.01, AmortizationSchedule: "balloon"},
	}
	_, err := New(a)
	if err == nil {
		t.Fatal("expected tranche validation errors")
	}
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %T", err)
	}
	if len(verr.Violations) != 3 {
		t.Errorf("got %d violations, want 3: %v", len(verr.Violations), verr.Violations)
	}
}

func TestKindNormalization(t *testing.T) {
	cases := []struct {
		raw  string
		want AmortizationKind
	}{
		{"", AmortizationBullet},
		{"bullet", AmortizationBullet},
		{"Amortizing", AmortizationAmortizing},
		{"sweep", AmortizationSweep},
		{"cash_flow_sweep", AmortizationSweep},
	}
	for _, tc := range cases {
		spec := DebtTrancheSpec{AmortizationSchedule: tc.raw}
		if got := spec.Kind(); got != tc.want {
			t.Errorf("Kind(%q) = %q, want %q", tc.raw, got, tc.want)
		}
	}
}

func TestParseStrictJSON(t *testing.T) {
	payload := `{
		"entry_ebitda": 10000,
		"entry_multiple": 6.5,
		"starting_revenue": 50000,
		"revenue_growth_rate": [0.05, 0.05, 0.05],
		"debt_instruments": [
			{"name": "Term Loan B", "ebitda_multiple": 3.0, "interest_rate": 0.09, "amortization_schedule": "amortizing", "amortization_periods": 7}
		]
	}`
	a, err := Parse([]byte(payload))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.EntryMultiple != 6.5 {
		t.Errorf("entry multiple = %f, want 6.5", a.EntryMultiple)
	}
	if a.COGSPctOfRevenue != DefaultCOGSPct {
		t.Errorf("absent cogs pct should keep default, got %f", a.COGSPctOfRevenue)
	}
	if a.DebtTranches[0].AmortizationPeriods != 7 {
		t.Errorf("amortization periods = %d, want 7", a.DebtTranches[0].AmortizationPeriods)
	}
}

func TestParseHjsonScenarioFile(t *testing.T) {
	// Hand-written scenario files use Hjson: comments, no quotes, trailing
	// commas.
	payload := `{
		// base case
		entry_ebitda: 10000
		entry_multiple: 6.5
		starting_revenue: 50000
		revenue_growth_rate: [0.05, 0.05, 0.05, 0.05, 0.05]
		debt_instruments: [
			{name: Senior, ebitda_multiple: 2.5, interest_rate: 0.08, amortization_schedule: sweep},
		]
	}`
	a, err := Parse([]byte(payload))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.DebtTranches[0].Kind() != AmortizationSweep {
		t.Errorf("kind = %q, want sweep", a.DebtTranches[0].Kind())
	}
}

func TestParseInvalidPayload(t *testing.T) {
	if _, err := Parse([]byte("]]not a scenario[[")); err == nil {
		t.Error("expected decode error")
	}
}
