package report

import (
	"strings"
	"testing"

	"lbo_valuation/pkg/core/assumption"
	"lbo_valuation/pkg/core/model"
)

func buildModel(t *testing.T) *model.Model {
	t.Helper()
	a := assumption.Defaults()
	a.EntryEBITDA = 10000
	a.EntryMultiple = 6.5
	a.StartingRevenue = 50000
	a.RevenueGrowthRates = []float64{0.05, 0.05, 0.05, 0.05, 0.05}
	a.DebtTranches = []assumption.DebtTrancheSpec{
		{Name: "Senior Term Loan", EBITDAMultiple: 1.0, InterestRate: 0.08, AmortizationSchedule: "amortizing", AmortizationPeriods: 5},
		{Name: "Subordinated Notes", EBITDAMultiple: 2.0, InterestRate: 0.12, AmortizationSchedule: "bullet"},
	}
	set, err := assumption.New(a)
	if err != nil {
		t.Fatalf("assumptions invalid: %v", err)
	}
	m, err := model.New(set)
	if err != nil {
		t.Fatalf("model build failed: %v", err)
	}
	return m
}

func TestSummaryContainsAllSections(t *testing.T) {
	md := Summary(buildModel(t))

	for _, section := range []string{
		"## Transaction",
		"## Operating Profile",
		"## Income Statement",
		"## Debt Schedule",
		"### Senior Term Loan",
		"### Subordinated Notes",
		"## Balance Sheet",
		"## Cash Flow Statement",
		"## Returns Analysis",
	} {
		if !strings.Contains(md, section) {
			t.Errorf("summary missing section %q", section)
		}
	}

	if !strings.Contains(md, "- Enterprise Value: 65,000.0") {
		t.Errorf("transaction section missing enterprise value:\n%s", md[:400])
	}
	// 5% growth every year compounds to a 5.0% CAGR.
	if !strings.Contains(md, "- Revenue CAGR: 5.0%") {
		t.Error("operating profile missing revenue CAGR")
	}
	if !strings.Contains(md, "MOIC") || !strings.Contains(md, "IRR") {
		t.Error("returns section missing MOIC or IRR")
	}
}

func TestHTMLRendersTables(t *testing.T) {
	html, err := HTML(buildModel(t))
	if err != nil {
		t.Fatalf("HTML render failed: %v", err)
	}
	if !strings.Contains(html, "<h2") {
		t.Error("rendered HTML has no headings")
	}
	if !strings.Contains(html, "Revenue") {
		t.Error("rendered HTML missing income statement content")
	}
}

func TestMoneyFormatting(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0.0"},
		{1000, "1,000.0"},
		{1234567.89, "1,234,567.9"},
		{-250.5, "(250.5)"},
	}
	for _, tt := range tests {
		if got := money(tt.in); got != tt.want {
			t.Errorf("money(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
