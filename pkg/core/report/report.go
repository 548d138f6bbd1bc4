// Package report renders a built model into Markdown and HTML for the
// dashboard and the advisor prompt.
package report

import (
	"fmt"
	"strings"

	"lbo_valuation/pkg/core/model"
	"lbo_valuation/pkg/core/statement"
	"lbo_valuation/pkg/core/utils"
	"lbo_valuation/pkg/core/validate"
)

// Summary renders the full model as Markdown: transaction overview, the
// three statements, the per-tranche debt schedule, and the returns analysis.
func Summary(m *model.Model) string {
	var b strings.Builder

	tx := m.Transaction()
	b.WriteString("# LBO Model Summary\n\n")
	b.WriteString("## Transaction\n\n")
	b.WriteString(fmt.Sprintf("- Enterprise Value: %s\n", money(tx.EnterpriseValue)))
	b.WriteString(fmt.Sprintf("- Equity Purchase Price: %s\n", money(tx.EquityValue)))
	b.WriteString(fmt.Sprintf("- Total Debt: %s\n", money(tx.TotalDebt)))
	b.WriteString(fmt.Sprintf("- Sponsor Equity: %s\n", money(tx.EquityContribution)))
	b.WriteString(fmt.Sprintf("- Transaction Expenses: %s\n", money(tx.TransactionExpenses)))
	b.WriteString(fmt.Sprintf("- Financing Fees: %s\n", money(tx.FinancingFees)))
	if tx.Goodwill > 0 {
		b.WriteString(fmt.Sprintf("- Goodwill Created: %s\n", money(tx.Goodwill)))
	}
	b.WriteString("\n")

	writeOperatingProfile(&b, m)
	writeStatement(&b, "Income Statement", m.IncomeStatement())
	writeDebtSchedule(&b, m)
	writeStatement(&b, "Balance Sheet", m.BalanceSheet())
	writeStatement(&b, "Cash Flow Statement", m.CashFlow())
	writeReturns(&b, m.Returns())

	if warnings := m.Warnings(); len(warnings) > 0 {
		b.WriteString("## Warnings\n\n")
		for _, w := range warnings {
			b.WriteString(fmt.Sprintf("- %s\n", w))
		}
		b.WriteString("\n")
	}

	return b.String()
}

// HTML renders the summary through the shared Markdown pipeline.
func HTML(m *model.Model) (string, error) {
	return utils.RenderMarkdown(Summary(m))
}

// writeOperatingProfile summarizes the projection in two headline metrics:
// revenue CAGR over the horizon and free cash flow in the final year.
func writeOperatingProfile(b *strings.Builder, m *model.Model) {
	is := m.IncomeStatement()
	cf := m.CashFlow()
	years := m.Years()

	b.WriteString("## Operating Profile\n\n")
	cagr := validate.CalculateCAGR(
		is.Get(statement.Revenue, 1), is.Get(statement.Revenue, years), years-1)
	b.WriteString(fmt.Sprintf("- Revenue CAGR: %.1f%%\n", cagr))
	fcf := validate.CalculateFCF(
		cf.Get(statement.CashFromOperations, years),
		cf.Get(statement.CashFromInvesting, years))
	b.WriteString(fmt.Sprintf("- Year %d Free Cash Flow: %s\n\n", years, money(fcf)))
}

func writeStatement(b *strings.Builder, title string, table *statement.Table) {
	b.WriteString(fmt.Sprintf("## %s\n\n", title))

	b.WriteString("| Line Item |")
	for year := 1; year <= table.Years(); year++ {
		b.WriteString(fmt.Sprintf(" Year %d |", year))
	}
	b.WriteString("\n|---|")
	for year := 1; year <= table.Years(); year++ {
		b.WriteString("---:|")
	}
	b.WriteString("\n")

	for _, item := range table.Items() {
		b.WriteString(fmt.Sprintf("| %s |", item))
		for _, v := range table.Row(item) {
			b.WriteString(fmt.Sprintf(" %s |", money(v)))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
}

func writeDebtSchedule(b *strings.Builder, m *model.Model) {
	b.WriteString("## Debt Schedule\n\n")
	for _, sched := range m.DebtScheduleTable().Tranches {
		t := sched.Tranche
		b.WriteString(fmt.Sprintf("### %s (%.2f%%, %s)\n\n", t.Name, t.InterestRate*100, t.Kind))
		b.WriteString("| Year | Beginning | Interest | Principal | Ending |\n")
		b.WriteString("|---:|---:|---:|---:|---:|\n")
		for idx := 0; idx < m.Years(); idx++ {
			b.WriteString(fmt.Sprintf("| %d | %s | %s | %s | %s |\n",
				idx+1, money(sched.Beginning[idx]), money(sched.Interest[idx]),
				money(sched.Principal[idx]), money(sched.Ending[idx])))
		}
		b.WriteString("\n")
	}
}

func writeReturns(b *strings.Builder, r *model.Returns) {
	b.WriteString("## Returns Analysis\n\n")
	b.WriteString(fmt.Sprintf("- Exit Year: %d\n", r.ExitYear))
	b.WriteString(fmt.Sprintf("- Exit EBITDA: %s\n", money(r.ExitEBITDA)))
	b.WriteString(fmt.Sprintf("- Exit Enterprise Value: %s\n", money(r.ExitEV)))
	b.WriteString(fmt.Sprintf("- Exit Debt: %s\n", money(r.ExitDebt)))
	b.WriteString(fmt.Sprintf("- Exit Equity Value: %s\n", money(r.ExitEquityValue)))
	b.WriteString(fmt.Sprintf("- Equity Invested: %s\n", money(r.EquityInvested)))
	b.WriteString(fmt.Sprintf("- MOIC: %.2fx\n", r.MOIC))
	b.WriteString(fmt.Sprintf("- IRR: %.1f%%\n\n", r.IRR*100))
}

func money(v float64) string {
	neg := v < 0
	if neg {
		v = -v
	}
	s := fmt.Sprintf("%.1f", v)

	// Insert thousands separators into the integer part.
	dot := strings.Index(s, ".")
	intPart, frac := s[:dot], s[dot:]
	var out strings.Builder
	for i, ch := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			out.WriteByte(',')
		}
		out.WriteRune(ch)
	}
	if neg {
		return "(" + out.String() + frac + ")"
	}
	return out.String() + frac
}
