// Package statement provides the typed line-item tables for the projected
// income statement, balance sheet, and cash-flow statement. Keys are typed
// constants so a bad lookup is a loud failure, not a silently missing row;
// the string values are the presentation labels the JSON API and the report
// renderer serve.
package statement

// LineItem identifies one row of a statement table.
type LineItem string

// Income statement rows, in presentation order.
const (
	Revenue         LineItem = "Revenue"
	RevenueGrowth   LineItem = "Growth (%)"
	COGS            LineItem = "Cost of Goods Sold (Net of D&A)"
	GrossProfit     LineItem = "Gross Profit"
	SGA             LineItem = "SG&A (Net of D&A)"
	EBITDA          LineItem = "EBITDA"
	Depreciation    LineItem = "Depreciation"
	Amortization    LineItem = "Amortization"
	EBIT            LineItem = "EBIT"
	InterestExpense LineItem = "Interest Expense"
	PretaxIncome    LineItem = "Pretax Income"
	IncomeTax       LineItem = "Income Tax Expense"
	NetIncome       LineItem = "Net Income"
)

// Balance sheet rows.
const (
	Cash                    LineItem = "Cash"
	AccountsReceivable      LineItem = "Accounts Receivable"
	Inventory               LineItem = "Inventory"
	TotalCurrentAssets      LineItem = "Total Current Assets"
	PPENet                  LineItem = "PP&E, Net"
	Goodwill                LineItem = "Goodwill"
	FinancingFeeIntangible  LineItem = "Intangible Assets (Financing Fees)"
	TotalAssets             LineItem = "Total Assets"
	AccountsPayable         LineItem = "Accounts Payable"
	TotalCurrentLiabilities LineItem = "Total Current Liabilities"
	TotalDebt               LineItem = "Total Debt"
	TotalLiabilities        LineItem = "Total Liabilities"
	ShareholdersEquity      LineItem = "Shareholders Equity"
	TotalLiabilitiesEquity  LineItem = "Total Liabilities & Equity"
)

// Cash flow rows. Net Income is shared with the income statement.
const (
	DepreciationAmortization LineItem = "Depreciation & Amortization"
	ChangeInAR               LineItem = "Change in Accounts Receivable"
	ChangeInInventory        LineItem = "Change in Inventory"
	ChangeInAP               LineItem = "Change in Accounts Payable"
	NetWorkingCapitalChange  LineItem = "Net Change in Working Capital"
	CashFromOperations       LineItem = "Cash Flow from Operations"
	CapitalExpenditures      LineItem = "Capital Expenditures"
	CashFromInvesting        LineItem = "Cash Flow from Investing"
	DebtRepayment            LineItem = "Debt Repayment"
	DebtIssuance             LineItem = "Debt Issuance"
	EquityContribution       LineItem = "Equity Contribution"
	PurchasePrice            LineItem = "Purchase Price (Equity Value)"
	ExistingDebtRepayment    LineItem = "Existing Debt Repayment"
	TransactionExpenses      LineItem = "Transaction Expenses"
	FinancingFees            LineItem = "Financing Fees"
	CashFromFinancing        LineItem = "Cash Flow from Financing"
	NetChangeInCash          LineItem = "Net Change in Cash"
	BeginningCash            LineItem = "Beginning Cash Balance"
	EndingCash               LineItem = "Ending Cash Balance"
)

// IncomeStatementItems returns the income statement rows in order.
func IncomeStatementItems() []LineItem {
	return []LineItem{
		Revenue, RevenueGrowth, COGS, GrossProfit, SGA, EBITDA,
		Depreciation, Amortization, EBIT, InterestExpense,
		PretaxIncome, IncomeTax, NetIncome,
	}
}

// BalanceSheetItems returns the balance sheet rows in order.
func BalanceSheetItems() []LineItem {
	return []LineItem{
		Cash, AccountsReceivable, Inventory, TotalCurrentAssets,
		PPENet, Goodwill, FinancingFeeIntangible, TotalAssets,
		AccountsPayable, TotalCurrentLiabilities, TotalDebt,
		TotalLiabilities, ShareholdersEquity, TotalLiabilitiesEquity,
	}
}

// CashFlowItems returns the cash-flow statement rows in order.
func CashFlowItems() []LineItem {
	return []LineItem{
		NetIncome, DepreciationAmortization, ChangeInAR, ChangeInInventory,
		ChangeInAP, NetWorkingCapitalChange, CashFromOperations,
		CapitalExpenditures, CashFromInvesting, DebtRepayment, DebtIssuance,
		EquityContribution, PurchasePrice, ExistingDebtRepayment,
		TransactionExpenses, FinancingFees, CashFromFinancing,
		NetChangeInCash, BeginningCash, EndingCash,
	}
}
