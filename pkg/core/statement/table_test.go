package statement

import "testing"

func TestTableSetGet(t *testing.T) {
	tbl := NewIncomeStatement(5)

	if tbl.Years() != 5 {
		t.Fatalf("expected 5 years, got %d", tbl.Years())
	}

	tbl.Set(Revenue, 1, 50000)
	tbl.Set(Revenue, 5, 60775.31)

	if got := tbl.Get(Revenue, 1); got != 50000 {
		t.Errorf("year 1 revenue = %f, want 50000", got)
	}
	if got := tbl.Get(Revenue, 5); got != 60775.31 {
		t.Errorf("year 5 revenue = %f, want 60775.31", got)
	}
	if got := tbl.Get(Revenue, 3); got != 0 {
		t.Errorf("unset year should be zero, got %f", got)
	}
}

func TestTableAdd(t *testing.T) {
	tbl := NewCashFlow(3)
	tbl.Set(DebtRepayment, 2, -1300)
	tbl.Add(DebtRepayment, 2, -500)

	if got := tbl.Get(DebtRepayment, 2); got != -1800 {
		t.Errorf("after Add, got %f, want -1800", got)
	}
}

func TestTableUnknownItemPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on unknown line item")
		}
	}()
	tbl := NewIncomeStatement(3)
	tbl.Get(Goodwill, 1) // balance sheet row, not on the income statement
}

func TestTableYearOutOfRangePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on out-of-range year")
		}
	}()
	tbl := NewBalanceSheet(3)
	tbl.Set(Cash, 4, 100)
}

func TestTableRowIsCopy(t *testing.T) {
	tbl := NewBalanceSheet(2)
	tbl.Set(Cash, 1, 11)

	row := tbl.Row(Cash)
	row[0] = 99

	if got := tbl.Get(Cash, 1); got != 11 {
		t.Errorf("Row must return a copy; table value changed to %f", got)
	}
}

func TestTableToMap(t *testing.T) {
	tbl := NewBalanceSheet(2)
	tbl.Set(TotalAssets, 1, 100)
	tbl.Set(TotalAssets, 2, 110)

	m := tbl.ToMap()
	series, ok := m["Total Assets"]
	if !ok {
		t.Fatal("ToMap missing Total Assets row")
	}
	if series[0] != 100 || series[1] != 110 {
		t.Errorf("Total Assets series = %v", series)
	}
	if len(m) != len(BalanceSheetItems()) {
		t.Errorf("ToMap has %d rows, want %d", len(m), len(BalanceSheetItems()))
	}
}
