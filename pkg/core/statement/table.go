package statement

import "fmt"

// Table is a dense year-by-line-item grid for one statement. Years are
// 1-based model years; reads and writes of unknown rows or out-of-range
// years panic, since those are programming errors rather than input errors.
type Table struct {
	items []LineItem
	index map[LineItem]int
	years int
	data  [][]float64 // data[row][year-1]
}

// NewTable builds a zeroed table with the given rows and projection length.
func NewTable(items []LineItem, years int) *Table {
	if years <= 0 {
		panic(fmt.Sprintf("statement: invalid year count %d", years))
	}
	t := &Table{
		items: append([]LineItem(nil), items...),
		index: make(map[LineItem]int, len(items)),
		years: years,
		data:  make([][]float64, len(items)),
	}
	for i, item := range t.items {
		t.index[item] = i
		t.data[i] = make([]float64, years)
	}
	return t
}

// NewIncomeStatement builds an empty income statement table.
func NewIncomeStatement(years int) *Table { return NewTable(IncomeStatementItems(), years) }

// NewBalanceSheet builds an empty balance sheet table.
func NewBalanceSheet(years int) *Table { return NewTable(BalanceSheetItems(), years) }

// NewCashFlow builds an empty cash-flow table.
func NewCashFlow(years int) *Table { return NewTable(CashFlowItems(), years) }

func (t *Table) row(item LineItem) []float64 {
	i, ok := t.index[item]
	if !ok {
		panic(fmt.Sprintf("statement: unknown line item %q", item))
	}
	return t.data[i]
}

func (t *Table) checkYear(year int) {
	if year < 1 || year > t.years {
		panic(fmt.Sprintf("statement: year %d out of range 1..%d", year, t.years))
	}
}

// Years returns the projection length.
func (t *Table) Years() int { return t.years }

// Items returns the rows in presentation order.
func (t *Table) Items() []LineItem { return append([]LineItem(nil), t.items...) }

// Get returns the value of item in the given model year (1-based).
func (t *Table) Get(item LineItem, year int) float64 {
	t.checkYear(year)
	return t.row(item)[year-1]
}

// Set assigns the value of item in the given model year.
func (t *Table) Set(item LineItem, year int, v float64) {
	t.checkYear(year)
	t.row(item)[year-1] = v
}

// Add adds delta to item in the given model year.
func (t *Table) Add(item LineItem, year int, delta float64) {
	t.checkYear(year)
	t.row(item)[year-1] += delta
}

// Row returns a copy of item's values across all years.
func (t *Table) Row(item LineItem) []float64 {
	return append([]float64(nil), t.row(item)...)
}

// ToMap exports the table as label -> year series, the shape the JSON API
// and the renderers consume.
func (t *Table) ToMap() map[string][]float64 {
	out := make(map[string][]float64, len(t.items))
	for i, item := range t.items {
		out[string(item)] = append([]float64(nil), t.data[i]...)
	}
	return out
}
