package fundperf

import (
	"slices"

	"github.com/etnz/fundperf/date"
)

// D is a helper for test to create a date from a const.
func D(s string) date.Date { return date.MustParse(s) }

// P is a point of a price series.
type P struct {
	Day   string
	Price float64
}

// prices is a helper for test to create a price series.
func prices(points ...P) *date.History[float64] {
	h := new(date.History[float64])
	for _, p := range points {
		h.Append(D(p.Day), p.Price)
	}
	return h
}

// testTable returns a table whose rows are the union of the series dates and extra.
func testTable(cur Currency, series map[string]*date.History[float64], extra ...string) *Table {
	t := NewTable(cur, series)
	for _, day := range extra {
		t.dates = append(t.dates, D(day))
	}
	slices.SortFunc(t.dates, date.Date.Compare)
	t.dates = slices.Compact(t.dates)
	return t
}

// testStore returns a loaded store of funds and tables.
func testStore(funds []Fund, tables ...*Table) *Store {
	return NewStore("test", funds, tables...)
}

// scenario is the series used by most return tests.
func scenario() *date.History[float64] {
	return prices(P{"2023-01-01", 100}, P{"2023-06-01", 110}, P{"2023-12-31", 121})
}
