package fundperf

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"

	"github.com/etnz/fundperf/date"
)

// DefaultPaths lists the workbook locations tried by Load when none is given.
var DefaultPaths = []string{
	"data/rentabilidades.xlsx",
	"./data/rentabilidades.xlsx",
	"../data/rentabilidades.xlsx",
	"rentabilidades.xlsx",
}

// Table holds the prices of every fund in one currency.
//
// dates are all the rows of the sheet, even the ones where no fund has a price.
type Table struct {
	currency Currency
	dates    []date.Date
	series   map[string]*date.History[float64]
}

func newTable(cur Currency) *Table {
	return &Table{currency: cur, series: make(map[string]*date.History[float64])}
}

// NewTable returns a table of prices in cur. Its rows are the dates of all the series.
func NewTable(cur Currency, series map[string]*date.History[float64]) *Table {
	t := newTable(cur)
	for name, h := range series {
		t.series[name] = h
		for day := range h.Values() {
			t.dates = append(t.dates, day)
		}
	}
	slices.SortFunc(t.dates, date.Date.Compare)
	t.dates = slices.Compact(t.dates)
	return t
}

// Currency returns the currency of the prices.
func (t *Table) Currency() Currency { return t.currency }

// Series returns the price series of a fund.
//
// It returns false if the fund has no column in that table. A fund with a
// column but no price at all has an empty series.
func (t *Table) Series(fund string) (*date.History[float64], bool) {
	h, ok := t.series[fund]
	return h, ok
}

// Dates returns a copy of the row dates, in chronological order.
func (t *Table) Dates() []date.Date { return slices.Clone(t.dates) }

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.dates) }

// First returns the earliest row date, zero if the table is empty.
func (t *Table) First() date.Date {
	if len(t.dates) == 0 {
		return date.Date{}
	}
	return t.dates[0]
}

// Last returns the latest row date, zero if the table is empty.
func (t *Table) Last() date.Date {
	if len(t.dates) == 0 {
		return date.Date{}
	}
	return t.dates[len(t.dates)-1]
}

// Years returns the distinct calendar years of the rows, most recent first.
func (t *Table) Years() []int {
	var years []int
	for i := len(t.dates) - 1; i >= 0; i-- {
		y := t.dates[i].Year()
		if len(years) == 0 || years[len(years)-1] != y {
			years = append(years, y)
		}
	}
	return years
}

// rows returns the row dates contained in r.
func (t *Table) rows(r date.Range) []date.Date {
	var out []date.Date
	for _, d := range t.dates {
		if r.Contains(d) {
			out = append(out, d)
		}
	}
	return out
}

// Store is the immutable set of prices loaded from the workbook.
//
// A Store is never modified after Load, it can be read concurrently.
type Store struct {
	source string
	funds  []Fund
	index  map[string]int
	tables map[Currency]*Table
	err    error // load failure of an empty store
}

func newStore(source string, funds []Fund) *Store {
	s := &Store{
		source: source,
		funds:  funds,
		index:  make(map[string]int, len(funds)),
		tables: make(map[Currency]*Table),
	}
	for i, f := range funds {
		s.index[f.Name] = i
	}
	return s
}

// NewStore returns a loaded store of funds with a table per currency.
func NewStore(source string, funds []Fund, tables ...*Table) *Store {
	s := newStore(source, funds)
	for _, t := range tables {
		s.tables[t.Currency()] = t
	}
	return s
}

// EmptyStore returns a store without data, recording the load failure err.
func EmptyStore(err error) *Store {
	s := newStore("", nil)
	s.err = err
	return s
}

// Load reads the first workbook that exists among paths, or DefaultPaths if
// paths is empty.
//
// Any error is a load failure: the caller should log it once and keep
// serving from EmptyStore(err).
func Load(paths ...string) (*Store, error) {
	if len(paths) == 0 {
		paths = DefaultPaths
	}
	path, err := findWorkbook(paths)
	if err != nil {
		return nil, err
	}
	return ReadWorkbook(path)
}

// findWorkbook returns the first path that exists.
func findWorkbook(paths []string) (string, error) {
	for _, p := range paths {
		info, err := os.Stat(p)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return "", fmt.Errorf("checking %q: %w", p, err)
		}
		if !info.IsDir() {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w in %q", ErrNoWorkbook, paths)
}

// Loaded reports whether the store holds data.
func (s *Store) Loaded() bool { return s.err == nil && len(s.tables) > 0 }

// Err returns the load failure of an empty store.
func (s *Store) Err() error { return s.err }

// Source returns the path of the workbook.
func (s *Store) Source() string { return s.source }

// Funds returns a copy of the fund list in workbook order.
func (s *Store) Funds() []Fund { return slices.Clone(s.funds) }

// Fund returns the fund named name.
func (s *Store) Fund(name string) (Fund, bool) {
	i, ok := s.index[name]
	if !ok {
		return Fund{}, false
	}
	return s.funds[i], true
}

// Table returns the price table of a currency.
func (s *Store) Table(cur Currency) (*Table, bool) {
	t, ok := s.tables[cur]
	return t, ok
}

// Latest returns the latest price of a fund in cur.
func (s *Store) Latest(fund string, cur Currency) (date.Date, float64, bool) {
	t, ok := s.tables[cur]
	if !ok {
		return date.Date{}, 0, false
	}
	h, ok := t.Series(fund)
	if !ok || h.Len() == 0 {
		return date.Date{}, 0, false
	}
	day, price := h.Latest()
	return day, price, true
}

// Span returns the range of dates of the reference table, the CLP one.
func (s *Store) Span() (date.Range, bool) {
	t, ok := s.tables[CLP]
	if !ok || t.Len() == 0 {
		return date.Range{}, false
	}
	return date.Between(t.First(), t.Last()), true
}
