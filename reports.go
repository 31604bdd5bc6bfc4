package fundperf

import (
	"strconv"

	"github.com/etnz/fundperf/date"
	"github.com/shopspring/decimal"
)

// Reporter computes reports and curves from a Store.
//
// It is the boundary of the computation core: its methods only return data,
// or one of ErrNoData, ErrEmptySelection and ErrUnknownCurrency.
type Reporter struct {
	store *Store
	costs CostSource
}

// Option configures a Reporter.
type Option func(*Reporter)

// WithCosts sets the source of the TAC column.
func WithCosts(c CostSource) Option {
	return func(r *Reporter) { r.costs = c }
}

// NewReporter returns a Reporter reading from s.
func NewReporter(s *Store, opts ...Option) *Reporter {
	r := &Reporter{store: s, costs: noCosts{}}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Store returns the store of the reporter.
func (r *Reporter) Store() *Store { return r.store }

// fundSeries is a selected fund with its prices in the requested currency.
type fundSeries struct {
	Fund
	prices *date.History[float64]
}

// selection resolves the table of cur and the requested funds with prices in it.
//
// Unknown names, duplicates and funds without price in that currency are
// dropped, the request order is kept.
func (r *Reporter) selection(cur Currency, funds []string) (*Table, []fundSeries, error) {
	if !r.store.Loaded() {
		return nil, nil, ErrNoData
	}
	if len(funds) == 0 {
		return nil, nil, ErrEmptySelection
	}
	t, ok := r.store.Table(cur)
	if !ok {
		return nil, nil, ErrUnknownCurrency
	}
	seen := make(map[string]bool, len(funds))
	var out []fundSeries
	for _, name := range funds {
		f, ok := r.store.Fund(name)
		if !ok || seen[name] {
			continue
		}
		seen[name] = true
		h, ok := t.Series(name)
		if !ok || h.Len() == 0 {
			continue
		}
		out = append(out, fundSeries{Fund: f, prices: h})
	}
	return t, out, nil
}

func (r *Reporter) newReport(kind ReportKind, cur Currency, columns []string) *Report {
	return &Report{Kind: kind, Currency: cur, Columns: columns}
}

func newRow(f fundSeries, cur Currency, values ...decimal.NullDecimal) Row {
	return Row{Fund: f.Name, Series: f.Series, Currency: cur, Values: values}
}

// CumulativeReport returns trailing returns as of each fund's latest price.
func (r *Reporter) CumulativeReport(cur Currency, funds []string) (*Report, error) {
	_, selected, err := r.selection(cur, funds)
	if err != nil {
		return nil, err
	}
	report := r.newReport(CumulativeKind, cur, CumulativeColumns)
	for _, f := range selected {
		h := f.prices
		on, price := h.Latest()
		report.Rows = append(report.Rows, newRow(f, cur,
			cell2(r.costs.Cost(f.Name)),
			cell2(TrailingReturn(h, OneMonth, on, price)),
			cell2(TrailingReturn(h, ThreeMonths, on, price)),
			cell2(YTDReturn(h, on, price)),
			cell2(TrailingReturn(h, OneYear, on, price)),
			cell2(TrailingReturn(h, ThreeYears, on, price)),
			cell2(TrailingReturn(h, FiveYears, on, price)),
			cell2(SinceInceptionReturn(h, price)),
		))
	}
	return report, nil
}

// AnnualizedReport returns compound yearly rates of return.
func (r *Reporter) AnnualizedReport(cur Currency, funds []string) (*Report, error) {
	_, selected, err := r.selection(cur, funds)
	if err != nil {
		return nil, err
	}
	report := r.newReport(AnnualizedKind, cur, AnnualizedColumns)
	for _, f := range selected {
		h := f.prices
		years, ok := YearsOfHistory(h)
		report.Rows = append(report.Rows, newRow(f, cur,
			cell2(AnnualizedTrailingReturn(h, OneYear)),
			cell2(AnnualizedTrailingReturn(h, ThreeYears)),
			cell2(AnnualizedTrailingReturn(h, FiveYears)),
			cell2(AnnualizedSinceInception(h)),
			cell(years, ok, 1),
		))
	}
	return report, nil
}

// ByYearReport returns the return of every calendar year of the currency
// table, most recent year first.
func (r *Reporter) ByYearReport(cur Currency, funds []string) (*Report, error) {
	t, selected, err := r.selection(cur, funds)
	if err != nil {
		return nil, err
	}
	years := t.Years()
	columns := make([]string, len(years))
	for i, y := range years {
		columns[i] = strconv.Itoa(y)
	}
	report := r.newReport(ByYearKind, cur, columns)
	for _, f := range selected {
		values := make([]decimal.NullDecimal, len(years))
		for i, y := range years {
			values[i] = cell2(CalendarYearReturn(f.prices, y))
		}
		report.Rows = append(report.Rows, newRow(f, cur, values...))
	}
	return report, nil
}

// Report returns the report of a given kind.
func (r *Reporter) Report(kind ReportKind, cur Currency, funds []string) (*Report, error) {
	switch kind {
	case AnnualizedKind:
		return r.AnnualizedReport(cur, funds)
	case ByYearKind:
		return r.ByYearReport(cur, funds)
	default:
		return r.CumulativeReport(cur, funds)
	}
}

// CumulativeCurve returns the rebased return curves of funds over rng.
func (r *Reporter) CumulativeCurve(cur Currency, funds []string, rng date.Range) (*Curve, error) {
	t, selected, err := r.selection(cur, funds)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(selected))
	for i, f := range selected {
		names[i] = f.Name
	}
	return Cumulative(t, names, rng), nil
}

// cell2 is a cell rounded to 2 decimals.
func cell2(v float64, ok bool) decimal.NullDecimal { return cell(v, ok, 2) }
