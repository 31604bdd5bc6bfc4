// Package fundperf computes fund performance statistics from a workbook of
// daily fund prices quoted in two currencies.
//
// The core functionalities include:
//   - Price Store: loading the workbook once into an immutable set of price
//     series, one table per currency, with the ordered list of funds.
//   - Return Calculations: trailing, year-to-date, since-inception,
//     annualized and calendar-year returns of a single price series.
//   - Cumulative Curves: per-fund rebased return curves over a date window,
//     ready for charting.
//   - Reports: row-oriented tables with a stable column order, produced by
//     a [Reporter] for a currency and a list of funds.
//
// Failures are contained at the smallest possible scope: a missing value
// for one cell, a skipped fund, or a whole store without data. The
// presentation layer only ever sees data or one of the states defined in
// errors.go.
package fundperf
