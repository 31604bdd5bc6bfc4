package fundperf

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// ReportKind names one of the report tables.
type ReportKind string

const (
	CumulativeKind ReportKind = "cumulative"
	AnnualizedKind ReportKind = "annualized"
	ByYearKind     ReportKind = "by-year"
)

// ReportKinds lists the report kinds in display order.
var ReportKinds = []ReportKind{CumulativeKind, AnnualizedKind, ByYearKind}

func ParseReportKind(s string) (ReportKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "cumulative", "acumulada":
		return CumulativeKind, nil
	case "annualized", "anualizada":
		return AnnualizedKind, nil
	case "by-year", "yearly", "por-ano":
		return ByYearKind, nil
	default:
		return "", fmt.Errorf("unknown report %q", s)
	}
}

// Title returns the human title of the report.
func (k ReportKind) Title() string {
	switch k {
	case CumulativeKind:
		return "Cumulative Returns"
	case AnnualizedKind:
		return "Annualized Returns"
	case ByYearKind:
		return "Calendar Year Returns"
	default:
		return string(k)
	}
}

// LabelColumns are the leading text columns of every report.
var LabelColumns = []string{"Fund", "Series", "Currency"}

// Column names of the fixed reports.
var (
	CumulativeColumns = []string{"TAC", "1M", "3M", "YTD", "12M", "3Y", "5Y", "ITD"}
	AnnualizedColumns = []string{"1Y", "3Y", "5Y", "ITD", "Years"}
)

// Report is a table of statistics, one row per fund.
type Report struct {
	Kind     ReportKind
	Currency Currency
	Columns  []string // numeric columns, after the LabelColumns
	Rows     []Row
}

// Row holds the statistics of one fund.
//
// Values are aligned with the report's Columns. An invalid value is not
// available for that fund.
type Row struct {
	Fund     string
	Series   string
	Currency Currency
	Values   []decimal.NullDecimal
}

// Header returns all the column names, in order.
func (r *Report) Header() []string {
	return append(append([]string(nil), LabelColumns...), r.Columns...)
}

// Empty reports whether the report has no row.
func (r *Report) Empty() bool { return len(r.Rows) == 0 }

// Value returns the value of a named column.
func (r Row) Value(columns []string, name string) (decimal.Decimal, bool) {
	for i, c := range columns {
		if c == name && i < len(r.Values) {
			return r.Values[i].Decimal, r.Values[i].Valid
		}
	}
	return decimal.Decimal{}, false
}

// cell rounds v to places decimals, or returns a missing value.
func cell(v float64, ok bool, places int32) decimal.NullDecimal {
	if !ok || math.IsNaN(v) || math.IsInf(v, 0) {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: decimal.NewFromFloat(v).Round(places), Valid: true}
}

// MarshalJSON encodes rows as arrays aligned with the header, missing values as null.
func (r *Report) MarshalJSON() ([]byte, error) {
	rows := make([][]any, len(r.Rows))
	for i, row := range r.Rows {
		rec := []any{row.Fund, row.Series, row.Currency}
		for _, v := range row.Values {
			if !v.Valid {
				rec = append(rec, nil)
				continue
			}
			rec = append(rec, json.Number(v.Decimal.String()))
		}
		rows[i] = rec
	}
	return json.Marshal(struct {
		Kind     ReportKind `json:"kind"`
		Title    string     `json:"title"`
		Currency Currency   `json:"currency"`
		Columns  []string   `json:"columns"`
		Rows     [][]any    `json:"rows"`
	}{r.Kind, r.Kind.Title(), r.Currency, r.Header(), rows})
}
