package renderer

import (
	"github.com/etnz/fundperf"
	"github.com/shopspring/decimal"
)

// Missing is the text of a value that is not available.
const Missing = "-"

// Report is a report with every cell formatted for display.
type Report struct {
	Title    string     `json:"title"`
	Currency string     `json:"currency"`
	Header   []string   `json:"header"`
	Align    []string   `json:"align"`
	Rows     [][]string `json:"rows"`
}

// NewReport formats r.
func NewReport(r *fundperf.Report) *Report {
	out := &Report{
		Title:    r.Kind.Title(),
		Currency: r.Currency.Label(),
		Header:   r.Header(),
	}
	for range fundperf.LabelColumns {
		out.Align = append(out.Align, ":---")
	}
	for range r.Columns {
		out.Align = append(out.Align, "---:")
	}
	for _, row := range r.Rows {
		rec := []string{row.Fund, row.Series, row.Currency.String()}
		for i, v := range row.Values {
			rec = append(rec, formatCell(r.Columns[i], v))
		}
		out.Rows = append(out.Rows, rec)
	}
	return out
}

func formatCell(column string, v decimal.NullDecimal) string {
	switch {
	case !v.Valid:
		return Missing
	case column == "Years":
		return v.Decimal.StringFixed(1)
	case column == "TAC":
		return fundperf.Percent(v.Decimal.InexactFloat64()).String()
	default:
		return fundperf.Percent(v.Decimal.InexactFloat64()).SignedString()
	}
}
