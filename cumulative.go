package fundperf

import (
	"encoding/json"
	"slices"

	"github.com/etnz/fundperf/date"
)

// NoDataPlaceholder is shown instead of an empty chart.
const NoDataPlaceholder = "No data for the selected period"

// Curve holds cumulative returns of several funds over a date window.
//
// Each fund is rebased on its own first observation in the window, where its
// return is 0%.
type Curve struct {
	Currency Currency
	Range    date.Range
	dates    []date.Date // rows of the table in the window
	funds    []string    // funds with at least one observation, in request order
	returns  map[string]*date.History[float64]
}

// Cumulative builds the cumulative return curve of funds over r.
//
// Funds without observation in r, or without column in t, are omitted.
func Cumulative(t *Table, funds []string, r date.Range) *Curve {
	c := &Curve{
		Currency: t.Currency(),
		Range:    r,
		dates:    t.rows(r),
		returns:  make(map[string]*date.History[float64]),
	}
	if len(c.dates) == 0 {
		return c
	}
	for _, name := range funds {
		if _, dup := c.returns[name]; dup {
			continue
		}
		prices, ok := t.Series(name)
		if !ok {
			continue
		}
		w := prices.Within(r)
		if w.Len() == 0 {
			continue
		}
		_, base := w.First()
		rebased := new(date.History[float64])
		for day, price := range w.Values() {
			rebased.Append(day, change(base, price))
		}
		c.funds = append(c.funds, name)
		c.returns[name] = rebased
	}
	return c
}

// Empty reports whether the curve has nothing to plot.
func (c *Curve) Empty() bool { return len(c.funds) == 0 }

// Funds returns the plotted funds, in request order.
func (c *Curve) Funds() []string { return slices.Clone(c.funds) }

// Dates returns the dates of the window rows.
func (c *Curve) Dates() []date.Date { return slices.Clone(c.dates) }

// Returns returns the rebased returns of a fund.
func (c *Curve) Returns(fund string) (*date.History[float64], bool) {
	h, ok := c.returns[fund]
	return h, ok
}

// At returns the return of every fund with an observation on day.
func (c *Curve) At(day date.Date) map[string]float64 {
	out := make(map[string]float64, len(c.funds))
	for _, f := range c.funds {
		if v, ok := c.returns[f].Get(day); ok {
			out[f] = v
		}
	}
	return out
}

// curvePoint is the json form of one row of a curve.
type curvePoint struct {
	Date    date.Date          `json:"date"`
	Returns map[string]float64 `json:"returns"`
}

// curveSeries is the json form of one fund of a curve.
type curveSeries struct {
	Fund  string `json:"fund"`
	Color string `json:"color"`
}

// MarshalJSON encodes the curve as chart ready points, one per window row.
func (c *Curve) MarshalJSON() ([]byte, error) {
	colors := Palette(len(c.funds))
	series := make([]curveSeries, len(c.funds))
	for i, f := range c.funds {
		series[i] = curveSeries{Fund: f, Color: colors[i]}
	}
	points := make([]curvePoint, 0, len(c.dates))
	for _, d := range c.dates {
		points = append(points, curvePoint{Date: d, Returns: c.At(d)})
	}
	return json.Marshal(struct {
		Currency Currency      `json:"currency"`
		From     date.Date     `json:"from"`
		To       date.Date     `json:"to"`
		Empty    bool          `json:"empty"`
		Series   []curveSeries `json:"series"`
		Points   []curvePoint  `json:"points"`
	}{c.Currency, c.Range.From, c.Range.To, c.Empty(), series, points})
}
