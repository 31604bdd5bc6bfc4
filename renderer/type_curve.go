package renderer

import (
	"math"

	"github.com/etnz/fundperf"
)

// Curve is the summary of a cumulative return curve, one row per fund.
type Curve struct {
	Title    string     `json:"title"`
	Currency string     `json:"currency"`
	Range    string     `json:"range"`
	Empty    bool       `json:"empty"`
	Message  string     `json:"message"`
	Header   []string   `json:"header"`
	Align    []string   `json:"align"`
	Rows     [][]string `json:"rows"`
}

// NewCurve summarizes c: the first and last dates of every fund, its
// return at the end of the window and its extremes.
func NewCurve(c *fundperf.Curve) *Curve {
	out := &Curve{
		Title:    "Cumulative Return",
		Currency: c.Currency.Label(),
		Range:    c.Range.String(),
		Empty:    c.Empty(),
		Message:  fundperf.NoDataPlaceholder,
		Header:   []string{"Fund", "From", "To", "Return", "Min", "Max"},
		Align:    []string{":---", ":---", ":---", "---:", "---:", "---:"},
	}
	for _, fund := range c.Funds() {
		h, _ := c.Returns(fund)
		from, _ := h.First()
		to, last := h.Latest()
		lo, hi := math.Inf(1), math.Inf(-1)
		for _, v := range h.Values() {
			lo, hi = min(lo, v), max(hi, v)
		}
		out.Rows = append(out.Rows, []string{
			fund,
			from.String(),
			to.String(),
			fundperf.Percent(last).SignedString(),
			fundperf.Percent(lo).SignedString(),
			fundperf.Percent(hi).SignedString(),
		})
	}
	return out
}
