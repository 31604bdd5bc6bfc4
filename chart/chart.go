// Package chart renders cumulative return curves as PNG images.
package chart

import (
	"fmt"
	"strings"

	"github.com/etnz/fundperf"
	"github.com/vicanso/go-charts/v2"
)

// Options sets the size of the image, in pixels.
type Options struct {
	Width  int
	Height int
}

// DefaultOptions is the size of charts served to the browser.
var DefaultOptions = Options{Width: 900, Height: 480}

// Bounds of the width and the height of an image, in pixels.
const (
	MinSize = 100
	MaxSize = 2000
)

// Validate checks that the size is within [MinSize, MaxSize].
func (o Options) Validate() error {
	if o.Width < MinSize || o.Width > MaxSize || o.Height < MinSize || o.Height > MaxSize {
		return fmt.Errorf("chart size %dx%d out of range [%d, %d]", o.Width, o.Height, MinSize, MaxSize)
	}
	return nil
}

// Render draws the curve as a PNG line chart, one line per fund.
//
// It returns fundperf.ErrNoData for an empty curve: the caller shows
// fundperf.NoDataPlaceholder instead of an empty chart.
func Render(c *fundperf.Curve, opts Options) ([]byte, error) {
	if c.Empty() {
		return nil, fundperf.ErrNoData
	}
	if opts.Width <= 0 || opts.Height <= 0 {
		opts = DefaultOptions
	}
	opts.Width = min(max(opts.Width, MinSize), MaxSize)
	opts.Height = min(max(opts.Height, MinSize), MaxSize)

	dates := c.Dates()
	funds := c.Funds()
	xLabels := make([]string, len(dates))
	for i, d := range dates {
		xLabels[i] = d.Format("02 Jan 06")
	}
	values := make([][]float64, len(funds))
	for i, fund := range funds {
		values[i] = line(c, fund)
	}

	yMin, yMax := bounds(values)
	pad := (yMax - yMin) * 0.05
	if pad == 0 {
		pad = 1
	}
	yMin, yMax = yMin-pad, yMax+pad

	split := 6
	if len(xLabels) <= 30 {
		split = max(len(xLabels)/3, 3)
	}

	seriesList := charts.NewSeriesListDataFromValues(values, charts.ChartTypeLine)
	for i := range seriesList {
		seriesList[i].Name = funds[i]
	}

	title := fmt.Sprintf("Cumulative Return • %s • %s", c.Currency, c.Range)
	p, err := charts.Render(charts.ChartOption{SeriesList: seriesList},
		charts.TitleTextOptionFunc(title, strings.Join(funds, ", ")+" • %"),
		charts.XAxisOptionFunc(charts.XAxisOption{Data: xLabels, BoundaryGap: charts.FalseFlag(), SplitNumber: split}),
		charts.YAxisOptionFunc(charts.YAxisOption{Min: &yMin, Max: &yMax, DivideCount: 5}),
		charts.LegendOptionFunc(charts.LegendOption{Data: funds}),
		charts.ThemeOptionFunc(charts.ThemeLight),
		charts.WidthOptionFunc(opts.Width),
		charts.HeightOptionFunc(opts.Height),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to render chart: %w", err)
	}
	buf, err := p.Bytes()
	if err != nil {
		return nil, fmt.Errorf("failed to generate chart bytes: %w", err)
	}
	return buf, nil
}

// line returns the returns of fund on every row of the curve.
//
// A row without price repeats the previous return, rows before the first
// price of the fund sit on its 0% baseline.
func line(c *fundperf.Curve, fund string) []float64 {
	h, _ := c.Returns(fund)
	dates := c.Dates()
	out := make([]float64, len(dates))
	last := 0.0
	for i, d := range dates {
		if v, ok := h.Get(d); ok {
			last = v
		}
		out[i] = last
	}
	return out
}

func bounds(values [][]float64) (lo, hi float64) {
	for _, line := range values {
		for _, v := range line {
			lo, hi = min(lo, v), max(hi, v)
		}
	}
	return lo, hi
}
