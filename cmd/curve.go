package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/fundperf"
	"github.com/etnz/fundperf/chart"
	"github.com/etnz/fundperf/date"
	"github.com/etnz/fundperf/renderer"
	"github.com/google/subcommands"
)

// curveCmd prints the cumulative return curve, and optionally saves its chart.
type curveCmd struct {
	dataFlags
	window string
	from   string
	to     string
	png    string
}

func (*curveCmd) Name() string     { return "curve" }
func (*curveCmd) Synopsis() string { return "display the cumulative return curve" }
func (*curveCmd) Usage() string {
	return `fundperf curve [-window 1Y] [-from <date>] [-to <date>] [-png <file>]

  Displays the cumulative return of the selected funds over a window.
  Each fund starts at 0% on its first price in the window.
`
}

func (c *curveCmd) SetFlags(f *flag.FlagSet) {
	c.dataFlags.SetFlags(f)
	f.StringVar(&c.window, "window", string(fundperf.DefaultWindow), "window preset: 1M, 3M, 6M, YTD, 1Y, 3Y, 5Y or MAX")
	f.StringVar(&c.from, "from", "", "start date of the window, overrides the preset")
	f.StringVar(&c.to, "to", "", "end date of the window, overrides the preset")
	f.StringVar(&c.png, "png", "", "also save the chart as a PNG image to that file")
}

// parseRange resolves the window flags against the store.
func (c *curveCmd) parseRange(store *fundperf.Store) (date.Range, error) {
	w, err := fundperf.ParseWindow(c.window)
	if err != nil {
		return date.Range{}, err
	}
	rng, err := store.WindowRange(w)
	if err != nil {
		return date.Range{}, err
	}
	if c.from != "" {
		if rng.From, err = date.Parse(c.from); err != nil {
			return date.Range{}, err
		}
	}
	if c.to != "" {
		if rng.To, err = date.Parse(c.to); err != nil {
			return date.Range{}, err
		}
	}
	return rng, nil
}

func (c *curveCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	reporter, cur, funds, status := c.request()
	if status != subcommands.ExitSuccess {
		return status
	}
	rng, err := c.parseRange(reporter.Store())
	if err != nil {
		return printState(err)
	}
	curve, err := reporter.CumulativeCurve(cur, funds, rng)
	if err != nil {
		return printState(err)
	}
	printMarkdown(renderer.RenderCurve(renderer.NewCurve(curve)))

	if c.png == "" || curve.Empty() {
		return subcommands.ExitSuccess
	}
	img, err := chart.Render(curve, chart.DefaultOptions)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error rendering chart: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := os.WriteFile(c.png, img, 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing chart %q: %v\n", c.png, err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
