// Package cmd implements the CLI application to report fund performance.
package cmd

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/fundperf"
	"github.com/etnz/fundperf/config"
	"github.com/etnz/fundperf/logger"
	"github.com/google/subcommands"
	"github.com/rs/zerolog"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&reportCmd{kind: fundperf.CumulativeKind}, "reports")
	c.Register(&reportCmd{kind: fundperf.AnnualizedKind}, "reports")
	c.Register(&reportCmd{kind: fundperf.ByYearKind}, "reports")
	c.Register(&curveCmd{}, "reports")
	c.Register(&fundsCmd{}, "reports")

	c.Register(&serveCmd{}, "server")

	c.Register(&topicCmd{}, "help")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var rawOutput = flag.Bool("raw", false, "print plain markdown, without terminal styling")

// stdout receives the reports.
var stdout io.Writer = os.Stdout

// printMarkdown prints md, styled for the terminal unless -raw is set.
func printMarkdown(md string) {
	if !*rawOutput {
		r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(120))
		if err == nil {
			if out, err := r.Render(md); err == nil {
				fmt.Fprint(stdout, out)
				return
			}
		}
	}
	fmt.Fprint(stdout, md)
}

// newLogger returns the logger of the CLI, reading the level from the environment.
func newLogger(cfg *config.Config) zerolog.Logger {
	return logger.New(logger.Config{Level: cfg.LogLevel, Pretty: true})
}

// dataFlags are the flags shared by commands reading the workbook.
type dataFlags struct {
	data     string
	currency string
	funds    string
}

func (d *dataFlags) SetFlags(f *flag.FlagSet) {
	f.StringVar(&d.data, "data", "", "path to the price workbook, instead of DATA_PATHS")
	f.StringVar(&d.currency, "currency", string(fundperf.CLP), "currency of the prices: CLP or USD")
	f.StringVar(&d.funds, "funds", "", "comma separated fund names, defaults to the first 5 funds")
}

// open loads the store. A load failure is logged and yields an empty store,
// whose reports are "no data available".
func (d *dataFlags) open() (*fundperf.Store, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	paths := cfg.DataPaths
	if d.data != "" {
		paths = []string{d.data}
	}
	store, err := fundperf.Load(paths...)
	if err != nil {
		log := newLogger(cfg)
		log.Error().Err(err).Strs("paths", paths).Msg("failed to load workbook")
		return fundperf.EmptyStore(err), nil
	}
	return store, nil
}

// selection returns the funds of the -funds flag, or the default selection.
func (d *dataFlags) selection(store *fundperf.Store) []string {
	var funds []string
	for _, v := range strings.Split(d.funds, ",") {
		if v = strings.TrimSpace(v); v != "" {
			funds = append(funds, v)
		}
	}
	if len(funds) == 0 {
		return fundperf.DefaultSelection(store).Funds()
	}
	return funds
}

// request validates the currency flag and loads what a report needs.
func (d *dataFlags) request() (*fundperf.Reporter, fundperf.Currency, []string, subcommands.ExitStatus) {
	cur, err := fundperf.ParseCurrency(d.currency)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing currency: %v\n", err)
		return nil, "", nil, subcommands.ExitUsageError
	}
	store, err := d.open()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading configuration: %v\n", err)
		return nil, "", nil, subcommands.ExitFailure
	}
	return fundperf.NewReporter(store), cur, d.selection(store), subcommands.ExitSuccess
}

// printState prints the user facing state of a failed computation.
func printState(err error) subcommands.ExitStatus {
	fmt.Fprintf(os.Stderr, "%v\n", err)
	return subcommands.ExitFailure
}
