package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/etnz/fundperf"
	"github.com/etnz/fundperf/renderer"
	"github.com/google/subcommands"
)

// reportCmd prints one of the report tables.
type reportCmd struct {
	dataFlags
	kind fundperf.ReportKind
}

func (c *reportCmd) Name() string {
	if c.kind == fundperf.ByYearKind {
		return "yearly"
	}
	return string(c.kind)
}

func (c *reportCmd) Synopsis() string {
	return fmt.Sprintf("display the %s", c.kind.Title())
}

func (c *reportCmd) Usage() string {
	return fmt.Sprintf(`fundperf %s [-data <file>] [-currency CLP|USD] [-funds <name,...>]

  Displays the %s of the selected funds.
  See 'fundperf topic reports' for the meaning of each column.
`, c.Name(), c.kind.Title())
}

func (c *reportCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	reporter, cur, funds, status := c.request()
	if status != subcommands.ExitSuccess {
		return status
	}
	report, err := reporter.Report(c.kind, cur, funds)
	if err != nil {
		return printState(err)
	}
	printMarkdown(renderer.RenderReport(renderer.NewReport(report)))
	return subcommands.ExitSuccess
}
