package cmd

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/etnz/fundperf"
	"github.com/google/subcommands"
)

// fundsCmd lists the funds of the workbook.
type fundsCmd struct {
	dataFlags
}

func (*fundsCmd) Name() string     { return "funds" }
func (*fundsCmd) Synopsis() string { return "list the funds and their latest prices" }
func (*fundsCmd) Usage() string {
	return `fundperf funds [-data <file>]

  Lists the funds of the workbook, in workbook order, with their latest price in each currency.
`
}

func (c *fundsCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	store, err := c.open()
	if err != nil {
		return printState(err)
	}
	if !store.Loaded() {
		return printState(fundperf.ErrNoData)
	}
	printMarkdown(fundsMarkdown(store))
	return subcommands.ExitSuccess
}

func fundsMarkdown(store *fundperf.Store) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Funds\n\nSource: %s\n\n", store.Source())
	fmt.Fprint(&b, "| Fund | Series |")
	for _, cur := range fundperf.Currencies {
		fmt.Fprintf(&b, " %s |", cur)
	}
	fmt.Fprint(&b, "\n|:---|:---|")
	for range fundperf.Currencies {
		fmt.Fprint(&b, "---:|")
	}
	fmt.Fprintln(&b)

	for _, f := range store.Funds() {
		fmt.Fprintf(&b, "| %s | %s |", f.Name, f.Series)
		for _, cur := range fundperf.Currencies {
			day, price, ok := store.Latest(f.Name, cur)
			if !ok {
				fmt.Fprint(&b, " - |")
				continue
			}
			fmt.Fprintf(&b, " %s (%s) |", cur.Format(price), day)
		}
		fmt.Fprintln(&b)
	}
	return b.String()
}
