package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/fundperf/docs"
	"github.com/google/subcommands"
)

// topicCmd prints the embedded documentation.
type topicCmd struct {
	list bool
}

func (*topicCmd) Name() string     { return "topic" }
func (*topicCmd) Synopsis() string { return "read the fundperf documentation" }
func (*topicCmd) Usage() string {
	return `fundperf topic [-list] [<topic>...]

  Prints the documentation topics, the overview when none is given.
  '*' prints every topic. The same topics are served under /help by 'fundperf serve'.
`
}

func (c *topicCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.list, "list", false, "list the available topics")
}

func (c *topicCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	all, err := docs.GetAllTopics()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error listing topics: %v\n", err)
		return subcommands.ExitFailure
	}
	if c.list {
		printMarkdown(topicList(all))
		return subcommands.ExitSuccess
	}

	names := f.Args()
	if len(names) == 0 {
		names = []string{"readme"}
	}
	doc, err := docs.GetTopics(names...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n%s", err, topicList(all))
		return subcommands.ExitUsageError
	}
	printMarkdown(doc)
	return subcommands.ExitSuccess
}

// topicList is the markdown list of topic names.
func topicList(topics []string) string {
	var b strings.Builder
	b.WriteString("Topics:\n\n")
	for _, t := range topics {
		fmt.Fprintf(&b, "* %s\n", t)
	}
	return b.String()
}
