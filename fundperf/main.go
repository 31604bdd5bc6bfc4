package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/etnz/fundperf/cmd"
	"github.com/google/subcommands"
)

func main() {
	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	cmd.Register(commander)

	// Exits when invoked by the shell to complete a command line.
	cmd.Completion(commander).Complete("fundperf")

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
