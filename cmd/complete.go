package cmd

import (
	"flag"

	"github.com/etnz/fundperf"
	"github.com/etnz/fundperf/docs"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// Completion returns the shell completion tree of the commands registered in c.
func Completion(c *subcommands.Commander) *complete.Command {
	root := &complete.Command{
		Sub:   make(map[string]*complete.Command),
		Flags: make(map[string]complete.Predictor),
	}
	c.VisitAll(func(f *flag.Flag) { root.Flags[f.Name] = predictFlag(f.Name) })
	c.VisitCommands(func(_ *subcommands.CommandGroup, sub subcommands.Command) {
		fs := flag.NewFlagSet(sub.Name(), flag.ContinueOnError)
		sub.SetFlags(fs)
		node := &complete.Command{Flags: make(map[string]complete.Predictor)}
		fs.VisitAll(func(f *flag.Flag) { node.Flags[f.Name] = predictFlag(f.Name) })
		if sub.Name() == "topic" {
			node.Args = complete.PredictFunc(predictTopics)
		}
		root.Sub[sub.Name()] = node
	})
	return root
}

// predictFlag returns the predictor of a flag value, by flag name.
func predictFlag(name string) complete.Predictor {
	switch name {
	case "data":
		return predict.Files("*.xlsx")
	case "png":
		return predict.Files("*.png")
	case "currency":
		set := make(predict.Set, len(fundperf.Currencies))
		for i, cur := range fundperf.Currencies {
			set[i] = string(cur)
		}
		return set
	case "window":
		set := make(predict.Set, len(fundperf.Windows))
		for i, w := range fundperf.Windows {
			set[i] = string(w)
		}
		return set
	case "funds":
		return complete.PredictFunc(predictFunds)
	case "raw":
		return predict.Nothing
	}
	return predict.Something
}

// predictFunds suggests the fund names of the default workbook.
func predictFunds(string) []string {
	store, err := fundperf.Load()
	if err != nil {
		return nil
	}
	var names []string
	for _, f := range store.Funds() {
		names = append(names, f.Name)
	}
	return names
}

func predictTopics(string) []string {
	topics, err := docs.GetAllTopics()
	if err != nil {
		return nil
	}
	return topics
}
