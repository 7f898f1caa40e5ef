package cmd

import (
	"flag"

	"github.com/etnz/costbasis"
	"github.com/etnz/costbasis/docs"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// Complete answers shell completion requests and exits when the process was
// started by the shell for that purpose. Otherwise it returns.
//
// Install with COMP_INSTALL=1 btcb.
func Complete(name string) {
	completion(flag.CommandLine, Commands).Complete(name)
}

// completion describes the commands and their flags to the shell.
func completion(global *flag.FlagSet, commands []subcommands.Command) *complete.Command {
	root := &complete.Command{
		Sub:   make(map[string]*complete.Command),
		Flags: flagPredictors(global),
	}
	for _, c := range commands {
		fs := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
		c.SetFlags(fs)
		sub := &complete.Command{Flags: flagPredictors(fs)}
		switch c.Name() {
		case "topic":
			sub.Args = topicNames{}
		case "import":
			sub.Args = predict.Files("*.jsonl")
		}
		root.Sub[c.Name()] = sub
	}
	return root
}

func flagPredictors(fs *flag.FlagSet) map[string]complete.Predictor {
	flags := make(map[string]complete.Predictor)
	fs.VisitAll(func(f *flag.Flag) {
		flags[f.Name] = flagPredictor(f)
	})
	return flags
}

func flagPredictor(f *flag.Flag) complete.Predictor {
	switch f.Name {
	case "m":
		var methods predict.Set
		for _, m := range costbasis.Methods {
			methods = append(methods, m.String())
		}
		return methods
	case "config":
		return predict.Files("*.ini")
	case "ledger-file":
		return predict.Files("*.jsonl")
	case "html":
		return predict.Files("*.html")
	}
	if b, ok := f.Value.(interface{ IsBoolFlag() bool }); ok && b.IsBoolFlag() {
		return predict.Nothing
	}
	return predict.Something
}

// topicNames predicts documentation topics.
type topicNames struct{}

func (topicNames) Predict(prefix string) []string {
	topics, err := docs.Topics()
	if err != nil {
		return nil
	}
	names := []string{"readme"}
	for _, t := range topics {
		names = append(names, t.Name)
	}
	return names
}
