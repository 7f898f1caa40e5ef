package cmd

import (
	"flag"
	"slices"
	"testing"
)

func TestCompletion(t *testing.T) {
	root := completion(flag.CommandLine, Commands)

	for _, c := range Commands {
		if root.Sub[c.Name()] == nil {
			t.Errorf("no completion for %q", c.Name())
		}
	}
	if root.Flags["ledger-file"] == nil || root.Flags["price-fixed"] == nil {
		t.Errorf("global flags are not completed: %v", root.Flags)
	}

	m := root.Sub["basis"].Flags["m"]
	if m == nil {
		t.Fatal("basis -m is not completed")
	}
	if got := m.Predict(""); !slices.Equal(got, []string{"fifo", "lifo", "average", "hifo"}) {
		t.Errorf("basis -m predicts %v, want the methods", got)
	}
	if got := root.Sub["topic"].Args.Predict(""); !slices.Contains(got, "methods") {
		t.Errorf("topic predicts %v, want it to contain methods", got)
	}
}
