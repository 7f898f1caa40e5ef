package cmd

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/costbasis"
	"github.com/etnz/costbasis/renderer"
	"github.com/google/subcommands"
)

// methodValue is a cost basis method flag.
type methodValue costbasis.CostBasisMethod

func (m *methodValue) String() string { return costbasis.CostBasisMethod(*m).String() }

func (m *methodValue) Set(s string) error {
	v, err := costbasis.ParseCostBasisMethod(s)
	if err != nil {
		return err
	}
	*m = methodValue(v)
	return nil
}

func (m methodValue) method() costbasis.CostBasisMethod { return costbasis.CostBasisMethod(m) }

// output holds the flags shared by report commands.
type output struct {
	json bool
	html string
}

func (o *output) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&o.json, "json", false, "Print the report as JSON")
	f.StringVar(&o.html, "html", "", "Also write the report as an HTML fragment to this file")
}

// print writes the report, as markdown or v as JSON.
func (o *output) print(md string, v any) subcommands.ExitStatus {
	if o.json {
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return failure(fmt.Errorf("could not encode report: %w", err))
		}
		fmt.Fprintln(stdout, string(data))
	} else {
		printMarkdown(md)
	}

	if o.html != "" {
		page, err := renderer.HTML(md)
		if err != nil {
			return failure(err)
		}
		if err := os.WriteFile(o.html, []byte(page), 0644); err != nil {
			return failure(fmt.Errorf("could not write html report: %w", err))
		}
	}
	return subcommands.ExitSuccess
}
