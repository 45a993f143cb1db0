package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/fwojciec/snapsearch/yaml"
)

// Run executes the regions command.
func (c *RegionsCmd) Run(deps *Dependencies) error {
	if c.YAML {
		return yaml.EncodeConfig(deps.Stdout, deps.Config)
	}

	tw := tabwriter.NewWriter(deps.Stdout, 0, 4, 2, ' ', 0)
	for i, r := range deps.Config.Regions {
		fmt.Fprintf(tw, "%d\t%s\t%s\n", i+1, r.Slug, r.Name)
	}
	return tw.Flush()
}
