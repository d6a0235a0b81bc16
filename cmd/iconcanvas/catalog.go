package main

import (
	"flag"
	"fmt"
	"strings"
	"text/tabwriter"
)

type catalogCmd struct {
	*root
	fs       *flag.FlagSet
	category string
	urls     bool
}

func (c *catalogCmd) Program() string        { return c.root.subcommand("catalog") }
func (c *catalogCmd) FlagSet() *flag.FlagSet { return c.fs }

func parseCatalogCmd(args []string, r *root) (*catalogCmd, error) {
	fs := flag.NewFlagSet("catalog", flag.ExitOnError)
	c := &catalogCmd{root: r, fs: fs}
	fs.Usage = usageFunc(c)
	fs.StringVar(&c.category, "category", "", "only list icons whose category starts with this path")
	fs.BoolVar(&c.urls, "urls", false, "print the icon urls")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 {
		return nil, &UsageError{of: c}
	}
	return c, nil
}

func (c *catalogCmd) Run() error {
	cat, err := c.loadCatalog()
	if err != nil {
		return err
	}
	icons := cat.All()
	tw := tabwriter.NewWriter(c.stdout, 0, 4, 2, ' ', 0)
	n := 0
	for _, ic := range icons {
		if c.category != "" && !strings.HasPrefix(strings.ToLower(ic.Category), strings.ToLower(c.category)) {
			continue
		}
		n++
		if c.urls {
			fmt.Fprintf(tw, "%s\t%s\t%s\n", ic.Category, ic.ID, ic.URL)
		} else {
			fmt.Fprintf(tw, "%s\t%s\n", ic.Category, ic.ID)
		}
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	if n == 0 {
		fmt.Fprintln(c.stdout, "no icons available")
	}
	return nil
}
