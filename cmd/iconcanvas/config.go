package main

import (
	"flag"
	"fmt"

	"github.com/example/iconcanvas/internal/config"
)

type configCmd struct {
	*root
	fs     *flag.FlagSet
	output string
}

func (c *configCmd) Program() string        { return c.root.subcommand("config") }
func (c *configCmd) FlagSet() *flag.FlagSet { return c.fs }

func parseConfigCmd(args []string, r *root) (*configCmd, error) {
	fs := flag.NewFlagSet("config", flag.ExitOnError)
	c := &configCmd{root: r, fs: fs}
	fs.Usage = usageFunc(c)
	fs.StringVar(&c.output, "output", "", "file written by save (default: the loaded config, or the user config dir)")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *configCmd) Run() error {
	args := c.fs.Args()
	if len(args) < 1 {
		return &UsageError{of: c}
	}
	switch args[0] {
	case "print":
		fmt.Fprint(c.stdout, c.root.config.String())
		return nil
	case "save":
		return c.runSave()
	default:
		return fmt.Errorf("unknown config command: %s", args[0])
	}
}

func (c *configCmd) runSave() error {
	path := c.output
	if path == "" {
		path = config.NewLoader(version, c.configPath).GetConfigPath()
	}
	if path == "" {
		path = config.DefaultPath()
	}
	if err := c.root.config.Save(path); err != nil {
		return err
	}
	fmt.Fprintf(c.stderr, "Configuration saved to %s\n", path)
	return nil
}
