package config

import (
	"fmt"
	"sort"
	"strings"

	"github.com/example/iconcanvas/internal/theme"
)

// Notify holds notification settings.
type Notify struct {
	Export  bool
	Copy    bool
	Capture bool
}

// Config holds the application configuration.
type Config struct {
	Theme         string
	SaveDir       string
	CanvasColor   string
	Grid          bool
	GridSpacing   int
	RulerStep     int
	ExportDensity float64
	Catalog       string
	Notify        Notify
	Themes        map[string]*theme.Theme
}

// New creates a new Config with defaults.
func New() *Config {
	return &Config{
		CanvasColor:   "#FFFFFF",
		Grid:          true,
		GridSpacing:   20,
		RulerStep:     50,
		ExportDensity: 3,
		Themes:        make(map[string]*theme.Theme),
	}
}

// String implements fmt.Stringer and returns the configuration in RC format.
func (c *Config) String() string {
	var sb strings.Builder

	if c.Theme != "" {
		fmt.Fprintf(&sb, "theme = %s\n", c.Theme)
	}
	if c.SaveDir != "" {
		fmt.Fprintf(&sb, "save_dir = %s\n", c.SaveDir)
	}
	if c.Catalog != "" {
		fmt.Fprintf(&sb, "catalog = %s\n", c.Catalog)
	}
	fmt.Fprintf(&sb, "canvas_color = %s\n", c.CanvasColor)
	fmt.Fprintf(&sb, "grid = %v\n", c.Grid)
	fmt.Fprintf(&sb, "grid_spacing = %d\n", c.GridSpacing)
	fmt.Fprintf(&sb, "ruler_step = %d\n", c.RulerStep)
	fmt.Fprintf(&sb, "export_density = %g\n", c.ExportDensity)
	sb.WriteString("\n")

	sb.WriteString("[notify]\n")
	fmt.Fprintf(&sb, "export = %v\n", c.Notify.Export)
	fmt.Fprintf(&sb, "copy = %v\n", c.Notify.Copy)
	fmt.Fprintf(&sb, "capture = %v\n", c.Notify.Capture)
	sb.WriteString("\n")

	var themeNames []string
	for name := range c.Themes {
		themeNames = append(themeNames, name)
	}
	sort.Strings(themeNames)

	for _, name := range themeNames {
		t := c.Themes[name]
		fmt.Fprintf(&sb, "[theme.%s]\n", name)
		fmt.Fprintf(&sb, "Name: %s\n", t.Name)
		for _, f := range theme.Fields(t) {
			fmt.Fprintf(&sb, "%s: %s\n", f.Name, theme.Hex(f.Color))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}
