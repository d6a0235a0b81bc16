package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"

	"github.com/example/iconcanvas/internal/theme"
)

// EnvPrefix is the prefix of environment overrides, e.g. ICONCANVAS_SAVE_DIR.
const EnvPrefix = "ICONCANVAS"

// env mirrors the root keys of the RC file. Unset variables leave the
// pointers nil so file values survive.
type env struct {
	Theme         *string  `envconfig:"THEME"`
	SaveDir       *string  `envconfig:"SAVE_DIR"`
	Catalog       *string  `envconfig:"CATALOG"`
	CanvasColor   *string  `envconfig:"CANVAS_COLOR"`
	Grid          *bool    `envconfig:"GRID"`
	GridSpacing   *int     `envconfig:"GRID_SPACING"`
	RulerStep     *int     `envconfig:"RULER_STEP"`
	ExportDensity *float64 `envconfig:"EXPORT_DENSITY"`
}

// ApplyEnv overlays ICONCANVAS_* environment variables onto c.
func (c *Config) ApplyEnv() error {
	var e env
	if err := envconfig.Process(EnvPrefix, &e); err != nil {
		return fmt.Errorf("environment: %w", err)
	}
	if e.Theme != nil {
		c.Theme = *e.Theme
	}
	if e.SaveDir != nil {
		c.SaveDir = *e.SaveDir
	}
	if e.Catalog != nil {
		c.Catalog = *e.Catalog
	}
	if e.CanvasColor != nil {
		if _, err := theme.ParseColor(*e.CanvasColor); err != nil {
			return fmt.Errorf("environment: %s_CANVAS_COLOR: %w", EnvPrefix, err)
		}
		c.CanvasColor = *e.CanvasColor
	}
	if e.Grid != nil {
		c.Grid = *e.Grid
	}
	if e.GridSpacing != nil && *e.GridSpacing > 0 {
		c.GridSpacing = *e.GridSpacing
	}
	if e.RulerStep != nil && *e.RulerStep > 0 {
		c.RulerStep = *e.RulerStep
	}
	if e.ExportDensity != nil && *e.ExportDensity > 0 {
		c.ExportDensity = *e.ExportDensity
	}
	return nil
}
