package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	input := `
theme = my_custom_theme
save_dir = /tmp/diagrams
canvas_color = "#EEEEEE"
grid = false
grid_spacing = 25
export_density = 2

[notify]
export = true
copy = false
capture = true

[theme.my_custom_theme]
Background = #111111
GridLine: #222222
`
	cfg, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if cfg.Theme != "my_custom_theme" {
		t.Errorf("Expected theme 'my_custom_theme', got '%s'", cfg.Theme)
	}
	if cfg.SaveDir != "/tmp/diagrams" {
		t.Errorf("Expected save_dir '/tmp/diagrams', got '%s'", cfg.SaveDir)
	}
	if cfg.CanvasColor != "#EEEEEE" {
		t.Errorf("canvas color %q", cfg.CanvasColor)
	}
	if cfg.Grid {
		t.Error("Expected grid off")
	}
	if cfg.GridSpacing != 25 || cfg.RulerStep != 50 {
		t.Errorf("spacing %d step %d", cfg.GridSpacing, cfg.RulerStep)
	}
	if cfg.ExportDensity != 2 {
		t.Errorf("density %v", cfg.ExportDensity)
	}
	if !cfg.Notify.Export || cfg.Notify.Copy || !cfg.Notify.Capture {
		t.Errorf("notify %+v", cfg.Notify)
	}

	th, ok := cfg.Themes["my_custom_theme"]
	if !ok {
		t.Fatal("Expected theme 'my_custom_theme' to be loaded")
	}
	if th.Background.R != 0x11 || th.GridLine.R != 0x22 {
		t.Errorf("Unexpected colors: %+v %+v", th.Background, th.GridLine)
	}
}

func TestParseRejectsBadValues(t *testing.T) {
	for _, in := range []string{
		"grid_spacing = 0",
		"export_density = -1",
		"canvas_color = red",
		"[notify]\nexport = maybe",
	} {
		if _, err := Parse(strings.NewReader(in)); err == nil {
			t.Errorf("Parse(%q) expected error", in)
		}
	}
}

func TestCircular(t *testing.T) {
	input := `theme = dark
save_dir = /home/user/diagrams
ruler_step = 40

[notify]
export = true
copy = true

[theme.custom]
Name = custom
Background = #000000
HandleStroke = #FF0000
`
	cfg, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Initial parse failed: %v", err)
	}
	cfg2, err := Parse(strings.NewReader(cfg.String()))
	if err != nil {
		t.Fatalf("Circular parse failed: %v", err)
	}

	if cfg.Theme != cfg2.Theme || cfg.SaveDir != cfg2.SaveDir || cfg.RulerStep != cfg2.RulerStep {
		t.Errorf("root mismatch: %+v vs %+v", cfg, cfg2)
	}
	if cfg.Notify != cfg2.Notify {
		t.Errorf("Notify mismatch: %+v vs %+v", cfg.Notify, cfg2.Notify)
	}
	t1, t2 := cfg.Themes["custom"], cfg2.Themes["custom"]
	if t1 == nil || t2 == nil {
		t.Fatalf("Custom theme missing in one config")
	}
	if *t1 != *t2 {
		t.Errorf("Theme mismatch: %+v vs %+v", t1, t2)
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("ICONCANVAS_SAVE_DIR", "/env/dir")
	t.Setenv("ICONCANVAS_GRID", "false")
	t.Setenv("ICONCANVAS_EXPORT_DENSITY", "1.5")

	cfg := New()
	cfg.Theme = "dark"
	if err := cfg.ApplyEnv(); err != nil {
		t.Fatalf("ApplyEnv: %v", err)
	}
	if cfg.SaveDir != "/env/dir" || cfg.Grid || cfg.ExportDensity != 1.5 {
		t.Errorf("env not applied: %+v", cfg)
	}
	if cfg.Theme != "dark" {
		t.Errorf("unset variable overwrote theme: %q", cfg.Theme)
	}

	t.Setenv("ICONCANVAS_CANVAS_COLOR", "blue")
	if err := New().ApplyEnv(); err == nil {
		t.Error("expected error for bad canvas color")
	}
}

func TestLoaderOverrideAndSave(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "test.rc")
	cfg := New()
	cfg.SaveDir = "/saved"
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("stat: %v", err)
	}

	got, err := NewLoader("1.0", path).Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.SaveDir != "/saved" {
		t.Errorf("save dir %q", got.SaveDir)
	}
}
