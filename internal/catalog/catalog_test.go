package catalog

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultCatalog(t *testing.T) {
	c, err := Default()
	if err != nil {
		t.Fatalf("Default: %v", err)
	}
	all := c.All()
	if len(all) == 0 {
		t.Fatal("empty catalog")
	}
	mito, err := c.Find("mitochondrion")
	if err != nil {
		t.Fatal(err)
	}
	if mito.Category != "Cells and Organelles/Organelles" {
		t.Errorf("category %q", mito.Category)
	}
	if _, err := c.Find("unicorn"); !errors.Is(err, ErrUnknownIcon) {
		t.Errorf("err = %v", err)
	}
}

func TestEveryEmbeddedIconDecodes(t *testing.T) {
	c, err := Default()
	if err != nil {
		t.Fatal(err)
	}
	for _, ic := range c.All() {
		img, err := c.LoadImage(ic.URL)
		if err != nil {
			t.Errorf("%s: %v", ic.ID, err)
			continue
		}
		b := img.Bounds()
		if b.Dx() != SVGRasterSize || b.Dy() != SVGRasterSize {
			t.Errorf("%s: bounds %v", ic.ID, b)
		}
	}
}

func TestParseRejectsDuplicatesAndBlanks(t *testing.T) {
	dup := "categories:\n  - name: A\n    icons:\n      - {id: x, url: a.svg}\n      - {id: x, url: b.svg}\n"
	if _, err := Parse(strings.NewReader(dup), ""); err == nil {
		t.Error("duplicate id accepted")
	}
	blank := "categories:\n  - name: A\n    icons:\n      - {id: x}\n"
	if _, err := Parse(strings.NewReader(blank), ""); err == nil {
		t.Error("missing url accepted")
	}
	if _, err := Parse(strings.NewReader("categorys: []\n"), ""); err == nil {
		t.Error("unknown field accepted")
	}
}

func TestFileURLRelativeToCatalog(t *testing.T) {
	dir := t.TempDir()
	img := image.NewRGBA(image.Rect(0, 0, 3, 2))
	img.Set(1, 1, color.RGBA{255, 0, 0, 255})
	f, err := os.Create(filepath.Join(dir, "dot.png"))
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	f.Close()
	yml := "categories:\n  - name: Mine\n    icons:\n      - {id: dot, url: \"file:dot.png\"}\n"
	path := filepath.Join(dir, "catalog.yaml")
	if err := os.WriteFile(path, []byte(yml), 0o644); err != nil {
		t.Fatal(err)
	}

	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	got, err := c.LoadImage("file:dot.png")
	if err != nil {
		t.Fatalf("LoadImage: %v", err)
	}
	if got.Bounds().Dx() != 3 || got.Bounds().Dy() != 2 {
		t.Fatalf("bounds %v", got.Bounds())
	}
	if _, err := c.LoadImage("https://example.com/x.svg"); err == nil {
		t.Error("network url should be rejected")
	}
}
