package export

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func solid(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{0x42, 0x99, 0xe1, 0xff})
		}
	}
	return img
}

func TestFormatFor(t *testing.T) {
	tests := []struct {
		path string
		want Format
		err  bool
	}{
		{"out.png", PNG, false},
		{"OUT.PDF", PDF, false},
		{"noext", PNG, false},
		{"out.gif", PNG, true},
	}
	for _, tt := range tests {
		got, err := FormatFor(tt.path)
		if (err != nil) != tt.err {
			t.Fatalf("%s: err %v", tt.path, err)
		}
		if err != nil && !errors.Is(err, ErrUnknownFormat) {
			t.Fatalf("%s: wrong error %v", tt.path, err)
		}
		if err == nil && got != tt.want {
			t.Fatalf("%s: got %v want %v", tt.path, got, tt.want)
		}
	}
}

func TestResolve(t *testing.T) {
	if got := Resolve("/tmp/x", ""); got != filepath.Join("/tmp/x", DefaultName) {
		t.Fatalf("default name: %s", got)
	}
	if got := Resolve("/tmp/x", "/abs/a.png"); got != "/abs/a.png" {
		t.Fatalf("absolute: %s", got)
	}
	if got := Resolve("", "a.pdf"); got != "a.pdf" {
		t.Fatalf("no dir: %s", got)
	}
}

func TestWriteFilePNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", DefaultName)
	if err := WriteFile(path, solid(30, 20), Options{Density: 3}); err != nil {
		t.Fatal(err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	if img.Bounds().Dx() != 30 || img.Bounds().Dy() != 20 {
		t.Fatalf("size %v", img.Bounds())
	}
}

func TestWritePDF(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, solid(60, 30), PDF, Options{Density: 3}); err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")) {
		t.Fatalf("output is not a pdf: %q", buf.Bytes()[:min(buf.Len(), 16)])
	}
	if !bytes.Contains(buf.Bytes(), []byte("/MediaBox [0 0 20.00 10.00]")) {
		t.Fatalf("page not sized to the composition")
	}
}

func TestWriteShadowGrows(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, solid(20, 20), PNG, Options{Shadow: true}); err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if img.Bounds().Dx() <= 20 {
		t.Fatalf("shadow did not expand image: %v", img.Bounds())
	}
}
