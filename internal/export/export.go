// Package export writes a rendered composition to PNG or PDF.
package export

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/example/iconcanvas/internal/render"
)

// DefaultName is the file name used when none is given.
const DefaultName = "Your-Project-ImunoIcons.png"

// ErrUnknownFormat is returned for file extensions other than .png and .pdf.
var ErrUnknownFormat = errors.New("unknown export format")

// Format is an output encoding.
type Format int

const (
	PNG Format = iota
	PDF
)

func (f Format) String() string {
	if f == PDF {
		return "pdf"
	}
	return "png"
}

// FormatFor picks the format from the file extension.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png", "":
		return PNG, nil
	case ".pdf":
		return PDF, nil
	}
	return PNG, fmt.Errorf("%w: %s", ErrUnknownFormat, filepath.Ext(path))
}

// Options controls Write.
type Options struct {
	// Density is the pixels per canvas unit the image was rendered at.
	// PDF pages are sized in canvas units, so it scales the image back.
	Density float64
	// Shadow adds a soft drop shadow around the composition.
	Shadow bool
}

// Resolve returns the output path for name inside dir. An empty name
// uses DefaultName; an absolute name ignores dir.
func Resolve(dir, name string) string {
	if name == "" {
		name = DefaultName
	}
	if filepath.IsAbs(name) || dir == "" {
		return name
	}
	return filepath.Join(dir, name)
}

// Write encodes img to w.
func Write(w io.Writer, img *image.RGBA, f Format, opts Options) error {
	if opts.Shadow {
		img, _ = render.ApplyShadow(img, render.DefaultShadowOptions())
	}
	switch f {
	case PDF:
		return writePDF(w, img, opts.Density)
	default:
		if err := png.Encode(w, img); err != nil {
			return fmt.Errorf("encode png: %w", err)
		}
	}
	return nil
}

// WriteFile encodes img to path, choosing the format from its extension.
func WriteFile(path string, img *image.RGBA, opts Options) error {
	f, err := FormatFor(path)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Write(out, img, f, opts); err != nil {
		if cerr := out.Close(); cerr != nil {
			return fmt.Errorf("%w (closing file: %v)", err, cerr)
		}
		return err
	}
	return out.Close()
}

// writePDF places img on a single page sized to the composition.
func writePDF(w io.Writer, img image.Image, density float64) error {
	if density <= 0 {
		density = 1
	}
	b := img.Bounds()
	pw, ph := float64(b.Dx())/density, float64(b.Dy())/density
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return fmt.Errorf("encode page image: %w", err)
	}
	doc := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "pt",
		Size:    gofpdf.SizeType{Wd: pw, Ht: ph},
	})
	doc.SetMargins(0, 0, 0)
	doc.SetAutoPageBreak(false, 0)
	doc.AddPage()
	opt := gofpdf.ImageOptions{ImageType: "PNG"}
	doc.RegisterImageOptionsReader("composition", opt, &buf)
	doc.ImageOptions("composition", 0, 0, pw, ph, false, opt, 0, "")
	if err := doc.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}
