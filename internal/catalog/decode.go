package catalog

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"math"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

const (
	// SVGRasterSize is the longest side, in pixels, an SVG icon is rasterized at.
	SVGRasterSize = 256
	// MaxNaturalSize caps the longest side of decoded raster images.
	MaxNaturalSize = 2048
)

// Decode turns icon bytes into a bitmap. name is only used to pick the
// SVG path; other content is sniffed by image.Decode.
func Decode(r io.Reader, name string) (image.Image, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if strings.HasSuffix(strings.ToLower(name), ".svg") || looksLikeSVG(data) {
		return decodeSVG(data)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", name, err)
	}
	b := img.Bounds()
	if b.Dx() > MaxNaturalSize || b.Dy() > MaxNaturalSize {
		return imaging.Fit(img, MaxNaturalSize, MaxNaturalSize, imaging.Lanczos), nil
	}
	return img, nil
}

func looksLikeSVG(data []byte) bool {
	head := data
	if len(head) > 512 {
		head = head[:512]
	}
	return bytes.Contains(head, []byte("<svg"))
}

func decodeSVG(data []byte) (image.Image, error) {
	icon, err := oksvg.ReadIconStream(bytes.NewReader(data), oksvg.WarnErrorMode)
	if err != nil {
		return nil, fmt.Errorf("decode svg: %w", err)
	}
	vw, vh := icon.ViewBox.W, icon.ViewBox.H
	if vw <= 0 || vh <= 0 {
		return nil, fmt.Errorf("decode svg: empty viewBox")
	}
	k := SVGRasterSize / math.Max(vw, vh)
	w, h := int(math.Ceil(vw*k)), int(math.Ceil(vh*k))
	icon.SetTarget(0, 0, float64(w), float64(h))
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	scanner := rasterx.NewScannerGV(w, h, img, img.Bounds())
	icon.Draw(rasterx.NewDasher(w, h, scanner), 1)
	return img, nil
}

// LoadImage opens and decodes url.
func (c *Catalog) LoadImage(url string) (image.Image, error) {
	rc, err := c.Open(url)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	img, err := Decode(rc, url)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", url, err)
	}
	return img, nil
}
