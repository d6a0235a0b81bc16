package render

import (
	"log"
	"math"
	"strings"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

var (
	fontOnce  sync.Once
	fontData  *opentype.Font
	faceMu    sync.Mutex
	faceCache = map[int]font.Face{}
)

// Face returns a Go Regular face of the given pixel size. Every family
// name maps to the same embedded font.
func Face(size float64) font.Face {
	fontOnce.Do(func() {
		f, err := opentype.Parse(goregular.TTF)
		if err != nil {
			log.Printf("parse font: %v", err)
			return
		}
		fontData = f
	})
	if fontData == nil {
		return nil
	}
	px := int(math.Round(size))
	if px < 1 {
		px = 1
	}
	faceMu.Lock()
	defer faceMu.Unlock()
	if face, ok := faceCache[px]; ok {
		return face
	}
	face, err := opentype.NewFace(fontData, &opentype.FaceOptions{Size: float64(px), DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		log.Printf("new face %d: %v", px, err)
		return nil
	}
	faceCache[px] = face
	return face
}

// WrapText breaks text into lines no wider than width pixels when drawn
// with face. Explicit newlines are kept; a single word wider than width
// gets a line of its own.
func WrapText(face font.Face, text string, width float64) []string {
	if face == nil {
		return strings.Split(text, "\n")
	}
	limit := fixed.Int26_6(width * 64)
	var lines []string
	for _, para := range strings.Split(text, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}
		cur := words[0]
		for _, w := range words[1:] {
			next := cur + " " + w
			if width > 0 && font.MeasureString(face, next) > limit {
				lines = append(lines, cur)
				cur = w
				continue
			}
			cur = next
		}
		lines = append(lines, cur)
	}
	return lines
}
