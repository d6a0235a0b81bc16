// Package clipboard moves PNG images between the editor and the system
// clipboard.
package clipboard

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"runtime"
	"sync"
)

var (
	// ErrNoImage means the clipboard holds no PNG data.
	ErrNoImage = errors.New("clipboard does not contain image data")

	errNoDisplay   = errors.New("clipboard requires DISPLAY or WAYLAND_DISPLAY")
	errUnsupported = errors.New("clipboard images are not supported on this platform")

	initOnce sync.Once
	initErr  error
)

func hasDisplay() bool {
	switch runtime.GOOS {
	case "windows", "darwin":
		return true
	}
	return os.Getenv("DISPLAY") != "" || os.Getenv("WAYLAND_DISPLAY") != ""
}

func ensureInit() error {
	initOnce.Do(func() {
		if !hasDisplay() {
			initErr = errNoDisplay
			return
		}
		initErr = initBackend()
	})
	return initErr
}

// WriteImage publishes img as image/png.
func WriteImage(img image.Image) error {
	if err := ensureInit(); err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return fmt.Errorf("encode clipboard image: %w", err)
	}
	return writePNG(buf.Bytes())
}

// ReadImage returns the clipboard's image/png content.
func ReadImage() (image.Image, error) {
	if err := ensureInit(); err != nil {
		return nil, err
	}
	data, err := readPNG()
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, ErrNoImage
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode clipboard image: %w", err)
	}
	return img, nil
}

// System is the process wide clipboard as a value the editor can hold.
type System struct{}

// WriteImage implements editor.ImageClipboard.
func (System) WriteImage(img image.Image) error { return WriteImage(img) }

// ReadImage implements editor.ImageClipboard.
func (System) ReadImage() (image.Image, error) { return ReadImage() }
