package editor

import (
	"fmt"
	"image"

	"github.com/example/iconcanvas/internal/history"
	"github.com/example/iconcanvas/internal/scene"
)

// Copy holds a detached deep copy of the selection.
func (s *Session) Copy() error {
	n := s.Selected()
	if n == nil {
		return fmt.Errorf("copy: %w", ErrNoSelection)
	}
	s.clip = n.Clone()
	s.changed()
	return nil
}

// Cut copies the selection and removes it.
func (s *Session) Cut() error {
	n, err := s.unlocked("cut")
	if err != nil {
		return err
	}
	s.clip = n.Clone()
	return s.removeNode(history.Cut, n)
}

// Paste inserts a fresh clone of the clipboard offset by PasteOffset on
// both axes and selects it. The clipboard keeps its own copy so repeated
// pastes land on the same spot with distinct ids.
func (s *Session) Paste() error {
	if s.clip == nil {
		return ErrEmptyClipboard
	}
	n := s.clip.Clone()
	n.X += PasteOffset
	n.Y += PasteOffset
	return s.AddNode(n)
}

// ClipboardNode returns the held copy, or nil.
func (s *Session) ClipboardNode() *scene.Node { return s.clip }

// CopyImage puts the rendered composition on the system clipboard.
func (s *Session) CopyImage() error {
	if s.clipboard == nil {
		return fmt.Errorf("copy image: %w", ErrUnavailable)
	}
	if err := s.clipboard.WriteImage(s.RenderToImage(1)); err != nil {
		return fmt.Errorf("copy image: %w", err)
	}
	return nil
}

// PasteImage imports the system clipboard image as a new Image node at
// the stage origin, keeping its pixel size.
func (s *Session) PasteImage() error {
	if s.clipboard == nil {
		return fmt.Errorf("paste image: %w", ErrUnavailable)
	}
	img, err := s.clipboard.ReadImage()
	if err != nil {
		return fmt.Errorf("paste image: %w", err)
	}
	if img == nil {
		return ErrEmptyClipboard
	}
	return s.addBitmap(img, "clipboard", 0, 0, 0, 0)
}

// addBitmap adds img as an Image node. A zero w or h uses the bitmap size.
func (s *Session) addBitmap(img image.Image, source string, x, y, w, h float64) error {
	b := img.Bounds()
	if b.Empty() {
		return fmt.Errorf("%s: %w", source, ErrResourceUnavailable)
	}
	if w <= 0 || h <= 0 {
		w, h = float64(b.Dx()), float64(b.Dy())
	}
	n := scene.NewNode(scene.KindImage)
	n.Name = source
	n.X, n.Y, n.Width, n.Height = x, y, w, h
	n.Image = &scene.ImageData{Bitmap: img, Source: source}
	return s.AddNode(n)
}
