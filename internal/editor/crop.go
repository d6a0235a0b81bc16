package editor

import (
	"fmt"
	"image"

	"github.com/example/iconcanvas/internal/crop"
	"github.com/example/iconcanvas/internal/history"
	"github.com/example/iconcanvas/internal/scene"
)

// StartCrop opens a crop session on the selection with the overlay
// covering its client rect.
func (s *Session) StartCrop() error {
	n, err := s.unlocked("crop")
	if err != nil {
		return err
	}
	if n.Rotation != 0 {
		return fmt.Errorf("crop %s: %w", n.ID, ErrCropRotated)
	}
	if s.tool != nil {
		s.CancelTool()
	}
	s.drag = nil
	if err := s.crop.Start(n.ID, n.ClientRect()); err != nil {
		return err
	}
	s.changed()
	return nil
}

// Cropping reports whether a crop session is open.
func (s *Session) Cropping() bool { return s.crop.Active() }

// CropOverlay returns the current overlay rectangle.
func (s *Session) CropOverlay() (scene.Rect, bool) {
	if !s.crop.Active() {
		return scene.Rect{}, false
	}
	return s.crop.Session().Overlay, true
}

// ProposeCrop sets the overlay directly. A rectangle that leaves the
// target's bounds is refused and the previous overlay kept.
func (s *Session) ProposeCrop(r scene.Rect) bool {
	ok := s.crop.Propose(r)
	if ok {
		s.changed()
	}
	return ok
}

// CancelCrop closes the session leaving the target untouched.
func (s *Session) CancelCrop() {
	if !s.crop.Active() {
		return
	}
	s.crop.Cancel()
	s.drag = nil
	s.changed()
}

// ConfirmCrop closes the session and, for image targets, replaces the
// bitmap with the overlay's region. The resample runs on the executor;
// its completion gives up if the target was removed, locked or changed
// in the meantime.
func (s *Session) ConfirmCrop() error {
	sess, err := s.crop.Finish()
	if err != nil {
		return err
	}
	s.drag = nil
	s.changed()
	n, err := s.scene.Node(sess.Target)
	if err != nil {
		return err
	}
	if n.Kind != scene.KindImage {
		return nil
	}
	if n.Image == nil || n.Image.Bitmap == nil {
		return fmt.Errorf("crop %s: %w", n.ID, ErrResourceUnavailable)
	}
	w, h := n.Image.NaturalSize()
	flipX, flipY := n.ScaleX < 0, n.ScaleY < 0
	region, err := crop.Region(image.Pt(w, h), sess.Bounds, sess.Overlay, flipX, flipY)
	if err != nil {
		return fmt.Errorf("crop %s: %w", n.ID, err)
	}
	before := n.State()
	src := n.Image.Bitmap
	overlay := sess.Overlay
	s.exec.Go(func() func() {
		out, err := crop.Resample(src, region)
		return func() {
			if err != nil {
				s.logf("crop %s: %v", before.ID, err)
				return
			}
			s.applyCrop(before, out, overlay, flipX, flipY)
		}
	})
	return nil
}

func (s *Session) applyCrop(before scene.State, img image.Image, overlay scene.Rect, flipX, flipY bool) {
	cur, err := s.scene.Snapshot(before.ID)
	switch {
	case err != nil:
		s.logf("crop %s: target removed, discarding result", before.ID)
		return
	case cur.Locked:
		s.logf("crop %s: target locked, discarding result", before.ID)
		return
	case !cur.Equal(before):
		s.logf("crop %s: target changed, discarding result", before.ID)
		return
	}
	sx, sy := 1.0, 1.0
	x, y := overlay.X, overlay.Y
	if flipX {
		sx, x = -1, overlay.X+overlay.Width
	}
	if flipY {
		sy, y = -1, overlay.Y+overlay.Height
	}
	_ = s.mutate(history.Crop, before.ID, func(n *scene.Node) {
		n.Image = &scene.ImageData{Bitmap: img, Source: n.Image.Source}
		n.X, n.Y = x, y
		n.Width, n.Height = overlay.Width, overlay.Height
		n.ScaleX, n.ScaleY = sx, sy
	})
}
