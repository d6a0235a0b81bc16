package editor

import (
	"fmt"
	"math"

	"github.com/example/iconcanvas/internal/history"
	"github.com/example/iconcanvas/internal/scene"
)

// Delete removes the selected node.
func (s *Session) Delete() error {
	n, err := s.unlocked("delete")
	if err != nil {
		return err
	}
	return s.removeNode(history.Remove, n)
}

func (s *Session) removeNode(action history.Action, n *scene.Node) error {
	p, err := s.scene.Placement(n.ID)
	if err != nil {
		return err
	}
	s.detach(n.ID)
	s.recordRemoval(action, n, p)
	return nil
}

// Remove deletes id regardless of selection, unless it is locked.
func (s *Session) Remove(id string) error {
	n, err := s.scene.Node(id)
	if err != nil {
		return err
	}
	n = n.Root()
	if n.Locked {
		return fmt.Errorf("remove %s: %w", n.ID, ErrLocked)
	}
	return s.removeNode(history.Remove, n)
}

// AddNode inserts n on top of the content layer, selects it and records add.
func (s *Session) AddNode(n *scene.Node) error {
	if err := s.scene.Add(n, scene.LayerContent); err != nil {
		return err
	}
	p, _ := s.scene.Placement(n.ID)
	s.selectID(n.ID)
	s.recordInsert(history.Add, n, p)
	return nil
}

// MoveSelected translates the selection by dx, dy canvas units.
func (s *Session) MoveSelected(dx, dy float64) error {
	n, err := s.unlocked("move")
	if err != nil {
		return err
	}
	return s.mutate(history.Move, n.ID, func(n *scene.Node) {
		n.X += dx
		n.Y += dy
	})
}

// FlipHorizontal mirrors the selection about its vertical center line.
func (s *Session) FlipHorizontal() error { return s.flip(true) }

// FlipVertical mirrors the selection about its horizontal center line.
func (s *Session) FlipVertical() error { return s.flip(false) }

func (s *Session) flip(horizontal bool) error {
	n, err := s.unlocked("flip")
	if err != nil {
		return err
	}
	cx, cy := n.LocalMatrix().TransformPoint(n.LocalBounds().Center())
	return s.mutate(history.Transform, n.ID, func(n *scene.Node) {
		if horizontal {
			n.ScaleX = -n.ScaleX
		} else {
			n.ScaleY = -n.ScaleY
		}
		lx, ly := n.LocalBounds().Center()
		ox, oy := scene.FromTransform(0, 0, n.ScaleX, n.ScaleY, n.Rotation).TransformPoint(lx, ly)
		n.X, n.Y = cx-ox, cy-oy
	})
}

// SetOpacityPercent sets the selection's opacity from a 0..100 slider.
func (s *Session) SetOpacityPercent(pct int) error {
	n, err := s.unlocked("opacity")
	if err != nil {
		return err
	}
	v := math.Max(0, math.Min(1, float64(pct)/100))
	return s.mutate(history.Opacity, n.ID, func(n *scene.Node) {
		n.Opacity = v
	})
}

// ToggleLock flips the selection's lock flag. Locked nodes keep their
// selection but lose their handles.
func (s *Session) ToggleLock() error {
	n := s.Selected()
	if n == nil {
		return fmt.Errorf("lock: %w", ErrNoSelection)
	}
	s.drag = nil
	return s.mutate(history.Lock, n.ID, func(n *scene.Node) {
		n.Locked = !n.Locked
	})
}

// ToggleFavorite flips the selection's favorite flag.
func (s *Session) ToggleFavorite() error {
	n := s.Selected()
	if n == nil {
		return fmt.Errorf("favorite: %w", ErrNoSelection)
	}
	return s.mutate(history.Favorite, n.ID, func(n *scene.Node) {
		n.Favorite = !n.Favorite
	})
}

// BringForward moves the selection one step up the paint order.
func (s *Session) BringForward() error { return s.arrange(1) }

// SendBackward moves the selection one step down the paint order.
func (s *Session) SendBackward() error { return s.arrange(-1) }

func (s *Session) arrange(d int) error {
	n := s.Selected()
	if n == nil {
		return fmt.Errorf("arrange: %w", ErrNoSelection)
	}
	from, err := s.scene.Placement(n.ID)
	if err != nil {
		return err
	}
	var changed bool
	if d > 0 {
		changed, err = s.scene.Raise(n.ID)
	} else {
		changed, err = s.scene.Lower(n.ID)
	}
	if err != nil || !changed {
		return err
	}
	s.recordArrange(n.ID, from.Index, from.Index+d)
	return nil
}

// Key is a keyboard command the session understands directly.
type Key int

const (
	KeyEscape Key = iota
	KeyDelete
)

// KeyDown handles Escape and Delete. Delete errors are returned so the
// host can log them.
func (s *Session) KeyDown(k Key) error {
	switch k {
	case KeyEscape:
		switch {
		case s.tool != nil:
			s.CancelTool()
		case s.crop.Active():
			s.CancelCrop()
		default:
			s.Deselect()
		}
	case KeyDelete:
		if s.crop.Active() || s.tool != nil {
			return nil
		}
		return s.Delete()
	}
	return nil
}
