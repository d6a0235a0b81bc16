package scene

// State is a value copy of a node's own attributes, excluding children.
// History commands keep one from before and one from after a mutation.
type State struct {
	ID       string
	X, Y     float64
	Width    float64
	Height   float64
	ScaleX   float64
	ScaleY   float64
	Rotation float64
	Opacity  float64
	Locked   bool
	Favorite bool
	Style    Style

	Image *ImageData
	Arrow *ArrowData
	Text  *TextData
}

// Snapshot captures the attributes of id.
func (s *Scene) Snapshot(id string) (State, error) {
	n, err := s.Node(id)
	if err != nil {
		return State{}, err
	}
	return n.State(), nil
}

// State captures n's attributes.
func (n *Node) State() State {
	st := State{
		ID: n.ID, X: n.X, Y: n.Y, Width: n.Width, Height: n.Height,
		ScaleX: n.ScaleX, ScaleY: n.ScaleY, Rotation: n.Rotation,
		Opacity: n.Opacity, Locked: n.Locked, Favorite: n.Favorite,
		Style: n.Style,
	}
	if n.Style.Dash != nil {
		st.Style.Dash = append([]float64(nil), n.Style.Dash...)
	}
	if n.Image != nil {
		img := *n.Image
		st.Image = &img
	}
	if n.Arrow != nil {
		a := *n.Arrow
		st.Arrow = &a
	}
	if n.Text != nil {
		t := *n.Text
		st.Text = &t
	}
	return st
}

// Restore writes st back onto its node.
func (s *Scene) Restore(st State) error {
	return s.Update(st.ID, func(n *Node) {
		n.X, n.Y, n.Width, n.Height = st.X, st.Y, st.Width, st.Height
		n.ScaleX, n.ScaleY, n.Rotation = st.ScaleX, st.ScaleY, st.Rotation
		n.Opacity, n.Locked, n.Favorite = st.Opacity, st.Locked, st.Favorite
		n.Style = st.Style
		if st.Style.Dash != nil {
			n.Style.Dash = append([]float64(nil), st.Style.Dash...)
		}
		if st.Image != nil {
			img := *st.Image
			n.Image = &img
		}
		if st.Arrow != nil {
			a := *st.Arrow
			n.Arrow = &a
		}
		if st.Text != nil {
			t := *st.Text
			n.Text = &t
		}
	})
}

// Equal reports whether two states describe identical attributes. Bitmaps
// compare by identity.
func (st State) Equal(o State) bool {
	if st.ID != o.ID || st.X != o.X || st.Y != o.Y || st.Width != o.Width || st.Height != o.Height ||
		st.ScaleX != o.ScaleX || st.ScaleY != o.ScaleY || st.Rotation != o.Rotation ||
		st.Opacity != o.Opacity || st.Locked != o.Locked || st.Favorite != o.Favorite {
		return false
	}
	if st.Style.Fill != o.Style.Fill || st.Style.Stroke != o.Style.Stroke ||
		st.Style.StrokeWidth != o.Style.StrokeWidth || st.Style.CornerRadius != o.Style.CornerRadius ||
		len(st.Style.Dash) != len(o.Style.Dash) {
		return false
	}
	for i := range st.Style.Dash {
		if st.Style.Dash[i] != o.Style.Dash[i] {
			return false
		}
	}
	switch {
	case (st.Image == nil) != (o.Image == nil),
		(st.Arrow == nil) != (o.Arrow == nil),
		(st.Text == nil) != (o.Text == nil):
		return false
	}
	if st.Image != nil && *st.Image != *o.Image {
		return false
	}
	if st.Arrow != nil && *st.Arrow != *o.Arrow {
		return false
	}
	if st.Text != nil && *st.Text != *o.Text {
		return false
	}
	return true
}
