package ui

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/example/iconcanvas/internal/editor"
	"github.com/example/iconcanvas/internal/theme"
)

const (
	buttonHeight = 18
	toolbarPad   = 4
	thumbSize    = 32
	statusHeight = 20
)

// ButtonState is the visual state of a toolbar button.
type ButtonState int

const (
	StateDefault ButtonState = iota
	StateHover
	StatePressed
	StateActive
)

// button is one toolbar entry. toggled, when set, lights the button up
// while the status says the mode is on.
type button struct {
	action  string
	label   string
	toggled func(editor.Status) bool
	rect    image.Rectangle
}

var labels = map[string]string{
	"save":            "Save",
	"undo":            "Undo",
	"redo":            "Redo",
	"cut":             "Cut",
	"copy":            "Copy",
	"paste":           "Paste",
	"flip-h":          "Flip H",
	"flip-v":          "Flip V",
	"lock-toggle":     "Lock",
	"favorite-toggle": "Favorite",
	"bring-forward":   "Forward",
	"send-backward":   "Backward",
	"crop":            "Crop",
	"crop-confirm":    "Apply crop",
	"crop-cancel":     "Cancel crop",
	"arrow":           "Arrow",
	"text":            "Text",
	"delete":          "Delete",
	"zoom-in":         "Zoom +",
	"zoom-out":        "Zoom -",
	"grid-toggle":     "Grid",
	"ruler-toggle":    "Ruler",
	"preview-toggle":  "Preview",
	"copy-image":      "Copy image",
	"paste-image":     "Paste image",
	"screenshot":      "Screenshot",
	actionOpacityDown: "Opacity -",
	actionOpacityUp:   "Opacity +",
}

var toggles = map[string]func(editor.Status) bool{
	"lock-toggle":     func(st editor.Status) bool { return st.Locked },
	"favorite-toggle": func(st editor.Status) bool { return st.Favorite },
	"crop":            func(st editor.Status) bool { return st.Cropping },
	"arrow":           func(st editor.Status) bool { return st.Tool == "arrow" },
	"text":            func(st editor.Status) bool { return st.Tool == "text" },
	"grid-toggle":     func(st editor.Status) bool { return st.Grid },
	"ruler-toggle":    func(st editor.Status) bool { return st.Ruler },
	"preview-toggle":  func(st editor.Status) bool { return st.Preview },
}

// newToolbar builds one button per session action. opacity-change takes
// an argument, so it becomes a pair of step buttons.
func newToolbar() []*button {
	var out []*button
	for _, name := range editor.Actions {
		if name == "opacity-change" {
			out = append(out,
				&button{action: actionOpacityDown, label: labels[actionOpacityDown]},
				&button{action: actionOpacityUp, label: labels[actionOpacityUp]})
			continue
		}
		label, ok := labels[name]
		if !ok {
			label = name
		}
		out = append(out, &button{action: name, label: label, toggled: toggles[name]})
	}
	return out
}

// toolbarWidthFor returns a width that fits the title and every label.
func toolbarWidthFor(title string, buttons []*button) int {
	d := &font.Drawer{Face: basicfont.Face7x13}
	w := d.MeasureString(title).Ceil() + 2*toolbarPad
	for _, b := range buttons {
		if lw := d.MeasureString(b.label).Ceil() + 2*toolbarPad + 4; lw > w {
			w = lw
		}
	}
	return w
}

// layoutToolbar stacks the buttons under the title and returns the y
// just past the last one.
func layoutToolbar(buttons []*button, width int) int {
	y := buttonHeight + toolbarPad
	for _, b := range buttons {
		b.rect = image.Rect(toolbarPad, y, width-toolbarPad, y+buttonHeight-2)
		y += buttonHeight
	}
	return y + toolbarPad
}

// buttonAt returns the index of the button under p, or -1.
func buttonAt(buttons []*button, p image.Point) int {
	for i, b := range buttons {
		if p.In(b.rect) {
			return i
		}
	}
	return -1
}

// thumb is a palette entry; img is nil until the icon has decoded.
type thumb struct {
	id   string
	url  string
	img  image.Image
	rect image.Rectangle
}

// layoutPalette places thumbnails in a grid starting at top.
func layoutPalette(thumbs []*thumb, width, top int) {
	cols := (width - toolbarPad) / (thumbSize + toolbarPad)
	if cols < 1 {
		cols = 1
	}
	for i, t := range thumbs {
		x := toolbarPad + (i%cols)*(thumbSize+toolbarPad)
		y := top + (i/cols)*(thumbSize+toolbarPad)
		t.rect = image.Rect(x, y, x+thumbSize, y+thumbSize)
	}
}

// thumbAt returns the index of the thumbnail under p, or -1.
func thumbAt(thumbs []*thumb, p image.Point) int {
	for i, t := range thumbs {
		if p.In(t.rect) {
			return i
		}
	}
	return -1
}

func fillRect(dst *image.RGBA, r image.Rectangle, c color.RGBA) {
	draw.Draw(dst, r, image.NewUniform(c), image.Point{}, draw.Src)
}

func drawLabel(dst *image.RGBA, x, y int, s string, c color.RGBA) {
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(c), Face: basicfont.Face7x13}
	d.Dot = fixed.P(x, y)
	d.DrawString(s)
}

func drawButton(dst *image.RGBA, b *button, state ButtonState, th *theme.Theme) {
	bg := th.ButtonBackground
	switch state {
	case StateHover:
		bg = th.ButtonBackgroundHover
	case StatePressed:
		bg = th.ButtonBackgroundPress
	case StateActive:
		bg = th.ButtonActive
	}
	fillRect(dst, b.rect, bg)
	outline(dst, b.rect, th.ButtonBorder)
	drawLabel(dst, b.rect.Min.X+4, b.rect.Max.Y-4, b.label, th.ButtonText)
}

// drawToolbar paints the title, buttons and palette into the left column.
func drawToolbar(dst *image.RGBA, f *frame) {
	th := f.theme
	col := image.Rect(0, 0, f.toolbarWidth, f.height)
	fillRect(dst, col, th.ToolbarBackground)
	drawLabel(dst, toolbarPad, buttonHeight-4, f.title, th.ButtonText)
	for i, b := range f.buttons {
		state := StateDefault
		switch {
		case i == f.pressed:
			state = StatePressed
		case b.toggled != nil && b.toggled(f.status):
			state = StateActive
		case i == f.hover:
			state = StateHover
		}
		drawButton(dst, b, state, th)
	}
	for i, t := range f.thumbs {
		bg := th.ButtonBackground
		if i == f.hoverThumb {
			bg = th.ButtonBackgroundHover
		}
		fillRect(dst, t.rect, bg)
		if t.img != nil {
			draw.Draw(dst, t.rect, t.img, t.img.Bounds().Min, draw.Over)
		}
		outline(dst, t.rect, th.ButtonBorder)
	}
}
