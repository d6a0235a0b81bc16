package ui

import (
	"context"
	"fmt"
	"image"
	"image/draw"
	"log"
	"strings"
	"time"

	"golang.org/x/exp/shiny/screen"

	"github.com/example/iconcanvas/internal/editor"
	"github.com/example/iconcanvas/internal/theme"
)

// frame is everything the paint goroutine needs. stage is rendered on
// the event goroutine, so the scene is never read concurrently.
type frame struct {
	width, height int
	toolbarWidth  int
	title         string
	theme         *theme.Theme
	stage         *image.RGBA
	status        editor.Status
	buttons       []*button
	hover         int
	pressed       int
	thumbs        []*thumb
	hoverThumb    int
	message       string
	messageUntil  time.Time
}

// statusLine summarizes the session for the bottom bar.
func statusLine(st editor.Status) string {
	parts := []string{fmt.Sprintf("zoom %d%%", int(st.Zoom*100+0.5))}
	if st.Selected != "" {
		parts = append(parts, fmt.Sprintf("%s opacity %d%%", st.Kind, st.OpacityPercent))
		if st.Locked {
			parts = append(parts, "locked")
		}
		if st.Favorite {
			parts = append(parts, "favorite")
		}
	}
	if st.Tool != "" {
		parts = append(parts, "tool "+st.Tool)
	}
	if st.Cropping {
		parts = append(parts, "cropping: Enter applies, Esc cancels")
	}
	if st.Preview {
		parts = append(parts, "preview")
	}
	return strings.Join(parts, " | ")
}

func drawFrame(ctx context.Context, s screen.Screen, w screen.Window, f *frame) {
	b, err := s.NewBuffer(image.Point{f.width, f.height})
	if err != nil {
		log.Printf("new buffer: %v", err)
		return
	}
	defer b.Release()
	dst := b.RGBA()

	draw.Draw(dst, dst.Bounds(), image.NewUniform(f.theme.Background), image.Point{}, draw.Src)
	if ctx.Err() != nil {
		return
	}
	if f.stage != nil {
		r := f.stage.Bounds().Add(image.Pt(f.toolbarWidth, 0))
		draw.Draw(dst, r, f.stage, f.stage.Bounds().Min, draw.Src)
	}
	if ctx.Err() != nil {
		return
	}

	drawToolbar(dst, f)

	bar := image.Rect(f.toolbarWidth, f.height-statusHeight, f.width, f.height)
	fillRect(dst, bar, f.theme.ToolbarBackground)
	line := statusLine(f.status)
	if f.message != "" && time.Now().Before(f.messageUntil) {
		line = f.message + "  |  " + line
	}
	drawLabel(dst, bar.Min.X+toolbarPad, bar.Max.Y-5, line, f.theme.Foreground)

	if ctx.Err() != nil {
		return
	}
	w.Upload(image.Point{}, b, b.Bounds())
	w.Publish()
}
