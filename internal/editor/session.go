// Package editor is the editing engine: one Session owns the scene,
// selection, history, node clipboard, crop session and creation tools,
// and every host (desktop window or script) drives it through methods.
package editor

import (
	"image"
	"image/color"
	"log"

	"github.com/google/uuid"

	"github.com/example/iconcanvas/internal/catalog"
	"github.com/example/iconcanvas/internal/crop"
	"github.com/example/iconcanvas/internal/history"
	"github.com/example/iconcanvas/internal/render"
	"github.com/example/iconcanvas/internal/scene"
	"github.com/example/iconcanvas/internal/theme"
	"github.com/example/iconcanvas/internal/viewport"
)

// PasteOffset is added to both axes of a pasted clone.
const PasteOffset = 20

// IconSize is the side of a node created from the catalog.
const IconSize = 50

// ImageClipboard is the system clipboard, as far as images go.
type ImageClipboard interface {
	WriteImage(img image.Image) error
	ReadImage() (image.Image, error)
}

// Exporter receives the rasterized composition for "save".
type Exporter func(img *image.RGBA) error

// Session is one editing session.
type Session struct {
	ID string

	scene *scene.Scene
	view  *viewport.Viewport
	hist  *history.History
	crop  crop.Engine
	theme *theme.Theme

	selected string
	clip     *scene.Node
	tool     Tool
	drag     *dragState

	exec       Executor
	catalog    *catalog.Catalog
	textEditor TextEditor
	clipboard  ImageClipboard
	exporter   Exporter
	screenshot func() (image.Image, error)
	density    float64

	onChange func()
}

// Option configures a Session.
type Option func(*Session)

// WithExecutor sets where slow work runs. The default is SyncExecutor.
func WithExecutor(e Executor) Option { return func(s *Session) { s.exec = e } }

// WithCatalog sets the catalog used by AddNodeFromURL.
func WithCatalog(c *catalog.Catalog) Option { return func(s *Session) { s.catalog = c } }

// WithTextEditor installs the host's in-place text editing surface.
func WithTextEditor(t TextEditor) Option { return func(s *Session) { s.textEditor = t } }

// WithImageClipboard connects the system clipboard.
func WithImageClipboard(c ImageClipboard) Option { return func(s *Session) { s.clipboard = c } }

// WithExporter sets the "save" handler.
func WithExporter(fn Exporter) Option { return func(s *Session) { s.exporter = fn } }

// WithScreenshot sets the screen grabber used by InsertScreenshot.
func WithScreenshot(fn func() (image.Image, error)) Option {
	return func(s *Session) { s.screenshot = fn }
}

// WithTheme sets handle and decoration colors.
func WithTheme(t *theme.Theme) Option { return func(s *Session) { s.theme = t } }

// WithExportDensity sets the pixel density used by "save".
func WithExportDensity(d float64) Option { return func(s *Session) { s.density = d } }

// WithViewport configures the background, grid and ruler.
func WithViewport(o viewport.Options) Option {
	return func(s *Session) { s.view = viewport.New(s.scene, o) }
}

// WithOnChange registers a callback run after anything visible changed.
func WithOnChange(fn func()) Option { return func(s *Session) { s.onChange = fn } }

// New creates a Session with the provided options.
func New(opts ...Option) *Session {
	s := &Session{
		ID:      uuid.NewString(),
		scene:   scene.New(),
		hist:    history.New(),
		exec:    SyncExecutor{},
		theme:   theme.Default(),
		density: 3,
	}
	for _, o := range opts {
		o(s)
	}
	if s.view == nil {
		vo := viewport.DefaultOptions()
		vo.CanvasColor = s.theme.CanvasFill
		vo.GridColor = s.theme.GridLine
		vo.RulerColor = s.theme.RulerLine
		s.view = viewport.New(s.scene, vo)
	}
	s.scene.OnRedraw(func(scene.LayerID) { s.changed() })
	s.hist.OnChange(s.changed)
	s.view.OnZoom(func(float64) { s.changed() })
	return s
}

func (s *Session) changed() {
	if s.onChange != nil {
		s.onChange()
	}
}

// Scene exposes the model for rendering and inspection.
func (s *Session) Scene() *scene.Scene { return s.scene }

// Viewport exposes the stage controller.
func (s *Session) Viewport() *viewport.Viewport { return s.view }

// History exposes the undo timeline.
func (s *Session) History() *history.History { return s.hist }

// Theme returns the active theme.
func (s *Session) Theme() *theme.Theme { return s.theme }

// Resize sets the stage size; it is idempotent.
func (s *Session) Resize(w, h float64) {
	s.view.Resize(w, h)
}

// Status is the scalar state a toolbar shows.
type Status struct {
	Selected       string
	Kind           string
	OpacityPercent int
	Locked         bool
	Favorite       bool
	Zoom           float64
	CanUndo        bool
	CanRedo        bool
	Tool           string
	Cropping       bool
	Grid           bool
	Ruler          bool
	Preview        bool
	ClipboardFull  bool
}

// Status reports the current toolbar state.
func (s *Session) Status() Status {
	st := Status{
		Zoom:          s.view.Zoom(),
		CanUndo:       s.hist.CanUndo(),
		CanRedo:       s.hist.CanRedo(),
		Cropping:      s.crop.Active(),
		Grid:          s.view.GridVisible(),
		Ruler:         s.view.RulerVisible(),
		Preview:       s.view.Preview(),
		ClipboardFull: s.clip != nil,
	}
	if s.tool != nil {
		st.Tool = s.tool.Name()
	}
	if n := s.Selected(); n != nil {
		st.Selected = n.ID
		st.Kind = n.Kind.String()
		st.OpacityPercent = int(n.Opacity*100 + 0.5)
		st.Locked = n.Locked
		st.Favorite = n.Favorite
	}
	return st
}

// RenderToImage rasterizes the composition at density pixels per unit,
// without handles or the crop overlay.
func (s *Session) RenderToImage(density float64) *image.RGBA {
	w, h := s.view.Size()
	return render.Rasterize(s.scene, render.Options{
		Density:    density,
		Width:      w,
		Height:     h,
		Background: color.Transparent,
	})
}

// Overlay describes the handle and crop decorations for the host to draw.
// It is nil in preview mode.
func (s *Session) Overlay() *render.Overlay {
	if s.view.Preview() {
		return nil
	}
	o := &render.Overlay{
		HandleStroke: s.theme.HandleStroke,
		HandleFill:   s.theme.HandleFill,
		CropStroke:   s.theme.CropStroke,
		CropFill:     s.theme.CropFill,
	}
	if s.crop.Active() {
		r := s.crop.Session().Overlay
		o.Crop = &r
		o.CropAnchors = s.crop.HandleRects()
		return o
	}
	if n := s.Selected(); n != nil {
		o.Selection = corners(n)
		o.Anchors = s.anchorRects(n)
	}
	return o
}

// Save rasterizes at the export density and hands the image to the exporter.
func (s *Session) Save() error {
	if s.exporter == nil {
		return ErrUnavailable
	}
	return s.exporter(s.RenderToImage(s.density))
}

func (s *Session) logf(format string, args ...any) {
	log.Printf("session %s: "+format, append([]any{s.ID[:8]}, args...)...)
}
