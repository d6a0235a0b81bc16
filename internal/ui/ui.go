// Package ui is the desktop host: a shiny window with a toolbar, an icon
// palette, the stage and a status bar, all driving one editor.Session.
package ui

import (
	"context"
	"fmt"
	"image"
	"log"
	"sync"
	"time"

	"github.com/disintegration/imaging"
	"golang.org/x/exp/shiny/driver"
	"golang.org/x/exp/shiny/screen"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"

	"github.com/example/iconcanvas/internal/catalog"
	"github.com/example/iconcanvas/internal/editor"
	"github.com/example/iconcanvas/internal/notify"
	"github.com/example/iconcanvas/internal/render"
	"github.com/example/iconcanvas/internal/scene"
	"github.com/example/iconcanvas/internal/theme"
)

// ProgramTitle is shown in the toolbar and the window title.
const ProgramTitle = "IconCanvas"

const (
	frameDropThreshold = 5
	messageDuration    = 2 * time.Second
	opacityStep        = 10
)

var doneMessages = map[string]string{
	"save":       "composition saved",
	"copy":       "copied",
	"cut":        "cut",
	"copy-image": "composition copied to clipboard",
}

// App holds the window state around a session.
type App struct {
	title    string
	width    int
	height   int
	theme    *theme.Theme
	catalog  *catalog.Catalog
	notifier *notify.Notifier
	onClose  func()

	session *editor.Session
	exec    *executor
	text    *textInput
	buttons []*button
	thumbs  []*thumb
	clicks  clickTracker

	toolbarWidth int
	hover        int
	pressed      int
	hoverThumb   int
	paletteDrag  string
	stageDown    bool
	dirty        bool
	message      string
	messageUntil time.Time
	send         func(any)
}

// Option configures an App.
type Option func(*App)

// WithTitle sets the window title.
func WithTitle(t string) Option { return func(a *App) { a.title = t } }

// WithSize sets the initial window size in pixels.
func WithSize(w, h int) Option { return func(a *App) { a.width, a.height = w, h } }

// WithTheme sets the window and canvas colors.
func WithTheme(t *theme.Theme) Option { return func(a *App) { a.theme = t } }

// WithCatalog sets the icon palette.
func WithCatalog(c *catalog.Catalog) Option { return func(a *App) { a.catalog = c } }

// WithNotifier enables desktop notifications for clipboard copies.
func WithNotifier(n *notify.Notifier) Option { return func(a *App) { a.notifier = n } }

// WithOnClose registers a callback run when the window closes.
func WithOnClose(fn func()) Option { return func(a *App) { a.onClose = fn } }

// New creates the App and its session. sessionOpts are applied after the
// window's own executor and text editor are installed.
func New(opts []Option, sessionOpts ...editor.Option) *App {
	a := &App{
		title:      ProgramTitle,
		width:      1200,
		height:     800,
		theme:      theme.Default(),
		exec:       newExecutor(),
		text:       &textInput{},
		hover:      -1,
		pressed:    -1,
		hoverThumb: -1,
	}
	for _, o := range opts {
		o(a)
	}
	if a.catalog == nil {
		c, err := catalog.Default()
		if err != nil {
			log.Printf("catalog: %v", err)
		}
		a.catalog = c
	}
	so := []editor.Option{
		editor.WithTheme(a.theme),
		editor.WithExecutor(a.exec),
		editor.WithTextEditor(a.text),
	}
	if a.catalog != nil {
		so = append(so, editor.WithCatalog(a.catalog))
		for _, ic := range a.catalog.All() {
			a.thumbs = append(a.thumbs, &thumb{id: ic.ID, url: ic.URL})
		}
	}
	so = append(so, sessionOpts...)
	so = append(so, editor.WithOnChange(func() { a.dirty = true }))
	a.session = editor.New(so...)
	a.buttons = newToolbar()
	return a
}

// Session returns the session the window drives.
func (a *App) Session() *editor.Session { return a.session }

// Run starts the UI event loop.
func (a *App) Run() { driver.Main(a.Main) }

// Main runs the window on s until it is closed.
func (a *App) Main(s screen.Screen) {
	a.toolbarWidth = toolbarWidthFor(a.title, a.buttons)
	layoutPalette(a.thumbs, a.toolbarWidth, layoutToolbar(a.buttons, a.toolbarWidth))

	w, err := s.NewWindow(&screen.NewWindowOptions{Width: a.width, Height: a.height, Title: a.title})
	if err != nil {
		log.Fatalf("new window: %v", err)
	}
	defer w.Release()
	defer a.notifyClose()
	a.send = w.Send

	done := make(chan struct{})
	go func() {
		for {
			select {
			case c := <-a.exec.done:
				w.Send(c)
			case <-done:
				return
			}
		}
	}()
	defer close(done)
	defer a.exec.stop()

	a.loadThumbs()

	var paintMu sync.Mutex
	var paintCancel context.CancelFunc
	var dropCount int
	paintCh := make(chan *frame, 1)
	go func() {
		for f := range paintCh {
			ctx, cancel := context.WithCancel(context.Background())
			paintMu.Lock()
			paintCancel = cancel
			paintMu.Unlock()
			drawFrame(ctx, s, w, f)
			paintMu.Lock()
			paintCancel = nil
			if ctx.Err() == nil {
				dropCount = 0
			}
			paintMu.Unlock()
			cancel()
		}
	}()
	defer close(paintCh)

	for {
		e := w.NextEvent()
		switch e := e.(type) {
		case completion:
			e.fn()
		case lifecycle.Event:
			if e.To == lifecycle.StageDead {
				paintMu.Lock()
				if paintCancel != nil {
					paintCancel()
				}
				paintMu.Unlock()
				return
			}
		case size.Event:
			a.width, a.height = e.WidthPx, e.HeightPx
			sw, sh := a.stageSize()
			a.session.Resize(float64(sw), float64(sh))
			a.dirty = true
		case paint.Event:
			paintMu.Lock()
			if paintCancel != nil && dropCount < frameDropThreshold {
				paintCancel()
				dropCount++
			}
			paintMu.Unlock()
			f := a.frame()
			select {
			case paintCh <- f:
			default:
				select {
				case <-paintCh:
				default:
				}
				paintCh <- f
			}
		case mouse.Event:
			a.handleMouse(e)
		case key.Event:
			a.handleKey(e)
		case error:
			log.Print(e)
		}
		if a.dirty {
			a.dirty = false
			w.Send(paint.Event{})
		}
	}
}

func (a *App) notifyClose() {
	if a.onClose != nil {
		a.onClose()
	}
}

// stageSize is the window minus the toolbar and status bar.
func (a *App) stageSize() (int, int) {
	return max(a.width-a.toolbarWidth, 1), max(a.height-statusHeight, 1)
}

// frame renders the stage and snapshots the chrome for the paint goroutine.
func (a *App) frame() *frame {
	sw, sh := a.stageSize()
	stage := image.NewRGBA(image.Rect(0, 0, sw, sh))
	fillRect(stage, stage.Bounds(), a.theme.Background)
	z := a.session.Viewport().Zoom()
	render.Draw(stage, a.session.Scene(), scene.Scale(z, z), a.session.Overlay())
	a.text.Draw(stage, a.theme.HandleStroke)

	thumbs := make([]*thumb, len(a.thumbs))
	for i, t := range a.thumbs {
		c := *t
		thumbs[i] = &c
	}
	return &frame{
		width:        a.width,
		height:       a.height,
		toolbarWidth: a.toolbarWidth,
		title:        a.title,
		theme:        a.theme,
		stage:        stage,
		status:       a.session.Status(),
		buttons:      a.buttons,
		hover:        a.hover,
		pressed:      a.pressed,
		thumbs:       thumbs,
		hoverThumb:   a.hoverThumb,
		message:      a.message,
		messageUntil: a.messageUntil,
	}
}

// loadThumbs decodes the palette icons off the event goroutine.
func (a *App) loadThumbs() {
	if len(a.thumbs) == 0 {
		return
	}
	cat := a.catalog
	urls := make([]string, len(a.thumbs))
	for i, t := range a.thumbs {
		urls[i] = t.url
	}
	a.exec.Go(func() func() {
		imgs := make([]image.Image, len(urls))
		for i, u := range urls {
			img, err := cat.LoadImage(u)
			if err != nil {
				log.Printf("palette %s: %v", u, err)
				continue
			}
			imgs[i] = imaging.Fit(img, thumbSize, thumbSize, imaging.Lanczos)
		}
		return func() {
			for i, img := range imgs {
				a.thumbs[i].img = img
			}
			a.dirty = true
		}
	})
}

// flash shows msg in the status bar for a couple of seconds.
func (a *App) flash(msg string) {
	a.message = msg
	a.messageUntil = time.Now().Add(messageDuration)
	a.dirty = true
	if a.send != nil {
		send := a.send
		time.AfterFunc(messageDuration, func() { send(paint.Event{}) })
	}
}

// run executes a toolbar or keyboard action.
func (a *App) run(action string) {
	s := a.session
	var err error
	switch action {
	case actionEscape:
		err = s.KeyDown(editor.KeyEscape)
	case actionDelete:
		err = s.KeyDown(editor.KeyDelete)
	case actionOpacityDown, actionOpacityUp:
		st := s.Status()
		if st.Selected == "" {
			err = editor.ErrNoSelection
			break
		}
		step := opacityStep
		if action == actionOpacityDown {
			step = -step
		}
		err = s.SetOpacityPercent(min(max(st.OpacityPercent+step, 0), 100))
	case "crop-confirm":
		if !s.Cropping() {
			return
		}
		err = s.ConfirmCrop()
	case "screenshot":
		err = s.InsertScreenshot(func(err error) {
			if err == nil {
				a.flash("screenshot inserted")
			}
		})
	default:
		err = s.Do(action)
	}
	a.dirty = true
	if err != nil {
		log.Printf("%s: %v", action, err)
		a.flash(fmt.Sprintf("%s: %v", action, err))
		return
	}
	if msg, ok := doneMessages[action]; ok {
		a.flash(msg)
	}
	if action == "copy-image" && a.notifier != nil {
		a.notifier.Copy("composition")
	}
}

func (a *App) handleKey(e key.Event) {
	if a.text.Active() {
		a.text.HandleKey(e)
		a.dirty = true
		return
	}
	if e.Direction != key.DirPress {
		return
	}
	if action, ok := shortcutFor(e); ok {
		a.run(action)
	}
}

func (a *App) handleMouse(e mouse.Event) {
	p := image.Pt(int(e.X), int(e.Y))
	if e.Button.IsWheel() {
		if e.Direction == mouse.DirStep || e.Direction == mouse.DirPress {
			switch e.Button {
			case mouse.ButtonWheelUp:
				a.run("zoom-in")
			case mouse.ButtonWheelDown:
				a.run("zoom-out")
			}
		}
		return
	}
	if p.X < a.toolbarWidth && !a.stageDown {
		a.toolbarMouse(e, p)
		return
	}
	a.stageMouse(e, p)
}

func (a *App) toolbarMouse(e mouse.Event, p image.Point) {
	switch e.Direction {
	case mouse.DirNone:
		h, ht := buttonAt(a.buttons, p), thumbAt(a.thumbs, p)
		if h != a.hover || ht != a.hoverThumb {
			a.hover, a.hoverThumb = h, ht
			a.dirty = true
		}
	case mouse.DirPress:
		if e.Button != mouse.ButtonLeft {
			return
		}
		if i := buttonAt(a.buttons, p); i >= 0 {
			a.pressed = i
			a.dirty = true
			return
		}
		if i := thumbAt(a.thumbs, p); i >= 0 {
			a.paletteDrag = a.thumbs[i].id
		}
	case mouse.DirRelease:
		if e.Button != mouse.ButtonLeft {
			return
		}
		if a.pressed >= 0 {
			i := a.pressed
			a.pressed = -1
			a.dirty = true
			if buttonAt(a.buttons, p) == i {
				a.run(a.buttons[i].action)
			}
			return
		}
		if a.paletteDrag != "" {
			id := a.paletteDrag
			a.paletteDrag = ""
			if i := thumbAt(a.thumbs, p); i >= 0 && a.thumbs[i].id == id {
				sw, sh := a.stageSize()
				c := a.session.Viewport().ToCanvas(float64(sw)/2, float64(sh)/2)
				a.addIcon(id, c.X-editor.IconSize/2, c.Y-editor.IconSize/2)
			}
		}
	}
}

func (a *App) stageMouse(e mouse.Event, p image.Point) {
	sp := p.Sub(image.Pt(a.toolbarWidth, 0))
	x, y := float64(sp.X), float64(sp.Y)
	s := a.session
	switch e.Direction {
	case mouse.DirNone:
		if a.hover >= 0 || a.hoverThumb >= 0 {
			a.hover, a.hoverThumb = -1, -1
			a.dirty = true
		}
		if a.paletteDrag == "" {
			s.PointerMove(x, y)
		}
	case mouse.DirPress:
		if e.Button != mouse.ButtonLeft {
			return
		}
		if a.text.Active() {
			if a.text.Contains(sp) {
				return
			}
			a.text.Commit()
		}
		a.stageDown = true
		if a.clicks.press(sp, time.Now()) {
			if err := s.DoubleClick(x, y); err != nil {
				log.Printf("double click: %v", err)
			}
			return
		}
		s.PointerDown(x, y)
	case mouse.DirRelease:
		if e.Button != mouse.ButtonLeft {
			return
		}
		if a.paletteDrag != "" {
			id := a.paletteDrag
			a.paletteDrag = ""
			c := s.Viewport().ToCanvas(x, y)
			a.addIcon(id, c.X, c.Y)
			return
		}
		a.stageDown = false
		s.PointerUp(x, y)
	}
	a.dirty = true
}

func (a *App) addIcon(id string, x, y float64) {
	err := a.session.AddIcon(id, x, y, func(err error) {
		if err != nil {
			a.flash(fmt.Sprintf("add %s: %v", id, err))
		}
	})
	if err != nil {
		log.Printf("add %s: %v", id, err)
		a.flash(fmt.Sprintf("add %s: %v", id, err))
	}
}

const (
	doubleClickInterval = 400 * time.Millisecond
	doubleClickSlop     = 4
)

// clickTracker turns two nearby presses in quick succession into a
// double click.
type clickTracker struct {
	last time.Time
	pos  image.Point
}

// press records a press at p and reports whether it completes a double
// click. A double click resets the tracker, so a third press starts over.
func (c *clickTracker) press(p image.Point, now time.Time) bool {
	d := p.Sub(c.pos)
	double := !c.last.IsZero() && now.Sub(c.last) <= doubleClickInterval &&
		abs(d.X) <= doubleClickSlop && abs(d.Y) <= doubleClickSlop
	if double {
		c.last = time.Time{}
		return true
	}
	c.last, c.pos = now, p
	return false
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
