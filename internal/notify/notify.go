// Package notify turns editor outcomes into desktop notifications.
package notify

import (
	"fmt"
	"image"
	"image/png"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/example/iconcanvas/internal/platform"
)

// Event identifies a notification trigger.
type Event string

const (
	// EventExport fires when the composition is written to disk.
	EventExport Event = "export"
	// EventCopy fires when the composition is placed on the clipboard.
	EventCopy Event = "copy"
	// EventCapture fires when a screenshot is inserted.
	EventCapture Event = "capture"
)

// Preferences holds the title and the per event message templates. Each
// template takes a single %s for the detail.
type Preferences struct {
	Title     string
	Templates map[Event]string
	Timeout   time.Duration
}

// DefaultPreferences returns the built in messages.
func DefaultPreferences() Preferences {
	return Preferences{
		Title: "IconCanvas",
		Templates: map[Event]string{
			EventExport:  "Exported %s",
			EventCopy:    "Copied %s to clipboard",
			EventCapture: "Inserted %s",
		},
		Timeout: 5 * time.Second,
	}
}

type envPreferences struct {
	Title       string `envconfig:"NOTIFY_TITLE"`
	ExportText  string `envconfig:"NOTIFY_EXPORT_TEXT"`
	CopyText    string `envconfig:"NOTIFY_COPY_TEXT"`
	CaptureText string `envconfig:"NOTIFY_CAPTURE_TEXT"`
}

// LoadPreferences applies ICONCANVAS_NOTIFY_* overrides to the defaults.
func LoadPreferences() Preferences {
	prefs := DefaultPreferences()
	var env envPreferences
	if err := envconfig.Process("ICONCANVAS", &env); err != nil {
		log.Printf("notification preferences: %v", err)
		return prefs
	}
	if v := strings.TrimSpace(env.Title); v != "" {
		prefs.Title = v
	}
	for event, v := range map[Event]string{
		EventExport:  env.ExportText,
		EventCopy:    env.CopyText,
		EventCapture: env.CaptureText,
	} {
		if v = strings.TrimSpace(v); v != "" {
			prefs.Templates[event] = v
		}
	}
	return prefs
}

// send delivers a message; tests replace it.
var send = platform.Notify

// Notifier sends notifications for the events that are switched on.
type Notifier struct {
	prefs   Preferences
	enabled map[Event]bool
}

// New creates a Notifier with every event switched off.
func New(prefs Preferences) *Notifier {
	templates := make(map[Event]string, len(prefs.Templates))
	for k, v := range prefs.Templates {
		templates[k] = v
	}
	prefs.Templates = templates
	return &Notifier{prefs: prefs, enabled: make(map[Event]bool)}
}

// Enable switches event on or off.
func (n *Notifier) Enable(event Event, on bool) {
	if n == nil {
		return
	}
	n.enabled[event] = on
}

// Export reports a written file, using the file itself as the icon.
func (n *Notifier) Export(path string) {
	if !n.on(EventExport) {
		return
	}
	detail := strings.TrimSpace(path)
	opts := n.options()
	if abs, err := filepath.Abs(path); err == nil {
		detail = abs
		if strings.EqualFold(filepath.Ext(abs), ".png") {
			if _, err := os.Stat(abs); err == nil {
				opts.IconPath = abs
			}
		}
	}
	n.dispatch(EventExport, detail, opts)
}

// Copy reports a clipboard write.
func (n *Notifier) Copy(detail string) {
	if !n.on(EventCopy) {
		return
	}
	if strings.TrimSpace(detail) == "" {
		detail = "composition"
	}
	n.dispatch(EventCopy, detail, n.options())
}

// Capture reports an inserted screenshot with a thumbnail of it.
func (n *Notifier) Capture(img image.Image) {
	if !n.on(EventCapture) {
		return
	}
	opts := n.options()
	detail := "screenshot"
	if img != nil {
		b := img.Bounds()
		detail = fmt.Sprintf("screenshot (%dx%d)", b.Dx(), b.Dy())
		if path, cleanup, err := writePreview(img); err != nil {
			log.Printf("notification preview: %v", err)
		} else {
			defer cleanup()
			opts.IconPath = path
		}
	}
	n.dispatch(EventCapture, detail, opts)
}

func (n *Notifier) on(event Event) bool {
	return n != nil && n.enabled[event]
}

func (n *Notifier) options() platform.Options {
	return platform.Options{App: n.prefs.Title, Timeout: n.prefs.Timeout}
}

func (n *Notifier) dispatch(event Event, detail string, opts platform.Options) {
	tmpl := strings.TrimSpace(n.prefs.Templates[event])
	if tmpl == "" {
		return
	}
	body := strings.TrimSpace(fmt.Sprintf(tmpl, strings.TrimSpace(detail)))
	if err := send(n.prefs.Title, body, opts); err != nil {
		log.Printf("notification %s: %v", event, err)
	}
}

func writePreview(img image.Image) (string, func(), error) {
	f, err := os.CreateTemp("", "iconcanvas-preview-*.png")
	if err != nil {
		return "", nil, err
	}
	path := f.Name()
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return "", nil, err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return "", nil, err
	}
	return path, func() {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			log.Printf("remove preview: %v", err)
		}
	}, nil
}
