package notify

import (
	"image"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/example/iconcanvas/internal/platform"
)

type sent struct {
	title, body string
	opts        platform.Options
}

func capture(t *testing.T) *[]sent {
	t.Helper()
	var got []sent
	old := send
	send = func(title, body string, opts platform.Options) error {
		got = append(got, sent{title, body, opts})
		return nil
	}
	t.Cleanup(func() { send = old })
	return &got
}

func TestDisabledEventsAreSilent(t *testing.T) {
	got := capture(t)
	n := New(DefaultPreferences())
	n.Export("out.png")
	n.Copy("")
	n.Capture(nil)
	if len(*got) != 0 {
		t.Fatalf("sent %v", *got)
	}
	var nilNotifier *Notifier
	nilNotifier.Enable(EventCopy, true)
	nilNotifier.Copy("x")
}

func TestExportUsesFileAsIcon(t *testing.T) {
	got := capture(t)
	path := filepath.Join(t.TempDir(), "a.png")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	n := New(DefaultPreferences())
	n.Enable(EventExport, true)
	n.Export(path)
	if len(*got) != 1 {
		t.Fatalf("sent %d", len(*got))
	}
	m := (*got)[0]
	if m.title != "IconCanvas" || m.body != "Exported "+path || m.opts.IconPath != path {
		t.Fatalf("message %+v", m)
	}
}

func TestCopyDefaultDetail(t *testing.T) {
	got := capture(t)
	n := New(DefaultPreferences())
	n.Enable(EventCopy, true)
	n.Copy(" ")
	if len(*got) != 1 || (*got)[0].body != "Copied composition to clipboard" {
		t.Fatalf("sent %v", *got)
	}
}

func TestCapturePreviewRemoved(t *testing.T) {
	got := capture(t)
	n := New(DefaultPreferences())
	n.Enable(EventCapture, true)
	n.Capture(image.NewRGBA(image.Rect(0, 0, 4, 3)))
	if len(*got) != 1 {
		t.Fatalf("sent %d", len(*got))
	}
	m := (*got)[0]
	if !strings.Contains(m.body, "4x3") {
		t.Fatalf("body %q", m.body)
	}
	if m.opts.IconPath == "" {
		t.Fatalf("no preview icon")
	}
	if _, err := os.Stat(m.opts.IconPath); !os.IsNotExist(err) {
		t.Fatalf("preview left behind: %v", err)
	}
}

func TestLoadPreferencesFromEnv(t *testing.T) {
	t.Setenv("ICONCANVAS_NOTIFY_TITLE", "Board")
	t.Setenv("ICONCANVAS_NOTIFY_COPY_TEXT", "Clip: %s")
	prefs := LoadPreferences()
	if prefs.Title != "Board" || prefs.Templates[EventCopy] != "Clip: %s" {
		t.Fatalf("prefs %+v", prefs)
	}
	if prefs.Templates[EventExport] != "Exported %s" {
		t.Fatalf("export template lost: %q", prefs.Templates[EventExport])
	}
}
