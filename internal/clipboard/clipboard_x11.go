//go:build (linux || freebsd || openbsd || netbsd || dragonfly) && !cgo

package clipboard

import (
	"fmt"
	"sync"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
)

// Without cgo the clipboard is served directly over the X11 protocol: a
// hidden window owns CLIPBOARD and answers selection requests for
// image/png from a goroutine.
var owner *x11Owner

type x11Owner struct {
	conn   *xgb.Conn
	window xproto.Window
	atoms  x11Atoms

	mu  sync.RWMutex
	png []byte
}

type x11Atoms struct {
	clipboard xproto.Atom
	targets   xproto.Atom
	png       xproto.Atom
	property  xproto.Atom
}

func initBackend() error {
	conn, err := xgb.NewConn()
	if err != nil {
		return err
	}
	screen := xproto.Setup(conn).DefaultScreen(conn)
	window, err := xproto.NewWindowId(conn)
	if err != nil {
		conn.Close()
		return err
	}
	err = xproto.CreateWindowChecked(conn, screen.RootDepth, window, screen.Root, 0, 0, 1, 1, 0,
		xproto.WindowClassInputOutput, screen.RootVisual, xproto.CwEventMask,
		[]uint32{xproto.EventMaskPropertyChange}).Check()
	if err != nil {
		conn.Close()
		return err
	}
	atoms, err := internAtoms(conn)
	if err != nil {
		xproto.DestroyWindow(conn, window)
		conn.Close()
		return err
	}
	owner = &x11Owner{conn: conn, window: window, atoms: atoms}
	go owner.serve()
	return nil
}

func internAtoms(conn *xgb.Conn) (x11Atoms, error) {
	var a x11Atoms
	for name, dst := range map[string]*xproto.Atom{
		"CLIPBOARD":            &a.clipboard,
		"TARGETS":              &a.targets,
		"image/png":            &a.png,
		"ICONCANVAS_SELECTION": &a.property,
	} {
		reply, err := xproto.InternAtom(conn, false, uint16(len(name)), name).Reply()
		if err != nil {
			return a, fmt.Errorf("intern %s: %w", name, err)
		}
		*dst = reply.Atom
	}
	return a, nil
}

func writePNG(data []byte) error {
	owner.mu.Lock()
	owner.png = append([]byte(nil), data...)
	owner.mu.Unlock()
	return xproto.SetSelectionOwnerChecked(owner.conn, owner.window, owner.atoms.clipboard, xproto.TimeCurrentTime).Check()
}

func (o *x11Owner) serve() {
	for {
		ev, err := o.conn.WaitForEvent()
		if err != nil {
			return
		}
		switch e := ev.(type) {
		case xproto.SelectionRequestEvent:
			o.answer(e)
		case xproto.SelectionClearEvent:
			o.mu.Lock()
			o.png = nil
			o.mu.Unlock()
		}
	}
}

func (o *x11Owner) answer(e xproto.SelectionRequestEvent) {
	property := e.Property
	if property == xproto.AtomNone {
		property = e.Target
	}
	o.mu.RLock()
	data := o.png
	o.mu.RUnlock()

	switch {
	case e.Target == o.atoms.targets:
		targets := []xproto.Atom{o.atoms.targets}
		if len(data) > 0 {
			targets = append(targets, o.atoms.png)
		}
		buf := make([]byte, 4*len(targets))
		for i, t := range targets {
			xgb.Put32(buf[4*i:], uint32(t))
		}
		xproto.ChangeProperty(o.conn, xproto.PropModeReplace, e.Requestor, property, xproto.AtomAtom, 32, uint32(len(targets)), buf)
	case e.Target == o.atoms.png && len(data) > 0:
		xproto.ChangeProperty(o.conn, xproto.PropModeReplace, e.Requestor, property, o.atoms.png, 8, uint32(len(data)), data)
	default:
		property = xproto.AtomNone
	}

	notify := xproto.SelectionNotifyEvent{
		Time:      e.Time,
		Requestor: e.Requestor,
		Selection: e.Selection,
		Target:    e.Target,
		Property:  property,
	}
	_ = xproto.SendEvent(o.conn, false, e.Requestor, 0, string(notify.Bytes()))
}

// readPNG asks the current owner to convert CLIPBOARD to image/png on a
// short lived connection and waits for the answer.
func readPNG() ([]byte, error) {
	o := owner
	o.mu.RLock()
	local := o.png
	o.mu.RUnlock()
	if local != nil {
		return append([]byte(nil), local...), nil
	}

	conn, err := xgb.NewConn()
	if err != nil {
		return nil, err
	}
	defer conn.Close()
	screen := xproto.Setup(conn).DefaultScreen(conn)
	window, err := xproto.NewWindowId(conn)
	if err != nil {
		return nil, err
	}
	err = xproto.CreateWindowChecked(conn, 0, window, screen.Root, 0, 0, 1, 1, 0,
		xproto.WindowClassInputOnly, 0, xproto.CwEventMask, []uint32{xproto.EventMaskPropertyChange}).Check()
	if err != nil {
		return nil, err
	}
	defer xproto.DestroyWindow(conn, window)

	err = xproto.ConvertSelectionChecked(conn, window, o.atoms.clipboard, o.atoms.png, o.atoms.property, xproto.TimeCurrentTime).Check()
	if err != nil {
		return nil, err
	}
	for {
		ev, err := conn.WaitForEvent()
		if err != nil {
			return nil, err
		}
		e, ok := ev.(xproto.SelectionNotifyEvent)
		if !ok {
			continue
		}
		if e.Property == xproto.AtomNone {
			return nil, ErrNoImage
		}
		reply, perr := xproto.GetProperty(conn, true, window, e.Property, xproto.GetPropertyTypeAny, 0, (1<<31)-1).Reply()
		if perr != nil {
			return nil, perr
		}
		return reply.Value, nil
	}
}
