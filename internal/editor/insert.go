package editor

import (
	"fmt"

	"github.com/example/iconcanvas/internal/catalog"
)

// AddNodeFromURL decodes the icon at url on the executor and adds it as
// an IconSize square Image node at (x, y). done, when set, receives the
// outcome on the session goroutine.
func (s *Session) AddNodeFromURL(x, y float64, url string, done func(error)) {
	finish := func(err error) {
		if err != nil {
			s.logf("add %s: %v", url, err)
		}
		if done != nil {
			done(err)
		}
	}
	cat := s.catalog
	if cat == nil {
		var err error
		if cat, err = catalog.Default(); err != nil {
			finish(err)
			return
		}
	}
	s.exec.Go(func() func() {
		img, err := cat.LoadImage(url)
		return func() {
			if err != nil {
				finish(fmt.Errorf("%w: %v", ErrResourceUnavailable, err))
				return
			}
			finish(s.addBitmap(img, url, x, y, IconSize, IconSize))
		}
	})
}

// AddIcon looks id up in the catalog and adds it at (x, y).
func (s *Session) AddIcon(id string, x, y float64, done func(error)) error {
	cat := s.catalog
	if cat == nil {
		var err error
		if cat, err = catalog.Default(); err != nil {
			return err
		}
	}
	icon, err := cat.Find(id)
	if err != nil {
		return err
	}
	s.AddNodeFromURL(x, y, icon.URL, done)
	return nil
}

// InsertScreenshot captures the screen on the executor and adds it at
// the stage origin with its pixel size.
func (s *Session) InsertScreenshot(done func(error)) error {
	if s.screenshot == nil {
		return fmt.Errorf("screenshot: %w", ErrUnavailable)
	}
	grab := s.screenshot
	s.exec.Go(func() func() {
		img, err := grab()
		return func() {
			if err == nil {
				err = s.addBitmap(img, "screenshot", 0, 0, 0, 0)
			}
			if err != nil {
				s.logf("screenshot: %v", err)
			}
			if done != nil {
				done(err)
			}
		}
	})
	return nil
}
