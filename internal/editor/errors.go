package editor

import (
	"errors"

	"github.com/example/iconcanvas/internal/crop"
	"github.com/example/iconcanvas/internal/scene"
)

// Errors returned by Session operations. None of them leave partial state
// behind; the UI treats them as "nothing happened".
var (
	ErrNotFound            = scene.ErrNotFound
	ErrLocked              = errors.New("node is locked")
	ErrResourceUnavailable = crop.ErrResourceUnavailable
	ErrEmptyClipboard      = errors.New("clipboard is empty")
	ErrNoSelection         = errors.New("nothing selected")
	ErrCropRotated         = errors.New("cannot crop a rotated node")
	ErrUnknownAction       = errors.New("unknown action")
	ErrUnavailable         = errors.New("not available in this session")
)
