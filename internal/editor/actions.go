package editor

import (
	"fmt"
	"strconv"
)

// Actions lists the toolbar command names accepted by Do, in toolbar order.
var Actions = []string{
	"save", "undo", "redo", "cut", "copy", "paste",
	"flip-h", "flip-v", "lock-toggle", "favorite-toggle",
	"bring-forward", "send-backward", "crop", "crop-confirm", "crop-cancel",
	"opacity-change", "arrow", "text", "delete",
	"zoom-in", "zoom-out", "grid-toggle", "ruler-toggle", "preview-toggle",
	"copy-image", "paste-image", "screenshot",
}

// Do runs a toolbar command. opacity-change takes the percentage as its
// argument. crop starts a crop, or confirms the one in progress.
func (s *Session) Do(name string, args ...string) error {
	switch name {
	case "save":
		return s.Save()
	case "undo":
		s.Undo()
	case "redo":
		s.Redo()
	case "cut":
		return s.Cut()
	case "copy":
		return s.Copy()
	case "paste":
		return s.Paste()
	case "flip-h":
		return s.FlipHorizontal()
	case "flip-v":
		return s.FlipVertical()
	case "lock-toggle":
		return s.ToggleLock()
	case "favorite-toggle":
		return s.ToggleFavorite()
	case "bring-forward":
		return s.BringForward()
	case "send-backward":
		return s.SendBackward()
	case "crop":
		if s.crop.Active() {
			return s.ConfirmCrop()
		}
		return s.StartCrop()
	case "crop-confirm":
		return s.ConfirmCrop()
	case "crop-cancel":
		s.CancelCrop()
	case "opacity-change":
		if len(args) != 1 {
			return fmt.Errorf("%s: want one percentage argument", name)
		}
		pct, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		return s.SetOpacityPercent(pct)
	case "arrow":
		s.SetTool(&ArrowTool{})
	case "text":
		s.SetTool(&TextBoxTool{})
	case "delete":
		return s.Delete()
	case "zoom-in":
		s.view.ZoomIn()
	case "zoom-out":
		s.view.ZoomOut()
	case "grid-toggle":
		s.view.SetGrid(!s.view.GridVisible())
	case "ruler-toggle":
		s.view.SetRuler(!s.view.RulerVisible())
	case "preview-toggle":
		s.SetPreview(!s.view.Preview())
	case "copy-image":
		return s.CopyImage()
	case "paste-image":
		return s.PasteImage()
	case "screenshot":
		return s.InsertScreenshot(nil)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownAction, name)
	}
	return nil
}

// SetPreview toggles preview mode, which also ends any crop or tool.
func (s *Session) SetPreview(on bool) {
	if on {
		s.cancelGestures()
	}
	s.view.SetPreview(on)
	s.changed()
}
