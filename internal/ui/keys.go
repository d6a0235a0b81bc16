package ui

import (
	"unicode"

	"golang.org/x/mobile/event/key"
)

// KeyShortcut represents a keyboard shortcut.
type KeyShortcut struct {
	Rune      rune
	Code      key.Code
	Modifiers key.Modifiers
}

// Pseudo actions handled by the window rather than Session.Do.
const (
	actionEscape      = "escape"
	actionDelete      = "delete-key"
	actionOpacityDown = "opacity-down"
	actionOpacityUp   = "opacity-up"
)

var shortcuts = map[KeyShortcut]string{
	{Rune: 'z', Modifiers: key.ModControl}:                "undo",
	{Rune: 'y', Modifiers: key.ModControl}:                "redo",
	{Rune: 'z', Modifiers: key.ModControl | key.ModShift}: "redo",
	{Rune: 'c', Modifiers: key.ModControl}:                "copy",
	{Rune: 'x', Modifiers: key.ModControl}:                "cut",
	{Rune: 'v', Modifiers: key.ModControl}:                "paste",
	{Rune: 's', Modifiers: key.ModControl}:                "save",
	{Rune: 'c', Modifiers: key.ModControl | key.ModShift}: "copy-image",
	{Rune: 'v', Modifiers: key.ModControl | key.ModShift}: "paste-image",
	{Rune: '+'}:                       "zoom-in",
	{Rune: '='}:                       "zoom-in",
	{Rune: '-'}:                       "zoom-out",
	{Code: key.CodeKeypadPlusSign}:    "zoom-in",
	{Code: key.CodeKeypadHyphenMinus}: "zoom-out",
	{Code: key.CodeEscape}:            actionEscape,
	{Code: key.CodeDeleteForward}:     actionDelete,
	{Code: key.CodeDeleteBackspace}:   actionDelete,
	{Code: key.CodeReturnEnter}:       "crop-confirm",
}

// shortcutFor maps a key press to an action name. Printable keys match on
// their lower cased rune; Shift alone is ignored for them so '+' works
// whether or not the layout needs Shift for it.
func shortcutFor(e key.Event) (string, bool) {
	mods := e.Modifiers & (key.ModControl | key.ModShift)
	if e.Rune > 0 && unicode.IsPrint(e.Rune) {
		r := unicode.ToLower(e.Rune)
		if mods&key.ModControl == 0 {
			mods = 0
		}
		if action, ok := shortcuts[KeyShortcut{Rune: r, Modifiers: mods}]; ok {
			return action, true
		}
	}
	action, ok := shortcuts[KeyShortcut{Code: e.Code, Modifiers: mods &^ key.ModShift}]
	return action, ok
}
