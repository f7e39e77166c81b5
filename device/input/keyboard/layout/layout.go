// Package layout maps decoded key events to the text they produce on a
// German QWERTZ keyboard. The tables hold CP437 bytes so the output can be
// sent unmodified to the serial console.
package layout

//go:generate go run zuckeros/tools/genlayout -var-name german -out german_cp437.go

import "zuckeros/device/input/keyboard"

// Layout holds the text produced by each key code for every supported
// modifier combination. Keys without text map to "".
type Layout struct {
	Normal [keyboard.NumKeyCodes]string
	Shift  [keyboard.NumKeyCodes]string
	AltGr  [keyboard.NumKeyCodes]string
}

// German returns the German QWERTZ layout.
func German() *Layout {
	return &german
}

// Translate returns the text produced by ev or "" if ev produces no text.
// Only key presses produce text. AltGr takes precedence over shift and an
// active caps lock inverts the shift state.
func (l *Layout) Translate(ev keyboard.KeyEvent) string {
	if ev.Transition != keyboard.Pressed || ev.Code >= keyboard.NumKeyCodes {
		return ""
	}

	switch {
	case ev.Modifiers.Has(keyboard.ModAltGr):
		return l.AltGr[ev.Code]
	case ev.Modifiers.Has(keyboard.ModShift) != ev.Modifiers.Has(keyboard.ModCapsLock):
		return l.Shift[ev.Code]
	default:
		return l.Normal[ev.Code]
	}
}

// Translate returns the text produced by ev using the German layout.
func Translate(ev keyboard.KeyEvent) string {
	return german.Translate(ev)
}
