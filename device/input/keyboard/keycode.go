package keyboard

// KeyCode identifies a physical key on a German (QWERTZ) keyboard. Key codes
// are independent of the scancode set and of the active modifiers.
type KeyCode uint8

// The supported key codes.
const (
	KeyUnknown KeyCode = iota

	// First row.
	KeyEsc
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12

	// Number row.
	KeyCircumflex
	Key1
	Key2
	Key3
	Key4
	Key5
	Key6
	Key7
	Key8
	Key9
	Key0
	KeySharpS
	KeyAcute
	KeyBackspace

	// Top letter row.
	KeyTab
	KeyQ
	KeyW
	KeyE
	KeyR
	KeyT
	KeyZ
	KeyU
	KeyI
	KeyO
	KeyP
	KeyUDiaeresis
	KeyPlus
	KeyEnter

	// Home row.
	KeyCapsLock
	KeyA
	KeyS
	KeyD
	KeyF
	KeyG
	KeyH
	KeyJ
	KeyK
	KeyL
	KeyODiaeresis
	KeyADiaeresis
	KeyHash

	// Bottom row.
	KeyLeftShift
	KeyLessThan
	KeyY
	KeyX
	KeyC
	KeyV
	KeyB
	KeyN
	KeyM
	KeyComma
	KeyPeriod
	KeyMinus
	KeyRightShift

	// Space bar row.
	KeyLeftCtrl
	KeyLeftSuper
	KeyAlt
	KeySpace
	KeyAltGr
	KeyRightSuper
	KeyMenu
	KeyRightCtrl

	// Cursor keys.
	KeyUp
	KeyLeft
	KeyDown
	KeyRight

	// Navigation block.
	KeyPrintScreen
	KeyScrollLock
	KeyPause
	KeyInsert
	KeyHome
	KeyPageUp
	KeyDelete
	KeyEnd
	KeyPageDown

	// Keypad.
	KeyNumLock
	KeyKeypadSlash
	KeyKeypadAsterisk
	KeyKeypadMinus
	KeyKeypad7
	KeyKeypad8
	KeyKeypad9
	KeyKeypadPlus
	KeyKeypad4
	KeyKeypad5
	KeyKeypad6
	KeyKeypad1
	KeyKeypad2
	KeyKeypad3
	KeyKeypadEnter
	KeyKeypad0
	KeyKeypadDelete

	// Multimedia keys.
	KeyMediaPrevTrack
	KeyMediaNextTrack
	KeyMediaMute
	KeyMediaCalculator
	KeyMediaPlay
	KeyMediaStop
	KeyMediaVolumeDown
	KeyMediaVolumeUp
	KeyMediaWWWHome
	KeyMediaWWWSearch
	KeyMediaFavorites
	KeyMediaWWWRefresh
	KeyMediaWWWStop
	KeyMediaWWWForward
	KeyMediaWWWBack
	KeyMediaMyComputer
	KeyMediaEmail
	KeyMediaSelect

	// NumKeyCodes is the number of defined key codes.
	NumKeyCodes
)

var keyNames = [NumKeyCodes]string{
	KeyUnknown: "unknown",
	KeyEsc: "esc",
	KeyF1: "f1",
	KeyF2: "f2",
	KeyF3: "f3",
	KeyF4: "f4",
	KeyF5: "f5",
	KeyF6: "f6",
	KeyF7: "f7",
	KeyF8: "f8",
	KeyF9: "f9",
	KeyF10: "f10",
	KeyF11: "f11",
	KeyF12: "f12",
	KeyCircumflex: "circumflex",
	Key1: "1",
	Key2: "2",
	Key3: "3",
	Key4: "4",
	Key5: "5",
	Key6: "6",
	Key7: "7",
	Key8: "8",
	Key9: "9",
	Key0: "0",
	KeySharpS: "sharp-s",
	KeyAcute: "acute",
	KeyBackspace: "backspace",
	KeyTab: "tab",
	KeyQ: "q",
	KeyW: "w",
	KeyE: "e",
	KeyR: "r",
	KeyT: "t",
	KeyZ: "z",
	KeyU: "u",
	KeyI: "i",
	KeyO: "o",
	KeyP: "p",
	KeyUDiaeresis: "u-diaeresis",
	KeyPlus: "plus",
	KeyEnter: "enter",
	KeyCapsLock: "caps-lock",
	KeyA: "a",
	KeyS: "s",
	KeyD: "d",
	KeyF: "f",
	KeyG: "g",
	KeyH: "h",
	KeyJ: "j",
	KeyK: "k",
	KeyL: "l",
	KeyODiaeresis: "o-diaeresis",
	KeyADiaeresis: "a-diaeresis",
	KeyHash: "hash",
	KeyLeftShift: "left-shift",
	KeyLessThan: "less-than",
	KeyY: "y",
	KeyX: "x",
	KeyC: "c",
	KeyV: "v",
	KeyB: "b",
	KeyN: "n",
	KeyM: "m",
	KeyComma: "comma",
	KeyPeriod: "period",
	KeyMinus: "minus",
	KeyRightShift: "right-shift",
	KeyLeftCtrl: "left-ctrl",
	KeyLeftSuper: "left-super",
	KeyAlt: "alt",
	KeySpace: "space",
	KeyAltGr: "altgr",
	KeyRightSuper: "right-super",
	KeyMenu: "menu",
	KeyRightCtrl: "right-ctrl",
	KeyUp: "up",
	KeyLeft: "left",
	KeyDown: "down",
	KeyRight: "right",
	KeyPrintScreen: "print-screen",
	KeyScrollLock: "scroll-lock",
	KeyPause: "pause",
	KeyInsert: "insert",
	KeyHome: "home",
	KeyPageUp: "page-up",
	KeyDelete: "delete",
	KeyEnd: "end",
	KeyPageDown: "page-down",
	KeyNumLock: "num-lock",
	KeyKeypadSlash: "keypad-slash",
	KeyKeypadAsterisk: "keypad-asterisk",
	KeyKeypadMinus: "keypad-minus",
	KeyKeypad7: "keypad-7",
	KeyKeypad8: "keypad-8",
	KeyKeypad9: "keypad-9",
	KeyKeypadPlus: "keypad-plus",
	KeyKeypad4: "keypad-4",
	KeyKeypad5: "keypad-5",
	KeyKeypad6: "keypad-6",
	KeyKeypad1: "keypad-1",
	KeyKeypad2: "keypad-2",
	KeyKeypad3: "keypad-3",
	KeyKeypadEnter: "keypad-enter",
	KeyKeypad0: "keypad-0",
	KeyKeypadDelete: "keypad-delete",
	KeyMediaPrevTrack: "media-prev-track",
	KeyMediaNextTrack: "media-next-track",
	KeyMediaMute: "media-mute",
	KeyMediaCalculator: "media-calculator",
	KeyMediaPlay: "media-play",
	KeyMediaStop: "media-stop",
	KeyMediaVolumeDown: "media-volume-down",
	KeyMediaVolumeUp: "media-volume-up",
	KeyMediaWWWHome: "media-www-home",
	KeyMediaWWWSearch: "media-www-search",
	KeyMediaFavorites: "media-favorites",
	KeyMediaWWWRefresh: "media-www-refresh",
	KeyMediaWWWStop: "media-www-stop",
	KeyMediaWWWForward: "media-www-forward",
	KeyMediaWWWBack: "media-www-back",
	KeyMediaMyComputer: "media-my-computer",
	KeyMediaEmail: "media-email",
	KeyMediaSelect: "media-select",
}

// String implements fmt.Stringer for KeyCode.
func (k KeyCode) String() string {
	if k < NumKeyCodes {
		return keyNames[k]
	}
	return keyNames[KeyUnknown]
}
