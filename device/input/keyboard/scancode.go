package keyboard

// prefixBit marks the table entries of scancodes that followed a 0xE0 or
// 0xE1 prefix byte.
const prefixBit = 0x80

// ScancodeTable maps the 7-bit make code of a scancode to a KeyCode.
// Implementations must be safe to call from an interrupt handler.
type ScancodeTable interface {
	Lookup(code uint8, hadPrefix bool) KeyCode
}

// Table is a flat scancode table. Entries [0x00, 0x80) hold unprefixed make
// codes and entries [0x80, 0x100) hold the make codes that follow a prefix.
type Table [256]KeyCode

// Lookup returns the KeyCode for code. The high bit of code is ignored.
func (t *Table) Lookup(code uint8, hadPrefix bool) KeyCode {
	index := code &^ prefixBit
	if hadPrefix {
		index |= prefixBit
	}
	return t[index]
}

// Set1 returns the scancode set 1 table for a German keyboard.
func Set1() *Table {
	return &set1
}

var set1 = Table{
	0x01: KeyEsc,
	0x02: Key1,
	0x03: Key2,
	0x04: Key3,
	0x05: Key4,
	0x06: Key5,
	0x07: Key6,
	0x08: Key7,
	0x09: Key8,
	0x0a: Key9,
	0x0b: Key0,
	0x0c: KeySharpS,
	0x0d: KeyAcute,
	0x0e: KeyBackspace,
	0x0f: KeyTab,
	0x10: KeyQ,
	0x11: KeyW,
	0x12: KeyE,
	0x13: KeyR,
	0x14: KeyT,
	0x15: KeyZ,
	0x16: KeyU,
	0x17: KeyI,
	0x18: KeyO,
	0x19: KeyP,
	0x1a: KeyUDiaeresis,
	0x1b: KeyPlus,
	0x1c: KeyEnter,
	0x1d: KeyLeftCtrl,
	0x1e: KeyA,
	0x1f: KeyS,
	0x20: KeyD,
	0x21: KeyF,
	0x22: KeyG,
	0x23: KeyH,
	0x24: KeyJ,
	0x25: KeyK,
	0x26: KeyL,
	0x27: KeyODiaeresis,
	0x28: KeyADiaeresis,
	0x29: KeyCircumflex,
	0x2a: KeyLeftShift,
	0x2b: KeyHash,
	0x2c: KeyY,
	0x2d: KeyX,
	0x2e: KeyC,
	0x2f: KeyV,
	0x30: KeyB,
	0x31: KeyN,
	0x32: KeyM,
	0x33: KeyComma,
	0x34: KeyPeriod,
	0x35: KeyMinus,
	0x36: KeyRightShift,
	0x37: KeyKeypadAsterisk,
	0x38: KeyAlt,
	0x39: KeySpace,
	0x3a: KeyCapsLock,
	0x3b: KeyF1,
	0x3c: KeyF2,
	0x3d: KeyF3,
	0x3e: KeyF4,
	0x3f: KeyF5,
	0x40: KeyF6,
	0x41: KeyF7,
	0x42: KeyF8,
	0x43: KeyF9,
	0x44: KeyF10,
	0x45: KeyNumLock,
	0x46: KeyScrollLock,
	0x47: KeyKeypad7,
	0x48: KeyKeypad8,
	0x49: KeyKeypad9,
	0x4a: KeyKeypadMinus,
	0x4b: KeyKeypad4,
	0x4c: KeyKeypad5,
	0x4d: KeyKeypad6,
	0x4e: KeyKeypadPlus,
	0x4f: KeyKeypad1,
	0x50: KeyKeypad2,
	0x51: KeyKeypad3,
	0x52: KeyKeypad0,
	0x53: KeyKeypadDelete,
	0x56: KeyLessThan,
	0x57: KeyF11,
	0x58: KeyF12,

	// 0xE0 prefixed keys.
	prefixBit | 0x10: KeyMediaPrevTrack,
	prefixBit | 0x19: KeyMediaNextTrack,
	prefixBit | 0x1c: KeyKeypadEnter,
	prefixBit | 0x1d: KeyRightCtrl,
	prefixBit | 0x20: KeyMediaMute,
	prefixBit | 0x21: KeyMediaCalculator,
	prefixBit | 0x22: KeyMediaPlay,
	prefixBit | 0x24: KeyMediaStop,
	prefixBit | 0x2e: KeyMediaVolumeDown,
	prefixBit | 0x30: KeyMediaVolumeUp,
	prefixBit | 0x32: KeyMediaWWWHome,
	prefixBit | 0x35: KeyKeypadSlash,
	prefixBit | 0x38: KeyAltGr,
	prefixBit | 0x47: KeyHome,
	prefixBit | 0x48: KeyUp,
	prefixBit | 0x49: KeyPageUp,
	prefixBit | 0x4b: KeyLeft,
	prefixBit | 0x4d: KeyRight,
	prefixBit | 0x4f: KeyEnd,
	prefixBit | 0x50: KeyDown,
	prefixBit | 0x51: KeyPageDown,
	prefixBit | 0x52: KeyInsert,
	prefixBit | 0x53: KeyDelete,
	prefixBit | 0x5b: KeyLeftSuper,
	prefixBit | 0x5c: KeyRightSuper,
	prefixBit | 0x5d: KeyMenu,
	prefixBit | 0x65: KeyMediaWWWSearch,
	prefixBit | 0x66: KeyMediaFavorites,
	prefixBit | 0x67: KeyMediaWWWRefresh,
	prefixBit | 0x68: KeyMediaWWWStop,
	prefixBit | 0x69: KeyMediaWWWForward,
	prefixBit | 0x6a: KeyMediaWWWBack,
	prefixBit | 0x6b: KeyMediaMyComputer,
	prefixBit | 0x6c: KeyMediaEmail,
	prefixBit | 0x6d: KeyMediaSelect,

	// Terminal bytes of the multi-byte sequences. Print Screen ends with
	// 0x37 on press and 0xAA (make code 0x2A) on release; Pause ends with
	// 0xC5 (make code 0x45).
	prefixBit | 0x37: KeyPrintScreen,
	prefixBit | 0x2a: KeyPrintScreen,
	prefixBit | 0x45: KeyPause,
}
