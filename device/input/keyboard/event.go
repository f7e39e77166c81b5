package keyboard

// Transition describes whether a key went down or up.
type Transition uint8

// The supported key transitions.
const (
	Pressed Transition = iota + 1
	Released
)

// String implements fmt.Stringer for Transition.
func (t Transition) String() string {
	switch t {
	case Pressed:
		return "pressed"
	case Released:
		return "released"
	default:
		return "undefined"
	}
}

// Modifiers is a bitmask with the modifier state at the time of an event.
type Modifiers uint16

// The modifier bits.
const (
	ModShift Modifiers = 1 << iota
	ModCapsLock
	ModAlt
	ModAltGr
	ModCtrl
	ModNumLock
	ModScrollLock
	ModLeftSuper
	ModRightSuper
)

// Has returns true if all bits in mask are set.
func (m Modifiers) Has(mask Modifiers) bool {
	return m&mask == mask
}

// KeyEvent is emitted by the Decoder for every decoded key transition.
type KeyEvent struct {
	Code       KeyCode
	Transition Transition

	// Modifiers holds the modifier state after applying this event.
	Modifiers Modifiers
}
