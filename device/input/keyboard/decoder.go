package keyboard

import (
	"zuckeros/device/ps2"
	"zuckeros/kernel"
	"zuckeros/kernel/irq"
)

// State is the state of the scancode decoder.
type State uint8

// The decoder states. The Print Screen and Pause states follow the byte
// sequences E0 2A E0 37 (Print Screen press), E0 B7 E0 AA (Print Screen
// release) and E1 1D 45 E1 9D C5 (Pause).
const (
	StateUninitialized State = iota
	StateNormal
	StatePrefixE0
	StatePrefixE0_2A
	StatePrefixE0_2A_E0
	StatePrefixE0_B7
	StatePrefixE0_B7_E0
	StatePrefixE1
	StatePrefixE1_1D
	StatePrefixE1_1D_45
	StatePrefixE1_1D_45_E1
	StatePrefixE1_1D_45_E1_9D
	StateInvalid
)

var stateNames = [...]string{
	"Uninitialized",
	"Normal",
	"PrefixE0",
	"PrefixE0_2A",
	"PrefixE0_2A_E0",
	"PrefixE0_B7",
	"PrefixE0_B7_E0",
	"PrefixE1",
	"PrefixE1_1D",
	"PrefixE1_1D_45",
	"PrefixE1_1D_45_E1",
	"PrefixE1_1D_45_E1_9D",
	"Invalid",
}

// String implements fmt.Stringer for State.
func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "unknown"
}

const (
	cmdEnableScanning  = 0xf4
	cmdDisableScanning = 0xf5
	cmdScancodeSet     = 0xf0
	scancodeSet1       = 0x01

	// maxAttempts bounds how often a command is sent to a device that
	// keeps asking for a resend.
	maxAttempts = 3

	releasedBit = 0x80
)

var (
	// ErrAlreadyInitialized is returned when Init is invoked on a decoder
	// that has already been initialized.
	ErrAlreadyInitialized = &kernel.Error{Module: "ps2kbd", Message: "keyboard already initialized"}

	// ErrScancodeSetFailed is returned when the keyboard does not accept
	// scancode set 1.
	ErrScancodeSetFailed = &kernel.Error{Module: "ps2kbd", Message: "unable to select scancode set 1"}

	// ErrCommandFailed is returned when the keyboard rejects a command.
	ErrCommandFailed = &kernel.Error{Module: "ps2kbd", Message: "keyboard did not acknowledge command"}

	sendByteFn    = ps2.SendByte
	receiveByteFn = ps2.ReceiveByte
	readDataFn    = ps2.ReadData
	handleIRQFn   = irq.HandleIRQ
	releaseIRQFn  = irq.ReleaseIRQ
)

// modifierClass selects how a key affects the modifier state.
type modifierClass uint8

const (
	classNone modifierClass = iota

	// classToggle keys flip their bit on every press.
	classToggle

	// classDualKey modifiers have two physical keys that act as one.
	classDualKey

	// classSingleKey modifiers mirror the state of their key.
	classSingleKey
)

// classify returns the modifier class of code and the modifier bit it
// controls.
func classify(code KeyCode) (modifierClass, Modifiers) {
	switch code {
	case KeyCapsLock:
		return classToggle, ModCapsLock
	case KeyNumLock:
		return classToggle, ModNumLock
	case KeyScrollLock:
		return classToggle, ModScrollLock
	case KeyLeftShift, KeyRightShift:
		return classDualKey, ModShift
	case KeyLeftCtrl, KeyRightCtrl:
		return classDualKey, ModCtrl
	case KeyAlt:
		return classSingleKey, ModAlt
	case KeyAltGr:
		return classSingleKey, ModAltGr
	case KeyLeftSuper:
		return classSingleKey, ModLeftSuper
	case KeyRightSuper:
		return classSingleKey, ModRightSuper
	default:
		return classNone, 0
	}
}

// Decoder turns the scancode set 1 byte stream of a PS/2 keyboard into key
// events. HandleByte runs in interrupt context; it never blocks, never
// allocates and must not be re-entered.
type Decoder struct {
	table ScancodeTable
	queue *Queue

	state     State
	modifiers Modifiers

	// shiftCount and ctrlCount track how many physical keys of each dual
	// key modifier are held down. held records which ones so that
	// typematic repeats do not inflate the counts.
	shiftCount uint8
	ctrlCount  uint8
	held       [4]bool
}

// NewDecoder returns an uninitialized decoder that resolves scancodes with
// table and pushes the decoded events to queue.
func NewDecoder(table ScancodeTable, queue *Queue) *Decoder {
	return &Decoder{table: table, queue: queue}
}

// State returns the current decoder state.
func (d *Decoder) State() State {
	return d.state
}

// Modifiers returns the current modifier state.
func (d *Decoder) Modifiers() Modifiers {
	return d.modifiers
}

// Init configures the keyboard attached to the given PS/2 port for scancode
// set 1, installs the interrupt handler and enables scanning.
func (d *Decoder) Init(port uint8) *kernel.Error {
	if d.state != StateUninitialized {
		return ErrAlreadyInitialized
	}

	// Keep the keyboard quiet while it is being configured.
	if err := command(port, cmdDisableScanning); err != nil {
		return err
	}

	if err := selectScancodeSet1(port); err != nil {
		return err
	}

	line := irq.LineKeyboard
	if port == ps2.Port2 {
		line = irq.LineAuxiliary
	}
	if err := handleIRQFn(line, d.HandleIRQ); err != nil {
		return err
	}

	if err := command(port, cmdEnableScanning); err != nil {
		releaseIRQFn(line)
		return err
	}

	d.state = StateNormal
	return nil
}

// command sends a single byte command and waits for the acknowledgement.
func command(port, cmd uint8) *kernel.Error {
	for attempt := 0; attempt < maxAttempts; attempt++ {
		reply, err := sendWithReply(port, cmd)
		if err != nil {
			return err
		}

		switch reply {
		case ps2.RespAck:
			return nil
		case ps2.RespResend:
			continue
		default:
			return ErrCommandFailed
		}
	}

	return ErrCommandFailed
}

// selectScancodeSet1 sends the set-scancode-set command followed by its
// argument. The whole exchange is repeated while the keyboard asks for a
// resend, up to maxAttempts times.
func selectScancodeSet1(port uint8) *kernel.Error {
attempts:
	for attempt := 0; attempt < maxAttempts; attempt++ {
		for _, b := range [...]uint8{cmdScancodeSet, scancodeSet1} {
			reply, err := sendWithReply(port, b)
			if err != nil {
				return ErrScancodeSetFailed
			}

			switch reply {
			case ps2.RespAck:
			case ps2.RespResend:
				continue attempts
			default:
				return ErrScancodeSetFailed
			}
		}

		return nil
	}

	return ErrScancodeSetFailed
}

func sendWithReply(port, b uint8) (uint8, *kernel.Error) {
	if err := sendByteFn(port, b); err != nil {
		return 0, err
	}
	return receiveByteFn()
}

// HandleIRQ reads the byte that triggered the keyboard interrupt and feeds
// it to the decoder.
func (d *Decoder) HandleIRQ() {
	d.HandleByte(readDataFn())
}

// HandleByte advances the decoder by one received byte. Bytes that complete
// a scancode produce a KeyEvent on the queue.
func (d *Decoder) HandleByte(b uint8) {
	switch d.state {
	case StateUninitialized:
		// Bytes arriving before Init are discarded.

	case StateNormal:
		switch b {
		case 0xe0:
			d.state = StatePrefixE0
		case 0xe1:
			d.state = StatePrefixE1
		default:
			d.decode(b, false)
		}

	case StatePrefixE0:
		switch b {
		case 0x2a:
			d.state = StatePrefixE0_2A
		case 0xb7:
			d.state = StatePrefixE0_B7
		case 0xaa, 0x36, 0xb6:
			// Fake shift codes sent around the navigation keys.
			d.state = StateNormal
		default:
			if d.table.Lookup(b, true) == KeyUnknown {
				d.state = StateInvalid
				return
			}
			d.decode(b, true)
			d.state = StateNormal
		}

	case StatePrefixE0_2A:
		d.advance(b, 0xe0, StatePrefixE0_2A_E0)
	case StatePrefixE0_2A_E0:
		d.finish(b, 0x37)
	case StatePrefixE0_B7:
		d.advance(b, 0xe0, StatePrefixE0_B7_E0)
	case StatePrefixE0_B7_E0:
		d.finish(b, 0xaa)

	case StatePrefixE1:
		d.advance(b, 0x1d, StatePrefixE1_1D)
	case StatePrefixE1_1D:
		d.advance(b, 0x45, StatePrefixE1_1D_45)
	case StatePrefixE1_1D_45:
		d.advance(b, 0xe1, StatePrefixE1_1D_45_E1)
	case StatePrefixE1_1D_45_E1:
		d.advance(b, 0x9d, StatePrefixE1_1D_45_E1_9D)
	case StatePrefixE1_1D_45_E1_9D:
		// Pause has no break code; the whole sequence is a press.
		if b == 0xc5 {
			d.decode(b&^releasedBit, true)
		}
		d.state = StateNormal

	case StateInvalid:
		switch b {
		case 0x37, 0xaa, 0xc5:
			d.state = StateNormal
		}
	}
}

// advance moves to next if b is the expected byte of a multi-byte sequence
// and to StateInvalid otherwise.
func (d *Decoder) advance(b, expected uint8, next State) {
	if b != expected {
		d.state = StateInvalid
		return
	}
	d.state = next
}

// finish decodes the final byte of a Print Screen sequence. Any other byte
// ends the sequence without an event.
func (d *Decoder) finish(b, expected uint8) {
	if b == expected {
		d.decode(b, true)
	}
	d.state = StateNormal
}

// decode converts a terminal scancode byte into a KeyEvent.
func (d *Decoder) decode(b uint8, hadPrefix bool) {
	transition := Pressed
	if b&releasedBit != 0 {
		transition = Released
	}

	code := d.table.Lookup(b&^releasedBit, hadPrefix)
	d.updateModifiers(code, transition)

	d.queue.Push(KeyEvent{Code: code, Transition: transition, Modifiers: d.modifiers})
}

// heldIndex maps the physical keys of dual key modifiers to an index in
// Decoder.held.
func heldIndex(code KeyCode) int {
	switch code {
	case KeyLeftShift:
		return 0
	case KeyRightShift:
		return 1
	case KeyLeftCtrl:
		return 2
	default:
		return 3
	}
}

func (d *Decoder) updateModifiers(code KeyCode, transition Transition) {
	class, mask := classify(code)

	switch class {
	case classToggle:
		if transition == Pressed {
			d.modifiers ^= mask
		}

	case classDualKey:
		count := &d.shiftCount
		if mask == ModCtrl {
			count = &d.ctrlCount
		}

		held := &d.held[heldIndex(code)]
		switch {
		case transition == Pressed && !*held:
			*held = true
			*count++
		case transition == Released && *held:
			*held = false
			*count--
		}

		if *count != 0 {
			d.modifiers |= mask
		} else {
			d.modifiers &^= mask
		}

	case classSingleKey:
		if transition == Pressed {
			d.modifiers |= mask
		} else {
			d.modifiers &^= mask
		}
	}
}

