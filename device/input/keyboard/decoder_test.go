package keyboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zuckeros/device/ps2"
	"zuckeros/kernel"
	"zuckeros/kernel/irq"
)

// mockKeyboard replies to commands with a scripted sequence of bytes.
type mockKeyboard struct {
	sent    []uint8
	replies []uint8

	irqLine    irq.Line
	irqHandler irq.Handler
}

// irqRegistry behaves like the irq package: one handler per line.
type irqRegistry struct {
	handlers map[irq.Line]irq.Handler
	released []irq.Line
}

func (r *irqRegistry) install() {
	r.handlers = make(map[irq.Line]irq.Handler)
	handleIRQFn = func(line irq.Line, h irq.Handler) *kernel.Error {
		if r.handlers[line] != nil {
			return irq.ErrHandlerRegistered
		}
		r.handlers[line] = h
		return nil
	}
	releaseIRQFn = func(line irq.Line) *kernel.Error {
		delete(r.handlers, line)
		r.released = append(r.released, line)
		return nil
	}
}

func installMockKeyboard(t *testing.T, replies ...uint8) *mockKeyboard {
	m := &mockKeyboard{replies: replies}

	sendByteFn = func(port, b uint8) *kernel.Error {
		m.sent = append(m.sent, b)
		return nil
	}
	receiveByteFn = func() (uint8, *kernel.Error) {
		if len(m.replies) == 0 {
			return 0, ps2.ErrTimeout
		}
		b := m.replies[0]
		m.replies = m.replies[1:]
		return b, nil
	}
	handleIRQFn = func(line irq.Line, h irq.Handler) *kernel.Error {
		m.irqLine, m.irqHandler = line, h
		return nil
	}

	t.Cleanup(func() {
		sendByteFn = ps2.SendByte
		receiveByteFn = ps2.ReceiveByte
		readDataFn = ps2.ReadData
		handleIRQFn = irq.HandleIRQ
		releaseIRQFn = irq.ReleaseIRQ
	})
	return m
}

// newReadyDecoder returns a decoder that completed its handshake.
func newReadyDecoder(t *testing.T) (*Decoder, *Queue) {
	installMockKeyboard(t, ps2.RespAck, ps2.RespAck, ps2.RespAck, ps2.RespAck)

	q := new(Queue)
	d := NewDecoder(Set1(), q)
	require.Nil(t, d.Init(ps2.Port1))
	require.Equal(t, StateNormal, d.State())
	return d, q
}

func feed(d *Decoder, data ...uint8) {
	for _, b := range data {
		d.HandleByte(b)
	}
}

func drain(q *Queue) []KeyEvent {
	var events []KeyEvent
	for {
		ev, ok := q.Pop()
		if !ok {
			return events
		}
		events = append(events, ev)
	}
}

func TestDecoderInit(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		m := installMockKeyboard(t, ps2.RespAck, ps2.RespAck, ps2.RespAck, ps2.RespAck)

		d := NewDecoder(Set1(), new(Queue))
		require.Nil(t, d.Init(ps2.Port1))

		assert.Equal(t, []uint8{cmdDisableScanning, cmdScancodeSet, scancodeSet1, cmdEnableScanning}, m.sent)
		assert.Equal(t, irq.LineKeyboard, m.irqLine)
		assert.NotNil(t, m.irqHandler)
		assert.Equal(t, StateNormal, d.State())

		assert.Equal(t, ErrAlreadyInitialized, d.Init(ps2.Port1))
	})

	t.Run("second port uses the auxiliary line", func(t *testing.T) {
		m := installMockKeyboard(t, ps2.RespAck, ps2.RespAck, ps2.RespAck, ps2.RespAck)

		d := NewDecoder(Set1(), new(Queue))
		require.Nil(t, d.Init(ps2.Port2))
		assert.Equal(t, irq.LineAuxiliary, m.irqLine)
	})

	t.Run("resend is retried", func(t *testing.T) {
		m := installMockKeyboard(t,
			ps2.RespAck,
			ps2.RespResend,
			ps2.RespAck, ps2.RespResend,
			ps2.RespAck, ps2.RespAck,
			ps2.RespAck,
		)

		d := NewDecoder(Set1(), new(Queue))
		require.Nil(t, d.Init(ps2.Port1))
		assert.Equal(t, []uint8{
			cmdDisableScanning,
			cmdScancodeSet,
			cmdScancodeSet, scancodeSet1,
			cmdScancodeSet, scancodeSet1,
			cmdEnableScanning,
		}, m.sent)
	})

	t.Run("resend budget exhausted", func(t *testing.T) {
		m := installMockKeyboard(t, ps2.RespAck, ps2.RespResend, ps2.RespResend, ps2.RespResend)

		d := NewDecoder(Set1(), new(Queue))
		assert.Equal(t, ErrScancodeSetFailed, d.Init(ps2.Port1))
		assert.Equal(t, StateUninitialized, d.State())
		assert.Nil(t, m.irqHandler, "IRQ must not be installed")
	})

	t.Run("scancode set rejected", func(t *testing.T) {
		installMockKeyboard(t, ps2.RespAck, ps2.RespAck, 0xfc)

		d := NewDecoder(Set1(), new(Queue))
		assert.Equal(t, ErrScancodeSetFailed, d.Init(ps2.Port1))
	})

	t.Run("scancode set timeout", func(t *testing.T) {
		installMockKeyboard(t, ps2.RespAck)

		d := NewDecoder(Set1(), new(Queue))
		assert.Equal(t, ErrScancodeSetFailed, d.Init(ps2.Port1))
	})

	t.Run("keyboard not responding", func(t *testing.T) {
		installMockKeyboard(t)

		d := NewDecoder(Set1(), new(Queue))
		assert.Equal(t, ps2.ErrTimeout, d.Init(ps2.Port1))
	})

	t.Run("command rejected", func(t *testing.T) {
		installMockKeyboard(t, 0x00)

		d := NewDecoder(Set1(), new(Queue))
		assert.Equal(t, ErrCommandFailed, d.Init(ps2.Port1))
	})

	t.Run("enable scanning failure releases the irq", func(t *testing.T) {
		m := installMockKeyboard(t, ps2.RespAck, ps2.RespAck, ps2.RespAck)
		var registry irqRegistry
		registry.install()

		d := NewDecoder(Set1(), new(Queue))
		assert.Equal(t, ps2.ErrTimeout, d.Init(ps2.Port1))
		assert.Equal(t, StateUninitialized, d.State())
		assert.Equal(t, []irq.Line{irq.LineKeyboard}, registry.released)
		assert.Empty(t, registry.handlers)

		m.replies = []uint8{ps2.RespAck, ps2.RespAck, ps2.RespAck, ps2.RespAck}
		require.Nil(t, d.Init(ps2.Port1), "retry must succeed")
		assert.Equal(t, StateNormal, d.State())
		assert.NotNil(t, registry.handlers[irq.LineKeyboard])
	})

	t.Run("irq registration failure", func(t *testing.T) {
		installMockKeyboard(t, ps2.RespAck, ps2.RespAck, ps2.RespAck)
		handleIRQFn = func(irq.Line, irq.Handler) *kernel.Error { return irq.ErrHandlerRegistered }

		d := NewDecoder(Set1(), new(Queue))
		assert.Equal(t, irq.ErrHandlerRegistered, d.Init(ps2.Port1))
		assert.Equal(t, StateUninitialized, d.State())
	})
}

func TestDecoderIgnoresInputBeforeInit(t *testing.T) {
	q := new(Queue)
	d := NewDecoder(Set1(), q)

	feed(d, 0x1e, 0x9e)
	assert.Zero(t, q.Len())
	assert.Equal(t, StateUninitialized, d.State())
}

func TestDecoderPressRelease(t *testing.T) {
	d, q := newReadyDecoder(t)

	feed(d, 0x1e, 0x9e)
	assert.Equal(t, []KeyEvent{
		{Code: KeyA, Transition: Pressed},
		{Code: KeyA, Transition: Released},
	}, drain(q))
}

func TestDecoderShift(t *testing.T) {
	d, q := newReadyDecoder(t)

	feed(d, 0x2a, 0x1e, 0xaa)
	assert.Equal(t, []KeyEvent{
		{Code: KeyLeftShift, Transition: Pressed, Modifiers: ModShift},
		{Code: KeyA, Transition: Pressed, Modifiers: ModShift},
		{Code: KeyLeftShift, Transition: Released},
	}, drain(q))
	assert.Zero(t, d.Modifiers())
}

func TestDecoderDualKeyModifiers(t *testing.T) {
	d, q := newReadyDecoder(t)

	// left shift down, right shift down, left shift up: shift still held
	feed(d, 0x2a, 0x36, 0xaa)
	assert.True(t, d.Modifiers().Has(ModShift))

	// typematic repeat of the right shift must not inflate the count
	feed(d, 0x36, 0x36, 0xb6)
	assert.False(t, d.Modifiers().Has(ModShift))

	// a stray release does not underflow
	feed(d, 0xb6, 0x2a)
	assert.True(t, d.Modifiers().Has(ModShift))
	feed(d, 0xaa)
	assert.False(t, d.Modifiers().Has(ModShift))

	// left ctrl + right ctrl (E0 1D)
	feed(d, 0x1d, 0xe0, 0x1d, 0x9d)
	assert.True(t, d.Modifiers().Has(ModCtrl))
	feed(d, 0xe0, 0x9d)
	assert.False(t, d.Modifiers().Has(ModCtrl))

	drain(q)
}

func TestDecoderToggleModifiers(t *testing.T) {
	d, q := newReadyDecoder(t)

	// press, typematic repeat, release
	feed(d, 0x3a)
	assert.True(t, d.Modifiers().Has(ModCapsLock))
	feed(d, 0xba)
	assert.True(t, d.Modifiers().Has(ModCapsLock))
	feed(d, 0x3a, 0xba)
	assert.False(t, d.Modifiers().Has(ModCapsLock))

	feed(d, 0x45, 0xc5, 0x46, 0xc6)
	assert.Equal(t, ModNumLock|ModScrollLock, d.Modifiers())

	drain(q)
}

func TestDecoderSingleKeyModifiers(t *testing.T) {
	d, q := newReadyDecoder(t)

	specs := []struct {
		press, release []uint8
		mask           Modifiers
	}{
		{[]uint8{0x38}, []uint8{0xb8}, ModAlt},
		{[]uint8{0xe0, 0x38}, []uint8{0xe0, 0xb8}, ModAltGr},
		{[]uint8{0xe0, 0x5b}, []uint8{0xe0, 0xdb}, ModLeftSuper},
		{[]uint8{0xe0, 0x5c}, []uint8{0xe0, 0xdc}, ModRightSuper},
	}

	for specIndex, spec := range specs {
		feed(d, spec.press...)
		assert.Equal(t, spec.mask, d.Modifiers(), "spec %d", specIndex)
		feed(d, spec.release...)
		assert.Zero(t, d.Modifiers(), "spec %d", specIndex)
	}

	drain(q)
}

func TestDecoderPrefixedKeys(t *testing.T) {
	d, q := newReadyDecoder(t)

	feed(d, 0xe0, 0x48, 0xe0, 0xc8, 0xe0, 0x1c)
	assert.Equal(t, []KeyEvent{
		{Code: KeyUp, Transition: Pressed},
		{Code: KeyUp, Transition: Released},
		{Code: KeyKeypadEnter, Transition: Pressed},
	}, drain(q))
	assert.Equal(t, StateNormal, d.State())

	// fake shifts emitted around navigation keys are dropped
	feed(d, 0xe0, 0xaa, 0xe0, 0x52, 0xe0, 0xd2, 0xe0, 0x36)
	assert.Equal(t, []KeyEvent{
		{Code: KeyInsert, Transition: Pressed},
		{Code: KeyInsert, Transition: Released},
	}, drain(q))
	assert.Zero(t, d.Modifiers())
}

func TestDecoderPrintScreen(t *testing.T) {
	d, q := newReadyDecoder(t)

	feed(d, 0xe0, 0x2a, 0xe0, 0x37)
	assert.Equal(t, []KeyEvent{{Code: KeyPrintScreen, Transition: Pressed}}, drain(q))
	assert.Equal(t, StateNormal, d.State())

	feed(d, 0xe0, 0xb7, 0xe0, 0xaa)
	assert.Equal(t, []KeyEvent{{Code: KeyPrintScreen, Transition: Released}}, drain(q))
	assert.Equal(t, StateNormal, d.State())
}

func TestDecoderPause(t *testing.T) {
	d, q := newReadyDecoder(t)

	feed(d, 0xe1, 0x1d, 0x45, 0xe1, 0x9d, 0xc5)
	assert.Equal(t, []KeyEvent{{Code: KeyPause, Transition: Pressed}}, drain(q))
	assert.Equal(t, StateNormal, d.State())
	assert.False(t, d.Modifiers().Has(ModNumLock), "pause must not toggle num lock")
}

func TestDecoderStateTransitions(t *testing.T) {
	specs := []struct {
		input    []uint8
		expState State
	}{
		{[]uint8{0xe0}, StatePrefixE0},
		{[]uint8{0xe0, 0x2a}, StatePrefixE0_2A},
		{[]uint8{0xe0, 0x2a, 0xe0}, StatePrefixE0_2A_E0},
		{[]uint8{0xe0, 0xb7}, StatePrefixE0_B7},
		{[]uint8{0xe0, 0xb7, 0xe0}, StatePrefixE0_B7_E0},
		{[]uint8{0xe1}, StatePrefixE1},
		{[]uint8{0xe1, 0x1d}, StatePrefixE1_1D},
		{[]uint8{0xe1, 0x1d, 0x45}, StatePrefixE1_1D_45},
		{[]uint8{0xe1, 0x1d, 0x45, 0xe1}, StatePrefixE1_1D_45_E1},
		{[]uint8{0xe1, 0x1d, 0x45, 0xe1, 0x9d}, StatePrefixE1_1D_45_E1_9D},

		// mismatch in the middle of a sequence
		{[]uint8{0xe0, 0x05}, StateInvalid},
		{[]uint8{0xe0, 0x2a, 0x1e}, StateInvalid},
		{[]uint8{0xe0, 0xb7, 0x1e}, StateInvalid},
		{[]uint8{0xe1, 0x1e}, StateInvalid},
		{[]uint8{0xe1, 0x1d, 0x1e}, StateInvalid},
		{[]uint8{0xe1, 0x1d, 0x45, 0x1e}, StateInvalid},
		{[]uint8{0xe1, 0x1d, 0x45, 0xe1, 0x1e}, StateInvalid},

		// mismatch on the final byte
		{[]uint8{0xe0, 0x2a, 0xe0, 0x1e}, StateNormal},
		{[]uint8{0xe0, 0xb7, 0xe0, 0x1e}, StateNormal},
		{[]uint8{0xe1, 0x1d, 0x45, 0xe1, 0x9d, 0x1e}, StateNormal},
	}

	for specIndex, spec := range specs {
		d, q := newReadyDecoder(t)
		feed(d, spec.input...)

		assert.Equal(t, spec.expState, d.State(), "spec %d: %x", specIndex, spec.input)
		assert.Zero(t, q.Len(), "spec %d: %x", specIndex, spec.input)
	}
}

func TestDecoderResynchronizes(t *testing.T) {
	for _, terminator := range []uint8{0x37, 0xaa, 0xc5} {
		d, q := newReadyDecoder(t)

		feed(d, 0xe0, 0x05)
		require.Equal(t, StateInvalid, d.State())

		// everything up to the terminator is discarded
		feed(d, 0x1e, 0x9e, 0x2a, terminator)
		assert.Equal(t, StateNormal, d.State(), "terminator 0x%x", terminator)
		assert.Zero(t, q.Len(), "terminator 0x%x", terminator)
		assert.Zero(t, d.Modifiers(), "terminator 0x%x", terminator)

		feed(d, 0x1e)
		assert.Equal(t, []KeyEvent{{Code: KeyA, Transition: Pressed}}, drain(q))
	}
}

func TestDecoderHandleIRQ(t *testing.T) {
	d, q := newReadyDecoder(t)

	readDataFn = func() uint8 { return 0x10 }
	d.HandleIRQ()

	assert.Equal(t, []KeyEvent{{Code: KeyQ, Transition: Pressed}}, drain(q))
}

func TestDecoderUnknownKey(t *testing.T) {
	d, q := newReadyDecoder(t)

	feed(d, 0x7f)
	assert.Equal(t, []KeyEvent{{Code: KeyUnknown, Transition: Pressed}}, drain(q))
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "PrefixE1_1D_45_E1_9D", StatePrefixE1_1D_45_E1_9D.String())
	assert.Equal(t, "Invalid", StateInvalid.String())
	assert.Equal(t, "unknown", State(200).String())
}
