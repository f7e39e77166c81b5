// Package irq routes hardware interrupts and CPU exceptions to their
// handlers.
//
// Handlers run with interrupts disabled and must neither block nor
// allocate memory.
package irq

import (
	"zuckeros/device/pic"
	"zuckeros/kernel"
	"zuckeros/kernel/kfmt"
)

// Line identifies one of the 16 legacy IRQ lines.
type Line uint8

const (
	// LineTimer is wired to the programmable interval timer.
	LineTimer Line = 0

	// LineKeyboard is wired to the first PS/2 port.
	LineKeyboard Line = 1

	// LineAuxiliary is wired to the second PS/2 port.
	LineAuxiliary Line = 12

	// NumLines is the number of IRQ lines served by the cascaded PICs.
	NumLines = 16

	// VectorBase is the interrupt vector IRQ line 0 is remapped to. Lines
	// 8-15 follow the first eight without a gap.
	VectorBase = 0x20
)

// Handler is invoked once for every interrupt raised on its line.
type Handler func()

var (
	// ErrInvalidLine is returned when registering a handler for a line
	// outside [0, NumLines).
	ErrInvalidLine = &kernel.Error{Module: "irq", Message: "invalid IRQ line"}

	// ErrHandlerRegistered is returned when a line already has a handler.
	ErrHandlerRegistered = &kernel.Error{Module: "irq", Message: "IRQ line already has a handler"}

	handlers [NumLines]Handler

	sendEOIFn    = pic.SendEOI
	enableIRQFn  = pic.EnableIRQ
	disableIRQFn = pic.DisableIRQ
)

// HandleIRQ registers handler for line and unmasks the line.
func HandleIRQ(line Line, handler Handler) *kernel.Error {
	if line >= NumLines {
		return ErrInvalidLine
	}
	if handlers[line] != nil {
		return ErrHandlerRegistered
	}

	handlers[line] = handler
	return enableIRQFn(uint8(line))
}

// ReleaseIRQ masks line and removes its handler so that a new one can be
// registered.
func ReleaseIRQ(line Line) *kernel.Error {
	if line >= NumLines {
		return ErrInvalidLine
	}

	handlers[line] = nil
	return disableIRQFn(uint8(line))
}

// Dispatch runs the handler registered for line and then acknowledges the
// interrupt. Interrupts without a handler are acknowledged and dropped.
func Dispatch(line Line) {
	if line >= NumLines {
		return
	}

	if h := handlers[line]; h != nil {
		h()
	} else {
		kfmt.Debugf("irq", "spurious interrupt on line %d", uint8(line))
	}

	sendEOIFn(uint8(line))
}
