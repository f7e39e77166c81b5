// Package pic drives the pair of cascaded 8259 programmable interrupt
// controllers found on every PC compatible machine.
package pic

import (
	"zuckeros/kernel"
	"zuckeros/kernel/cpu"
)

const (
	pic1Command uint16 = 0x20
	pic1Data    uint16 = 0x21
	pic2Command uint16 = 0xa0
	pic2Data    uint16 = 0xa1

	icw1Init      = 1 << 4
	icw1ICW4      = 1 << 0
	icw4Mode8086  = 1 << 0
	cascadeLine   = 2
	cmdEndOfIntr  = 1 << 5
	linesPerChip  = 8
	maskAllLines  = 0xff
	maxLineNumber = 2*linesPerChip - 1
)

var (
	// ErrInvalidLine is returned for IRQ lines outside [0, 15].
	ErrInvalidLine = &kernel.Error{Module: "pic", Message: "invalid IRQ line"}

	portWriteByteFn = cpu.PortWriteByte
	portReadByteFn  = cpu.PortReadByte
	ioWaitFn        = cpu.IOWait
)

// Init remaps the IRQs of the master controller to vectors
// [offset1, offset1+8) and the IRQs of the slave controller to
// [offset2, offset2+8). All lines are masked afterwards; use EnableIRQ to
// unmask the lines that have a handler.
func Init(offset1, offset2 uint8) {
	write := func(port uint16, val uint8) {
		portWriteByteFn(port, val)
		ioWaitFn()
	}

	// ICW1: start initialization in cascade mode, ICW4 follows.
	write(pic1Command, icw1Init|icw1ICW4)
	write(pic2Command, icw1Init|icw1ICW4)

	// ICW2: vector offsets.
	write(pic1Data, offset1)
	write(pic2Data, offset2)

	// ICW3: slave is attached to line 2 of the master.
	write(pic1Data, 1<<cascadeLine)
	write(pic2Data, cascadeLine)

	// ICW4
	write(pic1Data, icw4Mode8086)
	write(pic2Data, icw4Mode8086)

	write(pic1Data, maskAllLines)
	write(pic2Data, maskAllLines)
}

// lineToPort returns the data port and the bit index for an IRQ line.
func lineToPort(line uint8) (uint16, uint8, *kernel.Error) {
	switch {
	case line > maxLineNumber:
		return 0, 0, ErrInvalidLine
	case line >= linesPerChip:
		return pic2Data, line - linesPerChip, nil
	default:
		return pic1Data, line, nil
	}
}

// EnableIRQ unmasks the supplied IRQ line. Unmasking a slave line also
// unmasks the cascade line on the master.
func EnableIRQ(line uint8) *kernel.Error {
	port, bit, err := lineToPort(line)
	if err != nil {
		return err
	}

	portWriteByteFn(port, portReadByteFn(port)&^(1<<bit))
	if port == pic2Data {
		portWriteByteFn(pic1Data, portReadByteFn(pic1Data)&^(1<<cascadeLine))
	}
	return nil
}

// DisableIRQ masks the supplied IRQ line.
func DisableIRQ(line uint8) *kernel.Error {
	port, bit, err := lineToPort(line)
	if err != nil {
		return err
	}

	portWriteByteFn(port, portReadByteFn(port)|(1<<bit))
	return nil
}

// SendEOI acknowledges an IRQ. Lines served by the slave controller must be
// acknowledged on both chips.
func SendEOI(line uint8) {
	if line >= linesPerChip {
		portWriteByteFn(pic2Command, cmdEndOfIntr)
	}
	portWriteByteFn(pic1Command, cmdEndOfIntr)
}
