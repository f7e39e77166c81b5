// Package serial provides a driver for 16550-compatible UARTs. The first
// port doubles as the kernel console.
package serial

import (
	"io"

	"zuckeros/device"
	"zuckeros/kernel"
	"zuckeros/kernel/cpu"
	"zuckeros/kernel/hal/limine"
	"zuckeros/kernel/kfmt"
)

// COM1 is the I/O base of the first serial port.
const COM1 uint16 = 0x3f8

const (
	regData        = 0
	regIntEnable   = 1
	regDivisorLow  = 0
	regDivisorHigh = 1
	regFIFOControl = 2
	regLineControl = 3
	regModemCtrl   = 4
	regLineStatus  = 5

	lineDLAB       = 1 << 7
	line8N1        = 0x03
	fifoEnableAll  = 0xc7
	modemLoopback  = 0x1b
	modemNormal    = 0x0b
	statusDataRdy  = 1 << 0
	statusTxEmpty  = 1 << 5
	loopbackByte   = 0x69
	maxBaudRate    = 115200
	defaultBaud    = 38400
	txPollAttempts = 100000
)

var (
	// ErrInvalidBaudRate is returned for baud rates that cannot be
	// programmed into the divisor latch.
	ErrInvalidBaudRate = &kernel.Error{Module: "serial", Message: "baud rate out of range"}

	// ErrLoopbackFailed is returned when the UART does not echo the test
	// byte in loopback mode.
	ErrLoopbackFailed = &kernel.Error{Module: "serial", Message: "loopback test failed"}

	portWriteByteFn = cpu.PortWriteByte
	portReadByteFn  = cpu.PortReadByte
)

// Port is a 16550 UART.
type Port struct {
	base     uint16
	baudRate uint32
}

// NewPort returns a driver for the UART at base.
func NewPort(base uint16, baudRate uint32) *Port {
	return &Port{base: base, baudRate: baudRate}
}

// DriverName returns the name of this driver.
func (p *Port) DriverName() string { return "serial" }

// DriverVersion returns the version of this driver.
func (p *Port) DriverVersion() (uint16, uint16, uint16) { return 1, 0, 0 }

// DriverInit programs the baud rate, selects 8N1 framing, enables the FIFOs
// and verifies the UART in loopback mode.
func (p *Port) DriverInit(w io.Writer) *kernel.Error {
	if p.baudRate == 0 || p.baudRate > maxBaudRate {
		return ErrInvalidBaudRate
	}

	divisor := uint16(maxBaudRate / p.baudRate)

	portWriteByteFn(p.base+regIntEnable, 0)
	portWriteByteFn(p.base+regLineControl, lineDLAB)
	portWriteByteFn(p.base+regDivisorLow, uint8(divisor))
	portWriteByteFn(p.base+regDivisorHigh, uint8(divisor>>8))
	portWriteByteFn(p.base+regLineControl, line8N1)
	portWriteByteFn(p.base+regFIFOControl, fifoEnableAll)

	portWriteByteFn(p.base+regModemCtrl, modemLoopback)
	portWriteByteFn(p.base+regData, loopbackByte)
	echo := portReadByteFn(p.base + regData)
	portWriteByteFn(p.base+regModemCtrl, modemNormal)

	if echo != loopbackByte {
		return ErrLoopbackFailed
	}

	kfmt.Fprintf(w, "port 0x%x, %d baud\n", p.base, p.baudRate)
	return nil
}

// WriteByte transmits b once the transmit holding register is empty. The
// byte is dropped if the UART never becomes ready.
func (p *Port) WriteByte(b byte) error {
	for tries := 0; portReadByteFn(p.base+regLineStatus)&statusTxEmpty == 0; tries++ {
		if tries == txPollAttempts {
			return nil
		}
	}

	portWriteByteFn(p.base+regData, b)
	return nil
}

// Write implements io.Writer. Line feeds are expanded to CR LF.
func (p *Port) Write(data []byte) (int, error) {
	for _, b := range data {
		if b == '\n' {
			p.WriteByte('\r')
		}
		p.WriteByte(b)
	}
	return len(data), nil
}

// ReadByte returns the next received byte if one is available.
func (p *Port) ReadByte() (byte, bool) {
	if portReadByteFn(p.base+regLineStatus)&statusDataRdy == 0 {
		return 0, false
	}
	return portReadByteFn(p.base + regData), true
}

func probeForCOM1() device.Driver {
	if v, ok := limine.CmdlineValue("console"); ok && v == "none" {
		return nil
	}

	return NewPort(COM1, defaultBaud)
}

func init() {
	device.RegisterDriver(&device.DriverInfo{
		Order: device.DetectOrderEarly,
		Probe: probeForCOM1,
	})
}
