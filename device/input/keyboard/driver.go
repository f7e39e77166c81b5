// Package keyboard implements the driver for PS/2 keyboards using scancode
// set 1. Decoded key events are buffered in a Queue that is drained outside
// of interrupt context.
package keyboard

import (
	"io"

	"zuckeros/device"
	"zuckeros/device/ps2"
	"zuckeros/kernel"
	"zuckeros/kernel/hal/limine"
	"zuckeros/kernel/kfmt"
)

// Driver binds a Decoder and its Queue to a PS/2 port.
type Driver struct {
	port    uint8
	queue   Queue
	decoder Decoder
}

// NewDriver returns a keyboard driver for the given PS/2 port that decodes
// scancodes with table.
func NewDriver(port uint8, table ScancodeTable) *Driver {
	drv := &Driver{port: port}
	drv.decoder = Decoder{table: table, queue: &drv.queue}
	return drv
}

// DriverName returns the name of this driver.
func (*Driver) DriverName() string { return "ps2kbd" }

// DriverVersion returns the version of this driver.
func (*Driver) DriverVersion() (uint16, uint16, uint16) { return 1, 0, 0 }

// DriverInit performs the keyboard handshake and starts decoding input.
func (drv *Driver) DriverInit(w io.Writer) *kernel.Error {
	if err := drv.decoder.Init(drv.port); err != nil {
		return err
	}

	kfmt.Fprintf(w, "scancode set 1 on port %d\n", drv.port)
	return nil
}

// Events returns the queue that receives the decoded key events.
func (drv *Driver) Events() *Queue {
	return &drv.queue
}

// Decoder returns the scancode decoder of this driver.
func (drv *Driver) Decoder() *Decoder {
	return &drv.decoder
}

var (
	portWorksFn    = func(port uint8) bool { return ps2.ActiveController().PortWorks(port) }
	cmdlineValueFn = limine.CmdlineValue
)

// configuredPort returns the PS/2 port selected by the kbd.port command
// line option. The first port is used by default.
func configuredPort() uint8 {
	if v, ok := cmdlineValueFn("kbd.port"); ok && v == "2" {
		return ps2.Port2
	}
	return ps2.Port1
}

func probeForKeyboard() device.Driver {
	port := configuredPort()
	if !portWorksFn(port) {
		return nil
	}

	return NewDriver(port, Set1())
}

func init() {
	device.RegisterDriver(&device.DriverInfo{
		Order: device.DetectOrderNormal,
		Probe: probeForKeyboard,
	})
}
