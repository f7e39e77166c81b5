// Package ps2 talks to the 8042 PS/2 controller and the devices attached to
// its two ports.
package ps2

import (
	"io"

	"zuckeros/device"
	"zuckeros/kernel"
	"zuckeros/kernel/cpu"
	"zuckeros/kernel/kfmt"
)

// The controller ports a byte can be sent to.
const (
	// PortController addresses the controller itself; SendByte writes the
	// byte to the data register without redirection.
	PortController uint8 = 0
	Port1          uint8 = 1
	Port2          uint8 = 2
)

const (
	dataPort    uint16 = 0x60
	statusPort  uint16 = 0x64
	commandPort uint16 = 0x64

	statusOutputFull = 1 << 0
	statusInputFull  = 1 << 1

	cmdReadConfig      = 0x20
	cmdWriteConfig     = 0x60
	cmdDisablePort2    = 0xa7
	cmdEnablePort2     = 0xa8
	cmdTestPort2       = 0xa9
	cmdTestController  = 0xaa
	cmdTestPort1       = 0xab
	cmdDisablePort1    = 0xad
	cmdEnablePort1     = 0xae
	cmdWriteToPort2    = 0xd4
	cmdResetDevice     = 0xff
	respControllerOK   = 0x55
	respPortTestPassed = 0x00

	// RespAck is sent by a device that accepted a command.
	RespAck = 0xfa

	// RespResend is sent by a device that wants the last command repeated.
	RespResend = 0xfe

	respSelfTestPassed = 0xaa

	cfgPort1IRQ         = 1 << 0
	cfgPort2IRQ         = 1 << 1
	cfgPort1ClkDisabled = 1 << 4
	cfgPort2ClkDisabled = 1 << 5
	cfgPort1Translation = 1 << 6

	// timeout is the number of status register polls before an operation
	// is abandoned.
	timeout = 100000
)

var (
	// ErrTimeout is returned when the controller does not become ready in
	// time.
	ErrTimeout = &kernel.Error{Module: "ps2", Message: "timeout while waiting for the controller"}

	// ErrControllerTestFailed is returned when the controller self test
	// does not report success.
	ErrControllerTestFailed = &kernel.Error{Module: "ps2", Message: "controller self test failed"}

	// ErrNoWorkingPorts is returned when neither port passes its interface
	// test.
	ErrNoWorkingPorts = &kernel.Error{Module: "ps2", Message: "no working PS/2 ports"}

	// ErrDeviceResetFailed is returned when a device does not acknowledge
	// a reset.
	ErrDeviceResetFailed = &kernel.Error{Module: "ps2", Message: "device reset failed"}

	portWriteByteFn = cpu.PortWriteByte
	portReadByteFn  = cpu.PortReadByte
)

func inputFull() bool  { return portReadByteFn(statusPort)&statusInputFull != 0 }
func outputFull() bool { return portReadByteFn(statusPort)&statusOutputFull != 0 }

// sendCommand writes a command byte to the controller.
func sendCommand(cmd uint8) *kernel.Error {
	for tries := 0; inputFull(); tries++ {
		if tries == timeout {
			return ErrTimeout
		}
	}

	portWriteByteFn(commandPort, cmd)
	return nil
}

// flush discards any pending bytes in the controller output buffer.
func flush() {
	for tries := 0; tries < timeout && outputFull(); tries++ {
		portReadByteFn(dataPort)
	}
}

// SendByte writes data to the device attached to port. Bytes for Port2 are
// redirected by the controller.
func SendByte(port, data uint8) *kernel.Error {
	if port == Port2 {
		if err := sendCommand(cmdWriteToPort2); err != nil {
			return err
		}
	}

	for tries := 0; inputFull(); tries++ {
		if tries == timeout {
			return ErrTimeout
		}
	}

	portWriteByteFn(dataPort, data)
	return nil
}

// ReceiveByte waits for a byte to arrive in the controller output buffer
// and returns it.
func ReceiveByte() (uint8, *kernel.Error) {
	for tries := 0; !outputFull(); tries++ {
		if tries == timeout {
			return 0, ErrTimeout
		}
	}

	return portReadByteFn(dataPort), nil
}

// ReadData returns the contents of the data register without waiting. It is
// meant for interrupt handlers that are only invoked once a byte arrived.
func ReadData() uint8 {
	return portReadByteFn(dataPort)
}

// ResetDevice resets the device attached to port and checks that it passed
// its self test. Devices may report the acknowledgement and the self test
// result in either order.
func ResetDevice(port uint8) *kernel.Error {
	if err := SendByte(port, cmdResetDevice); err != nil {
		return err
	}

	first, err := ReceiveByte()
	if err != nil {
		return err
	}
	second, err := ReceiveByte()
	if err != nil {
		return err
	}

	if (first == RespAck && second == respSelfTestPassed) || (first == respSelfTestPassed && second == RespAck) {
		return nil
	}

	return ErrDeviceResetFailed
}

// commandWithReply sends a controller command and returns its reply byte.
func commandWithReply(cmd uint8) (uint8, *kernel.Error) {
	if err := sendCommand(cmd); err != nil {
		return 0, err
	}
	return ReceiveByte()
}

// writeConfig stores the controller configuration byte.
func writeConfig(config uint8) *kernel.Error {
	if err := sendCommand(cmdWriteConfig); err != nil {
		return err
	}
	return SendByte(PortController, config)
}

// Controller is the driver for the 8042 PS/2 controller.
type Controller struct {
	dualChannel bool
	port1Works  bool
	port2Works  bool
}

// DriverName returns the name of this driver.
func (*Controller) DriverName() string { return "ps2" }

// DriverVersion returns the version of this driver.
func (*Controller) DriverVersion() (uint16, uint16, uint16) { return 1, 0, 0 }

// DriverInit initializes the controller.
func (c *Controller) DriverInit(w io.Writer) *kernel.Error {
	if err := c.init(w); err != nil {
		return err
	}

	kfmt.Fprintf(w, "port 1: %t, port 2: %t\n", c.port1Works, c.port2Works)
	return nil
}

// PortWorks reports whether port passed its interface test.
func (c *Controller) PortWorks(port uint8) bool {
	switch port {
	case Port1:
		return c.port1Works
	case Port2:
		return c.port2Works
	default:
		return false
	}
}

// init disables both ports, runs the controller and interface tests,
// enables the ports that work and resets the devices attached to them.
func (c *Controller) init(w io.Writer) *kernel.Error {
	flush()
	if err := sendCommand(cmdDisablePort1); err != nil {
		return err
	}
	if err := sendCommand(cmdDisablePort2); err != nil {
		return err
	}
	flush()

	config, err := commandWithReply(cmdReadConfig)
	if err != nil {
		return err
	}

	// Keep IRQs off and disable scancode translation while the devices
	// are being set up.
	config &^= cfgPort1IRQ | cfgPort2IRQ | cfgPort1ClkDisabled | cfgPort1Translation
	config |= cfgPort2ClkDisabled
	if err = writeConfig(config); err != nil {
		return err
	}

	reply, err := commandWithReply(cmdTestController)
	if err != nil {
		return err
	}
	if reply != respControllerOK {
		return ErrControllerTestFailed
	}

	// The self test may reset the controller.
	if err = writeConfig(config); err != nil {
		return err
	}

	// Enabling port 2 clears its clock-disabled bit on dual channel
	// controllers.
	if err = sendCommand(cmdEnablePort2); err != nil {
		return err
	}
	reply, err = commandWithReply(cmdReadConfig)
	if err != nil {
		return err
	}
	if c.dualChannel = reply&cfgPort2ClkDisabled == 0; c.dualChannel {
		if err = sendCommand(cmdDisablePort2); err != nil {
			return err
		}
		if err = writeConfig(config); err != nil {
			return err
		}
	}

	if reply, err = commandWithReply(cmdTestPort1); err != nil {
		return err
	}
	c.port1Works = reply == respPortTestPassed

	if c.dualChannel {
		if reply, err = commandWithReply(cmdTestPort2); err != nil {
			return err
		}
		c.port2Works = reply == respPortTestPassed
	}

	if !c.port1Works && !c.port2Works {
		return ErrNoWorkingPorts
	}

	if c.port1Works {
		if err = sendCommand(cmdEnablePort1); err != nil {
			return err
		}
		config |= cfgPort1IRQ
		config &^= cfgPort1ClkDisabled
	}
	if c.port2Works {
		if err = sendCommand(cmdEnablePort2); err != nil {
			return err
		}
		config |= cfgPort2IRQ
		config &^= cfgPort2ClkDisabled
	}
	if err = writeConfig(config); err != nil {
		return err
	}

	for _, port := range [...]uint8{Port1, Port2} {
		if !c.PortWorks(port) {
			continue
		}
		if err = ResetDevice(port); err != nil {
			kfmt.Fprintf(w, "reset of device at port %d failed: %s\n", port, err.Message)
		}
	}

	return nil
}

var controller Controller

// ActiveController returns the controller instance managed by the hal.
func ActiveController() *Controller {
	return &controller
}

func probeForController() device.Driver {
	return &controller
}

func init() {
	device.RegisterDriver(&device.DriverInfo{
		Order: device.DetectOrderController,
		Probe: probeForController,
	})
}
