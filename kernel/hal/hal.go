// Package hal discovers the available hardware and initializes the matching
// device drivers in detection order.
package hal

import (
	"bytes"
	"sort"

	"zuckeros/device"
	"zuckeros/device/input/keyboard"
	"zuckeros/device/serial"
	"zuckeros/kernel/kfmt"
)

// managedDevices contains the devices discovered by the HAL.
type managedDevices struct {
	activeSerial   *serial.Port
	activeKeyboard *keyboard.Driver

	// activeDrivers tracks all initialized device drivers.
	activeDrivers []device.Driver
}

var (
	devices managedDevices
	strBuf  bytes.Buffer

	// setOutputSinkFn is mocked by tests.
	setOutputSinkFn = kfmt.SetOutputSink
)

// ActiveSerial returns the serial port used as the kernel console or nil if
// no serial port was initialized.
func ActiveSerial() *serial.Port {
	return devices.activeSerial
}

// ActiveKeyboard returns the first initialized keyboard or nil if no keyboard
// was detected.
func ActiveKeyboard() *keyboard.Driver {
	return devices.activeKeyboard
}

// ActiveDrivers returns the list of successfully initialized drivers in the
// order they were initialized.
func ActiveDrivers() []device.Driver {
	return devices.activeDrivers
}

// DetectHardware probes for hardware devices and initializes the appropriate
// drivers.
func DetectHardware() {
	drivers := device.DriverList()
	sort.Stable(drivers)

	probe(drivers)
}

// probe executes the probe function for each driver and invokes
// onDriverInit for each successfully initialized driver.
func probe(driverInfoList device.DriverInfoList) {
	var w = kfmt.PrefixWriter{Sink: kfmt.Writer()}

	for _, info := range driverInfoList {
		drv := info.Probe()
		if drv == nil {
			continue
		}

		strBuf.Reset()
		major, minor, patch := drv.DriverVersion()
		kfmt.Fprintf(&strBuf, "[hal] %s(%d.%d.%d): ", drv.DriverName(), major, minor, patch)
		w.Prefix = strBuf.Bytes()

		if err := drv.DriverInit(&w); err != nil {
			kfmt.Fprintf(&w, "init failed: %s\n", err.Message)
			continue
		}

		kfmt.Fprintf(&w, "initialized\n")
		onDriverInit(info, drv)
		devices.activeDrivers = append(devices.activeDrivers, drv)
	}
}

// onDriverInit is invoked by probe() whenever a piece of hardware is detected
// and successfully initialized. The first serial port becomes the output sink
// for kfmt and the first keyboard becomes the active keyboard.
func onDriverInit(_ *device.DriverInfo, drv device.Driver) {
	switch drvImpl := drv.(type) {
	case *serial.Port:
		if devices.activeSerial != nil {
			return
		}

		devices.activeSerial = drvImpl
		setOutputSinkFn(drvImpl)
	case *keyboard.Driver:
		if devices.activeKeyboard != nil {
			return
		}

		devices.activeKeyboard = drvImpl
	}
}
