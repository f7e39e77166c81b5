package keyboard

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zuckeros/device/ps2"
	"zuckeros/kernel/hal/limine"
)

func TestDriverInit(t *testing.T) {
	m := installMockKeyboard(t, ps2.RespAck, ps2.RespAck, ps2.RespAck, ps2.RespAck)

	drv := NewDriver(ps2.Port1, Set1())
	assert.Equal(t, "ps2kbd", drv.DriverName())
	major, minor, patch := drv.DriverVersion()
	assert.Equal(t, [3]uint16{1, 0, 0}, [3]uint16{major, minor, patch})

	var buf bytes.Buffer
	require.Nil(t, drv.DriverInit(&buf))
	assert.Equal(t, "scancode set 1 on port 1\n", buf.String())
	assert.Equal(t, StateNormal, drv.Decoder().State())

	// the installed IRQ handler feeds the driver queue
	readDataFn = func() uint8 { return 0x1e }
	m.irqHandler()

	ev, ok := drv.Events().Pop()
	require.True(t, ok)
	assert.Equal(t, KeyEvent{Code: KeyA, Transition: Pressed}, ev)

	assert.Equal(t, ErrAlreadyInitialized, drv.DriverInit(&buf))
}

func TestProbe(t *testing.T) {
	var (
		working = map[uint8]bool{}
		cmdline = map[string]string{}
	)
	portWorksFn = func(port uint8) bool { return working[port] }
	cmdlineValueFn = func(key string) (string, bool) {
		v, ok := cmdline[key]
		return v, ok
	}
	defer func() {
		portWorksFn = func(port uint8) bool { return ps2.ActiveController().PortWorks(port) }
		cmdlineValueFn = limine.CmdlineValue
	}()

	assert.Nil(t, probeForKeyboard(), "no working ports")

	working[ps2.Port1] = true
	drv := probeForKeyboard()
	require.NotNil(t, drv)
	assert.Equal(t, ps2.Port1, drv.(*Driver).port)

	cmdline["kbd.port"] = "2"
	assert.Nil(t, probeForKeyboard(), "port 2 does not work")

	working[ps2.Port2] = true
	drv = probeForKeyboard()
	require.NotNil(t, drv)
	assert.Equal(t, ps2.Port2, drv.(*Driver).port)
}
