package pic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zuckeros/kernel/cpu"
)

type portWrite struct {
	port uint16
	val  uint8
}

// mockPorts replaces the port I/O helpers with an in-memory register file
// and records every write.
func mockPorts(t *testing.T) (map[uint16]uint8, *[]portWrite) {
	regs := make(map[uint16]uint8)
	var writes []portWrite

	portWriteByteFn = func(port uint16, val uint8) {
		regs[port] = val
		writes = append(writes, portWrite{port, val})
	}
	portReadByteFn = func(port uint16) uint8 { return regs[port] }
	ioWaitFn = func() {}

	t.Cleanup(func() {
		portWriteByteFn = cpu.PortWriteByte
		portReadByteFn = cpu.PortReadByte
		ioWaitFn = cpu.IOWait
	})

	return regs, &writes
}

func TestInit(t *testing.T) {
	_, writes := mockPorts(t)

	Init(0x20, 0x28)

	exp := []portWrite{
		{0x20, 0x11}, {0xa0, 0x11},
		{0x21, 0x20}, {0xa1, 0x28},
		{0x21, 0x04}, {0xa1, 0x02},
		{0x21, 0x01}, {0xa1, 0x01},
		{0x21, 0xff}, {0xa1, 0xff},
	}
	assert.Equal(t, exp, *writes)
}

func TestEnableDisableIRQ(t *testing.T) {
	regs, _ := mockPorts(t)
	regs[pic1Data] = 0xff
	regs[pic2Data] = 0xff

	require.Nil(t, EnableIRQ(1))
	assert.Equal(t, uint8(0xfd), regs[pic1Data])
	assert.Equal(t, uint8(0xff), regs[pic2Data])

	require.Nil(t, EnableIRQ(12))
	assert.Equal(t, uint8(0xef), regs[pic2Data])
	assert.Equal(t, uint8(0xf9), regs[pic1Data], "cascade line must be unmasked")

	require.Nil(t, DisableIRQ(1))
	assert.Equal(t, uint8(0xfb), regs[pic1Data])

	require.Nil(t, DisableIRQ(12))
	assert.Equal(t, uint8(0xff), regs[pic2Data])

	assert.Equal(t, ErrInvalidLine, EnableIRQ(16))
	assert.Equal(t, ErrInvalidLine, DisableIRQ(200))
}

func TestEnableSlaveIRQAfterInit(t *testing.T) {
	regs, _ := mockPorts(t)

	Init(0x20, 0x28)
	require.Nil(t, EnableIRQ(12))

	assert.Equal(t, uint8(0xfb), regs[pic1Data])
	assert.Equal(t, uint8(0xef), regs[pic2Data])
}

func TestSendEOI(t *testing.T) {
	_, writes := mockPorts(t)

	SendEOI(1)
	assert.Equal(t, []portWrite{{0x20, 0x20}}, *writes)

	*writes = nil
	SendEOI(14)
	assert.Equal(t, []portWrite{{0xa0, 0x20}, {0x20, 0x20}}, *writes)
}
