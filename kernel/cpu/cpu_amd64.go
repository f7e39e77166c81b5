package cpu

var (
	// portWriteByteFn is used by IOWait and mocked by tests.
	portWriteByteFn = PortWriteByte
)

// unusedPort is the POST diagnostics port. Writing to it has no side effects
// and takes roughly one microsecond on legacy buses.
const unusedPort = 0x80

// EnableInterrupts enables interrupt handling.
func EnableInterrupts()

// DisableInterrupts disables interrupt handling.
func DisableInterrupts()

// Halt disables interrupts and stops instruction execution. Halt never
// returns.
func Halt()

// WaitForInterrupt enables interrupts and stops instruction execution until
// the next interrupt has been serviced.
func WaitForInterrupt()

// PortWriteByte writes a uint8 value to the requested port.
func PortWriteByte(port uint16, val uint8)

// PortReadByte reads a uint8 value from the requested port.
func PortReadByte(port uint16) uint8

// IOWait gives slow devices (e.g. the 8259 PIC) time to react to a command
// by issuing a write to an unused port.
func IOWait() {
	portWriteByteFn(unusedPort, 0)
}
