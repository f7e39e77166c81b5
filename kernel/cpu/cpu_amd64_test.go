package cpu

import "testing"

func TestIOWait(t *testing.T) {
	defer func() {
		portWriteByteFn = PortWriteByte
	}()

	var (
		gotPort  uint16
		gotVal   uint8
		numCalls int
	)
	portWriteByteFn = func(port uint16, val uint8) {
		gotPort, gotVal = port, val
		numCalls++
	}

	IOWait()

	if numCalls != 1 {
		t.Fatalf("expected IOWait to issue 1 port write; got %d", numCalls)
	}

	if gotPort != unusedPort || gotVal != 0 {
		t.Fatalf("expected IOWait to write 0 to port 0x%x; got %d to port 0x%x", unusedPort, gotVal, gotPort)
	}
}
