package limine

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// qemuMemoryMap is the memory map reported by Limine when booting under qemu
// with 128M RAM.
var qemuMemoryMap = []MemoryMapEntry{
	{Base: 0x0, Length: 0x52000, Type: MemUsable},
	{Base: 0x52000, Length: 0x1000, Type: MemBootloaderReclaimable},
	{Base: 0x53000, Length: 0x4c000, Type: MemUsable},
	{Base: 0x9fc00, Length: 0x400, Type: MemReserved},
	{Base: 0xf0000, Length: 0x10000, Type: MemReserved},
	{Base: 0x100000, Length: 0x7b0e000, Type: MemUsable},
	{Base: 0x7c0e000, Length: 0x3e2000, Type: MemKernelAndModules},
	{Base: 0xfd000000, Length: 0x3e8000, Type: MemFramebuffer},
	{Base: 0xfffc0000, Length: 0x40000, Type: MemoryEntryType(42)},
}

func setupMemmap(t *testing.T, entries []MemoryMapEntry) {
	ptrs := make([]*MemoryMapEntry, len(entries))
	for i := range entries {
		ptrs[i] = &entries[i]
	}

	resp := &memmapResponse{
		entryCount: uint64(len(ptrs)),
		entries:    uintptr(unsafe.Pointer(&ptrs[0])),
	}
	SetMemmapResponse(uintptr(unsafe.Pointer(resp)))

	t.Cleanup(func() {
		SetMemmapResponse(0)
		// keep the backing arrays reachable until the test completes
		_ = ptrs[0]
		_ = resp.revision
	})
}

func TestMemoryMap(t *testing.T) {
	entries := append([]MemoryMapEntry(nil), qemuMemoryMap...)
	setupMemmap(t, entries)

	got := MemoryMap()
	require.Len(t, got, len(qemuMemoryMap))

	for i, entry := range got {
		assert.Equal(t, qemuMemoryMap[i].Base, entry.Base, "entry %d base", i)
		assert.Equal(t, qemuMemoryMap[i].Length, entry.Length, "entry %d length", i)
	}

	assert.Equal(t, MemReserved, got[len(got)-1].Type, "unknown entry types should be reported as reserved")
}

func TestMemoryMapWithoutResponse(t *testing.T) {
	SetMemmapResponse(0)
	assert.Nil(t, MemoryMap())

	visits := 0
	VisitMemRegions(func(_ *MemoryMapEntry) bool {
		visits++
		return true
	})
	assert.Zero(t, visits)
}

func TestVisitMemRegions(t *testing.T) {
	entries := append([]MemoryMapEntry(nil), qemuMemoryMap...)
	setupMemmap(t, entries)

	var usable uint64
	VisitMemRegions(func(entry *MemoryMapEntry) bool {
		if entry.Type == MemUsable {
			usable += entry.Length
		}
		return true
	})
	assert.Equal(t, uint64(0x52000+0x4c000+0x7b0e000), usable)

	visits := 0
	VisitMemRegions(func(_ *MemoryMapEntry) bool {
		visits++
		return visits < 2
	})
	assert.Equal(t, 2, visits, "returning false from the visitor should abort the scan")
}

func TestHHDMOffset(t *testing.T) {
	defer SetHHDMResponse(0)

	SetHHDMResponse(0)
	assert.Equal(t, uintptr(0), HHDMOffset())

	resp := &hhdmResponse{offset: 0xffff800000000000}
	SetHHDMResponse(uintptr(unsafe.Pointer(resp)))
	assert.Equal(t, uintptr(0xffff800000000000), HHDMOffset())
}

func TestCmdlineValue(t *testing.T) {
	defer SetCmdline(0)

	SetCmdline(0)
	_, found := CmdlineValue("loglevel")
	assert.False(t, found)

	cmdline := []byte("  loglevel=debug\tpmm.strict=on quiet kbd.port= console=serial\x00")
	SetCmdline(uintptr(unsafe.Pointer(&cmdline[0])))

	specs := []struct {
		key      string
		expValue string
		expFound bool
	}{
		{"loglevel", "debug", true},
		{"pmm.strict", "on", true},
		{"quiet", "quiet", true},
		{"kbd.port", "", true},
		{"console", "serial", true},
		{"log", "", false},
		{"loglevel=debug", "", false},
		{"", "", false},
	}

	for _, spec := range specs {
		value, found := CmdlineValue(spec.key)
		assert.Equal(t, spec.expFound, found, "key %q", spec.key)
		assert.Equal(t, spec.expValue, value, "key %q", spec.key)
	}
}

func TestCmdlineValueEqualsAtStart(t *testing.T) {
	defer SetCmdline(0)

	cmdline := []byte("=orphan loglevel=warn\x00")
	SetCmdline(uintptr(unsafe.Pointer(&cmdline[0])))

	_, found := CmdlineValue("=orphan")
	assert.False(t, found, "a leading '=' starts the value of an empty key")

	value, found := CmdlineValue("loglevel")
	assert.True(t, found)
	assert.Equal(t, "warn", value)
}

func TestMemoryEntryTypeString(t *testing.T) {
	specs := map[MemoryEntryType]string{
		MemUsable:                "usable",
		MemReserved:              "reserved",
		MemAcpiReclaimable:       "ACPI (reclaimable)",
		MemAcpiNVS:               "ACPI NVS",
		MemBad:                   "bad memory",
		MemBootloaderReclaimable: "bootloader (reclaimable)",
		MemKernelAndModules:      "kernel and modules",
		MemFramebuffer:           "framebuffer",
		memUnknown:               "unknown",
	}

	for typ, exp := range specs {
		assert.Equal(t, exp, typ.String())
	}
}
