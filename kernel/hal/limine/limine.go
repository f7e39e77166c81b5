// Package limine provides access to the boot information handed over by a
// Limine-compliant bootloader: the physical memory map, the higher-half
// direct map (HHDM) offset and the kernel command line.
//
// The rt0 code passes the addresses of the bootloader responses to the
// kernel entrypoint which in turn registers them with this package. None of
// the functions exported by this package allocate memory so they can be used
// before the Go allocator is available.
package limine

import "unsafe"

// MemoryEntryType defines the type of a MemoryMapEntry.
type MemoryEntryType uint64

const (
	// MemUsable indicates that the memory region is available for use.
	MemUsable MemoryEntryType = iota

	// MemReserved indicates that the memory region is not available for use.
	MemReserved

	// MemAcpiReclaimable indicates a memory region that holds ACPI tables
	// which can be reused by the OS once they have been parsed.
	MemAcpiReclaimable

	// MemAcpiNVS indicates memory that must be preserved when hibernating.
	MemAcpiNVS

	// MemBad marks defective memory.
	MemBad

	// MemBootloaderReclaimable holds bootloader structures (including the
	// responses parsed by this package) that can be reclaimed once the
	// kernel no longer needs them.
	MemBootloaderReclaimable

	// MemKernelAndModules is occupied by the kernel image and any loaded
	// modules.
	MemKernelAndModules

	// MemFramebuffer is mapped to the framebuffer.
	MemFramebuffer

	// Any value >= memUnknown will be mapped to MemReserved.
	memUnknown
)

// String implements fmt.Stringer for MemoryEntryType.
func (t MemoryEntryType) String() string {
	switch t {
	case MemUsable:
		return "usable"
	case MemReserved:
		return "reserved"
	case MemAcpiReclaimable:
		return "ACPI (reclaimable)"
	case MemAcpiNVS:
		return "ACPI NVS"
	case MemBad:
		return "bad memory"
	case MemBootloaderReclaimable:
		return "bootloader (reclaimable)"
	case MemKernelAndModules:
		return "kernel and modules"
	case MemFramebuffer:
		return "framebuffer"
	default:
		return "unknown"
	}
}

// MemoryMapEntry describes a memory region entry, namely its physical address,
// its length and its type. Its layout matches struct limine_memmap_entry.
type MemoryMapEntry struct {
	// The physical address for this memory region.
	Base uint64

	// The length of the memory region in bytes.
	Length uint64

	// The type of this entry.
	Type MemoryEntryType
}

// memmapResponse mirrors struct limine_memmap_response.
type memmapResponse struct {
	revision   uint64
	entryCount uint64

	// entries points to an array of entryCount *MemoryMapEntry values.
	entries uintptr
}

// hhdmResponse mirrors struct limine_hhdm_response.
type hhdmResponse struct {
	revision uint64
	offset   uint64
}

// MemRegionVisitor defines a visitor function that gets invoked by
// VisitMemRegions for each memory region provided by the boot loader. The
// visitor must return true to continue or false to abort the scan.
type MemRegionVisitor func(*MemoryMapEntry) bool

var (
	memmapData  uintptr
	hhdmData    uintptr
	cmdlineData uintptr
)

// SetMemmapResponse registers the address of the bootloader's memory map
// response. It must be invoked before calling MemoryMap or VisitMemRegions.
func SetMemmapResponse(ptr uintptr) {
	memmapData = ptr
}

// SetHHDMResponse registers the address of the bootloader's HHDM response.
func SetHHDMResponse(ptr uintptr) {
	hhdmData = ptr
}

// SetCmdline registers the address of the NULL-terminated kernel command
// line.
func SetCmdline(ptr uintptr) {
	cmdlineData = ptr
}

// MemoryMap returns the memory map entries reported by the bootloader,
// ordered by the bootloader (Limine guarantees ascending base addresses).
// The returned slice aliases bootloader memory. Entries with an unknown type
// are rewritten in place as MemReserved.
func MemoryMap() []*MemoryMapEntry {
	if memmapData == 0 {
		return nil
	}

	resp := (*memmapResponse)(unsafe.Pointer(memmapData))
	if resp.entryCount == 0 || resp.entries == 0 {
		return nil
	}

	entries := unsafe.Slice((**MemoryMapEntry)(unsafe.Pointer(resp.entries)), resp.entryCount)
	for _, entry := range entries {
		if entry.Type >= memUnknown {
			entry.Type = MemReserved
		}
	}

	return entries
}

// VisitMemRegions will invoke the supplied visitor for each memory region that
// is defined by the memory map that we received from the bootloader.
func VisitMemRegions(visitor MemRegionVisitor) {
	for _, entry := range MemoryMap() {
		if !visitor(entry) {
			return
		}
	}
}

// HHDMOffset returns the offset that must be added to a physical address to
// obtain the virtual address that maps it in the higher-half direct map. If no
// HHDM response was registered, HHDMOffset returns 0 (identity mapping).
func HHDMOffset() uintptr {
	if hhdmData == 0 {
		return 0
	}

	return uintptr((*hhdmResponse)(unsafe.Pointer(hhdmData)).offset)
}

// CmdlineValue looks up key in the kernel command line. The command line
// consists of whitespace-separated "key=value" pairs; a bare "key" is treated
// as "key=key". The returned string aliases the command line memory.
func CmdlineValue(key string) (string, bool) {
	if cmdlineData == 0 || len(key) == 0 {
		return "", false
	}

	var (
		base                 = cmdlineData
		at                   = func(i uintptr) byte { return *(*byte)(unsafe.Pointer(base + i)) }
		start, eq, end, next uintptr
		hasEq                bool
	)

	for {
		// Skip whitespace
		for start = next; at(start) == ' ' || at(start) == '\t'; start++ {
		}

		if at(start) == 0 {
			return "", false
		}

		hasEq = false
		for end = start; at(end) != 0 && at(end) != ' ' && at(end) != '\t'; end++ {
			if at(end) == '=' && !hasEq {
				eq, hasEq = end, true
			}
		}
		next = end

		var keyEnd, valStart uintptr
		if !hasEq {
			keyEnd, valStart = end, start
		} else {
			keyEnd, valStart = eq, eq+1
		}

		if keyEnd-start != uintptr(len(key)) {
			continue
		}

		match := true
		for i := 0; i < len(key); i++ {
			if at(start+uintptr(i)) != key[i] {
				match = false
				break
			}
		}

		if match {
			return unsafe.String((*byte)(unsafe.Pointer(base+valStart)), int(end-valStart)), true
		}
	}
}
