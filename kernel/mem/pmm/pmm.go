// Package pmm implements the physical memory manager. Every memory region
// reported by the bootloader gets a bitmap with one bit per page; the
// Region array and all bitmaps are stored inside the first usable region
// that is large enough to hold them.
//
// The manager is not interrupt-safe. Callers must either invoke it with
// interrupts disabled or from a single non-reentrant code path.
package pmm

import (
	"io"
	"math/bits"
	"unsafe"

	"zuckeros/kernel"
	"zuckeros/kernel/hal/limine"
	"zuckeros/kernel/kfmt"
	"zuckeros/kernel/mem"
)

var (
	// ErrOutOfRange is returned when an address does not fall inside the
	// page range tracked by a region.
	ErrOutOfRange = &kernel.Error{Module: "pmm", Message: "address outside of region"}

	// ErrPageState is returned in strict mode when a page is marked used
	// while already used or freed while already free.
	ErrPageState = &kernel.Error{Module: "pmm", Message: "page already in requested state"}

	// ErrAddressNotFound is returned when no region contains an address.
	ErrAddressNotFound = &kernel.Error{Module: "pmm", Message: "address does not belong to any region"}

	// ErrOutOfMemory is returned by Alloc when every page is in use.
	ErrOutOfMemory = &kernel.Error{Module: "pmm", Message: "out of memory"}

	// ErrNoSpace is returned by Init when no usable region can hold the
	// allocator metadata.
	ErrNoSpace = &kernel.Error{Module: "pmm", Message: "no usable region large enough for allocator metadata"}

	// ErrMarkFailed is returned by Init when the pages holding the
	// allocator metadata cannot be reserved.
	ErrMarkFailed = &kernel.Error{Module: "pmm", Message: "unable to reserve allocator metadata pages"}

	// ErrAlreadyInitialized is returned when Init is invoked twice.
	ErrAlreadyInitialized = &kernel.Error{Module: "pmm", Message: "allocator already initialized"}

	// ErrNotInitialized is returned by operations invoked before Init.
	ErrNotInitialized = &kernel.Error{Module: "pmm", Message: "allocator not initialized"}
)

// PageStatus describes the state of a physical page.
type PageStatus uint8

// The possible page states returned by CheckPage.
const (
	PageFree PageStatus = iota
	PageUsed
	PageNotFound
)

// String implements fmt.Stringer for PageStatus.
func (s PageStatus) String() string {
	switch s {
	case PageFree:
		return "free"
	case PageUsed:
		return "used"
	default:
		return "not found"
	}
}

// Manager is a bitmap-based physical page allocator. The zero value is an
// uninitialized manager; Init must be called exactly once before any other
// method.
type Manager struct {
	// regions are sorted by base address and never overlap.
	regions []Region

	hhdmOffset uintptr

	// lastRegion and lastByte remember where the previous allocation was
	// served from. They only speed up the next search.
	lastRegion int
	lastByte   int

	metadataBase  uint64
	metadataPages uint64

	ready  bool
	strict bool
}

// Init discovers the memory regions described by memmap and places the
// allocator metadata in the first usable region that can hold it. The
// metadata is accessed through the direct map at hhdmOffset.
func (m *Manager) Init(memmap []*limine.MemoryMapEntry, hhdmOffset uintptr) *kernel.Error {
	if m.ready {
		return ErrAlreadyInitialized
	}

	metadata, requiredPages, bitmapBytes, err := planMetadata(memmap)
	if err != nil {
		return err
	}

	metaVirt := uintptr(metadata.Base) + hhdmOffset
	kernel.Memset(metaVirt, 0, uintptr(requiredPages<<mem.PageShift))

	m.hhdmOffset = hhdmOffset
	m.regions = unsafe.Slice((*Region)(unsafe.Pointer(metaVirt)), len(memmap))

	bitmapStore := unsafe.Slice(
		(*byte)(unsafe.Pointer(metaVirt+uintptr(len(memmap))*sizeofRegion)),
		bitmapBytes,
	)
	for i, entry := range memmap {
		m.regions[i].init(bitmapStore, entry.Base, entry.Length, entry.Type)
		bitmapStore = bitmapStore[len(m.regions[i].bitmap):]
	}

	sortRegions(m.regions)

	m.metadataBase = metadata.Base
	m.metadataPages = requiredPages
	for page := uint64(0); page < requiredPages; page++ {
		addr := metadata.Base + page<<mem.PageShift
		index, err := m.FindRegion(addr)
		if err == nil {
			err = m.regions[index].markUsed(addr, true)
		}
		if err != nil {
			*m = Manager{}
			return ErrMarkFailed
		}
	}

	m.ready = true

	total, free := m.Stats()
	kfmt.Infof("pmm", "tracking %d regions, %d/%d pages free, metadata at 0x%x (%d pages)",
		len(m.regions), free, total, m.metadataBase, m.metadataPages,
	)
	return nil
}

// MetadataPlacement returns the usable entry that Init will use to hold the
// allocator metadata for memmap and the number of pages it will occupy.
func MetadataPlacement(memmap []*limine.MemoryMapEntry) (*limine.MemoryMapEntry, uint64, *kernel.Error) {
	entry, pages, _, err := planMetadata(memmap)
	return entry, pages, err
}

// planMetadata sizes the region array and bitmaps for memmap and selects the
// entry that will store them.
func planMetadata(memmap []*limine.MemoryMapEntry) (*limine.MemoryMapEntry, uint64, uint64, *kernel.Error) {
	var totalBytes, bitmapBytes uint64
	for _, entry := range memmap {
		totalBytes += entry.Length
		bitmapBytes += mem.BitmapBytes(mem.Size(entry.Length).Pages())
	}

	if minBytes := mem.BitmapBytes(mem.Size(totalBytes).Pages()); bitmapBytes < minBytes {
		bitmapBytes = minBytes
	}

	requiredPages := mem.Size(uint64(len(memmap))*uint64(sizeofRegion) + bitmapBytes).PagesRoundUp()
	if requiredPages == 0 {
		return nil, 0, 0, ErrNoSpace
	}

	metadata := findMetadataEntry(memmap, requiredPages)
	if metadata == nil {
		return nil, 0, 0, ErrNoSpace
	}

	return metadata, requiredPages, bitmapBytes, nil
}

// findMetadataEntry returns the first usable entry that can hold
// requiredPages pages.
func findMetadataEntry(memmap []*limine.MemoryMapEntry, requiredPages uint64) *limine.MemoryMapEntry {
	for _, entry := range memmap {
		if entry.Type == limine.MemUsable && mem.Size(entry.Length).Pages() >= requiredPages {
			return entry
		}
	}
	return nil
}

// sortRegions orders regions by base address. Bootloaders normally emit a
// sorted map so insertion sort finishes in a single pass.
func sortRegions(regions []Region) {
	for i := 1; i < len(regions); i++ {
		for j := i; j > 0 && regions[j].base < regions[j-1].base; j-- {
			regions[j], regions[j-1] = regions[j-1], regions[j]
		}
	}
}

// SetStrict enables or disables page state checks. In strict mode freeing
// a free page or marking a used page fails with ErrPageState.
func (m *Manager) SetStrict(strict bool) {
	m.strict = strict
}

// FindRegion returns the index of the region that contains physAddr.
func (m *Manager) FindRegion(physAddr uint64) (int, *kernel.Error) {
	lo, hi := 0, len(m.regions)
	for lo < hi {
		mid := int(uint(lo+hi) >> 1)
		r := &m.regions[mid]
		switch {
		case r.Contains(physAddr):
			return mid, nil
		case physAddr < r.base:
			hi = mid
		default:
			lo = mid + 1
		}
	}

	return -1, ErrAddressNotFound
}

// CheckPage reports whether the page containing physAddr is free or used.
// Addresses outside every region, or inside the untracked tail of a region,
// yield PageNotFound.
func (m *Manager) CheckPage(physAddr uint64) PageStatus {
	if !m.ready {
		return PageNotFound
	}

	index, err := m.FindRegion(physAddr)
	if err != nil {
		return PageNotFound
	}

	used, err := m.regions[index].isUsed(physAddr)
	switch {
	case err != nil:
		return PageNotFound
	case used:
		return PageUsed
	default:
		return PageFree
	}
}

// Alloc reserves a free page and returns its physical address. The search
// resumes from the location of the previous allocation and wraps around
// both the region list and each region's bitmap. ErrOutOfMemory is
// returned when no free page exists; the condition clears once pages are
// freed.
func (m *Manager) Alloc() (uint64, *kernel.Error) {
	if !m.ready {
		return 0, ErrNotInitialized
	}

	regionCount := len(m.regions)
	for i := 0; i < regionCount; i++ {
		regionIndex := (m.lastRegion + i) % regionCount
		r := &m.regions[regionIndex]
		if r.freePages == 0 {
			continue
		}

		startByte := 0
		if regionIndex == m.lastRegion {
			startByte = m.lastByte
		}

		bitmapLen := len(r.bitmap)
		for j := 0; j < bitmapLen; j++ {
			byteIndex := (startByte + j) % bitmapLen
			block := r.bitmap[byteIndex]
			if block == 0xff {
				continue
			}

			page := uint64(byteIndex)<<3 + uint64(bits.TrailingZeros8(^block))
			addr := r.base + page<<mem.PageShift
			if err := r.markUsed(addr, m.strict); err != nil {
				return 0, err
			}

			m.lastRegion, m.lastByte = regionIndex, byteIndex
			return addr, nil
		}
	}

	return 0, ErrOutOfMemory
}

// Free releases the page containing physAddr.
func (m *Manager) Free(physAddr uint64) *kernel.Error {
	if !m.ready {
		return ErrNotInitialized
	}

	index, err := m.FindRegion(physAddr)
	if err != nil {
		return err
	}

	return m.regions[index].markFree(physAddr, m.strict)
}

// Stats returns the number of tracked pages and how many of them are free.
func (m *Manager) Stats() (totalPages, freePages uint64) {
	for i := range m.regions {
		totalPages += m.regions[i].pageCount
		freePages += m.regions[i].freePages
	}
	return totalPages, freePages
}

// Regions returns the regions tracked by the manager sorted by base
// address. The returned slice must be treated as read-only.
func (m *Manager) Regions() []Region {
	return m.regions
}

// PhysToVirt returns the direct map address for physAddr.
func (m *Manager) PhysToVirt(physAddr uint64) uintptr {
	return uintptr(physAddr) + m.hhdmOffset
}

// PrintMemoryMap writes a summary of the tracked regions to w.
func (m *Manager) PrintMemoryMap(w io.Writer) {
	kfmt.Fprintf(w, "system memory map:\n")
	for i := range m.regions {
		r := &m.regions[i]
		kfmt.Fprintf(w, "  [0x%16x - 0x%16x] %10d/%10d pages free, type: %s",
			r.base, r.base+r.length, r.freePages, r.pageCount, r.kind.String(),
		)
		if r.kind == limine.MemUsable {
			kfmt.Fprintf(w, " [usable]")
		}
		kfmt.Fprintf(w, "\n")
	}

	total, free := m.Stats()
	kfmt.Fprintf(w, "free memory: %dKb of %dKb\n",
		uint64(free<<mem.PageShift)/uint64(mem.Kb), uint64(total<<mem.PageShift)/uint64(mem.Kb),
	)
}
