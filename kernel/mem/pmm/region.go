package pmm

import (
	"unsafe"

	"zuckeros/kernel"
	"zuckeros/kernel/hal/limine"
	"zuckeros/kernel/mem"
)

// Region tracks a contiguous physical memory range reported by the
// bootloader. Each page in the region is represented by one bit in the
// region bitmap: bit i is set when the page at base + i*PageSize is in use.
//
// A trailing partial page (when the region length is not a multiple of
// PageSize) is never tracked and never handed out.
type Region struct {
	base   uint64
	length uint64

	// bitmap lives in the metadata block reserved by Manager.Init.
	bitmap []byte

	// pageCount is the number of complete pages in the region.
	pageCount uint64

	// freePages always equals the number of clear bits in bitmap. The
	// allocator uses it to skip exhausted regions without scanning.
	freePages uint64

	kind limine.MemoryEntryType
}

// sizeofRegion is the number of bytes occupied by a Region inside the
// metadata block.
const sizeofRegion = unsafe.Sizeof(Region{})

// Base returns the physical address of the first byte in the region.
func (r *Region) Base() uint64 { return r.base }

// Length returns the region length in bytes.
func (r *Region) Length() uint64 { return r.length }

// Kind returns the memory type reported by the bootloader for this region.
func (r *Region) Kind() limine.MemoryEntryType { return r.kind }

// PageCount returns the number of complete pages in the region.
func (r *Region) PageCount() uint64 { return r.pageCount }

// FreePages returns the number of pages that can still be allocated.
func (r *Region) FreePages() uint64 { return r.freePages }

// Contains returns true if physAddr lies in [base, base+length).
func (r *Region) Contains(physAddr uint64) bool {
	return physAddr >= r.base && physAddr-r.base < r.length
}

// init sets up the region and its bitmap. The bitmap is carved out of
// storage which must hold at least mem.BitmapBytes(length/PageSize) bytes.
//
// Usable regions start with all pages free. Any other memory type is
// permanently reserved: its bitmap is filled with ones and freePages is 0.
func (r *Region) init(storage []byte, base, length uint64, kind limine.MemoryEntryType) {
	r.base = base
	r.length = length
	r.kind = kind
	r.pageCount = mem.Size(length).Pages()
	r.bitmap = storage[:mem.BitmapBytes(r.pageCount)]

	if len(r.bitmap) == 0 {
		r.freePages = 0
		return
	}

	bitmapAddr := uintptr(unsafe.Pointer(&r.bitmap[0]))
	if kind != limine.MemUsable {
		kernel.Memset(bitmapAddr, 0xff, uintptr(len(r.bitmap)))
		r.freePages = 0
		return
	}

	kernel.Memset(bitmapAddr, 0, uintptr(len(r.bitmap)))
	r.freePages = r.pageCount

	// Bits past the last page in the final bitmap byte do not map to
	// memory; keep them set so they are never handed out and freePages
	// keeps matching the clear bit count.
	if tail := r.pageCount & 7; tail != 0 {
		r.bitmap[len(r.bitmap)-1] = 0xff << tail
	}
}

// pageIndex returns the bitmap index for the page that contains physAddr.
func (r *Region) pageIndex(physAddr uint64) (uint64, *kernel.Error) {
	if !r.Contains(physAddr) {
		return 0, ErrOutOfRange
	}

	page := (physAddr - r.base) >> mem.PageShift
	if page >= r.pageCount {
		return 0, ErrOutOfRange
	}

	return page, nil
}

// markUsed flags the page containing physAddr as used. Marking an already
// used page leaves the region untouched and fails only when strict is set.
func (r *Region) markUsed(physAddr uint64, strict bool) *kernel.Error {
	page, err := r.pageIndex(physAddr)
	if err != nil {
		return err
	}

	mask := byte(1) << (page & 7)
	if r.bitmap[page>>3]&mask != 0 {
		if strict {
			return ErrPageState
		}
		return nil
	}

	r.bitmap[page>>3] |= mask
	r.freePages--
	return nil
}

// markFree flags the page containing physAddr as free. Freeing an already
// free page leaves the region untouched and fails only when strict is set.
func (r *Region) markFree(physAddr uint64, strict bool) *kernel.Error {
	page, err := r.pageIndex(physAddr)
	if err != nil {
		return err
	}

	mask := byte(1) << (page & 7)
	if r.bitmap[page>>3]&mask == 0 {
		if strict {
			return ErrPageState
		}
		return nil
	}

	r.bitmap[page>>3] &^= mask
	r.freePages++
	return nil
}

// isUsed reports whether the page containing physAddr is in use.
func (r *Region) isUsed(physAddr uint64) (bool, *kernel.Error) {
	page, err := r.pageIndex(physAddr)
	if err != nil {
		return false, err
	}

	return r.bitmap[page>>3]&(byte(1)<<(page&7)) != 0, nil
}
