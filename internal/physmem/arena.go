//go:build unix

// Package physmem simulates a slab of physical memory on the host so that
// code which expects to access physical pages through the higher-half
// direct map can be exercised by tests and host-side tools.
//
// An Arena is an anonymous private mapping. A caller picks the physical
// address the arena should pretend to start at and passes HHDMOffset to the
// code under test; every physical address in [physBase, physBase+Size) then
// translates to a valid host address inside the arena.
package physmem

import (
	"unsafe"

	"golang.org/x/sys/unix"

	"zuckeros/kernel"
	"zuckeros/kernel/mem"
)

var (
	errInvalidSize = &kernel.Error{Module: "physmem", Message: "arena size must be a non-zero multiple of the page size"}
	errMapFailed   = &kernel.Error{Module: "physmem", Message: "mmap failed"}
	errClosed      = &kernel.Error{Module: "physmem", Message: "arena already closed"}
)

// Arena is a page-aligned block of host memory standing in for RAM.
type Arena struct {
	data []byte
}

// New maps a zero-filled arena of the requested size.
func New(size mem.Size) (*Arena, *kernel.Error) {
	if size == 0 || size&(mem.PageSize-1) != 0 {
		return nil, errInvalidSize
	}

	data, err := unix.Mmap(-1, 0, int(size), unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return nil, errMapFailed
	}

	return &Arena{data: data}, nil
}

// Addr returns the host address of the first arena byte.
func (a *Arena) Addr() uintptr {
	return uintptr(unsafe.Pointer(&a.data[0]))
}

// Size returns the arena size.
func (a *Arena) Size() mem.Size {
	return mem.Size(len(a.data))
}

// Bytes exposes the arena contents.
func (a *Arena) Bytes() []byte {
	return a.data
}

// HHDMOffset returns the offset that must be added to a physical address so
// that physBase maps to the first arena byte.
func (a *Arena) HHDMOffset(physBase uint64) uintptr {
	return a.Addr() - uintptr(physBase)
}

// Reset zeroes the arena and hands its pages back to the host.
func (a *Arena) Reset() {
	// MADV_DONTNEED on a private anonymous mapping guarantees zero-filled
	// pages on the next access; clear explicitly where that is unsupported.
	if unix.Madvise(a.data, unix.MADV_DONTNEED) != nil {
		kernel.Memset(a.Addr(), 0, uintptr(len(a.data)))
	}
}

// Close unmaps the arena. The arena must not be used afterwards.
func (a *Arena) Close() *kernel.Error {
	if a.data == nil {
		return errClosed
	}

	if err := unix.Munmap(a.data); err != nil {
		return errMapFailed
	}
	a.data = nil
	return nil
}
