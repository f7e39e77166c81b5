package mem

// Size represents a memory block size in bytes.
type Size uint64

// Common memory block sizes.
const (
	Byte Size = 1
	Kb        = 1024 * Byte
	Mb        = 1024 * Kb
	Gb        = 1024 * Mb
)

// Pages returns the number of complete pages that fit in s. A trailing
// partial page is not counted.
func (s Size) Pages() uint64 {
	return uint64(s >> PageShift)
}

// PagesRoundUp returns the number of pages required to hold s bytes.
func (s Size) PagesRoundUp() uint64 {
	return uint64((s + PageSize - 1) >> PageShift)
}

// BitmapBytes returns the number of bytes needed by a bitmap that tracks
// pageCount pages with one bit per page.
func BitmapBytes(pageCount uint64) uint64 {
	return (pageCount + 7) >> 3
}
