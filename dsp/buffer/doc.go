// Package buffer provides Ring, a fixed-capacity circular buffer over numeric
// elements that can hand out its contents as one contiguous slice.
//
// A Ring keeps two arrays of equal capacity: the circular storage and an
// unwrap buffer. Once the ring is completely full, Contiguous returns the
// unwrap buffer itself, refreshed lazily after mutations, so repeated reads
// see the same slice at the same address. This lets FFT plans, filters and
// other block processors be set up once against a fixed memory region. While
// the ring is not full, Contiguous returns a freshly allocated copy instead.
//
// Elements may be scalars (any integer, float or complex kind) or fixed-size
// arrays of them, e.g. [2]float64 for interleaved stereo frames. The index
// arithmetic always works on whole elements.
//
// A Ring is not safe for concurrent use. Slices returned while the ring is
// full alias the unwrap buffer: writing to them writes to the unwrap buffer,
// and they are only meaningful until the next mutating call.
package buffer
