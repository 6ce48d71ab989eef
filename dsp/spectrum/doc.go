// Package spectrum provides a sliding-window power spectrum analyzer fed
// through a fixed-address ring buffer.
//
// Samples are streamed into a buffer.Ring. Once the ring is full, every hop
// of new samples produces a frame: the ring's contiguous view (always the
// same unwrap buffer) is windowed into a scratch slice and transformed with
// an FFT plan built once at construction. No per-frame allocation happens
// after the first frame.
package spectrum
