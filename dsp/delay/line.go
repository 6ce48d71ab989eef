// Package delay provides a fractional delay line backed by a ring buffer.
package delay

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-ringbuffer/dsp/buffer"
	"github.com/cwbudde/algo-ringbuffer/dsp/interp"
)

// Line is a circular delay line. It always holds exactly Len samples, the
// oldest of which is dropped by every Write.
type Line struct {
	ring  *buffer.Ring[float64]
	zeros []float64
	mode  interp.Mode

	taps []int
}

// Option configures a Line.
type Option func(*Line)

// WithMode selects the interpolation used by ReadFractional.
func WithMode(m interp.Mode) Option {
	return func(d *Line) {
		d.mode = m
	}
}

// New returns a delay line of fixed size, initially silent.
func New(size int, opts ...Option) (*Line, error) {
	if size <= 0 {
		return nil, fmt.Errorf("delay size must be > 0: %d", size)
	}
	ring, err := buffer.New[float64](size)
	if err != nil {
		return nil, fmt.Errorf("delay: %w", err)
	}

	d := &Line{ring: ring, zeros: make([]float64, size), mode: interp.Hermite}
	for _, opt := range opts {
		opt(d)
	}
	n, _ := d.mode.Taps()
	d.taps = make([]int, n)
	d.Reset()
	return d, nil
}

// Len returns the number of samples held.
func (d *Line) Len() int {
	return d.ring.Cap()
}

// Mode returns the interpolation mode.
func (d *Line) Mode() interp.Mode {
	return d.mode
}

// Write writes one sample.
func (d *Line) Write(sample float64) {
	// Overwrite is enabled, Append cannot fail.
	_ = d.ring.Append(sample)
}

// WriteBlock writes samples in order.
func (d *Line) WriteBlock(samples []float64) {
	_ = d.ring.Extend(samples)
}

func (d *Line) clamp(delay int) int {
	return min(max(delay, 0), d.Len()-1)
}

// Read returns the sample written delay writes ago; 0 is the most recent.
// delay is clamped to [0, Len()-1].
func (d *Line) Read(delay int) float64 {
	v, _ := d.ring.At(-1 - d.clamp(delay))
	return v
}

// ReadFractional reads between samples using the configured interpolation.
// delay is clamped to [0, Len()-1].
func (d *Line) ReadFractional(delay float64) float64 {
	delay = min(max(delay, 0), float64(d.Len()-1))
	p := int(math.Floor(delay))
	t := delay - float64(p)

	// Taps run from newer to older, so the interval is [p, p+1].
	_, before := d.mode.Taps()
	for i := range d.taps {
		d.taps[i] = -1 - d.clamp(p-before+i)
	}
	values, _ := d.ring.Gather(d.taps)
	return d.mode.Interpolate(t, values)
}

// Snapshot returns the held samples, oldest first. The slice is the ring's
// unwrap buffer and is only valid until the next Write.
func (d *Line) Snapshot() []float64 {
	return d.ring.Contiguous()
}

// Reset clears line state.
func (d *Line) Reset() {
	d.ring.Clear()
	_ = d.ring.Extend(d.zeros)
}
