// Package time computes level statistics over the most recent samples of a
// stream, held in a ring buffer.
package time

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-ringbuffer/dsp/buffer"
)

// Stats holds time-domain level statistics.
//
//nolint:revive
type Stats struct {
	Length         int
	DC             float64 // mean
	DC_dB          float64
	RMS            float64
	RMS_dB         float64
	Peak           float64 // max |x|
	Peak_dB        float64
	CrestFactor    float64 // peak / RMS (linear)
	CrestFactor_dB float64
	ZeroCrossings  int
}

// ampTodB converts an amplitude value to decibels: 20 * log10(|value|).
// Returns -Inf for zero values.
func ampTodB(value float64) float64 {
	a := math.Abs(value)
	if a == 0 {
		return math.Inf(-1)
	}

	return 20 * math.Log10(a)
}

// emptyStats returns a zero-valued Stats with -Inf for all dB fields.
func emptyStats() Stats {
	return Stats{
		DC_dB:          math.Inf(-1),
		RMS_dB:         math.Inf(-1),
		Peak_dB:        math.Inf(-1),
		CrestFactor_dB: math.Inf(-1),
	}
}

// Calculate computes all statistics in a single pass.
func Calculate(signal []float64) Stats {
	n := len(signal)
	if n == 0 {
		return emptyStats()
	}

	var (
		sum, sumSq, peak float64
		zeroCrossings    int
	)
	for i, x := range signal {
		sum += x
		sumSq += x * x
		peak = math.Max(peak, math.Abs(x))
		if i > 0 && signal[i-1]*x < 0 {
			zeroCrossings++
		}
	}

	nf := float64(n)
	mean := sum / nf
	rms := math.Sqrt(sumSq / nf)

	s := Stats{
		Length:         n,
		DC:             mean,
		DC_dB:          ampTodB(mean),
		RMS:            rms,
		RMS_dB:         ampTodB(rms),
		Peak:           peak,
		Peak_dB:        ampTodB(peak),
		ZeroCrossings:  zeroCrossings,
	}
	if rms > 0 {
		s.CrestFactor = peak / rms
		s.CrestFactor_dB = ampTodB(s.CrestFactor)
	}
	return s
}

// RMS returns the root-mean-square of the signal.
func RMS(signal []float64) float64 {
	if len(signal) == 0 {
		return 0
	}

	var sumSq float64
	for _, x := range signal {
		sumSq += x * x
	}

	return math.Sqrt(sumSq / float64(len(signal)))
}

// Peak returns the peak absolute amplitude of the signal.
func Peak(signal []float64) float64 {
	var peak float64
	for _, x := range signal {
		peak = math.Max(peak, math.Abs(x))
	}
	return peak
}

// Moving tracks Stats over the last Window samples written to it.
type Moving struct {
	ring *buffer.Ring[float64]
}

// NewMoving returns a meter over a window of the given length.
func NewMoving(window int) (*Moving, error) {
	if window <= 0 {
		return nil, fmt.Errorf("window must be > 0: %d", window)
	}
	ring, err := buffer.New[float64](window)
	if err != nil {
		return nil, err
	}
	return &Moving{ring: ring}, nil
}

// Window returns the window length.
func (m *Moving) Window() int {
	return m.ring.Cap()
}

// Update appends samples, dropping those that fall out of the window.
func (m *Moving) Update(samples []float64) {
	// Overwrite is enabled, Extend cannot fail.
	_ = m.ring.Extend(samples)
}

// Result returns statistics over the samples currently in the window. Until
// the window has filled, only the samples seen so far count.
func (m *Moving) Result() Stats {
	return Calculate(m.ring.Contiguous())
}

// Reset forgets all samples.
func (m *Moving) Reset() {
	m.ring.Clear()
}
