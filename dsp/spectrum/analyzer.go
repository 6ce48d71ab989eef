package spectrum

import (
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-ringbuffer/dsp/buffer"
	"github.com/cwbudde/algo-ringbuffer/dsp/core"
	"github.com/cwbudde/algo-ringbuffer/dsp/window"
)

// Analyzer computes one-sided power spectra over overlapping frames of a
// sample stream.
//
// Power is normalized so that a bin-centred sinusoid of amplitude A reads
// A*A/2 (its mean-square value) in its bin.
type Analyzer struct {
	cfg  core.ProcessorConfig
	ring *buffer.Ring[float64]
	plan *algofft.Plan[complex128]

	coeffs []float64
	scale  float64

	// Scratch, sized once.
	windowed []float64
	frame    []complex128
	bins     []complex128
	re, im   []float64
	power    []float64

	pending   int
	frames    int
	frameAddr uintptr
}

// NewAnalyzer returns an analyzer tapering frames with win. FrameSize must
// be a power of two greater than one and HopSize must not exceed it; an
// unset HopSize gives 50% overlap.
func NewAnalyzer(win window.Type, opts ...core.ProcessorOption) (*Analyzer, error) {
	cfg := core.ApplyProcessorOptions(opts...)
	if cfg.HopSize == 0 {
		cfg.HopSize = max(cfg.FrameSize/2, 1)
	}
	if cfg.FrameSize < 2 || !core.IsPowerOfTwo(cfg.FrameSize) {
		return nil, fmt.Errorf("spectrum: frame size must be a power of two > 1: %d", cfg.FrameSize)
	}
	if cfg.HopSize > cfg.FrameSize {
		return nil, fmt.Errorf("spectrum: hop size %d exceeds frame size %d", cfg.HopSize, cfg.FrameSize)
	}

	ring, err := buffer.New[float64](cfg.FrameSize)
	if err != nil {
		return nil, fmt.Errorf("spectrum: %w", err)
	}

	plan, err := algofft.NewPlan64(cfg.FrameSize)
	if err != nil {
		return nil, fmt.Errorf("spectrum: failed to create FFT plan: %w", err)
	}

	coeffs := window.Generate(win, cfg.FrameSize, window.WithPeriodic())
	gain, err := window.CoherentGain(coeffs)
	if err != nil {
		return nil, fmt.Errorf("spectrum: %w", err)
	}
	sum := gain * float64(cfg.FrameSize)

	half := cfg.FrameSize/2 + 1
	return &Analyzer{
		cfg:      cfg,
		ring:     ring,
		plan:     plan,
		coeffs:   coeffs,
		scale:    1 / (sum * sum),
		windowed: make([]float64, cfg.FrameSize),
		frame:    make([]complex128, cfg.FrameSize),
		bins:     make([]complex128, cfg.FrameSize),
		re:       make([]float64, half),
		im:       make([]float64, half),
		power:    make([]float64, half),
	}, nil
}

// Config returns the effective configuration.
func (a *Analyzer) Config() core.ProcessorConfig {
	return a.cfg
}

// Write streams samples into the analyzer and returns how many frames were
// analysed. Only the spectrum of the last of them is kept.
func (a *Analyzer) Write(samples []float64) (int, error) {
	produced := 0
	for len(samples) > 0 {
		n := min(a.untilNextFrame(), len(samples))
		if err := a.ring.Extend(samples[:n]); err != nil {
			return produced, fmt.Errorf("spectrum: %w", err)
		}
		a.pending += n
		samples = samples[n:]

		if a.ring.IsFull() && (a.frames == 0 || a.pending >= a.cfg.HopSize) {
			if err := a.analyze(); err != nil {
				return produced, err
			}
			produced++
		}
	}
	return produced, nil
}

func (a *Analyzer) untilNextFrame() int {
	if !a.ring.IsFull() {
		return a.ring.Cap() - a.ring.Len()
	}
	return a.cfg.HopSize - a.pending
}

func (a *Analyzer) analyze() error {
	data := a.ring.Contiguous()
	a.frameAddr = a.ring.CurrentAddress()

	if err := window.ApplyCoefficients(a.windowed, data, a.coeffs); err != nil {
		return fmt.Errorf("spectrum: %w", err)
	}
	for i, v := range a.windowed {
		a.frame[i] = complex(v, 0)
	}

	if err := a.plan.Forward(a.bins, a.frame); err != nil {
		return fmt.Errorf("spectrum: forward FFT: %w", err)
	}

	for k := range a.power {
		a.re[k] = real(a.bins[k])
		a.im[k] = imag(a.bins[k])
	}
	vecmath.Power(a.power, a.re, a.im)
	vecmath.ScaleBlock(a.power, a.power, a.scale)

	// Fold negative frequencies; DC and Nyquist have no mirror.
	last := len(a.power) - 1
	if last > 1 {
		vecmath.ScaleBlock(a.power[1:last], a.power[1:last], 2)
	}

	a.pending = 0
	a.frames++
	return nil
}

// Power returns the one-sided power spectrum of the last frame, FrameSize/2+1
// bins. The slice is reused by the next frame.
func (a *Analyzer) Power() []float64 {
	return a.power
}

// PowerDB returns Power converted to dB in a new slice.
func (a *Analyzer) PowerDB() []float64 {
	out := make([]float64, len(a.power))
	for i, p := range a.power {
		out[i] = core.LinearPowerToDB(p)
	}
	return out
}

// BinFrequency returns the centre frequency of bin k in Hz.
func (a *Analyzer) BinFrequency(k int) float64 {
	return float64(k) * a.cfg.SampleRate / float64(a.cfg.FrameSize)
}

// Peak returns the strongest bin of the last frame with its frequency and
// power in dB. Before the first frame it returns bin 0 at -Inf dB.
func (a *Analyzer) Peak() (bin int, freqHz, db float64) {
	for k, p := range a.power {
		if p > a.power[bin] {
			bin = k
		}
	}
	return bin, a.BinFrequency(bin), core.LinearPowerToDB(a.power[bin])
}

// Frames returns the number of frames analysed since construction or Reset.
func (a *Analyzer) Frames() int {
	return a.frames
}

// FrameAddress returns the address the last frame was read from. Every
// frame is read from the ring's unwrap buffer, so this never changes.
func (a *Analyzer) FrameAddress() uintptr {
	return a.frameAddr
}

// Reset discards buffered samples and the last spectrum.
func (a *Analyzer) Reset() {
	a.ring.Clear()
	for i := range a.power {
		a.power[i] = 0
	}
	a.pending = 0
	a.frames = 0
	a.frameAddr = 0
}
