package spectrum

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-ringbuffer/dsp/core"
	"github.com/cwbudde/algo-ringbuffer/dsp/window"
	"github.com/cwbudde/algo-ringbuffer/internal/testutil"
)

func newAnalyzer(t *testing.T, win window.Type, opts ...core.ProcessorOption) *Analyzer {
	t.Helper()
	a, err := NewAnalyzer(win, opts...)
	if err != nil {
		t.Fatalf("NewAnalyzer error: %v", err)
	}
	return a
}

func TestNewAnalyzerValidation(t *testing.T) {
	tests := []struct {
		name string
		opts []core.ProcessorOption
	}{
		{"not power of two", []core.ProcessorOption{core.WithFrameSize(1000)}},
		{"single sample", []core.ProcessorOption{core.WithFrameSize(1)}},
		{"hop beyond frame", []core.ProcessorOption{core.WithFrameSize(64), core.WithHopSize(65)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewAnalyzer(window.TypeHann, tt.opts...); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestDefaultHopIsHalfFrame(t *testing.T) {
	a := newAnalyzer(t, window.TypeHann, core.WithFrameSize(64))
	if got := a.Config().HopSize; got != 32 {
		t.Fatalf("HopSize = %d, want 32", got)
	}
}

func TestFrameCounting(t *testing.T) {
	a := newAnalyzer(t, window.TypeHann, core.WithFrameSize(64), core.WithHopSize(16))
	signal := testutil.DeterministicNoise(7, 1, 200)

	n, err := a.Write(signal[:63])
	if err != nil || n != 0 {
		t.Fatalf("Write(63) = %d, %v, want 0 frames", n, err)
	}
	n, err = a.Write(signal[63:64])
	if err != nil || n != 1 {
		t.Fatalf("Write(1) = %d, %v, want 1 frame", n, err)
	}
	// 136 more samples: 8 full hops, 8 left pending.
	n, err = a.Write(signal[64:])
	if err != nil || n != 8 {
		t.Fatalf("Write(136) = %d, %v, want 8 frames", n, err)
	}
	if a.Frames() != 9 {
		t.Fatalf("Frames() = %d, want 9", a.Frames())
	}
	n, err = a.Write(signal[:8])
	if err != nil || n != 1 {
		t.Fatalf("Write(8) = %d, %v, want 1 frame", n, err)
	}
}

func TestFramesReadFromUnwrapBuffer(t *testing.T) {
	a := newAnalyzer(t, window.TypeHann, core.WithFrameSize(32), core.WithHopSize(8))
	want := a.ring.UnwrapAddress()
	signal := testutil.DeterministicNoise(1, 1, 32)

	if _, err := a.Write(signal); err != nil {
		t.Fatal(err)
	}
	for range 4 {
		if a.FrameAddress() != want {
			t.Fatalf("FrameAddress() = %#x, want unwrap buffer %#x", a.FrameAddress(), want)
		}
		if _, err := a.Write(signal[:8]); err != nil {
			t.Fatal(err)
		}
	}
}

func TestPeakOfBinCentredSine(t *testing.T) {
	const (
		sampleRate = 1024.0
		frameSize  = 64
		freq       = 128.0 // bin 8
	)
	for _, win := range []window.Type{window.TypeRectangular, window.TypeHann, window.TypeHamming, window.TypeBlackman} {
		t.Run(win.String(), func(t *testing.T) {
			a := newAnalyzer(t, win, core.WithSampleRate(sampleRate), core.WithFrameSize(frameSize))
			if _, err := a.Write(testutil.DeterministicSine(freq, sampleRate, 1, 3*frameSize)); err != nil {
				t.Fatal(err)
			}

			bin, hz, db := a.Peak()
			if bin != 8 || hz != freq {
				t.Fatalf("Peak() = bin %d at %v Hz, want bin 8 at %v Hz", bin, hz, freq)
			}
			// Mean square of a unit sine.
			if !core.NearlyEqual(a.Power()[8], 0.5, 1e-9) {
				t.Fatalf("Power()[8] = %v, want 0.5", a.Power()[8])
			}
			if math.Abs(db-core.LinearPowerToDB(0.5)) > 1e-6 {
				t.Fatalf("peak dB = %v, want %v", db, core.LinearPowerToDB(0.5))
			}
		})
	}
}

func TestDCBinNotFolded(t *testing.T) {
	a := newAnalyzer(t, window.TypeRectangular, core.WithFrameSize(16))
	dc := make([]float64, 16)
	for i := range dc {
		dc[i] = 2
	}
	if _, err := a.Write(dc); err != nil {
		t.Fatal(err)
	}
	power := a.Power()
	if len(power) != 9 {
		t.Fatalf("len(Power()) = %d, want 9", len(power))
	}
	if !core.NearlyEqual(power[0], 4, 1e-12) {
		t.Fatalf("DC power = %v, want 4", power[0])
	}
	for k := 1; k < len(power); k++ {
		if power[k] > 1e-20 {
			t.Fatalf("Power()[%d] = %v, want 0", k, power[k])
		}
	}
}

func TestPowerDB(t *testing.T) {
	a := newAnalyzer(t, window.TypeHann, core.WithFrameSize(16))
	db := a.PowerDB()
	for i, v := range db {
		if !math.IsInf(v, -1) {
			t.Fatalf("PowerDB()[%d] = %v before any frame, want -Inf", i, v)
		}
	}

	if _, err := a.Write(testutil.DeterministicNoise(3, 1, 16)); err != nil {
		t.Fatal(err)
	}
	testutil.RequireFinite(t, a.PowerDB())
}

func TestReset(t *testing.T) {
	a := newAnalyzer(t, window.TypeHann, core.WithFrameSize(16), core.WithHopSize(4))
	if _, err := a.Write(testutil.DeterministicNoise(5, 1, 40)); err != nil {
		t.Fatal(err)
	}
	a.Reset()
	if a.Frames() != 0 || a.FrameAddress() != 0 {
		t.Fatalf("Frames(), FrameAddress() = %d, %#x after Reset", a.Frames(), a.FrameAddress())
	}
	for i, p := range a.Power() {
		if p != 0 {
			t.Fatalf("Power()[%d] = %v after Reset", i, p)
		}
	}
	n, err := a.Write(testutil.DeterministicNoise(5, 1, 15))
	if err != nil || n != 0 {
		t.Fatalf("Write(15) after Reset = %d, %v, want 0 frames", n, err)
	}
}
