// Command ringinfo streams a test tone through a ring-buffered spectrum
// analyzer and prints, per block, the frames produced, the spectral peak and
// whether frames were read from the ring's fixed unwrap buffer.
//
// Usage:
//
//	ringinfo [flags] [window-name]
//
// Examples:
//
//	ringinfo
//	ringinfo -size 2048 -hop 256 blackman
//	ringinfo -rate 44100 -freq 440 -block 100 hann
//	ringinfo -list
package main

import (
	"flag"
	"fmt"
	"math"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/cwbudde/algo-ringbuffer/dsp/core"
	"github.com/cwbudde/algo-ringbuffer/dsp/spectrum"
	"github.com/cwbudde/algo-ringbuffer/dsp/window"
)

var registry = map[string]window.Type{
	"rectangular": window.TypeRectangular,
	"hann":        window.TypeHann,
	"hamming":     window.TypeHamming,
	"blackman":    window.TypeBlackman,
}

func main() {
	size := flag.Int("size", 1024, "frame size in samples (power of two)")
	hop := flag.Int("hop", 0, "hop size in samples (0 = half a frame)")
	rate := flag.Float64("rate", 48000, "sample rate in Hz")
	freq := flag.Float64("freq", 1000, "test tone frequency in Hz")
	amp := flag.Float64("amp", 1, "test tone amplitude")
	samples := flag.Int("samples", 8192, "total samples to stream")
	block := flag.Int("block", 512, "samples written per call")
	list := flag.Bool("list", false, "list available window names")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: ringinfo [flags] [window-name]\n\n")
		fmt.Fprintf(os.Stderr, "Streams a sine through a ring-buffered spectrum analyzer.\n")
		fmt.Fprintf(os.Stderr, "The window defaults to hann.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  ringinfo -size 2048 -hop 256 blackman\n")
		fmt.Fprintf(os.Stderr, "  ringinfo -rate 44100 -freq 440 hann\n")
		fmt.Fprintf(os.Stderr, "  ringinfo -list\n")
	}
	flag.Parse()

	if *list {
		printList()
		return
	}

	win, err := resolveWindow(flag.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	if *block <= 0 {
		fmt.Fprintf(os.Stderr, "error: block must be > 0: %d\n", *block)
		os.Exit(1)
	}

	a, err := spectrum.NewAnalyzer(win,
		core.WithSampleRate(*rate),
		core.WithFrameSize(*size),
		core.WithHopSize(*hop),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	if err := stream(a, tone(*freq, *rate, *amp, *samples), *block); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func printList() {
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	sort.Strings(names)
	for _, n := range names {
		fmt.Println(n)
	}
}

func resolveWindow(args []string) (window.Type, error) {
	switch len(args) {
	case 0:
		return window.TypeHann, nil
	case 1:
		name := strings.ToLower(strings.TrimSpace(args[0]))
		if t, ok := registry[name]; ok {
			return t, nil
		}
		return 0, fmt.Errorf("unknown window %q (use -list to see available)", name)
	default:
		return 0, fmt.Errorf("expected at most one window name, got %d", len(args))
	}
}

func tone(freqHz, sampleRate, amplitude float64, length int) []float64 {
	out := make([]float64, max(length, 0))
	w := 2 * math.Pi * freqHz / sampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(w*float64(i))
	}
	return out
}

func stream(a *spectrum.Analyzer, signal []float64, block int) error {
	cfg := a.Config()
	fmt.Printf("frame %d, hop %d, %.0f Hz, %.2f Hz/bin\n\n",
		cfg.FrameSize, cfg.HopSize, cfg.SampleRate, a.BinFrequency(1))

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintf(tw, "Offset\tFrames\tPeak Bin\tPeak [Hz]\tPeak [dB]\tFrame Address\tStable\n"); err != nil {
		return fmt.Errorf("failed to write output header: %w", err)
	}
	if _, err := fmt.Fprintf(tw, "------\t------\t--------\t---------\t---------\t-------------\t------\n"); err != nil {
		return fmt.Errorf("failed to write output header: %w", err)
	}

	var first uintptr
	for offset := 0; offset < len(signal); offset += block {
		n, err := a.Write(signal[offset:min(offset+block, len(signal))])
		if err != nil {
			return err
		}
		if n == 0 {
			continue
		}
		if first == 0 {
			first = a.FrameAddress()
		}

		bin, hz, db := a.Peak()
		if _, err := fmt.Fprintf(tw, "%d\t%d\t%d\t%.2f\t%.2f\t%#x\t%t\n",
			offset, a.Frames(), bin, hz, db, a.FrameAddress(), a.FrameAddress() == first); err != nil {
			return fmt.Errorf("failed to write output row: %w", err)
		}
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("failed to flush output: %w", err)
	}
	return nil
}
