package spectrum_test

import (
	"fmt"

	"github.com/cwbudde/algo-ringbuffer/dsp/core"
	"github.com/cwbudde/algo-ringbuffer/dsp/spectrum"
	"github.com/cwbudde/algo-ringbuffer/dsp/window"
	"github.com/cwbudde/algo-ringbuffer/internal/testutil"
)

func ExampleAnalyzer() {
	a, err := spectrum.NewAnalyzer(window.TypeHann,
		core.WithSampleRate(8000),
		core.WithFrameSize(256),
		core.WithHopSize(64),
	)
	if err != nil {
		panic(err)
	}

	frames, _ := a.Write(testutil.DeterministicSine(1000, 8000, 1, 512))
	bin, hz, db := a.Peak()
	fmt.Printf("frames=%d bin=%d freq=%.0fHz level=%.2fdB\n", frames, bin, hz, db)

	// Output:
	// frames=5 bin=32 freq=1000Hz level=-3.01dB
}
