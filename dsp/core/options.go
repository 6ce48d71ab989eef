package core

// ProcessorConfig defines settings shared by frame-based processors that
// read fixed-size frames from a ring buffer.
type ProcessorConfig struct {
	SampleRate float64
	FrameSize  int
	HopSize    int
}

// ProcessorOption mutates a ProcessorConfig.
type ProcessorOption func(*ProcessorConfig)

// DefaultProcessorConfig returns 48 kHz and 1024-sample frames. A zero
// HopSize means half a frame.
func DefaultProcessorConfig() ProcessorConfig {
	return ProcessorConfig{
		SampleRate: 48000,
		FrameSize:  1024,
	}
}

// WithSampleRate sets the processing sample rate.
func WithSampleRate(sampleRate float64) ProcessorOption {
	return func(cfg *ProcessorConfig) {
		if sampleRate > 0 {
			cfg.SampleRate = sampleRate
		}
	}
}

// WithFrameSize sets the frame length, i.e. the ring buffer capacity.
func WithFrameSize(frameSize int) ProcessorOption {
	return func(cfg *ProcessorConfig) {
		if frameSize > 0 {
			cfg.FrameSize = frameSize
		}
	}
}

// WithHopSize sets the number of new samples between consecutive frames.
func WithHopSize(hopSize int) ProcessorOption {
	return func(cfg *ProcessorConfig) {
		if hopSize > 0 {
			cfg.HopSize = hopSize
		}
	}
}

// ApplyProcessorOptions applies zero or more options to the default config.
func ApplyProcessorOptions(opts ...ProcessorOption) ProcessorConfig {
	cfg := DefaultProcessorConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}
