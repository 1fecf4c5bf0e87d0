package core

// ProcessorConfig holds the settings shared by measurement callers: the
// sample rate used to label frequencies and the FFT size used for
// response measurements.
type ProcessorConfig struct {
	SampleRate float64
	FFTSize    int
}

// ProcessorOption mutates a ProcessorConfig.
type ProcessorOption func(*ProcessorConfig)

// DefaultProcessorConfig returns the defaults used by the CLI and the
// measurement helpers.
func DefaultProcessorConfig() ProcessorConfig {
	return ProcessorConfig{
		SampleRate: 48000,
		FFTSize:    512,
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

// WithFFTSize sets the FFT length for response measurements. Values that
// are not a power of two >= 8 are ignored.
func WithFFTSize(n int) ProcessorOption {
	return func(cfg *ProcessorConfig) {
		if n >= 8 && n&(n-1) == 0 {
			cfg.FFTSize = n
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
