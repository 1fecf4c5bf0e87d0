package qmf

const defaultLatency = 2

type engineConfig struct {
	latency int
	parity  Parity
	strict  bool
}

func defaultEngineConfig() engineConfig {
	return engineConfig{
		latency: defaultLatency,
		parity:  ParityOdd,
	}
}

// Option configures an Analyzer, Synthesizer or Loopback.
type Option func(*engineConfig)

// WithLatency sets the convolution latency L in ticks. Must be positive;
// defaults to 2.
func WithLatency(l int) Option {
	return func(cfg *engineConfig) {
		if l > 0 {
			cfg.latency = l
		}
	}
}

// WithParity selects the analysis highpass sign convention. Defaults to
// ParityOdd.
func WithParity(p Parity) Option {
	return func(cfg *engineConfig) {
		if p == ParityOdd || p == ParityEven {
			cfg.parity = p
		}
	}
}

// WithStrict makes the engine panic on stream protocol violations: an
// input token changed before it was accepted, or subband inputs whose
// valid flags disagree.
func WithStrict() Option {
	return func(cfg *engineConfig) {
		cfg.strict = true
	}
}

func applyOptions(opts []Option) engineConfig {
	cfg := defaultEngineConfig()
	for _, o := range opts {
		if o != nil {
			o(&cfg)
		}
	}
	return cfg
}
