package qmf

import (
	"fmt"

	"github.com/cwbudde/algo-qmf/dsp/stream"
)

// BandFunc processes one channel's subband pair between analysis and
// synthesis. It runs once per channel on every tick the chain advances,
// including ticks where the producer offered no valid token, so every
// sample that enters the synthesis delay lines has been through it.
type BandFunc func(low, high int16) (int16, int16)

// Loopback is a complete analysis/synthesis chain on one Config. The
// subband streams are wired directly, with an optional BandFunc in
// between, so the chain as a whole obeys the same lockstep rules as its
// stages.
type Loopback struct {
	cfg  *Config
	ana  *Analyzer
	syn  *Synthesizer
	band BandFunc
}

// NewLoopback builds an Analyzer and a Synthesizer sharing cfg. band may
// be nil, in which case subbands pass through unchanged.
func NewLoopback(cfg *Config, band BandFunc, opts ...Option) (*Loopback, error) {
	ana, err := NewAnalyzer(cfg, opts...)
	if err != nil {
		return nil, fmt.Errorf("qmf: analysis: %w", err)
	}
	syn, err := NewSynthesizer(cfg, opts...)
	if err != nil {
		return nil, fmt.Errorf("qmf: synthesis: %w", err)
	}
	return &Loopback{cfg: cfg, ana: ana, syn: syn, band: band}, nil
}

// Tick runs one clock cycle of the whole chain. The enable flag is
// sampled once so both stages see the same value.
func (l *Loopback) Tick(in stream.Token, ready bool) (out stream.Token, inReady bool) {
	enable := l.cfg.Enabled()
	// The synthesizer's readiness depends only on enable and its
	// consumer, so it can gate the analyzer in the same tick.
	synReady := synthesisFire(enable, ready)
	low, high, inReady := l.ana.tick(enable, in, synReady, synReady)
	if l.band != nil && inReady {
		low.Data, high.Data = l.applyBand(low.Data, high.Data)
	}
	out, _ = l.syn.tick(enable, low, high, ready)
	return out, inReady
}

func (l *Loopback) applyBand(low, high uint32) (uint32, uint32) {
	lo, hi := stream.Split(low), stream.Split(high)
	for ch := range lo {
		lo[ch], hi[ch] = l.band(lo[ch], hi[ch])
	}
	return stream.Join(lo), stream.Join(hi)
}

// ProcessBlock streams in through the chain with the consumer always
// ready and returns the reconstructed words that became valid.
func (l *Loopback) ProcessBlock(in []uint32) ([]uint32, error) {
	out := make([]uint32, 0, len(in))
	for i, w := range in {
		tok, ok := l.Tick(stream.Token{Data: w, Valid: true}, true)
		if !ok {
			return out, fmt.Errorf("%w: word %d refused", ErrDisabled, i)
		}
		if tok.Valid {
			out = append(out, tok.Data)
		}
	}
	return out, nil
}

// Drain pushes Latency() empty ticks through the chain and returns the
// words still in flight.
func (l *Loopback) Drain() []uint32 {
	var out []uint32
	for range l.Latency() {
		tok, _ := l.Tick(stream.Token{}, true)
		if tok.Valid {
			out = append(out, tok.Data)
		}
	}
	return out
}

// Analyzer returns the analysis stage.
func (l *Loopback) Analyzer() *Analyzer { return l.ana }

// Synthesizer returns the synthesis stage.
func (l *Loopback) Synthesizer() *Synthesizer { return l.syn }

// Latency returns the end-to-end latency in ticks.
func (l *Loopback) Latency() int { return l.ana.Latency() + l.syn.Latency() }

// Reset clears both stages.
func (l *Loopback) Reset() {
	l.ana.Reset()
	l.syn.Reset()
}
