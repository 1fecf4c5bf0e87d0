package qmf

import (
	"fmt"

	"github.com/cwbudde/algo-qmf/dsp/core"
	"github.com/cwbudde/algo-qmf/dsp/filter/fir"
	"github.com/cwbudde/algo-qmf/dsp/stream"
)

// synthesisChannel merges one channel: h0 on the low input, f1 on the
// high input, and a sum register holding the clamped band sum.
type synthesisChannel struct {
	low  *fir.Engine
	high *fir.Engine
	sum  int16
}

func newSynthesisChannel(taps, latency int) (*synthesisChannel, error) {
	lo, hi, err := newEnginePair(taps, latency)
	if err != nil {
		return nil, err
	}
	return &synthesisChannel{low: lo, high: hi}, nil
}

// process is one tick of the channel. The returned sample is the sum
// registered on the previous enabled tick. The band outputs are added
// with one bit of headroom and clamped before they are registered.
func (c *synthesisChannel) process(lo, hi int16, set *coeffSet, enable bool) int16 {
	out := c.sum
	f0 := c.low.Step(lo, set.h0, enable, false)
	f1 := c.high.Step(hi, set.f1, enable, false)
	if enable {
		c.sum = core.SaturatingAdd(f0, f1)
	}
	return out
}

// reset clears both engines through their clear input and zeroes the
// sum register.
func (c *synthesisChannel) reset() {
	c.low.Step(0, nil, false, true)
	c.high.Step(0, nil, false, true)
	c.sum = 0
}

// Synthesizer is the stereo synthesis stage: a low-band and a high-band
// packed stream in, one reconstructed packed stream out.
type Synthesizer struct {
	cfg        *Config
	opts       engineConfig
	coeffs     coeffSet
	ch         stereo[*synthesisChannel]
	pace       *pacer
	low, high  stream.Checker
	misaligned int
}

// NewSynthesizer builds a synthesizer reading its prototype and enable
// flag from cfg.
func NewSynthesizer(cfg *Config, opts ...Option) (*Synthesizer, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	o := applyOptions(opts)
	ch, err := replicate(func() (*synthesisChannel, error) {
		return newSynthesisChannel(cfg.Taps(), o.latency)
	})
	if err != nil {
		return nil, err
	}
	// One extra stage for the sum register.
	pace, err := newPacer(o.latency + 1)
	if err != nil {
		return nil, fmt.Errorf("qmf: %w", err)
	}
	return &Synthesizer{
		cfg:    cfg,
		opts:   o,
		coeffs: newCoeffSet(cfg.Taps(), o.parity),
		ch:     ch,
		pace:   pace,
	}, nil
}

// Tick runs one clock cycle. low and high are the subband tokens offered
// by the producers and ready is the consumer's ready signal. Both inputs
// are accepted together, reported by inReady. out is the reconstructed
// token presented this tick, valid only if the consumer takes it.
//
// An input token counts as valid when both subband tokens are valid;
// last is carried if either band asserts it.
func (s *Synthesizer) Tick(low, high stream.Token, ready bool) (out stream.Token, inReady bool) {
	return s.tick(s.cfg.Enabled(), low, high, ready)
}

func (s *Synthesizer) tick(enable bool, low, high stream.Token, ready bool) (out stream.Token, inReady bool) {
	s.coeffs.refresh(s.cfg)
	fire := synthesisFire(enable, ready)
	s.check(low, high, fire)

	lo, hi := stream.Split(low.Data), stream.Split(high.Data)
	var merged [stream.Channels]int16
	for ch, c := range s.ch {
		merged[ch] = c.process(lo[ch], hi[ch], &s.coeffs, fire)
	}
	valid := low.Valid && high.Valid
	m := s.pace.step(meta{valid: valid, last: valid && (low.Last || high.Last)}, fire)

	return emit(stream.Join(merged), m, fire), fire
}

func (s *Synthesizer) check(low, high stream.Token, fire bool) {
	errLow := s.low.Observe(low, fire)
	errHigh := s.high.Observe(high, fire)
	if fire && low.Valid != high.Valid {
		s.misaligned++
		if s.opts.strict {
			panic(fmt.Errorf("%w: low valid %t, high valid %t", ErrMisaligned, low.Valid, high.Valid))
		}
	}
	if !s.opts.strict {
		return
	}
	if errLow != nil {
		panic(fmt.Errorf("qmf: low input: %w", errLow))
	}
	if errHigh != nil {
		panic(fmt.Errorf("qmf: high input: %w", errHigh))
	}
}

// ProcessBlock merges equally long subband blocks with the consumer
// always ready and returns the words that became valid. Output lags
// input by Latency() words; call Drain at end of stream to flush it.
func (s *Synthesizer) ProcessBlock(low, high []uint32) ([]uint32, error) {
	if len(low) != len(high) {
		return nil, fmt.Errorf("%w: low %d, high %d", ErrLengthMismatch, len(low), len(high))
	}
	out := make([]uint32, 0, len(low))
	for i := range low {
		tok, ok := s.Tick(stream.Token{Data: low[i], Valid: true}, stream.Token{Data: high[i], Valid: true}, true)
		if !ok {
			return out, fmt.Errorf("%w: word %d refused", ErrDisabled, i)
		}
		if tok.Valid {
			out = append(out, tok.Data)
		}
	}
	return out, nil
}

// Drain pushes Latency() empty ticks through the synthesizer and returns
// the words still in flight.
func (s *Synthesizer) Drain() []uint32 {
	var out []uint32
	for range s.Latency() {
		tok, _ := s.Tick(stream.Token{}, stream.Token{}, true)
		if tok.Valid {
			out = append(out, tok.Data)
		}
	}
	return out
}

// Latency returns the synthesis latency in ticks: the convolution
// latency plus the sum register.
func (s *Synthesizer) Latency() int { return s.opts.latency + 1 }

// Misaligned returns how many accepted ticks carried subband inputs with
// disagreeing valid flags.
func (s *Synthesizer) Misaligned() int { return s.misaligned }

// Violations returns the number of input stability violations observed
// across both subband inputs.
func (s *Synthesizer) Violations() int { return s.low.Violations() + s.high.Violations() }

// Reset clears every delay line, the sum registers and the valid/last
// pipeline. The shared Config is left untouched.
func (s *Synthesizer) Reset() {
	for _, c := range s.ch {
		c.reset()
	}
	s.pace.reset()
	s.low.Reset()
	s.high.Reset()
	s.misaligned = 0
}
