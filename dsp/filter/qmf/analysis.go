package qmf

import (
	"fmt"

	"github.com/cwbudde/algo-qmf/dsp/filter/fir"
	"github.com/cwbudde/algo-qmf/dsp/stream"
)

// analysisChannel splits one channel: h0 on the low path, h1 on the high
// path, both fed the same sample under the same enable.
type analysisChannel struct {
	low  *fir.Engine
	high *fir.Engine
}

func newAnalysisChannel(taps, latency int) (*analysisChannel, error) {
	lo, hi, err := newEnginePair(taps, latency)
	if err != nil {
		return nil, err
	}
	return &analysisChannel{low: lo, high: hi}, nil
}

// process is one tick of the channel. The outputs belong to the sample
// accepted Latency() enabled ticks earlier.
func (c *analysisChannel) process(x int16, set *coeffSet, enable bool) (lo, hi int16) {
	lo = c.low.Step(x, set.h0, enable, false)
	hi = c.high.Step(x, set.h1, enable, false)
	return lo, hi
}

// reset clears both engines through their clear input.
func (c *analysisChannel) reset() {
	c.low.Step(0, nil, false, true)
	c.high.Step(0, nil, false, true)
}

// Analyzer is the stereo analysis stage: one packed input stream in, a
// low-band and a high-band packed stream out.
type Analyzer struct {
	cfg    *Config
	opts   engineConfig
	coeffs coeffSet
	ch     stereo[*analysisChannel]
	pace   *pacer
	in     stream.Checker
}

// NewAnalyzer builds an analyzer reading its prototype and enable flag
// from cfg.
func NewAnalyzer(cfg *Config, opts ...Option) (*Analyzer, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	o := applyOptions(opts)
	ch, err := replicate(func() (*analysisChannel, error) {
		return newAnalysisChannel(cfg.Taps(), o.latency)
	})
	if err != nil {
		return nil, err
	}
	pace, err := newPacer(o.latency)
	if err != nil {
		return nil, fmt.Errorf("qmf: %w", err)
	}
	return &Analyzer{
		cfg:    cfg,
		opts:   o,
		coeffs: newCoeffSet(cfg.Taps(), o.parity),
		ch:     ch,
		pace:   pace,
	}, nil
}

// Tick runs one clock cycle. in is the token offered by the producer,
// readyLow and readyHigh are the subband consumers' ready signals. The
// returned inReady reports whether in was accepted this tick; low and
// high are the subband tokens presented this tick, valid only if the
// consumers take them.
func (a *Analyzer) Tick(in stream.Token, readyLow, readyHigh bool) (low, high stream.Token, inReady bool) {
	return a.tick(a.cfg.Enabled(), in, readyLow, readyHigh)
}

func (a *Analyzer) tick(enable bool, in stream.Token, readyLow, readyHigh bool) (low, high stream.Token, inReady bool) {
	a.coeffs.refresh(a.cfg)
	fire := analysisFire(enable, readyLow, readyHigh)
	if err := a.in.Observe(in, fire); err != nil && a.opts.strict {
		panic(err)
	}

	x := stream.Split(in.Data)
	var lo, hi [stream.Channels]int16
	for ch, c := range a.ch {
		lo[ch], hi[ch] = c.process(x[ch], &a.coeffs, fire)
	}
	m := a.pace.step(metaOf(in), fire)

	return emit(stream.Join(lo), m, fire), emit(stream.Join(hi), m, fire), fire
}

// ProcessBlock streams in through the analyzer with both consumers always
// ready and returns the subband words that became valid. Output lags
// input by Latency() words; call Drain at end of stream to flush it.
// It returns ErrDisabled, with the words produced so far, if the bank
// refuses a word.
func (a *Analyzer) ProcessBlock(in []uint32) (low, high []uint32, err error) {
	low = make([]uint32, 0, len(in))
	high = make([]uint32, 0, len(in))
	for i, w := range in {
		lo, hi, ok := a.Tick(stream.Token{Data: w, Valid: true}, true, true)
		if !ok {
			return low, high, fmt.Errorf("%w: word %d refused", ErrDisabled, i)
		}
		if lo.Valid {
			low = append(low, lo.Data)
			high = append(high, hi.Data)
		}
	}
	return low, high, nil
}

// Drain pushes Latency() empty ticks through the analyzer and returns the
// subband words still in flight.
func (a *Analyzer) Drain() (low, high []uint32) {
	for range a.Latency() {
		lo, hi, _ := a.Tick(stream.Token{}, true, true)
		if lo.Valid {
			low = append(low, lo.Data)
			high = append(high, hi.Data)
		}
	}
	return low, high
}

// Latency returns the analysis latency in ticks.
func (a *Analyzer) Latency() int { return a.opts.latency }

// Parity returns the analysis highpass sign convention.
func (a *Analyzer) Parity() Parity { return a.opts.parity }

// Violations returns the number of input protocol violations observed.
func (a *Analyzer) Violations() int { return a.in.Violations() }

// Reset clears every delay line and the valid/last pipeline. The shared
// Config is left untouched.
func (a *Analyzer) Reset() {
	for _, c := range a.ch {
		c.reset()
	}
	a.pace.reset()
	a.in.Reset()
}
