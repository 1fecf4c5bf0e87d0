package qmf

import (
	"errors"
	"fmt"
	"sync/atomic"
)

// Errors returned by Config, RegisterFile and the engines.
var (
	ErrInvalidTaps    = errors.New("qmf: tap count must be positive")
	ErrTapIndex       = errors.New("qmf: tap index out of range")
	ErrTapCount       = errors.New("qmf: coefficient count does not match tap count")
	ErrNilConfig      = errors.New("qmf: nil config")
	ErrDisabled       = errors.New("qmf: bank is disabled")
	ErrLengthMismatch = errors.New("qmf: subband length mismatch")
	ErrMisaligned     = errors.New("qmf: subband inputs out of lockstep")
)

// Config is the register state shared by every engine of one filter
// bank: the prototype coefficients h0 and the enable flag.
//
// Each register is read and written atomically on its own; there is no
// atomicity across registers and no synchronization with samples in
// flight. Writing a new prototype while streaming therefore produces a
// short transient in which a delay line mixes old and new taps.
type Config struct {
	enable atomic.Bool
	coeffs []atomic.Int32
	gen    atomic.Uint64
}

// NewConfig returns a disabled configuration with taps zeroed
// coefficients. The tap count is fixed for the lifetime of the Config.
func NewConfig(taps int) (*Config, error) {
	if taps <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidTaps, taps)
	}
	return &Config{coeffs: make([]atomic.Int32, taps)}, nil
}

// Taps returns the prototype length N.
func (c *Config) Taps() int { return len(c.coeffs) }

// SetEnable sets the enable flag.
func (c *Config) SetEnable(on bool) { c.enable.Store(on) }

// Enabled reports the enable flag.
func (c *Config) Enabled() bool { return c.enable.Load() }

// SetCoefficient writes prototype tap i.
func (c *Config) SetCoefficient(i int, v int16) error {
	if i < 0 || i >= len(c.coeffs) {
		return fmt.Errorf("%w: %d (taps %d)", ErrTapIndex, i, len(c.coeffs))
	}
	c.coeffs[i].Store(int32(v))
	c.gen.Add(1)
	return nil
}

// Coefficient returns prototype tap i, or 0 if i is out of range.
func (c *Config) Coefficient(i int) int16 {
	if i < 0 || i >= len(c.coeffs) {
		return 0
	}
	return int16(c.coeffs[i].Load())
}

// SetCoefficients writes the whole prototype, one register at a time.
func (c *Config) SetCoefficients(h0 []int16) error {
	if len(h0) != len(c.coeffs) {
		return fmt.Errorf("%w: got %d, want %d", ErrTapCount, len(h0), len(c.coeffs))
	}
	for i, v := range h0 {
		c.coeffs[i].Store(int32(v))
	}
	c.gen.Add(1)
	return nil
}

// Coefficients returns a copy of the current prototype.
func (c *Config) Coefficients() []int16 {
	h0 := make([]int16, len(c.coeffs))
	c.load(h0)
	return h0
}

// Generation returns a counter that changes on every coefficient write.
func (c *Config) Generation() uint64 { return c.gen.Load() }

func (c *Config) load(dst []int16) {
	for i := range c.coeffs {
		dst[i] = int16(c.coeffs[i].Load())
	}
}

// coeffSet caches the prototype and both derived filters for one engine.
// It reloads whenever the Config generation moved since the last load.
type coeffSet struct {
	gen    uint64
	loaded bool
	parity Parity
	h0     []int16
	h1     []int16
	f1     []int16
}

func newCoeffSet(taps int, p Parity) coeffSet {
	return coeffSet{
		parity: p,
		h0:     make([]int16, taps),
		h1:     make([]int16, taps),
		f1:     make([]int16, taps),
	}
}

// refresh must be called once per tick before the filters are used. The
// generation is read before the registers so a write racing with the load
// is picked up again on the next tick.
func (s *coeffSet) refresh(cfg *Config) {
	gen := cfg.Generation()
	if s.loaded && gen == s.gen {
		return
	}
	cfg.load(s.h0)
	AnalysisMirrorInto(s.h1, s.h0, s.parity)
	SynthesisMirrorInto(s.f1, s.h0)
	s.gen = gen
	s.loaded = true
}
