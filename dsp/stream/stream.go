package stream

import (
	"errors"
	"fmt"
)

// Channel indices inside a packed stereo word.
const (
	Left     = 0
	Right    = 1
	Channels = 2
)

// ErrUnstableToken reports a producer that changed or withdrew an offered
// token before the consumer accepted it.
var ErrUnstableToken = errors.New("stream: token changed before it was accepted")

// Token is one cycle of a stream.
type Token struct {
	Data  uint32
	Valid bool
	Last  bool
}

// Pack builds a stereo word, channel 0 in the low half.
func Pack(left, right int16) uint32 {
	return uint32(uint16(left)) | uint32(uint16(right))<<16
}

// Unpack splits a stereo word into its two channels.
func Unpack(w uint32) (left, right int16) {
	return int16(uint16(w)), int16(uint16(w >> 16))
}

// Split returns the two channels of a stereo word as an array indexed by
// channel number.
func Split(w uint32) [Channels]int16 {
	l, r := Unpack(w)
	return [Channels]int16{l, r}
}

// Join is the inverse of Split.
func Join(ch [Channels]int16) uint32 {
	return Pack(ch[Left], ch[Right])
}

// Checker tracks the handshake of a single stream and flags tokens that
// are not held stable until accepted.
type Checker struct {
	pending    bool
	held       Token
	violations int
}

// Observe records one cycle: the token offered by the producer and the
// consumer's ready. It returns ErrUnstableToken if the producer broke a
// pending offer from the previous cycle.
func (c *Checker) Observe(tok Token, ready bool) error {
	var err error
	if c.pending && (!tok.Valid || tok.Data != c.held.Data || tok.Last != c.held.Last) {
		c.violations++
		err = fmt.Errorf("%w: offered %+v, now %+v", ErrUnstableToken, c.held, tok)
	}
	c.pending = tok.Valid && !ready
	c.held = tok
	return err
}

// Violations returns the number of protocol violations seen so far.
func (c *Checker) Violations() int { return c.violations }

// Reset forgets any pending offer and clears the violation count.
func (c *Checker) Reset() {
	*c = Checker{}
}
