package qmf

import (
	"fmt"

	"github.com/cwbudde/algo-qmf/dsp/filter/fir"
	"github.com/cwbudde/algo-qmf/dsp/stream"
)

// stereo holds one independent engine per channel, indexed like a packed
// stereo word: element 0 is the low half.
type stereo[E any] [stream.Channels]E

// replicate builds one engine per channel with build.
func replicate[E any](build func() (E, error)) (stereo[E], error) {
	var s stereo[E]
	for ch := range s {
		e, err := build()
		if err != nil {
			return s, fmt.Errorf("qmf: channel %d: %w", ch, err)
		}
		s[ch] = e
	}
	return s, nil
}

// newEnginePair builds the two convolution engines of one channel.
func newEnginePair(taps, latency int) (a, b *fir.Engine, err error) {
	if a, err = fir.New(taps, latency); err != nil {
		return nil, nil, err
	}
	if b, err = fir.New(taps, latency); err != nil {
		return nil, nil, err
	}
	return a, b, nil
}
