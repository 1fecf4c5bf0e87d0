package qmf

import (
	"github.com/cwbudde/algo-qmf/dsp/delay"
	"github.com/cwbudde/algo-qmf/dsp/stream"
)

// meta is the part of a token that is not filtered.
type meta struct {
	valid bool
	last  bool
}

func metaOf(tok stream.Token) meta {
	return meta{valid: tok.Valid, last: tok.Last && tok.Valid}
}

// pacer delays token metadata by the data latency of an engine so that
// valid and last line up with the filtered sample they belong to.
type pacer struct {
	line *delay.Line[meta]
}

func newPacer(depth int) (*pacer, error) {
	line, err := delay.New[meta](depth)
	if err != nil {
		return nil, err
	}
	return &pacer{line: line}, nil
}

// step advances the metadata pipeline on a firing tick and returns the
// metadata of the token presented this tick. On a stalled tick the
// pipeline holds.
func (p *pacer) step(in meta, fire bool) meta {
	if !fire {
		return p.line.Peek()
	}
	return p.line.Shift(in)
}

func (p *pacer) reset() { p.line.Reset() }

// analysisFire reports whether the analysis pipeline advances this tick:
// the bank is enabled and both subband consumers are ready.
func analysisFire(enable, readyLow, readyHigh bool) bool {
	return enable && readyLow && readyHigh
}

// synthesisFire reports whether the synthesis pipeline advances this
// tick. Both subband inputs are taken together when it does.
func synthesisFire(enable, ready bool) bool {
	return enable && ready
}

// emit builds the token presented on an output. It is only marked valid
// on a firing tick, the tick on which the consumer takes it.
func emit(data uint32, m meta, fire bool) stream.Token {
	valid := fire && m.valid
	return stream.Token{Data: data, Valid: valid, Last: valid && m.last}
}
