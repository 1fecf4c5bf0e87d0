// Package delay provides a fixed-depth register pipeline.
//
// A [Line] models a chain of clocked registers: every [Line.Shift] moves
// all stages one step forward, inserting a value at the tail and
// returning the value that falls out of the head. Between shifts the
// head is stable and can be inspected with [Line.Peek].
package delay

import "fmt"

// Line is a circular register pipeline of fixed depth.
type Line[T any] struct {
	buffer []T
	pos    int
}

// New returns a pipeline of the given depth with all stages zeroed.
func New[T any](depth int) (*Line[T], error) {
	if depth <= 0 {
		return nil, fmt.Errorf("delay depth must be > 0: %d", depth)
	}
	return &Line[T]{buffer: make([]T, depth)}, nil
}

// Len returns the pipeline depth.
func (d *Line[T]) Len() int {
	return len(d.buffer)
}

// Shift advances the pipeline by one stage. It returns the value that
// was inserted Len() shifts earlier.
func (d *Line[T]) Shift(v T) T {
	out := d.buffer[d.pos]
	d.buffer[d.pos] = v
	d.pos++
	if d.pos >= len(d.buffer) {
		d.pos = 0
	}
	return out
}

// Peek returns the head, the value the next Shift will return.
func (d *Line[T]) Peek() T {
	return d.buffer[d.pos]
}

// Reset zeroes every stage.
func (d *Line[T]) Reset() {
	var zero T
	for i := range d.buffer {
		d.buffer[i] = zero
	}
	d.pos = 0
}
