// Package encoder decodes a quadrature rotary encoder from polled samples of
// its two phase lines.
package encoder

// Step direction per (prev<<2 | cur) transition.  The four transitions of the
// clockwise sequence 00→01→11→10→00 count +1, their reversals -1.  Everything
// else is a skipped or bounced state and counts nothing, which is what makes
// this a table instead of a sign heuristic.
var steps = [16]int8{
	0b0001: +1,
	0b0111: +1,
	0b1110: +1,
	0b1000: +1,
	0b0010: -1,
	0b1011: -1,
	0b1101: -1,
	0b0100: -1,
}

// Decoder tracks one encoder's previous sample.
type Decoder struct {
	prev uint8
}

// New seeds the decoder with the lines' current levels so that the first
// real transition decodes correctly.
func New(a, b bool) *Decoder {
	return &Decoder{prev: sample(a, b)}
}

// Sample consumes the current levels of the phase lines and returns the
// decoded step: +1 clockwise, -1 counter-clockwise, 0 otherwise.  Call it
// once per poll tick.
func (d *Decoder) Sample(a, b bool) int {
	cur := sample(a, b)
	if cur == d.prev {
		return 0
	}
	step := steps[d.prev<<2|cur]
	d.prev = cur
	return int(step)
}

func sample(a, b bool) uint8 {
	var s uint8
	if a {
		s |= 0b10
	}
	if b {
		s |= 0b01
	}
	return s
}
