// Package term holds the deck's canonical screen state: a fixed-capacity
// character grid fed by snapshot frames and a scrollable viewport over it.
package term

import (
	"image"

	"github.com/picodeck/picodeck/debug"
	"github.com/picodeck/picodeck/wire"
)

const (
	Rows = wire.MaxRows
	Cols = wire.MaxCols
)

// Buffer is the canonical terminal grid.  Cells hold printable ASCII only,
// anything else is normalized to space on the way in.  It is created once at
// startup and mutated in place for the process lifetime.
type Buffer struct {
	cells      [Rows][Cols]byte
	rows, cols int // dimensions populated by the last snapshot
}

func NewBuffer() *Buffer {
	b := &Buffer{}
	b.Reset()
	return b
}

// Reset blanks the grid and restores the full capacity as active dimensions.
func (b *Buffer) Reset() {
	for y := range b.cells {
		for x := range b.cells[y] {
			b.cells[y][x] = ' '
		}
	}
	b.rows, b.cols = Rows, Cols
}

// Apply overwrites the grid with a snapshot of the declared dimensions.
// Oversized dimensions are truncated to capacity; payload is laid out in
// declared-row-major order, so the trailing bytes of an oversized row are
// skipped, not misaligned into the next row.  All input is sanitized, never
// rejected.
func (b *Buffer) Apply(rows, cols int, payload []byte) {
	debug.Assert(len(payload) >= rows*cols, "short snapshot payload")
	r := min(rows, Rows)
	c := min(cols, Cols)
	for y := 0; y < r; y++ {
		row := payload[y*cols:]
		if len(row) < c {
			break
		}
		for x := 0; x < c; x++ {
			ch := row[x]
			if ch < 0x20 || ch > 0x7e {
				ch = ' '
			}
			b.cells[y][x] = ch
		}
	}
	b.rows, b.cols = r, c
}

// Active returns the dimensions populated by the most recent snapshot.
func (b *Buffer) Active() (rows, cols int) {
	return b.rows, b.cols
}

// Cell returns the grid cell at row y, column x.
func (b *Buffer) Cell(y, x int) byte {
	return b.cells[y][x]
}

// Viewport is a moveable window over a Buffer.  Offsets are clamped so the
// window origin always addresses a populated cell.
type Viewport struct {
	buf *Buffer
	off image.Point // X horizontal, Y vertical
}

func NewViewport(buf *Buffer) *Viewport {
	return &Viewport{buf: buf}
}

func (v *Viewport) ScrollVertical(delta int) {
	v.off.Y += delta
	v.Clamp()
}

func (v *Viewport) ScrollHorizontal(delta int) {
	v.off.X += delta
	v.Clamp()
}

// Clamp forces both offsets back into the active bounds.  Call after a
// snapshot shrank the active dimensions below the current offsets.
func (v *Viewport) Clamp() {
	rows, cols := v.buf.Active()
	v.off.Y = min(max(v.off.Y, 0), max(rows-1, 0))
	v.off.X = min(max(v.off.X, 0), max(cols-1, 0))
}

// Offset returns the current scroll offsets.
func (v *Viewport) Offset() image.Point {
	return v.off
}

// Reset moves the window back to the origin.
func (v *Viewport) Reset() {
	v.off = image.Point{}
}

// ReadLine fills dst with len(dst) characters of window row `row`, starting
// at the current offsets.  Rows and columns past the active dimensions
// saturate at the last valid row/column instead of wrapping or blanking.
func (v *Viewport) ReadLine(dst []byte, row int) {
	debug.Assert(row >= 0, "negative window row")
	rows, cols := v.buf.Active()
	y := min(v.off.Y+row, max(rows-1, 0))
	for i := range dst {
		x := min(v.off.X+i, max(cols-1, 0))
		dst[i] = v.buf.cells[y][x]
	}
}
