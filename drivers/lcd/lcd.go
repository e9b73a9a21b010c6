// Package lcd drives an HD44780 compatible character LCD in 4-bit mode over
// six GPIO lines (RS, E, D4..D7, R/W tied to ground).
package lcd

import "time"

// Pin sets the level of a single GPIO output.
type Pin func(level bool)

// Pins is the 4-bit control and data wiring of the display.
type Pins struct {
	RS, E          Pin
	D4, D5, D6, D7 Pin
}

// HD44780 instruction set, 4-bit 2-line mode.
const (
	cmdClear       = 0x01
	cmdEntryMode   = 0x06 // increment, no shift
	cmdDisplayOff  = 0x08
	cmdDisplayOn   = 0x0c // display on, cursor off, blink off
	cmdFunction4b2 = 0x28 // 4-bit bus, 2 lines, 5x8 font
	cmdSetDDRAM    = 0x80

	row1Addr = 0x40
)

type Device struct {
	pins       Pins
	cols, rows int
	delay      func(time.Duration)
}

// New returns an uninitialized display of the given geometry.  Call Init
// before anything else.
func New(pins Pins, cols, rows int) *Device {
	return &Device{pins: pins, cols: cols, rows: rows, delay: sleep}
}

func sleep(d time.Duration) { time.Sleep(d) }

// Init performs the datasheet's 4-bit initialization dance and leaves the
// display on and cleared.
func (d *Device) Init() {
	d.pins.RS(false)
	d.pins.E(false)
	d.delay(50 * time.Millisecond)

	// Force 8-bit mode three times before switching to 4-bit, required
	// after an unknown power-on state.
	d.write4(0x03)
	d.delay(5 * time.Millisecond)
	d.write4(0x03)
	d.delay(150 * time.Microsecond)
	d.write4(0x03)
	d.write4(0x02)

	d.command(cmdFunction4b2)
	d.command(cmdDisplayOff)
	d.Clear()
	d.command(cmdEntryMode)
	d.command(cmdDisplayOn)
}

func (d *Device) Clear() {
	d.command(cmdClear)
	d.delay(2 * time.Millisecond)
}

// SetCursor moves the write position, clamped to the display geometry.
func (d *Device) SetCursor(col, row int) {
	col = min(max(col, 0), d.cols-1)
	row = min(max(row, 0), d.rows-1)
	addr := col
	if row == 1 {
		addr += row1Addr
	}
	d.command(cmdSetDDRAM | byte(addr))
}

// Write puts p on the display at the current write position.
func (d *Device) Write(p []byte) (int, error) {
	for _, b := range p {
		d.data(b)
	}
	return len(p), nil
}

// Size returns the display geometry in characters.
func (d *Device) Size() (width, height int) {
	return d.cols, d.rows
}

// DrawRow implements the render sink of the controller loop.
func (d *Device) DrawRow(row int, text []byte) {
	d.SetCursor(0, row)
	if len(text) > d.cols {
		text = text[:d.cols]
	}
	d.Write(text)
}

func (d *Device) command(cmd byte) {
	d.pins.RS(false)
	d.write4(cmd >> 4)
	d.write4(cmd & 0x0f)
}

func (d *Device) data(b byte) {
	d.pins.RS(true)
	d.write4(b >> 4)
	d.write4(b & 0x0f)
}

func (d *Device) write4(nibble byte) {
	d.pins.D4(nibble&1 != 0)
	d.pins.D5(nibble&2 != 0)
	d.pins.D6(nibble&4 != 0)
	d.pins.D7(nibble&8 != 0)
	d.pulse()
}

func (d *Device) pulse() {
	d.pins.E(true)
	d.delay(time.Microsecond)
	d.pins.E(false)
	d.delay(100 * time.Microsecond)
}
