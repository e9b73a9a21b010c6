// Package bridge drives the deck: it wires the snapshot receiver, the screen
// state, the local controls and the keyboard into one cooperative loop.
package bridge

import (
	"io"
	"runtime"
	"time"

	"github.com/picodeck/picodeck/drivers/button"
	"github.com/picodeck/picodeck/drivers/encoder"
	"github.com/picodeck/picodeck/drivers/hidkbd"
	"github.com/picodeck/picodeck/term"
	"github.com/picodeck/picodeck/wire"
)

// RenderInterval is the fixed cadence at which the display is refreshed even
// without state changes.
const RenderInterval = 200 * time.Millisecond

// Display draws fixed-width character rows, e.g. a 16x2 character LCD.
type Display interface {
	Size() (width, height int)
	// DrawRow draws text as display row `row`.  The slice is only valid
	// for the duration of the call.
	DrawRow(row int, text []byte)
}

// Inputs aggregates the deck's local controls.  Nil members are simply not
// polled.  The pin funcs report current levels, with "pressed" already
// translated from the electrical active level.
type Inputs struct {
	EncoderV func() (a, b bool) // vertical scroll wheel
	EncoderH func() (a, b bool) // horizontal scroll wheel
	ButtonV  func() bool        // sends Enter
	ButtonH  func() bool        // sends Backspace
	Keyboard hidkbd.ReportSource
}

type Config struct {
	// Now substitutes the clock, for tests.  Defaults to time.Now.
	Now func() time.Time
	// RenderEvery overrides RenderInterval if positive.
	RenderEvery time.Duration
}

// Controller owns the screen state and runs the deck's single-threaded loop.
// All state is mutated from Step only; nothing here is safe for concurrent
// use.
type Controller struct {
	buf  *term.Buffer
	view *term.Viewport
	rx   *wire.Receiver
	out  *wire.EventWriter

	in         Inputs
	encV, encH *encoder.Decoder
	btnV, btnH *button.Debouncer

	disp        Display
	line        [term.Cols]byte
	now         func() time.Time
	renderEvery time.Duration
	lastRender  time.Time
	dirty       bool

	writeErrs uint32
}

// NewController assembles a controller reading snapshot frames from port,
// drawing on disp and writing event lines to events.
func NewController(port wire.Port, in Inputs, disp Display, events io.Writer, cfg Config) *Controller {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.RenderEvery <= 0 {
		cfg.RenderEvery = RenderInterval
	}
	buf := term.NewBuffer()
	c := &Controller{
		buf:         buf,
		view:        term.NewViewport(buf),
		rx:          wire.NewReceiver(port),
		out:         wire.NewEventWriter(events),
		in:          in,
		btnV:        button.New(button.DebounceWindow),
		btnH:        button.New(button.DebounceWindow),
		disp:        disp,
		now:         cfg.Now,
		renderEvery: cfg.RenderEvery,
	}
	if in.EncoderV != nil {
		c.encV = encoder.New(in.EncoderV())
	}
	if in.EncoderH != nil {
		c.encH = encoder.New(in.EncoderH())
	}
	return c
}

// Viewport exposes the screen window, e.g. for an initial render or tests.
func (c *Controller) Viewport() *term.Viewport { return c.view }

// Reset blanks the screen state and moves the viewport home.
func (c *Controller) Reset() {
	c.buf.Reset()
	c.view.Reset()
	c.dirty = true
}

// Step runs one loop iteration: drain pending keyboard reports, attempt one
// frame read, sample the encoders, poll the buttons, then render if dirty or
// the render interval elapsed.
func (c *Controller) Step() {
	now := c.now()

	if c.in.Keyboard != nil {
		for {
			report, ok := c.in.Keyboard.ReadReport()
			if !ok {
				break
			}
			hidkbd.DecodeReport(report, c.emit)
		}
	}

	if f, ok := c.rx.Poll(); ok {
		c.buf.Apply(int(f.Rows), int(f.Cols), f.Payload)
		c.view.Clamp()
		c.dirty = true
	}

	if c.encV != nil {
		if d := c.encV.Sample(c.in.EncoderV()); d != 0 {
			c.view.ScrollVertical(d)
			c.dirty = true
		}
	}
	if c.encH != nil {
		if d := c.encH.Sample(c.in.EncoderH()); d != 0 {
			c.view.ScrollHorizontal(d)
			c.dirty = true
		}
	}

	if c.in.ButtonV != nil && c.btnV.Poll(c.in.ButtonV(), now) {
		c.emit(wire.Event{Kind: wire.KeyEnter})
	}
	if c.in.ButtonH != nil && c.btnH.Poll(c.in.ButtonH(), now) {
		c.emit(wire.Event{Kind: wire.KeyBackspace})
	}

	if c.dirty || now.Sub(c.lastRender) >= c.renderEvery {
		c.render()
		c.lastRender = now
		c.dirty = false
	}
}

// Run steps the loop forever.
func (c *Controller) Run() {
	for {
		c.Step()
		runtime.Gosched()
	}
}

func (c *Controller) emit(ev wire.Event) {
	// The deck has no operator-facing error channel, a failed write is
	// only counted.
	if err := c.out.WriteEvent(ev); err != nil {
		c.writeErrs++
	}
}

func (c *Controller) render() {
	w, h := c.disp.Size()
	line := c.line[:min(w, len(c.line))]
	for row := 0; row < h; row++ {
		c.view.ReadLine(line, row)
		c.disp.DrawRow(row, line)
	}
}
