package bridge

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/picodeck/picodeck/wire"
)

type fifo struct{ buf []byte }

func (f *fifo) Buffered() int { return len(f.buf) }

func (f *fifo) ReadByte() (byte, error) {
	b := f.buf[0]
	f.buf = f.buf[1:]
	return b, nil
}

func (f *fifo) push(p []byte) { f.buf = append(f.buf, p...) }

// fakeDisplay keeps the last drawn window.
type fakeDisplay struct {
	rows  [2][16]byte
	draws int
}

func (d *fakeDisplay) Size() (int, int) { return 16, 2 }

func (d *fakeDisplay) DrawRow(row int, text []byte) {
	copy(d.rows[row][:], text)
	d.draws++
}

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }

func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

// reportQueue is a scripted hidkbd.ReportSource.
type reportQueue struct{ reports [][]byte }

func (q *reportQueue) ReadReport() ([]byte, bool) {
	if len(q.reports) == 0 {
		return nil, false
	}
	r := q.reports[0]
	q.reports = q.reports[1:]
	return r, true
}

type fixture struct {
	port  *fifo
	disp  *fakeDisplay
	out   bytes.Buffer
	clock *fakeClock
	keys  *reportQueue

	encV, encH uint8
	btnV, btnH bool
}

func newFixture(t *testing.T) (*fixture, *Controller) {
	t.Helper()
	f := &fixture{
		port:  &fifo{},
		disp:  &fakeDisplay{},
		clock: &fakeClock{t: time.Unix(0, 0)},
		keys:  &reportQueue{},
	}
	in := Inputs{
		EncoderV: func() (bool, bool) { return f.encV&0b10 != 0, f.encV&0b01 != 0 },
		EncoderH: func() (bool, bool) { return f.encH&0b10 != 0, f.encH&0b01 != 0 },
		ButtonV:  func() bool { return f.btnV },
		ButtonH:  func() bool { return f.btnH },
		Keyboard: f.keys,
	}
	c := NewController(f.port, in, f.disp, &f.out, Config{Now: f.clock.now})
	return f, c
}

func testFrame(fill byte) []byte {
	payload := bytes.Repeat([]byte{fill}, 4*20)
	return wire.AppendFrame(nil, 4, 20, payload)
}

func TestFrameRendered(t *testing.T) {
	f, c := newFixture(t)
	f.port.push(testFrame('x'))

	c.Step()

	if f.disp.draws != 2 {
		t.Fatalf("expected both rows drawn, got %d draws", f.disp.draws)
	}
	want := bytes.Repeat([]byte{'x'}, 16)
	if !bytes.Equal(f.disp.rows[0][:], want) {
		t.Fatalf("expected %q on row 0, got %q", want, f.disp.rows[0])
	}
}

func TestEncoderScrolls(t *testing.T) {
	f, c := newFixture(t)
	f.port.push(testFrame(' '))
	c.Step()

	// One clockwise detent is four transitions, but the 4-row frame
	// clamps the offset at 3.
	for _, s := range []uint8{0b01, 0b11, 0b10, 0b00} {
		f.encV = s
		c.Step()
	}
	if off := c.Viewport().Offset(); off.Y != 3 {
		t.Fatalf("expected vertical offset 3, got %d", off.Y)
	}

	for _, s := range []uint8{0b10, 0b11, 0b01, 0b00} {
		f.encH = s
		c.Step()
	}
	if off := c.Viewport().Offset(); off.X != 0 {
		t.Fatalf("expected horizontal offset clamped at 0, got %d", off.X)
	}
}

func TestButtonsEmitKeys(t *testing.T) {
	f, c := newFixture(t)

	f.btnV = true
	c.Step()
	f.btnV = false
	f.clock.advance(300 * time.Millisecond)
	f.btnH = true
	c.Step()

	want := "KEY:ENTER\nKEY:BACKSPACE\n"
	if got := f.out.String(); got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestButtonDebounced(t *testing.T) {
	f, c := newFixture(t)

	f.btnV = true
	for i := 0; i < 50; i++ {
		c.Step()
		f.clock.advance(10 * time.Millisecond)
	}
	// 500ms hold with a 200ms window: triggers at 0, 200 and 400ms.
	if got := strings.Count(f.out.String(), "KEY:ENTER\n"); got != 3 {
		t.Fatalf("expected 3 triggers, got %d", got)
	}
}

func TestKeyboardReports(t *testing.T) {
	f, c := newFixture(t)
	f.keys.reports = [][]byte{
		{0, 0, 0x0b, 0x0c, 0, 0, 0, 0}, // h, i
		{0x02, 0, 0x1e, 0, 0, 0, 0, 0}, // shift-1
		{0, 0, 0x28, 0, 0, 0, 0, 0},    // enter
	}

	c.Step()

	want := "TXT:h\nTXT:i\nTXT:!\nKEY:ENTER\n"
	if got := f.out.String(); got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestRenderCadence(t *testing.T) {
	f, c := newFixture(t)

	c.Step() // nothing dirty: still renders once at startup
	first := f.disp.draws

	for i := 0; i < 10; i++ {
		f.clock.advance(10 * time.Millisecond)
		c.Step()
	}
	if f.disp.draws != first {
		t.Fatal("expected no renders before the interval elapsed")
	}

	f.clock.advance(RenderInterval)
	c.Step()
	if f.disp.draws != first+2 {
		t.Fatalf("expected one render after the interval, got %d draws", f.disp.draws-first)
	}
}

func TestShrinkingFrameReclamps(t *testing.T) {
	f, c := newFixture(t)
	f.port.push(wire.AppendFrame(nil, 24, 80, bytes.Repeat([]byte{'.'}, 24*80)))
	c.Step()

	c.Viewport().ScrollVertical(20)
	c.Viewport().ScrollHorizontal(70)

	f.port.push(testFrame('y')) // 4x20
	c.Step()

	off := c.Viewport().Offset()
	if off.Y != 3 || off.X != 19 {
		t.Fatalf("expected offset reclamped to (3,19), got (%d,%d)", off.Y, off.X)
	}
}
