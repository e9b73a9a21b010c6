// Package hidkbd translates USB HID boot keyboard reports into key events.
//
// Only the fixed US layout is mapped.  The transport that produces the
// reports (USB host stack, companion controller, ...) is a collaborator
// behind the ReportSource interface, this package never sees the bus.
package hidkbd

import "github.com/picodeck/picodeck/wire"

// Modifier bits of report byte 0.
const (
	ModLeftShift  = 0x02
	ModRightShift = 0x20
)

const (
	usageA         = 0x04
	usageZ         = 0x1d
	usage1         = 0x1e
	usage0         = 0x27
	usageEnter     = 0x28
	usageBackspace = 0x2a
)

var (
	digits        = []byte("1234567890")
	digitsShifted = []byte("!@#$%^&*()")
)

// Punctuation pairs (unshifted, shifted) indexed by usage code.  A zero
// entry means the usage is unmapped.
var punct = [0x38][2]byte{
	0x2c: {' ', ' '},
	0x2d: {'-', '_'},
	0x2e: {'=', '+'},
	0x2f: {'[', '{'},
	0x30: {']', '}'},
	0x31: {'\\', '|'},
	0x33: {';', ':'},
	0x34: {'\'', '"'},
	0x35: {'`', '~'},
	0x36: {'.', '>'},
	0x37: {'/', '?'},
}

// DecodeReport translates one boot keyboard report and calls emit for every
// mapped key, in report order.  Byte 0 is the modifier bitmap, bytes 2..7
// hold up to six concurrently pressed usage codes.  Reports shorter than 8
// bytes and unmapped usages are ignored.
//
// There is no key-repeat suppression here: a usage still present in the next
// report is emitted again.  The transport only delivers a report on state
// change.
func DecodeReport(report []byte, emit func(wire.Event)) {
	if len(report) < 8 {
		return
	}
	shift := report[0]&(ModLeftShift|ModRightShift) != 0
	for _, usage := range report[2:8] {
		if usage == 0 {
			continue
		}
		if ev, ok := Translate(usage, shift); ok {
			emit(ev)
		}
	}
}

// Translate maps a single usage code to an event.
func Translate(usage byte, shift bool) (wire.Event, bool) {
	switch {
	case usage == usageEnter:
		return wire.Event{Kind: wire.KeyEnter}, true
	case usage == usageBackspace:
		return wire.Event{Kind: wire.KeyBackspace}, true
	case usage >= usageA && usage <= usageZ:
		c := 'a' + usage - usageA
		if shift {
			c -= 'a' - 'A'
		}
		return wire.TextEvent(c), true
	case usage >= usage1 && usage <= usage0:
		if shift {
			return wire.TextEvent(digitsShifted[usage-usage1]), true
		}
		return wire.TextEvent(digits[usage-usage1]), true
	case int(usage) < len(punct) && punct[usage][0] != 0:
		if shift {
			return wire.TextEvent(punct[usage][1]), true
		}
		return wire.TextEvent(punct[usage][0]), true
	}
	return wire.Event{}, false
}
