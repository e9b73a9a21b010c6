package wire

import "io"

// EventKind discriminates the Event variants.
type EventKind uint8

const (
	KeyText EventKind = iota
	KeyEnter
	KeyBackspace
)

// Event is one key event bound for the host.
type Event struct {
	Kind EventKind
	Char byte // printable ASCII, only set for KeyText
}

// TextEvent returns a KeyText event carrying c.
func TextEvent(c byte) Event {
	return Event{Kind: KeyText, Char: c}
}

var (
	lineEnter     = []byte("KEY:ENTER\n")
	lineBackspace = []byte("KEY:BACKSPACE\n")
)

// EventWriter serializes events into the upstream line protocol.  Each event
// becomes exactly one line issued in a single Write call, so lines from
// other writers on the same stream cannot interleave mid-event.
type EventWriter struct {
	w       io.Writer
	scratch [6]byte
}

func NewEventWriter(w io.Writer) *EventWriter {
	return &EventWriter{w: w}
}

func (ew *EventWriter) WriteEvent(ev Event) error {
	var line []byte
	switch ev.Kind {
	case KeyEnter:
		line = lineEnter
	case KeyBackspace:
		line = lineBackspace
	default:
		line = append(ew.scratch[:0], 'T', 'X', 'T', ':', ev.Char, '\n')
	}
	_, err := ew.w.Write(line)
	return err
}

// ParseEvent decodes one protocol line, without the trailing newline.  It
// reports false for lines that are not part of the protocol, which the host
// side skips to tolerate noise on a shared serial link.  The deck emits a
// single character per TXT line, but longer payloads are accepted; Char
// holds the first byte and callers wanting the rest slice the line past the
// "TXT:" prefix.
func ParseEvent(line string) (Event, bool) {
	switch {
	case line == "KEY:ENTER":
		return Event{Kind: KeyEnter}, true
	case line == "KEY:BACKSPACE":
		return Event{Kind: KeyBackspace}, true
	case len(line) > 4 && line[:4] == "TXT:":
		return TextEvent(line[4]), true
	}
	return Event{}, false
}
