// Package wire implements the two serial protocols spoken between the deck
// and its host: downstream screen snapshot frames and upstream key event
// lines.
//
// A snapshot frame is
//
//	STX 'S' <rows:u8> <cols:u8> <rows*cols payload bytes> ETX
//
// with the payload in row-major order, printable ASCII only.  Key events are
// newline terminated ASCII lines: "KEY:ENTER", "KEY:BACKSPACE" or
// "TXT:<text>".
package wire

const (
	STX = 0x02
	ETX = 0x03

	// TypeSnapshot is the only defined frame type.
	TypeSnapshot = 'S'
)

// Capacity of the deck's terminal buffer.  Frames may declare larger
// dimensions, the interpreted grid is truncated to this.
const (
	MaxRows = 24
	MaxCols = 80
)

// Port is the receive side of a non-blocking byte stream, typically a UART
// with an internal FIFO.  machine.UART of a TinyGo target satisfies it.
type Port interface {
	// Buffered returns the number of bytes that can be read without
	// waiting.
	Buffered() int
	ReadByte() (byte, error)
}

// AppendFrame appends a snapshot frame for the given grid to dst and returns
// the extended slice.  Payload bytes outside the printable ASCII range are
// replaced with spaces, len(payload) must be rows*cols.
func AppendFrame(dst []byte, rows, cols int, payload []byte) []byte {
	dst = append(dst, STX, TypeSnapshot, byte(rows), byte(cols))
	for _, b := range payload {
		if b < 0x20 || b > 0x7e {
			b = ' '
		}
		dst = append(dst, b)
	}
	return append(dst, ETX)
}
