package wire

import (
	"runtime"
	"time"
)

// ReadTimeout is the longest a Receiver stalls waiting for the remainder of
// a started frame before it gives up on it.
const ReadTimeout = 200 * time.Millisecond

// Frame is one validated snapshot as it was declared on the wire.  Rows and
// Cols may exceed the buffer capacity, Payload always holds the full declared
// rows*cols bytes.
type Frame struct {
	Rows, Cols uint8
	Payload    []byte
}

// Receiver extracts snapshot frames from a byte port.  It never blocks
// longer than ReadTimeout per read and recovers from a malformed stream by
// resuming the scan for STX on the next Poll.
type Receiver struct {
	port Port
	now  func() time.Time

	accepted, dropped uint32

	// Sized for the largest declarable frame, not for the buffer
	// capacity: an oversized frame must still be consumed completely or
	// the stream would desynchronize.
	payload [255 * 255]byte
}

func NewReceiver(port Port) *Receiver {
	return &Receiver{port: port, now: time.Now}
}

// Poll makes a single attempt to read one frame.  The returned Frame's
// payload aliases the receiver's scratch buffer and is only valid until the
// next Poll.
//
// A Poll that finds no pending byte returns immediately.  If the pending
// byte is not STX it is dropped and scanning resumes at the following byte
// on the next call.  Frames with a wrong type byte, a missing ETX or a read
// stall are discarded silently.
func (r *Receiver) Poll() (Frame, bool) {
	if r.port.Buffered() == 0 {
		return Frame{}, false
	}
	b, err := r.port.ReadByte()
	if err != nil || b != STX {
		return Frame{}, false
	}

	// The type byte is checked before the dimensions are read: on a
	// mismatch only STX and the type byte have been consumed, and the
	// next Poll resumes scanning at the following byte.  A stray STX in
	// the type position starts a new frame instead, so a snapshot right
	// behind a truncated frame head is not lost.
	var typ [1]byte
	for {
		if !r.readFull(typ[:]) {
			r.dropped++
			return Frame{}, false
		}
		if typ[0] == TypeSnapshot {
			break
		}
		r.dropped++
		if typ[0] != STX {
			return Frame{}, false
		}
	}

	var hdr [2]byte // rows, cols
	if !r.readFull(hdr[:]) {
		r.dropped++
		return Frame{}, false
	}
	rows, cols := hdr[0], hdr[1]

	total := int(rows) * int(cols)
	if !r.readFull(r.payload[:total]) {
		r.dropped++
		return Frame{}, false
	}

	var etx [1]byte
	if !r.readFull(etx[:]) || etx[0] != ETX {
		r.dropped++
		return Frame{}, false
	}

	r.accepted++
	return Frame{Rows: rows, Cols: cols, Payload: r.payload[:total]}, true
}

// Stats returns the number of frames accepted and dropped since creation.
func (r *Receiver) Stats() (accepted, dropped uint32) {
	return r.accepted, r.dropped
}

// readFull reads len(p) bytes, waiting up to ReadTimeout for the whole read.
func (r *Receiver) readFull(p []byte) bool {
	deadline := r.now().Add(ReadTimeout)
	for i := range p {
		for r.port.Buffered() == 0 {
			if r.now().After(deadline) {
				return false
			}
			runtime.Gosched()
		}
		b, err := r.port.ReadByte()
		if err != nil {
			return false
		}
		p[i] = b
	}
	return true
}
