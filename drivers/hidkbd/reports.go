package hidkbd

import "github.com/picodeck/picodeck/wire"

// ReportSource delivers raw keyboard reports to be polled by the control
// loop.  Implementations must not block.
type ReportSource interface {
	// ReadReport returns the next pending report, or false if none is
	// available.  The returned slice is only valid until the next call.
	ReadReport() ([]byte, bool)
}

const reportLen = 8

// UARTReports reads fixed 8-byte boot keyboard reports from a byte port, the
// framing a companion USB host controller forwards them in.
type UARTReports struct {
	port wire.Port
	buf  [reportLen]byte
}

func NewUARTReports(port wire.Port) *UARTReports {
	return &UARTReports{port: port}
}

func (u *UARTReports) ReadReport() ([]byte, bool) {
	// Wait for a complete report so a partially arrived one is not torn
	// apart.
	if u.port.Buffered() < reportLen {
		return nil, false
	}
	for i := range u.buf {
		b, err := u.port.ReadByte()
		if err != nil {
			return nil, false
		}
		u.buf[i] = b
	}
	return u.buf[:], true
}
